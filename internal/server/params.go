package server

import (
	"fmt"
	"math"

	"github.com/mj1618/desktop-pilot/internal/geometry"
)

func stringParam(params map[string]interface{}, key, def string) string {
	if v, ok := params[key].(string); ok {
		return v
	}
	return def
}

func floatParam(params map[string]interface{}, key string, def float64) float64 {
	switch v := params[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return def
}

func intParam(params map[string]interface{}, key string, def int) int {
	if _, ok := params[key]; !ok {
		return def
	}
	return int(math.Round(floatParam(params, key, float64(def))))
}

func boolParam(params map[string]interface{}, key string, def bool) bool {
	if v, ok := params[key].(bool); ok {
		return v
	}
	return def
}

func hasParam(params map[string]interface{}, key string) bool {
	_, ok := params[key]
	return ok
}

// pointParam reads x and y. Both must be given or neither.
func pointParam(params map[string]interface{}) (geometry.Point, bool, error) {
	hasX, hasY := hasParam(params, "x"), hasParam(params, "y")
	if hasX != hasY {
		return geometry.Point{}, false, fmt.Errorf("x and y must be given together")
	}
	if !hasX {
		return geometry.Point{}, false, nil
	}
	return geometry.Point{X: floatParam(params, "x", 0), Y: floatParam(params, "y", 0)}, true, nil
}

// rectParam reads x, y, width and height. All four must be given or none.
func rectParam(params map[string]interface{}) (*geometry.Rect, error) {
	keys := []string{"x", "y", "width", "height"}
	n := 0
	for _, k := range keys {
		if hasParam(params, k) {
			n++
		}
	}
	switch n {
	case 0:
		return nil, nil
	case len(keys):
		r := geometry.NewRect(
			floatParam(params, "x", 0), floatParam(params, "y", 0),
			floatParam(params, "width", 0), floatParam(params, "height", 0),
		)
		return &r, nil
	default:
		return nil, fmt.Errorf("x, y, width and height must be given together")
	}
}
