package cmd

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"io"
	"math/rand"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/mj1618/desktop-pilot/internal/config"
	"github.com/mj1618/desktop-pilot/internal/geometry"
	"github.com/mj1618/desktop-pilot/internal/imaging"
	"github.com/mj1618/desktop-pilot/internal/key"
	"github.com/mj1618/desktop-pilot/internal/mouse"
	"github.com/mj1618/desktop-pilot/internal/output"
	"github.com/mj1618/desktop-pilot/internal/pilot"
	"github.com/mj1618/desktop-pilot/internal/platform"
	"github.com/mj1618/desktop-pilot/internal/platform/simulated"
)

func noSleep(time.Duration) {}

// resetFlags restores every flag in the tree so runs don't leak into each other.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// run executes the CLI against b and returns what it printed.
func run(t *testing.T, b *simulated.Backend, args ...string) (string, error) {
	t.Helper()
	origPilot, origStdout := newPilot, output.Stdout
	t.Cleanup(func() {
		newPilot, output.Stdout = origPilot, origStdout
		output.OutputFormat, output.PrettyOutput = output.FormatYAML, false
	})

	newPilot = func(cfg *config.Config) (*pilot.Pilot, error) {
		return pilot.New(b.Provider(), cfg, nil, pilot.Options{
			MouseOptions:    []mouse.Option{mouse.WithSleeper(noSleep)},
			KeyboardOptions: []key.Option{key.WithSleeper(noSleep)},
		}), nil
	}
	var buf bytes.Buffer
	output.Stdout = &buf

	resetFlags(rootCmd)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(io.Discard)
	rootCmd.SetErr(io.Discard)
	err := rootCmd.Execute()
	return buf.String(), err
}

// mustRun is run that fails the test on a command error.
func mustRun(t *testing.T, b *simulated.Backend, args ...string) string {
	t.Helper()
	out, err := run(t, b, args...)
	if err != nil {
		t.Fatalf("%v: %v", args, err)
	}
	return out
}

// runErr is run that expects a command error containing want.
func runErr(t *testing.T, b *simulated.Backend, want string, args ...string) {
	t.Helper()
	_, err := run(t, b, args...)
	if err == nil {
		t.Fatalf("%v: expected an error", args)
	}
	if !strings.Contains(err.Error(), want) {
		t.Errorf("%v: error %q should contain %q", args, err, want)
	}
}

func decode(t *testing.T, out string, v interface{}) {
	t.Helper()
	if err := yaml.Unmarshal([]byte(out), v); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
}

func randomFrame(w, h int, seed int64) *image.RGBA {
	rng := rand.New(rand.NewSource(seed))
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	rng.Read(img.Pix)
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 0xff
	}
	return img
}

func TestRootCommand_HasSubcommands(t *testing.T) {
	expected := []string{"screen", "mouse", "key", "screenshot", "find", "wait", "serve", "version"}
	commands := rootCmd.Commands()

	found := make(map[string]bool)
	for _, c := range commands {
		found[c.Name()] = true
	}

	for _, name := range expected {
		if !found[name] {
			t.Errorf("expected subcommand %q not found", name)
		}
	}
}

func TestRootCommand_Version(t *testing.T) {
	if rootCmd.Version == "" {
		t.Error("root command version should be set")
	}
}

func TestRootCommand_BadFormat(t *testing.T) {
	runErr(t, simulated.New(10, 10, 1), "unsupported output format", "--format", "xml", "screen", "size")
}

func TestScreenSize(t *testing.T) {
	out := mustRun(t, simulated.New(200, 100, 2), "screen", "size")

	var info output.ScreenInfo
	decode(t, out, &info)
	want := output.ScreenInfo{Width: 100, Height: 50, Scale: 2, PixelWidth: 200, PixelHeight: 100}
	if info != want {
		t.Errorf("got %+v, want %+v", info, want)
	}
}

func TestScreenScale(t *testing.T) {
	out := mustRun(t, simulated.New(200, 100, 1.5), "screen", "scale")
	var res ScaleResult
	decode(t, out, &res)
	if res.Scale != 1.5 {
		t.Errorf("got scale %v, want 1.5", res.Scale)
	}
}

func TestScreenSize_JSON(t *testing.T) {
	out := mustRun(t, simulated.New(200, 100, 1), "--format", "json", "screen", "size")

	var info output.ScreenInfo
	if err := json.Unmarshal([]byte(out), &info); err != nil {
		t.Fatalf("not JSON: %q: %v", out, err)
	}
	want := output.ScreenInfo{Width: 200, Height: 100, Scale: 1, PixelWidth: 200, PixelHeight: 100}
	if info != want {
		t.Errorf("got %+v, want %+v", info, want)
	}
}

func TestScreenColor(t *testing.T) {
	b := simulated.New(20, 20, 1)
	red := color.RGBA{R: 0xff, A: 0xff}
	b.SetPixel(4, 5, red)

	var res output.ColorResult
	decode(t, mustRun(t, b, "screen", "color", "4,5"), &res)
	if res.Hex != "#ff0000" {
		t.Errorf("got hex %q, want #ff0000", res.Hex)
	}

	b.SetCursor(geometry.Point{X: 4, Y: 5})
	decode(t, mustRun(t, b, "screen", "color"), &res)
	if want := output.NewColor(geometry.Point{X: 4, Y: 5}, red); res != want {
		t.Errorf("got %+v, want %+v", res, want)
	}
}

func TestScreenVisible(t *testing.T) {
	b := simulated.New(100, 50, 1)
	tests := []struct {
		arg  string
		want bool
	}{
		{"10,10", true},
		{"100,10", false},
		{"0,0,100,50", true},
		{"10,10,95,10", false},
	}
	for _, tt := range tests {
		var res output.VisibleResult
		decode(t, mustRun(t, b, "screen", "visible", tt.arg), &res)
		if res.Visible != tt.want {
			t.Errorf("visible %s: got %v, want %v", tt.arg, res.Visible, tt.want)
		}
	}

	runErr(t, b, "expected x,y or x,y,w,h", "screen", "visible", "nope")
}

func TestMouseMoveAndLocation(t *testing.T) {
	b := simulated.New(200, 100, 2)
	mustRun(t, b, "mouse", "move", "30,20")

	want := []simulated.Event{{Kind: simulated.EventMove, Point: geometry.Point{X: 60, Y: 40}}}
	if got := b.Events(); !reflect.DeepEqual(got, want) {
		t.Errorf("got events %+v, want %+v", got, want)
	}

	var loc output.PointResult
	decode(t, mustRun(t, b, "mouse", "location"), &loc)
	if want := (output.PointResult{X: 30, Y: 20}); loc != want {
		t.Errorf("got %+v, want %+v", loc, want)
	}
}

func TestMouseMove_Smooth(t *testing.T) {
	b := simulated.New(100, 100, 1)
	out := mustRun(t, b, "mouse", "move", "10,0", "--smooth")

	events := b.Events()
	if len(events) < 2 {
		t.Fatalf("expected several moves, got %+v", events)
	}
	if last := events[len(events)-1].Point; last != (geometry.Point{X: 10, Y: 0}) {
		t.Errorf("last move at %s, want (10, 0)", last)
	}

	var res output.ActionResult
	decode(t, out, &res)
	if !res.OK || res.Cursor == nil || *res.Cursor != (output.PointResult{X: 10, Y: 0}) {
		t.Errorf("got %+v, want ok with cursor at 10,0", res)
	}
}

func TestMouseMove_OffScreen(t *testing.T) {
	b := simulated.New(100, 100, 1)
	runErr(t, b, "out of bounds", "mouse", "move", "100,5")
	if got := b.Events(); len(got) != 0 {
		t.Errorf("expected no events, got %+v", got)
	}
}

func TestMouseClick_DoubleAt(t *testing.T) {
	b := simulated.New(100, 100, 1)
	mustRun(t, b, "mouse", "click", "--at", "5,6", "--double", "--button", "right")

	down := simulated.Event{Kind: simulated.EventButton, Button: platform.MouseRight, Down: true}
	up := simulated.Event{Kind: simulated.EventButton, Button: platform.MouseRight}
	want := []simulated.Event{
		{Kind: simulated.EventMove, Point: geometry.Point{X: 5, Y: 6}},
		down, up, down, up,
	}
	if got := b.Events(); !reflect.DeepEqual(got, want) {
		t.Errorf("got events %+v, want %+v", got, want)
	}
}

func TestMouseToggle(t *testing.T) {
	b := simulated.New(10, 10, 1)
	mustRun(t, b, "mouse", "toggle", "down")
	runErr(t, b, "expected down or up", "mouse", "toggle", "sideways")

	want := []simulated.Event{{Kind: simulated.EventButton, Button: platform.MouseLeft, Down: true}}
	if got := b.Events(); !reflect.DeepEqual(got, want) {
		t.Errorf("got events %+v, want %+v", got, want)
	}
}

func TestMouseScroll(t *testing.T) {
	b := simulated.New(10, 10, 1)
	mustRun(t, b, "mouse", "scroll", "down")

	want := []simulated.Event{{Kind: simulated.EventScroll, Direction: platform.ScrollDown, Clicks: 3}}
	if got := b.Events(); !reflect.DeepEqual(got, want) {
		t.Errorf("got events %+v, want %+v", got, want)
	}

	runErr(t, b, "--clicks must be at least 1", "mouse", "scroll", "up", "--clicks", "0")
}

func TestMouseDrag(t *testing.T) {
	b := simulated.New(100, 100, 1)
	mustRun(t, b, "mouse", "drag", "--from", "1,1", "--to", "4,1")

	events := b.Events()
	if len(events) < 4 {
		t.Fatalf("expected at least 4 events, got %+v", events)
	}
	checks := []struct {
		got, want simulated.Event
	}{
		{events[0], simulated.Event{Kind: simulated.EventMove, Point: geometry.Point{X: 1, Y: 1}}},
		{events[1], simulated.Event{Kind: simulated.EventButton, Button: platform.MouseLeft, Down: true}},
		{events[len(events)-2], simulated.Event{Kind: simulated.EventMove, Point: geometry.Point{X: 4, Y: 1}}},
		{events[len(events)-1], simulated.Event{Kind: simulated.EventButton, Button: platform.MouseLeft}},
	}
	for _, c := range checks {
		if !reflect.DeepEqual(c.got, c.want) {
			t.Errorf("got %+v, want %+v", c.got, c.want)
		}
	}
}

func TestMouseDrag_RequiresPoints(t *testing.T) {
	runErr(t, simulated.New(10, 10, 1), "to", "mouse", "drag", "--from", "1,1")
}

func TestKeyTap(t *testing.T) {
	b := simulated.New(10, 10, 1)
	mustRun(t, b, "key", "tap", "enter", "--flags", "ctrl,shift")

	events := b.Events()
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %+v", events)
	}
	if events[0].Key.Code != platform.KeyReturn || !events[0].Down {
		t.Errorf("first event should press return, got %+v", events[0])
	}
	wantFlags := []platform.Flag{platform.FlagControl, platform.FlagShift}
	if !reflect.DeepEqual(events[0].Key.Flags, wantFlags) {
		t.Errorf("got flags %v, want %v", events[0].Key.Flags, wantFlags)
	}
	if events[1].Down {
		t.Errorf("second event should release, got %+v", events[1])
	}
}

func TestKeyTap_Unknown(t *testing.T) {
	runErr(t, simulated.New(10, 10, 1), "unknown key", "key", "tap", "hyperdrive")
}

func TestKeyToggle(t *testing.T) {
	b := simulated.New(10, 10, 1)
	mustRun(t, b, "key", "toggle", "a", "down")

	events := b.Events()
	if len(events) != 1 || events[0].Key.Char != 'a' || !events[0].Down {
		t.Errorf("expected one press of 'a', got %+v", events)
	}
}

func TestKeyType(t *testing.T) {
	b := simulated.New(10, 10, 1, simulated.WithShiftInference())
	out := mustRun(t, b, "key", "type", "Hi!")

	var res TypeResult
	decode(t, out, &res)
	if want := (TypeResult{OK: true, Action: "type", Text: "Hi!", Runes: 3}); res != want {
		t.Errorf("got %+v, want %+v", res, want)
	}

	events := b.Events()
	if len(events) != 6 {
		t.Fatalf("expected 6 events, got %d", len(events))
	}
	if events[0].Key.Char != 'H' || !reflect.DeepEqual(events[0].Key.Flags, []platform.Flag{platform.FlagShift}) {
		t.Errorf("'H' should be typed with shift, got %+v", events[0])
	}
	if len(events[2].Key.Flags) != 0 {
		t.Errorf("'i' should have no flags, got %v", events[2].Key.Flags)
	}
}

func TestKeyType_TextFlagAndArgConflict(t *testing.T) {
	runErr(t, simulated.New(10, 10, 1), "not both", "key", "type", "a", "--text", "b")
	runErr(t, simulated.New(10, 10, 1), "nothing to type", "key", "type")
}

func TestScreenshot_ToFile(t *testing.T) {
	b := simulated.New(40, 20, 2, simulated.WithFrame(randomFrame(40, 20, 1)))
	path := filepath.Join(t.TempDir(), "shot.png")

	out := mustRun(t, b, "screenshot", "--output", path, "--region", "0,0,10,5", "--scale", "0.5")
	var res output.ScreenshotResult
	decode(t, out, &res)
	if want := (output.ScreenshotResult{Path: path, Width: 10, Height: 5, Scale: 2}); res != want {
		t.Errorf("got %+v, want %+v", res, want)
	}

	img, err := imaging.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := img.Bounds(); got != image.Rect(0, 0, 10, 5) {
		t.Errorf("saved image bounds %v, want 10x5", got)
	}
}

func TestScreenshot_Base64(t *testing.T) {
	out := mustRun(t, simulated.New(8, 8, 1), "screenshot")
	if out == "" || strings.Contains(out, "path:") {
		t.Errorf("expected base64 image data, got %q", out)
	}
}

func TestFind_Color(t *testing.T) {
	b := simulated.New(20, 20, 1)
	blue := color.RGBA{B: 0xff, A: 0xff}
	b.SetPixel(3, 2, blue)
	b.SetPixel(7, 9, blue)

	var res output.FindResult
	decode(t, mustRun(t, b, "find", "--color", "#0000ff"), &res)
	if want := []output.PointResult{{X: 3, Y: 2}}; !reflect.DeepEqual(res.Matches, want) {
		t.Errorf("got matches %+v, want %+v", res.Matches, want)
	}

	res = output.FindResult{}
	decode(t, mustRun(t, b, "find", "--color", "#0000ff", "--all"), &res)
	if res.Count != 2 {
		t.Errorf("got count %d, want 2", res.Count)
	}

	res = output.FindResult{}
	decode(t, mustRun(t, b, "find", "--color", "#0000ff", "--count", "--region", "5,5,10,10"), &res)
	if want := (output.FindResult{Found: true, Count: 1}); !reflect.DeepEqual(res, want) {
		t.Errorf("got %+v, want %+v", res, want)
	}
}

func TestFind_Needle(t *testing.T) {
	frame := randomFrame(30, 30, 7)
	b := simulated.New(30, 30, 1, simulated.WithFrame(frame))
	dir := t.TempDir()
	needlePath := filepath.Join(dir, "needle.png")
	if err := imaging.Save(needlePath, frame.SubImage(image.Rect(12, 8, 18, 13)), 0); err != nil {
		t.Fatal(err)
	}
	annotated := filepath.Join(dir, "annotated.png")

	var res output.FindResult
	decode(t, mustRun(t, b, "find", "--needle", needlePath, "--annotate", annotated), &res)
	if want := []output.PointResult{{X: 12, Y: 8}}; !reflect.DeepEqual(res.Matches, want) {
		t.Errorf("got matches %+v, want %+v", res.Matches, want)
	}

	img, err := imaging.Load(annotated)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds() != frame.Bounds() {
		t.Errorf("annotated bounds %v, want %v", img.Bounds(), frame.Bounds())
	}
}

func TestFind_Haystack(t *testing.T) {
	hay := image.NewRGBA(image.Rect(0, 0, 10, 10))
	hay.SetRGBA(6, 4, color.RGBA{G: 0xff, A: 0xff})
	path := filepath.Join(t.TempDir(), "hay.png")
	if err := imaging.Save(path, hay, 0); err != nil {
		t.Fatal(err)
	}

	var res output.FindResult
	decode(t, mustRun(t, simulated.New(5, 5, 1), "find", "--color", "00ff00", "--haystack", path, "--haystack-scale", "2"), &res)
	if want := []output.PointResult{{X: 3, Y: 2}}; !reflect.DeepEqual(res.Matches, want) {
		t.Errorf("got matches %+v, want %+v", res.Matches, want)
	}
}

func TestFind_InvalidArguments(t *testing.T) {
	b := simulated.New(10, 10, 1)
	runErr(t, b, "invalid argument", "find", "--color", "#000000", "--tolerance", "2")
	runErr(t, b, "invalid argument", "find", "--color", "#000000", "--region", "5,5,10,10")
	runErr(t, b, "needle", "find")
	runErr(t, b, "invalid color", "find", "--color", "red")
}

func TestWait_Appears(t *testing.T) {
	b := simulated.New(10, 10, 1)
	b.SetPixel(2, 3, color.RGBA{R: 0xff, A: 0xff})

	var res WaitResult
	decode(t, mustRun(t, b, "wait", "--color", "#ff0000", "--interval", "5ms"), &res)
	if !res.OK || res.Match == nil || *res.Match != (output.PointResult{X: 2, Y: 3}) {
		t.Errorf("got %+v, want ok with a match at 2,3", res)
	}
}

func TestWait_Gone(t *testing.T) {
	var res WaitResult
	decode(t, mustRun(t, simulated.New(10, 10, 1), "wait", "--color", "#ff0000", "--gone", "--interval", "5ms"), &res)
	if !res.OK || res.Match != nil {
		t.Errorf("got %+v, want ok without a match", res)
	}
}

func TestWait_Timeout(t *testing.T) {
	out, err := run(t, simulated.New(10, 10, 1), "wait", "--color", "#ff0000", "--timeout", "30ms", "--interval", "5ms")
	if err == nil || !strings.Contains(err.Error(), "timed out") {
		t.Fatalf("expected a timeout error, got %v", err)
	}
	var res WaitResult
	decode(t, out, &res)
	if !res.TimedOut || res.OK {
		t.Errorf("got %+v, want timed_out", res)
	}
}

func TestVersionCommand(t *testing.T) {
	var info VersionInfo
	decode(t, mustRun(t, simulated.New(1, 1, 1), "version"), &info)
	if info.Version == "" {
		t.Error("version should be set")
	}
}

func TestServe_BadTransport(t *testing.T) {
	runErr(t, simulated.New(1, 1, 1), "unsupported transport", "serve", "--transport", "carrier-pigeon")
}

func TestParseColor(t *testing.T) {
	c, err := parseColor("#10a0FF")
	if err != nil {
		t.Fatal(err)
	}
	if want := (color.RGBA{R: 0x10, G: 0xa0, B: 0xff, A: 0xff}); c != want {
		t.Errorf("got %+v, want %+v", c, want)
	}

	for _, bad := range []string{"", "#fff", "zzzzzz", "#1234567"} {
		if _, err := parseColor(bad); err == nil {
			t.Errorf("parseColor(%q): expected error", bad)
		}
	}
}
