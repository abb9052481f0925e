package key

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mj1618/desktop-pilot/internal/platform"
	"github.com/mj1618/desktop-pilot/internal/platform/simulated"
)

type sleepRecorder struct {
	sleeps []time.Duration
}

func (r *sleepRecorder) Sleep(d time.Duration) { r.sleeps = append(r.sleeps, d) }

func newKeyboard(opts ...simulated.Option) (*Keyboard, *simulated.Backend, *sleepRecorder) {
	b := simulated.New(10, 10, 1, opts...)
	rec := &sleepRecorder{}
	return New(b, WithSleeper(rec.Sleep), WithRand(rand.New(rand.NewSource(1)))), b, rec
}

func keyEvents(events []simulated.Event) []platform.KeyEvent {
	var out []platform.KeyEvent
	for _, ev := range events {
		if ev.Kind == simulated.EventKey {
			out = append(out, ev.Key)
		}
	}
	return out
}

func TestTypeString_FastestPossible(t *testing.T) {
	k, b, rec := newKeyboard()
	require.NoError(t, k.TypeString("ab", nil, 0, 0))

	events := keyEvents(b.Events())
	require.Len(t, events, 4)
	assert.Equal(t, platform.KeyEvent{Char: 'a', IsChar: true, Down: true, Flags: []platform.Flag{}}, events[0])
	assert.Equal(t, platform.KeyEvent{Char: 'a', IsChar: true, Down: false, Flags: []platform.Flag{}}, events[1])
	assert.Equal(t, 'b', events[2].Char)
	assert.True(t, events[2].Down)
	assert.False(t, events[3].Down)
	assert.Empty(t, rec.sleeps)
}

func TestTypeString_Pacing(t *testing.T) {
	k, b, rec := newKeyboard()
	// 60 wpm = 5 chars/s = 200ms per character, 100ms per stroke.
	require.NoError(t, k.TypeString("hi", nil, 60, 0))

	events := keyEvents(b.Events())
	require.Len(t, events, 4)
	assert.Equal(t, 100*time.Millisecond, events[0].ModifierDelay)
	assert.Equal(t, []time.Duration{
		100 * time.Millisecond, 100 * time.Millisecond,
		100 * time.Millisecond, 100 * time.Millisecond,
	}, rec.sleeps)
}

func TestTypeString_NoiseBounded(t *testing.T) {
	k, _, rec := newKeyboard()
	require.NoError(t, k.TypeString("abcdefghij", nil, 60, 0.5))

	// Each character sleeps once after press and once after release.
	require.Len(t, rec.sleeps, 20)
	for i := 1; i < len(rec.sleeps); i += 2 {
		d := rec.sleeps[i]
		assert.GreaterOrEqual(t, d, 100*time.Millisecond)
		assert.Less(t, d, 200*time.Millisecond)
	}
}

func TestTypeString_RejectsNegative(t *testing.T) {
	k, b, _ := newKeyboard()
	assert.Error(t, k.TypeString("a", nil, -1, 0))
	assert.Error(t, k.TypeString("a", nil, 0, -1))
	assert.Empty(t, b.Events())
}

func TestToggle_MergesInferredFlags(t *testing.T) {
	k, b, _ := newKeyboard(simulated.WithShiftInference())

	require.NoError(t, k.Toggle(Character('A'), true, []platform.Flag{platform.FlagControl}, 0))
	require.NoError(t, k.Toggle(Character('A'), true, []platform.Flag{platform.FlagShift}, 0))
	require.NoError(t, k.Toggle(Code(platform.KeyTab), true, nil, 0))

	events := keyEvents(b.Events())
	require.Len(t, events, 3)
	assert.Equal(t, []platform.Flag{platform.FlagControl, platform.FlagShift}, events[0].Flags)
	assert.Equal(t, []platform.Flag{platform.FlagShift}, events[1].Flags)
	assert.Equal(t, []platform.Flag{}, events[2].Flags)
	assert.False(t, events[2].IsChar)
	assert.Equal(t, platform.KeyTab, events[2].Code)
}

func TestToggle_NoInferenceWithoutLayoutRules(t *testing.T) {
	k, b, _ := newKeyboard()
	require.NoError(t, k.Toggle(Character('A'), true, nil, 0))
	assert.Equal(t, []platform.Flag{}, keyEvents(b.Events())[0].Flags)
}

func TestTap(t *testing.T) {
	k, b, rec := newKeyboard()
	flags := []platform.Flag{platform.FlagMeta}
	require.NoError(t, k.Tap(Code(platform.KeyReturn), flags, 30*time.Millisecond, 5*time.Millisecond))

	events := keyEvents(b.Events())
	require.Len(t, events, 2)
	assert.True(t, events[0].Down)
	assert.False(t, events[1].Down)
	assert.Equal(t, flags, events[0].Flags)
	assert.Equal(t, 5*time.Millisecond, events[1].ModifierDelay)
	assert.Equal(t, []time.Duration{30 * time.Millisecond}, rec.sleeps)
}

func TestTap_StopsOnError(t *testing.T) {
	k, b, rec := newKeyboard()
	b.SetError(platform.Unavailable("no display"))

	err := k.Tap(Character('x'), nil, time.Second, 0)
	assert.True(t, errors.Is(err, platform.ErrBackendUnavailable))
	assert.Empty(t, rec.sleeps)
}

func TestParseKey(t *testing.T) {
	tests := []struct {
		input string
		want  Key
	}{
		{"a", Character('a')},
		{"A", Character('A')},
		{" ", Character(' ')},
		{"é", Character('é')},
		{"enter", Code(platform.KeyReturn)},
		{"Return", Code(platform.KeyReturn)},
		{"ESC", Code(platform.KeyEscape)},
		{"page_up", Code(platform.KeyPageUp)},
		{"Page-Down", Code(platform.KeyPageDown)},
		{"left", Code(platform.KeyLeftArrow)},
		{"cmd", Code(platform.KeyMeta)},
		{"space", Code(platform.KeySpace)},
		{"f1", Code(platform.KeyF1)},
		{"F12", Code(platform.KeyF12)},
		{"f24", Code(platform.KeyF24)},
	}
	for _, tt := range tests {
		got, err := ParseKey(tt.input)
		if assert.NoError(t, err, tt.input) {
			assert.Equal(t, tt.want, got, tt.input)
		}
	}

	for _, s := range []string{"", "f0", "f25", "hyper", "fx"} {
		_, err := ParseKey(s)
		assert.Error(t, err, "ParseKey(%q) should fail", s)
	}
}

func TestParseFlags(t *testing.T) {
	flags, err := ParseFlags("shift, ctrl,cmd")
	require.NoError(t, err)
	assert.Equal(t, []platform.Flag{platform.FlagShift, platform.FlagControl, platform.FlagMeta}, flags)

	flags, err = ParseFlags("")
	require.NoError(t, err)
	assert.Nil(t, flags)

	_, err = ParseFlags("shift,bogus")
	assert.Error(t, err)
}

func TestKeyStrings(t *testing.T) {
	assert.Equal(t, `'x'`, Character('x').String())
	assert.Equal(t, "pagedown", Code(platform.KeyPageDown).String())
}
