// Package key posts keyboard events: single toggles, taps, and whole strings
// typed at a human-like pace.
package key

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/mj1618/desktop-pilot/internal/platform"
)

// Key is either a Character or a Code.
type Key interface {
	keyEvent() platform.KeyEvent
}

// Character is a key identified by the character it produces. The backend
// maps it onto the current keyboard layout.
type Character rune

// Code is a key identified by a layout-independent key code.
type Code platform.KeyCode

func (c Character) keyEvent() platform.KeyEvent {
	return platform.KeyEvent{Char: rune(c), IsChar: true}
}

func (c Character) String() string { return fmt.Sprintf("%q", rune(c)) }

func (c Code) keyEvent() platform.KeyEvent {
	return platform.KeyEvent{Code: platform.KeyCode(c)}
}

func (c Code) String() string { return platform.KeyCode(c).String() }

// Keyboard posts key events through a platform.InputBackend.
type Keyboard struct {
	input  platform.InputBackend
	logger *zap.Logger
	sleep  func(time.Duration)
	rng    *rand.Rand
}

// Option configures a Keyboard.
type Option func(*Keyboard)

func WithLogger(logger *zap.Logger) Option {
	return func(k *Keyboard) { k.logger = logger }
}

// WithSleeper replaces time.Sleep, for tests.
func WithSleeper(sleep func(time.Duration)) Option {
	return func(k *Keyboard) { k.sleep = sleep }
}

// WithRand sets the source of typing jitter.
func WithRand(rng *rand.Rand) Option {
	return func(k *Keyboard) { k.rng = rng }
}

func New(input platform.InputBackend, opts ...Option) *Keyboard {
	k := &Keyboard{
		input:  input,
		logger: zap.NewNop(),
		sleep:  time.Sleep,
	}
	for _, opt := range opts {
		opt(k)
	}
	if k.rng == nil {
		k.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	k.logger = k.logger.Named("key")
	return k
}

// Toggle presses (down) or releases k. Modifiers the layout needs for a
// Character are added after the caller's flags. modifierDelay is the pause
// after each modifier event on backends that post modifiers separately.
func (k *Keyboard) Toggle(key Key, down bool, flags []platform.Flag, modifierDelay time.Duration) error {
	ev := key.keyEvent()
	var inferred []platform.Flag
	if ev.IsChar {
		inferred = k.input.FlagsForChar(ev.Char)
	}
	ev.Flags = platform.MergeFlags(flags, inferred)
	ev.Down = down
	ev.ModifierDelay = modifierDelay
	if err := k.input.KeyToggle(ev); err != nil {
		return fmt.Errorf("key toggle %s: %w", ev, err)
	}
	k.logger.Debug("key", zap.Stringer("event", ev))
	return nil
}

// Tap presses k, waits delay, and releases it.
func (k *Keyboard) Tap(key Key, flags []platform.Flag, delay, modifierDelay time.Duration) error {
	if err := k.Toggle(key, true, flags, modifierDelay); err != nil {
		return err
	}
	k.pause(delay)
	return k.Toggle(key, false, flags, modifierDelay)
}

// TypeString taps each character of text at wpm words per minute (five
// characters per word). A wpm of 0 types as fast as possible. noise adds a
// random extra pause of up to noise times the per-character time.
func (k *Keyboard) TypeString(text string, flags []platform.Flag, wpm, noise float64) error {
	if wpm < 0 || noise < 0 {
		return fmt.Errorf("wpm and noise must be non-negative, got %g and %g", wpm, noise)
	}
	cps := wpm * 5 / 60
	var msPerChar float64
	if cps != 0 {
		msPerChar = math.Round(1000 / cps)
	}
	stroke := time.Duration(math.Round(msPerChar/2)) * time.Millisecond
	tolerance := int64(math.Round(noise * msPerChar))

	k.logger.Debug("typing",
		zap.Int("runes", len([]rune(text))),
		zap.Float64("wpm", wpm),
		zap.Duration("stroke", stroke),
	)
	for _, c := range text {
		var jitter time.Duration
		if tolerance > 0 {
			jitter = time.Duration(k.rng.Int63n(tolerance)) * time.Millisecond
		}
		if err := k.Tap(Character(c), flags, stroke, stroke); err != nil {
			return err
		}
		k.pause(stroke + jitter)
	}
	return nil
}

func (k *Keyboard) pause(d time.Duration) {
	if d > 0 {
		k.sleep(d)
	}
}
