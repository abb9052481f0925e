package platform

import (
	"strings"
	"unicode"
)

// shiftedPunctuation lists the US-layout characters that need Shift.
const shiftedPunctuation = `!#$%&()*+:<>?@{|}~_^"`

// ShiftFlagsForChar returns [FlagShift] for uppercase letters and shifted
// punctuation, nil otherwise. Backends that map characters to physical keys
// (X11) use it as their FlagsForChar.
func ShiftFlagsForChar(c rune) []Flag {
	if unicode.IsUpper(c) || strings.ContainsRune(shiftedPunctuation, c) {
		return []Flag{FlagShift}
	}
	return nil
}

// MergeFlags returns the caller's flags followed by each inferred flag not
// already present.
func MergeFlags(flags, inferred []Flag) []Flag {
	out := make([]Flag, 0, len(flags)+len(inferred))
	out = append(out, flags...)
	for _, f := range inferred {
		if !containsFlag(flags, f) {
			out = append(out, f)
		}
	}
	return out
}

func containsFlag(flags []Flag, f Flag) bool {
	for _, x := range flags {
		if x == f {
			return true
		}
	}
	return false
}
