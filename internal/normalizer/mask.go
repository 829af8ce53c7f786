package normalizer

import (
	"encoding/base64"
	"errors"
	"strings"
)

var (
	errNotAnObject       = errors.New("record is not a JSON object")
	errNoIdentity        = errors.New("record has no account ID or card number")
	errUnparsableBalance = errors.New("balance is not a finite number")
)

const maskSeparator = " **** **** "

// MaskNumber derives a display-safe card number. Some integrations ship the
// raw PAN base64-encoded, some ship it in the clear, and some ship an
// already-masked string; the result always carries at most the first four and
// last four real digits.
//
// The function is idempotent: a number that already contains mask
// placeholders is returned unchanged, so re-normalizing canonical output is
// safe.
func MaskNumber(raw string) string {
	if strings.ContainsAny(raw, "*•") {
		return raw
	}

	if decoded, ok := decodePAN(raw); ok {
		return maskDigits(decoded)
	}

	stripped := []rune(stripSpaces(raw))
	if len(stripped) >= 16 {
		return string(stripped[:4]) + maskSeparator + string(stripped[len(stripped)-4:])
	}

	return raw
}

func maskDigits(number string) string {
	return number[:4] + maskSeparator + number[len(number)-4:]
}

// decodePAN attempts the base64 encodings the integrations use. A decode only
// counts when the result looks like an actual card number; plenty of 16-digit
// PANs are themselves valid base64 and must not be double-decoded.
func decodePAN(raw string) (string, bool) {
	for _, enc := range []*base64.Encoding{base64.StdEncoding, base64.RawStdEncoding, base64.URLEncoding} {
		decoded, err := enc.DecodeString(raw)
		if err != nil {
			continue
		}
		s := stripSpaces(string(decoded))
		if len(s) >= 16 && allDigits(s) {
			return s, true
		}
	}
	return "", false
}

func stripSpaces(s string) string {
	return strings.ReplaceAll(s, " ", "")
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return len(s) > 0
}
