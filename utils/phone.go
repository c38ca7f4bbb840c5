package utils

import (
	"errors"
	"regexp"
	"strings"
)

var ErrInvalidPhone = errors.New("invalid Kenyan phone number")

// E.164 Kenya: +254 followed by exactly 9 digits.
var kenyanPhone = regexp.MustCompile(`^\+254\d{9}$`)

// NormalizePhone coerces the formats users actually type (0712345678,
// 254712345678, 712 345 678) into +254XXXXXXXXX.
func NormalizePhone(raw string) (string, error) {
	s := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '(', ')':
			return -1
		}
		return r
	}, strings.TrimSpace(raw))

	switch {
	case strings.HasPrefix(s, "+254"):
	case strings.HasPrefix(s, "254"):
		s = "+" + s
	case strings.HasPrefix(s, "0") && len(s) == 10:
		s = "+254" + s[1:]
	case len(s) == 9 && (s[0] == '7' || s[0] == '1'):
		s = "+254" + s
	}

	if !kenyanPhone.MatchString(s) {
		return "", ErrInvalidPhone
	}
	return s, nil
}

func ValidPhone(s string) bool {
	return kenyanPhone.MatchString(s)
}
