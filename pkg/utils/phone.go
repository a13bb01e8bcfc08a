package utils

import (
	"errors"
	"regexp"
	"strings"
)

// ErrInvalidPhone means the input cannot be normalized to a Ghana MSISDN.
var ErrInvalidPhone = errors.New("invalid phone number")

var ghanaPhonePattern = regexp.MustCompile(`^233\d{9}$`)

// NormalizePhone canonicalizes a phone number to the 233XXXXXXXXX form used
// for storage, lookups and SMS dispatch. Accepts "+233...", "00233...",
// local "0XXXXXXXXX" and already-normalized input.
func NormalizePhone(raw string) (string, error) {
	phone := strings.Map(func(r rune) rune {
		if r == ' ' || r == '-' {
			return -1
		}
		return r
	}, strings.TrimSpace(raw))

	phone = strings.TrimPrefix(phone, "+")
	if strings.HasPrefix(phone, "00233") {
		phone = phone[2:]
	}

	if len(phone) == 10 && strings.HasPrefix(phone, "0") {
		phone = "233" + phone[1:]
	}

	if !ghanaPhonePattern.MatchString(phone) {
		return "", ErrInvalidPhone
	}

	return phone, nil
}
