package sms

import (
	"regexp"
	"strings"
)

var (
	phoneStripper = strings.NewReplacer("+", "", " ", "", "-", "")
	reE164Digits  = regexp.MustCompile(`^[1-9]\d{6,14}$`)
)

// NormalizePhone strips '+', spaces and dashes. Nothing else is touched.
func NormalizePhone(phone string) string {
	return phoneStripper.Replace(phone)
}

// IsValidPhone checks a normalized number against E.164 digit rules.
func IsValidPhone(normalized string) bool {
	return reE164Digits.MatchString(normalized)
}

// MaskPhone keeps the last four characters for logs.
func MaskPhone(phone string) string {
	r := []rune(phone)
	if len(r) <= 4 {
		return strings.Repeat("*", len(r))
	}
	return strings.Repeat("*", len(r)-4) + string(r[len(r)-4:])
}
