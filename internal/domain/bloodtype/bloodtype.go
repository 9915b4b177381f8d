package bloodtype

import (
	"errors"
	"strings"
)

const (
	APositive  = "A+"
	ANegative  = "A-"
	BPositive  = "B+"
	BNegative  = "B-"
	ABPositive = "AB+"
	ABNegative = "AB-"
	OPositive  = "O+"
	ONegative  = "O-"
)

var ErrInvalid = errors.New("invalid blood type")

var all = []string{APositive, ANegative, BPositive, BNegative, ABPositive, ABNegative, OPositive, ONegative}

// All returns the recognised ABO/Rh groups in display order.
func All() []string {
	result := make([]string, len(all))
	copy(result, all)
	return result
}

func Normalize(value string) string {
	return strings.ToUpper(strings.TrimSpace(value))
}

func Valid(value string) bool {
	normalized := Normalize(value)
	for _, candidate := range all {
		if candidate == normalized {
			return true
		}
	}
	return false
}

// Parse normalizes value and rejects anything outside the eight groups.
func Parse(value string) (string, error) {
	normalized := Normalize(value)
	if !Valid(normalized) {
		return "", ErrInvalid
	}
	return normalized, nil
}
