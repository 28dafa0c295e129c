package validators

import (
	"errors"
	"slices"
)

var validBloodGroups = []string{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"}

var ErrBloodGroupInvalid = errors.New("invalid blood group provided")

// BloodGroupValidator accepts the eight ABO/Rh groups. An empty value
// passes so optional fields can stay unset.
func BloodGroupValidator(bg string) error {
	if bg == "" {
		return nil
	}

	if !slices.Contains(validBloodGroups, bg) {
		return ErrBloodGroupInvalid
	}

	return nil
}
