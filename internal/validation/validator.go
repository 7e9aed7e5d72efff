// Package validation holds the pure input checks performed before any
// storage access. Full and partial update share the same per-field rules.
package validation

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/shoyo10/usersvc/internal/domain"
)

// Non-whitespace local part, exactly one @, and a dot in the domain part.
var emailRegexp = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// UserID parses a path parameter as a user id. Valid ids are integers >= 1.
func UserID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, errors.WithStack(domain.ErrInvalidID)
	}
	return id, nil
}

// UserInput validates a create/replace payload and normalizes it in place:
// name is trimmed, email is trimmed and lower-cased.
func UserInput(in *domain.UserInput) error {
	name, err := normalizeName(in.Name)
	if err != nil {
		return err
	}
	email, err := normalizeEmail(in.Email)
	if err != nil {
		return err
	}
	if err := checkAge(in.Age); err != nil {
		return err
	}
	in.Name = name
	in.Email = email
	return nil
}

// UserPatch validates a partial-update payload field by field, normalizing
// the fields that are present. A payload with no recognized field fails
// with ErrEmptyUpdate.
func UserPatch(in *domain.UserPatch) error {
	if in.Empty() {
		return errors.WithStack(domain.ErrEmptyUpdate)
	}
	if in.Name != nil {
		name, err := normalizeName(*in.Name)
		if err != nil {
			return err
		}
		*in.Name = name
	}
	if in.Email != nil {
		email, err := normalizeEmail(*in.Email)
		if err != nil {
			return err
		}
		*in.Email = email
	}
	if err := checkAge(in.Age); err != nil {
		return err
	}
	return nil
}

func normalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errors.WithStack(domain.ErrInvalidName)
	}
	return name, nil
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !emailRegexp.MatchString(email) {
		return "", errors.WithStack(domain.ErrInvalidEmail)
	}
	return email, nil
}

func checkAge(age *int) error {
	if age == nil {
		return nil
	}
	// The age column is a 32-bit integer; anything past it would wrap on
	// conversion in the store.
	if *age < 0 || *age > math.MaxInt32 {
		return errors.WithStack(domain.ErrInvalidAge)
	}
	return nil
}
