// Package rules holds input validation rules shared by handlers.
package rules

import (
	"errors"
	"regexp"

	"linkea/internal/core/domain/user"

	validation "github.com/go-ozzo/ozzo-validation"
)

const (
	PasswordMinLength = 8
	PasswordMaxLength = 256
	HandleMaxLength   = 64
)

var resetTokenPattern = regexp.MustCompile("^[0-9a-f]{64}$")

// Handle rejects handles that normalize to nothing.
var Handle = validation.By(func(value interface{}) error {
	raw, _ := value.(string)
	if raw != "" && user.NewHandle(raw) == "" {
		return errors.New("must contain letters or digits")
	}
	return nil
})

var ResetToken = validation.Match(resetTokenPattern).Error("must be a valid reset token")

func PasswordRules() []validation.Rule {
	return []validation.Rule{validation.Required, validation.Length(PasswordMinLength, PasswordMaxLength)}
}

func HandleRules() []validation.Rule {
	return []validation.Rule{validation.Required, validation.Length(0, HandleMaxLength), Handle}
}
