package account

import (
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
)

const TagStrongPassword = "strongpassword"

const passwordSpecialChars = `!@#$%^&*(),.?":{}|<>`

var passwordCost = bcrypt.DefaultCost

func HashPassword(raw string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(raw), passwordCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func VerifyPassword(hashed, raw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(raw)) == nil
}

// IsStrongPassword requires an ASCII upper case letter, lower case letter and digit plus a special character.
func IsStrongPassword(raw string) bool {
	var upper, lower, digit, special bool
	for _, r := range raw {
		switch {
		case 'A' <= r && r <= 'Z':
			upper = true
		case 'a' <= r && r <= 'z':
			lower = true
		case '0' <= r && r <= '9':
			digit = true
		case strings.ContainsRune(passwordSpecialChars, r):
			special = true
		}
	}
	return upper && lower && digit && special
}

func RegisterValidations(v *validator.Validate) error {
	return v.RegisterValidation(TagStrongPassword, func(fl validator.FieldLevel) bool {
		return IsStrongPassword(fl.Field().String())
	})
}

func RegisterBindingValidations() error {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		return RegisterValidations(v)
	}
	return nil
}
