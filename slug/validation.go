package slug

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const (
	TagWorkspaceSlug = "workspaceslug"
	TagTeamSlug      = "teamslug"
)

func RegisterValidations(v *validator.Validate) error {
	if err := v.RegisterValidation(TagWorkspaceSlug, func(fl validator.FieldLevel) bool {
		return IsWorkspaceSlug(fl.Field().String())
	}); err != nil {
		return err
	}
	return v.RegisterValidation(TagTeamSlug, func(fl validator.FieldLevel) bool {
		return IsTeamSlug(fl.Field().String())
	})
}

// RegisterBindingValidations installs the slug tags on gin's default validator.
func RegisterBindingValidations() error {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		return RegisterValidations(v)
	}
	return nil
}
