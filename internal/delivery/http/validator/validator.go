// Package validator adapts go-playground/validator to echo's Validator hook.
package validator

import (
	"net/http"

	playgroundvalidator "github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type echoValidator struct {
	validate *playgroundvalidator.Validate
}

// New creates an echo.Validator backed by go-playground/validator.
func New() echo.Validator {
	return &echoValidator{
		validate: playgroundvalidator.New(playgroundvalidator.WithRequiredStructEnabled()),
	}
}

// Validate validates the bound request struct against its validate tags.
func (v *echoValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return nil
}
