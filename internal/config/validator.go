package config

import (
	"github.com/go-playground/validator/v10"

	"pagewatch/internal/common"
)

// ValidateConfig performs struct-tag validation on the GlobalConfig.
func ValidateConfig(cfg *GlobalConfig) error {
	if cfg == nil {
		return common.NewConfigurationError("", "", "config is nil")
	}

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			first := validationErrors[0]
			return common.NewValidationError(first.Namespace(), first.Value(), "failed '"+first.Tag()+"' validation")
		}
		return common.WrapError(err, "config validation failed")
	}
	return nil
}
