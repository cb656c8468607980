package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// configValidator reports failures under the keys used in config files, e.g.
// "randomiser.spawn_point" rather than "Config.Randomiser.SpawnPoint".
type configValidator struct {
	validate *validator.Validate
}

func newConfigValidator() *configValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("mapstructure"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("spawnchoice", validateSpawnChoice)

	return &configValidator{validate: v}
}

// validateSpawnChoice rejects blank spawn choices. Unknown biome names are
// accepted here and recovered from when the pass runs.
func validateSpawnChoice(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func (v *configValidator) check(cfg *Config) error {
	err := v.validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	messages := make([]string, 0, len(fieldErrs))
	for _, e := range fieldErrs {
		messages = append(messages, describe(e))
	}
	return fmt.Errorf("validation failed:\n  %s", strings.Join(messages, "\n  "))
}

// describe renders one failure as "key: rule (value: v)"
func describe(e validator.FieldError) string {
	key := e.Namespace()
	if _, rest, found := strings.Cut(key, "."); found {
		key = rest
	}
	rule := e.Tag()
	if e.Param() != "" {
		rule = fmt.Sprintf("%s=%s", rule, e.Param())
	}
	return fmt.Sprintf("%s: failed %s (value: '%v')", key, rule, e.Value())
}

// ValidateConfig validates the entire configuration
func ValidateConfig(cfg *Config) error {
	return newConfigValidator().check(cfg)
}
