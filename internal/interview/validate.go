package interview

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func configValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		validate.RegisterTagNameFunc(func(field reflect.StructField) string {
			name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
			if name == "" || name == "-" {
				return field.Name
			}
			return name
		})
		_ = validate.RegisterValidation("role", func(fl validator.FieldLevel) bool {
			_, ok := LookupRole(fl.Field().String())
			return ok
		})
		validate.RegisterStructValidation(func(sl validator.StructLevel) {
			cfg := sl.Current().Interface().(Config)
			if cfg.Domain == "" {
				return
			}
			if !slices.Contains(DomainsFor(cfg.Role), cfg.Domain) {
				sl.ReportError(cfg.Domain, "domain", "Domain", "domain", cfg.Role)
			}
		}, Config{})
	})
	return validate
}

// Validate checks the config against the role catalog and count limits.
// The returned error is a *ConfigurationError naming the first offending field.
func (c Config) Validate() error {
	err := configValidator().Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &ConfigurationError{Message: "invalid interview config", Cause: err}
	}

	fe := verrs[0]
	return &ConfigurationError{
		Field:   fe.Field(),
		Message: describeFieldError(fe),
	}
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "role":
		return fmt.Sprintf("unknown role %q, expected one of %s", fe.Value(), strings.Join(Roles(), ", "))
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "domain":
		return describeDomain(fmt.Sprint(fe.Value()), fe.Param())
	default:
		return fmt.Sprintf("failed %q validation", fe.Tag())
	}
}

func describeDomain(domain, role string) string {
	known := DomainsFor(role)
	msg := fmt.Sprintf("domain %q is not available for role %q", domain, role)
	for _, d := range known {
		if strings.HasPrefix(strings.ToLower(d), strings.ToLower(domain)) {
			msg += fmt.Sprintf(", did you mean %q?", d)
			break
		}
	}
	return msg + fmt.Sprintf(" (expected one of %s)", strings.Join(known, ", "))
}
