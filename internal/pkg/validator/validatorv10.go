package validator

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/samber/lo"
)

// ErrTranslatorNotFound indicates the requested translator is unavailable.
var ErrTranslatorNotFound = errors.New("translator not found")

// V10Validator implements Validator using go-playground/validator v10.
type V10Validator struct {
	validate   *validator.Validate
	translator ut.Translator
}

// V10ValidationError maps snake_case field names to messages.
type V10ValidationError map[string]string

// Error implements the error interface.
func (vs V10ValidationError) Error() string {
	if len(vs) == 0 {
		return "validation error"
	}

	b, err := json.Marshal(vs)
	if err != nil {
		return fmt.Sprintf("validation error (failed to marshal: %v)", err)
	}
	return string(b)
}

// Values returns the field error map.
func (vs V10ValidationError) Values() map[string]string {
	return vs
}

// NewV10Validator constructs a V10Validator with English translations and custom rules.
func NewV10Validator() (*V10Validator, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())

	enLang := en.New()
	uni := ut.New(enLang, enLang)
	enTrans, ok := uni.GetTranslator("en")
	if !ok {
		return nil, ErrTranslatorNotFound
	}

	if err := enTranslations.RegisterDefaultTranslations(validate, enTrans); err != nil {
		return nil, err
	}

	if err := v10CustomValidation(validate, enTrans); err != nil {
		return nil, err
	}

	return &V10Validator{
		validate:   validate,
		translator: enTrans,
	}, nil
}

// Validate validates a struct and returns a V10ValidationError on failure.
func (v *V10Validator) Validate(data any) error {
	if err := v.validate.Struct(data); err != nil {
		var validateErrs validator.ValidationErrors
		if !errors.As(err, &validateErrs) {
			return err
		}

		errV10 := make(V10ValidationError)
		for _, fe := range validateErrs {
			errV10[lo.SnakeCase(fe.Field())] = fe.Translate(v.translator)
		}

		return errV10
	}

	return nil
}

func v10CustomValidation(validate *validator.Validate, enTrans ut.Translator) error {
	// contenttype accepts anything mime can parse, e.g. "text/html; charset=utf-8".
	err := validate.RegisterValidation("contenttype", func(fl validator.FieldLevel) bool {
		s, ok := fl.Field().Interface().(string)
		if !ok {
			return false
		}
		_, _, err := mime.ParseMediaType(s)
		return err == nil
	})
	if err != nil {
		return err
	}

	// addresslist accepts a comma separated list with at least one non-blank entry.
	err = validate.RegisterValidation("addresslist", func(fl validator.FieldLevel) bool {
		s, ok := fl.Field().Interface().(string)
		if !ok {
			return false
		}
		return lo.SomeBy(strings.Split(s, ","), func(p string) bool {
			return strings.TrimSpace(p) != ""
		})
	})
	if err != nil {
		return err
	}

	for tag, text := range map[string]string{
		"contenttype": "{0} must be a valid MIME content type",
		"addresslist": "{0} must contain at least one address",
	} {
		err := validate.RegisterTranslation(tag, enTrans,
			func(ut ut.Translator) error {
				return ut.Add(tag, text, false)
			},
			func(ut ut.Translator, fe validator.FieldError) string {
				t, err := ut.T(fe.Tag(), fe.Field())
				if err != nil {
					slog.Warn("warning: error translating", "FieldError", fe, "error", err)
					return fe.Error()
				}
				return t
			},
		)
		if err != nil {
			return err
		}
	}

	return nil
}
