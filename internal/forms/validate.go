package forms

import (
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

var ErrInvalid = errors.New("invalid form")

// InvalidError names the form fields that failed validation.
type InvalidError struct {
	Fields []string
}

func (e *InvalidError) Error() string {
	return "invalid form, bad fields: " + strings.Join(e.Fields, ", ")
}

func (e *InvalidError) Is(target error) bool {
	return target == ErrInvalid
}

var (
	once     sync.Once
	validate *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		validate = validator.New()
		validate.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("form"), ",", 2)[0]
			if name == "" || name == "-" {
				return field.Name
			}
			return name
		})
	})
	return validate
}

// Validate checks form against its `validate` tags.
func Validate(form interface{}) error {
	err := instance().Struct(form)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return err
	}

	fields := make([]string, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		fields = append(fields, fe.Field())
	}
	return &InvalidError{Fields: fields}
}
