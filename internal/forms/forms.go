// Package forms validates the storefront's contact and newsletter submissions.
// Nothing is stored or sent anywhere; a valid form only earns an acknowledgement.
package forms

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

type Contact struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"max=200"`
	Message string `json:"message" validate:"required,max=5000"`
}

type Newsletter struct {
	Email string `json:"email" validate:"required,email"`
}

// AddToCart is the body of the add-to-cart actions
type AddToCart struct {
	BookId   string `json:"bookId"`
	Quantity int    `json:"quantity" validate:"gte=1,lte=99"`
}

// SetQuantity must carry a quantity, an absent one is not taken for zero
type SetQuantity struct {
	Quantity *int `json:"quantity" validate:"required,gte=0,lte=99"`
}

// Error carries a message per invalid field, keyed by its JSON name.
type Error struct {
	Fields map[string]string
}

func (e *Error) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k, v := range e.Fields {
		keys = append(keys, k+" "+v)
	}

	sort.Strings(keys)
	return "validation failed: " + strings.Join(keys, ", ")
}

type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	return &Validator{v: v}
}

// Validate trims string fields of s in place and checks it, returning *Error on invalid input
func (v *Validator) Validate(s any) error {
	trimStrings(s)

	err := v.v.Struct(s)
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return err
	}

	fields := make(map[string]string, len(errs))
	for _, e := range errs {
		fields[e.Field()] = message(e)
	}

	return &Error{Fields: fields}
}

func message(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "max":
		return fmt.Sprintf("must not exceed %s characters", e.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", e.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", e.Param())
	default:
		return "is invalid"
	}
}

func trimStrings(s any) {
	rv := reflect.ValueOf(s)
	if rv.Kind() != reflect.Pointer || rv.Elem().Kind() != reflect.Struct {
		return
	}

	rv = rv.Elem()
	for ix := 0; ix < rv.NumField(); ix++ {
		f := rv.Field(ix)
		if f.Kind() == reflect.String && f.CanSet() {
			f.SetString(strings.TrimSpace(f.String()))
		}
	}
}
