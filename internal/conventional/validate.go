package conventional

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/gorewood/gitcc/internal/output"
)

var (
	typeNamePattern     = regexp.MustCompile(`^[A-Za-z][\w-]*$`)
	trailerTokenPattern = regexp.MustCompile(`^[\w-]+$`)
)

// NewValidate returns a validator with the custom tags used by Message,
// Type and Options registered. Field names in errors are the json names.
func NewValidate() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
	mustRegister(v, "singleline", func(fl validator.FieldLevel) bool {
		return !strings.ContainsAny(fl.Field().String(), "\r\n")
	})
	mustRegister(v, "typename", func(fl validator.FieldLevel) bool {
		return typeNamePattern.MatchString(fl.Field().String())
	})
	mustRegister(v, "trailertoken", func(fl validator.FieldLevel) bool {
		return trailerTokenPattern.MatchString(fl.Field().String())
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("registering %s validation: %v", tag, err))
	}
}

// Validator checks messages against a type set.
type Validator struct {
	types    TypeSet
	validate *validator.Validate
}

// NewValidator returns a Validator accepting exactly the given types.
// A nil type set falls back to DefaultTypes.
func NewValidator(types TypeSet) *Validator {
	if len(types) == 0 {
		types = DefaultTypes()
	}
	v := NewValidate()
	mustRegister(v, "committype", func(fl validator.FieldLevel) bool {
		_, ok := types.Lookup(fl.Field().String())
		return ok
	})
	return &Validator{types: types, validate: v}
}

// Problems returns a human-readable line per violated rule, or nil.
func (v *Validator) Problems(msg Message) []string {
	err := v.validate.Struct(msg)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []string{err.Error()}
	}
	problems := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		problems = append(problems, v.describe(fe))
	}
	return problems
}

// Validate returns an input error listing every problem, or nil.
func (v *Validator) Validate(msg Message) error {
	problems := v.Problems(msg)
	if len(problems) == 0 {
		return nil
	}
	return output.NewInputError(strings.Join(problems, "; "))
}

func (v *Validator) describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " must not be empty"
	case "committype":
		return fmt.Sprintf("unknown commit type %q (allowed: %s)",
			fe.Value(), strings.Join(v.types.Names(), ", "))
	case "singleline":
		return fe.Field() + " must be a single line"
	case "excludesall":
		return fe.Field() + " must not contain parentheses"
	default:
		return fmt.Sprintf("%s is invalid (%s)", fe.Field(), fe.Tag())
	}
}

// DescribeError turns a validator error from NewValidate into one line,
// for callers validating their own structs (configuration).
func DescribeError(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		parts = append(parts, fmt.Sprintf("%s: failed %q check", fe.Namespace(), fe.Tag()))
	}
	return strings.Join(parts, "; ")
}
