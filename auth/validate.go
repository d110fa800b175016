package auth

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// LoginForm is the sign-in form.
type LoginForm struct {
	Email    string `json:"email" validate:"civicemail"`
	Password string `json:"password" validate:"required"`
}

// SignUpForm is the registration form.
type SignUpForm struct {
	Name            string `json:"name" validate:"notblank,max=50"`
	Email           string `json:"email" validate:"civicemail"`
	Password        string `json:"password" validate:"min=6,max=128"`
	ConfirmPassword string `json:"confirmPassword" validate:"eqfield=Password"`
}

// fieldMessages maps field and failed tag to the text shown next to the
// field.
var fieldMessages = map[string]map[string]string{
	"name": {
		"notblank": "Full name is required",
		"max":      "Name must be at most 50 characters",
	},
	"email": {
		"civicemail": "Please enter a valid email address",
	},
	"password": {
		"required": "Password is required",
		"min":      "Password must be at least 6 characters long",
		"max":      "Password is too long",
	},
	"confirmPassword": {
		"eqfield": "Passwords do not match",
	},
}

// ValidationError lists field-level problems found before any provider
// call. Fields are kept in form order.
type ValidationError struct {
	Fields map[string]string
	order  []string
}

// Error returns the message of the first invalid field.
func (e *ValidationError) Error() string {
	if len(e.order) == 0 {
		return "invalid form"
	}
	return e.Fields[e.order[0]]
}

func (e *ValidationError) add(field, message string) {
	if _, seen := e.Fields[field]; seen {
		return
	}
	e.Fields[field] = message
	e.order = append(e.order, field)
}

// Validator checks auth forms.
type Validator struct {
	v *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// Registration only fails for empty tags or nil functions.
	_ = v.RegisterValidation("civicemail", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	return &Validator{v: v}
}

// Struct validates a form and returns a *ValidationError, or nil.
func (v *Validator) Struct(form any) error {
	err := v.v.Struct(form)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	out := &ValidationError{Fields: make(map[string]string)}
	for _, fe := range verrs {
		msg, ok := fieldMessages[fe.Field()][fe.Tag()]
		if !ok {
			msg = "Invalid " + fe.Field()
		}
		out.add(fe.Field(), msg)
	}
	return out
}

// ValidateEmail reports whether email looks like an address.
func ValidateEmail(email string) error {
	if !emailPattern.MatchString(email) {
		return &ValidationError{
			Fields: map[string]string{"email": fieldMessages["email"]["civicemail"]},
			order:  []string{"email"},
		}
	}
	return nil
}

// ValidatePassword enforces the 6..128 character length rule.
func ValidatePassword(password string) error {
	n := len([]rune(password))
	var msg string
	switch {
	case n < 6:
		msg = fieldMessages["password"]["min"]
	case n > 128:
		msg = fieldMessages["password"]["max"]
	default:
		return nil
	}
	return &ValidationError{Fields: map[string]string{"password": msg}, order: []string{"password"}}
}
