package auth

import (
	"errors"
	"strings"
	"testing"
)

func TestMessageNeverLeaksCodes(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{newError(CodeInvalidEmail, nil), "Please enter a valid email address"},
		{newError(CodeUserNotFound, nil), "No account found with this email address"},
		{newError(CodeWrongPassword, nil), "Incorrect password. Please try again"},
		{newError(CodeEmailInUse, nil), "An account with this email already exists"},
		{newError(CodeWeakPassword, nil), "Password is too weak. Please choose a stronger password (at least 6 characters)"},
		{newError(CodeTooManyRequests, nil), "Too many failed attempts. Please try again later"},
		{newError(CodeNetwork, errors.New("dial tcp: refused")), "Network error. Please check your internet connection"},
		{newError(CodeUserDisabled, nil), "This account has been disabled"},
		{newError(CodeOperationNotAllowed, nil), "Email/password sign-in is not enabled for this app"},
		{errors.New("auth/internal-error"), "An error occurred. Please try again"},
		{&Error{Code: "auth/quota-exceeded"}, "An error occurred. Please try again"},
	}
	for _, tt := range tests {
		got := Message(tt.err)
		if got != tt.want {
			t.Errorf("Message(%v) = %q, want %q", tt.err, got, tt.want)
		}
		if strings.Contains(got, "auth/") {
			t.Errorf("Message(%v) leaks a provider code: %q", tt.err, got)
		}
	}
}

func TestCodeOfWrapped(t *testing.T) {
	err := errors.Join(errors.New("context"), newError(CodeUserDisabled, nil))
	if got := CodeOf(err); got != CodeUserDisabled {
		t.Errorf("CodeOf = %q, want %q", got, CodeUserDisabled)
	}
}

func TestSignUpFormValidation(t *testing.T) {
	v := NewValidator()

	err := v.Struct(SignUpForm{Name: "  ", Email: "bad", Password: "123", ConfirmPassword: "124"})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Struct err = %v, want *ValidationError", err)
	}
	want := map[string]string{
		"name":            "Full name is required",
		"email":           "Please enter a valid email address",
		"password":        "Password must be at least 6 characters long",
		"confirmPassword": "Passwords do not match",
	}
	for field, msg := range want {
		if verr.Fields[field] != msg {
			t.Errorf("Fields[%q] = %q, want %q", field, verr.Fields[field], msg)
		}
	}
	if verr.Error() != "Full name is required" {
		t.Errorf("Error() = %q, want the first field's message", verr.Error())
	}

	ok := SignUpForm{Name: "Ada", Email: "ada@example.com", Password: "secret1", ConfirmPassword: "secret1"}
	if err := v.Struct(ok); err != nil {
		t.Errorf("valid form rejected: %v", err)
	}
}

func TestLoginFormValidation(t *testing.T) {
	v := NewValidator()
	err := v.Struct(LoginForm{Email: "sarah@example.com"})
	if err == nil || err.Error() != "Password is required" {
		t.Errorf("Struct err = %v, want password required", err)
	}
}

func TestValidateEmail(t *testing.T) {
	for _, email := range []string{"a@b.co", "first.last@city.gov", "x@y.z"} {
		if err := ValidateEmail(email); err != nil {
			t.Errorf("ValidateEmail(%q) = %v", email, err)
		}
	}
	for _, email := range []string{"", "plain", "a@b", "a b@c.d", "@b.co", "a@.co x"} {
		if err := ValidateEmail(email); err == nil {
			t.Errorf("ValidateEmail(%q) accepted", email)
		}
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		password string
		want     string
	}{
		{"12345", "Password must be at least 6 characters long"},
		{"123456", ""},
		{strings.Repeat("a", 128), ""},
		{strings.Repeat("a", 129), "Password is too long"},
	}
	for _, tt := range tests {
		err := ValidatePassword(tt.password)
		got := ""
		if err != nil {
			got = err.Error()
		}
		if got != tt.want {
			t.Errorf("ValidatePassword(len %d) = %q, want %q", len(tt.password), got, tt.want)
		}
	}
}
