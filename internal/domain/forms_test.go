package domain

import (
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestAssessment_IsComplete(t *testing.T) {
	a := NewAssessment()
	if a.IsComplete() {
		t.Error("empty assessment should not be complete")
	}

	a.Answer(0, AnswerYes)
	a.Answer(1, AnswerNo)
	if a.IsComplete() {
		t.Error("partially answered assessment should not be complete")
	}

	a.Answer(7, AnswerMaybe)
	if a.IsComplete() {
		t.Error("out-of-range answer should not complete the assessment")
	}

	a.Answer(2, AnswerMaybe)
	if !a.IsComplete() {
		t.Error("fully answered assessment should be complete")
	}

	var nilAssessment *Assessment
	if nilAssessment.IsComplete() {
		t.Error("nil assessment should not be complete")
	}
}

func TestRegistrationForm_IsComplete(t *testing.T) {
	tests := []struct {
		name string
		form RegistrationForm
		want bool
	}{
		{"complete", RegistrationForm{"Ana", "ana@example.com", "pw", "pw"}, true},
		{"missing name", RegistrationForm{"", "ana@example.com", "pw", "pw"}, false},
		{"blank email", RegistrationForm{"Ana", "  ", "pw", "pw"}, false},
		{"mismatch", RegistrationForm{"Ana", "ana@example.com", "pw", "px"}, false},
		{"no password", RegistrationForm{"Ana", "ana@example.com", "", ""}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.form.IsComplete(); got != tt.want {
				t.Errorf("IsComplete() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLoginForm_IsComplete(t *testing.T) {
	if (LoginForm{Email: "a@b.c"}).IsComplete() {
		t.Error("login without password should not be complete")
	}
	if !(LoginForm{Email: "a@b.c", Password: "x"}).IsComplete() {
		t.Error("login with both fields should be complete")
	}
}

func TestNewProfile(t *testing.T) {
	p, err := NewProfile(RegistrationForm{"Ana Lima", " ana@example.com ", "secret", "secret"})
	if err != nil {
		t.Fatalf("NewProfile() error = %v", err)
	}
	if p.FirstName() != "Ana" {
		t.Errorf("FirstName() = %q, want Ana", p.FirstName())
	}
	if p.Email != "ana@example.com" {
		t.Errorf("Email = %q, want trimmed", p.Email)
	}
	if string(p.PasswordHash) == "secret" {
		t.Fatal("password stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword(p.PasswordHash, []byte("secret")); err != nil {
		t.Errorf("hash does not match password: %v", err)
	}

	_, err = NewProfile(RegistrationForm{Name: "Ana"})
	if !errors.Is(err, ErrIncompleteForm) {
		t.Errorf("NewProfile() error = %v, want ErrIncompleteForm", err)
	}
}
