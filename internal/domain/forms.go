package domain

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// AssessmentAnswer is the answer to one stress-check question.
type AssessmentAnswer string

const (
	AnswerYes   AssessmentAnswer = "Yes"
	AnswerMaybe AssessmentAnswer = "Maybe"
	AnswerNo    AssessmentAnswer = "No"
)

// AssessmentOptions lists the answers in the order they are offered.
var AssessmentOptions = []AssessmentAnswer{AnswerYes, AnswerMaybe, AnswerNo}

// AssessmentQuestions are the fixed stress-check questions.
var AssessmentQuestions = []string{
	"Do you often feel overwhelmed by your daily workload?",
	"Do you have trouble sleeping due to racing thoughts?",
	"Do you find it difficult to relax even when off duty?",
}

// Assessment holds the answers given so far, indexed like AssessmentQuestions.
type Assessment struct {
	Answers map[int]AssessmentAnswer
}

// NewAssessment returns an unanswered assessment.
func NewAssessment() *Assessment {
	return &Assessment{Answers: make(map[int]AssessmentAnswer)}
}

// Answer records the answer for a question. Out-of-range questions are ignored.
func (a *Assessment) Answer(question int, answer AssessmentAnswer) {
	if question < 0 || question >= len(AssessmentQuestions) {
		return
	}
	a.Answers[question] = answer
}

// IsComplete returns true once every question has an answer.
func (a *Assessment) IsComplete() bool {
	if a == nil {
		return false
	}
	for i := range AssessmentQuestions {
		if _, ok := a.Answers[i]; !ok {
			return false
		}
	}
	return true
}

// LoginForm is the cosmetic login form. Credentials are never verified.
type LoginForm struct {
	Email    string
	Password string
}

// IsComplete returns true when both fields are filled.
func (f LoginForm) IsComplete() bool {
	return strings.TrimSpace(f.Email) != "" && f.Password != ""
}

// RegistrationForm collects the cosmetic profile details.
type RegistrationForm struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
}

// IsComplete returns true when all fields are filled and the passwords match.
func (f RegistrationForm) IsComplete() bool {
	return strings.TrimSpace(f.Name) != "" &&
		strings.TrimSpace(f.Email) != "" &&
		f.Password != "" &&
		f.Password == f.ConfirmPassword
}

// Profile is the in-memory result of registration. Only a hash of the
// password is kept.
type Profile struct {
	Name         string
	Email        string
	PasswordHash []byte
	CreatedAt    time.Time
}

// NewProfile builds a profile from a completed registration form.
func NewProfile(f RegistrationForm) (*Profile, error) {
	if !f.IsComplete() {
		return nil, ErrIncompleteForm
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(f.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	return &Profile{
		Name:         strings.TrimSpace(f.Name),
		Email:        strings.TrimSpace(f.Email),
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}, nil
}

// FirstName returns the first word of the profile name, used in greetings.
func (p *Profile) FirstName() string {
	if p == nil {
		return ""
	}
	fields := strings.Fields(p.Name)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
