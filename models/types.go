package models

import (
	"strings"
	"time"
)

// QuestionType is the declared input type of a question
type QuestionType string

// Question type constants
const (
	TypeText     QuestionType = "text"
	TypeEmail    QuestionType = "email"
	TypeTextarea QuestionType = "textarea"
	TypeRadio    QuestionType = "radio"
	TypeCheckbox QuestionType = "checkbox"
	TypeDate     QuestionType = "date"
	TypePhone    QuestionType = "phone"
)

// QuestionTypes lists every supported type in builder menu order
var QuestionTypes = []QuestionType{
	TypeText, TypeEmail, TypeTextarea, TypeRadio, TypeCheckbox, TypeDate, TypePhone,
}

// Valid reports whether t is one of the supported question types
func (t QuestionType) Valid() bool {
	for _, known := range QuestionTypes {
		if t == known {
			return true
		}
	}
	return false
}

// HasOptions reports whether questions of this type carry options
func (t QuestionType) HasOptions() bool {
	return t == TypeRadio || t == TypeCheckbox
}

// Label is the human-readable name shown in menus
func (t QuestionType) Label() string {
	switch t {
	case TypeText:
		return "Short Text"
	case TypeEmail:
		return "Email"
	case TypeTextarea:
		return "Long Text"
	case TypeRadio:
		return "Multiple Choice"
	case TypeCheckbox:
		return "Checkboxes"
	case TypeDate:
		return "Date"
	case TypePhone:
		return "Phone Number"
	}
	return string(t)
}

// Domain types

type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

type Option struct {
	ID    string `json:"id" yaml:"id"`
	Label string `json:"label" yaml:"label"`
}

type Question struct {
	ID          string       `json:"id" yaml:"id"`
	Type        QuestionType `json:"type" yaml:"type"`
	Title       string       `json:"title" yaml:"title"`
	Placeholder string       `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Required    bool         `json:"required" yaml:"required"`
	Options     []Option     `json:"options,omitempty" yaml:"options,omitempty"`
}

// Clone returns a deep copy so callers can't alias the options slice
func (q Question) Clone() Question {
	if q.Options != nil {
		q.Options = append([]Option(nil), q.Options...)
	}
	return q
}

// Option looks up an option by id
func (q Question) Option(id string) (Option, bool) {
	for _, o := range q.Options {
		if o.ID == id {
			return o, true
		}
	}
	return Option{}, false
}

type Form struct {
	ID          string     `json:"id"`
	UserID      string     `json:"userId,omitempty"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Questions   []Question `json:"questions"`
	ShareURL    string     `json:"shareUrl,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// Question looks up a question by id
func (f Form) Question(id string) (Question, bool) {
	for _, q := range f.Questions {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}

// FormResponse is one respondent's answers. Never mutated after creation.
type FormResponse struct {
	ID          string            `json:"id"`
	FormID      string            `json:"formId"`
	Data        map[string]Answer `json:"data"`
	SubmittedAt time.Time         `json:"submittedAt"`
}

// ShareLink builds the public fill-out link for a form
func ShareLink(origin, formID string) string {
	return strings.TrimRight(origin, "/") + "/form/" + formID
}

// Request types

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// FormInput is the body of POST /forms and PUT /forms/{id}.
// Questions are always sent whole; the service never diffs.
type FormInput struct {
	Title       string     `json:"title" yaml:"title"`
	Description string     `json:"description" yaml:"description"`
	Questions   []Question `json:"questions" yaml:"questions"`
}

type SubmitResponseRequest struct {
	FormID string            `json:"formId"`
	Data   map[string]Answer `json:"data"`
}

// Response types

type AuthResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token,omitempty"`
	User    *User  `json:"user,omitempty"`
	Message string `json:"message,omitempty"`
}

type FormEnvelope struct {
	Success bool `json:"success"`
	Data    Form `json:"data"`
}

type FormListEnvelope struct {
	Success bool   `json:"success"`
	Data    []Form `json:"data"`
}

type ResponseEnvelope struct {
	Success bool         `json:"success"`
	Data    FormResponse `json:"data"`
}

type ResponseListEnvelope struct {
	Success bool           `json:"success"`
	Data    []FormResponse `json:"data"`
}

type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// Error response

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
