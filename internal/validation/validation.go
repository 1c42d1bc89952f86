// Package validation holds the input-shape checks applied before anything is persisted.
package validation

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/emilythestrangee/blog-platform/backend/internal/apperr"
)

const (
	MinUsernameLength = 3
	MaxUsernameLength = 50
	MinPasswordLength = 6
	MaxTitleLength    = 300
	MaxTagNameLength  = 50
	MaxEmailLength    = 255

	DefaultPageSize = 20
	MaxPageSize     = 100
	MaxPage         = math.MaxInt32
)

var (
	usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	validate        = validator.New()
)

// FieldError describes one rejected input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors collects every violation found in one input.
type Errors []FieldError

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return strings.Join(parts, "; ")
}

// Check records msg against field unless msg is empty.
func (e *Errors) Check(field, msg string) {
	if msg != "" {
		*e = append(*e, FieldError{Field: field, Message: msg})
	}
}

// Err returns nil when nothing was recorded, otherwise a validation error carrying e.
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return apperr.Validation("validation failed", e)
}

// Required rejects empty and whitespace-only values.
func Required(value string) string {
	if strings.TrimSpace(value) == "" {
		return "must not be empty"
	}
	return ""
}

func Username(value string) string {
	n := utf8.RuneCountInString(value)
	switch {
	case n < MinUsernameLength:
		return fmt.Sprintf("must be at least %d characters", MinUsernameLength)
	case n > MaxUsernameLength:
		return fmt.Sprintf("must be at most %d characters", MaxUsernameLength)
	case !usernamePattern.MatchString(value):
		return "may only contain letters, digits, hyphens and underscores"
	}
	return ""
}

func Password(value string) string {
	if utf8.RuneCountInString(value) < MinPasswordLength {
		return fmt.Sprintf("must be at least %d characters", MinPasswordLength)
	}
	return ""
}

func Email(value string) string {
	if len(value) > MaxEmailLength {
		return fmt.Sprintf("must be at most %d characters", MaxEmailLength)
	}
	if err := validate.Var(value, "required,email"); err != nil {
		return "must be a valid email address"
	}
	return ""
}

// Title expects an already trimmed value.
func Title(value string) string {
	if msg := Required(value); msg != "" {
		return msg
	}
	if utf8.RuneCountInString(value) > MaxTitleLength {
		return fmt.Sprintf("must be at most %d characters", MaxTitleLength)
	}
	return ""
}

func TagName(value string) string {
	if msg := Required(value); msg != "" {
		return msg
	}
	if utf8.RuneCountInString(value) > MaxTagNameLength {
		return fmt.Sprintf("must be at most %d characters", MaxTagNameLength)
	}
	return ""
}

// NormalizeTags trims and lowercases names and drops duplicates, keeping first-seen order.
func NormalizeTags(names []string) ([]string, error) {
	var errs Errors
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))

	for i, raw := range names {
		name := strings.ToLower(strings.TrimSpace(raw))
		if msg := TagName(name); msg != "" {
			errs.Check(fmt.Sprintf("tags[%d]", i), msg)
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}

	if err := errs.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Pagination checks a 1-indexed page and a page size between 1 and MaxPageSize.
// Pages whose row offset would not fit in an int are rejected.
func Pagination(page, pageSize int) error {
	var errs Errors
	switch {
	case page < 1:
		errs.Check("page", "must be at least 1")
	case page > MaxPage || (pageSize > 0 && page-1 > math.MaxInt/pageSize):
		errs.Check("page", fmt.Sprintf("must be at most %d", MaxPage))
	}
	if pageSize < 1 || pageSize > MaxPageSize {
		errs.Check("page_size", fmt.Sprintf("must be between 1 and %d", MaxPageSize))
	}
	return errs.Err()
}
