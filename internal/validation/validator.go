package validation

import (
	"strings"
	"time"
	"unicode/utf8"

	"task-manager/internal/config"
	"task-manager/internal/domain"
)

// DueDateLayouts are the accepted due date inputs, tried in order.
// Layouts without a zone are read in the validator's location.
var DueDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// Validator provides common validation utilities
type Validator struct {
	titleMax       int
	descriptionMax int
	location       *time.Location
}

// NewValidator creates a validator with the default limits
func NewValidator() *Validator {
	return NewValidatorWithConfig(nil)
}

// NewValidatorWithConfig creates a validator using the configured limits
func NewValidatorWithConfig(cfg *config.Config) *Validator {
	v := &Validator{
		titleMax:       100,
		descriptionMax: 500,
		location:       time.Local,
	}
	if cfg != nil {
		v.titleMax = cfg.Validation.TitleMaxLength
		v.descriptionMax = cfg.Validation.DescriptionMaxLength
	}
	return v
}

// WithLocation sets the zone used for due dates given without one
func (v *Validator) WithLocation(loc *time.Location) *Validator {
	v.location = loc
	return v
}

// TitleMaxLength returns the configured title limit in characters
func (v *Validator) TitleMaxLength() int { return v.titleMax }

// DescriptionMaxLength returns the configured description limit in characters
func (v *Validator) DescriptionMaxLength() int { return v.descriptionMax }

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// Truncate cuts s to at most max characters. Characters are runes, so
// multi-byte input is never split mid-character.
func Truncate(s string, max int) string {
	if max < 0 || utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max])
}

// ExceedsLength reports whether s has more than max characters
func ExceedsLength(s string, max int) bool {
	return utf8.RuneCountInString(s) > max
}

// ParseStatus accepts a status in any of the forms domain.ParseStatus knows.
// An empty input means TODO.
func (v *Validator) ParseStatus(s string) (domain.Status, bool) {
	if strings.TrimSpace(s) == "" {
		return domain.StatusTodo, true
	}
	return domain.ParseStatus(s)
}

// ParseDueDate parses a due date. An empty input means no deadline.
func (v *Validator) ParseDueDate(s string) (*time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, true
	}
	for _, layout := range DueDateLayouts {
		if t, err := time.ParseInLocation(layout, s, v.location); err == nil {
			return &t, true
		}
	}
	return nil, false
}

// FormatDueDate renders a due date in the first form ParseDueDate accepts back
func FormatDueDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}
