package dto

import (
	"fmt"
	"net/mail"
	"net/url"
	"strings"
	"unicode/utf8"

	apperrors "github.com/ijpettengill/jobly/pkg/util/errorutil"
)

// violations collects field level validation messages keyed by JSON field name.
type violations map[string]any

func (v violations) length(field, value string, min, max int) {
	n := utf8.RuneCountInString(value)
	if n < min || n > max {
		v[field] = fmt.Sprintf("must be between %d and %d characters", min, max)
	}
}

func (v violations) optionalLength(field string, value *string, min, max int) {
	if value != nil {
		v.length(field, *value, min, max)
	}
}

func (v violations) email(field, value string) {
	if _, ok := v[field]; ok {
		return
	}
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value {
		v[field] = "must be a valid email address"
	}
}

func (v violations) uri(field string, value *string) {
	if value == nil {
		return
	}
	u, err := url.ParseRequestURI(*value)
	if err != nil || u.Scheme == "" || u.Host == "" {
		v[field] = "must be an absolute URL"
	}
}

func (v violations) nonNegative(field string, value *int) {
	if value != nil && *value < 0 {
		v[field] = "must be >= 0"
	}
}

func (v violations) fraction(field string, value *float64) {
	if value != nil && (*value < 0 || *value > 1) {
		v[field] = "must be between 0 and 1"
	}
}

func (v violations) err() error {
	if len(v) == 0 {
		return nil
	}
	return apperrors.NewValidationError("invalid payload", map[string]any(v))
}

func trim(s *string) {
	if s != nil {
		*s = strings.TrimSpace(*s)
	}
}
