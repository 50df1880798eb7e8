package handler

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"eventbook/internal/i18n"
)

// Field length limits.
const (
	nameMinLen  = 2
	nameMaxLen  = 50
	textMinLen  = 3
	titleMinLen = 3
)

// dateTimeFormat matches the datetime-local form input value.
const dateTimeFormat = "2006-01-02T15:04"

var lettersOnlyRe = regexp.MustCompile(`^\p{L}+$`)

// validateName checks a person name field: required, 2 to 50 characters,
// unicode letters only.
func validateName(value, locale string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return i18n.T(locale, "validation.required")
	}
	n := utf8.RuneCountInString(value)
	if n < nameMinLen {
		return i18n.T(locale, "validation.min_length", nameMinLen)
	}
	if n > nameMaxLen {
		return i18n.T(locale, "validation.max_length", nameMaxLen)
	}
	if !lettersOnlyRe.MatchString(value) {
		return i18n.T(locale, "validation.letters_only")
	}
	return ""
}

// validateOptionalText checks an optional free-text field: empty is fine,
// anything present must be at least 3 characters.
func validateOptionalText(value, locale string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	if utf8.RuneCountInString(value) < textMinLen {
		return i18n.T(locale, "validation.min_length", textMinLen)
	}
	return ""
}

// validateTitle checks a title field: required, at least 3 characters.
func validateTitle(value, locale string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return i18n.T(locale, "validation.required")
	}
	if utf8.RuneCountInString(value) < titleMinLen {
		return i18n.T(locale, "validation.min_length", titleMinLen)
	}
	return ""
}

// validateRequired checks that a field has a value.
func validateRequired(value, locale string) string {
	if strings.TrimSpace(value) == "" {
		return i18n.T(locale, "validation.required")
	}
	return ""
}

// parseDateTime parses a datetime-local form value. Returns the zero time
// and a localized message when the value is missing or malformed.
func parseDateTime(value, locale string) (time.Time, string) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, i18n.T(locale, "validation.required")
	}
	t, err := time.ParseInLocation(dateTimeFormat, value, time.Local)
	if err != nil {
		return time.Time{}, i18n.T(locale, "validation.invalid_date")
	}
	return t, ""
}
