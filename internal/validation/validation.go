package validation

import (
	"net/url"
	"strings"
	"unicode/utf16"

	"medrec/internal/recommend"
)

// Symptom text length limits, counted in UTF-16 code units as browser
// clients count them.
const (
	MinSymptomsLength = 3
	MaxSymptomsLength = 1000
)

// Reason codes carried by validation errors.
const (
	ReasonMissingOrWrongType = "missing-or-wrong-type"
	ReasonTooShort           = "too-short"
	ReasonTooLong            = "too-long"
)

// Caller-facing validation messages.
const (
	MsgMissingOrWrongType = "Symptoms are required and must be a string"
	MsgTooShort           = "Symptoms must be at least 3 characters long"
	MsgTooLong            = "Symptoms text is too long (max 1000 characters)"
)

// ValidateSymptoms checks a decoded "symptoms" field and returns it trimmed.
// Checks run in order and stop at the first failure: present non-empty
// string, trimmed length >= MinSymptomsLength, untrimmed length <=
// MaxSymptomsLength. Failures match recommend.ErrInvalidInput.
func ValidateSymptoms(value any) (string, error) {
	s, ok := value.(string)
	if !ok || s == "" {
		return "", recommend.NewError(recommend.ErrInvalidInput, ReasonMissingOrWrongType, MsgMissingOrWrongType)
	}

	trimmed := strings.TrimSpace(s)
	if textLength(trimmed) < MinSymptomsLength {
		return "", recommend.NewError(recommend.ErrInvalidInput, ReasonTooShort, MsgTooShort)
	}

	if textLength(s) > MaxSymptomsLength {
		return "", recommend.NewError(recommend.ErrInvalidInput, ReasonTooLong, MsgTooLong)
	}

	return trimmed, nil
}

// textLength returns the length of s in UTF-16 code units. Characters outside
// the Basic Multilingual Plane, such as most emoji, count twice.
func textLength(s string) int {
	n := 0
	for _, r := range s {
		if utf16.RuneLen(r) == 2 {
			n += 2
			continue
		}
		n++
	}
	return n
}

// ValidateServiceURL checks that urlStr is an absolute http or https URL
// with a host. Used for the allowed CORS origin and the scoring service URL.
func ValidateServiceURL(urlStr string) (bool, string) {
	if urlStr == "" {
		return false, "URL is required"
	}

	u, err := url.Parse(urlStr)
	if err != nil {
		return false, "Invalid URL format"
	}

	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return false, "URL must use http:// or https:// scheme"
	}

	if u.Host == "" {
		return false, "URL must have a valid host"
	}

	return true, ""
}
