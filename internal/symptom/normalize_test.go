package symptom

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"empty string", "", ""},
		{"already normalized", "headache and fever", "headache and fever"},
		{"uppercase", "Stomach PAIN", "stomach pain"},
		{"punctuation removed", "cough, sore-throat!", "cough sorethroat"},
		{"digits removed", "fever 39C for 2 days", "fever c for  days"},
		{"whitespace kept", "a  b\tc\n", "a  b\tc\n"},
		{"accents folded", "Náusea y DOLOR de estómago", "nausea y dolor de estomago"},
		{"non latin dropped", "头痛 headache", " headache"},
		{"only symbols", "!!!???", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.raw))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		"Stomach pain and nausea!!",
		"COUGH & sore throat (3 days)",
		"Ça fait mal à la tête",
		" fever ",
		strings.Repeat("x1Y2 ", 200),
		"\xff\xfe invalid utf8",
	}

	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "input %q", in)
	}
}

func TestNewQuery(t *testing.T) {
	q := NewQuery("Loose Stool since 2 days")

	assert.Equal(t, "Loose Stool since 2 days", q.Raw)
	assert.Equal(t, "loose stool since  days", q.Normalized)
}
