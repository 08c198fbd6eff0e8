package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsSectionHeader(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"domain shape", "Study Identification", true},
		{"domain shape outcomes", "Primary Outcomes", true},
		{"qualified shape", "Baseline Characteristics (Continuous: Mean ± SD)", true},
		{"all caps", "METHODS", true},
		{"title case short", "Patient Population Summary", true},
		{"title case too long", "The Quick Brown Fox Jumps Over The Lazy Dog", false},
		{"lowercase sentence", "this is just a sentence", false},
		{"mixed case", "Author notes and comments", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isSectionHeader(tt.text))
		})
	}
}

// A trailing colon always wins over every shape rule.
func TestColonCheckHasPriority(t *testing.T) {
	headers := []string{
		"Study Identification:",
		"METHODS:",
		"Primary Outcomes:",
		"Baseline Characteristics (Continuous: Mean ± SD):",
		"Sample Size:",
	}
	for _, h := range headers {
		assert.False(t, isSectionHeader(h), h)
	}
}

func TestIsUpperCase(t *testing.T) {
	assert.True(t, isUpperCase("METHODS"))
	assert.True(t, isUpperCase("PHASE 3 RESULTS"))
	assert.False(t, isUpperCase("Methods"))
	assert.False(t, isUpperCase("123"))
	assert.False(t, isUpperCase(""))
}

func TestIsTitleCase(t *testing.T) {
	assert.True(t, isTitleCase("Study Design"))
	assert.True(t, isTitleCase("Dosing"))
	assert.False(t, isTitleCase("Study design"))
	assert.False(t, isTitleCase("STUDY DESIGN"))
	assert.False(t, isTitleCase("±"))
}
