package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmorel/studyextract/internal/template"
)

func sampleFields() []template.Field {
	return []template.Field{
		{Name: "Author", Description: "First author surname", Section: "Study Identification"},
		{Name: "Year", Section: "Study Identification"},
		{Name: "HbA1c Change", Description: "Mean change from baseline", Section: "Primary Outcomes"},
		{Name: "Country", Section: ""},
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	fields := sampleFields()
	assert.Equal(t, Build(fields), Build(fields))
}

func TestBuildSectionOrderAndBullets(t *testing.T) {
	out := Build(sampleFields())

	idCut := strings.Index(out, "--- Study Identification ---")
	outcomesCut := strings.Index(out, "--- Primary Outcomes ---")
	generalCut := strings.Index(out, "--- General ---")
	require.NotEqual(t, -1, idCut)
	require.NotEqual(t, -1, outcomesCut)
	require.NotEqual(t, -1, generalCut)

	// Sections appear in first-occurrence order.
	assert.Less(t, idCut, outcomesCut)
	assert.Less(t, outcomesCut, generalCut)

	// Described fields get "name: description", bare ones just the name.
	assert.Contains(t, out, "- Author: First author surname\n")
	assert.Contains(t, out, "- Year\n")
	assert.Contains(t, out, "- Country\n")
}

func TestBuildContract(t *testing.T) {
	out := Build(sampleFields())

	assert.Contains(t, out, "use null")
	assert.Contains(t, out, "Do not hallucinate")
	assert.Contains(t, out, "Return ONLY the JSON object")
	assert.True(t, strings.HasSuffix(out, "no preamble."))
}

// Fields without a section land in the General bucket.
func TestBuildEmptySectionBecomesGeneral(t *testing.T) {
	out := Build([]template.Field{{Name: "Country"}})
	assert.Contains(t, out, "--- General ---\n- Country\n")
}
