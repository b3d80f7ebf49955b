package schemas

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validResult = `{
	"report": {
		"searchability": {"issues": 0, "tips": [{"name": "contact", "status": "pass", "message": "ok"}]},
		"hardSkills": {"issues": 1, "skills": [{"skill": "Go", "resumeCount": -1, "jdCount": 3}]},
		"softSkills": {"issues": 0, "skills": []},
		"recruiterTips": {"issues": 0, "tips": [{"name": "metrics", "status": "warning", "message": "add numbers"}]}
	},
	"optimizedResume": "rewritten resume text"
}`

func TestValidateAnalysisResult_Valid(t *testing.T) {
	assert.NoError(t, ValidateAnalysisResult(validResult))
}

func TestValidateAnalysisResult_MissingSection(t *testing.T) {
	doc := `{
		"report": {
			"searchability": {"issues": 0, "tips": []},
			"hardSkills": {"issues": 0, "skills": []},
			"softSkills": {"issues": 0, "skills": []}
		},
		"optimizedResume": "text"
	}`

	err := ValidateAnalysisResult(doc)
	require.Error(t, err)

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.NotEmpty(t, validationErr.Errors)
	assert.Contains(t, err.Error(), "recruiterTips")
}

func TestValidateAnalysisResult_UnknownStatus(t *testing.T) {
	doc := `{
		"report": {
			"searchability": {"issues": 0, "tips": [{"name": "contact", "status": "maybe", "message": "?"}]},
			"hardSkills": {"issues": 0, "skills": []},
			"softSkills": {"issues": 0, "skills": []},
			"recruiterTips": {"issues": 0, "tips": []}
		},
		"optimizedResume": "text"
	}`

	err := ValidateAnalysisResult(doc)
	require.Error(t, err)

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
}

func TestValidateAnalysisResult_MissingOptimizedResume(t *testing.T) {
	doc := `{
		"report": {
			"searchability": {"issues": 0, "tips": []},
			"hardSkills": {"issues": 0, "skills": []},
			"softSkills": {"issues": 0, "skills": []},
			"recruiterTips": {"issues": 0, "tips": []}
		}
	}`

	err := ValidateAnalysisResult(doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "optimizedResume")
}

func TestValidateAnalysisResult_MalformedJSON(t *testing.T) {
	err := ValidateAnalysisResult(`{"report": `)
	require.Error(t, err)

	var loadErr *SchemaLoadError
	require.True(t, errors.As(err, &loadErr))
}

func TestValidateJSONString_InvalidSchema(t *testing.T) {
	err := ValidateJSONString(`{"type": `, `{}`)
	require.Error(t, err)

	var loadErr *SchemaLoadError
	require.True(t, errors.As(err, &loadErr))
}
