package schemas

import (
	"testing"

	"github.com/jonathan/resume-matcher/schemas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateResponse_Search(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"jobs list", `{"jobs": [{"title": "Engineer", "company": "Acme"}]}`, false},
		{"empty jobs", `{"jobs": []}`, false},
		{"null jobs with error", `{"jobs": null, "error": "quota exceeded"}`, false},
		{"missing fields", `{}`, false},
		{"null optional fields", `{"jobs": [{"title": null, "apply_link": null}]}`, false},
		{"jobs is object", `{"jobs": {"title": "Engineer"}}`, true},
		{"title is number", `{"jobs": [{"title": 42}]}`, true},
		{"error is object", `{"error": {"detail": "x"}}`, true},
		{"body is array", `[]`, true},
		{"not json", `<html>Bad Gateway</html>`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateResponse(schemas.SearchResponse, []byte(tt.body))
			if tt.wantErr {
				require.Error(t, err)
				var validationErr *ValidationError
				require.ErrorAs(t, err, &validationErr)
				assert.NotEmpty(t, validationErr.Errors)
				assert.Equal(t, schemas.SearchResponse, validationErr.Schema)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateResponse_Match(t *testing.T) {
	assert.NoError(t, ValidateResponse(schemas.MatchResponse, []byte(`{"matches": [{"title": "Analyst", "score": 87}]}`)))
	assert.NoError(t, ValidateResponse(schemas.MatchResponse, []byte(`{"matches": [{"score": "72"}]}`)))

	err := ValidateResponse(schemas.MatchResponse, []byte(`{"matches": [{"score": true}]}`))
	require.Error(t, err)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Error(), "matches.0.score")
	assert.Contains(t, validationErr.Summary(), "unexpected response")
}

func TestValidateResponse_UnknownSchema(t *testing.T) {
	err := ValidateResponse("missing.schema.json", []byte(`{}`))
	require.Error(t, err)

	var loadErr *SchemaLoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Contains(t, err.Error(), "missing.schema.json")
}

func TestValidationError_SummaryEmpty(t *testing.T) {
	ve := &ValidationError{}
	assert.Equal(t, "response did not match the expected shape", ve.Summary())
}
