package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateJSONStringValid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "snake_case", doc: `{"job_title": "Backend Engineer", "company": "Acme"}`},
		{name: "camelCase", doc: `{"jobTitle": "Backend Engineer", "company": "Acme"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NoError(t, ValidateJSONString(JobDetails, tt.doc))
		})
	}
}

func TestValidateJSONStringInvalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "missing company", doc: `{"job_title": "Backend Engineer"}`},
		{name: "wrong type", doc: `{"job_title": 42, "company": "Acme"}`},
		{name: "extra field", doc: `{"job_title": "X", "company": "Acme", "salary": "high"}`},
		{name: "empty object", doc: `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateJSONString(JobDetails, tt.doc)
			require.Error(t, err)

			var validationErr *ValidationError
			assert.ErrorAs(t, err, &validationErr)
			assert.NotEmpty(t, validationErr.Errors)
		})
	}
}

func TestValidateJSONStringMalformedDocument(t *testing.T) {
	err := ValidateJSONString(JobDetails, `{not json`)
	require.Error(t, err)

	var loadErr *SchemaLoadError
	assert.ErrorAs(t, err, &loadErr)
}
