package extraction

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/vagacerta/career-agent/internal/schemas"
)

// decodedDetails is the result of decoding the model's details payload.
type decodedDetails struct {
	Title   string
	Company string
	// Strict is true when the payload conformed to the JSON Schema without
	// needing the lenient pass.
	Strict bool
}

// decodeDetails parses the model's two-field JSON. The payload is first
// checked against the strict schema; on a schema mismatch a lenient pass
// still pulls out whichever of the camelCase/snake_case title keys is
// present. Only non-JSON input is an error.
func decodeDetails(raw string) (*decodedDetails, error) {
	var payload map[string]any
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, &ParseError{Cause: err}
	}

	strict := true
	if err := schemas.ValidateJSONString(schemas.JobDetails, raw); err != nil {
		var validationErr *schemas.ValidationError
		if !errors.As(err, &validationErr) {
			return nil, &ParseError{Cause: err}
		}
		strict = false
	}

	title, ok := payload["jobTitle"].(string)
	if !ok || title == "" {
		title, _ = payload["job_title"].(string)
	}
	company, _ := payload["company"].(string)

	return &decodedDetails{
		Title:   strings.TrimSpace(title),
		Company: strings.TrimSpace(company),
		Strict:  strict,
	}, nil
}
