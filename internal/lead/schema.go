package lead

import (
	"strings"

	"github.com/xeipuuv/gojsonschema"

	commonerrors "adf-relay/internal/common/errors"
)

// Shape contract for one webhook payload. Everything is optional, but a key
// that is present must carry the expected type; unknown keys pass through.
const payloadSchema = `{
	"type": "object",
	"properties": {
		"id":          {"type": ["string", "number"]},
		"firstName":   {"type": "string"},
		"lastName":    {"type": "string"},
		"phone":       {"type": "string"},
		"homePhone":   {"type": "string"},
		"mobilePhone": {"type": "string"},
		"workPhone":   {"type": "string"},
		"email":       {"type": "string"},
		"address1":    {"type": "string"},
		"city":        {"type": "string"},
		"state":       {"type": "string"},
		"postalCode":  {"type": "string"},
		"vehicleOfInterest": {"type": "object"},
		"tags":        {"type": "array", "items": {"type": "string"}},
		"Contact Source": {"type": "string"},
		"source":      {"type": "string"},
		"comments":    {"type": "string"},
		"notes":       {"type": "string"},
		"AI Memory":   {"type": "string"},
		"dateAdded":   {"type": "string"}
	},
	"additionalProperties": true
}`

var schemaLoader = gojsonschema.NewStringLoader(payloadSchema)

// ValidatePayload checks that the raw webhook body is a JSON object with
// correctly typed lead fields. It returns a REQUEST_SHAPE_INVALID error with
// every violation listed.
func ValidatePayload(body []byte) error {
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(body))
	if err != nil {
		return commonerrors.NewRequestShapeInvalidError("invalid JSON: " + err.Error())
	}

	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return commonerrors.NewRequestShapeInvalidError(strings.Join(msgs, "; "))
	}

	return nil
}
