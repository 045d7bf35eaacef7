package schemas

import _ "embed"

//go:embed intent.schema.json
var intentSchema string

// IntentSchemaJSON returns the embedded intent classification schema.
func IntentSchemaJSON() string {
	return intentSchema
}

// ValidateIntent checks a raw intent-classification payload against the
// embedded schema before the payload is trusted to route a chat message.
func ValidateIntent(jsonContent string) error {
	return ValidateJSONString(intentSchema, jsonContent)
}
