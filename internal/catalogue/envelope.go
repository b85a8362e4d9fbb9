package catalogue

import (
	"bytes"
	"encoding/json"
)

// unwrapData returns the payload of a {"data": ...} envelope, or the body
// unchanged when it is not wrapped.
func unwrapData(body []byte) json.RawMessage {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return trimmed
	}

	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(trimmed, &env); err != nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return trimmed
	}
	return env.Data
}
