package storage

import (
	"encoding/json"
	"fmt"
)

// schemaVersion tags every persisted payload so future readers can detect
// and migrate old rows.
const schemaVersion = 1

type envelope struct {
	Schema int             `json:"schema"`
	Data   json.RawMessage `json:"data"`
}

func encodePayload(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("storage: encode payload: %w", err)
	}
	return json.Marshal(envelope{Schema: schemaVersion, Data: data})
}

func decodePayload(raw []byte, v any) error {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("storage: decode envelope: %w", err)
	}
	if env.Schema != schemaVersion {
		return fmt.Errorf("storage: unsupported payload schema %d, want %d", env.Schema, schemaVersion)
	}
	if err := json.Unmarshal(env.Data, v); err != nil {
		return fmt.Errorf("storage: decode payload: %w", err)
	}
	return nil
}
