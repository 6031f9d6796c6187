package transcript

import (
	"encoding/json"
	"fmt"
	"os"
)

// MarshalJSON encodes an entry as the four-element tuple
// [speaker, start, end, text].
func (e Entry) MarshalJSON() ([]byte, error) {
	return json.Marshal([]interface{}{e.Speaker, e.Start, e.End, e.Text})
}

// UnmarshalJSON decodes an entry from the four-element tuple layout.
func (e *Entry) UnmarshalJSON(data []byte) error {
	var tuple []json.RawMessage
	if err := json.Unmarshal(data, &tuple); err != nil {
		return fmt.Errorf("transcript entry is not a JSON array: %w", err)
	}
	if len(tuple) != 4 {
		return fmt.Errorf("transcript entry has %d elements, want 4", len(tuple))
	}

	if err := json.Unmarshal(tuple[0], &e.Speaker); err != nil {
		return fmt.Errorf("transcript entry speaker: %w", err)
	}
	if err := json.Unmarshal(tuple[1], &e.Start); err != nil {
		return fmt.Errorf("transcript entry start time: %w", err)
	}
	if err := json.Unmarshal(tuple[2], &e.End); err != nil {
		return fmt.Errorf("transcript entry end time: %w", err)
	}
	if err := json.Unmarshal(tuple[3], &e.Text); err != nil {
		return fmt.Errorf("transcript entry text: %w", err)
	}
	return nil
}

// Load reads a transcript JSON file in the tuple layout.
func Load(path string) (Transcript, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read transcript file: %w", err)
	}

	var t Transcript
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to parse transcript %s: %w", path, err)
	}
	return t, nil
}

// Save writes a transcript JSON file in the tuple layout.
func Save(path string, t Transcript) error {
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode transcript: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write transcript %s: %w", path, err)
	}
	return nil
}
