// Package convert owns payload (de)serialization at the client boundary.
//
// Ownership boundary:
// - body encoding for outgoing requests
// - body decoding for incoming responses
//
// It does not own transport framing or action field mapping.
package convert

import (
	"encoding/json"
	"errors"
	"fmt"
)

var ErrNilTarget = errors.New("convert: nil decode target")

// Converter encodes request body values and decodes response bodies.
// Implementations must be safe for concurrent use.
type Converter interface {
	// Encode serializes v and reports the content type of the result.
	Encode(v any) ([]byte, string, error)
	// Decode deserializes data into target, which must be a non-nil pointer.
	Decode(data []byte, target any) error
}

// JSON is the stock Converter.
type JSON struct {
	Indent bool
}

func (j JSON) Encode(v any) ([]byte, string, error) {
	var (
		data []byte
		err  error
	)
	if j.Indent {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return nil, "", fmt.Errorf("convert: encode json: %w", err)
	}
	return data, "application/json", nil
}

func (j JSON) Decode(data []byte, target any) error {
	if target == nil {
		return ErrNilTarget
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("convert: decode json: %w", err)
	}
	return nil
}
