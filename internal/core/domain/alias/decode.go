package alias

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Value is a decoded alias value: either OneCommand or ManyCommands.
type Value interface {
	// Commands returns the value normalized to an ordered command list.
	Commands() []string
	isValue()
}

// OneCommand is a value written as a single JSON string.
type OneCommand string

// Commands implements Value.
func (o OneCommand) Commands() []string { return []string{string(o)} }

func (OneCommand) isValue() {}

// ManyCommands is a value written as a JSON array of strings.
type ManyCommands []string

// Commands implements Value.
func (m ManyCommands) Commands() []string { return append([]string(nil), m...) }

func (ManyCommands) isValue() {}

// ErrInvalidValue is wrapped by every Decode failure.
var ErrInvalidValue = errors.New("invalid alias value")

/*
Decode parses raw as JSON into a Value.

Accepted shapes are a non-empty string or a non-empty array of non-empty strings.
Anything else, including text that is not JSON at all, is an error wrapping
ErrInvalidValue; raw is never reinterpreted as a bare command.
*/
func Decode(raw string) (Value, error) {
	trimmed := bytes.TrimSpace([]byte(raw))
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: value is empty", ErrInvalidValue)
	}

	switch trimmed[0] {
	case '"':
		var one string
		if err := json.Unmarshal(trimmed, &one); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidValue, err)
		}
		if one == "" {
			return nil, fmt.Errorf("%w: command is empty", ErrInvalidValue)
		}
		return OneCommand(one), nil
	case '[':
		var many []string
		if err := json.Unmarshal(trimmed, &many); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidValue, err)
		}
		if len(many) == 0 {
			return nil, fmt.Errorf("%w: command list is empty", ErrInvalidValue)
		}
		for i, c := range many {
			if c == "" {
				return nil, fmt.Errorf("%w: command %d is empty", ErrInvalidValue, i+1)
			}
		}
		return ManyCommands(many), nil
	default:
		if !json.Valid(trimmed) {
			return nil, fmt.Errorf("%w: not valid JSON", ErrInvalidValue)
		}
		return nil, fmt.Errorf("%w: expected a string or an array of strings", ErrInvalidValue)
	}
}
