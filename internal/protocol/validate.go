package protocol

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Validator checks raw inbound payloads against the checked-in command
// schema before the envelope is decoded. Compile once at startup; Validate is
// safe for concurrent use.
type Validator struct {
	schema *jsonschema.Schema
}

// NewValidator compiles the schema at the given path.
func NewValidator(schemaPath string) (*Validator, error) {
	schema, err := jsonschema.Compile(schemaPath)
	if err != nil {
		return nil, fmt.Errorf("compile command schema: %w", err)
	}
	return &Validator{schema: schema}, nil
}

// Validate checks a raw JSON payload against the schema. A non-nil error
// means the payload must be rejected without dispatching.
func (v *Validator) Validate(raw []byte) error {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("decode command: %w", err)
	}
	if err := v.schema.Validate(doc); err != nil {
		return fmt.Errorf("command schema: %w", err)
	}
	return nil
}

// DecodeCommand parses a validated payload into the envelope.
func DecodeCommand(raw []byte) (Command, error) {
	var cmd Command
	if err := json.Unmarshal(raw, &cmd); err != nil {
		return Command{}, fmt.Errorf("decode command: %w", err)
	}
	if cmd.Type == "" {
		return Command{}, fmt.Errorf("decode command: missing type")
	}
	return cmd, nil
}
