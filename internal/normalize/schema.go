// SPDX-License-Identifier: Apache-2.0

package normalize

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

//go:embed schema.cue
var schemaSource string

const schemaDefinition = "#Company"

// Validator checks Records against the CUE definition of the output schema
// before they are handed to a sink.
type Validator struct {
	ctx    *cue.Context
	schema cue.Value
}

// NewValidator compiles the embedded schema.
func NewValidator() (*Validator, error) {
	ctx := cuecontext.New()
	compiled := ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := compiled.Err(); err != nil {
		return nil, fmt.Errorf("failed to compile output schema: %w", err)
	}
	def := compiled.LookupPath(cue.ParsePath(schemaDefinition))
	if !def.Exists() {
		return nil, fmt.Errorf("output schema has no %s definition", schemaDefinition)
	}
	return &Validator{ctx: ctx, schema: def}, nil
}

// Validate reports whether record, as serialized, satisfies the schema.
func (v *Validator) Validate(record Record) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}
	value := v.ctx.CompileBytes(data, cue.Filename("record.json"))
	if err := value.Err(); err != nil {
		return fmt.Errorf("failed to load record %s: %w", record.SourceID, err)
	}
	if err := v.schema.Unify(value).Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("record %s does not match output schema: %w", record.SourceID, err)
	}
	return nil
}
