/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package dnd

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	gojsonschema "github.com/xeipuuv/gojsonschema"

	"pagebuilder/internal/domain"
)

// ErrInvalidPayload is returned for drag payloads that do not match the schema.
var ErrInvalidPayload = errors.New("invalid drag payload")

// Payload is everything a drag carries: the archetype tag and nothing else.
type Payload struct {
	Archetype domain.Archetype `json:"archetype"`
}

// payloadSchema pins the wire shape: one required tag from the palette, no extras.
const payloadSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "archetype": {"type": "string", "enum": ["text", "image"]}
  },
  "required": ["archetype"],
  "additionalProperties": false
}`

var compiledSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	return gojsonschema.NewSchema(gojsonschema.NewStringLoader(payloadSchema))
})

// EncodePayload renders p in its wire form, e.g. {"archetype":"text"}.
func EncodePayload(p Payload) ([]byte, error) {
	if !p.Archetype.Valid() {
		return nil, fmt.Errorf("%w: unknown archetype %q", ErrInvalidPayload, p.Archetype)
	}
	return json.Marshal(p)
}

// DecodePayload validates raw against the payload schema and decodes it.
func DecodePayload(raw []byte) (Payload, error) {
	schema, err := compiledSchema()
	if err != nil {
		return Payload{}, fmt.Errorf("compile payload schema: %w", err)
	}
	res, err := schema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return Payload{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if !res.Valid() {
		msgs := make([]string, 0, len(res.Errors()))
		for _, e := range res.Errors() {
			msgs = append(msgs, e.String())
		}
		return Payload{}, fmt.Errorf("%w: %s", ErrInvalidPayload, strings.Join(msgs, "; "))
	}
	var p Payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return Payload{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return p, nil
}
