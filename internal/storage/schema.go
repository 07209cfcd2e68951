/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package storage

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed deck.schema.json
var deckSchemaJSON []byte

var (
	schemaOnce sync.Once
	deckSchema *gojsonschema.Schema
	schemaErr  error
)

// ValidateManifest checks raw deck.json bytes against the embedded JSON
// schema. It returns a single error listing every violation.
func ValidateManifest(data []byte) error {
	schemaOnce.Do(func() {
		deckSchema, schemaErr = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(deckSchemaJSON))
	})
	if schemaErr != nil {
		return fmt.Errorf("load deck schema: %w", schemaErr)
	}
	result, err := deckSchema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("validate manifest: %w", err)
	}
	if result.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("manifest schema violations: %s", strings.Join(msgs, "; "))
}
