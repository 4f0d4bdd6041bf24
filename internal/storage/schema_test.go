/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package storage

import (
	"encoding/json"
	"testing"
)

func TestManifestConformsToSchema(t *testing.T) {
	data, err := json.Marshal(sampleDocument())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := ValidateDocument(data); err != nil {
		t.Fatalf("valid document rejected: %v", err)
	}
}

func TestEmptyDocumentConformsToSchema(t *testing.T) {
	// A freshly initialized project serializes nil slices as null; the
	// schema must accept that.
	data, err := json.Marshal(Document{})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := ValidateDocument(data); err != nil {
		t.Fatalf("empty document rejected: %v", err)
	}
}

func TestSchemaRejectsBadSectionType(t *testing.T) {
	raw := `{
		"title": "Play",
		"subtitle": "",
		"characters": [],
		"locations": [],
		"scenes": [[{"type": "balloon", "rawmd": "x"}]]
	}`
	if err := ValidateDocument([]byte(raw)); err == nil {
		t.Fatalf("expected rejection of unknown section type")
	}
}

func TestSchemaRejectsMissingTitle(t *testing.T) {
	raw := `{"characters": [], "locations": [], "scenes": []}`
	if err := ValidateDocument([]byte(raw)); err == nil {
		t.Fatalf("expected rejection when title is missing")
	}
}
