/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package script

import (
	"fmt"
	"strings"
)

// sectionSeparator joins rendered sections inside one scene.
const sectionSeparator = "\n\n<br/>\n\n"

// Scene is a numbered, ordered sequence of Sections. The number is assigned
// when the scene is appended to a Script and never changes; it is the scene's
// permanent identity.
type Scene struct {
	number   int
	sections []Section
}

func newScene(number int) *Scene {
	return &Scene{number: number}
}

// Number returns the scene's fixed position number (1-based).
func (sc *Scene) Number() int { return sc.number }

// NumSections returns the current section count.
func (sc *Scene) NumSections() int { return len(sc.sections) }

// AddSection appends a section to the scene.
func (sc *Scene) AddSection(s Section) {
	sc.sections = append(sc.sections, s)
}

// Section returns the section at the given zero-based index.
func (sc *Scene) Section(index int) (Section, error) {
	if index < 0 || index >= len(sc.sections) {
		return nil, fmt.Errorf("scene %d has %d sections, section %d: %w", sc.number, len(sc.sections), index, ErrOutOfRange)
	}
	return sc.sections[index], nil
}

// DeleteSection removes the section at the given zero-based index.
func (sc *Scene) DeleteSection(index int) error {
	if index < 0 || index >= len(sc.sections) {
		return fmt.Errorf("scene %d has %d sections, section %d: %w", sc.number, len(sc.sections), index, ErrOutOfRange)
	}
	sc.sections = append(sc.sections[:index], sc.sections[index+1:]...)
	return nil
}

// Markdown renders the scene heading followed by every section, joined by
// the <br/> separator.
func (sc *Scene) Markdown() string {
	parts := make([]string, len(sc.sections))
	for i, s := range sc.sections {
		parts[i] = s.Markdown()
	}
	return fmt.Sprintf("## Scene %d\n", sc.number) + strings.Join(parts, sectionSeparator)
}

// Clone deep-copies the scene and every contained section.
func (sc *Scene) Clone() *Scene {
	c := newScene(sc.number)
	c.sections = make([]Section, len(sc.sections))
	for i, s := range sc.sections {
		c.sections[i] = s.Clone()
	}
	return c
}
