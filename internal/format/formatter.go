/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package format holds the pure text-transform rules applied to sections when
// they enter a Script: terminal punctuation enforcement and roster-name
// capitalization. All functions are idempotent and side-effect free.
package format

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// EnsureTerminalPunct appends a period when the text does not already end in
// a punctuation character. Empty text is returned unchanged.
func EnsureTerminalPunct(text string) string {
	if text == "" {
		return text
	}
	r, _ := utf8.DecodeLastRuneInString(text)
	if unicode.IsPunct(r) {
		return text
	}
	return text + "."
}

// TrimTerminalPunct strips a single trailing punctuation character if present.
// Inline parentheticals are rendered mid-sentence and must not end in a period.
func TrimTerminalPunct(text string) string {
	if text == "" {
		return text
	}
	r, size := utf8.DecodeLastRuneInString(text)
	if unicode.IsPunct(r) {
		return text[:len(text)-size]
	}
	return text
}

// CapitalizeNames upper-cases every case-insensitive whole-word occurrence of
// a roster name in text, including possessive ('s) and bare plural (s)
// suffixes. Names are applied in lexicographic order so overlapping roster
// names resolve the same way on every run.
func CapitalizeNames(text string, names []string) string {
	ordered := make([]string, len(names))
	copy(ordered, names)
	sort.Strings(ordered)
	for _, name := range ordered {
		if name == "" {
			continue
		}
		re := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(name) + `(?:'s|s)?\b`)
		text = re.ReplaceAllStringFunc(text, strings.ToUpper)
	}
	return text
}
