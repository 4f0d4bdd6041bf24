/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package script

import "errors"

// Sentinel errors returned by the model. Operations wrap these with context
// via fmt.Errorf("...: %w", ...); callers match with errors.Is. The model
// never retries, recovers, or logs; failures surface immediately.
var (
	// ErrInvalidIndex marks a structurally meaningless index, such as scene
	// number zero.
	ErrInvalidIndex = errors.New("invalid index")

	// ErrOutOfRange marks a resolved scene or section index outside the
	// current bounds.
	ErrOutOfRange = errors.New("index out of range")

	// ErrMissingField marks an export attempted before the title was set.
	ErrMissingField = errors.New("missing field")

	// ErrMismatch marks a scene replacement whose own number disagrees with
	// the slot it targets.
	ErrMismatch = errors.New("scene number mismatch")
)
