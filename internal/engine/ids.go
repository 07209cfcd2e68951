/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package engine

import "github.com/google/uuid"

// Element ids are unique within the whole document. Callers may bring their
// own deterministic ids (e.g. "slide-3-title" from the bootstrap layer);
// engine-generated ids are opaque and carry a short kind prefix for log
// readability only — nothing parses them.

func newTextID() string        { return "text-" + uuid.NewString() }
func newImageID() string       { return "img-" + uuid.NewString() }
func newTableID() string       { return "tbl-" + uuid.NewString() }
func newInfographicID() string { return "ig-" + uuid.NewString() }
