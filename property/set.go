//  Copyright (c) 2023 Uber Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package property

import "strings"

// Set accumulates warning properties for one candidate. Properties are only ever added,
// never removed, and adds are idempotent; iteration follows insertion order so that logs and
// reports are deterministic.
type Set struct {
	order   []Property
	present map[Property]bool
}

// NewSet returns an empty property set.
func NewSet() *Set {
	return &Set{present: make(map[Property]bool)}
}

// Add records the property. Adding a property already in the set is a no-op.
func (s *Set) Add(p Property) {
	if s.present[p] {
		return
	}
	if s.present == nil {
		s.present = make(map[Property]bool)
	}
	s.present[p] = true
	s.order = append(s.order, p)
}

// Has reports whether the property is in the set.
func (s *Set) Has(p Property) bool {
	return s != nil && s.present[p]
}

// Len returns the number of distinct properties in the set.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.order)
}

// Properties returns the accumulated properties in insertion order. The returned slice is a
// copy; mutating it does not affect the set.
func (s *Set) Properties() []Property {
	if s == nil {
		return nil
	}
	out := make([]Property, len(s.order))
	copy(out, s.order)
	return out
}

// Equal reports whether two sets hold the same properties, ignoring insertion order.
func (s *Set) Equal(other *Set) bool {
	if s.Len() != other.Len() {
		return false
	}
	for _, p := range s.order {
		if !other.Has(p) {
			return false
		}
	}
	return true
}

// String renders the set as "[A, B, C]" in insertion order.
func (s *Set) String() string {
	if s.Len() == 0 {
		return "[]"
	}
	parts := make([]string, len(s.order))
	for i, p := range s.order {
		parts[i] = string(p)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
