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

package program

// UsageKind is the category of operation at a location that demands a non-null operand.
type UsageKind uint8

const (
	// UsageOther covers dereference operations with no more specific description, and is the
	// neutral fallback when the usage analysis is unavailable.
	UsageOther UsageKind = iota
	// UsageInvocation is a method invocation on the value with a statically known target.
	UsageInvocation
	// UsageDynamicInvocation is a dynamically resolved invocation with no statically knowable
	// target. No meaningful cause annotation can be built for these.
	UsageDynamicInvocation
	// UsageFieldAccess is a read or write of a field of the value.
	UsageFieldAccess
	// UsageArrayOp is an array load, store, or length operation on the value.
	UsageArrayOp
)

// Usage describes the operation at a location that requires a non-null operand. It drives the
// cause annotation of the final diagnostic and the close()-specific tagging.
type Usage struct {
	Kind UsageKind
	// Target is the invoked method for UsageInvocation.
	Target MethodRef
	// Field is the accessed field for UsageFieldAccess.
	Field FieldRef
	// Description is a free-form operation name used when Kind is UsageOther.
	Description string
}

// IsCloseCall reports whether the usage is an invocation of a no-argument void close()
// method. Closing a possibly-null resource is a distinct, higher-signal sub-case preserved as
// its own warning property.
func (u Usage) IsCloseCall() bool {
	return u.Kind == UsageInvocation && u.Target.Name == "close" && u.Target.Signature == "()V"
}
