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

// Package heuristic hosts the suppression heuristics: independent, side-effect-free
// judgments over a candidate's dereference locations and its enclosing method. Each
// heuristic answers one question (catch-null idiom, duplicated lines, doomed code,
// uncallable method, test code); the triage engine combines the answers into warning
// properties and the emit decision. Heuristics never depend on each other's output.
package heuristic

import (
	"strings"

	"github.com/nilnoise/nilnoise/program"
)

// broadCatchLimit is the maximum guarded byte range for which a catch of a broad exception
// family (Exception, RuntimeException, Throwable) is still treated as an intentional null
// guard. Larger broad catches are assumed to exist for unrelated reasons.
const broadCatchLimit = 5

// DoomSource answers whether no normal return is possible after a location. Satisfied by
// fact.Adapter.
type DoomSource interface {
	Doomed(loc program.Location) bool
}

// InCatchNullBlock reports whether the location lies inside an exception-handling region that
// plausibly intends to absorb a null dereference: a NullPointerException-family handler of
// any size, or a broad-family handler whose guarded range is below broadCatchLimit.
func InCatchNullBlock(m *program.MethodModel, loc program.Location) bool {
	if m.CatchSize(program.CatchNullPointer, loc.PC) < program.NoCatch {
		return true
	}
	if m.CatchSize(program.CatchException, loc.PC) < broadCatchLimit {
		return true
	}
	if m.CatchSize(program.CatchRuntimeException, loc.PC) < broadCatchLimit {
		return true
	}
	return m.CatchSize(program.CatchThrowable, loc.PC) < broadCatchLimit
}

// AllInCatchNull reports whether every location in the set sits inside a catch-null idiom
// region. An empty set answers false.
func AllInCatchNull(m *program.MethodModel, locs []program.Location) bool {
	if len(locs) == 0 {
		return false
	}
	for _, loc := range locs {
		if !InCatchNullBlock(m, loc) {
			return false
		}
	}
	return true
}

// UniqueLocations reports whether the dereference locations are provably unique by source
// line. The check is any-unique-wins: one location whose line is not mentioned multiple times
// in the method suffices. When line information is entirely absent, the locations are treated
// as unique since duplication cannot be proven.
func UniqueLocations(m *program.MethodModel, locs []program.Location) bool {
	if m.Lines == nil {
		return true
	}
	multi := m.Lines.MultiplyMentioned()
	for _, loc := range locs {
		line, ok := m.Lines.SourceLine(loc.PC)
		if !ok {
			continue
		}
		if !multi[line] {
			return true
		}
	}
	return false
}

// Doomed reports whether the candidate set should be marked as doomed code. When anySuffices
// is set, a single doomed location marks the whole set; otherwise every location must
// independently be doomed. The knob trades recall for conservativeness.
func Doomed(doom DoomSource, locs []program.Location, anySuffices bool) bool {
	if len(locs) == 0 {
		return false
	}
	doomedCount := 0
	for _, loc := range locs {
		if doom.Doomed(loc) {
			doomedCount++
		}
	}
	if anySuffices {
		return doomedCount > 0
	}
	return doomedCount == len(locs)
}

// UncallableMethod reports whether the enclosing method is never invoked from any reachable
// entry point and is not externally callable. Both conditions are required: an unreached but
// public method may still be an entry point for external callers.
func UncallableMethod(m *program.MethodModel, called bool) bool {
	return m.Restricted && !called
}

// TestCode reports whether the candidate sits in test code, judged textually from the class
// and method names. It suppresses nothing on its own; the engine only consults it in
// combination with the catch-null idiom.
func TestCode(m *program.MethodModel) bool {
	return strings.Contains(m.Class.Name, "Test") ||
		strings.Contains(m.Method.Name, "test") ||
		strings.Contains(m.Method.Name, "Test")
}
