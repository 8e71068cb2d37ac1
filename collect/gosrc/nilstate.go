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

package gosrc

import (
	"fmt"
	"go/ast"
	"go/token"

	"github.com/nilnoise/nilnoise/program"
	"github.com/nilnoise/nilnoise/triage"
)

// nilStates infers a per-identifier null state for one function body from its assignments:
// an identifier assigned only nil is null on a simple path, one assigned nil among other
// values is null on a complicated path, and everything else is unknown and not tracked.
// Purely syntactic; shadowing and aliasing are ignored.
func nilStates(body *ast.BlockStmt) map[string]program.NullState {
	nilAssigns := make(map[string]int)
	totalAssigns := make(map[string]int)

	ast.Inspect(body, func(n ast.Node) bool {
		switch stmt := n.(type) {
		case *ast.AssignStmt:
			for i, lhs := range stmt.Lhs {
				id, ok := lhs.(*ast.Ident)
				if !ok || id.Name == "_" {
					continue
				}
				totalAssigns[id.Name]++
				if i < len(stmt.Rhs) && isNilExpr(stmt.Rhs[i]) {
					nilAssigns[id.Name]++
				}
			}
		case *ast.DeclStmt:
			gen, ok := stmt.Decl.(*ast.GenDecl)
			if !ok || gen.Tok != token.VAR {
				return true
			}
			for _, spec := range gen.Specs {
				vs, ok := spec.(*ast.ValueSpec)
				if !ok || len(vs.Values) > 0 || !isNilableType(vs.Type) {
					continue
				}
				// var x *T with no initializer starts out nil.
				for _, name := range vs.Names {
					totalAssigns[name.Name]++
					nilAssigns[name.Name]++
				}
			}
		}
		return true
	})

	states := make(map[string]program.NullState)
	for name, nils := range nilAssigns {
		if nils == totalAssigns[name] {
			states[name] = program.NullOnSimplePath
		} else {
			states[name] = program.NullOnComplicatedPath
		}
	}
	return states
}

func isNilExpr(e ast.Expr) bool {
	id, ok := e.(*ast.Ident)
	return ok && id.Name == "nil"
}

func isNilableType(t ast.Expr) bool {
	if arr, ok := t.(*ast.ArrayType); ok {
		return arr.Len == nil // slice
	}
	switch t.(type) {
	case *ast.StarExpr, *ast.MapType, *ast.ChanType, *ast.FuncType, *ast.InterfaceType:
		return true
	default:
		return false
	}
}

// site is one dereference occurrence (or redundant nil comparison) of a tracked identifier.
type site struct {
	pos   token.Pos
	ident string
	usage program.Usage
	kind  triage.FindingKind
}

// derefSites extracts the dereference sites of tracked identifiers within one CFG node.
func derefSites(node ast.Node, states map[string]program.NullState) []site {
	var sites []site
	// Selectors serving as the callee of a recorded invocation must not also be recorded as
	// field accesses.
	consumed := make(map[ast.Node]bool)

	ast.Inspect(node, func(n ast.Node) bool {
		switch expr := n.(type) {
		case *ast.CallExpr:
			sel, ok := expr.Fun.(*ast.SelectorExpr)
			if !ok {
				return true
			}
			id, ok := sel.X.(*ast.Ident)
			if !ok || !tracked(states, id.Name) {
				return true
			}
			consumed[sel] = true
			sites = append(sites, site{
				pos:   expr.Pos(),
				ident: id.Name,
				usage: invocationUsage(sel.Sel.Name, len(expr.Args)),
				kind:  triage.NullDeref,
			})
		case *ast.SelectorExpr:
			if consumed[expr] {
				return true
			}
			if id, ok := expr.X.(*ast.Ident); ok && tracked(states, id.Name) {
				sites = append(sites, site{
					pos:   expr.Pos(),
					ident: id.Name,
					usage: program.Usage{
						Kind:  program.UsageFieldAccess,
						Field: program.FieldRef{Name: expr.Sel.Name},
					},
					kind: triage.NullDeref,
				})
			}
		case *ast.StarExpr:
			if id, ok := expr.X.(*ast.Ident); ok && tracked(states, id.Name) {
				sites = append(sites, site{
					pos:   expr.Pos(),
					ident: id.Name,
					usage: program.Usage{Kind: program.UsageOther, Description: "pointer dereference"},
					kind:  triage.NullDeref,
				})
			}
		case *ast.IndexExpr:
			if id, ok := expr.X.(*ast.Ident); ok && tracked(states, id.Name) {
				sites = append(sites, site{
					pos:   expr.Pos(),
					ident: id.Name,
					usage: program.Usage{Kind: program.UsageArrayOp},
					kind:  triage.NullDeref,
				})
			}
		case *ast.BinaryExpr:
			if expr.Op != token.EQL && expr.Op != token.NEQ {
				return true
			}
			id, other := identAndNil(expr)
			if id != "" && isNilExpr(other) && tracked(states, id) {
				sites = append(sites, site{pos: expr.Pos(), ident: id, kind: triage.RedundantNullCheck})
			}
		}
		return true
	})
	return sites
}

func tracked(states map[string]program.NullState, name string) bool {
	_, ok := states[name]
	return ok
}

func identAndNil(expr *ast.BinaryExpr) (string, ast.Expr) {
	if id, ok := expr.X.(*ast.Ident); ok {
		return id.Name, expr.Y
	}
	if id, ok := expr.Y.(*ast.Ident); ok {
		return id.Name, expr.X
	}
	return "", nil
}

// invocationUsage normalizes a call target to the descriptor form used by the triage engine.
// Zero-argument Close calls map onto the "close()V" descriptor so the closing-null sub-case
// is recognized.
func invocationUsage(name string, args int) program.Usage {
	target := program.MethodRef{Name: name, Signature: fmt.Sprintf("(%d)", args)}
	if args == 0 && (name == "Close" || name == "close") {
		target.Name = "close"
		target.Signature = "()V"
	}
	return program.Usage{Kind: program.UsageInvocation, Target: target}
}

// funcSignature renders a coarse descriptor for a function type, enough for logs and the
// close() special case.
func funcSignature(ft *ast.FuncType) string {
	params := fieldCount(ft.Params)
	results := fieldCount(ft.Results)
	if params == 0 && results == 0 {
		return "()V"
	}
	return fmt.Sprintf("(%d)%d", params, results)
}

func fieldCount(fl *ast.FieldList) int {
	if fl == nil {
		return 0
	}
	n := 0
	for _, f := range fl.List {
		if len(f.Names) == 0 {
			n++
			continue
		}
		n += len(f.Names)
	}
	return n
}
