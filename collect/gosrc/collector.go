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

// Package gosrc is a demonstration upstream collector: it derives method models, fact
// tables, and raw findings from Go source, using syntactic analysis over control-flow graphs
// built by golang.org/x/tools/go/cfg. It exists to exercise the triage pipeline end to end;
// precision of the nil-state inference is explicitly not a goal here. Production collectors
// are external collaborators feeding the same snapshot format.
package gosrc

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/nilnoise/nilnoise/fact"
	"github.com/nilnoise/nilnoise/program"
	"github.com/nilnoise/nilnoise/snapshot"
	"github.com/nilnoise/nilnoise/triage"
	"golang.org/x/tools/go/cfg"
)

// Collector parses Go packages and produces snapshot entries for their functions.
type Collector struct {
	log  hclog.Logger
	fset *token.FileSet
}

// New creates a collector.
func New(log hclog.Logger) *Collector {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	return &Collector{log: log, fset: token.NewFileSet()}
}

// Dirs collects every non-test Go file in the given directories, one package model per
// directory, and returns the combined archive.
func (c *Collector) Dirs(dirs ...string) (*snapshot.Archive, error) {
	archive := &snapshot.Archive{}
	for _, dir := range dirs {
		entries, err := c.dir(dir)
		if err != nil {
			return nil, err
		}
		archive.Entries = append(archive.Entries, entries...)
	}
	return archive, nil
}

// Files collects the given Go files as one package.
func (c *Collector) Files(paths ...string) (*snapshot.Archive, error) {
	var files []*ast.File
	for _, path := range paths {
		f, err := parser.ParseFile(c.fset, path, nil, parser.SkipObjectResolution)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		files = append(files, f)
	}
	return &snapshot.Archive{Entries: c.collect(files)}, nil
}

func (c *Collector) dir(dir string) ([]snapshot.MethodEntry, error) {
	listing, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", dir, err)
	}
	var files []*ast.File
	for _, e := range listing {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
			continue
		}
		f, err := parser.ParseFile(c.fset, filepath.Join(dir, name), nil, parser.SkipObjectResolution)
		if err != nil {
			c.log.Warn("skipping unparsable file", "file", name, "error", err)
			continue
		}
		files = append(files, f)
	}
	return c.collect(files), nil
}

// collect builds one entry per function declaration across the files of one package.
func (c *Collector) collect(files []*ast.File) []snapshot.MethodEntry {
	if len(files) == 0 {
		return nil
	}
	refs := referencedNames(files)
	var entries []snapshot.MethodEntry
	for _, f := range files {
		pkg := program.ClassRef{Name: f.Name.Name}
		for _, decl := range f.Decls {
			fn, ok := decl.(*ast.FuncDecl)
			if !ok || fn.Body == nil {
				continue
			}
			entries = append(entries, c.method(pkg, fn, refs[fn.Name.Name]))
		}
	}
	return entries
}

// referencedNames returns the identifiers mentioned anywhere outside their own declaration,
// the crude call graph backing the uncallable-method heuristic.
func referencedNames(files []*ast.File) map[string]bool {
	refs := make(map[string]bool)
	for _, f := range files {
		ast.Inspect(f, func(n ast.Node) bool {
			if fn, ok := n.(*ast.FuncDecl); ok {
				// Walk the body only; the declaration name is not a reference to itself.
				if fn.Body != nil {
					ast.Inspect(fn.Body, func(b ast.Node) bool {
						if id, ok := b.(*ast.Ident); ok {
							refs[id.Name] = true
						}
						return true
					})
				}
				return false
			}
			return true
		})
	}
	return refs
}

func (c *Collector) method(pkg program.ClassRef, fn *ast.FuncDecl, referenced bool) snapshot.MethodEntry {
	ref := program.MethodRef{Class: pkg, Name: fn.Name.Name, Signature: funcSignature(fn.Type)}
	model := &program.MethodModel{
		Class:      pkg,
		Method:     ref,
		Restricted: !fn.Name.IsExported(),
		CodeSize:   int(fn.End() - fn.Pos()),
		Lines:      &program.LineTable{},
	}
	table := fact.NewTable()
	table.Called = referenced || fn.Name.IsExported()

	states := nilStates(fn.Body)
	values := make(map[string]program.ValueID)
	nextValue := 1
	valueOf := func(name string) program.ValueID {
		if v, ok := values[name]; ok {
			return v
		}
		v := program.ValueID{Num: nextValue}
		nextValue++
		values[name] = v
		return v
	}

	graph := cfg.New(fn.Body, mayReturn)
	var findings []triage.Finding
	for _, block := range graph.Blocks {
		doomed := blockDoomed(block)
		for offset, node := range block.Nodes {
			for _, site := range derefSites(node, states) {
				loc := program.Location{
					Method: ref,
					Block:  program.BlockID(block.Index),
					Offset: offset,
					PC:     int(site.pos - fn.Pos()),
					Line:   c.fset.Position(site.pos).Line,
				}
				model.Lines.Entries = append(model.Lines.Entries, program.LineEntry{PC: loc.PC, Line: loc.Line})
				table.Usages[loc] = site.usage
				table.Variables[loc] = site.ident
				table.Doomed[loc] = doomed
				findings = append(findings, triage.Finding{
					Kind:       site.kind,
					Locations:  []program.Location{loc},
					Value:      valueOf(site.ident),
					State:      states[site.ident],
					Consistent: true,
				})
			}
		}
	}
	return snapshot.MethodEntry{Model: model, Facts: table, Findings: findings}
}

// mayReturn tells the CFG builder which calls never return.
func mayReturn(call *ast.CallExpr) bool {
	switch fun := call.Fun.(type) {
	case *ast.Ident:
		return fun.Name != "panic"
	case *ast.SelectorExpr:
		if pkg, ok := fun.X.(*ast.Ident); ok {
			if pkg.Name == "os" && fun.Sel.Name == "Exit" {
				return false
			}
			if pkg.Name == "log" && strings.HasPrefix(fun.Sel.Name, "Fatal") {
				return false
			}
		}
	}
	return true
}

// blockDoomed reports whether execution entering the block cannot complete the function
// normally: the block neither returns nor has successors, so it must end in a non-returning
// call. Blocks with successors are conservatively not doomed.
func blockDoomed(b *cfg.Block) bool {
	if len(b.Succs) > 0 {
		return false
	}
	for _, n := range b.Nodes {
		if _, ok := n.(*ast.ReturnStmt); ok {
			return false
		}
	}
	return true
}
