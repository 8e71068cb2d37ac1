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

// Package snapshot defines the on-disk archive of collected method models, fact tables, and
// raw findings, so that collection and triage can run as separate processes. The payload is
// gob encoded through an s2 compressor.
package snapshot

import (
	"bytes"
	"encoding/gob"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/s2"
	"github.com/nilnoise/nilnoise/fact"
	"github.com/nilnoise/nilnoise/program"
	"github.com/nilnoise/nilnoise/triage"
)

// magic identifies the archive format; the trailing byte is the format version.
var magic = []byte("NNSNAP\x01")

// MethodEntry bundles everything the triage phase needs for one method: the structural
// model, the materialized collaborator facts, and the raw findings of the collector.
type MethodEntry struct {
	Model    *program.MethodModel
	Facts    *fact.Table
	Findings []triage.Finding
}

// Archive is one collection run over a set of methods.
type Archive struct {
	Entries []MethodEntry
}

// Write encodes the archive to w.
func (a *Archive) Write(w io.Writer) (err error) {
	if _, err := w.Write(magic); err != nil {
		return fmt.Errorf("write archive header: %w", err)
	}
	sw := s2.NewWriter(w)
	defer func() {
		if cerr := sw.Close(); cerr != nil {
			err = errors.Join(err, cerr)
		}
	}()
	if err := gob.NewEncoder(sw).Encode(a); err != nil {
		return fmt.Errorf("encode archive: %w", err)
	}
	return nil
}

// Read decodes an archive from r, verifying the format header first.
func Read(r io.Reader) (*Archive, error) {
	header := make([]byte, len(magic))
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, fmt.Errorf("read archive header: %w", err)
	}
	if !bytes.Equal(header, magic) {
		return nil, fmt.Errorf("not a nilnoise snapshot (bad header %q)", header)
	}
	a := &Archive{}
	if err := gob.NewDecoder(s2.NewReader(r)).Decode(a); err != nil {
		return nil, fmt.Errorf("decode archive: %w", err)
	}
	return a, nil
}
