package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/npillmayer/textbuf"
	"gopkg.in/yaml.v3"
)

// Script is a sequence of edits to replay against a document.
//
//	text: |
//	  initial text, unless a file is given
//	steps:
//	  - {pos: 3, delete: 1, insert: "XY"}
//	  - {snapshot: true}
type Script struct {
	Text  string `yaml:"text"`
	Steps []Step `yaml:"steps"`
}

// Step is a single edit, optionally followed by a snapshot. A step without
// delete and insert just takes a snapshot.
type Step struct {
	Pos      int    `yaml:"pos"`
	Delete   int    `yaml:"delete"`
	Insert   string `yaml:"insert"`
	Snapshot bool   `yaml:"snapshot"`
}

func (s Step) isEdit() bool {
	return s.Delete != 0 || s.Insert != ""
}

// ReadScript decodes a YAML edit script. An empty input is an empty script.
func ReadScript(r io.Reader) (*Script, error) {
	script := &Script{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(script); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("invalid edit script: %w", err)
	}
	return script, nil
}

// Replay applies the steps of a script to vc. It returns the initial snapshot,
// every snapshot requested by a step and the final one. Snapshots created
// eagerly by the cache are not included.
func Replay(vc *textbuf.VersionCache, script *Script) ([]*textbuf.Snapshot, error) {
	snaps := []*textbuf.Snapshot{vc.Snapshot()}
	for i, step := range script.Steps {
		if step.isEdit() {
			if err := vc.Edit(step.Pos, step.Delete, step.Insert); err != nil {
				return snaps, fmt.Errorf("step %d: %w", i+1, err)
			}
		}
		if step.Snapshot {
			snaps = appendSnapshot(snaps, vc.Snapshot())
		}
	}
	return appendSnapshot(snaps, vc.Snapshot()), nil
}

func appendSnapshot(snaps []*textbuf.Snapshot, snap *textbuf.Snapshot) []*textbuf.Snapshot {
	if snaps[len(snaps)-1] == snap {
		return snaps
	}
	return append(snaps, snap)
}
