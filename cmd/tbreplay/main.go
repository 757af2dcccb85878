/*
Command tbreplay replays an edit script against a text document and reports
the snapshots created on the way.

	tbreplay [-file doc.txt] [-config buf.yaml] [-dot tree.dot] [-v] script.yaml

For every snapshot it prints the version, the line count and the net change
since the previous snapshot, followed by the final text with line numbers.
Option -dot writes the final line tree as a Graphviz graph, marking the
nodes shared with the initial version.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the LICENSE file for details.
*/
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/textbuf"
	"github.com/npillmayer/textbuf/lines"
	"github.com/npillmayer/textbuf/linetree"
	"github.com/npillmayer/textbuf/textfile"
	"golang.org/x/term"
)

func main() {
	file := flag.String("file", "", "text file to edit (default: text of the script)")
	cfgName := flag.String("config", "", "YAML configuration of the version cache")
	dot := flag.String("dot", "", "write the final line tree in DOT format to this file")
	verbose := flag.Bool("v", false, "trace at debug level")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] script.yaml\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	gtrace.CoreTracer = gologadapter.New()
	if *verbose {
		gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	} else {
		gtrace.CoreTracer.SetTraceLevel(tracing.LevelError)
	}
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	if err := run(flag.Arg(0), *file, *cfgName, *dot); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "tbreplay: %v\n", err)
		os.Exit(1)
	}
}

func run(scriptName, file, cfgName, dot string) error {
	script, err := readScriptFile(scriptName)
	if err != nil {
		return err
	}
	opts, err := configOptions(cfgName)
	if err != nil {
		return err
	}
	var vc *textbuf.VersionCache
	if file != "" {
		vc, err = textfile.Load(file, opts...)
	} else {
		vc, err = textbuf.FromString(script.Text, opts...)
	}
	if err != nil {
		return err
	}
	snaps, replayErr := Replay(vc, script)
	out := newPrinter(os.Stdout)
	out.report(snaps)
	if dot != "" {
		if err := writeDot(dot, snaps[len(snaps)-1].Tree(), snaps[0].Tree()); err != nil {
			return err
		}
	}
	return replayErr
}

func readScriptFile(name string) (*Script, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadScript(f)
}

func configOptions(name string) ([]textbuf.Option, error) {
	if name == "" {
		return nil, nil
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	cfg, err := textbuf.LoadConfig(f)
	if err != nil {
		return nil, err
	}
	return []textbuf.Option{textbuf.WithConfig(cfg)}, nil
}

func writeDot(name string, t, older *linetree.Tree) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := linetree.ToDotShared(t, older, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// --- Output ----------------------------------------------------------------

type printer struct {
	w      io.Writer
	width  int // 0 for unlimited
	header *color.Color
	lineno *color.Color
	change *color.Color
}

// newPrinter checks if stdout is a terminal. If so, lines are clipped to the
// terminal's width. Otherwise colors are switched off.
func newPrinter(w io.Writer) *printer {
	p := &printer{
		w:      w,
		header: color.New(color.Bold),
		lineno: color.New(color.FgBlue),
		change: color.New(color.FgRed),
	}
	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		if width, _, err := term.GetSize(fd); err == nil {
			p.width = width
		}
	} else {
		color.NoColor = true
	}
	return p
}

func (p *printer) report(snaps []*textbuf.Snapshot) {
	for i, snap := range snaps {
		p.header.Fprintf(p.w, "version %d", snap.Version())
		fmt.Fprintf(p.w, ": %d lines, length %d, tree height %d", snap.LineCount(),
			snap.Len(), snap.Tree().Height())
		if i > 0 {
			cr, err := snap.ChangeRangeSince(snaps[i-1])
			if err != nil {
				p.change.Fprintf(p.w, ", %v", err)
			} else {
				p.change.Fprintf(p.w, ", changed %v", cr)
			}
		}
		fmt.Fprintln(p.w)
	}
	final := snaps[len(snaps)-1]
	breaks := final.Tree().Config().Breaks
	digits := len(fmt.Sprint(final.LineCount()))
	for n, line := range final.RangeLines() {
		p.lineno.Fprintf(p.w, "%*d ", digits, n)
		fmt.Fprintln(p.w, p.clip(lines.TrimTerminator(line, breaks), digits+1))
	}
}

// clip cuts a line to the width of the terminal, counted in display cells.
func (p *printer) clip(line string, used int) string {
	if p.width == 0 || used+lines.DisplayWidth(line) <= p.width {
		return line
	}
	var sb strings.Builder
	for _, r := range line {
		if used+lines.DisplayWidth(sb.String()+string(r))+1 > p.width {
			break
		}
		sb.WriteRune(r)
	}
	sb.WriteString("…")
	return sb.String()
}
