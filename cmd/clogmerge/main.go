// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Command clogmerge is an entry-aware three-way merge driver for
// append-at-top changelog files. Git (or any caller following the
// `driver %O %A %B` convention) invokes it as:
//
//	clogmerge O-FILE A-FILE B-FILE
//
// O-FILE is the common ancestor, A-FILE is overwritten with the merge
// result, and B-FILE is the other side. Which of A-FILE/B-FILE is treated
// as the published "mainstream" history is decided by the environment
// (see modules/direction).
package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/jwiegley/git-merge-changelog/modules/direction"
	"github.com/jwiegley/git-merge-changelog/modules/entry"
	"github.com/jwiegley/git-merge-changelog/modules/executor"
	"github.com/jwiegley/git-merge-changelog/pkg/clog"
	"github.com/jwiegley/git-merge-changelog/pkg/version"
)

// versionFlag prints the version header and exits before any other
// argument handling runs.
type versionFlag bool

func (v versionFlag) Decode(ctx *kong.DecodeContext) error { return nil }
func (v versionFlag) IsBool() bool                         { return true }
func (v versionFlag) BeforeApply(app *kong.Kong, vars kong.Vars) error {
	fmt.Fprintln(app.Stdout, version.GetVersionString())
	app.Exit(0)
	return nil
}

// CLI is the driver's entire command surface. There is no subcommand
// tree — git only ever invokes one operation — so the three positional
// arguments and the handful of flags live on one struct.
type CLI struct {
	Version          versionFlag `short:"V" name:"version" help:"Show version number and quit"`
	Verbose          bool        `name:"verbose" help:"Make the operation more talkative"`
	SplitMergedEntry bool        `name:"split-merged-entry" default:"true" negatable:"" help:"Detect accidentally merged paragraphs (always on; kept for compatibility)"`

	O string `arg:"" name:"O-FILE" help:"Common ancestor"`
	A string `arg:"" name:"A-FILE" help:"Destination, overwritten with the merge result"`
	B string `arg:"" name:"B-FILE" help:"The other side"`
}

func readEntries(dbg clog.Debugger, path, label string) (*entry.Log, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, clog.Fatalf(2, "clogmerge: cannot read %s (%s): %v", label, path, err)
	}
	log := entry.Parse(data)
	dbg.Printf("parsed %s (%s): %d bytes, %d entries", label, path, len(data), log.Len())
	return log, nil
}

// formatConflicts renders every conflict as a standard
// <<<<<<</=======/>>>>>>> block, in the order the conflicts arose.
func formatConflicts(conflicts []executor.Conflict) []byte {
	var buf bytes.Buffer
	for _, c := range conflicts {
		buf.WriteString("<<<<<<<\n")
		for _, e := range c.Ancestor {
			buf.Write(e.Bytes())
		}
		buf.WriteString("=======\n")
		for _, e := range c.Modified {
			buf.Write(e.Bytes())
		}
		buf.WriteString(">>>>>>>\n")
	}
	return buf.Bytes()
}

// run performs the merge and writes the result to cli.A. It returns a
// *clog.ExitCodeError{ExitCode:1} when conflicts were emitted (a
// successful write, not a failure) and a *clog.ExitCodeError with a
// higher code for any fatal condition.
func run(cli *CLI) error {
	dbg := clog.Debugger{Verbose: cli.Verbose}

	ancestorLog, err := readEntries(dbg, cli.O, "O-FILE")
	if err != nil {
		return err
	}
	aLog, err := readEntries(dbg, cli.A, "A-FILE")
	if err != nil {
		return err
	}
	bLog, err := readEntries(dbg, cli.B, "B-FILE")
	if err != nil {
		return err
	}

	dir := direction.Detect(os.LookupEnv)
	dbg.Printf("direction: %s", dir)

	mainstream, modified := aLog, bLog
	if dir == direction.Downstream {
		mainstream, modified = bLog, aLog
	}

	result := executor.Run(ancestorLog, mainstream, modified)
	dbg.Printf("merged: %d entries, %d conflicts", len(result.Entries), len(result.Conflicts))

	var out bytes.Buffer
	out.Write(formatConflicts(result.Conflicts))
	for _, e := range result.Entries {
		out.Write(e.Bytes())
	}

	if err := os.WriteFile(cli.A, out.Bytes(), 0o644); err != nil {
		return clog.Fatalf(2, "clogmerge: cannot write %s: %v", cli.A, err)
	}

	if len(result.Conflicts) > 0 {
		return &clog.ExitCodeError{ExitCode: 1, Message: "conflict"}
	}
	return nil
}

func main() {
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("clogmerge"),
		kong.Description("Entry-aware three-way merge driver for append-at-top changelog files"),
		kong.UsageOnError(),
		kong.Vars{"version": version.GetVersionString()},
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	_, err = parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	if err := run(&cli); err != nil {
		if e, ok := err.(*clog.ExitCodeError); ok {
			if e.ExitCode != 1 {
				fmt.Fprintln(os.Stderr, e.Message)
			}
			os.Exit(e.ExitCode)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
}
