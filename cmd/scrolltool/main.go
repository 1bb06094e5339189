// Copyright © 2025 Quillscroll contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/scrolltool/main.go
// Summary: Exercises the history stores from the command line: ingests a
// text stream into a chosen store, optionally migrates it, reports counts.

package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/quillscroll/quillscroll/config"
	"github.com/quillscroll/quillscroll/scroll"
)

func main() {
	mode := flag.String("mode", config.ModeFile, "history mode to ingest into: none, file or compact")
	maxLines := flag.Int("max-lines", config.DefaultMaxLines, "line capacity for compact mode")
	migrate := flag.String("migrate", "", "after ingest, migrate to this mode")
	migrateMax := flag.Int("migrate-max-lines", config.DefaultMaxLines, "line capacity for the migration target")
	wrap := flag.Int("wrap", 0, "hard-wrap input lines at this width (0 disables)")
	flag.Parse()

	store := config.KindFor(config.HistorySettings{Mode: *mode, MaxLines: *maxLines}).Scroll(nil)

	ingested := 0
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 1024*1024), 1024*1024)
	for scanner.Scan() {
		ingested += addLine(store, scroll.TextLineFromString(scanner.Text()), *wrap)
	}
	if err := scanner.Err(); err != nil {
		log.Fatalf("read input: %v", err)
	}

	report(store, *mode, ingested)

	if *migrate != "" {
		kind := config.KindFor(config.HistorySettings{Mode: *migrate, MaxLines: *migrateMax})
		store = kind.Scroll(store)
		report(store, *migrate, ingested)
	}

	if err := store.Close(); err != nil {
		log.Fatalf("close store: %v", err)
	}
}

// addLine appends one input line, split into wrapped segments when a wrap
// width is set, and returns the number of store lines produced.
func addLine(store scroll.Store, line scroll.TextLine, wrap int) int {
	if wrap <= 0 || len(line) <= wrap {
		store.AddCells(line)
		store.AddLine(false)
		return 1
	}

	count := 0
	for start := 0; start < len(line); start += wrap {
		end := min(start+wrap, len(line))
		store.AddCells(line[start:end])
		store.AddLine(start > 0)
		count++
	}
	return count
}

func report(store scroll.Store, mode string, ingested int) {
	cells := 0
	wrapped := 0
	for i := 0; i < store.Lines(); i++ {
		cells += store.LineLen(i)
		if store.IsWrappedLine(i) {
			wrapped++
		}
	}
	fmt.Printf("%s: %d lines retained of %d ingested, %d cells, %d wrapped\n",
		mode, store.Lines(), ingested, cells, wrapped)
}
