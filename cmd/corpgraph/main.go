// SPDX-License-Identifier: Apache-2.0

// Command corpgraph extracts corporate entities from Wikidata and writes
// normalized records.
package main

import (
	"os"

	"github.com/charmbracelet/log"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Error("command failed", "err", err)
		os.Exit(1)
	}
}
