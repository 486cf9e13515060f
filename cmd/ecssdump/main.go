/*
Command ecssdump parses stylesheets and styles HTML documents as scenes,
printing the results for inspection.

	ecssdump parse theme.css
	ecssdump style --css theme.css page.html
	ecssdump style --dot page.html | dot -Tsvg > page.svg

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package main

import (
	"log"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("ecssdump: %v", err)
	}
}

// setupTracing routes all tracers to the Go logger at the given level.
func setupTracing(level string) {
	tracing.SetTraceSelector(tracing.SelectorForAdapter(gologadapter.GetAdapter()))
	tracing.Select("ecss").SetTraceLevel(tracing.TraceLevelFromString(level))
}
