// Package main generates CLI reference documentation from the tradein-valuator command tree.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/donaldgifford/tradein-valuator/cmd/tradein-valuator/cmd"
)

func main() {
	output := flag.String("output", "docs/cli", "output directory for generated docs")
	format := flag.String("format", "markdown", "doc format (markdown, man)")
	flag.Parse()

	if err := os.MkdirAll(*output, 0o750); err != nil {
		log.Fatalf("creating output directory: %v", err)
	}

	root := cmd.Root()
	root.DisableAutoGenTag = true

	var err error
	switch *format {
	case "markdown":
		err = doc.GenMarkdownTree(root, *output)
	case "man":
		err = doc.GenManTree(root, &doc.GenManHeader{
			Title:   "TRADEIN-VALUATOR",
			Section: "1",
			Source:  "tradein-valuator " + cmd.Version,
		}, *output)
	default:
		log.Fatalf("unknown format %q", *format)
	}
	if err != nil {
		log.Fatalf("generating docs: %v", err)
	}

	fmt.Printf("CLI %s docs generated in %s/\n", *format, *output)
}
