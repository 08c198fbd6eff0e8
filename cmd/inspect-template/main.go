// Command inspect-template parses an extraction template and prints the
// resulting field set grouped by section, for checking a template before
// spending API calls on it.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/tmorel/studyextract/constants"
	"github.com/tmorel/studyextract/internal/template"
)

func main() {
	flag.Parse()
	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: inspect-template <template-file>")
		os.Exit(1)
	}
	path := flag.Arg(0)

	fmt.Printf("Parsing template: %s\n", path)
	fmt.Printf("Format: %s\n\n", constants.DetectTemplateFormat(path))

	fields, err := template.Parse(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Found %d fields:\n", len(fields))
	fmt.Println(strings.Repeat("=", 80))

	section := "\x00" // sentinel so an empty first section still prints
	for _, f := range fields {
		if f.Section != section {
			section = f.Section
			label := section
			if label == "" {
				label = "General"
			}
			fmt.Printf("\n[%s]\n", label)
		}
		if f.Description != "" {
			fmt.Printf("  - %s: %s\n", f.Name, f.Description)
		} else {
			fmt.Printf("  - %s\n", f.Name)
		}
	}

	fmt.Println("\n" + strings.Repeat("=", 80))
	fmt.Printf("Total fields: %d\n", len(fields))
}
