package main

import (
	"bytes"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/mitranim/sqlrec/internal/gen"
	"github.com/mitranim/sqlrec/internal/manifest"
)

// main reads a record manifest and writes Go source with the synthesized
// INSERT, UPDATE and UPSERT statements and their argument methods. Intended
// for use with go:generate:
//
//	//go:generate go run github.com/mitranim/sqlrec/cmd/sqlrecgen -manifest records.yaml -out records_sql.go
func main() {
	var (
		flagManifest = flag.String(
			"manifest",
			"",
			"Path to the YAML record manifest",
		)
		flagOut = flag.String(
			"out",
			"",
			"Output file; stdout when empty",
		)
	)
	flag.Parse()

	if *flagManifest == "" {
		fmt.Fprintln(os.Stderr, "missing -manifest")
		flag.Usage()
		os.Exit(2)
	}

	m, err := manifest.Load(*flagManifest)
	if err != nil {
		log.Fatalf("sqlrecgen: %v", err)
	}

	var buf bytes.Buffer
	if err := gen.Render(m, &buf); err != nil {
		log.Fatalf("sqlrecgen: %v", err)
	}

	if *flagOut == "" {
		if _, err := os.Stdout.Write(buf.Bytes()); err != nil {
			log.Fatalf("sqlrecgen: %v", err)
		}
		return
	}
	if err := os.WriteFile(*flagOut, buf.Bytes(), 0o644); err != nil {
		log.Fatalf("sqlrecgen: write %s: %v", *flagOut, err)
	}
}
