package main

import (
	"errors"
	"flag"
	"log"
	"log/slog"

	"MicrobiomePrep/pkg/tagmap"
)

// flag
var (
	input = flag.String(
		"i",
		"",
		"sample mapping table, tsv or xlsx first sheet",
	)
	outputDir = flag.String(
		"o",
		"tag_mappings",
		"output directory for per-sublibrary tag mapping files",
	)
	lenient = flag.Bool(
		"lenient",
		false,
		"skip the 10 column header check",
	)
	check = flag.Bool(
		"check",
		false,
		"report tag collisions within each sublibrary",
	)
)

func main() {
	flag.Parse()
	if *input == "" {
		flag.PrintDefaults()
		log.Fatal("-i required!")
	}

	var transform = tagmap.NewTransform(
		tagmap.Config{
			Input:     *input,
			OutputDir: *outputDir,
			Lenient:   *lenient,
		},
	)

	if err := transform.Run(); err != nil {
		var missing *tagmap.MissingInputError
		if errors.As(err, &missing) {
			slog.Error("nothing to do", "err", err)
			return
		}
		log.Fatal(err)
	}

	if *check {
		if n := transform.CheckTagCollisions(); n == 0 {
			slog.Info("no tag collisions")
		}
	}
}
