package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/fatih/color"

	"faber/compiler/internal"
)

var (
	path      = flag.String("path", ".", "the faber file, or directory of .fab files, to check")
	verbose   = flag.Bool("v", false, "print compiler phases")
	jobs      = flag.Int("j", 4, "number of files checked concurrently")
	startRepl = flag.Bool("repl", false, "start an interactive checker")
	useColor  = flag.Bool("color", true, "colorize diagnostics")
	dumpToken = flag.Bool("tokens", false, "print the token stream of every file")
	root      = flag.String("root", ".", "directory imports are resolved from")
)

func main() {
	flag.Parse()
	// NO_COLOR and non-terminal output switch colours off whatever -color says.
	*useColor = *useColor && !color.NoColor
	opts := internal.Options{Loader: internal.FileSystemLoader{Root: *root}}
	if *verbose {
		opts.Logger = func(format string, args ...interface{}) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		}
	}
	if *startRepl {
		os.Exit(runRepl(opts, *useColor))
	}
	os.Exit(check(opts))
}

func check(opts internal.Options) int {
	files, err := internal.CollectSourceFiles(*path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %+v\n", err)
		return 2
	}
	results, err := internal.CompileFiles(context.Background(), files, opts, *jobs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %+v\n", err)
		return 2
	}
	status := 0
	for _, result := range results {
		if *dumpToken {
			for _, token := range result.Tokens {
				fmt.Println(token)
			}
		}
		internal.PrintDiagnostics(os.Stderr, result.Diagnostics, result.Sources, *useColor)
		if result.HasErrors() {
			status = 1
		}
	}
	fmt.Fprintf(os.Stderr, "checked %d files\n", len(results))
	return status
}
