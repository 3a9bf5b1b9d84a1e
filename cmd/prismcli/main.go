// Command prismcli renders a declarative prism tree (YAML) to an SVG
// document, mirroring original_source/packages/prism-cli/src/main.rs's
// flag surface adapted to this module's YAML input format in place of
// the original's TS-script-and-JS-runtime pipeline (out of scope; see
// DESIGN.md).
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/prismforge/prism"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("prismcli", flag.ContinueOnError)
	fs.SetOutput(stderr)

	file := fs.String("f", "", "YAML file to render, omit to read from stdin")
	transpileOnly := fs.Bool("transpile-only", false, "print the input unmodified, don't render it")
	noSquare := fs.Bool("no-square", false, "don't force the output image to be square")
	ignoreError := fs.Bool("ignore-error", false, "print the SVG output even if rendering reported an error")
	png := fs.String("png", "", "rasterize to PNG at the given path (not implemented)")
	verbose := fs.Bool("v", false, "enable verbose (debug-level) logging to stderr")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *verbose {
		prism.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	var source []byte
	var err error
	if *file != "" {
		source, err = os.ReadFile(*file)
	} else {
		source, err = io.ReadAll(stdin)
	}
	if err != nil {
		fmt.Fprintf(stderr, "failed to read input: %s\n", err)
		return 1
	}

	if *transpileOnly {
		stdout.Write(source)
		return 0
	}

	tree, err := prism.ParsePrismTree(source)
	var svg prism.Svg
	if err == nil {
		svg, err = prism.RenderTree(tree, !*noSquare)
	}
	if err != nil {
		fmt.Fprintf(stderr, "runtime error: %s\n", err)
		fmt.Fprintln(stderr)
		fmt.Fprintln(stderr, "The script has thrown an error!")
		if !*ignoreError {
			fmt.Fprintln(stderr, "Pass in --ignore-error to print the SVG output anyway")
			return 1
		}
	}

	if *png != "" {
		fmt.Fprintln(stderr, "failed to save the PNG: PNG rasterization is not implemented")
		return 1
	}

	fmt.Fprintln(stdout, svg.Content)
	return 0
}
