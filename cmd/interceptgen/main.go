// Command interceptgen writes logging proxies for capability interfaces.
//
// It reads one Go source file, finds the named interfaces and emits, for
// each, a forwarding type that routes every method through an
// intercept.Interceptor, plus an init function registering the proxy and
// the descriptors of methods marked with //intercept:log.
//
// Embedded interfaces declared in the same file are flattened from the
// source, markers included. Embedded interfaces from other files or
// packages are resolved by loading the package with go/packages; their
// methods are forwarded but carry no markers.
//
// Typical use is a go:generate directive next to the interface:
//
//	//go:generate go run github.com/aalemi-dev/logproxy/cmd/interceptgen -type UserService,BookCatalog
//
// Flags:
//
//	-type    comma-separated interface names (required)
//	-source  file declaring the interfaces (default $GOFILE)
//	-output  file to write (default <source>_intercept.go)
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func main() {
	typeNames := flag.String("type", "", "comma-separated list of interface names (required)")
	source := flag.String("source", os.Getenv("GOFILE"), "Go source file declaring the interfaces")
	output := flag.String("output", "", "output file (default <source>_intercept.go)")
	flag.Usage = usage
	flag.Parse()

	if *typeNames == "" || *source == "" {
		flag.Usage()
		os.Exit(2)
	}

	out := *output
	if out == "" {
		out = defaultOutput(*source)
	}

	if err := run(*source, splitTypes(*typeNames), out); err != nil {
		fmt.Fprintf(os.Stderr, "interceptgen: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: interceptgen -type T[,T...] [-source file.go] [-output file.go]\n\n")
	flag.PrintDefaults()
}

func run(source string, types []string, output string) error {
	src, err := os.ReadFile(source)
	if err != nil {
		return err
	}

	code, err := Generate(filepath.Base(source), src, types, newPackageTypes(source))
	if err != nil {
		return err
	}

	if err := os.WriteFile(output, code, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	fmt.Printf("interceptgen: wrote %s\n", output)
	return nil
}

func splitTypes(s string) []string {
	var types []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			types = append(types, t)
		}
	}
	return types
}

// defaultOutput keeps test-only interfaces in a _test.go file.
func defaultOutput(source string) string {
	if base, ok := strings.CutSuffix(source, "_test.go"); ok {
		return base + "_intercept_test.go"
	}
	return strings.TrimSuffix(source, ".go") + "_intercept.go"
}
