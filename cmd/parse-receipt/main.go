// Command parse-receipt reads OCR text from a file or stdin and prints the
// parsed receipt as JSON. It makes no network calls.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"

	"github.com/zombor/expense-scanner/internal/parsing"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	fs := ff.NewFlagSet("parse-receipt")
	var (
		indent = fs.BoolLong("indent", "Indent the JSON output")
		draft  = fs.BoolLong("draft", "Print only the expense draft (icon, category, amount, date)")
	)

	if err := ff.Parse(fs, args, ff.WithEnvVarPrefix("PARSE_RECEIPT")); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		return err
	}

	in := stdin
	if rest := fs.GetArgs(); len(rest) > 0 && rest[0] != "-" {
		f, err := os.Open(rest[0])
		if err != nil {
			return fmt.Errorf("opening input: %w", err)
		}
		defer f.Close()
		in = f
	}

	text, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	parsed := parsing.Parse(string(text))
	var out any = parsed
	if *draft {
		out = parsed.Draft()
	}

	enc := json.NewEncoder(stdout)
	if *indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}
