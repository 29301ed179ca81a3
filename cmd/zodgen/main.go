package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	zodgen "github.com/reoring/zodgen"
	"github.com/reoring/zodgen/compiler"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "zodgen CLI\n\nUsage:\n  zodgen compile -f schema.json [-format json|yaml] [-o out.ts] [-config zodgen.yaml] [-import] [-v]\n\nNotes:\n  - Input is the JSON (or YAML) output of a Joi schema's describe().\n  - Use -f - to read from stdin. Output goes to stdout unless -o is set.")
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		usage(stderr)
		return 2
	}
	switch args[0] {
	case "compile":
		return compileCmd(args[1:], stdin, stdout, stderr)
	case "-h", "-help", "--help", "help":
		usage(stdout)
		return 0
	default:
		usage(stderr)
		return 2
	}
}

func compileCmd(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("compile", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		in      string
		format  string
		out     string
		config  string
		imports bool
		verbose bool
	)
	fs.StringVar(&in, "f", "", "description file (JSON or YAML), - for stdin")
	fs.StringVar(&format, "format", "", "input format: json or yaml (default: from file extension)")
	fs.StringVar(&out, "o", "", "output filename (default: stdout)")
	fs.StringVar(&config, "config", "", "YAML options file")
	fs.BoolVar(&imports, "import", false, "prepend the zod import line")
	fs.BoolVar(&verbose, "v", false, "enable verbose logs")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if in == "" {
		fs.Usage()
		return 2
	}

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	opts := compiler.DefaultOptions()
	if config != "" {
		f, err := os.Open(config)
		if err != nil {
			logger.Error("open config", "path", config, "error", err)
			return 1
		}
		opts, err = compiler.LoadOptions(f)
		f.Close()
		if err != nil {
			logger.Error("load config", "path", config, "error", err)
			return 1
		}
		logger.Debug("config loaded", "path", config)
	}
	if imports {
		opts.Import = true
	}

	data, err := readInput(in, stdin)
	if err != nil {
		logger.Error("read input", "path", in, "error", err)
		return 1
	}
	if format == "" {
		format = detectFormat(in, data)
	}
	logger.Debug("compile", "input", in, "format", format, "bytes", len(data))

	var (
		code string
		diag zodgen.Diag
	)
	switch format {
	case "json":
		code, diag, err = compiler.CompileWithDiag(data, opts)
	case "yaml", "yml":
		var outs []string
		outs, diag, err = compiler.CompileYAML(data, opts)
		code = strings.Join(outs, "\n\n")
	default:
		logger.Error("unknown format", "format", format)
		return 2
	}
	if diag != nil {
		for _, w := range diag.Warnings() {
			logger.Warn(w.Message, "code", w.Code, "path", w.Path)
		}
	}
	if err != nil {
		attrs := []any{"error", err}
		if is, ok := zodgen.AsIssue(err); ok {
			attrs = append(attrs, "code", is.Code, "path", is.Path)
		}
		logger.Error("compile failed", attrs...)
		return 1
	}

	code += "\n"
	if out == "" {
		if _, err := io.WriteString(stdout, code); err != nil {
			logger.Error("write output", "error", err)
			return 1
		}
		return 0
	}
	if dir := filepath.Dir(out); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			logger.Error("creating output dir", "error", err)
			return 1
		}
	}
	if err := os.WriteFile(out, []byte(code), 0o644); err != nil {
		logger.Error("writing output", "error", err)
		return 1
	}
	logger.Debug("written", "path", out, "bytes", len(code))
	return 0
}

func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		if stdin == nil {
			return nil, errors.New("no stdin")
		}
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}

// detectFormat picks yaml for .yaml/.yml files and json otherwise; stdin is
// sniffed for a leading brace.
func detectFormat(path string, data []byte) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	case ".json":
		return "json"
	}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		return "json"
	}
	return "yaml"
}
