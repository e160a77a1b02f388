package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	gojson "github.com/goccy/go-json"
	"github.com/rs/zerolog"

	wirebind "github.com/reoring/wirebind"
	"github.com/reoring/wirebind/i18n"
	"github.com/reoring/wirebind/lsp"
	yamlsrc "github.com/reoring/wirebind/source/yaml"
)

const (
	exitOK     = 0
	exitIssues = 1
	exitUsage  = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "wirebind CLI\n\nUsage:\n  wirebind check -type T [-config file.toml] [-yaml] [input]\n  wirebind roundtrip -type T [-config file.toml] [-yaml] [input]\n  wirebind schema -type T [-config file.toml]\n  wirebind types\n\nInput defaults to stdin. Types come from the lsp catalog.")
}

// options are the flags shared by every subcommand that binds a type.
type options struct {
	typeName string
	yaml     bool
	cfg      config
	input    string
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		usage(stderr)
		return exitUsage
	}
	sub, rest := args[0], args[1:]
	switch sub {
	case "types":
		for _, name := range lsp.Catalog.Names() {
			fmt.Fprintln(stdout, name)
		}
		return exitOK
	case "check", "roundtrip", "schema":
	default:
		usage(stderr)
		return exitUsage
	}

	opts, err := parseFlags(sub, rest, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", sub, err)
		return exitUsage
	}
	i18n.SetLanguage(opts.cfg.Language)
	logger := newLogger(stderr, opts.cfg.LogLevel)
	ctx := logger.WithContext(context.Background())

	b, ok := lsp.Catalog.New(opts.typeName)
	if !ok {
		logger.Error().Str("type", opts.typeName).Msg("unknown type")
		return exitUsage
	}

	if sub == "schema" {
		out, err := gojson.Marshal(wirebind.JSONSchema(b))
		if err != nil {
			logger.Error().Err(err).Msg("encode schema")
			return exitIssues
		}
		return emit(stdout, out, opts.cfg.Indent, logger)
	}

	data, err := readInput(opts.input, stdin)
	if err != nil {
		logger.Error().Err(err).Str("input", opts.input).Msg("read input")
		return exitUsage
	}
	if err := bind(ctx, b, data, opts); err != nil {
		iss, ok := wirebind.AsIssues(err)
		if !ok {
			logger.Error().Err(err).Msg("bind")
			return exitIssues
		}
		for _, is := range iss {
			fmt.Fprintf(stdout, "%s\t%s\t%s\n", is.Path, is.Code, is.Message)
		}
		logger.Info().Str("type", opts.typeName).Int("issues", len(iss)).Msg("rejected")
		return exitIssues
	}

	if sub == "check" {
		logger.Info().Str("type", opts.typeName).Msg("ok")
		return exitOK
	}
	out, err := wirebind.Marshal(b)
	if err != nil {
		logger.Error().Err(err).Msg("write")
		return exitIssues
	}
	return emit(stdout, out, opts.cfg.Indent, logger)
}

func parseFlags(sub string, args []string, stderr io.Writer) (options, error) {
	fs := flag.NewFlagSet(sub, flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		opts       options
		configPath string
		driver     string
		logLevel   string
		dup        string
		failFast   bool
		indent     string
	)
	fs.StringVar(&opts.typeName, "type", "", "catalog type name (see: wirebind types)")
	fs.StringVar(&configPath, "config", "", "TOML config file")
	fs.BoolVar(&opts.yaml, "yaml", false, "read the input as YAML")
	fs.StringVar(&driver, "driver", "", "JSON driver: go-json or encoding/json")
	fs.StringVar(&logLevel, "log-level", "", "log level")
	fs.StringVar(&dup, "dup", "", "duplicate keys: ignore, warn or error")
	fs.BoolVar(&failFast, "fail-fast", false, "stop at the first issue")
	fs.StringVar(&indent, "indent", "", "indent output with this string")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if opts.typeName == "" {
		return options{}, errors.New("-type is required")
	}
	if fs.NArg() > 1 {
		return options{}, errors.New("at most one input")
	}
	opts.input = fs.Arg(0)

	cfg, err := loadConfig(configPath)
	if err != nil {
		return options{}, err
	}

	// flags override the config file
	var ferr error
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "driver":
			if _, ok := wirebind.JSONDriverByName(driver); !ok {
				ferr = fmt.Errorf("unknown driver %q", driver)
				return
			}
			cfg.Driver = driver
		case "log-level":
			lvl, err := zerolog.ParseLevel(logLevel)
			if err != nil {
				ferr = err
				return
			}
			cfg.LogLevel = lvl
		case "dup":
			sev, err := parseSeverity(dup)
			if err != nil {
				ferr = err
				return
			}
			cfg.Parse.Strictness.OnDuplicateKey = sev
		case "fail-fast":
			cfg.Parse.FailFast = failFast
		case "indent":
			cfg.Indent = indent
		}
	})
	if ferr != nil {
		return options{}, ferr
	}
	if ext := strings.ToLower(filepath.Ext(opts.input)); ext == ".yaml" || ext == ".yml" {
		opts.yaml = true
	}
	opts.cfg = cfg
	return opts, nil
}

func newLogger(out io.Writer, level zerolog.Level) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
	}
	return zerolog.New(output).Level(level).With().Timestamp().Str("app", "wirebind").Logger()
}

func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}

func bind(ctx context.Context, b wirebind.Binding, data []byte, opts options) error {
	cfg := opts.cfg
	// go-json reports no offsets, so the size cap is checked on the whole input
	if cfg.Parse.MaxBytes > 0 && int64(len(data)) > cfg.Parse.MaxBytes {
		return wirebind.Issues{{Path: "/", Code: wirebind.CodeTruncated, Message: "max bytes exceeded"}}
	}
	if opts.yaml {
		v, err := yamlsrc.Decode(data)
		if err != nil {
			return err
		}
		return wirebind.Parse(wirebind.WithFailFast(ctx, cfg.Parse.FailFast), v, b)
	}
	drv, _ := wirebind.JSONDriverByName(cfg.Driver)
	src := wirebind.WithNumberMode(drv.NewBytes(data), cfg.NumberMode)
	return wirebind.ParseFrom(ctx, b, src, cfg.Parse)
}

func emit(w io.Writer, out []byte, indent string, logger zerolog.Logger) int {
	if indent != "" {
		var buf bytes.Buffer
		if err := gojson.Indent(&buf, out, "", indent); err != nil {
			logger.Error().Err(err).Msg("indent")
			return exitIssues
		}
		out = buf.Bytes()
	}
	if _, err := fmt.Fprintf(w, "%s\n", out); err != nil {
		return exitIssues
	}
	return exitOK
}
