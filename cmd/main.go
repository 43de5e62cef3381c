// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"docverify/internal/config"
	"docverify/internal/core"
	"docverify/internal/detector"
	"docverify/internal/formatters"
	"docverify/internal/help"
	"docverify/internal/observability"
	"docverify/internal/ocr"
	"docverify/internal/version"
	"docverify/internal/web"

	"golang.org/x/term"

	// Import formatters to register them
	_ "docverify/internal/formatters/csv"
	_ "docverify/internal/formatters/json"
	_ "docverify/internal/formatters/text"
	_ "docverify/internal/formatters/xlsx"
	_ "docverify/internal/formatters/yaml"
)

// Exit codes
const (
	exitVerified    = 0
	exitNotVerified = 1
	exitUsage       = 2
)

// newRecognizer builds the recognition engine; tests replace it.
var newRecognizer = func(cfg ocr.Config, observer *observability.StandardObserver) detector.Recognizer {
	return ocr.NewEngine(cfg, observer)
}

// isTerminal reports whether w is an interactive terminal; tests replace it.
var isTerminal = func(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// cliFlags holds command line flag values
type cliFlags struct {
	docType    string
	inputFile  string
	name       string
	idNumber   string
	code       string
	company    string
	format     string
	outputFile string
	configFile string
	timeout    time.Duration
	port       int
	debug      bool
	noColor    bool
	verbose    bool
	webMode    bool
	version    bool
	help       bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("docverify", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: docverify --type <type> --file <path> --name <name> --id <number> [options]")
		fmt.Fprintln(stderr, "Run 'docverify --help' for more information.")
	}

	var flags cliFlags
	fs.StringVar(&flags.docType, "type", "", "Document type: formato, cedula, eps, arl, pension")
	fs.StringVar(&flags.inputFile, "file", "", "Path to the image or PDF to verify")
	fs.StringVar(&flags.name, "name", "", "Expected holder name")
	fs.StringVar(&flags.idNumber, "id", "", "Expected ID number")
	fs.StringVar(&flags.code, "code", "", "Expected transporter code (formato only)")
	fs.StringVar(&flags.company, "company", "", "Expected transporter name (formato only)")
	fs.StringVar(&flags.format, "format", "", "Output format: text, json, yaml, csv, xlsx (default: text)")
	fs.StringVar(&flags.outputFile, "output", "", "Path to output file (if not specified, output to stdout)")
	fs.StringVar(&flags.configFile, "config", "", "Path to configuration file (YAML)")
	fs.DurationVar(&flags.timeout, "timeout", 0, "Upper bound for recognition")
	fs.IntVar(&flags.port, "port", 0, "Port for the upload server")
	fs.BoolVar(&flags.debug, "debug", false, "Log recognition and matching steps to stderr")
	fs.BoolVar(&flags.noColor, "no-color", false, "Disable colored output")
	fs.BoolVar(&flags.verbose, "verbose", false, "Include recognized text and debug details")
	fs.BoolVar(&flags.webMode, "web", false, "Start the upload server")
	fs.BoolVar(&flags.version, "version", false, "Show version information")
	fs.BoolVar(&flags.help, "help", false, "Show help information")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitVerified
		}
		return exitUsage
	}

	if flags.version {
		fmt.Fprintln(stdout, version.Info())
		return exitVerified
	}

	cfg, err := loadConfiguration(flags.configFile)
	if err != nil {
		fmt.Fprintf(stderr, "Warning: Error loading config file: %v\n", err)
		fmt.Fprintln(stderr, "Using default configuration")
	}
	resolveConfiguration(cfg, &flags, stdout)

	observer := observability.NewStandardObserver(observability.ObservabilityOff, stderr)
	if flags.debug {
		observer = observability.NewStandardObserver(observability.ObservabilityDebug, stderr)
		observer.Debug().LogDetail("main", fmt.Sprintf("Command line arguments: %v", args))
	}

	verifier, err := core.New(cfg, newRecognizer(cfg.Recognition, observer), observer)
	if err != nil {
		fmt.Fprintf(stderr, "Error: invalid configuration: %v\n", err)
		return exitUsage
	}

	if flags.help {
		return showHelp(verifier, fs.Args(), stdout, flags.noColor)
	}

	if flags.webMode {
		if err := runWeb(cfg, verifier, observer, flags.port); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitNotVerified
		}
		return exitVerified
	}

	if msg := checkUsage(&flags); msg != "" {
		fmt.Fprintf(stderr, "Error: %s\n", msg)
		fs.Usage()
		return exitUsage
	}
	if _, ok := formatters.Get(flags.format); !ok {
		fmt.Fprintf(stderr, "Error: unsupported format '%s'. Available formats: %s\n",
			flags.format, strings.Join(formatters.List(), ", "))
		return exitUsage
	}
	if formatters.GetFormatInfo(flags.format).Binary && flags.outputFile == "" {
		fmt.Fprintf(stderr, "Error: --format %s writes a binary file and needs --output\n", flags.format)
		return exitUsage
	}

	ctx := context.Background()
	if flags.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, flags.timeout)
		defer cancel()
	}

	report, err := verifier.Verify(ctx, flags.docType, flags.inputFile, detector.Expected{
		Name:            flags.name,
		IDNumber:        flags.idNumber,
		TransporterCode: flags.code,
		TransporterName: flags.company,
	})
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}

	result, err := formatters.Export(flags.format, []*detector.Report{report}, formatters.FormatterOptions{
		Verbose: flags.verbose,
		NoColor: flags.noColor,
	})
	if err != nil {
		fmt.Fprintf(stderr, "Error formatting output: %v\n", err)
		return exitNotVerified
	}

	if err := writeOutput(flags.outputFile, result, stdout); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitNotVerified
	}

	if report.Verdict() {
		return exitVerified
	}
	return exitNotVerified
}

// loadConfiguration loads the configuration file (searching the standard
// locations when none is given) or returns the defaults with the error
func loadConfiguration(configFile string) (*config.Config, error) {
	return config.LoadConfigOrDefault(configFile)
}

// resolveConfiguration fills the flags that were not given from the
// configuration file.
func resolveConfiguration(cfg *config.Config, flags *cliFlags, stdout io.Writer) {
	if flags.format == "" {
		flags.format = cfg.Defaults.Format
	}
	if flags.timeout == 0 {
		flags.timeout = cfg.Defaults.Timeout
	}
	flags.debug = flags.debug || cfg.Defaults.Debug
	flags.verbose = flags.verbose || cfg.Defaults.Verbose

	// Auto-detect non-interactive environment
	if flags.noColor || cfg.Defaults.NoColor || !isTerminal(stdout) || os.Getenv("NO_COLOR") != "" {
		flags.noColor = true
	}
}

func checkUsage(flags *cliFlags) string {
	var missing []string
	for _, f := range []struct{ name, value string }{
		{"--type", flags.docType},
		{"--file", flags.inputFile},
		{"--name", flags.name},
		{"--id", flags.idNumber},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return "missing required flags: " + strings.Join(missing, ", ")
	}

	docType, err := core.ParseType(flags.docType)
	if err != nil {
		return err.Error()
	}
	if docType == "formato" && strings.TrimSpace(flags.code) == "" {
		return "--code is required for the format sheet"
	}
	if _, err := os.Stat(flags.inputFile); err != nil {
		return fmt.Sprintf("cannot read %s: %v", flags.inputFile, err)
	}
	return ""
}

func showHelp(verifier *core.Verifier, topics []string, stdout io.Writer, noColor bool) int {
	h := help.NewSystemTo(stdout, noColor)
	for _, p := range verifier.Providers() {
		h.RegisterProvider(p)
	}

	if len(topics) == 0 {
		h.ShowGeneralHelp()
		return exitVerified
	}
	topic := strings.ToLower(topics[0])
	if topic == "types" || topic == "documents" {
		h.ShowDocumentsHelp()
		return exitVerified
	}
	if t, err := core.ParseType(topic); err == nil {
		topic = t
	}
	if !h.ShowDocumentHelp(topic) {
		return exitUsage
	}
	return exitVerified
}

func runWeb(cfg *config.Config, verifier *core.Verifier, observer *observability.StandardObserver, port int) error {
	if port > 0 {
		cfg.Web.Port = port
	}
	ws := web.NewWebServer(cfg, verifier, observer)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() { errc <- ws.Start() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return ws.Stop(shutdownCtx)
	}
}

// writeOutput writes result to path, or to stdout when path is empty
func writeOutput(path, result string, stdout io.Writer) error {
	if path == "" {
		_, err := fmt.Fprintln(stdout, result)
		return err
	}

	// Check for path traversal attempts
	if strings.Contains(path, "..") {
		return fmt.Errorf("path traversal not allowed in output path: %s", path)
	}
	abs, err := filepath.Abs(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("invalid output file path %s: %w", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0700); err != nil {
		return fmt.Errorf("error creating output directory: %w", err)
	}
	// Reports carry personal data
	if err := os.WriteFile(abs, []byte(result), 0600); err != nil {
		return fmt.Errorf("error writing to output file: %w", err)
	}
	return nil
}
