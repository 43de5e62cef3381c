// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package help

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
)

// DocumentInfo describes what a document validator checks.
type DocumentInfo struct {
	Name                string          // Document type as passed to --type
	ShortDescription    string          // One line for the types list
	DetailedDescription string          // What the validator does
	Strategies          []FieldStrategy // Match strategies per field, in order
	Thresholds          []Threshold     // Effective tunables
	Keywords            []string        // Keyword flags reported
	Examples            []string        // Usage examples
}

// FieldStrategy lists the ordered strategies used for one field.
type FieldStrategy struct {
	Field string
	Steps []string
}

// Threshold is a named tunable and its current value.
type Threshold struct {
	Name  string
	Value interface{}
}

// Provider defines the interface for help content providers
type Provider interface {
	GetDocumentInfo() DocumentInfo
}

// System manages help content for the application
type System struct {
	providers map[string]Provider
	out       io.Writer
	colors    map[string]*color.Color
}

// NewSystem creates a help system writing to stdout.
func NewSystem(noColor bool) *System {
	return NewSystemTo(os.Stdout, noColor)
}

// NewSystemTo creates a help system writing to out.
func NewSystemTo(out io.Writer, noColor bool) *System {
	colors := map[string]*color.Color{
		"title":    color.New(color.FgWhite, color.Bold),
		"header":   color.New(color.FgBlue, color.Bold),
		"item":     color.New(color.FgCyan),
		"emphasis": color.New(color.FgWhite, color.Bold),
		"negative": color.New(color.FgRed),
		"example":  color.New(color.FgMagenta),
	}
	for _, c := range colors {
		if noColor {
			c.DisableColor()
		}
	}
	return &System{
		providers: make(map[string]Provider),
		out:       out,
		colors:    colors,
	}
}

// RegisterProvider adds a help provider to the system
func (h *System) RegisterProvider(provider Provider) {
	info := provider.GetDocumentInfo()
	h.providers[strings.ToLower(info.Name)] = provider
}

// ShowGeneralHelp displays usage and options.
func (h *System) ShowGeneralHelp() {
	h.colors["title"].Fprintln(h.out, "docverify - onboarding document verification")
	fmt.Fprintln(h.out, "==============================================")
	fmt.Fprintln(h.out)
	h.colors["header"].Fprintln(h.out, "USAGE:")
	fmt.Fprintln(h.out, "  docverify --type <type> --file <path> --name <name> --id <number> [options]")
	fmt.Fprintln(h.out, "  docverify --web [--port <port>]")
	fmt.Fprintln(h.out)

	h.colors["header"].Fprintln(h.out, "OPTIONS:")
	w := tabwriter.NewWriter(h.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  --type\t<type>\tDocument type: "+strings.Join(h.names(), ", "))
	fmt.Fprintln(w, "  --file\t<path>\tImage (png, jpg, tiff, bmp, webp) or PDF to verify")
	fmt.Fprintln(w, "  --name\t<name>\tExpected holder name (driver name for the format sheet)")
	fmt.Fprintln(w, "  --id\t<number>\tExpected ID number, separators allowed")
	fmt.Fprintln(w, "  --code\t<code>\tExpected transporter code (format sheet only)")
	fmt.Fprintln(w, "  --company\t<name>\tExpected transporter legal name (format sheet only)")
	fmt.Fprintln(w, "  --config\t<path>\tPath to configuration file (YAML)")
	fmt.Fprintln(w, "  --format\t<format>\tOutput format: text, json, yaml, csv, xlsx (default: text)")
	fmt.Fprintln(w, "  --output\t<path>\tWrite the report to a file instead of stdout")
	fmt.Fprintln(w, "  --timeout\t<duration>\tUpper bound for recognition, e.g. 90s (default: 2m)")
	fmt.Fprintln(w, "  --verbose\t\tInclude recognized text and debug traces in text output")
	fmt.Fprintln(w, "  --debug\t\tLog recognition and matching steps to stderr")
	fmt.Fprintln(w, "  --no-color\t\tDisable colored output")
	fmt.Fprintln(w, "  --web\t\tStart the upload server")
	fmt.Fprintln(w, "  --port\t<port>\tPort for the upload server (default: 5000)")
	fmt.Fprintln(w, "  --version\t\tShow version information")
	fmt.Fprintln(w, "  --help\t\tShow this help message")
	fmt.Fprintln(w, "  --help types\t\tList the document types")
	fmt.Fprintln(w, "  --help <type>\t\tShow how a document type is checked")
	w.Flush()

	fmt.Fprintln(h.out)
	h.colors["header"].Fprintln(h.out, "EXAMPLES:")
	h.colors["example"].Fprintln(h.out, "  docverify --type cedula --file cc.jpg --name \"Juan Pérez\" --id 1.023.456.789")
	h.colors["example"].Fprintln(h.out, "  docverify --type eps --file eps.pdf --name \"Juan Pérez\" --id 1023456789 --format json")
	h.colors["example"].Fprintln(h.out, "  docverify --web --port 9000")
	fmt.Fprintln(h.out)
	h.colors["header"].Fprintln(h.out, "CONFIGURATION:")
	fmt.Fprintln(h.out, "  Default config: ~/.docverify/config.yaml")
	fmt.Fprintln(h.out, "  Project config: docverify.yaml or .docverify.yaml (in current directory)")
	fmt.Fprintln(h.out, "  Environment: DOCVERIFY_CONFIG - explicit config file path")
}

// ShowDocumentsHelp lists the registered document types.
func (h *System) ShowDocumentsHelp() {
	h.colors["title"].Fprintln(h.out, "Document types")
	fmt.Fprintln(h.out, "==============")
	fmt.Fprintln(h.out)

	w := tabwriter.NewWriter(h.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  TYPE\tDESCRIPTION")
	fmt.Fprintln(w, "  ----\t-----------")
	for _, name := range h.names() {
		info := h.providers[name].GetDocumentInfo()
		fmt.Fprintf(w, "  %s\t%s\n", info.Name, info.ShortDescription)
	}
	w.Flush()
}

// ShowDocumentHelp displays how one document type is checked.
func (h *System) ShowDocumentHelp(name string) bool {
	provider, exists := h.providers[strings.ToLower(name)]
	if !exists {
		h.colors["negative"].Fprintf(h.out, "Error: document type '%s' not found.\n", name)
		fmt.Fprintln(h.out, "Use 'docverify --help types' to see the available types.")
		return false
	}

	info := provider.GetDocumentInfo()
	h.colors["title"].Fprintf(h.out, "%s document\n", info.Name)
	fmt.Fprintln(h.out, strings.Repeat("=", len(info.Name)+9))
	fmt.Fprintln(h.out)
	fmt.Fprintln(h.out, info.DetailedDescription)
	fmt.Fprintln(h.out)

	if len(info.Strategies) > 0 {
		h.colors["header"].Fprintln(h.out, "MATCHING:")
		for _, s := range info.Strategies {
			h.colors["emphasis"].Fprintf(h.out, "  %s\n", s.Field)
			for i, step := range s.Steps {
				fmt.Fprintf(h.out, "    %d. ", i+1)
				h.colors["item"].Fprintln(h.out, step)
			}
		}
		fmt.Fprintln(h.out)
	}

	if len(info.Thresholds) > 0 {
		h.colors["header"].Fprintln(h.out, "THRESHOLDS:")
		w := tabwriter.NewWriter(h.out, 0, 0, 2, ' ', 0)
		for _, t := range info.Thresholds {
			fmt.Fprintf(w, "  %s\t%v\n", t.Name, t.Value)
		}
		w.Flush()
		fmt.Fprintln(h.out)
	}

	if len(info.Keywords) > 0 {
		h.colors["header"].Fprintln(h.out, "KEYWORD FLAGS:")
		fmt.Fprintf(h.out, "  %s\n\n", strings.Join(info.Keywords, ", "))
	}

	if len(info.Examples) > 0 {
		h.colors["header"].Fprintln(h.out, "EXAMPLES:")
		for _, e := range info.Examples {
			h.colors["example"].Fprintf(h.out, "  %s\n", e)
		}
	}
	return true
}

func (h *System) names() []string {
	names := make([]string, 0, len(h.providers))
	for name := range h.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
