package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formdoc"
	"github.com/goliatone/go-formdoc/pkg/logging"
	"github.com/goliatone/go-formdoc/pkg/orchestrator"
	"github.com/goliatone/go-formdoc/pkg/render"
	"github.com/goliatone/go-formdoc/pkg/renderers/tui"
	"github.com/goliatone/go-formdoc/pkg/signature"
)

// maxAttempts bounds the interactive re-prompts after failed validation.
const maxAttempts = 3

type options struct {
	form        string
	lang        string
	formsDir    string
	valuesFile  string
	signature   string
	output      string
	interactive bool
	list        bool
	summary     string
	logLevel    string
}

func main() {
	var opts options
	flag.StringVar(&opts.form, "form", "", "form key to fill")
	flag.StringVar(&opts.lang, "lang", "de", "UI language for prompts and messages")
	flag.StringVar(&opts.formsDir, "forms", "", "forms directory, empty uses the bundled forms")
	flag.StringVar(&opts.valuesFile, "values", "", "JSON or YAML file with field values")
	flag.StringVar(&opts.signature, "signature", "", "PNG or JPG signature image")
	flag.StringVar(&opts.output, "output", "", "output file (<form>.pdf if empty, - for stdout)")
	flag.BoolVar(&opts.interactive, "interactive", false, "prompt for values in the terminal")
	flag.BoolVar(&opts.list, "list", false, "list the available forms and exit")
	flag.StringVar(&opts.summary, "summary", "", "print the submitted values as json or pretty")
	flag.StringVar(&opts.logLevel, "log-level", "warn", "log level")
	flag.Parse()

	logger, err := logging.New(logging.Options{Level: opts.logLevel})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if err := run(context.Background(), opts, logger, os.Stdout); err != nil {
		var verr *orchestrator.ValidationError
		if errors.As(err, &verr) {
			fmt.Fprintln(os.Stderr, verr.Message())
			os.Exit(1)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options, logger logrus.FieldLogger, stdout io.Writer) error {
	registry, err := formdoc.LoadForms(opts.formsDir, logger)
	if err != nil {
		return err
	}
	gen := formdoc.NewOrchestrator(
		orchestrator.WithForms(registry),
		orchestrator.WithLogger(logger),
	)

	if opts.list {
		w := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
		for _, form := range registry.Forms() {
			fmt.Fprintf(w, "%s\t%s\t%s\n", form.Key, form.Name(opts.lang), strings.Join(form.Languages(), ","))
		}
		return w.Flush()
	}

	if opts.form == "" {
		return fmt.Errorf("-form is required (one of %s)", strings.Join(registry.List(), ", "))
	}

	var summary tui.OutputFormat
	if opts.summary != "" {
		if opts.output == "-" {
			return errors.New("-summary cannot be combined with -output -")
		}
		if summary, err = tui.ParseOutputFormat(opts.summary); err != nil {
			return err
		}
	}

	values, err := readValues(opts.valuesFile)
	if err != nil {
		return err
	}

	sig, err := readSignature(opts.signature)
	if err != nil {
		return err
	}

	if opts.interactive {
		values, err = collect(ctx, gen, opts, values)
		if err != nil {
			return err
		}
	}

	output, err := formdoc.GeneratePDF(ctx, gen, opts.form, opts.lang, formdoc.RenderOptions{
		Values:    values,
		Signature: sig,
	})
	if err != nil {
		return err
	}

	if summary != "" {
		if err := printSummary(gen, opts, summary, values, stdout); err != nil {
			return err
		}
	}

	target := opts.output
	if target == "" {
		target = opts.form + ".pdf"
	}
	if target == "-" {
		_, err := stdout.Write(output)
		return err
	}
	if err := os.WriteFile(target, output, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", target, err)
	}
	fmt.Fprintf(stdout, "PDF written to %s (%s)\n", target, humanize.Bytes(uint64(len(output))))
	return nil
}

// collect prompts until the required fields validate or maxAttempts is
// reached.
func collect(ctx context.Context, gen *orchestrator.Orchestrator, opts options, values map[string]any) (map[string]any, error) {
	prompter := tui.New(tui.WithTheme(tui.Theme{InfoPrefix: "== ", ErrorPrefix: "!! "}))
	renderOpts := render.RenderOptions{Values: values}

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		localized, err := gen.Localize(opts.form, opts.lang, false)
		if err != nil {
			return nil, err
		}
		renderOpts.Locale = localized.Lang
		renderOpts.Catalog = localized.Catalog

		collected, err := prompter.Collect(ctx, localized.Model, renderOpts)
		if err != nil {
			return nil, err
		}
		if _, err := gen.Validate(opts.form, opts.lang, collected); err != nil {
			var verr *orchestrator.ValidationError
			if !errors.As(err, &verr) {
				return nil, err
			}
			mapping := verr.Mapping()
			renderOpts.Values = collected
			renderOpts.Errors = mapping.Fields
			renderOpts.FormErrors = mapping.Form
			lastErr = err
			continue
		}
		return collected, nil
	}
	return nil, lastErr
}

func printSummary(gen *orchestrator.Orchestrator, opts options, format tui.OutputFormat, values map[string]any, w io.Writer) error {
	localized, err := gen.Localize(opts.form, opts.lang, false)
	if err != nil {
		return err
	}
	out, err := tui.New(tui.WithOutputFormat(format)).Summary(localized.Model, values, localized.Catalog)
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}

func readValues(path string) (map[string]any, error) {
	values := make(map[string]any)
	if path == "" {
		return values, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read values: %w", err)
	}
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("decode values %s: %w", path, err)
	}
	return values, nil
}

func readSignature(path string) (*signature.Signature, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read signature: %w", err)
	}
	sig, err := signature.FromUpload(filepath.Base(path), data)
	if err != nil {
		return nil, fmt.Errorf("signature %s: %w", path, err)
	}
	return sig, nil
}
