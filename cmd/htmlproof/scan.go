package main

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/fwojciec/htmlproof"
	"github.com/fwojciec/htmlproof/fs"
	"github.com/fwojciec/htmlproof/goquery"
	"github.com/fwojciec/htmlproof/scan"
	hpslog "github.com/fwojciec/htmlproof/slog"
	"github.com/fwojciec/htmlproof/yaml"
)

// Run executes the scan command.
func (c *ScanCmd) Run(deps *Dependencies) error {
	cfg, err := c.config()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", htmlproof.ErrorMessage(err))
		return err
	}

	var source htmlproof.DocumentSource = fs.NewSource(c.Root, cfg.Extensions)
	var scanner htmlproof.DocumentScanner = goquery.NewScanner(cfg)
	if deps.Logger != nil {
		source = hpslog.NewLoggingDocumentSource(source, deps.Logger)
		scanner = hpslog.NewLoggingScanner(scanner, deps.Logger)
	}

	runner := &scan.Runner{
		Source:      source,
		Scanner:     scanner,
		Concurrency: c.Concurrency,
	}
	if c.Save {
		runner.References = deps.References
	}

	progress := func(event scan.ProgressEvent) {
		if event.Type == scan.ProgressFailed {
			fmt.Fprintf(deps.Stderr, "  skip %s: %s\n", event.Path, htmlproof.ErrorMessage(event.Error))
		}
	}

	result, err := runner.Run(deps.Ctx, c.Include, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", htmlproof.ErrorMessage(err))
		return err
	}

	var buf bytes.Buffer
	switch c.Format {
	case "json":
		err = writeReportJSON(&buf, result)
	default:
		err = writeReportTable(&buf, result)
	}
	if err != nil {
		return err
	}

	if err := c.emit(deps.Stdout, buf.Bytes()); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	if c.Output != "" || c.Format == "json" {
		fmt.Fprintln(deps.Stderr, scan.Summary(result))
	}

	switch {
	case result.Failed > 0:
		return fmt.Errorf("%d of %d documents could not be scanned", result.Failed, result.Documents)
	case result.Invalid > 0:
		return fmt.Errorf("%d references could not be resolved", result.Invalid)
	}
	return nil
}

// emit writes the report to the output file, or to stdout when none is set.
func (c *ScanCmd) emit(stdout io.Writer, report []byte) error {
	if c.Output == "" {
		_, err := stdout.Write(report)
		return err
	}
	return fs.WriteFile(c.Output, report)
}

// config builds the run configuration: the config file when given, then
// flags layered on top.
func (c *ScanCmd) config() (*htmlproof.Config, error) {
	cfg := htmlproof.NewConfig()
	if c.Config != "" {
		loaded, err := yaml.LoadConfig(c.Config)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if c.BaseURL != "" {
		cfg.BaseURL = c.BaseURL
	}
	if c.DisableExternal {
		cfg.DisableExternal = true
	}
	if len(c.Extension) > 0 {
		cfg.Extensions = nil
		for _, ext := range c.Extension {
			if !strings.HasPrefix(ext, ".") {
				ext = "." + ext
			}
			cfg.Extensions = append(cfg.Extensions, ext)
		}
	}

	for _, s := range c.SwapAttribute {
		tag, swap, err := parseAttributeSwap(s)
		if err != nil {
			return nil, err
		}
		cfg.SwapAttributes[tag] = append(cfg.SwapAttributes[tag], swap)
	}

	for _, s := range c.IgnoreURL {
		p, err := htmlproof.ParseURLPattern(s)
		if err != nil {
			return nil, err
		}
		cfg.IgnoreURLs = append(cfg.IgnoreURLs, p)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

var attributeSwapRe = regexp.MustCompile(`^([^:=\s]+):([^:=\s]+)=([^:=\s]+)$`)

// parseAttributeSwap parses "tag:old=new".
func parseAttributeSwap(s string) (string, htmlproof.AttributeSwap, error) {
	m := attributeSwapRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return "", htmlproof.AttributeSwap{}, htmlproof.Errorf(htmlproof.EINVALID, "invalid attribute swap %q, want tag:old=new", s)
	}
	return m[1], htmlproof.AttributeSwap{Old: m[2], New: m[3]}, nil
}
