package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/docmirror"
	"gopkg.in/yaml.v3"
)

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config       kong.ConfigFlag `short:"c" help:"YAML file with flag values; command-line flags take precedence"`
	Rounds       int             `short:"n" default:"5" help:"Number of pages to attempt before stopping"`
	Out          string          `short:"o" default:"en" help:"Output directory"`
	Timeout      time.Duration   `short:"t" default:"10s" help:"Fetch timeout per page"`
	Retries      int             `default:"0" help:"Fetch retries per page, with exponential backoff"`
	Rate         float64         `default:"0" help:"Maximum requests per second per host (0 = unlimited)"`
	Render       bool            `help:"Render pages in headless Chrome before extracting content"`
	Robots       bool            `help:"Skip URLs disallowed by the site's robots.txt"`
	Atomic       bool            `help:"Write into a temporary directory and replace the output directory on success"`
	Lenient      bool            `help:"Skip pages with unsupported markup instead of stopping"`
	KeepNavTable bool            `help:"Keep the navigation table at the top of each page"`
	Verbose      bool            `short:"v" help:"Log every fetch, conversion and write"`
	UserAgent    string          `default:"${user_agent}" help:"User-Agent header and robots.txt agent"`
	URL          string          `arg:"" optional:"" default:"https://nginx.org/en/docs" help:"Root URL of the documentation; only pages under it are mirrored"`
}

// validate rejects flag values that cannot describe a run.
func (c *CLI) validate() error {
	if c.Rounds <= 0 {
		return docmirror.Errorf(docmirror.EINVALID, "rounds must be positive, got %d", c.Rounds)
	}
	if c.Retries < 0 {
		return docmirror.Errorf(docmirror.EINVALID, "retries must not be negative, got %d", c.Retries)
	}
	if c.Rate < 0 {
		return docmirror.Errorf(docmirror.EINVALID, "rate must not be negative, got %g", c.Rate)
	}
	return nil
}

// YAMLConfig is a kong.ConfigurationLoader for YAML files mapping flag names
// to values:
//
//	rounds: 50
//	out: mirror/en
//	rate: 2
//	keep-nav-table: true
//
// Keys may use "-" or "_" between words.
func YAMLConfig(r io.Reader) (kong.Resolver, error) {
	values := map[string]any{}
	if err := yaml.NewDecoder(r).Decode(&values); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return kong.ResolverFunc(func(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
		v, ok := values[flag.Name]
		if !ok {
			v, ok = values[strings.ReplaceAll(flag.Name, "-", "_")]
		}
		if !ok || v == nil {
			return nil, nil
		}
		return fmt.Sprint(v), nil
	}), nil
}
