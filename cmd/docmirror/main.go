package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/docmirror"
	"github.com/fwojciec/docmirror/crawl"
	"github.com/fwojciec/docmirror/fs"
	"github.com/fwojciec/docmirror/goquery"
	docmirrorhttp "github.com/fwojciec/docmirror/http"
	"github.com/fwojciec/docmirror/markdown"
	"github.com/fwojciec/docmirror/robots"
	"github.com/fwojciec/docmirror/rod"
	docslog "github.com/fwojciec/docmirror/slog"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Fetcher, if set, replaces the HTTP and browser fetchers for pages and
	// robots.txt alike.
	Fetcher docmirror.Fetcher
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("docmirror"),
		kong.Description("Mirror a documentation site into local Markdown files"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Configuration(YAMLConfig),
		kong.Vars{"user_agent": docmirrorhttp.DefaultUserAgent},
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags
	for _, arg := range args {
		if arg == "--help" || arg == "-h" || arg == "help" {
			_, _ = parser.Parse([]string{"--help"})
			return nil
		}
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	if err := cli.validate(); err != nil {
		return err
	}

	base := strings.TrimRight(cli.URL, "/")
	if !docmirror.IsAbsolute(base) {
		return docmirror.Errorf(docmirror.EINVALID, "url %q must start with http:// or https://", cli.URL)
	}

	deps, cleanup, err := m.wire(ctx, cli, base, stdout, stderr)
	if err != nil {
		return err
	}
	defer cleanup()

	cmd := &MirrorCmd{
		URL:         base,
		Rounds:      cli.Rounds,
		RetryDelays: crawl.DefaultRetryDelays(cli.Retries),
		Lenient:     cli.Lenient,
	}
	return cmd.Run(deps)
}

// wire builds the services for one run from the parsed flags.
func (m *Main) wire(ctx context.Context, cli *CLI, base string, stdout, stderr io.Writer) (*Dependencies, func(), error) {
	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	deps := &Dependencies{
		Ctx:       ctx,
		Stdout:    stdout,
		Stderr:    stderr,
		Logger:    logger,
		Extractor: goquery.NewExtractor(),
	}

	// Create fetchers
	httpFetcher := docmirrorhttp.NewFetcher(
		docmirrorhttp.WithTimeout(cli.Timeout),
		docmirrorhttp.WithUserAgent(cli.UserAgent),
	)
	var robotsFetcher docmirror.Fetcher = httpFetcher
	deps.Fetcher = httpFetcher
	switch {
	case m.Fetcher != nil:
		deps.Fetcher = m.Fetcher
		robotsFetcher = m.Fetcher
	case cli.Render:
		rodFetcher, err := rod.NewFetcher(rod.WithFetchTimeout(cli.Timeout))
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
			return nil, nil, fmt.Errorf("failed to start browser: %w", err)
		}
		deps.Fetcher = rodFetcher
	}
	fetcher := deps.Fetcher
	cleanup := func() { _ = fetcher.Close() }

	converter := markdown.NewConverter(base)
	converter.SkipNavTable = !cli.KeepNavTable
	deps.Converter = converter

	if cli.Atomic {
		store := fs.NewFileStore(filepath.Dir(cli.Out), filepath.Base(cli.Out))
		deps.Writer = store
		deps.Committer = store
	} else {
		deps.Writer = fs.NewWriter(cli.Out)
	}

	if cli.Rate > 0 {
		deps.RateLimiter = crawl.NewDomainLimiter(cli.Rate)
	}

	if cli.Robots {
		policy, err := robots.Load(ctx, robotsFetcher, base, cli.UserAgent, logger)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		deps.Allow = policy.Allowed
	}

	// Wrap services with logging decorators
	if cli.Verbose {
		deps.Fetcher = docslog.NewLoggingFetcher(deps.Fetcher, logger)
		deps.Converter = docslog.NewLoggingConverter(deps.Converter, logger)
		deps.Writer = docslog.NewLoggingWriter(deps.Writer, logger)
	}

	return deps, cleanup, nil
}
