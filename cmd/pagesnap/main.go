package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/alecthomas/kong"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Stdin is read when --pause waits for acknowledgement.
	Stdin io.Reader
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{Stdin: os.Stdin}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("pagesnap"),
		kong.Description("Snapshot a rendered web page into a structured JSON record"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle no arguments
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no arguments provided")
	}

	// Handle help flags
	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  m.Stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	cmd := &SnapCmd{CLI: cli}
	return cmd.Run(deps)
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	URL string `arg:"" required:"" help:"Page URL, local HTML file or file:// URL"`

	Source     string        `default:"auto" enum:"auto,browser,http,file" help:"Where to read the page from (auto picks file for local paths, otherwise browser)"`
	Wait       string        `short:"w" default:"stable" enum:"stable,load,element,time" help:"When a rendered page counts as ready"`
	WaitTarget string        `help:"Selector to wait for with --wait=element"`
	Delay      time.Duration `default:"3s" help:"Fixed delay for --wait=time"`
	Settle     time.Duration `default:"1s" help:"Quiet period for --wait=stable"`
	Timeout    time.Duration `short:"t" default:"30s" help:"Fetch timeout"`
	Retries    int           `default:"0" help:"Fetch retries with exponential backoff"`
	BaseURL    string        `help:"Base URL for resolving links in local files"`

	OutDir string `short:"o" default:"." env:"PAGESNAP_OUT_DIR" help:"Directory for the saved artifact"`
	Name   string `short:"n" default:"femibyjojo-extracted-content.json" help:"Artifact file name"`

	HeaderSelector  string `help:"Selector for the header landmark (default #SITE_HEADER)"`
	NavSelector     string `help:"Selector for the navigation landmark (default nav)"`
	MainSelector    string `help:"Selector for the main content landmark (default #PAGES_CONTAINER)"`
	FooterSelector  string `help:"Selector for the footer landmark (default #SITE_FOOTER)"`
	SectionSelector string `help:"Selector group for structural sections"`
	ButtonSelector  string `help:"Selector group for buttons"`

	Markdown bool   `short:"m" help:"Also save the main content as Markdown"`
	Reader   string `default:"readability" enum:"readability,trafilatura" help:"Main content locator used when the main landmark is missing"`

	Quiet   bool `short:"q" help:"Do not print the full page HTML"`
	Pause   bool `help:"Wait for Enter after the acknowledgement"`
	Verbose bool `short:"v" help:"Log progress to stderr"`
}
