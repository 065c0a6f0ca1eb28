package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/iw2rmb/marginalia"
	"github.com/iw2rmb/marginalia/buffer"
	"github.com/iw2rmb/marginalia/config"
	"github.com/iw2rmb/marginalia/tui"
)

const sampleText = `package main

import "fmt"

func main() {
	total := 0
	for i := 0; i < 10; i++ {
		total += i
	}
	fmt.Println("sum of the first ten integers is", total, "which nobody asked for")
	unused := 42
}
`

var sampleMessages = []buffer.Message{
	{Line: 2, Category: buffer.CategoryInformational, Summary: "fmt imported", Description: "The fmt package provides formatted I/O."},
	{Line: 9, Category: buffer.CategoryWarning, Summary: "long line", Description: "This line is longer than the rest of the function and will wrap when the pane is narrow."},
	{Line: 10, Category: buffer.CategoryError, Summary: "unused variable", Description: "unused declared and not used"},
	{Line: 10, Category: buffer.CategoryLive, Summary: "unused = 42"},
}

type options struct {
	configPath string
	logPath    string
	demo       bool
}

// program adapts tui.Model to tea.Model.
type program struct {
	m tui.Model
}

func (p program) Init() tea.Cmd { return p.m.Init() }

func (p program) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	p.m, cmd = p.m.Update(msg)
	return p, cmd
}

func (p program) View() string { return p.m.View() }

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "marginalia-demo [file]",
		Short: "Browse a file with inline message indicators and a minimap",
		Example: `
marginalia-demo
marginalia-demo main.go --config marginalia.toml --log debug.log
`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts, args)
		},
	}
	cmd.Version = marginalia.Version()
	cmd.Flags().StringVar(&opts.configPath, "config", "marginalia.toml", "TOML configuration file; missing files are ignored")
	cmd.Flags().StringVar(&opts.logPath, "log", "", "write debug logs to this file")
	cmd.Flags().BoolVar(&opts.demo, "demo-messages", true, "report sample messages")

	cmd.AddCommand(newVersionCmd())
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), marginalia.VersionTag())
		},
	}
}

func run(opts *options, args []string) error {
	cfg, err := config.LoadOptional(opts.configPath)
	if err != nil {
		return err
	}

	logger := log.New(io.Discard, "", 0)
	if opts.logPath != "" {
		f, err := tea.LogToFile(opts.logPath, "marginalia")
		if err != nil {
			return fmt.Errorf("open log: %w", err)
		}
		defer f.Close()
		logger = log.New(f, "", log.LstdFlags|log.Lmicroseconds)
	}

	text := sampleText
	var messages []buffer.Message
	if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		text = string(data)
	} else if opts.demo {
		messages = sampleMessages
	}

	if !isTerminal(os.Stdout) {
		return errors.New("stdout is not a terminal")
	}

	m := tui.New(tui.Config{
		Text:        text,
		Messages:    messages,
		DualPane:    cfg.DualPane(),
		Decorations: cfg.Annotate(),
		Theme:       cfg.Theme(),
		Logger:      logger,
	})
	p := tea.NewProgram(program{m: m}, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = p.Run()
	return err
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}
