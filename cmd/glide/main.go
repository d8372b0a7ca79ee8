//go:build !windows

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"github.com/andyrewlee/glide/internal/config"
	"github.com/andyrewlee/glide/internal/content"
	"github.com/andyrewlee/glide/internal/logging"
	"github.com/andyrewlee/glide/internal/messages"
	"github.com/andyrewlee/glide/internal/safego"
	"github.com/andyrewlee/glide/internal/ui/pager"
)

// Version info set by GoReleaser via ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var errNoInput = errors.New("nothing to page: pass a file, pipe input, or use -- command")

func main() {
	if err := newRootCmd(os.Stdin).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "glide: %v\n", err)
		if path := logging.Path(); path != "" {
			fmt.Fprintf(os.Stderr, "glide: see %s\n", path)
		}
		os.Exit(1)
	}
}

func newRootCmd(stdin *os.File) *cobra.Command {
	var flags rootFlags

	cmd := &cobra.Command{
		Use:   "glide [file] | glide -- command [args...]",
		Short: "glide - a smooth scrolling pager",
		Long:  "glide pages a file, piped input or a command's output with smooth wheel and drag scrolling.",
		Example: `  glide README.md
  glide --follow build.log
  git log | glide
  glide --infinite -- ls -la`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.version {
				fmt.Fprintf(cmd.OutOrStdout(), "glide %s (commit: %s, built: %s)\n", version, commit, date)
				return nil
			}
			var in io.Reader
			if stdin != nil {
				in = stdin
			}
			src, err := resolveSource(args, cmd.ArgsLenAtDash(), in, isTerminal(stdin))
			if err != nil {
				return err
			}
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if err := flags.apply(cmd.Flags(), cfg); err != nil {
				return err
			}
			return runPager(cfg, src, flags.follow)
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	flags.register(cmd.Flags())
	return cmd
}

func isTerminal(f *os.File) bool {
	return f != nil && term.IsTerminal(f.Fd())
}

// resolveSource picks the document source from the positional arguments.
// dash is the index of "--" in args, or -1.
func resolveSource(args []string, dash int, stdin io.Reader, stdinIsTTY bool) (pager.Source, error) {
	if dash >= 0 {
		if dash > 0 {
			return pager.Source{}, fmt.Errorf("unexpected arguments before --: %v", args[:dash])
		}
		if len(args[dash:]) == 0 {
			return pager.Source{}, content.ErrEmptyCommand
		}
		return pager.Source{Command: args[dash:]}, nil
	}

	switch len(args) {
	case 0:
	case 1:
		if args[0] != "-" {
			return pager.Source{Path: args[0]}, nil
		}
	default:
		return pager.Source{}, fmt.Errorf("expected one file, got %d", len(args))
	}

	if stdinIsTTY || stdin == nil {
		return pager.Source{}, errNoInput
	}
	doc, err := content.Read("stdin", stdin)
	if err != nil {
		return pager.Source{}, err
	}
	return pager.Source{Doc: doc}, nil
}

func runPager(cfg *config.Config, src pager.Source, follow bool) error {
	if err := cfg.Paths.EnsureDirectories(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not create %s: %v\n", cfg.Paths.Home, err)
	}
	if err := logging.Initialize(cfg.Paths.LogDir, logging.ParseLevel(cfg.LogLevel)); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not initialize logging: %v\n", err)
	}
	defer logging.Close()

	if src.Path != "" {
		if abs, err := filepath.Abs(src.Path); err == nil {
			src.Path = abs
		}
	}
	logging.Info("Starting glide %s", version)
	startSignalDebug()

	m, err := pager.New(pager.Options{Config: cfg, Source: src, Follow: follow})
	if err != nil {
		logging.Error("Failed to initialize pager: %v", err)
		return err
	}
	defer m.Close()

	p := tea.NewProgram(m, tea.WithFilter(mouseEventFilter))
	safego.SetPanicHandler(func(name string, recovered any, _ []byte) {
		p.Send(messages.Toast{Message: fmt.Sprintf("%s crashed: %v", name, recovered), Level: messages.ToastError})
	})
	defer safego.SetPanicHandler(nil)
	if _, err := p.Run(); err != nil {
		logging.Error("Pager exited with error: %v", err)
		return fmt.Errorf("run pager: %w", err)
	}
	logging.Info("glide shutdown complete")
	return nil
}
