package cli

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/saravenpi/outreach/internal/config"
	"github.com/saravenpi/outreach/internal/logging"
	"github.com/saravenpi/outreach/internal/session"
	"github.com/saravenpi/outreach/internal/ui"
)

var (
	version = "dev"
	commit  = "unknown"
)

// env is what every command needs after flags are parsed.
type env struct {
	cfg      config.Config
	logger   *slog.Logger
	sessions *session.Store
	closeLog func()
}

func loadEnv(cmd *cobra.Command) (*env, error) {
	configPath, _ := cmd.Flags().GetString("config")
	apiURL, _ := cmd.Flags().GetString("api-url")
	verbose, _ := cmd.Flags().GetBool("verbose")

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if apiURL != "" {
		cfg.APIURL = apiURL
	}
	if verbose {
		cfg.LogLevel = "debug"
	}

	logger, f, err := logging.Open(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	return &env{
		cfg:      cfg,
		logger:   logger.With("cmd", cmd.Name()),
		sessions: session.NewStore(cfg.HomeDir),
		closeLog: func() { _ = f.Close() },
	}, nil
}

// NewRootCmd builds the command tree. Without a subcommand it runs the
// console.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "outreach",
		Short: "Terminal console for AI-assisted sales outreach",
		Long: `Outreach lets a sales team read and steer the conversations an AI agent
holds with prospects: page through history, draft or generate replies,
rate AI messages and promote them to e-mail.`,
		Version:       fmt.Sprintf("%s (commit: %s)", version, commit),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			defer e.closeLog()
			return runConsole(e, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	root.CompletionOptions.DisableDefaultCmd = true

	root.PersistentFlags().StringP("config", "c", "", "config file path (default is $HOME/.outreach/config.yml)")
	root.PersistentFlags().String("api-url", "", "platform API base URL")
	root.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")

	root.AddCommand(newLoginCmd(), newLogoutCmd(), newWhoamiCmd(), newMockAPICmd(), newVersionCmd())
	return root
}

// Execute is called by main.main.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// runConsole runs the TUI and offers a restart when it dies on an error.
func runConsole(e *env, in io.Reader, out io.Writer) error {
	answers := bufio.NewReader(in)
	for {
		app := ui.NewApp(e.cfg, e.logger, e.sessions)
		p := tea.NewProgram(app.Start(), tea.WithAltScreen(), tea.WithMouseCellMotion())
		_, err := p.Run()
		if err == nil {
			return nil
		}

		e.logger.Error("console stopped", "err", err)
		fmt.Fprintf(out, "Something went wrong!\n%v\n", err)
		if !confirm(answers, out, "Try again? [y/N] ") {
			return err
		}
	}
}

// confirm reads one answer from in. The reader is shared across prompts so
// nothing typed ahead is lost.
func confirm(in *bufio.Reader, out io.Writer, prompt string) bool {
	fmt.Fprint(out, prompt)
	line, err := in.ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "outreach %s (commit: %s)\n", version, commit)
		},
	}
}
