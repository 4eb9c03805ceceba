package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/perfil/internal/bank"
	"github.com/abhisek/perfil/internal/config"
	"github.com/abhisek/perfil/internal/logging"
	"github.com/abhisek/perfil/internal/scoring"
	"github.com/abhisek/perfil/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "perfil",
	Short: "Anti-bullying awareness questionnaire",
	Long:  "Perfil pages through a short questionnaire in the terminal, sends your answers to a scoring service and shows the profile it returns.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup(cmd)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		teardown()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Resolved once per invocation by setup.
var (
	cfg       *config.Config
	logger    = logging.Nop()
	logCloser io.Closer
)

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Path to a YAML config file (default ~/.config/perfil/config.yaml)")
	pf.String("db", "", "Path to SQLite database file (overrides PERFIL_DB env var)")
	pf.String("endpoint", "", "Scoring endpoint URL (overrides PERFIL_ENDPOINT)")
	pf.String("log-level", "", "Log level: debug, info, warn, error")
	pf.String("bank", "", "YAML question bank to use instead of the stored one")
	pf.Duration("timeout", 0, "Submission timeout, 0 for none")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(submitCmd)
	rootCmd.AddCommand(questionsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// setup loads configuration and opens the log file.
func setup(cmd *cobra.Command) error {
	configPath, _ := cmd.Flags().GetString("config")
	return setupFrom(cmd, configPath)
}

func setupFrom(cmd *cobra.Command, configPath string) error {
	c, err := config.Load(configPath, cmd.Flags())
	if err != nil {
		return err
	}
	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	cfg = c

	if cfg.LogFile == config.StderrLogFile {
		l, err := logging.Console(cmd.ErrOrStderr(), cfg.LogLevel)
		if err != nil {
			return err
		}
		logger = l.With().Str("command", cmd.Name()).Logger()
		return nil
	}

	l, closer, err := logging.Open(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		// Logging is optional; the command itself can still run.
		fmt.Fprintln(os.Stderr, "warning: logging disabled:", err)
		return nil
	}
	logger = l.With().Str("command", cmd.Name()).Logger()
	logCloser = closer
	return nil
}

func teardown() {
	if logCloser != nil {
		logCloser.Close()
		logCloser = nil
	}
}

// resolveDBPath returns the database path from --db / PERFIL_DB, then the
// default XDG path.
func resolveDBPath() (string, error) {
	if cfg != nil && cfg.DB != "" {
		return cfg.DB, store.EnsureDir(cfg.DB)
	}
	return store.DefaultDBPath()
}

// openStore opens the configured database.
func openStore() (*store.Store, error) {
	dbPath, err := resolveDBPath()
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

// newSubmitter builds the scoring client with submission history.
func newSubmitter(st *store.Store) *scoring.RecordingSubmitter {
	client := scoring.NewClient(cfg.Endpoint,
		scoring.WithTimeout(cfg.Timeout),
		scoring.WithLogger(logger),
	)
	logger.Debug().Str("endpoint", client.Endpoint()).Dur("timeout", cfg.Timeout).Msg("scoring client ready")
	return scoring.WithRecording(client, st.SubmissionRepo(), logger)
}

// loadQuestions returns the question bank for this invocation.
func loadQuestions(cmd *cobra.Command, st *store.Store) ([]bank.Question, error) {
	qs, err := bank.Load(cmd.Context(), st.QuestionRepo(), cfg.BankFile)
	if err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}
	return qs, nil
}
