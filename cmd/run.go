package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/perfil/internal/app"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the questionnaire",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	qs, err := loadQuestions(cmd, st)
	if err != nil {
		return err
	}

	return app.Run(app.Options{
		Questions:   qs,
		Submitter:   newSubmitter(st),
		History:     st.SubmissionRepo(),
		ResultsPath: cfg.ResultsPath,
		Logger:      logger,
	})
}
