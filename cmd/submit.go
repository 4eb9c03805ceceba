package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/perfil/internal/bank"
	"github.com/abhisek/perfil/internal/headless"
	core "github.com/abhisek/perfil/internal/questionnaire"
)

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Answer and submit without the terminal UI",
	Long: `Answer every question from --answers, in order, and submit.

Each entry is an option value, not an option position. On success the result
URL is printed; otherwise the message a user would have seen.`,
	Example: "  perfil submit --answers 3,2,3,3,2,3,3,1,3,3",
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, _ := cmd.Flags().GetString("answers")
		values, err := parseAnswers(raw)
		if err != nil {
			return err
		}

		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		qs, err := loadQuestions(cmd, st)
		if err != nil {
			return err
		}

		target, err := headless.Run(cmd.Context(), bank.Core(qs), values, newSubmitter(st),
			core.WithLogger(logger),
			core.WithResultsPath(cfg.ResultsPath),
		)
		if err != nil {
			logger.Warn().Err(err).Msg("headless submission failed")
			return errors.New(core.UserMessage(err))
		}
		fmt.Fprintln(cmd.OutOrStdout(), target)
		return nil
	},
}

func init() {
	submitCmd.Flags().String("answers", "", "Comma-separated option values, one per question")
	_ = submitCmd.MarkFlagRequired("answers")
}

// parseAnswers reads "2,0,1".
func parseAnswers(raw string) ([]int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("invalid answer %q: %w", p, err)
		}
		out = append(out, v)
	}
	return out, nil
}
