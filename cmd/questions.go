package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/perfil/internal/bank"
)

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "Inspect or replace the question bank",
}

var questionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the questions that will be asked",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		qs, err := loadQuestions(cmd, st)
		if err != nil {
			return err
		}
		if len(qs) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No questions found.")
			return nil
		}

		out := cmd.OutOrStdout()
		for _, q := range qs {
			fmt.Fprintf(out, "%2d. [%s] %s\n", q.Position, q.ID, q.Text)
			for _, o := range q.Options {
				fmt.Fprintf(out, "      %d  %s\n", o.Value, o.Label)
			}
		}
		fmt.Fprintln(out, strings.Repeat("─", 40))
		fmt.Fprintf(out, "%d questions\n", len(qs))
		return nil
	},
}

var questionsImportCmd = &cobra.Command{
	Use:   "import <file.yaml>",
	Short: "Replace the stored question bank with a YAML file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		qs, err := bank.LoadFile(args[0])
		if err != nil {
			return err
		}

		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.QuestionRepo().Replace(cmd.Context(), bank.ToRecords(qs)); err != nil {
			return fmt.Errorf("import questions: %w", err)
		}
		logger.Info().Str("file", args[0]).Int("questions", len(qs)).Msg("question bank imported")
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d questions.\n", len(qs))
		return nil
	},
}

var questionsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Print the question bank as YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		qs, err := loadQuestions(cmd, st)
		if err != nil {
			return err
		}
		data, err := bank.Marshal(qs)
		if err != nil {
			return fmt.Errorf("encode questions: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

func init() {
	questionsCmd.AddCommand(questionsListCmd)
	questionsCmd.AddCommand(questionsImportCmd)
	questionsCmd.AddCommand(questionsExportCmd)
}
