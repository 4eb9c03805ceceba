package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetYes bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete recorded submissions",
	Long:  "Delete every recorded submission attempt. The question bank is kept.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !resetYes {
			return fmt.Errorf("refusing to delete history without --yes")
		}

		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		n, err := st.ClearSubmissions(cmd.Context())
		if err != nil {
			return err
		}
		logger.Info().Int64("removed", n).Msg("submission history cleared")
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %d submission(s).\n", n)
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolVar(&resetYes, "yes", false, "confirm deletion")
}
