package cli

import (
	"github.com/spf13/cobra"
)

func newStatsCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show games played, won and lost",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := rt.app.GameController.GetStats(cmd.Context())
			if err != nil {
				return err
			}

			rt.output(cmd).Print(newStatsView(stats))
			return nil
		},
	}
}
