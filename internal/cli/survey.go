package cli

import (
	goruntime "runtime"

	"github.com/spf13/cobra"

	"github.com/mcoot/blackbox-go/internal/model"
	"github.com/mcoot/blackbox-go/internal/services/survey"
)

func newSurveyCmd(rt *runtime) *cobra.Command {
	var opts survey.Options

	cmd := &cobra.Command{
		Use:   "survey",
		Short: "Generate many boards and check their ray paths",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := rt.app.SurveyService.Run(cmd.Context(), opts)
			if err != nil {
				return err
			}

			rt.output(cmd).Print(newSurveyView(report))
			return nil
		},
	}

	cmd.Flags().IntVarP(&opts.Dimension, "dimension", "d", model.NormalDimension, "Board dimension")
	cmd.Flags().IntVarP(&opts.Boards, "boards", "n", 1000, "Number of boards to generate")
	cmd.Flags().IntVarP(&opts.Workers, "workers", "w", goruntime.NumCPU(), "Boards generated in parallel")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", 1, "Seed of the first board")

	return cmd
}
