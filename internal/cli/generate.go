package cli

import (
	"math"

	"github.com/spf13/cobra"

	"github.com/mcoot/blackbox-go/internal/dependencies/random"
	"github.com/mcoot/blackbox-go/internal/model"
	"github.com/mcoot/blackbox-go/internal/services/board"
)

func newGenerateCmd(rt *runtime) *cobra.Command {
	var (
		dimension int
		seed      uint64
		reveal    bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a board and print every ray outcome",
		Long: `Generate a board and print the outcome of a ray fired from every edge cell.

Hits are shown as H, reflections as R, and the two ends of a pass share a
label. Use --reveal to show the hidden markers too. The same seed always
gives the same board.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("seed") {
				seed = uint64(rt.app.Random.Intn(math.MaxInt32))
			}

			b, err := board.New(random.NewSeeded(seed), rt.app.Logger).Generate(dimension)
			if err != nil {
				return err
			}

			rt.output(cmd).Print(newGeneratedBoard(b, seed, reveal))
			return nil
		},
	}

	cmd.Flags().IntVarP(&dimension, "dimension", "d", model.NormalDimension, "Board dimension")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "Random seed (default: random)")
	cmd.Flags().BoolVar(&reveal, "reveal", false, "Show the hidden markers")

	return cmd
}
