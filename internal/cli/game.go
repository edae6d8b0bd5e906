package cli

import (
	"github.com/spf13/cobra"

	"github.com/mcoot/blackbox-go/internal/model"
)

func newGameCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Game commands",
		Long: `Game commands drive a single session step by step.

With the memory backend a game only lives for one invocation, so use
--storage redis to keep a session between commands.`,
	}

	cmd.AddCommand(newGameNewCmd(rt))
	cmd.AddCommand(newGameShowCmd(rt))
	cmd.AddCommand(newGameFireCmd(rt))
	cmd.AddCommand(newGameGuessCmd(rt))
	cmd.AddCommand(newGameCheckCmd(rt))
	cmd.AddCommand(newGameRestartCmd(rt))
	cmd.AddCommand(newGameAbandonCmd(rt))

	return cmd
}

// gameFlags selects the board size of a new game
type gameFlags struct {
	difficulty string
	dimension  int
}

func (f *gameFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.difficulty, "difficulty", string(model.DifficultyNormal), "Difficulty: easy, normal, hard")
	cmd.Flags().IntVarP(&f.dimension, "dimension", "d", 0, "Board dimension (overrides --difficulty)")
}

func (f *gameFlags) newGame(cmd *cobra.Command, rt *runtime) (*model.Game, error) {
	if cmd.Flags().Changed("dimension") {
		return rt.app.GameController.NewGame(cmd.Context(), f.dimension)
	}
	return rt.app.GameController.NewGameForDifficulty(cmd.Context(), model.Difficulty(f.difficulty))
}

func newGameNewCmd(rt *runtime) *cobra.Command {
	var flags gameFlags

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Start a new game",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			game, err := flags.newGame(cmd, rt)
			if err != nil {
				return err
			}

			rt.output(cmd).Print(newGameView(game))
			return nil
		},
	}
	flags.register(cmd)

	return cmd
}

func newGameShowCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			game, err := rt.app.GameController.GetGame(cmd.Context(), model.GameID(args[0]))
			if err != nil {
				return err
			}

			rt.output(cmd).Print(newGameView(game))
			return nil
		},
	}
}

func newGameFireCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "fire <id> <row> <col>",
		Short: "Fire a ray from an edge cell",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := fireRay(cmd, rt, model.GameID(args[0]), args[1], args[2])
			if err != nil {
				return err
			}

			rt.output(cmd).Print(view)
			return nil
		},
	}
}

func fireRay(cmd *cobra.Command, rt *runtime, id model.GameID, rowArg, colArg string) (ShotView, error) {
	pos, err := parsePosition(rowArg, colArg)
	if err != nil {
		return ShotView{}, err
	}

	shot, err := rt.app.GameController.FireRay(cmd.Context(), id, pos)
	if err != nil {
		return ShotView{}, err
	}

	game, err := rt.app.GameController.GetGame(cmd.Context(), id)
	if err != nil {
		return ShotView{}, err
	}

	view := newShotView(shot)
	view.RaysRemaining = game.RaysRemaining
	return view, nil
}

func newGameGuessCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "guess <id> <row> <col>",
		Short: "Place or remove a guess on an interior cell",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := toggleGuess(cmd, rt, model.GameID(args[0]), args[1], args[2])
			if err != nil {
				return err
			}

			rt.output(cmd).Print(view)
			return nil
		},
	}
}

func toggleGuess(cmd *cobra.Command, rt *runtime, id model.GameID, rowArg, colArg string) (GuessView, error) {
	pos, err := parsePosition(rowArg, colArg)
	if err != nil {
		return GuessView{}, err
	}

	placed, err := rt.app.GameController.ToggleGuess(cmd.Context(), id, pos)
	if err != nil {
		return GuessView{}, err
	}

	game, err := rt.app.GameController.GetGame(cmd.Context(), id)
	if err != nil {
		return GuessView{}, err
	}

	return GuessView{
		Position:         newPosition(pos),
		Placed:           placed,
		GuessesRemaining: game.GuessesRemaining(),
	}, nil
}

func newGameCheckCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "check <id>",
		Short: "Check guesses and reveal the markers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := model.GameID(args[0])
			if _, err := rt.app.GameController.CheckAnswers(cmd.Context(), id); err != nil {
				return err
			}

			game, err := rt.app.GameController.GetGame(cmd.Context(), id)
			if err != nil {
				return err
			}

			rt.output(cmd).Print(newGameView(game))
			return nil
		},
	}
}

func newGameRestartCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "restart <id>",
		Short: "Replace a game with a new board of the same size",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			game, err := rt.app.GameController.Restart(cmd.Context(), model.GameID(args[0]))
			if err != nil {
				return err
			}

			rt.output(cmd).Print(newGameView(game))
			return nil
		},
	}
}

func newGameAbandonCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "abandon <id>",
		Short: "Abandon a game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := rt.app.GameController.AbandonGame(cmd.Context(), model.GameID(args[0])); err != nil {
				return err
			}

			rt.output(cmd).PrintMessage("Game abandoned")
			return nil
		},
	}
}
