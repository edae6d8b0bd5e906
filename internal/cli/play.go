package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mcoot/blackbox-go/internal/model"
)

const playHelp = `Commands:
  fire <row> <col>    fire a ray from an edge cell
  guess <row> <col>   place or remove a guess on an interior cell
  show                show the board
  check               check guesses and reveal the markers
  restart             start over on a new board of the same size
  new [difficulty|N]  start a new game
  stats               show games played, won and lost
  help                show this help
  quit                leave`

func newPlayCmd(rt *runtime) *cobra.Command {
	var flags gameFlags

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play interactively",
		Long:  "Play a game interactively, reading commands from standard input.\n\n" + playHelp,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			game, err := flags.newGame(cmd, rt)
			if err != nil {
				return err
			}

			in := cmd.InOrStdin()
			session := &playSession{
				cmd:         cmd,
				rt:          rt,
				out:         rt.output(cmd),
				id:          game.ID,
				interactive: isTerminal(in),
			}
			session.out.Print(newGameView(game))
			return session.run(in)
		},
	}
	flags.register(cmd)

	return cmd
}

// playSession is one interactive loop over the current game
type playSession struct {
	cmd *cobra.Command
	rt  *runtime
	out *Output
	id  model.GameID

	interactive bool // Show a prompt before each command
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func (p *playSession) run(in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for {
		p.prompt()
		if !scanner.Scan() {
			return scanner.Err()
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		quit, err := p.handle(strings.ToLower(fields[0]), fields[1:])
		if err != nil {
			p.out.PrintError(err)
		}
		if quit {
			return nil
		}
	}
}

func (p *playSession) prompt() {
	if p.interactive && !p.out.IsJSON() {
		fmt.Fprint(p.cmd.OutOrStdout(), "> ")
	}
}

func (p *playSession) handle(command string, args []string) (bool, error) {
	ctx := p.cmd.Context()
	controller := p.rt.app.GameController

	switch command {
	case "fire", "f":
		if len(args) != 2 {
			return false, fmt.Errorf("usage: fire <row> <col>")
		}
		view, err := fireRay(p.cmd, p.rt, p.id, args[0], args[1])
		if err != nil {
			return false, err
		}
		p.out.Print(view)

	case "guess", "g":
		if len(args) != 2 {
			return false, fmt.Errorf("usage: guess <row> <col>")
		}
		view, err := toggleGuess(p.cmd, p.rt, p.id, args[0], args[1])
		if err != nil {
			return false, err
		}
		p.out.Print(view)

	case "show", "s":
		return false, p.show()

	case "check", "c":
		if _, err := controller.CheckAnswers(ctx, p.id); err != nil {
			return false, err
		}
		return false, p.show()

	case "restart", "r":
		game, err := controller.Restart(ctx, p.id)
		if err != nil {
			return false, err
		}
		p.id = game.ID
		p.out.Print(newGameView(game))

	case "new", "n":
		game, err := p.newGame(args)
		if err != nil {
			return false, err
		}
		p.id = game.ID
		p.out.Print(newGameView(game))

	case "stats":
		stats, err := controller.GetStats(ctx)
		if err != nil {
			return false, err
		}
		p.out.Print(newStatsView(stats))

	case "help", "h", "?":
		p.out.PrintMessage(playHelp)

	case "quit", "exit", "q":
		return true, nil

	default:
		return false, fmt.Errorf("unknown command %q, try help", command)
	}
	return false, nil
}

func (p *playSession) show() error {
	game, err := p.rt.app.GameController.GetGame(p.cmd.Context(), p.id)
	if err != nil {
		return err
	}
	p.out.Print(newGameView(game))
	return nil
}

// newGame accepts either a difficulty name or an explicit dimension
func (p *playSession) newGame(args []string) (*model.Game, error) {
	ctx := p.cmd.Context()
	controller := p.rt.app.GameController

	if len(args) == 0 {
		old, err := controller.GetGame(ctx, p.id)
		if err != nil {
			return nil, err
		}
		return controller.NewGame(ctx, old.Dimension)
	}
	if dimension, err := strconv.Atoi(args[0]); err == nil {
		return controller.NewGame(ctx, dimension)
	}
	return controller.NewGameForDifficulty(ctx, model.Difficulty(args[0]))
}
