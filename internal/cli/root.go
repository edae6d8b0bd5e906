package cli

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mcoot/blackbox-go/internal/factory"
	"github.com/mcoot/blackbox-go/internal/model"
)

// runtime carries the configuration and wired application shared by every
// command of one invocation
type runtime struct {
	cfg    *Config
	cfgErr error
	app    *factory.App
	owned  bool // App was built by this invocation and must be closed
}

func (rt *runtime) output(cmd *cobra.Command) *Output {
	return NewOutput(rt.cfg.Output, cmd.OutOrStdout(), cmd.ErrOrStderr())
}

func (rt *runtime) open(cmd *cobra.Command) error {
	if rt.cfgErr != nil {
		return rt.cfgErr
	}
	if err := rt.cfg.Validate(); err != nil {
		return err
	}
	if rt.app != nil {
		return nil
	}

	logger := rt.cfg.Logger(cmd.ErrOrStderr())
	app, err := factory.New(rt.cfg.FactoryConfig(logger))
	if err != nil {
		return err
	}
	rt.app = app
	rt.owned = true

	logger.Debug("cli started",
		slog.String("command", cmd.CommandPath()),
		slog.String("storage", rt.cfg.StorageType),
	)
	return nil
}

func (rt *runtime) close() error {
	if !rt.owned || rt.app == nil {
		return nil
	}
	err := rt.app.Close()
	rt.app = nil
	rt.owned = false
	return err
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd, _ := newRootCmd(nil)
	return cmd
}

// NewRootCmdWithApp creates a root command that runs against an already
// wired application instead of building one from configuration
func NewRootCmdWithApp(app *factory.App) *cobra.Command {
	cmd, _ := newRootCmd(app)
	return cmd
}

func newRootCmd(app *factory.App) (*cobra.Command, *runtime) {
	rt := &runtime{app: app}
	rt.cfg, rt.cfgErr = LoadConfig()
	if rt.cfgErr != nil {
		rt.cfg = &Config{StorageType: factory.StorageTypeMemory, Output: OutputText}
	}
	cfg := rt.cfg

	rootCmd := &cobra.Command{
		Use:   "blackbox",
		Short: "Black Box deduction puzzle",
		Long: `blackbox generates and plays Black Box puzzles.

Markers are hidden on a square grid. Fire rays from the edges and watch
where they come out to work out where the markers are.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return rt.open(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return rt.close()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json (env: BLACKBOX_OUTPUT)")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose logging")
	rootCmd.PersistentFlags().StringVar(&cfg.StorageType, "storage", cfg.StorageType, "Storage backend: memory, redis (env: BLACKBOX_STORAGE_TYPE)")
	rootCmd.PersistentFlags().StringVar(&cfg.RedisURL, "redis-url", cfg.RedisURL, "Redis URL (env: BLACKBOX_REDIS_URL)")

	// Add subcommands
	rootCmd.AddCommand(newGenerateCmd(rt))
	rootCmd.AddCommand(newSurveyCmd(rt))
	rootCmd.AddCommand(newGameCmd(rt))
	rootCmd.AddCommand(newPlayCmd(rt))
	rootCmd.AddCommand(newStatsCmd(rt))

	return rootCmd, rt
}

// Execute runs the root command and returns the process exit code
func Execute(ctx context.Context) int {
	cmd, rt := newRootCmd(nil)
	if err := cmd.ExecuteContext(ctx); err != nil {
		_ = rt.close()
		rt.output(cmd).PrintError(err)
		return 1
	}
	return 0
}

// parsePosition parses a row and column given on the command line
func parsePosition(rowArg, colArg string) (model.Position, error) {
	row, err := strconv.Atoi(rowArg)
	if err != nil {
		return model.Position{}, fmt.Errorf("%w: row %q is not a number", model.ErrInvalidPosition, rowArg)
	}
	col, err := strconv.Atoi(colArg)
	if err != nil {
		return model.Position{}, fmt.Errorf("%w: column %q is not a number", model.ErrInvalidPosition, colArg)
	}
	return model.Position{Row: row, Col: col}, nil
}
