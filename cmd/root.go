package cmd

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/signal"
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/they4kman/sparsesweep/console"
	"github.com/they4kman/sparsesweep/director/constraint"
	"github.com/they4kman/sparsesweep/director/random"
	"github.com/they4kman/sparsesweep/game"
)

type options struct {
	rows, cols int
	mines      int
	mode       game.Mode
	seed       int64

	preset     string
	configPath string

	director string
	maxSteps int

	color    bool
	snapshot bool
	verbose  bool
}

func newRootCmd() *cobra.Command {
	return newCommand(&options{})
}

func newCommand(opts *options) *cobra.Command {
	defaults := game.NewGameConfig()

	rootCmd := &cobra.Command{
		Use:   "sparsesweep",
		Short: "Play Minesweeper in the terminal, by hand or computer-driven",
		Long: `sparsesweep is a console Minesweeper game whose board only stores
the mines, numbers, flags and revealed cells.

Run with no arguments to play manually. Each turn, enter a row and a column
to reveal a cell, or add a ? to toggle a flag:
	3 4
	3 4 ?

Use the director flag to make the computer play for you
	sparsesweep --director constraint
`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts)
		},
	}

	flags := rootCmd.Flags()
	flags.IntVarP(&opts.rows, "rows", "r", defaults.Rows, "Number of rows of the board")
	flags.IntVarP(&opts.cols, "cols", "c", defaults.Cols, "Number of columns of the board")
	flags.IntVarP(&opts.mines, "mines", "m", defaults.Mines, "Number of mines to place in the board")
	flags.Var(newGameModeValue(defaults.Mode, &opts.mode), "mode", `Game mode, controlling which cells the first reveal keeps free of mines.
safe-cell: only the revealed cell
safe-area: the revealed cell and its neighbors, when there is room`)
	flags.Int64Var(&opts.seed, "seed", 0, "Seed for mine placement (0 picks one from the clock)")
	flags.StringVar(&opts.preset, "preset", "", "Board preset: "+strings.Join(presetNames(), ", "))
	flags.StringVar(&opts.configPath, "config", "", "YAML file with rows, cols, mines, mode and seed")
	flags.StringVarP(&opts.director, "director", "d", "none", "Make the computer play: none, random or constraint")
	flags.IntVar(&opts.maxSteps, "max-steps", 0, "Stop a director after this many moves (0 for no limit)")
	flags.BoolVar(&opts.color, "color", false, "Color the board glyphs")
	flags.BoolVar(&opts.snapshot, "snapshot", false, "Print a YAML snapshot of the board when the game ends")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Log game events to stderr")

	return rootCmd
}

func presetNames() []string {
	names := make([]string, 0, len(game.Presets))
	for name := range game.Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// resolveConfig layers the preset, then the config file, then any flag set
// explicitly on the command line over the defaults
func resolveConfig(cmd *cobra.Command, opts *options) (game.GameConfig, error) {
	config := game.NewGameConfig()

	if opts.preset != "" {
		if err := config.ApplyPreset(opts.preset); err != nil {
			return config, err
		}
	}

	if opts.configPath != "" {
		file, err := os.Open(opts.configPath)
		if err != nil {
			return config, errors.Wrap(err, "opening config")
		}
		defer file.Close()

		config, err = game.LoadGameConfig(file, config)
		if err != nil {
			return config, errors.Wrapf(err, "reading config %s", opts.configPath)
		}
	}

	flags := cmd.Flags()
	if flags.Changed("rows") {
		config.Rows = opts.rows
	}
	if flags.Changed("cols") {
		config.Cols = opts.cols
	}
	if flags.Changed("mines") {
		config.Mines = opts.mines
	}
	if flags.Changed("mode") {
		config.Mode = opts.mode
	}
	if flags.Changed("seed") {
		config.Seed = opts.seed
	}

	if config.Seed == 0 {
		config.Seed = time.Now().UnixNano()
	}

	return config, errors.Wrap(config.Validate(), "invalid board")
}

func newLogger(verbose bool, out io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.WarnLevel)
	}
	return logger
}

func newDirector(name string, seed int64, logger logrus.FieldLogger) (game.Director, error) {
	rnd := rand.New(rand.NewSource(seed + 1))
	switch name {
	case "", "none":
		return nil, nil
	case "random":
		return random.New(rnd), nil
	case "constraint":
		return constraint.New(random.New(rnd), logger), nil
	default:
		return nil, fmt.Errorf("unknown director %q", name)
	}
}

func run(cmd *cobra.Command, opts *options) error {
	logger := newLogger(opts.verbose, cmd.ErrOrStderr())

	config, err := resolveConfig(cmd, opts)
	if err != nil {
		return err
	}
	logger.WithFields(logrus.Fields{
		"rows":  config.Rows,
		"cols":  config.Cols,
		"mines": config.Mines,
		"mode":  config.Mode,
		"seed":  config.Seed,
	}).Debug("creating board")

	board, err := config.NewBoard(logger)
	if err != nil {
		return errors.Wrap(err, "creating board")
	}

	director, err := newDirector(opts.director, config.Seed, logger)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	renderer := &console.Renderer{Color: opts.color}

	if director != nil {
		steps, err := game.Autoplay(board, director, opts.maxSteps)
		if err != nil {
			return errors.Wrap(err, "director failed")
		}
		fmt.Fprint(out, renderer.Render(board))
		fmt.Fprintf(out, "%s after %d moves\n", board.Phase(), steps)
	} else {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		session := &console.Session{
			Board:    board,
			In:       cmd.InOrStdin(),
			Out:      out,
			Renderer: renderer,
			Log:      logger,
		}
		if _, err := session.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
	}

	if opts.snapshot {
		serialized, err := board.Snapshot().Serialize()
		if err != nil {
			return errors.Wrap(err, "serializing snapshot")
		}
		fmt.Fprint(out, serialized)
	}
	return nil
}

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type gameModeValue game.Mode

var _ pflag.Value = (*gameModeValue)(nil)

func newGameModeValue(val game.Mode, p *game.Mode) *gameModeValue {
	*p = val
	return (*gameModeValue)(p)
}

func (modeVal *gameModeValue) String() string {
	return game.Mode(*modeVal).String()
}

func (modeVal *gameModeValue) Set(value string) error {
	mode, err := game.ParseMode(value)
	if err != nil {
		return err
	}
	*modeVal = gameModeValue(mode)
	return nil
}

func (modeVal *gameModeValue) Type() string {
	return "game.Mode"
}
