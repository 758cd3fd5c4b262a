// main.go
//
// CLI entrypoint for rooted.
//
// Commands:
//   rooted serve   JSON API for the browser page (default when no command is given)
//   rooted play    play today's puzzle in the terminal
//   rooted check   report fixture problems in the puzzle rotation
//
// Configuration comes from the environment (and .env), see internal/config.

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/rooted/internal/config"
	"github.com/robalobadob/rooted/internal/daily"
	"github.com/robalobadob/rooted/internal/game"
	"github.com/robalobadob/rooted/internal/httpserver"
	"github.com/robalobadob/rooted/internal/puzzle"
	"github.com/robalobadob/rooted/internal/store"
	"github.com/robalobadob/rooted/internal/tui"
)

var (
	puzzlesPath string
	playDay     int
	checkStrict bool
)

// errProblems is returned by `check --strict` when the rotation has defects.
var errProblems = errors.New("puzzle rotation has problems")

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "rooted",
		Short:        "Daily root-word puzzle",
		SilenceUsage: true,
		RunE:         runServe,
	}
	rootCmd.PersistentFlags().StringVar(&puzzlesPath, "puzzles", "", "TOML puzzle rotation (overrides PUZZLES_FILE)")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON API",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	})

	playCmd := &cobra.Command{
		Use:   "play",
		Short: "Play today's puzzle in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runPlay,
	}
	playCmd.Flags().IntVar(&playDay, "day", 0, "day index to play instead of today")
	rootCmd.AddCommand(playCmd)

	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Report fixture problems in the puzzle rotation",
		Args:  cobra.NoArgs,
		RunE:  runCheck,
	}
	checkCmd.Flags().BoolVar(&checkStrict, "strict", false, "exit non-zero when problems are found")
	rootCmd.AddCommand(checkCmd)

	return rootCmd
}

// setup loads config, configures the global logger and loads the rotation.
func setup(cmd *cobra.Command, logOut io.Writer) (config.Config, []puzzle.Puzzle, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, nil, err
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if logOut != nil {
		log.Logger = log.Output(logOut)
	}
	if cmd.Flags().Changed("puzzles") {
		cfg.PuzzlesFile = puzzlesPath
	}
	puzzles, err := puzzle.Load(cfg.PuzzlesFile)
	if err != nil {
		return cfg, nil, fmt.Errorf("load puzzles: %w", err)
	}
	return cfg, puzzles, nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, puzzles, err := setup(cmd, nil)
	if err != nil {
		log.Error().Err(err).Msg("startup")
		return err
	}
	for _, pr := range puzzle.CheckAll(puzzles) {
		log.Warn().Str("root", pr.Root).Str("solution", pr.Solution).Str("problem", string(pr.Kind)).Msg("fixture problem")
	}
	if cfg.SessionSecret == config.DefaultSecret && cfg.Production {
		log.Warn().Msg("SESSION_SECRET is the development default")
	}

	srv, err := httpserver.New(store.NewMemoryStore(), httpserver.Options{
		Puzzles:       puzzles,
		Secret:        cfg.SessionSecret,
		ClientOrigin:  cfg.ClientOrigin,
		SecureCookies: cfg.Production,
		RequireRoot:   cfg.RequireRoot,
	})
	if err != nil {
		log.Error().Err(err).Msg("build server")
		return err
	}
	log.Info().Str("port", cfg.Port).Int("puzzles", len(puzzles)).Msg("starting rooted")
	if err := srv.Start(":" + cfg.Port); err != nil {
		log.Error().Err(err).Msg("server exited")
		return err
	}
	return nil
}

func runPlay(cmd *cobra.Command, _ []string) error {
	// The alt screen owns the terminal; keep log lines out of it.
	cfg, puzzles, err := setup(cmd, io.Discard)
	if err != nil {
		return err
	}
	now := time.Now()
	day := daily.DayIndex(now)
	if cmd.Flags().Changed("day") {
		day = playDay
	}
	sess, err := game.Start(puzzles, day, game.WithRootCheck(cfg.RequireRoot))
	if err != nil {
		return err
	}
	m := tui.NewModel(sess, daily.DateKey(now))
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	sum := sess.Summary()
	fmt.Fprintf(cmd.OutOrStdout(), "%s: found %d of %d\n", sess.Puzzle().Root, sum.FoundCount, sum.TotalCount)
	return nil
}

func runCheck(cmd *cobra.Command, _ []string) error {
	_, puzzles, err := setup(cmd, zerolog.ConsoleWriter{Out: cmd.ErrOrStderr(), NoColor: true})
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	today := daily.DayIndex(time.Now()) % len(puzzles)
	for i, p := range puzzles {
		marker := " "
		if i == today {
			marker = "*"
		}
		fmt.Fprintf(out, "%s %d %s/%s %d solutions\n", marker, i, p.Root, p.Extras, len(p.Solutions))
	}
	problems := puzzle.CheckAll(puzzles)
	for _, pr := range problems {
		fmt.Fprintf(out, "  puzzle %d: %s\n", pr.Puzzle, pr)
	}
	fmt.Fprintf(out, "%d problem(s)\n", len(problems))
	if checkStrict && len(problems) > 0 {
		return errProblems
	}
	return nil
}
