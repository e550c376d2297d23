package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"toolterm/internal/ui"
)

func init() {
	rootCmd.AddCommand(uiCmd)
}

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Launch the toolterm TUI",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI()
	},
}

func runTUI() error {
	if !hasTTY() {
		return fmt.Errorf("the UI requires an interactive terminal; try 'toolterm theme --help'")
	}

	sess, err := openSession(context.Background())
	if err != nil {
		return err
	}
	defer sess.Close()

	logger := log.With().Str("component", "ui").Str("session", sess.id).Logger()
	program := ui.NewProgram(sess.prefs, sess.watcher, logger)
	if err := program.Start(); err != nil {
		return fmt.Errorf("program terminated: %w", err)
	}
	return nil
}

func hasTTY() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}
