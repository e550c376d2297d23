package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(menuCmd)
	menuCmd.AddCommand(menuStatusCmd)
	menuCmd.AddCommand(menuToggleCmd)
}

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Inspect and change the navigation menu state",
}

var menuStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether the menu is collapsed",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession(context.Background())
		if err != nil {
			return err
		}
		defer sess.Close()

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "collapsed: %t\n", sess.prefs.MenuCollapsed())
		fmt.Fprintf(out, "small screen: %t (%dpx)\n", sess.prefs.IsSmallScreen(), sess.watcher.Width())
		return nil
	},
}

var menuToggleCmd = &cobra.Command{
	Use:   "toggle",
	Short: "Collapse or expand the menu",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession(context.Background())
		if err != nil {
			return err
		}
		defer sess.Close()

		sess.prefs.SetMenuCollapsed(!sess.prefs.MenuCollapsed())
		fmt.Fprintf(cmd.OutOrStdout(), "collapsed: %t\n", sess.prefs.MenuCollapsed())
		return nil
	},
}
