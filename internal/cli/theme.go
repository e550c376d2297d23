package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"toolterm/internal/theme"
)

var themeShowFormat string

func init() {
	rootCmd.AddCommand(themeCmd)
	themeCmd.AddCommand(themeListCmd)
	themeCmd.AddCommand(themeGetCmd)
	themeCmd.AddCommand(themeSetCmd)
	themeCmd.AddCommand(themeToggleCmd)
	themeCmd.AddCommand(themeShowCmd)

	themeShowCmd.Flags().StringVar(&themeShowFormat, "format", "yaml", "output format (yaml, json)")
}

var themeCmd = &cobra.Command{
	Use:   "theme",
	Short: "Inspect and change the color theme",
}

var themeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available themes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession(context.Background())
		if err != nil {
			return err
		}
		defer sess.Close()

		current := sess.prefs.CurrentTheme().Key
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "\tKEY\tNAME\tBASE\tPRIMARY\tBACKGROUND")
		for _, rec := range theme.All() {
			marker := ""
			if rec.Key == current {
				marker = "*"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", marker, rec.Key, rec.Name, rec.Base, rec.Colors.Primary, rec.Colors.Background)
		}
		return w.Flush()
	},
}

var themeGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show the current theme",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession(context.Background())
		if err != nil {
			return err
		}
		defer sess.Close()

		rec := sess.prefs.CurrentTheme()
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s (%s)\n", rec.Key, rec.Name)
		fmt.Fprintf(out, "base: %s\n", rec.Base)
		if stored := sess.prefs.ThemeKey(); stored != rec.Key {
			fmt.Fprintf(out, "stored key %q is unknown; using fallback\n", stored)
		}
		return nil
	},
}

var themeSetCmd = &cobra.Command{
	Use:   "set <key>",
	Short: "Select a theme by key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key := strings.TrimSpace(args[0])
		if _, ok := theme.Lookup(key); !ok {
			return fmt.Errorf("%w: %q (available: %s)", theme.ErrUnknownTheme, key, strings.Join(theme.Keys(), ", "))
		}

		sess, err := openSession(context.Background())
		if err != nil {
			return err
		}
		defer sess.Close()

		sess.prefs.SetTheme(key)
		rec := sess.prefs.CurrentTheme()
		log.Info().Str("theme", rec.Key).Msg("theme selected")
		fmt.Fprintf(cmd.OutOrStdout(), "Theme set to %s\n", rec.Name)
		return nil
	},
}

var themeToggleCmd = &cobra.Command{
	Use:   "toggle",
	Short: "Switch between the default light and dark themes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession(context.Background())
		if err != nil {
			return err
		}
		defer sess.Close()

		sess.prefs.ToggleDark()
		fmt.Fprintf(cmd.OutOrStdout(), "Theme set to %s\n", sess.prefs.CurrentTheme().Name)
		return nil
	},
}

var themeShowCmd = &cobra.Command{
	Use:   "show [key]",
	Short: "Print a theme's style overrides",
	Long:  "Print the full record of a theme, including the style overrides bundle. Defaults to the current theme.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var rec theme.Record
		if len(args) == 1 {
			found, ok := theme.Lookup(args[0])
			if !ok {
				return fmt.Errorf("%w: %q", theme.ErrUnknownTheme, args[0])
			}
			rec = found
		} else {
			sess, err := openSession(context.Background())
			if err != nil {
				return err
			}
			rec = sess.prefs.CurrentTheme()
			sess.Close()
		}

		out := cmd.OutOrStdout()
		switch strings.ToLower(themeShowFormat) {
		case "yaml", "yml":
			enc := yaml.NewEncoder(out)
			enc.SetIndent(2)
			if err := enc.Encode(rec); err != nil {
				return fmt.Errorf("encode yaml: %w", err)
			}
			return enc.Close()
		case "json":
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			if err := enc.Encode(rec); err != nil {
				return fmt.Errorf("encode json: %w", err)
			}
			return nil
		default:
			return fmt.Errorf("unsupported format: %s", themeShowFormat)
		}
	},
}
