package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/redlinehq/redline/internal/settings"
)

func newConfigCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show and change checker settings",
	}
	cmd.AddCommand(newConfigShowCmd(opts))
	cmd.AddCommand(newConfigEnableCmd(opts, true))
	cmd.AddCommand(newConfigEnableCmd(opts, false))
	cmd.AddCommand(newConfigPatternsCmd(opts))
	return cmd
}

func newConfigShowCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr := settings.NewManager(settings.NewStore(opts.configPath))
			g := mgr.Global()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "enabled:          %v\n", g.Enabled)
			fmt.Fprintf(out, "show underlines:  %v\n", g.ShowUnderlines)
			fmt.Fprintf(out, "auto-correct:     %v\n", g.AutoCorrect)
			fmt.Fprintf(out, "grammar check:    %v\n", g.GrammarCheck)
			fmt.Fprintf(out, "language:         %s\n", g.Language)
			if len(g.DisabledPatterns) > 0 {
				fmt.Fprintf(out, "disabled on:      %s\n", strings.Join(g.DisabledPatterns, ", "))
			}
			return nil
		},
	}
}

func newConfigEnableCmd(opts *options, enable bool) *cobra.Command {
	use, short := "enable", "Turn checking on"
	if !enable {
		use, short = "disable", "Turn checking off"
	}
	var site string

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr := settings.NewManager(settings.NewStore(opts.configPath))
			if site != "" {
				if err := mgr.SetSiteEnabled(site, enable); err != nil {
					return fmt.Errorf("save settings: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: checking %sd\n", site, use)
				return nil
			}
			err := mgr.Update(func(g *settings.Global) { g.Enabled = enable })
			if err != nil {
				return fmt.Errorf("save settings: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "checking %sd\n", use)
			return nil
		},
	}

	cmd.Flags().StringVar(&site, "site", "", "apply to one hostname instead of globally")
	return cmd
}

func newConfigPatternsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "patterns [pattern...]",
		Short: "Set the hostname patterns checking is disabled on",
		Long:  "Patterns use * as a wildcard and match case-insensitively,\ne.g. '*.bank.com'. With no arguments the list is cleared.",
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr := settings.NewManager(settings.NewStore(opts.configPath))
			err := mgr.Update(func(g *settings.Global) { g.DisabledPatterns = args })
			if err != nil {
				return fmt.Errorf("save settings: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d pattern(s) saved\n", len(args))
			return nil
		},
	}
}
