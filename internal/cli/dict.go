package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newDictCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dict",
		Short: "Manage the custom dictionary",
	}
	cmd.AddCommand(newDictListCmd(opts))
	cmd.AddCommand(newDictAddCmd(opts))
	cmd.AddCommand(newDictRemoveCmd(opts))
	cmd.AddCommand(newDictImportCmd(opts))
	cmd.AddCommand(newDictExportCmd(opts))
	return cmd
}

func newDictListCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List custom dictionary words",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := newEngine(opts)
			if err != nil {
				return err
			}
			words := eng.dict.CustomWords()
			if len(words) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), stylePosition.Render("custom dictionary is empty"))
				return nil
			}
			for _, w := range words {
				fmt.Fprintln(cmd.OutOrStdout(), w)
			}
			return nil
		},
	}
}

func newDictAddCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "add <word> [word...]",
		Short: "Add words to the custom dictionary",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := newEngine(opts)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, word := range args {
				added, err := eng.store.Add(word)
				if err != nil {
					return fmt.Errorf("add %q: %w", word, err)
				}
				if added {
					fmt.Fprintf(out, "added %s\n", styleWord.Render(word))
				} else {
					fmt.Fprintf(out, "%s already present\n", styleWord.Render(word))
				}
			}
			return nil
		},
	}
}

func newDictRemoveCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <word> [word...]",
		Short: "Remove words from the custom dictionary",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := newEngine(opts)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, word := range args {
				removed, err := eng.store.Remove(word)
				if err != nil {
					return fmt.Errorf("remove %q: %w", word, err)
				}
				if removed {
					fmt.Fprintf(out, "removed %s\n", styleWord.Render(word))
				} else {
					fmt.Fprintf(out, "%s not in dictionary\n", styleWord.Render(word))
				}
			}
			return nil
		},
	}
}

func newDictImportCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.json>",
		Short: "Merge a JSON word list into the custom dictionary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := newEngine(opts)
			if err != nil {
				return err
			}
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}
			added, err := eng.store.ImportJSON(data)
			if err != nil {
				return fmt.Errorf("import %s: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d new word(s)\n", added)
			return nil
		},
	}
}

func newDictExportCmd(opts *options) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the custom dictionary as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := newEngine(opts)
			if err != nil {
				return err
			}
			data, err := eng.store.ExportJSON()
			if err != nil {
				return fmt.Errorf("export dictionary: %w", err)
			}
			if outPath == "" {
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}
			if err := os.WriteFile(outPath, append(data, '\n'), 0644); err != nil {
				return fmt.Errorf("write %s: %w", outPath, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "exported to %s\n", outPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "output", "o", "", "write to a file instead of stdout")
	return cmd
}
