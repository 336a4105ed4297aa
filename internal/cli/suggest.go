package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newSuggestCmd(opts *options) *cobra.Command {
	var max int

	cmd := &cobra.Command{
		Use:   "suggest <word> [word...]",
		Short: "Show ranked corrections for words",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := newEngine(opts)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, word := range args {
				if eng.dict.IsCorrect(word) {
					fmt.Fprintf(out, "%s  %s\n", styleWord.Render(word), styleClean.Render("correct"))
					continue
				}
				suggestions := eng.ranker.Suggest(word, max)
				if len(suggestions) == 0 {
					fmt.Fprintf(out, "%s  %s\n", styleWord.Render(word), stylePosition.Render("no suggestions"))
					continue
				}
				fmt.Fprintf(out, "%s  %s\n", styleWord.Render(word),
					styleSuggestion.Render(strings.Join(suggestions, ", ")))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&max, "max", 5, "maximum suggestions per word")
	return cmd
}
