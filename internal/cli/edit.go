package cli

import (
	"github.com/spf13/cobra"

	"github.com/redlinehq/redline/internal/editor"
)

func newEditCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <file>",
		Short: "Edit a file with live checking",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := newEngine(opts)
			if err != nil {
				return err
			}
			return editor.Run(editor.Config{
				Path:     args[0],
				Dict:     eng.dict,
				Store:    eng.store,
				Ranker:   eng.ranker,
				Checker:  eng.checker,
				Settings: eng.settings,
			})
		},
	}
}
