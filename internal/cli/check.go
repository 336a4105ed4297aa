package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/redlinehq/redline/internal/checker"
)

type fileReport struct {
	Name         string                `json:"name"`
	WordsChecked int                   `json:"wordsChecked"`
	Spans        []checker.Misspelling `json:"spans"`

	text string
}

func newCheckCmd(opts *options) *cobra.Command {
	var (
		grammar bool
		maxSugg int
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "check [file...]",
		Short: "Check files (or stdin) for misspellings and grammar slips",
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := newEngine(opts)
			if err != nil {
				return err
			}
			ignored := func(string) bool { return false }
			checkOpts := checker.Options{
				Grammar:        grammar,
				MaxSuggestions: maxSugg,
				IsIgnored:      ignored,
			}

			var reports []fileReport
			if len(args) == 0 {
				text, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
				res := eng.checker.Check(string(text), checkOpts)
				reports = append(reports, fileReport{
					Name: "<stdin>", WordsChecked: res.WordsChecked,
					Spans: res.Spans, text: string(text),
				})
			}
			for _, name := range args {
				data, err := os.ReadFile(name)
				if err != nil {
					return fmt.Errorf("read %s: %w", name, err)
				}
				res := eng.checker.Check(string(data), checkOpts)
				reports = append(reports, fileReport{
					Name: name, WordsChecked: res.WordsChecked,
					Spans: res.Spans, text: string(data),
				})
			}

			out := cmd.OutOrStdout()
			total := 0
			for _, rep := range reports {
				total += len(rep.Spans)
			}
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(reports); err != nil {
					return err
				}
			} else {
				for _, rep := range reports {
					printReport(out, rep)
				}
				if total == 0 {
					fmt.Fprintln(out, styleClean.Render("No issues found."))
				} else {
					fmt.Fprintln(out, styleSummary.Render(fmt.Sprintf("%d issue(s) found.", total)))
				}
			}
			if total > 0 {
				return errIssuesFound
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&grammar, "grammar", true, "also run the confused-word-pair rules")
	cmd.Flags().IntVar(&maxSugg, "max-suggestions", 0, "cap suggestions per finding (0 = default)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit the report as JSON")
	return cmd
}

// errIssuesFound makes `check` exit non-zero without printing a second
// error line; the report already said everything.
var errIssuesFound = errSilent{}

type errSilent struct{}

func (errSilent) Error() string { return "issues found" }

func printReport(out io.Writer, rep fileReport) {
	for _, sp := range rep.Spans {
		line, col := lineCol(rep.text, sp.StartIndex)
		loc := fmt.Sprintf("%s:%d:%d", rep.Name, line, col)
		entry := fmt.Sprintf("%s  %s", stylePosition.Render(loc), styleWord.Render(sp.Word))
		if len(sp.Suggestions) > 0 {
			entry += "  " + styleSuggestion.Render(strings.Join(sp.Suggestions, ", "))
		}
		if sp.Rule != "" {
			entry += "  " + styleRule.Render("("+sp.Rule+")")
		}
		fmt.Fprintln(out, entry)
	}
}

// lineCol converts a rune offset into 1-based line and column numbers.
func lineCol(text string, offset int) (line, col int) {
	line, col = 1, 1
	for i, r := range []rune(text) {
		if i == offset {
			break
		}
		if r == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return line, col
}
