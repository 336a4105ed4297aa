// Package cli wires the redline engine into a command line: batch checking,
// suggestion lookups, custom dictionary management and the interactive
// editor.
package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/redlinehq/redline/internal/checker"
	"github.com/redlinehq/redline/internal/dictionary"
	"github.com/redlinehq/redline/internal/log"
	"github.com/redlinehq/redline/internal/settings"
	"github.com/redlinehq/redline/internal/suggest"
)

type options struct {
	configPath string
	dictPath   string
	logPath    string
}

// NewRootCmd builds the redline command tree.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "redline",
		Short:         "On-device spelling and grammar checking",
		Long:          "redline checks text for misspellings and confused word pairs,\nentirely on this machine. No text ever leaves the device.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.configPath == "" {
				opts.configPath = filepath.Join(configDir(), "config.yaml")
			}
			if opts.dictPath == "" {
				opts.dictPath = filepath.Join(configDir(), "custom-words.txt")
			}
			if opts.logPath != "" {
				closer, err := log.Init(opts.logPath)
				if err != nil {
					return fmt.Errorf("open log file: %w", err)
				}
				cobra.OnFinalize(closer)
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "settings file (default: user config dir)")
	root.PersistentFlags().StringVar(&opts.dictPath, "dict", "", "custom dictionary file (default: user config dir)")
	root.PersistentFlags().StringVar(&opts.logPath, "log", os.Getenv("REDLINE_DEBUG"), "append debug log to this file")

	root.AddCommand(newCheckCmd(opts))
	root.AddCommand(newSuggestCmd(opts))
	root.AddCommand(newDictCmd(opts))
	root.AddCommand(newEditCmd(opts))
	root.AddCommand(newConfigCmd(opts))
	return root
}

// Execute runs the command tree and returns a process exit code.
func Execute() int {
	if err := NewRootCmd().Execute(); err != nil {
		// The check report already explained itself; only unexpected
		// failures get an error line.
		if !errors.As(err, &errSilent{}) {
			fmt.Fprintln(os.Stderr, "redline: "+err.Error())
		}
		return 1
	}
	return 0
}

func configDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		base = "."
	}
	return filepath.Join(base, "redline")
}

// engine bundles the pipeline pieces every command needs.
type engine struct {
	dict     *dictionary.Dictionary
	store    *dictionary.Store
	ranker   *suggest.Ranker
	checker  *checker.Checker
	settings *settings.Manager
}

func newEngine(opts *options) (*engine, error) {
	dict := dictionary.New()
	store := dictionary.NewStore(opts.dictPath)
	words, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("load custom dictionary: %w", err)
	}
	dict.SetCustom(words)
	ranker := suggest.NewRanker(dict)
	return &engine{
		dict:     dict,
		store:    store,
		ranker:   ranker,
		checker:  checker.New(dict, ranker),
		settings: settings.NewManager(settings.NewStore(opts.configPath)),
	}, nil
}
