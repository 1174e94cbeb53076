// Package cli wires the command line: the bare command opens the TUI, and a
// few subcommands give quick access to the same data without it.
package cli

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/sadopc/upfocus/internal/config"
	"github.com/sadopc/upfocus/internal/engine"
	"github.com/sadopc/upfocus/internal/store"
)

// Env is everything a command needs, opened once per invocation.
type Env struct {
	Store *store.Store
	Log   zerolog.Logger

	closers []io.Closer
}

func (e *Env) Close() {
	for i := len(e.closers) - 1; i >= 0; i-- {
		_ = e.closers[i].Close()
	}
}

// Engine builds an engine over the env's store.
func (e *Env) Engine(opts ...engine.Option) *engine.Engine {
	return engine.New(e.Store, append([]engine.Option{engine.WithLogger(e.Log)}, opts...)...)
}

// Opener produces the Env for a command run.
type Opener func() (*Env, error)

// OpenEnv loads config from the environment, starts the file logger and
// opens the database.
func OpenEnv() (*Env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log, logCloser := config.NewLogger(cfg)

	s, err := store.New(cfg.DBPath)
	if err != nil {
		logCloser.Close()
		return nil, fmt.Errorf("open database: %w", err)
	}
	log.Info().Str("db", cfg.DBPath).Msg("store opened")
	return &Env{Store: s, Log: log, closers: []io.Closer{logCloser, s}}, nil
}

// RunTUI starts the interactive app; the root command calls it.
type RunTUI func(env *Env) error

// NewRootCmd assembles the command tree.
func NewRootCmd(open Opener, runTUI RunTUI) *cobra.Command {
	root := &cobra.Command{
		Use:           "upfocus",
		Short:         "Focus timer, session stats and water tracking in your terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := open()
			if err != nil {
				return err
			}
			defer env.Close()
			return runTUI(env)
		},
	}

	root.AddCommand(newWaterCmd(open), newStatsCmd(open), newExportCmd(open))
	return root
}
