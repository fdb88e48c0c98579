// Command tripctl runs maintenance tasks against the trip planner database.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"backend-vietrip/internal/config"
	"backend-vietrip/internal/db"
	"backend-vietrip/internal/logger"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	loadConfigFn      = config.Load
	connectPostgresFn = db.ConnectPostgres
)

type app struct {
	cfg config.Config
	log zerolog.Logger
	out io.Writer
}

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	a := &app{out: out}
	root := &cobra.Command{
		Use:           "tripctl",
		Short:         "Maintenance CLI for the trip planner backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			a.cfg = loadConfigFn()
			a.log = logger.New("tripctl", a.cfg.LogLevel)
		},
	}
	root.SetOut(out)

	root.AddCommand(a.schemaCmd(), a.usersCmd(), a.migrateCmd(), a.catalogCmd())
	return root
}

func (a *app) schemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withPool(func(pool *pgxpool.Pool) error {
				if err := db.CreateSchema(cmd.Context(), pool); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(a.out, "schema ready")
				return nil
			})
		},
	}
}

func (a *app) withPool(fn func(*pgxpool.Pool) error) error {
	pool, err := connectPostgresFn(a.cfg)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer pool.Close()
	return fn(pool)
}

func (a *app) printJSON(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
