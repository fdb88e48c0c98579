package main

import (
	"fmt"

	"backend-vietrip/internal/custom"
	"backend-vietrip/internal/itinerary"
	"backend-vietrip/internal/migration"
	"backend-vietrip/internal/resolver"
	"backend-vietrip/internal/trip"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
)

func (a *app) migrateCmd() *cobra.Command {
	var userID, dir string
	cmd := &cobra.Command{
		Use:   "migrate-legacy",
		Short: "Move a user's legacy SQLite store into Postgres",
		RunE: func(cmd *cobra.Command, args []string) error {
			if userID == "" {
				return fmt.Errorf("--user required")
			}
			if dir == "" {
				dir = a.cfg.LegacyStoreDir
			}
			return a.withPool(func(pool *pgxpool.Pool) error {
				customSvc := custom.NewService(pool, nil)
				m := migration.NewMigrator(dir, migration.NewFlags(pool), migration.Services{
					Custom:    customSvc,
					Trips:     trip.NewService(pool, nil, a.cfg.InviteTTL()),
					Itinerary: itinerary.NewService(pool, resolver.New(customSvc, a.log), nil),
				}, a.log)
				report, err := m.Run(cmd.Context(), userID)
				if perr := a.printJSON(report); perr != nil {
					return perr
				}
				return err
			})
		},
	}
	cmd.Flags().StringVarP(&userID, "user", "u", "", "User ID (required)")
	cmd.Flags().StringVarP(&dir, "dir", "d", "", "Legacy store directory (defaults to LEGACY_STORE_DIR)")
	return cmd
}
