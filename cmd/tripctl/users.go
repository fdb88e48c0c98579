package main

import (
	"fmt"

	"backend-vietrip/internal/auth"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
)

func (a *app) usersCmd() *cobra.Command {
	usersCmd := &cobra.Command{Use: "users", Short: "User operations"}

	var username, password, displayName string
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			if username == "" || password == "" {
				return fmt.Errorf("--username and --password required")
			}
			return a.withPool(func(pool *pgxpool.Pool) error {
				svc := auth.NewService(a.cfg.JWTSecret, pool)
				profile, err := svc.CreateUser(cmd.Context(), auth.CreateUserRequest{
					Username:    username,
					Password:    password,
					DisplayName: displayName,
				})
				if err != nil {
					return err
				}
				return a.printJSON(profile)
			})
		},
	}
	createCmd.Flags().StringVarP(&username, "username", "u", "", "Username (required)")
	createCmd.Flags().StringVarP(&password, "password", "p", "", "Password (required)")
	createCmd.Flags().StringVarP(&displayName, "name", "n", "", "Display name")
	usersCmd.AddCommand(createCmd)

	return usersCmd
}
