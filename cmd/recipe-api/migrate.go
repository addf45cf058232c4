package main

import (
	"github.com/spf13/cobra"

	"github.com/sbilibin2017/recipe-api/internal/logger"
)

func newMigrateCmd(getConfig func() *config) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, err := connectPostgres(cmd.Context(), getConfig())
			if err != nil {
				return err
			}
			defer conn.Close()

			logger.Log.Info("Migrations applied")
			return nil
		},
	}
}
