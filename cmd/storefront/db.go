package main

import (
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/ecomm-labs/storefront-api/config"
	"github.com/ecomm-labs/storefront-api/database/seeders"
	"github.com/ecomm-labs/storefront-api/pkg/database"
	"github.com/ecomm-labs/storefront-api/pkg/migration"
)

func withDB(fn func(db *gorm.DB) error) func(*cobra.Command, []string) error {
	return func(_ *cobra.Command, _ []string) error {
		if err := config.Load(); err != nil {
			return err
		}
		db, err := database.Connect()
		if err != nil {
			return err
		}
		defer func() {
			if sqlDB, err := db.DB(); err == nil {
				sqlDB.Close() //nolint:errcheck
			}
		}()
		return fn(db)
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run pending migrations",
		RunE: withDB(func(db *gorm.DB) error {
			return migration.New(db).Run()
		}),
	}
}

func migrateRollbackCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate:rollback",
		Short: "Roll back the last migration batch",
		RunE: withDB(func(db *gorm.DB) error {
			return migration.New(db).Rollback()
		}),
	}
}

func migrateStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate:status",
		Short: "Show applied and pending migrations",
		RunE: withDB(func(db *gorm.DB) error {
			return migration.New(db).Status()
		}),
	}
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load development fixtures",
		RunE: withDB(func(db *gorm.DB) error {
			if err := migration.New(db).Run(); err != nil {
				return err
			}
			return seeders.Run(db)
		}),
	}
}
