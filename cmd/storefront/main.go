package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	_ "github.com/ecomm-labs/storefront-api/database/migrations"
)

func main() {
	root := &cobra.Command{
		Use:           "storefront",
		Short:         "Storefront API management tool",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		serveCmd(),
		routeListCmd(),
		migrateCmd(),
		migrateRollbackCmd(),
		migrateStatusCmd(),
		seedCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "storefront:", err)
		os.Exit(1)
	}
}
