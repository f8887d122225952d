package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ecomm-labs/storefront-api/config"
	"github.com/ecomm-labs/storefront-api/internal/server"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(_ *cobra.Command, _ []string) error {
			return server.Run()
		},
	}
}

func routeListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "route:list",
		Short: "Print the registered routes",
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := config.Load(); err != nil {
				return err
			}
			// Handlers are never invoked here, so no live DB is needed.
			r := server.BuildRouter(nil)

			tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "METHOD\tPATH\tNAME")
			for _, info := range r.Routes() {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", info.Method, info.Path, info.Name)
			}
			return tw.Flush()
		},
	}
}
