package main

import (
	"fmt"
	"os"

	"github.com/ecomm-labs/storefront-api/internal/server"
)

func main() {
	if err := server.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "server:", err)
		os.Exit(1)
	}
}
