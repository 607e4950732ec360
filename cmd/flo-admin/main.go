package main

import (
	"os"

	"github.com/flo-mobility/admin-console/cmd/flo-admin/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
