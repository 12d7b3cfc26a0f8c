package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "chessbook",
		Short: "Annotated opening book for chess positions",
	}
	root.Version = version
	root.SetVersionTemplate("{{.Version}}\n")
	root.AddCommand(serveCmd())
	root.AddCommand(mcpCmd())
	root.AddCommand(showCmd())
	root.AddCommand(annotateCmd())
	root.AddCommand(listCmd())
	root.AddCommand(initCmd())
	root.AddCommand(versionCmd())
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
