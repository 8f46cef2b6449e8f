package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quiverd/notemint"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of notemint",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("notemint version %s\n", notemint.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
