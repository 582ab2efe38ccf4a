package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of sparsity",
	Long:  "This command is to be used to get to know the version of sparsity",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("sparsity v0.1.0")
	},
}
