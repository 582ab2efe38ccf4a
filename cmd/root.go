package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "sparsity",
	Short: "sparsity analyses the effect of expression sparsity on LIONESS networks",
	Long: "Sparsity cleans gene expression and prior network data and summarises how\n" +
		"sparsified expression affects LIONESS co-expression networks (edge weights,\n" +
		"indegrees, expression, co-expression) compared to an unperturbed baseline.\nWritten in Go.",
}

// Execute the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
