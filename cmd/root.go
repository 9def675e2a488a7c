package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "setscan",
	Short: "Contextual set-class analysis for midi files",
	Long:  `Contextual set-class analysis for midi files`,
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
