package main

import (
	"fmt"
	"os"
)

func init() {
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(phaseCmd)
	rootCmd.AddCommand(accountCmd)
	rootCmd.AddCommand(candidatesCmd)
	rootCmd.AddCommand(pubkeyCmd)
	rootCmd.AddCommand(signCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
