package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var phaseCmd = &cobra.Command{
	Use:   "phase",
	Short: "Print the current voting phase",
	Args:  cobra.ExactArgs(0),
	RunE:  phaseRun,
}

func init() {
	urlFlag(phaseCmd, &providerURL)
}

func phaseRun(cmd *cobra.Command, args []string) error {
	cli, _, err := newClient(cmd.Context())
	if err != nil {
		return err
	}
	defer cli.Close()
	fmt.Fprintf(cmd.OutOrStdout(), "Phase: %s\n", cli.Phase(cmd.Context()))
	return nil
}
