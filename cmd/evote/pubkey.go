package main

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"
)

var pubkeyCmd = &cobra.Command{
	Use:   "pubkey",
	Short: "Print the wallet public key and address",
	Args:  cobra.ExactArgs(0),
	RunE:  pubkeyRun,
}

func pubkeyRun(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}
	pv, err := cfg.LoadPV()
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "pubkey:", hex.EncodeToString(pv.PublicKey()))
	fmt.Fprintln(cmd.OutOrStdout(), "address:", pv.Address().Hex())
	return nil
}
