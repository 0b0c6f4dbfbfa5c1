package main

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var signCmd = &cobra.Command{
	Use:   "sign <message>",
	Short: "Sign keccak256(message) with the wallet key",
	Args:  cobra.MinimumNArgs(1),
	RunE:  signRun,
}

func signRun(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}
	pv, err := cfg.LoadPV()
	if err != nil {
		return err
	}
	sig, err := pv.Sign([]byte(strings.Join(args, " ")))
	if err != nil {
		return fmt.Errorf("sign err: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "address:", pv.Address().Hex())
	fmt.Fprintln(cmd.OutOrStdout(), "signature base64:", base64.StdEncoding.EncodeToString(sig))
	fmt.Fprintln(cmd.OutOrStdout(), "signature:", hex.EncodeToString(sig))
	return nil
}
