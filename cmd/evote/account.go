package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/calehh/evote/config"
	"github.com/calehh/evote/view"
)

type accountArguments struct {
	Full bool
}

var accountArgs accountArguments

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Print the wallet address",
	Args:  cobra.ExactArgs(0),
	RunE:  accountRun,
}

func init() {
	accountCmd.Flags().BoolVarP(&accountArgs.Full, "full", "f", false, "print the full address")
}

// accountRun needs no node: the address is derived from the credential.
func accountRun(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}
	pv, err := cfg.LoadPV()
	if err != nil {
		if errors.Is(err, config.ErrNoCredential) {
			return fmt.Errorf("%w, run `evote init` or set EVOTE_WALLET_PRIVATE_KEY", err)
		}
		return err
	}
	addr := pv.Address().Hex()
	if !accountArgs.Full {
		addr = view.TruncateAddress(addr)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wallet: %s\n", addr)
	return nil
}
