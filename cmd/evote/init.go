package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/calehh/evote/config"
)

type initArguments struct {
	Url       string
	Contract  string
	Artifact  string
	Overwrite bool
}

var initArgs initArguments

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration and generate an owner key",
	Args:  cobra.ExactArgs(0),
	RunE:  initRun,
}

func init() {
	urlFlag(initCmd, &initArgs.Url)
	initCmd.Flags().StringVarP(&initArgs.Contract, "contract", "c", "", "deployed Voting contract address")
	initCmd.Flags().StringVarP(&initArgs.Artifact, "artifact", "a", "", "hardhat artifact providing the contract abi")
	initCmd.Flags().BoolVarP(&initArgs.Overwrite, "overwrite", "o", false, "overwrite an existing config.toml")
}

type printInfo struct {
	Home     string `json:"home"`
	Config   string `json:"config"`
	Owner    string `json:"owner"`
	NewKey   bool   `json:"new_key"`
	Contract string `json:"contract"`
}

func initRun(cmd *cobra.Command, args []string) error {
	cfg := config.DefaultConfig(homeDir)
	if initArgs.Url != "" {
		cfg.Chain.ProviderURL = initArgs.Url
	}
	cfg.Contract.Address = initArgs.Contract
	cfg.Contract.Artifact = initArgs.Artifact
	if err := cfg.ValidateBasic(); err != nil {
		return err
	}
	if _, err := os.Stat(cfg.ConfigFile()); err == nil && !initArgs.Overwrite {
		return fmt.Errorf("%s already exists, use --overwrite", cfg.ConfigFile())
	}
	owner, created, err := config.InitializeOwner(cfg)
	if err != nil {
		return err
	}
	if err = config.WriteConfigFile(cfg.ConfigFile(), cfg); err != nil {
		return err
	}
	out, err := json.MarshalIndent(printInfo{
		Home:     cfg.RootDir,
		Config:   cfg.ConfigFile(),
		Owner:    owner.Hex(),
		NewKey:   created,
		Contract: cfg.Contract.Address,
	}, "", " ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.ErrOrStderr(), "%s\n", out)
	return err
}
