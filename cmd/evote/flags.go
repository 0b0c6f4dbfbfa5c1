package main

import (
	"context"
	"os"

	"cosmossdk.io/log"
	"github.com/spf13/cobra"

	"github.com/calehh/evote/client"
	"github.com/calehh/evote/config"
)

var (
	homeDir     string
	providerURL string
)

var rootCmd = &cobra.Command{
	Use:   "evote",
	Short: "E-Voting dApp client",
	Long: `Reads and writes the state of a deployed Voting contract:
voting phase, candidate registration and vote counts.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&homeDir, "homedir", "d", "", "home directory (default $HOME/.evote)")
}

func loadConfig() (*config.Config, log.Logger, error) {
	cfg, err := config.Load(homeDir)
	if err != nil {
		return nil, nil, err
	}
	if providerURL != "" {
		cfg.Chain.ProviderURL = providerURL
	}
	logger, err := cfg.NewLogger(os.Stderr)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

func newClient(ctx context.Context) (*client.VotingClient, log.Logger, error) {
	cfg, logger, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	cli, err := client.NewVotingClient(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	return cli, logger, nil
}

func urlFlag(cmd *cobra.Command, url *string) {
	cmd.Flags().StringVarP(url, "url", "u", "", "node JSON-RPC url (default http://127.0.0.1:8545)")
}
