package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/spf13/cobra"

	"github.com/calehh/evote/config"
	"github.com/calehh/evote/contract"
	"github.com/calehh/evote/deploy"
)

type deployArguments struct {
	Home     string
	Url      string
	Artifact string
}

var deployArgs deployArguments

var deployCmd = &cobra.Command{
	Use:   "evote-deploy",
	Short: "Deploy the Voting contract and print its address",
	Long: `Builds the creation transaction from a compiled hardhat artifact,
submits it with the configured wallet, waits for confirmation and
prints the address of the new contract.`,
	Args:          cobra.ExactArgs(0),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          deployRun,
}

func init() {
	deployCmd.Flags().StringVarP(&deployArgs.Home, "homedir", "d", "", "home directory (default $HOME/.evote)")
	deployCmd.Flags().StringVarP(&deployArgs.Url, "url", "u", "", "node JSON-RPC url (overrides chain.provider_url)")
	deployCmd.Flags().StringVarP(&deployArgs.Artifact, "artifact", "a", "", "compiled artifact, e.g. artifacts/contracts/Voting.sol/Voting.json (overrides contract.artifact)")
}

func deployRun(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(deployArgs.Home)
	if err != nil {
		return err
	}
	if deployArgs.Url != "" {
		cfg.Chain.ProviderURL = deployArgs.Url
	}
	if deployArgs.Artifact != "" {
		cfg.Contract.Artifact = deployArgs.Artifact
	}
	logger, err := cfg.NewLogger(os.Stderr)
	if err != nil {
		return err
	}
	if cfg.Contract.Artifact == "" {
		return fmt.Errorf("no artifact given, use --artifact or contract.artifact")
	}
	artifact, err := contract.LoadArtifact(cfg.Contract.Artifact)
	if err != nil {
		return err
	}
	pv, err := cfg.LoadPV()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	eth, err := ethclient.DialContext(ctx, cfg.Chain.ProviderURL)
	if err != nil {
		return err
	}
	defer eth.Close()

	res, err := deploy.Deploy(ctx, eth, pv, artifact, logger)
	if err != nil {
		return err
	}
	name := artifact.ContractName
	if name == "" {
		name = "Voting"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s contract deployed at: %s\n", name, res.Address.Hex())
	return nil
}

func main() {
	if err := deployCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
