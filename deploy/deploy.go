package deploy

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"cosmossdk.io/log"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"

	"github.com/calehh/evote/contract"
	"github.com/calehh/evote/crypto"
)

// Backend is what a creation transaction needs: submission, receipts and chain id.
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
	ChainID(ctx context.Context) (*big.Int, error)
}

var ErrAddressMismatch = errors.New("deployed address mismatch")

type Result struct {
	Address common.Address
	TxHash  common.Hash
}

// Deploy submits the artifact's creation transaction and waits until code is
// present at the new address. There is no retry.
func Deploy(ctx context.Context, backend Backend, pv *crypto.PV, artifact *contract.Artifact, logger log.Logger) (*Result, error) {
	logger = logger.With("module", "deploy")
	if err := artifact.Deployable(); err != nil {
		return nil, err
	}
	chainID, err := backend.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("get chain id: %w", err)
	}
	opts, err := pv.TransactOpts(ctx, chainID)
	if err != nil {
		return nil, err
	}
	address, tx, _, err := bind.DeployContract(opts, artifact.ABI, artifact.Bytecode, backend)
	if err != nil {
		return nil, fmt.Errorf("deploy %s: %w", artifact.ContractName, err)
	}
	logger.Info("deployment sent", "contract", artifact.ContractName, "tx", tx.Hash().Hex(), "from", pv.Address().Hex())
	deployed, err := bind.WaitDeployed(ctx, backend, tx)
	if err != nil {
		return nil, fmt.Errorf("wait deployment %s: %w", tx.Hash().Hex(), err)
	}
	if deployed != address {
		logger.Error("deployed address mismatch", "expected", address.Hex(), "got", deployed.Hex())
		return nil, fmt.Errorf("%w: expected %s, receipt reports %s", ErrAddressMismatch, address.Hex(), deployed.Hex())
	}
	logger.Info("deployment confirmed", "contract", artifact.ContractName, "address", deployed.Hex())
	return &Result{Address: deployed, TxHash: tx.Hash()}, nil
}
