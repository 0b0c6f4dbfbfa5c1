package client

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"cosmossdk.io/log"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/calehh/evote/config"
	"github.com/calehh/evote/contract"
)

// abiNode answers eth_call with ABI encoded results for the Voting methods.
type abiNode struct {
	abi   abi.ABI
	phase uint8
	names []string
}

func (n *abiNode) CodeAt(ctx context.Context, account common.Address, blockNumber *big.Int) ([]byte, error) {
	return []byte{0x00}, nil
}

func (n *abiNode) CallContract(ctx context.Context, call ethereum.CallMsg, blockNumber *big.Int) ([]byte, error) {
	method, err := n.abi.MethodById(call.Data[:4])
	if err != nil {
		return nil, err
	}
	switch method.Name {
	case contract.MethodCurrentPhase:
		return method.Outputs.Pack(n.phase)
	case contract.MethodCandidatesCount:
		return method.Outputs.Pack(big.NewInt(int64(len(n.names))))
	case contract.MethodCandidates:
		args, err := method.Inputs.Unpack(call.Data[4:])
		if err != nil {
			return nil, err
		}
		id := args[0].(*big.Int)
		if !id.IsInt64() || id.Int64() < 1 || id.Int64() > int64(len(n.names)) {
			return nil, errors.New("execution reverted")
		}
		i := id.Int64()
		return method.Outputs.Pack(id, n.names[i-1], big.NewInt(i*5))
	}
	return nil, errors.New("unsupported method " + method.Name)
}

func TestBoundContractDecoding(t *testing.T) {
	parsed := contract.DefaultABI()
	node := &abiNode{abi: parsed, phase: uint8(contract.PhaseVoting), names: []string{"n1", "n2"}}
	address := common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3")
	bc := bind.NewBoundContract(address, parsed, node, nil, nil)
	c := NewClient(log.NewNopLogger(), bc, nil, nil, nil)

	ctx := context.Background()
	require.Equal(t, "Voting", c.Phase(ctx))

	list, err := c.ListCandidates(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "n1", list[0].Name)
	require.Equal(t, "n2", list[1].Name)
	require.Equal(t, int64(2), list[1].Id.Int64())
	require.Equal(t, int64(10), list[1].VoteCount.Int64())

	node.phase = 9
	require.Equal(t, contract.PhaseUnknownLabel, c.Phase(ctx))
}

func TestNewVotingClient(t *testing.T) {
	cfg := config.DefaultConfig(t.TempDir())
	cfg.Chain.ProviderURL = "http://127.0.0.1:1"
	cfg.Chain.ChainID = 31337

	_, err := NewVotingClient(context.Background(), cfg, log.NewNopLogger())
	require.ErrorIs(t, err, config.ErrInvalidAddress)

	cfg.Contract.Address = "0x5FbDB2315678afecb367f032d93F642f64180aa3"
	c, err := NewVotingClient(context.Background(), cfg, log.NewNopLogger())
	require.NoError(t, err)
	defer c.Close()

	require.Equal(t, contract.PhaseUnknownLabel, c.Phase(context.Background()))
	_, err = c.Account()
	require.ErrorIs(t, err, ErrNoCredential)

	cfg.Wallet.PrivateKey = testKey
	signer, err := NewVotingClient(context.Background(), cfg, log.NewNopLogger())
	require.NoError(t, err)
	defer signer.Close()
	account, err := signer.Account()
	require.NoError(t, err)
	require.Equal(t, "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266", account)
}
