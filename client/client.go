package client

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"

	"cosmossdk.io/log"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/calehh/evote/config"
	"github.com/calehh/evote/contract"
	"github.com/calehh/evote/crypto"
)

var (
	ErrEmptyName       = errors.New("candidate name is empty")
	ErrNoCredential    = config.ErrNoCredential
	ErrTxReverted      = errors.New("transaction reverted")
	ErrUnexpectedValue = errors.New("unexpected contract value")
)

// Client is the contract-facing API used by the display layer.
type Client interface {
	Phase(ctx context.Context) string
	Account() (string, error)
	AddCandidate(ctx context.Context, name string) error
	ListCandidates(ctx context.Context) ([]contract.Candidate, error)
}

var _ Client = &VotingClient{}

// BoundContract is the subset of *bind.BoundContract the client needs.
type BoundContract interface {
	Call(opts *bind.CallOpts, results *[]interface{}, method string, params ...interface{}) error
	Transact(opts *bind.TransactOpts, method string, params ...interface{}) (*types.Transaction, error)
}

// ChainIDReader resolves the chain id when it is not configured.
type ChainIDReader interface {
	ChainID(ctx context.Context) (*big.Int, error)
}

type VotingClient struct {
	logger   log.Logger
	contract BoundContract
	backend  bind.DeployBackend
	chain    ChainIDReader
	pv       *crypto.PV
	closer   func()

	mtx     sync.Mutex
	chainID *big.Int
}

// NewVotingClient dials the configured node and binds the Voting contract.
// A missing credential is not an error, the client is then read-only.
func NewVotingClient(ctx context.Context, cfg *config.Config, logger log.Logger) (*VotingClient, error) {
	address, err := cfg.ContractAddress()
	if err != nil {
		return nil, err
	}
	parsed := contract.DefaultABI()
	if cfg.Contract.Artifact != "" {
		a, err := contract.LoadArtifact(cfg.Contract.Artifact)
		if err != nil {
			return nil, fmt.Errorf("load artifact: %w", err)
		}
		parsed = a.ABI
	}
	pv, err := cfg.LoadPV()
	if err != nil && !errors.Is(err, config.ErrNoCredential) {
		return nil, err
	}
	eth, err := ethclient.DialContext(ctx, cfg.Chain.ProviderURL)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", cfg.Chain.ProviderURL, err)
	}
	c := NewClient(logger, bind.NewBoundContract(address, parsed, eth, eth, eth), eth, eth, pv)
	if cfg.Chain.ChainID != 0 {
		c.chainID = new(big.Int).SetUint64(cfg.Chain.ChainID)
	}
	c.closer = eth.Close
	c.logger.Info("contract client ready", "url", cfg.Chain.ProviderURL, "contract", address.Hex(), "readonly", pv == nil)
	return c, nil
}

// NewClient assembles a client from already bound collaborators. pv may be nil.
func NewClient(logger log.Logger, bc BoundContract, backend bind.DeployBackend, chain ChainIDReader, pv *crypto.PV) *VotingClient {
	return &VotingClient{
		logger:   logger.With("module", "client"),
		contract: bc,
		backend:  backend,
		chain:    chain,
		pv:       pv,
	}
}

func (c *VotingClient) Close() {
	if c.closer != nil {
		c.closer()
	}
}

// Phase never fails: any transport or decoding problem yields contract.PhaseUnknownLabel.
func (c *VotingClient) Phase(ctx context.Context) string {
	var out []interface{}
	if err := c.contract.Call(&bind.CallOpts{Context: ctx}, &out, contract.MethodCurrentPhase); err != nil {
		c.logger.Error("get phase fail", "err", err)
		return contract.PhaseUnknownLabel
	}
	if len(out) != 1 {
		c.logger.Error("get phase fail", "err", ErrUnexpectedValue, "outputs", len(out))
		return contract.PhaseUnknownLabel
	}
	idx, err := toBigInt(out[0])
	if err != nil {
		c.logger.Error("decode phase fail", "err", err)
		return contract.PhaseUnknownLabel
	}
	return contract.PhaseLabel(idx)
}

func (c *VotingClient) Account() (string, error) {
	if c.pv == nil {
		c.logger.Error("get account fail", "err", ErrNoCredential)
		return "", ErrNoCredential
	}
	return c.pv.Address().Hex(), nil
}

// AddCandidate submits addCandidate(name) and blocks until the transaction is mined.
func (c *VotingClient) AddCandidate(ctx context.Context, name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	if c.pv == nil {
		return ErrNoCredential
	}
	chainID, err := c.getChainID(ctx)
	if err != nil {
		c.logger.Error("get chain id fail", "err", err)
		return err
	}
	opts, err := c.pv.TransactOpts(ctx, chainID)
	if err != nil {
		return err
	}
	tx, err := c.contract.Transact(opts, contract.MethodAddCandidate, name)
	if err != nil {
		c.logger.Error("add candidate fail", "name", name, "err", err)
		return fmt.Errorf("send addCandidate: %w", err)
	}
	c.logger.Info("add candidate sent", "name", name, "tx", tx.Hash().Hex())
	receipt, err := bind.WaitMined(ctx, c.backend, tx)
	if err != nil {
		c.logger.Error("wait add candidate fail", "tx", tx.Hash().Hex(), "err", err)
		return fmt.Errorf("wait addCandidate: %w", err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		c.logger.Error("add candidate reverted", "tx", tx.Hash().Hex(), "block", receipt.BlockNumber)
		return ErrTxReverted
	}
	c.logger.Info("add candidate confirmed", "name", name, "tx", tx.Hash().Hex(), "block", receipt.BlockNumber)
	return nil
}

// ListCandidates reads candidatesCount and then each candidate 1..count in order.
// The first failure aborts the listing and nothing is returned.
func (c *VotingClient) ListCandidates(ctx context.Context) ([]contract.Candidate, error) {
	opts := &bind.CallOpts{Context: ctx}
	var out []interface{}
	if err := c.contract.Call(opts, &out, contract.MethodCandidatesCount); err != nil {
		c.logger.Error("get candidates count fail", "err", err)
		return nil, err
	}
	if len(out) != 1 {
		return nil, fmt.Errorf("%w: candidatesCount returned %d values", ErrUnexpectedValue, len(out))
	}
	count, err := toBigInt(out[0])
	if err != nil {
		return nil, err
	}
	if count.Sign() < 0 || !count.IsUint64() {
		return nil, fmt.Errorf("%w: candidatesCount %v", ErrUnexpectedValue, count)
	}
	n := count.Uint64()
	list := make([]contract.Candidate, 0, n)
	for i := uint64(1); i <= n; i++ {
		cand, err := c.getCandidate(opts, i)
		if err != nil {
			c.logger.Error("get candidate fail", "id", i, "err", err)
			return nil, err
		}
		list = append(list, cand)
	}
	return list, nil
}

func (c *VotingClient) getCandidate(opts *bind.CallOpts, id uint64) (contract.Candidate, error) {
	var out []interface{}
	if err := c.contract.Call(opts, &out, contract.MethodCandidates, new(big.Int).SetUint64(id)); err != nil {
		return contract.Candidate{}, err
	}
	if len(out) != 3 {
		return contract.Candidate{}, fmt.Errorf("%w: candidates returned %d values", ErrUnexpectedValue, len(out))
	}
	cid, err := toBigInt(out[0])
	if err != nil {
		return contract.Candidate{}, err
	}
	name, ok := out[1].(string)
	if !ok {
		return contract.Candidate{}, fmt.Errorf("%w: name is %T", ErrUnexpectedValue, out[1])
	}
	votes, err := toBigInt(out[2])
	if err != nil {
		return contract.Candidate{}, err
	}
	return contract.Candidate{Id: cid, Name: name, VoteCount: votes}, nil
}

func (c *VotingClient) getChainID(ctx context.Context) (*big.Int, error) {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	if c.chainID != nil {
		return c.chainID, nil
	}
	id, err := c.chain.ChainID(ctx)
	if err != nil {
		return nil, err
	}
	c.chainID = id
	return id, nil
}

// toBigInt normalises the integer types abi unpacking produces.
func toBigInt(v interface{}) (*big.Int, error) {
	switch x := v.(type) {
	case *big.Int:
		if x == nil {
			return nil, fmt.Errorf("%w: nil integer", ErrUnexpectedValue)
		}
		return new(big.Int).Set(x), nil
	case uint8:
		return new(big.Int).SetUint64(uint64(x)), nil
	case uint16:
		return new(big.Int).SetUint64(uint64(x)), nil
	case uint32:
		return new(big.Int).SetUint64(uint64(x)), nil
	case uint64:
		return new(big.Int).SetUint64(x), nil
	case int8:
		return big.NewInt(int64(x)), nil
	case int16:
		return big.NewInt(int64(x)), nil
	case int32:
		return big.NewInt(int64(x)), nil
	case int64:
		return big.NewInt(x), nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnexpectedValue, v)
	}
}
