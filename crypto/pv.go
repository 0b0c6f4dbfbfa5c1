package crypto

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
)

var ErrNoChainID = errors.New("chain id required")

// PV holds the signing credential of the wallet.
type PV struct {
	privateKey *ecdsa.PrivateKey
	address    common.Address
}

func NewPV(key *ecdsa.PrivateKey) *PV {
	return &PV{
		privateKey: key,
		address:    ethcrypto.PubkeyToAddress(key.PublicKey),
	}
}

// LoadPV parses a hex encoded secp256k1 key, with or without 0x prefix.
func LoadPV(hexKey string) (*PV, error) {
	hexKey = strings.TrimPrefix(strings.TrimSpace(hexKey), "0x")
	key, err := ethcrypto.HexToECDSA(hexKey)
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}
	return NewPV(key), nil
}

func LoadFilePV(keyFilePath string) (*PV, error) {
	dat, err := os.ReadFile(keyFilePath)
	if err != nil {
		return nil, err
	}
	return LoadPV(string(dat))
}

// GenFilePV creates a new key and writes it hex encoded to keyFilePath.
func GenFilePV(keyFilePath string) (*PV, error) {
	key, err := ethcrypto.GenerateKey()
	if err != nil {
		return nil, err
	}
	if err = ethcrypto.SaveECDSA(keyFilePath, key); err != nil {
		return nil, err
	}
	return NewPV(key), nil
}

func (k *PV) PublicKey() []byte {
	return ethcrypto.FromECDSAPub(&k.privateKey.PublicKey)
}

func (k *PV) Address() common.Address {
	return k.address
}

func (k *PV) Sign(data []byte) ([]byte, error) {
	return ethcrypto.Sign(ethcrypto.Keccak256(data), k.privateKey)
}

// TransactOpts builds signer options bound to ctx for the given chain.
func (k *PV) TransactOpts(ctx context.Context, chainID *big.Int) (*bind.TransactOpts, error) {
	if chainID == nil || chainID.Sign() <= 0 {
		return nil, ErrNoChainID
	}
	opts, err := bind.NewKeyedTransactorWithChainID(k.privateKey, chainID)
	if err != nil {
		return nil, err
	}
	opts.Context = ctx
	return opts, nil
}
