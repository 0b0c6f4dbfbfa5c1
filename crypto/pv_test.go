package crypto

import (
	"context"
	"math/big"
	"os"
	"path/filepath"
	"testing"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"
)

// well known hardhat account #0
const (
	testKey     = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
	testAddress = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"
)

func TestLoadPV(t *testing.T) {
	pv, err := LoadPV(testKey)
	require.NoError(t, err)
	require.Equal(t, testAddress, pv.Address().Hex())

	pv, err = LoadPV("0x" + testKey + "\n")
	require.NoError(t, err)
	require.Equal(t, testAddress, pv.Address().Hex())

	_, err = LoadPV("not-a-key")
	require.Error(t, err)
}

func TestFilePV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "owner_priv_key")
	pv, err := GenFilePV(path)
	require.NoError(t, err)

	loaded, err := LoadFilePV(path)
	require.NoError(t, err)
	require.Equal(t, pv.Address(), loaded.Address())
	require.Equal(t, pv.PublicKey(), loaded.PublicKey())

	_, err = LoadFilePV(filepath.Join(t.TempDir(), "missing"))
	require.True(t, os.IsNotExist(err))
}

func TestSign(t *testing.T) {
	pv, err := LoadPV(testKey)
	require.NoError(t, err)
	msg := []byte("evote")
	sig, err := pv.Sign(msg)
	require.NoError(t, err)
	pub, err := ethcrypto.SigToPub(ethcrypto.Keccak256(msg), sig)
	require.NoError(t, err)
	require.Equal(t, pv.Address(), ethcrypto.PubkeyToAddress(*pub))
}

func TestTransactOpts(t *testing.T) {
	pv, err := LoadPV(testKey)
	require.NoError(t, err)

	_, err = pv.TransactOpts(context.Background(), nil)
	require.ErrorIs(t, err, ErrNoChainID)

	ctx := context.Background()
	opts, err := pv.TransactOpts(ctx, big.NewInt(31337))
	require.NoError(t, err)
	require.Equal(t, pv.Address(), opts.From)
	require.Equal(t, ctx, opts.Context)
}
