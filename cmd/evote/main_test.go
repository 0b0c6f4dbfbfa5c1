package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/calehh/evote/config"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "version")
	require.NoError(t, err)
	require.Equal(t, Version+"\n", out)
	require.Equal(t, Version+"-0123abcd", VersionWithCommit("0123abcdef"))
}

func TestInitAndAccount(t *testing.T) {
	home := t.TempDir()
	const addr = "0x5FbDB2315678afecb367f032d93F642f64180aa3"
	_, errOut, err := execute(t, "init", "-d", home, "-c", addr, "-u", "http://127.0.0.1:9545")
	require.NoError(t, err)

	var info printInfo
	require.NoError(t, json.Unmarshal(bytes.TrimSpace([]byte(errOut)), &info))
	require.True(t, info.NewKey)
	require.Equal(t, addr, info.Contract)

	cfg, err := config.Load(home)
	require.NoError(t, err)
	require.Equal(t, "http://127.0.0.1:9545", cfg.Chain.ProviderURL)
	require.Equal(t, addr, cfg.Contract.Address)

	_, _, err = execute(t, "init", "-d", home)
	require.Error(t, err)

	out, _, err := execute(t, "account", "-d", home, "--full")
	require.NoError(t, err)
	require.Equal(t, "Wallet: "+info.Owner+"\n", out)
}

func TestAccountTruncated(t *testing.T) {
	t.Setenv("EVOTE_WALLET_PRIVATE_KEY", "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80")
	accountArgs.Full = false
	out, _, err := execute(t, "account", "-d", t.TempDir(), "--full=false")
	require.NoError(t, err)
	require.Equal(t, "Wallet: 0xf39F...2266\n", out)
}

func TestAddCandidateBlankName(t *testing.T) {
	_, _, err := execute(t, "candidates", "add", "-d", t.TempDir(), "  ")
	require.EqualError(t, err, "Enter a candidate name!")
}

func TestPubkeyAndSign(t *testing.T) {
	t.Setenv("EVOTE_WALLET_PRIVATE_KEY", "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80")
	out, _, err := execute(t, "pubkey", "-d", t.TempDir())
	require.NoError(t, err)
	require.Contains(t, out, "pubkey: 04")
	require.Contains(t, out, "address: 0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")

	out, _, err = execute(t, "sign", "-d", t.TempDir(), "hello")
	require.NoError(t, err)
	require.Contains(t, out, "signature: ")
}

func TestPhaseUrlOverride(t *testing.T) {
	var hits atomic.Int32
	node := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	defer node.Close()
	t.Cleanup(func() { providerURL = "" })

	t.Setenv("EVOTE_CONTRACT_ADDRESS", "0x5FbDB2315678afecb367f032d93F642f64180aa3")
	t.Setenv("EVOTE_CHAIN_PROVIDER_URL", "http://127.0.0.1:1")
	out, _, err := execute(t, "phase", "-d", t.TempDir(), "-u", node.URL)
	require.NoError(t, err)
	require.Equal(t, "Phase: Unknown\n", out)
	require.Positive(t, hits.Load())
}
