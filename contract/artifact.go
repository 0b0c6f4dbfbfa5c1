package contract

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

//go:embed voting.abi.json
var votingABI []byte

var (
	ErrNoABI      = errors.New("artifact has no abi")
	ErrNoBytecode = errors.New("artifact has no bytecode")
)

// Artifact is a compiled contract as emitted by hardhat.
type Artifact struct {
	ContractName string
	ABI          abi.ABI
	Bytecode     []byte
}

type artifactSt struct {
	ContractName string          `json:"contractName"`
	ABI          json.RawMessage `json:"abi"`
	Bytecode     string          `json:"bytecode"`
}

func ParseArtifact(dat []byte) (*Artifact, error) {
	var o artifactSt
	if err := json.Unmarshal(dat, &o); err != nil {
		return nil, fmt.Errorf("decode artifact: %w", err)
	}
	if len(o.ABI) == 0 || bytes.Equal(o.ABI, []byte("null")) {
		return nil, ErrNoABI
	}
	parsed, err := abi.JSON(bytes.NewReader(o.ABI))
	if err != nil {
		return nil, fmt.Errorf("decode artifact abi: %w", err)
	}
	a := &Artifact{
		ContractName: o.ContractName,
		ABI:          parsed,
	}
	if o.Bytecode != "" && o.Bytecode != "0x" {
		a.Bytecode, err = hexutil.Decode(o.Bytecode)
		if err != nil {
			return nil, fmt.Errorf("decode artifact bytecode: %w", err)
		}
	}
	return a, nil
}

func LoadArtifact(path string) (*Artifact, error) {
	dat, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseArtifact(dat)
}

// DefaultABI returns the interface of the Voting contract bundled with the binary.
func DefaultABI() abi.ABI {
	parsed, err := abi.JSON(bytes.NewReader(votingABI))
	if err != nil {
		panic(err)
	}
	return parsed
}

// Deployable reports whether the artifact carries creation bytecode.
func (a *Artifact) Deployable() error {
	if len(a.Bytecode) == 0 {
		return ErrNoBytecode
	}
	return nil
}
