package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/calehh/evote/crypto"
)

const (
	EnvPrefix          = "EVOTE"
	DefaultConfigName  = "config.toml"
	DefaultKeyFileName = "owner_priv_key"
)

var (
	ErrNoProviderURL   = errors.New("chain.provider_url is required")
	ErrInvalidAddress  = errors.New("contract.address is not a hex address")
	ErrInvalidLogLevel = errors.New("log_level must be one of debug, info, warn, error")
	ErrInvalidLogFmt   = errors.New("log_format must be plain or json")
	ErrNoCredential    = errors.New("no wallet credential configured")
)

type ChainConfig struct {
	ProviderURL string `mapstructure:"provider_url"`
	// 0 means ask the node.
	ChainID uint64 `mapstructure:"chain_id"`
}

type WalletConfig struct {
	PrivateKey     string `mapstructure:"private_key"`
	PrivateKeyFile string `mapstructure:"private_key_file"`
}

type ContractConfig struct {
	Address  string `mapstructure:"address"`
	Artifact string `mapstructure:"artifact"`
}

type ServerConfig struct {
	ListenAddress string `mapstructure:"listen_address"`
}

type Config struct {
	RootDir string `mapstructure:"-"`

	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`

	Chain    ChainConfig    `mapstructure:"chain"`
	Wallet   WalletConfig   `mapstructure:"wallet"`
	Contract ContractConfig `mapstructure:"contract"`
	Server   ServerConfig   `mapstructure:"server"`
}

func DefaultHome() string {
	return os.ExpandEnv("$HOME/.evote")
}

func DefaultConfig(home string) *Config {
	if len(home) == 0 {
		home = DefaultHome()
	}
	return &Config{
		RootDir:   home,
		LogLevel:  "info",
		LogFormat: "plain",
		Chain: ChainConfig{
			ProviderURL: "http://127.0.0.1:8545",
		},
		Wallet: WalletConfig{
			PrivateKeyFile: filepath.Join(home, "config", DefaultKeyFileName),
		},
		Server: ServerConfig{
			ListenAddress: "127.0.0.1:3000",
		},
	}
}

func (c *Config) ConfigFile() string {
	return filepath.Join(c.RootDir, "config", DefaultConfigName)
}

func (c *Config) ValidateBasic() error {
	if strings.TrimSpace(c.Chain.ProviderURL) == "" {
		return ErrNoProviderURL
	}
	if c.Contract.Address != "" && !common.IsHexAddress(c.Contract.Address) {
		return fmt.Errorf("%w: %q", ErrInvalidAddress, c.Contract.Address)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return ErrInvalidLogLevel
	}
	switch c.LogFormat {
	case "plain", "json":
	default:
		return ErrInvalidLogFmt
	}
	return nil
}

// ContractAddress returns the configured contract address, requiring it to be set.
func (c *Config) ContractAddress() (common.Address, error) {
	if !common.IsHexAddress(c.Contract.Address) {
		return common.Address{}, fmt.Errorf("%w: %q", ErrInvalidAddress, c.Contract.Address)
	}
	return common.HexToAddress(c.Contract.Address), nil
}

// LoadPV resolves the wallet credential. An inline key wins over the key file.
func (c *Config) LoadPV() (*crypto.PV, error) {
	if c.Wallet.PrivateKey != "" {
		return crypto.LoadPV(c.Wallet.PrivateKey)
	}
	if c.Wallet.PrivateKeyFile == "" {
		return nil, ErrNoCredential
	}
	pv, err := crypto.LoadFilePV(c.Wallet.PrivateKeyFile)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNoCredential
	}
	return pv, err
}

// Load reads <home>/config/config.toml if present, applies EVOTE_* environment
// overrides (a .env file in the working directory is honoured) and validates.
func Load(home string) (*Config, error) {
	_ = godotenv.Load()

	cfg := DefaultConfig(home)
	v := viper.New()
	setDefaults(v, cfg)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigFile(cfg.ConfigFile())
	if err := v.ReadInConfig(); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("invalid configuration data: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("log_level", cfg.LogLevel)
	v.SetDefault("log_format", cfg.LogFormat)
	v.SetDefault("chain.provider_url", cfg.Chain.ProviderURL)
	v.SetDefault("chain.chain_id", cfg.Chain.ChainID)
	v.SetDefault("wallet.private_key", cfg.Wallet.PrivateKey)
	v.SetDefault("wallet.private_key_file", cfg.Wallet.PrivateKeyFile)
	v.SetDefault("contract.address", cfg.Contract.Address)
	v.SetDefault("contract.artifact", cfg.Contract.Artifact)
	v.SetDefault("server.listen_address", cfg.Server.ListenAddress)
}

// InitializeOwner generates the owner key file unless one exists already.
func InitializeOwner(cfg *Config) (owner common.Address, created bool, err error) {
	path := cfg.Wallet.PrivateKeyFile
	if path == "" {
		path = filepath.Join(cfg.RootDir, "config", DefaultKeyFileName)
		cfg.Wallet.PrivateKeyFile = path
	}
	if _, err = os.Stat(path); err == nil {
		pv, err := crypto.LoadFilePV(path)
		if err != nil {
			return common.Address{}, false, err
		}
		return pv.Address(), false, nil
	}
	if err = os.MkdirAll(filepath.Dir(path), DefaultDirPerm); err != nil {
		return common.Address{}, false, fmt.Errorf("could not create directory %q: %w", filepath.Dir(path), err)
	}
	pv, err := crypto.GenFilePV(path)
	if err != nil {
		return common.Address{}, false, err
	}
	return pv.Address(), true, nil
}
