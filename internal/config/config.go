package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/feral-file/ff-marketplace-indexer/internal/domain"
)

const serviceName = "marketplace-sync"

// BaseConfig holds base configuration
type BaseConfig struct {
	Debug     bool   `mapstructure:"debug"`
	SentryDSN string `mapstructure:"sentry_dsn"`
}

// URIConfig holds URI resolver configuration
type URIConfig struct {
	IPFSGateways    []string `mapstructure:"ipfs_gateways"`
	ArweaveGateways []string `mapstructure:"arweave_gateways"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`     // Maximum number of open connections to the database
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`     // Maximum number of idle connections in the pool
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`  // e.g. "5m", "1h"
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"` // e.g. "10m"
}

// NATSConfig holds NATS JetStream configuration
type NATSConfig struct {
	URL            string        `mapstructure:"url"`
	StreamName     string        `mapstructure:"stream_name"`
	SubjectPrefix  string        `mapstructure:"subject_prefix"`
	MaxReconnects  int           `mapstructure:"max_reconnects"`
	ReconnectWait  time.Duration `mapstructure:"reconnect_wait"`
	ConnectionName string        `mapstructure:"connection_name"`
	PublishTimeout time.Duration `mapstructure:"publish_timeout"`
}

// EthereumConfig holds chain connection configuration
type EthereumConfig struct {
	WebSocketURL         string        `mapstructure:"websocket_url"`
	RPCURL               string        `mapstructure:"rpc_url"`
	ChainID              domain.Chain  `mapstructure:"chain_id"`
	RPCRateLimit         float64       `mapstructure:"rpc_rate_limit"` // requests per second, 0 disables limiting
	RPCBurst             int           `mapstructure:"rpc_burst"`
	LogsPageSize         uint64        `mapstructure:"logs_page_size"`
	BlockHeadTTL         time.Duration `mapstructure:"block_head_ttl"`
	BlockHeadStaleWindow time.Duration `mapstructure:"block_head_stale_window"`
}

// MarketplaceConfig lists the marketplace contracts to index
type MarketplaceConfig struct {
	Contracts []string `mapstructure:"contracts"`
}

// SyncConfig holds the scan schedule of the orchestrator
type SyncConfig struct {
	ScanInterval   time.Duration `mapstructure:"scan_interval"`
	LookbackBlocks uint64        `mapstructure:"lookback_blocks"`
	Confirmations  uint64        `mapstructure:"confirmations"`
	// StartBlock overrides the look-back window when no checkpoint exists, 0 means unset
	StartBlock         uint64        `mapstructure:"start_block"`
	SubscribeEnabled   bool          `mapstructure:"subscribe_enabled"`
	ResubscribeMaxWait time.Duration `mapstructure:"resubscribe_max_wait"`
}

// MetadataConfig holds metadata resolution configuration
type MetadataConfig struct {
	HTTPTimeout        time.Duration `mapstructure:"http_timeout"`
	CollectionCacheTTL time.Duration `mapstructure:"collection_cache_ttl"`
	CollectionCacheMax int           `mapstructure:"collection_cache_size"`
	TokenCacheSize     int           `mapstructure:"token_cache_size"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`  // in seconds
	WriteTimeout int    `mapstructure:"write_timeout"` // in seconds
	IdleTimeout  int    `mapstructure:"idle_timeout"`  // in seconds
}

// AuthConfig holds authentication configuration
type AuthConfig struct {
	JWTPublicKey string   `mapstructure:"jwt_public_key"`
	APIKeys      []string `mapstructure:"api_keys"`
}

// WorkerConfig holds worker configuration
type WorkerConfig struct {
	WorkerPoolSize  int `mapstructure:"pool_size"`
	WorkerQueueSize int `mapstructure:"queue_size"`
}

// MarketplaceSyncConfig holds configuration for marketplace-sync
type MarketplaceSyncConfig struct {
	BaseConfig  `mapstructure:",squash"`
	Database    DatabaseConfig    `mapstructure:"database"`
	NATS        NATSConfig        `mapstructure:"nats"`
	Ethereum    EthereumConfig    `mapstructure:"ethereum"`
	Marketplace MarketplaceConfig `mapstructure:"marketplace"`
	Sync        SyncConfig        `mapstructure:"sync"`
	URI         URIConfig         `mapstructure:"uri"`
	Metadata    MetadataConfig    `mapstructure:"metadata"`
	Server      ServerConfig      `mapstructure:"server"`
	Auth        AuthConfig        `mapstructure:"auth"`
	Worker      WorkerConfig      `mapstructure:"worker"`
}

// LoadMarketplaceSyncConfig loads configuration for marketplace-sync
func LoadMarketplaceSyncConfig(configFile string, envPath string) (*MarketplaceSyncConfig, error) {
	v := configureViper(serviceName, configFile, envPath)

	// Set defaults
	v.SetDefault("debug", false)
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("nats.max_reconnects", 10)
	v.SetDefault("nats.reconnect_wait", "2s")
	v.SetDefault("nats.stream_name", "MARKETPLACE_CHANGES")
	v.SetDefault("nats.subject_prefix", "marketplace")
	v.SetDefault("nats.connection_name", serviceName)
	v.SetDefault("nats.publish_timeout", "5s")
	v.SetDefault("ethereum.chain_id", string(domain.ChainMonadTestnet))
	v.SetDefault("ethereum.rpc_rate_limit", 20)
	v.SetDefault("ethereum.rpc_burst", 5)
	v.SetDefault("ethereum.logs_page_size", 1000)
	v.SetDefault("ethereum.block_head_ttl", "2s")
	v.SetDefault("ethereum.block_head_stale_window", "1m")
	v.SetDefault("sync.scan_interval", "30s")
	v.SetDefault("sync.lookback_blocks", domain.DEFAULT_LOOKBACK_BLOCKS)
	v.SetDefault("sync.confirmations", 0)
	v.SetDefault("sync.subscribe_enabled", true)
	v.SetDefault("sync.resubscribe_max_wait", "1m")
	v.SetDefault("uri.ipfs_gateways", []string{domain.DEFAULT_IPFS_GATEWAY})
	v.SetDefault("uri.arweave_gateways", []string{domain.DEFAULT_ARWEAVE_GATEWAY})
	v.SetDefault("metadata.http_timeout", "15s")
	v.SetDefault("metadata.collection_cache_ttl", "1h")
	v.SetDefault("metadata.collection_cache_size", 1024)
	v.SetDefault("metadata.token_cache_size", 10000)
	v.SetDefault("server.enabled", true)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 10)
	v.SetDefault("server.idle_timeout", 120)
	v.SetDefault("worker.pool_size", 4)
	v.SetDefault("worker.queue_size", 64)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found, use environment variables
	}

	var config MarketplaceSyncConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Comma separated env values arrive as a single element
	config.Marketplace.Contracts = splitList(config.Marketplace.Contracts)
	config.URI.IPFSGateways = splitList(config.URI.IPFSGateways)
	config.URI.ArweaveGateways = splitList(config.URI.ArweaveGateways)
	config.Auth.APIKeys = splitList(config.Auth.APIKeys)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks the settings the service cannot start without
func (c *MarketplaceSyncConfig) Validate() error {
	if c.Ethereum.RPCURL == "" {
		return errors.New("ethereum.rpc_url is required")
	}
	if !domain.IsValidChain(c.Ethereum.ChainID) {
		return fmt.Errorf("invalid ethereum.chain_id: %q", c.Ethereum.ChainID)
	}
	if len(c.Marketplace.Contracts) == 0 {
		return errors.New("marketplace.contracts must list at least one contract")
	}
	for _, addr := range c.Marketplace.Contracts {
		if !common.IsHexAddress(addr) {
			return fmt.Errorf("invalid marketplace contract address: %q", addr)
		}
	}
	if c.Sync.ScanInterval <= 0 {
		return errors.New("sync.scan_interval must be positive")
	}
	return nil
}

func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func configureViper(service string, configFile string, envPath string) *viper.Viper {
	v := viper.New()

	// Load environment variables
	loadEnv(envPath, service)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(fmt.Sprintf("cmd/%s/", service))
		v.AddConfigPath("config/")
	}

	v.SetEnvPrefix("FF_INDEXER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindAllEnvVars(v)
	return v
}

// bindAllEnvVars explicitly binds all possible environment variables
// This is required for viper to map env vars to config struct fields when no config file exists
func bindAllEnvVars(v *viper.Viper) {
	keys := []string{
		"debug",
		"sentry_dsn",
		// Database
		"database.host",
		"database.port",
		"database.user",
		"database.password",
		"database.dbname",
		"database.sslmode",
		"database.max_open_conns",
		"database.max_idle_conns",
		"database.conn_max_lifetime",
		"database.conn_max_idle_time",
		// NATS
		"nats.url",
		"nats.stream_name",
		"nats.subject_prefix",
		"nats.max_reconnects",
		"nats.reconnect_wait",
		"nats.connection_name",
		"nats.publish_timeout",
		// Ethereum
		"ethereum.websocket_url",
		"ethereum.rpc_url",
		"ethereum.chain_id",
		"ethereum.rpc_rate_limit",
		"ethereum.rpc_burst",
		"ethereum.logs_page_size",
		"ethereum.block_head_ttl",
		"ethereum.block_head_stale_window",
		// Marketplace
		"marketplace.contracts",
		// Sync
		"sync.scan_interval",
		"sync.lookback_blocks",
		"sync.confirmations",
		"sync.start_block",
		"sync.subscribe_enabled",
		"sync.resubscribe_max_wait",
		// URI
		"uri.ipfs_gateways",
		"uri.arweave_gateways",
		// Metadata
		"metadata.http_timeout",
		"metadata.collection_cache_ttl",
		"metadata.collection_cache_size",
		"metadata.token_cache_size",
		// Server
		"server.enabled",
		"server.host",
		"server.port",
		"server.read_timeout",
		"server.write_timeout",
		"server.idle_timeout",
		// Auth
		"auth.jwt_public_key",
		"auth.api_keys",
		// Worker
		"worker.pool_size",
		"worker.queue_size",
	}

	for _, key := range keys {
		_ = v.BindEnv(key)
	}
}

// loadEnv loads environment variables from the config directory
func loadEnv(envPath string, service string) {
	// Shared base first, then local, then the per-service local file
	envFiles := []string{".env", ".env.local"}
	if service != "" {
		envFiles = append(envFiles, ".env."+service+".local")
	}

	if envPath == "" {
		envPath = "config/"
	}

	for _, envFile := range envFiles {
		_ = godotenv.Overload(filepath.Join(envPath, envFile))
	}
}

// ChdirRepoRoot changes the current working directory to the repository root
func ChdirRepoRoot() {
	cwd, _ := os.Getwd()
	for range 5 {
		if _, err := os.Stat(filepath.Join(cwd, "config")); err == nil {
			_ = os.Chdir(cwd)
			return
		}
		cwd = filepath.Dir(cwd)
	}
}

// DSN returns the database connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}
