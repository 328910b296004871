package domain

const (
	// Gateway constants
	DEFAULT_IPFS_GATEWAY    = "https://ipfs.io"
	DEFAULT_ARWEAVE_GATEWAY = "https://arweave.net"

	// Blockchain constants
	ETHEREUM_ZERO_ADDRESS = "0x0000000000000000000000000000000000000000"
	NATIVE_TOKEN_DECIMALS = 18

	// Sync defaults
	DEFAULT_LOOKBACK_BLOCKS = 1000
	DEFAULT_COLLECTION_NAME = "Unknown Collection"
)
