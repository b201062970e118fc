package cmd

const (
	flagCosmosGRPC  = "cosmos-grpc-endpoint"
	flagEthereumRPC = "ethereum-rpc-endpoint"
	flagMetricsAddr = "metrics-address"
	flagEthKeyHex   = "ethereum-key"
	flagEthChainID  = "ethereum-chain-id"
)
