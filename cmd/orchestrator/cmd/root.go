package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/crypto-org-chain/gravity-bridge/internal/config"
)

// NewRootCmd creates the orchestrator root command, assembling the
// command tree the way the teacher's NewRootCmd does (persistent Viper
// instance, flags bound once at the root), scaled down from a full node
// CLI to a relayer CLI.
func NewRootCmd() *cobra.Command {
	v := viper.New()

	rootCmd := &cobra.Command{
		Use:   "orchestrator",
		Short: "Gravity Bridge relayer",
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			v.AutomaticEnv()
			return v.BindPFlags(cmd.Flags())
		},
	}

	config.BindFlags(v, func(name, value, usage string) {
		rootCmd.PersistentFlags().String(name, value, usage)
	})
	rootCmd.PersistentFlags().String(flagCosmosGRPC, "localhost:9090", "Cosmos gRPC endpoint")
	rootCmd.PersistentFlags().String(flagEthereumRPC, "", "Ethereum JSON-RPC endpoint")
	rootCmd.PersistentFlags().String(flagMetricsAddr, ":9090", "metrics server listen address")
	rootCmd.PersistentFlags().String(flagEthKeyHex, "", "hex-encoded Ethereum relayer private key (unprefixed)")
	rootCmd.PersistentFlags().Int64(flagEthChainID, 1, "Ethereum chain ID")

	rootCmd.AddCommand(NewStartCmd(v))
	rootCmd.AddCommand(NewKeysCmd())

	return rootCmd
}
