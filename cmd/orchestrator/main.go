// Command orchestrator runs the Gravity Bridge relayer: it watches the
// Cosmos chain for signed valsets, transaction batches, and logic
// calls, and relays the ones worth submitting to the Ethereum Gravity
// contract.
package main

import (
	"fmt"
	"os"

	"github.com/crypto-org-chain/gravity-bridge/cmd/orchestrator/cmd"
)

func main() {
	if err := cmd.NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
