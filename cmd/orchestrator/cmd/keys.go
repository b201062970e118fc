package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/crypto-org-chain/gravity-bridge/internal/keys"
)

// NewKeysCmd builds the `orchestrator keys` command tree. Every leaf
// delegates to a keys.KeyManager, left unimplemented in this
// repository because key storage and signing are an external
// collaborator (spec.md §1) — matching the teacher's pattern of
// delegating key commands to a separate module rather than inlining
// key material handling into the relay loop.
func NewKeysCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "keys",
		Short: "manage cosmos and ethereum relayer keys",
	}

	root.AddCommand(newKeysChainCmd(keys.ChainCosmos))
	root.AddCommand(newKeysChainCmd(keys.ChainEthereum))

	return root
}

func newKeysChainCmd(chain keys.Chain) *cobra.Command {
	var km keys.KeyManager = keys.Unimplemented{}

	chainCmd := &cobra.Command{
		Use:   string(chain),
		Short: fmt.Sprintf("manage %s keys", chain),
	}

	chainCmd.AddCommand(&cobra.Command{
		Use:   "add [name]",
		Short: "generate a new key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			address, _, err := km.Add(cmd.Context(), chain, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), address)
			return nil
		},
	})

	chainCmd.AddCommand(&cobra.Command{
		Use:   "import [name] [mnemonic-or-key]",
		Short: "import an existing key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			address, err := km.Import(cmd.Context(), chain, args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), address)
			return nil
		},
	})

	chainCmd.AddCommand(&cobra.Command{
		Use:   "delete [name]",
		Short: "delete a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return km.Delete(cmd.Context(), chain, args[0])
		},
	})

	chainCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "list known keys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			names, err := km.List(cmd.Context(), chain)
			if err != nil {
				return err
			}
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	})

	return chainCmd
}
