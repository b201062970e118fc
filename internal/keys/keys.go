// Package keys declares the key-management surface the CLI's "keys"
// subcommands delegate to. Signing and key storage are an external
// collaborator (spec.md §1): this repository relays already-signed
// artifacts and never produces a signature itself, so KeyManager has no
// implementation here, the same way the teacher delegates key commands
// to a separate module (cosmosevmcmd.KeyCommands()) rather than
// inlining key material handling into its app wiring.
package keys

import (
	"context"
	"errors"
)

// ErrNotImplemented is returned by every KeyManager method until a real
// keyring-backed implementation is wired in.
var ErrNotImplemented = errors.New("key management is not implemented by this relayer; use the operator's keyring tooling")

// Chain identifies which side's keyring a KeyManager call targets.
type Chain string

const (
	ChainCosmos   Chain = "cosmos"
	ChainEthereum Chain = "eth"
)

// KeyManager is the surface the `orchestrator keys` subcommands call
// into. A production deployment backs this with the chain's native
// keyring (a Cosmos SDK keyring.Keyring for ChainCosmos, an
// accounts.Manager or raw ecdsa keystore for ChainEthereum).
type KeyManager interface {
	Add(ctx context.Context, chain Chain, name string) (address string, mnemonic string, err error)
	Import(ctx context.Context, chain Chain, name, mnemonicOrKey string) (address string, err error)
	Delete(ctx context.Context, chain Chain, name string) error
	List(ctx context.Context, chain Chain) ([]string, error)
}

// Unimplemented is a KeyManager whose every method returns
// ErrNotImplemented, used to wire the CLI's keys subcommands without
// pulling a real keyring dependency into this repository's scope.
type Unimplemented struct{}

func (Unimplemented) Add(context.Context, Chain, string) (string, string, error) {
	return "", "", ErrNotImplemented
}

func (Unimplemented) Import(context.Context, Chain, string, string) (string, error) {
	return "", ErrNotImplemented
}

func (Unimplemented) Delete(context.Context, Chain, string) error {
	return ErrNotImplemented
}

func (Unimplemented) List(context.Context, Chain) ([]string, error) {
	return nil, ErrNotImplemented
}
