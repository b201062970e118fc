// Package relayererrors defines the module's registered error codes.
// The original implementation carried an error family parameterized
// over a signer type; here signer identity is runtime data (a log
// field), not a type parameter, and the family collapses to a single
// flat registry in the Cosmos SDK module-error idiom.
package relayererrors

import (
	errorsmod "cosmossdk.io/errors"
)

const codespace = "relayer"

var (
	// ErrConfig covers malformed or missing configuration discovered at
	// startup. Fatal to the process (spec.md §7).
	ErrConfig = errorsmod.Register(codespace, 2, "invalid configuration")

	// ErrPriceNotFound is returned by a PriceSource when a token has no
	// known price. Non-fatal; degrades the Fee Manager's decision to
	// "cannot price".
	ErrPriceNotFound = errorsmod.Register(codespace, 3, "token price not found")

	// ErrOracleUnavailable covers HTTP failure or malformed response
	// from the profitability oracle.
	ErrOracleUnavailable = errorsmod.Register(codespace, 4, "profitability oracle unavailable")

	// ErrSignatureOrder is returned when a batch's signatures do not
	// reach quorum against the current valset.
	ErrSignatureOrder = errorsmod.Register(codespace, 5, "signatures do not order-match valset")

	// ErrUpstream covers transient Cosmos gRPC / Ethereum RPC failures.
	ErrUpstream = errorsmod.Register(codespace, 6, "upstream query failed")
)
