package fees

import (
	"context"
	"encoding/json"
	"os"

	errorsmod "cosmossdk.io/errors"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/crypto-org-chain/gravity-bridge/internal/relayererrors"
	"github.com/crypto-org-chain/gravity-bridge/internal/types"
)

// PriceSource resolves a token contract address to a price, scaled to
// be comparable against a wei gas*gas_price product. Used only by the
// File mode of the Fee Manager; the Api mode consults a
// ProfitabilityOracle instead, since the oracle performs the pricing
// math itself (spec.md §4.1).
type PriceSource interface {
	Price(ctx context.Context, tokenContract common.Address) (*uint256.Int, error)
}

// FilePriceSource reads a JSON object of "<lowercase-hex-address>":
// "<decimal-integer-string>" pairs once at construction into an
// in-memory map.
type FilePriceSource struct {
	prices map[string]string
}

// NewFilePriceSource reads and parses the price file at path. Any I/O
// or parse error is returned to the caller, who treats it as fatal to
// startup (spec.md §7) — the Fee Manager's File-mode constructor does
// exactly that.
func NewFilePriceSource(path string) (*FilePriceSource, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errorsmod.Wrapf(relayererrors.ErrConfig, "reading token price file %q: %v", path, err)
	}

	var prices map[string]string
	if err := json.Unmarshal(raw, &prices); err != nil {
		return nil, errorsmod.Wrapf(relayererrors.ErrConfig, "parsing token price file %q: %v", path, err)
	}

	// Validate every value parses as a decimal integer up front, so a
	// malformed entry fails at startup rather than mid-tick.
	for addr, value := range prices {
		if _, err := uint256.FromDecimal(value); err != nil {
			return nil, errorsmod.Wrapf(relayererrors.ErrConfig, "token price for %q is not a decimal integer: %v", addr, err)
		}
	}

	return &FilePriceSource{prices: prices}, nil
}

// Price looks up the price for tokenContract under its lowercase-hex
// form (types.NormalizeAddress). Keys from the price file are matched
// exactly as written, so only lowercase keys are ever found.
func (f *FilePriceSource) Price(_ context.Context, tokenContract common.Address) (*uint256.Int, error) {
	raw, ok := f.prices[types.NormalizeAddress(tokenContract)]
	if !ok {
		return nil, errorsmod.Wrapf(relayererrors.ErrPriceNotFound, "no price for token %s", tokenContract.Hex())
	}

	price, err := uint256.FromDecimal(raw)
	if err != nil {
		// Already validated at load time; defensive in case of
		// programmatic construction in tests.
		return nil, errorsmod.Wrapf(relayererrors.ErrConfig, "token price for %s is not a decimal integer: %v", tokenContract.Hex(), err)
	}

	return price, nil
}
