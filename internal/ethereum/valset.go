package ethereum

import (
	"context"
	"time"

	errorsmod "cosmossdk.io/errors"

	"github.com/crypto-org-chain/gravity-bridge/internal/relayererrors"
	gbtypes "github.com/crypto-org-chain/gravity-bridge/internal/types"
)

// ValsetHooks are the generated-binding calls valset relaying needs,
// supplied by the caller for the same reason Client's batch hooks are
// (spec.md §1 declares contract calls an external collaborator).
type ValsetHooks struct {
	CurrentValset     func(ctx context.Context) (gbtypes.Valset, error)
	BlockNumber       func(ctx context.Context) (uint64, error)
	LatestValsetNonce func(ctx context.Context) (uint64, error)
	EstimateValset    func(ctx context.Context, valset gbtypes.Valset) (gbtypes.GasCost, error)
	SubmitValset      func(ctx context.Context, valset gbtypes.Valset, gasPriceMultiplier float64) error
}

// ValsetClient adapts ValsetHooks to the relayer.ValsetSource and
// relayer.ValsetContract interfaces.
type ValsetClient struct {
	hooks ValsetHooks
}

// NewValsetClient constructs a ValsetClient.
func NewValsetClient(hooks ValsetHooks) *ValsetClient {
	return &ValsetClient{hooks: hooks}
}

func (c *ValsetClient) CurrentValset(ctx context.Context) (gbtypes.Valset, error) {
	v, err := c.hooks.CurrentValset(ctx)
	if err != nil {
		return gbtypes.Valset{}, errorsmod.Wrapf(relayererrors.ErrUpstream, "reading current ethereum valset: %v", err)
	}
	return v, nil
}

func (c *ValsetClient) BlockNumber(ctx context.Context) (uint64, error) {
	n, err := c.hooks.BlockNumber(ctx)
	if err != nil {
		return 0, errorsmod.Wrapf(relayererrors.ErrUpstream, "reading ethereum block number: %v", err)
	}
	return n, nil
}

func (c *ValsetClient) LatestValsetNonce(ctx context.Context) (uint64, error) {
	n, err := c.hooks.LatestValsetNonce(ctx)
	if err != nil {
		return 0, errorsmod.Wrapf(relayererrors.ErrUpstream, "reading latest ethereum valset nonce: %v", err)
	}
	return n, nil
}

func (c *ValsetClient) EstimateValsetGas(ctx context.Context, candidate gbtypes.ValsetCandidate) (gbtypes.GasCost, error) {
	cost, err := c.hooks.EstimateValset(ctx, candidate.Valset)
	if err != nil {
		return gbtypes.GasCost{}, errorsmod.Wrapf(relayererrors.ErrUpstream, "estimating valset update gas: %v", err)
	}
	return cost, nil
}

func (c *ValsetClient) SubmitValset(ctx context.Context, candidate gbtypes.ValsetCandidate, gasPriceMultiplier float64, timeout time.Duration) error {
	submitCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := c.hooks.SubmitValset(submitCtx, candidate.Valset, gasPriceMultiplier); err != nil {
		return errorsmod.Wrapf(relayererrors.ErrUpstream, "submitting valset update: %v", err)
	}
	return nil
}
