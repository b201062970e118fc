package ethereum

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/common"

	errorsmod "cosmossdk.io/errors"

	"github.com/crypto-org-chain/gravity-bridge/internal/relayererrors"
	gbtypes "github.com/crypto-org-chain/gravity-bridge/internal/types"
)

// LogicCallHooks are the generated-binding calls logic-call relaying
// needs, supplied by the caller for the same reason Client's batch
// hooks are (spec.md §1 declares contract calls an external
// collaborator).
type LogicCallHooks struct {
	BlockNumber          func(ctx context.Context) (uint64, error)
	LatestLogicCallNonce func(ctx context.Context, invalidationID common.Address) (uint64, error)
	EstimateLogicCallGas func(ctx context.Context, candidate gbtypes.LogicCallCandidate) (gbtypes.GasCost, error)
	SubmitLogicCall      func(ctx context.Context, candidate gbtypes.LogicCallCandidate, gasPriceMultiplier float64) error
}

// LogicCallClient adapts LogicCallHooks to the relayer.LogicCallContract
// interface.
type LogicCallClient struct {
	hooks LogicCallHooks
}

// NewLogicCallClient constructs a LogicCallClient.
func NewLogicCallClient(hooks LogicCallHooks) *LogicCallClient {
	return &LogicCallClient{hooks: hooks}
}

func (c *LogicCallClient) BlockNumber(ctx context.Context) (uint64, error) {
	n, err := c.hooks.BlockNumber(ctx)
	if err != nil {
		return 0, errorsmod.Wrapf(relayererrors.ErrUpstream, "reading ethereum block number: %v", err)
	}
	return n, nil
}

func (c *LogicCallClient) LatestLogicCallNonce(ctx context.Context, invalidationID common.Address) (uint64, error) {
	n, err := c.hooks.LatestLogicCallNonce(ctx, invalidationID)
	if err != nil {
		return 0, errorsmod.Wrapf(relayererrors.ErrUpstream, "reading latest logic call nonce for scope %s: %v", invalidationID.Hex(), err)
	}
	return n, nil
}

func (c *LogicCallClient) EstimateLogicCallGas(ctx context.Context, candidate gbtypes.LogicCallCandidate) (gbtypes.GasCost, error) {
	cost, err := c.hooks.EstimateLogicCallGas(ctx, candidate)
	if err != nil {
		return gbtypes.GasCost{}, errorsmod.Wrapf(relayererrors.ErrUpstream, "estimating logic call gas for scope %s: %v", candidate.InvalidationID.Hex(), err)
	}
	return cost, nil
}

func (c *LogicCallClient) SubmitLogicCall(ctx context.Context, candidate gbtypes.LogicCallCandidate, gasPriceMultiplier float64, timeout time.Duration) error {
	submitCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := c.hooks.SubmitLogicCall(submitCtx, candidate, gasPriceMultiplier); err != nil {
		return errorsmod.Wrapf(relayererrors.ErrUpstream, "submitting logic call for scope %s: %v", candidate.InvalidationID.Hex(), err)
	}
	return nil
}
