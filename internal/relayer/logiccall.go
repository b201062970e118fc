package relayer

import (
	"context"
	"time"

	"cosmossdk.io/log"
	"github.com/ethereum/go-ethereum/common"

	"github.com/crypto-org-chain/gravity-bridge/internal/fees"
	"github.com/crypto-org-chain/gravity-bridge/internal/submit"
	"github.com/crypto-org-chain/gravity-bridge/internal/types"
)

// LogicCallContract is the Ethereum-side surface logic-call relaying
// needs.
type LogicCallContract interface {
	BlockNumber(ctx context.Context) (uint64, error)
	LatestLogicCallNonce(ctx context.Context, invalidationID common.Address) (uint64, error)
	EstimateLogicCallGas(ctx context.Context, candidate types.LogicCallCandidate) (types.GasCost, error)
	SubmitLogicCall(ctx context.Context, candidate types.LogicCallCandidate, gasPriceMultiplier float64, timeout time.Duration) error
}

// LogicCallSelector groups pending logic calls by invalidation scope,
// oldest first within each scope — the compositional counterpart of
// internal/batch.Selector.
type LogicCallSelector interface {
	SelectLogicCalls(ctx context.Context, current types.Valset) map[common.Address][]types.LogicCallCandidate
}

// LogicCallRelayPass is the logic-call-relaying compositional instance
// declared by spec.md §1: per invalidation-scope groups, oldest-first
// candidates, one successful submission per scope per tick, consulting
// the same Fee Manager batch relaying uses.
type LogicCallRelayPass struct {
	selector           LogicCallSelector
	contract           LogicCallContract
	feeManager         *fees.FeeManager
	gasPriceMultiplier float64
	pendingTxTimeout   time.Duration
	logger             log.Logger
}

// NewLogicCallRelayPass constructs a LogicCallRelayPass.
func NewLogicCallRelayPass(selector LogicCallSelector, contract LogicCallContract, feeManager *fees.FeeManager, gasPriceMultiplier float64, pendingTxTimeout time.Duration, logger log.Logger) *LogicCallRelayPass {
	return &LogicCallRelayPass{
		selector:           selector,
		contract:           contract,
		feeManager:         feeManager,
		gasPriceMultiplier: gasPriceMultiplier,
		pendingTxTimeout:   pendingTxTimeout,
		logger:             logger.With("component", "logic_call_relay"),
	}
}

// Run implements one logic-call-relay pass over the given valset
// snapshot, following internal/submit.Submitter.SubmitGroups' shape
// (one block-height read, one nonce read per scope, oldest first, one
// success per scope per tick), except that scopes are processed one
// after another rather than concurrently.
func (p *LogicCallRelayPass) Run(ctx context.Context, current types.Valset) {
	groups := p.selector.SelectLogicCalls(ctx, current)
	if len(groups) == 0 {
		return
	}

	blockHeight, err := p.contract.BlockNumber(ctx)
	if err != nil {
		p.logger.Error("failed to read current eth block height, aborting logic call relay this tick", "err", err)
		return
	}

	for scope, candidates := range groups {
		p.runScope(ctx, scope, candidates, blockHeight)
	}
}

func (p *LogicCallRelayPass) runScope(ctx context.Context, scope common.Address, candidates []types.LogicCallCandidate, blockHeight uint64) {
	latestNonce, err := p.contract.LatestLogicCallNonce(ctx, scope)
	if err != nil {
		p.logger.Error("failed to read latest ethereum logic call nonce, skipping scope", "scope", scope.Hex(), "err", err)
		return
	}

	for _, candidate := range candidates {
		if err := submit.CheckTimeoutAndNonce(candidate.Timeout, blockHeight, candidate.Nonce, latestNonce); err != nil {
			p.logger.Warn("dropping logic call candidate", "nonce", candidate.Nonce, "scope", scope.Hex(), "reason", err)
			continue
		}

		cost, err := p.contract.EstimateLogicCallGas(ctx, candidate)
		if err != nil {
			p.logger.Error("gas estimate failed for logic call, skipping", "nonce", candidate.Nonce, "scope", scope.Hex(), "err", err)
			continue
		}

		if !p.feeManager.CanSendBatch(ctx, cost, candidate.Fee, scope) {
			p.logger.Info("logic call is not currently profitable enough to submit, skipping", "nonce", candidate.Nonce, "scope", scope.Hex())
			continue
		}

		if err := p.contract.SubmitLogicCall(ctx, candidate, p.gasPriceMultiplier, p.pendingTxTimeout); err != nil {
			p.logger.Info("logic call submission failed", "nonce", candidate.Nonce, "scope", scope.Hex(), "err", err)
			continue
		}

		p.feeManager.UpdateNextBatchSendTime(scope)
		p.logger.Info("submitted logic call", "nonce", candidate.Nonce, "scope", scope.Hex())

		// One success per scope per tick, matching the batch
		// Submitter's policy (spec.md §9 Open Question #1) — the
		// cached latestNonce above is now stale for this scope.
		break
	}
}
