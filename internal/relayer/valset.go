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

// ValsetContract is the Ethereum-side surface valset relaying needs,
// mirroring ethereum.GravityContract's shape for batches.
type ValsetContract interface {
	BlockNumber(ctx context.Context) (uint64, error)
	LatestValsetNonce(ctx context.Context) (uint64, error)
	EstimateValsetGas(ctx context.Context, candidate types.ValsetCandidate) (types.GasCost, error)
	SubmitValset(ctx context.Context, candidate types.ValsetCandidate, gasPriceMultiplier float64, timeout time.Duration) error
}

// ValsetSelector finds the newest valset update pending confirmation on
// the Cosmos side, if any (the compositional counterpart of
// internal/batch.Selector).
type ValsetSelector interface {
	SelectValset(ctx context.Context, current types.Valset) (types.ValsetCandidate, bool)
}

// ValsetRelayPass is the valset-relaying compositional instance
// declared by spec.md §1: structurally the same algorithm as batch
// relaying (fetch candidate, guard on timeout/nonce, consult the same
// Fee Manager, submit, refresh cooldown) applied to a single
// always-at-most-one candidate instead of a per-token group.
type ValsetRelayPass struct {
	selector           ValsetSelector
	contract           ValsetContract
	feeManager         *fees.FeeManager
	gasPriceMultiplier float64
	pendingTxTimeout   time.Duration
	// gravityContractAddr is the key the shared Fee Manager cooldown
	// map uses for valset submissions, since valsets have no token
	// contract of their own to key on.
	gravityContractAddr common.Address
	logger              log.Logger
}

// NewValsetRelayPass constructs a ValsetRelayPass.
func NewValsetRelayPass(selector ValsetSelector, contract ValsetContract, feeManager *fees.FeeManager, gasPriceMultiplier float64, pendingTxTimeout time.Duration, gravityContractAddr common.Address, logger log.Logger) *ValsetRelayPass {
	return &ValsetRelayPass{
		selector:            selector,
		contract:            contract,
		feeManager:          feeManager,
		gasPriceMultiplier:  gasPriceMultiplier,
		pendingTxTimeout:    pendingTxTimeout,
		gravityContractAddr: gravityContractAddr,
		logger:              logger.With("component", "valset_relay"),
	}
}

// Run implements one valset-relay pass over the given valset snapshot.
func (p *ValsetRelayPass) Run(ctx context.Context, current types.Valset) {
	candidate, ok := p.selector.SelectValset(ctx, current)
	if !ok {
		return
	}

	blockHeight, err := p.contract.BlockNumber(ctx)
	if err != nil {
		p.logger.Error("failed to read current eth block height, aborting valset relay this tick", "err", err)
		return
	}

	latestNonce, err := p.contract.LatestValsetNonce(ctx)
	if err != nil {
		p.logger.Error("failed to read latest ethereum valset nonce, aborting", "err", err)
		return
	}

	if err := submit.CheckTimeoutAndNonce(candidate.Timeout, blockHeight, candidate.Valset.Nonce, latestNonce); err != nil {
		p.logger.Warn("dropping valset candidate", "nonce", candidate.Valset.Nonce, "reason", err)
		return
	}

	cost, err := p.contract.EstimateValsetGas(ctx, candidate)
	if err != nil {
		p.logger.Error("gas estimate failed for valset update, skipping", "nonce", candidate.Valset.Nonce, "err", err)
		return
	}

	if !p.feeManager.CanSendBatch(ctx, cost, candidate.Fee, p.gravityContractAddr) {
		p.logger.Info("valset update is not currently profitable enough to submit, skipping", "nonce", candidate.Valset.Nonce)
		return
	}

	if err := p.contract.SubmitValset(ctx, candidate, p.gasPriceMultiplier, p.pendingTxTimeout); err != nil {
		p.logger.Info("valset submission failed", "nonce", candidate.Valset.Nonce, "err", err)
		return
	}

	p.feeManager.UpdateNextBatchSendTime(p.gravityContractAddr)
	p.logger.Info("submitted valset update", "nonce", candidate.Valset.Nonce)
}
