// Package submit implements the Submitter (C4): for each token group of
// candidate batches, it verifies the Ethereum-side nonce, estimates gas,
// consults the Fee Manager, and submits. The Submitter handles batches
// only; valset and logic-call relaying (internal/relayer) run their own
// loops and share only CheckTimeoutAndNonce and the Fee Manager with it.
package submit

import (
	"context"
	"sync"
	"time"

	"cosmossdk.io/log"
	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/sync/errgroup"

	"github.com/crypto-org-chain/gravity-bridge/internal/batch"
	"github.com/crypto-org-chain/gravity-bridge/internal/ethereum"
	"github.com/crypto-org-chain/gravity-bridge/internal/fees"
	"github.com/crypto-org-chain/gravity-bridge/internal/types"
)

// Result summarizes one token group's submission pass, useful for
// metrics and tests.
type Result struct {
	Submitted int
	Skipped   int
	Failed    int
}

// Submitter implements the Submitter (C4).
type Submitter struct {
	contract           ethereum.GravityContract
	feeManager         *fees.FeeManager
	gasPriceMultiplier float64
	pendingTxTimeout   time.Duration
	logger             log.Logger
}

// NewSubmitter constructs a Submitter.
func NewSubmitter(contract ethereum.GravityContract, feeManager *fees.FeeManager, gasPriceMultiplier float64, pendingTxTimeout time.Duration, logger log.Logger) *Submitter {
	return &Submitter{
		contract:           contract,
		feeManager:         feeManager,
		gasPriceMultiplier: gasPriceMultiplier,
		pendingTxTimeout:   pendingTxTimeout,
		logger:             logger.With("component", "submitter"),
	}
}

// SubmitGroups implements spec.md §4.4 across every token group,
// attempting at most one successful submission per token per tick (the
// spec's documented safe interpretation of its Open Question #1: the
// cached Ethereum nonce read at the top of each token's loop goes stale
// after the first success). Token groups are independent of one
// another — each reads its own cached nonce and consults the same
// mutex-guarded Fee Manager cooldown map — so they run concurrently via
// errgroup rather than one after another.
func (s *Submitter) SubmitGroups(ctx context.Context, valset types.Valset, groups map[common.Address][]batch.SubmittableBatch) map[common.Address]Result {
	results := make(map[common.Address]Result, len(groups))

	blockHeight, err := s.contract.BlockNumber(ctx)
	if err != nil {
		// Step 2: abort the whole batch pass if we can't read block
		// height at all (spec.md §4.4 step 2).
		s.logger.Error("failed to read current eth block height, aborting batch relay this tick", "err", err)
		return results
	}

	var mu sync.Mutex
	group, groupCtx := errgroup.WithContext(ctx)

	for token, candidates := range groups {
		token, candidates := token, candidates
		group.Go(func() error {
			result := s.submitGroup(groupCtx, valset, token, candidates, blockHeight)
			mu.Lock()
			results[token] = result
			mu.Unlock()
			return nil
		})
	}

	// submitGroup never returns an error itself (failures are recorded
	// in Result.Failed), so Wait only reports ctx cancellation.
	_ = group.Wait()

	return results
}

func (s *Submitter) submitGroup(ctx context.Context, valset types.Valset, token common.Address, candidates []batch.SubmittableBatch, blockHeight uint64) Result {
	latestNonce, err := s.contract.LatestBatchNonce(ctx, token)
	if err != nil {
		s.logger.Error("failed to read latest ethereum batch nonce, skipping token", "token", token.Hex(), "err", err)
		return Result{}
	}

	var result Result
	submittedThisTick := false

	for _, candidate := range candidates {
		b := candidate.Batch

		if submittedThisTick {
			// One successful submission per token per tick: further
			// candidates would be attempted against a now-stale cached
			// nonce. They remain eligible and will be reconsidered on
			// the next tick (spec.md §9 Open Question #1).
			s.logger.Debug("skipping remaining candidates for token this tick after a successful submission", "token", token.Hex(), "nonce", b.Nonce)
			result.Skipped++
			continue
		}

		if err := CheckTimeoutAndNonce(b.BatchTimeout, blockHeight, b.Nonce, latestNonce); err != nil {
			s.logger.Warn("dropping candidate", "nonce", b.Nonce, "token", token.Hex(), "reason", err, "block_height", blockHeight, "latest_ethereum_nonce", latestNonce)
			result.Skipped++
			continue
		}

		cost, err := s.contract.EstimateBatchGas(ctx, valset, b, candidate.Sigs)
		if err != nil {
			s.logger.Error("gas estimate failed, skipping candidate", "nonce", b.Nonce, "token", token.Hex(), "err", err)
			result.Skipped++
			continue
		}

		if !s.feeManager.CanSendBatch(ctx, cost, b.TotalFee, token) {
			s.logger.Info("batch is not currently profitable enough to submit, skipping", "nonce", b.Nonce, "token", token.Hex())
			result.Skipped++
			continue
		}

		receipt, err := s.contract.SubmitBatch(ctx, valset, b, candidate.Sigs, s.gasPriceMultiplier, s.pendingTxTimeout)
		if err != nil {
			s.logger.Info("batch submission failed", "nonce", b.Nonce, "token", token.Hex(), "err", err)
			result.Failed++
			continue
		}

		s.feeManager.UpdateNextBatchSendTime(token)
		result.Submitted++
		submittedThisTick = true

		s.logger.Info("submitted batch",
			"nonce", b.Nonce, "token", token.Hex(),
			"gas_used", receipt.GasUsed,
			"eth_cost", weiToEthString(cost.Total()),
		)
	}

	return result
}
