// Package fees implements the Price Source (C1) and Fee Manager (C2):
// the profitability and cooldown machinery that decides whether a given
// batch is worth submitting right now.
package fees

import (
	"context"
	"sync"
	"time"

	"cosmossdk.io/log"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/crypto-org-chain/gravity-bridge/internal/config"
	"github.com/crypto-org-chain/gravity-bridge/internal/types"
)

// FeeManager decides, per batch, whether it is economically worth
// submitting now. It holds the only in-memory longitudinal state in the
// relayer: the per-token next-eligible-send-time cooldown map.
type FeeManager struct {
	mode types.RelayerMode

	priceSource PriceSource
	oracle      ProfitabilityOracle

	cooldown time.Duration
	logger   log.Logger

	mu                 sync.Mutex
	nextBatchSendTime map[string]time.Time
}

// NewFeeManager performs mode-specific initialization. AlwaysRelay
// needs no I/O. File reads and parses the price JSON eagerly - any
// error here is fatal to startup. Api only records the oracle URL.
func NewFeeManager(cfg config.FeeManagerConfig, logger log.Logger) (*FeeManager, error) {
	fm := &FeeManager{
		mode:              cfg.Mode,
		cooldown:          cfg.CooldownDuration,
		logger:            logger.With("component", "fee_manager", "mode", string(cfg.Mode)),
		nextBatchSendTime: make(map[string]time.Time),
	}

	switch cfg.Mode {
	case types.ModeAlwaysRelay:
		// No I/O required.
	case types.ModeFile:
		priceSource, err := NewFilePriceSource(cfg.TokenPricesPath)
		if err != nil {
			return nil, err
		}
		fm.priceSource = priceSource
	case types.ModeAPI:
		fm.oracle = NewAPIProfitabilityOracle(cfg.RelayerAPIURL, nil)
	}

	return fm, nil
}

// NewFeeManagerWithDeps builds a FeeManager with pre-constructed
// collaborators, for tests that need to substitute fakes without going
// through file/HTTP I/O.
func NewFeeManagerWithDeps(mode types.RelayerMode, cooldown time.Duration, priceSource PriceSource, oracle ProfitabilityOracle, logger log.Logger) *FeeManager {
	return &FeeManager{
		mode:              mode,
		priceSource:       priceSource,
		oracle:            oracle,
		cooldown:          cooldown,
		logger:            logger,
		nextBatchSendTime: make(map[string]time.Time),
	}
}

// CanSendBatch is the central profitability predicate (spec.md §4.2).
func (fm *FeeManager) CanSendBatch(ctx context.Context, cost types.GasCost, fee types.Erc20Token, tokenContract common.Address) bool {
	if fm.mode == types.ModeAlwaysRelay {
		return true
	}

	elapsed := fm.cooldownElapsed(tokenContract)

	switch fm.mode {
	case types.ModeFile:
		if elapsed {
			return true
		}

		price, err := fm.priceSource.Price(ctx, tokenContract)
		if err != nil {
			fm.logger.Warn("cannot price batch, skipping", "token", tokenContract.Hex(), "err", err)
			return false
		}

		batchValue := new(uint256.Int).Mul(fee.Amount, price)
		total := cost.Total()
		fm.logger.Info("evaluated batch profitability", "token", tokenContract.Hex(),
			"batch_value", batchValue.String(), "estimated_cost_wei", total.String())

		return batchValue.Cmp(total) >= 0

	case types.ModeAPI:
		resp, err := fm.oracle.Query(ctx, fee, cost)
		if err != nil {
			fm.logger.Warn("profitability oracle unavailable, skipping", "token", tokenContract.Hex(), "err", err)
			return false
		}
		if resp.InBlacklist {
			fm.logger.Warn("token blacklisted by profitability oracle", "token", tokenContract.Hex())
			return false
		}

		return resp.Profitable || elapsed
	}

	return false
}

// cooldownElapsed implements the state-machine view of one token's
// cooldown entry described in spec.md §4.2:
//
//	Absent   -> insert now+cooldown, report "not elapsed"
//	Cooling  -> now <= deadline -> "not elapsed"
//	Elapsed  -> now > deadline -> "elapsed"
//
// AlwaysRelay never reaches here; cooldown state is only meaningful for
// File and Api modes.
func (fm *FeeManager) cooldownElapsed(tokenContract common.Address) bool {
	key := types.NormalizeAddress(tokenContract)

	fm.mu.Lock()
	defer fm.mu.Unlock()

	deadline, ok := fm.nextBatchSendTime[key]
	if !ok {
		fm.nextBatchSendTime[key] = time.Now().Add(fm.cooldown)
		return false
	}

	return time.Now().After(deadline)
}

// UpdateNextBatchSendTime is called by the Submitter on successful
// on-chain submission, extending the token's cooldown window. It must
// never be called before a submission actually succeeds, so that a
// failed submission remains eligible for retry (spec.md §7).
func (fm *FeeManager) UpdateNextBatchSendTime(tokenContract common.Address) {
	if fm.mode == types.ModeAlwaysRelay {
		return
	}

	key := types.NormalizeAddress(tokenContract)
	deadline := time.Now().Add(fm.cooldown)

	fm.mu.Lock()
	fm.nextBatchSendTime[key] = deadline
	fm.mu.Unlock()

	fm.logger.Debug("refreshed batch cooldown", "token", tokenContract.Hex(), "next_eligible", deadline)
}
