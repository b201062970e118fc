// Package batch implements the Batch Selector (C3): querying Cosmos for
// candidate batches, validating their signatures against the current
// valset, and grouping the survivors by token, oldest first.
package batch

import (
	"context"

	"cosmossdk.io/log"
	"github.com/ethereum/go-ethereum/common"

	"github.com/crypto-org-chain/gravity-bridge/internal/cosmos"
	"github.com/crypto-org-chain/gravity-bridge/internal/sigs"
	"github.com/crypto-org-chain/gravity-bridge/internal/types"
)

// SubmittableBatch pairs a batch with the confirmations that order-match
// the current valset.
type SubmittableBatch struct {
	Batch types.TransactionBatch
	Sigs  []types.BatchConfirmResponse
}

// ConfirmHasher computes the canonical confirm hash of (gravityID,
// batch) that validator signatures are taken over. Hashing is a
// cryptographic primitive the spec declares out of scope; the Selector
// depends on it only through this narrow function type so a concrete
// hasher can be substituted without touching selection logic.
type ConfirmHasher func(gravityID string, batch types.TransactionBatch) []byte

// Selector implements the Batch Selector (C3).
type Selector struct {
	query     cosmos.QueryClient
	gravityID string
	hash      ConfirmHasher
	logger    log.Logger
}

// NewSelector constructs a Selector bound to a fixed gravityID for the
// process lifetime (spec.md §4.5 resolves it once at startup).
func NewSelector(query cosmos.QueryClient, gravityID string, hash ConfirmHasher, logger log.Logger) *Selector {
	return &Selector{
		query:     query,
		gravityID: gravityID,
		hash:      hash,
		logger:    logger.With("component", "batch_selector"),
	}
}

// Select implements spec.md §4.3 steps 1-5.
func (s *Selector) Select(ctx context.Context, valset types.Valset) map[common.Address][]SubmittableBatch {
	latestBatches, err := s.query.LatestTransactionBatches(ctx)
	if err != nil {
		// Transient upstream failure: the tick is a no-op for batches,
		// retried implicitly next tick (spec.md §4.3 step 1, §7).
		s.logger.Warn("failed to fetch latest transaction batches, skipping batch relay this tick", "err", err)
		return map[common.Address][]SubmittableBatch{}
	}

	grouped := make(map[common.Address][]SubmittableBatch)

	for _, b := range latestBatches {
		sigList, err := s.query.TransactionBatchSignatures(ctx, b.Nonce, b.TokenContract.Hex())
		if err != nil {
			s.logger.Warn("failed to fetch signatures for batch, skipping", "nonce", b.Nonce, "token", b.TokenContract.Hex(), "err", err)
			continue
		}

		confirmHash := s.hash(s.gravityID, b)
		if err := sigs.OrderSigs(confirmHash, sigList, valset); err != nil {
			s.logger.Warn("batch cannot be submitted yet, waiting for more signatures or a newer valset", "nonce", b.Nonce, "token", b.TokenContract.Hex(), "err", err)
			continue
		}

		grouped[b.TokenContract] = append(grouped[b.TokenContract], SubmittableBatch{Batch: b, Sigs: sigList})
	}

	// The Cosmos query returns newest first; reverse each per-token
	// group so the Submitter processes oldest first (spec.md §4.3 step
	// 5) — submitting an older batch first advances the Ethereum nonce
	// past any younger same-token batches, maximizing value extraction.
	for token, list := range grouped {
		reverse(list)
		grouped[token] = list
	}

	return grouped
}

func reverse(s []SubmittableBatch) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
