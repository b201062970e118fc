package relayer

import (
	"context"

	"cosmossdk.io/log"

	"github.com/crypto-org-chain/gravity-bridge/internal/cosmos"
	"github.com/crypto-org-chain/gravity-bridge/internal/sigs"
	"github.com/crypto-org-chain/gravity-bridge/internal/types"
)

// ValsetConfirmHasher computes the canonical confirm hash of
// (gravityID, valset) that validator signatures over a valset update
// are taken over — the valset-relay analogue of
// internal/batch.ConfirmHasher.
type ValsetConfirmHasher func(gravityID string, valset types.Valset) []byte

// CosmosValsetSelector implements ValsetSelector against a
// cosmos.QueryClient, mirroring internal/batch.Selector's shape: fetch
// pending requests, validate signatures against the current valset,
// and hand back the newest one that clears quorum and actually
// supersedes what is already installed on Ethereum.
type CosmosValsetSelector struct {
	query     cosmos.QueryClient
	gravityID string
	hash      ValsetConfirmHasher
	fee       types.Erc20Token
	timeout   func(requestNonce uint64) uint64
	logger    log.Logger
}

// NewCosmosValsetSelector constructs a CosmosValsetSelector. fee is the
// fixed relay fee valset updates carry (Gravity valset updates are not
// individually fee-bearing on most deployments; callers that run a
// fee-bearing variant supply a non-zero Erc20Token). timeoutForNonce
// derives the Ethereum timeout height for a given Cosmos valset nonce.
func NewCosmosValsetSelector(query cosmos.QueryClient, gravityID string, hash ValsetConfirmHasher, fee types.Erc20Token, timeoutForNonce func(uint64) uint64, logger log.Logger) *CosmosValsetSelector {
	return &CosmosValsetSelector{
		query:     query,
		gravityID: gravityID,
		hash:      hash,
		fee:       fee,
		timeout:   timeoutForNonce,
		logger:    logger.With("component", "valset_selector"),
	}
}

// SelectValset implements spec.md §1's valset-relay compositional
// instance of the Batch Selector's algorithm: query pending requests,
// order-match signatures against current, and return the newest
// request whose nonce is still ahead of what is installed.
func (s *CosmosValsetSelector) SelectValset(ctx context.Context, current types.Valset) (types.ValsetCandidate, bool) {
	requests, err := s.query.LatestValsetRequests(ctx)
	if err != nil {
		s.logger.Warn("failed to fetch latest valset requests, skipping valset relay this tick", "err", err)
		return types.ValsetCandidate{}, false
	}

	var newest *types.Valset
	for i := range requests {
		candidate := requests[i]
		if candidate.Nonce <= current.Nonce {
			continue
		}

		confirms, err := s.query.ValsetConfirmSignatures(ctx, candidate.Nonce)
		if err != nil {
			s.logger.Warn("failed to fetch signatures for valset request, skipping", "nonce", candidate.Nonce, "err", err)
			continue
		}

		confirmHash := s.hash(s.gravityID, candidate)
		if err := sigs.OrderSigs(confirmHash, confirms, current); err != nil {
			s.logger.Warn("valset request cannot be submitted yet, waiting for more signatures", "nonce", candidate.Nonce, "err", err)
			continue
		}

		if newest == nil || candidate.Nonce > newest.Nonce {
			c := candidate
			newest = &c
		}
	}

	if newest == nil {
		return types.ValsetCandidate{}, false
	}

	return types.ValsetCandidate{
		Valset:  *newest,
		Timeout: s.timeout(newest.Nonce),
		Fee:     s.fee,
	}, true
}
