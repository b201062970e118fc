package relayer

import (
	"context"

	"cosmossdk.io/log"
	"github.com/ethereum/go-ethereum/common"

	"github.com/crypto-org-chain/gravity-bridge/internal/cosmos"
	"github.com/crypto-org-chain/gravity-bridge/internal/sigs"
	"github.com/crypto-org-chain/gravity-bridge/internal/types"
)

// LogicCallConfirmHasher computes the canonical confirm hash of
// (gravityID, call) validator signatures over a logic call are taken
// over — the logic-call-relay analogue of internal/batch.ConfirmHasher.
type LogicCallConfirmHasher func(gravityID string, call types.OutgoingLogicCall) []byte

// CosmosLogicCallSelector implements LogicCallSelector against a
// cosmos.QueryClient, grouping pending calls by invalidation scope and
// ordering each scope oldest-first, exactly like internal/batch.Selector
// does for token contracts.
type CosmosLogicCallSelector struct {
	query     cosmos.QueryClient
	gravityID string
	hash      LogicCallConfirmHasher
	logger    log.Logger
}

// NewCosmosLogicCallSelector constructs a CosmosLogicCallSelector.
func NewCosmosLogicCallSelector(query cosmos.QueryClient, gravityID string, hash LogicCallConfirmHasher, logger log.Logger) *CosmosLogicCallSelector {
	return &CosmosLogicCallSelector{
		query:     query,
		gravityID: gravityID,
		hash:      hash,
		logger:    logger.With("component", "logic_call_selector"),
	}
}

// SelectLogicCalls implements the logic-call-relay compositional
// instance of the Batch Selector's algorithm (spec.md §1): query
// pending calls, order-match signatures against current, and group the
// survivors by invalidation scope, oldest first.
func (s *CosmosLogicCallSelector) SelectLogicCalls(ctx context.Context, current types.Valset) map[common.Address][]types.LogicCallCandidate {
	calls, err := s.query.LatestLogicCalls(ctx)
	if err != nil {
		s.logger.Warn("failed to fetch latest logic calls, skipping logic call relay this tick", "err", err)
		return map[common.Address][]types.LogicCallCandidate{}
	}

	grouped := make(map[common.Address][]types.LogicCallCandidate)

	for _, call := range calls {
		confirms, err := s.query.LogicCallConfirmSignatures(ctx, call.InvalidationID, call.Nonce)
		if err != nil {
			s.logger.Warn("failed to fetch signatures for logic call, skipping", "nonce", call.Nonce, "scope", call.InvalidationID.Hex(), "err", err)
			continue
		}

		confirmHash := s.hash(s.gravityID, call)
		if err := sigs.OrderSigs(confirmHash, confirms, current); err != nil {
			s.logger.Warn("logic call cannot be submitted yet, waiting for more signatures or a newer valset", "nonce", call.Nonce, "scope", call.InvalidationID.Hex(), "err", err)
			continue
		}

		grouped[call.InvalidationID] = append(grouped[call.InvalidationID], types.LogicCallCandidate{
			InvalidationID: call.InvalidationID,
			Nonce:          call.Nonce,
			Timeout:        call.Timeout,
			Fee:            call.Fee,
		})
	}

	// The Cosmos query returns newest first per scope; reverse so the
	// relay pass processes oldest first within each scope (same
	// rationale as internal/batch.Selector.Select).
	for scope, list := range grouped {
		reverseLogicCalls(list)
		grouped[scope] = list
	}

	return grouped
}

func reverseLogicCalls(s []types.LogicCallCandidate) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
