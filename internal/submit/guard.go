package submit

import "errors"

// Shared skip reasons. Exported as sentinel errors so valset- and
// logic-call-relaying (internal/relayer) can log the same
// "timed out" / "nonce already passed" distinction the Batch Submitter
// makes, without duplicating the comparison logic spec.md §4.4 steps
// 3a/3b specify.
var (
	ErrBatchTimedOut      = errors.New("batch timed out on ethereum")
	ErrNonceAlreadyPassed = errors.New("batch nonce already passed on ethereum")
)

// CheckTimeoutAndNonce implements spec.md §4.4 steps 3a/3b, the guard
// every artifact class (batches, valsets, logic calls) applies before
// spending a gas estimate on a candidate: a batch is submittable only
// while its timeout height is still ahead of the chain and its nonce is
// still ahead of what Ethereum has already recorded.
func CheckTimeoutAndNonce(timeoutHeight, blockHeight, candidateNonce, latestNonce uint64) error {
	if timeoutHeight <= blockHeight {
		return ErrBatchTimedOut
	}
	if candidateNonce <= latestNonce {
		return ErrNonceAlreadyPassed
	}
	return nil
}
