package types

import "github.com/ethereum/go-ethereum/common"

// ValsetCandidate is a validator-set update waiting to be relayed to
// the Ethereum contract. There is exactly one Gravity contract, so at
// most one candidate is ever pending at a time, unlike batches which
// are grouped per token contract.
type ValsetCandidate struct {
	Valset  Valset
	Timeout uint64
	Fee     Erc20Token
}

// LogicCallCandidate is an arbitrary contract call bundle awaiting
// submission, grouped like a batch by an invalidation-scope address so
// multiple independent logic call "lanes" can be in flight at once.
type LogicCallCandidate struct {
	InvalidationID common.Address
	Nonce          uint64
	Timeout        uint64
	Fee            Erc20Token
}

// OutgoingLogicCall is a pending logic call as reported by the Cosmos
// query client, before its confirmations have been validated against
// the current valset. Its payload (the arbitrary calldata being
// relayed) is opaque to the relayer core, the same way OutgoingTx's
// transfer details are opaque to batch relaying.
type OutgoingLogicCall struct {
	InvalidationID common.Address
	Nonce          uint64
	Timeout        uint64
	Fee            Erc20Token
}
