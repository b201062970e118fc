// Package types holds the data model shared by the batch selector, fee
// manager, and submitter: valsets, transaction batches, and the
// Erc20/GasCost value types used to weigh a batch's profitability.
package types

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// RelayerMode selects how the Fee Manager decides whether a batch is
// worth submitting.
type RelayerMode string

const (
	ModeAlwaysRelay RelayerMode = "always-relay"
	ModeAPI         RelayerMode = "api"
	ModeFile        RelayerMode = "file"
)

// ValidatorPower is one validator's voting power entry within a Valset.
type ValidatorPower struct {
	EthAddress common.Address
	Power      uint64
}

// Valset is the ordered validator set currently installed in the
// Ethereum contract. Signatures can only be order-matched against the
// valset that is live on Ethereum right now; relayers must re-read it
// every tick rather than caching it across ticks.
type Valset struct {
	Nonce   uint64
	Members []ValidatorPower
}

// TotalPower sums the voting power across all members.
func (v Valset) TotalPower() uint64 {
	var total uint64
	for _, m := range v.Members {
		total += m.Power
	}
	return total
}

// PowerThreshold is the fraction of total power a set of signatures
// must reach to be considered a valid quorum, expressed as a numerator
// over a denominator of 3 (i.e. 2/3).
const (
	PowerThresholdNumerator   = 2
	PowerThresholdDenominator = 3
)

// Erc20Token is a raw on-chain amount denominated in a specific ERC20
// contract. Amounts are integers; no decimal interpretation happens in
// this package.
type Erc20Token struct {
	Amount               *uint256.Int
	TokenContractAddress common.Address
}

// GasCost is the result of estimating an Ethereum transaction's cost.
type GasCost struct {
	Gas      *uint256.Int
	GasPrice *uint256.Int
}

// Total returns gas * gas_price in wei.
func (g GasCost) Total() *uint256.Int {
	return new(uint256.Int).Mul(g.Gas, g.GasPrice)
}

// OutgoingTx is one pending transfer bundled inside a TransactionBatch.
// Its internal structure is opaque to the relayer core: the batch is
// submitted as a unit and the relayer never inspects individual
// transfers.
type OutgoingTx struct {
	ID          uint64
	Sender      string
	Destination common.Address
	Erc20Token  Erc20Token
}

// TransactionBatch is a bundle of pending outbound transfers awaiting
// submission to the Ethereum contract.
//
// Submittable only while BatchTimeout > current Ethereum block height
// and Nonce > the latest nonce on Ethereum for TokenContract.
type TransactionBatch struct {
	Nonce         uint64
	TokenContract common.Address
	BatchTimeout  uint64
	TotalFee      Erc20Token
	Transactions  []OutgoingTx
}

// BatchConfirmResponse is one validator's signature over the canonical
// confirm hash of (gravity_id, batch).
type BatchConfirmResponse struct {
	Validator common.Address
	Signature []byte
}

// NormalizeAddress returns the canonical lowercase-hex "0x..." form used
// as a map key everywhere a token contract address is looked up, so that
// "0xABCD..." and "0xabcd..." always resolve to the same entry.
func NormalizeAddress(addr common.Address) string {
	return strings.ToLower(addr.Hex())
}
