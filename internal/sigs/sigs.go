// Package sigs orders a batch's collected signatures against the
// current valset. Cryptographic primitives are declared an
// out-of-scope collaborator by the spec, but the Batch Selector's
// order-matching step has no meaning without a concrete algorithm, so
// this package gives it one grounded in the BatchConfirmResponse
// invariant: recover each signer's address and check that validators
// who actually signed hold enough power to clear quorum.
package sigs

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/crypto-org-chain/gravity-bridge/internal/relayererrors"
	"github.com/crypto-org-chain/gravity-bridge/internal/types"

	errorsmod "cosmossdk.io/errors"
)

// OrderSigs checks that the given confirmations, recovered against
// hash, map onto validators in valset whose combined power reaches the
// quorum threshold. Returns ErrSignatureOrder if the signatures are
// insufficient — the caller is expected to skip the batch and retry on
// a later tick (spec.md §4.3 step 3).
func OrderSigs(hash []byte, confirms []types.BatchConfirmResponse, valset types.Valset) error {
	power := make(map[common.Address]uint64, len(valset.Members))
	for _, m := range valset.Members {
		power[m.EthAddress] = m.Power
	}

	seen := make(map[common.Address]bool, len(confirms))
	var signedPower uint64

	for _, c := range confirms {
		signer, err := recoverSigner(hash, c.Signature)
		if err != nil {
			// An unrecoverable/malformed signature does not itself
			// invalidate the whole batch; it just doesn't count.
			continue
		}

		if signer != c.Validator {
			continue
		}

		if seen[signer] {
			continue
		}
		seen[signer] = true

		if p, ok := power[signer]; ok {
			signedPower += p
		}
	}

	total := valset.TotalPower()
	if total == 0 {
		return errorsmod.Wrap(relayererrors.ErrSignatureOrder, "valset has no power")
	}

	// signedPower/total >= 2/3  <=>  signedPower*3 >= total*2
	if signedPower*types.PowerThresholdDenominator < total*types.PowerThresholdNumerator {
		return errorsmod.Wrapf(relayererrors.ErrSignatureOrder,
			"insufficient signed power: %d/%d", signedPower, total)
	}

	return nil
}

// recoverSigner recovers the Ethereum address that produced sig over
// hash, using the same ECDSA recovery go-ethereum's signer uses
// elsewhere in the pack (e.g. the ante handlers' transaction signature
// checks).
func recoverSigner(hash []byte, sig []byte) (common.Address, error) {
	if len(sig) != crypto.SignatureLength {
		return common.Address{}, errorsmod.Wrapf(relayererrors.ErrSignatureOrder, "signature has wrong length %d", len(sig))
	}

	pubKey, err := crypto.SigToPub(hash, sig)
	if err != nil {
		return common.Address{}, errorsmod.Wrapf(relayererrors.ErrSignatureOrder, "recovering signer: %v", err)
	}

	return crypto.PubkeyToAddress(*pubKey), nil
}
