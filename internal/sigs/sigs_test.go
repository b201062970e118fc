package sigs_test

import (
	"crypto/ecdsa"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"

	"github.com/crypto-org-chain/gravity-bridge/internal/sigs"
	"github.com/crypto-org-chain/gravity-bridge/internal/types"
)

func mustKey(t *testing.T) *ecdsa.PrivateKey {
	t.Helper()
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	return key
}

func sign(t *testing.T, hash []byte, key *ecdsa.PrivateKey) []byte {
	t.Helper()
	sig, err := crypto.Sign(hash, key)
	require.NoError(t, err)
	return sig
}

func TestOrderSigsQuorumReached(t *testing.T) {
	hash := crypto.Keccak256([]byte("confirm-hash"))

	key1, key2, key3 := mustKey(t), mustKey(t), mustKey(t)
	addr1 := crypto.PubkeyToAddress(key1.PublicKey)
	addr2 := crypto.PubkeyToAddress(key2.PublicKey)
	addr3 := crypto.PubkeyToAddress(key3.PublicKey)

	valset := types.Valset{Members: []types.ValidatorPower{
		{EthAddress: addr1, Power: 34},
		{EthAddress: addr2, Power: 33},
		{EthAddress: addr3, Power: 33},
	}}

	confirms := []types.BatchConfirmResponse{
		{Validator: addr1, Signature: sign(t, hash, key1)},
		{Validator: addr2, Signature: sign(t, hash, key2)},
	}

	require.NoError(t, sigs.OrderSigs(hash, confirms, valset))
}

func TestOrderSigsInsufficientPower(t *testing.T) {
	hash := crypto.Keccak256([]byte("confirm-hash"))

	key1, key2, key3 := mustKey(t), mustKey(t), mustKey(t)
	addr1 := crypto.PubkeyToAddress(key1.PublicKey)
	addr2 := crypto.PubkeyToAddress(key2.PublicKey)
	addr3 := crypto.PubkeyToAddress(key3.PublicKey)

	valset := types.Valset{Members: []types.ValidatorPower{
		{EthAddress: addr1, Power: 34},
		{EthAddress: addr2, Power: 33},
		{EthAddress: addr3, Power: 33},
	}}

	// Only the 34-power validator signed: 34/100 < 2/3.
	confirms := []types.BatchConfirmResponse{
		{Validator: addr1, Signature: sign(t, hash, key1)},
	}

	err := sigs.OrderSigs(hash, confirms, valset)
	require.Error(t, err)
}

func TestOrderSigsIgnoresMismatchedSigner(t *testing.T) {
	hash := crypto.Keccak256([]byte("confirm-hash"))

	key1, impostor := mustKey(t), mustKey(t)
	addr1 := crypto.PubkeyToAddress(key1.PublicKey)

	valset := types.Valset{Members: []types.ValidatorPower{
		{EthAddress: addr1, Power: 100},
	}}

	// Signature recovers to impostor's address, not the claimed Validator.
	confirms := []types.BatchConfirmResponse{
		{Validator: addr1, Signature: sign(t, hash, impostor)},
	}

	err := sigs.OrderSigs(hash, confirms, valset)
	require.Error(t, err)
}

func TestOrderSigsEmptyValsetPower(t *testing.T) {
	hash := crypto.Keccak256([]byte("confirm-hash"))
	err := sigs.OrderSigs(hash, nil, types.Valset{})
	require.Error(t, err)
}
