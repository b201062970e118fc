package relayer_test

import (
	"context"
	"errors"
	"testing"

	"cosmossdk.io/log"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"

	"github.com/crypto-org-chain/gravity-bridge/internal/relayer"
	"github.com/crypto-org-chain/gravity-bridge/internal/types"
)

type fakeSelectorQueryClient struct {
	batches    []types.TransactionBatch
	batchSigs  map[uint64][]types.BatchConfirmResponse
	batchesErr error

	valsetRequests    []types.Valset
	valsetRequestsErr error
	valsetSigs        map[uint64][]types.BatchConfirmResponse

	logicCalls    []types.OutgoingLogicCall
	logicCallsErr error
	logicCallSigs map[uint64][]types.BatchConfirmResponse
}

func (f *fakeSelectorQueryClient) LatestTransactionBatches(context.Context) ([]types.TransactionBatch, error) {
	return f.batches, f.batchesErr
}
func (f *fakeSelectorQueryClient) TransactionBatchSignatures(_ context.Context, nonce uint64, _ string) ([]types.BatchConfirmResponse, error) {
	return f.batchSigs[nonce], nil
}
func (f *fakeSelectorQueryClient) LatestValsetRequests(context.Context) ([]types.Valset, error) {
	return f.valsetRequests, f.valsetRequestsErr
}
func (f *fakeSelectorQueryClient) ValsetConfirmSignatures(_ context.Context, nonce uint64) ([]types.BatchConfirmResponse, error) {
	return f.valsetSigs[nonce], nil
}
func (f *fakeSelectorQueryClient) LatestLogicCalls(context.Context) ([]types.OutgoingLogicCall, error) {
	return f.logicCalls, f.logicCallsErr
}
func (f *fakeSelectorQueryClient) LogicCallConfirmSignatures(_ context.Context, _ common.Address, nonce uint64) ([]types.BatchConfirmResponse, error) {
	return f.logicCallSigs[nonce], nil
}

func quorumMember(t *testing.T) (types.ValidatorPower, []byte) {
	t.Helper()
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	addr := crypto.PubkeyToAddress(key.PublicKey)
	sig, err := crypto.Sign(crypto.Keccak256([]byte("fixed-valset-hash")), key)
	require.NoError(t, err)
	return types.ValidatorPower{EthAddress: addr, Power: 100}, sig
}

func TestCosmosValsetSelector_PicksNewestQuorumRequest(t *testing.T) {
	member, sig := quorumMember(t)
	current := types.Valset{Nonce: 1, Members: []types.ValidatorPower{member}}

	query := &fakeSelectorQueryClient{
		valsetRequests: []types.Valset{
			{Nonce: 2, Members: []types.ValidatorPower{member}},
			{Nonce: 3, Members: []types.ValidatorPower{member}},
		},
		valsetSigs: map[uint64][]types.BatchConfirmResponse{
			2: {{Validator: member.EthAddress, Signature: sig}},
			3: {{Validator: member.EthAddress, Signature: sig}},
		},
	}

	hash := func(string, types.Valset) []byte { return crypto.Keccak256([]byte("fixed-valset-hash")) }
	fee := types.Erc20Token{Amount: uint256.NewInt(0), TokenContractAddress: common.HexToAddress("0x1")}
	sel := relayer.NewCosmosValsetSelector(query, "gravity-id", hash, fee, func(uint64) uint64 { return 1000 }, log.NewNopLogger())

	candidate, ok := sel.SelectValset(context.Background(), current)
	require.True(t, ok)
	require.Equal(t, uint64(3), candidate.Valset.Nonce)
	require.Equal(t, uint64(1000), candidate.Timeout)
}

func TestCosmosValsetSelector_IgnoresRequestsNotNewerThanCurrent(t *testing.T) {
	member, _ := quorumMember(t)
	current := types.Valset{Nonce: 5, Members: []types.ValidatorPower{member}}

	query := &fakeSelectorQueryClient{
		valsetRequests: []types.Valset{{Nonce: 5, Members: []types.ValidatorPower{member}}},
	}

	hash := func(string, types.Valset) []byte { return nil }
	sel := relayer.NewCosmosValsetSelector(query, "gravity-id", hash, types.Erc20Token{}, func(uint64) uint64 { return 0 }, log.NewNopLogger())

	_, ok := sel.SelectValset(context.Background(), current)
	require.False(t, ok)
}

func TestCosmosValsetSelector_NoneOnQueryFailure(t *testing.T) {
	query := &fakeSelectorQueryClient{valsetRequestsErr: errors.New("unavailable")}

	hash := func(string, types.Valset) []byte { return nil }
	sel := relayer.NewCosmosValsetSelector(query, "gravity-id", hash, types.Erc20Token{}, func(uint64) uint64 { return 0 }, log.NewNopLogger())

	_, ok := sel.SelectValset(context.Background(), types.Valset{})
	require.False(t, ok)
}

func logicCallHash(string, types.OutgoingLogicCall) []byte {
	return crypto.Keccak256([]byte("fixed-logiccall-hash"))
}

func quorumLogicCallMember(t *testing.T) (types.ValidatorPower, []byte) {
	t.Helper()
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	addr := crypto.PubkeyToAddress(key.PublicKey)
	sig, err := crypto.Sign(crypto.Keccak256([]byte("fixed-logiccall-hash")), key)
	require.NoError(t, err)
	return types.ValidatorPower{EthAddress: addr, Power: 100}, sig
}

func TestCosmosLogicCallSelector_GroupsByScopeOldestFirst(t *testing.T) {
	member, sig := quorumLogicCallMember(t)
	current := types.Valset{Members: []types.ValidatorPower{member}}
	scope := common.HexToAddress("0xaaa")

	query := &fakeSelectorQueryClient{
		logicCalls: []types.OutgoingLogicCall{
			{InvalidationID: scope, Nonce: 2, Timeout: 1000},
			{InvalidationID: scope, Nonce: 1, Timeout: 1000},
		},
		logicCallSigs: map[uint64][]types.BatchConfirmResponse{
			1: {{Validator: member.EthAddress, Signature: sig}},
			2: {{Validator: member.EthAddress, Signature: sig}},
		},
	}

	sel := relayer.NewCosmosLogicCallSelector(query, "gravity-id", logicCallHash, log.NewNopLogger())
	grouped := sel.SelectLogicCalls(context.Background(), current)

	require.Len(t, grouped[scope], 2)
	require.Equal(t, uint64(1), grouped[scope][0].Nonce)
	require.Equal(t, uint64(2), grouped[scope][1].Nonce)
}

func TestCosmosLogicCallSelector_SkipsUnsignedCall(t *testing.T) {
	scope := common.HexToAddress("0xaaa")
	current := types.Valset{Members: []types.ValidatorPower{{EthAddress: common.HexToAddress("0x1"), Power: 100}}}

	query := &fakeSelectorQueryClient{
		logicCalls: []types.OutgoingLogicCall{{InvalidationID: scope, Nonce: 1, Timeout: 1000}},
	}

	sel := relayer.NewCosmosLogicCallSelector(query, "gravity-id", logicCallHash, log.NewNopLogger())
	grouped := sel.SelectLogicCalls(context.Background(), current)

	require.Empty(t, grouped[scope])
}

func TestCosmosLogicCallSelector_EmptyOnQueryFailure(t *testing.T) {
	query := &fakeSelectorQueryClient{logicCallsErr: errors.New("unavailable")}

	sel := relayer.NewCosmosLogicCallSelector(query, "gravity-id", logicCallHash, log.NewNopLogger())
	grouped := sel.SelectLogicCalls(context.Background(), types.Valset{})

	require.Empty(t, grouped)
}
