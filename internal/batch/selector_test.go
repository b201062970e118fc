package batch_test

import (
	"context"
	"errors"
	"testing"

	"cosmossdk.io/log"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"

	"github.com/crypto-org-chain/gravity-bridge/internal/batch"
	"github.com/crypto-org-chain/gravity-bridge/internal/types"
)

type fakeQueryClient struct {
	batches    []types.TransactionBatch
	batchesErr error
	sigsByKey  map[uint64][]types.BatchConfirmResponse
	sigsErr    map[uint64]error
}

func (f *fakeQueryClient) LatestTransactionBatches(context.Context) ([]types.TransactionBatch, error) {
	return f.batches, f.batchesErr
}

func (f *fakeQueryClient) TransactionBatchSignatures(_ context.Context, nonce uint64, _ string) ([]types.BatchConfirmResponse, error) {
	if err, ok := f.sigsErr[nonce]; ok {
		return nil, err
	}
	return f.sigsByKey[nonce], nil
}

func (f *fakeQueryClient) LatestValsetRequests(context.Context) ([]types.Valset, error) {
	return nil, nil
}

func (f *fakeQueryClient) ValsetConfirmSignatures(context.Context, uint64) ([]types.BatchConfirmResponse, error) {
	return nil, nil
}

func (f *fakeQueryClient) LatestLogicCalls(context.Context) ([]types.OutgoingLogicCall, error) {
	return nil, nil
}

func (f *fakeQueryClient) LogicCallConfirmSignatures(context.Context, common.Address, uint64) ([]types.BatchConfirmResponse, error) {
	return nil, nil
}

func noopHash(string, types.TransactionBatch) []byte {
	return crypto.Keccak256([]byte("fixed-hash"))
}

func makeBatch(nonce uint64, token common.Address) types.TransactionBatch {
	return types.TransactionBatch{
		Nonce:         nonce,
		TokenContract: token,
		BatchTimeout:  1000,
		TotalFee:      types.Erc20Token{Amount: uint256.NewInt(1), TokenContractAddress: token},
	}
}

func signedConfirm(t *testing.T, valset types.Valset) ([]types.BatchConfirmResponse, types.Valset) {
	t.Helper()
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	addr := crypto.PubkeyToAddress(key.PublicKey)

	hash := noopHash("", types.TransactionBatch{})
	sig, err := crypto.Sign(hash, key)
	require.NoError(t, err)

	valset.Members = append(valset.Members, types.ValidatorPower{EthAddress: addr, Power: 100})
	return []types.BatchConfirmResponse{{Validator: addr, Signature: sig}}, valset
}

func TestSelect_GroupsByTokenOldestFirst(t *testing.T) {
	tokenA := common.HexToAddress("0xaaa")
	confirms, valset := signedConfirm(t, types.Valset{})

	older := makeBatch(1, tokenA)
	newer := makeBatch(2, tokenA)

	query := &fakeQueryClient{
		batches: []types.TransactionBatch{newer, older}, // newest first, as the real query returns
		sigsByKey: map[uint64][]types.BatchConfirmResponse{
			1: confirms,
			2: confirms,
		},
	}

	sel := batch.NewSelector(query, "gravity-id", noopHash, log.NewNopLogger())
	grouped := sel.Select(context.Background(), valset)

	require.Len(t, grouped[tokenA], 2)
	require.Equal(t, uint64(1), grouped[tokenA][0].Batch.Nonce)
	require.Equal(t, uint64(2), grouped[tokenA][1].Batch.Nonce)
}

func TestSelect_SkipsBatchWithInsufficientSignatures(t *testing.T) {
	tokenA := common.HexToAddress("0xaaa")
	unsignedValset := types.Valset{Members: []types.ValidatorPower{
		{EthAddress: common.HexToAddress("0x1"), Power: 100},
	}}

	query := &fakeQueryClient{
		batches: []types.TransactionBatch{makeBatch(1, tokenA)},
		sigsByKey: map[uint64][]types.BatchConfirmResponse{
			1: nil, // no confirmations at all
		},
	}

	sel := batch.NewSelector(query, "gravity-id", noopHash, log.NewNopLogger())
	grouped := sel.Select(context.Background(), unsignedValset)

	require.Empty(t, grouped[tokenA])
}

func TestSelect_SkipsBatchWhenSignatureFetchFails(t *testing.T) {
	tokenA := common.HexToAddress("0xaaa")
	_, valset := signedConfirm(t, types.Valset{})

	query := &fakeQueryClient{
		batches: []types.TransactionBatch{makeBatch(1, tokenA)},
		sigsErr: map[uint64]error{1: errors.New("upstream unavailable")},
	}

	sel := batch.NewSelector(query, "gravity-id", noopHash, log.NewNopLogger())
	grouped := sel.Select(context.Background(), valset)

	require.Empty(t, grouped[tokenA])
}

func TestSelect_EmptyOnQueryFailure(t *testing.T) {
	query := &fakeQueryClient{batchesErr: errors.New("unavailable")}

	sel := batch.NewSelector(query, "gravity-id", noopHash, log.NewNopLogger())
	grouped := sel.Select(context.Background(), types.Valset{})

	require.Empty(t, grouped)
}

func TestSelect_SeparatesMultipleTokens(t *testing.T) {
	tokenA := common.HexToAddress("0xaaa")
	tokenB := common.HexToAddress("0xbbb")
	confirms, valset := signedConfirm(t, types.Valset{})

	query := &fakeQueryClient{
		batches: []types.TransactionBatch{makeBatch(1, tokenA), makeBatch(1, tokenB)},
		sigsByKey: map[uint64][]types.BatchConfirmResponse{
			1: confirms,
		},
	}

	sel := batch.NewSelector(query, "gravity-id", noopHash, log.NewNopLogger())
	grouped := sel.Select(context.Background(), valset)

	require.Len(t, grouped, 2)
	require.Len(t, grouped[tokenA], 1)
	require.Len(t, grouped[tokenB], 1)
}
