package relayer_test

import (
	"context"
	"testing"
	"time"

	"cosmossdk.io/log"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"

	"github.com/crypto-org-chain/gravity-bridge/internal/relayer"
	"github.com/crypto-org-chain/gravity-bridge/internal/types"
)

type fakeLogicCallSelector struct {
	groups map[common.Address][]types.LogicCallCandidate
}

func (f *fakeLogicCallSelector) SelectLogicCalls(context.Context, types.Valset) map[common.Address][]types.LogicCallCandidate {
	return f.groups
}

type fakeLogicCallContract struct {
	blockNumber uint64
	latestNonce map[common.Address]uint64
	submitted   []uint64
}

func (f *fakeLogicCallContract) BlockNumber(context.Context) (uint64, error) { return f.blockNumber, nil }
func (f *fakeLogicCallContract) LatestLogicCallNonce(_ context.Context, scope common.Address) (uint64, error) {
	return f.latestNonce[scope], nil
}
func (f *fakeLogicCallContract) EstimateLogicCallGas(context.Context, types.LogicCallCandidate) (types.GasCost, error) {
	return types.GasCost{Gas: uint256.NewInt(1), GasPrice: uint256.NewInt(1)}, nil
}
func (f *fakeLogicCallContract) SubmitLogicCall(_ context.Context, candidate types.LogicCallCandidate, _ float64, _ time.Duration) error {
	f.submitted = append(f.submitted, candidate.Nonce)
	return nil
}

func logicCallCandidate(scope common.Address, nonce, timeout uint64) types.LogicCallCandidate {
	return types.LogicCallCandidate{
		InvalidationID: scope,
		Nonce:          nonce,
		Timeout:        timeout,
		Fee:            types.Erc20Token{Amount: uint256.NewInt(1), TokenContractAddress: scope},
	}
}

func TestLogicCallRelayPass_SubmitsOneCandidatePerScope(t *testing.T) {
	scope := common.HexToAddress("0xaaa")
	selector := &fakeLogicCallSelector{groups: map[common.Address][]types.LogicCallCandidate{
		scope: {logicCallCandidate(scope, 2, 1000), logicCallCandidate(scope, 3, 1000)},
	}}
	contract := &fakeLogicCallContract{blockNumber: 10, latestNonce: map[common.Address]uint64{scope: 1}}

	pass := relayer.NewLogicCallRelayPass(selector, contract, alwaysRelay(t), 1.0, time.Second, log.NewNopLogger())
	pass.Run(context.Background(), types.Valset{})

	require.Equal(t, []uint64{2}, contract.submitted)
}

func TestLogicCallRelayPass_SkipsTimedOutThenSubmitsNext(t *testing.T) {
	scope := common.HexToAddress("0xaaa")
	selector := &fakeLogicCallSelector{groups: map[common.Address][]types.LogicCallCandidate{
		scope: {logicCallCandidate(scope, 2, 5), logicCallCandidate(scope, 3, 1000)},
	}}
	contract := &fakeLogicCallContract{blockNumber: 100, latestNonce: map[common.Address]uint64{scope: 1}}

	pass := relayer.NewLogicCallRelayPass(selector, contract, alwaysRelay(t), 1.0, time.Second, log.NewNopLogger())
	pass.Run(context.Background(), types.Valset{})

	require.Equal(t, []uint64{3}, contract.submitted)
}

func TestLogicCallRelayPass_NoGroupsIsNoop(t *testing.T) {
	selector := &fakeLogicCallSelector{groups: map[common.Address][]types.LogicCallCandidate{}}
	contract := &fakeLogicCallContract{blockNumber: 10}

	pass := relayer.NewLogicCallRelayPass(selector, contract, alwaysRelay(t), 1.0, time.Second, log.NewNopLogger())
	pass.Run(context.Background(), types.Valset{})

	require.Empty(t, contract.submitted)
}

func TestLogicCallRelayPass_SeparatesScopes(t *testing.T) {
	scopeA := common.HexToAddress("0xaaa")
	scopeB := common.HexToAddress("0xbbb")
	selector := &fakeLogicCallSelector{groups: map[common.Address][]types.LogicCallCandidate{
		scopeA: {logicCallCandidate(scopeA, 2, 1000)},
		scopeB: {logicCallCandidate(scopeB, 7, 1000)},
	}}
	contract := &fakeLogicCallContract{blockNumber: 10, latestNonce: map[common.Address]uint64{scopeA: 1, scopeB: 1}}

	pass := relayer.NewLogicCallRelayPass(selector, contract, alwaysRelay(t), 1.0, time.Second, log.NewNopLogger())
	pass.Run(context.Background(), types.Valset{})

	require.ElementsMatch(t, []uint64{2, 7}, contract.submitted)
}
