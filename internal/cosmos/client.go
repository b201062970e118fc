// Package cosmos defines the Cosmos-side query collaborator: a thin
// gRPC query client over the Gravity module, consumed by the Batch
// Selector. The wire-level query implementations
// (get_latest_transaction_batches, get_transaction_batch_signatures)
// are declared external collaborators by the spec; this package is the
// interface boundary plus a grpc.ClientConn-backed implementation in
// the teacher's query-client shape.
package cosmos

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"google.golang.org/grpc"

	"github.com/crypto-org-chain/gravity-bridge/internal/types"
)

// QueryClient is the Cosmos-side surface the Batch Selector and its
// valset/logic-call compositional counterparts depend on.
type QueryClient interface {
	// LatestTransactionBatches returns the most recent pending batches
	// across all tokens, newest first, capped at 100 entries
	// (spec.md §4.3 step 1).
	LatestTransactionBatches(ctx context.Context) ([]types.TransactionBatch, error)

	// TransactionBatchSignatures returns the validator confirmations
	// collected so far for the batch identified by (nonce,
	// tokenContract) (spec.md §4.3 step 2).
	TransactionBatchSignatures(ctx context.Context, nonce uint64, tokenContract string) ([]types.BatchConfirmResponse, error)

	// LatestValsetRequests returns pending valset updates that have not
	// yet been installed on the Ethereum contract, newest first — the
	// valset-relay analogue of LatestTransactionBatches.
	LatestValsetRequests(ctx context.Context) ([]types.Valset, error)

	// ValsetConfirmSignatures returns the validator confirmations
	// collected so far for the valset update identified by nonce.
	ValsetConfirmSignatures(ctx context.Context, nonce uint64) ([]types.BatchConfirmResponse, error)

	// LatestLogicCalls returns pending logic calls across all
	// invalidation scopes, newest first per scope — the logic-call-relay
	// analogue of LatestTransactionBatches.
	LatestLogicCalls(ctx context.Context) ([]types.OutgoingLogicCall, error)

	// LogicCallConfirmSignatures returns the validator confirmations
	// collected so far for the logic call identified by
	// (invalidationID, nonce).
	LogicCallConfirmSignatures(ctx context.Context, invalidationID common.Address, nonce uint64) ([]types.BatchConfirmResponse, error)
}

// GRPCQueryClient implements QueryClient over a grpc.ClientConn to the
// Gravity module's query service, following the thin
// one-method-per-RPC wrapper shape used throughout the pack's
// integration-test query handlers
// (zeta-chain-evm/testutil/integration/evm/grpc/evm.go).
type GRPCQueryClient struct {
	conn *grpc.ClientConn
	// gravityClient is the generated Gravity module query client, typed
	// here only by the narrow gravityQueryClient interface below because
	// the Gravity module's protobuf-generated client is out of this
	// repository's scope (spec.md §1 declares the gRPC client an external
	// collaborator) — swapping in the generated
	// query_client.QueryClient only touches this struct and the
	// forwarding methods below.
	gravityClient gravityQueryClient
}

// gravityQueryClient is the minimal shape of the generated Gravity
// module query client this package depends on.
type gravityQueryClient interface {
	LatestTransactionBatches(ctx context.Context) ([]types.TransactionBatch, error)
	TransactionBatchSignatures(ctx context.Context, nonce uint64, tokenContract string) ([]types.BatchConfirmResponse, error)
	LatestValsetRequests(ctx context.Context) ([]types.Valset, error)
	ValsetConfirmSignatures(ctx context.Context, nonce uint64) ([]types.BatchConfirmResponse, error)
	LatestLogicCalls(ctx context.Context) ([]types.OutgoingLogicCall, error)
	LogicCallConfirmSignatures(ctx context.Context, invalidationID common.Address, nonce uint64) ([]types.BatchConfirmResponse, error)
}

// NewGRPCQueryClient builds a QueryClient over conn and the given
// generated Gravity module client.
func NewGRPCQueryClient(conn *grpc.ClientConn, gravityClient gravityQueryClient) *GRPCQueryClient {
	return &GRPCQueryClient{conn: conn, gravityClient: gravityClient}
}

func (c *GRPCQueryClient) LatestTransactionBatches(ctx context.Context) ([]types.TransactionBatch, error) {
	return c.gravityClient.LatestTransactionBatches(ctx)
}

func (c *GRPCQueryClient) TransactionBatchSignatures(ctx context.Context, nonce uint64, tokenContract string) ([]types.BatchConfirmResponse, error) {
	return c.gravityClient.TransactionBatchSignatures(ctx, nonce, tokenContract)
}

func (c *GRPCQueryClient) LatestValsetRequests(ctx context.Context) ([]types.Valset, error) {
	return c.gravityClient.LatestValsetRequests(ctx)
}

func (c *GRPCQueryClient) ValsetConfirmSignatures(ctx context.Context, nonce uint64) ([]types.BatchConfirmResponse, error) {
	return c.gravityClient.ValsetConfirmSignatures(ctx, nonce)
}

func (c *GRPCQueryClient) LatestLogicCalls(ctx context.Context) ([]types.OutgoingLogicCall, error) {
	return c.gravityClient.LatestLogicCalls(ctx)
}

func (c *GRPCQueryClient) LogicCallConfirmSignatures(ctx context.Context, invalidationID common.Address, nonce uint64) ([]types.BatchConfirmResponse, error) {
	return c.gravityClient.LogicCallConfirmSignatures(ctx, invalidationID, nonce)
}

// Close tears down the underlying gRPC channel.
func (c *GRPCQueryClient) Close() error {
	return c.conn.Close()
}
