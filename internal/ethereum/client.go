// Package ethereum defines the Ethereum-side collaborator the
// Submitter depends on: reading the contract's latest batch nonce and
// current block height, estimating gas for a batch submission, and
// submitting the signed transaction. The spec declares the underlying
// RPC client and contract bindings an external collaborator; this
// package is the interface boundary plus a bind.BoundContract-backed
// implementation, grounded on the pack's batch-submission driver
// (cfromknecht-optimism/go/batch-submitter/drivers/l2output/driver.go).
package ethereum

import (
	"context"
	"crypto/ecdsa"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"

	errorsmod "cosmossdk.io/errors"

	"github.com/crypto-org-chain/gravity-bridge/internal/relayererrors"
	gbtypes "github.com/crypto-org-chain/gravity-bridge/internal/types"
)

// GravityContract is the Ethereum-side surface the batch Submitter
// depends on. Valset and logic-call relaying use their own interfaces
// (relayer.ValsetContract, relayer.LogicCallContract), implemented by
// ValsetClient and LogicCallClient.
type GravityContract interface {
	// BlockNumber returns the current Ethereum block height.
	BlockNumber(ctx context.Context) (uint64, error)

	// LatestBatchNonce returns the latest batch nonce recorded on
	// Ethereum for tokenContract.
	LatestBatchNonce(ctx context.Context, tokenContract common.Address) (uint64, error)

	// EstimateBatchGas simulates submitting batch and returns the
	// estimated cost, without sending a transaction.
	EstimateBatchGas(ctx context.Context, valset gbtypes.Valset, batch gbtypes.TransactionBatch, sigs []gbtypes.BatchConfirmResponse) (gbtypes.GasCost, error)

	// SubmitBatch signs and sends the batch submission transaction,
	// applying gasPriceMultiplier to the estimated gas price, and
	// blocks until a receipt is available or timeout elapses.
	SubmitBatch(ctx context.Context, valset gbtypes.Valset, batch gbtypes.TransactionBatch, sigs []gbtypes.BatchConfirmResponse, gasPriceMultiplier float64, timeout time.Duration) (*types.Receipt, error)
}

// Config holds the wiring needed to talk to the Gravity contract.
type Config struct {
	Client          *ethclient.Client
	ContractAddress common.Address
	ChainID         *int64
	PrivKey         *ecdsa.PrivateKey
}

// Client implements GravityContract in the shape cfromknecht-optimism's
// l2output.Driver uses: a typed ethclient for block height, gas price
// and receipt waits, plus a stored raw bound contract that none of the
// methods below call.
//
// The Gravity contract's generated ABI bindings
// (submit_batch/last_batch_nonce) are out of this repository's scope
// (spec.md §1 lists "contract calls" as an external collaborator); this
// struct's three unexported hooks (simulate/latestNonce/send) are where
// a generated binding plugs in without touching the Submitter above it.
type Client struct {
	cfg            Config
	walletAddr     common.Address
	rawContract    *bind.BoundContract
	simulateBatch  func(ctx context.Context, opts *bind.CallOpts, valset gbtypes.Valset, batch gbtypes.TransactionBatch, sigs []gbtypes.BatchConfirmResponse) (gbtypes.GasCost, error)
	latestNonceFn  func(ctx context.Context, opts *bind.CallOpts, tokenContract common.Address) (uint64, error)
	sendBatchFn    func(ctx context.Context, opts *bind.TransactOpts, valset gbtypes.Valset, batch gbtypes.TransactionBatch, sigs []gbtypes.BatchConfirmResponse) (*types.Transaction, error)
}

// NewClient constructs a Client. The simulate/latestNonce/sendBatch
// hooks are supplied by the caller because they are generated-ABI
// concerns out of this package's scope; production wiring supplies the
// real bound-contract methods, tests supply fakes.
func NewClient(
	cfg Config,
	walletAddr common.Address,
	rawContract *bind.BoundContract,
	simulateBatch func(ctx context.Context, opts *bind.CallOpts, valset gbtypes.Valset, batch gbtypes.TransactionBatch, sigs []gbtypes.BatchConfirmResponse) (gbtypes.GasCost, error),
	latestNonceFn func(ctx context.Context, opts *bind.CallOpts, tokenContract common.Address) (uint64, error),
	sendBatchFn func(ctx context.Context, opts *bind.TransactOpts, valset gbtypes.Valset, batch gbtypes.TransactionBatch, sigs []gbtypes.BatchConfirmResponse) (*types.Transaction, error),
) *Client {
	return &Client{
		cfg:           cfg,
		walletAddr:    walletAddr,
		rawContract:   rawContract,
		simulateBatch: simulateBatch,
		latestNonceFn: latestNonceFn,
		sendBatchFn:   sendBatchFn,
	}
}

func (c *Client) BlockNumber(ctx context.Context) (uint64, error) {
	n, err := c.cfg.Client.BlockNumber(ctx)
	if err != nil {
		return 0, errorsmod.Wrapf(relayererrors.ErrUpstream, "eth_blockNumber: %v", err)
	}
	return n, nil
}

func (c *Client) LatestBatchNonce(ctx context.Context, tokenContract common.Address) (uint64, error) {
	nonce, err := c.latestNonceFn(ctx, &bind.CallOpts{Context: ctx}, tokenContract)
	if err != nil {
		return 0, errorsmod.Wrapf(relayererrors.ErrUpstream, "reading latest batch nonce for %s: %v", tokenContract.Hex(), err)
	}
	return nonce, nil
}

func (c *Client) EstimateBatchGas(ctx context.Context, valset gbtypes.Valset, batch gbtypes.TransactionBatch, sigs []gbtypes.BatchConfirmResponse) (gbtypes.GasCost, error) {
	cost, err := c.simulateBatch(ctx, &bind.CallOpts{Context: ctx}, valset, batch, sigs)
	if err != nil {
		return gbtypes.GasCost{}, errorsmod.Wrapf(relayererrors.ErrUpstream, "estimating batch %d/%s gas: %v", batch.Nonce, batch.TokenContract.Hex(), err)
	}
	return cost, nil
}

func (c *Client) SubmitBatch(ctx context.Context, valset gbtypes.Valset, batch gbtypes.TransactionBatch, sigs []gbtypes.BatchConfirmResponse, gasPriceMultiplier float64, timeout time.Duration) (*types.Receipt, error) {
	opts, err := bind.NewKeyedTransactorWithChainID(c.cfg.PrivKey, bigFromInt64Ptr(c.cfg.ChainID))
	if err != nil {
		return nil, errorsmod.Wrapf(relayererrors.ErrUpstream, "building transactor: %v", err)
	}
	opts.Context = ctx

	suggested, err := c.cfg.Client.SuggestGasPrice(ctx)
	if err != nil {
		return nil, errorsmod.Wrapf(relayererrors.ErrUpstream, "suggesting gas price: %v", err)
	}
	opts.GasPrice = applyMultiplier(suggested, gasPriceMultiplier)

	tx, err := c.sendBatchFn(ctx, opts, valset, batch, sigs)
	if err != nil {
		return nil, errorsmod.Wrapf(relayererrors.ErrUpstream, "sending batch %d/%s: %v", batch.Nonce, batch.TokenContract.Hex(), err)
	}

	waitCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	receipt, err := bind.WaitMined(waitCtx, c.cfg.Client, tx)
	if err != nil {
		return nil, errorsmod.Wrapf(relayererrors.ErrUpstream, "waiting for receipt of %s: %v", tx.Hash().Hex(), err)
	}

	return receipt, nil
}

func bigFromInt64Ptr(v *int64) *big.Int {
	if v == nil {
		return nil
	}
	return big.NewInt(*v)
}

// applyMultiplier scales a suggested gas price by mult, matching
// spec.md §4.4 step 3e's "gas_price_multiplier" submission option
// (cf. ethers'/web3's SendTxOption::GasPriceMultiplier in the original
// implementation).
func applyMultiplier(price *big.Int, mult float64) *big.Int {
	scaled := new(big.Float).Mul(new(big.Float).SetInt(price), big.NewFloat(mult))
	result, _ := scaled.Int(nil)
	return result
}
