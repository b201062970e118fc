package fees

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	errorsmod "cosmossdk.io/errors"

	"github.com/crypto-org-chain/gravity-bridge/internal/relayererrors"
	"github.com/crypto-org-chain/gravity-bridge/internal/types"
)

// oracleRequest mirrors spec.md §6's HTTP oracle request body.
type oracleRequest struct {
	BatchFee      oracleErc20Token `json:"batchFee"`
	EstimatedCost oracleGasCost    `json:"estimatedCost"`
}

type oracleErc20Token struct {
	Amount               uint64 `json:"amount"`
	TokenContractAddress string `json:"tokenContractAddress"`
}

type oracleGasCost struct {
	Gas      uint64 `json:"gas"`
	GasPrice uint64 `json:"gasPrice"`
}

// ProfitabilityResponse is the oracle's verdict for one candidate batch.
type ProfitabilityResponse struct {
	Profitable  bool `json:"profitable"`
	InBlacklist bool `json:"in_blacklist"`
}

// ProfitabilityOracle asks a remote relayer API whether a batch is
// worth submitting. Unlike PriceSource, the oracle performs the
// pricing math itself; the relayer only forwards the cost/fee figures
// and trusts the verdict (spec.md §4.1).
type ProfitabilityOracle interface {
	Query(ctx context.Context, fee types.Erc20Token, cost types.GasCost) (ProfitabilityResponse, error)
}

// APIProfitabilityOracle implements ProfitabilityOracle over HTTP.
type APIProfitabilityOracle struct {
	url        string
	httpClient *http.Client
}

// NewAPIProfitabilityOracle constructs an oracle client for url. No I/O
// happens at construction; the URL is only recorded (spec.md §4.2
// "Api needs... records the URL").
func NewAPIProfitabilityOracle(url string, httpClient *http.Client) *APIProfitabilityOracle {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &APIProfitabilityOracle{url: url, httpClient: httpClient}
}

// Query posts the batch fee and estimated cost to the oracle and
// returns its profitability verdict. Any non-2xx response, network
// error, or schema mismatch is surfaced as ErrOracleUnavailable; the
// Fee Manager treats that as "not profitable" (spec.md §6).
func (o *APIProfitabilityOracle) Query(ctx context.Context, fee types.Erc20Token, cost types.GasCost) (ProfitabilityResponse, error) {
	body := oracleRequest{
		BatchFee: oracleErc20Token{
			Amount:               fee.Amount.Uint64(),
			TokenContractAddress: fee.TokenContractAddress.Hex(),
		},
		EstimatedCost: oracleGasCost{
			Gas:      cost.Gas.Uint64(),
			GasPrice: cost.GasPrice.Uint64(),
		},
	}

	encoded, err := json.Marshal(body)
	if err != nil {
		return ProfitabilityResponse{}, errorsmod.Wrapf(relayererrors.ErrOracleUnavailable, "encoding oracle request: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.url, bytes.NewReader(encoded))
	if err != nil {
		return ProfitabilityResponse{}, errorsmod.Wrapf(relayererrors.ErrOracleUnavailable, "building oracle request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return ProfitabilityResponse{}, errorsmod.Wrapf(relayererrors.ErrOracleUnavailable, "oracle request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return ProfitabilityResponse{}, errorsmod.Wrapf(relayererrors.ErrOracleUnavailable, "oracle returned status %d", resp.StatusCode)
	}

	var parsed ProfitabilityResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return ProfitabilityResponse{}, errorsmod.Wrapf(relayererrors.ErrOracleUnavailable, "decoding oracle response: %v", err)
	}

	return parsed, nil
}
