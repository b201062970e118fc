// Package config loads relayer configuration from flags and
// environment variables, read once at startup and never re-read
// (spec.md §5).
package config

import (
	"time"

	errorsmod "cosmossdk.io/errors"
	"github.com/spf13/viper"

	"github.com/crypto-org-chain/gravity-bridge/internal/relayererrors"
	"github.com/crypto-org-chain/gravity-bridge/internal/types"
)

const (
	EnvBatchSendingSecs = "GRAVITY_BATCH_SENDING_SECS"
	EnvTokenPricesJSON  = "TOKEN_PRICES_JSON"
	EnvRelayerAPIURL    = "RELAYER_API_URL"

	DefaultBatchSendingSecs = 3600
	DefaultTokenPricesJSON  = "token_prices.json"
	DefaultRelayerAPIURL    = "https://relayer-api.gravitychain.io/v1/relayer"

	// LoopSpeed is the fixed tick period of the main loop.
	LoopSpeed = 17 * time.Second
	// PendingTxTimeout bounds how long the submitter waits for a
	// transaction receipt before reporting the submission as failed.
	PendingTxTimeout = 120 * time.Second
)

// FeeManagerConfig is the Fee Manager's mode-specific startup
// configuration.
type FeeManagerConfig struct {
	Mode             types.RelayerMode
	TokenPricesPath  string
	RelayerAPIURL    string
	CooldownDuration time.Duration
}

// LoopConfig configures the main loop and submitter.
type LoopConfig struct {
	LoopSpeed           time.Duration
	PendingTxTimeout    time.Duration
	GasPriceMultiplier  float64
	GravityContractAddr string
}

// Keys used for Viper flag binding, mirroring the teacher's
// srvflags-style constant naming (evmd/cmd/evmd/cmd/root.go).
const (
	FlagRelayerMode    = "relayer-mode"
	FlagBatchSecs      = "batch-sending-secs"
	FlagTokenPricesLoc = "token-prices-json"
	FlagRelayerAPIURL  = "relayer-api-url"
	FlagGasMultiplier  = "eth-gas-price-multiplier"
	FlagGravityAddr    = "gravity-contract-address"
)

// LoadFeeManagerConfig reads the Fee Manager configuration from the
// given Viper instance, applying spec.md §6's defaults.
func LoadFeeManagerConfig(v *viper.Viper) (FeeManagerConfig, error) {
	mode := types.RelayerMode(v.GetString(FlagRelayerMode))
	switch mode {
	case types.ModeAlwaysRelay, types.ModeAPI, types.ModeFile:
	default:
		return FeeManagerConfig{}, errorsmod.Wrapf(
			relayererrors.ErrConfig, "unknown relayer mode %q", mode,
		)
	}

	secs := v.GetInt(FlagBatchSecs)
	if secs <= 0 {
		secs = DefaultBatchSendingSecs
	}

	pricesPath := v.GetString(FlagTokenPricesLoc)
	if pricesPath == "" {
		pricesPath = DefaultTokenPricesJSON
	}

	apiURL := v.GetString(FlagRelayerAPIURL)
	if apiURL == "" {
		apiURL = DefaultRelayerAPIURL
	}

	return FeeManagerConfig{
		Mode:             mode,
		TokenPricesPath:  pricesPath,
		RelayerAPIURL:    apiURL,
		CooldownDuration: time.Duration(secs) * time.Second,
	}, nil
}

// LoadLoopConfig reads the loop/submitter configuration.
func LoadLoopConfig(v *viper.Viper) LoopConfig {
	mult := v.GetFloat64(FlagGasMultiplier)
	if mult <= 0 {
		mult = 1.0
	}

	return LoopConfig{
		LoopSpeed:           LoopSpeed,
		PendingTxTimeout:    PendingTxTimeout,
		GasPriceMultiplier:  mult,
		GravityContractAddr: v.GetString(FlagGravityAddr),
	}
}

// BindFlags registers the flags consumed by LoadFeeManagerConfig and
// LoadLoopConfig onto a cobra command's flag set, and binds the
// batch-sending-secs, token-prices-json and relayer-api-url flags to
// their environment variables the way evmd/cmd/evmd/cmd/root.go binds
// its server flags through Viper.
func BindFlags(v *viper.Viper, bind func(name, value, usage string)) {
	bind(FlagRelayerMode, string(types.ModeFile), "fee manager mode: always-relay, api, or file")
	bind(FlagBatchSecs, "", "per-token cooldown in seconds before a stale batch is force-sent (env GRAVITY_BATCH_SENDING_SECS, default 3600)")
	bind(FlagTokenPricesLoc, "", "path to the token price JSON file (env TOKEN_PRICES_JSON, default token_prices.json)")
	bind(FlagRelayerAPIURL, "", "profitability oracle URL (env RELAYER_API_URL)")
	bind(FlagGasMultiplier, "1.0", "multiplier applied to the estimated gas price on submission")
	bind(FlagGravityAddr, "", "Gravity Bridge contract address on Ethereum")

	_ = v.BindEnv(FlagBatchSecs, EnvBatchSendingSecs)
	_ = v.BindEnv(FlagTokenPricesLoc, EnvTokenPricesJSON)
	_ = v.BindEnv(FlagRelayerAPIURL, EnvRelayerAPIURL)
}
