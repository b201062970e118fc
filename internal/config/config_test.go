package config_test

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/crypto-org-chain/gravity-bridge/internal/config"
	"github.com/crypto-org-chain/gravity-bridge/internal/types"
)

func TestLoadFeeManagerConfig_Defaults(t *testing.T) {
	v := viper.New()
	v.Set(config.FlagRelayerMode, string(types.ModeFile))

	cfg, err := config.LoadFeeManagerConfig(v)
	require.NoError(t, err)
	require.Equal(t, types.ModeFile, cfg.Mode)
	require.Equal(t, config.DefaultTokenPricesJSON, cfg.TokenPricesPath)
	require.Equal(t, config.DefaultRelayerAPIURL, cfg.RelayerAPIURL)
	require.Equal(t, time.Duration(config.DefaultBatchSendingSecs)*time.Second, cfg.CooldownDuration)
}

func TestLoadFeeManagerConfig_RejectsUnknownMode(t *testing.T) {
	v := viper.New()
	v.Set(config.FlagRelayerMode, "not-a-real-mode")

	_, err := config.LoadFeeManagerConfig(v)
	require.Error(t, err)
}

func TestLoadFeeManagerConfig_HonorsExplicitValues(t *testing.T) {
	v := viper.New()
	v.Set(config.FlagRelayerMode, string(types.ModeAPI))
	v.Set(config.FlagBatchSecs, 60)
	v.Set(config.FlagTokenPricesLoc, "/tmp/prices.json")
	v.Set(config.FlagRelayerAPIURL, "https://example.test/relayer")

	cfg, err := config.LoadFeeManagerConfig(v)
	require.NoError(t, err)
	require.Equal(t, types.ModeAPI, cfg.Mode)
	require.Equal(t, 60*time.Second, cfg.CooldownDuration)
	require.Equal(t, "/tmp/prices.json", cfg.TokenPricesPath)
	require.Equal(t, "https://example.test/relayer", cfg.RelayerAPIURL)
}

func TestLoadLoopConfig_DefaultsGasMultiplierWhenUnset(t *testing.T) {
	v := viper.New()

	cfg := config.LoadLoopConfig(v)
	require.Equal(t, 1.0, cfg.GasPriceMultiplier)
	require.Equal(t, config.LoopSpeed, cfg.LoopSpeed)
	require.Equal(t, config.PendingTxTimeout, cfg.PendingTxTimeout)
}

func TestLoadLoopConfig_HonorsExplicitGasMultiplier(t *testing.T) {
	v := viper.New()
	v.Set(config.FlagGasMultiplier, 1.25)
	v.Set(config.FlagGravityAddr, "0xdeadbeef")

	cfg := config.LoadLoopConfig(v)
	require.Equal(t, 1.25, cfg.GasPriceMultiplier)
	require.Equal(t, "0xdeadbeef", cfg.GravityContractAddr)
}

func TestBindFlags_RegistersEnvBindings(t *testing.T) {
	v := viper.New()
	var registered []string
	config.BindFlags(v, func(name, _, _ string) {
		registered = append(registered, name)
	})

	require.Contains(t, registered, config.FlagRelayerMode)
	require.Contains(t, registered, config.FlagBatchSecs)
	require.Contains(t, registered, config.FlagGravityAddr)

	t.Setenv(config.EnvBatchSendingSecs, "42")
	require.NoError(t, v.BindEnv(config.FlagBatchSecs, config.EnvBatchSendingSecs))
	require.Equal(t, 42, v.GetInt(config.FlagBatchSecs))
}
