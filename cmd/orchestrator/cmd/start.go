package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/log"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/holiman/uint256"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/crypto-org-chain/gravity-bridge/internal/batch"
	gbconfig "github.com/crypto-org-chain/gravity-bridge/internal/config"
	"github.com/crypto-org-chain/gravity-bridge/internal/cosmos"
	"github.com/crypto-org-chain/gravity-bridge/internal/ethereum"
	"github.com/crypto-org-chain/gravity-bridge/internal/fees"
	"github.com/crypto-org-chain/gravity-bridge/internal/metrics"
	"github.com/crypto-org-chain/gravity-bridge/internal/relayer"
	"github.com/crypto-org-chain/gravity-bridge/internal/relayererrors"
	"github.com/crypto-org-chain/gravity-bridge/internal/submit"
	"github.com/crypto-org-chain/gravity-bridge/internal/types"
)

// NewStartCmd builds the `orchestrator start` command: it reads
// configuration, dials the Cosmos and Ethereum endpoints, assembles the
// Fee Manager, Batch Selector/Submitter, and valset-/logic-call-relay
// passes, and runs the Main Loop until SIGINT/SIGTERM, the same
// wiring-then-run shape as the teacher's `server.Start` entrypoint.
func NewStartCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "run the Gravity Bridge relayer",
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := log.NewLogger(cmd.OutOrStdout())
			return runStart(cmd.Context(), v, logger)
		},
	}
}

func runStart(ctx context.Context, v *viper.Viper, logger log.Logger) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	feeCfg, err := gbconfig.LoadFeeManagerConfig(v)
	if err != nil {
		return err
	}
	loopCfg := gbconfig.LoadLoopConfig(v)

	feeManager, err := fees.NewFeeManager(feeCfg, logger)
	if err != nil {
		return errorsmod.Wrap(err, "constructing fee manager")
	}

	ethRPC := v.GetString(flagEthereumRPC)
	if ethRPC == "" {
		return errorsmod.Wrap(relayererrors.ErrConfig, "--"+flagEthereumRPC+" is required")
	}
	ethClient, err := ethclient.DialContext(ctx, ethRPC)
	if err != nil {
		return errorsmod.Wrapf(relayererrors.ErrConfig, "dialing ethereum rpc %q: %v", ethRPC, err)
	}
	defer ethClient.Close()

	privKey, err := crypto.HexToECDSA(v.GetString(flagEthKeyHex))
	if err != nil {
		return errorsmod.Wrapf(relayererrors.ErrConfig, "parsing --%s: %v", flagEthKeyHex, err)
	}
	chainID := v.GetInt64(flagEthChainID)

	gravityAddr := common.HexToAddress(loopCfg.GravityContractAddr)
	ethCfg := ethereum.Config{
		Client:          ethClient,
		ContractAddress: gravityAddr,
		ChainID:         &chainID,
		PrivKey:         privKey,
	}

	gravityContract := ethereum.NewClient(ethCfg, crypto.PubkeyToAddress(privKey.PublicKey), nil,
		unwiredSimulateBatch, unwiredLatestBatchNonce, unwiredSendBatch)

	valsetContract := ethereum.NewValsetClient(ethereum.ValsetHooks{
		CurrentValset:     unwiredCurrentValset,
		BlockNumber:       unwiredBlockNumber,
		LatestValsetNonce: unwiredLatestValsetNonce,
		EstimateValset:    unwiredEstimateValset,
		SubmitValset:      unwiredSubmitValset,
	})

	logicCallContract := ethereum.NewLogicCallClient(ethereum.LogicCallHooks{
		BlockNumber:          unwiredBlockNumber,
		LatestLogicCallNonce: unwiredLatestLogicCallNonce,
		EstimateLogicCallGas: unwiredEstimateLogicCallGas,
		SubmitLogicCall:      unwiredSubmitLogicCall,
	})

	cosmosGRPC := v.GetString(flagCosmosGRPC)
	conn, err := grpc.NewClient(cosmosGRPC, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return errorsmod.Wrapf(relayererrors.ErrConfig, "dialing cosmos grpc %q: %v", cosmosGRPC, err)
	}
	defer conn.Close()

	queryClient := cosmos.NewGRPCQueryClient(conn, unwiredQueryClient{})

	m := metrics.New()

	batchSelector := batch.NewSelector(queryClient, "", confirmHash, logger)
	batchSubmitter := submit.NewSubmitter(gravityContract, feeManager, loopCfg.GasPriceMultiplier, loopCfg.PendingTxTimeout, logger)

	zeroFee := types.Erc20Token{Amount: uint256.NewInt(0), TokenContractAddress: gravityAddr}
	valsetSelector := relayer.NewCosmosValsetSelector(queryClient, "", valsetConfirmHash, zeroFee, unwiredValsetTimeout, logger)
	valsetPass := relayer.NewValsetRelayPass(valsetSelector, valsetContract, feeManager, loopCfg.GasPriceMultiplier, loopCfg.PendingTxTimeout, gravityAddr, logger)

	logicCallSelector := relayer.NewCosmosLogicCallSelector(queryClient, "", logicCallConfirmHash, logger)
	logicCallPass := relayer.NewLogicCallRelayPass(logicCallSelector, logicCallContract, feeManager, loopCfg.GasPriceMultiplier, loopCfg.PendingTxTimeout, logger)

	loop := relayer.NewLoop(valsetContract, resolveGravityID, batchSelector, batchSubmitter, valsetPass, logicCallPass, m, loopCfg.LoopSpeed, logger)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return m.StartServer(groupCtx, logger, v.GetString(flagMetricsAddr))
	})
	group.Go(func() error {
		return loop.Run(groupCtx)
	})

	return group.Wait()
}
