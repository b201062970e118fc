// Package relayer implements the Main Loop (C5): the fixed-period tick
// that fetches the current Ethereum-side valset and runs the valset-,
// batch-, and logic-call-relay passes in that order against the same
// snapshot.
package relayer

import (
	"context"
	"time"

	"cosmossdk.io/log"
	"golang.org/x/sync/errgroup"

	"github.com/crypto-org-chain/gravity-bridge/internal/batch"
	"github.com/crypto-org-chain/gravity-bridge/internal/metrics"
	"github.com/crypto-org-chain/gravity-bridge/internal/submit"
	"github.com/crypto-org-chain/gravity-bridge/internal/types"
)

// ValsetSource fetches the valset currently installed on the Ethereum
// contract. Relayers must re-read it at the start of every tick
// (spec.md §3) rather than caching it across ticks.
type ValsetSource interface {
	CurrentValset(ctx context.Context) (types.Valset, error)
}

// GravityIDResolver resolves the gravity ID mixed into signed payload
// hashes, once for the process lifetime (spec.md §4.5 step 1).
type GravityIDResolver func(ctx context.Context) (string, error)

// Loop implements the Main Loop (C5).
type Loop struct {
	valsetSource ValsetSource
	resolveID    GravityIDResolver

	batchSelector  *batch.Selector
	batchSubmitter *submit.Submitter

	valsetPass    *ValsetRelayPass
	logicCallPass *LogicCallRelayPass

	metrics *metrics.Metrics
	logger  log.Logger

	loopSpeed time.Duration

	gravityID string
}

// NewLoop constructs the Main Loop. valsetPass and logicCallPass may be
// nil, in which case that relay pass is skipped — useful for tests that
// only exercise batch relaying, and for deployments that haven't wired
// one of the compositional instances yet.
func NewLoop(
	valsetSource ValsetSource,
	resolveID GravityIDResolver,
	batchSelector *batch.Selector,
	batchSubmitter *submit.Submitter,
	valsetPass *ValsetRelayPass,
	logicCallPass *LogicCallRelayPass,
	m *metrics.Metrics,
	loopSpeed time.Duration,
	logger log.Logger,
) *Loop {
	return &Loop{
		valsetSource:   valsetSource,
		resolveID:      resolveID,
		batchSelector:  batchSelector,
		batchSubmitter: batchSubmitter,
		valsetPass:     valsetPass,
		logicCallPass:  logicCallPass,
		metrics:        m,
		loopSpeed:      loopSpeed,
		logger:         logger.With("component", "main_loop"),
	}
}

// Run resolves the gravity ID once and then ticks forever until ctx is
// cancelled, implementing spec.md §4.5 and the concurrency model in §5:
// each tick runs the relay pass and a LOOP_SPEED timer concurrently,
// only starting the next tick once both finish, so a slow pass absorbs
// its own period instead of stacking up.
func (l *Loop) Run(ctx context.Context) error {
	gravityID, err := l.resolveID(ctx)
	if err != nil {
		// Fatal per spec.md §4.5 step 1: resolving the gravity ID is a
		// startup-time invariant, not a per-tick transient failure.
		l.logger.Error("failed to resolve gravity id, exiting", "err", err)
		return err
	}
	l.gravityID = gravityID
	l.logger.Info("resolved gravity id", "gravity_id", gravityID)

	for {
		select {
		case <-ctx.Done():
			l.logger.Info("main loop shutting down")
			return nil
		default:
		}

		if err := l.tick(ctx); err != nil {
			if ctx.Err() != nil {
				l.logger.Info("main loop shutting down")
				return nil
			}
			return err
		}
	}
}

func (l *Loop) tick(ctx context.Context) error {
	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		start := time.Now()
		l.runPass(groupCtx)
		if l.metrics != nil {
			l.metrics.TickDuration.Observe(time.Since(start).Seconds())
		}
		return nil
	})

	group.Go(func() error {
		timer := time.NewTimer(l.loopSpeed)
		defer timer.Stop()

		select {
		case <-timer.C:
			return nil
		case <-groupCtx.Done():
			return groupCtx.Err()
		}
	})

	if err := group.Wait(); err != nil && ctx.Err() != nil {
		return ctx.Err()
	}

	return nil
}

// runPass fetches the current Ethereum-side valset and, if that
// succeeds, invokes valset-relay, batch-relay, and logic-call-relay in
// sequence with the same snapshot (spec.md §4.5 step 3, §5).
func (l *Loop) runPass(ctx context.Context) {
	valset, err := l.valsetSource.CurrentValset(ctx)
	if err != nil {
		l.logger.Warn("failed to fetch current ethereum valset, skipping tick", "err", err)
		return
	}

	if l.valsetPass != nil {
		l.valsetPass.Run(ctx, valset)
	}

	l.runBatchPass(ctx, valset)

	if l.logicCallPass != nil {
		l.logicCallPass.Run(ctx, valset)
	}
}

func (l *Loop) runBatchPass(ctx context.Context, valset types.Valset) {
	groups := l.batchSelector.Select(ctx, valset)
	if len(groups) == 0 {
		return
	}

	results := l.batchSubmitter.SubmitGroups(ctx, valset, groups)
	if l.metrics == nil {
		return
	}

	for _, r := range results {
		for i := 0; i < r.Submitted; i++ {
			l.metrics.BatchesSubmitted.Inc()
		}
		for i := 0; i < r.Skipped; i++ {
			l.metrics.BatchesSkipped.WithLabelValues("skipped").Inc()
		}
		for i := 0; i < r.Failed; i++ {
			l.metrics.BatchesSkipped.WithLabelValues("failed").Inc()
		}
	}
}
