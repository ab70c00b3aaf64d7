// Package app assembles the bot: configuration in, wired components out,
// one scan loop until the context dies.
package app

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"govtrader/internal/config"
	"govtrader/internal/engine"
	"govtrader/internal/feed"
	"govtrader/internal/gateway/binance"
	"govtrader/internal/gateway/notifier"
	"govtrader/internal/gateway/provider"
	"govtrader/internal/logger"
	"govtrader/internal/market"
	"govtrader/internal/model"
	"govtrader/internal/pkg/symbol"
	"govtrader/internal/scheduler"
	"govtrader/internal/sentiment"
	"govtrader/internal/store"
)

type App struct {
	cfg *config.Config

	feed         feed.Provider
	orchestrator *engine.Orchestrator
	reconciler   *engine.Reconciler
	monitor      *engine.Monitor
	notify       notifier.TextNotifier
}

// New builds the application without starting it.
func New(cfg *config.Config) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("nil config")
	}
	logger.SetLevel(cfg.App.LogLevel)

	symbols := symbol.NewTable()

	gw := binance.New(binance.Config{
		APIKey:          cfg.Exchange.APIKey,
		APISecret:       cfg.Exchange.APISecret,
		FuturesURL:      cfg.Exchange.FuturesURL,
		HTTPTimeout:     cfg.Exchange.Timeout(),
		TradeAmount:     cfg.Trading.TradeAmount,
		Leverage:        cfg.Trading.Leverage,
		StopLossPercent: cfg.Trading.StopLossPercent,
	}, symbols)

	notify, err := notifier.FromConfig(cfg.Notify)
	if err != nil {
		return nil, fmt.Errorf("app: build notifier: %w", err)
	}

	feedProvider, err := feed.New(cfg.Feed)
	if err != nil {
		return nil, fmt.Errorf("app: build feed provider: %w", err)
	}

	modelClient := model.NewClient(cfg.Models.ServerURL, cfg.Models.Timeout())

	primary := provider.NewChatProvider(provider.ChatConfig{
		ID:          "primary",
		BaseURL:     cfg.Reasoning.PrimaryEndpoint,
		APIKey:      cfg.Reasoning.PrimaryKey,
		Model:       cfg.Reasoning.PrimaryModel,
		Timeout:     cfg.Reasoning.Timeout(),
		MaxAttempts: cfg.Reasoning.MaxAttempts,
		RetryDelay:  cfg.Reasoning.RetryDelay(),
	})
	secondary := provider.NewChatProvider(provider.ChatConfig{
		ID:          "secondary",
		APIKey:      cfg.Reasoning.SecondaryKey,
		Model:       cfg.Reasoning.SecondaryModel,
		Timeout:     cfg.Reasoning.Timeout(),
		MaxAttempts: cfg.Reasoning.MaxAttempts,
		RetryDelay:  cfg.Reasoning.RetryDelay(),
	})
	assessor := sentiment.NewEngine(modelClient, primary, secondary, sentiment.Weights{
		Primary:   cfg.Sentiment.PrimaryWeight,
		Secondary: cfg.Sentiment.SecondaryWeight,
		Trained:   cfg.Sentiment.TrainedWeight,
	})

	guard := market.NewCrashChecker(
		cfg.Exchange.APIKey, cfg.Exchange.APISecret, cfg.Exchange.SpotURL,
		cfg.Market.BTCDropThreshold, cfg.Exchange.Timeout())

	live := store.NewLiveStore(cfg.App.DataDir)
	if err := live.Init(); err != nil {
		return nil, fmt.Errorf("app: init live store: %w", err)
	}
	history := store.NewHistoryStore(cfg.App.DataDir)
	if err := history.Load(); err != nil {
		return nil, fmt.Errorf("app: load history: %w", err)
	}
	priceCheck := store.NewPriceCheckStore(cfg.App.DataDir)
	if err := priceCheck.Init(); err != nil {
		return nil, fmt.Errorf("app: init price check store: %w", err)
	}
	analytics, err := store.OpenAnalytics(cfg.App.DataDir)
	if err != nil {
		// Analytics is best-effort everywhere else too.
		logger.Warnf("app: analytics unavailable: %v", err)
		analytics = nil
	}

	orch := engine.NewOrchestrator(engine.Deps{
		Trading:    cfg.Trading,
		Sentiment:  cfg.Sentiment,
		Gateway:    gw,
		Symbols:    symbols,
		Summarizer: modelClient,
		Assessor:   assessor,
		Bullish:    modelClient.BullishPredictor(),
		Bearish:    modelClient.BearishPredictor(),
		Guard:      guard,
		Live:       live,
		History:    history,
		PriceCheck: priceCheck,
		Analytics:  analytics,
		Notify:     notify,
	})

	return &App{
		cfg:          cfg,
		feed:         feedProvider,
		orchestrator: orch,
		reconciler:   engine.NewReconciler(gw, symbols, live, analytics, notify),
		monitor:      engine.NewMonitor(gw, symbols, live),
		notify:       notify,
	}, nil
}

const initRetryDelay = 60 * time.Second

// Run connects the feed and drives the scan loop until ctx is cancelled.
// Connect failures are retried forever; the bot waits for its data source
// rather than dying at boot.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.cfg == nil {
		return fmt.Errorf("app not initialized")
	}

	for {
		err := a.feed.Connect(ctx)
		if err == nil {
			break
		}
		logger.Errorf("app: connect feed: %v, retrying in %s", err, initRetryDelay)
		notifier.Post(a.notify, fmt.Sprintf("feed connect failed, retrying: %v", err))
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(initRetryDelay):
		}
	}
	defer func() {
		if err := a.feed.Disconnect(context.Background()); err != nil {
			logger.Warnf("app: feed disconnect: %v", err)
		}
	}()

	if ids, err := a.feed.KnownPostIDs(ctx); err != nil {
		logger.Warnf("app: list known posts: %v", err)
	} else {
		logger.Infof("app: feed serving %d known posts", len(ids))
	}

	notifier.Post(a.notify, "trading bot started")
	logger.Infof("app: started, scanning every %s", a.cfg.App.ScanDelay())

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		loop := scheduler.NewFixedDelayScheduler(ctx, "scan", a.cfg.App.ScanDelay())
		loop.Start(func() error {
			err := a.pass(ctx)
			if err != nil {
				notifier.Post(a.notify, fmt.Sprintf("scan pass failed: %v", err))
			}
			return err
		})
		return nil
	})
	return group.Wait()
}

// pass is one full scan cycle: reconcile, fetch, evaluate, monitor.
// Reconciliation failure aborts the pass; acting on unknown position state
// is worse than waiting one cycle.
func (a *App) pass(ctx context.Context) error {
	if err := a.reconciler.Reconcile(ctx); err != nil {
		return err
	}

	proposals, err := a.feed.FetchRecent(ctx, a.cfg.App.ProposalLimit)
	if err != nil {
		return fmt.Errorf("app: fetch proposals: %w", err)
	}
	logger.Infof("app: fetched %d proposals", len(proposals))

	for _, p := range proposals {
		out, err := a.orchestrator.Evaluate(ctx, p)
		if err != nil {
			logger.Errorf("app: evaluate %s: %v", p.PostID, err)
			continue
		}
		if out.Result != engine.ResultSkipped {
			logger.Infof("app: %s -> %s %s", p.PostID, out.Result, out.Reason)
		}
	}

	a.monitor.Run(ctx)
	return nil
}
