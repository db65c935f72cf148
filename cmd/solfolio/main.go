package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"solfolio/internal/app/port"
	"solfolio/internal/app/service"
	"solfolio/internal/infrastructure/configloader"
	"solfolio/internal/infrastructure/httpclient"
	"solfolio/internal/infrastructure/ledger"
	"solfolio/internal/infrastructure/restapi"
	"solfolio/internal/infrastructure/walletprovider"
	"solfolio/internal/pkg/logger"
	"solfolio/internal/pkg/metrics"
	"solfolio/internal/pkg/utils"

	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"
)

func main() {
	// Bootstrap logger for the phase before config and zap are up.
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)
	log.SetLevel(logrus.InfoLevel)

	zapLogger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize zap logger: %v", err)
	}
	defer zapLogger.Sync()

	// Route slog (and the service-layer logger built on it) through zap.
	logger.SetHandler(zapslog.NewHandler(zapLogger.Core()))
	svcLogger := logger.NewSlogAdapter()

	cfgPath := utils.GetEnv("CONFIG_PATH", "config/config.yml")
	cfg, err := configloader.Load(cfgPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	zapLogger.Info("Configuration loaded", zap.String("path", cfgPath))

	metrics.MustRegister()

	ledgerClient := ledger.NewClient(
		cfg.Ledger.RPCURL,
		zapLogger,
		ledger.WithTimeout(time.Duration(cfg.Ledger.RequestTimeoutMillis)*time.Millisecond),
		ledger.WithCommitment(cfg.Ledger.Commitment),
	)
	zapLogger.Info("Ledger RPC client initialized", zap.String("endpoint", cfg.Ledger.RPCURL))

	jupiterClient := httpclient.NewJupiterPriceClient(
		cfg.Jupiter.PriceBaseURL,
		time.Duration(cfg.Jupiter.RequestTimeoutMillis)*time.Millisecond,
		cfg.Jupiter.RateLimitPerSecond,
		zapLogger,
	)
	dexScreenerClient := httpclient.NewDEXScreenerClient(
		cfg.DEXScreener.BaseURL,
		time.Duration(cfg.DEXScreener.RequestTimeoutMillis)*time.Millisecond,
		cfg.DEXScreener.RateLimitPerSecond,
		zapLogger,
	)
	tokenListClient := httpclient.NewTokenListClient(
		cfg.Jupiter.TokenListURL,
		time.Duration(cfg.Jupiter.RequestTimeoutMillis)*time.Millisecond,
		zapLogger,
	)

	priceService := service.NewPriceService(
		[]port.PriceSource{jupiterClient, dexScreenerClient},
		time.Duration(cfg.PriceCache.TTLMillis)*time.Millisecond,
		svcLogger,
	)
	metadataService := service.NewMetadataService(tokenListClient, priceService, svcLogger)
	holdingsService := service.NewHoldingsService(ledgerClient, metadataService, svcLogger, cfg.Performance.MaxConcurrentRoutines)

	var provider port.WalletProvider
	if cfg.Wallet.Address != "" {
		provider = walletprovider.NewStatic(cfg.Wallet.Address)
		zapLogger.Info("Using static wallet provider", zap.String("address", cfg.Wallet.Address))
	} else {
		provider = walletprovider.NewUnavailable(cfg.Wallet.InstallURL)
		zapLogger.Info("No wallet configured, provider reports unavailable")
	}

	session := service.NewSession(provider, holdingsService, svcLogger)
	tradeService := service.NewTradeService(provider, svcLogger)

	router := restapi.SetupRouter(
		restapi.NewSessionHandler(session),
		restapi.NewPortfolioHandler(holdingsService),
		restapi.NewTradeHandler(tradeService),
		cfg.Server.AllowOrigins,
	)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		zapLogger.Info(fmt.Sprintf("Server starting on port %s", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zapLogger.Info("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		zapLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exiting")
}
