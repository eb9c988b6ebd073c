package main

import (
	"context"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/veiloq/mexc-futures/pkg/futures"
	"github.com/veiloq/mexc-futures/pkg/logging"
)

func main() {
	// Create logger
	logger := logging.NewZapLogger(
		logging.WithLogLevel(logging.INFO),
		logging.WithDevelopmentMode(),
	)

	// Load WEB_TOKEN from .env when present
	_ = godotenv.Load()
	token := os.Getenv("WEB_TOKEN")
	if token == "" {
		logger.Error("WEB_TOKEN not set; export it or add it to .env")
		os.Exit(1)
	}

	client, err := futures.NewClient(futures.Options{
		AuthToken: token,
		Timeout:   15 * time.Second,
		Logger:    logger,
	})
	if err != nil {
		logger.Error("failed to create client", logging.Error(err))
		os.Exit(1)
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	// Check connectivity via a public endpoint
	if !client.Ping(ctx) {
		logger.Error("exchange unreachable")
		os.Exit(1)
	}

	// Market data
	for _, symbol := range []string{"BTC_USDT", "ETH_USDT"} {
		ticker, err := client.Ticker(ctx, symbol)
		if err != nil {
			logger.Error("failed to fetch ticker",
				logging.String("symbol", symbol),
				logging.Error(err),
			)
			continue
		}
		logger.Info("ticker",
			logging.String("symbol", symbol),
			logging.Float64("lastPrice", ticker.Data.LastPrice),
			logging.Float64("change24h", ticker.Data.RiseFallRate*100),
			logging.Float64("volume24h", ticker.Data.Volume24),
			logging.Float64("fundingRate", ticker.Data.FundingRate),
		)
	}

	// Contract details
	detail, err := client.ContractDetail(ctx, "BTC_USDT")
	if err != nil {
		logger.Error("failed to fetch contract detail", logging.Error(err))
	} else if len(detail.Data) > 0 {
		contract := detail.Data[0]
		logger.Info("contract",
			logging.String("symbol", contract.Symbol),
			logging.Int("maxLeverage", contract.MaxLeverage),
			logging.Float64("takerFeeRate", contract.TakerFeeRate),
			logging.Float64("makerFeeRate", contract.MakerFeeRate),
			logging.Float64("minVol", contract.MinVol),
		)
	}

	// Order book, top 5 levels per side
	depth, err := client.Depth(ctx, "BTC_USDT", 5)
	if err != nil {
		logger.Error("failed to fetch depth", logging.Error(err))
	} else if len(depth.Data.Bids) > 0 && len(depth.Data.Asks) > 0 {
		logger.Info("order book",
			logging.Float64("bestBid", depth.Data.Bids[0].Price),
			logging.Float64("bestAsk", depth.Data.Asks[0].Price),
			logging.Float64("spread", depth.Data.Asks[0].Price-depth.Data.Bids[0].Price),
		)
	}

	// Account data (requires a valid token)
	asset, err := client.AccountAsset(ctx, "USDT")
	if err != nil {
		logger.Warn("failed to fetch account asset", logging.Error(err))
	} else {
		logger.Info("account asset",
			logging.String("currency", asset.Data.Currency),
			logging.Float64("availableBalance", asset.Data.AvailableBalance),
			logging.Float64("equity", asset.Data.Equity),
		)
	}

	positions, err := client.OpenPositions(ctx, "")
	if err != nil {
		logger.Warn("failed to fetch open positions", logging.Error(err))
	} else {
		logger.Info("open positions", logging.Int("count", len(positions.Data)))
	}
}
