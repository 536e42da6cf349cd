package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/Gunvolt24/wb_shop/config"
	cachemem "github.com/Gunvolt24/wb_shop/internal/cache/memory"
	"github.com/Gunvolt24/wb_shop/internal/repo/postgres"
	"github.com/Gunvolt24/wb_shop/internal/usecase"
	"github.com/Gunvolt24/wb_shop/pkg/logger"
	"github.com/Gunvolt24/wb_shop/pkg/metrics"
)

// CLI-приложение для пакетного импорта заказов из CSV.
// Построчные отказы печатаются в stdout; код выхода 1 только при фатальном сбое.
func main() {
	inputPath := flag.String("in", "", "path to CSV file. If empty, reads from stdin.")
	flag.Parse()

	_ = godotenv.Load(".env.local")

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logg, cleanup, err := logger.NewZapLogger(cfg.Logger.IsProd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = cleanup() }()

	metrics.MustRegister()

	pool, err := postgres.NewPool(ctx, cfg.Postgres.DSN, cfg.Postgres.MaxConns)
	if err != nil {
		fmt.Fprintf(os.Stderr, "postgres: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Кэш разовому импорту не нужен — хватает встроенного in-memory бэкенда.
	backend := cachemem.NewBackend()
	products := usecase.NewProductService(postgres.NewProductRepository(pool), backend, logg, cfg.Cache.TTL)
	orders := usecase.NewOrderService(postgres.NewOrderRepository(pool), products, backend, logg, cfg.Cache.TTL)

	in := os.Stdin
	if *inputPath != "" {
		f, err := os.Open(*inputPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "open input: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		in = f
	}

	outcome, err := orders.ImportCsv(ctx, in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "import: %v\n", err)
		os.Exit(1)
	}

	for _, e := range outcome.Errors {
		fmt.Printf("row %d: %s\n", e.Line, e.Reason)
	}
	fmt.Printf("imported=%d failed=%d\n", outcome.SuccessCount, outcome.FailureCount)
}
