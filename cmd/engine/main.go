package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/sheikh-saqib/payments-engine/internal/config"
	"github.com/sheikh-saqib/payments-engine/internal/csvio"
	"github.com/sheikh-saqib/payments-engine/internal/engine"
	eventlog "github.com/sheikh-saqib/payments-engine/internal/events/logging"
	interfaces "github.com/sheikh-saqib/payments-engine/internal/interfaces"
	"github.com/sheikh-saqib/payments-engine/internal/ledger"
	"github.com/sheikh-saqib/payments-engine/internal/logging"
	"github.com/sheikh-saqib/payments-engine/internal/storage/memory"
	"go.uber.org/zap"
)

var (
	ErrMissingArgument = errors.New("expected 1 argument (input file path), but got none")
	ErrFileNotFound    = errors.New("input file not found")
	ErrFileUnreadable  = errors.New("input file unreadable")
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(os.Args[1:], os.Stdout, cfg, logger); err != nil {
		fmt.Fprintln(os.Stderr, err)
		logger.Sync()
		os.Exit(1)
	}
}

// run reads the transactions file named by args[0] and writes the final accounts to stdout
func run(args []string, stdout io.Writer, cfg config.Config, logger *zap.Logger) error {
	if len(args) < 1 || args[0] == "" {
		return ErrMissingArgument
	}
	path := args[0]

	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return fmt.Errorf("%w: %w", ErrFileUnreadable, err)
	}
	defer file.Close()

	var store interfaces.LedgerStore = memory.NewMemoryLedgerStore()
	ledgerService := ledger.NewLedger(store, ledger.WithOwnershipPolicy(cfg.Ownership))

	logger.Debug("processing transactions",
		zap.String("path", path),
		zap.String("error_policy", cfg.ErrorPolicy.String()),
		zap.String("ownership", cfg.Ownership.String()),
	)

	_, err = engine.Run(csvio.NewReader(file), ledgerService,
		engine.WithErrorPolicy(cfg.ErrorPolicy),
		engine.WithLogger(logger),
		engine.WithPublisher(eventlog.NewPublisher(logger)),
	)
	if err != nil {
		if errors.Is(err, engine.ErrSourceUnreadable) || errors.Is(err, csvio.ErrBadHeader) {
			return fmt.Errorf("%w: %w", ErrFileUnreadable, err)
		}
		return err
	}

	return csvio.WriteAccounts(stdout, ledgerService.Accounts())
}
