// order-stream tails the authenticated user channel and logs order and
// trade updates for the configured wallet. Credentials come from the
// local secret store populated by wallet-init.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/w6g2000/polymarket-go-client/clob/signing"
	"github.com/w6g2000/polymarket-go-client/clob/types"
	"github.com/w6g2000/polymarket-go-client/clob/ws"
	"github.com/w6g2000/polymarket-go-client/pkg/config"
	"github.com/w6g2000/polymarket-go-client/pkg/logger"
	"github.com/w6g2000/polymarket-go-client/pkg/secretstore"
	"github.com/w6g2000/polymarket-go-client/pkg/shutdown"
)

func main() {
	var (
		cfgPath = flag.String("config", getenv("POLY_CONFIG", ""), "config file path (optional)")
		markets = flag.String("markets", "", "comma-separated condition ids to watch (default: all)")
	)
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fatal(err)
	}
	if err := logger.Init(logger.Config{
		Level:      cfg.Log.Level,
		OutputFile: cfg.Log.OutputFile,
		MaxSize:    cfg.Log.MaxSize,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAge,
		Compress:   cfg.Log.Compress,
	}); err != nil {
		fatal(err)
	}
	log := logger.Named("order-stream")

	signer, err := signing.NewSigner(cfg.Wallet.PrivateKey)
	if err != nil {
		fatal(fmt.Errorf("parse wallet key: %w", err))
	}

	keyBytes, err := secretstore.ParseKey(cfg.Store.EncryptionKey)
	if err != nil {
		fatal(err)
	}
	store, err := secretstore.Open(secretstore.OpenOptions{
		Path:          cfg.Store.Path,
		EncryptionKey: keyBytes,
		ReadOnly:      true,
	})
	if err != nil {
		fatal(fmt.Errorf("open secret store: %w", err))
	}
	stored, err := store.LoadCredentials(signer.Address().Hex())
	store.Close()
	if err != nil {
		fatal(fmt.Errorf("load credentials (run wallet-init first): %w", err))
	}

	var watch []string
	if *markets != "" {
		watch = strings.Split(*markets, ",")
	}

	client := ws.NewUserClient(cfg.API.WSHost, types.ApiKeyCreds{
		Key:        stored.Key,
		Secret:     stored.Secret,
		Passphrase: stored.Passphrase,
	}, watch)
	client.OnOrder(func(ev *ws.OrderEvent) {
		log.WithField("order", ev.ID).
			WithField("status", ev.Status).
			WithField("matched", ev.SizeMatched).
			Info("order update")
	})
	client.OnTrade(func(ev *ws.TradeEvent) {
		log.WithField("trade", ev.ID).
			WithField("price", ev.Price).
			WithField("size", ev.Size).
			Info("trade")
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := client.Connect(ctx); err != nil {
		fatal(err)
	}

	hooks := shutdown.NewManager()
	hooks.OnShutdown(func(context.Context) {
		client.Close()
	})

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	log.Info("signal received, closing")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	hooks.Shutdown(shutdownCtx)
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "error:", err.Error())
	os.Exit(1)
}
