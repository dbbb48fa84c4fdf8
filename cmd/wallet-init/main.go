// wallet-init derives a trading key from a BIP-39 mnemonic, performs L1
// credential derivation against the CLOB and stores the resulting API
// credential triple in the local secret store.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"math/big"
	"os"
	"strings"
	"time"

	hdwallet "github.com/miguelmota/go-ethereum-hdwallet"

	"github.com/w6g2000/polymarket-go-client/clob/client"
	"github.com/w6g2000/polymarket-go-client/clob/types"
	"github.com/w6g2000/polymarket-go-client/pkg/config"
	"github.com/w6g2000/polymarket-go-client/pkg/logger"
	"github.com/w6g2000/polymarket-go-client/pkg/secretstore"
)

func main() {
	var (
		cfgPath   = flag.String("config", getenv("POLY_CONFIG", ""), "config file path (optional)")
		index     = flag.Uint("index", 0, "BIP-44 account index to derive")
		nonce     = flag.Uint64("nonce", 0, "credential derivation nonce")
		dbPath    = flag.String("db", "", "secret store path (overrides config)")
		secretKey = flag.String("secret-key", getenv("POLY_STORE_KEY", ""), "store encryption key (32 bytes base64/hex)")
		dryRun    = flag.Bool("dry-run", false, "derive the address only, no API call")
	)
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fatal(err)
	}
	if err := logger.Init(logger.Config{Level: cfg.Log.Level}); err != nil {
		fatal(err)
	}
	if *dbPath != "" {
		cfg.Store.Path = *dbPath
	}
	if *secretKey != "" {
		cfg.Store.EncryptionKey = *secretKey
	}

	fmt.Fprintln(os.Stderr, "enter mnemonic (12/15/18/21/24 words), then newline:")
	mnemonic := strings.TrimSpace(readLine())
	if mnemonic == "" {
		fatal(errors.New("mnemonic is empty"))
	}

	wallet, err := hdwallet.NewFromMnemonic(mnemonic)
	if err != nil {
		fatal(fmt.Errorf("parse mnemonic: %w", err))
	}
	path := hdwallet.MustParseDerivationPath(fmt.Sprintf("m/44'/60'/0'/0/%d", *index))
	account, err := wallet.Derive(path, false)
	if err != nil {
		fatal(fmt.Errorf("derive account: %w", err))
	}
	privateKey, err := wallet.PrivateKeyHex(account)
	if err != nil {
		fatal(fmt.Errorf("export key: %w", err))
	}

	fmt.Fprintf(os.Stderr, "derived address: %s (index %d)\n", account.Address.Hex(), *index)
	if *dryRun {
		return
	}

	c, err := client.NewClientWithSigner(cfg.API.Host, types.Chain(cfg.API.ChainID), privateKey, &client.SignerConfig{
		SignatureType: types.SignatureType(cfg.Wallet.SignatureType),
		FunderAddress: cfg.Wallet.FunderAddress,
	})
	if err != nil {
		fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	creds, err := c.CreateOrDeriveAPIKey(ctx, new(big.Int).SetUint64(*nonce))
	if err != nil {
		fatal(fmt.Errorf("derive api credentials: %w", err))
	}

	keyBytes, err := secretstore.ParseKey(cfg.Store.EncryptionKey)
	if err != nil {
		fatal(err)
	}
	store, err := secretstore.Open(secretstore.OpenOptions{
		Path:          cfg.Store.Path,
		EncryptionKey: keyBytes,
	})
	if err != nil {
		fatal(fmt.Errorf("open secret store: %w", err))
	}
	defer store.Close()

	if err := store.SaveCredentials(account.Address.Hex(), secretstore.Credentials{
		Key:        creds.Key,
		Secret:     creds.Secret,
		Passphrase: creds.Passphrase,
	}); err != nil {
		fatal(fmt.Errorf("store credentials: %w", err))
	}

	fmt.Fprintf(os.Stderr, "credentials stored for %s (api key %s)\n", account.Address.Hex(), creds.Key)
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func readLine() string {
	br := bufio.NewReader(os.Stdin)
	s, _ := br.ReadString('\n')
	return strings.TrimSpace(s)
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "error:", err.Error())
	os.Exit(1)
}
