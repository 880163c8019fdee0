// Command updater runs one reference-data update attempt against the
// configured data server, or inspects the locally active dataset. The
// local store is only ever replaced by a fully successful attempt; any
// failure leaves the previously active data (committed or seed) in
// place.
package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	logs "github.com/danmuck/smplog"

	"github.com/nolmscheid/ReadbackCorrect-sub001/cmd/internal/logcfg"
	"github.com/nolmscheid/ReadbackCorrect-sub001/src/avdata"
	"github.com/nolmscheid/ReadbackCorrect-sub001/src/data_store"
	"github.com/nolmscheid/ReadbackCorrect-sub001/src/sync_client"
)

func main() {
	logs.Configure(logcfg.Load())

	configPath := flag.String("config", "./readback.config.toml", "TOML config path")
	baseURL := flag.String("base-url", "", "data server base URL (overrides config)")
	storeDir := flag.String("store", "", "local datastore directory (overrides config)")
	timeout := flag.Duration("timeout", 0, "per-request HTTP timeout (overrides config)")
	show := flag.Bool("show", false, "print the active cycle and dataset counts without updating")
	flag.Parse()

	cfg, err := loadClientConfig(*configPath)
	if err != nil {
		logs.Fatalf(err, "invalid configuration")
	}
	if *baseURL != "" {
		cfg.BaseURL = *baseURL
	}
	if *storeDir != "" {
		cfg.StoreDir = *storeDir
	}

	store, err := data_store.InitStore(data_store.DefaultConfig(cfg.StoreDir))
	if err != nil {
		logs.Fatalf(err, "failed to open datastore at %s", cfg.StoreDir)
	}

	if *show {
		printActive(store)
		return
	}

	client := sync_client.NewManifestClient(cfg.BaseURL)
	if *timeout > 0 {
		client.HTTPClient.Timeout = *timeout
	} else if cfg.TimeoutSeconds > 0 {
		client.HTTPClient.Timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	updater := sync_client.NewUpdater(store, client)
	cycle, err := updater.Update(ctx)
	if err != nil {
		logs.Errorf(err, "update failed (%s)", errorKind(err))
		logs.Infof("existing data remains usable")
		printActive(store)
		os.Exit(1)
	}

	logs.Infof("update complete: cycle %s", cycle)
	printActive(store)
}

func printActive(store *data_store.Store) {
	if cycle, ok := store.CurrentCycle(); ok {
		logs.Infof("active data: cycle %s", cycle)
	} else {
		logs.Infof("active data: bundled seed (no successful update yet)")
	}
	for _, name := range avdata.RequiredNames {
		logs.Infof("  %s: %d records", name, store.DatasetCount(name))
	}
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, avdata.ErrConfig):
		return "config"
	case errors.Is(err, avdata.ErrNetwork):
		return "network"
	case errors.Is(err, avdata.ErrFormat):
		return "format"
	case errors.Is(err, avdata.ErrCancelled):
		return "cancelled"
	default:
		return "internal"
	}
}
