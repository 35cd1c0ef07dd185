package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	flag "github.com/spf13/pflag"

	"github.com/kouprlabs/voltaview/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.StringP("config", "c", "", "override config path (optional)")
	prefsPath := flag.String("prefs", "", "override preferences path (optional)")
	apiURL := flag.String("api-url", "", "Voltaserve API URL (overrides config)")
	accessKey := flag.String("access-key", "", "API access key (overrides config)")
	syncSeconds := flag.Int("sync", 0, "sync interval in seconds (overrides config)")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{
		ConfigPath: *configPath,
		PrefsPath:  *prefsPath,
		APIURL:     *apiURL,
		AccessKey:  *accessKey,
	}
	if *syncSeconds > 0 {
		opts.SyncSeconds = *syncSeconds
	}

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "voltaview: %v\n", err)
		return 1
	}
	return 0
}
