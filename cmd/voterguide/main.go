package main

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"github.com/iurnickita/voterguide/internal/voterguide/client"
	"github.com/iurnickita/voterguide/internal/voterguide/config"
	"github.com/iurnickita/voterguide/internal/voterguide/devicestore"
	"github.com/iurnickita/voterguide/internal/voterguide/endpoint"
	"github.com/iurnickita/voterguide/internal/voterguide/logger"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(args []string, out io.Writer) error {
	cfg, err := config.GetConfig(args)
	if err != nil {
		return err
	}

	zaplog, err := logger.NewZapLog(cfg.Logger)
	if err != nil {
		return err
	}
	defer zaplog.Sync()

	store, err := devicestore.NewStore(cfg.DeviceStore)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	c := client.NewClient(cfg.Client, store, zaplog)
	if cfg.Command.Reset {
		zaplog.Info("voter device id reset")
		return c.Reset(ctx)
	}
	if err := c.Init(ctx); err != nil {
		return err
	}

	name, err := endpoint.ParseName(cfg.Command.Endpoint)
	if err != nil {
		return err
	}
	params, err := c.CompleteParams(ctx, name, cfg.Command.Params)
	if err != nil {
		return err
	}

	var body json.RawMessage
	if err := c.Call(ctx, name, params, &body); err != nil {
		zaplog.Error("API call failed", zap.Stringer("endpoint", name), zap.Error(err))
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(body)
}

// go run ./cmd/stubapi -k key
// go run ./cmd/voterguide -k key -e voterCount
// go run ./cmd/voterguide -k key -e voterAddressSave -p address="1 Main St, Oakland"
// go run ./cmd/voterguide -k key -e candidatesRetrieve -p office_we_vote_id=wv01off2001
// go run ./cmd/voterguide -reset
