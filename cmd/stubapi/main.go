package main

import (
	"log"
	"os"

	"github.com/iurnickita/voterguide/internal/voterguide/config"
	"github.com/iurnickita/voterguide/internal/voterguide/logger"
	"github.com/iurnickita/voterguide/internal/voterguide/stubapi"
	"github.com/iurnickita/voterguide/internal/voterguide/stubapi/repository"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

func run(args []string) error {
	cfg, err := config.GetServerConfig(args)
	if err != nil {
		return err
	}

	zaplog, err := logger.NewZapLog(cfg.Logger)
	if err != nil {
		return err
	}
	defer zaplog.Sync()

	store, err := repository.NewStore(cfg.Repository)
	if err != nil {
		return err
	}

	return stubapi.Serve(cfg.StubAPI, store, zaplog)
}

// curl -v http://localhost:8000/apis/v1/deviceIdGenerate/
// curl -v http://localhost:8000/apis/v1/voterCount/
// curl -v "http://localhost:8000/apis/v1/candidatesRetrieve/?office_we_vote_id=wv01off2001"
