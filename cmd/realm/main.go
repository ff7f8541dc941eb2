package main

import (
	"context"

	"github.com/joho/godotenv"
	log "github.com/pixil98/go-log"
	"github.com/pixil98/go-realm/cmd/realm/command"
	service "github.com/pixil98/go-service"
)

func main() {
	logger := log.NewLogger()

	// Local development convenience; a missing .env is not an error.
	_ = godotenv.Load()

	app, err := service.NewApp(&command.Config{}, command.BuildWorkers)
	if err != nil {
		logger.WithError(err).Fatal("creating application")
	}

	err = app.Run(context.Background())
	if err != nil {
		logger.WithError(err).Fatal("running application")
	}

	logger.Info("exiting")
}
