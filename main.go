package main

import (
	"context"
	"github.com/csr-ugra/rent-tracker/cmd"
	"github.com/csr-ugra/rent-tracker/internal/db"
	"github.com/csr-ugra/rent-tracker/internal/log"
	"github.com/csr-ugra/rent-tracker/internal/util"
	"os"
	_ "time/tzdata"
)

func main() {
	config := util.GetConfig()

	log.InitLogger(config)

	// log panic error
	defer func() {
		if r := recover(); r != nil {
			logger := log.GetLogger()
			logger.Panic(r)
		}
	}()

	connection, err := db.GetConnection(config)
	if err != nil {
		// re-fetching logger to log with all fields appended during program run
		logger := log.GetLogger()
		logger.Fatalln(err)
	}
	defer func() {
		_ = connection.Close()
	}()

	ctx := context.Background()

	err = cmd.Run(ctx, connection, config, os.Args[1:])
	if err != nil {
		logger := log.GetLogger()
		logger.Fatalln(err)
	}
}
