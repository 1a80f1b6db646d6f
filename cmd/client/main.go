package main

import (
	"context"
	"log"
	"os"

	"github.com/geosick-health/geosick/internal/buildinfo"
	"github.com/geosick-health/geosick/internal/client/cli"
	"github.com/geosick-health/geosick/internal/client/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := cli.NewApp(cfg)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
