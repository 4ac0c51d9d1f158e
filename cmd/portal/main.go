package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/refundport/internal/buildinfo"
	"github.com/dmitrijs2005/refundport/internal/portal/cli"
	"github.com/dmitrijs2005/refundport/internal/portal/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := cli.NewApp(ctx, cfg)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
