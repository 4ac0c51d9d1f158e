package main

import (
	"context"
	"os"

	"github.com/dmitrijs2005/refundport/internal/buildinfo"
	"github.com/dmitrijs2005/refundport/internal/relay"
	"github.com/dmitrijs2005/refundport/internal/relay/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	app := relay.NewApp(cfg)

	app.Run(ctx)

}
