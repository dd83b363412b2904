package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/dmitrijs2005/mediavault/internal/app"
	"github.com/dmitrijs2005/mediavault/internal/buildinfo"
	"github.com/dmitrijs2005/mediavault/internal/cli"
	"github.com/dmitrijs2005/mediavault/internal/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("%v", err)
	}

	a, err := app.NewApp(ctx, cfg, os.Stderr)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer a.Close()

	a.Run(ctx, os.Stdin, os.Stdout, cli.StdinIsTerminal())

}
