package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/recetario/internal/buildinfo"
	"github.com/dmitrijs2005/recetario/internal/client/cli"
	"github.com/dmitrijs2005/recetario/internal/client/config"
)

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := cli.NewApp(ctx, cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	// The REPL blocks on stdin, so a signal cannot reach it through ctx alone.
	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			fmt.Println("\nBye!")
			app.Close()
			os.Exit(130)
		case <-done:
		}
	}()

	err = app.Run(ctx)
	close(done)
	if err != nil {
		log.Printf("%v", err)
	}
}
