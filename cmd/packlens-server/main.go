package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"packlens/internal/config"
	"packlens/internal/listener"
	"packlens/internal/server"
	"packlens/internal/storage"
)

func main() {
	cfg, err := config.Load()
	must(err)

	withIntake := len(os.Args) > 1 && os.Args[1] == "--with-intake"

	srv := server.New(cfg)

	if withIntake {
		db, err := storage.Open(cfg.DBPath)
		must(err)
		defer db.Close()

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		go func() {
			must(srv.ListenAndServe())
		}()
		must(listener.NewService(db, cfg).Run(ctx))
		return
	}

	must(srv.ListenAndServe())
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
