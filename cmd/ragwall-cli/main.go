/*
Package main is the entry point for the ragwall terminal client.

It resolves the gateway address and the session file location, then hands
control to the interactive command loop.
*/
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ragwall/internal/client"
	"ragwall/internal/client/cli"
	"ragwall/internal/client/session"
)

func main() {
	baseURL := os.Getenv("RAGWALL_URL")
	if baseURL == "" {
		baseURL = "http://localhost:3000"
	}

	sessionPath := os.Getenv("RAGWALL_SESSION_FILE")
	if sessionPath == "" {
		var err error
		sessionPath, err = session.DefaultPath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "FATAL: cannot resolve session file location: %v\n", err)
			os.Exit(1)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c := client.New(baseURL, 60*time.Second)
	s := session.NewStore(sessionPath)

	app := cli.NewApp(c, s, os.Stdin, os.Stdout)
	if err := app.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
		os.Exit(1)
	}
}
