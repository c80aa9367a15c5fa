// Command pudiya runs the pudi incident dashboard and its maintenance tasks.
//
// Usage:
//
//	pudiya serve            start the HTTP server
//	pudiya migrate          apply database migrations
//	pudiya seed             insert sample entries
//	pudiya cleanup-tokens   delete expired and revoked refresh tokens
//	pudiya version          print build information
//
// Configuration is read from --config, CONFIG_PATH or ./config.yaml, with
// environment variables taking precedence.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}
