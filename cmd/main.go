// Package main provides the purl CLI entrypoint: a private, curl-like URL
// fetcher that strips tracking parameters and refuses insecure transport
// unless told otherwise.
package main

import (
	"context"
	"fmt"
	"os"
	"purl/pkg/logger"
	"purl/pkg/serrors"

	"go.uber.org/zap"
)

// main executes the root command and maps the returned error to an exit code.
func main() {
	ctx := context.Background()

	defer func() {
		if p := recover(); p != nil {
			logger.Error(ctx, "captured panic, exiting...", zap.Any("panic", p))
			_ = logger.Sync(ctx)

			panic(p)
		}
	}()

	err := rootCommand(os.Stdout, os.Stderr, newFetcher).ExecuteContext(ctx)
	_ = logger.Sync(ctx)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(serrors.ExitCode(err)) //nolint: gocritic
	}
}
