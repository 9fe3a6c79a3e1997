package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"dorm-delivery/internal/cli/dormctl"
	"dorm-delivery/pkg/client"
	"dorm-delivery/pkg/logger"
	"dorm-delivery/pkg/logger/zap_adapter"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	root := dormctl.NewRootCommand(func(verbose bool) (logger.Logger, error) {
		log, err := zap_adapter.NewConsoleAdapter(verbose)
		if err != nil {
			return nil, err
		}
		return log, nil
	})

	err := root.ExecuteContext(ctx)
	if err == nil {
		return
	}

	switch {
	case errors.Is(err, client.ErrRedirect):
		fmt.Fprintln(os.Stderr, "redirected to home:", err)
	case errors.Is(err, client.ErrNotLoggedIn):
		fmt.Fprintln(os.Stderr, "not logged in, run: dormctl login")
	default:
		fmt.Fprintln(os.Stderr, err)
	}
	stop()
	os.Exit(1)
}
