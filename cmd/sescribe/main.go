package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sestools/sescribe/internal/cli"
	serrors "github.com/sestools/sescribe/pkg/errors"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := cli.Execute(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130) // Standard shell convention for SIGINT
		}
		fmt.Fprintln(os.Stderr, "Error:", serrors.UserMessage(err))
		if serrors.Is(err, serrors.ErrCodeUsage) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
