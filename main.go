package main

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/ardnew/bmk/cli"
	"github.com/ardnew/bmk/lang"
	"github.com/ardnew/bmk/log"
)

// Exit status by failure class.
const (
	exitFailure = 1
	exitParse   = 2
	exitResolve = 3
)

func main() {
	err := cli.Run(context.Background(), os.Exit, os.Args[1:]...)
	if err != nil {
		log.Error(
			"run failed",
			slog.Any("error", err),
		) // slog automatically uses LogValue()
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, lang.ErrParse):
		return exitParse
	case errors.Is(err, lang.ErrResolve):
		return exitResolve
	default:
		return exitFailure
	}
}
