// Command gilbench compares the factorial benchmark under the two gate
// regimes: one where a worker holds the process-wide token for its whole
// repetition loop, and one where the token is dropped before the loop.
package main

import (
	"context"
	"errors"
	"os"

	"github.com/machapraveen/gilbench/internal/app"
	apperrors "github.com/machapraveen/gilbench/internal/errors"
)

func main() {
	if app.HasVersionFlag(os.Args[1:]) {
		app.PrintVersion(os.Stdout)
		return
	}

	application, err := app.New(os.Args, os.Stderr)
	if err != nil {
		if app.IsHelpError(err) {
			os.Exit(0)
		}
		var cfgErr apperrors.ConfigError
		var argErr apperrors.ArgumentError
		if errors.As(err, &cfgErr) || errors.As(err, &argErr) {
			os.Exit(apperrors.ExitErrorConfig)
		}
		os.Exit(apperrors.ExitErrorGeneric)
	}

	exitCode := application.Run(context.Background(), os.Stdout)
	os.Exit(exitCode)
}
