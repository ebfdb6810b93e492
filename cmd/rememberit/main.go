package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"rememberit/internal/services"
)

func main() {
	ctx := newCommandContext()
	cmd := newRootCommand(ctx)
	err := cmd.Execute()
	ctx.close()
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(exitCode(err))
	}
}

// exitCode maps the error taxonomy to distinct exit statuses so scripts can
// tell bad input from auth or network failures.
func exitCode(err error) int {
	switch services.Kind(err) {
	case "validation":
		return 2
	case "authentication":
		return 3
	case "not_found":
		return 4
	case "network":
		return 5
	default:
		return 1
	}
}
