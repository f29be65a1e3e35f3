package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/specialistvlad/lambdagen/internal/app"
	"github.com/specialistvlad/lambdagen/internal/cli"
)

// main is the entrypoint for the lambdagen application.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Stdout, os.Stderr, os.Args[1:])
	stop()
	os.Exit(code)
}

// run encapsulates the main application logic for easier testing and error
// handling. The report goes to outW; logs and errors go to errW.
func run(ctx context.Context, outW, errW io.Writer, args []string) int {
	appConfig, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return report(errW, err)
	}
	if shouldExit {
		return cli.ExitOK
	}

	lambdagen, err := app.NewApp(outW, errW, appConfig)
	if err != nil {
		fmt.Fprintf(errW, "A critical startup error occurred: %v\n", err)
		return cli.ExitFailed
	}
	defer lambdagen.Close()

	if appConfig.Watch {
		err = lambdagen.Watch(ctx, nil)
	} else {
		err = lambdagen.Run(ctx)
	}
	if errors.Is(err, app.ErrFailed) {
		return cli.ExitFailed
	}
	if err != nil {
		return report(errW, err)
	}
	return cli.ExitOK
}

func report(errW io.Writer, err error) int {
	var exitErr *cli.ExitError
	if errors.As(err, &exitErr) {
		fmt.Fprintln(errW, exitErr.Message)
		return exitErr.Code
	}
	fmt.Fprintln(errW, err)
	return cli.ExitFailed
}
