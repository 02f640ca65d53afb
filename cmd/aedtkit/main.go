// Command aedtkit drives simulated circuit and extractor designs.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/roach88/aedtkit/internal/cli"
)

func main() {
	err := cli.NewRootCommand().ExecuteContext(context.Background())
	// ExitErrors were already reported by the command's formatter.
	var exitErr *cli.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	os.Exit(cli.GetExitCode(err))
}
