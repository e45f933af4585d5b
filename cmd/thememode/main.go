// Command thememode tracks a light/dark appearance mode.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/opencode-ai/thememode/internal/cli"
)

func main() {
	if err := cli.Execute(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
