package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	navkiterrors "github.com/navkit-dev/navkit/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ┌┐┌┌─┐┬  ┬┬┌─┬┌┬┐
  │││├─┤└┐┌┘├┴┐│ │
  ┘└┘┴ ┴ └┘ ┴ ┴┴ ┴
`

func main() {
	rootCmd := &cobra.Command{
		Use:   "navkit",
		Short: "Router provisioning and startup coordination for Go SPAs",
		Long: `navkit provisions the singleton client-side router of a Go
single-page application and coordinates its startup.

The CLI works against a navkit.json project:

  • serve   — run the dev shell around your route manifests
  • routes  — print the resolved route table
  • init    — create a navkit.json in the current directory`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		initCmd(),
		serveCmd(),
		routesCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		var nerr *navkiterrors.NavkitError
		if errors.As(err, &nerr) {
			fmt.Fprintln(os.Stderr, nerr.Format())
		} else {
			fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
		}
		os.Exit(1)
	}
}

// printBanner prints the navkit ASCII art banner.
func printBanner() {
	fmt.Print(banner)
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Printf("\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}
