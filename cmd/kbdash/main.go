// Command kbdash serves and renders the knowledge base dashboard widgets.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	_ "golang.org/x/crypto/x509roots/fallback" // Embed CA certs for scratch container

	"github.com/ericfisherdev/kbdash/internal/config"
)

var (
	errorLabel = color.New(color.FgRed, color.Bold).SprintFunc()
	okLabel    = color.New(color.FgGreen, color.Bold).SprintFunc()
	warnLabel  = color.New(color.FgYellow, color.Bold).SprintFunc()
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", errorLabel("Error:"), err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &config.LoadOptions{}

	root := &cobra.Command{
		Use:           "kbdash",
		Short:         "Knowledge base metrics and changelog dashboard",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.ConfigFile, "config", "", "YAML config file (overrides KBDASH_CONFIG_FILE)")
	root.PersistentFlags().StringVar(&opts.EnvFile, "env-file", ".env", "dotenv file with injected credentials; ignored when missing")

	root.AddCommand(newServeCmd(opts), newRenderCmd(opts))
	return root
}
