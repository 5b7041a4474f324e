// Package main provides the breeze binary: a command line front end
// for the Breeze ChMS API client, including snapshot capture and
// profile reconciliation between snapshots.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/gobreeze/breeze"
)

const appName = "breeze"

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// globalFlags carries the connection settings shared by every
// subcommand that talks to the service.
type globalFlags struct {
	configPath string
	url        string
	apiKey     string
	verbose    bool
}

// client builds an API client from the flags, falling back to the
// configuration file when the url or key was not given on the command
// line.
func (g *globalFlags) client() (*breeze.Client, error) {
	url, key := g.url, g.apiKey
	if url == "" || key == "" {
		var cfg *breeze.Config
		var err error
		if g.configPath != "" {
			cfg, err = breeze.LoadConfig(g.configPath)
		} else {
			cfg, err = breeze.LoadConfig()
		}
		if err != nil {
			return nil, err
		}
		if url == "" {
			url = cfg.BreezeURL
		}
		if key == "" {
			key = cfg.APIKey
		}
	}
	return breeze.New(url, key, breeze.WithLogger(slog.Default()))
}

func rootCmd() *cobra.Command {
	g := &globalFlags{}

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Breeze ChMS command line client",
		Long: `Breeze is a command line client for the Breeze ChMS REST API.

It can inspect the account, dump the profile-field schema, capture
snapshots of the member database, and report what changed between two
snapshots (or between a snapshot and the live database).

Credentials come from --url and --api-key, or from a breeze_maker.yml
file found via --config or the standard config locations.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if g.verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
	}

	cmd.PersistentFlags().StringVarP(&g.configPath, "config", "c", "", "Path to breeze_maker.yml")
	cmd.PersistentFlags().StringVar(&g.url, "url", "", "Breeze account URL (https://subdomain.breezechms.com)")
	cmd.PersistentFlags().StringVar(&g.apiKey, "api-key", "", "Breeze API key")
	cmd.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(
		versionCmd(),
		accountCmd(g),
		fieldsCmd(g),
		snapshotCmd(g),
		compareCmd(g),
	)
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s\n", appName, breeze.Version)
		},
	}
}
