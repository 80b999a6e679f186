package cmd

import (
	"fmt"
	"os"

	"github.com/HediM1312/twitter-clone/client"
	"github.com/spf13/cobra"
)

var (
	baseURL   string
	credsPath string

	apiClient *client.Client
	session   *client.Session
)

var rootCmd = &cobra.Command{
	Use:   "twitter-cli",
	Short: "Twitter Clone CLI - post, follow and browse from the terminal",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		apiClient = client.New(baseURL)
		session = client.NewSession(apiClient, client.NewFileStore(credsPath))

		if err := session.Initialize(cmd.Context()); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to restore session: %v\n", err)
		}
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&baseURL, "api", "http://localhost:8080", "API base URL")
	rootCmd.PersistentFlags().StringVar(&credsPath, "credentials", client.DefaultStorePath(), "credentials file path")
}

// requireLogin exits with a hint when no session is active.
func requireLogin() {
	if session.State() != client.StateAuthenticated {
		fmt.Fprintln(os.Stderr, "Error: not logged in, run 'twitter-cli login' first")
		os.Exit(1)
	}
}
