package main

import (
	"context"
	"errors"
	"fmt"
	"nanum-admin/console"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	apiURL      string
	sessionFile string

	client *console.Client
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "nanumctl",
	Short: "nanumctl - console for the nanum aid program",
	Long: `nanumctl manages aid groups and their recipients through the nanum-admin API.

Log in once with your business number; the session is kept in a local file
and dropped when the server rejects it.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		client = console.NewClient(apiURL, console.NewFileStore(sessionFile))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", envOr("NANUM_API_URL", "http://localhost:8080/api"), "API base URL")
	rootCmd.PersistentFlags().StringVar(&sessionFile, "session", envOr("NANUM_SESSION_FILE", console.DefaultSessionPath()), "session file")

	rootCmd.AddCommand(loginCmd, logoutCmd, whoamiCmd, groupsCmd, targetsCmd, exportCmd)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if errors.Is(err, console.ErrUnauthorized) {
			fmt.Fprintln(os.Stderr, "세션이 만료되었습니다. 다시 로그인해주세요: nanumctl login")
		}
		os.Exit(1)
	}
}
