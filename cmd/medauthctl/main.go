package main

import (
	"fmt"
	"os"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	medauth "github.com/bitacora-medica/medauth"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootFlags holds the connection options shared by every subcommand.
type rootFlags struct {
	backendURL  string
	identityURL string
	apiKey      string
	statePath   string
	redisAddr   string
}

func main() {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:   "medauthctl",
		Short: "Session tooling for the bitácora médica client core",
		Long: `medauthctl operates the client-side session core from the command line.

It drives the same flows the application shell uses:

  • handle an OAuth callback deep link
  • inspect and clear the persisted session
  • serve the guarded route shell with a metrics endpoint`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.backendURL, "backend", os.Getenv("MEDAUTH_BACKEND_URL"), "Clinical backend base URL")
	pf.StringVar(&flags.identityURL, "identity", os.Getenv("MEDAUTH_IDENTITY_URL"), "Identity provider base URL")
	pf.StringVar(&flags.apiKey, "apikey", os.Getenv("MEDAUTH_IDENTITY_APIKEY"), "Identity provider API key")
	pf.StringVar(&flags.statePath, "state", defaultStatePath(), "Path of the persisted session file")
	pf.StringVar(&flags.redisAddr, "redis", "", "Redis address for session persistence (overrides --state)")

	rootCmd.AddCommand(
		handleCmd(flags),
		statusCmd(flags),
		logoutCmd(flags),
		serveCmd(flags),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func defaultStatePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "medauth-session.json"
	}
	return dir + "/bitacora-medica/session.json"
}

func buildClient(flags *rootFlags) (*medauth.Client, error) {
	cfg := medauth.DefaultConfig()
	cfg.Backend.BaseURL = flags.backendURL
	cfg.Identity.BaseURL = flags.identityURL
	cfg.Identity.APIKey = flags.apiKey
	if flags.redisAddr == "" {
		cfg.Storage.FilePath = flags.statePath
	}

	b := medauth.New().
		WithConfig(cfg).
		WithMetricsEnabled(true)

	if flags.redisAddr != "" {
		b = b.WithRedis(redis.NewClient(&redis.Options{Addr: flags.redisAddr}))
	}

	return b.Build()
}
