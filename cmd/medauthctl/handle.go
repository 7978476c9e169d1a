package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/bitacora-medica/medauth/guard"
)

func handleCmd(flags *rootFlags) *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "handle <url>",
		Short: "Process an OAuth callback deep link",
		Long: `Processes a callback deep link exactly as the application does on launch:
the URL is parsed for tokens, the identity session is established, and the
resulting session is synchronized with the clinical backend.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := buildClient(flags)
			if err != nil {
				return err
			}
			defer client.Close()
			client.Start()

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			if err := client.HandleURL(ctx, args[0]); err != nil {
				return err
			}
			if err := client.WaitReady(ctx); err != nil {
				return err
			}

			state := client.Session()
			if !state.Authenticated {
				fmt.Println("Callback processed, no session established")
				return nil
			}

			fmt.Printf("Session established for %s (%s)\n", state.User.Email, state.User.Role)
			fmt.Printf("Phase: %s\n", guard.PhaseOf(state))
			return nil
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "Overall timeout for token exchange and backend sync")

	return cmd
}
