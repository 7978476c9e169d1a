package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func logoutCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the persisted session",
		Long: `Clears the local session store and best-effort revokes the identity
provider session. Safe to run when no session exists.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := buildClient(flags)
			if err != nil {
				return err
			}
			defer client.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()

			if err := client.Logout(ctx); err != nil {
				return err
			}
			fmt.Println("Session cleared")
			return nil
		},
	}
}
