package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bitacora-medica/medauth/guard"
)

func statusCmd(flags *rootFlags) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the persisted session",
		Long: `Restores the session from the configured store and prints who is signed in
and which access phase the session is in. No network calls are made.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := buildClient(flags)
			if err != nil {
				return err
			}
			defer client.Close()

			state := client.Session()
			phase := guard.PhaseOf(state)

			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(map[string]any{
					"authenticated": state.Authenticated,
					"phase":         phase.String(),
					"user":          state.User,
					"profile":       state.Profile,
				})
			}

			if !state.Authenticated {
				fmt.Println("No active session")
				return nil
			}

			fmt.Printf("User:  %s <%s>\n", state.User.ID, state.User.Email)
			fmt.Printf("Role:  %s\n", state.User.Role)
			fmt.Printf("Phase: %s\n", phase)
			if state.Profile != nil {
				fmt.Printf("Name:  %s\n", state.Profile.FullName)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the session as JSON")

	return cmd
}
