package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"ristkey/internal/domain"
)

func registerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register <username>",
		Short: "Publish your public key to the key directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePassphrase(); err != nil {
				return err
			}
			dir, err := appCtx.RequireDirectory()
			if err != nil {
				return err
			}
			id, err := appCtx.IDs.LoadIdentity(passphrase)
			if err != nil {
				return err
			}

			rec, err := dir.RegisterKey(cmd.Context(), domain.KeyRecord{
				Username:  domain.Username(args[0]),
				PublicKey: id.Public,
			})
			if err != nil {
				return err
			}
			if rec.PublicKey != id.Public {
				return fmt.Errorf("directory stored %s, expected %s", rec.PublicKey, id.Public)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Registered %s as %s at %s\n",
				rec.PublicKey, rec.Username, time.Unix(rec.RegisteredAt, 0).UTC().Format(time.RFC3339))
			return nil
		},
	}
	return cmd
}
