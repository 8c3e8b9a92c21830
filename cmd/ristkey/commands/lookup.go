package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"ristkey/internal/crypto"
	"ristkey/internal/domain"
)

// lookup <username>: fetch a key, pin it locally, and refuse silent changes.
func lookupCmd() *cobra.Command {
	var accept bool
	cmd := &cobra.Command{
		Use:   "lookup <username>",
		Short: "Fetch, validate and cache a user's public key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := appCtx.RequireDirectory()
			if err != nil {
				return err
			}
			username := domain.Username(args[0])

			rec, err := dir.LookupKey(cmd.Context(), username)
			if err != nil {
				return err
			}

			cached, ok, err := appCtx.Records.LoadKeyRecord(username)
			if err != nil {
				return err
			}
			if ok && cached.PublicKey != rec.PublicKey && !accept {
				return fmt.Errorf("key for %s changed from %s to %s (rerun with --accept to trust it)",
					username, cached.PublicKey, rec.PublicKey)
			}
			if err := appCtx.Records.SaveKeyRecord(rec); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\tfingerprint %s\n",
				rec.Username, rec.PublicKey, crypto.Fingerprint(rec.PublicKey))
			return nil
		},
	}
	cmd.Flags().BoolVar(&accept, "accept", false, "trust a key that differs from the cached one")
	return cmd
}
