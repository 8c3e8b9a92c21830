package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func pubkeyCmd() *cobra.Command {
	var asHex bool
	cmd := &cobra.Command{
		Use:   "pubkey",
		Short: "Print the identity public key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePassphrase(); err != nil {
				return err
			}
			id, err := appCtx.IDs.LoadIdentity(passphrase)
			if err != nil {
				return err
			}
			if asHex {
				fmt.Fprintln(cmd.OutOrStdout(), id.Public.Hex())
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), id.Public)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asHex, "hex", false, "print hex instead of base58")
	return cmd
}
