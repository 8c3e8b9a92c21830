package commands

import (
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"ristkey/internal/crypto/curves"
	"ristkey/internal/crypto/keycodec"
)

func codecFor(group string) (*keycodec.Codec, error) {
	switch group {
	case "", "ristretto255":
		return keycodec.Default(), nil
	case "edwards25519":
		return keycodec.New(curves.NewEdwards25519()), nil
	default:
		return nil, fmt.Errorf("unknown group %q (want ristretto255 or edwards25519)", group)
	}
}

// derive <n>: print n·B, handy for producing test vectors.
func deriveCmd() *cobra.Command {
	var (
		group string
		asHex bool
	)
	cmd := &cobra.Command{
		Use:   "derive <scalar>",
		Short: "Print the public key of a small scalar",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("scalar must be an unsigned 64-bit integer: %w", err)
			}
			c, err := codecFor(group)
			if err != nil {
				return err
			}
			p := c.DerivePublicKey(c.Group().NewScalarFromUint64(n))
			if asHex {
				b := c.Encode(p)
				fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(b[:]))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), c.EncodeBase58(p))
			return nil
		},
	}
	cmd.Flags().StringVar(&group, "group", "ristretto255", "group: ristretto255 or edwards25519")
	cmd.Flags().BoolVar(&asHex, "hex", false, "print hex instead of base58")
	return cmd
}

// decode <base58>: validate a key and print its canonical hex encoding.
func decodeCmd() *cobra.Command {
	var group string
	cmd := &cobra.Command{
		Use:   "decode <base58>",
		Short: "Validate a base58 public key and print it as hex",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := codecFor(group)
			if err != nil {
				return err
			}
			p, err := c.DecodeBase58(args[0])
			if err != nil {
				return err
			}
			b := c.Encode(p)
			fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(b[:]))
			return nil
		},
	}
	cmd.Flags().StringVar(&group, "group", "ristretto255", "group: ristretto255 or edwards25519")
	return cmd
}
