package commands

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"ristkey/internal/app"
	"ristkey/internal/httpclient"
)

var (
	home       string
	passphrase string
	relayURL   string
	apiKey     string
	verbose    bool

	appCtx *app.Wire
)

// Execute runs the CLI with os.Args.
func Execute() error {
	return newRootCmd().Execute()
}

// run executes the CLI with args, writing to out and errOut.
func run(args []string, out, errOut io.Writer) error {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(out)
	root.SetErr(errOut)
	return root.Execute()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "ristkey",
		Short:         "ristretto255 identity keys and key directory CLI",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if home == "" {
				dir, err := os.UserHomeDir()
				if err != nil {
					return err
				}
				home = filepath.Join(dir, ".ristkey")
			}
			if err := os.MkdirAll(home, 0o700); err != nil {
				return err
			}
			if apiKey == "" {
				apiKey = os.Getenv(httpclient.APIKeyEnv)
			}

			cfg := app.Config{Home: home, RelayURL: relayURL, APIKey: apiKey}
			if verbose {
				cfg.Logger = log.New(cmd.ErrOrStderr(), "ristkey ", log.LstdFlags)
			}
			w, err := app.NewWire(cfg)
			if err != nil {
				return err
			}
			appCtx = w
			return nil
		},
	}

	root.PersistentFlags().StringVar(&home, "home", "", "config dir (default ~/.ristkey)")
	root.PersistentFlags().StringVarP(&passphrase, "passphrase", "p", "", "passphrase to protect keys")
	root.PersistentFlags().StringVar(&relayURL, "relay", "", "key directory base URL (e.g. http://127.0.0.1:8080)")
	root.PersistentFlags().StringVar(&apiKey, "api-key", "", "directory bearer token (default $"+httpclient.APIKeyEnv+")")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log HTTP attempts to stderr")

	root.AddCommand(
		initCmd(),
		pubkeyCmd(),
		fingerprintCmd(),
		deriveCmd(),
		decodeCmd(),
		registerCmd(),
		lookupCmd(),
	)
	return root
}

func requirePassphrase() error {
	if passphrase == "" {
		return fmt.Errorf("passphrase required (-p)")
	}
	return nil
}
