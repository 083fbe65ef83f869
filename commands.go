package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"playfair-backend/crypto"
	"playfair-backend/server"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a.log.Infof("API endpoints:")
			a.log.Infof("  POST /api/v1/cipher/encrypt - Encrypt a message")
			a.log.Infof("  POST /api/v1/cipher/decrypt - Decrypt a message")
			a.log.Infof("  POST /api/v1/cipher/square  - Show the key square for a key")
			a.log.Infof("  GET  /api/v1/health         - Health check")

			return server.New(a.cfg, a.log).Run(ctx)
		},
	}
}

// newCipherCmd builds the encrypt or decrypt subcommand. The message is the
// positional arguments joined by spaces; non-letters are stripped.
func newCipherCmd(a *app, name string) *cobra.Command {
	var key, padding string

	cmd := &cobra.Command{
		Use:   name + " --key KEY MESSAGE...",
		Short: strings.ToUpper(name[:1]) + name[1:] + " a message",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := crypto.ValidateKey(key); err != nil {
				return fmt.Errorf("invalid key: %w", err)
			}

			text := crypto.Sanitize(strings.Join(args, " "))
			if err := crypto.ValidateMessage(text); err != nil {
				return fmt.Errorf("invalid message: %w", err)
			}

			if padding == "" {
				padding = a.cfg.Cipher.Padding
			}
			p, err := crypto.ParsePadding(padding)
			if err != nil {
				return err
			}

			pf := crypto.NewPlayfair(crypto.Sanitize(key), crypto.WithPadding(p))
			var result string
			if name == "decrypt" {
				result, err = pf.Decrypt(text)
			} else {
				result, err = pf.Encrypt(text)
			}
			if err != nil {
				return err
			}

			a.log.WithField("pairs", len(pf.Digraphs(text))).Debugf("%s done", name)
			_, err = fmt.Fprintln(cmd.OutOrStdout(), result)
			return err
		},
	}

	cmd.Flags().StringVarP(&key, "key", "k", "", "cipher key")
	cmd.Flags().StringVar(&padding, "padding", "", "padding mode: compat or standard (default from config)")
	_ = cmd.MarkFlagRequired("key")

	return cmd
}

type squareOutput struct {
	Key  string   `yaml:"key"`
	Rows []string `yaml:"rows"`
}

func newSquareCmd(a *app) *cobra.Command {
	var key, output string

	cmd := &cobra.Command{
		Use:   "square --key KEY",
		Short: "Print the key square derived from a key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := crypto.ValidateKey(key); err != nil {
				return fmt.Errorf("invalid key: %w", err)
			}
			sq := crypto.NewKeySquare(crypto.Sanitize(key))

			switch output {
			case "text":
				_, err := fmt.Fprintln(cmd.OutOrStdout(), sq.String())
				return err
			case "yaml":
				enc := yaml.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent(2)
				if err := enc.Encode(squareOutput{Key: key, Rows: sq.Rows()}); err != nil {
					return fmt.Errorf("failed to encode square: %w", err)
				}
				return enc.Close()
			default:
				return fmt.Errorf("unknown output format %q", output)
			}
		},
	}

	cmd.Flags().StringVarP(&key, "key", "k", "", "cipher key")
	cmd.Flags().StringVarP(&output, "output", "o", "text", "output format: text or yaml")
	_ = cmd.MarkFlagRequired("key")

	return cmd
}
