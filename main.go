package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"playfair-backend/config"
	"playfair-backend/logging"
)

var version = "dev" // set by the linker

func main() {
	if err := newRootCmd().Execute(); err != nil {
		// Cobra already printed the error.
		os.Exit(1)
	}
}

// app carries state shared by every subcommand once PersistentPreRunE has run.
type app struct {
	v       *viper.Viper
	cfgPath string
	cfg     *config.Config
	log     *logrus.Logger

	// closes the log file, if any
	closeLog func() error
}

// newRootCmd builds a fresh command tree, so tests can run commands in
// isolation.
func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	cmd := &cobra.Command{
		Use:   "playfair",
		Short: "Playfair cipher CLI and HTTP API.",
		Long: `playfair enciphers and deciphers text with the classical Playfair cipher.

Run "playfair serve" to expose the same operations over HTTP.`,
		Version:       version,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.v, a.cfgPath)
			if err != nil {
				return err
			}
			log, closeLog, err := logging.New(cfg)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.log = log
			a.closeLog = closeLog
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.closeLog == nil {
				return nil
			}
			return a.closeLog()
		},
	}

	cmd.PersistentFlags().StringVar(&a.cfgPath, "config", ".", "directory holding config.yaml, or a yaml file")
	cmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	_ = a.v.BindPFlag("log.level", cmd.PersistentFlags().Lookup("log-level"))

	cmd.AddCommand(
		newServeCmd(a),
		newCipherCmd(a, "encrypt"),
		newCipherCmd(a, "decrypt"),
		newSquareCmd(a),
	)

	return cmd
}
