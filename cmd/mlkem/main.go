// Command mlkem generates ML-KEM-768 keys, encapsulates and decapsulates
// shared secrets, and seals files to a public key.
package main

import (
	"context"
	"os"

	"github.com/carlmjohnson/versioninfo"
	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
	"gopkg.in/op/go-logging.v1"

	"github.com/KarpelesLab/mlkem/internal/log"
)

const (
	flagConfig   = "config"
	flagLogLevel = "log-level"
	flagLogFile  = "log-file"

	publicKeyFile  = "mlkem768.public.pem"
	privateKeyFile = "mlkem768.private.pem"
)

// app carries the state shared by all subcommands once the configuration
// and logging have been set up.
type app struct {
	cfg        *Config
	logBackend *log.Backend
	log        *logging.Logger
}

func (a *app) setup(cmd *cobra.Command) error {
	configFile, _ := cmd.Flags().GetString(flagConfig)
	cfg, err := LoadFile(configFile)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed(flagLogLevel) {
		cfg.Logging.Level, _ = cmd.Flags().GetString(flagLogLevel)
	}
	if cmd.Flags().Changed(flagLogFile) {
		cfg.Logging.File, _ = cmd.Flags().GetString(flagLogFile)
	}
	if err := cfg.FixupAndValidate(); err != nil {
		return err
	}

	a.cfg = cfg
	a.logBackend, err = log.New(cfg.Logging.File, cfg.Logging.Level, cfg.Logging.Disable)
	if err != nil {
		return err
	}
	a.log = a.logBackend.GetLogger("mlkem")
	a.log.Debugf("configuration loaded from %q", configFile)
	return nil
}

func (a *app) teardown() error {
	if a.logBackend == nil {
		return nil
	}
	return a.logBackend.Close()
}

// newRootCommand creates the root cobra command and all subcommands.
func newRootCommand() *cobra.Command {
	a := new(app)

	cmd := &cobra.Command{
		Use:   "mlkem",
		Short: "ML-KEM-768 key encapsulation tool",
		Long: `A tool for the ML-KEM-768 post-quantum key encapsulation mechanism.

Keys are stored as PEM files. Shared secrets and ciphertexts are raw binary.
The seal and open commands encrypt whole files to a public key.`,
		Example: `  # Generate a key pair in the current directory
  mlkem genkey --out-dir .

  # Encrypt a file to the public key and decrypt it again
  mlkem seal --public-key mlkem768.public.pem --in msg.txt --out msg.sealed
  mlkem open --private-key mlkem768.private.pem --in msg.sealed --out msg.txt`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.teardown()
		},
	}

	cmd.PersistentFlags().StringP(flagConfig, "c", "", "path to TOML configuration file")
	cmd.PersistentFlags().String(flagLogLevel, defaultLogLevel, "logging level (ERROR, WARNING, NOTICE, INFO, DEBUG)")
	cmd.PersistentFlags().String(flagLogFile, "", "log file, stderr if empty")

	cmd.AddCommand(
		newGenkeyCommand(a),
		newEncapsulateCommand(a),
		newDecapsulateCommand(a),
		newSealCommand(a),
		newOpenCommand(a),
		newKATCommand(a),
	)
	return cmd
}

func main() {
	rootCmd := newRootCommand()

	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(versioninfo.Short()),
	); err != nil {
		os.Exit(1)
	}
}
