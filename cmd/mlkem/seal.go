package main

import (
	"os"

	"github.com/katzenpost/hpqc/rand"
	"github.com/spf13/cobra"

	"github.com/KarpelesLab/mlkem/seal"
)

const (
	flagIn    = "in"
	flagOut   = "out"
	flagAAD   = "aad"
	flagSuite = "suite"
)

func newSealCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seal",
		Short: "Encrypt a file to a public key",
		RunE: func(cmd *cobra.Command, args []string) error {
			pkFile, _ := cmd.Flags().GetString(flagPublicKey)
			in, _ := cmd.Flags().GetString(flagIn)
			out, _ := cmd.Flags().GetString(flagOut)
			aad, _ := cmd.Flags().GetString(flagAAD)

			suiteName := a.cfg.Seal.Suite
			if cmd.Flags().Changed(flagSuite) {
				suiteName, _ = cmd.Flags().GetString(flagSuite)
			}
			suite, err := seal.ParseSuite(suiteName)
			if err != nil {
				return err
			}

			pk, err := loadPublicKey(pkFile)
			if err != nil {
				return err
			}
			plaintext, err := os.ReadFile(in)
			if err != nil {
				return err
			}
			sealed, err := seal.Seal(rand.Reader, pk, plaintext, []byte(aad), seal.WithSuite(suite))
			if err != nil {
				return err
			}
			if err := os.WriteFile(out, sealed, 0600); err != nil {
				return err
			}
			a.log.Noticef("sealed %s (%d bytes) to %s with %v", in, len(plaintext), out, suite)
			return nil
		},
	}
	cmd.Flags().String(flagPublicKey, publicKeyFile, "recipient public key PEM file")
	cmd.Flags().String(flagIn, "", "plaintext input file")
	cmd.Flags().String(flagOut, "", "sealed output file")
	cmd.Flags().String(flagAAD, "", "additional authenticated data")
	cmd.Flags().String(flagSuite, defaultSuite, "payload AEAD (aes-256-gcm, chacha20-poly1305)")
	cmd.MarkFlagRequired(flagIn)
	cmd.MarkFlagRequired(flagOut)
	return cmd
}

func newOpenCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "open",
		Short: "Decrypt a file sealed to a private key",
		RunE: func(cmd *cobra.Command, args []string) error {
			skFile, _ := cmd.Flags().GetString(flagPrivateKey)
			in, _ := cmd.Flags().GetString(flagIn)
			out, _ := cmd.Flags().GetString(flagOut)
			aad, _ := cmd.Flags().GetString(flagAAD)

			sk, err := loadPrivateKey(skFile)
			if err != nil {
				return err
			}
			sealed, err := os.ReadFile(in)
			if err != nil {
				return err
			}
			plaintext, err := seal.Open(sk, sealed, []byte(aad))
			if err != nil {
				a.log.Warningf("failed to open %s: %v", in, err)
				return err
			}
			if err := os.WriteFile(out, plaintext, 0600); err != nil {
				return err
			}
			a.log.Noticef("opened %s into %s", in, out)
			return nil
		},
	}
	cmd.Flags().String(flagPrivateKey, privateKeyFile, "private key PEM file")
	cmd.Flags().String(flagIn, "", "sealed input file")
	cmd.Flags().String(flagOut, "", "plaintext output file")
	cmd.Flags().String(flagAAD, "", "additional authenticated data")
	cmd.MarkFlagRequired(flagIn)
	cmd.MarkFlagRequired(flagOut)
	return cmd
}
