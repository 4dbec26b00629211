package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/katzenpost/hpqc/kem"
	kempem "github.com/katzenpost/hpqc/kem/pem"
	"github.com/katzenpost/hpqc/rand"
	"github.com/spf13/cobra"

	"github.com/KarpelesLab/mlkem"
	mlkemhpqc "github.com/KarpelesLab/mlkem/hpqc"
)

// Flag name constants to avoid duplication
const (
	flagOutDir        = "out-dir"
	flagSeed          = "seed"
	flagPublicKey     = "public-key"
	flagPrivateKey    = "private-key"
	flagCiphertext    = "ciphertext"
	flagOutCiphertext = "out-ciphertext"
	flagOutSecret     = "out-secret"
)

var errKeyExists = errors.New("refusing to overwrite existing key file")

func newGenkeyCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "genkey",
		Short: "Generate an ML-KEM-768 key pair",
		Long: `Generate an ML-KEM-768 key pair and write it as
mlkem768.public.pem and mlkem768.private.pem in the output directory.

With --seed the key pair is derived from the given 64-byte d || z seed
instead of fresh randomness.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			outDir, _ := cmd.Flags().GetString(flagOutDir)
			seedHex, _ := cmd.Flags().GetString(flagSeed)
			return a.genkey(cmd, outDir, seedHex)
		},
	}
	cmd.Flags().String(flagOutDir, ".", "directory to write the key files to")
	cmd.Flags().String(flagSeed, "", "hex-encoded 64-byte seed for deterministic generation")
	return cmd
}

func (a *app) genkey(cmd *cobra.Command, outDir, seedHex string) error {
	pubout := filepath.Join(outDir, publicKeyFile)
	privout := filepath.Join(outDir, privateKeyFile)
	for _, f := range []string{pubout, privout} {
		if _, err := os.Stat(f); err == nil {
			return fmt.Errorf("%w: %s", errKeyExists, f)
		}
	}

	scheme := mlkemhpqc.Scheme()
	var (
		pubkey  kem.PublicKey
		privkey kem.PrivateKey
	)
	if seedHex != "" {
		seed, err := hex.DecodeString(seedHex)
		if err != nil {
			return fmt.Errorf("invalid seed: %w", err)
		}
		if len(seed) != scheme.SeedSize() {
			return fmt.Errorf("invalid seed: %d bytes, want %d", len(seed), scheme.SeedSize())
		}
		a.log.Info("deriving key pair from seed")
		pubkey, privkey = scheme.DeriveKeyPair(seed)
	} else {
		var err error
		pubkey, privkey, err = scheme.GenerateKeyPair()
		if err != nil {
			return err
		}
	}

	if err := kempem.PublicKeyToFile(pubout, pubkey); err != nil {
		return err
	}
	if err := kempem.PrivateKeyToFile(privout, privkey); err != nil {
		return err
	}
	a.log.Noticef("wrote key pair to %s and %s", pubout, privout)
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s and %s\n", pubout, privout)
	return nil
}

func loadPublicKey(path string) (*mlkem.PublicKey768, error) {
	pk, err := kempem.FromPublicPEMFile(path, mlkemhpqc.Scheme())
	if err != nil {
		return nil, err
	}
	return pk.(*mlkemhpqc.PublicKey).Key(), nil
}

func loadPrivateKey(path string) (*mlkem.PrivateKey768, error) {
	sk, err := kempem.FromPrivatePEMFile(path, mlkemhpqc.Scheme())
	if err != nil {
		return nil, err
	}
	return sk.(*mlkemhpqc.PrivateKey).Key(), nil
}

func newEncapsulateCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encapsulate",
		Short: "Encapsulate a fresh shared secret to a public key",
		RunE: func(cmd *cobra.Command, args []string) error {
			pkFile, _ := cmd.Flags().GetString(flagPublicKey)
			ctFile, _ := cmd.Flags().GetString(flagOutCiphertext)
			ssFile, _ := cmd.Flags().GetString(flagOutSecret)

			pk, err := loadPublicKey(pkFile)
			if err != nil {
				return err
			}
			ct, ss, err := pk.Encapsulate(rand.Reader)
			if err != nil {
				return err
			}
			if err := os.WriteFile(ctFile, ct, 0600); err != nil {
				return err
			}
			if err := os.WriteFile(ssFile, ss, 0600); err != nil {
				return err
			}
			a.log.Noticef("encapsulated to %s: ciphertext %s, secret %s", pkFile, ctFile, ssFile)
			return nil
		},
	}
	cmd.Flags().String(flagPublicKey, publicKeyFile, "recipient public key PEM file")
	cmd.Flags().String(flagOutCiphertext, "mlkem768.ct", "ciphertext output file")
	cmd.Flags().String(flagOutSecret, "mlkem768.ss", "shared secret output file")
	return cmd
}

func newDecapsulateCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decapsulate",
		Short: "Recover the shared secret from a ciphertext",
		Long: `Recover the shared secret from a ciphertext with a private key.

A ciphertext that was not produced for this key still yields a secret,
just not the sender's: check it with a key confirmation step.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			skFile, _ := cmd.Flags().GetString(flagPrivateKey)
			ctFile, _ := cmd.Flags().GetString(flagCiphertext)
			ssFile, _ := cmd.Flags().GetString(flagOutSecret)

			sk, err := loadPrivateKey(skFile)
			if err != nil {
				return err
			}
			ct, err := os.ReadFile(ctFile)
			if err != nil {
				return err
			}
			ss, err := sk.Decapsulate(ct)
			if err != nil {
				return err
			}
			if err := os.WriteFile(ssFile, ss, 0600); err != nil {
				return err
			}
			a.log.Noticef("decapsulated %s into %s", ctFile, ssFile)
			return nil
		},
	}
	cmd.Flags().String(flagPrivateKey, privateKeyFile, "private key PEM file")
	cmd.Flags().String(flagCiphertext, "mlkem768.ct", "ciphertext input file")
	cmd.Flags().String(flagOutSecret, "mlkem768.ss", "shared secret output file")
	return cmd
}
