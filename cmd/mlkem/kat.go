package main

import (
	"bytes"
	"encoding/hex"
	"fmt"

	hpqcrand "github.com/katzenpost/hpqc/rand"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/sha3"

	"github.com/KarpelesLab/mlkem"
)

const flagCount = "count"

func newKATCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kat",
		Short: "Print deterministic known-answer digests",
		Long: `Run key generation, encapsulation and decapsulation from a
deterministic random stream and print one line per round:

  <round> <SHA3-256(pk)> <SHA3-256(sk)> <SHA3-256(ct)> <ss>

The same seed always produces the same output, so the digests can be
compared against other implementations.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			count, _ := cmd.Flags().GetInt(flagCount)
			seedHex, _ := cmd.Flags().GetString(flagSeed)
			seed, err := hex.DecodeString(seedHex)
			if err != nil {
				return fmt.Errorf("invalid seed: %w", err)
			}
			if count < 0 {
				return fmt.Errorf("invalid count %d", count)
			}
			rng, err := hpqcrand.NewDeterministicRandReader(seed)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for i := 0; i < count; i++ {
				pk, sk, err := mlkem.Keypair(rng)
				if err != nil {
					return err
				}
				ct, ss, err := mlkem.Encapsulate(rng, pk)
				if err != nil {
					return err
				}
				ss2, err := mlkem.Decapsulate(sk, ct)
				if err != nil {
					return err
				}
				if !bytes.Equal(ss, ss2) {
					return fmt.Errorf("round %d: decapsulated secret mismatch", i)
				}
				pkd, skd, ctd := sha3.Sum256(pk), sha3.Sum256(sk), sha3.Sum256(ct)
				fmt.Fprintf(out, "%d %x %x %x %x\n", i, pkd, skd, ctd, ss)
			}
			a.log.Infof("ran %d known-answer rounds", count)
			return nil
		},
	}
	cmd.Flags().Int(flagCount, 10, "number of rounds")
	cmd.Flags().String(flagSeed, hex.EncodeToString(make([]byte, 32)), "hex-encoded 32-byte stream key")
	return cmd
}
