package cmd

import (
	"context"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/direct-connect/go-tiger"
	"github.com/direct-connect/go-tiger/hashdb"
	"github.com/direct-connect/go-tiger/internal/workers"
)

const (
	algoTiger  = "tiger"
	algoTiger2 = "tiger2"
	algoTTH    = "tth"
)

// stdinName is the file name that reads the standard input.
const stdinName = "-"

var stdin io.Reader = os.Stdin

type summer struct {
	algo  string
	cache hashdb.Cache
	stdin io.Reader
}

func newSummer(algo string, cache hashdb.Cache, stdin io.Reader) (*summer, error) {
	switch algo {
	case algoTiger, algoTiger2:
		if cache != nil {
			return nil, errors.Errorf("hash cache is only supported for %s", algoTTH)
		}
	case algoTTH:
	default:
		return nil, errors.Errorf("unsupported algorithm: %q", algo)
	}
	return &summer{algo: algo, cache: cache, stdin: stdin}, nil
}

func (s *summer) newDigest() hash.Hash {
	if s.algo == algoTiger2 {
		return tiger.New2()
	}
	return tiger.New()
}

func (s *summer) sumReader(r io.Reader) (string, error) {
	if s.algo == algoTTH {
		h, err := tiger.TreeHash(r)
		if err != nil {
			return "", err
		}
		return h.Base32(), nil
	}
	h := s.newDigest()
	if _, err := io.Copy(h, r); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Sum returns an encoded hash of the file: hex for Tiger digests, base32 for TTH.
func (s *summer) Sum(ctx context.Context, path string) (string, error) {
	if path == stdinName {
		if s.stdin == nil {
			return "", errors.New("standard input is not available")
		}
		return s.sumReader(s.stdin)
	}
	if s.algo == algoTTH {
		h, _, err := hashdb.HashFile(ctx, s.cache, path)
		if err != nil {
			return "", err
		}
		return h.Base32(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	return s.sumReader(f)
}

func init() {
	sumCmd := &cobra.Command{
		Use:   "sum [files...]",
		Short: "print Tiger hashes of files",
		Long:  "Prints hashes of files in the \"<hash>  <path>\" format. File \"-\" or no files read the standard input.",
	}
	flags := sumCmd.Flags()
	fAlgo := flags.StringP("algo", "a", algoTTH, "hash algorithm: tiger, tiger2 or tth")
	fJobs := flags.IntP("jobs", "j", 0, "number of files hashed in parallel (defaults to the number of CPUs)")
	fDB := flags.String("db", "", dbFlagUsage)
	Root.AddCommand(sumCmd)

	sumCmd.RunE = func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			args = []string{stdinName}
		}
		stdinUsed := false
		for _, name := range args {
			if name != stdinName {
				continue
			} else if stdinUsed {
				return errors.New("standard input can only be hashed once")
			}
			stdinUsed = true
		}
		var cache hashdb.Cache
		if *fAlgo == algoTTH {
			db, err := openDB(*fDB)
			if err != nil {
				return err
			}
			defer closeDB(db)
			if db != nil {
				cache = db
			}
		} else if *fDB != "" {
			return errors.Errorf("hash cache is only supported for %s", algoTTH)
		}
		s, err := newSummer(*fAlgo, cache, stdin)
		if err != nil {
			return err
		}
		sums := make([]string, len(args))
		err = workers.Run(context.Background(), *fJobs, len(args), func(ctx context.Context, i int) error {
			sum, err := s.Sum(ctx, args[i])
			if err != nil {
				return errors.Wrapf(err, "cannot hash %q", args[i])
			}
			log.Debug("hashed", zap.String("path", args[i]), zap.String("algo", *fAlgo))
			sums[i] = sum
			return nil
		})
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		for i, sum := range sums {
			fmt.Fprintf(w, "%s  %s\n", sum, args[i])
		}
		return nil
	}
}
