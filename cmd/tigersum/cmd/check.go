package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type sumLine struct {
	sum  string
	path string
}

// readSums parses lines written by the sum command. Empty lines are skipped.
func readSums(r io.Reader) ([]sumLine, error) {
	var out []sumLine
	sc := bufio.NewScanner(r)
	for n := 1; sc.Scan(); n++ {
		line := strings.TrimRight(sc.Text(), "\r")
		if line == "" {
			continue
		}
		i := strings.Index(line, "  ")
		if i <= 0 || i+2 >= len(line) {
			return nil, errors.Errorf("line %d: expected \"<hash>  <path>\"", n)
		}
		out = append(out, sumLine{sum: line[:i], path: line[i+2:]})
	}
	return out, sc.Err()
}

func init() {
	checkCmd := &cobra.Command{
		Use:   "check sums.txt",
		Short: "verify files against hashes printed by the sum command",
	}
	flags := checkCmd.Flags()
	fAlgo := flags.StringP("algo", "a", algoTTH, "hash algorithm: tiger, tiger2 or tth")
	Root.AddCommand(checkCmd)

	checkCmd.RunE = func(cmd *cobra.Command, args []string) error {
		if len(args) != 1 {
			return errors.New("expected a file with hashes")
		}
		r := stdin
		if args[0] != stdinName {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			r = f
		}
		lines, err := readSums(r)
		if err != nil {
			return errors.Wrapf(err, "cannot read %q", args[0])
		}
		s, err := newSummer(*fAlgo, nil, nil)
		if err != nil {
			return err
		}
		ctx := context.Background()
		w := cmd.OutOrStdout()
		failed := 0
		for _, l := range lines {
			sum, err := s.Sum(ctx, l.path)
			if err != nil {
				log.Warn("cannot hash file", zap.String("path", l.path), zap.Error(err))
			}
			if err != nil || !strings.EqualFold(sum, l.sum) {
				failed++
				fmt.Fprintf(w, "%s: FAILED\n", l.path)
				continue
			}
			fmt.Fprintf(w, "%s: OK\n", l.path)
		}
		if failed != 0 {
			return errors.Errorf("%d of %d computed checksums did NOT match", failed, len(lines))
		}
		return nil
	}
}
