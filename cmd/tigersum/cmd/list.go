package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/direct-connect/go-tiger/filelist"
	"github.com/direct-connect/go-tiger/version"
)

func openList(path string) (*filelist.FileList, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	if strings.HasSuffix(path, ".bz2") {
		return filelist.DecodeBZIP(f)
	}
	return filelist.Decode(f)
}

func init() {
	listCmd := &cobra.Command{
		Use:   "list dir",
		Short: "build a file list with Tiger Tree Hashes of all files in the directory",
	}
	flags := listCmd.Flags()
	fOut := flags.StringP("out", "o", "", "write the file list to a file instead of stdout")
	fJobs := flags.IntP("jobs", "j", 0, "number of files hashed in parallel (defaults to the number of CPUs)")
	fHidden := flags.Bool("hidden", false, "include hidden files")
	fDB := flags.String("db", "", dbFlagUsage)
	Root.AddCommand(listCmd)

	listCmd.RunE = func(cmd *cobra.Command, args []string) error {
		if len(args) != 1 {
			return errors.New("expected a directory")
		}
		db, err := openDB(*fDB)
		if err != nil {
			return err
		}
		defer closeDB(db)

		opts := filelist.BuildOptions{
			Jobs:      *fJobs,
			Hidden:    *fHidden,
			Generator: version.Name + " " + version.Vers,
		}
		if db != nil {
			opts.Cache = db
		}
		list, err := filelist.Build(context.Background(), args[0], opts)
		if err != nil {
			return err
		}
		log.Info("built file list",
			zap.String("dir", args[0]),
			zap.Int64("size", list.Size()),
		)
		if *fOut == "" {
			return filelist.Encode(cmd.OutOrStdout(), list)
		}
		f, err := os.Create(*fOut)
		if err != nil {
			return err
		}
		if err = filelist.Encode(f, list); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	}

	verifyCmd := &cobra.Command{
		Use:   "verify files.xml[.bz2] dir",
		Short: "verify files in the directory against the file list",
	}
	vflags := verifyCmd.Flags()
	fVJobs := vflags.IntP("jobs", "j", 0, "number of files hashed in parallel (defaults to the number of CPUs)")
	Root.AddCommand(verifyCmd)

	verifyCmd.RunE = func(cmd *cobra.Command, args []string) error {
		if len(args) != 2 {
			return errors.New("expected a file list and a directory")
		}
		list, err := openList(args[0])
		if err != nil {
			return err
		}
		bad, err := list.Verify(context.Background(), args[1], *fVJobs)
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		for _, m := range bad {
			fmt.Fprintf(w, "%s: %s\n", m.Path, m.Reason)
		}
		if len(bad) != 0 {
			return errors.Errorf("%d files do not match the list", len(bad))
		}
		fmt.Fprintln(w, "OK")
		return nil
	}
}
