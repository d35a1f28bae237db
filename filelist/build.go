package filelist

import (
	"context"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/direct-connect/go-tiger/hashdb"
	"github.com/direct-connect/go-tiger/internal/workers"
)

// BuildOptions controls how a file list is built.
type BuildOptions struct {
	// Jobs is the number of files hashed in parallel. Defaults to the number of CPUs.
	Jobs int
	// Cache is consulted before hashing a file. Optional.
	Cache hashdb.Cache
	// Hidden includes files and directories with names starting with a dot.
	Hidden bool
	// Generator is written to the list header.
	Generator string
}

type hashTask struct {
	path string
	file *File
}

// Build walks the directory and creates a file list with hashes of all regular files in it.
// Entries are sorted by name.
func Build(ctx context.Context, root string, opts BuildOptions) (*FileList, error) {
	fi, err := os.Stat(root)
	if err != nil {
		return nil, err
	} else if !fi.IsDir() {
		return nil, errors.Errorf("%q is not a directory", root)
	}
	list := &FileList{
		Version:   Version,
		Base:      "/",
		Generator: opts.Generator,
	}
	list.Dirs, list.Files, err = readDir(root, opts.Hidden)
	if err != nil {
		return nil, err
	}
	// the tree is complete, so pointers to files stay valid
	var tasks []hashTask
	list.Walk(func(p string, f *File) error {
		tasks = append(tasks, hashTask{path: filepath.Join(root, filepath.FromSlash(p)), file: f})
		return nil
	})
	err = workers.Run(ctx, opts.Jobs, len(tasks), func(ctx context.Context, i int) error {
		t := tasks[i]
		h, size, err := hashdb.HashFile(ctx, opts.Cache, t.path)
		if err != nil {
			return err
		}
		t.file.TTH, t.file.Size = h, size
		return nil
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}

func readDir(dir string, hidden bool) ([]Dir, []File, error) {
	ents, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, err
	}
	var (
		dirs  []Dir
		files []File
	)
	for _, e := range ents {
		name := e.Name()
		if !hidden && strings.HasPrefix(name, ".") {
			continue
		}
		switch {
		case e.IsDir():
			sub, subFiles, err := readDir(filepath.Join(dir, name), hidden)
			if err != nil {
				return nil, nil, err
			}
			dirs = append(dirs, Dir{Name: name, Dirs: sub, Files: subFiles})
		case e.Type().IsRegular():
			files = append(files, File{Name: name})
		}
	}
	return dirs, files, nil
}

// Mismatch describes a file that differs from its file list entry.
type Mismatch struct {
	Path   string
	Reason string
}

const (
	ReasonMissing = "missing"
	ReasonSize    = "size"
	ReasonHash    = "hash"
)

// Verify checks files in the directory against the list.
// Mismatches are returned in the list order.
func (l *FileList) Verify(ctx context.Context, root string, jobs int) ([]Mismatch, error) {
	type entry struct {
		path string
		file File
	}
	var ents []entry
	l.Walk(func(p string, f *File) error {
		ents = append(ents, entry{path: p, file: *f})
		return nil
	})
	res := make([]string, len(ents))
	err := workers.Run(ctx, jobs, len(ents), func(ctx context.Context, i int) error {
		e := ents[i]
		fpath := filepath.Join(root, filepath.FromSlash(path.Clean("/" + e.path)))
		fi, err := os.Stat(fpath)
		if os.IsNotExist(err) {
			res[i] = ReasonMissing
			return nil
		} else if err != nil {
			return err
		} else if fi.Size() != e.file.Size {
			res[i] = ReasonSize
			return nil
		}
		h, _, err := hashdb.HashFile(ctx, nil, fpath)
		if err != nil {
			return err
		} else if h != e.file.TTH {
			res[i] = ReasonHash
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	var out []Mismatch
	for i, r := range res {
		if r != "" {
			out = append(out, Mismatch{Path: ents[i].path, Reason: r})
		}
	}
	return out, nil
}
