package filelist

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/direct-connect/go-tiger"
	"github.com/direct-connect/go-tiger/hashdb"
)

const (
	tthABC   = "ASD4UJSEH5M47PDYB46KBTSQTSGDKLBHYXOMUIA"
	tthEmpty = "LWPNACQDBZRYXW3VHJVCJ64QBZNGHOHHHZWCLNQ"
)

func TestDecodeBZIP(t *testing.T) {
	f, err := os.Open("testdata/files.xml.bz2")
	require.NoError(t, err)
	defer f.Close()

	list, err := DecodeBZIP(f)
	require.NoError(t, err)
	require.Equal(t, 1, list.Version)
	require.Equal(t, "DC++ 0.868", list.Generator)
	require.Equal(t, "SKRVMYGI5GFV5Z7FSSCTQSR6LKMXYZF7NGWJZNA", list.CID)

	var paths []string
	err = list.Walk(func(path string, f *File) error {
		paths = append(paths, path)
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, []string{"top.txt", "share/abc.txt", "share/empty/zero.bin"}, paths)

	require.Equal(t, tiger.MustParseBase32(tthABC), list.Files[0].TTH)
	require.Equal(t, tiger.MustParseBase32(tthEmpty), list.Dirs[0].Dirs[0].Files[0].TTH)
	require.Equal(t, int64(6), list.Size())
}

func TestDecodeInvalid(t *testing.T) {
	_, err := Decode(bytes.NewReader([]byte(`<FileListing><File TTH="bad"/></FileListing>`)))
	require.Error(t, err)
}

func writeTree(t *testing.T, files map[string]string) string {
	root := t.TempDir()
	for name, data := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(data), 0644))
	}
	return root
}

func TestBuild(t *testing.T) {
	root := writeTree(t, map[string]string{
		"top.txt":              "abc",
		"share/abc.txt":        "abc",
		"share/empty/zero.bin": "",
		".hidden":              "secret",
		"share/.git/config":    "secret",
	})

	cache := hashdb.NewMemory()
	list, err := Build(context.Background(), root, BuildOptions{Jobs: 2, Cache: cache, Generator: "test"})
	require.NoError(t, err)
	require.Equal(t, Version, list.Version)
	require.Equal(t, "test", list.Generator)

	hashes := make(map[string]string)
	list.Walk(func(path string, f *File) error {
		hashes[path] = f.TTH.Base32()
		return nil
	})
	require.Equal(t, map[string]string{
		"top.txt":              tthABC,
		"share/abc.txt":        tthABC,
		"share/empty/zero.bin": tthEmpty,
	}, hashes)
	require.Equal(t, 3, cache.Len())
	require.Equal(t, int64(6), list.Size())

	list, err = Build(context.Background(), root, BuildOptions{Hidden: true})
	require.NoError(t, err)
	n := 0
	list.Walk(func(string, *File) error { n++; return nil })
	require.Equal(t, 5, n)
}

func TestBuildNotDir(t *testing.T) {
	root := writeTree(t, map[string]string{"file": "x"})
	_, err := Build(context.Background(), filepath.Join(root, "file"), BuildOptions{})
	require.Error(t, err)
	_, err = Build(context.Background(), filepath.Join(root, "missing"), BuildOptions{})
	require.Error(t, err)
}

func TestEncode(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a/b/c.txt": "abc",
		"d.txt":     "",
	})
	list, err := Build(context.Background(), root, BuildOptions{Generator: "test"})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, list))
	require.Contains(t, buf.String(), `<File Name="c.txt" Size="3" TTH="`+tthABC+`">`)

	got, err := Decode(&buf)
	require.NoError(t, err)
	require.Equal(t, list.Files, got.Files)
	require.Equal(t, list.Dirs, got.Dirs)
	require.Equal(t, list.Generator, got.Generator)
}

func TestVerify(t *testing.T) {
	root := writeTree(t, map[string]string{
		"same.txt":      "abc",
		"sub/hash.txt":  "abc",
		"sub/size.txt":  "abc",
		"sub/gone.txt":  "abc",
		"sub/empty.txt": "",
	})
	ctx := context.Background()
	list, err := Build(ctx, root, BuildOptions{})
	require.NoError(t, err)

	bad, err := list.Verify(ctx, root, 2)
	require.NoError(t, err)
	require.Empty(t, bad)

	require.NoError(t, os.WriteFile(filepath.Join(root, "sub/hash.txt"), []byte("abd"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "sub/size.txt"), []byte("abcd"), 0644))
	require.NoError(t, os.Remove(filepath.Join(root, "sub/gone.txt")))

	bad, err = list.Verify(ctx, root, 2)
	require.NoError(t, err)
	require.Equal(t, []Mismatch{
		{Path: "sub/gone.txt", Reason: ReasonMissing},
		{Path: "sub/hash.txt", Reason: ReasonHash},
		{Path: "sub/size.txt", Reason: ReasonSize},
	}, bad)
}

func TestBuildCacheMiss(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	root := writeTree(t, map[string]string{"abc.txt": "abc"})
	path := filepath.Join(root, "abc.txt")
	exp := tiger.MustParseBase32(tthABC)

	cache := hashdb.NewMockCache(ctrl)
	gomock.InOrder(
		cache.EXPECT().Lookup(gomock.Any(), gomock.Any()).Return(tiger.Hash{}, false, nil),
		cache.EXPECT().Store(gomock.Any(), gomock.Any(), exp).
			Do(func(_ context.Context, k hashdb.FileKey, _ tiger.Hash) {
				require.Equal(t, path, k.Path)
				require.Equal(t, int64(3), k.Size)
			}).Return(nil),
	)

	list, err := Build(context.Background(), root, BuildOptions{Jobs: 1, Cache: cache})
	require.NoError(t, err)
	require.Equal(t, []File{{Name: "abc.txt", Size: 3, TTH: exp}}, list.Files)
}

func TestBuildCacheHit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	root := writeTree(t, map[string]string{"abc.txt": "abc"})
	cached := tiger.HashBytes([]byte("cached"))

	cache := hashdb.NewMockCache(ctrl)
	cache.EXPECT().Lookup(gomock.Any(), gomock.Any()).Return(cached, true, nil)

	list, err := Build(context.Background(), root, BuildOptions{Jobs: 1, Cache: cache})
	require.NoError(t, err)
	require.Equal(t, []File{{Name: "abc.txt", Size: 3, TTH: cached}}, list.Files)
}

func TestBuildCacheError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	root := writeTree(t, map[string]string{"abc.txt": "abc"})

	cache := hashdb.NewMockCache(ctrl)
	cache.EXPECT().Lookup(gomock.Any(), gomock.Any()).Return(tiger.Hash{}, false, errors.New("broken"))

	_, err := Build(context.Background(), root, BuildOptions{Jobs: 1, Cache: cache})
	require.Error(t, err)
}
