package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func resetFlags(c *cobra.Command) {
	c.Flags().VisitAll(func(f *pflag.Flag) {
		f.Value.Set(f.DefValue)
		f.Changed = false
	})
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func run(t *testing.T, args ...string) (string, error) {
	resetFlags(Root)
	var buf bytes.Buffer
	Root.SetOutput(&buf)
	Root.SetArgs(args)
	err := Root.Execute()
	return buf.String(), err
}

func writeFile(t *testing.T, path, data string) {
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))
}

func TestSumCheck(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.txt")
	b := filepath.Join(dir, "b.txt")
	writeFile(t, a, "abc")
	writeFile(t, b, "")

	out, err := run(t, "sum", "-a", "tiger", "-j", "2", a, b)
	require.NoError(t, err)
	require.Equal(t, ""+
		"2aab1484e8c158f2bfb8c5ff41b57a525129131c957b5f93  "+a+"\n"+
		"3293ac630c13f0245f92bbb1766e16167a4e58492dde73f3  "+b+"\n",
		out)

	sums := filepath.Join(dir, "sums.txt")
	writeFile(t, sums, out)

	out, err = run(t, "check", "-a", "tiger", sums)
	require.NoError(t, err)
	require.Equal(t, a+": OK\n"+b+": OK\n", out)

	writeFile(t, a, "abd")
	out, err = run(t, "check", "-a", "tiger", sums)
	require.Error(t, err)
	require.Equal(t, a+": FAILED\n"+b+": OK\n", out)

	require.NoError(t, os.Remove(b))
	out, err = run(t, "check", "-a", "tiger", sums)
	require.Error(t, err)
	require.Contains(t, err.Error(), "2 of 2")
	require.Equal(t, a+": FAILED\n"+b+": FAILED\n", out)
}

func TestSumTTH(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.txt")
	writeFile(t, a, "abc")

	out, err := run(t, "sum", a)
	require.NoError(t, err)
	require.Equal(t, "ASD4UJSEH5M47PDYB46KBTSQTSGDKLBHYXOMUIA  "+a+"\n", out)

	out, err = run(t, "sum", "--db", "mem:", a)
	require.NoError(t, err)
	require.Equal(t, "ASD4UJSEH5M47PDYB46KBTSQTSGDKLBHYXOMUIA  "+a+"\n", out)

	_, err = run(t, "sum", "-a", "tiger", "--db", "mem:", a)
	require.Error(t, err)

	_, err = run(t, "sum", "--db", "mem", a)
	require.Error(t, err)
}

func TestSumStdin(t *testing.T) {
	old := stdin
	defer func() { stdin = old }()

	stdin = strings.NewReader("abc")
	out, err := run(t, "sum", "-a", "tiger2")
	require.NoError(t, err)
	require.Equal(t, "f68d7bc5af4b43a06e048d7829560d4a9415658bb0b1f3bf  -\n", out)
}

func TestSumStdinTwice(t *testing.T) {
	old := stdin
	defer func() { stdin = old }()

	stdin = strings.NewReader("abc")
	out, err := run(t, "sum", "-a", "tiger", "-", "-")
	require.Error(t, err)
	require.Empty(t, out)
}

func TestServeFlagsBound(t *testing.T) {
	resetFlags(Root)
	serve, _, err := Root.Find([]string{"serve"})
	require.NoError(t, err)
	defer resetFlags(Root)

	require.NoError(t, serve.Flags().Set("port", "9001"))
	require.NoError(t, serve.Flags().Set("max-body", "1024"))
	require.Equal(t, 9001, viper.GetInt("serve.port"))
	require.Equal(t, int64(1024), viper.GetInt64("serve.max_body"))

	require.NotPanics(t, func() {
		mustBind("serve.host", serve.Flags().Lookup("host"))
	})
	require.Panics(t, func() {
		mustBind("serve.host", nil)
	})
}

func TestSumErrors(t *testing.T) {
	_, err := run(t, "sum", "-a", "md5", "-")
	require.Error(t, err)

	_, err = run(t, "sum", filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
}

func TestListVerify(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "top.txt"), "top")
	writeFile(t, filepath.Join(dir, "share", "abc.txt"), "abc")
	writeFile(t, filepath.Join(dir, ".hidden"), "secret")

	list := filepath.Join(t.TempDir(), "files.xml")
	_, err := run(t, "list", "-o", list, dir)
	require.NoError(t, err)

	data, err := os.ReadFile(list)
	require.NoError(t, err)
	require.Contains(t, string(data), `TTH="ASD4UJSEH5M47PDYB46KBTSQTSGDKLBHYXOMUIA"`)
	require.NotContains(t, string(data), ".hidden")

	out, err := run(t, "verify", list, dir)
	require.NoError(t, err)
	require.Equal(t, "OK\n", out)

	writeFile(t, filepath.Join(dir, "share", "abc.txt"), "abd")
	require.NoError(t, os.Remove(filepath.Join(dir, "top.txt")))
	out, err = run(t, "verify", list, dir)
	require.Error(t, err)
	require.Equal(t, "top.txt: missing\nshare/abc.txt: hash\n", out)
}

func TestListStdout(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "abc.txt"), "abc")

	out, err := run(t, "list", dir)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "<?xml"))
	require.Contains(t, out, `<File Name="abc.txt" Size="3" TTH="ASD4UJSEH5M47PDYB46KBTSQTSGDKLBHYXOMUIA"></File>`)
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	require.Contains(t, out, Version)
}
