package tiger_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/require"

	"github.com/direct-connect/go-tiger"
)

var tthCases = []struct {
	data []byte
	hash string
}{
	{
		[]byte{},
		`LWPNACQDBZRYXW3VHJVCJ64QBZNGHOHHHZWCLNQ`,
	},
	{
		bytes.Repeat([]byte{'a'}, 1),
		`CZQUWH3IYXBF5L3BGYUGZHASSMXU647IP2IKE4Y`,
	},
	{
		bytes.Repeat([]byte{'a'}, 5),
		`ELXBTR33AWAAEKEVWRXEQ3446IL7KGCTXMWA4AA`,
	},
	{
		bytes.Repeat([]byte{'a'}, 24),
		`K56WCQPI62DYXXDY4AZ7LRUFDQOTIZRAPEKRTRI`,
	},
	{
		bytes.Repeat([]byte{'a'}, 25),
		`BNCXPH7SJ5Z4HTKEYMJXFL7QJUXLZFZM4JDRQYY`,
	},
	{
		bytes.Repeat([]byte{'a'}, 64),
		`LKOML52BOHG43N2P5MNZ3BDIAKNYO3C22WQMJGI`,
	},
	{
		bytes.Repeat([]byte{'a'}, 100),
		`MI3GUSIV63KCZS4IL3PEZD6AQADVO6CMKPITPTA`,
	},
	{
		bytes.Repeat([]byte{'a'}, 127),
		`YKSDLGFJM7HNVU3ESUVCOT4JGPB2NWL3WIMPLZA`,
	},
	{
		bytes.Repeat([]byte{'a'}, 128),
		`3ZTFBW4Y65OGGNXCM776DYN5WJ6SZLWR7WMC4NA`,
	},
	{
		bytes.Repeat([]byte{'a'}, 256),
		`ZZK5ZBTLKGLY7SFWEHY5VGYYDQHZG56NIUQ6IXI`,
	},
	{
		bytes.Repeat([]byte{'a'}, 1022),
		`PT2BL57H4JJ5LHXBDA6CJ5KEOO5XEKNIFYINE7I`,
	},
	{
		bytes.Repeat([]byte{'a'}, 1023),
		`YBJDV4HQU6LDJZMP36DEUZ7MMNXA6TBLMOX55PI`,
	},
	{
		bytes.Repeat([]byte{'a'}, 1024),
		`BR4BVJBMHDFVCFI4WBPSL63W5TWXWVBSC574BLI`,
	},
	{
		bytes.Repeat([]byte{'a'}, 1025),
		`CDYY2OW6F6DTGCH3Q6NMSDLSRV7PNMAL3CED3DA`,
	},
	{
		bytes.Repeat([]byte{'a'}, 10000),
		`BGOMMS6M6WVMYKELCO5BDMY4SS4SVCOA5X6DWGI`,
	},
	{
		pattern(20000),
		`F3WSO2TLSSPYC2VYA2HCIG2MUHDBRQC653RD4NQ`,
	},
}

func pattern(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(i * 31)
	}
	return b
}

func TestTTH(t *testing.T) {
	for i, c := range tthCases {
		tr, err := tiger.TreeHash(bytes.NewReader(c.data))
		require.NoError(t, err)
		require.Equal(t, c.hash, tr.String(), "case %d", i+1)
	}
}

func TestTTHShortReads(t *testing.T) {
	for i, c := range tthCases {
		tr, err := tiger.TreeHash(iotest.OneByteReader(bytes.NewReader(c.data)))
		require.NoError(t, err)
		require.Equal(t, c.hash, tr.String(), "case %d", i+1)
	}
}

func TestTreeHasher(t *testing.T) {
	c := tthCases[len(tthCases)-1]

	th := tiger.NewTreeHasher()
	for b := c.data; len(b) > 0; {
		n := 777
		if n > len(b) {
			n = len(b)
		}
		th.Write(b[:n])
		b = b[n:]

		// summing in the middle must not disturb the state
		_ = th.Sum()
	}
	require.Equal(t, int64(len(c.data)), th.Size())
	require.Equal(t, c.hash, th.Sum().String())
	require.Equal(t, c.hash, th.Sum().String())

	th.Reset()
	require.Equal(t, int64(0), th.Size())
	require.Equal(t, tthCases[0].hash, th.Sum().String())
}

func TestTreeHashFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data")
	c := tthCases[len(tthCases)-2]
	require.NoError(t, os.WriteFile(path, c.data, 0644))

	h, err := tiger.TreeHashFile(path)
	require.NoError(t, err)
	require.Equal(t, c.hash, h.String())

	_, err = tiger.TreeHashFile(filepath.Join(dir, "missing"))
	require.Error(t, err)
}

func BenchmarkTreeHasher(b *testing.B) {
	buf := make([]byte, 1<<20)
	b.SetBytes(int64(len(buf)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var th tiger.TreeHasher
		th.Write(buf)
		th.Sum()
	}
}
