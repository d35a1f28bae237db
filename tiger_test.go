package tiger_test

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/direct-connect/go-tiger"
)

func TestHashBytes(t *testing.T) {
	h := tiger.HashBytes([]byte("abc"))
	require.Equal(t, "2aab1484e8c158f2bfb8c5ff41b57a525129131c957b5f93", h.Hex())
	require.False(t, h.IsZero())
	require.Equal(t, h[:], h.Bytes())

	h2 := tiger.HashBytes2([]byte("abc"))
	require.Equal(t, "f68d7bc5af4b43a06e048d7829560d4a9415658bb0b1f3bf", h2.Hex())

	require.True(t, tiger.Hash{}.IsZero())
}

func TestHashNew(t *testing.T) {
	h := tiger.New()
	h.Write([]byte("abc"))
	require.Equal(t, tiger.HashBytes([]byte("abc")).Bytes(), h.Sum(nil))

	h = tiger.New2()
	h.Write([]byte("abc"))
	require.Equal(t, tiger.HashBytes2([]byte("abc")).Bytes(), h.Sum(nil))
}

func TestHashBase32(t *testing.T) {
	const s = "LWPNACQDBZRYXW3VHJVCJ64QBZNGHOHHHZWCLNQ"
	h, err := tiger.ParseBase32(s)
	require.NoError(t, err)
	require.Equal(t, s, h.Base32())
	require.Equal(t, s, h.String())
	require.Equal(t, h, tiger.MustParseBase32(s))

	for _, bad := range []string{
		"",
		s[:38],
		s + "A",
		strings.Replace(s, "L", "1", 1),
	} {
		_, err = tiger.ParseBase32(bad)
		require.Error(t, err, "%q", bad)
	}
	require.Panics(t, func() { tiger.MustParseBase32("bad") })
}

func TestHashHex(t *testing.T) {
	const s = "3293ac630c13f0245f92bbb1766e16167a4e58492dde73f3"
	h, err := tiger.ParseHex(s)
	require.NoError(t, err)
	require.Equal(t, s, h.Hex())
	require.Equal(t, tiger.HashBytes(nil), h)

	_, err = tiger.ParseHex(s[:46])
	require.Error(t, err)
	_, err = tiger.ParseHex("zz" + s[2:])
	require.Error(t, err)
}

func TestHashText(t *testing.T) {
	type doc struct {
		TTH tiger.Hash `json:"tth"`
	}
	in := doc{TTH: tiger.HashBytes([]byte("Tiger"))}
	data, err := json.Marshal(in)
	require.NoError(t, err)
	require.Equal(t, `{"tth":"`+in.TTH.Base32()+`"}`, string(data))

	var out doc
	require.NoError(t, json.Unmarshal(data, &out))
	require.Equal(t, in, out)
}

func ExampleTreeHash() {
	h, err := tiger.TreeHash(strings.NewReader(""))
	if err != nil {
		panic(err)
	}
	fmt.Println(h)

	// Output: LWPNACQDBZRYXW3VHJVCJ64QBZNGHOHHHZWCLNQ
}
