package section

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/compactcache/errs"
)

func TestHeader_ByteExactness(t *testing.T) {
	flag, err := LiteralFlag(3)
	require.NoError(t, err)

	hdr := Header{
		Flag:      flag,
		CatIndex:  0x1234,
		SubIndex:  0xABCD,
		Timestamp: 1614902400.25,
	}

	b := hdr.Bytes()
	require.Len(t, b, HeaderSize)
	require.Equal(t, uint32(3), binary.LittleEndian.Uint32(b[0:4]), "flag word must be the bare length with all flag bits clear")
	require.Equal(t, uint16(0x1234), binary.LittleEndian.Uint16(b[4:6]))
	require.Equal(t, uint16(0xABCD), binary.LittleEndian.Uint16(b[6:8]))
	require.Equal(t, math.Float64bits(1614902400.25), binary.LittleEndian.Uint64(b[8:16]))
}

func TestHeader_ParseRoundTrip(t *testing.T) {
	cases := []struct {
		name string
		flag func() (Flag, error)
	}{
		{"literal", func() (Flag, error) { return LiteralFlag(100) }},
		{"encoded", func() (Flag, error) { return EncodedFlag(9) }},
		{"indexed", func() (Flag, error) { return IndexedFlag(42) }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			flag, err := tc.flag()
			require.NoError(t, err)

			hdr := Header{
				Flag:      flag.WithExpiring(),
				CatIndex:  7,
				SubIndex:  9,
				Timestamp: 1234.5,
			}

			var parsed Header
			require.NoError(t, parsed.Parse(hdr.Bytes()))
			require.Equal(t, hdr, parsed)
		})
	}
}

func TestHeader_PayloadSize(t *testing.T) {
	lit, _ := LiteralFlag(5)
	enc, _ := EncodedFlag(5)
	encEven, _ := EncodedFlag(4)
	idx, _ := IndexedFlag(99)

	require.Equal(t, 5, (&Header{Flag: lit}).PayloadSize())
	require.Equal(t, 3, (&Header{Flag: enc}).PayloadSize(), "odd encoded length rounds up")
	require.Equal(t, 2, (&Header{Flag: encEven}).PayloadSize())
	require.Equal(t, 0, (&Header{Flag: idx}).PayloadSize())
}

func TestHeader_ParseErrors(t *testing.T) {
	var hdr Header

	require.ErrorIs(t, hdr.Parse(make([]byte, HeaderSize-1)), errs.ErrInvalidHeaderSize)
	require.ErrorIs(t, hdr.Parse(make([]byte, HeaderSize+1)), errs.ErrInvalidHeaderSize)

	bad := make([]byte, HeaderSize)
	binary.LittleEndian.PutUint32(bad[0:4], FlagIndexed|FlagEncoded)
	require.ErrorIs(t, hdr.Parse(bad), errs.ErrInvalidFlags)
}
