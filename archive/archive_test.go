package archive

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/statforge/drawset/errs"
	"github.com/statforge/drawset/format"
	"github.com/statforge/drawset/internal/hash"
	"github.com/statforge/drawset/store"
)

func archiveStore(t *testing.T) *store.Store {
	t.Helper()

	st, err := store.FromDraws(
		[]string{"b_Intercept", "b_x1", "sigma", "lp__"},
		1,
		[][]float64{{0, 1.5, -2.25}, {0, 0.5, 0.75}, {0, 1.1, 0.9}, {0, -10, -11}},
		[][]float64{{0, 2.5, -3.25}, {0, 1.5, 1.75}, {0, 2.1, 1.9}, {0, -20, -21}},
	)
	require.NoError(t, err)
	st.SetMeta(2, store.Meta{Constrained: true})

	return st
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	types := []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	}

	for _, typ := range types {
		t.Run(typ.String(), func(t *testing.T) {
			st := archiveStore(t)

			data, err := Encode(st, WithCompression(typ))
			require.NoError(t, err)

			got, err := Decode(data)
			require.NoError(t, err)

			require.Equal(t, st.Names(), got.Names())
			require.Equal(t, st.NumChains(), got.NumChains())
			require.Equal(t, st.Draws(), got.Draws())
			require.Equal(t, st.Warmup(0), got.Warmup(0))
			for ci := 0; ci < st.NumChains(); ci++ {
				for i := 0; i < st.Len(); i++ {
					require.Equal(t, st.Column(ci, i), got.Column(ci, i))
				}
			}
			for i := 0; i < st.Len(); i++ {
				require.Equal(t, st.Meta(i), got.Meta(i))
			}
			require.NoError(t, got.CheckConsistent())
		})
	}
}

func TestEncode_DefaultCompressionIsZstd(t *testing.T) {
	st := archiveStore(t)

	data, err := Encode(st)
	require.NoError(t, err)
	require.Equal(t, byte(format.CompressionZstd), data[offCompression])
}

func TestEncode_InvalidCompression(t *testing.T) {
	st := archiveStore(t)

	_, err := Encode(st, WithCompression(format.CompressionType(0xFF)))
	require.ErrorIs(t, err, errs.ErrInvalidCompression)
}

func TestDecode_TooShort(t *testing.T) {
	_, err := Decode(make([]byte, HeaderSize-1))
	require.ErrorIs(t, err, errs.ErrInvalidHeaderSize)
}

func TestDecode_BadMagic(t *testing.T) {
	st := archiveStore(t)
	data, err := Encode(st)
	require.NoError(t, err)

	binary.LittleEndian.PutUint32(data[offMagic:], 0xDEADBEEF)
	_, err = Decode(data)
	require.ErrorIs(t, err, errs.ErrInvalidMagicNumber)
}

func TestDecode_UnsupportedVersion(t *testing.T) {
	st := archiveStore(t)
	data, err := Encode(st)
	require.NoError(t, err)

	data[offVersion] = format.Version + 1
	_, err = Decode(data)
	require.ErrorIs(t, err, errs.ErrUnsupportedVersion)
}

func TestDecode_InvalidCompression(t *testing.T) {
	st := archiveStore(t)
	data, err := Encode(st)
	require.NoError(t, err)

	data[offCompression] = 0xEE
	_, err = Decode(data)
	require.ErrorIs(t, err, errs.ErrInvalidCompression)
}

func TestDecode_HashMismatch(t *testing.T) {
	st := archiveStore(t)
	data, err := Encode(st)
	require.NoError(t, err)

	// Corrupt the first entry of the id section; the name no longer hashes
	// to its recorded ID.
	binary.LittleEndian.PutUint64(data[HeaderSize:], 0x1234567812345678)
	_, err = Decode(data)
	require.ErrorIs(t, err, errs.ErrHashMismatch)
}

func TestDecode_HostileNameLength(t *testing.T) {
	// A name payload whose length prefix decodes to MaxUint64 must be
	// rejected as corrupt, not slice out of range.
	buf := make([]byte, HeaderSize)
	binary.LittleEndian.PutUint32(buf[offMagic:], format.MagicNumber)
	buf[offVersion] = format.Version
	buf[offCompression] = byte(format.CompressionNone)
	binary.LittleEndian.PutUint32(buf[offColumns:], 1)
	binary.LittleEndian.PutUint32(buf[offChains:], 1)

	buf = binary.LittleEndian.AppendUint64(buf, hash.ID("b_x1"))

	payload := binary.AppendUvarint(nil, math.MaxUint64)
	buf = binary.AppendUvarint(buf, uint64(len(payload)))
	buf = append(buf, payload...)

	require.NotPanics(t, func() {
		_, err := Decode(buf)
		require.ErrorIs(t, err, errs.ErrInvalidPayload)
	})
}

func TestDecode_TruncatedPayload(t *testing.T) {
	st := archiveStore(t)
	data, err := Encode(st)
	require.NoError(t, err)

	_, err = Decode(data[:len(data)-5])
	require.ErrorIs(t, err, errs.ErrInvalidPayload)
}
