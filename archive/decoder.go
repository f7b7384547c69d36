package archive

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/statforge/drawset/compress"
	"github.com/statforge/drawset/errs"
	"github.com/statforge/drawset/format"
	"github.com/statforge/drawset/internal/collision"
	"github.com/statforge/drawset/internal/hash"
	"github.com/statforge/drawset/store"
)

// Decode restores a store from an archive block produced by Encode.
//
// Every decoded name is re-hashed and checked against the archive's ID
// section, so a corrupted or reshuffled name payload is rejected instead of
// silently mislabeling columns.
func Decode(data []byte) (*store.Store, error) {
	if len(data) < HeaderSize {
		return nil, fmt.Errorf("%w: %d bytes", errs.ErrInvalidHeaderSize, len(data))
	}

	if magic := binary.LittleEndian.Uint32(data[offMagic:]); magic != format.MagicNumber {
		return nil, fmt.Errorf("%w: 0x%08X", errs.ErrInvalidMagicNumber, magic)
	}
	if version := data[offVersion]; version != format.Version {
		return nil, fmt.Errorf("%w: %d", errs.ErrUnsupportedVersion, version)
	}
	compression := format.CompressionType(data[offCompression])
	if !compression.Valid() {
		return nil, fmt.Errorf("%w: %v", errs.ErrInvalidCompression, compression)
	}

	columns := int(binary.LittleEndian.Uint32(data[offColumns:]))
	chains := int(binary.LittleEndian.Uint32(data[offChains:]))
	warmup := int(binary.LittleEndian.Uint32(data[offWarmup:]))
	if columns == 0 || chains == 0 {
		return nil, errs.ErrEmptyStore
	}

	codec, err := compress.NewCodec(compression)
	if err != nil {
		return nil, err
	}

	rest := data[HeaderSize:]
	if len(rest) < columns*8 {
		return nil, fmt.Errorf("%w: truncated id section", errs.ErrInvalidPayload)
	}
	ids := make([]uint64, columns)
	for i := range ids {
		ids[i] = binary.LittleEndian.Uint64(rest[i*8:])
	}
	rest = rest[columns*8:]

	namePayload, rest, err := readPayload(rest, codec)
	if err != nil {
		return nil, fmt.Errorf("name payload: %w", err)
	}
	names, meta, err := decodeNames(namePayload, ids)
	if err != nil {
		return nil, err
	}

	perChain := make([][][]float64, chains)
	for ci := 0; ci < chains; ci++ {
		draws, n := binary.Uvarint(rest)
		if n <= 0 {
			return nil, fmt.Errorf("%w: chain %d draw count", errs.ErrInvalidPayload, ci)
		}
		rest = rest[n:]

		raw, remaining, err := readPayload(rest, codec)
		if err != nil {
			return nil, fmt.Errorf("chain %d: %w", ci, err)
		}
		rest = remaining

		if len(raw) != columns*int(draws)*8 {
			return nil, fmt.Errorf("%w: chain %d has %d payload bytes, expected %d",
				errs.ErrInvalidPayload, ci, len(raw), columns*int(draws)*8)
		}
		cols := make([][]float64, columns)
		for i := range cols {
			col := make([]float64, draws)
			for j := range col {
				bits := binary.LittleEndian.Uint64(raw[(i*int(draws)+j)*8:])
				col[j] = math.Float64frombits(bits)
			}
			cols[i] = col
		}
		perChain[ci] = cols
	}

	st, err := store.FromDraws(names, warmup, perChain...)
	if err != nil {
		return nil, err
	}
	for i, m := range meta {
		st.SetMeta(i, m)
	}

	return st, nil
}

// readPayload consumes one uvarint-prefixed compressed section and returns
// its decompressed content and the remaining input.
func readPayload(data []byte, codec compress.Codec) ([]byte, []byte, error) {
	size, n := binary.Uvarint(data)
	if n <= 0 || uint64(len(data)-n) < size {
		return nil, nil, fmt.Errorf("%w: truncated section", errs.ErrInvalidPayload)
	}

	out, err := codec.Decompress(data[n : n+int(size)])
	if err != nil {
		return nil, nil, err
	}

	return out, data[n+int(size):], nil
}

// decodeNames parses the name payload and verifies each name against its
// recorded hash ID.
func decodeNames(payload []byte, ids []uint64) ([]string, []store.Meta, error) {
	tracker := collision.NewTracker()
	names := make([]string, 0, len(ids))
	meta := make([]store.Meta, 0, len(ids))
	for i := range ids {
		// The entry needs size name bytes plus a flag byte. Comparing size
		// against the remaining length keeps a hostile length prefix (up to
		// MaxUint64) from wrapping the arithmetic and slicing out of range.
		size, n := binary.Uvarint(payload)
		if n <= 0 || size >= uint64(len(payload)-n) {
			return nil, nil, fmt.Errorf("%w: truncated name table", errs.ErrInvalidPayload)
		}
		name := string(payload[n : n+int(size)])
		flags := payload[n+int(size)]
		payload = payload[n+int(size)+1:]

		id := hash.ID(name)
		if id != ids[i] {
			return nil, nil, fmt.Errorf("%w: column %d %q", errs.ErrHashMismatch, i, name)
		}
		if err := tracker.Track(name, id); err != nil {
			return nil, nil, fmt.Errorf("column %d: %w", i, err)
		}

		names = append(names, name)
		meta = append(meta, store.Meta{Constrained: flags&flagConstrained != 0})
	}
	if len(payload) != 0 {
		return nil, nil, fmt.Errorf("%w: %d trailing name bytes", errs.ErrInvalidPayload, len(payload))
	}

	return names, meta, nil
}
