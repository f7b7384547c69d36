// Package archive serializes draw stores to a compact binary format and
// restores them.
//
// An archive is a single self-describing byte block:
//
//	header          fixed-size: magic, version, compression, counts, warmup
//	id section      one xxHash64 ID per column, for integrity checking
//	name payload    varint-prefixed names plus per-column flags, compressed
//	chain payloads  raw little-endian float64 column blocks, compressed
//
// Names are authoritative; the hash IDs exist so a decoder can detect
// truncated or mismatched name payloads without a full byte comparison.
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
	"github.com/statforge/drawset/internal/options"
	"github.com/statforge/drawset/store"
)

// HeaderSize is the fixed byte length of the archive header.
const HeaderSize = 20

// Header layout offsets.
const (
	offMagic       = 0
	offVersion     = 4
	offCompression = 5
	offColumns     = 8
	offChains      = 12
	offWarmup      = 16
)

const flagConstrained = 0x1

type encoderConfig struct {
	compression format.CompressionType
}

// Option configures archive encoding.
type Option = options.Option[*encoderConfig]

// WithCompression selects the codec applied to the name and chain payloads.
// The default is Zstd.
func WithCompression(typ format.CompressionType) Option {
	return options.New(func(cfg *encoderConfig) error {
		if !typ.Valid() {
			return fmt.Errorf("%w: %v", errs.ErrInvalidCompression, typ)
		}
		cfg.compression = typ

		return nil
	})
}

// Encode serializes st into a single archive block.
func Encode(st *store.Store, opts ...Option) ([]byte, error) {
	cfg := &encoderConfig{compression: format.CompressionZstd}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	names := st.Names()
	if len(names) == 0 || st.NumChains() == 0 {
		return nil, errs.ErrEmptyStore
	}

	codec, err := compress.NewCodec(cfg.compression)
	if err != nil {
		return nil, err
	}

	// Hash every name up front so duplicate names and hash collisions fail
	// the encode instead of producing an ambiguous archive.
	tracker := collision.NewTracker()
	ids := make([]uint64, len(names))
	for i, name := range names {
		id := hash.ID(name)
		if err := tracker.Track(name, id); err != nil {
			return nil, fmt.Errorf("column %q: %w", name, err)
		}
		ids[i] = id
	}

	buf := make([]byte, HeaderSize, HeaderSize+len(names)*8)
	binary.LittleEndian.PutUint32(buf[offMagic:], format.MagicNumber)
	buf[offVersion] = format.Version
	buf[offCompression] = byte(cfg.compression)
	binary.LittleEndian.PutUint32(buf[offColumns:], uint32(len(names)))
	binary.LittleEndian.PutUint32(buf[offChains:], uint32(st.NumChains()))
	// The header carries a single warmup count: store.FromDraws assigns the
	// same value to every chain, and no store operation diverges them. A
	// future per-chain warmup needs a format version bump.
	binary.LittleEndian.PutUint32(buf[offWarmup:], uint32(st.Warmup(0)))

	for _, id := range ids {
		buf = binary.LittleEndian.AppendUint64(buf, id)
	}

	namePayload, err := codec.Compress(encodeNames(st))
	if err != nil {
		return nil, fmt.Errorf("compress name payload: %w", err)
	}
	buf = binary.AppendUvarint(buf, uint64(len(namePayload)))
	buf = append(buf, namePayload...)

	draws := st.Draws()
	raw := make([]byte, 0, len(names)*draws*8)
	for ci := 0; ci < st.NumChains(); ci++ {
		raw = raw[:0]
		for i := range names {
			for _, v := range st.Column(ci, i) {
				raw = binary.LittleEndian.AppendUint64(raw, math.Float64bits(v))
			}
		}

		payload, err := codec.Compress(raw)
		if err != nil {
			return nil, fmt.Errorf("compress chain %d: %w", ci, err)
		}
		buf = binary.AppendUvarint(buf, uint64(draws))
		buf = binary.AppendUvarint(buf, uint64(len(payload)))
		buf = append(buf, payload...)
	}

	return buf, nil
}

// encodeNames builds the uncompressed name payload: per column, a
// varint-prefixed name followed by one flag byte.
func encodeNames(st *store.Store) []byte {
	out := make([]byte, 0, st.Len()*16)
	for i, name := range st.Names() {
		out = binary.AppendUvarint(out, uint64(len(name)))
		out = append(out, name...)

		var flags byte
		if st.Meta(i).Constrained {
			flags |= flagConstrained
		}
		out = append(out, flags)
	}

	return out
}
