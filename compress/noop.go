package compress

// NoOpCompressor passes payloads through unchanged. Useful when inspecting
// archive layout byte-by-byte or benchmarking the encoder without codec cost.
type NoOpCompressor struct{}

var _ Codec = (*NoOpCompressor)(nil)

// NewNoOpCompressor creates a passthrough codec.
func NewNoOpCompressor() NoOpCompressor {
	return NoOpCompressor{}
}

// Compress returns data unchanged. The result shares the input's memory.
func (c NoOpCompressor) Compress(data []byte) ([]byte, error) {
	return data, nil
}

// Decompress returns data unchanged. The result shares the input's memory.
func (c NoOpCompressor) Decompress(data []byte) ([]byte, error) {
	return data, nil
}
