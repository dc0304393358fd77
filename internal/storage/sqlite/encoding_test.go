// ABOUTME: Tests for embedding blob encoding
// ABOUTME: Verifies round-trip fidelity and malformed blob rejection

package sqlite

import "testing"

func TestVectorEncoding_RoundTrip(t *testing.T) {
	vec := []float32{0.25, -1.5, 3.75, 0}

	decoded, err := decodeVector(encodeVector(vec))
	if err != nil {
		t.Fatalf("decodeVector() error = %v", err)
	}
	if len(decoded) != len(vec) {
		t.Fatalf("decoded length = %d, want %d", len(decoded), len(vec))
	}
	for i := range vec {
		if decoded[i] != vec[i] {
			t.Errorf("decoded[%d] = %f, want %f", i, decoded[i], vec[i])
		}
	}
}

func TestDecodeVector_RejectsBadLength(t *testing.T) {
	if _, err := decodeVector([]byte{1, 2, 3}); err == nil {
		t.Error("decodeVector() should reject blobs not a multiple of 4 bytes")
	}
}
