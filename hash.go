package bn254fr

import (
	"crypto/sha256"
	"hash"
	"sync"
	"unsafe"

	sha256simd "github.com/minio/sha256-simd"
)

// Tags this package derives field elements under. Callers may use their own
// tags; these two get precomputed prefixes.
const (
	// ChallengeTag domain-separates Fiat-Shamir challenge derivation
	ChallengeTag = "BN254/fr/challenge"
	// NonceTag domain-separates blinding factor derivation
	NonceTag = "BN254/fr/nonce"
)

// Precomputed TaggedHash prefixes for the common tags, computed once at first
// use to avoid repeated hash operations
var (
	challengeTagHash   [32]byte
	nonceTagHash       [32]byte
	taggedHashInitOnce sync.Once
)

func initTaggedHashPrefixes() {
	challengeTagHash = sha256.Sum256([]byte(ChallengeTag))
	nonceTagHash = sha256.Sum256([]byte(NonceTag))
}

// getTaggedHashPrefix returns the precomputed SHA256(tag) for common tags
func getTaggedHashPrefix(tag []byte) [32]byte {
	taggedHashInitOnce.Do(initTaggedHashPrefixes)

	switch string(tag) {
	case ChallengeTag:
		return challengeTagHash
	case NonceTag:
		return nonceTagHash
	}

	// Fallback for unknown tags
	return sha256.Sum256(tag)
}

// SHA256 represents a SHA-256 hash context backed by the SIMD implementation
type SHA256 struct {
	hasher hash.Hash
}

// NewSHA256 creates a new SHA-256 hash context
func NewSHA256() *SHA256 {
	return &SHA256{hasher: sha256simd.New()}
}

// Write writes data to the hash
func (h *SHA256) Write(data []byte) {
	h.hasher.Write(data)
}

// Finalize finalizes the hash and writes the result to out32 (must be 32 bytes)
func (h *SHA256) Finalize(out32 []byte) {
	if len(out32) != 32 {
		panic("output buffer must be 32 bytes")
	}
	sum := h.hasher.Sum(nil)
	copy(out32, sum)
}

// Reset resets the hash context for reuse
func (h *SHA256) Reset() {
	h.hasher.Reset()
}

// Clear clears the hash context to prevent leaking sensitive information
func (h *SHA256) Clear() {
	memclear(unsafe.Pointer(h), unsafe.Sizeof(*h))
}

// TaggedHash computes SHA256(SHA256(tag) || SHA256(tag) || data), the BIP-340
// style domain-separated hash
func TaggedHash(tag, data []byte) [32]byte {
	var result [32]byte
	tagHash := getTaggedHashPrefix(tag)

	h := NewSHA256()
	h.Write(tagHash[:])
	h.Write(tagHash[:])
	h.Write(data)
	h.Finalize(result[:])

	return result
}

// HashToFr maps a tagged message to a field element indistinguishable from
// uniform. Two counter-separated tagged digests provide 64 bytes of output,
// which the 512-bit wide reduction folds into [0, r) with bias below 2^-128.
// A single 32-byte digest reduced directly would not be uniform over a
// 254-bit modulus.
func HashToFr(tag, msg []byte) Fr {
	tagHash := getTaggedHashPrefix(tag)

	var wide [64]byte
	h := NewSHA256()
	h.Write(tagHash[:])
	h.Write(tagHash[:])
	h.Write(msg)
	h.Write([]byte{0x00})
	h.Finalize(wide[:32])

	h.Reset()
	h.Write(tagHash[:])
	h.Write(tagHash[:])
	h.Write(msg)
	h.Write([]byte{0x01})
	h.Finalize(wide[32:])

	var r Fr
	r.SetUniformBytes(wide[:])
	return r
}
