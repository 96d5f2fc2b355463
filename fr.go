package bn254fr

import (
	"crypto/subtle"
	"io"
	"unsafe"
)

// Fr represents an element of the BN254 scalar field
//
//	r = 0x30644e72e131a029b85045b68181585d2833e84879b9709143e1f593f0000001
//
// The element is stored as 4 uint64 limbs in little-endian order, always
// fully reduced and always in Montgomery form: Fr(a) holds a*R mod r with
// R = 2^256 mod r.
type Fr struct {
	d [4]uint64
}

// Modulus constants
const (
	// Limbs of the BN254 scalar field modulus r
	frModulus0 = 0x43e1f593f0000001
	frModulus1 = 0x2833e84879b97091
	frModulus2 = 0xb85045b68181585d
	frModulus3 = 0x30644e72e131a029

	// frInv = -(r^-1 mod 2^64) mod 2^64, the Montgomery reduction constant
	frInv = 0xc2e1f593efffffff

	// NumBits is the number of bits needed to represent the modulus
	NumBits = 254
	// Capacity is the number of bits that can always be stored losslessly
	Capacity = NumBits - 1
	// Size is the byte length of the canonical encoding
	Size = 32
)

// FrModulusString is the modulus as a big-endian hex string
const FrModulusString = "0x30644e72e131a029b85045b68181585d2833e84879b9709143e1f593f0000001"

// Montgomery domain constants
var (
	// frR2 = R^2 mod r, used to move values into Montgomery form
	frR2 = Fr{d: [4]uint64{
		0x1bb8e645ae216da7,
		0x53fe3ab1e35c59e3,
		0x8c49833d53bb8085,
		0x0216d0b17f4e44a5,
	}}

	// frR3 = R^3 mod r, used by the 512-bit wide reduction
	frR3 = Fr{d: [4]uint64{
		0x5e94d8e1b4bf0040,
		0x2a489cbe1cfbb6b8,
		0x893cc664a19fcfed,
		0x0cf8594b7fcc657c,
	}}
)

// Field constants
var (
	// FrZero represents the field element 0
	FrZero = Fr{}

	// FrOne represents the field element 1 (R mod r in Montgomery form)
	FrOne = Fr{d: [4]uint64{
		0xac96341c4ffffffb,
		0x36fc76959f60cd29,
		0x666ea36f7879462e,
		0x0e0a77c19a07df2f,
	}}

	// Generator is 7, a primitive root of the multiplicative group of order r-1
	Generator Fr

	// RootOfUnity is Generator^t, a primitive 2^S-th root of unity,
	// where r - 1 = t * 2^S with t odd
	RootOfUnity Fr

	// RootOfUnityInv is the inverse of RootOfUnity
	RootOfUnityInv Fr

	// TwoInv is the inverse of 2
	TwoInv Fr

	// Delta is Generator^(2^S), a primitive t-th root of unity
	Delta Fr

	// Zeta is a primitive cube root of unity (Zeta^3 == 1, Zeta != 1), used by
	// endomorphism-accelerated scalar multiplication in consuming curve layers
	Zeta Fr
)

// S is the 2-adicity of the multiplicative group: r - 1 = t * 2^S with t odd
const S = 28

// Fixed public exponents used by Invert, Legendre and Sqrt. These depend only
// on the modulus, never on operand values.
var (
	// r - 2, the Fermat inversion exponent
	frExpInvert = [4]uint64{
		0x43e1f593efffffff,
		0x2833e84879b97091,
		0xb85045b68181585d,
		0x30644e72e131a029,
	}

	// (r - 1) / 2, the Euler criterion exponent
	frExpLegendre = [4]uint64{
		0xa1f0fac9f8000000,
		0x9419f4243cdcb848,
		0xdc2822db40c0ac2e,
		0x183227397098d014,
	}

	// (t - 1) / 2 where r - 1 = t * 2^S with t odd
	frExpSqrt = [4]uint64{
		0xcdcb848a1f0fac9f,
		0x0c0ac2e9419f4243,
		0x098d014dc2822db4,
		0x0000000183227397,
	}
)

// The exported constants are derived from their integer-form literals once at
// package init by moving them into the Montgomery domain.
func init() {
	Generator = frFromRawInt([4]uint64{0x07, 0x00, 0x00, 0x00})
	RootOfUnity = frFromRawInt([4]uint64{
		0xd34f1ed960c37c9c,
		0x3215cf6dd39329c8,
		0x98865ea93dd31f74,
		0x03ddb9f5166d18b7,
	})
	RootOfUnityInv = frFromRawInt([4]uint64{
		0x0ed3e50a414e6dba,
		0xb22625f59115aba7,
		0x1bbe587180f34361,
		0x048127174daabc26,
	})
	TwoInv = frFromRawInt([4]uint64{
		0xa1f0fac9f8000001,
		0x9419f4243cdcb848,
		0xdc2822db40c0ac2e,
		0x183227397098d014,
	})
	Delta = frFromRawInt([4]uint64{
		0x870e56bbe533e9a2,
		0x5b5f898e5e963f25,
		0x64ec26aad4c86e71,
		0x09226b6e22c6f0ca,
	})
	Zeta = frFromRawInt([4]uint64{
		0xb8ca0b2d36636f23,
		0xcc37a73fec2bc5e9,
		0x048b6e193fd84104,
		0x30644e72e131a029,
	})
}

// frFromRawInt moves an integer-form limb vector into the Montgomery domain
func frFromRawInt(d [4]uint64) Fr {
	t := Fr{d: d}
	var r Fr
	r.Mul(&t, &frR2)
	return r
}

// NewFr creates a field element from a small unsigned integer
func NewFr(v uint64) *Fr {
	r := &Fr{}
	r.SetUint64(v)
	return r
}

// FrFromRaw constructs a field element directly from limbs that the caller
// asserts are already in Montgomery form and fully reduced. No validation is
// performed; this exists only to define constants from pre-derived literals.
func FrFromRaw(d [4]uint64) Fr {
	return Fr{d: d}
}

// SetUint64 sets the field element to a small unsigned integer value
func (r *Fr) SetUint64(v uint64) {
	r.d[0] = v
	r.d[1] = 0
	r.d[2] = 0
	r.d[3] = 0
	r.Mul(r, &frR2)
}

// SetBytes sets a field element from its canonical 32-byte little-endian
// encoding. It returns 1 if the encoding was a valid representative in [0, r)
// and 0 otherwise. The comparison against the modulus is constant-time and the
// output value is always fully computed; on failure it must not be used.
func (r *Fr) SetBytes(b []byte) (ok int) {
	if len(b) != 32 {
		panic("field element byte array must be 32 bytes")
	}

	r.d[0] = readLE64(b[0:8])
	r.d[1] = readLE64(b[8:16])
	r.d[2] = readLE64(b[16:24])
	r.d[3] = readLE64(b[24:32])

	// Try to subtract the modulus. The subtraction underflows exactly when
	// the candidate is a valid representative, leaving borrow set.
	var borrow uint64
	_, borrow = sbb(r.d[0], frModulus0, 0)
	_, borrow = sbb(r.d[1], frModulus1, borrow)
	_, borrow = sbb(r.d[2], frModulus2, borrow)
	_, borrow = sbb(r.d[3], frModulus3, borrow)

	// Convert into Montgomery form: (a * R^2) / R = a*R
	r.Mul(r, &frR2)

	return int(borrow & 1)
}

// Bytes returns the canonical 32-byte little-endian encoding, with the
// Montgomery factor removed
func (r *Fr) Bytes() [32]byte {
	c := r.fromMontgomery()

	var b [32]byte
	writeLE64(b[0:8], c.d[0])
	writeLE64(b[8:16], c.d[1])
	writeLE64(b[16:24], c.d[2])
	writeLE64(b[24:32], c.d[3])
	return b
}

// SetUniformBytes sets a field element from 64 bytes of entropy, interpreted
// as a 512-bit little-endian integer reduced modulo r. The reduction bias is
// at most 2^-128 relative to the field size.
func (r *Fr) SetUniformBytes(b []byte) {
	if len(b) != 64 {
		panic("uniform byte array must be 64 bytes")
	}

	r.fromU512([8]uint64{
		readLE64(b[0:8]),
		readLE64(b[8:16]),
		readLE64(b[16:24]),
		readLE64(b[24:32]),
		readLE64(b[32:40]),
		readLE64(b[40:48]),
		readLE64(b[48:56]),
		readLE64(b[56:64]),
	})
}

// SetRandom samples a uniform field element from the given entropy source.
// The source is an injected capability so tests can substitute a fixed-seed
// reader; pass crypto/rand.Reader for cryptographic sampling.
func (r *Fr) SetRandom(src io.Reader) error {
	var buf [64]byte
	if _, err := io.ReadFull(src, buf[:]); err != nil {
		return err
	}
	r.SetUniformBytes(buf[:])
	return nil
}

// Equal returns true if two field elements are equal. The representation
// invariant guarantees a unique limb encoding per residue, so direct
// constant-time limb comparison suffices.
func (r *Fr) Equal(a *Fr) bool {
	return subtle.ConstantTimeCompare(
		(*[32]byte)(unsafe.Pointer(&r.d[0]))[:32],
		(*[32]byte)(unsafe.Pointer(&a.d[0]))[:32],
	) == 1
}

// IsZero returns true if the field element is zero
func (r *Fr) IsZero() bool {
	return r.eqMask(&FrZero)&1 == 1
}

// IsOne returns true if the field element is one
func (r *Fr) IsOne() bool {
	return r.eqMask(&FrOne)&1 == 1
}

// IsOdd returns the parity of the canonical (non-Montgomery) representative,
// i.e. the least-significant bit of the little-endian encoding
func (r *Fr) IsOdd() bool {
	c := r.fromMontgomery()
	return c.d[0]&1 == 1
}

// String returns the canonical value as a big-endian hex string
func (r *Fr) String() string {
	const digits = "0123456789abcdef"
	b := r.Bytes()
	s := make([]byte, 2, 2+64)
	s[0], s[1] = '0', 'x'
	for i := 31; i >= 0; i-- {
		s = append(s, digits[b[i]>>4], digits[b[i]&0xf])
	}
	return string(s)
}

// eqMask returns an all-ones mask if the two elements are equal, zero
// otherwise, without branching
func (r *Fr) eqMask(a *Fr) uint64 {
	x := (r.d[0] ^ a.d[0]) | (r.d[1] ^ a.d[1]) | (r.d[2] ^ a.d[2]) | (r.d[3] ^ a.d[3])
	return ((x | -x) >> 63) - 1
}

// isZeroMask returns an all-ones mask if the element is zero
func (r *Fr) isZeroMask() uint64 {
	return r.eqMask(&FrZero)
}

// cmov conditionally moves a field element. If flag is 1, r = a; otherwise r
// is unchanged. Constant-time in both the flag and the values.
func (r *Fr) cmov(a *Fr, flag int) {
	mask := uint64(-(int64(flag) & 1))
	r.d[0] ^= mask & (r.d[0] ^ a.d[0])
	r.d[1] ^= mask & (r.d[1] ^ a.d[1])
	r.d[2] ^= mask & (r.d[2] ^ a.d[2])
	r.d[3] ^= mask & (r.d[3] ^ a.d[3])
}

// Clear zeroes a field element to prevent leaking sensitive material
func (r *Fr) Clear() {
	memclear(unsafe.Pointer(&r.d[0]), unsafe.Sizeof(r.d))
}
