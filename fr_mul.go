package bn254fr

import "math/bits"

// Limb primitives. Every operation below is a fixed, unrolled sequence of
// these with no data-dependent branching or indexing.

// adc computes a + b + carry, returning the sum and the carry out
func adc(a, b, carry uint64) (uint64, uint64) {
	s, c1 := bits.Add64(a, b, 0)
	s, c2 := bits.Add64(s, carry, 0)
	return s, c1 | c2
}

// sbb computes a - b - borrow, returning the difference and the borrow out
func sbb(a, b, borrow uint64) (uint64, uint64) {
	d, bo := bits.Sub64(a, b, borrow)
	return d, bo
}

// mac computes a + b*c + carry, returning the low and high words. The result
// cannot overflow 128 bits for any operand values.
func mac(a, b, c, carry uint64) (uint64, uint64) {
	hi, lo := bits.Mul64(b, c)
	var cc uint64
	lo, cc = bits.Add64(lo, a, 0)
	hi, _ = bits.Add64(hi, 0, cc)
	lo, cc = bits.Add64(lo, carry, 0)
	hi, _ = bits.Add64(hi, 0, cc)
	return lo, hi
}

// reduceOnce conditionally subtracts the modulus from a 4-limb value known to
// be below 2*r, restoring the representation invariant. The selection is a
// constant-time mask, never a branch.
func reduceOnce(d0, d1, d2, d3 uint64) Fr {
	e0, borrow := bits.Sub64(d0, frModulus0, 0)
	e1, borrow := bits.Sub64(d1, frModulus1, borrow)
	e2, borrow := bits.Sub64(d2, frModulus2, borrow)
	e3, borrow := bits.Sub64(d3, frModulus3, borrow)

	// borrow is 1 exactly when d < r, in which case d is already reduced
	mask := -borrow
	return Fr{d: [4]uint64{
		(d0 & mask) | (e0 &^ mask),
		(d1 & mask) | (e1 &^ mask),
		(d2 & mask) | (e2 &^ mask),
		(d3 & mask) | (e3 &^ mask),
	}}
}

// Add adds two field elements: r = a + b
func (r *Fr) Add(a, b *Fr) {
	// Both operands are below r < 2^254, so the raw sum fits in 4 limbs
	d0, carry := bits.Add64(a.d[0], b.d[0], 0)
	d1, carry := bits.Add64(a.d[1], b.d[1], carry)
	d2, carry := bits.Add64(a.d[2], b.d[2], carry)
	d3, _ := bits.Add64(a.d[3], b.d[3], carry)

	*r = reduceOnce(d0, d1, d2, d3)
}

// Double doubles a field element: r = a + a
func (r *Fr) Double(a *Fr) {
	r.Add(a, a)
}

// Sub subtracts two field elements: r = a - b
func (r *Fr) Sub(a, b *Fr) {
	d0, borrow := bits.Sub64(a.d[0], b.d[0], 0)
	d1, borrow := bits.Sub64(a.d[1], b.d[1], borrow)
	d2, borrow := bits.Sub64(a.d[2], b.d[2], borrow)
	d3, borrow := bits.Sub64(a.d[3], b.d[3], borrow)

	// Add the modulus back if the subtraction underflowed
	mask := -borrow
	var carry uint64
	r.d[0], carry = bits.Add64(d0, frModulus0&mask, 0)
	r.d[1], carry = bits.Add64(d1, frModulus1&mask, carry)
	r.d[2], carry = bits.Add64(d2, frModulus2&mask, carry)
	r.d[3], _ = bits.Add64(d3, frModulus3&mask, carry)
}

// Neg negates a field element: r = -a
func (r *Fr) Neg(a *Fr) {
	d0, borrow := bits.Sub64(frModulus0, a.d[0], 0)
	d1, borrow := bits.Sub64(frModulus1, a.d[1], borrow)
	d2, borrow := bits.Sub64(frModulus2, a.d[2], borrow)
	d3, _ := bits.Sub64(frModulus3, a.d[3], borrow)

	// r - 0 must map back to 0, not to r
	v := a.d[0] | a.d[1] | a.d[2] | a.d[3]
	mask := -((v | -v) >> 63)
	r.d[0] = d0 & mask
	r.d[1] = d1 & mask
	r.d[2] = d2 & mask
	r.d[3] = d3 & mask
}

// Mul multiplies two field elements: r = a * b. The full 512-bit schoolbook
// product is accumulated into an 8-limb scratch vector and then Montgomery
// reduced, yielding a*b*R^-1 mod r, fully reduced and still in Montgomery
// form.
func (r *Fr) Mul(a, b *Fr) {
	t0, carry := mac(0, a.d[0], b.d[0], 0)
	t1, carry := mac(0, a.d[0], b.d[1], carry)
	t2, carry := mac(0, a.d[0], b.d[2], carry)
	t3, t4 := mac(0, a.d[0], b.d[3], carry)

	t1, carry = mac(t1, a.d[1], b.d[0], 0)
	t2, carry = mac(t2, a.d[1], b.d[1], carry)
	t3, carry = mac(t3, a.d[1], b.d[2], carry)
	t4, t5 := mac(t4, a.d[1], b.d[3], carry)

	t2, carry = mac(t2, a.d[2], b.d[0], 0)
	t3, carry = mac(t3, a.d[2], b.d[1], carry)
	t4, carry = mac(t4, a.d[2], b.d[2], carry)
	t5, t6 := mac(t5, a.d[2], b.d[3], carry)

	t3, carry = mac(t3, a.d[3], b.d[0], 0)
	t4, carry = mac(t4, a.d[3], b.d[1], carry)
	t5, carry = mac(t5, a.d[3], b.d[2], carry)
	t6, t7 := mac(t6, a.d[3], b.d[3], carry)

	*r = montgomeryReduce([8]uint64{t0, t1, t2, t3, t4, t5, t6, t7})
}

// Square squares a field element: r = a * a, saving the redundant cross
// products relative to Mul
func (r *Fr) Square(a *Fr) {
	t1, carry := mac(0, a.d[0], a.d[1], 0)
	t2, carry := mac(0, a.d[0], a.d[2], carry)
	t3, t4 := mac(0, a.d[0], a.d[3], carry)

	t3, carry = mac(t3, a.d[1], a.d[2], 0)
	t4, t5 := mac(t4, a.d[1], a.d[3], carry)

	t5, t6 := mac(t5, a.d[2], a.d[3], 0)

	// Double the off-diagonal terms
	t7 := t6 >> 63
	t6 = (t6 << 1) | (t5 >> 63)
	t5 = (t5 << 1) | (t4 >> 63)
	t4 = (t4 << 1) | (t3 >> 63)
	t3 = (t3 << 1) | (t2 >> 63)
	t2 = (t2 << 1) | (t1 >> 63)
	t1 = t1 << 1

	// Add the diagonal
	t0, carry := mac(0, a.d[0], a.d[0], 0)
	t1, carry = adc(t1, 0, carry)
	t2, carry = mac(t2, a.d[1], a.d[1], carry)
	t3, carry = adc(t3, 0, carry)
	t4, carry = mac(t4, a.d[2], a.d[2], carry)
	t5, carry = adc(t5, 0, carry)
	t6, carry = mac(t6, a.d[3], a.d[3], carry)
	t7, _ = adc(t7, 0, carry)

	*r = montgomeryReduce([8]uint64{t0, t1, t2, t3, t4, t5, t6, t7})
}

// montgomeryReduce reduces a 512-bit intermediate to a fully reduced field
// element equal to t * R^-1 mod r. One limb is eliminated per round using the
// precomputed frInv constant (REDC).
func montgomeryReduce(t [8]uint64) Fr {
	var carry, carry2 uint64

	k := t[0] * frInv
	_, carry = mac(t[0], k, frModulus0, 0)
	t[1], carry = mac(t[1], k, frModulus1, carry)
	t[2], carry = mac(t[2], k, frModulus2, carry)
	t[3], carry = mac(t[3], k, frModulus3, carry)
	t[4], carry2 = adc(t[4], 0, carry)

	k = t[1] * frInv
	_, carry = mac(t[1], k, frModulus0, 0)
	t[2], carry = mac(t[2], k, frModulus1, carry)
	t[3], carry = mac(t[3], k, frModulus2, carry)
	t[4], carry = mac(t[4], k, frModulus3, carry)
	t[5], carry2 = adc(t[5], carry2, carry)

	k = t[2] * frInv
	_, carry = mac(t[2], k, frModulus0, 0)
	t[3], carry = mac(t[3], k, frModulus1, carry)
	t[4], carry = mac(t[4], k, frModulus2, carry)
	t[5], carry = mac(t[5], k, frModulus3, carry)
	t[6], carry2 = adc(t[6], carry2, carry)

	k = t[3] * frInv
	_, carry = mac(t[3], k, frModulus0, 0)
	t[4], carry = mac(t[4], k, frModulus1, carry)
	t[5], carry = mac(t[5], k, frModulus2, carry)
	t[6], carry = mac(t[6], k, frModulus3, carry)
	t[7], _ = adc(t[7], carry2, carry)

	// The result is below 2*r and the modulus top limb keeps it within 4
	// limbs, so a single conditional subtraction restores the invariant
	return reduceOnce(t[4], t[5], t[6], t[7])
}

// fromMontgomery strips the Montgomery factor, returning the canonical
// integer representative as limbs. Reducing [a, 0, 0, 0, ...] computes
// a * R^-1 = (a*R) * R^-1 * ... i.e. the plain residue.
func (r *Fr) fromMontgomery() Fr {
	return montgomeryReduce([8]uint64{r.d[0], r.d[1], r.d[2], r.d[3], 0, 0, 0, 0})
}

// fromU512 reduces a 512-bit little-endian integer modulo r and leaves the
// result in Montgomery form. The two 256-bit halves are carried into the
// Montgomery domain separately (low via R^2, high via R^3, since
// 2^256 == R mod r) and recombined.
func (r *Fr) fromU512(w [8]uint64) {
	lo := Fr{d: [4]uint64{w[0], w[1], w[2], w[3]}}
	hi := Fr{d: [4]uint64{w[4], w[5], w[6], w[7]}}
	lo.Mul(&lo, &frR2)
	hi.Mul(&hi, &frR3)
	r.Add(&lo, &hi)
}
