package bn254fr

// ctU32Eq returns 1 if a == b, 0 otherwise, without branching
func ctU32Eq(a, b uint32) int {
	x := uint64(a ^ b)
	return int(1 - ((x|-x)>>63))
}

// ctU32Sel returns a if flag is 1, b otherwise
func ctU32Sel(a, b uint32, flag int) uint32 {
	m := uint32(-(int32(flag) & 1))
	return (a & m) | (b &^ m)
}

// Sqrt computes a square root of a using Tonelli-Shanks specialized to the
// fixed 2-adicity S of this field: the unknown 2-Sylow component of the
// candidate root is halved in order each round using powers of the 2^S-th
// root of unity. It returns 1 if a is a quadratic residue (the root is
// written to r) and 0 otherwise (the written value is undefined and must not
// be used). Zero is a residue with root zero. The iteration count and the
// operation sequence depend only on S, never on a.
func (r *Fr) Sqrt(a *Fr) (ok int) {
	// w = a^((t-1)/2), so x = a*w = a^((t+1)/2) and b = x*w = a^t
	var w Fr
	w.pow(a, &frExpSqrt)

	v := uint32(S)
	var x, b Fr
	x.Mul(a, &w)
	b.Mul(&x, &w)

	// z walks the 2^S-th roots of unity
	z := RootOfUnity

	for maxV := uint32(S); maxV >= 1; maxV-- {
		k := uint32(1)
		var tmp Fr
		tmp.Square(&b)
		jLessThanV := 1

		// Find k = ord_2(b) while keeping the scan length fixed at maxV
		for j := uint32(2); j < maxV; j++ {
			tmpIsOne := int(tmp.eqMask(&FrOne) & 1)

			sel := tmp
			sel.cmov(&z, tmpIsOne)
			var squared Fr
			squared.Square(&sel)

			newTmp := squared
			newTmp.cmov(&tmp, tmpIsOne)
			newZ := z
			newZ.cmov(&squared, tmpIsOne)

			jLessThanV &= ctU32Eq(j, v) ^ 1
			k = ctU32Sel(k, j, tmpIsOne)
			tmp = newTmp
			z.cmov(&newZ, jLessThanV)
		}

		var res Fr
		res.Mul(&x, &z)
		bIsOne := int(b.eqMask(&FrOne) & 1)
		x.cmov(&res, bIsOne^1)
		z.Square(&z)
		b.Mul(&b, &z)
		v = k
	}

	var check Fr
	check.Square(&x)
	ok = int(check.eqMask(a) & 1)
	*r = x
	return ok
}

// Legendre returns the Legendre symbol of the element: 1 if it is a nonzero
// quadratic residue, -1 if it is a non-residue, 0 if it is zero. Computed by
// the Euler criterion a^((r-1)/2) on the fixed ladder.
func (r *Fr) Legendre() int {
	var s Fr
	s.pow(r, &frExpLegendre)
	isOne := s.eqMask(&FrOne)
	isZero := s.eqMask(&FrZero)
	return int(isOne&1) - int((^(isOne|isZero))&1)
}

// SqrtRatio computes sqrt(num/div) without materializing a separate division
// result, for point decompression and hash-to-curve mappings. It returns 1
// with r = sqrt(num/div) when the ratio is square, and 0 with
// r = sqrt(RootOfUnity * num/div) otherwise. num == 0 yields (1, 0) even
// when div is also zero; a zero divisor with nonzero num yields (0, 0).
func (r *Fr) SqrtRatio(num, div *Fr) (ok int) {
	// a = num * inv0(div): zero when div is zero, num/div otherwise
	var a Fr
	a.Invert(div)
	a.Mul(&a, num)

	// The root of unity is a non-residue, so exactly one of a and
	// a*RootOfUnity is square unless both are zero
	var b Fr
	b.Mul(&a, &RootOfUnity)

	var sqrtA, sqrtB Fr
	isSquare := sqrtA.Sqrt(&a)
	sqrtB.Sqrt(&b)

	numIsZero := int(num.isZeroMask() & 1)
	divIsZero := int(div.isZeroMask() & 1)

	res := sqrtB
	res.cmov(&sqrtA, isSquare)
	*r = res
	// Fail only for nonzero num over a zero divisor; 0/0 is square with root 0.
	return isSquare & ^((numIsZero^1)&divIsZero) & 1
}
