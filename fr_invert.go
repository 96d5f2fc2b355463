package bn254fr

// pow raises a to a fixed 4-limb exponent. The ladder squares on every bit
// and multiplies unconditionally, selecting the multiplied value by mask, so
// the operation sequence is identical for every base and every exponent.
// All exponents used in this package are public modulus-derived constants.
func (r *Fr) pow(a *Fr, e *[4]uint64) {
	res := FrOne
	base := *a

	for i := 3; i >= 0; i-- {
		for j := 63; j >= 0; j-- {
			res.Square(&res)
			var t Fr
			t.Mul(&res, &base)
			res.cmov(&t, int((e[i]>>uint(j))&1))
		}
	}

	*r = res
}

// Invert computes the multiplicative inverse of a using Fermat's little
// theorem: a^(r-2) mod r. It returns 1 if a was invertible and 0 if a was
// zero, in which case the written value is zero and must not be used. The
// running time is independent of a, including the zero case; the flag is
// derived by constant-time comparison, not a branch.
func (r *Fr) Invert(a *Fr) (ok int) {
	var inv Fr
	inv.pow(a, &frExpInvert)

	ok = int((a.isZeroMask() + 1) & 1)
	*r = inv
	return ok
}

// BatchInvert computes the inverses of a slice of nonzero field elements
// using Montgomery's trick, trading n inversions for one inversion and 3n
// multiplications. out and a must have the same length; a zero input element
// corrupts the whole batch, matching the single-inversion contract that zero
// has no inverse.
func BatchInvert(out []Fr, a []Fr) {
	n := len(a)
	if n == 0 {
		return
	}
	if len(out) != n {
		panic("output slice must match input length")
	}

	// s_i = a_0 * a_1 * ... * a_{i-1}
	s := make([]Fr, n)
	s[0] = FrOne
	for i := 1; i < n; i++ {
		s[i].Mul(&s[i-1], &a[i-1])
	}

	// u = (a_0 * a_1 * ... * a_{n-1})^-1
	var u Fr
	u.Mul(&s[n-1], &a[n-1])
	u.Invert(&u)

	// out_i = (a_0 * ... * a_{i-1}) * (a_0 * ... * a_i)^-1
	//
	// Loop backwards to make it an in-place algorithm.
	for i := n - 1; i >= 0; i-- {
		out[i].Mul(&u, &s[i])
		u.Mul(&u, &a[i])
	}
}
