package bn254fr

import (
	mrand "math/rand"
	"testing"
)

func TestFrSqrtOfSquares(t *testing.T) {
	rng := mrand.New(mrand.NewSource(20))

	for i := 0; i < 25; i++ {
		a := randomFr(rng)
		var sq, root, check Fr
		sq.Square(&a)

		if ok := root.Sqrt(&sq); ok != 1 {
			t.Fatal("a square should have a square root")
		}
		check.Square(&root)
		if !check.Equal(&sq) {
			t.Fatal("the root squared should give back the square")
		}

		// The root is a or -a
		var na Fr
		na.Neg(&a)
		if !root.Equal(&a) && !root.Equal(&na) {
			t.Fatal("the root should be a or -a")
		}
	}
}

func TestFrSqrtZero(t *testing.T) {
	var root Fr
	if ok := root.Sqrt(&FrZero); ok != 1 {
		t.Error("zero should be a residue")
	}
	if !root.IsZero() {
		t.Error("the square root of zero should be zero")
	}
}

func TestFrSqrtNonResidue(t *testing.T) {
	// The generator is a primitive root, hence a non-residue
	var root Fr
	if ok := root.Sqrt(&Generator); ok != 0 {
		t.Error("the generator should not have a square root")
	}
}

func TestFrResidueDistribution(t *testing.T) {
	// Exactly half of the nonzero elements are residues; statistically a
	// random sample should stay near half
	rng := mrand.New(mrand.NewSource(21))

	residues := 0
	const samples = 200
	for i := 0; i < samples; i++ {
		a := randomFr(rng)
		if a.IsZero() {
			continue
		}
		switch a.Legendre() {
		case 1:
			residues++
		case -1:
		default:
			t.Fatal("nonzero element should have symbol 1 or -1")
		}
	}
	if residues < 60 || residues > 140 {
		t.Errorf("residue count %d out of the plausible range for %d samples", residues, samples)
	}
}

func TestFrLegendre(t *testing.T) {
	if FrZero.Legendre() != 0 {
		t.Error("legendre(0) should be 0")
	}
	if FrOne.Legendre() != 1 {
		t.Error("legendre(1) should be 1")
	}
	if Generator.Legendre() != -1 {
		t.Error("the generator should be a non-residue")
	}

	rng := mrand.New(mrand.NewSource(22))
	for i := 0; i < 25; i++ {
		a := randomFr(rng)
		if a.IsZero() {
			continue
		}
		var sq Fr
		sq.Square(&a)
		if sq.Legendre() != 1 {
			t.Fatal("a nonzero square should be a residue")
		}
		sq.Mul(&sq, &Generator)
		if sq.Legendre() != -1 {
			t.Fatal("a square times a non-residue should be a non-residue")
		}
	}
}

func TestFrSqrtRatio(t *testing.T) {
	rng := mrand.New(mrand.NewSource(23))

	// num == 0 with nonzero divisor: (1, 0)
	var r Fr
	if ok := r.SqrtRatio(&FrZero, &Generator); ok != 1 || !r.IsZero() {
		t.Error("sqrt_ratio(0, d) should be (1, 0)")
	}

	// Nonzero num over a zero divisor: (0, 0)
	if ok := r.SqrtRatio(&FrOne, &FrZero); ok != 0 || !r.IsZero() {
		t.Error("sqrt_ratio(n, 0) should be (0, 0)")
	}

	// num == 0 wins when both are zero: (1, 0)
	if ok := r.SqrtRatio(&FrZero, &FrZero); ok != 1 || !r.IsZero() {
		t.Error("sqrt_ratio(0, 0) should be (1, 0)")
	}

	for i := 0; i < 25; i++ {
		num := randomFr(rng)
		div := randomFr(rng)
		if num.IsZero() || div.IsZero() {
			continue
		}

		var divInv, ratio Fr
		divInv.Invert(&div)
		ratio.Mul(&num, &divInv)

		ok := r.SqrtRatio(&num, &div)
		var check Fr
		check.Square(&r)

		if ok == 1 {
			if !check.Equal(&ratio) {
				t.Fatal("on success the result should square to num/div")
			}
		} else {
			var shifted Fr
			shifted.Mul(&ratio, &RootOfUnity)
			if !check.Equal(&shifted) {
				t.Fatal("on failure the result should square to z*num/div")
			}
		}

		if want := ratio.Legendre() == 1 || ratio.IsZero(); want != (ok == 1) {
			t.Fatal("the flag should match the residue status of the ratio")
		}
	}
}

func TestFrRootOfUnityOrder(t *testing.T) {
	// RootOfUnity^(2^S) == 1 and RootOfUnity^(2^(S-1)) != 1
	w := RootOfUnity
	for i := 0; i < S-1; i++ {
		w.Square(&w)
	}
	if w.IsOne() {
		t.Error("the root of unity should have order exactly 2^S")
	}
	w.Square(&w)
	if !w.IsOne() {
		t.Error("the root of unity should have order dividing 2^S")
	}

	var prod Fr
	prod.Mul(&RootOfUnity, &RootOfUnityInv)
	if !prod.IsOne() {
		t.Error("RootOfUnityInv should invert RootOfUnity")
	}
}

func TestFrZeta(t *testing.T) {
	if Zeta.IsOne() {
		t.Error("zeta should not be one")
	}

	var z2, z3 Fr
	z2.Square(&Zeta)
	if z2.IsOne() {
		t.Error("zeta should not have order 2")
	}
	z3.Mul(&z2, &Zeta)
	if !z3.IsOne() {
		t.Error("zeta cubed should be one")
	}
}

func TestFrDelta(t *testing.T) {
	// Delta = Generator^(2^S)
	g := Generator
	for i := 0; i < S; i++ {
		g.Square(&g)
	}
	if !g.Equal(&Delta) {
		t.Error("delta should equal the generator raised to 2^S")
	}
}

func TestFrTwoInv(t *testing.T) {
	var prod Fr
	two := NewFr(2)
	prod.Mul(&TwoInv, two)
	if !prod.IsOne() {
		t.Error("TwoInv should invert 2")
	}
}
