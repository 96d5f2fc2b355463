package bn254fr

import (
	"math/big"
	mrand "math/rand"
	"testing"

	gfr "github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/stretchr/testify/require"
)

// This file cross-checks every public operation against gnark-crypto's BN254
// scalar field implementation over random inputs. The two implementations
// share no code; agreement over many samples is strong evidence that the
// portable algorithms here are bit-exact.

func toOracle(a *Fr) gfr.Element {
	var e gfr.Element
	e.SetBigInt(frToBig(a))
	return e
}

func oracleBig(e *gfr.Element) *big.Int {
	return e.ToBigIntRegular(new(big.Int))
}

func TestFrDifferentialArithmetic(t *testing.T) {
	rng := mrand.New(mrand.NewSource(30))

	for i := 0; i < 100; i++ {
		a := randomFr(rng)
		b := randomFr(rng)
		oa := toOracle(&a)
		ob := toOracle(&b)

		var sum Fr
		sum.Add(&a, &b)
		var osum gfr.Element
		osum.Add(&oa, &ob)
		require.Zero(t, frToBig(&sum).Cmp(oracleBig(&osum)), "add disagrees")

		var diff Fr
		diff.Sub(&a, &b)
		var odiff gfr.Element
		odiff.Sub(&oa, &ob)
		require.Zero(t, frToBig(&diff).Cmp(oracleBig(&odiff)), "sub disagrees")

		var prod Fr
		prod.Mul(&a, &b)
		var oprod gfr.Element
		oprod.Mul(&oa, &ob)
		require.Zero(t, frToBig(&prod).Cmp(oracleBig(&oprod)), "mul disagrees")

		var sq Fr
		sq.Square(&a)
		var osq gfr.Element
		osq.Square(&oa)
		require.Zero(t, frToBig(&sq).Cmp(oracleBig(&osq)), "square disagrees")

		var neg Fr
		neg.Neg(&a)
		var oneg gfr.Element
		oneg.Neg(&oa)
		require.Zero(t, frToBig(&neg).Cmp(oracleBig(&oneg)), "neg disagrees")

		var dbl Fr
		dbl.Double(&a)
		var odbl gfr.Element
		odbl.Double(&oa)
		require.Zero(t, frToBig(&dbl).Cmp(oracleBig(&odbl)), "double disagrees")
	}
}

func TestFrDifferentialInverse(t *testing.T) {
	rng := mrand.New(mrand.NewSource(31))

	for i := 0; i < 25; i++ {
		a := randomFr(rng)
		if a.IsZero() {
			continue
		}
		oa := toOracle(&a)

		var inv Fr
		ok := inv.Invert(&a)
		require.Equal(t, 1, ok)

		var oinv gfr.Element
		oinv.Inverse(&oa)
		require.Zero(t, frToBig(&inv).Cmp(oracleBig(&oinv)), "inverse disagrees")
	}
}

func TestFrDifferentialLegendre(t *testing.T) {
	rng := mrand.New(mrand.NewSource(32))

	for i := 0; i < 50; i++ {
		a := randomFr(rng)
		oa := toOracle(&a)
		require.Equal(t, oa.Legendre(), a.Legendre(), "legendre disagrees")
	}
}

func TestFrDifferentialSqrt(t *testing.T) {
	rng := mrand.New(mrand.NewSource(33))

	for i := 0; i < 25; i++ {
		a := randomFr(rng)
		oa := toOracle(&a)

		var root Fr
		ok := root.Sqrt(&a)

		var oroot gfr.Element
		oracleRoot := oroot.Sqrt(&oa)

		if ok == 1 {
			require.NotNil(t, oracleRoot, "oracle should also find a root")
			// Both roots square to a; they agree up to sign
			mine := frToBig(&root)
			theirs := oracleBig(&oroot)
			if mine.Cmp(theirs) != 0 {
				negMine := new(big.Int).Sub(frModulusBig, mine)
				require.Zero(t, negMine.Cmp(theirs), "roots disagree beyond sign")
			}
		} else {
			require.Nil(t, oracleRoot, "oracle should also fail")
		}
	}
}

func TestFrDifferentialBytes(t *testing.T) {
	rng := mrand.New(mrand.NewSource(34))

	for i := 0; i < 50; i++ {
		a := randomFr(rng)
		oa := toOracle(&a)

		// This package encodes little-endian; gnark-crypto big-endian
		mine := a.Bytes()
		theirs := oa.Bytes()
		for j := 0; j < 32; j++ {
			require.Equal(t, theirs[31-j], mine[j], "byte encodings disagree")
		}
	}
}
