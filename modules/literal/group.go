package literal

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-crypto/ecc/bn254/twistededwards"

	"InstructionCircuit/modules/circuit"
)

// groupWire is a point on the embedded twisted Edwards curve, held as two
// field-element wires. Keeping the coordinates in the builder's scalar
// field lets group constraints live in the same R1CS as everything else.
type groupWire struct {
	x, y circuit.Element
}

func (g groupWire) point() twistededwards.PointAffine {
	return twistededwards.PointAffine{X: g.x.Value(), Y: g.y.Value()}
}

func (g groupWire) mode() circuit.Mode {
	return circuit.Join(g.x.Mode(), g.y.Mode())
}

// recoverY solves a*x^2 + y^2 = 1 + d*x^2*y^2 for y and picks the
// lexicographically smaller root. Returns an error when x is not the
// abscissa of a curve point.
func recoverY(x fr.Element) (fr.Element, error) {
	params := twistededwards.GetEdwardsCurve()
	var x2, num, den, y2, y fr.Element
	x2.Square(&x)
	// y^2 = (1 - a*x^2) / (1 - d*x^2)
	var one fr.Element
	one.SetOne()
	num.Mul(&params.A, &x2)
	num.Sub(&one, &num)
	den.Mul(&params.D, &x2)
	den.Sub(&one, &den)
	if den.IsZero() {
		return fr.Element{}, fmt.Errorf("%s is not a valid group element x-coordinate", x.String())
	}
	den.Inverse(&den)
	y2.Mul(&num, &den)
	if y.Sqrt(&y2) == nil {
		return fr.Element{}, fmt.Errorf("%s is not a valid group element x-coordinate", x.String())
	}
	var negY fr.Element
	negY.Neg(&y)
	if y.Cmp(&negY) > 0 {
		y = negY
	}
	return y, nil
}

// newGroup allocates a group wire from an affine point.
func newGroup(b *circuit.Builder, p twistededwards.PointAffine, mode circuit.Mode) groupWire {
	return groupWire{
		x: b.AllocElement(mode, p.X),
		y: b.AllocElement(mode, p.Y),
	}
}

// Generator returns the curve base point scaled by k.
func Generator(k *big.Int) twistededwards.PointAffine {
	params := twistededwards.GetEdwardsCurve()
	var p twistededwards.PointAffine
	p.ScalarMultiplication(&params.Base, k)
	return p
}

// groupNeg negates the point: (x, y) -> (-x, y). Linear, free.
func groupNeg(b *circuit.Builder, g groupWire) groupWire {
	return groupWire{x: b.ElemNeg(g.x), y: g.y}
}

// groupAdd evaluates the complete twisted Edwards addition law
//
//	x3 = (x1*y2 + y1*x2) / (1 + d*x1*x2*y1*y2)
//	y3 = (y1*y2 - a*x1*x2) / (1 - d*x1*x2*y1*y2)
//
// over field-element wires, then reconciles the result against the native
// curve arithmetic.
func groupAdd(b *circuit.Builder, g1, g2 groupWire) (groupWire, error) {
	params := twistededwards.GetEdwardsCurve()
	aConst := b.ConstantElement(params.A)
	dConst := b.ConstantElement(params.D)
	var oneFr fr.Element
	oneFr.SetOne()
	one := b.ConstantElement(oneFr)

	x1y2 := b.ElemMul(g1.x, g2.y)
	y1x2 := b.ElemMul(g1.y, g2.x)
	x1x2 := b.ElemMul(g1.x, g2.x)
	y1y2 := b.ElemMul(g1.y, g2.y)
	cross := b.ElemMul(x1x2, y1y2)
	dCross := b.ElemMul(dConst, cross)

	x3, err := b.ElemDiv(b.ElemAdd(x1y2, y1x2), b.ElemAdd(one, dCross))
	if err != nil {
		return groupWire{}, err
	}
	y3, err := b.ElemDiv(b.ElemSub(y1y2, b.ElemMul(aConst, x1x2)), b.ElemSub(one, dCross))
	if err != nil {
		return groupWire{}, err
	}
	out := groupWire{x: x3, y: y3}

	p1 := g1.point()
	p2 := g2.point()
	var want twistededwards.PointAffine
	want.Add(&p1, &p2)
	got := out.point()
	if !got.Equal(&want) {
		return groupWire{}, circuit.Haltf("Constrained group addition diverged from the native result")
	}
	return out, nil
}
