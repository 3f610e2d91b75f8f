package kinematics_test

import (
	"errors"
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/san-kum/dhkin/internal/kinematics"
	"github.com/san-kum/dhkin/internal/symbolic"
	"go.uber.org/multierr"
	"gonum.org/v1/gonum/mat"
)

const tol = 1e-12

func randomTable(r *rand.Rand, n int) kinematics.Table[float64] {
	table := make(kinematics.Table[float64], n)
	for i := range table {
		table[i] = kinematics.Joint[float64]{
			Theta: (r.Float64()*2 - 1) * math.Pi,
			D:     (r.Float64()*2 - 1) * 2,
			A:     (r.Float64()*2 - 1) * 2,
			Alpha: (r.Float64()*2 - 1) * math.Pi,
		}
	}
	return table
}

func scaraTable(twist symbolic.Expr) kinematics.Table[symbolic.Expr] {
	s := symbolic.Symbols("q1", "q2", "l1", "l2", "d3")
	zero := symbolic.Int(0)
	return kinematics.Table[symbolic.Expr]{
		{Theta: s[0], D: zero, A: s[2], Alpha: zero},
		{Theta: s[1], D: zero, A: s[3], Alpha: twist},
		{Theta: zero, D: s[4], A: zero, Alpha: zero},
	}
}

var _ = Describe("Numeric chain", func() {
	It("returns the identity for a zero joint", func() {
		h, err := kinematics.BuildNumeric(kinematics.Table[float64]{{}})
		Expect(err).NotTo(HaveOccurred())
		Expect(h).To(Equal(kinematics.Identity(kinematics.Float)))
	})

	It("rotates a quarter turn about Z", func() {
		h, err := kinematics.BuildNumeric(kinematics.Table[float64]{{Theta: math.Pi / 2}})
		Expect(err).NotTo(HaveOccurred())
		Expect(h[0][0]).To(BeNumerically("~", 0, tol))
		Expect(h[0][1]).To(BeNumerically("~", -1, tol))
		Expect(h[1][0]).To(BeNumerically("~", 1, tol))
		Expect(h[1][1]).To(BeNumerically("~", 0, tol))
		Expect(h[2][2]).To(Equal(1.0))
		Expect(h[0][3]).To(Equal(0.0))
		Expect(h[1][3]).To(Equal(0.0))
		Expect(h[2][3]).To(Equal(0.0))
		Expect(kinematics.BottomRowExact(h)).To(BeTrue())
	})

	It("places a planar two-link tip at the summed link vectors", func() {
		q1, q2 := math.Pi/4, math.Pi/4
		h, err := kinematics.BuildNumeric(kinematics.Table[float64]{
			{Theta: q1, A: 1},
			{Theta: q2, A: 1},
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(h[0][3]).To(BeNumerically("~", math.Cos(q1)+math.Cos(q1+q2), tol))
		Expect(h[1][3]).To(BeNumerically("~", math.Sin(q1)+math.Sin(q1+q2), tol))
		Expect(h[2][3]).To(BeNumerically("~", 0, tol))
		Expect(h[0][3]).To(BeNumerically("~", 0.7071067811865476, 1e-9))
		Expect(h[1][3]).To(BeNumerically("~", 1.7071067811865475, 1e-9))
	})

	It("composes elementary transforms in Z-then-X order", func() {
		j := kinematics.Joint[float64]{Theta: 0.4, D: 0.3, A: 1.2, Alpha: -0.9}
		want := mgl64.HomogRotate3DZ(j.Theta).
			Mul4(mgl64.Translate3D(0, 0, j.D)).
			Mul4(mgl64.Translate3D(j.A, 0, 0)).
			Mul4(mgl64.HomogRotate3DX(j.Alpha))
		h := kinematics.JointTransform(kinematics.Float, j)
		Expect(kinematics.ToMat4(h).ApproxEqualThreshold(want, tol)).To(BeTrue())
		Expect(kinematics.MaxAbsDiff(kinematics.FromMat4(want), h)).To(BeNumerically("<", tol))
	})

	It("is composable across a split table", func() {
		r := rand.New(rand.NewSource(7))
		for n := 2; n <= 6; n++ {
			table := randomTable(r, n)
			for k := 1; k < n; k++ {
				whole, err := kinematics.BuildNumeric(table)
				Expect(err).NotTo(HaveOccurred())
				head, err := kinematics.BuildNumeric(table[:k])
				Expect(err).NotTo(HaveOccurred())
				tail, err := kinematics.BuildNumeric(table[k:])
				Expect(err).NotTo(HaveOccurred())

				var prod mat.Dense
				prod.Mul(kinematics.Dense(head), kinematics.Dense(tail))
				Expect(mat.EqualApprox(&prod, kinematics.Dense(whole), 1e-9)).To(BeTrue())
			}
		}
	})

	It("keeps results homogeneous", func() {
		r := rand.New(rand.NewSource(42))
		for i := 0; i < 50; i++ {
			h, err := kinematics.BuildNumeric(randomTable(r, 1+r.Intn(6)))
			Expect(err).NotTo(HaveOccurred())
			Expect(kinematics.IsHomogeneous(h, 1e-9)).To(BeTrue())
		}
	})

	It("returns one frame per joint", func() {
		table := randomTable(rand.New(rand.NewSource(3)), 4)
		frames, err := kinematics.Frames(kinematics.Float, table)
		Expect(err).NotTo(HaveOccurred())
		Expect(frames).To(HaveLen(4))
		h, _ := kinematics.BuildNumeric(table)
		Expect(frames[3]).To(Equal(h))
	})

	It("extracts the pose of a quarter turn", func() {
		h, err := kinematics.BuildNumeric(kinematics.Table[float64]{{Theta: math.Pi / 2, D: 0.5, A: 2}})
		Expect(err).NotTo(HaveOccurred())
		p := kinematics.PoseOf(h)
		Expect(p.Position.ApproxEqualThreshold(mgl64.Vec3{0, 2, 0.5}, tol)).To(BeTrue())
		Expect(p.Orientation.W).To(BeNumerically("~", math.Sqrt2/2, 1e-9))
		Expect(p.Orientation.V.Z()).To(BeNumerically("~", math.Sqrt2/2, 1e-9))
	})

	Describe("errors", func() {
		It("rejects an empty table", func() {
			_, err := kinematics.BuildNumeric(nil)
			Expect(err).To(MatchError(kinematics.ErrEmptyTable))
			_, err = kinematics.BuildSymbolic(kinematics.Table[symbolic.Expr]{})
			Expect(err).To(MatchError(kinematics.ErrEmptyTable))
			_, err = kinematics.BuildRows(nil, kinematics.ModeNumeric)
			Expect(err).To(MatchError(kinematics.ErrEmptyTable))
		})

		It("rejects non-finite inputs", func() {
			_, err := kinematics.BuildNumeric(kinematics.Table[float64]{{Theta: math.NaN()}, {A: math.Inf(1)}})
			Expect(errors.Is(err, kinematics.ErrInvalidParameter)).To(BeTrue())
			Expect(multierr.Errors(err)).To(HaveLen(2))

			var pe *kinematics.ParameterError
			Expect(errors.As(err, &pe)).To(BeTrue())
			Expect(pe.Joint).To(Equal(0))
			Expect(pe.Field).To(Equal("theta"))
		})

		It("reports overflowing entries", func() {
			_, err := kinematics.BuildNumeric(kinematics.Table[float64]{{D: math.MaxFloat64}, {D: math.MaxFloat64}})
			Expect(err).To(MatchError(kinematics.ErrNonFiniteResult))

			var re *kinematics.ResultError
			Expect(errors.As(err, &re)).To(BeTrue())
			Expect(re.Row).To(Equal(2))
			Expect(re.Col).To(Equal(3))
			Expect(math.IsInf(re.Value, 1)).To(BeTrue())
		})
	})
})

var _ = Describe("Symbolic chain", func() {
	q1, l1 := symbolic.Symbol("q1"), symbolic.Symbol("l1")

	It("keeps symbols in a single joint", func() {
		h, err := kinematics.BuildSymbolic(kinematics.Table[symbolic.Expr]{
			{Theta: q1, D: symbolic.Int(0), A: l1, Alpha: symbolic.Int(0)},
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(h[0][0].Equal(symbolic.Cos(q1))).To(BeTrue())
		Expect(h[0][1].Equal(symbolic.Neg(symbolic.Sin(q1)))).To(BeTrue())
		Expect(h[0][3].Equal(symbolic.Mul(l1, symbolic.Cos(q1)))).To(BeTrue())
		Expect(h[1][3].Equal(symbolic.Mul(l1, symbolic.Sin(q1)))).To(BeTrue())
		Expect(h[3][3].Equal(symbolic.Int(1))).To(BeTrue())
		Expect(h[3][0].IsZero()).To(BeTrue())
	})

	It("builds the SCARA closed form with a half-turn twist", func() {
		h, err := kinematics.BuildSymbolic(scaraTable(symbolic.Pi()))
		Expect(err).NotTo(HaveOccurred())

		x := symbolic.MustParse("l1*cos(q1) + l2*cos(q1)*cos(q2) - l2*sin(q1)*sin(q2)")
		y := symbolic.MustParse("l1*sin(q1) + l2*sin(q1)*cos(q2) + l2*cos(q1)*sin(q2)")
		Expect(h[0][3].Equal(x)).To(BeTrue(), h[0][3].String())
		Expect(h[1][3].Equal(y)).To(BeTrue(), h[1][3].String())
		Expect(h[2][3].Equal(symbolic.Neg(symbolic.Symbol("d3")))).To(BeTrue())
		Expect(h[2][2].Equal(symbolic.Int(-1))).To(BeTrue())
	})

	It("keeps a literal 180 twist as a radian value", func() {
		h, err := kinematics.BuildSymbolic(scaraTable(symbolic.Int(180)))
		Expect(err).NotTo(HaveOccurred())
		c := symbolic.Cos(symbolic.Int(180))
		Expect(h[2][2].Equal(c)).To(BeTrue())
		Expect(h[2][3].Equal(symbolic.Mul(c, symbolic.Symbol("d3")))).To(BeTrue())
		Expect(h[2][2].String()).To(Equal("cos(180)"))
	})

	It("is exactly composable", func() {
		table := scaraTable(symbolic.Pi())
		whole, err := kinematics.BuildSymbolic(table)
		Expect(err).NotTo(HaveOccurred())
		head, err := kinematics.BuildSymbolic(table[:1])
		Expect(err).NotTo(HaveOccurred())
		tail, err := kinematics.BuildSymbolic(table[1:])
		Expect(err).NotTo(HaveOccurred())

		prod := kinematics.Mul(kinematics.Symbolic, head, tail)
		for i := range whole {
			for j := range whole[i] {
				Expect(prod[i][j].Equal(whole[i][j])).To(BeTrue(), "entry [%d][%d]", i, j)
			}
		}
	})

	It("agrees with the numeric chain after substitution", func() {
		table := scaraTable(symbolic.Pi())
		env := map[string]float64{"q1": 0.3, "q2": -0.7, "l1": 1, "l2": 0.8, "d3": 0.25}

		sym, err := kinematics.BuildSymbolic(table)
		Expect(err).NotTo(HaveOccurred())
		evaluated, err := kinematics.Evaluate(sym, env)
		Expect(err).NotTo(HaveOccurred())

		numTable, err := kinematics.Bind(table, env)
		Expect(err).NotTo(HaveOccurred())
		num, err := kinematics.BuildNumeric(numTable)
		Expect(err).NotTo(HaveOccurred())

		Expect(kinematics.MaxAbsDiff(evaluated, num)).To(BeNumerically("<", 1e-12))
	})

	It("reports unbound symbols on evaluation", func() {
		sym, err := kinematics.BuildSymbolic(scaraTable(symbolic.Pi()))
		Expect(err).NotTo(HaveOccurred())
		_, err = kinematics.Evaluate(sym, map[string]float64{"q1": 1})
		Expect(err).To(MatchError(symbolic.ErrUnboundSymbol))

		_, err = kinematics.Bind(scaraTable(symbolic.Pi()), map[string]float64{"q1": 1})
		Expect(err).To(MatchError(kinematics.ErrInvalidParameter))
	})

	It("lists free symbols", func() {
		Expect(kinematics.FreeSymbols(scaraTable(symbolic.Pi()))).To(Equal([]string{"d3", "l1", "l2", "q1", "q2"}))
	})

	It("collapses sin^2 + cos^2 after substitution", func() {
		h, err := kinematics.BuildSymbolic(kinematics.Table[symbolic.Expr]{
			{Theta: q1, D: symbolic.Int(0), A: symbolic.Int(0), Alpha: symbolic.Int(0)},
			{Theta: symbolic.Neg(q1), D: symbolic.Int(0), A: symbolic.Int(0), Alpha: symbolic.Int(0)},
		})
		Expect(err).NotTo(HaveOccurred())
		s := kinematics.Simplify(h)
		Expect(s[0][0].Equal(symbolic.Int(1))).To(BeTrue(), s[0][0].String())
		Expect(s[0][1].IsZero()).To(BeTrue(), s[0][1].String())
	})

	It("renders a bmatrix", func() {
		h, err := kinematics.BuildSymbolic(kinematics.Table[symbolic.Expr]{
			{Theta: q1, D: symbolic.Int(0), A: symbolic.Int(0), Alpha: symbolic.Int(0)},
		})
		Expect(err).NotTo(HaveOccurred())
		out := kinematics.LaTeX(h)
		Expect(out).To(HavePrefix(`\begin{bmatrix}`))
		Expect(out).To(HaveSuffix(`\end{bmatrix}`))
		Expect(out).To(ContainSubstring(`\cos\left(q_{1}\right)`))
	})
})

var _ = Describe("Dynamic rows", func() {
	It("builds numeric rows from mixed scalar kinds", func() {
		res, err := kinematics.BuildRows([][]any{
			{"pi/4", 0, 1, 0},
			{math.Pi / 4, int64(0), float32(1), "0"},
		}, kinematics.ModeNumeric)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Numeric[0][3]).To(BeNumerically("~", 0.7071067811865476, 1e-9))
		Expect(res.Cells()[3][3]).To(Equal("1"))
	})

	It("builds symbolic rows from strings and numbers", func() {
		res, err := kinematics.BuildRows([][]any{
			{"q1", 0, "l1", 0},
			{symbolic.Symbol("q2"), 0, "l2", 180},
			{0, "d3", 0, 0},
		}, kinematics.ModeSymbolic)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Mode).To(Equal(kinematics.ModeSymbolic))
		Expect(res.Cells()[2][2]).To(Equal("cos(180)"))
	})

	It("rejects a three-field tuple", func() {
		_, err := kinematics.BuildRows([][]any{{0, 0, 0}}, kinematics.ModeNumeric)
		Expect(err).To(MatchError(kinematics.ErrInvalidParameter))
		var pe *kinematics.ParameterError
		Expect(errors.As(err, &pe)).To(BeTrue())
		Expect(pe.Field).To(BeEmpty())
	})

	It("rejects symbols in numeric mode", func() {
		_, err := kinematics.BuildRows([][]any{{"q1", 0, 1, 0}}, kinematics.ModeNumeric)
		Expect(err).To(MatchError(kinematics.ErrInvalidParameter))
	})

	It("reports every malformed field", func() {
		_, err := kinematics.BuildRows([][]any{
			{0, 0, 0},
			{"q", 0, struct{}{}, 0},
		}, kinematics.ModeNumeric)
		Expect(multierr.Errors(err)).To(HaveLen(3))
	})

	It("parses modes", func() {
		m, err := kinematics.ParseMode("Symbolic")
		Expect(err).NotTo(HaveOccurred())
		Expect(m).To(Equal(kinematics.ModeSymbolic))
		Expect(m.String()).To(Equal("symbolic"))
		_, err = kinematics.ParseMode("complex")
		Expect(err).To(HaveOccurred())
	})
})
