package quad

import (
	"math"
)

// Rule is a Gauss-Kronrod rule. The abscissas are stored for the half
// interval [0, 1], with the Kronrod points interleaved between the Gauss
// points and the center last.
type Rule struct {
	xgk, wg, wgk []float64
}

var (
	// GK15 is the 7-point Gauss, 15-point Kronrod rule.
	GK15 = &Rule{
		xgk: []float64{
			0.991455371120812639206854697526329,
			0.949107912342758524526189684047851,
			0.864864423359769072789712788640926,
			0.741531185599394439863864773280788,
			0.586087235467691130294144845693013,
			0.405845151377397166906606412076961,
			0.207784955007898467600689403773245,
			0.000000000000000000000000000000000,
		},
		wg: []float64{
			0.129484966168869693270611432679082,
			0.279705391489276667901467771423780,
			0.381830050505118944950369775488975,
			0.417959183673469387755102040816327,
		},
		wgk: []float64{
			0.022935322010529224963732008058970,
			0.063092092629978553290700663189204,
			0.104790010322250183839876322541518,
			0.140653259715525918745189590510238,
			0.169004726639267902826583426598550,
			0.190350578064785409913256402421014,
			0.204432940075298892414161999234649,
			0.209482141084727828012999174891714,
		},
	}

	// GK21 is the 10-point Gauss, 21-point Kronrod rule.
	GK21 = &Rule{
		xgk: []float64{
			0.995657163025808080735527280689003,
			0.973906528517171720077964012084452,
			0.930157491355708226001207180059508,
			0.865063366688984510732096688423493,
			0.780817726586416897063717578345042,
			0.679409568299024406234327365114874,
			0.562757134668604683339000099272694,
			0.433395394129247190799265943165784,
			0.294392862701460198131126603103866,
			0.148874338981631210884826001129720,
			0.000000000000000000000000000000000,
		},
		wg: []float64{
			0.066671344308688137593568809893332,
			0.149451349150580593145776339657697,
			0.219086362515982043995534934228163,
			0.269266719309996355091226921569469,
			0.295524224714752870173892994651338,
		},
		wgk: []float64{
			0.011694638867371874278064396062192,
			0.032558162307964727478818972459390,
			0.054755896574351996031381300244580,
			0.075039674810919952767043140916190,
			0.093125454583697605535065465083366,
			0.109387158802297641899210590325805,
			0.123491976262065851077600567870475,
			0.134709217311473325928054001771707,
			0.142775938577060080797094273138717,
			0.147739104901338491374841515972068,
			0.149445554002916905664936468389821,
		},
	}
)

// Points returns the number of function evaluations per application of the
// rule.
func (r *Rule) Points() int { return 2*len(r.xgk) - 1 }

// Apply integrates f over [a, b] once. It returns the Kronrod estimate,
// an error estimate, and the integrals of |f| and |f - mean| over the
// interval, which are used for roundoff detection.
func (r *Rule) Apply(
	f Integrand, a, b float64,
) (result, abserr, resabs, resasc float64) {
	n := len(r.xgk)
	fv1, fv2 := make([]float64, n), make([]float64, n)

	center := 0.5 * (a + b)
	halfLength := 0.5 * (b - a)
	absHalfLength := math.Abs(halfLength)
	fCenter := f.Eval(center)

	resGauss := 0.0
	resKronrod := fCenter * r.wgk[n-1]
	resabs = math.Abs(resKronrod)
	if n%2 == 0 {
		resGauss = fCenter * r.wg[n/2-1]
	}

	// Gauss points sit at the odd indices of xgk.
	for j := 0; j < (n-1)/2; j++ {
		jtw := 2*j + 1
		absc := halfLength * r.xgk[jtw]
		f1, f2 := f.Eval(center-absc), f.Eval(center+absc)
		fv1[jtw], fv2[jtw] = f1, f2
		resGauss += r.wg[j] * (f1 + f2)
		resKronrod += r.wgk[jtw] * (f1 + f2)
		resabs += r.wgk[jtw] * (math.Abs(f1) + math.Abs(f2))
	}

	for j := 0; j < n/2; j++ {
		jtwm1 := 2 * j
		absc := halfLength * r.xgk[jtwm1]
		f1, f2 := f.Eval(center-absc), f.Eval(center+absc)
		fv1[jtwm1], fv2[jtwm1] = f1, f2
		resKronrod += r.wgk[jtwm1] * (f1 + f2)
		resabs += r.wgk[jtwm1] * (math.Abs(f1) + math.Abs(f2))
	}

	mean := 0.5 * resKronrod
	resasc = r.wgk[n-1] * math.Abs(fCenter-mean)
	for j := 0; j < n-1; j++ {
		resasc += r.wgk[j] * (math.Abs(fv1[j]-mean) + math.Abs(fv2[j]-mean))
	}

	result = resKronrod * halfLength
	resabs *= absHalfLength
	resasc *= absHalfLength
	abserr = rescaleError((resKronrod-resGauss)*halfLength, resabs, resasc)
	return result, abserr, resabs, resasc
}

func rescaleError(err, resabs, resasc float64) float64 {
	err = math.Abs(err)
	if resasc != 0 && err != 0 {
		scale := math.Pow(200*err/resasc, 1.5)
		if scale < 1 {
			err = resasc * scale
		} else {
			err = resasc
		}
	}
	if resabs > dblMin/(50*dblEpsilon) {
		minErr := 50 * dblEpsilon * resabs
		if minErr > err {
			err = minErr
		}
	}
	return err
}
