// Package ratelaw is the library of closed-form enzyme rate laws.
//
// Every mechanism is a tag of the closed Kind enum and is served by the single
// Model type, which implements the Law capability set:
//
//   - Residual: predicted − observed over flattened arrays, side-effect free;
//   - Predictor: a pure function bound to resolved parameter values;
//   - Unit: per-parameter display unit looked up from a dataset.
//
// Inputs carry the independent (variable) substrate concentrations, the
// constant-substrate concentrations for two-substrate laws, and optionally the
// per-point active enzyme concentration produced by titration assays. Laws that
// scale with enzyme (mm, ainh, ma, uci) read the per-point value when present
// and the Env total otherwise.
//
// Numerics are not guarded: a dissociation constant driven to zero
// yields Inf/NaN, which Residual and Predictor.Eval report as ErrNonFinite
// (an enzfit.ErrNumeric) instead of clamping.
//
// Mechanisms (s = variable substrate, b = constant substrate, E = enzyme):
//
//	mm     v_max·E·s/(km+s)
//	he     v_max·sⁿ/(kh+sⁿ)
//	ainh   v_max·E·s·(ks+s)^(n−1) / (L·(ks·(1+inh/ki))ⁿ + (ks+s)ⁿ)
//	ci     v_max·s/(km + s + km·inh/ki)
//	ma     v_max·E·s·act/(kms·(kas+act) + s·(kac+act))
//	nci    v_max·s/((km+s)·(1+inh/ki))
//	mi     v_max·s/(km·(1+inh/kis) + s·(1+inh/kic))
//	sa     v_max·s·act/(kms·ka + (kms+s)·act)
//	sua    v_max·(s/ksa)²/(1 + s/ksc + s/ksa + (s/ksa)²)
//	uci    v_max·E·s/(km + s·(1+inh/ki))
//	ppm    v_max·b·s/(kmb·s + kma·b + s·b)
//	ppmsi  v_max·b·s/(kmb·s + kma·b·(1+b/kdb) + s·b)
//	tc     v_max·b·s/(kda·kmb + kmb·s + kma·b + s·b)
//	tcsi   v_max·b·s/(kda·kmb + kmb·s + kma·b + s·b·(1+b/ksib))
package ratelaw
