// Package plot renders experiment data, fitted curves and fit residuals as
// PNG charts using github.com/wcharczuk/go-chart/v2.
//
// Fit charts come in four coordinate systems (see Transform): the direct
// rate-versus-concentration view and the three classical linearizations
// (Lineweaver-Burk, Hanes-Woolf, Eadie-Hofstee). Points that a linearization
// maps to ±Inf or NaN, such as s = 0 in a double-reciprocal plot, are
// dropped from that chart only.
package plot
