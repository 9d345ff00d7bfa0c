// Package config reads the YAML files driving an enzfit run.
//
// A run configuration selects the rate laws to fit, their parameter
// overrides, engine tolerances, where the project is persisted and which
// artifacts are written:
//
//	enzyme: 0.05
//	units: {concentration: mM, time: s}
//	fit: {initializations: 20, seed: 7}
//	models:
//	  - kind: mm
//	    params:
//	      km: {min: 0, max: 50}
//	  - kind: he
//	    params:
//	      n: {value: 1, fixed: true}
//	storage: {backend: sqlite, dsn: enzfit.db, codec: zstd}
//	output: {dir: out, workbook: true, plots: true}
//
// An Experiment describes the measurements themselves and is replayed into a
// dataset store through its append operations, so every check the store
// performs on interactive input also applies to files.
package config
