package report_test

import (
	"bytes"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/katalvlaran/enzfit/dataset"
	"github.com/katalvlaran/enzfit/fit"
	"github.com/katalvlaran/enzfit/ratelaw"
	"github.com/katalvlaran/enzfit/report"
)

func mm(km, vmax float64, xs []float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = vmax * x / (km + x)
	}

	return out
}

func mmLaw(t *testing.T) ratelaw.Law {
	t.Helper()
	env, err := ratelaw.NewEnv(1)
	require.NoError(t, err)
	law, err := ratelaw.New(ratelaw.MichaelisMenten, env)
	require.NoError(t, err)

	return law
}

func open(t *testing.T, buf *bytes.Buffer) *excelize.File {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	return f
}

func cell(t *testing.T, f *excelize.File, sheet, ref string) string {
	t.Helper()
	v, err := f.GetCellValue(sheet, ref)
	require.NoError(t, err)

	return v
}

func num(t *testing.T, f *excelize.File, sheet, ref string) float64 {
	t.Helper()
	v, err := strconv.ParseFloat(cell(t, f, sheet, ref), 64)
	require.NoError(t, err, ref)

	return v
}

func singleData(t *testing.T) *dataset.SingleSubstrate {
	t.Helper()
	ds := dataset.NewSingleSubstrate("assay")
	require.NoError(t, ds.AddReplicate([]float64{1, 2, 4}, mm(2, 10, []float64{1, 2, 4})))
	require.NoError(t, ds.AddReplicate([]float64{0.5, 8}, mm(2, 10, []float64{0.5, 8})))

	return ds
}

func TestSingleInput_Layout(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.SingleInput(&buf, singleData(t)))
	f := open(t, &buf)

	const sh = "assay - input_data"
	assert.Equal(t, []string{sh}, f.GetSheetList())
	assert.Equal(t, "Replicate 1", cell(t, f, sh, "A1"))
	assert.Equal(t, "Replicate 2", cell(t, f, sh, "C1"))
	assert.Equal(t, "Concentration [mM]", cell(t, f, sh, "A2"))
	assert.Equal(t, "Rate (experimental) [(mM)/(s)]", cell(t, f, sh, "D2"))
	assert.Equal(t, 4.0, num(t, f, sh, "A5"))
	assert.Equal(t, 8.0, num(t, f, sh, "C4"))
	assert.Empty(t, cell(t, f, sh, "C5"), "short replicate leaves blanks")
}

func TestSingleFit_PredictionsAndParameters(t *testing.T) {
	ds := singleData(t)
	res, err := fit.NewEngine().FitSingle(mmLaw(t), ds)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, report.SingleFit(&buf, ds, res))
	f := open(t, &buf)

	const sh = "fit results"
	assert.Equal(t, "Rate (predicted) [(mM)/(s)]", cell(t, f, sh, "C2"))
	assert.InDelta(t, 10.0/3, num(t, f, sh, "C3"), 1e-6)
	assert.InDelta(t, 8.0, num(t, f, sh, "F4"), 1e-6)

	assert.Equal(t, "Fit parameters", cell(t, f, sh, "A7"))
	assert.Equal(t, "Michaelis-Menten", cell(t, f, sh, "B7"))
	assert.Equal(t, "Upper bound", cell(t, f, sh, "D8"))
	assert.Equal(t, "km", cell(t, f, sh, "A9"))
	assert.InDelta(t, 2.0, num(t, f, sh, "B9"), 1e-6)
	assert.Equal(t, 100.0, num(t, f, sh, "D9"))
	assert.Equal(t, "mM", cell(t, f, sh, "E9"))
	assert.Equal(t, "v_max", cell(t, f, sh, "A10"))
	assert.Equal(t, "(mM)/(s)", cell(t, f, sh, "E10"))
	assert.Equal(t, "Sum of squares", cell(t, f, sh, "A11"))
	assert.Equal(t, "Status", cell(t, f, sh, "A12"))
}

func dualData(t *testing.T, opts ...dataset.Option) *dataset.DualSubstrate {
	t.Helper()
	ds, err := dataset.NewDualSubstrate("bi", opts...)
	require.NoError(t, err)
	xs := []float64{1, 2, 4}
	inj := &dataset.Injection{V0: 1, VAdd: 0.1}
	require.NoError(t, ds.Append(dataset.SetSpec{Const: 1, Injection: inj}, xs, mm(1, 2, xs)))
	ds.NextSet()
	require.NoError(t, ds.Append(dataset.SetSpec{Const: 4, Injection: inj}, xs, mm(1, 4, xs)))

	return ds
}

func TestDualInput_SheetsPerRole(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.DualInput(&buf, dualData(t)))
	f := open(t, &buf)

	assert.Equal(t, []string{"A - input_data", "B - input_data"}, f.GetSheetList())
	const sh = "A - input_data"
	assert.Equal(t, "Set 1", cell(t, f, sh, "A1"))
	assert.Equal(t, "Replicate 1", cell(t, f, sh, "A2"))
	assert.Equal(t, "Concentration (A) [mM]", cell(t, f, sh, "A3"))
	assert.Equal(t, "Concentration (B) [mM]", cell(t, f, sh, "B3"))
	assert.Equal(t, 1.0, num(t, f, sh, "B4"))
	// set 2 starts after 3 headers, 3 points and a blank row
	assert.Equal(t, "Set 2", cell(t, f, sh, "A8"))
	assert.Equal(t, 4.0, num(t, f, sh, "B11"))
}

func TestDualFit_TitrationColumns(t *testing.T) {
	env, err := ratelaw.NewEnv(1)
	require.NoError(t, err)
	ds := dualData(t, dataset.WithEnzyme(env), dataset.WithTitration())

	fits, err := fit.NewEngine().FitSets(mmLaw(t), ds, dataset.RoleA)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, report.DualFit(&buf, ds, map[dataset.Role]fit.SetFits{dataset.RoleA: fits}))
	f := open(t, &buf)

	const sh = "A - fitted_data"
	assert.Equal(t, []string{sh}, f.GetSheetList())
	assert.Equal(t, "Enzyme (active) [mM]", cell(t, f, sh, "D3"))
	assert.True(t, strings.HasPrefix(cell(t, f, sh, "E3"), "Rate (predicted)"))
	assert.InDelta(t, 1.0/1.2, num(t, f, sh, "D4"), 1e-12)
	assert.Equal(t, "Fit parameters", cell(t, f, sh, "A8"))
}

func TestDualFit_Rejects(t *testing.T) {
	ds := dualData(t)
	var buf bytes.Buffer
	assert.ErrorIs(t, report.DualFit(&buf, ds, nil), report.ErrNoFits)

	res, err := fit.NewEngine().FitSet(mmLaw(t), ds, dataset.RoleA, 0)
	require.NoError(t, err)
	err = report.DualFit(&buf, ds, map[dataset.Role]fit.SetFits{dataset.RoleA: {res}})
	assert.ErrorIs(t, err, report.ErrFitCount)
}

func TestSheetNamesAreCleaned(t *testing.T) {
	ds := dataset.NewSingleSubstrate("run [3]: a/b with a rather long title")
	require.NoError(t, ds.AddReplicate([]float64{1}, []float64{1}))

	var buf bytes.Buffer
	require.NoError(t, report.SingleInput(&buf, ds))
	f := open(t, &buf)
	name := f.GetSheetList()[0]
	assert.LessOrEqual(t, len([]rune(name)), excelize.MaxSheetNameLength)
	assert.False(t, strings.ContainsAny(name, `:\/?*[]`))
}
