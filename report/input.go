package report

import (
	"fmt"
	"io"

	"github.com/katalvlaran/enzfit/dataset"
)

// SingleInput writes the replicates of ds to one "<name> - input_data" sheet.
func SingleInput(w io.Writer, ds *dataset.SingleSubstrate) error {
	wb, err := newWorkbook()
	if err != nil {
		return err
	}
	sh, err := wb.sheet(ds.Name() + " - input_data")
	if err != nil {
		return err
	}
	if err := writeSingle(sh, ds, nil); err != nil {
		return err
	}

	return wb.writeTo(w)
}

// DualInput writes one sheet per substrate role, each holding a block per
// Set.
func DualInput(w io.Writer, ds *dataset.DualSubstrate) error {
	wb, err := newWorkbook()
	if err != nil {
		return err
	}
	for _, r := range []dataset.Role{dataset.RoleA, dataset.RoleB} {
		sh, err := wb.sheet(ds.VariableName(r) + " - input_data")
		if err != nil {
			return err
		}
		for i, set := range ds.Sets(r) {
			if err := writeSet(sh, ds, r, i, set, nil); err != nil {
				return err
			}
			if err := sh.append(); err != nil {
				return err
			}
		}
	}

	return wb.writeTo(w)
}

// predictFunc returns the predicted rate at point p of replicate j, or
// nothing when no fit is shown.
type predictFunc func(j, p int) float64

// writeSingle lays out replicates side by side; predict adds a third column
// per replicate.
func writeSingle(sh *sheet, ds *dataset.SingleSubstrate, predict predictFunc) error {
	reps := ds.Replicates()
	labels := []string{
		fmt.Sprintf("Concentration [%s]", ds.ConcentrationUnit()),
		fmt.Sprintf("Rate (experimental) [%s]", ds.RateUnit()),
	}
	if predict != nil {
		labels = append(labels, fmt.Sprintf("Rate (predicted) [%s]", ds.RateUnit()))
	}
	if err := sh.header(replicateRow(len(reps), len(labels))...); err != nil {
		return err
	}
	if err := sh.header(cycle(len(reps), labels...)...); err != nil {
		return err
	}

	rows := 0
	for _, r := range reps {
		rows = max(rows, r.Len())
	}
	for p := 0; p < rows; p++ {
		row := make([]any, 0, len(reps)*len(labels))
		for j, r := range reps {
			if p >= r.Len() {
				for range labels {
					row = append(row, "")
				}
				continue
			}
			row = append(row, r.Conc[p], r.Rates[p])
			if predict != nil {
				row = append(row, predict(j, p))
			}
		}
		if err := sh.append(row...); err != nil {
			return err
		}
	}

	return nil
}

// writeSet lays out Set i of role r. Titration data gains an active-enzyme
// column per replicate.
func writeSet(sh *sheet, ds *dataset.DualSubstrate, r dataset.Role, i int, set dataset.Set, predict predictFunc) error {
	c := ds.ConcentrationUnit()
	labels := []string{
		fmt.Sprintf("Concentration (%s) [%s]", ds.VariableName(r), c),
		fmt.Sprintf("Concentration (%s) [%s]", ds.VariableName(r.Other()), c),
		fmt.Sprintf("Rate (experimental) [%s]", ds.RateUnit()),
	}
	if ds.Titration() {
		labels = append(labels, fmt.Sprintf("Enzyme (active) [%s]", c))
	}
	if predict != nil {
		labels = append(labels, fmt.Sprintf("Rate (predicted) [%s]", ds.RateUnit()))
	}

	if err := sh.header(fmt.Sprintf("Set %d", i+1)); err != nil {
		return err
	}
	if err := sh.header(replicateRow(len(set.Replicates), len(labels))...); err != nil {
		return err
	}
	if err := sh.header(cycle(len(set.Replicates), labels...)...); err != nil {
		return err
	}

	rows := 0
	for _, rep := range set.Replicates {
		rows = max(rows, rep.Len())
	}
	for p := 0; p < rows; p++ {
		row := make([]any, 0, len(set.Replicates)*len(labels))
		for j, rep := range set.Replicates {
			if p >= rep.Len() {
				for range labels {
					row = append(row, "")
				}
				continue
			}
			row = append(row, rep.Var[p], rep.Const[p], rep.Rates[p])
			if ds.Titration() {
				row = append(row, rep.Enzyme[p])
			}
			if predict != nil {
				row = append(row, predict(j, p))
			}
		}
		if err := sh.append(row...); err != nil {
			return err
		}
	}

	return nil
}
