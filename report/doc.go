// Package report writes xlsx workbooks with github.com/xuri/excelize/v2.
//
// Two kinds of workbook are produced:
//
//   - input data: the replicates of a dataset laid out side by side, one
//     sheet per substrate role for dual-substrate data, one block per Set;
//   - fit report: the same layout plus a predicted-rate column per
//     replicate, followed by a parameter table (fitted value, bounds, unit).
//
// Replicates of unequal length leave blank cells below the shorter ones.
package report
