// Package export renders sweep outcomes for people: an xlsx workbook
// (github.com/xuri/excelize/v2) and a one-page pdf report
// (github.com/phpdave11/gofpdf).
//
// Failed solves carry math.MaxFloat64 sentinels; both formats leave those
// cells blank.
package export
