package export

// Table is the tabular shape shared by the CSV and XLSX writers: one header
// row and string cells, one report type per column schema.
type Table struct {
	Name    string // sheet/file name
	Headers []string
	Rows    [][]string
}
