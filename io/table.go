/*package io handles the text files read and written by radprof: gcfg
configuration files for each mode, whitespace-separated tables of radii and
profile values, and column output.
*/
package io

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/phil-mansfield/table"
	"gonum.org/v1/gonum/floats"

	"github.com/phil-mansfield/radprof/profile"
)

// ParseColumns parses a whitespace-separated list of exactly n column
// indices.
func ParseColumns(s string, n int) ([]int, error) {
	tokens := strings.Fields(s)
	if len(tokens) != n {
		return nil, fmt.Errorf("expected %d columns, got '%s'", n, s)
	}

	cols := make([]int, n)
	for i, tok := range tokens {
		col, err := strconv.Atoi(tok)
		if err != nil {
			return nil, fmt.Errorf("column '%s' is not an integer", tok)
		} else if col < 0 {
			return nil, fmt.Errorf("column %d is negative", col)
		}
		cols[i] = col
	}
	return cols, nil
}

// ReadColumns reads the given columns of a text table. Lines starting with
// '#' are skipped.
func ReadColumns(fname string, cols []int) ([][]float64, error) {
	vals, err := table.ReadTable(fname, cols, nil)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", fname, err)
	}
	return vals, nil
}

// ReadProfileTable reads a profile.Table from the two columns of fname
// given by colStr, e.g. "0 1".
func ReadProfileTable(fname, colStr string) (*profile.Table, error) {
	cols, err := ParseColumns(colStr, 2)
	if err != nil {
		return nil, err
	}
	vals, err := ReadColumns(fname, cols)
	if err != nil {
		return nil, err
	}

	tab, err := profile.NewTable(vals[0], vals[1])
	if err != nil {
		return nil, fmt.Errorf("table in %s: %w", fname, err)
	}
	return tab, nil
}

// Radii returns the output coordinates requested by con: the RadiusColumn
// of RadiusFile if it is set and Bins log-spaced values from RMin to RMax
// otherwise.
func Radii(con *SharedConfig) ([]float64, error) {
	if con.ValidRadiusFile() {
		vals, err := ReadColumns(con.RadiusFile, []int{con.RadiusColumn})
		if err != nil {
			return nil, err
		} else if len(vals[0]) == 0 {
			return nil, fmt.Errorf("no radii in %s", con.RadiusFile)
		}
		return vals[0], nil
	} else if !con.ValidRange() {
		return nil, fmt.Errorf(
			"invalid radial range: RMin = %g, RMax = %g, Bins = %d",
			con.RMin, con.RMax, con.Bins,
		)
	}

	rs := make([]float64, con.Bins)
	floats.LogSpan(rs, con.RMin, con.RMax)
	return rs, nil
}

// WriteColumns writes a '#' header line naming the columns followed by one
// row per element of the columns. All columns must have the same length.
func WriteColumns(w io.Writer, names []string, cols ...[]float64) error {
	if len(names) != len(cols) {
		return fmt.Errorf("%d column names for %d columns", len(names), len(cols))
	}
	for i := range cols {
		if len(cols[i]) != len(cols[0]) {
			return fmt.Errorf(
				"column '%s' has length %d, but column '%s' has length %d",
				names[i], len(cols[i]), names[0], len(cols[0]),
			)
		}
	}

	buf := bufio.NewWriter(w)
	fmt.Fprintf(buf, "# %s\n", strings.Join(names, " "))
	if len(cols) > 0 {
		for j := range cols[0] {
			for i := range cols {
				if i > 0 {
					buf.WriteByte(' ')
				}
				buf.WriteString(strconv.FormatFloat(cols[i][j], 'g', 10, 64))
			}
			buf.WriteByte('\n')
		}
	}
	return buf.Flush()
}
