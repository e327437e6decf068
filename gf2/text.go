package gf2

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// WriteText serializes m in the scheme's matrix file format:
//
//	<R x C matrix>
//	[ b0 b1 ... bC-1 ]
//	...
//
// one row per line, matching the textual convention of the reference
// print_matrix. The format is self-consistent: any compatible reader
// round-trips any compatible writer's output.
func (m *Matrix) WriteText(w io.Writer) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "<%d x %d matrix>\n", m.r, m.c); err != nil {
		return err
	}
	for i := 0; i < m.r; i++ {
		if _, err := bw.WriteString("[ "); err != nil {
			return err
		}
		for j := 0; j < m.c; j++ {
			if _, err := fmt.Fprintf(bw, "%d ", m.Get(i, j)); err != nil {
				return err
			}
		}
		if _, err := bw.WriteString("]\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ReadText parses the format written by WriteText.
func ReadText(r io.Reader) (*Matrix, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)
	if !sc.Scan() {
		return nil, fmt.Errorf("gf2: empty matrix stream")
	}
	header := strings.TrimSpace(sc.Text())
	var rows, cols int
	if _, err := fmt.Sscanf(header, "<%d x %d matrix>", &rows, &cols); err != nil {
		return nil, fmt.Errorf("gf2: malformed header %q: %w", header, err)
	}
	m := New(rows, cols)
	for i := 0; i < rows; i++ {
		if !sc.Scan() {
			return nil, fmt.Errorf("gf2: truncated matrix body: want %d rows, got %d", rows, i)
		}
		line := strings.TrimSpace(sc.Text())
		line = strings.TrimPrefix(line, "[")
		line = strings.TrimSuffix(line, "]")
		fields := strings.Fields(line)
		if len(fields) != cols {
			return nil, fmt.Errorf("gf2: row %d has %d entries, want %d", i, len(fields), cols)
		}
		for j, f := range fields {
			switch f {
			case "0":
			case "1":
				m.Set(i, j, 1)
			default:
				return nil, fmt.Errorf("gf2: row %d col %d: invalid entry %q", i, j, f)
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return m, nil
}
