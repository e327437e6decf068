// Package paramio reads and writes the params.txt parameter file that
// records the (n, k, d) triples for H_A, G1 and G2 between CLI
// invocations, in the exact "KEY value" line format the reference
// implementation's get_user_input / fprintf pairs produce.
package paramio

import (
	"bufio"
	"fmt"
	"os"

	"wavecfs/codeparams"
	"wavecfs/errs"
)

// DefaultPath is the parameter file name used when a CLI does not
// override it.
const DefaultPath = "params.txt"

// Set bundles the three code parameter triples persisted by a keygen run.
type Set struct {
	HA codeparams.CodeParams
	G1 codeparams.CodeParams
	G2 codeparams.CodeParams
}

// Write serializes set to path as nine "KEY value\n" lines, in the
// fixed order H_A_n, H_A_k, H_A_d, G1_n, G1_k, G1_d, G2_n, G2_k, G2_d.
func Write(path string, set Set) error {
	f, err := os.Create(path)
	if err != nil {
		return errs.NewIOError(path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	lines := []struct {
		key string
		val int
	}{
		{"H_A_n", set.HA.N}, {"H_A_k", set.HA.K}, {"H_A_d", set.HA.D},
		{"G1_n", set.G1.N}, {"G1_k", set.G1.K}, {"G1_d", set.G1.D},
		{"G2_n", set.G2.N}, {"G2_k", set.G2.K}, {"G2_d", set.G2.D},
	}
	for _, l := range lines {
		if _, err := fmt.Fprintf(w, "%s %d\n", l.key, l.val); err != nil {
			return errs.NewIOError(path, err)
		}
	}
	if err := w.Flush(); err != nil {
		return errs.NewIOError(path, err)
	}
	return nil
}

// Read parses a params.txt written by Write. The nine keys must appear
// in the same fixed order; any other layout is reported as an IOError.
func Read(path string) (Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return Set{}, errs.NewIOError(path, err)
	}
	defer f.Close()

	var set Set
	fields := []struct {
		key string
		dst *int
	}{
		{"H_A_n", &set.HA.N}, {"H_A_k", &set.HA.K}, {"H_A_d", &set.HA.D},
		{"G1_n", &set.G1.N}, {"G1_k", &set.G1.K}, {"G1_d", &set.G1.D},
		{"G2_n", &set.G2.N}, {"G2_k", &set.G2.K}, {"G2_d", &set.G2.D},
	}

	sc := bufio.NewScanner(f)
	for _, field := range fields {
		if !sc.Scan() {
			return Set{}, errs.NewIOError(path, fmt.Errorf("missing line for %s", field.key))
		}
		var key string
		var val int
		if _, err := fmt.Sscanf(sc.Text(), "%s %d", &key, &val); err != nil {
			return Set{}, errs.NewIOError(path, fmt.Errorf("malformed line %q: %w", sc.Text(), err))
		}
		if key != field.key {
			return Set{}, errs.NewIOError(path, fmt.Errorf("expected key %s, got %s", field.key, key))
		}
		*field.dst = val
	}
	if err := sc.Err(); err != nil {
		return Set{}, errs.NewIOError(path, err)
	}
	return set, nil
}

// Exists reports whether a parameter file is present at path, mirroring
// the reference's fopen-for-read existence probe before prompting to
// reuse it.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
