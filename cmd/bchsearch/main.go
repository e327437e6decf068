// Command bchsearch sweeps BCH-like (m, t) parameter pairs and reports
// the resulting (n, k, d) triples for both the plain BCH-like
// derivation used by the inner codes and a GV-with-entropy-bound
// variant, as a CSV report. It is exploratory tooling, not part of the
// signing/verification core.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"strconv"
)

func binaryEntropy(p float64) float64 {
	if p <= 0 || p >= 1 {
		return 0
	}
	return -p*math.Log2(p) - (1-p)*math.Log2(1-p)
}

// gv derives the plain BCH-like (n, d, k) from (m, t): n = 2^m-1,
// d = 2t+1, k = m*t. This mirrors codeparams.DeriveBCH.
func gv(m, t int) (n, d, k int) {
	n = (1 << uint(m)) - 1
	d = 2*t + 1
	k = m * t
	return
}

// gvK derives an entropy-bounded variant used only for this report:
// n = 2^(m+1)-2, d = 4t+3, and k taken from the GV bound at relative
// distance delta = d/n.
func gvK(m, t int) (n, d, k int) {
	n = (1 << uint(m+1)) - 2
	d = 4*t + 3
	delta := float64(d) / float64(n)
	k = int(math.Floor(float64(n) * (1 - binaryEntropy(delta))))
	return
}

func main() {
	out := flag.String("o", "bch_codes.csv", "output CSV path")
	mMax := flag.Int("m-max", 12, "largest m to sweep (exclusive upper bound is m-max+1)")
	tMax := flag.Int("t-max", 12, "largest t to sweep (exclusive upper bound is t-max+1)")
	flag.Parse()

	f, err := os.Create(*out)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"m", "t", "n_C1/C2", "d_C1/C2", "k_C1/C2", "n_C", "d_C", "k_C"}); err != nil {
		log.Fatal(err)
	}

	for m := 3; m <= *mMax; m++ {
		for t := 1; t <= *tMax; t++ {
			n1, d1, k1 := gv(m, t)
			n2, d2, k2 := gvK(m, t)
			row := []string{
				strconv.Itoa(m), strconv.Itoa(t),
				strconv.Itoa(n1), strconv.Itoa(d1), strconv.Itoa(k1),
				strconv.Itoa(n2), strconv.Itoa(d2), strconv.Itoa(k2),
			}
			if err := w.Write(row); err != nil {
				log.Fatal(err)
			}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		log.Fatal(err)
	}
	fmt.Println("CSV file generated:", *out)
}
