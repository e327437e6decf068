// Command weightdist empirically measures the Hamming weight
// distribution of codewords produced by a freshly generated generator
// matrix (s*G for random messages s), reports summary statistics via
// gonum/stat, and renders a histogram via go-echarts. It is
// instrumentation for studying the scheme's low-weight-signature
// assumption, not part of signing or verification itself.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"gonum.org/v1/gonum/stat"

	"wavecfs/codeparams"
	"wavecfs/gf2"
	"wavecfs/seedgen"
)

func main() {
	m := flag.Int("m", 3, "BCH degree parameter m")
	t := flag.Int("t", 1, "BCH error-correction parameter t")
	samples := flag.Int("samples", 10000, "number of random messages to sample")
	out := flag.String("out", "weight_distribution.html", "output HTML histogram path")
	flag.Parse()

	c, err := codeparams.DeriveBCH(*m, *t)
	if err != nil {
		log.Fatal(err)
	}

	src := seedgen.Shake256Source{}
	seed, err := seedgen.NewSeed(src)
	if err != nil {
		log.Fatal(err)
	}
	g := seedgen.ExpandMatrix(src, seed, c.K, c.N)
	gf2.MakeSystematic(0, g)

	weights := make([]float64, 0, *samples)
	counts := map[int]int{}
	randSeed, err := seedgen.NewSeed(src)
	if err != nil {
		log.Fatal(err)
	}
	stream := src.FromSeed(randSeed)
	buf := make([]byte, (c.K+7)/8)

	for i := 0; i < *samples; i++ {
		if _, err := stream.Read(buf); err != nil {
			log.Fatal(err)
		}
		bits := make([]byte, c.K)
		for j := 0; j < c.K; j++ {
			byteIdx, bitIdx := j/8, uint(7-j%8)
			bits[j] = (buf[byteIdx] >> bitIdx) & 1
		}
		s := gf2.NewRowVector(bits)
		codeword, err := gf2.Multiply(s, g)
		if err != nil {
			log.Fatal(err)
		}
		w := codeword.Weight(0)
		weights = append(weights, float64(w))
		counts[w]++
	}

	mean := stat.Mean(weights, nil)
	stddev := stat.StdDev(weights, nil)
	fmt.Printf("samples=%d mean_weight=%.3f stddev=%.3f n=%d k=%d d=%d\n", *samples, mean, stddev, c.N, c.K, c.D)

	if err := renderHistogram(*out, counts, c.N); err != nil {
		log.Fatal(err)
	}
	fmt.Println("histogram written to", *out)
}

func renderHistogram(path string, counts map[int]int, n int) error {
	weights := make([]int, 0, len(counts))
	for w := range counts {
		weights = append(weights, w)
	}
	sort.Ints(weights)

	labels := make([]string, len(weights))
	values := make([]opts.BarData, len(weights))
	for i, w := range weights {
		labels[i] = fmt.Sprintf("%d", w)
		values[i] = opts.BarData{Value: counts[w]}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Codeword Hamming weight distribution",
			Subtitle: fmt.Sprintf("n=%d", n),
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: "weight"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "count"}),
	)
	bar.SetXAxis(labels).AddSeries("count", values)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return bar.Render(f)
}
