//go:build analysis

// Command analysis renders an HTML report over the precomputed tables:
// the prime-counting function against x/ln x, the distribution of prime
// gaps, and the distribution of a/sqrt(p) over the two-square forms.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/Singh-Diljit/smallPrimes/primes"
	"github.com/Singh-Diljit/smallPrimes/twosquares"
)

func main() {
	bound := flag.Uint64("bound", 1_000_000, "sieve bound for the report")
	out := flag.String("out", "analysis.html", "output HTML file")
	samples := flag.Int("samples", 200, "sample points for the pi(x) chart")
	flag.Parse()

	tab, err := primes.NewTable(*bound)
	if err != nil {
		log.Fatalf("sieve: %v", err)
	}
	res := twosquares.New(tab)

	page := components.NewPage().SetPageTitle("smallPrimes analysis")
	page.AddCharts(
		countingChart(tab, *samples),
		gapChart(tab),
		angleChart(res),
	)

	f, err := os.Create(*out)
	if err != nil {
		log.Fatalf("create %s: %v", *out, err)
	}
	defer f.Close()
	if err := page.Render(f); err != nil {
		log.Fatalf("render: %v", err)
	}
	fmt.Printf("wrote %s (bound %d, %d primes, %d two-square forms)\n",
		*out, tab.Bound(), tab.Count(), res.Len())
}

// countingChart plots pi(x) sampled along [2, bound] with the x/ln x
// approximation overlaid.
func countingChart(tab *primes.Table, samples int) components.Charter {
	seq := tab.Primes()
	step := tab.Bound() / uint64(samples)
	if step == 0 {
		step = 1
	}

	xs := make([]string, 0, samples)
	piVals := make([]opts.LineData, 0, samples)
	approx := make([]opts.LineData, 0, samples)
	idx := 0
	for x := step; x <= tab.Bound(); x += step {
		for idx < len(seq) && seq[idx] < x {
			idx++
		}
		xs = append(xs, fmt.Sprintf("%d", x))
		piVals = append(piVals, opts.LineData{Value: idx})
		approx = append(approx, opts.LineData{Value: float64(x) / math.Log(float64(x))})
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "pi(x) vs x/ln x"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "x"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "count"}),
	)
	line.SetXAxis(xs).
		AddSeries("pi(x)", piVals).
		AddSeries("x/ln x", approx)
	return line
}

// gapChart plots the frequency of each gap between consecutive primes.
func gapChart(tab *primes.Table) components.Charter {
	seq := tab.Primes()
	freq := map[uint64]int{}
	maxGap := uint64(0)
	for i := 1; i < len(seq); i++ {
		g := seq[i] - seq[i-1]
		freq[g]++
		if g > maxGap {
			maxGap = g
		}
	}

	xs := make([]string, 0, len(freq))
	vals := make([]opts.BarData, 0, len(freq))
	for g := uint64(1); g <= maxGap; g++ {
		if freq[g] == 0 {
			continue
		}
		xs = append(xs, fmt.Sprintf("%d", g))
		vals = append(vals, opts.BarData{Value: freq[g]})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Prime gap frequencies"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "gap"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "frequency"}),
	)
	bar.SetXAxis(xs).AddSeries("gaps", vals)
	return bar
}

// angleChart histograms a/sqrt(p) over all two-square forms. With a < b
// the ratio lives in (0, 1/sqrt 2).
func angleChart(res *twosquares.Resolver) components.Charter {
	const buckets = 50
	counts := make([]int, buckets)
	for _, e := range res.Entries() {
		ratio := float64(e.Pair.A) / math.Sqrt(float64(e.P))
		k := int(ratio * buckets * math.Sqrt2)
		if k >= buckets {
			k = buckets - 1
		}
		counts[k]++
	}

	xs := make([]string, buckets)
	vals := make([]opts.BarData, buckets)
	for i := 0; i < buckets; i++ {
		xs[i] = fmt.Sprintf("%.3f", float64(i)/(buckets*math.Sqrt2))
		vals[i] = opts.BarData{Value: counts[i]}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Distribution of a/sqrt(p)"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "a/sqrt(p)"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "count"}),
	)
	bar.SetXAxis(xs).AddSeries("forms", vals)
	return bar
}
