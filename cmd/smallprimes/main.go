package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"strconv"

	"github.com/Singh-Diljit/smallPrimes/factor"
	"github.com/Singh-Diljit/smallPrimes/primes"
	"github.com/Singh-Diljit/smallPrimes/prof"
	"github.com/Singh-Diljit/smallPrimes/store"
	"github.com/Singh-Diljit/smallPrimes/twosquares"
)

func usage() {
	fmt.Println(`usage: smallprimes <gen|check|factor|divisors|sos|save> [options]

Subcommands:
  gen       Print the primes below a bound
            Flags:
              -bound <int>   sieve bound (default: 100)
              -count         print only the number of primes

  check     Report whether each argument is prime
            Arguments at or above the sieve bound are routed through the
            decomposition certificate instead of the table lookup.
            Flags:
              -bound <int>   sieve bound (default: 100000000)

  factor    Print the prime-power decomposition of each argument
            Flags:
              -bound <int>   sieve bound (default: 100000000)
              -refine        split residual factors with probable-prime tests

  divisors  Print all divisors of each argument
            Flags:
              -bound <int>   sieve bound (default: 100000000)
              -proper        exclude 1 and the number itself

  sos       Print p = a^2 + b^2 for each prime argument congruent to 1 mod 4
            Flags:
              -bound <int>   sieve bound (default: 100000000)

  save      Sieve and persist both tables to a directory
            Flags:
              -dir   <path>  output directory (default: primeData)
              -bound <int>   sieve bound (default: 100000000)

Global flag on every subcommand:
  -v    print construction timings to stderr`)
	os.Exit(1)
}

func main() {
	if len(os.Args) < 2 {
		usage()
	}
	switch os.Args[1] {
	case "gen":
		runGen(os.Args[2:])
	case "check":
		runCheck(os.Args[2:])
	case "factor":
		runFactor(os.Args[2:])
	case "divisors":
		runDivisors(os.Args[2:])
	case "sos":
		runSOS(os.Args[2:])
	case "save":
		runSave(os.Args[2:])
	default:
		usage()
	}
}

func parseArgs(fs *flag.FlagSet) []uint64 {
	if fs.NArg() == 0 {
		usage()
	}
	out := make([]uint64, 0, fs.NArg())
	for _, raw := range fs.Args() {
		n, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			log.Fatalf("not a non-negative integer: %q", raw)
		}
		out = append(out, n)
	}
	return out
}

func finish(verbose bool) {
	if verbose {
		if err := prof.WriteSummary(os.Stderr); err != nil {
			log.Fatalf("timings: %v", err)
		}
	}
}

func buildTable(bound uint64) *primes.Table {
	tab, err := primes.NewTable(bound)
	if err != nil {
		log.Fatalf("sieve: %v", err)
	}
	return tab
}

func runGen(args []string) {
	fs := flag.NewFlagSet("gen", flag.ExitOnError)
	bound := fs.Uint64("bound", 100, "sieve bound (primes strictly below)")
	count := fs.Bool("count", false, "print only the number of primes")
	verbose := fs.Bool("v", false, "print timings")
	fs.Parse(args)
	if *verbose {
		prof.Enable()
	}

	tab := buildTable(*bound)
	if *count {
		fmt.Println(tab.Count())
	} else {
		for _, p := range tab.Primes() {
			fmt.Println(p)
		}
	}
	finish(*verbose)
}

func runCheck(args []string) {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	bound := fs.Uint64("bound", primes.DefaultBound, "sieve bound")
	verbose := fs.Bool("v", false, "print timings")
	fs.Parse(args)
	if *verbose {
		prof.Enable()
	}

	tab := buildTable(*bound)
	eng := factor.NewEngine(tab)
	for _, n := range parseArgs(fs) {
		var (
			prime bool
			err   error
			via   string
		)
		if n < tab.Bound() {
			via = "table"
			prime, err = tab.IsPrime(n)
		} else {
			via = "certificate"
			prime, err = eng.Certificate(n)
		}
		if err != nil {
			log.Fatalf("check %d: %v", n, err)
		}
		fmt.Printf("%d prime=%v (%s)\n", n, prime, via)
	}
	finish(*verbose)
}

func runFactor(args []string) {
	fs := flag.NewFlagSet("factor", flag.ExitOnError)
	bound := fs.Uint64("bound", primes.DefaultBound, "sieve bound")
	refine := fs.Bool("refine", false, "split residual factors with probable-prime tests")
	verbose := fs.Bool("v", false, "print timings")
	fs.Parse(args)
	if *verbose {
		prof.Enable()
	}

	eng := factor.NewEngine(buildTable(*bound))
	for _, n := range parseArgs(fs) {
		d, err := eng.Decompose(n)
		if err != nil {
			log.Fatalf("factor %d: %v", n, err)
		}
		if *refine {
			d = eng.Refine(d)
		}
		fmt.Printf("%d = %s\n", n, formatDecomposition(d))
	}
	finish(*verbose)
}

func formatDecomposition(d factor.Decomposition) string {
	if len(d) == 0 {
		return "1"
	}
	keys := make([]uint64, 0, len(d))
	for p := range d {
		keys = append(keys, p)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	out := ""
	for i, p := range keys {
		if i > 0 {
			out += " * "
		}
		if d[p] == 1 {
			out += strconv.FormatUint(p, 10)
		} else {
			out += fmt.Sprintf("%d^%d", p, d[p])
		}
	}
	return out
}

func runDivisors(args []string) {
	fs := flag.NewFlagSet("divisors", flag.ExitOnError)
	bound := fs.Uint64("bound", primes.DefaultBound, "sieve bound")
	proper := fs.Bool("proper", false, "exclude 1 and the number itself")
	verbose := fs.Bool("v", false, "print timings")
	fs.Parse(args)
	if *verbose {
		prof.Enable()
	}

	eng := factor.NewEngine(buildTable(*bound))
	for _, n := range parseArgs(fs) {
		divs, err := eng.Divisors(n, *proper)
		if err != nil {
			log.Fatalf("divisors %d: %v", n, err)
		}
		fmt.Printf("%d: %v\n", n, divs)
	}
	finish(*verbose)
}

func runSOS(args []string) {
	fs := flag.NewFlagSet("sos", flag.ExitOnError)
	bound := fs.Uint64("bound", primes.DefaultBound, "sieve bound")
	verbose := fs.Bool("v", false, "print timings")
	fs.Parse(args)
	if *verbose {
		prof.Enable()
	}

	res := twosquares.New(buildTable(*bound))
	for _, n := range parseArgs(fs) {
		a, b, err := res.Decompose(n)
		if err != nil {
			log.Fatalf("sos %d: %v", n, err)
		}
		fmt.Printf("%d = %d^2 + %d^2\n", n, a, b)
	}
	finish(*verbose)
}

func runSave(args []string) {
	fs := flag.NewFlagSet("save", flag.ExitOnError)
	dir := fs.String("dir", "primeData", "output directory")
	bound := fs.Uint64("bound", primes.DefaultBound, "sieve bound")
	verbose := fs.Bool("v", false, "print timings")
	fs.Parse(args)
	if *verbose {
		prof.Enable()
	}

	if err := os.MkdirAll(*dir, 0o755); err != nil {
		log.Fatalf("save: %v", err)
	}
	tab := buildTable(*bound)
	if err := store.SavePrimes(*dir, tab); err != nil {
		log.Fatalf("save: %v", err)
	}
	res := twosquares.New(tab)
	if err := store.SaveSumOfSquares(*dir, res); err != nil {
		log.Fatalf("save: %v", err)
	}
	fmt.Printf("wrote %d primes and %d two-square forms to %s\n", tab.Count(), res.Len(), *dir)
	finish(*verbose)
}
