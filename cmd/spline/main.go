// Command spline builds a natural cubic spline from a knot table and
// evaluates it.
//
// Usage:
//
//	spline --table curve.yaml --at 0.5 --at 1.5
//	spline --points "0:0,1:1,2:0,3:1" --samples 7
//	spline --table curve.yaml --coefficients          # YAML segment dump
//	spline --table curve.yaml --check                 # compare with gonum
//	SPLINE_TABLE=curve.yaml spline --double --at 2
//
// Tables are YAML files with a list of knots, see internal/table.
package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/pflag"

	"github.com/tphakala/go-spline/internal/table"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.SetFlags(0)
		log.Fatalf("spline: %v", err)
	}
}

func run(args []string, stdout io.Writer) error {
	var opts options

	flagSet := pflag.NewFlagSet("spline", pflag.ContinueOnError)
	flagSet.StringVarP(&opts.tablePath, "table", "t", "", "YAML knot table (default: $"+table.EnvVar+")")
	flagSet.StringVarP(&opts.points, "points", "p", "", `inline knots "x:y,x:y,..." (overrides --table)`)
	flagSet.Float64SliceVar(&opts.at, "at", nil, "evaluate at these x values (repeatable)")
	flagSet.IntVar(&opts.samples, "samples", defaultSamples, "print this many evenly spaced samples across the domain")
	flagSet.BoolVar(&opts.coefficients, "coefficients", false, "print segment coefficients as YAML")
	flagSet.BoolVar(&opts.check, "check", false, "compare against gonum's natural cubic interpolator")
	flagSet.BoolVar(&opts.double, "double", false, "use float64 instead of float32")
	flagSet.BoolVarP(&opts.verbose, "verbose", "v", false, "verbose output")
	flagSet.SetOutput(os.Stderr)

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	if rest := flagSet.Args(); len(rest) > 0 {
		return fmt.Errorf("unexpected argument: %s", rest[0])
	}
	if opts.samples < 0 {
		return fmt.Errorf("--samples must not be negative, got %d", opts.samples)
	}

	tbl, err := loadTable(&opts)
	if err != nil {
		return err
	}

	if opts.verbose {
		log.Printf("Knots: %d", len(tbl.Knots))
		if opts.double {
			log.Printf("Precision: float64")
		} else {
			log.Printf("Precision: float32")
		}
	}

	if opts.double {
		return report[float64](stdout, tbl, &opts)
	}
	return report[float32](stdout, tbl, &opts)
}
