// Command tplex solves a balanced transportation instance read from a file
// or stdin and writes a single result-record line to stdout, per spec.md §6.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/rbargetto/tplex/tpconfig"
	"github.com/rbargetto/tplex/tpinstance"
	"github.com/rbargetto/tplex/tplog"
	"github.com/rbargetto/tplex/tpresult"
	"github.com/rbargetto/tplex/tpsimplex"
)

const (
	exitOptimal      = 1
	exitTimeLimit    = 2
	exitIterLimit    = 3
	exitError        = -1
	balanceTolerance = 1e-6
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		flagInput           string
		flagAlgMode         uint64
		flagWindowFactor    float64
		flagWindowFactor2   float64
		flagTimeLimit       float64
		flagPartitionFactor float64
		flagMaxIterFactor   float64
		flagTag             string
		flagMetricsAddr     string
		flagLogLevel        string
	)

	pflag.StringVarP(&flagInput, "input", "i", "", "path to the instance file (default stdin)")
	pflag.Uint64Var(&flagAlgMode, "alg-mode", 0, "5-digit algorithm mode (multi-pivot, tree-colour oracle, oracle greed, pricing policy, initial basis)")
	pflag.Float64Var(&flagWindowFactor, "window-factor", 0.1, "windowed pricing's initial window fraction")
	pflag.Float64Var(&flagWindowFactor2, "window-factor2", 2, "windowed pricing's growth multiplier")
	pflag.Float64Var(&flagTimeLimit, "time-limit", 0, "wall-clock time limit in seconds (0 = unlimited)")
	pflag.Float64Var(&flagPartitionFactor, "partition-factor", 0, "matrix-minimum-rule cost-bucket width as a fraction of the cost range")
	pflag.Float64Var(&flagMaxIterFactor, "max-iter-factor", 0, "iteration cap as a multiple of m+n (0 = effectively unlimited)")
	pflag.StringVar(&flagTag, "tag", "tplex", "instance tag recorded in the result line")
	pflag.StringVar(&flagMetricsAddr, "metrics-addr", "", "address to serve Prometheus metrics on (empty disables)")
	pflag.StringVar(&flagLogLevel, "log-level", "info", "trace log level")
	pflag.Parse()

	zerolog.TimestampFunc = func() time.Time { return time.Now().UTC() }
	level, err := zerolog.ParseLevel(flagLogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tplex: bad --log-level %q: %v\n", flagLogLevel, err)
		return exitError
	}
	zerolog.SetGlobalLevel(level)
	tracer := tplog.New(os.Stderr)

	in := os.Stdin
	if flagInput != "" {
		f, err := os.Open(flagInput)
		if err != nil {
			fmt.Fprintf(os.Stderr, "tplex: could not open input: %v\n", err)
			return exitError
		}
		defer f.Close()
		in = f
	}

	inst, err := tpinstance.Parse(in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tplex: could not parse instance: %v\n", err)
		return exitError
	}
	if err := inst.Balance(balanceTolerance); err != nil {
		fmt.Fprintf(os.Stderr, "tplex: could not balance instance: %v\n", err)
		return exitError
	}

	cfg, err := tpconfig.New(tpconfig.AlgorithmTS, flagAlgMode, inst.M, inst.N, flagWindowFactor, flagWindowFactor2,
		flagTimeLimit, flagPartitionFactor, flagMaxIterFactor)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tplex: bad configuration: %v\n", err)
		return exitError
	}

	var metrics *tpresult.Metrics
	if flagMetricsAddr != "" {
		reg := prometheus.NewRegistry()
		metrics = tpresult.NewMetrics(reg)
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		srv := &http.Server{Addr: flagMetricsAddr, Handler: mux}
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				fmt.Fprintf(os.Stderr, "tplex: metrics server: %v\n", err)
			}
		}()
		defer srv.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	solver, err := tpsimplex.New(inst, cfg, tracer)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tplex: could not build solver: %v\n", err)
		return exitError
	}

	start := time.Now()
	res, err := solver.Run(ctx)
	runTime := time.Since(start).Seconds()
	if err != nil && res.Reason != tpsimplex.TerminationTimeLimit {
		fmt.Fprintf(os.Stderr, "tplex: solve failed: %v\n", err)
		return exitError
	}

	out := tpresult.NewUnsolved(flagTag, algorithmTag(cfg))
	out.Optimal = res.Reason == tpsimplex.TerminationOptimal
	out.ObjValue = res.ObjValue
	out.RunTime = runTime
	out.Iterations = res.Stats.Iterations
	out.BasisChanges = res.Stats.BasisChanges
	out.FullPricings = res.Stats.FullPricings
	out.TimeTotal = runTime

	if metrics != nil {
		metrics.Update(out)
	}

	if err := out.WriteLine(os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "tplex: could not write result: %v\n", err)
		return exitError
	}

	switch res.Reason {
	case tpsimplex.TerminationOptimal:
		return exitOptimal
	case tpsimplex.TerminationTimeLimit:
		return exitTimeLimit
	case tpsimplex.TerminationIterationLimit:
		return exitIterLimit
	default:
		return exitError
	}
}

func algorithmTag(cfg *tpconfig.Config) string {
	switch cfg.PricingPolicy {
	case tpconfig.PricingFirstNegative:
		return "ts-p1"
	case tpconfig.PricingWindowed:
		return "ts-p3"
	case tpconfig.PricingShielding:
		return "ts-p4"
	default:
		return "ts-p0"
	}
}
