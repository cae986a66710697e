// Fuzzy cruise control

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"example.com/fuzzy-cruise/benchmark"

	"example.com/fuzzy-cruise/core/config"
	"example.com/fuzzy-cruise/core/control"
	"example.com/fuzzy-cruise/core/fuzzy"
	"example.com/fuzzy-cruise/core/sensor"

	"example.com/fuzzy-cruise/driver/clock"
)

const (
	defaultDistance = 3.7
	defaultDelta    = 1.2

	benchmarkNumGoroutine = 4
)

var (
	log *zap.Logger
)

// readings collects repeated -input name=value flags.
type readings map[string]float64

func (r readings) String() string {
	ns := make([]string, 0, len(r))
	for n := range r {
		ns = append(ns, n)
	}
	sort.Strings(ns)
	var b strings.Builder
	for i, n := range ns {
		if i != 0 {
			b.WriteString(",")
		}
		fmt.Fprintf(&b, "%s=%v", n, r[n])
	}
	return b.String()
}

func (r readings) Set(s string) error {
	n, v, ok := strings.Cut(s, "=")
	n = strings.TrimSpace(n)
	if !ok || n == "" {
		return fmt.Errorf("reading has wrong format: %q", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return fmt.Errorf("reading has wrong format: %q: %w", s, err)
	}
	if _, ok := r[n]; ok {
		return fmt.Errorf("duplicate reading: %q", n)
	}
	r[n] = x
	return nil
}

func initLogger(verbose bool) {
	c := zap.NewDevelopmentConfig()
	c.DisableStacktrace = true
	c.EncoderConfig.EncodeCaller = func(
		caller zapcore.EntryCaller, enc zapcore.PrimitiveArrayEncoder) {
		p := caller.TrimmedPath()
		if len(p) > 30 {
			p = "..." + p[len(p)-27:]
		}
		enc.AppendString(fmt.Sprintf("%30s", p))
	}
	if !verbose {
		c.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	var err error
	log, err = c.Build()
	if err != nil {
		panic(err)
	}
}

func runMonitor(log *zap.Logger, addr string) {
	http.Handle("/metrics", promhttp.Handler())
	err := http.ListenAndServe(addr, nil)
	log.Fatal("failed to serve metrics", zap.Error(err))
}

func loadConfig(configFile string) *config.Config {
	if configFile == "" {
		return config.CruiseControl()
	}
	cfg, err := config.Load(configFile)
	if err != nil {
		log.Fatal("failed to load configuration", zap.String("file", configFile), zap.Error(err))
	}
	return cfg
}

func newEngine(cfg *config.Config) *control.Engine {
	m, err := cfg.Model()
	if err != nil {
		log.Fatal("invalid configuration", zap.Error(err))
	}
	return control.NewEngine(log, m)
}

func printDecision(w io.Writer, e *control.Engine, d control.Decision) {
	for _, n := range e.Inputs() {
		fmt.Fprintf(w, "%s: %v\n", n, d.Inputs[n])
	}
	for i, c := range d.Conclusions {
		fmt.Fprintf(w, "rule %s: %v\n", d.Fired[i], c)
	}
	label := d.Label
	if label == "" {
		label = "-"
	}
	fmt.Fprintf(w, "%s: %.6f (%s)\n", e.Output().Name(), d.Value, label)
}

func runEval(cfg *config.Config, rs readings) {
	e := newEngine(cfg)
	d, err := e.Infer(rs)
	if err != nil && !errors.Is(err, fuzzy.ErrNoRegion) {
		log.Fatal("inference failed", zap.Error(err))
	}
	printDecision(os.Stdout, e, d)
	if err != nil {
		log.Info("no rule fired", zap.Stringer("readings", rs))
	}
}

func runLoop(cfg *config.Config, samplesFile string, interval time.Duration, window int, monitor bool) {
	e := newEngine(cfg)

	var r io.Reader = os.Stdin
	if samplesFile != "" && samplesFile != "-" {
		f, err := os.Open(samplesFile)
		if err != nil {
			log.Fatal("failed to open samples", zap.String("file", samplesFile), zap.Error(err))
		}
		defer f.Close()
		r = f
	}
	csv, err := sensor.NewCSVSource(r)
	if err != nil {
		log.Fatal("failed to read samples", zap.Error(err))
	}
	var src sensor.Source = csv
	if window > 1 {
		src = sensor.NewMedianFilter(csv, window)
	}

	if monitor {
		go runMonitor(log, cfg.MetricsAddr)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	clk := &clock.SystemClock{Log: log}
	out := e.Output().Name()
	err = control.Run(ctx, log, clk, e, src, interval, func(d control.Decision) {
		log.Debug("control decision", zap.Object("decision", control.DecisionMarshaler{Decision: d}))
		fmt.Printf("%s\t%.6f\t%s\n", out, d.Value, d.Label)
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal("control loop failed", zap.Error(err))
	}
}

func runBenchmark(cfg *config.Config, rs readings, n int) {
	e := newEngine(cfg)
	_, err := benchmark.Run(log, e, rs, benchmarkNumGoroutine, n, os.Stdout)
	if err != nil {
		log.Fatal("benchmark failed", zap.Error(err))
	}
}

func exitWithUsage() {
	fmt.Println("<usage>")
	os.Exit(1)
}

func main() {
	var (
		verbose     bool
		configFile  string
		distance    float64
		delta       float64
		samplesFile string
		interval    time.Duration
		window      int
		monitor     bool
		numInfer    int
	)
	inputs := readings{}

	demoFlags := flag.NewFlagSet("demo", flag.ExitOnError)
	evalFlags := flag.NewFlagSet("eval", flag.ExitOnError)
	runFlags := flag.NewFlagSet("run", flag.ExitOnError)
	benchmarkFlags := flag.NewFlagSet("benchmark", flag.ExitOnError)

	demoFlags.BoolVar(&verbose, "verbose", false, "Verbose logging")
	demoFlags.Float64Var(&distance, "distance", defaultDistance, "Distance to the car ahead")
	demoFlags.Float64Var(&delta, "delta", defaultDelta, "Change in distance")

	evalFlags.BoolVar(&verbose, "verbose", false, "Verbose logging")
	evalFlags.StringVar(&configFile, "config", "", "Config file")
	evalFlags.Var(inputs, "input", "Input reading name=value (repeatable)")

	runFlags.BoolVar(&verbose, "verbose", false, "Verbose logging")
	runFlags.StringVar(&configFile, "config", "", "Config file")
	runFlags.StringVar(&samplesFile, "samples", "", "Samples file (CSV, default stdin)")
	runFlags.DurationVar(&interval, "interval", 0, "Control interval")
	runFlags.IntVar(&window, "window", 1, "Median filter window")
	runFlags.BoolVar(&monitor, "monitor", false, "Serve metrics")

	benchmarkFlags.BoolVar(&verbose, "verbose", false, "Verbose logging")
	benchmarkFlags.StringVar(&configFile, "config", "", "Config file")
	benchmarkFlags.Var(inputs, "input", "Input reading name=value (repeatable)")
	benchmarkFlags.IntVar(&numInfer, "n", 100000, "Inferences per goroutine")

	if len(os.Args) < 2 {
		exitWithUsage()
	}

	switch os.Args[1] {
	case demoFlags.Name():
		err := demoFlags.Parse(os.Args[2:])
		if err != nil || demoFlags.NArg() != 0 {
			exitWithUsage()
		}
		initLogger(verbose)
		runEval(config.CruiseControl(), readings{"distance": distance, "delta": delta})
	case evalFlags.Name():
		err := evalFlags.Parse(os.Args[2:])
		if err != nil || evalFlags.NArg() != 0 {
			exitWithUsage()
		}
		if len(inputs) == 0 {
			exitWithUsage()
		}
		initLogger(verbose)
		runEval(loadConfig(configFile), inputs)
	case runFlags.Name():
		err := runFlags.Parse(os.Args[2:])
		if err != nil || runFlags.NArg() != 0 {
			exitWithUsage()
		}
		if interval < 0 || window < 1 {
			exitWithUsage()
		}
		initLogger(verbose)
		runLoop(loadConfig(configFile), samplesFile, interval, window, monitor)
	case benchmarkFlags.Name():
		err := benchmarkFlags.Parse(os.Args[2:])
		if err != nil || benchmarkFlags.NArg() != 0 {
			exitWithUsage()
		}
		if numInfer < 1 {
			exitWithUsage()
		}
		if len(inputs) == 0 {
			inputs = readings{"distance": defaultDistance, "delta": defaultDelta}
		}
		initLogger(verbose)
		runBenchmark(loadConfig(configFile), inputs, numInfer)
	default:
		exitWithUsage()
	}
}
