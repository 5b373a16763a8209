// Command kkcheck checks a dielectric spectrum for Kramers-Kronig
// consistency.
//
// Usage:
//
//	kkcheck [flags] data.csv|data.xlsx
//	kkcheck [flags] -synth debye|cole-cole
//
// Input tables need a frequency column in GHz plus Dk and Df columns. The
// exit status is 0 on PASS, 1 on FAIL and 2 on any error.
//
// Flag defaults can be set with KKCHECK_METHOD, KKCHECK_THRESHOLD and
// KKCHECK_WINDOW, also from a .env file in the working directory.
// KKCHECK_FORCE_GENERIC=1 pins the reference PV kernel.
//
// Examples:
//
//	kkcheck measurement.csv
//	kkcheck -method trapz -no-sskk -points measurement.xlsx
//	kkcheck -synth cole-cole -alpha 0.3 -fmin 1e6 -fmax 1e10 -log
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/algo-kk/dataset"
	"github.com/cwbudde/algo-kk/dsp/dielectric"
	"github.com/cwbudde/algo-kk/dsp/window"
	"github.com/cwbudde/algo-kk/internal/cpu"
	"github.com/cwbudde/algo-kk/measure/kk"
	"github.com/cwbudde/algo-kk/stats/residual"
	"github.com/joho/godotenv"
)

const (
	exitPass  = 0
	exitFail  = 1
	exitError = 2
)

func main() {
	// A missing .env file is fine.
	_ = godotenv.Load()

	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type options struct {
	method       string
	threshold    float64
	window       string
	epsInfMethod string
	epsInf       float64
	tailFraction float64
	minTail      int
	resample     int
	pad          int
	noSSKK       bool
	anchor       int

	sheet  string
	cols   kk.Columns
	points bool
	debug  bool
	list   bool

	synth   string
	params  dielectric.Params
	fmin    float64
	fmax    float64
	n       int
	logGrid bool
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, fs, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitPass
		}
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitError
	}

	if opts.list {
		fmt.Fprintln(stdout, "windows:", strings.Join(window.Names(), ", "))
		fmt.Fprintln(stdout, "models: ", strings.Join(dielectric.Names(), ", "))
		return exitPass
	}

	level := slog.LevelWarn
	if opts.debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	host := cpu.DetectFeatures()
	logger.Debug("host",
		"arch", host.Architecture, "cpus", host.NumCPU,
		"sse2", host.HasSSE2, "avx2", host.HasAVX2, "neon", host.HasNEON,
		"force_generic", host.ForceGeneric)

	table, err := loadTable(opts, fs.Args())
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitError
	}

	kkOpts, err := opts.kkOptions(logger)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitError
	}

	v, err := kk.NewValidator(table, kkOpts...)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitError
	}

	diag, err := v.Diagnostics()
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitError
	}

	fmt.Fprintln(stdout, v.Report())
	if err := printDiagnostics(stdout, diag); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitError
	}

	if opts.points {
		if err := printPoints(stdout, table, opts.cols, diag.Result); err != nil {
			fmt.Fprintf(stderr, "error: %v\n", err)
			return exitError
		}
	}

	if diag.Passed() {
		return exitPass
	}
	return exitFail
}

func parseFlags(args []string, stderr io.Writer) (*options, *flag.FlagSet, error) {
	defThreshold, err := envFloat("KKCHECK_THRESHOLD", 0.05)
	if err != nil {
		return nil, nil, err
	}

	o := &options{cols: kk.DefaultColumns()}
	fs := flag.NewFlagSet("kkcheck", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&o.method, "method", envString("KKCHECK_METHOD", "auto"), "transform method: auto, hilbert or trapz")
	fs.Float64Var(&o.threshold, "threshold", defThreshold, "maximum mean relative error for PASS")
	fs.StringVar(&o.window, "window", envString("KKCHECK_WINDOW", ""), "window for the hilbert method, e.g. hann or kaiser:8.6")
	fs.StringVar(&o.epsInfMethod, "eps-inf-method", "fit", "eps_inf estimation: fit or mean")
	fs.Float64Var(&o.epsInf, "eps-inf", math.NaN(), "explicit eps_inf (default: estimated)")
	fs.Float64Var(&o.tailFraction, "tail-fraction", 0.1, "fraction of samples used to estimate eps_inf")
	fs.IntVar(&o.minTail, "min-tail", 3, "minimum samples used to estimate eps_inf")
	fs.IntVar(&o.resample, "resample", 0, "uniform grid size for hilbert on non-uniform data (0: auto)")
	fs.IntVar(&o.pad, "pad", 2, "zero padding factor of the hilbert frame")
	fs.BoolVar(&o.noSSKK, "no-sskk", false, "use the basic principal-value form for trapz")
	fs.IntVar(&o.anchor, "anchor", -1, "SSKK anchor index (default: middle sample)")

	fs.StringVar(&o.sheet, "sheet", "", "worksheet of an .xlsx input (default: first)")
	fs.StringVar(&o.cols.Frequency, "freq-col", o.cols.Frequency, "frequency column (GHz)")
	fs.StringVar(&o.cols.Dk, "dk-col", o.cols.Dk, "real permittivity column")
	fs.StringVar(&o.cols.Df, "df-col", o.cols.Df, "loss tangent column")
	fs.BoolVar(&o.points, "points", false, "print the per-sample reconstruction")
	fs.BoolVar(&o.debug, "v", false, "verbose logging")
	fs.BoolVar(&o.list, "list", false, "list window and model names")

	fs.StringVar(&o.synth, "synth", "", "generate a synthetic spectrum instead of reading a file: debye or cole-cole")
	fs.Float64Var(&o.params.EpsInf, "model-eps-inf", 2, "synthetic model eps_inf")
	fs.Float64Var(&o.params.DeltaEps, "delta", 1, "synthetic model relaxation strength")
	fs.Float64Var(&o.params.Tau, "tau", 1e-9, "synthetic model relaxation time in seconds")
	fs.Float64Var(&o.params.Alpha, "alpha", 0, "cole-cole broadening in [0, 1]")
	fs.Float64Var(&o.fmin, "fmin", 1e9, "synthetic grid start in Hz")
	fs.Float64Var(&o.fmax, "fmax", 10e9, "synthetic grid stop in Hz")
	fs.IntVar(&o.n, "n", 100, "synthetic grid size")
	fs.BoolVar(&o.logGrid, "log", false, "log-spaced synthetic grid")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: kkcheck [flags] data.csv|data.xlsx\n")
		fmt.Fprintf(stderr, "       kkcheck [flags] -synth debye|cole-cole\n\n")
		fmt.Fprintf(stderr, "Checks a dielectric spectrum for Kramers-Kronig consistency.\n")
		fmt.Fprintf(stderr, "Exit status: 0 PASS, 1 FAIL, 2 error.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return o, fs, nil
}

func (o *options) kkOptions(logger *slog.Logger) ([]kk.Option, error) {
	method, err := kk.ParseMethod(o.method)
	if err != nil {
		return nil, err
	}
	epsMethod, err := kk.ParseEpsInfMethod(o.epsInfMethod)
	if err != nil {
		return nil, err
	}

	opts := []kk.Option{
		kk.WithLogger(logger),
		kk.WithMethod(method),
		kk.WithEpsInfMethod(epsMethod),
		kk.WithCausalityThreshold(o.threshold),
		kk.WithTailFraction(o.tailFraction),
		kk.WithMinTailPoints(o.minTail),
		kk.WithResamplePoints(o.resample),
		kk.WithPadFactor(o.pad),
		kk.WithSSKK(!o.noSSKK),
		kk.WithColumns(o.cols),
	}

	if !math.IsNaN(o.epsInf) {
		opts = append(opts, kk.WithEpsInf(o.epsInf))
	}
	if o.anchor >= 0 {
		opts = append(opts, kk.WithAnchorIndex(o.anchor))
	}
	if o.window != "" {
		spec, err := window.ParseSpec(o.window)
		if err != nil {
			return nil, err
		}
		opts = append(opts, kk.WithWindow(spec))
	}

	return opts, nil
}

func loadTable(o *options, args []string) (dataset.Table, error) {
	if o.synth != "" {
		if len(args) > 0 {
			return nil, errors.New("-synth does not take an input file")
		}
		return synthTable(o)
	}

	if len(args) != 1 {
		return nil, errors.New("expected exactly one input file (or -synth)")
	}

	path := args[0]
	if o.sheet != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return dataset.ReadXLSX(f, o.sheet)
	}

	return dataset.ReadFile(path)
}

func synthTable(o *options) (dataset.Table, error) {
	model, err := dielectric.New(o.synth, o.params)
	if err != nil {
		return nil, err
	}
	if o.n < 2 || !(o.fmin > 0) || !(o.fmax > o.fmin) {
		return nil, fmt.Errorf("invalid synthetic grid: n=%d fmin=%g fmax=%g", o.n, o.fmin, o.fmax)
	}

	freq := make([]float64, o.n)
	for i := range freq {
		t := float64(i) / float64(o.n-1)
		if o.logGrid {
			freq[i] = o.fmin * math.Pow(o.fmax/o.fmin, t)
		} else {
			freq[i] = o.fmin + t*(o.fmax-o.fmin)
		}
	}

	dk, df, err := dielectric.Spectrum(model, freq)
	if err != nil {
		return nil, err
	}

	ghz := make([]float64, len(freq))
	for i, f := range freq {
		ghz[i] = f / 1e9
	}

	return dataset.NewFrame([]string{o.cols.Frequency, o.cols.Dk, o.cols.Df}, [][]float64{ghz, dk, df})
}

func printDiagnostics(w io.Writer, d kk.Diagnostics) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	rows := [][2]string{
		{"Points", strconv.Itoa(d.NumPoints)},
		{"Frequency range", fmt.Sprintf("%.4g - %.4g GHz", d.FreqMinGHz, d.FreqMaxGHz)},
		{"Uniform grid", strconv.FormatBool(d.UniformGrid)},
		{"Method", d.Detail.String()},
		{"eps_inf", fmt.Sprintf("%.4f", d.EpsInf)},
		{"Peaks in Df", strconv.Itoa(d.NumPeaks)},
		{"Max Df at", fmt.Sprintf("%.4g GHz", d.MaxDfFreqGHz)},
		{"Q90 Relative Error", fmt.Sprintf("%.2f%%", 100*d.Q90RelativeError)},
	}
	if d.HasAnchor {
		rows = append(rows, [2]string{"SSKK anchor", strconv.Itoa(d.AnchorIndex)})
	}
	if d.Backend != "" {
		rows = append(rows, [2]string{"Kernel backend", d.Backend})
	}

	for _, r := range rows {
		if _, err := fmt.Fprintf(tw, "%s:\t%s\n", r[0], r[1]); err != nil {
			return fmt.Errorf("write diagnostics: %w", err)
		}
	}
	return tw.Flush()
}

func printPoints(w io.Writer, t dataset.Table, cols kk.Columns, res *kk.Result) error {
	freq, err := t.Column(cols.Frequency)
	if err != nil {
		return err
	}
	dk, err := t.Column(cols.Dk)
	if err != nil {
		return err
	}

	stats, err := residual.Calculate(res.DkKK, dk)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	if _, err := fmt.Fprintf(tw, "\nFrequency (GHz)\tDk\tDk_KK\tRel. Error [%%]\t\n"); err != nil {
		return fmt.Errorf("write points: %w", err)
	}
	for i := range freq {
		if _, err := fmt.Fprintf(tw, "%.6g\t%.5f\t%.5f\t%.3f\t\n", freq[i], dk[i], res.DkKK[i], 100*stats.Relative[i]); err != nil {
			return fmt.Errorf("write points: %w", err)
		}
	}
	return tw.Flush()
}

func envString(name, def string) string {
	if v, ok := os.LookupEnv(name); ok && v != "" {
		return v
	}
	return def
}

func envFloat(name string, def float64) (float64, error) {
	v, ok := os.LookupEnv(name)
	if !ok || v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	return f, nil
}
