package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"math"
	"math/rand/v2"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/san-kum/colorfield/internal/analysis"
	"github.com/san-kum/colorfield/internal/config"
	"github.com/san-kum/colorfield/internal/export"
	"github.com/san-kum/colorfield/internal/field"
	"github.com/san-kum/colorfield/internal/metrics"
	"github.com/san-kum/colorfield/internal/palette"
	"github.com/san-kum/colorfield/internal/store"
	"github.com/san-kum/colorfield/internal/trace"
	"github.com/san-kum/colorfield/internal/viz"
)

var (
	dataDir    string
	verbose    bool
	configFile string
	preset     string

	// live view
	frameRate int
	theme     string
	backdrop  string

	// now / schedule / stats
	at        string
	firstLeg  int64
	statsFrom int64
	count     int
	day       int
	samples   int

	// trace / seasons
	from   string
	span   time.Duration
	step   time.Duration
	hover  bool
	seed   uint64
	events []string

	// export-svg
	svgOut    string
	svgWidth  int
	svgHeight int

	logger = zap.NewNop()
)

// main registers the colorfield commands and runs the live view when no
// subcommand is given. It exits with status 1 on error.
func main() {
	rootCmd := &cobra.Command{
		Use:   "colorfield",
		Short: "deterministic time-driven background color field",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// The live view owns the terminal, so it logs to a file instead.
			if cmd.Name() == "colorfield" || cmd.Name() == "live" {
				return nil
			}
			var err error
			logger, err = newLogger("stderr")
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
		RunE: runLive,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".colorfield", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	addLiveFlags(rootCmd)

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "paint the terminal with the live field",
		RunE:  runLive,
	}
	addLiveFlags(liveCmd)

	nowCmd := &cobra.Command{
		Use:   "now",
		Short: "print the color the field shows at a moment",
		RunE:  showNow,
	}
	nowCmd.Flags().StringVar(&at, "at", "", "moment (RFC3339), default now")

	scheduleCmd := &cobra.Command{
		Use:   "schedule",
		Short: "list upcoming transitions",
		RunE:  showSchedule,
	}
	scheduleCmd.Flags().Int64Var(&firstLeg, "from", -1, "first transition index, default the current leg")
	scheduleCmd.Flags().IntVar(&count, "count", 10, "number of transitions")
	scheduleCmd.Flags().IntVar(&day, "day", -1, "day of year, default today")

	traceCmd := &cobra.Command{
		Use:   "trace",
		Short: "record the field over a window and store the run",
		RunE:  runTrace,
	}
	addWindowFlags(traceCmd)
	traceCmd.Flags().StringVar(&from, "from", "", "window start (RFC3339), default now")
	traceCmd.Flags().BoolVar(&hover, "hover", false, "record the hover walk instead of the field")
	traceCmd.Flags().Uint64Var(&seed, "seed", 0, "hover random seed, default time-based")
	traceCmd.Flags().StringArrayVar(&events, "event", nil, "command at an offset, e.g. 30s=pin-white (repeatable)")

	seasonsCmd := &cobra.Command{
		Use:   "seasons",
		Short: "record the same window at the start of each period and compare",
		RunE:  runSeasons,
	}
	addWindowFlags(seasonsCmd)
	seasonsCmd.Flags().StringVar(&from, "from", "", "any moment in the year to compare (RFC3339), default now")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot the gray level of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of a run's gray level",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "render a run as an SVG color strip",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&svgOut, "out", "o", "", "output file, default stdout")
	exportSVGCmd.Flags().IntVar(&svgWidth, "width", 800, "image width")
	exportSVGCmd.Flags().IntVar(&svgHeight, "height", 120, "image height")

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "bucket and baseline-return frequencies",
		RunE:  showStats,
	}
	statsCmd.Flags().IntVar(&samples, "samples", 10000, "number of transition indices")
	statsCmd.Flags().Int64Var(&statsFrom, "from", 0, "first transition index")
	statsCmd.Flags().IntVar(&day, "day", -1, "day of year, default today")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, p := range config.ListPresets() {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	rootCmd.AddCommand(liveCmd, nowCmd, scheduleCmd, traceCmd, seasonsCmd, listCmd, plotCmd, analyzeCmd, exportJSONCmd, exportCSVCmd, exportSVGCmd, statsCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addLiveFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&frameRate, "fps", config.DefaultFPS, "frame rate")
	cmd.Flags().StringVar(&theme, "theme", config.DefaultTheme, "panel theme")
	cmd.Flags().StringVar(&backdrop, "backdrop", "", "color the terminal starts from (#rrggbb)")
}

func addWindowFlags(cmd *cobra.Command) {
	cmd.Flags().DurationVar(&span, "span", config.DefaultSpan, "window length")
	cmd.Flags().DurationVar(&step, "step", config.DefaultStep, "sampling step")
}

func newLogger(outputs ...string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.OutputPaths = outputs
	cfg.ErrorOutputPaths = outputs
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return cfg.Build()
}

// loadConfig layers defaults, the preset, the config file and changed flags,
// in that order.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("fps") {
		cfg.Live.FPS = frameRate
	}
	if flags.Changed("theme") {
		cfg.Live.Theme = theme
	}
	if flags.Changed("backdrop") {
		cfg.Live.Backdrop = backdrop
	}
	if flags.Changed("span") {
		cfg.Trace.Span = span
	}
	if flags.Changed("step") {
		cfg.Trace.Step = step
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func parseMoment(s string) (time.Time, error) {
	if s == "" {
		return time.Now(), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: %w", s, err)
	}
	return t, nil
}

// parseEvents reads "offset=command" pairs such as "30s=pin-white".
func parseEvents(pairs []string) ([]trace.Event, error) {
	out := make([]trace.Event, 0, len(pairs))
	for _, pair := range pairs {
		offset, name, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("invalid event %q: want offset=command", pair)
		}
		d, err := time.ParseDuration(strings.TrimSpace(offset))
		if err != nil {
			return nil, fmt.Errorf("invalid event %q: %w", pair, err)
		}
		if d < 0 {
			return nil, fmt.Errorf("invalid event %q: negative offset", pair)
		}
		out = append(out, trace.Event{At: d, Command: field.Command(strings.TrimSpace(name))})
	}
	return out, nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if verbose {
		if err := os.MkdirAll(dataDir, 0755); err != nil {
			return err
		}
		logger, err = newLogger(filepath.Join(dataDir, "live.log"))
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
	}

	now := time.Now()
	sched := field.NewScheduler(cfg.FieldParams(), field.WithLogger(logger))
	sched.InitializeFromBackdrop(now, cfg.Backdrop())
	hov := field.NewHover(cfg.HoverParams(), nil, field.WithHoverLogger(logger))

	logger.Info("live view starting",
		zap.String("color", sched.Hex()),
		zap.Stringer("mode", sched.Mode()),
		zap.Int("fps", cfg.Live.FPS))

	m := viz.NewModel(sched, hov, viz.Options{
		FPS:    cfg.Live.FPS,
		Theme:  cfg.Live.Theme,
		Logger: logger,
	})
	return viz.Run(m)
}

func showNow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	t, err := parseMoment(at)
	if err != nil {
		return err
	}

	sched := field.NewScheduler(cfg.FieldParams(), field.WithLogger(logger))
	sched.InitializeFromTime(t)
	snap := sched.Snapshot()
	d := field.DayOfYear(t)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "time\t%s\n", t.Format(time.RFC3339))
	fmt.Fprintf(w, "day\t%d (period %d)\n", d, field.PeriodOf(d))
	fmt.Fprintf(w, "index\t%d\n", snap.Index)
	fmt.Fprintf(w, "color\t%s\n", snap.Current.Hex())
	fmt.Fprintf(w, "from\t%s\n", snap.Start.Hex())
	fmt.Fprintf(w, "to\t%s\n", snap.Target.Hex())
	fmt.Fprintf(w, "progress\t%.3f\n", snap.Progress)
	fmt.Fprintf(w, "leg\t%v\n", snap.Duration.Round(time.Millisecond))
	fmt.Fprintf(w, "accent\t%s\n", sched.Accent(t).Hex())
	return w.Flush()
}

func showSchedule(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if count <= 0 {
		return fmt.Errorf("count must be positive, got %d", count)
	}

	now := time.Now()
	p := cfg.FieldParams()
	d := day
	if d < 0 {
		d = field.DayOfYear(now)
	}
	first := firstLeg
	if first < 0 {
		sched := field.NewScheduler(p)
		sched.InitializeFromTime(now)
		first = sched.Index()
	}

	g := field.NewGenerator(p)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "day %d, period %d\n", d, field.PeriodOf(d))
	fmt.Fprintln(w, "INDEX\tBUCKET\tRETURN\tCOLOR\tDURATION")
	for i := first; i < first+int64(count); i++ {
		sel := g.Select(d, i)
		ret := ""
		if sel.Shortcut {
			ret = "yes"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%v\n",
			i,
			p.Buckets[sel.Bucket].Name,
			ret,
			sel.Color.Hex(),
			g.TransitionDuration(i).Round(time.Millisecond),
		)
	}
	return w.Flush()
}

// modeLog logs every label change seen while recording.
type modeLog struct {
	log  *zap.Logger
	last string
}

func (m *modeLog) OnSample(s trace.Sample) {
	if s.Label != m.last {
		m.log.Debug("trace label", zap.Time("at", s.Time), zap.String("label", s.Label), zap.String("color", s.Color.Hex()))
		m.last = s.Label
	}
}

func runTrace(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	start, err := parseMoment(from)
	if err != nil {
		return err
	}
	evs, err := parseEvents(events)
	if err != nil {
		return err
	}

	p := cfg.FieldParams()
	var src trace.Source
	source := "field"
	if hover {
		source = "hover"
		s := seed
		if !cmd.Flags().Changed("seed") {
			s = uint64(time.Now().UnixNano())
		}
		src = field.NewHover(cfg.HoverParams(), rand.New(rand.NewPCG(s, s>>32)), field.WithHoverLogger(logger))
	} else {
		sched := field.NewScheduler(p, field.WithLogger(logger))
		sched.InitializeFromBackdrop(start, cfg.Backdrop())
		src = sched
	}

	rec := trace.New(src, logger)
	for _, m := range metrics.Default(p) {
		rec.AddMetric(m)
	}
	rec.AddObserver(&modeLog{log: logger})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("recording %s from %s for %v every %v...\n", source, start.Format(time.RFC3339), cfg.Trace.Span, cfg.Trace.Step)
	began := time.Now()

	result, err := rec.Run(ctx, trace.Config{
		From:   start,
		Span:   cfg.Trace.Span,
		Step:   cfg.Trace.Step,
		Events: evs,
	})
	if err != nil {
		return err
	}

	st := store.New(dataDir)
	runID, err := st.Save(store.RunMetadata{
		Source: source,
		Preset: preset,
		From:   start,
		Span:   cfg.Trace.Span,
		Step:   cfg.Trace.Step,
		Events: evs,
	}, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", time.Since(began))
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("samples: %d\n", len(result.Samples))
	fmt.Println("\nmetrics:")
	printMetrics(result.Metrics)
	return nil
}

func printMetrics(m map[string]float64) {
	for _, name := range sortedKeys(m) {
		fmt.Printf("  %s: %.6f\n", name, m[name])
	}
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// periodStarts returns midnight on the first day of each period in t's year.
func periodStarts(t time.Time) []time.Time {
	jan1 := time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
	starts := make([]time.Time, 4)
	for p := range starts {
		d := int(math.Ceil(float64(p) * 91.25))
		starts[p] = jan1.AddDate(0, 0, d)
	}
	return starts
}

func runSeasons(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	ref, err := parseMoment(from)
	if err != nil {
		return err
	}

	p := cfg.FieldParams()
	ens := trace.NewEnsemble(
		func() trace.Source { return field.NewScheduler(p, field.WithLogger(logger)) },
		func() []trace.Metric { return metrics.Default(p) },
		logger,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	starts := periodStarts(ref)
	results, err := ens.Run(ctx, starts, trace.Config{Span: cfg.Trace.Span, Step: cfg.Trace.Step})
	if err != nil {
		return err
	}

	names := sortedKeys(results[0].Metrics)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PERIOD\tSTART\t"+strings.ToUpper(strings.Join(names, "\t")))
	for i, res := range results {
		row := []string{fmt.Sprintf("%d", i), starts[i].Format("2006-01-02")}
		for _, n := range names {
			row = append(row, fmt.Sprintf("%.3f", res.Metrics[n]))
		}
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	return w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSOURCE\tTIME\tFROM\tSPAN\tSTEP\tSAMPLES\tPRESET")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%v\t%v\t%d\t%s\n",
			run.ID,
			run.Source,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.From.Format(time.RFC3339),
			run.Span,
			run.Step,
			run.Samples,
			run.Preset,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := store.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	loaded, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}
	if len(loaded) == 0 {
		return fmt.Errorf("no data to plot")
	}

	result := &trace.Result{Samples: loaded}
	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("source: %s\n", meta.Source)
	fmt.Printf("samples: %d\n\n", len(loaded))

	graph := asciigraph.Plot(result.Levels(),
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("gray level"),
	)
	fmt.Println(graph)
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := store.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	loaded, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}
	if len(loaded) < 4 {
		return fmt.Errorf("not enough samples to analyze: %d", len(loaded))
	}

	levels := (&trace.Result{Samples: loaded}).Levels()
	fmt.Printf("frequency analysis: %s\n", meta.ID)
	fmt.Printf("source: %s\n\n", meta.Source)

	ps := analysis.PowerSpectrum(levels)
	plotData := ps[:max(len(ps)/4, 2)]

	graph := asciigraph.Plot(plotData,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum (gray level)"),
	)
	fmt.Println(graph)
	fmt.Println()

	period, ok := analysis.DominantPeriod(levels, meta.Step)
	if !ok {
		fmt.Println("no dominant period: the level is flat")
		return nil
	}
	fmt.Printf("dominant period: %v\n", period.Round(time.Millisecond))
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := store.New(dataDir)
	loaded, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}
	if len(loaded) == 0 {
		return fmt.Errorf("no data to export")
	}

	return store.WriteCSV(csv.NewWriter(os.Stdout), loaded)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := store.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	loaded, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}

	return store.ExportJSON(os.Stdout, *meta, loaded)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := store.New(dataDir)
	loaded, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}
	if len(loaded) == 0 {
		return fmt.Errorf("no data to export")
	}
	if svgWidth <= 0 || svgHeight <= 0 {
		return fmt.Errorf("invalid size %dx%d", svgWidth, svgHeight)
	}

	svg := export.Strip(loaded, svgWidth, svgHeight)
	if svgOut == "" {
		_, err := fmt.Println(svg)
		return err
	}
	if err := os.WriteFile(svgOut, []byte(svg), 0644); err != nil {
		return err
	}
	logger.Info("svg written", zap.String("run", runID), zap.String("path", svgOut))
	return nil
}

// expectedRates is the long-run share of each bucket for one day.
func expectedRates(p field.Params, d int) [3]float64 {
	w := p.Periods[field.PeriodOf(d)]
	total := w.Total()
	var out [3]float64
	for i := range out {
		out[i] = (1 - p.BaselineReturn) * w[i] / total
	}
	out[palette.BucketBaseline] += p.BaselineReturn
	return out
}

func showStats(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if samples <= 0 {
		return fmt.Errorf("samples must be positive, got %d", samples)
	}

	p := cfg.FieldParams()
	d := day
	if d < 0 {
		d = field.DayOfYear(time.Now())
	}

	st := metrics.CollectSelections(field.NewGenerator(p), d, statsFrom, samples)
	want := expectedRates(p, d)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "day %d, period %d, %d indices from %d\n", st.Day, st.Period, st.Samples, statsFrom)
	fmt.Fprintf(w, "baseline return\t%.4f\t(want %.4f)\n", st.ShortcutRate(), p.BaselineReturn)
	for i, b := range p.Buckets {
		fmt.Fprintf(w, "%s\t%.4f\t(want %.4f)\n", b.Name, st.BucketRate(i), want[i])
	}
	return w.Flush()
}
