package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/log"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/sigilgen/internal/config"
	"github.com/san-kum/sigilgen/internal/dialog"
	"github.com/san-kum/sigilgen/internal/export"
	"github.com/san-kum/sigilgen/internal/fractal"
	"github.com/san-kum/sigilgen/internal/gui"
	"github.com/san-kum/sigilgen/internal/palette"
	"github.com/san-kum/sigilgen/internal/session"
	"github.com/san-kum/sigilgen/internal/tui"
)

var (
	configFile string
	preset     string
	verbose    bool

	layers     int
	iterations int
	theme      string
	seed       int64
	size       int
	fieldSize  int

	noParticles  bool
	noSacred     bool
	noFractal    bool
	noParametric bool
	noRelativity bool

	output     string
	frames     int
	intervalMS int
	live       bool

	bins       int
	plotHeight int
	force      bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "sigilgen",
		Short: "procedural sigil generator",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := log.InfoLevel
			if verbose {
				level = log.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(os.Stderr, level)))
		},
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, _, err := newSession(cmd)
			if err != nil {
				return err
			}
			gui.Run(sess, dialog.Zenity{})
			return nil
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset parameters")
	pf.BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	pf.IntVar(&layers, "layers", 3, "sacred geometry layers")
	pf.IntVar(&iterations, "iterations", 50, "fractal iteration bound")
	pf.StringVar(&theme, "theme", "Random", "color theme ("+strings.Join(palette.ThemeNames(), ", ")+")")
	pf.Int64Var(&seed, "seed", 0, "random seed (0 picks one)")
	pf.IntVar(&size, "size", config.DefaultSize, "canvas edge in pixels")
	pf.IntVar(&fieldSize, "field-size", 500, "fractal grid edge in cells")
	pf.BoolVar(&noParticles, "no-particles", false, "disable particles")
	pf.BoolVar(&noSacred, "no-sacred", false, "disable sacred geometry")
	pf.BoolVar(&noFractal, "no-fractal", false, "disable the fractal background")
	pf.BoolVar(&noParametric, "no-parametric", false, "disable the parametric curve")
	pf.BoolVar(&noRelativity, "no-relativity", false, "disable the light bending curve")

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "render a static sigil to a file",
		Args:  cobra.NoArgs,
		RunE:  runRender,
	}
	renderCmd.Flags().StringVarP(&output, "output", "o", "", "output file ("+strings.Join(export.Extensions(), " ")+")")

	animateCmd := &cobra.Command{
		Use:   "animate",
		Short: "render an animated sigil to a GIF",
		Args:  cobra.NoArgs,
		RunE:  runAnimate,
	}
	animateCmd.Flags().StringVarP(&output, "output", "o", "sigil.gif", "output file")
	animateCmd.Flags().IntVar(&frames, "frames", config.DefaultFrames, "number of frames")
	animateCmd.Flags().IntVar(&intervalMS, "interval", config.DefaultIntervalMS, "frame interval in milliseconds")
	animateCmd.Flags().BoolVar(&live, "live", false, "play frames at the frame interval before writing")

	fieldCmd := &cobra.Command{
		Use:   "field",
		Short: "plot the escape-time histogram",
		Args:  cobra.NoArgs,
		RunE:  runField,
	}
	fieldCmd.Flags().IntVar(&bins, "bins", 60, "histogram bins")
	fieldCmd.Flags().IntVar(&plotHeight, "height", 12, "plot height in rows")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "terminal front end",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, cfg, err := newSession(cmd)
			if err != nil {
				return err
			}
			return tui.Run(sess, cfg.AnimConfig().Interval)
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	themesCmd := &cobra.Command{
		Use:   "themes",
		Short: "list color themes",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range palette.ThemeNames() {
				fmt.Println(name)
			}
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage config files",
	}
	configInitCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the effective configuration to a file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  initConfig,
	}
	configInitCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")
	configCmd.AddCommand(configInitCmd)

	rootCmd.AddCommand(renderCmd, animateCmd, fieldCmd, tuiCmd, presetsCmd, themesCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig layers the preset, then the config file, then explicit flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}
	if configFile != "" {
		c, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = c
	}

	flags := cmd.Flags()
	if flags.Changed("layers") {
		cfg.Params.Layers = layers
	}
	if flags.Changed("iterations") {
		cfg.Params.Iterations = iterations
	}
	if flags.Changed("field-size") {
		cfg.Params.FieldSize = fieldSize
	}
	if flags.Changed("theme") {
		t, err := palette.ParseTheme(theme)
		if err != nil {
			return nil, err
		}
		cfg.Params.Theme = t
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("size") {
		cfg.Canvas.Size = size
	}
	if flags.Changed("frames") {
		cfg.Animate.Frames = frames
	}
	if flags.Changed("interval") {
		cfg.Animate.IntervalMS = intervalMS
	}
	for name, field := range map[string]*bool{
		"no-particles":  &cfg.Params.Particles,
		"no-sacred":     &cfg.Params.SacredGeometry,
		"no-fractal":    &cfg.Params.Fractal,
		"no-parametric": &cfg.Params.Parametric,
		"no-relativity": &cfg.Params.Relativity,
	} {
		if flags.Changed(name) {
			off, _ := flags.GetBool(name)
			*field = !off
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newSession(cmd *cobra.Command) (*session.Session, *config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	logger := loggerFromContext(cmd.Context())
	sess := session.New(cfg.Params, session.Options{
		Size:   cfg.CanvasSize(),
		Anim:   cfg.AnimConfig(),
		Seed:   cfg.Seed,
		Logger: logger,
	})
	logger.Debug("session ready", "seed", sess.Seed(), "size", sess.Size(), "theme", cfg.Params.Theme)
	return sess, cfg, nil
}

func runRender(cmd *cobra.Command, args []string) error {
	sess, cfg, err := newSession(cmd)
	if err != nil {
		return err
	}
	path := output
	if path == "" {
		path = cfg.Output
	}

	p := newProgress(loggerFromContext(cmd.Context()))
	if err := sess.Generate(); err != nil {
		return err
	}
	out, err := sess.Save(path)
	if err != nil {
		return err
	}
	p.done("Rendered " + out)
	return nil
}

func runAnimate(cmd *cobra.Command, args []string) error {
	sess, cfg, err := newSession(cmd)
	if err != nil {
		return err
	}

	logger := loggerFromContext(cmd.Context())
	p := newProgress(logger)
	if live {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		ticks := cfg.AnimConfig().Ticks
		err = sess.Play(ctx, func(tick int) {
			logger.Info("frame", "tick", fmt.Sprintf("%d/%d", tick+1, ticks))
		})
	} else {
		err = sess.Animate(time.Now())
	}
	if err != nil {
		return err
	}
	out, err := sess.Save(output)
	if errors.Is(err, export.ErrUnsupportedFormat) {
		return fmt.Errorf("%w: animations are written as .gif", err)
	}
	if err != nil {
		return err
	}
	p.done("Animated " + out)
	return nil
}

func runField(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	n := cfg.Params.FieldSize
	if n <= 0 {
		n = 500
	}
	if bins < 2 {
		return fmt.Errorf("need at least 2 bins, got %d", bins)
	}

	p := newProgress(loggerFromContext(cmd.Context()))
	f := fractal.Compute(n, n, cfg.Params.Iterations)
	p.done(fmt.Sprintf("Computed %dx%d field", n, n))

	lo, hi := f.Range()
	graph := asciigraph.Plot(f.Histogram(bins),
		asciigraph.Height(plotHeight),
		asciigraph.Width(bins),
		asciigraph.Caption(fmt.Sprintf("escape-time histogram (N=%d, counts %d..%d)", f.MaxIter, lo, hi)),
	)
	fmt.Println(graph)
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tLAYERS\tITER\tTHEME\tLAYERS ON")
	for _, name := range config.ListPresets() {
		p := config.Presets[name]
		var on []string
		for _, l := range []struct {
			name string
			on   bool
		}{
			{"sacred", p.SacredGeometry},
			{"fractal", p.Fractal},
			{"particles", p.Particles},
			{"parametric", p.Parametric},
			{"relativity", p.Relativity},
		} {
			if l.on {
				on = append(on, l.name)
			}
		}
		fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%s\n", name, p.Layers, p.Iterations, p.Theme, strings.Join(on, ","))
	}
	return w.Flush()
}

func initConfig(cmd *cobra.Command, args []string) error {
	path := "sigil.yaml"
	if len(args) > 0 {
		path = args[0]
	}
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := config.Save(path, cfg); err != nil {
		return err
	}
	loggerFromContext(cmd.Context()).Info("wrote config", "path", path)
	return nil
}
