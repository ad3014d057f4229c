// Command sdfbake converts vector artwork, shaped text or a bilevel raster
// into a signed distance field image.
//
// Usage:
//
//	sdfbake [flags] <input> <output>
//	sdfbake [flags] -font <file.ttf> -text <string> <output>
//	sdfbake [flags] -batch <manifest.yaml>
//
// SVG input is rendered at -sourcesize before the search; PNG, BMP, TIFF
// and JPEG input is used at its own resolution. The output format follows
// the output extension (PNG, BMP or TIFF).
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/gogpu/sdfbake"
	"github.com/gogpu/sdfbake/glyph"
	"github.com/gogpu/sdfbake/internal/batch"
	sdfimage "github.com/gogpu/sdfbake/internal/image"
)

// Exit codes.
const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// options is the parsed command line.
type options struct {
	cfg        sdfbake.Config
	saveSource string
	fontPath   string
	text       string
	fontSize   float64
	batch      string
	verbose    bool
	args       []string
}

// errUsage marks errors caused by how the tool was invoked.
var errUsage = errors.New("usage")

func parseFlags(args []string, stderr io.Writer) (*options, *flag.FlagSet, error) {
	o := &options{cfg: sdfbake.DefaultConfig()}

	fs := flag.NewFlagSet("sdfbake", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.IntVar(&o.cfg.SourceSize, "sourcesize", o.cfg.SourceSize, "long edge in pixels of the rendered source")
	fs.IntVar(&o.cfg.Radius, "maxdist", o.cfg.Radius, "search radius in source pixels")
	fs.IntVar(&o.cfg.Radius, "radius", o.cfg.Radius, "alias for -maxdist")
	fs.IntVar(&o.cfg.TargetSize, "targetsize", 0, "long edge of the output (default: source long edge/16)")
	fs.IntVar(&o.cfg.Threads, "threads", 0, "number of worker threads (default: hardware threads)")
	fs.IntVar(&o.cfg.Threads, "t", 0, "alias for -threads")
	fs.BoolVar(&o.cfg.Negate, "negate", false, "treat light areas as inside and invert the output")
	fs.StringVar(&o.saveSource, "savesource", "", "also write the padded source raster to this file")
	fs.StringVar(&o.fontPath, "font", "", "TrueType/OpenType font for -text")
	fs.StringVar(&o.text, "text", "", "text to lay out with -font instead of reading <input>")
	fs.Float64Var(&o.fontSize, "fontsize", glyph.DefaultOptions().Size, "font size in layout units for -text")
	fs.StringVar(&o.batch, "batch", "", "run the jobs in a YAML manifest")
	fs.BoolVar(&o.verbose, "v", false, "verbose logging")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage:\n"+
			"  sdfbake [flags] <input> <output>\n"+
			"  sdfbake [flags] -font <file> -text <string> <output>\n"+
			"  sdfbake [flags] -batch <manifest.yaml>\n\nFlags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, fs, err
	}
	o.args = fs.Args()

	want := 2
	switch {
	case o.batch != "":
		if o.saveSource != "" {
			return nil, fs, fmt.Errorf("%w: -savesource cannot be used with -batch; set savesource per job", errUsage)
		}
		want = 0
	case o.text != "" || o.fontPath != "":
		if o.text == "" || o.fontPath == "" {
			return nil, fs, fmt.Errorf("%w: -font and -text must be used together", errUsage)
		}
		want = 1
	}
	if len(o.args) != want {
		return nil, fs, fmt.Errorf("%w: expected %d positional arguments, got %d", errUsage, want, len(o.args))
	}
	if o.fontSize <= 0 {
		return nil, fs, fmt.Errorf("%w: -fontsize must be positive", errUsage)
	}
	return o, fs, nil
}

func run(args []string, stdout, stderr io.Writer) int {
	errColor := color.New(color.FgRed, color.Bold)

	o, fs, err := parseFlags(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return exitOK
	}
	if err != nil {
		// The flag package has already reported its own parse errors.
		if errors.Is(err, errUsage) {
			errColor.Fprintf(stderr, "error: ")
			fmt.Fprintln(stderr, strings.TrimPrefix(err.Error(), errUsage.Error()+": "))
			fs.Usage()
		}
		return exitUsage
	}

	level := slog.LevelInfo
	if o.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	sdfbake.SetLogger(logger)
	defer sdfbake.SetLogger(nil)

	tasks, err := o.tasks()
	if err != nil {
		errColor.Fprintf(stderr, "error: ")
		fmt.Fprintln(stderr, err)
		if isConfigError(err) {
			fs.Usage()
			return exitUsage
		}
		return exitFailure
	}

	done := color.New(color.FgGreen)
	for _, t := range tasks {
		res, err := bake(t, o)
		if err != nil {
			errColor.Fprintf(stderr, "error: ")
			fmt.Fprintf(stderr, "%s: %v\n", taskLabel(t), err)
			return exitFailure
		}
		done.Fprintf(stdout, "wrote %s", t.Output)
		fmt.Fprintf(stdout, " (%dx%d, %d threads, %v)\n",
			res.Field.Width, res.Field.Height, res.Threads, res.Elapsed.Round(time.Millisecond))
	}
	return exitOK
}

// tasks turns the options into the list of bakes to run, validating every
// configuration before any work starts.
func (o *options) tasks() ([]batch.Task, error) {
	if o.batch != "" {
		return o.batchTasks()
	}

	if err := o.cfg.Validate(); err != nil {
		return nil, err
	}
	t := batch.Task{Config: o.cfg, SaveSource: o.saveSource}
	if o.text != "" {
		t.Output = o.args[0]
	} else {
		t.Input, t.Output = o.args[0], o.args[1]
	}
	return []batch.Task{t}, checkOutputs([]batch.Task{t})
}

func (o *options) batchTasks() ([]batch.Task, error) {
	m, err := batch.Load(o.batch)
	if err != nil {
		return nil, err
	}
	tasks, err := m.Tasks(o.cfg)
	if err != nil {
		return nil, err
	}
	return tasks, checkOutputs(tasks)
}

// checkOutputs rejects output paths with no encoder before any bake runs.
func checkOutputs(tasks []batch.Task) error {
	for _, t := range tasks {
		if _, err := sdfimage.FormatFromPath(t.Output); err != nil {
			return fmt.Errorf("%s: %w", t.Output, err)
		}
	}
	return nil
}

// isConfigError reports whether err comes from how the tool was configured
// rather than from reading or writing files.
func isConfigError(err error) bool {
	var cfgErr *sdfbake.ConfigError
	return errors.As(err, &cfgErr) ||
		errors.Is(err, sdfimage.ErrUnsupportedFormat) ||
		errors.Is(err, batch.ErrNoJobs) ||
		errors.Is(err, batch.ErrMissingPath)
}
