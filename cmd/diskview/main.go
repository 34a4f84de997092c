package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/diskview/diskview/internal/config"
	"github.com/diskview/diskview/internal/filter"
	"github.com/diskview/diskview/internal/scan"
	"github.com/diskview/diskview/internal/treemap"
	"github.com/diskview/diskview/internal/ui"
)

var version = "dev"

func main() {
	os.Exit(run())
}

// excludeFlag is a custom pflag.Value that collects repeated --exclude
// names into a shared filter.NameSet.
type excludeFlag struct {
	set *filter.NameSet
}

func (*excludeFlag) String() string { return "" }
func (*excludeFlag) Type() string   { return "string" }

func (f *excludeFlag) Set(val string) error {
	f.set.Add(val)
	return nil
}

func run() int {
	var (
		workers     int
		threshold   int
		top         int
		maxDepth    int
		width       int
		height      int
		modeStr     string
		minLargeStr string
		noMap       bool
		quiet       bool
		verbose     bool
		showVersion bool
	)

	excludes := filter.NewNameSet()

	rootCmd := &cobra.Command{
		Use:           "diskview [flags] [path]",
		Short:         "Scan a directory tree and draw it as a squarified treemap",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				fmt.Fprintf(os.Stdout, "diskview %s\n", version)
				return nil
			}

			path := "."
			if len(args) == 1 {
				path = args[0]
			}

			level := log.WarnLevel
			if verbose {
				level = log.DebugLevel
			} else if !quiet {
				level = log.InfoLevel
			}
			logger := log.NewWithOptions(os.Stderr, log.Options{
				ReportTimestamp: true,
				TimeFormat:      "15:04:05",
				Level:           level,
			})

			// Load optional config file.
			cfg, err := config.Load()
			if err != nil {
				logger.Warn("failed to load config", "error", err)
			}
			applyConfigDefaults(cmd, cfg.Defaults,
				&workers, &top, &maxDepth, &modeStr, &width, &height)
			if !cmd.Flags().Changed("min-large") && cfg.Scan.MinLargeFile != nil {
				minLargeStr = *cfg.Scan.MinLargeFile
			}

			mode, err := treemap.ParseMode(modeStr)
			if err != nil {
				return err
			}

			var minLarge int64
			if minLargeStr != "" {
				minLarge, err = filter.ParseSize(minLargeStr)
				if err != nil {
					return fmt.Errorf("invalid --min-large: %w", err)
				}
			}

			skipDirs := scan.DefaultSkipDirs
			if len(cfg.Scan.SkipDirs) > 0 {
				skipDirs = cfg.Scan.SkipDirs
			}
			skip := filter.NewNameSet(skipDirs...)
			for _, name := range excludes.Slice() {
				skip.Add(name)
			}

			// Viewport defaults follow the terminal.
			isTTY := ui.IsTTY(os.Stderr.Fd())
			termWidth := ui.TermWidth(os.Stdout.Fd())
			if width <= 0 {
				width = termWidth
			}
			if height <= 0 {
				height = max(width/4, 8)
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			printer := ui.NewPrinter(os.Stderr, isTTY && !quiet, termWidth)
			eng := scan.New(scan.Options{
				Workers:           workers,
				ParallelThreshold: threshold,
				TopFiles:          top,
				TopFolders:        top,
				MinLargeFile:      minLarge,
				SkipDirs:          skip.Slice(),
				Sink:              printer,
			})

			logger.Debug("starting scan",
				"path", path,
				"workers", workers,
				"threshold", threshold,
				"skip", skip.Slice(),
			)

			res, err := eng.Scan(ctx, path)
			printer.Finish()
			stop()
			if err != nil {
				logger.Error("scan failed", "error", err)
				return &exitError{code: 2}
			}
			if res.Cancelled {
				logger.Warn("scan cancelled, showing partial results")
			}

			out := os.Stdout
			fmt.Fprintln(out, ui.Summary(res))
			if s := ui.CategoryTable(res.Categories); s != "" {
				fmt.Fprintln(out, s)
			}
			if s := ui.TopList("largest files", res.LargestFiles, 10, termWidth); s != "" {
				fmt.Fprintln(out, s)
			}
			if s := ui.TopList("largest folders", res.LargestFolders, 10, termWidth); s != "" {
				fmt.Fprintln(out, s)
			}

			if !noMap && res.Root != nil && res.Root.Size() > 0 {
				tile := treemap.Build(res.Root, treemap.Options{
					Width:        float64(width),
					Height:       float64(height),
					MaxDepth:     maxDepth,
					Mode:         mode,
					HeaderHeight: 1,  // one character row for the label
					Padding:      -1, // character cells are too coarse to pad
					MinTileSide:  4,
				})
				fmt.Fprint(out, ui.RenderMap(tile))
				fmt.Fprintln(out, ui.RenderLegend(treemap.Legend(mode)))
			}

			if res.Cancelled {
				return &exitError{code: 1}
			}
			return nil
		},
	}

	rootCmd.Flags().BoolVar(&showVersion, "version", false, "print version and exit")
	rootCmd.Flags().
		IntVarP(&workers, "workers", "n", 0, "scan worker pool width (default 4)")
	rootCmd.Flags().
		IntVar(&threshold, "threshold", 0, "fan sibling directories out to the pool above this count (default 4)")
	rootCmd.Flags().IntVar(&top, "top", 0, "entries to keep in the largest-files/folders lists (default 50)")
	rootCmd.Flags().IntVar(&maxDepth, "max-depth", 0, "treemap nesting depth (default 4)")
	rootCmd.Flags().IntVar(&width, "width", 0, "treemap width in columns (default: terminal width)")
	rootCmd.Flags().IntVar(&height, "height", 0, "treemap height in rows (default: width/4)")
	rootCmd.Flags().
		StringVar(&modeStr, "mode", "category", "color mode: depth, category, age, filetype")
	rootCmd.Flags().
		StringVar(&minLargeStr, "min-large", "", "smallest file eligible for the largest-files list (e.g. 100M)")
	rootCmd.Flags().
		Var(&excludeFlag{set: excludes}, "exclude", "skip directories with this name (repeatable)")
	rootCmd.Flags().BoolVar(&noMap, "no-map", false, "skip the treemap rendering")
	rootCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "suppress all output except errors")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	if err := rootCmd.Execute(); err != nil {
		if exitErr, ok := err.(*exitError); ok {
			return exitErr.code
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}
	return 0
}

// applyConfigDefaults applies config file defaults for flags not explicitly
// set on the CLI.
func applyConfigDefaults(
	cmd *cobra.Command,
	defaults config.DefaultsConfig,
	workers *int,
	top *int,
	maxDepth *int,
	mode *string,
	width *int,
	height *int,
) {
	if !cmd.Flags().Changed("workers") && defaults.Workers != nil {
		*workers = *defaults.Workers
	}
	if !cmd.Flags().Changed("top") && defaults.Top != nil {
		*top = *defaults.Top
	}
	if !cmd.Flags().Changed("max-depth") && defaults.MaxDepth != nil {
		*maxDepth = *defaults.MaxDepth
	}
	if !cmd.Flags().Changed("mode") && defaults.Mode != nil {
		*mode = *defaults.Mode
	}
	if !cmd.Flags().Changed("width") && defaults.Width != nil {
		*width = *defaults.Width
	}
	if !cmd.Flags().Changed("height") && defaults.Height != nil {
		*height = *defaults.Height
	}
}

type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit code %d", e.code)
}
