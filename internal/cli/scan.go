package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"tokencost/internal/adapter/fs"
	"tokencost/internal/usecase"
)

type scanFlags struct {
	price    float64
	special  bool
	output   string
	noTokens bool
	includes []string
	excludes []string
}

func newScanCmd(a *app) *cobra.Command {
	f := &scanFlags{}

	cmd := &cobra.Command{
		Use:   "scan [path]",
		Short: "Estimate every matching text file under a directory",
		Long: `Walk a directory and estimate each file matching the include patterns
(default **/*.txt). Files that are empty or not valid UTF-8 are reported and
skipped.

Examples:
  tokencost scan -p 0.02                   # Scan the current directory
  tokencost scan -p 0.02 ./docs -i "**/*.md"`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runScan(cmd, args, f)
		},
	}

	cmd.Flags().Float64VarP(&f.price, "price", "p", 0, "price per token (default from config)")
	cmd.Flags().BoolVarP(&f.special, "special", "s", false, "include special characters in tokens")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output format: text, json, markdown (default from config)")
	cmd.Flags().BoolVar(&f.noTokens, "no-tokens", false, "omit the filtered token lists")
	cmd.Flags().StringSliceVarP(&f.includes, "include", "i", nil, "include glob patterns (default from config)")
	cmd.Flags().StringSliceVarP(&f.excludes, "exclude", "x", nil, "exclude glob patterns (default from config)")

	return cmd
}

func (a *app) runScan(cmd *cobra.Command, args []string, f *scanFlags) error {
	path := a.rootDir
	if len(args) > 0 {
		var err error
		path, err = filepath.Abs(args[0])
		if err != nil {
			return fmt.Errorf("invalid path: %w", err)
		}
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("path does not exist: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("path is not a directory: %s", path)
	}

	price := a.cfg.Estimate.Price
	if cmd.Flags().Changed("price") {
		price = f.price
	}
	if err := usecase.ValidatePrice(price); err != nil {
		return errInvalidInput
	}
	special := a.cfg.Estimate.IncludeSpecialChars
	if cmd.Flags().Changed("special") {
		special = f.special
	}

	includes := a.cfg.Estimate.Includes
	if len(f.includes) > 0 {
		includes = f.includes
	}
	excludes := a.cfg.Estimate.Excludes
	if len(f.excludes) > 0 {
		excludes = f.excludes
	}
	if err := fs.ValidatePatterns(append(append([]string{}, includes...), excludes...)); err != nil {
		return err
	}

	opts, err := a.renderOptions(cmd, f.output, f.noTokens)
	if err != nil {
		return err
	}

	var progress usecase.ProgressFunc
	if isTerminal(cmd.ErrOrStderr()) {
		progress = newScanProgress(cmd.ErrOrStderr())
	}

	walker := fs.NewWalker(includes, excludes)
	uc := usecase.NewEstimateUseCase(walker, fs.NewReader(), usecase.DefaultTokenizers, a.logger)
	report, err := uc.EstimateDir(path, special, price, progress)
	if err != nil {
		if errors.Is(err, usecase.ErrNoFiles) {
			fmt.Fprintln(cmd.ErrOrStderr(), "No matching files found.")
			return nil
		}
		return fmt.Errorf("scan failed: %w", err)
	}

	return renderReport(cmd.OutOrStdout(), report, path, opts)
}

// newScanProgress draws a progress bar with an ETA on w. The bar is created
// on the first call, once the number of files is known.
func newScanProgress(w io.Writer) usecase.ProgressFunc {
	var bar *progressbar.ProgressBar
	var startTime time.Time

	return func(processed, total int, path string) {
		if bar == nil {
			startTime = time.Now()
			bar = progressbar.NewOptions(total,
				progressbar.OptionSetWriter(w),
				progressbar.OptionEnableColorCodes(true),
				progressbar.OptionShowBytes(false),
				progressbar.OptionSetWidth(40),
				progressbar.OptionShowCount(),
				progressbar.OptionSetDescription("[cyan]Scanning[reset]"),
				progressbar.OptionSetTheme(progressbar.Theme{
					Saucer:        "[green]=[reset]",
					SaucerHead:    "[green]>[reset]",
					SaucerPadding: " ",
					BarStart:      "[",
					BarEnd:        "]",
				}),
				progressbar.OptionOnCompletion(func() {
					fmt.Fprintln(w)
				}),
			)
		}

		_ = bar.Set(processed)

		elapsed := time.Since(startTime)
		rate := float64(processed) / elapsed.Seconds()
		if rate > 0 {
			eta := time.Duration(float64(total-processed)/rate) * time.Second
			bar.Describe(fmt.Sprintf("[cyan]Scanning[reset] ETA: %s", formatDuration(eta)))
		}
	}
}

// formatDuration formats a duration in a human-readable way.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return "<1s"
	}
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		m := int(d.Minutes())
		s := int(d.Seconds()) % 60
		return fmt.Sprintf("%dm%ds", m, s)
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	return fmt.Sprintf("%dh%dm", h, m)
}
