package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"tokencost/internal/adapter/fs"
	"tokencost/internal/domain"
	"tokencost/internal/usecase"
)

// errInvalidInput is shown when the text is empty or the price is not positive.
var errInvalidInput = errors.New("please provide valid input text and enter a positive token price")

type estimateFlags struct {
	text     string
	price    float64
	special  bool
	output   string
	noTokens bool
}

func newEstimateCmd(a *app) *cobra.Command {
	f := &estimateFlags{}

	cmd := &cobra.Command{
		Use:   "estimate [file]",
		Short: "Estimate the token count and cost of a text",
		Long: `Estimate the token count and cost of a text. The text is taken from
--text, else from the given UTF-8 file ("-" for stdin), else from stdin.

Examples:
  tokencost estimate -p 0.02 --text "Hello, World!"
  tokencost estimate -p 0.02 -s notes.txt
  tokencost estimate -p 0.001 -o json --no-tokens report.txt`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runEstimate(cmd, args, f)
		},
	}

	cmd.Flags().StringVarP(&f.text, "text", "t", "", "text to estimate")
	cmd.Flags().Float64VarP(&f.price, "price", "p", 0, "price per token (default from config)")
	cmd.Flags().BoolVarP(&f.special, "special", "s", false, "include special characters in tokens")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output format: text, json, markdown (default from config)")
	cmd.Flags().BoolVar(&f.noTokens, "no-tokens", false, "omit the filtered token list")

	return cmd
}

func (a *app) runEstimate(cmd *cobra.Command, args []string, f *estimateFlags) error {
	uc := usecase.NewEstimateUseCase(nil, fs.NewReader(), usecase.DefaultTokenizers, a.logger)

	text, source, err := a.readInput(cmd, args, f, uc)
	if err != nil {
		return err
	}

	price := a.cfg.Estimate.Price
	if cmd.Flags().Changed("price") {
		price = f.price
	}
	special := a.cfg.Estimate.IncludeSpecialChars
	if cmd.Flags().Changed("special") {
		special = f.special
	}

	est, err := uc.Estimate(source, domain.TokenizeRequest{
		Text:                text,
		IncludeSpecialChars: special,
	}, price)
	if err != nil {
		if errors.Is(err, usecase.ErrEmptyText) || errors.Is(err, usecase.ErrNonPositivePrice) {
			a.logger.Debug("input rejected", zap.Error(err))
			return errInvalidInput
		}
		return err
	}

	opts, err := a.renderOptions(cmd, f.output, f.noTokens)
	if err != nil {
		return err
	}
	return renderEstimate(cmd.OutOrStdout(), est, opts)
}

// readInput returns the text to estimate and a label for its source.
func (a *app) readInput(cmd *cobra.Command, args []string, f *estimateFlags, uc *usecase.EstimateUseCase) (string, string, error) {
	if cmd.Flags().Changed("text") {
		if len(args) > 0 {
			return "", "", fmt.Errorf("--text and a file argument are mutually exclusive")
		}
		return f.text, "text", nil
	}

	if len(args) > 0 && args[0] != "-" {
		text, err := uc.ReadText(args[0])
		if err != nil {
			if errors.Is(err, fs.ErrInvalidUTF8) {
				return "", "", fmt.Errorf("failed to decode file: %w", err)
			}
			return "", "", fmt.Errorf("failed to read file: %w", err)
		}
		return text, args[0], nil
	}

	// Nothing to read from an interactive terminal without an explicit "-".
	stdin := cmd.InOrStdin()
	if len(args) == 0 {
		if file, ok := stdin.(*os.File); ok && isTerminal(file) {
			return "", "stdin", nil
		}
	}

	text, err := fs.ReadAll(stdin)
	if err != nil {
		return "", "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return text, "stdin", nil
}

func (a *app) renderOptions(cmd *cobra.Command, output string, noTokens bool) (renderOptions, error) {
	format := a.cfg.Output.Format
	if output != "" {
		format = output
	}
	switch format {
	case "text", "json", "markdown":
	default:
		return renderOptions{}, fmt.Errorf("unknown output format %q", format)
	}

	out := cmd.OutOrStdout()
	return renderOptions{
		format:     format,
		precision:  a.cfg.Output.Precision,
		showTokens: a.cfg.Output.ShowTokens && !noTokens,
		styled:     isTerminal(out),
		width:      terminalWidth(out),
	}, nil
}
