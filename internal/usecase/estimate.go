package usecase

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"
	"tokencost/internal/adapter/analyzer"
	"tokencost/internal/domain"
	"tokencost/internal/port"
)

var (
	ErrEmptyText        = errors.New("input text is empty")
	ErrNonPositivePrice = errors.New("token price must be greater than zero")
	ErrNoFiles          = errors.New("no files to estimate")
	ErrNoWalker         = errors.New("no file walker configured")
)

// ProgressFunc is called after each file of a multi-file run.
type ProgressFunc func(processed, total int, path string)

// TokenizerFactory returns the tokenizer for one setting of the
// special-characters flag.
type TokenizerFactory func(includeSpecialChars bool) port.Tokenizer

// DefaultTokenizers builds analyzer tokenizers.
func DefaultTokenizers(includeSpecialChars bool) port.Tokenizer {
	return analyzer.NewTokenizer(includeSpecialChars)
}

// EstimateUseCase prices text by its filtered token count.
type EstimateUseCase struct {
	walker     port.FileWalker
	reader     port.FileReader
	tokenizers TokenizerFactory
	logger     *zap.Logger
}

// NewEstimateUseCase creates an EstimateUseCase. The walker is only needed by
// EstimateDir and may be nil otherwise. A nil logger disables logging.
func NewEstimateUseCase(walker port.FileWalker, reader port.FileReader, tokenizers TokenizerFactory, logger *zap.Logger) *EstimateUseCase {
	if tokenizers == nil {
		tokenizers = DefaultTokenizers
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EstimateUseCase{
		walker:     walker,
		reader:     reader,
		tokenizers: tokenizers,
		logger:     logger,
	}
}

// Validate checks the input before any tokenization happens.
func Validate(text string, price float64) error {
	if text == "" {
		return ErrEmptyText
	}
	return ValidatePrice(price)
}

// ValidatePrice rejects prices that are not finite and strictly positive.
func ValidatePrice(price float64) error {
	if math.IsNaN(price) || math.IsInf(price, 0) || price <= 0 {
		return ErrNonPositivePrice
	}
	return nil
}

// Estimate validates the request, tokenizes it and prices the tokens.
func (uc *EstimateUseCase) Estimate(source string, req domain.TokenizeRequest, price float64) (domain.Estimate, error) {
	if err := Validate(req.Text, price); err != nil {
		return domain.Estimate{}, err
	}

	tokens := uc.tokenizers(req.IncludeSpecialChars).Tokenize(req.Text)
	est := domain.Estimate{
		Source:              source,
		Price:               price,
		IncludeSpecialChars: req.IncludeSpecialChars,
		Tokens:              tokens,
		CostResult:          domain.NewCostResult(len(tokens), price),
	}

	uc.logger.Debug("estimated text",
		zap.String("source", source),
		zap.Int("bytes", len(req.Text)),
		zap.Int("tokens", est.TokenCount),
		zap.Float64("cost", est.TotalCost),
	)

	return est, nil
}

// ReadText reads a file through the configured reader.
func (uc *EstimateUseCase) ReadText(path string) (string, error) {
	return uc.reader.ReadText(path)
}

// EstimateDir walks root and estimates every file the walker returns, in
// walk order. It returns ErrNoFiles when nothing matches.
func (uc *EstimateUseCase) EstimateDir(root string, includeSpecialChars bool, price float64, progress ProgressFunc) (domain.Report, error) {
	if uc.walker == nil {
		return domain.Report{Price: price, Estimates: []domain.Estimate{}}, ErrNoWalker
	}
	if err := ValidatePrice(price); err != nil {
		return domain.Report{Price: price, Estimates: []domain.Estimate{}}, err
	}

	files, err := uc.walker.Walk(root)
	if err != nil {
		return domain.Report{Price: price, Estimates: []domain.Estimate{}}, fmt.Errorf("failed to walk %s: %w", root, err)
	}

	paths := make([]string, len(files))
	for i, file := range files {
		paths[i] = file.Path
	}
	uc.logger.Debug("scanning", zap.String("root", root), zap.Int("files", len(paths)))

	return uc.EstimateFiles(paths, includeSpecialChars, price, progress)
}

// EstimateFiles estimates each file in order. Files that cannot be read,
// are not UTF-8 or are empty are recorded in Report.Errors and skipped.
// An error is returned only when no file could be estimated.
func (uc *EstimateUseCase) EstimateFiles(paths []string, includeSpecialChars bool, price float64, progress ProgressFunc) (domain.Report, error) {
	report := domain.Report{Price: price, Estimates: []domain.Estimate{}}

	if len(paths) == 0 {
		return report, ErrNoFiles
	}
	if err := ValidatePrice(price); err != nil {
		return report, err
	}

	for i, path := range paths {
		est, err := uc.estimateFile(path, includeSpecialChars, price)
		if err != nil {
			uc.logger.Warn("skipping file", zap.String("path", path), zap.Error(err))
			report.Errors = append(report.Errors, err.Error())
		} else {
			report.Add(est)
		}

		if progress != nil {
			progress(i+1, len(paths), path)
		}
	}

	if len(report.Estimates) == 0 {
		return report, fmt.Errorf("all %d files failed: %s", len(paths), report.Errors[0])
	}

	uc.logger.Info("estimated files",
		zap.Int("files", len(report.Estimates)),
		zap.Int("skipped", len(report.Errors)),
		zap.Int("tokens", report.TotalTokens),
		zap.Float64("cost", report.TotalCost),
	)

	return report, nil
}

func (uc *EstimateUseCase) estimateFile(path string, includeSpecialChars bool, price float64) (domain.Estimate, error) {
	text, err := uc.ReadText(path)
	if err != nil {
		return domain.Estimate{}, err
	}

	est, err := uc.Estimate(path, domain.TokenizeRequest{
		Text:                text,
		IncludeSpecialChars: includeSpecialChars,
	}, price)
	if err != nil {
		return domain.Estimate{}, fmt.Errorf("%s: %w", path, err)
	}
	return est, nil
}
