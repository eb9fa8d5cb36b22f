//go:build js && wasm

package main

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"syscall/js"

	"tokencost/internal/adapter/analyzer"
	"tokencost/internal/adapter/fs"
	"tokencost/internal/domain"
	"tokencost/internal/usecase"
)

var estimator *usecase.EstimateUseCase

func init() {
	estimator = usecase.NewEstimateUseCase(nil, fs.NewReader(), usecase.DefaultTokenizers, nil)
}

func main() {
	c := make(chan struct{})

	js.Global().Set("tokencostEstimate", js.FuncOf(estimate))
	js.Global().Set("tokencostTokens", js.FuncOf(tokens))
	js.Global().Set("tokencostStopwords", js.FuncOf(stopwords))

	<-c
}

// estimate(text, price, [includeSpecialChars]) prices a text the same way
// the CLI does.
func estimate(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return makeError("usage: tokencostEstimate(text, price, [includeSpecialChars])")
	}

	if args[0].Type() != js.TypeString {
		return makeError("text must be a string")
	}
	price, err := parsePrice(args[1])
	if err != nil {
		return makeError(err.Error())
	}

	req := domain.TokenizeRequest{Text: args[0].String()}
	if len(args) > 2 {
		req.IncludeSpecialChars = args[2].Truthy()
	}

	est, err := estimator.Estimate("browser", req, price)
	if err != nil {
		return makeError("Please provide valid input text and enter a positive token price.")
	}

	return makeResult(map[string]interface{}{
		"tokenCount": est.TokenCount,
		"totalCost":  est.TotalCost,
		"tokens":     est.Tokens,
	})
}

// tokens(text, [includeSpecialChars]) returns the filtered tokens only.
func tokens(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 || args[0].Type() != js.TypeString {
		return makeError("usage: tokencostTokens(text, [includeSpecialChars])")
	}

	tok := analyzer.NewTokenizer(len(args) > 1 && args[1].Truthy())
	return makeResult(map[string]interface{}{
		"tokens": tok.Tokenize(args[0].String()),
	})
}

// parsePrice accepts a number or a numeric string, as read from an
// <input> element.
func parsePrice(v js.Value) (float64, error) {
	switch v.Type() {
	case js.TypeNumber:
		return v.Float(), nil
	case js.TypeString:
		price, err := strconv.ParseFloat(strings.TrimSpace(v.String()), 64)
		if err != nil {
			return 0, errors.New("price must be a number")
		}
		return price, nil
	default:
		return 0, errors.New("price must be a number")
	}
}

func stopwords(this js.Value, args []js.Value) interface{} {
	return makeResult(map[string]interface{}{
		"stopwords": analyzer.StopWords(),
	})
}

func makeError(msg string) interface{} {
	result, _ := json.Marshal(map[string]interface{}{
		"error": msg,
	})
	return string(result)
}

func makeResult(data map[string]interface{}) interface{} {
	result, _ := json.Marshal(data)
	return string(result)
}
