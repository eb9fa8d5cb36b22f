package domain

// TokenizeRequest is the input of a single tokenize-and-filter call.
type TokenizeRequest struct {
	Text                string
	IncludeSpecialChars bool
}

// CostResult is the priced token count of a text.
type CostResult struct {
	TokenCount int     `json:"token_count"`
	TotalCost  float64 `json:"total_cost"`
}

// NewCostResult prices a token count. The cost is not rounded; formatting
// to a fixed precision is left to the renderer.
func NewCostResult(tokenCount int, price float64) CostResult {
	return CostResult{
		TokenCount: tokenCount,
		TotalCost:  float64(tokenCount) * price,
	}
}

// Estimate is the result of estimating one text.
type Estimate struct {
	Source              string   `json:"source"`
	Price               float64  `json:"price"`
	IncludeSpecialChars bool     `json:"include_special_chars"`
	Tokens              []string `json:"tokens,omitzero"`
	CostResult
}

// Report aggregates the estimates of a multi-file run.
type Report struct {
	Price       float64    `json:"price"`
	Estimates   []Estimate `json:"estimates"`
	TotalTokens int        `json:"total_tokens"`
	TotalCost   float64    `json:"total_cost"`
	Errors      []string   `json:"errors,omitempty"`
}

// Add appends an estimate and updates the totals.
func (r *Report) Add(e Estimate) {
	r.Estimates = append(r.Estimates, e)
	r.TotalTokens += e.TokenCount
	r.TotalCost = float64(r.TotalTokens) * r.Price
}
