package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"tokencost/internal/domain"
)

func TestFormatCost(t *testing.T) {
	assert.Equal(t, "$0.06", formatCost(0.06, 2))
	assert.Equal(t, "$0.00", formatCost(0.001, 2))
	assert.Equal(t, "$0.0010", formatCost(0.001, 4))
	assert.Equal(t, "$3", formatCost(3, 0))
}

func TestRenderReport_Markdown(t *testing.T) {
	report := domain.Report{Price: 0.5}
	report.Add(domain.Estimate{Source: "/data/a.txt", CostResult: domain.NewCostResult(2, 0.5)})
	report.Add(domain.Estimate{Source: "/data/sub/b.txt", CostResult: domain.NewCostResult(4, 0.5)})
	report.Errors = []string{"/data/c.txt: content is not valid UTF-8"}

	var buf bytes.Buffer
	require.NoError(t, renderReport(&buf, report, "/data", renderOptions{format: "markdown", precision: 2}))

	out := buf.String()
	assert.Contains(t, out, "| a.txt | 2 | $1.00 |")
	assert.Contains(t, out, "| sub/b.txt | 4 | $2.00 |")
	assert.Contains(t, out, "| **Total** | **6** | **$3.00** |")
	assert.Contains(t, out, "## Warnings")
}

func TestRenderEstimate_JSONWithoutTokens(t *testing.T) {
	est := domain.Estimate{Source: "text", Tokens: []string{"cat"}, CostResult: domain.NewCostResult(1, 1)}

	var buf bytes.Buffer
	require.NoError(t, renderEstimate(&buf, est, renderOptions{format: "json"}))
	assert.NotContains(t, buf.String(), `"tokens"`)
	assert.Contains(t, buf.String(), `"token_count": 1`)
}

func TestDisplayPath(t *testing.T) {
	assert.Equal(t, "sub/b.txt", displayPath("/data", "/data/sub/b.txt"))
	assert.Equal(t, "/other/x.txt", displayPath("/data", "/other/x.txt"))
}

func TestRenderEstimate_JSONKeepsEmptyTokens(t *testing.T) {
	est := domain.Estimate{Source: "text", Tokens: []string{}, CostResult: domain.NewCostResult(0, 1)}

	var buf bytes.Buffer
	require.NoError(t, renderEstimate(&buf, est, renderOptions{format: "json", showTokens: true}))
	assert.Contains(t, buf.String(), `"tokens": []`)
}

func TestRenderEstimate_MarkdownFenceHoldsBackticks(t *testing.T) {
	est := domain.Estimate{Tokens: []string{"```x", "y`"}, CostResult: domain.NewCostResult(2, 1)}

	var buf bytes.Buffer
	require.NoError(t, renderEstimate(&buf, est, renderOptions{format: "markdown", showTokens: true, precision: 2}))
	assert.Contains(t, buf.String(), "````\n```x\ny`\n````\n")
}

func TestCodeFence(t *testing.T) {
	assert.Equal(t, "```", codeFence([]string{"cat", "dog"}))
	assert.Equal(t, "```", codeFence([]string{"a``b"}))
	assert.Equal(t, "`````", codeFence([]string{"````", "``"}))
}
