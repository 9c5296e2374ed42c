package llm

import (
	"context"
	"errors"
)

// DocumentAnalysis is the normalized shape we want from the document model.
type DocumentAnalysis struct {
	DocumentType string   `json:"document_type"`
	Explanation  string   `json:"explanation"`
	KeyDetails   []string `json:"key_details"`
	Calculations []string `json:"calculations"`
	Insights     string   `json:"insights"`
}

// NotFinancialResponse is the literal sentence the document model is
// instructed to return for documents outside the financial domain.
const NotFinancialResponse = "This document is not financial-related."

// ErrNotFinancial reports that the model judged the document non-financial.
var ErrNotFinancial = errors.New("document is not financial-related")

// Advisor answers free-text finance questions.
type Advisor interface {
	Ask(ctx context.Context, userQuery string) (string, error)
}

// DocumentAnalyzer classifies extracted document text into a DocumentAnalysis.
// Implementations return ErrNotFinancial for non-financial documents.
type DocumentAnalyzer interface {
	Analyze(ctx context.Context, text string) (*DocumentAnalysis, error)
}
