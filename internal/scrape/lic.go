package scrape

import (
	"context"
	"log/slog"
	"net/http"

	"golang.org/x/net/html"
)

const (
	licPoliciesURL = "https://licindia.in/insurance-plan"
	licBase        = "https://licindia.in"
)

// licCategories is the fixed allow-list of plan categories we scrape.
var licCategories = map[string]struct{}{
	"Endowment Plans":      {},
	"Money Back Plans":     {},
	"Term Insurance Plans": {},
	"Pension Plans":        {},
}

// Policy is one insurance policy row.
type Policy struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	Description string `json:"description"`
}

// LICFetcher scrapes the LIC insurance plan listing.
type LICFetcher struct {
	URL    string
	Client *http.Client
	Logger *slog.Logger
}

func NewLICFetcher(logger *slog.Logger) *LICFetcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &LICFetcher{
		URL:    licPoliciesURL,
		Client: newHTTPClient(),
		Logger: logger,
	}
}

// Fetch retrieves and parses the plan listing grouped by category.
func (f *LICFetcher) Fetch(ctx context.Context) (map[string][]Policy, error) {
	doc, err := fetchDocument(ctx, f.Client, f.URL, f.Logger)
	if err != nil {
		return nil, err
	}
	policies, err := ParseLICPolicies(doc)
	if err != nil {
		f.Logger.Warn("scrape.lic.markup_changed", "url", f.URL)
		return nil, err
	}
	f.Logger.Debug("scrape.lic.ok", "categories", len(policies))
	return policies, nil
}

// ParseLICPolicies extracts policies per allow-listed category. Categories are
// accordion items whose button text names the category; each holds a table
// whose body rows carry the policy link in the second cell and a description
// in the third.
func ParseLICPolicies(doc *html.Node) (map[string][]Policy, error) {
	items := findAll(doc, "div", "accordion-item")
	if len(items) == 0 {
		return nil, ErrMarkupChanged
	}

	out := make(map[string][]Policy, len(licCategories))
	for _, item := range items {
		button := findFirst(item, "button", "accordion-button")
		if button == nil {
			continue
		}
		category := innerText(button)
		if _, ok := licCategories[category]; !ok {
			continue
		}

		policies := []Policy{}
		if table := findFirst(item, "table", "table"); table != nil {
			body := findFirst(table, "tbody", "")
			if body == nil {
				body = table
			}
			for _, row := range findAll(body, "tr", "") {
				cols := findAll(row, "td", "")
				if len(cols) < 2 {
					continue
				}
				link := findFirst(cols[1], "a", "")
				if link == nil {
					continue
				}
				description := ""
				if len(cols) > 2 {
					description = innerText(cols[2])
				}
				policies = append(policies, Policy{
					Title:       innerText(link),
					Link:        absolutize(licBase, getAttr(link, "href")),
					Description: description,
				})
			}
		}
		out[category] = policies
	}
	return out, nil
}
