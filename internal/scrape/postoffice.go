package scrape

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"golang.org/x/net/html"
)

const postOfficeURL = "https://www.indiapost.gov.in/Financial/pages/content/post-office-saving-schemes.aspx"

// Scheme category buckets, keyed off title keywords.
const (
	CategorySavings     = "Savings Schemes"
	CategoryTimeDeposit = "Time Deposits"
	CategoryMonthly     = "Monthly Income Schemes"
	CategorySenior      = "Senior Citizens Schemes"
	CategoryRecurring   = "Recurring Deposits"
	CategoryOther       = "Other Schemes"
)

// Scheme is one post-office saving scheme. The source page does not expose
// per-scheme rates or limits in a scrapable form, so those fields carry fixed
// placeholder strings and the link points at the listing page itself.
type Scheme struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	InterestRate  string `json:"interestRate"`
	MinInvestment string `json:"minInvestment"`
	Tenure        string `json:"tenure"`
	Link          string `json:"link"`
}

// PostOfficeFetcher scrapes the post-office saving schemes listing.
type PostOfficeFetcher struct {
	URL    string
	Client *http.Client
	Logger *slog.Logger
}

func NewPostOfficeFetcher(logger *slog.Logger) *PostOfficeFetcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostOfficeFetcher{
		URL:    postOfficeURL,
		Client: newHTTPClient(),
		Logger: logger,
	}
}

// Fetch retrieves the listing and buckets schemes by category.
func (f *PostOfficeFetcher) Fetch(ctx context.Context) (map[string][]Scheme, error) {
	doc, err := fetchDocument(ctx, f.Client, f.URL, f.Logger)
	if err != nil {
		return nil, err
	}
	schemes, err := ParsePostOfficeSchemes(doc, f.URL)
	if err != nil {
		f.Logger.Warn("scrape.postoffice.markup_changed", "url", f.URL)
		return nil, err
	}
	f.Logger.Debug("scrape.postoffice.ok", "categories", len(schemes))
	return schemes, nil
}

// ParsePostOfficeSchemes extracts schemes from li.li_header items (anchor
// title + div.li_content description) and buckets them by title keyword.
func ParsePostOfficeSchemes(doc *html.Node, sourceURL string) (map[string][]Scheme, error) {
	items := findAll(doc, "li", "li_header")
	if len(items) == 0 {
		return nil, ErrMarkupChanged
	}

	out := make(map[string][]Scheme)
	for _, item := range items {
		titleTag := findFirst(item, "a", "")
		contentTag := findFirst(item, "div", "li_content")
		if titleTag == nil || contentTag == nil {
			continue
		}
		title := innerText(titleTag)
		category := categorizeScheme(title)
		out[category] = append(out[category], Scheme{
			Title:         title,
			Description:   innerText(contentTag),
			InterestRate:  "Varies",
			MinInvestment: "Depends on scheme",
			Tenure:        "Depends on scheme",
			Link:          sourceURL,
		})
	}
	return out, nil
}

// categorizeScheme buckets a scheme by case-insensitive keyword match on the
// title. Keyword order matters: the first hit wins.
func categorizeScheme(title string) string {
	t := strings.ToLower(title)
	switch {
	case strings.Contains(t, "saving"):
		return CategorySavings
	case strings.Contains(t, "deposit"):
		return CategoryTimeDeposit
	case strings.Contains(t, "income"):
		return CategoryMonthly
	case strings.Contains(t, "senior"):
		return CategorySenior
	case strings.Contains(t, "recurring"):
		return CategoryRecurring
	default:
		return CategoryOther
	}
}
