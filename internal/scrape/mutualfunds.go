package scrape

import (
	"context"
	"log/slog"
	"net/http"

	"golang.org/x/net/html"
)

const (
	mutualFundsURL  = "https://www.etmoney.com/mutual-funds/featured"
	mutualFundsBase = "https://www.etmoney.com"
)

// Fund is one featured mutual fund listing.
type Fund struct {
	Title string `json:"title"`
	Image string `json:"image"`
	Link  string `json:"link"`
}

// MutualFundsFetcher scrapes the featured mutual funds listing.
type MutualFundsFetcher struct {
	URL    string
	Client *http.Client
	Logger *slog.Logger
}

func NewMutualFundsFetcher(logger *slog.Logger) *MutualFundsFetcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &MutualFundsFetcher{
		URL:    mutualFundsURL,
		Client: newHTTPClient(),
		Logger: logger,
	}
}

// Fetch retrieves and parses the listing. Results are fetched fresh on every
// call; nothing is cached.
func (f *MutualFundsFetcher) Fetch(ctx context.Context) ([]Fund, error) {
	doc, err := fetchDocument(ctx, f.Client, f.URL, f.Logger)
	if err != nil {
		return nil, err
	}
	funds, err := ParseMutualFunds(doc)
	if err != nil {
		f.Logger.Warn("scrape.mutualfunds.markup_changed", "url", f.URL)
		return nil, err
	}
	f.Logger.Debug("scrape.mutualfunds.ok", "count", len(funds))
	return funds, nil
}

// ParseMutualFunds extracts fund records from the featured listing document.
// Items live under div.feature-category-item-list > div.item with an h4.h4
// title, an img and a site-relative link.
func ParseMutualFunds(doc *html.Node) ([]Fund, error) {
	lists := findAll(doc, "div", "feature-category-item-list")
	if len(lists) == 0 {
		return nil, ErrMarkupChanged
	}

	funds := make([]Fund, 0, 16)
	for _, list := range lists {
		for _, item := range findAll(list, "div", "item") {
			title := findFirst(item, "h4", "h4")
			img := findFirst(item, "img", "")
			link := findFirst(item, "a", "")
			if title == nil || img == nil || link == nil {
				continue
			}
			funds = append(funds, Fund{
				Title: innerText(title),
				Image: getAttr(img, "src"),
				Link:  absolutize(mutualFundsBase, getAttr(link, "href")),
			})
		}
	}
	return funds, nil
}
