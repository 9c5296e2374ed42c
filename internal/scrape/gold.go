package scrape

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/net/html"
)

const goldPricesURL = "https://economictimes.indiatimes.com/markets/gold-rate"

// Gold price buckets and the label for the current-price widget record.
const (
	GoldBucketCurrent    = "Current Prices"
	GoldBucketHistorical = "Historical Prices"
	goldCurrentLabel     = "Current 24K Gold Price"
)

const goldTimestampLayout = "2006-01-02 15:04:05"

// GoldPrice is one gold rate record. Timestamp is fetch-time wall-clock time,
// not source-page time.
type GoldPrice struct {
	Type      string `json:"type"`
	Price     string `json:"price"`
	Change    string `json:"change"`
	Timestamp string `json:"timestamp"`
}

// GoldPricesFetcher scrapes current and historical gold rates from a single
// page in two passes.
type GoldPricesFetcher struct {
	URL    string
	Client *http.Client
	Logger *slog.Logger
	Now    func() time.Time
}

func NewGoldPricesFetcher(logger *slog.Logger) *GoldPricesFetcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &GoldPricesFetcher{
		URL:    goldPricesURL,
		Client: newHTTPClient(),
		Logger: logger,
		Now:    time.Now,
	}
}

// Fetch retrieves the page and merges both extraction passes into the two
// labeled buckets.
func (f *GoldPricesFetcher) Fetch(ctx context.Context) (map[string][]GoldPrice, error) {
	doc, err := fetchDocument(ctx, f.Client, f.URL, f.Logger)
	if err != nil {
		return nil, err
	}
	prices, err := ParseGoldPrices(doc, f.Now())
	if err != nil {
		f.Logger.Warn("scrape.gold.markup_changed", "url", f.URL)
		return nil, err
	}
	f.Logger.Debug("scrape.gold.ok",
		"current", len(prices[GoldBucketCurrent]),
		"historical", len(prices[GoldBucketHistorical]),
	)
	return prices, nil
}

// ParseGoldPrices runs two independent passes over the document: the
// current-price widget (div.goldPrice > span) and the historical-rates table
// (table.goldSilverTable). Every record is stamped with fetchedAt. Both
// passes missing means the markup changed.
func ParseGoldPrices(doc *html.Node, fetchedAt time.Time) (map[string][]GoldPrice, error) {
	ts := fetchedAt.Format(goldTimestampLayout)

	current := []GoldPrice{}
	if widget := findFirst(doc, "div", "goldPrice"); widget != nil {
		if span := findFirst(widget, "span", ""); span != nil {
			current = append(current, GoldPrice{
				Type:      goldCurrentLabel,
				Price:     innerText(span),
				Change:    "N/A",
				Timestamp: ts,
			})
		}
	}

	historical := []GoldPrice{}
	table := findFirst(doc, "table", "goldSilverTable")
	if table != nil {
		body := findFirst(table, "tbody", "")
		if body == nil {
			body = table
		}
		for _, row := range findAll(body, "tr", "") {
			cols := findAll(row, "td", "")
			if len(cols) < 3 {
				continue
			}
			historical = append(historical, GoldPrice{
				Type:      innerText(cols[0]),
				Price:     innerText(cols[1]),
				Change:    innerText(cols[2]),
				Timestamp: ts,
			})
		}
	}

	if len(current) == 0 && table == nil {
		return nil, ErrMarkupChanged
	}

	return map[string][]GoldPrice{
		GoldBucketCurrent:    current,
		GoldBucketHistorical: historical,
	}, nil
}
