package scrape

import (
	"context"
	"log/slog"
	"net/http"

	"golang.org/x/net/html"
)

const cityGoldRatesURL = "https://www.bankbazaar.com/gold-rate-india.html"

// CityGoldRate is one city row from the per-city gold rate table.
type CityGoldRate struct {
	City    string `json:"city"`
	Gold22K string `json:"gold_22k"`
	Gold24K string `json:"gold_24k"`
}

// CityGoldRatesFetcher scrapes the per-city 22K/24K gold rate table. This is
// a separate source and shape from GoldPricesFetcher.
type CityGoldRatesFetcher struct {
	URL    string
	Client *http.Client
	Logger *slog.Logger
}

func NewCityGoldRatesFetcher(logger *slog.Logger) *CityGoldRatesFetcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &CityGoldRatesFetcher{
		URL:    cityGoldRatesURL,
		Client: newHTTPClient(),
		Logger: logger,
	}
}

// Fetch retrieves and parses the city rate table.
func (f *CityGoldRatesFetcher) Fetch(ctx context.Context) ([]CityGoldRate, error) {
	doc, err := fetchDocument(ctx, f.Client, f.URL, f.Logger)
	if err != nil {
		return nil, err
	}
	rates, err := ParseCityGoldRates(doc)
	if err != nil {
		f.Logger.Warn("scrape.goldrates.markup_changed", "url", f.URL)
		return nil, err
	}
	f.Logger.Debug("scrape.goldrates.ok", "count", len(rates))
	return rates, nil
}

// ParseCityGoldRates extracts rows from the first table on the page: city,
// 22K rate, 24K rate. Rows with fewer than three cells are skipped.
func ParseCityGoldRates(doc *html.Node) ([]CityGoldRate, error) {
	table := findFirst(doc, "table", "")
	if table == nil {
		return nil, ErrMarkupChanged
	}
	body := findFirst(table, "tbody", "")
	if body == nil {
		body = table
	}

	rates := []CityGoldRate{}
	for _, row := range findAll(body, "tr", "") {
		cols := findAll(row, "td", "")
		if len(cols) < 3 {
			continue
		}
		rates = append(rates, CityGoldRate{
			City:    innerText(cols[0]),
			Gold22K: innerText(cols[1]),
			Gold24K: innerText(cols[2]),
		})
	}
	return rates, nil
}
