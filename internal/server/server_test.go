package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"finadvisor/internal/invest"
	"finadvisor/internal/llm"
	"finadvisor/internal/ocr"
	"finadvisor/internal/scrape"
)

// ---- fakes ----

type fakeAdvisor struct {
	answer string
	err    error
}

func (f *fakeAdvisor) Ask(context.Context, string) (string, error) { return f.answer, f.err }

type fakeAnalyzer struct {
	analysis *llm.DocumentAnalysis
	err      error
	called   bool
}

func (f *fakeAnalyzer) Analyze(context.Context, string) (*llm.DocumentAnalysis, error) {
	f.called = true
	return f.analysis, f.err
}

type fakeVideos struct {
	links []string
	err   error
}

func (f *fakeVideos) Search(context.Context, string) ([]string, error) { return f.links, f.err }

type fakeExtractor struct {
	text string
	err  error
}

func (f *fakeExtractor) Extract(_ context.Context, path string) (ocr.Result, error) {
	if f.err != nil {
		return ocr.Result{}, f.err
	}
	return ocr.Result{Text: f.text, Pages: 1, SourceType: "IMAGE"}, nil
}

type fakeFunds struct {
	funds []scrape.Fund
	err   error
}

func (f *fakeFunds) Fetch(context.Context) ([]scrape.Fund, error) { return f.funds, f.err }

type fakeLIC struct {
	policies map[string][]scrape.Policy
	err      error
}

func (f *fakeLIC) Fetch(context.Context) (map[string][]scrape.Policy, error) {
	return f.policies, f.err
}

type fakePostOffice struct {
	schemes map[string][]scrape.Scheme
	err     error
}

func (f *fakePostOffice) Fetch(context.Context) (map[string][]scrape.Scheme, error) {
	return f.schemes, f.err
}

type fakeGold struct {
	prices map[string][]scrape.GoldPrice
	err    error
}

func (f *fakeGold) Fetch(context.Context) (map[string][]scrape.GoldPrice, error) {
	return f.prices, f.err
}

type fakeCityRates struct {
	rates []scrape.CityGoldRate
	err   error
}

func (f *fakeCityRates) Fetch(context.Context) ([]scrape.CityGoldRate, error) {
	return f.rates, f.err
}

func testDeps(t *testing.T) Deps {
	t.Helper()
	catalog, err := invest.LoadCatalog()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	return Deps{
		Logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		Catalog:        catalog,
		Advisor:        &fakeAdvisor{answer: "Invest steadily."},
		Analyzer:       &fakeAnalyzer{analysis: &llm.DocumentAnalysis{DocumentType: "Invoice"}},
		Videos:         &fakeVideos{links: []string{"https://www.youtube.com/watch?v=a"}},
		Extractor:      &fakeExtractor{text: "statement text"},
		MutualFunds:    &fakeFunds{},
		LIC:            &fakeLIC{},
		PostOffice:     &fakePostOffice{},
		GoldPrices:     &fakeGold{},
		CityGoldRates:  &fakeCityRates{},
		UploadDir:      t.TempDir(),
		FrontendOrigin: "http://127.0.0.1:5173",
	}
}

func doJSON(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rdr)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &m); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return m
}

// ---- /ask ----

func TestAsk_OK(t *testing.T) {
	s := New(testDeps(t))
	w := doJSON(t, s.Handler(), http.MethodPost, "/ask", `{"user_query":"how to save tax?"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if got := decodeBody(t, w)["response"]; got != "Invest steadily." {
		t.Errorf("response = %v", got)
	}
}

func TestAsk_MissingQuery(t *testing.T) {
	s := New(testDeps(t))
	w := doJSON(t, s.Handler(), http.MethodPost, "/ask", `{}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if _, ok := decodeBody(t, w)["error"]; !ok {
		t.Error("expected error envelope")
	}
}

func TestAsk_AdvisorFailure(t *testing.T) {
	deps := testDeps(t)
	deps.Advisor = &fakeAdvisor{err: fmt.Errorf("upstream down")}
	s := New(deps)
	w := doJSON(t, s.Handler(), http.MethodPost, "/ask", `{"user_query":"q"}`)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}

// ---- /get_videos ----

func TestVideos_OK(t *testing.T) {
	s := New(testDeps(t))
	w := doJSON(t, s.Handler(), http.MethodPost, "/get_videos", `{"question":"what is a SIP"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := decodeBody(t, w)
	if _, ok := body["videos"]; !ok {
		t.Errorf("expected videos key, got %v", body)
	}
}

func TestVideos_MissingQuestion(t *testing.T) {
	s := New(testDeps(t))
	w := doJSON(t, s.Handler(), http.MethodPost, "/get_videos", `{"question":"  "}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestVideos_UpstreamFailure(t *testing.T) {
	deps := testDeps(t)
	deps.Videos = &fakeVideos{err: fmt.Errorf("quota")}
	s := New(deps)
	w := doJSON(t, s.Handler(), http.MethodPost, "/get_videos", `{"question":"q"}`)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}

// ---- /get_investment_options ----

func TestInvestmentOptions_OK(t *testing.T) {
	s := New(testDeps(t))
	body := `{"age":30,"horizon":"long","period":5,"investment_type":"lumpsum","amount":10000}`
	w := doJSON(t, s.Handler(), http.MethodPost, "/get_investment_options", body)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Recommended []string `json:"recommended_investments"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	for _, want := range []string{"Real Estate Investment", "Fixed Deposit", "Gold Investment", "Share Market", "Index Funds"} {
		found := false
		for _, got := range resp.Recommended {
			if got == want {
				found = true
			}
		}
		if !found {
			t.Errorf("expected %q in recommendations %v", want, resp.Recommended)
		}
	}
}

func TestInvestmentOptions_MissingFieldIs400(t *testing.T) {
	s := New(testDeps(t))
	// age omitted
	body := `{"horizon":"long","period":5,"investment_type":"lumpsum","amount":10000}`
	w := doJSON(t, s.Handler(), http.MethodPost, "/get_investment_options", body)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if got := decodeBody(t, w)["error"]; got != "All fields are required." {
		t.Errorf("error = %v", got)
	}
}

func TestInvestmentOptions_AmountIsInert(t *testing.T) {
	s := New(testDeps(t))
	h := s.Handler()
	base := `{"age":30,"horizon":"long","period":5,"investment_type":"lumpsum","amount":%s}`
	var bodies []string
	for _, amount := range []string{"1", "999999", "0.5"} {
		w := doJSON(t, h, http.MethodPost, "/get_investment_options", fmt.Sprintf(base, amount))
		if w.Code != http.StatusOK {
			t.Fatalf("amount %s: status %d", amount, w.Code)
		}
		bodies = append(bodies, w.Body.String())
	}
	for _, b := range bodies[1:] {
		if b != bodies[0] {
			t.Fatalf("amount changed the result: %q vs %q", bodies[0], b)
		}
	}
}

// ---- scrape endpoints ----

func TestMutualFunds_OK(t *testing.T) {
	deps := testDeps(t)
	deps.MutualFunds = &fakeFunds{funds: []scrape.Fund{{Title: "Alpha", Image: "i", Link: "l"}}}
	s := New(deps)
	w := doJSON(t, s.Handler(), http.MethodGet, "/get-mutual-funds", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var funds []scrape.Fund
	if err := json.Unmarshal(w.Body.Bytes(), &funds); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(funds) != 1 || funds[0].Title != "Alpha" {
		t.Errorf("funds = %v", funds)
	}
}

func TestScrapeEndpoints_UpstreamFailureIsEnvelope(t *testing.T) {
	deps := testDeps(t)
	failure := fmt.Errorf("fetch: status 404")
	deps.MutualFunds = &fakeFunds{err: failure}
	deps.LIC = &fakeLIC{err: failure}
	deps.PostOffice = &fakePostOffice{err: failure}
	deps.GoldPrices = &fakeGold{err: failure}
	deps.CityGoldRates = &fakeCityRates{err: failure}
	s := New(deps)
	h := s.Handler()

	for _, path := range []string{"/get-mutual-funds", "/lic_policies", "/post_office_policies", "/gold_prices", "/get_gold_rates"} {
		w := doJSON(t, h, http.MethodGet, path, "")
		if w.Code != http.StatusInternalServerError {
			t.Errorf("%s: expected 500, got %d", path, w.Code)
		}
		if _, ok := decodeBody(t, w)["error"]; !ok {
			t.Errorf("%s: expected error envelope, got %s", path, w.Body.String())
		}
	}
}

func TestGoldPrices_CategoriesEnvelope(t *testing.T) {
	deps := testDeps(t)
	deps.GoldPrices = &fakeGold{prices: map[string][]scrape.GoldPrice{
		scrape.GoldBucketCurrent:    {{Type: "Current 24K Gold Price", Price: "7000", Change: "N/A"}},
		scrape.GoldBucketHistorical: {},
	}}
	s := New(deps)
	w := doJSON(t, s.Handler(), http.MethodGet, "/gold_prices", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := decodeBody(t, w)
	cats, ok := body["categories"].(map[string]any)
	if !ok {
		t.Fatalf("expected categories object, got %v", body)
	}
	if _, ok := cats[scrape.GoldBucketCurrent]; !ok {
		t.Errorf("missing current bucket: %v", cats)
	}
}

func TestMarkupChange_IsDistinguishable(t *testing.T) {
	deps := testDeps(t)
	deps.MutualFunds = &fakeFunds{err: scrape.ErrMarkupChanged}
	s := New(deps)
	w := doJSON(t, s.Handler(), http.MethodGet, "/get-mutual-funds", "")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	msg, _ := decodeBody(t, w)["error"].(string)
	if !strings.Contains(msg, "structure changed") {
		t.Errorf("markup drift not distinguishable in %q", msg)
	}
}

// ---- CORS ----

func TestCORS_AllowsConfiguredOrigin(t *testing.T) {
	s := New(testDeps(t))
	req := httptest.NewRequest(http.MethodOptions, "/ask", nil)
	req.Header.Set("Origin", "http://127.0.0.1:5173")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("preflight status = %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://127.0.0.1:5173" {
		t.Errorf("allow-origin = %q", got)
	}
	if got := w.Header().Get("Access-Control-Allow-Credentials"); got != "true" {
		t.Errorf("allow-credentials = %q", got)
	}
}

func TestCORS_IgnoresOtherOrigins(t *testing.T) {
	s := New(testDeps(t))
	req := httptest.NewRequest(http.MethodGet, "/get-mutual-funds", nil)
	req.Header.Set("Origin", "https://evil.example")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("unexpected allow-origin %q", got)
	}
}
