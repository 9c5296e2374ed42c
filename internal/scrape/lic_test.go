package scrape

import (
	"errors"
	"testing"
)

const licFixture = `
<html><body>
<div class="accordion-item">
  <button class="accordion-button">Endowment Plans</button>
  <table class="table">
    <tbody>
      <tr><td>1</td><td><a href="/single-premium-endowment">Single Premium Endowment Plan</a></td><td>Plan No. 917</td></tr>
      <tr><td>2</td><td><a href="https://licindia.in/new-endowment">New Endowment Plan</a></td><td>Plan No. 914</td></tr>
      <tr><td>3</td></tr>
    </tbody>
  </table>
</div>
<div class="accordion-item">
  <button class="accordion-button">Unit Linked Plans</button>
  <table class="table">
    <tbody><tr><td>1</td><td><a href="/ulip">SIIP</a></td><td>Plan No. 852</td></tr></tbody>
  </table>
</div>
<div class="accordion-item">
  <button class="accordion-button">Pension Plans</button>
</div>
</body></html>`

func TestParseLICPolicies(t *testing.T) {
	got, err := ParseLICPolicies(parseDoc(t, licFixture))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	endowment, ok := got["Endowment Plans"]
	if !ok {
		t.Fatalf("missing Endowment Plans category: %v", got)
	}
	if len(endowment) != 2 {
		t.Fatalf("expected 2 endowment policies, got %v", endowment)
	}
	if endowment[0].Title != "Single Premium Endowment Plan" {
		t.Errorf("title = %q", endowment[0].Title)
	}
	if endowment[0].Link != "https://licindia.in/single-premium-endowment" {
		t.Errorf("relative link not absolutized: %q", endowment[0].Link)
	}
	if endowment[0].Description != "Plan No. 917" {
		t.Errorf("description = %q", endowment[0].Description)
	}
	if endowment[1].Link != "https://licindia.in/new-endowment" {
		t.Errorf("absolute link mangled: %q", endowment[1].Link)
	}

	// Category outside the allow-list is ignored.
	if _, ok := got["Unit Linked Plans"]; ok {
		t.Error("non-allow-listed category should be dropped")
	}

	// Allow-listed category without a table yields an empty list.
	pension, ok := got["Pension Plans"]
	if !ok {
		t.Fatal("missing Pension Plans category")
	}
	if len(pension) != 0 {
		t.Errorf("expected empty pension list, got %v", pension)
	}
}

func TestParseLICPolicies_MarkupChanged(t *testing.T) {
	_, err := ParseLICPolicies(parseDoc(t, `<html><body><div class="cards"></div></body></html>`))
	if !errors.Is(err, ErrMarkupChanged) {
		t.Fatalf("expected ErrMarkupChanged, got %v", err)
	}
}
