package services

import (
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"carbonboard/config"
)

func fxTestConfig(upstream string) *config.Config {
	return &config.Config{
		FxAPIURL:         upstream,
		FxLiveTTL:        time.Hour,
		FxHistoricalTTL:  24 * time.Hour,
		FxDefaultSource:  "USD",
		FxDefaultSymbols: "USD,KRW",
	}
}

func quotesServer(hits *int, quotes map[string]float64) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			*hits++
		}
		w.Header().Set("Content-Type", "application/json")
		body := `{"success":true,"timestamp":1700000000,"quotes":{`
		first := true
		for pair, v := range quotes {
			if !first {
				body += ","
			}
			body += fmt.Sprintf("%q:%v", pair, v)
			first = false
		}
		body += `}}`
		w.Write([]byte(body))
	}))
}

func TestResolveBuildsBidirectionalPairs(t *testing.T) {
	srv := quotesServer(nil, map[string]float64{"USDKRW": 1350.12, "USDEUR": 0.91})
	defer srv.Close()

	fx := NewFxService(fxTestConfig(srv.URL), srv.Client())
	snap := fx.Resolve("live", "USD", []string{"KRW", "EUR"}, "")

	if snap.Fallback || !snap.Success {
		t.Fatalf("Expected a live snapshot, got %+v", snap)
	}
	if snap.PairRates["USDKRW"] != 1350.12 {
		t.Errorf("Expected forward rate 1350.12, got %v", snap.PairRates["USDKRW"])
	}
	if product := snap.PairRates["USDKRW"] * snap.PairRates["KRWUSD"]; math.Abs(product-1) > 1e-9 {
		t.Errorf("Expected inverse consistency, got product %v", product)
	}
	for _, pair := range []string{"USDUSD", "KRWKRW", "EUREUR"} {
		if snap.PairRates[pair] != 1 {
			t.Errorf("Expected self-rate 1 for %s, got %v", pair, snap.PairRates[pair])
		}
	}

	if r, ok := fx.GetRatePair("usd", "krw"); !ok || r != 1350.12 {
		t.Errorf("Expected case-insensitive lookup, got %v (%v)", r, ok)
	}
	if r, ok := fx.GetRatePair("EUR", "EUR"); !ok || r != 1 {
		t.Errorf("Expected self pair 1, got %v (%v)", r, ok)
	}
	if _, ok := fx.GetRatePair("EUR", "KRW"); ok {
		t.Errorf("Cross pairs between symbols must not be synthesized")
	}
}

func TestResolveMissingQuoteFallsBack(t *testing.T) {
	srv := quotesServer(nil, map[string]float64{"USDKRW": 1350})
	defer srv.Close()

	fx := NewFxService(fxTestConfig(srv.URL), srv.Client())
	snap := fx.Resolve("live", "USD", []string{"KRW", "JPY"}, "")

	if !snap.Fallback {
		t.Fatalf("Expected fallback snapshot, got %+v", snap)
	}
	if snap.PairRates["USDKRW"] != 1350 || snap.PairRates["KRWUSD"] != 1/1350.0 {
		t.Errorf("Unexpected fallback table %v", snap.PairRates)
	}
	if snap.Message == "" {
		t.Errorf("Expected a readable fallback message")
	}
}

func TestResolveUpstreamErrorPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false,"error":{"code":104,"type":"rate_limit","info":"monthly limit reached"}}`))
	}))
	defer srv.Close()

	fx := NewFxService(fxTestConfig(srv.URL), srv.Client())
	snap := fx.Resolve("live", "USD", []string{"KRW"}, "")

	if !snap.Fallback || snap.Message != "monthly limit reached" {
		t.Errorf("Expected fallback carrying the upstream message, got %+v", snap)
	}
}

func TestResolveUpstreamStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	fx := NewFxService(fxTestConfig(srv.URL), srv.Client())
	snap := fx.Resolve("live", "USD", []string{"KRW"}, "")

	if !snap.Fallback {
		t.Errorf("Expected fallback on upstream %d, got %+v", http.StatusBadGateway, snap)
	}
}

func TestResolveCachesSuccess(t *testing.T) {
	hits := 0
	srv := quotesServer(&hits, map[string]float64{"USDKRW": 1350})
	defer srv.Close()

	fx := NewFxService(fxTestConfig(srv.URL), srv.Client())
	fx.Resolve("live", "USD", []string{"KRW"}, "")
	fx.Resolve("live", "USD", []string{"KRW"}, "")

	if hits != 1 {
		t.Errorf("Expected 1 upstream hit for identical resolves, got %d", hits)
	}

	// A different symbol set is a different cache entry.
	fx.Resolve("live", "USD", []string{"KRW", "EUR"}, "")
	if hits != 2 {
		t.Errorf("Expected a second upstream hit, got %d", hits)
	}
}

func TestResolveNeverCachesFallback(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	fx := NewFxService(fxTestConfig(srv.URL), srv.Client())
	fx.Resolve("live", "USD", []string{"KRW"}, "")
	fx.Resolve("live", "USD", []string{"KRW"}, "")

	if hits != 2 {
		t.Errorf("Expected fallback responses to bypass the cache, got %d hits", hits)
	}
}

func TestResolveVersionMonotonic(t *testing.T) {
	srv := quotesServer(nil, map[string]float64{"USDKRW": 1350})
	defer srv.Close()

	fx := NewFxService(fxTestConfig(srv.URL), srv.Client())
	a := fx.Resolve("live", "USD", []string{"KRW"}, "")
	b := fx.Resolve("live", "USD", []string{"KRW", "USD"}, "")

	if b.Version <= a.Version {
		t.Errorf("Expected strictly increasing versions, got %d then %d", a.Version, b.Version)
	}
}

func TestResolveDefaults(t *testing.T) {
	srv := quotesServer(nil, map[string]float64{"USDKRW": 1350})
	defer srv.Close()

	fx := NewFxService(fxTestConfig(srv.URL), srv.Client())
	snap := fx.Resolve("", "", nil, "2024-01-15")

	if snap.Mode != "live" || snap.Date != "" {
		t.Errorf("Expected live mode with no date, got %+v", snap)
	}
	if snap.BaseSource != "USD" || snap.PairRates["USDKRW"] != 1350 {
		t.Errorf("Expected default source and symbols, got %+v", snap)
	}
}

func TestResolveHistoricalDate(t *testing.T) {
	var gotDate string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotDate = r.URL.Query().Get("date")
		w.Write([]byte(`{"success":true,"timestamp":1700000000,"quotes":{"USDKRW":1300}}`))
	}))
	defer srv.Close()

	fx := NewFxService(fxTestConfig(srv.URL), srv.Client())
	snap := fx.Resolve("historical", "USD", []string{"KRW"}, "2024-01-15")

	if gotDate != "2024-01-15" {
		t.Errorf("Expected date forwarded upstream, got %q", gotDate)
	}
	if snap.Mode != "historical" || snap.Date != "2024-01-15" {
		t.Errorf("Expected historical snapshot with date, got %+v", snap)
	}
}
