package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/apex/log"

	"carbonboard/config"
	"carbonboard/models"
	"carbonboard/utils"
)

type fxUpstreamError struct {
	Code int    `json:"code"`
	Type string `json:"type"`
	Info string `json:"info"`
}

// fxUpstreamPayload is the strict boundary for the untrusted upstream JSON.
type fxUpstreamPayload struct {
	Success   *bool              `json:"success"`
	Quotes    map[string]float64 `json:"quotes"`
	Timestamp int64              `json:"timestamp"`
	Error     *fxUpstreamError   `json:"error"`
}

type cachedResolve struct {
	snapshot *models.FxSnapshot
	expires  time.Time
}

// FxService resolves pair rates from one upstream endpoint and keeps the
// latest snapshot for rate lookups. Live quotes are cached for an hour,
// historical quotes for a day; fallback responses are never cached.
type FxService struct {
	cfg    *config.Config
	client *http.Client

	mu      sync.Mutex
	cache   map[string]cachedResolve
	current *models.FxSnapshot
	lastVer int64
}

func NewFxService(cfg *config.Config, client *http.Client) *FxService {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &FxService{
		cfg:    cfg,
		client: client,
		cache:  make(map[string]cachedResolve),
	}
}

// Resolve fetches quotes for source against symbols and builds the
// bidirectional pair-rate table. Any upstream failure degrades to the
// hardcoded USD/KRW fallback table; callers always get a usable snapshot.
func (s *FxService) Resolve(mode, source string, symbols []string, date string) *models.FxSnapshot {
	if mode != "historical" {
		mode = "live"
		date = ""
	}
	source = strings.ToUpper(strings.TrimSpace(source))
	if source == "" {
		source = s.cfg.FxDefaultSource
	}
	syms := cleanSymbols(symbols)
	if len(syms) == 0 {
		syms = cleanSymbols(strings.Split(s.cfg.FxDefaultSymbols, ","))
	}

	key := mode + "|" + source + "|" + strings.Join(syms, ",") + "|" + date

	s.mu.Lock()
	if c, ok := s.cache[key]; ok && time.Now().Before(c.expires) {
		s.current = c.snapshot
		s.mu.Unlock()
		return c.snapshot
	}
	s.mu.Unlock()

	snap, err := s.fetch(mode, source, syms, date)
	if err != nil {
		log.Errorf("FX resolve failed, serving fallback: %v", err)
		snap = s.fallbackSnapshot(mode, date, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	snap.Version = s.nextVersionLocked()
	if !snap.Fallback {
		ttl := s.cfg.FxLiveTTL
		if mode == "historical" {
			ttl = s.cfg.FxHistoricalTTL
		}
		if ttl > 0 {
			s.cache[key] = cachedResolve{snapshot: snap, expires: time.Now().Add(ttl)}
		}
	}
	s.current = snap
	return snap
}

// GetRatePair returns the scalar rate converting from into to. A self-pair
// is always 1 independent of table contents; an unknown pair is reported as
// not found, never as an error.
func (s *FxService) GetRatePair(from, to string) (float64, bool) {
	from = strings.ToUpper(from)
	to = strings.ToUpper(to)
	if from == to {
		return 1, true
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return 0, false
	}
	r, ok := s.current.PairRates[from+to]
	return r, ok
}

// Current returns the latest snapshot, or nil before the first resolve.
func (s *FxService) Current() *models.FxSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

func (s *FxService) fetch(mode, source string, symbols []string, date string) (*models.FxSnapshot, error) {
	endpoint := s.cfg.FxAPIURL + "/live"
	if mode == "historical" {
		endpoint = s.cfg.FxAPIURL + "/historical"
	}

	params := url.Values{}
	params.Set("access_key", s.cfg.FxAPIKey)
	params.Set("source", source)
	params.Set("currencies", strings.Join(symbols, ","))
	params.Set("format", "1")
	if mode == "historical" && date != "" {
		params.Set("date", date)
	}

	resp, err := s.client.Get(endpoint + "?" + params.Encode())
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("upstream %d", resp.StatusCode)
	}

	var payload fxUpstreamPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decoding upstream response: %w", err)
	}
	if payload.Error != nil || (payload.Success != nil && !*payload.Success) {
		msg := "FX API error"
		if payload.Error != nil {
			if payload.Error.Info != "" {
				msg = payload.Error.Info
			} else if payload.Error.Type != "" {
				msg = payload.Error.Type
			}
		}
		return nil, errors.New(msg)
	}

	// Forward (source->sym) plus inverse (sym->source) for every requested
	// symbol. Cross pairs between two non-source symbols are not synthesized.
	pairRates := make(map[string]float64, 2*len(symbols)+1)
	pairRates[source+source] = 1
	for _, sym := range symbols {
		if sym == source {
			continue
		}
		forward, ok := payload.Quotes[source+sym]
		if !ok {
			return nil, fmt.Errorf("missing quote for %s%s", source, sym)
		}
		pairRates[source+sym] = forward
		pairRates[sym+source] = 1 / forward
		pairRates[sym+sym] = 1
	}

	snap := &models.FxSnapshot{
		Mode:       mode,
		BaseSource: source,
		PairRates:  pairRates,
		Timestamp:  payload.Timestamp,
		Success:    true,
	}
	if mode == "historical" {
		snap.Date = date
	}
	return snap, nil
}

func (s *FxService) fallbackSnapshot(mode, date string, cause error) *models.FxSnapshot {
	snap := &models.FxSnapshot{
		Mode:       mode,
		BaseSource: "USD",
		PairRates: map[string]float64{
			"USDKRW": 1350,
			"KRWUSD": 1 / 1350.0,
			"USDUSD": 1,
			"KRWKRW": 1,
		},
		Fallback: true,
		Message:  utils.ToMessage(cause, "FX fallback"),
	}
	if mode == "historical" {
		snap.Date = date
	}
	return snap
}

// nextVersionLocked hands out strictly increasing version markers even when
// two resolves land in the same millisecond.
func (s *FxService) nextVersionLocked() int64 {
	v := time.Now().UnixMilli()
	if v <= s.lastVer {
		v = s.lastVer + 1
	}
	s.lastVer = v
	return v
}

func cleanSymbols(symbols []string) []string {
	out := make([]string, 0, len(symbols))
	for _, s := range symbols {
		s = strings.ToUpper(strings.TrimSpace(s))
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
