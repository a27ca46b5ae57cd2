package services

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"carbonboard/config"
	"carbonboard/models"
)

// ErrSaveFailed is the injected fault surfaced by SavePost.
var ErrSaveFailed = errors.New("save failed")

const postIDChars = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
const postIDLen = 10

// DatasetService is the in-memory stand-in for a real backend. Reads and
// writes apply artificial latency; SavePost additionally fails at a
// configured rate so the optimistic-update rollback path gets exercised.
// All randomness comes from a seeded generator, so tests are deterministic.
type DatasetService struct {
	countries []models.Country
	companies []models.Company

	mu    sync.Mutex
	posts []models.Post
	rng   *rand.Rand

	failRate   float64
	latencyMin time.Duration
	latencyMax time.Duration
}

func NewDatasetService(cfg *config.Config) *DatasetService {
	seedRng := rand.New(rand.NewSource(cfg.DatasetSeed))
	return &DatasetService{
		countries:  seedCountries(),
		companies:  seedCompanies(seedRng),
		posts:      seedPosts(),
		rng:        rand.New(rand.NewSource(cfg.DatasetSeed + 1)),
		failRate:   cfg.SaveFailureRate,
		latencyMin: cfg.LatencyMin,
		latencyMax: cfg.LatencyMax,
	}
}

func (s *DatasetService) delay() {
	if s.latencyMax <= 0 {
		return
	}
	d := s.latencyMin
	if span := s.latencyMax - s.latencyMin; span > 0 {
		s.mu.Lock()
		d += time.Duration(s.rng.Int63n(int64(span)))
		s.mu.Unlock()
	}
	time.Sleep(d)
}

func (s *DatasetService) FetchCountries() ([]models.Country, error) {
	s.delay()
	return s.countries, nil
}

func (s *DatasetService) FetchCompanies() ([]models.Company, error) {
	s.delay()
	return s.companies, nil
}

func (s *DatasetService) FetchCompany(id string) (models.Company, error) {
	s.delay()
	for _, c := range s.companies {
		if c.ID == id {
			return c, nil
		}
	}
	return models.Company{}, fmt.Errorf("company %q not found", id)
}

func (s *DatasetService) FetchPostsByCompany(companyID string) ([]models.Post, error) {
	s.delay()
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Post
	for _, p := range s.posts {
		if p.ResourceUID == companyID {
			out = append(out, p)
		}
	}
	return out, nil
}

// SavePost updates the post matching p.ID, or appends a new post with a
// generated ID when p.ID is empty. The injected failure fires before any
// state changes, so a failed save leaves the store untouched.
func (s *DatasetService) SavePost(p models.Post) (models.Post, error) {
	s.delay()
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.rng.Float64() < s.failRate {
		return models.Post{}, ErrSaveFailed
	}

	if p.ID != "" {
		for i := range s.posts {
			if s.posts[i].ID == p.ID {
				s.posts[i] = p
			}
		}
		return p, nil
	}

	created := p
	created.ID = s.randPostIDLocked()
	s.posts = append(s.posts, created)
	return created, nil
}

func (s *DatasetService) randPostIDLocked() string {
	b := make([]byte, postIDLen)
	for i := range b {
		b[i] = postIDChars[s.rng.Intn(len(postIDChars))]
	}
	return string(b)
}
