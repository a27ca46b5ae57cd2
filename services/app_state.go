package services

import (
	"fmt"
	"sync"
	"time"

	"github.com/apex/log"

	"carbonboard/models"
	"carbonboard/utils"
)

// AppState is the explicit application-state object handed to handlers.
// Read-path (load) errors and write-path (mutation) errors are held in
// separate fields: a failed save never disturbs the page-level error flag.
type AppState struct {
	store *DatasetService

	mu                sync.Mutex
	posts             []models.Post
	selectedCompanyID string
	loadError         string
	mutationError     string

	target         *models.TargetConfig
	targetsByMonth map[string]float64
}

func NewAppState(store *DatasetService) *AppState {
	return &AppState{
		store:          store,
		target:         &models.TargetConfig{BaselineYear: 2024, TargetYear: 2030, ReductionPct: 30},
		targetsByMonth: make(map[string]float64),
	}
}

// SelectCompany loads the notes of one company into the state.
func (s *AppState) SelectCompany(id string) ([]models.Post, error) {
	posts, err := s.store.FetchPostsByCompany(id)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedCompanyID = id
	if err != nil {
		s.posts = nil
		s.loadError = utils.ToMessage(err, "Failed to load posts")
		return nil, err
	}
	s.posts = posts
	s.loadError = ""
	return posts, nil
}

// AddOrUpdatePost is the three-phase optimistic write: snapshot the current
// list, apply the speculative entry (with a temporary ID for new posts),
// then attempt the store save. On failure the snapshot is restored
// atomically, the mutation error recorded, and the error returned so the
// caller's retry affordance can react.
func (s *AppState) AddOrUpdatePost(post models.Post) (models.Post, error) {
	s.mu.Lock()
	prev := make([]models.Post, len(s.posts))
	copy(prev, s.posts)

	tempID := post.ID
	if tempID == "" {
		tempID = fmt.Sprintf("temp-%d", time.Now().UnixNano())
	}

	optimistic := make([]models.Post, 0, len(prev)+1)
	replaced := false
	for _, p := range prev {
		if post.ID != "" && p.ID == post.ID {
			optimistic = append(optimistic, post)
			replaced = true
			continue
		}
		optimistic = append(optimistic, p)
	}
	if !replaced {
		speculative := post
		speculative.ID = tempID
		optimistic = append(optimistic, speculative)
	}

	s.posts = optimistic
	s.mutationError = ""
	s.mu.Unlock()

	saved, err := s.store.SavePost(post)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		log.Errorf("post save failed, rolling back: %v", err)
		s.posts = prev
		s.mutationError = utils.ToMessage(err, "Save failed")
		return models.Post{}, err
	}

	next := make([]models.Post, len(s.posts))
	copy(next, s.posts)
	for i := range next {
		if next[i].ID == tempID || (post.ID != "" && next[i].ID == post.ID) {
			next[i] = saved
		}
	}
	s.posts = next
	return saved, nil
}

// Posts returns a copy of the current note list.
func (s *AppState) Posts() []models.Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Post, len(s.posts))
	copy(out, s.posts)
	return out
}

func (s *AppState) LoadError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadError
}

func (s *AppState) MutationError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mutationError
}

func (s *AppState) ClearMutationError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mutationError = ""
}

// TargetConfig returns the configured reduction target, nil when unset.
func (s *AppState) TargetConfig() *models.TargetConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.target == nil {
		return nil
	}
	cfg := *s.target
	return &cfg
}

func (s *AppState) SetTargetConfig(cfg *models.TargetConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cfg == nil {
		s.target = nil
		return
	}
	c := *cfg
	s.target = &c
}

// SetTargets replaces the user-edited per-month target map.
func (s *AppState) SetTargets(m map[string]float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.targetsByMonth = make(map[string]float64, len(m))
	for ym, v := range m {
		s.targetsByMonth[ym] = v
	}
}

func (s *AppState) SetTargetForMonth(ym string, value float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.targetsByMonth[ym] = value
}

func (s *AppState) ClearTargets() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.targetsByMonth = make(map[string]float64)
}

// TargetsByMonth returns a copy of the user-edited target map.
func (s *AppState) TargetsByMonth() map[string]float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]float64, len(s.targetsByMonth))
	for ym, v := range s.targetsByMonth {
		out[ym] = v
	}
	return out
}
