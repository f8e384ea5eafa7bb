package browse

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/techtonix/compass/internal/profile"
	"github.com/techtonix/compass/internal/recommend"
)

// EmptyMessage is shown when there is nothing to list.
const EmptyMessage = "No results found right now. Try Refresh or adjust your skills/interests."

// ProfileStore persists the active profile. Implemented by profile.Store.
type ProfileStore interface {
	Load() (profile.Profile, bool, error)
	Save(profile.Profile) error
	Clear() error
}

// Fetcher queries recommendations. Implemented by recommend.Client.
type Fetcher interface {
	Fetch(ctx context.Context, q recommend.Query) ([]recommend.Item, error)
}

// Request is an issued fetch that has not run yet.
type Request struct {
	Generation uint64
	Query      recommend.Query
}

// Completion is the outcome of running a Request.
type Completion struct {
	Generation uint64
	Items      []recommend.Item
	Err        error
}

// Dashboard reacts to the presence or absence of a stored profile and
// drives fetches into its Browser. Fetching is split into Begin/Run/Apply
// so the network call can run off the UI loop.
type Dashboard struct {
	profiles ProfileStore
	fetcher  Fetcher
	browser  *Browser
	logger   *slog.Logger

	mu      sync.Mutex
	current profile.Profile
	loaded  bool
}

func NewDashboard(profiles ProfileStore, fetcher Fetcher) *Dashboard {
	return &Dashboard{
		profiles: profiles,
		fetcher:  fetcher,
		browser:  NewBrowser(),
		logger:   slog.Default(),
	}
}

func (d *Dashboard) Browser() *Browser { return d.browser }

// Profile returns the active profile, if any.
func (d *Dashboard) Profile() (profile.Profile, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.current, d.loaded
}

// Start loads the stored profile. With a profile it enters Loading and
// returns the request to run; without one it stays in NoProfile.
func (d *Dashboard) Start() (Request, bool, error) {
	p, ok, err := d.profiles.Load()
	if err != nil {
		return Request{}, false, fmt.Errorf("loading profile: %w", err)
	}
	if !ok {
		d.mu.Lock()
		d.current, d.loaded = profile.Profile{}, false
		d.mu.Unlock()
		d.browser.Reset()
		return Request{}, false, nil
	}
	return d.begin(p), true, nil
}

// SubmitProfile stores p, replacing any previous profile, and starts a
// fetch for it.
func (d *Dashboard) SubmitProfile(p profile.Profile) (Request, error) {
	if err := d.profiles.Save(p); err != nil {
		return Request{}, fmt.Errorf("saving profile: %w", err)
	}
	return d.begin(p), nil
}

// Refresh re-fetches for the active profile. It reports false when there
// is no profile.
func (d *Dashboard) Refresh() (Request, bool) {
	d.mu.Lock()
	p, ok := d.current, d.loaded
	d.mu.Unlock()
	if !ok {
		return Request{}, false
	}
	return d.begin(p), true
}

// EditProfile clears the stored profile and returns to NoProfile. Any
// in-flight fetch becomes stale.
func (d *Dashboard) EditProfile() error {
	d.mu.Lock()
	d.current, d.loaded = profile.Profile{}, false
	d.mu.Unlock()
	d.browser.Reset()

	if err := d.profiles.Clear(); err != nil {
		return fmt.Errorf("clearing profile: %w", err)
	}
	return nil
}

// Run performs the network call for req. It is safe to call from any
// goroutine and never touches browser state.
func (d *Dashboard) Run(ctx context.Context, req Request) Completion {
	items, err := d.fetcher.Fetch(ctx, req.Query)
	if err != nil {
		d.logger.Warn("recommendation fetch failed",
			"generation", req.Generation,
			"kind", recommend.KindOf(err).String(),
			"error", err,
		)
		return Completion{Generation: req.Generation, Err: err}
	}
	d.logger.Debug("recommendation fetch done", "generation", req.Generation, "items", len(items))
	return Completion{Generation: req.Generation, Items: items}
}

// Apply hands c to the browser. It reports false for stale completions.
func (d *Dashboard) Apply(c Completion) bool {
	return d.browser.Complete(c.Generation, c.Items, c.Err)
}

// Load runs a whole fetch cycle for the stored profile synchronously.
func (d *Dashboard) Load(ctx context.Context) (View, error) {
	req, ok, err := d.Start()
	if err != nil {
		return View{}, err
	}
	if ok {
		d.Apply(d.Run(ctx, req))
	}
	return d.browser.View(), nil
}

func (d *Dashboard) begin(p profile.Profile) Request {
	d.mu.Lock()
	d.current, d.loaded = p, true
	d.mu.Unlock()

	gen := d.browser.Begin()
	return Request{Generation: gen, Query: recommend.QueryFor(p)}
}
