// Package browse holds the results browser: the last fetched recommendation
// set, a platform filter and a page index, plus the dashboard controller
// that drives fetches from the stored profile.
package browse

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/techtonix/compass/internal/recommend"
)

// PageSize is the number of items shown per page.
const PageSize = 12

// State is the dashboard's position in the browse lifecycle.
type State int

const (
	NoProfile State = iota
	Loading
	ResultsReady
	ResultsEmpty
	ResultsError
)

func (s State) String() string {
	switch s {
	case NoProfile:
		return "no-profile"
	case Loading:
		return "loading"
	case ResultsReady:
		return "ready"
	case ResultsEmpty:
		return "empty"
	case ResultsError:
		return "error"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Filter selects items by platform. The zero value matches everything.
type Filter struct {
	platform recommend.Platform
	only     bool
}

// All matches every item.
var All = Filter{}

// Only matches items whose platform equals p exactly.
func Only(p recommend.Platform) Filter {
	return Filter{platform: p, only: true}
}

// ParseFilter maps "All" (or "") to All and anything else to Only.
func ParseFilter(s string) Filter {
	if s == "" || s == "All" {
		return All
	}
	return Only(recommend.Platform(s))
}

// FilterOptions are the filters offered to the user, in display order.
func FilterOptions() []Filter {
	opts := []Filter{All}
	for _, p := range recommend.FilterPlatforms() {
		opts = append(opts, Only(p))
	}
	return opts
}

func (f Filter) IsAll() bool { return !f.only }

func (f Filter) Platform() recommend.Platform { return f.platform }

func (f Filter) String() string {
	if !f.only {
		return "All"
	}
	return string(f.platform)
}

// Matches compares platforms case-sensitively with no normalization.
func (f Filter) Matches(it recommend.Item) bool {
	return !f.only || it.Platform == f.platform
}

type phase int

const (
	phaseNoProfile phase = iota
	phaseLoading
	phaseLoaded
	phaseFailed
)

// Browser is safe for concurrent use. Every fetch is tagged with a
// generation; only the completion for the latest generation is applied.
type Browser struct {
	logger *slog.Logger

	mu     sync.Mutex
	phase  phase
	items  []recommend.Item
	filter Filter
	page   int
	gen    uint64
	err    error
}

func NewBrowser() *Browser {
	return &Browser{logger: slog.Default(), page: 1}
}

// Begin enters Loading, resets the page and returns the generation the
// caller must pass to Complete.
func (b *Browser) Begin() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.gen++
	b.phase = phaseLoading
	b.page = 1
	b.err = nil
	return b.gen
}

// Complete applies a fetch result. A result for any generation other than
// the latest is dropped and Complete returns false. On error the item set
// is cleared.
func (b *Browser) Complete(gen uint64, items []recommend.Item, err error) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if gen != b.gen || b.phase != phaseLoading {
		b.logger.Debug("dropping stale fetch result", "generation", gen, "latest", b.gen)
		return false
	}

	b.page = 1
	if err != nil {
		b.items = []recommend.Item{}
		b.err = err
		b.phase = phaseFailed
		return true
	}
	if items == nil {
		items = []recommend.Item{}
	}
	b.items = items
	b.err = nil
	b.phase = phaseLoaded
	return true
}

// Reset returns to NoProfile and forgets items, page and any in-flight
// fetch. The filter is kept.
func (b *Browser) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.gen++
	b.phase = phaseNoProfile
	b.items = nil
	b.page = 1
	b.err = nil
}

// SetFilter changes the filter and resets the page. It never fetches.
func (b *Browser) SetFilter(f Filter) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.filter = f
	b.page = 1
}

func (b *Browser) Filter() Filter {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.filter
}

// Next advances one page. It reports false on the last page.
func (b *Browser) Next() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.page >= totalPages(len(b.filtered())) {
		return false
	}
	b.page++
	return true
}

// Prev goes back one page. It reports false on the first page.
func (b *Browser) Prev() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.page <= 1 {
		return false
	}
	b.page--
	return true
}

// Generation returns the latest issued fetch generation.
func (b *Browser) Generation() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.gen
}

// View is a consistent snapshot of the browser for rendering.
type View struct {
	State      State
	Filter     Filter
	Page       int
	TotalPages int
	Visible    []recommend.Item
	From, To   int // 1-based inclusive range of Visible; From is 0 when Total is 0
	Total      int // filtered item count
	Fetched    int // unfiltered item count
	CanPrev    bool
	CanNext    bool
	Err        error
}

func (b *Browser) View() View {
	b.mu.Lock()
	defer b.mu.Unlock()

	filtered := b.filtered()
	n := len(filtered)
	pages := totalPages(n)

	start := (b.page - 1) * PageSize
	end := min(start+PageSize, n)
	visible := []recommend.Item{}
	if start < end {
		visible = append(visible, filtered[start:end]...)
	}

	v := View{
		Filter:     b.filter,
		Page:       b.page,
		TotalPages: pages,
		Visible:    visible,
		To:         end,
		Total:      n,
		Fetched:    len(b.items),
		CanPrev:    b.page > 1,
		CanNext:    b.page < pages,
		Err:        b.err,
	}
	if n > 0 {
		v.From = start + 1
	}

	switch b.phase {
	case phaseNoProfile:
		v.State = NoProfile
	case phaseLoading:
		v.State = Loading
	case phaseFailed:
		v.State = ResultsError
	default:
		if n == 0 {
			v.State = ResultsEmpty
		} else {
			v.State = ResultsReady
		}
	}
	return v
}

// Summary renders the "Showing a–b of n" line.
func (v View) Summary() string {
	return fmt.Sprintf("Showing %d–%d of %d", v.From, v.To, v.Total)
}

// Pager renders "page / total".
func (v View) Pager() string {
	return fmt.Sprintf("%d / %d", v.Page, v.TotalPages)
}

func (b *Browser) filtered() []recommend.Item {
	if b.filter.IsAll() {
		return b.items
	}
	out := make([]recommend.Item, 0, len(b.items))
	for _, it := range b.items {
		if b.filter.Matches(it) {
			out = append(out, it)
		}
	}
	return out
}

func totalPages(n int) int {
	return max(1, (n+PageSize-1)/PageSize)
}
