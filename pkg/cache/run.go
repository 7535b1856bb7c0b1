package cache

import (
	"github.com/agentstation/utc"
	"github.com/google/uuid"

	"github.com/agentstation/pkgsync/pkg/packages"
)

// URLAccumulator holds URLs minted during the current run so that later
// packages reuse them instead of minting duplicates. It only grows.
// Not safe for concurrent use; one accumulator belongs to one run.
type URLAccumulator struct {
	byKey map[packages.URLKey]packages.URL
	order []packages.URLKey
}

// NewURLAccumulator returns an empty accumulator.
func NewURLAccumulator() *URLAccumulator {
	return &URLAccumulator{byKey: make(map[packages.URLKey]packages.URL)}
}

// Get returns the URL minted earlier in the run for key.
func (a *URLAccumulator) Get(key packages.URLKey) (packages.URL, bool) {
	u, ok := a.byKey[key]
	return u, ok
}

// Put records a newly minted URL. A key already present is left unchanged.
func (a *URLAccumulator) Put(u packages.URL) {
	key := u.Key()
	if _, ok := a.byKey[key]; ok {
		return
	}
	a.byKey[key] = u
	a.order = append(a.order, key)
}

// Len returns the number of URLs minted in the run.
func (a *URLAccumulator) Len() int {
	return len(a.order)
}

// URLs returns the minted URLs in insertion order.
func (a *URLAccumulator) URLs() []packages.URL {
	out := make([]packages.URL, 0, len(a.order))
	for _, k := range a.order {
		out = append(out, a.byKey[k])
	}
	return out
}

// Touch refreshes the updated_at of an existing link.
type Touch struct {
	ID        uuid.UUID `json:"id" yaml:"id"`
	UpdatedAt utc.Time  `json:"updated_at" yaml:"updated_at"`
}

// TouchLog collects link timestamp refreshes for the persistence writer.
// A link touched twice keeps its first position and its latest timestamp.
type TouchLog struct {
	index   map[uuid.UUID]int
	touches []Touch
}

// NewTouchLog returns an empty log.
func NewTouchLog() *TouchLog {
	return &TouchLog{index: make(map[uuid.UUID]int)}
}

// Touch records that link id was observed at t.
func (l *TouchLog) Touch(id uuid.UUID, t utc.Time) Touch {
	touch := Touch{ID: id, UpdatedAt: t}
	if i, ok := l.index[id]; ok {
		l.touches[i] = touch
		return touch
	}
	l.index[id] = len(l.touches)
	l.touches = append(l.touches, touch)
	return touch
}

// Len returns the number of distinct links touched.
func (l *TouchLog) Len() int {
	return len(l.touches)
}

// Touches returns the recorded touches in first-touch order.
func (l *TouchLog) Touches() []Touch {
	return append([]Touch(nil), l.touches...)
}
