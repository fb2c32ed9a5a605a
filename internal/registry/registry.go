// Package registry keeps a live, order-preserving mirror of the leads
// table. It plays the role a collection snapshot listener would: the
// repository reports every write and the registry updates its in-memory
// view and fans the change out to subscribers (the dashboard SSE stream).
package registry

import (
	"sort"
	"sync"

	"agiliza_backend/internal/model"
)

type EventType string

const (
	EventSnapshot EventType = "snapshot"
	EventCreated  EventType = "created"
	EventUpdated  EventType = "updated"
	EventDeleted  EventType = "deleted"
)

type Event struct {
	Type EventType    `json:"type"`
	Lead *model.Lead  `json:"lead,omitempty"`
	ID   string       `json:"id,omitempty"`
	All  []model.Lead `json:"leads,omitempty"`
}

// FilterAll is the wildcard status filter.
const FilterAll = "all"

type Registry struct {
	mu    sync.RWMutex
	leads []model.Lead // ordered by CreatedAt descending

	subMu   sync.Mutex
	subs    map[int]chan Event
	nextSub int
}

func New() *Registry {
	return &Registry{subs: make(map[int]chan Event)}
}

// Load replaces the mirror with a snapshot from the store. Called once on
// boot, before any subscriber attaches.
func (r *Registry) Load(leads []model.Lead) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.leads = make([]model.Lead, len(leads))
	copy(r.leads, leads)
	sort.SliceStable(r.leads, func(i, j int) bool {
		return r.leads[i].CreatedAt.After(r.leads[j].CreatedAt)
	})
}

// LeadCreated inserts the lead at its timestamp position (new leads land
// at the head). Implements repository.LeadEvents.
func (r *Registry) LeadCreated(lead model.Lead) {
	r.mu.Lock()
	idx := sort.Search(len(r.leads), func(i int) bool {
		return !r.leads[i].CreatedAt.After(lead.CreatedAt)
	})
	r.leads = append(r.leads, model.Lead{})
	copy(r.leads[idx+1:], r.leads[idx:])
	r.leads[idx] = lead
	r.mu.Unlock()

	r.publish(Event{Type: EventCreated, Lead: &lead, ID: lead.ID})
}

func (r *Registry) LeadUpdated(lead model.Lead) {
	r.mu.Lock()
	for i := range r.leads {
		if r.leads[i].ID == lead.ID {
			r.leads[i] = lead
			break
		}
	}
	r.mu.Unlock()

	r.publish(Event{Type: EventUpdated, Lead: &lead, ID: lead.ID})
}

func (r *Registry) LeadDeleted(id string) {
	r.mu.Lock()
	for i := range r.leads {
		if r.leads[i].ID == id {
			r.leads = append(r.leads[:i], r.leads[i+1:]...)
			break
		}
	}
	r.mu.Unlock()

	r.publish(Event{Type: EventDeleted, ID: id})
}

// Snapshot returns the mirrored leads matching the status filter, newest
// first. Pure in-memory read; never touches the store.
func (r *Registry) Snapshot(status string) []model.Lead {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Lead, 0, len(r.leads))
	for _, lead := range r.leads {
		if Matches(lead, status) {
			out = append(out, lead)
		}
	}
	return out
}

// Matches reports whether a lead passes the status filter. Leads without
// a stored status count as "new".
func Matches(lead model.Lead, status string) bool {
	if status == "" || status == FilterAll {
		return true
	}
	return lead.EffectiveStatus() == model.LeadStatus(status)
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.leads)
}

// Subscribe returns a channel of change events, primed with a snapshot of
// the current mirror. The cancel func must be called when the consumer
// goes away so the standing subscription is released.
func (r *Registry) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, 64)

	r.subMu.Lock()
	id := r.nextSub
	r.nextSub++
	r.subs[id] = ch
	// Primed under subMu: publishers also hold it, so no change event
	// can land ahead of the snapshot.
	ch <- Event{Type: EventSnapshot, All: r.Snapshot(FilterAll)}
	r.subMu.Unlock()

	cancel := func() {
		r.subMu.Lock()
		if sub, ok := r.subs[id]; ok {
			delete(r.subs, id)
			close(sub)
		}
		r.subMu.Unlock()
	}
	return ch, cancel
}

// publish never blocks a writer: subscribers too slow to drain their
// buffer miss the event and resync from the next snapshot.
func (r *Registry) publish(evt Event) {
	r.subMu.Lock()
	defer r.subMu.Unlock()

	for _, ch := range r.subs {
		select {
		case ch <- evt:
		default:
		}
	}
}
