package registry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agiliza_backend/internal/model"
)

func leadAt(id string, status model.LeadStatus, createdAt time.Time) model.Lead {
	return model.Lead{
		ID:        id,
		Name:      "Lead " + id,
		Email:     id + "@example.com",
		Phone:     "11999990000",
		Status:    status,
		CreatedAt: createdAt,
	}
}

func TestLoadSortsNewestFirst(t *testing.T) {
	reg := New()
	base := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	reg.Load([]model.Lead{
		leadAt("a", model.LeadStatusNew, base),
		leadAt("c", model.LeadStatusNew, base.Add(2*time.Hour)),
		leadAt("b", model.LeadStatusNew, base.Add(time.Hour)),
	})

	snapshot := reg.Snapshot(FilterAll)
	require.Len(t, snapshot, 3)
	assert.Equal(t, "c", snapshot[0].ID)
	assert.Equal(t, "b", snapshot[1].ID)
	assert.Equal(t, "a", snapshot[2].ID)
}

func TestLeadCreatedKeepsOrder(t *testing.T) {
	reg := New()
	base := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	reg.Load([]model.Lead{
		leadAt("old", model.LeadStatusNew, base),
	})

	reg.LeadCreated(leadAt("newest", model.LeadStatusNew, base.Add(time.Hour)))
	reg.LeadCreated(leadAt("middle", model.LeadStatusNew, base.Add(30*time.Minute)))

	snapshot := reg.Snapshot(FilterAll)
	require.Len(t, snapshot, 3)
	assert.Equal(t, "newest", snapshot[0].ID)
	assert.Equal(t, "middle", snapshot[1].ID)
	assert.Equal(t, "old", snapshot[2].ID)
}

func TestFilteredViewEqualsPredicate(t *testing.T) {
	reg := New()
	base := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	leads := []model.Lead{
		leadAt("1", model.LeadStatusNew, base.Add(4*time.Hour)),
		leadAt("2", model.LeadStatusContacted, base.Add(3*time.Hour)),
		leadAt("3", "", base.Add(2*time.Hour)), // missing status counts as new
		leadAt("4", model.LeadStatusClosed, base.Add(time.Hour)),
		leadAt("5", model.LeadStatusLost, base),
	}
	reg.Load(leads)

	for _, filter := range []string{FilterAll, "new", "contacted", "closed", "lost"} {
		got := reg.Snapshot(filter)

		var want []string
		for _, lead := range leads {
			if Matches(lead, filter) {
				want = append(want, lead.ID)
			}
		}

		var gotIDs []string
		for _, lead := range got {
			gotIDs = append(gotIDs, lead.ID)
		}
		assert.Equal(t, want, gotIDs, "filter %q", filter)
	}

	assert.Len(t, reg.Snapshot("new"), 2)
	assert.Len(t, reg.Snapshot("contacted"), 1)
}

func TestUpdateAndDeleteReflectInMirror(t *testing.T) {
	reg := New()
	base := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	reg.Load([]model.Lead{
		leadAt("a", model.LeadStatusNew, base.Add(time.Hour)),
		leadAt("b", model.LeadStatusNew, base),
	})

	updated := leadAt("b", model.LeadStatusContacted, base)
	reg.LeadUpdated(updated)

	snapshot := reg.Snapshot("contacted")
	require.Len(t, snapshot, 1)
	assert.Equal(t, "b", snapshot[0].ID)

	reg.LeadDeleted("a")
	assert.Equal(t, 1, reg.Len())
	assert.Empty(t, reg.Snapshot("new"))
}

func TestSubscribeReceivesSnapshotAndChanges(t *testing.T) {
	reg := New()
	base := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	reg.Load([]model.Lead{leadAt("a", model.LeadStatusNew, base)})

	events, cancel := reg.Subscribe()
	defer cancel()

	first := <-events
	assert.Equal(t, EventSnapshot, first.Type)
	require.Len(t, first.All, 1)

	reg.LeadCreated(leadAt("b", model.LeadStatusNew, base.Add(time.Hour)))
	created := <-events
	assert.Equal(t, EventCreated, created.Type)
	require.NotNil(t, created.Lead)
	assert.Equal(t, "b", created.Lead.ID)

	reg.LeadDeleted("a")
	deleted := <-events
	assert.Equal(t, EventDeleted, deleted.Type)
	assert.Equal(t, "a", deleted.ID)
}

func TestSubscribeSnapshotPrecedesConcurrentWrites(t *testing.T) {
	base := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	for round := 0; round < 50; round++ {
		reg := New()
		reg.Load([]model.Lead{leadAt("seed", model.LeadStatusNew, base)})

		done := make(chan struct{})
		go func() {
			defer close(done)
			for i := 0; i < 20; i++ {
				reg.LeadCreated(leadAt("w", model.LeadStatusNew, base.Add(time.Duration(i)*time.Minute)))
			}
		}()

		events, cancel := reg.Subscribe()
		first := <-events
		assert.Equal(t, EventSnapshot, first.Type, "round %d: first event must be the snapshot", round)
		cancel()
		<-done
	}
}

func TestCancelReleasesSubscription(t *testing.T) {
	reg := New()

	events, cancel := reg.Subscribe()
	<-events // snapshot
	cancel()

	_, open := <-events
	assert.False(t, open, "channel should be closed after cancel")

	// A second cancel must be safe.
	cancel()

	// Publishing after cancel must not panic or block.
	reg.LeadCreated(leadAt("x", model.LeadStatusNew, time.Now()))
}
