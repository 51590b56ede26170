package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/graceway/shepherd/internal/services/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeEventStore struct {
	byID map[string]events.Event
}

func newFakeEventStore() *fakeEventStore {
	return &fakeEventStore{byID: map[string]events.Event{}}
}

func (s *fakeEventStore) List(ctx context.Context) ([]events.Event, error) {
	var list []events.Event
	for _, e := range s.byID {
		list = append(list, e)
	}
	return list, nil
}

func (s *fakeEventStore) Get(ctx context.Context, id string) (*events.Event, error) {
	e, ok := s.byID[id]
	if !ok {
		return nil, events.ErrNotFound
	}
	return &e, nil
}

func (s *fakeEventStore) Create(ctx context.Context, event *events.Event) error {
	event.ID = primitive.NewObjectID()
	event.CreatedAt = time.Now().UTC()
	event.UpdatedAt = event.CreatedAt
	s.byID[event.ID.Hex()] = *event
	return nil
}

func (s *fakeEventStore) Update(ctx context.Context, id string, event *events.Event) error {
	existing, ok := s.byID[id]
	if !ok {
		return events.ErrNotFound
	}
	existing.Title = event.Title
	existing.Description = event.Description
	existing.Location = event.Location
	existing.StartsAt = event.StartsAt
	existing.UpdatedAt = time.Now().UTC()
	s.byID[id] = existing
	return nil
}

func (s *fakeEventStore) Delete(ctx context.Context, id string) error {
	if _, ok := s.byID[id]; !ok {
		return events.ErrNotFound
	}
	delete(s.byID, id)
	return nil
}

func jsonBody(t *testing.T, v any) *bytes.Reader {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(raw)
}

func TestEventCreateAndGet(t *testing.T) {
	store := newFakeEventStore()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/events", jsonBody(t, map[string]any{
		"title":    "Evening Prayer Service",
		"location": "Main Chapel",
		"startsAt": time.Now().Add(24 * time.Hour).UTC().Format(time.RFC3339),
	}))
	HandleCreateEvent(store, rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var created events.Event
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "Evening Prayer Service", created.Title)
	assert.False(t, created.ID.IsZero())

	rec = httptest.NewRecorder()
	req = mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/api/v1/events/"+created.ID.Hex(), nil),
		map[string]string{"id": created.ID.Hex()})
	HandleGetEvent(store, rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var got events.Event
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, created.ID, got.ID)
}

func TestEventCreateRequiresTitle(t *testing.T) {
	store := newFakeEventStore()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/events", jsonBody(t, map[string]any{
		"startsAt": time.Now().UTC().Format(time.RFC3339),
	}))
	HandleCreateEvent(store, rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, store.byID)
}

func TestEventUpdateNotFound(t *testing.T) {
	store := newFakeEventStore()

	rec := httptest.NewRecorder()
	req := mux.SetURLVars(httptest.NewRequest(http.MethodPut, "/api/v1/events/missing", jsonBody(t, map[string]any{
		"title":    "Renamed",
		"startsAt": time.Now().UTC().Format(time.RFC3339),
	})), map[string]string{"id": "missing"})
	HandleUpdateEvent(store, rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEventDelete(t *testing.T) {
	store := newFakeEventStore()
	event := &events.Event{Title: "Bible Study", StartsAt: time.Now().UTC()}
	require.NoError(t, store.Create(context.Background(), event))

	rec := httptest.NewRecorder()
	req := mux.SetURLVars(httptest.NewRequest(http.MethodDelete, "/api/v1/events/"+event.ID.Hex(), nil),
		map[string]string{"id": event.ID.Hex()})
	HandleDeleteEvent(store, rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, store.byID)
}

func TestEventListWithoutStorage(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/events", nil)
	HandleListEvents(nil, rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestEventListEmptyIsArray(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/events", nil)
	HandleListEvents(newFakeEventStore(), rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]\n", rec.Body.String())
}
