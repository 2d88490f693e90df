package calendar

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

type recordedCall struct {
	Method      string
	Path        string
	SendUpdates string
	Body        map[string]any
}

type fakeCalendarAPI struct {
	mu     sync.Mutex
	calls  []recordedCall
	status int
}

func (f *fakeCalendarAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	raw, _ := io.ReadAll(r.Body)
	call := recordedCall{Method: r.Method, Path: r.URL.Path, SendUpdates: r.URL.Query().Get("sendUpdates")}
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &call.Body)
	}
	f.mu.Lock()
	f.calls = append(f.calls, call)
	status := f.status
	f.mu.Unlock()

	if status != 0 {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`{"error":{"code":500,"message":"backend error"}}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	switch r.Method {
	case http.MethodPost:
		_, _ = w.Write([]byte(`{"id":"evt-123"}`))
	case http.MethodPut:
		_, _ = w.Write([]byte(`{"id":"evt-123"}`))
	case http.MethodDelete:
		w.WriteHeader(http.StatusNoContent)
	}
}

func newTestNotifier(t *testing.T, api *fakeCalendarAPI) *GoogleNotifier {
	t.Helper()
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	svc, err := gcal.NewService(context.Background(),
		option.WithEndpoint(srv.URL+"/calendar/v3/"),
		option.WithHTTPClient(srv.Client()),
	)
	require.NoError(t, err)
	return NewGoogleNotifier(svc, "team@example.com", time.UTC)
}

func TestGoogleNotifierLifecycle(t *testing.T) {
	api := &fakeCalendarAPI{}
	n := newTestNotifier(t, api)
	ctx := context.Background()

	id, err := n.Create(ctx, sampleAppointment())
	require.NoError(t, err)
	assert.Equal(t, "evt-123", id)

	require.NoError(t, n.Update(ctx, id, sampleAppointment()))
	require.NoError(t, n.Delete(ctx, id))

	require.Len(t, api.calls, 3)
	assert.Equal(t, http.MethodPost, api.calls[0].Method)
	assert.True(t, strings.HasSuffix(api.calls[0].Path, "/calendars/team@example.com/events"), api.calls[0].Path)
	assert.Equal(t, "all", api.calls[0].SendUpdates)
	assert.Equal(t, "Appointment: Ana Perez", api.calls[0].Body["summary"])
	assert.NotNil(t, api.calls[0].Body["attendees"])

	assert.Equal(t, http.MethodPut, api.calls[1].Method)
	assert.True(t, strings.HasSuffix(api.calls[1].Path, "/events/evt-123"), api.calls[1].Path)
	assert.Nil(t, api.calls[1].Body["attendees"])

	assert.Equal(t, http.MethodDelete, api.calls[2].Method)
	assert.Equal(t, "all", api.calls[2].SendUpdates)
}

func TestGoogleNotifierEmptyEventIDIsNoop(t *testing.T) {
	api := &fakeCalendarAPI{}
	n := newTestNotifier(t, api)

	require.NoError(t, n.Update(context.Background(), "", sampleAppointment()))
	require.NoError(t, n.Delete(context.Background(), ""))
	assert.Empty(t, api.calls)
}

func TestGoogleNotifierRemoteFailure(t *testing.T) {
	api := &fakeCalendarAPI{status: http.StatusInternalServerError}
	n := newTestNotifier(t, api)

	id, err := n.Create(context.Background(), sampleAppointment())
	assert.Error(t, err)
	assert.Empty(t, id)
	assert.Error(t, n.Delete(context.Background(), "evt-1"))
}

func TestNewWithoutCredentialsIsDisabled(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	n, err := New(context.Background(), Config{CalendarID: "primary"}, logger)
	require.NoError(t, err)

	_, err = n.Create(context.Background(), sampleAppointment())
	assert.True(t, errors.Is(err, ErrNotConfigured))
	assert.NoError(t, n.Update(context.Background(), "evt-1", sampleAppointment()))
	assert.NoError(t, n.Delete(context.Background(), "evt-1"))
}
