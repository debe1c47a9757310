package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Munionn/Airport-sub002/internal/config"
	"github.com/Munionn/Airport-sub002/internal/models"
	"github.com/Munionn/Airport-sub002/internal/storage/mocks"
)

type fakeStore struct {
	*mocks.MockUserStore
	*mocks.MockCrewStore
	*mocks.MockRouteStore
}

func (fakeStore) Ping(context.Context) error { return nil }

func newFakeStore() fakeStore {
	return fakeStore{new(mocks.MockUserStore), new(mocks.MockCrewStore), new(mocks.MockRouteStore)}
}

func TestRouter(t *testing.T) {
	store := newFakeStore()
	store.MockRouteStore.On("RouteByID", mock.Anything, int64(7)).Return(models.Route{ID: 7, Name: "RIX-OSL"}, nil)
	log, _ := test.NewNullLogger()
	router := NewRouter(config.Config{CORSOrigins: []string{"*"}}, store, log)

	tests := []struct {
		name   string
		method string
		target string
		want   int
	}{
		{"health", http.MethodGet, "/health", http.StatusOK},
		{"route by id", http.MethodGet, "/routes/7", http.StatusOK},
		{"unknown path", http.MethodGet, "/flights", http.StatusNotFound},
		{"wrong method", http.MethodPut, "/routes/7", http.StatusMethodNotAllowed},
		{"bad id", http.MethodGet, "/routes/abc", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.target, nil))

			assert.Equal(t, tt.want, rec.Code)
			assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
		})
	}
}
