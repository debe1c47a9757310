package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Munionn/Airport-sub002/internal/models"
	"github.com/Munionn/Airport-sub002/internal/models/dto"
	"github.com/Munionn/Airport-sub002/internal/storage"
	"github.com/Munionn/Airport-sub002/internal/storage/mocks"
)

func newTestRoutes() (*Routes, *mocks.MockRouteStore, *test.Hook) {
	store := new(mocks.MockRouteStore)
	log, hook := test.NewNullLogger()
	return NewRoutes(store, log), store, hook
}

func createRouteRequest(departure, arrival int64) dto.CreateRouteRequest {
	return dto.CreateRouteRequest{
		Name:               "Riga - Oslo",
		DepartureAirportID: departure,
		ArrivalAirportID:   arrival,
		DistanceKM:         840,
		DurationMinutes:    95,
		BasePrice:          decimal.RequireFromString("129.90"),
	}
}

func TestRoutes_Create(t *testing.T) {
	svc, store, hook := newTestRoutes()
	store.On("AirportByID", mock.Anything, int64(1)).Return(models.AirportSummary{ID: 1}, nil)
	store.On("AirportByID", mock.Anything, int64(2)).Return(models.AirportSummary{ID: 2}, nil)
	store.On("RouteExistsForPair", mock.Anything, int64(1), int64(2), int64(0)).Return(false, nil)
	store.On("CreateRoute", mock.Anything, mock.MatchedBy(func(in models.NewRoute) bool {
		return in.Status == models.RouteActive && in.BasePrice.Equal(decimal.RequireFromString("129.9"))
	})).Return(models.Route{ID: 9, Name: "Riga - Oslo"}, nil)

	got, err := svc.Create(context.Background(), createRouteRequest(1, 2))
	require.NoError(t, err)
	assert.Equal(t, int64(9), got.ID)
	assert.Equal(t, "route_created", hook.LastEntry().Data["event"])
	store.AssertExpectations(t)
}

func TestRoutes_Create_Validators(t *testing.T) {
	tests := []struct {
		name      string
		departure int64
		arrival   int64
		missing   int64
		exists    bool
		wantErr   error
	}{
		{name: "departure airport missing", departure: 1, arrival: 2, missing: 1, wantErr: ErrNotFound},
		{name: "arrival airport missing", departure: 1, arrival: 2, missing: 2, wantErr: ErrNotFound},
		{name: "duplicate pair", departure: 1, arrival: 2, exists: true, wantErr: ErrConflict},
		{name: "self route", departure: 3, arrival: 3, wantErr: ErrConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store, _ := newTestRoutes()
			for _, id := range []int64{tt.departure, tt.arrival} {
				var err error
				if id == tt.missing {
					err = storage.ErrNotFound
				}
				store.On("AirportByID", mock.Anything, id).Return(models.AirportSummary{ID: id}, err).Maybe()
			}
			store.On("RouteExistsForPair", mock.Anything, tt.departure, tt.arrival, int64(0)).Return(tt.exists, nil).Maybe()

			_, err := svc.Create(context.Background(), createRouteRequest(tt.departure, tt.arrival))
			assert.ErrorIs(t, err, tt.wantErr)
			store.AssertNotCalled(t, "CreateRoute", mock.Anything, mock.Anything)
		})
	}
}

func TestRoutes_Create_ReverseDirectionAllowed(t *testing.T) {
	svc, store, _ := newTestRoutes()
	store.On("AirportByID", mock.Anything, mock.Anything).Return(models.AirportSummary{}, nil)
	store.On("RouteExistsForPair", mock.Anything, int64(2), int64(1), int64(0)).Return(false, nil)
	store.On("CreateRoute", mock.Anything, mock.Anything).Return(models.Route{ID: 10}, nil)

	_, err := svc.Create(context.Background(), createRouteRequest(2, 1))
	assert.NoError(t, err)
}

func TestRoutes_Create_UniqueViolationIsConflict(t *testing.T) {
	svc, store, _ := newTestRoutes()
	store.On("AirportByID", mock.Anything, mock.Anything).Return(models.AirportSummary{}, nil)
	store.On("RouteExistsForPair", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(false, nil)
	store.On("CreateRoute", mock.Anything, mock.Anything).
		Return(models.Route{}, fmt.Errorf("%w: routes_airport_pair_key", storage.ErrAlreadyExists))

	_, err := svc.Create(context.Background(), createRouteRequest(1, 2))
	assert.ErrorIs(t, err, ErrConflict)
}

func TestRoutes_Create_InvalidFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*dto.CreateRouteRequest)
	}{
		{"blank name", func(r *dto.CreateRouteRequest) { r.Name = " " }},
		{"negative distance", func(r *dto.CreateRouteRequest) { r.DistanceKM = -1 }},
		{"negative price", func(r *dto.CreateRouteRequest) { r.BasePrice = decimal.NewFromInt(-5) }},
		{"unknown status", func(r *dto.CreateRouteRequest) { r.Status = "closed" }},
		{"missing airport", func(r *dto.CreateRouteRequest) { r.ArrivalAirportID = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store, _ := newTestRoutes()
			req := createRouteRequest(1, 2)
			tt.mutate(&req)

			_, err := svc.Create(context.Background(), req)
			assert.ErrorIs(t, err, ErrBadRequest)
			store.AssertNotCalled(t, "AirportByID", mock.Anything, mock.Anything)
		})
	}
}

func TestRoutes_Update_ExcludesSelf(t *testing.T) {
	svc, store, _ := newTestRoutes()
	arrival := int64(3)
	store.On("RouteByID", mock.Anything, int64(9)).Return(models.Route{ID: 9, DepartureAirportID: 1, ArrivalAirportID: 2}, nil)
	store.On("AirportByID", mock.Anything, mock.Anything).Return(models.AirportSummary{}, nil)
	store.On("RouteExistsForPair", mock.Anything, int64(1), int64(3), int64(9)).Return(true, nil)

	_, err := svc.Update(context.Background(), 9, dto.UpdateRouteRequest{ArrivalAirportID: &arrival})
	assert.ErrorIs(t, err, ErrConflict)
	store.AssertNotCalled(t, "UpdateRoute", mock.Anything, mock.Anything, mock.Anything)
}

func TestRoutes_Update_NoPairChange(t *testing.T) {
	svc, store, _ := newTestRoutes()
	status := models.RouteSuspended
	store.On("RouteByID", mock.Anything, int64(9)).Return(models.Route{ID: 9, DepartureAirportID: 1, ArrivalAirportID: 2}, nil)
	store.On("UpdateRoute", mock.Anything, int64(9), models.RoutePatch{Status: &status}).
		Return(models.Route{ID: 9, Status: status}, nil)

	got, err := svc.Update(context.Background(), 9, dto.UpdateRouteRequest{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, models.RouteSuspended, got.Status)
	store.AssertNotCalled(t, "RouteExistsForPair", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRoutes_Update_BlankDescriptionClears(t *testing.T) {
	svc, store, _ := newTestRoutes()
	blank := " "
	cleared := ""
	store.On("RouteByID", mock.Anything, int64(9)).Return(models.Route{ID: 9, DepartureAirportID: 1, ArrivalAirportID: 2}, nil)
	store.On("UpdateRoute", mock.Anything, int64(9), models.RoutePatch{Description: &cleared}).Return(models.Route{ID: 9}, nil)

	got, err := svc.Update(context.Background(), 9, dto.UpdateRouteRequest{Description: &blank})
	require.NoError(t, err)
	assert.Nil(t, got.Description)
	store.AssertExpectations(t)
}

func TestRoutes_Delete(t *testing.T) {
	tests := []struct {
		name      string
		findErr   error
		flights   int
		deleteErr error
		wantErr   error
	}{
		{name: "no flights", flights: 0},
		{name: "referenced by flights", flights: 1, wantErr: ErrConflict},
		{name: "flight added concurrently", flights: 0, deleteErr: storage.ErrInUse, wantErr: ErrConflict},
		{name: "unknown route", findErr: storage.ErrNotFound, wantErr: ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store, _ := newTestRoutes()
			store.On("RouteByID", mock.Anything, int64(9)).Return(models.Route{ID: 9}, tt.findErr)
			store.On("CountFlightsForRoute", mock.Anything, int64(9)).Return(tt.flights, nil).Maybe()
			store.On("DeleteRoute", mock.Anything, int64(9)).Return(tt.deleteErr).Maybe()

			err := svc.Delete(context.Background(), 9)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				store.AssertCalled(t, "DeleteRoute", mock.Anything, int64(9))
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
			if tt.flights > 0 {
				store.AssertNotCalled(t, "DeleteRoute", mock.Anything, mock.Anything)
			}
		})
	}
}

func TestRoutes_Delete_StoreFailure(t *testing.T) {
	svc, store, _ := newTestRoutes()
	store.On("RouteByID", mock.Anything, int64(9)).Return(models.Route{ID: 9}, nil)
	store.On("CountFlightsForRoute", mock.Anything, int64(9)).Return(0, fmt.Errorf("connection reset"))

	err := svc.Delete(context.Background(), 9)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "count route flights")
	var svcErr *Error
	assert.False(t, errors.As(err, &svcErr))
	store.AssertNotCalled(t, "DeleteRoute", mock.Anything, mock.Anything)
}

func TestRoutes_Statistics_PassesFilter(t *testing.T) {
	svc, store, _ := newTestRoutes()
	status := models.RouteActive
	store.On("RouteTallies", mock.Anything, models.RouteFilter{Status: &status, DepartureCountry: "Latvia"}).
		Return([]models.RouteTally{{Route: models.Route{ID: 1}, FlightCount: 2, PassengerCount: 30}}, nil)

	stats, err := svc.Statistics(context.Background(), dto.RouteStatisticsFilter{DepartureCountry: "Latvia", Status: &status})
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, 10.0, stats[0].LoadFactor)
}

func TestRoutes_Popular(t *testing.T) {
	svc, store, _ := newTestRoutes()
	store.On("RouteTallies", mock.Anything, models.RouteFilter{ArrivalCountry: "Norway"}).Return([]models.RouteTally{
		{Route: models.Route{ID: 1}, FlightCount: 10, PassengerCount: 100},
		{Route: models.Route{ID: 2}, FlightCount: 1, PassengerCount: 5},
	}, nil)

	popular, err := svc.Popular(context.Background(), 1, "", "Norway")
	require.NoError(t, err)
	require.Len(t, popular, 1)
	assert.Equal(t, int64(1), popular[0].RouteID)
	assert.Equal(t, 64.0, popular[0].PopularityScore)
}
