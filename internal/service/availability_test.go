package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Munionn/Airport-sub002/internal/models"
)

func leg(flightID int64, position models.Position, status models.FlightStatus, departure time.Time, hours float64) models.CrewAssignment {
	return models.CrewAssignment{
		FlightID:           flightID,
		Position:           position,
		FlightNumber:       fmt.Sprintf("AP%03d", flightID),
		FlightStatus:       status,
		ScheduledDeparture: departure,
		ScheduledArrival:   departure.Add(time.Duration(hours * float64(time.Hour))),
	}
}

func TestComputeAvailability(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		active        []models.CrewAssignment
		flown         []models.CrewAssignment
		wantAvailable bool
		wantHours     float64
		wantRest      float64
		wantNext      time.Time
	}{
		{
			name:          "no recent flying",
			wantAvailable: true,
			wantHours:     0,
			wantRest:      12,
			wantNext:      now,
		},
		{
			name: "partial rest owed",
			flown: []models.CrewAssignment{
				leg(1, models.PositionPilot, models.FlightArrived, now.Add(-20*time.Hour), 3.5),
				leg(2, models.PositionPilot, models.FlightArrived, now.Add(-10*time.Hour), 2),
			},
			wantAvailable: true,
			wantHours:     5.5,
			wantRest:      6.5,
			wantNext:      now,
		},
		{
			name: "rest never negative",
			flown: []models.CrewAssignment{
				leg(1, models.PositionPilot, models.FlightArrived, now.Add(-23*time.Hour), 13),
			},
			wantAvailable: true,
			wantHours:     13,
			wantRest:      0,
			wantNext:      now,
		},
		{
			name: "exactly twelve hours",
			flown: []models.CrewAssignment{
				leg(1, models.PositionPilot, models.FlightArrived, now.Add(-23*time.Hour), 12),
			},
			wantAvailable: true,
			wantHours:     12,
			wantRest:      0,
			wantNext:      now,
		},
		{
			name: "assigned to upcoming flights",
			active: []models.CrewAssignment{
				leg(3, models.PositionPurser, models.FlightBoarding, now.Add(-time.Hour), 4),
				leg(4, models.PositionPilot, models.FlightScheduled, now.Add(6*time.Hour), 2),
			},
			wantAvailable: false,
			wantHours:     0,
			wantRest:      12,
			wantNext:      now.Add(8 * time.Hour).Add(12 * time.Hour),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeAvailability(42, tt.active, tt.flown, now)

			assert.Equal(t, int64(42), got.UserID)
			assert.Equal(t, tt.wantAvailable, got.IsAvailable)
			assert.InDelta(t, tt.wantHours, got.TotalFlightHours, 0.001)
			assert.InDelta(t, tt.wantRest, got.RestHoursRequired, 0.001)
			assert.True(t, tt.wantNext.Equal(got.NextAvailable), "next available = %s", got.NextAvailable)

			if tt.wantAvailable {
				assert.Nil(t, got.Position)
				assert.Nil(t, got.CurrentFlight)
				return
			}
			require.NotNil(t, got.Position)
			require.NotNil(t, got.CurrentFlight)
			assert.Equal(t, tt.active[0].Position, *got.Position)
			assert.Equal(t, tt.active[0].FlightID, got.CurrentFlight.FlightID)
		})
	}
}
