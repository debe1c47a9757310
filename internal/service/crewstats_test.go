package service

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Munionn/Airport-sub002/internal/models"
)

func TestBuildCrewStatistics(t *testing.T) {
	tallies := []models.CrewMemberTally{
		{UserID: 1, Username: "ann", Assignments: 4, CompletedFlights: 4, OnTimeArrivals: 3},
		{UserID: 2, Username: "bob", Assignments: 4, CompletedFlights: 2, OnTimeArrivals: 2},
		{UserID: 3, Username: "cat", Assignments: 1, CompletedFlights: 0},
	}
	counts := map[models.Position]int{models.PositionPilot: 5, models.PositionPurser: 4}

	stats := BuildCrewStatistics(tallies, counts)

	assert.Equal(t, 3, stats.TotalCrew)
	assert.Equal(t, 9, stats.TotalAssignments)
	assert.Equal(t, 3.0, stats.AvgAssignmentsPerCrew)

	require.Len(t, stats.ByPosition, len(models.Positions))
	assert.Equal(t, 5, stats.ByPosition[models.PositionPilot])
	assert.Equal(t, 0, stats.ByPosition[models.PositionCoPilot])
	assert.Equal(t, 0, stats.ByPosition[models.PositionFlightAttendant])

	require.Len(t, stats.MostActive, 3)
	assert.Equal(t, []int64{1, 2, 3}, []int64{stats.MostActive[0].UserID, stats.MostActive[1].UserID, stats.MostActive[2].UserID})

	require.Len(t, stats.MostEfficient, 2, "crew without completed flights are not ranked")
	assert.Equal(t, int64(2), stats.MostEfficient[0].UserID)
	assert.Equal(t, 100.0, stats.MostEfficient[0].OnTimeRate)
	assert.Equal(t, 75.0, stats.MostEfficient[1].OnTimeRate)
}

func TestBuildCrewStatistics_Empty(t *testing.T) {
	stats := BuildCrewStatistics(nil, nil)

	assert.Zero(t, stats.TotalCrew)
	assert.Zero(t, stats.AvgAssignmentsPerCrew)
	assert.Len(t, stats.ByPosition, len(models.Positions))
	assert.NotNil(t, stats.MostActive)
	assert.NotNil(t, stats.MostEfficient)
}

func TestBuildCrewStatistics_TopTen(t *testing.T) {
	var tallies []models.CrewMemberTally
	for i := 1; i <= 15; i++ {
		tallies = append(tallies, models.CrewMemberTally{
			UserID:           int64(i),
			Username:         fmt.Sprintf("crew%d", i),
			Assignments:      i,
			CompletedFlights: i,
			OnTimeArrivals:   i / 2,
		})
	}

	stats := BuildCrewStatistics(tallies, nil)

	assert.Len(t, stats.MostActive, 10)
	assert.Equal(t, int64(15), stats.MostActive[0].UserID)
	assert.Len(t, stats.MostEfficient, 10)
	assert.Equal(t, 8.0, stats.AvgAssignmentsPerCrew)
}
