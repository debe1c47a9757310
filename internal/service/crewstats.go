package service

import (
	"cmp"
	"slices"

	"github.com/Munionn/Airport-sub002/internal/models"
	"github.com/Munionn/Airport-sub002/internal/models/dto"
)

const crewRankingSize = 10

// BuildCrewStatistics derives crew-wide statistics from per-member tallies
// and per-position assignment counts.
func BuildCrewStatistics(tallies []models.CrewMemberTally, positionCounts map[models.Position]int) dto.CrewStatistics {
	stats := dto.CrewStatistics{
		TotalCrew:     len(tallies),
		ByPosition:    make(map[models.Position]int, len(models.Positions)),
		MostActive:    []dto.CrewActivity{},
		MostEfficient: []dto.CrewEfficiency{},
	}
	for _, p := range models.Positions {
		stats.ByPosition[p] = positionCounts[p]
	}

	for _, t := range tallies {
		stats.TotalAssignments += t.Assignments
	}
	if stats.TotalCrew > 0 {
		stats.AvgAssignmentsPerCrew = round2(float64(stats.TotalAssignments) / float64(stats.TotalCrew))
	}

	active := slices.Clone(tallies)
	slices.SortFunc(active, func(a, b models.CrewMemberTally) int {
		if c := cmp.Compare(b.Assignments, a.Assignments); c != 0 {
			return c
		}
		return cmp.Compare(a.UserID, b.UserID)
	})
	for _, t := range active[:min(len(active), crewRankingSize)] {
		stats.MostActive = append(stats.MostActive, dto.CrewActivity{
			UserID:      t.UserID,
			Username:    t.Username,
			FullName:    t.FullName,
			Assignments: t.Assignments,
		})
	}

	for _, t := range tallies {
		if t.CompletedFlights == 0 {
			continue
		}
		stats.MostEfficient = append(stats.MostEfficient, dto.CrewEfficiency{
			UserID:           t.UserID,
			Username:         t.Username,
			FullName:         t.FullName,
			CompletedFlights: t.CompletedFlights,
			OnTimeArrivals:   t.OnTimeArrivals,
			OnTimeRate:       percent(t.OnTimeArrivals, t.CompletedFlights),
		})
	}
	slices.SortFunc(stats.MostEfficient, func(a, b dto.CrewEfficiency) int {
		if c := cmp.Compare(b.OnTimeRate, a.OnTimeRate); c != 0 {
			return c
		}
		if c := cmp.Compare(b.CompletedFlights, a.CompletedFlights); c != 0 {
			return c
		}
		return cmp.Compare(a.UserID, b.UserID)
	})
	stats.MostEfficient = stats.MostEfficient[:min(len(stats.MostEfficient), crewRankingSize)]

	return stats
}
