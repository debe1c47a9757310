package service

import (
	"cmp"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Munionn/Airport-sub002/internal/models"
	"github.com/Munionn/Airport-sub002/internal/models/dto"
)

// SeatsPerFlight is the assumed capacity used for load factors.
const SeatsPerFlight = 150

const (
	DefaultPopularLimit = 10
	MaxPopularLimit     = 100
)

var (
	flightWeight    = decimal.RequireFromString("0.4")
	passengerWeight = decimal.RequireFromString("0.6")
)

// LoadFactor is the share of seats sold across flights, as a percentage.
func LoadFactor(passengers, flights int) float64 {
	return percent(passengers, flights*SeatsPerFlight)
}

// PopularityScore weights flights at 0.4 and passengers at 0.6.
func PopularityScore(flights, passengers int) float64 {
	return flightWeight.Mul(decimal.NewFromInt(int64(flights))).
		Add(passengerWeight.Mul(decimal.NewFromInt(int64(passengers)))).
		Round(2).
		InexactFloat64()
}

// BuildRouteStatistics derives the statistics of one route from its tally.
func BuildRouteStatistics(t models.RouteTally) dto.RouteStatistics {
	return dto.RouteStatistics{
		RouteID:           t.Route.ID,
		RouteName:         t.Route.Name,
		DepartureAirport:  t.Route.DepartureAirport,
		ArrivalAirport:    t.Route.ArrivalAirport,
		TotalFlights:      t.FlightCount,
		TotalPassengers:   t.PassengerCount,
		LoadFactor:        LoadFactor(t.PassengerCount, t.FlightCount),
		AvgTicketPrice:    t.AvgTicketPrice.Round(2),
		TotalRevenue:      t.TotalRevenue.Round(2),
		OnTimePerformance: percent(t.OnTimeDepartures, t.CompletedFlights),
		MostPopularMonth:  busiestMonth(t.MonthlyFlights),
		BusiestWeekday:    busiestWeekday(t.WeekdayFlights),
	}
}

// RankPopularRoutes orders routes by popularity score, then flight count,
// then route id, and keeps the first limit. limit is clamped to
// [1, MaxPopularLimit] with DefaultPopularLimit for non-positive values.
func RankPopularRoutes(tallies []models.RouteTally, limit int) []dto.PopularRoute {
	if limit <= 0 {
		limit = DefaultPopularLimit
	}
	limit = min(limit, MaxPopularLimit)

	ranked := make([]dto.PopularRoute, 0, len(tallies))
	for _, t := range tallies {
		ranked = append(ranked, dto.PopularRoute{
			RouteID:          t.Route.ID,
			RouteName:        t.Route.Name,
			DepartureAirport: t.Route.DepartureAirport,
			ArrivalAirport:   t.Route.ArrivalAirport,
			FlightCount:      t.FlightCount,
			PassengerCount:   t.PassengerCount,
			LoadFactor:       LoadFactor(t.PassengerCount, t.FlightCount),
			TotalRevenue:     t.TotalRevenue.Round(2),
			PopularityScore:  PopularityScore(t.FlightCount, t.PassengerCount),
		})
	}
	slices.SortFunc(ranked, func(a, b dto.PopularRoute) int {
		if c := cmp.Compare(b.PopularityScore, a.PopularityScore); c != 0 {
			return c
		}
		if c := cmp.Compare(b.FlightCount, a.FlightCount); c != 0 {
			return c
		}
		return cmp.Compare(a.RouteID, b.RouteID)
	})
	return ranked[:min(len(ranked), limit)]
}

// busiestMonth returns the month with the most flights, January first on
// ties, or nil when there are none.
func busiestMonth(counts map[time.Month]int) *string {
	best, bestCount := time.Month(0), 0
	for m := time.January; m <= time.December; m++ {
		if counts[m] > bestCount {
			best, bestCount = m, counts[m]
		}
	}
	if bestCount == 0 {
		return nil
	}
	name := best.String()
	return &name
}

// busiestWeekday returns the weekday with the most flights, Sunday first on
// ties, or nil when there are none.
func busiestWeekday(counts map[time.Weekday]int) *string {
	best, bestCount := time.Sunday, 0
	for d := time.Sunday; d <= time.Saturday; d++ {
		if counts[d] > bestCount {
			best, bestCount = d, counts[d]
		}
	}
	if bestCount == 0 {
		return nil
	}
	name := best.String()
	return &name
}
