package adapter

import "context"

// YearFigures is the numeric snapshot handed to the insight service.
type YearFigures struct {
	TotalIncome    float64
	TotalExpense   float64
	ActiveMonths   int
	AverageBalance float64
	AveragePercent float64
	GroupTotals    map[string]float64
}

// InsightService produces a short natural-language commentary on a year of
// budget figures.
type InsightService interface {
	// IsAvailable reports whether the service is configured.
	IsAvailable() bool

	// YearInsight returns a commentary for the given figures.
	YearInsight(ctx context.Context, figures YearFigures) (string, error)
}
