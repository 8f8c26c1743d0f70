// Package summary builds the monthly chart data shown for weight and blood
// pressure.
package summary

import (
	"math"
	"sort"
	"time"

	"github.com/go-openapi/strfmt"

	"github.com/asodi/tracker/client"
)

// Dated is a record with a calendar day.
type Dated interface {
	RecordDate() strfmt.Date
}

// FilterMonth keeps the records dated in month/year, oldest first. Records
// without a date are dropped.
func FilterMonth[T Dated](records []T, month time.Month, year int) []T {
	out := make([]T, 0, len(records))
	for _, r := range records {
		d := time.Time(r.RecordDate())
		if d.IsZero() {
			continue
		}
		if d.Month() == month && d.Year() == year {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return time.Time(out[i].RecordDate()).Before(time.Time(out[j].RecordDate()))
	})
	return out
}

// Point is one chart sample labelled DD/MM.
type Point struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Stats summarises a series. All fields are zero for an empty series.
type Stats struct {
	Count int     `json:"count"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Avg   float64 `json:"avg"`
}

// Series is a labelled chart line with its statistics.
type Series struct {
	Points []Point `json:"points"`
	Stats  Stats   `json:"stats"`
}

func label(d strfmt.Date) string { return time.Time(d).Format("02/01") }

func newSeries[T Dated](records []T, value func(T) float64) Series {
	s := Series{Points: make([]Point, 0, len(records))}
	if len(records) == 0 {
		return s
	}
	s.Stats.Min, s.Stats.Max = math.Inf(1), math.Inf(-1)
	var sum float64
	for _, r := range records {
		v := value(r)
		s.Points = append(s.Points, Point{Label: label(r.RecordDate()), Value: v})
		s.Stats.Min = math.Min(s.Stats.Min, v)
		s.Stats.Max = math.Max(s.Stats.Max, v)
		sum += v
	}
	s.Stats.Count = len(records)
	s.Stats.Avg = math.Round(sum/float64(len(records))*100) / 100
	return s
}

// WeightSummary is the weight chart of one month.
type WeightSummary struct {
	Month time.Month `json:"month"`
	Year  int        `json:"year"`
	Peso  Series     `json:"peso"`
}

// Weights builds the weight chart for month/year.
func Weights(records []client.Weight, month time.Month, year int) WeightSummary {
	in := FilterMonth(records, month, year)
	return WeightSummary{
		Month: month,
		Year:  year,
		Peso:  newSeries(in, func(w client.Weight) float64 { return float64(w.Peso) }),
	}
}

// PressureSummary is the blood pressure chart of one month.
type PressureSummary struct {
	Month              time.Month `json:"month"`
	Year               int        `json:"year"`
	Sistolica          Series     `json:"presion_sistolica"`
	Diastolica         Series     `json:"presion_diastolica"`
	FrecuenciaCardiaca Series     `json:"frecuenciacardiaca"`
}

// Pressures builds the pressure chart for month/year.
func Pressures(records []client.Pressure, month time.Month, year int) PressureSummary {
	in := FilterMonth(records, month, year)
	return PressureSummary{
		Month:              month,
		Year:               year,
		Sistolica:          newSeries(in, func(p client.Pressure) float64 { return float64(p.PresionSistolica) }),
		Diastolica:         newSeries(in, func(p client.Pressure) float64 { return float64(p.PresionDiastolica) }),
		FrecuenciaCardiaca: newSeries(in, func(p client.Pressure) float64 { return float64(p.FrecuenciaCardiaca) }),
	}
}
