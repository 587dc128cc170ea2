// Package charts renders dashboard series as PNG images.
package charts

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/wcharczuk/go-chart/v2"

	"fintrack/internal/core"
)

// ErrNoData is returned when there is nothing to draw.
var ErrNoData = errors.New("no data to chart")

const (
	KindCategories = "categories"
	KindDaily      = "daily"
)

var background = chart.Style{
	Padding:   chart.Box{Top: 40, Left: 40, Right: 40, Bottom: 40},
	FillColor: chart.ColorWhite,
}

// Render draws the chart of the given kind from d.
func Render(kind string, d core.Dashboard) ([]byte, error) {
	switch kind {
	case KindCategories:
		return CategoryPie(d.PieChart)
	case KindDaily:
		return DailyLine(d.LineChart)
	default:
		return nil, fmt.Errorf("unknown chart kind %q", kind)
	}
}

// CategoryPie draws one slice per category labelled with its amount.
func CategoryPie(totals []core.CategoryTotal) ([]byte, error) {
	values := make([]chart.Value, 0, len(totals))
	for _, t := range totals {
		if t.Total.Cents <= 0 {
			continue
		}
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s: %s", t.Category, t.Total),
			Value: t.Total.Float(),
		})
	}
	if len(values) == 0 {
		return nil, ErrNoData
	}

	pie := chart.PieChart{
		Title:      "Spending by category",
		Width:      800,
		Height:     800,
		Values:     values,
		Background: background,
	}
	buf := &bytes.Buffer{}
	if err := pie.Render(chart.PNG, buf); err != nil {
		return nil, fmt.Errorf("render category pie: %w", err)
	}
	return buf.Bytes(), nil
}

// DailyLine draws daily totals over time. A single day is drawn against a zero
// point the day before so the x range is never empty.
func DailyLine(days []core.DailyTotal) ([]byte, error) {
	if len(days) == 0 {
		return nil, ErrNoData
	}
	xs := make([]time.Time, 0, len(days)+1)
	ys := make([]float64, 0, len(days)+1)
	if len(days) == 1 {
		xs = append(xs, days[0].Date.AddDate(0, 0, -1))
		ys = append(ys, 0)
	}
	peak := 0.0
	for _, d := range days {
		v := d.Total.Float()
		xs = append(xs, d.Date.Time)
		ys = append(ys, v)
		if v > peak {
			peak = v
		}
	}
	if peak == 0 {
		peak = 1
	}

	graph := chart.Chart{
		Title:      "Daily spending",
		Width:      1000,
		Height:     500,
		Background: background,
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeValueFormatterWithFormat("01-02"),
		},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: peak * 1.1},
			ValueFormatter: func(v interface{}) string {
				return fmt.Sprintf("%.2f", v.(float64))
			},
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    "Spent",
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeColor: chart.ColorBlue,
					StrokeWidth: 2,
				},
			},
		},
	}
	buf := &bytes.Buffer{}
	if err := graph.Render(chart.PNG, buf); err != nil {
		return nil, fmt.Errorf("render daily line: %w", err)
	}
	return buf.Bytes(), nil
}
