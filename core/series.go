package core

import "github.com/huangsam/metricviz/schema"

// SeriesPoint is one plotted sample. Index is the point's position in the full
// document, not its position within the series.
type SeriesPoint struct {
	Index int
	Value float64
}

// Series is the set of points sharing one label.
type Series struct {
	Label  string
	Points []SeriesPoint
}

// GroupByLabel splits points into one series per distinct label.
// Series are ordered by the first appearance of their label.
func GroupByLabel(points []schema.MetricPoint) []Series {
	var series []Series
	positions := make(map[string]int)
	for i, p := range points {
		pos, ok := positions[p.Label]
		if !ok {
			pos = len(series)
			positions[p.Label] = pos
			series = append(series, Series{Label: p.Label})
		}
		series[pos].Points = append(series[pos].Points, SeriesPoint{Index: i, Value: p.Value})
	}
	return series
}
