// Package charts renders the dashboard's visual artifacts as PNG images:
// bar charts and the rank histogram via go-chart, and the choropleth world
// map via a direct GeoJSON polygon rasterizer.
package charts

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"rankboard/internal/rankings"
	"rankboard/pkg/domainerrors"
)

const (
	barChartWidth     = 900
	barChartHeight    = 500
	histChartWidth    = 900
	histChartHeight   = 400
	placeholderShade  = 0xf2
	placeholderBorder = 0xd0
)

var barFill = drawing.Color{R: 31, G: 119, B: 180, A: 255}

// Renderer turns aggregates into PNGs. It is stateless and safe for
// concurrent use.
type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// TopCountriesBar charts universities per country for the filtered set.
func (r *Renderer) TopCountriesBar(groups []rankings.GroupCount) ([]byte, error) {
	return r.groupBar(fmt.Sprintf("Top %d Countries by Number of Universities", len(groups)), groups)
}

// TopCitiesBar charts universities per city for the filtered set.
func (r *Renderer) TopCitiesBar(groups []rankings.GroupCount) ([]byte, error) {
	return r.groupBar(fmt.Sprintf("Top %d Cities by Number of Universities", len(groups)), groups)
}

func (r *Renderer) groupBar(title string, groups []rankings.GroupCount) ([]byte, error) {
	if len(groups) == 0 {
		return r.placeholder(barChartWidth, barChartHeight)
	}

	bars := make([]chart.Value, 0, len(groups))
	for _, g := range groups {
		bars = append(bars, chart.Value{
			Label: g.Label,
			Value: float64(g.Count),
			Style: chart.Style{FillColor: barFill, StrokeColor: barFill},
		})
	}

	bc := chart.BarChart{
		Title:      title,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 40}},
		Width:      barChartWidth,
		Height:     barChartHeight,
		BarWidth:   barWidthFor(len(bars), barChartWidth, 16),
		BarSpacing: 16,
		XAxis:      chart.Style{FontSize: 9, TextRotationDegrees: 45},
		YAxis: chart.YAxis{
			ValueFormatter: chart.IntValueFormatter,
		},
		Bars: bars,
	}
	return render(&bc)
}

// RankHistogram charts the rank distribution. Only every few bins carry a
// label so 50 bins stay readable.
func (r *Renderer) RankHistogram(bins []rankings.HistogramBin) ([]byte, error) {
	if len(bins) == 0 {
		return r.placeholder(histChartWidth, histChartHeight)
	}

	labelEvery := len(bins)/10 + 1
	bars := make([]chart.Value, 0, len(bins))
	for i, b := range bins {
		label := ""
		if i%labelEvery == 0 {
			label = fmt.Sprintf("%d", b.Lo)
		}
		bars = append(bars, chart.Value{
			Label: label,
			Value: float64(b.Count),
			Style: chart.Style{FillColor: barFill, StrokeColor: barFill},
		})
	}

	bc := chart.BarChart{
		Title:      "Distribution of Global Rankings",
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 24}},
		Width:      histChartWidth,
		Height:     histChartHeight,
		BarWidth:   barWidthFor(len(bars), histChartWidth, 1),
		BarSpacing: 1,
		XAxis:      chart.Style{FontSize: 8},
		YAxis: chart.YAxis{
			ValueFormatter: chart.IntValueFormatter,
		},
		Bars: bars,
	}
	return render(&bc)
}

// ClusterBar charts the excellence clusters. Brackets are rendered even when
// empty so the axis stays stable across filters.
func (r *Renderer) ClusterBar(clusters []rankings.Cluster) ([]byte, error) {
	total := 0
	for _, c := range clusters {
		total += c.Count
	}
	// All-zero brackets leave the chart with no y-range to draw.
	if len(clusters) == 0 || total == 0 {
		return r.placeholder(histChartWidth, histChartHeight)
	}

	bars := make([]chart.Value, 0, len(clusters))
	for _, c := range clusters {
		bars = append(bars, chart.Value{
			Label: c.Name,
			Value: float64(c.Count),
			Style: chart.Style{FillColor: barFill, StrokeColor: barFill},
		})
	}

	bc := chart.BarChart{
		Title:      "Universities Across Excellence Clusters",
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 40}},
		Width:      histChartWidth,
		Height:     histChartHeight,
		BarWidth:   barWidthFor(len(bars), histChartWidth, 16),
		BarSpacing: 16,
		XAxis:      chart.Style{FontSize: 9},
		YAxis: chart.YAxis{
			ValueFormatter: chart.IntValueFormatter,
		},
		Bars: bars,
	}
	return render(&bc)
}

func barWidthFor(bars, width, spacing int) int {
	if bars == 0 {
		return 1
	}
	w := (width-120)/bars - spacing
	if w < 2 {
		w = 2
	}
	if w > 80 {
		w = 80
	}
	return w
}

func render(bc *chart.BarChart) ([]byte, error) {
	var buf bytes.Buffer
	if err := bc.Render(chart.PNG, &buf); err != nil {
		return nil, domainerrors.Wrap(domainerrors.CodeInternal, "render chart", err)
	}
	return buf.Bytes(), nil
}

// placeholder renders a framed blank panel for empty filter results, so the
// dashboard shows "no data" instead of a broken image.
func (r *Renderer) placeholder(width, height int) ([]byte, error) {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	bg := color.RGBA{placeholderShade, placeholderShade, placeholderShade, 255}
	draw.Draw(img, img.Bounds(), &image.Uniform{bg}, image.Point{}, draw.Src)

	border := color.RGBA{placeholderBorder, placeholderBorder, placeholderBorder, 255}
	for x := 0; x < width; x++ {
		img.SetRGBA(x, 0, border)
		img.SetRGBA(x, height-1, border)
	}
	for y := 0; y < height; y++ {
		img.SetRGBA(0, y, border)
		img.SetRGBA(width-1, y, border)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, domainerrors.Wrap(domainerrors.CodeInternal, "encode placeholder", err)
	}
	return buf.Bytes(), nil
}
