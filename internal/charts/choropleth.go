package charts

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"
	"sort"
	"strings"

	geojson "github.com/paulmach/go.geojson"

	"rankboard/pkg/domainerrors"
)

const (
	mapWidth  = 1000
	mapHeight = 520
)

var (
	mapSea     = color.RGBA{235, 241, 246, 255}
	mapGrid    = color.RGBA{221, 228, 235, 255}
	mapLand    = color.RGBA{210, 214, 218, 255}
	mapOutline = color.RGBA{255, 255, 255, 255}
	// Sequential shading endpoints for the count scale.
	scaleLow  = color.RGBA{198, 219, 239, 255}
	scaleHigh = color.RGBA{8, 81, 156, 255}
)

// WorldMap renders choropleths from a country-boundary FeatureCollection.
// The boundary file is optional infrastructure: when it is missing the rest
// of the dashboard still works and only the map endpoint degrades.
type WorldMap struct {
	features []worldFeature
}

type worldFeature struct {
	name     string
	polygons [][][][]float64 // multipolygon: polygons -> rings -> points -> [lng, lat]
}

// LoadWorldMap parses a GeoJSON FeatureCollection of country polygons.
// Country names are read from the "name" property with "admin" as fallback.
func LoadWorldMap(path string) (*WorldMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, domainerrors.Wrap(domainerrors.CodeLoadFailed, "open world boundaries", err)
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, domainerrors.Wrap(domainerrors.CodeLoadFailed, "parse world boundaries", err)
	}

	var features []worldFeature
	for _, f := range fc.Features {
		name := featureName(f)
		if name == "" || f.Geometry == nil {
			continue
		}
		wf := worldFeature{name: name}
		if f.Geometry.IsPolygon() {
			wf.polygons = append(wf.polygons, f.Geometry.Polygon)
		} else if f.Geometry.IsMultiPolygon() {
			wf.polygons = append(wf.polygons, f.Geometry.MultiPolygon...)
		} else {
			continue
		}
		features = append(features, wf)
	}
	if len(features) == 0 {
		return nil, domainerrors.New(domainerrors.CodeLoadFailed, "world boundaries contain no country polygons")
	}
	return &WorldMap{features: features}, nil
}

func featureName(f *geojson.Feature) string {
	for _, key := range []string{"name", "admin", "NAME", "ADMIN"} {
		if v, err := f.PropertyString(key); err == nil && v != "" {
			return v
		}
	}
	return ""
}

// Render shades each country by its university count. Countries without a
// count keep the neutral land color; an empty counts map yields an unshaded
// world map.
func (m *WorldMap) Render(counts map[string]int) ([]byte, error) {
	img := image.NewRGBA(image.Rect(0, 0, mapWidth, mapHeight))
	draw.Draw(img, img.Bounds(), &image.Uniform{mapSea}, image.Point{}, draw.Src)
	drawGraticule(img)

	maxCount := 0
	normalized := make(map[string]int, len(counts))
	for country, n := range counts {
		normalized[normalizeCountry(country)] = n
		if n > maxCount {
			maxCount = n
		}
	}

	for _, f := range m.features {
		fill := mapLand
		if n, ok := normalized[normalizeCountry(f.name)]; ok && maxCount > 0 {
			fill = shadeFor(n, maxCount)
		}
		for _, poly := range f.polygons {
			fillPolygon(img, poly, fill)
			for _, ring := range poly {
				drawRing(img, ring, mapOutline)
			}
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, domainerrors.Wrap(domainerrors.CodeInternal, "encode map", err)
	}
	return buf.Bytes(), nil
}

// countryAliases reconciles CSV country names with the common boundary-file
// spellings. Lookups happen on normalized (lowercased, trimmed) names.
var countryAliases = map[string]string{
	"usa":            "united states of america",
	"united states":  "united states of america",
	"uk":             "united kingdom",
	"russia":         "russian federation",
	"south korea":    "republic of korea",
	"north korea":    "dem. rep. korea",
	"czech republic": "czechia",
}

func normalizeCountry(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if alias, ok := countryAliases[n]; ok {
		return alias
	}
	return n
}

// shadeFor interpolates the sequential scale on a sqrt ramp, so a single
// dominant country does not wash out every other shade.
func shadeFor(count, maxCount int) color.RGBA {
	t := math.Sqrt(float64(count) / float64(maxCount))
	lerp := func(a, b uint8) uint8 {
		return uint8(float64(a) + t*(float64(b)-float64(a)))
	}
	return color.RGBA{
		R: lerp(scaleLow.R, scaleHigh.R),
		G: lerp(scaleLow.G, scaleHigh.G),
		B: lerp(scaleLow.B, scaleHigh.B),
		A: 255,
	}
}

// project maps WGS84 lng/lat onto image coordinates with an equirectangular
// projection. Latitudes are clamped near the poles.
func project(lng, lat float64) (x, y float64) {
	if lat > 89.5 {
		lat = 89.5
	}
	if lat < -89.5 {
		lat = -89.5
	}
	x = (lng + 180) / 360 * float64(mapWidth)
	y = (90 - lat) / 180 * float64(mapHeight)
	return x, y
}

func drawGraticule(img *image.RGBA) {
	for lng := -180.0; lng <= 180.0; lng += 30.0 {
		x, _ := project(lng, 0)
		for y := 0; y < mapHeight; y++ {
			img.SetRGBA(int(x), y, mapGrid)
		}
	}
	for lat := -60.0; lat <= 60.0; lat += 30.0 {
		_, y := project(0, lat)
		for x := 0; x < mapWidth; x++ {
			img.SetRGBA(x, int(y), mapGrid)
		}
	}
}

// fillPolygon rasterizes one polygon (outer ring plus holes) with an
// even-odd scanline fill.
func fillPolygon(img *image.RGBA, rings [][][]float64, c color.RGBA) {
	if len(rings) == 0 {
		return
	}
	type point struct{ x, y float64 }
	projected := make([][]point, len(rings))
	minY, maxY := float64(mapHeight), 0.0
	for i, ring := range rings {
		projected[i] = make([]point, 0, len(ring))
		for _, p := range ring {
			if len(p) < 2 {
				continue
			}
			x, y := project(p[0], p[1])
			projected[i] = append(projected[i], point{x, y})
			if y < minY {
				minY = y
			}
			if y > maxY {
				maxY = y
			}
		}
	}

	for y := int(minY); y <= int(maxY); y++ {
		if y < 0 || y >= mapHeight {
			continue
		}
		fy := float64(y)
		var nodes []int
		for _, ring := range projected {
			for i := 0; i < len(ring); i++ {
				j := (i + 1) % len(ring)
				if (ring[i].y < fy && ring[j].y >= fy) || (ring[j].y < fy && ring[i].y >= fy) {
					nodeX := ring[i].x + (fy-ring[i].y)/(ring[j].y-ring[i].y)*(ring[j].x-ring[i].x)
					nodes = append(nodes, int(nodeX))
				}
			}
		}
		sort.Ints(nodes)
		for i := 0; i+1 < len(nodes); i += 2 {
			xs, xe := nodes[i], nodes[i+1]
			if xs < 0 {
				xs = 0
			}
			if xe >= mapWidth {
				xe = mapWidth - 1
			}
			for x := xs; x < xe; x++ {
				img.SetRGBA(x, y, c)
			}
		}
	}
}

func drawRing(img *image.RGBA, ring [][]float64, c color.RGBA) {
	for i := 0; i+1 < len(ring); i++ {
		if len(ring[i]) < 2 || len(ring[i+1]) < 2 {
			continue
		}
		x1, y1 := project(ring[i][0], ring[i][1])
		x2, y2 := project(ring[i+1][0], ring[i+1][1])
		drawLine(img, int(x1), int(y1), int(x2), int(y2), c)
	}
}

// drawLine is a plain Bresenham line clipped to the image bounds.
func drawLine(img *image.RGBA, x1, y1, x2, y2 int, c color.RGBA) {
	dx, dy := abs(x2-x1), abs(y2-y1)
	sx, sy := -1, -1
	if x1 < x2 {
		sx = 1
	}
	if y1 < y2 {
		sy = 1
	}
	err := dx - dy
	for {
		if x1 >= 0 && x1 < mapWidth && y1 >= 0 && y1 < mapHeight {
			img.SetRGBA(x1, y1, c)
		}
		if x1 == x2 && y1 == y2 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
