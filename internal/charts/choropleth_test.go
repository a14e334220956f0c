package charts

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"rankboard/pkg/domainerrors"
)

// twoCountryWorld is a minimal FeatureCollection: two rectangular "countries"
// either side of the meridian.
const twoCountryWorld = `{
  "type": "FeatureCollection",
  "features": [
    {
      "type": "Feature",
      "properties": {"name": "Westland"},
      "geometry": {
        "type": "Polygon",
        "coordinates": [[[-120, -30], [-60, -30], [-60, 30], [-120, 30], [-120, -30]]]
      }
    },
    {
      "type": "Feature",
      "properties": {"name": "Eastland"},
      "geometry": {
        "type": "MultiPolygon",
        "coordinates": [[[[60, -30], [120, -30], [120, 30], [60, 30], [60, -30]]]]
      }
    }
  ]
}`

type ChoroplethSuite struct {
	suite.Suite
	worldPath string
}

func TestChoroplethSuite(t *testing.T) {
	suite.Run(t, new(ChoroplethSuite))
}

func (s *ChoroplethSuite) SetupTest() {
	s.worldPath = filepath.Join(s.T().TempDir(), "world.geo.json")
	s.Require().NoError(os.WriteFile(s.worldPath, []byte(twoCountryWorld), 0o644))
}

func (s *ChoroplethSuite) TestLoadWorldMap() {
	m, err := LoadWorldMap(s.worldPath)
	s.Require().NoError(err)
	s.Require().Len(m.features, 2)
	s.Equal("Westland", m.features[0].name)
	s.Equal("Eastland", m.features[1].name)
}

func (s *ChoroplethSuite) TestLoadFailures() {
	s.Run("missing file", func() {
		_, err := LoadWorldMap(filepath.Join(s.T().TempDir(), "nope.json"))
		s.Require().Error(err)
		s.True(domainerrors.Is(err, domainerrors.CodeLoadFailed))
	})

	s.Run("malformed json", func() {
		path := filepath.Join(s.T().TempDir(), "bad.json")
		s.Require().NoError(os.WriteFile(path, []byte("{not json"), 0o644))
		_, err := LoadWorldMap(path)
		s.Require().Error(err)
		s.True(domainerrors.Is(err, domainerrors.CodeLoadFailed))
	})

	s.Run("no polygons", func() {
		path := filepath.Join(s.T().TempDir(), "empty.json")
		s.Require().NoError(os.WriteFile(path, []byte(`{"type":"FeatureCollection","features":[]}`), 0o644))
		_, err := LoadWorldMap(path)
		s.Require().Error(err)
	})
}

func (s *ChoroplethSuite) TestRenderShadesCountedCountries() {
	m, err := LoadWorldMap(s.worldPath)
	s.Require().NoError(err)

	data, err := m.Render(map[string]int{"Westland": 10, "Eastland": 2})
	s.Require().NoError(err)

	img, err := png.Decode(bytes.NewReader(data))
	s.Require().NoError(err)
	s.Equal(mapWidth, img.Bounds().Dx())
	s.Equal(mapHeight, img.Bounds().Dy())

	// Pixel inside Westland (lng -90, lat 0) must carry a scale shade, not
	// the neutral land color; outside either country stays sea.
	wx, wy := project(-90, 0)
	inside := img.At(int(wx), int(wy))
	s.NotEqual(mapLand, inside)
	s.NotEqual(mapSea, inside)

	// Off the graticule lines: lng not a multiple of 30, lat below -60.
	sx, sy := project(15, -80)
	s.Equal(mapSea, img.At(int(sx), int(sy)))
}

func (s *ChoroplethSuite) TestRenderEmptyCountsLeavesLandNeutral() {
	m, err := LoadWorldMap(s.worldPath)
	s.Require().NoError(err)

	data, err := m.Render(nil)
	s.Require().NoError(err)

	img, err := png.Decode(bytes.NewReader(data))
	s.Require().NoError(err)
	wx, wy := project(-90, 0)
	s.Equal(mapLand, img.At(int(wx), int(wy)))
}

func (s *ChoroplethSuite) TestRenderUnknownCountryIgnored() {
	m, err := LoadWorldMap(s.worldPath)
	s.Require().NoError(err)
	_, err = m.Render(map[string]int{"Atlantis": 3})
	s.Require().NoError(err)
}

func TestNormalizeCountry(t *testing.T) {
	assert.Equal(t, "united states of america", normalizeCountry("USA"))
	assert.Equal(t, "united states of america", normalizeCountry("United States"))
	assert.Equal(t, "united kingdom", normalizeCountry(" UK "))
	assert.Equal(t, "germany", normalizeCountry("Germany"))
}

func TestShadeForMonotonic(t *testing.T) {
	low := shadeFor(1, 100)
	high := shadeFor(100, 100)
	assert.Equal(t, scaleHigh, high)
	// More universities means a darker (lower channel value) blue.
	assert.Greater(t, low.R, high.R)
	assert.Greater(t, low.G, high.G)
}
