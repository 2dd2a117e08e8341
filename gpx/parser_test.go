// Copyright 2017-25 the original author or authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package gpx

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"m4o.io/coordex/model"
)

const sample = `<?xml version="1.0" encoding="UTF-8"?>
<gpx xmlns="http://www.topografix.com/GPX/1/1" version="1.1" creator="coordex">
  <metadata>
    <name>morning ride</name>
  </metadata>
  <wpt lat="38.8895" lon="-77.0353">
    <name>monument</name>
  </wpt>
  <wpt lat="42" lon="-93"/>
  <rte>
    <rtept lat="51.5007" lon="-0.1246"/>
  </rte>
  <trk>
    <trkseg>
      <trkpt lat="35.6586" lon="139.7454"/>
      <trkpt lat="35.6587" lon="139.7455"/>
    </trkseg>
    <trkseg>
      <trkpt lat="35.6588" lon="139.7456"/>
    </trkseg>
  </trk>
</gpx>`

func TestParseSample(t *testing.T) {
	doc, err := Parse(context.Background(), strings.NewReader(sample))
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, 6, doc.Len())
	assert.Len(t, doc.Waypoints, 2)
	assert.Len(t, doc.Trackpoints, 3)
	assert.Len(t, doc.Routepoints, 1)

	// the metadata name must not leak into the first point
	assert.Equal(t, "monument", doc.Waypoints[0].Name)
	assert.Equal(t, "", doc.Waypoints[1].Name)

	assert.Equal(t, model.WAYPOINT, doc.Waypoints[0].Category)
	assert.True(t, model.Degrees(38.8895).EqualWithin(doc.Waypoints[0].Lat, model.E9))
	assert.True(t, model.Degrees(-77.0353).EqualWithin(doc.Waypoints[0].Lon, model.E9))
}

func TestParseOrder(t *testing.T) {
	doc, err := Parse(context.Background(), strings.NewReader(sample))
	if err != nil {
		t.Fatal(err)
	}

	// track segments flatten into one sequence of ascending indices
	for i, p := range doc.Trackpoints {
		assert.Equal(t, i, p.Index)
		assert.Equal(t, model.TRACKPOINT, p.Category)
	}

	assert.True(t, doc.Trackpoints[0].Lat < doc.Trackpoints[1].Lat)
	assert.True(t, doc.Trackpoints[1].Lat < doc.Trackpoints[2].Lat)
}

func TestParseEmptyCategories(t *testing.T) {
	doc, err := Parse(context.Background(), strings.NewReader(`<gpx version="1.1"></gpx>`))
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, 0, doc.Len())
	assert.Empty(t, doc.Waypoints)
	assert.Empty(t, doc.Trackpoints)
	assert.Empty(t, doc.Routepoints)
}

func TestParseMissingRoot(t *testing.T) {
	cases := []string{
		``,
		`<kml><Placemark/></kml>`,
		`<?xml version="1.0"?><bookstore/>`,
	}

	for _, src := range cases {
		_, err := Parse(context.Background(), strings.NewReader(src))

		var perr *ParseError

		assert.True(t, errors.As(err, &perr), "source %q", src)
		assert.True(t, errors.Is(err, errNoRoot), "source %q", src)
	}
}

func TestParseMalformedXML(t *testing.T) {
	_, err := Parse(context.Background(), strings.NewReader(`<gpx><wpt lat="1" lon="2">`))

	var perr *ParseError

	assert.True(t, errors.As(err, &perr))
	assert.Positive(t, perr.Offset)
}

func TestParseMissingAttributes(t *testing.T) {
	_, err := Parse(context.Background(), strings.NewReader(`<gpx><wpt lon="2"/></gpx>`))

	var perr *ParseError

	assert.True(t, errors.As(err, &perr))
	assert.Equal(t, "wpt", perr.Element)
	assert.True(t, errors.Is(err, errMissingLat))

	_, err = Parse(context.Background(), strings.NewReader(`<gpx><trkpt lat="1"/></gpx>`))
	assert.True(t, errors.Is(err, errMissingLon))
}

func TestParseNonNumericCoordinates(t *testing.T) {
	_, err := Parse(context.Background(), strings.NewReader(`<gpx><rtept lat="north" lon="2"/></gpx>`))

	var perr *ParseError

	assert.True(t, errors.As(err, &perr))
	assert.Equal(t, "rtept", perr.Element)
	assert.Contains(t, perr.Error(), "non-numeric lat")
}

func TestParseCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Parse(ctx, strings.NewReader(sample))

	assert.True(t, errors.Is(err, context.Canceled))
}
