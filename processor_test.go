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

package coordex

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"m4o.io/coordex/model"
)

func TestProcessSample(t *testing.T) {
	p := New()

	col, err := p.Process(context.Background(), "testdata/sample.gpx")
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, 7, col.Len())
	assert.Len(t, col.Waypoints, 2)
	assert.Len(t, col.Trackpoints, 3)
	assert.Len(t, col.Routepoints, 2)

	assert.Equal(t, "barn", col.Waypoints[0].Name)
	assert.Equal(t, "15TWG0000049776", col.Waypoints[0].MGRS)
	assert.Equal(t, "18SUJ2347806483", col.Waypoints[1].MGRS)
	assert.Equal(t, "56HLH3436850948", col.Trackpoints[0].MGRS)
}

func TestProcessCompressedSample(t *testing.T) {
	p := New()

	col, err := p.Process(context.Background(), "testdata/sample.gpx.gz")
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, 7, col.Len())
	assert.Equal(t, "15TWG0000049776", col.Waypoints[0].MGRS)
}

func TestProcessUnsupportedFormat(t *testing.T) {
	p := New()

	_, err := p.Process(context.Background(), "testdata/notes.txt")

	var ferr *UnsupportedFormatError

	assert.True(t, errors.As(err, &ferr))
	assert.Equal(t, "testdata/notes.txt", ferr.Path)
}

func TestProcessDetectorInjection(t *testing.T) {
	detect := func(string) (string, error) {
		return "application/pdf", nil
	}

	p := New(WithDetector(detect))

	_, err := p.Process(context.Background(), "testdata/sample.gpx")

	var ferr *UnsupportedFormatError

	assert.True(t, errors.As(err, &ferr))
	assert.Equal(t, "application/pdf", ferr.ContentType)
}

func TestProcessMissingFile(t *testing.T) {
	p := New()

	_, err := p.Process(context.Background(), "testdata/absent.gpx")
	assert.Error(t, err)
}

func TestProcessReaderOrder(t *testing.T) {
	var sb strings.Builder

	sb.WriteString(`<gpx version="1.1"><trk><trkseg>`)

	for i := 0; i < 200; i++ {
		fmt.Fprintf(&sb, `<trkpt lat="%f" lon="%f"/>`, 40+float64(i)/1000, -93+float64(i)/1000)
	}

	sb.WriteString(`</trkseg></trk></gpx>`)

	p := New(WithNCpus(8))

	col, err := p.ProcessReader(context.Background(), strings.NewReader(sb.String()))
	if err != nil {
		t.Fatal(err)
	}

	assert.Len(t, col.Trackpoints, 200)

	// conversions fan out, but the output order is the input order
	for i, rec := range col.Trackpoints {
		assert.Equal(t, i, rec.Index)
		assert.True(t, model.Degrees(40+float64(i)/1000).EqualWithin(rec.Lat, model.E9))
	}
}

func TestProcessReaderFailFast(t *testing.T) {
	src := `<gpx>
  <wpt lat="42" lon="-93"/>
  <trkpt lat="1" lon="1"/>
  <trkpt lat="95" lon="1"/>
  <trkpt lat="2" lon="2"/>
</gpx>`

	p := New()

	col, err := p.ProcessReader(context.Background(), strings.NewReader(src))

	assert.Nil(t, col)

	var aerr *AssemblyError

	assert.True(t, errors.As(err, &aerr))
	assert.Equal(t, model.TRACKPOINT, aerr.Category)
	assert.Equal(t, 1, aerr.Index)
}

func TestProcessReaderParseFailure(t *testing.T) {
	p := New()

	_, err := p.ProcessReader(context.Background(), strings.NewReader(`<gpx><wpt lat="1"/></gpx>`))
	assert.Error(t, err)
}

func TestProcessCoords(t *testing.T) {
	p := New()

	rec, err := p.ProcessCoords(38.8895, -77.0353)
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, "18SUJ2347806483", rec.MGRS)
	assert.Equal(t, model.WAYPOINT, rec.Category)
	assert.Equal(t, 0, rec.Index)
}

func TestProcessCoordsRejectsOutOfRange(t *testing.T) {
	p := New()

	_, err := p.ProcessCoords(91, 0)

	var aerr *AssemblyError

	assert.True(t, errors.As(err, &aerr))
}

func TestWithNCpusFloor(t *testing.T) {
	cfg := defaultProcessorConfig()

	WithNCpus(0)(&cfg)

	assert.Equal(t, uint16(1), cfg.nCPU)
}
