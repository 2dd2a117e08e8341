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

package mgrs

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"m4o.io/coordex/model"
)

var fromLatLonTests = []struct {
	name string
	lat  model.Degrees
	lon  model.Degrees
	ref  string
}{
	{"iowa", 42, -93, "15TWG0000049776"},
	{"white house", 38.8895, -77.0353, "18SUJ2347806483"},
	{"null island", 0, 0, "31NAA6602100000"},
	{"london", 51.5007, -0.1246, "30UXC9956709427"},
	{"sydney", -33.8688, 151.2093, "56HLH3436850948"},
	{"tokyo", 35.6586, 139.7454, "54SUE8643746808"},
	{"bergen", 60, 5, "32VKM7697958157"},
	{"svalbard", 78, 16, "33XWG2320858567"},
	{"zone edge", 20, -105, "13QEC0000011481"},
	{"north pole", 90, 0, "ZAH0000000000"},
	{"south pole", -90, 0, "BAN0000000000"},
	{"arctic", 87, 14, "ZAD8059476751"},
	{"antarctic", -85, -110, "ASL7804010022"},
}

func TestFromLatLon(t *testing.T) {
	for _, tt := range fromLatLonTests {
		t.Run(tt.name, func(t *testing.T) {
			ref, err := FromLatLon(tt.lat, tt.lon)
			if err != nil {
				t.Fatal(err)
			}

			assert.Equal(t, tt.ref, ref)
		})
	}
}

func TestFromLatLonDeterministic(t *testing.T) {
	first, err := FromLatLon(38.8895, -77.0353)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 100; i++ {
		ref, err := FromLatLon(38.8895, -77.0353)
		if err != nil {
			t.Fatal(err)
		}

		assert.Equal(t, first, ref)
	}
}

func TestFromLatLonRejectsOutOfRange(t *testing.T) {
	pairs := []struct{ lat, lon model.Degrees }{
		{91, 0},
		{-91, 0},
		{0, 181},
		{0, -181},
		{model.Degrees(math.NaN()), 0},
		{0, model.Degrees(math.Inf(1))},
	}

	for _, p := range pairs {
		_, err := FromLatLon(p.lat, p.lon)
		if err == nil {
			t.Errorf("conversion of (%v, %v) should have failed", p.lat, p.lon)
			continue
		}

		var cerr *ConversionError

		assert.True(t, errors.As(err, &cerr))

		// NaN never compares equal to itself, so match non-finite
		// inputs by kind rather than value.
		assertSameDegrees(t, p.lat, cerr.Lat)
		assertSameDegrees(t, p.lon, cerr.Lon)
	}
}

func assertSameDegrees(t *testing.T, want, got model.Degrees) {
	t.Helper()

	if math.IsNaN(float64(want)) {
		assert.True(t, math.IsNaN(float64(got)))

		return
	}

	assert.Equal(t, want, got)
}

func TestFromLatLonNeverClamps(t *testing.T) {
	// 90.0000001 is a hair past the pole and must not become 90.
	_, err := FromLatLon(90.0000001, 0)
	if err == nil {
		t.Error("conversion should have failed")
	}
}

func TestToLatLonRoundTrip(t *testing.T) {
	for _, tt := range fromLatLonTests {
		t.Run(tt.name, func(t *testing.T) {
			lat, lon, err := ToLatLon(tt.ref)
			if err != nil {
				t.Fatal(err)
			}

			// The digits address the square's south-west corner, so the
			// recovered point sits within a couple of metres of the
			// original.
			assert.InDelta(t, float64(tt.lat), float64(lat), 2e-5)
			if tt.lat != 90 && tt.lat != -90 {
				assert.InDelta(t, float64(tt.lon), float64(lon), 3e-4)
			}
		})
	}
}

func TestRoundTripStrings(t *testing.T) {
	// References whose decoded corners re-encode exactly: the zone's
	// central meridian and the poles have no projection noise to absorb.
	refs := []string{
		"15TWG0000049776",
		"13QEC0000011481",
		"ZAH0000000000",
		"BAN0000000000",
	}

	for _, want := range refs {
		lat, lon, err := ToLatLon(want)
		if err != nil {
			t.Fatal(err)
		}

		got, err := FromLatLon(lat, lon)
		if err != nil {
			t.Fatal(err)
		}

		assert.Equal(t, want, got)
	}
}

func TestSquareInterior(t *testing.T) {
	lat, lon, err := ToLatLon("18SUJ2347806483")
	if err != nil {
		t.Fatal(err)
	}

	// half a metre north-east of the corner is still the same square
	ref, err := FromLatLon(lat+5e-6, lon+5e-6)
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, "18SUJ2347806483", ref)
}

func TestToLatLonAcceptsSloppyInput(t *testing.T) {
	lat, lon, err := ToLatLon("  15twg0000049776 ")
	if err != nil {
		t.Fatal(err)
	}

	assert.InDelta(t, 42.0, float64(lat), 2e-5)
	assert.InDelta(t, -93.0, float64(lon), 3e-4)
}

func TestToLatLonTruncatedDigits(t *testing.T) {
	// Fewer digit pairs address a coarser square with the same corner.
	full, _, err := ToLatLon("15TWG1230045600")
	if err != nil {
		t.Fatal(err)
	}

	short, _, err := ToLatLon("15TWG123456")
	if err != nil {
		t.Fatal(err)
	}

	assert.InDelta(t, float64(full), float64(short), 1e-9)
}

func TestToLatLonRejectsGarbage(t *testing.T) {
	refs := []string{
		"",
		"Q",
		"15",
		"15T",
		"15TW",
		"61TWG0000049776",
		"00TWG0000049776",
		"15IWG0000049776",
		"15TIG0000049776",
		"15TWO0000049776",
		"15TWG000004977",
		"15TWG00000497761",
		"15TWGxxxxxyyyyy",
	}

	for _, ref := range refs {
		_, _, err := ToLatLon(ref)

		assert.True(t, errors.Is(err, ErrInvalidReference), "reference %q", ref)
	}
}

func TestLatitudeBands(t *testing.T) {
	assert.Equal(t, byte('C'), latitudeBand(-80))
	assert.Equal(t, byte('M'), latitudeBand(-0.1))
	assert.Equal(t, byte('N'), latitudeBand(0))
	assert.Equal(t, byte('X'), latitudeBand(72))
	assert.Equal(t, byte('X'), latitudeBand(83.9))
}

func TestZoneExceptions(t *testing.T) {
	// southwest Norway folds into zone 32
	assert.Equal(t, 32, zoneFor(58, 4))
	assert.Equal(t, 31, zoneFor(54, 4))

	// Svalbard skips the even zones
	assert.Equal(t, 31, zoneFor(78, 8))
	assert.Equal(t, 33, zoneFor(78, 10))
	assert.Equal(t, 35, zoneFor(78, 22))
	assert.Equal(t, 37, zoneFor(78, 34))
}
