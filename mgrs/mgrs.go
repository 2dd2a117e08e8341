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

// Package mgrs converts WGS84 latitude/longitude pairs to Military Grid
// Reference System strings and back. Conversions are pure functions at a
// fixed 1 m precision; UTM covers latitudes in [-80, 84) and UPS covers
// the polar caps.
package mgrs

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"m4o.io/coordex/model"
)

// precision is the number of easting and northing digits, 5 per axis (1 m).
// It is fixed for all conversions in a run.
const precision = 5

const (
	utmMaxLat = 84.0
	utmMinLat = -80.0

	squareSize = 100000.0
)

const bandLetters = "CDEFGHJKLMNPQRSTUVWX"

var columnLetters = [3]string{"ABCDEFGH", "JKLMNPQR", "STUVWXYZ"}

const rowLetters = "ABCDEFGHJKLMNPQRSTUV"

// ErrInvalidReference reports an MGRS string that cannot be parsed.
var ErrInvalidReference = errors.New("invalid MGRS reference")

// ConversionError reports a coordinate pair that cannot be converted.
type ConversionError struct {
	Lat    model.Degrees
	Lon    model.Degrees
	Reason string
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("cannot convert (%s, %s): %s",
		strconv.FormatFloat(float64(e.Lat), 'f', -1, 64),
		strconv.FormatFloat(float64(e.Lon), 'f', -1, 64),
		e.Reason)
}

// FromLatLon converts a WGS84 coordinate pair to an MGRS string. Out of
// range or non-finite inputs fail with a *ConversionError; inputs are
// never clamped.
func FromLatLon(lat, lon model.Degrees) (string, error) {
	if err := validate(lat, lon); err != nil {
		return "", err
	}

	la, lo := float64(lat), float64(lon)

	if la >= utmMaxLat || la < utmMinLat {
		return encodePolar(la, lo), nil
	}

	return encodeUTM(la, lo), nil
}

// ToLatLon converts an MGRS string back to the WGS84 coordinate of the
// south-west corner of the square the digits address.
func ToLatLon(ref string) (lat, lon model.Degrees, err error) {
	s := strings.ToUpper(strings.TrimSpace(ref))
	if s == "" {
		return 0, 0, fmt.Errorf("%w: empty string", ErrInvalidReference)
	}

	digits := 0
	for digits < len(s) && s[digits] >= '0' && s[digits] <= '9' {
		digits++
	}

	var la, lo float64
	if digits == 0 {
		la, lo, err = parsePolar(s)
	} else {
		la, lo, err = parseUTM(s, digits)
	}

	if err != nil {
		return 0, 0, err
	}

	return model.Degrees(la), model.Degrees(lo), nil
}

func validate(lat, lon model.Degrees) error {
	if !lat.IsFinite() || !lon.IsFinite() {
		return &ConversionError{Lat: lat, Lon: lon, Reason: "coordinates must be finite"}
	}

	if lat < model.MinLat || lat > model.MaxLat {
		return &ConversionError{Lat: lat, Lon: lon, Reason: "latitude out of range [-90, 90]"}
	}

	if lon < model.MinLon || lon > model.MaxLon {
		return &ConversionError{Lat: lat, Lon: lon, Reason: "longitude out of range [-180, 180]"}
	}

	return nil
}

func encodeUTM(lat, lon float64) string {
	zone, easting, northing := toUTM(lat, lon)
	easting, northing = snap(easting), snap(northing)

	set := (zone - 1) % 3
	col := int(math.Floor(easting / squareSize))
	row := int(math.Floor(northing/squareSize)) % 20

	// even zones offset the row lettering by five
	if zone%2 == 0 {
		row = (row + 5) % 20
	}

	return fmt.Sprintf("%02d%c%c%c%s", zone, latitudeBand(lat),
		columnLetters[set][col-1], rowLetters[row], digitsFor(easting, northing))
}

func latitudeBand(lat float64) byte {
	i := int(math.Floor((lat + 80) / 8))
	if i > 19 {
		i = 19
	}

	return bandLetters[i]
}

// snap rounds a projected coordinate to the nearest millimetre so that
// digit truncation is stable against sub-millimetre projection noise.
// Without it a decoded square corner, which lies exactly on a metre
// boundary, could re-encode one digit off.
func snap(v float64) float64 {
	return math.Round(v*1000) / 1000
}

func digitsFor(easting, northing float64) string {
	e := int(math.Floor(math.Mod(easting, squareSize)))
	n := int(math.Floor(math.Mod(northing, squareSize)))

	return fmt.Sprintf("%0*d%0*d", precision, e, precision, n)
}

func parseUTM(s string, zoneDigits int) (lat, lon float64, err error) {
	if zoneDigits > 2 || len(s) < zoneDigits+3 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidReference, s)
	}

	zone, err := strconv.Atoi(s[:zoneDigits])
	if err != nil || zone < 1 || zone > 60 {
		return 0, 0, fmt.Errorf("%w: bad zone in %q", ErrInvalidReference, s)
	}

	band := strings.IndexByte(bandLetters, s[zoneDigits])
	if band < 0 {
		return 0, 0, fmt.Errorf("%w: bad band letter in %q", ErrInvalidReference, s)
	}

	set := (zone - 1) % 3

	col := strings.IndexByte(columnLetters[set], s[zoneDigits+1])
	if col < 0 {
		return 0, 0, fmt.Errorf("%w: bad column letter in %q", ErrInvalidReference, s)
	}

	row := strings.IndexByte(rowLetters, s[zoneDigits+2])
	if row < 0 {
		return 0, 0, fmt.Errorf("%w: bad row letter in %q", ErrInvalidReference, s)
	}

	if zone%2 == 0 {
		row = (row - 5 + 20) % 20
	}

	easting, northing, err := parseDigits(s[zoneDigits+3:])
	if err != nil {
		return 0, 0, err
	}

	easting += float64(col+1) * squareSize
	northing += float64(row) * squareSize

	// Row letters repeat every 2,000 km; resolve the ambiguity with the
	// northing of the latitude band's south edge.
	bandLat := float64(band)*8 - 80
	southern := bandLat < 0

	minNorthing := meridianNorthing(bandLat)
	if southern {
		minNorthing += falseNorthing
	}

	for northing < minNorthing-1e-6 {
		northing += rowPeriod
	}

	lat, lon = fromUTM(zone, easting, northing, southern)

	return lat, lon, nil
}

func parseDigits(s string) (easting, northing float64, err error) {
	if len(s)%2 != 0 || len(s) > 2*precision {
		return 0, 0, fmt.Errorf("%w: odd digit count in %q", ErrInvalidReference, s)
	}

	if len(s) == 0 {
		return 0, 0, nil
	}

	half := len(s) / 2

	e, err := strconv.Atoi(s[:half])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: bad easting digits in %q", ErrInvalidReference, s)
	}

	n, err := strconv.Atoi(s[half:])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: bad northing digits in %q", ErrInvalidReference, s)
	}

	mult := math.Pow(10, float64(precision-half))

	return float64(e) * mult, float64(n) * mult, nil
}
