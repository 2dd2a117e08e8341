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
	"fmt"
	"math"
	"strings"
)

// Universal Polar Stereographic.
const (
	upsScaleFactor = 0.994
	upsFalseCoord  = 2000000.0

	northFalseNorthing = 1300000.0
	southFalseNorthing = 800000.0

	westFalseEasting = 800000.0
	eastFalseEasting = 2000000.0
)

// Polar square letters omit I and O, and columns additionally omit
// D, E, M, N, V and W.
const (
	polarColumnsWest = "JKLPQRSTUXYZ"
	polarColumnsEast = "ABCFGHJKLPQR"
	polarRows        = "ABCDEFGHJKLMNPQRSTUVWXYZ"
)

// upsRho0 is the scaled stereographic constant 2a/sqrt((1+e)^(1+e)(1-e)^(1-e)).
var upsRho0 = 2 * semiMajor / math.Sqrt(math.Pow(1+ecc, 1+ecc)*math.Pow(1-ecc, 1-ecc))

// toUPS projects a polar WGS84 coordinate onto the polar stereographic
// grid of its hemisphere.
func toUPS(lat, lon float64) (easting, northing float64) {
	north := lat >= 0

	phi := math.Abs(lat) * math.Pi / 180
	lam := lon * math.Pi / 180

	sinPhi := math.Sin(phi)
	t := math.Tan(math.Pi/4-phi/2) /
		math.Pow((1-ecc*sinPhi)/(1+ecc*sinPhi), ecc/2)
	rho := upsScaleFactor * upsRho0 * t

	easting = upsFalseCoord + rho*math.Sin(lam)
	if north {
		northing = upsFalseCoord - rho*math.Cos(lam)
	} else {
		northing = upsFalseCoord + rho*math.Cos(lam)
	}

	return easting, northing
}

// fromUPS inverts toUPS.
func fromUPS(easting, northing float64, north bool) (lat, lon float64) {
	x := easting - upsFalseCoord
	y := northing - upsFalseCoord

	rho := math.Hypot(x, y)
	t := rho / (upsScaleFactor * upsRho0)

	// iterate the conformal latitude correction to convergence
	phi := math.Pi/2 - 2*math.Atan(t)
	for i := 0; i < 10; i++ {
		sinPhi := math.Sin(phi)
		phi = math.Pi/2 - 2*math.Atan(t*math.Pow((1-ecc*sinPhi)/(1+ecc*sinPhi), ecc/2))
	}

	var lam float64

	switch {
	case rho == 0:
		lam = 0
	case north:
		lam = math.Atan2(x, -y)
	default:
		lam = math.Atan2(x, y)
	}

	lat = phi * 180 / math.Pi
	if !north {
		lat = -lat
	}

	return lat, lam * 180 / math.Pi
}

func encodePolar(lat, lon float64) string {
	north := lat >= 0
	easting, northing := toUPS(lat, lon)
	easting, northing = snap(easting), snap(northing)

	eastHalf := easting >= upsFalseCoord

	var gzd byte

	switch {
	case north && eastHalf:
		gzd = 'Z'
	case north:
		gzd = 'Y'
	case eastHalf:
		gzd = 'B'
	default:
		gzd = 'A'
	}

	columns, fe := polarColumnsWest, westFalseEasting
	if eastHalf {
		columns, fe = polarColumnsEast, eastFalseEasting
	}

	fn := southFalseNorthing
	if north {
		fn = northFalseNorthing
	}

	col := int(math.Floor((easting - fe) / squareSize))
	row := int(math.Floor((northing - fn) / squareSize))

	return fmt.Sprintf("%c%c%c%s", gzd, columns[col], polarRows[row],
		digitsFor(easting, northing))
}

func parsePolar(s string) (lat, lon float64, err error) {
	if len(s) < 3 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidReference, s)
	}

	gzd := s[0]

	north := gzd == 'Y' || gzd == 'Z'
	eastHalf := gzd == 'B' || gzd == 'Z'

	if gzd != 'A' && gzd != 'B' && gzd != 'Y' && gzd != 'Z' {
		return 0, 0, fmt.Errorf("%w: bad polar zone in %q", ErrInvalidReference, s)
	}

	columns, fe := polarColumnsWest, westFalseEasting
	if eastHalf {
		columns, fe = polarColumnsEast, eastFalseEasting
	}

	fn := southFalseNorthing
	if north {
		fn = northFalseNorthing
	}

	col := strings.IndexByte(columns, s[1])
	if col < 0 {
		return 0, 0, fmt.Errorf("%w: bad column letter in %q", ErrInvalidReference, s)
	}

	row := strings.IndexByte(polarRows, s[2])
	if row < 0 {
		return 0, 0, fmt.Errorf("%w: bad row letter in %q", ErrInvalidReference, s)
	}

	easting, northing, err := parseDigits(s[3:])
	if err != nil {
		return 0, 0, err
	}

	easting += fe + float64(col)*squareSize
	northing += fn + float64(row)*squareSize

	lat, lon = fromUPS(easting, northing, north)

	return lat, lon, nil
}
