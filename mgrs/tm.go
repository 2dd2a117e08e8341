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
	"math"
)

// WGS84 ellipsoid.
const (
	semiMajor  = 6378137.0
	flattening = 1 / 298.257223563

	ecc2 = flattening * (2 - flattening) // first eccentricity squared

	scaleFactor   = 0.9996
	falseEasting  = 500000.0
	falseNorthing = 10000000.0

	// row letters repeat every 2,000 km of northing
	rowPeriod = 2000000.0
)

var (
	ecc    = math.Sqrt(ecc2)
	eccP2  = ecc2 / (1 - ecc2) // second eccentricity squared
	eccPr4 = ecc2 * ecc2
	eccPr6 = ecc2 * ecc2 * ecc2
)

// zoneFor computes the UTM zone, including the Norway and Svalbard
// exceptions.
func zoneFor(lat, lon float64) int {
	zone := int(math.Floor((lon+180)/6)) + 1
	if zone == 61 {
		zone = 60
	}

	if lat >= 56 && lat < 64 && lon >= 3 && lon < 12 {
		zone = 32
	}

	if lat >= 72 && lat < utmMaxLat {
		switch {
		case lon >= 0 && lon < 9:
			zone = 31
		case lon >= 9 && lon < 21:
			zone = 33
		case lon >= 21 && lon < 33:
			zone = 35
		case lon >= 33 && lon < 42:
			zone = 37
		}
	}

	return zone
}

func centralMeridian(zone int) float64 {
	return float64((zone-1)*6 - 180 + 3)
}

// meridianNorthing is the scaled meridian arc length from the equator, the
// northing of a point on a zone's central meridian in the northern
// convention (no false northing applied).
func meridianNorthing(lat float64) float64 {
	phi := lat * math.Pi / 180

	m := semiMajor * ((1-ecc2/4-3*eccPr4/64-5*eccPr6/256)*phi -
		(3*ecc2/8+3*eccPr4/32+45*eccPr6/1024)*math.Sin(2*phi) +
		(15*eccPr4/256+45*eccPr6/1024)*math.Sin(4*phi) -
		(35*eccPr6/3072)*math.Sin(6*phi))

	return scaleFactor * m
}

// toUTM projects a WGS84 coordinate onto its UTM zone.
func toUTM(lat, lon float64) (zone int, easting, northing float64) {
	zone = zoneFor(lat, lon)

	phi := lat * math.Pi / 180
	dLam := (lon - centralMeridian(zone)) * math.Pi / 180

	sinPhi := math.Sin(phi)
	cosPhi := math.Cos(phi)
	tanPhi := math.Tan(phi)

	nu := semiMajor / math.Sqrt(1-ecc2*sinPhi*sinPhi)
	t := tanPhi * tanPhi
	c := eccP2 * cosPhi * cosPhi
	a := cosPhi * dLam

	easting = scaleFactor*nu*(a+(1-t+c)*a*a*a/6+
		(5-18*t+t*t+72*c-58*eccP2)*a*a*a*a*a/120) + falseEasting

	northing = meridianNorthing(lat) + scaleFactor*nu*tanPhi*(a*a/2+
		(5-t+9*c+4*c*c)*a*a*a*a/24+
		(61-58*t+t*t+600*c-330*eccP2)*a*a*a*a*a*a/720)

	if lat < 0 {
		northing += falseNorthing
	}

	return zone, easting, northing
}

// fromUTM inverts toUTM for a known zone and hemisphere.
func fromUTM(zone int, easting, northing float64, southern bool) (lat, lon float64) {
	x := easting - falseEasting

	y := northing
	if southern {
		y -= falseNorthing
	}

	m := y / scaleFactor
	mu := m / (semiMajor * (1 - ecc2/4 - 3*eccPr4/64 - 5*eccPr6/256))

	e1 := (1 - math.Sqrt(1-ecc2)) / (1 + math.Sqrt(1-ecc2))

	// footpoint latitude
	phi1 := mu + (3*e1/2-27*e1*e1*e1/32)*math.Sin(2*mu) +
		(21*e1*e1/16-55*e1*e1*e1*e1/32)*math.Sin(4*mu) +
		(151*e1*e1*e1/96)*math.Sin(6*mu) +
		(1097*e1*e1*e1*e1/512)*math.Sin(8*mu)

	sinPhi := math.Sin(phi1)
	cosPhi := math.Cos(phi1)
	tanPhi := math.Tan(phi1)

	c1 := eccP2 * cosPhi * cosPhi
	t1 := tanPhi * tanPhi
	nu1 := semiMajor / math.Sqrt(1-ecc2*sinPhi*sinPhi)
	rho1 := semiMajor * (1 - ecc2) / math.Pow(1-ecc2*sinPhi*sinPhi, 1.5)
	d := x / (nu1 * scaleFactor)

	phi := phi1 - (nu1*tanPhi/rho1)*(d*d/2-
		(5+3*t1+10*c1-4*c1*c1-9*eccP2)*d*d*d*d/24+
		(61+90*t1+298*c1+45*t1*t1-252*eccP2-3*c1*c1)*d*d*d*d*d*d/720)

	lam := (d - (1+2*t1+c1)*d*d*d/6 +
		(5-2*c1+28*t1-3*c1*c1+8*eccP2+24*t1*t1)*d*d*d*d*d/120) / cosPhi

	lat = phi * 180 / math.Pi
	lon = lam*180/math.Pi + centralMeridian(zone)

	return lat, lon
}
