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

// Package model contains the shared model for geographic point records.
package model

import (
	"errors"
	"fmt"
)

// Category is an enumeration of GPX point categories.
type Category int32

const (
	// WAYPOINT denotes a standalone point.
	WAYPOINT Category = iota

	// TRACKPOINT denotes a point nested inside a track segment.
	TRACKPOINT

	// ROUTEPOINT denotes a point nested inside a route.
	ROUTEPOINT
)

// Categories lists the point categories in their canonical output order.
var Categories = []Category{WAYPOINT, TRACKPOINT, ROUTEPOINT}

func (c Category) String() string {
	switch c {
	case WAYPOINT:
		return "waypoint"
	case TRACKPOINT:
		return "trackpoint"
	case ROUTEPOINT:
		return "routepoint"
	default:
		return fmt.Sprintf("Category(%d)", int32(c))
	}
}

// MarshalText renders the category as its GPX name.
func (c Category) MarshalText() ([]byte, error) {
	switch c {
	case WAYPOINT, TRACKPOINT, ROUTEPOINT:
		return []byte(c.String()), nil
	default:
		return nil, fmt.Errorf("unknown category %d", int32(c))
	}
}

// UnmarshalText parses a GPX category name.
func (c *Category) UnmarshalText(b []byte) error {
	switch string(b) {
	case "waypoint":
		*c = WAYPOINT
	case "trackpoint":
		*c = TRACKPOINT
	case "routepoint":
		*c = ROUTEPOINT
	default:
		return fmt.Errorf("unknown category %q", string(b))
	}

	return nil
}

// RawPoint is a coordinate pair extracted from a source file, before
// conversion. Index is the zero-based position of the point within its
// category, in the order it was encountered.
type RawPoint struct {
	Category Category
	Name     string
	Lat      Degrees
	Lon      Degrees
	Index    int
}

// Validate checks that the coordinates are finite and within range.
func (p RawPoint) Validate() error {
	if !p.Lat.IsFinite() || !p.Lon.IsFinite() {
		return fmt.Errorf("%s %d: coordinates must be finite", p.Category, p.Index)
	}

	if p.Lat < MinLat || p.Lat > MaxLat {
		return fmt.Errorf("%s %d: latitude %s out of range [-90, 90]", p.Category, p.Index, ftoa(float64(p.Lat)))
	}

	if p.Lon < MinLon || p.Lon > MaxLon {
		return fmt.Errorf("%s %d: longitude %s out of range [-180, 180]", p.Category, p.Index, ftoa(float64(p.Lon)))
	}

	if p.Index < 0 {
		return fmt.Errorf("%s: negative sequence index %d", p.Category, p.Index)
	}

	return nil
}

// PointRecord is one geographic point together with its derived MGRS value.
// Records are only built through NewPointRecord and never change afterwards.
type PointRecord struct {
	Name     string   `json:"name,omitempty"`
	Category Category `json:"gpxpoint"`
	Lat      Degrees  `json:"latitude"`
	Lon      Degrees  `json:"longitude"`
	MGRS     string   `json:"mgrs"`
	Index    int      `json:"-"`
}

// NewPointRecord builds a validated PointRecord from a raw point and its
// converted MGRS value. The raw point is validated again here; upstream
// validation is not trusted on its own.
func NewPointRecord(raw RawPoint, mgrs string) (PointRecord, error) {
	if err := raw.Validate(); err != nil {
		return PointRecord{}, err
	}

	if mgrs == "" {
		return PointRecord{}, errors.New("empty MGRS value")
	}

	return PointRecord{
		Name:     raw.Name,
		Category: raw.Category,
		Lat:      raw.Lat,
		Lon:      raw.Lon,
		MGRS:     mgrs,
		Index:    raw.Index,
	}, nil
}

// PointCollection holds the converted records of one source file, one
// ordered sequence per category. Each sequence ascends by Index, matching
// the order the points appeared in the source.
type PointCollection struct {
	Waypoints   []PointRecord
	Trackpoints []PointRecord
	Routepoints []PointRecord
}

// ForCategory returns the sequence for the given category.
func (c *PointCollection) ForCategory(cat Category) []PointRecord {
	switch cat {
	case WAYPOINT:
		return c.Waypoints
	case TRACKPOINT:
		return c.Trackpoints
	case ROUTEPOINT:
		return c.Routepoints
	default:
		return nil
	}
}

// Len returns the total number of records across all categories.
func (c *PointCollection) Len() int {
	return len(c.Waypoints) + len(c.Trackpoints) + len(c.Routepoints)
}

// Records returns all records in canonical category order. The returned
// slice is a copy; the collection itself is not exposed to mutation.
func (c *PointCollection) Records() []PointRecord {
	records := make([]PointRecord, 0, c.Len())
	for _, cat := range Categories {
		records = append(records, c.ForCategory(cat)...)
	}

	return records
}
