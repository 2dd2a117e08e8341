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

// Package gpx parses GPX documents into raw coordinate points, one ordered
// group per point category.
package gpx

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"

	"m4o.io/coordex/model"
)

// Document holds the raw points of one GPX source, grouped by category.
// Each group preserves encounter order; track segments and routes are
// flattened into one sequence per category.
type Document struct {
	Waypoints   []model.RawPoint
	Trackpoints []model.RawPoint
	Routepoints []model.RawPoint
}

// Len returns the total number of points across all groups.
func (d *Document) Len() int {
	return len(d.Waypoints) + len(d.Trackpoints) + len(d.Routepoints)
}

// ParseError reports a structurally invalid or incomplete GPX document.
// Element names the offending element and Offset is the byte position of
// the decoder when the problem was found.
type ParseError struct {
	Element string
	Offset  int64
	Err     error
}

func (e *ParseError) Error() string {
	if e.Element == "" {
		return fmt.Sprintf("gpx: parse error at offset %d: %v", e.Offset, e.Err)
	}

	return fmt.Sprintf("gpx: invalid <%s> at offset %d: %v", e.Element, e.Offset, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

var (
	errMissingLat = errors.New("missing required lat attribute")
	errMissingLon = errors.New("missing required lon attribute")
	errNoRoot     = errors.New("missing gpx root element")
)

// categoryFor maps a GPX element name to its point category. The bool is
// false for elements that do not carry coordinates.
func categoryFor(name string) (model.Category, bool) {
	switch name {
	case "wpt":
		return model.WAYPOINT, true
	case "trkpt":
		return model.TRACKPOINT, true
	case "rtept":
		return model.ROUTEPOINT, true
	default:
		return 0, false
	}
}

// Parse reads a GPX document from r and returns its raw points. The
// result is all-or-nothing; the first malformed element aborts the parse
// and no partial groups are returned. Namespaces are matched on local
// names, so any GPX schema version is accepted.
func Parse(ctx context.Context, r io.Reader) (*Document, error) {
	dec := xml.NewDecoder(r)

	doc := &Document{}

	var (
		sawRoot bool
		current *model.RawPoint // point element being read, if any
		inName  bool
	)

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return nil, &ParseError{Offset: dec.InputOffset(), Err: err}
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if !sawRoot {
				if t.Name.Local != "gpx" {
					return nil, &ParseError{Element: t.Name.Local, Offset: dec.InputOffset(), Err: errNoRoot}
				}

				sawRoot = true

				continue
			}

			if cat, ok := categoryFor(t.Name.Local); ok {
				point, err := parsePoint(t, cat, doc)
				if err != nil {
					return nil, &ParseError{Element: t.Name.Local, Offset: dec.InputOffset(), Err: err}
				}

				current = point

				continue
			}

			inName = current != nil && t.Name.Local == "name"

		case xml.EndElement:
			inName = false

			if current != nil {
				if _, ok := categoryFor(t.Name.Local); ok {
					doc.append(*current)

					current = nil
				}
			}

		case xml.CharData:
			if inName && current != nil {
				current.Name += string(t)
			}
		}
	}

	if !sawRoot {
		return nil, &ParseError{Offset: dec.InputOffset(), Err: errNoRoot}
	}

	if current != nil {
		// decoder guarantees balanced elements, so this is unreachable
		// unless the token stream was truncated
		return nil, &ParseError{Offset: dec.InputOffset(), Err: io.ErrUnexpectedEOF}
	}

	return doc, nil
}

// parsePoint extracts the coordinate attributes of a point element. The
// sequence index is the current length of the category's group.
func parsePoint(start xml.StartElement, cat model.Category, doc *Document) (*model.RawPoint, error) {
	var (
		lat, lon       model.Degrees
		sawLat, sawLon bool
	)

	for _, attr := range start.Attr {
		switch attr.Name.Local {
		case "lat":
			d, err := model.ParseDegrees(attr.Value)
			if err != nil {
				return nil, fmt.Errorf("non-numeric lat %q: %w", attr.Value, err)
			}

			lat, sawLat = d, true
		case "lon":
			d, err := model.ParseDegrees(attr.Value)
			if err != nil {
				return nil, fmt.Errorf("non-numeric lon %q: %w", attr.Value, err)
			}

			lon, sawLon = d, true
		}
	}

	if !sawLat {
		return nil, errMissingLat
	}

	if !sawLon {
		return nil, errMissingLon
	}

	return &model.RawPoint{
		Category: cat,
		Lat:      lat,
		Lon:      lon,
		Index:    doc.groupLen(cat),
	}, nil
}

func (d *Document) groupLen(cat model.Category) int {
	switch cat {
	case model.WAYPOINT:
		return len(d.Waypoints)
	case model.TRACKPOINT:
		return len(d.Trackpoints)
	default:
		return len(d.Routepoints)
	}
}

func (d *Document) append(p model.RawPoint) {
	switch p.Category {
	case model.WAYPOINT:
		d.Waypoints = append(d.Waypoints, p)
	case model.TRACKPOINT:
		d.Trackpoints = append(d.Trackpoints, p)
	case model.ROUTEPOINT:
		d.Routepoints = append(d.Routepoints, p)
	}
}
