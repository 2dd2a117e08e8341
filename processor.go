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

// Package coordex extracts coordinate points from geospatial source files,
// converts them to MGRS, and assembles ordered, validated point records.
package coordex

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/destel/rill"

	"m4o.io/coordex/gpx"
	"m4o.io/coordex/internal/sniff"
	"m4o.io/coordex/mgrs"
	"m4o.io/coordex/model"
)

// Processor drives the parse, convert, and assemble pipeline for one
// source file per call. A Processor is stateless between calls and safe
// for concurrent use.
type Processor struct {
	cfg processorOptions
}

// New returns a new processor, configured with options.
func New(opts ...Option) *Processor {
	cfg := defaultProcessorConfig()

	for _, opt := range opts {
		opt(&cfg)
	}

	return &Processor{cfg: cfg}
}

// Process reads the geospatial file at path and returns the converted
// point records, one ordered sequence per category. The content type is
// checked before parsing begins; the file handle is owned by this call
// and closed on every path. The first failure aborts the request and no
// partial collection is returned.
func (p *Processor) Process(ctx context.Context, path string) (*model.PointCollection, error) {
	contentType, err := p.cfg.detect(path)
	if err != nil {
		return nil, fmt.Errorf("error detecting content type: %w", err)
	}

	if contentType != sniff.TypeGPX {
		return nil, &UnsupportedFormatError{Path: path, ContentType: contentType}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening %s: %w", path, err)
	}
	defer f.Close()

	return p.ProcessReader(ctx, f)
}

// ProcessReader runs the pipeline over an already-open source stream.
// Compression framing is unwrapped transparently; the caller keeps
// ownership of the reader.
func (p *Processor) ProcessReader(ctx context.Context, r io.Reader) (*model.PointCollection, error) {
	rdr, err := sniff.WrapReader(bufio.NewReader(r))
	if err != nil {
		return nil, err
	}

	doc, err := gpx.Parse(ctx, rdr)
	if err != nil {
		slog.Error("unable to parse source", "error", err)

		return nil, err
	}

	col := &model.PointCollection{}

	if col.Waypoints, err = p.convertGroup(doc.Waypoints); err != nil {
		return nil, err
	}

	if col.Trackpoints, err = p.convertGroup(doc.Trackpoints); err != nil {
		return nil, err
	}

	if col.Routepoints, err = p.convertGroup(doc.Routepoints); err != nil {
		return nil, err
	}

	return col, nil
}

// ProcessCoords converts a single ad-hoc coordinate pair, bypassing the
// parser. The record is categorized as a waypoint with sequence index 0.
func (p *Processor) ProcessCoords(lat, lon model.Degrees) (model.PointRecord, error) {
	return p.assemble(model.RawPoint{Category: model.WAYPOINT, Lat: lat, Lon: lon})
}

// convertGroup converts one category's raw points concurrently. Results
// are collected in input order, so scheduling is never observable in the
// output sequence, and the first error discards the rest.
func (p *Processor) convertGroup(raws []model.RawPoint) ([]model.PointRecord, error) {
	points := rill.FromSlice(raws, nil)
	records := rill.OrderedMap(points, int(p.cfg.nCPU), p.assemble)

	return rill.ToSlice(records)
}

// assemble converts a raw point and builds its validated record.
func (p *Processor) assemble(raw model.RawPoint) (model.PointRecord, error) {
	code, err := mgrs.FromLatLon(raw.Lat, raw.Lon)
	if err != nil {
		slog.Error("unable to convert point", "category", raw.Category, "index", raw.Index, "error", err)

		return model.PointRecord{}, &AssemblyError{Category: raw.Category, Index: raw.Index, Err: err}
	}

	record, err := model.NewPointRecord(raw, code)
	if err != nil {
		return model.PointRecord{}, &AssemblyError{Category: raw.Category, Index: raw.Index, Err: err}
	}

	return record, nil
}
