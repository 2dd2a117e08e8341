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

// Package cli implements the coordex command line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	humanize "github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"m4o.io/coordex"
	"m4o.io/coordex/export"
	"m4o.io/coordex/internal/config"
	"m4o.io/coordex/internal/sniff"
	"m4o.io/coordex/model"
)

var out io.Writer = os.Stdout

var (
	format string
	cfgErr error
)

func init() {
	cfg, err := config.Load()
	if err != nil {
		cfg, cfgErr = config.Default(), err
	}

	ncpu := cfg.Cpus
	if ncpu == 0 {
		ncpu = coordex.DefaultNCpu()
	}

	flags := RootCmd.Flags()
	flags.StringP("file", "f", "", "path of the GPX file to process")
	flags.StringP("coords", "c", "", `"latitude,longitude" pair to convert`)
	flags.StringP("out", "o", "", "write output to the named file instead of stdout")
	flags.VarP(NewFormatValue(cfg.Format, &format), "format", "F", `output format, "json" or "csv"`)
	flags.IntP("indent", "i", cfg.Indent, "indentation width of JSON output")
	flags.Uint16P("cpu", "m", ncpu, "number of CPUs to use for conversion")
}

// RootCmd is the root of the coordex command line interface.
var RootCmd = &cobra.Command{
	Use:   "coordex",
	Short: "Convert GPX point data to MGRS annotated records",
	Long:  "Convert GPX point data to MGRS annotated records",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		if cfgErr != nil {
			log.Fatal(cfgErr)
		}

		flags := cmd.Flags()

		coords, err := flags.GetString("coords")
		if err != nil {
			log.Fatal(err)
		}

		ncpu, err := flags.GetUint16("cpu")
		if err != nil {
			log.Fatal(err)
		}

		if coords != "" {
			ref, err := runCoords(coords, ncpu)
			if err != nil {
				log.Fatal(err)
			}

			fmt.Fprintln(out, ref)

			return
		}

		file, err := flags.GetString("file")
		if err != nil {
			log.Fatal(err)
		}

		if file == "" {
			fmt.Fprintln(out, "No input provided.")

			return
		}

		ct, err := sniff.Detect(file)
		if err != nil {
			log.Fatal(err)
		}
		if ct != sniff.TypeGPX {
			log.Fatal(&coordex.UnsupportedFormatError{Path: file, ContentType: ct})
		}

		f, err := os.Open(file)
		if err != nil {
			log.Fatal(err)
		}

		in, err := WrapInputFile(f)
		if err != nil {
			log.Fatal(err)
		}

		col, err := runFile(cmd.Context(), in, ncpu)
		if err != nil {
			log.Fatal(err)
		}

		if err := in.Close(); err != nil {
			log.Fatal(err)
		}

		indent, err := flags.GetInt("indent")
		if err != nil {
			log.Fatal(err)
		}

		w := out

		outPath, err := flags.GetString("out")
		if err != nil {
			log.Fatal(err)
		}
		if outPath != "" {
			of, err := os.Create(outPath)
			if err != nil {
				log.Fatal(err)
			}

			w = of

			defer func() {
				if err := of.Close(); err != nil {
					log.Fatal(err)
				}
			}()
		}

		if err := render(w, col, format, indent); err != nil {
			log.Fatal(err)
		}

		summarize(os.Stderr, col)
	},
}

func runCoords(coords string, ncpu uint16) (string, error) {
	lat, lon, err := splitCoords(coords)
	if err != nil {
		return "", err
	}

	p := coordex.New(coordex.WithNCpus(ncpu))

	rec, err := p.ProcessCoords(lat, lon)
	if err != nil {
		return "", err
	}

	return rec.MGRS, nil
}

func runFile(ctx context.Context, in io.Reader, ncpu uint16) (*model.PointCollection, error) {
	p := coordex.New(coordex.WithNCpus(ncpu))

	return p.ProcessReader(ctx, in)
}

func splitCoords(coords string) (lat, lon model.Degrees, err error) {
	parts := strings.Split(coords, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("error parsing coordinates %q, expected \"latitude,longitude\"", coords)
	}

	lat, err = model.ParseDegrees(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("error parsing latitude %q: %w", parts[0], err)
	}

	lon, err = model.ParseDegrees(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, fmt.Errorf("error parsing longitude %q: %w", parts[1], err)
	}

	return lat, lon, nil
}

func render(w io.Writer, col *model.PointCollection, format string, indent int) error {
	switch format {
	case FormatCSV:
		return export.WriteCSV(w, col)
	default:
		return export.WriteJSON(w, col, indent)
	}
}

func summarize(w io.Writer, col *model.PointCollection) {
	fmt.Fprintf(w, "Processed %s points (%s waypoints, %s trackpoints, %s routepoints)\n",
		humanize.Comma(int64(col.Len())),
		humanize.Comma(int64(len(col.Waypoints))),
		humanize.Comma(int64(len(col.Trackpoints))),
		humanize.Comma(int64(len(col.Routepoints))))
}
