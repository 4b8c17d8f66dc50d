// Package dataset loads the static chart data shown by the bar, line and pie
// views from YAML or XLSX files.
package dataset

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kpumuk/lazychart/internal/chart/barchart"
	"github.com/kpumuk/lazychart/internal/chart/linechart"
	"github.com/kpumuk/lazychart/internal/chart/piechart"
	"github.com/kpumuk/lazychart/internal/charterr"
)

//go:embed sample.yaml
var sampleYAML []byte

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Dataset holds data for the static charts. Empty colors are filled from the
// theme palette by WithPalette.
type Dataset struct {
	Bar         []barchart.Datum
	Line        []linechart.Datum
	LineColors  map[string]string
	Pie         []piechart.Datum
	InnerRadius float64
}

type fileValue struct {
	Name  string   `yaml:"name"`
	Value *float64 `yaml:"value"`
	Color string   `yaml:"color"`
}

type fileDatum struct {
	Label  string      `yaml:"label"`
	Values []fileValue `yaml:"values"`
}

type fileLine struct {
	Colors map[string]string `yaml:"colors"`
	Data   []fileDatum       `yaml:"data"`
}

type fileSlice struct {
	Label string  `yaml:"label"`
	Value float64 `yaml:"value"`
	Color string  `yaml:"color"`
}

type filePie struct {
	InnerRadius float64     `yaml:"innerRadius"`
	Slices      []fileSlice `yaml:"slices"`
}

type file struct {
	Bar  []fileDatum `yaml:"bar"`
	Line fileLine    `yaml:"line"`
	Pie  filePie     `yaml:"pie"`
}

// Sample returns the built-in dataset.
func Sample() Dataset {
	ds, err := DecodeYAML(bytes.NewReader(sampleYAML))
	if err != nil {
		panic(fmt.Sprintf("dataset: embedded sample: %v", err))
	}
	return ds
}

// Load reads a dataset file, picking the decoder by extension.
func Load(path string) (Dataset, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return LoadXLSX(path)
	case ".yaml", ".yml":
		f, err := os.Open(path)
		if err != nil {
			return Dataset{}, err
		}
		defer f.Close()
		ds, err := DecodeYAML(f)
		if err != nil {
			return Dataset{}, fmt.Errorf("%s: %w", path, err)
		}
		return ds, nil
	default:
		return Dataset{}, fmt.Errorf("%s: unsupported dataset format %q", path, filepath.Ext(path))
	}
}

// DecodeYAML decodes a dataset document. Unknown keys are rejected.
func DecodeYAML(r io.Reader) (Dataset, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f file
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return Dataset{}, fmt.Errorf("decode dataset: %w", err)
	}
	return f.dataset(), nil
}

func (f file) dataset() Dataset {
	ds := Dataset{
		LineColors:  map[string]string{},
		InnerRadius: f.Pie.InnerRadius,
	}
	for _, d := range f.Bar {
		bd := barchart.Datum{Label: d.Label}
		for _, v := range d.Values {
			bv := barchart.Value{Name: v.Name, Color: v.Color}
			if v.Value != nil {
				bv.Value = *v.Value
			}
			bd.Values = append(bd.Values, bv)
		}
		ds.Bar = append(ds.Bar, bd)
	}
	for _, d := range f.Line.Data {
		ld := linechart.Datum{Label: d.Label}
		for _, v := range d.Values {
			lv := linechart.Value{Name: v.Name, Null: v.Value == nil}
			if v.Value != nil {
				lv.Value = *v.Value
			}
			ld.Values = append(ld.Values, lv)
		}
		ds.Line = append(ds.Line, ld)
	}
	for name, color := range f.Line.Colors {
		ds.LineColors[name] = color
	}
	for _, s := range f.Pie.Slices {
		ds.Pie = append(ds.Pie, piechart.Datum{Label: s.Label, Value: s.Value, Color: s.Color})
	}
	return ds
}

// Validate checks every section with the chart validators and reports all
// failures at once.
func (ds Dataset) Validate() error {
	var errs []error
	if err := barchart.Validate(ds.Bar); err != nil {
		errs = append(errs, fmt.Errorf("bar: %w", err))
	}
	if err := linechart.Validate(ds.Line); err != nil {
		errs = append(errs, fmt.Errorf("line: %w", err))
	}
	if err := piechart.Validate(ds.Pie, ds.InnerRadius); err != nil {
		errs = append(errs, fmt.Errorf("pie: %w", err))
	}
	for i, d := range ds.Bar {
		for j, v := range d.Values {
			if err := checkColor(fmt.Sprintf("data[%d].values[%d].color", i, j), v.Color); err != nil {
				errs = append(errs, fmt.Errorf("bar: %w", err))
			}
		}
	}
	for name, c := range ds.LineColors {
		if err := checkColor(fmt.Sprintf("colors[%s]", name), c); err != nil {
			errs = append(errs, fmt.Errorf("line: %w", err))
		}
	}
	for i, d := range ds.Pie {
		if err := checkColor(fmt.Sprintf("data[%d].color", i), d.Color); err != nil {
			errs = append(errs, fmt.Errorf("pie: %w", err))
		}
	}
	return errors.Join(errs...)
}

var errColor = errors.New("color must be #rgb or #rrggbb")

func checkColor(field, c string) error {
	if c == "" || hexColor.MatchString(c) {
		return nil
	}
	return charterr.NewInvalidInput(field, c, errColor)
}

// WithPalette returns a copy with empty colors filled from palette. Bar and
// line series are numbered by first appearance so a name keeps its color
// across categories. Pie slices are numbered by position.
func (ds Dataset) WithPalette(palette func(i int) string) Dataset {
	out := Dataset{
		Bar:         make([]barchart.Datum, len(ds.Bar)),
		Line:        ds.Line,
		LineColors:  make(map[string]string, len(ds.LineColors)),
		Pie:         make([]piechart.Datum, len(ds.Pie)),
		InnerRadius: ds.InnerRadius,
	}

	series := map[string]string{}
	for i, d := range ds.Bar {
		values := make([]barchart.Value, len(d.Values))
		for j, v := range d.Values {
			if v.Color == "" {
				c, ok := series[v.Name]
				if !ok {
					c = palette(len(series))
					series[v.Name] = c
				}
				v.Color = c
			}
			values[j] = v
		}
		out.Bar[i] = barchart.Datum{Label: d.Label, Values: values}
	}

	for name, c := range ds.LineColors {
		out.LineColors[name] = c
	}
	for k, s := range linechart.BuildSeries(ds.Line, nil) {
		if out.LineColors[s.Name] == "" {
			out.LineColors[s.Name] = palette(k)
		}
	}

	for i, d := range ds.Pie {
		if d.Color == "" {
			d.Color = palette(i)
		}
		out.Pie[i] = d
	}
	return out
}
