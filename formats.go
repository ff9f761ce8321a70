package main

import (
	"fmt"
	"io"
	"math/big"
	"strings"

	"github.com/goccy/go-json"
	"github.com/hyp3rd/ewrap"
)

// DefaultUnit — подпись единиц в отчёте. Настоящая единица зависит от того, кто писал лог.
const DefaultUnit = "nanoseconds"

// Форматы отчёта.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// ReportFormats перечисляет поддерживаемые форматы отчёта.
var ReportFormats = []string{FormatText, FormatJSON}

// formatLine возвращает строку отчёта для одной категории.
func formatLine(c *CategoryStats, unit string) string {
	return fmt.Sprintf("%s -> Average: %.2f %s, Max: %d, Min: %d, Std Dev: %.2f",
		c.Name, c.Average(), unit, c.Max, c.Min, c.StdDev())
}

// textLines возвращает строки текстового отчёта в порядке первого появления категорий.
func textLines(r *Report, unit string) []string {
	lines := make([]string, 0, len(r.Categories))
	for _, c := range r.Categories {
		lines = append(lines, formatLine(c, unit))
	}
	return lines
}

type jsonCategory struct {
	Category string   `json:"category"`
	Count    int      `json:"count"`
	Sum      *big.Int `json:"sum"`
	Average  float64  `json:"average"`
	Max      int64    `json:"max"`
	Min      int64    `json:"min"`
	StdDev   float64  `json:"std_dev"`
}

type jsonReport struct {
	Unit       string         `json:"unit"`
	Lines      int            `json:"lines"`
	Matched    int            `json:"matched"`
	Categories []jsonCategory `json:"categories"`
}

// WriteReport печатает отчёт в w в заданном формате.
func WriteReport(w io.Writer, r *Report, format, unit string) error {
	switch format {
	case FormatText, "":
		for _, line := range textLines(r, unit) {
			if _, err := fmt.Fprintln(w, line); err != nil {
				return ewrap.Wrap(err, "write report")
			}
		}
		return nil

	case FormatJSON:
		out := jsonReport{
			Unit:       unit,
			Lines:      r.Lines,
			Matched:    r.Matched,
			Categories: make([]jsonCategory, 0, len(r.Categories)),
		}
		for _, c := range r.Categories {
			out.Categories = append(out.Categories, jsonCategory{
				Category: c.Name,
				Count:    c.Count,
				Sum:      c.Sum,
				Average:  c.Average(),
				Max:      c.Max,
				Min:      c.Min,
				StdDev:   c.StdDev(),
			})
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			return ewrap.Wrap(err, "encode json report")
		}
		return nil

	default:
		return ewrap.Wrapf(ErrUnknownFormat, "%q (поддерживаются: %s)", format, strings.Join(ReportFormats, ", "))
	}
}
