// Package report renders benchmark results.
//
// The plain format is the contract with scripts: exactly one line holding the
// average seconds per pass. Everything else (logs, warnings) goes to stderr.
package report

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/dustin/go-humanize"
	"github.com/katalvlaran/normbench/bench"
	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"
)

// ErrNilResult is returned by Write when there is nothing to render.
var ErrNilResult = errors.New("report: nil result")

// Write renders r to w in format f.
func Write(w io.Writer, r *bench.Result, f Format) error {
	if r == nil {
		return ErrNilResult
	}
	switch f {
	case FormatPlain, "":
		return writePlain(w, r)
	case FormatTable:
		return writeTable(w, r)
	case FormatYAML:
		return writeYAML(w, r)
	}

	return errors.Wrapf(ErrUnknownFormat, "%q", string(f))
}

// Seconds formats v with the shortest representation that round-trips.
func Seconds(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func writePlain(w io.Writer, r *bench.Result) error {
	_, err := io.WriteString(w, Seconds(r.AvgSeconds)+"\n")
	return errors.Wrap(err, "write plain report")
}

func writeYAML(w io.Writer, r *bench.Result) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return errors.Wrap(err, "encode yaml report")
	}
	return errors.Wrap(enc.Close(), "close yaml report")
}

func writeTable(w io.Writer, r *bench.Result) error {
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"field", "value"})
	table.AppendBulk(tableRows(r))
	table.Render()

	return nil
}

func tableRows(r *bench.Result) [][]string {
	rows := [][]string{
		{"run id", r.RunID},
		{"workload", r.Workload},
		{"shape", fmt.Sprintf("%s x %s", humanize.Comma(int64(r.Rows)), humanize.Comma(int64(r.Cols)))},
		{"seed", strconv.FormatInt(r.Seed, 10)},
		{"warm-up passes", strconv.Itoa(r.Warmup)},
		{"passes", strconv.Itoa(r.Passes)},
		{"total", r.Total.Round(time.Microsecond).String()},
		{"avg seconds/pass", Seconds(r.AvgSeconds)},
		{"min", Seconds(r.Summary.Min)},
		{"median", Seconds(r.Summary.Median)},
		{"p95", Seconds(r.Summary.P95)},
		{"max", Seconds(r.Summary.Max)},
		{"stddev", Seconds(r.Summary.StdDev)},
		{"items/pass", humanize.Comma(int64(r.Items))},
		{"degenerate rows", humanize.Comma(int64(r.DegenerateRows))},
	}
	if r.Footprint > 0 {
		rows = append(rows, []string{"footprint", humanize.IBytes(r.Footprint)})
	}
	if r.Host != "" {
		rows = append(rows, []string{"host", r.Host})
	}

	return rows
}
