// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Profcmp compares per-API memory use and elapsed time measured on a
// benchmark backend and on a device backend.
//
// Usage:
//
//	profcmp -gpu benchdir -npu devicedir [-o outdir] [flags]
//
// Each directory must contain the two logs written by the operator
// analysis tools, memory_analyze.log and profile_analyze.log, with
// one record per line:
//
//	<api name>:\t<value>
//
// Memory values are byte counts and time values are microseconds.
// Lines that do not have this form are reported and skipped.
//
// Profcmp writes prof_checking_result.csv to the output directory
// (the current directory by default), with one row per API in the
// benchmark memory log:
//
//	API Name,Bench Memory Used(B),Bench Time(μs),Device Memory Used(B),Device Time(μs),Device/Bench Time Ratio,Device-Bench Memory
//	conv2d,4096,120.5,6144,100.0,0.8298755186721992,2048
//
// The device columns are present only for APIs that also appear in
// the device memory log, and the time columns only for APIs that
// appear in the time logs. The header is taken from the first row;
// if a later row has a different set of columns, profcmp fails
// rather than writing a malformed table.
//
// The -benchmark and -device flags are long forms of -gpu and -npu,
// and -output_path is the long form of -o.
//
// The -threshold flag sets the standard for bench time / device time
// (default 0.95). APIs whose device/bench time ratio exceeds
// 1/threshold are listed as slowdowns by -summary and highlighted by
// -html. The -chart flag writes prof_checking_result.png, a bar chart
// of the time ratios.
//
// The -history flag appends the run to a SQL database given as
// driver:dsn, for example "sqlite3:results.db" or
// "mysql:user:password@tcp(host)/perf". The -label flag names the run.
//
// The -upload flag copies every report file written to a Google Cloud
// Storage location of the form gs://bucket/prefix, using application
// default credentials or the service account key file given by
// -gcs-credentials.
package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"google.golang.org/api/option"

	"golang.org/x/profcmp/history"
	_ "golang.org/x/profcmp/history/sqlite3"
	"golang.org/x/profcmp/internal/fs"
	"golang.org/x/profcmp/internal/fs/gcs"
	"golang.org/x/profcmp/internal/fs/local"
	"golang.org/x/profcmp/profcmp"
	"golang.org/x/profcmp/proflog"
	"golang.org/x/profcmp/report"
)

var exit = os.Exit // replaced during testing

// errUsage is returned by run when the command line is invalid.
var errUsage = errors.New("usage error")

func main() {
	log.SetPrefix("profcmp: ")
	log.SetFlags(0)
	if err := run(os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		if errors.Is(err, errUsage) {
			exit(2)
		}
		log.Fatal(err)
	}
}

type options struct {
	benchDir, deviceDir, outPath string

	threshold   float64
	summary     bool
	html, chart bool

	history, label string

	upload, gcsCredentials string
}

func (o *options) register(flags *flag.FlagSet) {
	flags.StringVar(&o.benchDir, "benchmark", "", "`dir`ectory holding the benchmark logs (required)")
	flags.StringVar(&o.benchDir, "gpu", "", "short for -benchmark")
	flags.StringVar(&o.deviceDir, "device", "", "`dir`ectory holding the device logs (required)")
	flags.StringVar(&o.deviceDir, "npu", "", "short for -device")
	flags.StringVar(&o.outPath, "output_path", "", "write results to `dir` (default current directory)")
	flags.StringVar(&o.outPath, "o", "", "short for -output_path")
	flags.Float64Var(&o.threshold, "threshold", profcmp.DefaultTimeRatio, "bench time / device time `ratio` below which an API is a slowdown")
	flags.BoolVar(&o.summary, "summary", false, "print a summary of the comparison")
	flags.BoolVar(&o.html, "html", false, "also write the results as an HTML page")
	flags.BoolVar(&o.chart, "chart", false, "also write a PNG chart of the time ratios")
	flags.StringVar(&o.history, "history", "", "append the run to the SQL database `driver:dsn`")
	flags.StringVar(&o.label, "label", "", "`label` of the run recorded by -history")
	flags.StringVar(&o.upload, "upload", "", "copy result files to `gs://bucket/prefix`")
	flags.StringVar(&o.gcsCredentials, "gcs-credentials", "", "service account key `file` for -upload")
}

// A missingFilesError reports input logs that do not exist.
type missingFilesError struct {
	paths []string
}

func (e *missingFilesError) Error() string {
	return "log file not found: " + strings.Join(e.paths, ", ")
}

func (e *missingFilesError) Unwrap() error {
	return os.ErrNotExist
}

// An output is a rendered result file.
type output struct {
	name string
	data []byte
}

func run(w, wErr io.Writer, args []string) error {
	var o options
	flags := flag.NewFlagSet("profcmp", flag.ContinueOnError)
	flags.SetOutput(wErr)
	flags.Usage = func() {
		fmt.Fprintf(flags.Output(), "usage: profcmp -gpu benchdir -npu devicedir [-o outdir] [flags]\n")
		flags.PrintDefaults()
	}
	o.register(flags)
	if err := flags.Parse(args); err != nil {
		// flags has already printed the error and usage.
		return errUsage
	}
	if flags.NArg() > 0 || o.benchDir == "" || o.deviceDir == "" {
		flags.Usage()
		return errUsage
	}
	if !(o.threshold > 0) {
		fmt.Fprintf(wErr, "-threshold must be positive\n")
		return errUsage
	}
	logger := log.New(wErr, "profcmp: ", 0)
	ctx := context.Background()

	outDir := o.outPath
	if outDir == "" {
		outDir = "."
	}
	outDir, err := filepath.Abs(outDir)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(outDir, 0777); err != nil {
		return err
	}
	logger.Printf("Compare task result will be saved in %s", filepath.Join(outDir, profcmp.ResultFileName))

	in, err := readInputs(logger, o.benchDir, o.deviceDir)
	if err != nil {
		return err
	}
	tab, err := profcmp.Combine(in)
	if err != nil {
		return err
	}
	sum := profcmp.Summarize(tab, o.threshold)

	outputs, err := render(logger, &o, tab, sum)
	if err != nil {
		return err
	}
	meta := map[string]string{
		"benchmark": o.benchDir,
		"device":    o.deviceDir,
	}
	if o.label != "" {
		meta["label"] = o.label
	}
	if err := saveAll(ctx, local.NewFS(outDir), outputs, meta); err != nil {
		return err
	}

	if o.summary {
		var buf bytes.Buffer
		if err := report.WriteText(&buf, tab, sum); err != nil {
			return err
		}
		if _, err := w.Write(buf.Bytes()); err != nil {
			return err
		}
	}
	if o.history != "" {
		if err := record(ctx, &o, tab); err != nil {
			return fmt.Errorf("history: %w", err)
		}
	}
	if o.upload != "" {
		if err := upload(ctx, &o, outputs, meta); err != nil {
			return fmt.Errorf("upload: %w", err)
		}
		logger.Printf("uploaded %d files to %s", len(outputs), o.upload)
	}
	return nil
}

// readInputs parses the four logs. It checks that all of them exist
// before reading any.
func readInputs(logger *log.Logger, benchDir, deviceDir string) (profcmp.Inputs, error) {
	var in profcmp.Inputs
	logs := []struct {
		path string
		dst  **proflog.Log
	}{
		{filepath.Join(benchDir, proflog.MemoryLogName), &in.BenchMemory},
		{filepath.Join(benchDir, proflog.ProfileLogName), &in.BenchTime},
		{filepath.Join(deviceDir, proflog.MemoryLogName), &in.DeviceMemory},
		{filepath.Join(deviceDir, proflog.ProfileLogName), &in.DeviceTime},
	}

	var missing []string
	for _, l := range logs {
		if _, err := os.Stat(l.path); errors.Is(err, os.ErrNotExist) {
			logger.Printf("log file not found: %s", l.path)
			missing = append(missing, l.path)
		}
	}
	if len(missing) > 0 {
		return in, &missingFilesError{missing}
	}

	for _, l := range logs {
		parsed, syntaxErrs, err := proflog.ReadFile(l.path)
		if err != nil {
			return in, err
		}
		for _, e := range syntaxErrs {
			logger.Print(e)
		}
		*l.dst = parsed
	}
	return in, nil
}

// render produces the CSV report and any optional result files.
// Nothing is rendered if the CSV report cannot be.
func render(logger *log.Logger, o *options, tab *profcmp.Table, sum *profcmp.Summary) ([]output, error) {
	var buf bytes.Buffer
	if err := report.WriteCSV(&buf, tab); err != nil {
		return nil, err
	}
	outputs := []output{{profcmp.ResultFileName, buf.Bytes()}}

	if o.html {
		var buf bytes.Buffer
		if err := report.WriteHTML(&buf, tab, sum); err != nil {
			return nil, err
		}
		outputs = append(outputs, output{profcmp.ResultBaseName + ".html", buf.Bytes()})
	}
	if o.chart {
		var buf bytes.Buffer
		switch err := report.WriteChart(&buf, tab, sum); {
		case errors.Is(err, report.ErrNoRatios):
			logger.Printf("skipping chart: %v", err)
		case err != nil:
			return nil, err
		default:
			outputs = append(outputs, output{profcmp.ResultBaseName + ".png", buf.Bytes()})
		}
	}
	return outputs, nil
}

func saveAll(ctx context.Context, fsys fs.FS, outputs []output, meta map[string]string) error {
	for _, out := range outputs {
		if err := report.Save(ctx, fsys, out.name, out.data, meta); err != nil {
			return err
		}
	}
	return nil
}

func record(ctx context.Context, o *options, tab *profcmp.Table) error {
	driver, dsn, err := history.ParseDSN(o.history)
	if err != nil {
		return err
	}
	db, err := history.OpenSQL(driver, dsn)
	if err != nil {
		return err
	}
	defer db.Close()
	r := &history.Run{
		Label:     o.label,
		BenchDir:  o.benchDir,
		DeviceDir: o.deviceDir,
		Created:   time.Now(),
	}
	_, err = db.InsertRun(ctx, r, tab)
	return err
}

func upload(ctx context.Context, o *options, outputs []output, meta map[string]string) error {
	bucket, prefix, err := gcs.ParseURL(o.upload)
	if err != nil {
		return err
	}
	var opts []option.ClientOption
	if o.gcsCredentials != "" {
		opts = append(opts, option.WithCredentialsFile(o.gcsCredentials))
	}
	fsys, err := gcs.NewFS(ctx, bucket, prefix, opts...)
	if err != nil {
		return err
	}
	return saveAll(ctx, fsys, outputs, meta)
}
