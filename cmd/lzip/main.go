// SPDX-License-Identifier: MIT
// Copyright (c) 2026 lzipgo
// Source: github.com/lzipgo/lzip

// Command lzip is a thin driver over the lzip package: it maps command
// line flags to CompressOptions/DecompressOptions, streams files
// through Writer/Reader, and converts library errors into the exit
// status convention spec.md §6 defines. Flag layout (a flat set of
// package-level *flag.Value vars plus a custom flag.Usage) follows the
// teacher corpus's cmd/gameid (ZaparooProject-go-gameid).
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/lzipgo/lzip"
)

var (
	decompress = flag.Bool("d", false, "decompress")
	keep       = flag.Bool("k", false, "keep (don't delete) input files")
	force      = flag.Bool("f", false, "overwrite existing output files")
	stdout     = flag.Bool("c", false, "write to standard output, keep input files")
	list       = flag.Bool("l", false, "list member information instead of (de)compressing")
	test       = flag.Bool("t", false, "test member integrity instead of decompressing")
	output     = flag.String("o", "", "output file (single-file mode only)")
	level      = flag.Int("level", 6, "compression level 0-9")
	memberMiB  = flag.Int("member-size-mib", 0, "member size cap in MiB (0 = library default)")
	trailing   = flag.String("trailing", "strict", "trailing-data policy: strict, ignore, loose")
	verbose    = flag.Bool("v", false, "verbose diagnostics on stderr")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] [file...]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Compresses files to lzip (.lz) format, or decompresses with -d.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	log := newLogger(*verbose)
	policy, err := parseTrailingPolicy(*trailing)
	if err != nil {
		fmt.Fprintf(os.Stderr, "lzip: %v\n", err)
		os.Exit(1)
	}

	args := flag.Args()
	if len(args) == 0 {
		args = []string{"-"}
	}

	switch {
	case *list:
		os.Exit(runList(log, args, policy))
	case *test:
		os.Exit(runTest(log, args, policy))
	default:
		os.Exit(runCodec(log, args, policy))
	}
}

func newLogger(verbose bool) zerolog.Logger {
	lvl := zerolog.WarnLevel
	if verbose {
		lvl = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(lvl).With().Timestamp().Logger()
}

func parseTrailingPolicy(s string) (lzip.TrailingPolicy, error) {
	switch strings.ToLower(s) {
	case "strict", "":
		return lzip.TrailingStrict, nil
	case "ignore":
		return lzip.TrailingIgnore, nil
	case "loose":
		return lzip.TrailingLoose, nil
	default:
		return 0, fmt.Errorf("unknown -trailing value %q", s)
	}
}

// exitStatus maps a returned error to spec.md §6's exit-status
// convention: 1 environmental, 2 corrupt input, 3 internal.
func exitStatus(err error) int {
	if err == nil {
		return 0
	}
	var lzErr *lzip.Error
	if !asLzipError(err, &lzErr) {
		return 1
	}
	switch lzErr.Kind {
	case lzip.KindIo, lzip.KindOutOfMemory:
		return 1
	case lzip.KindInternalError:
		return 3
	default:
		return 2
	}
}

func asLzipError(err error, target **lzip.Error) bool {
	for err != nil {
		if e, ok := err.(*lzip.Error); ok {
			*target = e
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}

func runCodec(log zerolog.Logger, args []string, policy lzip.TrailingPolicy) int {
	worst := 0
	for _, path := range args {
		var err error
		if *decompress {
			err = decompressFile(log, path, policy)
		} else {
			err = compressFile(log, path)
		}
		if st := exitStatus(err); st != 0 {
			log.Error().Str("file", path).Err(err).Msg("operation failed")
			if st > worst {
				worst = st
			}
		}
	}
	return worst
}

func compressFile(log zerolog.Logger, path string) error {
	in, closeIn, err := openInput(path)
	if err != nil {
		return err
	}
	defer closeIn()

	out, outPath, closeOut, err := openOutput(path, ".lz")
	if err != nil {
		return err
	}
	defer closeOut()

	opts := &lzip.CompressOptions{Level: *level}
	if *memberMiB > 0 {
		opts.MemberSize = uint64(*memberMiB) << 20
	}

	w := lzip.NewWriter(out, opts)
	n, err := io.Copy(w, in)
	if err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	log.Debug().Str("file", path).Int64("bytes_in", n).Msg("compressed")
	cleanupSource(path, outPath)
	return nil
}

func decompressFile(log zerolog.Logger, path string, policy lzip.TrailingPolicy) error {
	in, closeIn, err := openInput(path)
	if err != nil {
		return err
	}
	defer closeIn()

	var out io.Writer
	var realOutPath string
	var closeOut func()
	switch {
	case *stdout || path == "-":
		out, closeOut = os.Stdout, func() {}
	case *output != "":
		out, realOutPath, closeOut, err = openOutputPath(*output)
	default:
		out, realOutPath, closeOut, err = openOutputPath(strings.TrimSuffix(path, ".lz"))
	}
	if err != nil {
		return err
	}
	defer closeOut()

	r, err := lzip.NewReader(in, &lzip.DecompressOptions{Trailing: policy})
	if err != nil {
		return err
	}
	n, err := io.Copy(out, r)
	if err != nil {
		return err
	}
	log.Debug().Str("file", path).Int64("bytes_out", n).Msg("decompressed")
	cleanupSource(path, realOutPath)
	return nil
}

func runList(log zerolog.Logger, args []string, policy lzip.TrailingPolicy) int {
	worst := 0
	for _, path := range args {
		in, closeIn, err := openInput(path)
		if err != nil {
			log.Error().Str("file", path).Err(err).Msg("list failed")
			worst = max(worst, exitStatus(err))
			continue
		}
		stats, err := lzip.Scan(in, policy)
		closeIn()
		if err != nil {
			log.Error().Str("file", path).Err(err).Msg("list failed")
			worst = max(worst, exitStatus(err))
			continue
		}
		printStats(path, stats)
	}
	return worst
}

func runTest(log zerolog.Logger, args []string, policy lzip.TrailingPolicy) int {
	worst := 0
	for _, path := range args {
		in, closeIn, err := openInput(path)
		if err != nil {
			log.Error().Str("file", path).Err(err).Msg("test failed")
			worst = max(worst, exitStatus(err))
			continue
		}
		_, err = lzip.Test(in, policy)
		closeIn()
		st := exitStatus(err)
		if st != 0 {
			log.Error().Str("file", path).Err(err).Msg("test failed")
			worst = max(worst, st)
			continue
		}
		fmt.Printf("%s: ok\n", path)
	}
	return worst
}

func printStats(path string, stats []lzip.Stats) {
	var totalIn, totalOut uint64
	for i, s := range stats {
		fmt.Printf("%s member %d: %d -> %d bytes (ratio %.2f), dict=%d, crc=%08x\n",
			path, i, s.UncompressedSize, s.CompressedSize, s.Ratio(), s.DictionarySize, s.CRC32)
		totalIn += s.UncompressedSize
		totalOut += s.CompressedSize
	}
	if len(stats) > 1 {
		fmt.Printf("%s total: %d -> %d bytes\n", path, totalIn, totalOut)
	}
}

func openInput(path string) (io.Reader, func(), error) {
	if path == "-" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}

func openOutput(inPath, suffix string) (io.Writer, string, func(), error) {
	if *stdout || *output == "" && inPath == "-" {
		return os.Stdout, "", func() {}, nil
	}
	outPath := *output
	if outPath == "" {
		outPath = inPath + suffix
	}
	return openOutputPath(outPath)
}

func openOutputPath(outPath string) (io.Writer, string, func(), error) {
	if *stdout {
		return os.Stdout, "", func() {}, nil
	}
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !*force {
		flags |= os.O_EXCL
	}
	f, err := os.OpenFile(outPath, flags, 0o644)
	if err != nil {
		return nil, "", nil, err
	}
	return f, outPath, func() { f.Close() }, nil
}

func cleanupSource(inPath, outPath string) {
	if *keep || *stdout || inPath == "-" || outPath == "" {
		return
	}
	os.Remove(inPath)
}
