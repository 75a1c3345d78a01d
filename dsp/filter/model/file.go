package model

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// frfHeader is the tag line that opens a legacy FRF text file.
const frfHeader = "[FRF]"

// ErrBadHeader is returned when an FRF file does not start with the header tag.
var ErrBadHeader = errors.New("model: missing [FRF] header tag")

// ReadFRF loads a frequency-response curve from a legacy FRF text file:
// the [FRF] header tag on the first content line, then one
// "frequency magnitude" pair per line (Hz and dB, whitespace separated).
// Blank lines and #-comments are ignored.
func ReadFRF(path string) ([]Point, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("model: open FRF file: %w", err)
	}
	defer f.Close()

	points, err := parseFRF(f)
	if err != nil {
		return nil, fmt.Errorf("model: %s: %w", path, err)
	}
	return points, nil
}

func parseFRF(r io.Reader) ([]Point, error) {
	scanner := bufio.NewScanner(r)

	var points []Point
	sawHeader := false
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !sawHeader {
			if line != frfHeader {
				return nil, ErrBadHeader
			}
			sawHeader = true
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf("line %d: want 2 fields, got %d", lineNo, len(fields))
		}
		freq, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: bad frequency %q: %w", lineNo, fields[0], err)
		}
		mag, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: bad magnitude %q: %w", lineNo, fields[1], err)
		}
		points = append(points, Point{Frequency: freq, Magnitude: mag})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if !sawHeader {
		return nil, ErrBadHeader
	}
	return points, nil
}

// WriteFRF writes a curve in the legacy FRF text format.
func WriteFRF(w io.Writer, points []Point) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, frfHeader)
	for _, p := range points {
		fmt.Fprintf(bw, "%g %g\n", p.Frequency, p.Magnitude)
	}
	return bw.Flush()
}
