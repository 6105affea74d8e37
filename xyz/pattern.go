// Package xyz provides API for reading and writing tiles in XYZ directory format,
// where tiles are stored as individual files with paths like "/z/x/y.ext".
package xyz

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/eak1mov/go-geoimage/tile"
)

var (
	ErrInvalidPattern = errors.New("libtiles: invalid file pattern")
	ErrInvalidTile    = errors.New("libtiles: invalid tile")
)

var placeholders = []string{"{x}", "{y}", "{z}"}

func validatePattern(pattern string) error {
	for _, p := range placeholders {
		if !strings.Contains(pattern, p) {
			return fmt.Errorf("%w: placeholder %v not found", ErrInvalidPattern, p)
		}
	}
	return nil
}

func formatPattern(pattern string, tileID tile.ID) string {
	return strings.NewReplacer(
		"{x}", strconv.FormatUint(uint64(tileID.X), 10),
		"{y}", strconv.FormatUint(uint64(tileID.Y), 10),
		"{z}", strconv.FormatUint(uint64(tileID.Z), 10),
	).Replace(pattern)
}

// patternRegexp matches file paths produced by formatPattern. Everything
// outside the placeholders is matched literally.
func patternRegexp(pattern string) (*regexp.Regexp, error) {
	quoted := regexp.QuoteMeta(pattern)
	for _, p := range placeholders {
		name := p[1:2]
		quoted = strings.ReplaceAll(quoted, regexp.QuoteMeta(p), "(?P<"+name+">\\d+)")
	}
	re, err := regexp.Compile("^" + quoted + "$")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPattern, err)
	}
	return re, nil
}
