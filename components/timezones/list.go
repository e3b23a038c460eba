package timezones

import (
	"bufio"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"
)

//go:embed data/iana_timezones.txt
var embeddedZones string

// loadDefault parses the embedded list once per process.
var loadDefault = sync.OnceValues(func() ([]string, error) {
	return LoadZones(strings.NewReader(embeddedZones))
})

// DefaultZones returns a sorted copy of the embedded zone list.
func DefaultZones() ([]string, error) {
	zones, err := loadDefault()
	if err != nil {
		return nil, err
	}
	return slices.Clone(zones), nil
}

// LoadZones reads one zone per line. Blank lines, "#" comments and duplicates
// are skipped; the result is sorted.
func LoadZones(r io.Reader) ([]string, error) {
	if r == nil {
		return nil, errors.New("timezones: missing reader")
	}

	seen := make(map[string]struct{}, 512)
	zones := make([]string, 0, 512)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if _, dup := seen[line]; dup {
			continue
		}
		seen[line] = struct{}{}
		zones = append(zones, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("timezones: read zones: %w", err)
	}

	slices.Sort(zones)
	return zones, nil
}
