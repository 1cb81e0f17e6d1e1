package waypoint

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// cupTaskMarker separates the waypoint section of a CUP file from its tasks.
const cupTaskMarker = "-----Related Tasks-----"

var defaultCUPColumns = []string{"name", "code", "country", "lat", "lon", "elev"}

// ParseCUP reads waypoints in SeeYou CUP format. Only the waypoint section
// is read; the related tasks section is ignored.
func ParseCUP(r io.Reader) ([]Waypoint, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	var (
		columns = defaultCUPColumns
		out     []Waypoint
		line    int
	)

	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("cup line %d: %w", line, err)
		}
		if len(record) == 0 || (len(record) == 1 && strings.TrimSpace(record[0]) == "") {
			continue
		}
		if strings.HasPrefix(strings.TrimSpace(record[0]), cupTaskMarker) {
			break
		}

		if line == 1 && strings.EqualFold(strings.TrimSpace(record[0]), "name") {
			columns = make([]string, len(record))
			for i, c := range record {
				columns[i] = strings.ToLower(strings.TrimSpace(c))
			}
			continue
		}

		wp, err := parseCUPRecord(columns, record)
		if err != nil {
			return nil, fmt.Errorf("cup line %d: %w", line, err)
		}
		out = append(out, wp)
	}

	return out, nil
}

func parseCUPRecord(columns, record []string) (Waypoint, error) {
	field := func(name string) string {
		for i, c := range columns {
			if c == name && i < len(record) {
				return strings.TrimSpace(record[i])
			}
		}
		return ""
	}

	wp := Waypoint{
		Name:    field("name"),
		Code:    field("code"),
		Country: field("country"),
		Comment: field("desc"),
	}
	if wp.Name == "" {
		return Waypoint{}, fmt.Errorf("missing name")
	}

	lat, err := parseCUPCoordinate(field("lat"), 'N', 'S')
	if err != nil {
		return Waypoint{}, fmt.Errorf("%s: lat: %w", wp.Name, err)
	}
	lon, err := parseCUPCoordinate(field("lon"), 'E', 'W')
	if err != nil {
		return Waypoint{}, fmt.Errorf("%s: lon: %w", wp.Name, err)
	}
	wp.Location = Location{Lat: lat, Lon: lon}

	if elev := field("elev"); elev != "" {
		wp.Elevation, err = parseCUPElevation(elev)
		if err != nil {
			return Waypoint{}, fmt.Errorf("%s: elev: %w", wp.Name, err)
		}
	}

	return wp, nil
}

// parseCUPCoordinate converts "DDMM.mmmH" (latitude) or "DDDMM.mmmH"
// (longitude) into signed decimal degrees.
func parseCUPCoordinate(s string, pos, neg byte) (float64, error) {
	if len(s) < 2 {
		return 0, fmt.Errorf("invalid coordinate %q", s)
	}

	hemi := s[len(s)-1]
	if hemi != pos && hemi != neg {
		return 0, fmt.Errorf("invalid hemisphere in %q", s)
	}

	v, err := strconv.ParseFloat(s[:len(s)-1], 64)
	if err != nil {
		return 0, fmt.Errorf("invalid coordinate %q", s)
	}

	deg := float64(int(v / 100))
	minutes := v - deg*100
	if minutes >= 60 {
		return 0, fmt.Errorf("invalid minutes in %q", s)
	}

	out := deg + minutes/60
	if hemi == neg {
		out = -out
	}
	return out, nil
}

func parseCUPElevation(s string) (float64, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	factor := 1.0
	switch {
	case strings.HasSuffix(s, "ft"):
		factor = 0.3048
		s = strings.TrimSuffix(s, "ft")
	case strings.HasSuffix(s, "m"):
		s = strings.TrimSuffix(s, "m")
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid elevation %q", s)
	}
	return v * factor, nil
}
