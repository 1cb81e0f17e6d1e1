package waypoint

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCUP = `name,code,country,lat,lon,elev,style,rwdir,rwlen,freq,desc
"Lasham",LAS,GB,5111.200N,00101.933W,188m,5,090,1100m,131.025,"Lasham Gliding Society"
"Didcot Power",DID,GB,5137.450N,00116.083W,200ft,1,,,,
-----Related Tasks-----
"Lasham-Didcot","Lasham","Didcot Power","Lasham"
`

func TestParseCUP(t *testing.T) {
	items, err := ParseCUP(strings.NewReader(sampleCUP))
	require.NoError(t, err)
	require.Len(t, items, 2)

	lasham := items[0]
	assert.Equal(t, "Lasham", lasham.Name)
	assert.Equal(t, "LAS", lasham.Code)
	assert.Equal(t, "GB", lasham.Country)
	assert.InDelta(t, 51.18667, lasham.Location.Lat, 1e-4)
	assert.InDelta(t, -1.03222, lasham.Location.Lon, 1e-4)
	assert.InDelta(t, 188, lasham.Elevation, 1e-9)
	assert.Equal(t, "Lasham Gliding Society", lasham.Comment)

	didcot := items[1]
	assert.InDelta(t, 60.96, didcot.Elevation, 1e-6)
}

func TestParseCUP_NoHeader(t *testing.T) {
	items, err := ParseCUP(strings.NewReader(`"Alpha",ALP,DE,4800.000N,01100.000E,500m`))
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.InDelta(t, 48.0, items[0].Location.Lat, 1e-9)
	assert.InDelta(t, 11.0, items[0].Location.Lon, 1e-9)
}

func TestParseCUPCoordinate(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		pos     byte
		neg     byte
		want    float64
		wantErr bool
	}{
		{name: "north", in: "5130.000N", pos: 'N', neg: 'S', want: 51.5},
		{name: "south", in: "3345.000S", pos: 'N', neg: 'S', want: -33.75},
		{name: "west", in: "00030.000W", pos: 'E', neg: 'W', want: -0.5},
		{name: "bad hemisphere", in: "5130.000E", pos: 'N', neg: 'S', wantErr: true},
		{name: "bad minutes", in: "5175.000N", pos: 'N', neg: 'S', wantErr: true},
		{name: "empty", in: "", pos: 'N', neg: 'S', wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseCUPCoordinate(tt.in, tt.pos, tt.neg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestLocation_Distance(t *testing.T) {
	a := Location{Lat: 0, Lon: 0}
	b := Location{Lat: 0, Lon: 1}

	// One degree of longitude at the equator.
	assert.InDelta(t, 111195, a.Distance(b), 10)
	assert.InDelta(t, 0, a.Distance(a), 1e-9)
	assert.InDelta(t, a.Distance(b), b.Distance(a), 1e-9)
}

func TestDatabase_SearchAndLookup(t *testing.T) {
	db := NewDatabase([]Waypoint{
		{Name: "Zell", Code: "ZEL"},
		{Name: "alpha", Code: "ALP"},
		{Name: "Bravo", Code: "BRV"},
	})

	all := db.All()
	require.Len(t, all, 3)
	assert.Equal(t, "alpha", all[0].Name, "sorted case-insensitively")
	assert.Equal(t, "Zell", all[2].Name)

	assert.Len(t, db.Search(""), 3)
	assert.Len(t, db.Search("brv"), 1)
	assert.Empty(t, db.Search("nothing"))

	w, ok := db.Lookup("ALPHA")
	require.True(t, ok)
	assert.Equal(t, "ALP", w.Code)

	_, ok = db.Lookup("missing")
	assert.False(t, ok)
}

func TestLoad_Globs(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "nested", "club.cup"), []byte(sampleCUP), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "extra.yaml"), []byte(`
- name: Extra
  lat: 50.5
  lon: -1.5
  elevation: 90
`), 0o644))

	db, err := Load([]string{
		filepath.Join(dir, "**", "*.cup"),
		filepath.Join(dir, "*.yaml"),
		filepath.Join(dir, "missing", "*.cup"),
	})
	require.NoError(t, err)
	assert.Equal(t, 3, db.Len())

	extra, ok := db.Lookup("extra")
	require.True(t, ok)
	assert.InDelta(t, 50.5, extra.Location.Lat, 1e-9)
	assert.InDelta(t, 90, extra.Elevation, 1e-9)
}

func TestParseYAML_RequiresName(t *testing.T) {
	_, err := ParseYAML(strings.NewReader("- lat: 1\n  lon: 2\n"))
	assert.ErrorContains(t, err, "name is required")
}
