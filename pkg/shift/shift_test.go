package shift

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogFromKeepsBuiltinOrder(t *testing.T) {
	c := CatalogFrom(map[string]Definition{
		"oncall":  {Start: "00:00", End: "23:59"},
		"night12": {Start: "20:00", End: "08:00"},
		"day8":    {Start: "07:00", End: "15:00"},
		"backup":  {Start: "09:00", End: "17:00"},
	})
	assert.Equal(t, []string{"day8", "night12", "backup", "oncall"}, c.Names())

	d, ok := c.Lookup(Night12)
	require.True(t, ok)
	assert.Equal(t, "Night 12h", d.Label)
	assert.Equal(t, "20:00", d.Start)

	assert.False(t, c.Valid(Day12))
	assert.True(t, c.Valid("backup"))
}

func TestNilCatalogIsDefault(t *testing.T) {
	var c *Catalog
	assert.Equal(t, []string{"day8", "day12", "night12"}, c.Names())
	assert.True(t, c.Valid(Day12))
}

func TestHours(t *testing.T) {
	assert.Equal(t, "19:00–07:00", Shift{Start: "19:00", End: "07:00"}.Hours())
	assert.Empty(t, Shift{Date: "2024-01-01"}.Hours())
}

func TestParseType(t *testing.T) {
	assert.Equal(t, Day12, ParseType("  Day12 "))
	assert.Equal(t, Type(""), ParseType(" "))
}

func TestDates(t *testing.T) {
	loc := time.FixedZone("test", 2*60*60)
	d, err := ParseDate("2024-02-29", loc)
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", FormatDate(d))
	assert.Equal(t, loc, d.Location())

	_, err = ParseDate("2024-13-01", loc)
	assert.Error(t, err)

	noon := time.Date(2024, 3, 5, 12, 30, 0, 0, loc)
	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, loc), Day(noon))
}
