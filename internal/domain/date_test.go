package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateRoundTrip(t *testing.T) {
	d, err := ParseDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", d.String())

	_, err = ParseDate("2024-13-01")
	assert.Error(t, err)
}

func TestDateAddDaysAcrossBoundaries(t *testing.T) {
	d := NewDate(2024, time.March, 1)
	assert.Equal(t, "2024-02-29", d.AddDays(-1).String())
	assert.Equal(t, "2023-12-31", NewDate(2024, time.January, 1).AddDays(-1).String())
}

func TestDateJSON(t *testing.T) {
	d := NewDate(2024, time.January, 2)
	raw, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2024-01-02"`, string(raw))

	var back Date
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, d, back)
}

func TestDateScan(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan(time.Date(2024, time.May, 7, 15, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2024-05-07", d.String())

	require.NoError(t, d.Scan("2024-05-08"))
	assert.Equal(t, "2024-05-08", d.String())

	assert.Error(t, d.Scan(42))
}
