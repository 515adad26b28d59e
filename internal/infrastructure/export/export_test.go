package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleTable() Table {
	return Table{
		Name:    "bookings",
		Headers: []string{"booking_id", "aircraft", "member", "flight_time"},
		Rows: [][]string{
			{"b-1", "ZK-ABC", "Jo Pilot", "1.2"},
			{"b-2", "ZK-DEF", "Smith, Alex", "0.8"},
		},
	}
}

func TestWriteCSV(t *testing.T) {
	out, err := WriteCSV(sampleTable())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "booking_id,aircraft,member,flight_time", lines[0])
	assert.Equal(t, "b-1,ZK-ABC,Jo Pilot,1.2", lines[1])
	// Fields containing the delimiter come out quoted.
	assert.Equal(t, `b-2,ZK-DEF,"Smith, Alex",0.8`, lines[2])
}

func TestWriteCSV_EmptyTable(t *testing.T) {
	out, err := WriteCSV(Table{Headers: []string{"a", "b"}})
	require.NoError(t, err)
	assert.Equal(t, "a,b\n", string(out))
}

func TestWriteXLSX(t *testing.T) {
	out, err := WriteXLSX(sampleTable())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("bookings")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"booking_id", "aircraft", "member", "flight_time"}, rows[0])
	assert.Equal(t, []string{"b-2", "ZK-DEF", "Smith, Alex", "0.8"}, rows[2])
}
