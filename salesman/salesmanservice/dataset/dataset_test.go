package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	points, err := Get("cities7")
	require.NoError(t, err)
	require.Len(t, points, 7)
	assert.Equal(t, "Madrid", points[0].Label)
	assert.Equal(t, 40.4168, points[0].Coords.Lat)

	points, err = Get("cities12")
	require.NoError(t, err)
	require.Len(t, points, 12)
	assert.Equal(t, "Budapest", points[11].Label)

	_, err = Get("cities99")
	assert.ErrorIs(t, err, ErrUnknownDataset)
}

func TestGetReturnsCopy(t *testing.T) {
	points, err := Get("cities7")
	require.NoError(t, err)
	points[0].Label = "changed"

	again, err := Get("cities7")
	require.NoError(t, err)
	assert.Equal(t, "Madrid", again[0].Label)
}

func TestSummaries(t *testing.T) {
	assert.Equal(t, []string{"cities12", "cities7"}, Names())

	summaries := Summaries()
	require.Len(t, summaries, 2)
	assert.Equal(t, "cities12", summaries[0].Name)
	assert.Equal(t, 12, summaries[0].Points)
	assert.Len(t, summaries[1].Labels, 7)
}
