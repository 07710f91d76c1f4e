package main

import (
	"testing"

	"github.com/chrissnell/solarestimate/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLocations(t *testing.T) {
	locs, err := parseLocations("33.5,126.5; 35.1 , 129.0;")
	require.NoError(t, err)
	assert.Equal(t, []types.Location{
		{Latitude: 33.5, Longitude: 126.5},
		{Latitude: 35.1, Longitude: 129.0},
	}, locs)

	for _, bad := range []string{"", ";", "33.5", "north,126", "33.5,east", "1,2,3"} {
		_, err := parseLocations(bad)
		assert.Error(t, err, bad)
	}
}
