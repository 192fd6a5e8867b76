package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func activeSong(id string, duration int, genres []string, language string) *Song {
	return &Song{
		ID:       id,
		Duration: duration,
		Genres:   genres,
		Language: language,
		Status:   SongStatusActive,
	}
}

func TestDeriveMetadata(t *testing.T) {
	s1 := activeSong("s1", 180, []string{"rock", "indie"}, "en")
	require.NoError(t, s1.Ratings.Add(4))
	s2 := activeSong("s2", 240, []string{"rock", "pop"}, "fr")
	require.NoError(t, s2.Ratings.Add(2))
	s3 := activeSong("s3", 60, []string{"jazz"}, "en") // unrated

	meta := DeriveMetadata([]*Song{s1, s2, s3})

	assert.Equal(t, 480, meta.TotalDuration)
	assert.Equal(t, []string{"indie", "jazz", "pop", "rock"}, meta.Genres)
	assert.Equal(t, []string{"en", "fr"}, meta.Languages)
	// Unrated songs are excluded from the average, not counted as zero.
	assert.InDelta(t, 3.0, meta.AverageRating, 1e-9)
}

func TestDeriveMetadata_SkipsDanglingAndInactive(t *testing.T) {
	s1 := activeSong("s1", 100, []string{"pop"}, "en")
	inactive := activeSong("s2", 999, []string{"metal"}, "de")
	inactive.Status = SongStatusInactive

	meta := DeriveMetadata([]*Song{s1, nil, inactive})

	assert.Equal(t, 100, meta.TotalDuration)
	assert.Equal(t, []string{"pop"}, meta.Genres)
	assert.Equal(t, []string{"en"}, meta.Languages)
}

func TestDeriveMetadata_Empty(t *testing.T) {
	meta := DeriveMetadata(nil)

	assert.Equal(t, 0, meta.TotalDuration)
	assert.Nil(t, meta.Genres)
	assert.Nil(t, meta.Languages)
	assert.Equal(t, 0.0, meta.AverageRating)
}
