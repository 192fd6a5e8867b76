package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUser_SetRatingUpdatesInPlace(t *testing.T) {
	u := &User{ID: "u1"}
	ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	prev, existed := u.SetRating("s1", 4, ts)
	assert.False(t, existed)
	assert.Equal(t, 0, prev)
	assert.Equal(t, 1, u.RatingsGiven)

	// Rating the same song again replaces the entry, it never duplicates.
	prev, existed = u.SetRating("s1", 5, ts.Add(time.Hour))
	assert.True(t, existed)
	assert.Equal(t, 4, prev)
	assert.Len(t, u.Ratings, 1)
	assert.Equal(t, 5, u.Ratings[0].Stars)
	assert.Equal(t, 1, u.RatingsGiven)

	stars, existed := u.RatingFor("s1")
	assert.True(t, existed)
	assert.Equal(t, 5, stars)
}

func TestUser_RemoveRating(t *testing.T) {
	u := &User{ID: "u1"}
	ts := time.Now()
	u.SetRating("s1", 3, ts)
	u.SetRating("s2", 2, ts)

	stars, existed := u.RemoveRating("s1", ts)
	assert.True(t, existed)
	assert.Equal(t, 3, stars)
	assert.Equal(t, 1, u.RatingsGiven)
	assert.Len(t, u.Ratings, 1)

	_, existed = u.RemoveRating("s1", ts)
	assert.False(t, existed)
}

func TestSong_ToggleLikeInvolution(t *testing.T) {
	s := &Song{ID: "s1", Status: SongStatusActive}
	ts := time.Now()

	assert.True(t, s.ToggleLike("u1", ts))
	assert.True(t, s.LikedBy("u1"))

	assert.False(t, s.ToggleLike("u1", ts))
	assert.False(t, s.LikedBy("u1"))
	assert.Empty(t, s.Likes)
}
