package domain

import "time"

// SongRating is one user's rating of one song. A user has at most one
// live rating per song; every entry has a matching contribution in that
// song's rating distribution.
type SongRating struct {
	SongID  string    `bson:"song_id" json:"song_id"`
	Stars   int       `bson:"stars" json:"stars"`
	RatedAt time.Time `bson:"rated_at" json:"rated_at"`
}

// User carries the user-side halves of ratings and likes. Accounts and
// credentials live in the auth service.
type User struct {
	ID       string          `bson:"_id" json:"id"`
	Username string          `bson:"username" json:"username"`
	Avatar   *MediaReference `bson:"avatar,omitempty" json:"avatar,omitempty"`

	Ratings      []SongRating `bson:"ratings,omitempty" json:"ratings,omitempty"`
	RatingsGiven int          `bson:"ratings_given" json:"ratings_given"`

	Version   int64     `bson:"version" json:"-"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// RatingFor returns the user's rating for a song, if any.
func (u *User) RatingFor(songID string) (int, bool) {
	for _, r := range u.Ratings {
		if r.SongID == songID {
			return r.Stars, true
		}
	}
	return 0, false
}

// SetRating records or replaces the user's rating for a song. It returns
// the previous star value when one existed. RatingsGiven only grows for
// genuinely new ratings.
func (u *User) SetRating(songID string, stars int, now time.Time) (prev int, existed bool) {
	for i, r := range u.Ratings {
		if r.SongID == songID {
			prev = r.Stars
			u.Ratings[i].Stars = stars
			u.Ratings[i].RatedAt = now
			u.UpdatedAt = now
			return prev, true
		}
	}
	u.Ratings = append(u.Ratings, SongRating{SongID: songID, Stars: stars, RatedAt: now})
	u.RatingsGiven++
	u.UpdatedAt = now
	return 0, false
}

// RemoveRating deletes the user's rating for a song and returns the star
// value that was removed.
func (u *User) RemoveRating(songID string, now time.Time) (stars int, existed bool) {
	for i, r := range u.Ratings {
		if r.SongID == songID {
			stars = r.Stars
			u.Ratings = append(u.Ratings[:i], u.Ratings[i+1:]...)
			if u.RatingsGiven > 0 {
				u.RatingsGiven--
			}
			u.UpdatedAt = now
			return stars, true
		}
	}
	return 0, false
}
