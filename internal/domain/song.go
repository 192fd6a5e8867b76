package domain

import "time"

// SongStatus is the lifecycle state of a catalog song. Songs are soft
// deleted by flipping status, never removed while referenced.
type SongStatus string

const (
	SongStatusActive   SongStatus = "active"
	SongStatusInactive SongStatus = "inactive"
	SongStatusPending  SongStatus = "pending"
	SongStatusRejected SongStatus = "rejected"
)

// Like is one user's like on a song. At most one per user.
type Like struct {
	UserID  string    `bson:"user_id" json:"user_id"`
	LikedAt time.Time `bson:"liked_at" json:"liked_at"`
}

// Song is a catalog entry. Playlists and user ratings reference songs by
// ID only; a song disappearing must never corrupt them.
type Song struct {
	ID       string     `bson:"_id" json:"id"`
	Title    string     `bson:"title" json:"title"`
	Artist   string     `bson:"artist" json:"artist"`
	Duration int        `bson:"duration" json:"duration"` // seconds
	Genres   []string   `bson:"genres" json:"genres"`
	Language string     `bson:"language" json:"language"`
	Status   SongStatus `bson:"status" json:"status"`

	Audio *MediaReference `bson:"audio,omitempty" json:"audio,omitempty"`
	Cover *MediaReference `bson:"cover,omitempty" json:"cover,omitempty"`

	Ratings   RatingSummary `bson:"ratings" json:"ratings"`
	Likes     []Like        `bson:"likes,omitempty" json:"likes,omitempty"`
	PlayCount int64         `bson:"play_count" json:"play_count"`

	// Version guards optimistic concurrency on document updates.
	Version   int64     `bson:"version" json:"-"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// IsActive reports whether the song may be played, rated and added to
// playlists.
func (s *Song) IsActive() bool {
	return s.Status == SongStatusActive
}

// LikedBy reports whether the user has liked this song.
func (s *Song) LikedBy(userID string) bool {
	for _, l := range s.Likes {
		if l.UserID == userID {
			return true
		}
	}
	return false
}

// ToggleLike flips the user's like on the song and reports whether the
// like now exists. Calling it twice restores the original state.
func (s *Song) ToggleLike(userID string, now time.Time) bool {
	for i, l := range s.Likes {
		if l.UserID == userID {
			s.Likes = append(s.Likes[:i], s.Likes[i+1:]...)
			s.UpdatedAt = now
			return false
		}
	}
	s.Likes = append(s.Likes, Like{UserID: userID, LikedAt: now})
	s.UpdatedAt = now
	return true
}
