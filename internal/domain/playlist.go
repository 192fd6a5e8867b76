package domain

import "time"

// Privacy controls who can view a playlist.
type Privacy string

const (
	PrivacyPublic   Privacy = "public"
	PrivacyPrivate  Privacy = "private"
	PrivacyUnlisted Privacy = "unlisted"
)

// ParsePrivacy validates a privacy string.
func ParsePrivacy(s string) (Privacy, error) {
	switch Privacy(s) {
	case PrivacyPublic, PrivacyPrivate, PrivacyUnlisted:
		return Privacy(s), nil
	}
	return "", ErrInvalidPrivacy
}

// PlaylistStatus is the lifecycle state of a playlist.
type PlaylistStatus string

const (
	PlaylistStatusActive   PlaylistStatus = "active"
	PlaylistStatusArchived PlaylistStatus = "archived"
	PlaylistStatusDeleted  PlaylistStatus = "deleted"
)

// MembershipEntry is one song inside a playlist's ordered list.
// Positions are 1-based and contiguous: after any mutation the entries'
// positions form exactly the permutation 1..N.
type MembershipEntry struct {
	SongID   string    `bson:"song_id" json:"song_id"`
	AddedBy  string    `bson:"added_by" json:"added_by"`
	AddedAt  time.Time `bson:"added_at" json:"added_at"`
	Position int       `bson:"position" json:"position"`
}

// Collaborator is a non-owner user granted a permission level.
type Collaborator struct {
	UserID string          `bson:"user_id" json:"user_id"`
	Level  PermissionLevel `bson:"level" json:"level"`
}

// Follower is a user following the playlist.
type Follower struct {
	UserID     string    `bson:"user_id" json:"user_id"`
	FollowedAt time.Time `bson:"followed_at" json:"followed_at"`
}

// PlaylistMetadata is derived from the current membership and is never
// user-settable. It is recomputed synchronously with every membership
// mutation so readers never observe the two out of sync.
type PlaylistMetadata struct {
	TotalDuration int      `bson:"total_duration" json:"total_duration"`
	Genres        []string `bson:"genres" json:"genres"`
	Languages     []string `bson:"languages" json:"languages"`
	AverageRating float64  `bson:"average_rating" json:"average_rating"`
}

// Playlist owns its membership entries, collaborators and followers.
// Songs and users are referenced by ID only.
type Playlist struct {
	ID          string         `bson:"_id" json:"id"`
	Name        string         `bson:"name" json:"name"`
	Description string         `bson:"description" json:"description"`
	OwnerID     string         `bson:"owner_id" json:"owner_id"`
	Privacy     Privacy        `bson:"privacy" json:"privacy"`
	Category    string         `bson:"category" json:"category"`
	Status      PlaylistStatus `bson:"status" json:"status"`

	Cover *MediaReference `bson:"cover,omitempty" json:"cover,omitempty"`

	Songs         []MembershipEntry `bson:"songs" json:"songs"`
	Collaborators []Collaborator    `bson:"collaborators,omitempty" json:"collaborators,omitempty"`
	Followers     []Follower        `bson:"followers,omitempty" json:"followers,omitempty"`

	Metadata PlaylistMetadata `bson:"metadata" json:"metadata"`

	Version   int64     `bson:"version" json:"-"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Validate checks playlist fields on create/update.
func (p *Playlist) Validate() error {
	if p.OwnerID == "" {
		return ErrInvalidUserID
	}
	if err := ValidatePlaylistName(p.Name); err != nil {
		return err
	}
	if len(p.Description) > 500 {
		return ErrPlaylistDescriptionTooLong
	}
	if _, err := ParsePrivacy(string(p.Privacy)); err != nil {
		return err
	}
	return nil
}

// ValidatePlaylistName checks name constraints.
func ValidatePlaylistName(name string) error {
	if name == "" {
		return ErrInvalidPlaylistName
	}
	if len(name) > 100 {
		return ErrPlaylistNameTooLong
	}
	return nil
}

// IsDeleted reports whether the playlist has been soft deleted.
func (p *Playlist) IsDeleted() bool {
	return p.Status == PlaylistStatusDeleted
}

func (p *Playlist) indexOf(songID string) int {
	for i, e := range p.Songs {
		if e.SongID == songID {
			return i
		}
	}
	return -1
}

// HasSong reports whether the song is a member of the playlist.
func (p *Playlist) HasSong(songID string) bool {
	return p.indexOf(songID) >= 0
}

// renumber restores contiguous 1..N positions in current slice order.
func (p *Playlist) renumber() {
	for i := range p.Songs {
		p.Songs[i].Position = i + 1
	}
}

// AddSong appends a song to the end of the playlist. The caller is
// responsible for verifying the song exists and is active.
func (p *Playlist) AddSong(songID, addedBy string, now time.Time) error {
	if p.HasSong(songID) {
		return ErrSongAlreadyInPlaylist
	}
	p.Songs = append(p.Songs, MembershipEntry{
		SongID:   songID,
		AddedBy:  addedBy,
		AddedAt:  now,
		Position: len(p.Songs) + 1,
	})
	p.UpdatedAt = now
	return nil
}

// RemoveSong deletes a member song and renumbers the remaining entries,
// preserving their relative order.
func (p *Playlist) RemoveSong(songID string, now time.Time) error {
	idx := p.indexOf(songID)
	if idx < 0 {
		return ErrSongNotInPlaylist
	}
	p.Songs = append(p.Songs[:idx], p.Songs[idx+1:]...)
	p.renumber()
	p.UpdatedAt = now
	return nil
}

// ReorderSong moves a member song to newPosition (1-based). The moved
// entry takes the exact slot; the others shift to close the gap, same as
// array remove+insert.
func (p *Playlist) ReorderSong(songID string, newPosition int, now time.Time) error {
	idx := p.indexOf(songID)
	if idx < 0 {
		return ErrSongNotInPlaylist
	}
	if newPosition < 1 || newPosition > len(p.Songs) {
		return ErrInvalidPosition
	}

	entry := p.Songs[idx]
	p.Songs = append(p.Songs[:idx], p.Songs[idx+1:]...)

	insertAt := newPosition - 1
	p.Songs = append(p.Songs, MembershipEntry{})
	copy(p.Songs[insertAt+1:], p.Songs[insertAt:])
	p.Songs[insertAt] = entry

	p.renumber()
	p.UpdatedAt = now
	return nil
}

// IsFollowedBy reports whether the user follows the playlist.
func (p *Playlist) IsFollowedBy(userID string) bool {
	for _, f := range p.Followers {
		if f.UserID == userID {
			return true
		}
	}
	return false
}

// ToggleFollow flips the user's follow on the playlist and reports
// whether the follow now exists. Owners may not follow their own
// playlist.
func (p *Playlist) ToggleFollow(userID string, now time.Time) (bool, error) {
	if userID == "" {
		return false, ErrInvalidUserID
	}
	if userID == p.OwnerID {
		return false, ErrInvalidOperation
	}
	for i, f := range p.Followers {
		if f.UserID == userID {
			p.Followers = append(p.Followers[:i], p.Followers[i+1:]...)
			p.UpdatedAt = now
			return false, nil
		}
	}
	p.Followers = append(p.Followers, Follower{UserID: userID, FollowedAt: now})
	p.UpdatedAt = now
	return true, nil
}

// SetCollaborator grants or updates a collaborator's permission level.
// The owner cannot be made a collaborator.
func (p *Playlist) SetCollaborator(userID string, level PermissionLevel, now time.Time) error {
	if userID == "" {
		return ErrInvalidUserID
	}
	if userID == p.OwnerID {
		return ErrInvalidOperation
	}
	if !level.Valid() {
		return ErrInvalidPermLevel
	}
	for i, c := range p.Collaborators {
		if c.UserID == userID {
			p.Collaborators[i].Level = level
			p.UpdatedAt = now
			return nil
		}
	}
	p.Collaborators = append(p.Collaborators, Collaborator{UserID: userID, Level: level})
	p.UpdatedAt = now
	return nil
}

// RemoveCollaborator revokes a collaborator's access.
func (p *Playlist) RemoveCollaborator(userID string, now time.Time) error {
	for i, c := range p.Collaborators {
		if c.UserID == userID {
			p.Collaborators = append(p.Collaborators[:i], p.Collaborators[i+1:]...)
			p.UpdatedAt = now
			return nil
		}
	}
	return ErrCollaboratorNotFound
}
