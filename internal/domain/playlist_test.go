package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestPlaylist(songIDs ...string) *Playlist {
	p := &Playlist{
		ID:      "pl-1",
		Name:    "Road Trip",
		OwnerID: "owner",
		Privacy: PrivacyPublic,
		Status:  PlaylistStatusActive,
	}
	for _, id := range songIDs {
		if err := p.AddSong(id, "owner", now); err != nil {
			panic(err)
		}
	}
	return p
}

// positions collects the current positions in slice order.
func positions(p *Playlist) []int {
	out := make([]int, len(p.Songs))
	for i, e := range p.Songs {
		out[i] = e.Position
	}
	return out
}

func order(p *Playlist) []string {
	out := make([]string, len(p.Songs))
	for i, e := range p.Songs {
		out[i] = e.SongID
	}
	return out
}

func assertContiguous(t *testing.T, p *Playlist) {
	t.Helper()
	seen := make(map[string]bool)
	for i, e := range p.Songs {
		assert.Equal(t, i+1, e.Position)
		assert.False(t, seen[e.SongID], "duplicate song %s", e.SongID)
		seen[e.SongID] = true
	}
}

func TestPlaylist_AddSong(t *testing.T) {
	p := newTestPlaylist("a", "b")

	require.NoError(t, p.AddSong("c", "owner", now))
	assert.Equal(t, []string{"a", "b", "c"}, order(p))
	assert.Equal(t, []int{1, 2, 3}, positions(p))
}

func TestPlaylist_AddSongDuplicate(t *testing.T) {
	p := newTestPlaylist("a", "b")

	err := p.AddSong("a", "owner", now)
	assert.ErrorIs(t, err, ErrSongAlreadyInPlaylist)
	// Membership unchanged.
	assert.Equal(t, []string{"a", "b"}, order(p))
	assert.Equal(t, []int{1, 2}, positions(p))
}

func TestPlaylist_RemoveSong(t *testing.T) {
	p := newTestPlaylist("a", "b", "c")

	require.NoError(t, p.RemoveSong("b", now))
	assert.Equal(t, []string{"a", "c"}, order(p))
	assert.Equal(t, []int{1, 2}, positions(p))
}

func TestPlaylist_RemoveSongAbsent(t *testing.T) {
	p := newTestPlaylist("a", "b")

	err := p.RemoveSong("x", now)
	assert.ErrorIs(t, err, ErrSongNotInPlaylist)
	assert.Equal(t, []string{"a", "b"}, order(p))
}

func TestPlaylist_ReorderSong(t *testing.T) {
	// [A@1, B@2, C@3]; move C to 1 -> [C@1, A@2, B@3]; remove A -> [C@1, B@2].
	p := newTestPlaylist("A", "B", "C")

	require.NoError(t, p.ReorderSong("C", 1, now))
	assert.Equal(t, []string{"C", "A", "B"}, order(p))
	assert.Equal(t, []int{1, 2, 3}, positions(p))

	require.NoError(t, p.RemoveSong("A", now))
	assert.Equal(t, []string{"C", "B"}, order(p))
	assert.Equal(t, []int{1, 2}, positions(p))
}

func TestPlaylist_ReorderSongToEnd(t *testing.T) {
	p := newTestPlaylist("a", "b", "c")

	require.NoError(t, p.ReorderSong("a", 3, now))
	assert.Equal(t, []string{"b", "c", "a"}, order(p))
	assertContiguous(t, p)
}

func TestPlaylist_ReorderSongMiddle(t *testing.T) {
	p := newTestPlaylist("a", "b", "c", "d")

	require.NoError(t, p.ReorderSong("d", 2, now))
	assert.Equal(t, []string{"a", "d", "b", "c"}, order(p))
	assertContiguous(t, p)
}

func TestPlaylist_ReorderSongInvalidPosition(t *testing.T) {
	p := newTestPlaylist("a", "b", "c")

	assert.ErrorIs(t, p.ReorderSong("a", 0, now), ErrInvalidPosition)
	assert.ErrorIs(t, p.ReorderSong("a", 4, now), ErrInvalidPosition)
	assert.ErrorIs(t, p.ReorderSong("x", 1, now), ErrSongNotInPlaylist)
	assert.Equal(t, []string{"a", "b", "c"}, order(p))
}

func TestPlaylist_PositionsStayContiguous(t *testing.T) {
	p := newTestPlaylist("a", "b", "c", "d", "e")

	require.NoError(t, p.ReorderSong("e", 1, now))
	require.NoError(t, p.RemoveSong("c", now))
	require.NoError(t, p.AddSong("f", "owner", now))
	require.NoError(t, p.ReorderSong("a", 5, now))
	require.NoError(t, p.RemoveSong("e", now))

	assertContiguous(t, p)
	assert.Len(t, p.Songs, 4)
}

func TestPlaylist_ToggleFollowInvolution(t *testing.T) {
	p := newTestPlaylist("a")

	followed, err := p.ToggleFollow("fan", now)
	require.NoError(t, err)
	assert.True(t, followed)
	assert.True(t, p.IsFollowedBy("fan"))

	followed, err = p.ToggleFollow("fan", now)
	require.NoError(t, err)
	assert.False(t, followed)
	assert.False(t, p.IsFollowedBy("fan"))
	assert.Empty(t, p.Followers)
}

func TestPlaylist_SelfFollowRejected(t *testing.T) {
	p := newTestPlaylist("a")

	_, err := p.ToggleFollow("owner", now)
	assert.ErrorIs(t, err, ErrInvalidOperation)
	assert.Empty(t, p.Followers)
}

func TestPlaylist_SetCollaborator(t *testing.T) {
	p := newTestPlaylist()

	require.NoError(t, p.SetCollaborator("u1", PermissionView, now))
	require.NoError(t, p.SetCollaborator("u1", PermissionEdit, now))
	require.Len(t, p.Collaborators, 1)
	assert.Equal(t, PermissionEdit, p.Collaborators[0].Level)

	assert.ErrorIs(t, p.SetCollaborator("owner", PermissionEdit, now), ErrInvalidOperation)
	assert.ErrorIs(t, p.SetCollaborator("u2", PermissionLevel("boss"), now), ErrInvalidPermLevel)

	require.NoError(t, p.RemoveCollaborator("u1", now))
	assert.Empty(t, p.Collaborators)
	assert.ErrorIs(t, p.RemoveCollaborator("u1", now), ErrCollaboratorNotFound)
}

func TestPlaylist_Validate(t *testing.T) {
	p := newTestPlaylist()
	assert.NoError(t, p.Validate())

	long := make([]byte, 101)
	for i := range long {
		long[i] = 'x'
	}

	cases := []struct {
		name   string
		mutate func(*Playlist)
		want   error
	}{
		{"empty name", func(p *Playlist) { p.Name = "" }, ErrInvalidPlaylistName},
		{"long name", func(p *Playlist) { p.Name = string(long) }, ErrPlaylistNameTooLong},
		{"no owner", func(p *Playlist) { p.OwnerID = "" }, ErrInvalidUserID},
		{"bad privacy", func(p *Playlist) { p.Privacy = "friends" }, ErrInvalidPrivacy},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			pl := newTestPlaylist()
			tc.mutate(pl)
			assert.ErrorIs(t, pl.Validate(), tc.want)
		})
	}
}
