package domain

// PermissionLevel orders playlist access rights: view < edit < admin.
type PermissionLevel string

const (
	PermissionView  PermissionLevel = "view"
	PermissionEdit  PermissionLevel = "edit"
	PermissionAdmin PermissionLevel = "admin"
)

func (l PermissionLevel) rank() int {
	switch l {
	case PermissionView:
		return 1
	case PermissionEdit:
		return 2
	case PermissionAdmin:
		return 3
	}
	return 0
}

// Valid reports whether the level is one of view/edit/admin.
func (l PermissionLevel) Valid() bool {
	return l.rank() > 0
}

// Allows reports whether a holder of this level satisfies the required
// level.
func (l PermissionLevel) Allows(required PermissionLevel) bool {
	return l.rank() >= required.rank()
}

// ParsePermissionLevel validates a permission level string.
func ParsePermissionLevel(s string) (PermissionLevel, error) {
	l := PermissionLevel(s)
	if !l.Valid() {
		return "", ErrInvalidPermLevel
	}
	return l, nil
}

// Authorize is the single authorization decision point for playlist
// operations. It is a pure function of the playlist, the acting user
// (empty string for anonymous callers) and the required level:
//
//  1. The owner passes every check.
//  2. A collaborator passes when their level >= required.
//  3. Everyone else (including anonymous) passes only view checks on
//     public playlists.
func (p *Playlist) Authorize(actingUserID string, required PermissionLevel) error {
	if actingUserID != "" && actingUserID == p.OwnerID {
		return nil
	}
	if actingUserID != "" {
		for _, c := range p.Collaborators {
			if c.UserID == actingUserID {
				if c.Level.Allows(required) {
					return nil
				}
				return ErrPermissionDenied
			}
		}
	}
	if required == PermissionView && p.Privacy == PrivacyPublic {
		return nil
	}
	return ErrPermissionDenied
}
