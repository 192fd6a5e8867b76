package redis

import "strings"

// Key naming conventions: {namespace}:{entity}:{id}[:{field}].
//
// Example: "mb:song:5f1a..." for a cached song document.

// KeyNamespace prefixes all keys written by this service.
const KeyNamespace = "mb"

// Key joins parts under the service namespace.
func Key(parts ...string) string {
	all := append([]string{KeyNamespace}, parts...)
	return strings.Join(all, ":")
}

// SongKey returns the cache key for a song document.
func SongKey(songID string) string {
	return Key("song", songID)
}
