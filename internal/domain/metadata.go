package domain

import "sort"

// DeriveMetadata recomputes playlist aggregates from resolved member
// songs. The slice follows membership order; nil entries stand for songs
// that could not be resolved. Missing and non-active songs are excluded
// from aggregation but never removed from the membership itself.
//
// Songs with zero ratings are excluded from the average rating rather
// than counted as zero.
func DeriveMetadata(songs []*Song) PlaylistMetadata {
	var meta PlaylistMetadata
	genres := make(map[string]struct{})
	languages := make(map[string]struct{})

	ratingSum := 0.0
	ratedSongs := 0

	for _, s := range songs {
		if s == nil || !s.IsActive() {
			continue
		}
		meta.TotalDuration += s.Duration
		for _, g := range s.Genres {
			genres[g] = struct{}{}
		}
		if s.Language != "" {
			languages[s.Language] = struct{}{}
		}
		if s.Ratings.Count > 0 {
			ratingSum += s.Ratings.Average
			ratedSongs++
		}
	}

	meta.Genres = sortedSet(genres)
	meta.Languages = sortedSet(languages)
	if ratedSongs > 0 {
		meta.AverageRating = ratingSum / float64(ratedSongs)
	}
	return meta
}

func sortedSet(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
