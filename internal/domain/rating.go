package domain

// Star rating bounds.
const (
	MinStars = 1
	MaxStars = 5
)

// ValidateStars checks that a star value is within 1..5.
func ValidateStars(stars int) error {
	if stars < MinStars || stars > MaxStars {
		return ErrInvalidRating
	}
	return nil
}

// Distribution holds vote counts per star value. Index 0 is the 1-star
// bucket, index 4 the 5-star bucket.
type Distribution [5]int

// Bucket returns the count for the given star value.
func (d *Distribution) Bucket(stars int) int {
	return d[stars-1]
}

func (d *Distribution) inc(stars int) {
	d[stars-1]++
}

// dec decrements a bucket, failing with ErrInvalidState on underflow.
func (d *Distribution) dec(stars int) error {
	if d[stars-1] <= 0 {
		return ErrInvalidState
	}
	d[stars-1]--
	return nil
}

// Total returns the number of votes across all buckets.
func (d Distribution) Total() int {
	total := 0
	for _, n := range d {
		total += n
	}
	return total
}

// WeightedSum returns the sum of star*count over all buckets.
func (d Distribution) WeightedSum() int {
	sum := 0
	for i, n := range d {
		sum += (i + 1) * n
	}
	return sum
}

// RatingSummary is the denormalized rating aggregate stored on a song.
// Invariants: Count == Distribution.Total(), and Average equals
// WeightedSum/Count (0 when Count is 0).
type RatingSummary struct {
	Average      float64      `bson:"average" json:"average"`
	Count        int          `bson:"count" json:"count"`
	Distribution Distribution `bson:"distribution" json:"distribution"`
}

// Add records a new rating. The caller guarantees the user has not rated
// this song before.
func (r *RatingSummary) Add(stars int) error {
	if err := ValidateStars(stars); err != nil {
		return err
	}
	oldCount := r.Count
	r.Distribution.inc(stars)
	r.Count++
	r.Average = (r.Average*float64(oldCount) + float64(stars)) / float64(r.Count)
	return nil
}

// Update moves an existing rating from one bucket to another. Count is
// unchanged; the average is recomputed from the full distribution, which
// is the authoritative formula and avoids incremental drift.
func (r *RatingSummary) Update(oldStars, newStars int) error {
	if err := ValidateStars(oldStars); err != nil {
		return err
	}
	if err := ValidateStars(newStars); err != nil {
		return err
	}
	if err := r.Distribution.dec(oldStars); err != nil {
		return err
	}
	r.Distribution.inc(newStars)
	r.recompute()
	return nil
}

// Remove deletes an existing rating from the aggregate.
func (r *RatingSummary) Remove(stars int) error {
	if err := ValidateStars(stars); err != nil {
		return err
	}
	if err := r.Distribution.dec(stars); err != nil {
		return err
	}
	r.Count--
	r.recompute()
	return nil
}

// recompute derives the average from the distribution.
func (r *RatingSummary) recompute() {
	if r.Count <= 0 {
		r.Average = 0
		return
	}
	r.Average = float64(r.Distribution.WeightedSum()) / float64(r.Count)
}

// Consistent reports whether the stored count and average match the
// distribution. Used as the audit check in tests and maintenance.
func (r *RatingSummary) Consistent() bool {
	if r.Count != r.Distribution.Total() {
		return false
	}
	if r.Count == 0 {
		return r.Average == 0
	}
	want := float64(r.Distribution.WeightedSum()) / float64(r.Count)
	diff := r.Average - want
	if diff < 0 {
		diff = -diff
	}
	return diff < 1e-9
}
