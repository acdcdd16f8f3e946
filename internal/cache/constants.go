package cache

import (
	"fmt"
	"time"
)

// key names definition
const (
	MovieListKey = "catalog:movies" // cached JSON of the full movie listing

	MovieAvailabilityKey = "movie:%d:copies:available" // available-copy counter, '%d' is movie id
)

// the listing cache expires on its own even without invalidation
const MovieListTTL = 5 * time.Minute

func MakeMovieAvailabilityKey(movieID uint) string {
	return fmt.Sprintf(MovieAvailabilityKey, movieID)
}
