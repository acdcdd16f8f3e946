package cache

import (
	"context"
	"encoding/json"

	redis "github.com/redis/go-redis/v9"

	"github.com/videoclub/rental/internal/model"
)

var ctx = context.Background()

type Cache struct {
	Client *redis.Client
}

func New(url string) (*Cache, error) {
	client := redis.NewClient(
		&redis.Options{
			Addr:     url,
			Password: "",
			DB:       0,
		},
	)
	return &Cache{Client: client}, nil
}

// WarmAvailability resets the per-movie available-copy counters from the
// authoritative database counts. Called once at startup.
func (c *Cache) WarmAvailability(movieIDAvailableMap map[uint]int64) error {
	for movieID, available := range movieIDAvailableMap {
		key := MakeMovieAvailabilityKey(movieID)
		if err := c.Client.Set(ctx, key, available, 0).Err(); err != nil {
			return err
		}
	}
	return nil
}

/*
* movie listing
 */

func (c *Cache) GetMovieList() ([]model.Movie, error) {
	data, err := c.Client.Get(ctx, MovieListKey).Bytes()
	if err != nil {
		return nil, err
	}
	var movies []model.Movie
	if err := json.Unmarshal(data, &movies); err != nil {
		return nil, err
	}
	return movies, nil
}

func (c *Cache) SetMovieList(movies []model.Movie) error {
	data, err := json.Marshal(movies)
	if err != nil {
		return err
	}
	return c.Client.Set(ctx, MovieListKey, data, MovieListTTL).Err()
}

func (c *Cache) InvalidateMovieList() error {
	return c.Client.Del(ctx, MovieListKey).Err()
}

/*
* available copies of a movie
 */

func (c *Cache) GetAvailability(movieID uint) (int64, error) {
	return c.Client.Get(ctx, MakeMovieAvailabilityKey(movieID)).Int64()
}

func (c *Cache) IncrAvailability(movieID uint) error {
	return c.Client.Incr(ctx, MakeMovieAvailabilityKey(movieID)).Err()
}

func (c *Cache) DecrAvailability(movieID uint) error {
	return c.Client.Decr(ctx, MakeMovieAvailabilityKey(movieID)).Err()
}

func (c *Cache) DeleteAvailability(movieID uint) error {
	return c.Client.Del(ctx, MakeMovieAvailabilityKey(movieID)).Err()
}
