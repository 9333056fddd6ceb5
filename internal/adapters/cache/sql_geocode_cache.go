package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"trip-route-service/internal/domain"
	"trip-route-service/internal/platform/obs"
)

// SQLGeocodeCache is a SQL-backed cache mapping addresses to coordinates.
type SQLGeocodeCache struct {
	DB *sql.DB
}

func NewSQLGeocodeCache(db *sql.DB) *SQLGeocodeCache {
	return &SQLGeocodeCache{DB: db}
}

// Fetch cached coordinates for a single address.
func (s *SQLGeocodeCache) Get(ctx context.Context, address string) (_ domain.Coordinates, _ bool, err error) {
	defer obs.Time(ctx, "geocode.cache.Get")(&err)

	if s.DB == nil {
		return domain.Coordinates{}, false, errors.New("geocode cache: db is nil")
	}

	address = strings.TrimSpace(address)
	if address == "" {
		return domain.Coordinates{}, false, nil
	}

	q := `
	SELECT lon, lat
    FROM geocode_cache
    WHERE address = $1;
	`

	var lon, lat float64
	err = s.DB.QueryRowContext(ctx, q, address).Scan(&lon, &lat)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Coordinates{}, false, nil
	}
	if err != nil {
		return domain.Coordinates{}, false, fmt.Errorf("get geocode cache: query geocode_cache table: %w", err)
	}

	return domain.Coordinates{Lon: lon, Lat: lat}, true, nil
}

// Store an address -> coordinate mapping in the cache.
func (s *SQLGeocodeCache) Put(ctx context.Context, address string, coords domain.Coordinates) error {
	if s.DB == nil {
		return errors.New("geocode cache: db is nil")
	}

	address = strings.TrimSpace(address)
	if address == "" {
		return errors.New("insert geocode cache: empty address key")
	}

	q := `
	INSERT INTO geocode_cache (address, lon, lat)
    VALUES ($1, $2, $3)
	ON CONFLICT (address) DO UPDATE
	SET lon = EXCLUDED.lon,
		lat = EXCLUDED.lat;
	`

	if _, err := s.DB.ExecContext(ctx, q, address, coords.Lon, coords.Lat); err != nil {
		return fmt.Errorf("insert geocode cache coord=%q: %w", address, err)
	}

	return nil
}
