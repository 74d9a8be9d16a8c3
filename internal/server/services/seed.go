package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/streetsmarts/internal/dbx"
	"github.com/dmitrijs2005/streetsmarts/internal/logging"
	"github.com/dmitrijs2005/streetsmarts/internal/server/models"
	"github.com/dmitrijs2005/streetsmarts/internal/server/repositories/repomanager"
)

// SeedCities is the curated starting pool. Images are fetched lazily.
var SeedCities = []models.Location{
	// Europe
	{Name: "Paris, France", Lat: 48.8566, Lng: 2.3522},
	{Name: "London, UK", Lat: 51.5074, Lng: -0.1278},
	{Name: "Berlin, Germany", Lat: 52.5200, Lng: 13.4050},
	{Name: "Vienna, Austria", Lat: 48.2082, Lng: 16.3738},
	{Name: "Barcelona, Spain", Lat: 41.3851, Lng: 2.1734},
	{Name: "Florence, Italy", Lat: 43.7615, Lng: 11.2558},
	{Name: "Rome, Italy", Lat: 41.9028, Lng: 12.4964},
	{Name: "Moscow, Russia", Lat: 55.7558, Lng: 37.6173},
	{Name: "Stockholm, Sweden", Lat: 59.3293, Lng: 18.0686},
	{Name: "Helsinki, Finland", Lat: 60.1699, Lng: 24.9384},
	// North America
	{Name: "New York, USA", Lat: 40.7128, Lng: -74.0060},
	{Name: "Los Angeles, USA", Lat: 34.0522, Lng: -118.2437},
	{Name: "Chicago, USA", Lat: 41.8781, Lng: -87.6298},
	{Name: "Houston, USA", Lat: 29.7604, Lng: -95.3698},
	{Name: "Atlanta, USA", Lat: 33.7490, Lng: -84.3880},
	{Name: "Vancouver, Canada", Lat: 49.2827, Lng: -123.1207},
	{Name: "Toronto, Canada", Lat: 43.6532, Lng: -79.3832},
	{Name: "Portland, USA", Lat: 45.5152, Lng: -122.6784},
	{Name: "Seattle, USA", Lat: 47.6062, Lng: -122.3321},
	{Name: "San Francisco, USA", Lat: 37.7749, Lng: -122.4194},
	// Asia
	{Name: "Tokyo, Japan", Lat: 35.6762, Lng: 139.6503},
	{Name: "Shanghai, China", Lat: 31.2304, Lng: 121.4737},
	{Name: "Hong Kong", Lat: 22.3193, Lng: 114.1694},
	{Name: "Singapore", Lat: 1.3521, Lng: 103.8198},
	{Name: "Bangkok, Thailand", Lat: 13.7563, Lng: 100.5018},
	{Name: "Seoul, South Korea", Lat: 37.5665, Lng: 126.9780},
	{Name: "Delhi, India", Lat: 28.6139, Lng: 77.2090},
	{Name: "Mumbai, India", Lat: 19.0760, Lng: 72.8777},
	{Name: "Osaka, Japan", Lat: 34.6937, Lng: 135.5023},
	{Name: "Kolkata, India", Lat: 22.5726, Lng: 88.3639},
	// Southern hemisphere
	{Name: "Sydney, Australia", Lat: -33.8688, Lng: 151.2093},
	{Name: "São Paulo, Brazil", Lat: -23.5505, Lng: -46.6333},
	{Name: "Rio de Janeiro, Brazil", Lat: -22.9068, Lng: -43.1729},
	{Name: "Lima, Peru", Lat: -12.0464, Lng: -77.0428},
	{Name: "Buenos Aires, Argentina", Lat: -34.6037, Lng: -58.3816},
	// Africa
	{Name: "Cape Town, South Africa", Lat: -33.9249, Lng: 18.4241},
	{Name: "Johannesburg, South Africa", Lat: -26.2041, Lng: 28.0473},
	{Name: "Cairo, Egypt", Lat: 30.0444, Lng: 31.2357},
	{Name: "Lagos, Nigeria", Lat: 6.5244, Lng: 3.3792},
	{Name: "Abuja, Nigeria", Lat: 9.0765, Lng: 7.3986},
}

// SeedLocations inserts SeedCities in one transaction when the locations
// table is empty and returns how many rows were added.
func SeedLocations(ctx context.Context, db *sql.DB, m repomanager.RepositoryManager, log logging.Logger) (int, error) {
	n, err := m.Locations(db).Count(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		log.Info(ctx, "locations already present; skipping seed", "count", n)
		return 0, nil
	}

	err = dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := m.Locations(tx)
		for _, c := range SeedCities {
			loc := c
			if _, err := repo.Create(ctx, &loc); err != nil {
				return fmt.Errorf("seeding %s: %w", c.Name, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	log.Info(ctx, "seeded locations", "count", len(SeedCities))
	return len(SeedCities), nil
}
