package neo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/mr1hm/go-impact-sim/internal/models"
)

// NASA NeoWs feed client. Only the fields the catalog needs are decoded;
// NeoWs reports no bulk density, so ingested bodies get the default stony
// value and overrides stay available at simulation time.

const neowsDensityKgM3 = 3000.0

type feedResponse struct {
	NearEarthObjects map[string][]feedObject `json:"near_earth_objects"`
}

type feedObject struct {
	ID                string            `json:"id"`
	Name              string            `json:"name"`
	Hazardous         bool              `json:"is_potentially_hazardous_asteroid"`
	EstimatedDiameter estimatedDiameter `json:"estimated_diameter"`
	CloseApproaches   []closeApproach   `json:"close_approach_data"`
}

type estimatedDiameter struct {
	Meters diameterRange `json:"meters"`
}

type diameterRange struct {
	Min float64 `json:"estimated_diameter_min"`
	Max float64 `json:"estimated_diameter_max"`
}

type closeApproach struct {
	Date             string           `json:"close_approach_date"`
	RelativeVelocity relativeVelocity `json:"relative_velocity"`
}

type relativeVelocity struct {
	KmPerSecond string `json:"kilometers_per_second"`
}

func (m *Manager) fetchFeed(ctx context.Context, baseURL, apiKey string) ([]*models.Asteroid, error) {
	today := time.Now().UTC().Format("2006-01-02")

	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("error parsing feed url: %w", err)
	}
	q := u.Query()
	q.Set("start_date", today)
	q.Set("end_date", today)
	q.Set("api_key", apiKey)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	// One poll per interval; keeping the connection alive buys nothing.
	req.Close = true

	client := &http.Client{
		Timeout: 15 * time.Second,
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error while doing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d - status: %s", resp.StatusCode, resp.Status)
	}

	var data feedResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("error decoding resp.Body: %w", err)
	}

	var asteroids []*models.Asteroid
	for _, objects := range data.NearEarthObjects {
		for _, obj := range objects {
			asteroids = append(asteroids, toAsteroid(obj))
		}
	}
	return asteroids, nil
}

func toAsteroid(obj feedObject) *models.Asteroid {
	a := &models.Asteroid{
		ID:          "neo_" + obj.ID,
		Name:        obj.Name,
		Source:      "neows",
		DiameterM:   (obj.EstimatedDiameter.Meters.Min + obj.EstimatedDiameter.Meters.Max) / 2.0,
		DensityKgM3: neowsDensityKgM3,
		Hazardous:   obj.Hazardous,
		CreatedAt:   time.Now(),
	}
	if len(obj.CloseApproaches) > 0 {
		ca := obj.CloseApproaches[0]
		a.ApproachDate = ca.Date
		if v, err := strconv.ParseFloat(ca.RelativeVelocity.KmPerSecond, 64); err == nil {
			a.VelocityKms = v
		}
	}
	return a
}
