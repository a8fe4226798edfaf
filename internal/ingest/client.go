package ingest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/ncuwatch/taoyuanwx/internal/httputil"
	"github.com/ncuwatch/taoyuanwx/internal/metrics"
	"github.com/ncuwatch/taoyuanwx/internal/models"
)

// Client fetches the township forecast feed.
type Client struct {
	url    string
	client *http.Client
}

func NewClient(url string) *Client {
	return &Client{
		url:    url,
		client: httputil.NewClient(),
	}
}

type apiResponse struct {
	CWAOpenData struct {
		Dataset struct {
			DatasetInfo struct {
				DataValueInfo map[string]models.ValueMeta `json:"DataValueInfo"`
			} `json:"DatasetInfo"`
			Locations struct {
				Location []apiLocation `json:"Location"`
			} `json:"Locations"`
		} `json:"Dataset"`
	} `json:"cwaopendata"`
}

type apiLocation struct {
	LocationName   string       `json:"LocationName"`
	WeatherElement []apiElement `json:"WeatherElement"`
}

type apiElement struct {
	ElementName string    `json:"ElementName"`
	Time        []apiTime `json:"Time"`
}

type apiTime struct {
	StartTime    string          `json:"StartTime"`
	DataTime     string          `json:"DataTime"`
	ElementValue models.ValueBag `json:"ElementValue"`
}

// Fetch downloads and parses the full feed into a dataset snapshot.
func (c *Client) Fetch() (*models.Dataset, error) {
	start := time.Now()

	var body []byte
	operation := func() error {
		resp, err := c.client.Get(c.url)
		if err != nil {
			return fmt.Errorf("fetch forecast: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError {
			return fmt.Errorf("fetch forecast: status %d", resp.StatusCode)
		}
		if resp.StatusCode != http.StatusOK {
			return backoff.Permanent(fmt.Errorf("fetch forecast: status %d", resp.StatusCode))
		}

		body, err = io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("read body: %w", err)
		}
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = 2 * time.Minute
	if err := backoff.Retry(operation, bo); err != nil {
		metrics.ForecastFetchesTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	metrics.ForecastFetchesTotal.WithLabelValues("ok").Inc()
	metrics.ForecastFetchLatency.Observe(time.Since(start).Seconds())

	return Parse(body)
}

// Parse decodes a feed document into a dataset. Sub-value insertion order is
// preserved so fallback selection stays deterministic.
func Parse(body []byte) (*models.Dataset, error) {
	var data apiResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("unmarshal forecast: %w", err)
	}

	rawLocs := data.CWAOpenData.Dataset.Locations.Location
	if len(rawLocs) == 0 {
		return nil, fmt.Errorf("forecast feed has no locations")
	}

	ds := &models.Dataset{
		Meta:      data.CWAOpenData.Dataset.DatasetInfo.DataValueInfo,
		FetchedAt: time.Now(),
	}
	for _, raw := range rawLocs {
		d := &models.District{
			Name:     raw.LocationName,
			Elements: make(map[string]*models.WeatherElement, len(raw.WeatherElement)),
		}
		for _, el := range raw.WeatherElement {
			elem := &models.WeatherElement{Name: el.ElementName}
			for _, t := range el.Time {
				elem.Times = append(elem.Times, models.TimeStep{
					StartTime: t.StartTime,
					DataTime:  t.DataTime,
					Values:    t.ElementValue,
				})
			}
			d.Elements[el.ElementName] = elem
		}
		ds.Districts = append(ds.Districts, d)
	}
	ds.Index()
	return ds, nil
}
