package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"venue-radar/pkg/config"
)

// TrendingVenue is a single entry of a trending search result. Only the
// identifier matters to the poller; the rest of the payload is ignored.
type TrendingVenue struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Detail is the provider's full venue payload. Every field is optional;
// absent fields decode to their zero value.
type Detail struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Rating  float64 `json:"rating"`
	HereNow struct {
		Count uint32 `json:"count"`
	} `json:"hereNow"`
	Price struct {
		Tier    int    `json:"tier"`
		Message string `json:"message"`
	} `json:"price"`
	Categories []struct {
		Name    string `json:"name"`
		Primary bool   `json:"primary"`
	} `json:"categories"`
	Location struct {
		Lat              float64  `json:"lat"`
		Lng              float64  `json:"lng"`
		FormattedAddress []string `json:"formattedAddress"`
	} `json:"location"`
	Phrases []struct {
		Text string `json:"text"`
	} `json:"phrases"`
	Tips   Groups `json:"tips"`
	Listed Groups `json:"listed"`
}

// Groups is the provider's grouped-items envelope used for tips and
// curated lists.
type Groups struct {
	Groups []struct {
		Items []GroupItem `json:"items"`
	} `json:"groups"`
}

type GroupItem struct {
	Text        string `json:"text"`
	Description string `json:"description"`
}

// Client talks to the Foursquare v2 venues API.
type Client struct {
	Log        *zap.Logger
	HTTPClient *http.Client
	Config     config.ProviderConfig
}

func NewClient(log *zap.Logger, httpClient *http.Client, cfg config.ProviderConfig) *Client {
	return &Client{Log: log, HTTPClient: httpClient, Config: cfg}
}

// SearchTrending returns the venues currently trending around a coordinate.
// Radius and result cap come from the provider config.
func (c *Client) SearchTrending(ctx context.Context, lat, lng float64) ([]TrendingVenue, error) {
	params := url.Values{}
	params.Set("v", c.Config.Version)
	params.Set("ll", fmt.Sprintf("%f,%f", lat, lng))
	params.Set("client_id", c.Config.ClientID)
	params.Set("client_secret", c.Config.ClientSecret)
	params.Set("radius", strconv.Itoa(c.Config.RadiusMeters))
	params.Set("limit", strconv.Itoa(c.Config.Limit))

	var env struct {
		Response struct {
			Venues []TrendingVenue `json:"venues"`
		} `json:"response"`
	}
	if err := c.getJSON(ctx, c.Config.BaseURL+"/venues/trending", params, &env); err != nil {
		return nil, fmt.Errorf("trending search (%f, %f): %w", lat, lng, err)
	}
	return env.Response.Venues, nil
}

// VenueDetail fetches the full detail record for one venue id.
func (c *Client) VenueDetail(ctx context.Context, id string) (Detail, error) {
	params := url.Values{}
	params.Set("v", c.Config.Version)
	params.Set("oauth_token", c.Config.OAuthToken)

	var env struct {
		Response struct {
			Venue Detail `json:"venue"`
		} `json:"response"`
	}
	if err := c.getJSON(ctx, c.Config.BaseURL+"/venues/"+url.PathEscape(id), params, &env); err != nil {
		return Detail{}, fmt.Errorf("venue %s detail: %w", id, err)
	}
	return env.Response.Venue, nil
}

func (c *Client) getJSON(ctx context.Context, rawURL string, params url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.Log.Warn("Failed to close response body", zap.Error(err))
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, body)
	}
	return json.Unmarshal(body, out)
}
