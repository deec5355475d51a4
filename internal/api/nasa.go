package api

import (
	"context"
	"fmt"
	"math/rand"
	"net/url"
)

const nasaBase = "https://api.nasa.gov"

// APOD is one Astronomy Picture of the Day entry.
type APOD struct {
	Title       string `json:"title"`
	Date        string `json:"date"`
	Explanation string `json:"explanation"`
	URL         string `json:"url"`
	HDURL       string `json:"hdurl"`
	MediaType   string `json:"media_type"`
	Thumbnail   string `json:"thumbnail_url"`
	Copyright   string `json:"copyright"`
}

// Image returns the best displayable URL for the entry.
func (a APOD) Image() string {
	if a.MediaType == "video" {
		return a.Thumbnail
	}
	if a.HDURL != "" {
		return a.HDURL
	}
	return a.URL
}

// APODToday fetches today's picture, or the one for date (YYYY-MM-DD) when
// non-empty.
func (c *Client) APODToday(ctx context.Context, date string) (*APOD, error) {
	params := url.Values{"api_key": {c.nasaKey}, "thumbs": {"true"}}
	if date != "" {
		params.Set("date", date)
	}

	var out APOD
	if err := c.getJSON(ctx, nasaBase+"/planetary/apod", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// APODRandom fetches one random picture from the archive.
func (c *Client) APODRandom(ctx context.Context) (*APOD, error) {
	params := url.Values{"api_key": {c.nasaKey}, "thumbs": {"true"}, "count": {"1"}}

	var out []APOD
	if err := c.getJSON(ctx, nasaBase+"/planetary/apod", params, &out); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("NASA returned no pictures")
	}
	return &out[0], nil
}

// MarsPhoto is one Mars rover camera shot.
type MarsPhoto struct {
	ImgSrc    string `json:"img_src"`
	EarthDate string `json:"earth_date"`
	Camera    struct {
		FullName string `json:"full_name"`
	} `json:"camera"`
	Rover struct {
		Name string `json:"name"`
	} `json:"rover"`
}

// MarsPhotoRandom fetches a random sol-1000 photo from the given rover
// (curiosity, opportunity, or spirit).
func (c *Client) MarsPhotoRandom(ctx context.Context, rover string) (*MarsPhoto, error) {
	params := url.Values{"api_key": {c.nasaKey}, "sol": {"1000"}}

	var out struct {
		Photos []MarsPhoto `json:"photos"`
	}
	endpoint := fmt.Sprintf("%s/mars-photos/api/v1/rovers/%s/photos", nasaBase, url.PathEscape(rover))
	if err := c.getJSON(ctx, endpoint, params, &out); err != nil {
		return nil, err
	}
	if len(out.Photos) == 0 {
		return nil, fmt.Errorf("no photos available for rover %s", rover)
	}
	return &out.Photos[rand.Intn(len(out.Photos))], nil
}
