package tui

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"stieregg/internal/domain/daterange"
)

// Client is a minimal consumer of the availability service API.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// ApartmentSummary mirrors the apartment record served by the API.
type ApartmentSummary struct {
	ID   string `json:"id"`
	Slug string `json:"slug"`
	Name struct {
		DE string `json:"de"`
		EN string `json:"en"`
	} `json:"name"`
	Capacity int `json:"capacity"`
	Bedrooms int `json:"bedrooms"`
}

// InquiryResult carries the composed mailto link for a validated stay.
type InquiryResult struct {
	Mailto    string `json:"mailto"`
	Nights    int    `json:"nights"`
	MinNights int    `json:"minNights"`
	Available bool   `json:"available"`
	Error     string `json:"error"`
}

func (c *Client) Apartments(ctx context.Context) ([]ApartmentSummary, error) {
	var payload struct {
		Apartments []ApartmentSummary `json:"apartments"`
	}
	if err := c.getJSON(ctx, "/api/v1/apartments", nil, &payload); err != nil {
		return nil, err
	}
	return payload.Apartments, nil
}

func (c *Client) BookedRanges(ctx context.Context, slug string) ([]daterange.BookedRange, error) {
	var payload struct {
		BookedRanges []struct {
			Start string `json:"start"`
			End   string `json:"end"`
		} `json:"bookedRanges"`
	}
	q := url.Values{"slug": {slug}}
	if err := c.getJSON(ctx, "/api/v1/availability", q, &payload); err != nil {
		return nil, err
	}

	ranges := make([]daterange.BookedRange, 0, len(payload.BookedRanges))
	for _, r := range payload.BookedRanges {
		start, err := daterange.ParseDate(r.Start)
		if err != nil {
			continue
		}
		end, err := daterange.ParseDate(r.End)
		if err != nil {
			continue
		}
		ranges = append(ranges, daterange.BookedRange{Start: start, End: end})
	}
	return ranges, nil
}

func (c *Client) Inquiry(ctx context.Context, slug string, checkIn, checkOut time.Time, guests int) (InquiryResult, error) {
	q := url.Values{
		"slug":     {slug},
		"checkIn":  {daterange.FormatDate(checkIn)},
		"checkOut": {daterange.FormatDate(checkOut)},
	}
	if guests > 0 {
		q.Set("guests", fmt.Sprintf("%d", guests))
	}
	var result InquiryResult
	if err := c.getJSON(ctx, "/api/v1/inquiry", q, &result); err != nil {
		return InquiryResult{}, err
	}
	return result, nil
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	// Validation responses (422) still carry a JSON body worth decoding.
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusUnprocessableEntity {
		return fmt.Errorf("tui: %s returned status %d", path, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
