package fetch

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"horobot/pkg/zodiac"
)

// Fetcher retrieves the raw compatibility cells for every sign: one
// string per percentage band, positionally aligned to the fixed band
// order. Signs the source has no data for are simply absent.
type Fetcher interface {
	Fetch(ctx context.Context) (map[zodiac.Sign][]string, error)
}

// Horoskopy scrapes the daily compatibility thermometer from
// horoskopy.cz, one page per sign.
type Horoskopy struct {
	client  *http.Client
	baseURL string
}

// NewHoroskopy creates a scraper for the given base URL.
func NewHoroskopy(baseURL string) *Horoskopy {
	return &Horoskopy{
		client:  &http.Client{Timeout: 5 * time.Second},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (h *Horoskopy) Fetch(ctx context.Context) (map[zodiac.Sign][]string, error) {
	data := make(map[zodiac.Sign][]string)

	for _, sign := range zodiac.AllSigns() {
		values, err := h.fetchSign(ctx, sign)
		if err != nil {
			return nil, err
		}
		if values != nil {
			data[sign] = values
		}
	}

	return data, nil
}

// fetchSign parses one sign page. A page without the thermometer block
// yields nil values, not an error: that sign contributes nothing.
func (h *Horoskopy) fetchSign(ctx context.Context, sign zodiac.Sign) ([]string, error) {
	reqURL := h.baseURL + "/" + string(sign)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request for %s: %w", sign, err)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", sign, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: status %d", sign, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", sign, err)
	}

	thermometer := doc.Find(`div#teplomer[data-dot="d_vztah_k_ostatnim"]`)
	if thermometer.Length() == 0 {
		return nil, nil
	}

	var values []string
	thermometer.Find("li").Each(func(_ int, li *goquery.Selection) {
		text := strings.TrimSpace(li.Text())
		if text == "" {
			text = " "
		}
		values = append(values, text)
	})

	return values, nil
}
