package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// DailyCountClient calls the external daily-sequence counter:
//
//	GET {base}/receipts/daily-count/{typeCode}/{date} -> {"count": N}
//
// One request, one response. No retry policy lives here; the resolver's
// degraded fallback keeps documents rendering if the call never completes.
type DailyCountClient struct {
	base   string
	client *http.Client
}

// NewDailyCountClient creates a client for the counter service at base.
func NewDailyCountClient(base string) *DailyCountClient {
	return &DailyCountClient{
		base:   strings.TrimRight(base, "/"),
		client: &http.Client{Timeout: 5 * time.Second},
	}
}

// NextSequence implements SequenceSource.
func (c *DailyCountClient) NextSequence(ctx context.Context, typeCode string, day time.Time) (int, error) {
	url := fmt.Sprintf("%s/receipts/daily-count/%s/%s", c.base, typeCode, day.Format("2006-01-02"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("build daily-count request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("daily-count request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("daily-count service returned status %d", resp.StatusCode)
	}

	var body struct {
		Count int `json:"count"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, fmt.Errorf("decode daily-count response: %w", err)
	}
	if body.Count < 1 {
		return 0, fmt.Errorf("daily-count service returned invalid count %d", body.Count)
	}
	return body.Count, nil
}
