package services

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"gorm.io/gorm"
)

const (
	scimagoJournalURL = "https://www.scimagojr.com/journalsearch.php"
	scrapeUserAgent   = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36"
)

// ScrapeTarget identifies one journal page to fetch.
type ScrapeTarget struct {
	SourceID string
	Title    string
}

// ScopeScrapeSummary reports a scrape run.
type ScopeScrapeSummary struct {
	JournalsProcessed int            `json:"journals_processed"`
	ScopesFound       int            `json:"scopes_found"`
	JournalsFailed    int            `json:"journals_failed"`
	Failed            []FailedRecord `json:"failed,omitempty"`
}

// ScopeScrapeService fetches journal pages from SCImago, flattens them to
// text, extracts the scope narrative and upserts journal and scope rows.
// Fetches are strictly sequential with a fixed delay between requests.
// A scrape writes only the journal identity and scope text; descriptive
// fields, metrics and associations stored by an earlier import stay intact.
type ScopeScrapeService struct {
	sync    *JournalSyncService
	client  *http.Client
	baseURL string
	delay   time.Duration
}

// NewScopeScrapeService constructs a ScopeScrapeService.
func NewScopeScrapeService(db *gorm.DB, client *http.Client, delay time.Duration) *ScopeScrapeService {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	if delay <= 0 {
		delay = 1500 * time.Millisecond
	}
	return &ScopeScrapeService{
		sync:    NewJournalSyncService(db),
		client:  client,
		baseURL: scimagoJournalURL,
		delay:   delay,
	}
}

// RunForTargets processes the targets in order. A page that yields no scope
// is not an error; a non-OK status fails that journal and the run continues;
// a transport failure or cancellation aborts the run.
func (s *ScopeScrapeService) RunForTargets(ctx context.Context, targets []ScrapeTarget) (*ScopeScrapeSummary, error) {
	summary := &ScopeScrapeSummary{}

	for i, target := range targets {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		pageText, fatal, err := s.fetchPageText(ctx, target.SourceID)
		if err != nil {
			if fatal {
				return nil, err
			}
			summary.JournalsFailed++
			summary.Failed = append(summary.Failed, FailedRecord{
				SourceID: target.SourceID,
				Title:    target.Title,
				Reason:   err.Error(),
			})
			log.Printf("scope scrape: failed to fetch %q (source %s): %v", target.Title, target.SourceID, err)
			continue
		}

		scope := ExtractScopeDescription(pageText)
		if scope != "" {
			summary.ScopesFound++
		}

		if _, err := s.sync.SyncScope(ctx, target.SourceID, target.Title, scope, &JournalSyncResult{}); err != nil {
			summary.JournalsFailed++
			summary.Failed = append(summary.Failed, FailedRecord{
				SourceID: target.SourceID,
				Title:    target.Title,
				Reason:   err.Error(),
			})
			log.Printf("scope scrape: failed to store %q (source %s): %v", target.Title, target.SourceID, err)
			continue
		}

		summary.JournalsProcessed++

		if i < len(targets)-1 {
			select {
			case <-time.After(s.delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}

	return summary, nil
}

// fetchPageText downloads one journal page and flattens it to visible text.
// The second return reports whether the error is connection-level and should
// abort the whole run.
func (s *ScopeScrapeService) fetchPageText(ctx context.Context, sourceID string) (string, bool, error) {
	reqURL, err := url.Parse(s.baseURL)
	if err != nil {
		return "", true, err
	}
	query := reqURL.Query()
	query.Set("q", sourceID)
	query.Set("tip", "sid")
	reqURL.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return "", true, err
	}
	req.Header.Set("User-Agent", scrapeUserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", true, fmt.Errorf("fetch journal page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", false, fmt.Errorf("journal page returned status %d", resp.StatusCode)
	}

	text, err := FlattenHTMLText(resp.Body)
	if err != nil {
		return "", false, fmt.Errorf("parse journal page: %w", err)
	}
	return text, false, nil
}
