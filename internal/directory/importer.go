package directory

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"
	"github.com/google/uuid"

	"pump-partner/internal/database"
	"pump-partner/internal/repository"
)

// Target describes one gym directory site. Selectors are CSS; ItemSelector
// matches one gym entry in the listing, the rest are resolved inside it.
type Target struct {
	SourceName   string
	ListURL      string
	City         string
	ItemSelector string
	NameSelector string
	CitySelector string
	LinkSelector string

	// Headless switches the listing fetch to a real browser for sites
	// that render entries with JavaScript.
	Headless bool
}

type listItem struct {
	Name string
	City string
	URL  string
}

// Importer pulls gym entries from directory sites into the gyms table,
// with run bookkeeping per source.
type Importer struct {
	db     database.DB
	gyms   repository.GymRepository
	logger *log.Logger
}

func NewImporter(db database.DB, gyms repository.GymRepository, logger *log.Logger) *Importer {
	if logger == nil {
		logger = log.Default()
	}
	return &Importer{db: db, gyms: gyms, logger: logger}
}

// Import processes every target. A failing target is logged and skipped;
// the run only errors on setup problems.
func (im *Importer) Import(ctx context.Context, targets []Target, workers int) error {
	if im == nil || im.db == nil || im.gyms == nil {
		return fmt.Errorf("nil importer/db")
	}
	if workers <= 0 {
		workers = 4
	}

	for _, t := range targets {
		t := t
		if strings.TrimSpace(t.SourceName) == "" || strings.TrimSpace(t.ListURL) == "" {
			continue
		}
		if strings.TrimSpace(t.ItemSelector) == "" {
			t.ItemSelector = "a"
		}

		sourceID, err := ensureSource(ctx, im.db, t.SourceName, t.ListURL)
		if err != nil {
			im.logger.Printf("directory | source setup failed source=%s err=%v", t.SourceName, err)
			continue
		}

		runID, err := createImportRun(ctx, im.db, sourceID)
		if err != nil {
			im.logger.Printf("directory | run setup failed source=%s err=%v", t.SourceName, err)
			continue
		}

		items, err := im.fetchListing(ctx, t)
		if err != nil {
			_ = logImport(ctx, im.db, runID, "error", fmt.Sprintf("listing %s: %v", t.ListURL, err))
			_ = finishImportRun(context.Background(), im.db, runID, "failed")
			continue
		}

		pool := NewWorkerPool(workers, workers*2, 4)
		results := pool.Run(ctx)

		scrapedAt := time.Now().UTC()
		submitted := 0
		for _, it := range items {
			it := it
			if strings.TrimSpace(it.Name) == "" {
				continue
			}
			submitted++
			pool.Submit(func(ctx context.Context) error {
				return im.gyms.Upsert(ctx, repository.Gym{
					ID:        uuid.New(),
					Name:      it.Name,
					City:      pickNonEmpty(it.City, t.City),
					URL:       it.URL,
					Source:    t.SourceName,
					ScrapedAt: &scrapedAt,
				})
			})
		}
		pool.Close()

		var done, failed int
		for res := range results {
			if res.Err != nil {
				failed++
				_ = logImport(ctx, im.db, runID, "error", fmt.Sprintf("gym upsert: %v", res.Err))
			} else {
				done++
			}
		}

		status := "finished"
		if submitted > 0 && done == 0 {
			status = "failed"
		}
		_ = finishImportRun(context.Background(), im.db, runID, status)
		im.logger.Printf("directory | import done source=%s gyms=%d failed=%d", t.SourceName, done, failed)
	}

	return nil
}

func (im *Importer) fetchListing(ctx context.Context, t Target) ([]listItem, error) {
	if t.Headless {
		return im.fetchListingHeadless(ctx, t)
	}
	return im.fetchListingColly(ctx, t)
}

func (im *Importer) fetchListingColly(ctx context.Context, t Target) ([]listItem, error) {
	allowed := hostFromURL(t.ListURL)
	var c *colly.Collector
	if allowed == "" {
		c = colly.NewCollector()
	} else {
		c = colly.NewCollector(colly.AllowedDomains(allowed))
	}
	_ = c.Limit(&colly.LimitRule{DomainGlob: "*", Parallelism: 2, RandomDelay: 850 * time.Millisecond, Delay: 450 * time.Millisecond})

	items := make([]listItem, 0)
	dedup := map[string]struct{}{}

	c.OnHTML(t.ItemSelector, func(e *colly.HTMLElement) {
		name := strings.TrimSpace(e.Text)
		if strings.TrimSpace(t.NameSelector) != "" {
			name = strings.TrimSpace(e.DOM.Find(t.NameSelector).Text())
		}
		if name == "" {
			return
		}

		city := ""
		if strings.TrimSpace(t.CitySelector) != "" {
			city = strings.TrimSpace(e.DOM.Find(t.CitySelector).Text())
		}

		link := strings.TrimSpace(e.Attr("href"))
		if strings.TrimSpace(t.LinkSelector) != "" {
			if href, ok := e.DOM.Find(t.LinkSelector).Attr("href"); ok {
				link = strings.TrimSpace(href)
			}
		}
		if link != "" {
			link = e.Request.AbsoluteURL(link)
		}

		key := strings.ToLower(name) + "|" + strings.ToLower(city)
		if _, ok := dedup[key]; ok {
			return
		}
		dedup[key] = struct{}{}

		items = append(items, listItem{Name: name, City: city, URL: link})
	})

	var reqErr error
	c.OnError(func(r *colly.Response, err error) {
		reqErr = err
	})

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if err := c.Visit(t.ListURL); err != nil {
		return nil, err
	}
	c.Wait()
	if reqErr != nil {
		return nil, reqErr
	}
	return items, nil
}
