package directory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
)

// fetchListingHeadless renders the listing in a headless browser before
// reading entries, for directories that build the page with JavaScript.
func (im *Importer) fetchListingHeadless(ctx context.Context, t Target) ([]listItem, error) {
	if im == nil {
		return nil, fmt.Errorf("nil importer")
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
			chromedp.UserAgent("Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36"),
		)...,
	)
	defer allocCancel()

	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	reqCtx, reqCancel := context.WithTimeout(browserCtx, 25*time.Second)
	defer reqCancel()

	sel := t.ItemSelector
	nameSel := t.NameSelector
	citySel := t.CitySelector
	linkSel := t.LinkSelector

	script := fmt.Sprintf(`Array.from(document.querySelectorAll(%q)).map(el => {
		const pick = s => { if (!s) return ''; const n = el.querySelector(s); return n ? n.textContent.trim() : ''; };
		const link = s => { const n = s ? el.querySelector(s) : el; return n && n.getAttribute ? (n.getAttribute('href') || '') : ''; };
		return { name: %s, city: pick(%q), url: link(%q) };
	})`, sel, headlessNameExpr(nameSel), citySel, linkSel)

	var raw []struct {
		Name string `json:"name"`
		City string `json:"city"`
		URL  string `json:"url"`
	}
	err := chromedp.Run(reqCtx,
		chromedp.Navigate(t.ListURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Sleep(1500*time.Millisecond),
		chromedp.EvaluateAsDevTools(script, &raw),
	)
	if err != nil {
		return nil, err
	}

	base := strings.TrimRight(t.ListURL, "/")
	dedup := map[string]struct{}{}
	out := make([]listItem, 0, len(raw))
	for _, r := range raw {
		name := strings.TrimSpace(r.Name)
		if name == "" {
			continue
		}
		city := strings.TrimSpace(r.City)

		key := strings.ToLower(name) + "|" + strings.ToLower(city)
		if _, ok := dedup[key]; ok {
			continue
		}
		dedup[key] = struct{}{}

		u := strings.TrimSpace(r.URL)
		if strings.HasPrefix(u, "/") {
			u = base + u
		}
		out = append(out, listItem{Name: name, City: city, URL: u})
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("no directory entries found (headless)")
	}
	return out, nil
}

func headlessNameExpr(nameSel string) string {
	if strings.TrimSpace(nameSel) == "" {
		return "el.textContent.trim()"
	}
	return fmt.Sprintf("pick(%q)", nameSel)
}
