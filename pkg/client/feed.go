package client

import (
	"context"
	"sync"
)

// FeedFetcher loads one feed page.
type FeedFetcher func(ctx context.Context, search string, pageIndex, pageSize int) ([]FeedItem, error)

// FeedPager accumulates feed pages in order, keyed by content id. A page
// shorter than the page size ends the feed.
type FeedPager struct {
	mu       sync.Mutex
	fetch    FeedFetcher
	pageSize int
	search   string
	next     int
	done     bool
	items    []FeedItem
	seen     map[string]struct{}
}

func NewFeedPager(fetch FeedFetcher, pageSize int) *FeedPager {
	if pageSize <= 0 {
		pageSize = 10
	}
	return &FeedPager{fetch: fetch, pageSize: pageSize, seen: map[string]struct{}{}}
}

// Pager binds a feed pager to this client and session.
func (c *Client) Pager(s *Session, pageSize int) *FeedPager {
	return NewFeedPager(func(ctx context.Context, search string, pageIndex, size int) ([]FeedItem, error) {
		return c.ListFeed(ctx, s, search, pageIndex, size)
	}, pageSize)
}

// Next loads the following page and returns the items it added. After the
// end of the feed it returns nothing without calling the server.
func (p *FeedPager) Next(ctx context.Context) ([]FeedItem, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.done {
		return nil, nil
	}

	page, err := p.fetch(ctx, p.search, p.next, p.pageSize)
	if err != nil {
		return nil, err
	}
	p.next++
	if len(page) < p.pageSize {
		p.done = true
	}

	added := make([]FeedItem, 0, len(page))
	for _, it := range page {
		if _, dup := p.seen[it.ID]; dup {
			continue
		}
		p.seen[it.ID] = struct{}{}
		p.items = append(p.items, it)
		added = append(added, it)
	}
	return added, nil
}

// Reset drops everything loaded and restarts at page 0 with a new search term.
func (p *FeedPager) Reset(search string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.search = search
	p.next = 0
	p.done = false
	p.items = nil
	p.seen = map[string]struct{}{}
}

func (p *FeedPager) Items() []FeedItem {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]FeedItem(nil), p.items...)
}

func (p *FeedPager) Done() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.done
}
