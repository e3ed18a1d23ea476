package rssfeeds

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"econoshorts/types"

	"github.com/mmcdole/gofeed"
)

// FetchFeed retrieves and parses one RSS/Atom feed, returning article metadata.
func FetchFeed(ctx context.Context, feed FeedConfig, maxCount int) ([]*types.Article, error) {
	parser := gofeed.NewParser()
	parsed, err := parser.ParseURLWithContext(feed.URL, ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch feed %s: %w", feed.Name, err)
	}

	count := min(len(parsed.Items), maxCount)
	articles := make([]*types.Article, 0, count)

	for i := 0; i < count; i++ {
		item := parsed.Items[i]

		id := item.GUID
		if id == "" && item.Link != "" {
			id = types.GenerateID(item.Link)
		}

		var publishedAt time.Time
		if item.PublishedParsed != nil {
			publishedAt = *item.PublishedParsed
		} else if item.UpdatedParsed != nil {
			publishedAt = *item.UpdatedParsed
		}

		summary := item.Description
		if summary == "" {
			summary = item.Content
		}

		articles = append(articles, &types.Article{
			ID:          id,
			Source:      feed.Name,
			Title:       item.Title,
			URL:         item.Link,
			PublishedAt: publishedAt,
			FetchedAt:   time.Now(),
			Summary:     summary,
		})
	}
	return articles, nil
}

// CollectEconomicNews fetches every preset feed, keeps only economic
// headlines and returns them newest first. A failing feed is logged and
// skipped; collection degrades rather than fails.
func CollectEconomicNews(ctx context.Context, perFeed int) []*types.Article {
	var all []*types.Article
	for _, feed := range FeedPresets {
		articles, err := FetchFeed(ctx, feed, perFeed)
		if err != nil {
			log.Printf("[rss] ❌ %s: %v", feed.Name, err)
			continue
		}
		for _, a := range articles {
			if IsEconomic(a) {
				all = append(all, a)
			}
		}
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].PublishedAt.After(all[j].PublishedAt)
	})
	log.Printf("[rss] collected %d economic articles", len(all))
	return all
}

// IsEconomic reports whether an article's title or summary mentions an
// economic keyword.
func IsEconomic(a *types.Article) bool {
	text := a.Title + " " + a.Summary
	for _, kw := range economicKeywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// TrendingTopics counts keyword hits across articles and returns keywords
// seen at least twice, most frequent first.
func TrendingTopics(articles []*types.Article) []string {
	counts := map[string]int{}
	for _, a := range articles {
		text := a.Title + " " + a.Summary
		for _, kw := range economicKeywords {
			if strings.Contains(text, kw) {
				counts[kw]++
			}
		}
	}

	var topics []string
	for kw, n := range counts {
		if n >= 2 {
			topics = append(topics, kw)
		}
	}
	sort.Slice(topics, func(i, j int) bool {
		if counts[topics[i]] != counts[topics[j]] {
			return counts[topics[i]] > counts[topics[j]]
		}
		return topics[i] < topics[j]
	})
	return topics
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
