package rssfeeds

import (
	"fmt"
	"log"
	"sync"
	"time"

	"econoshorts/types"

	readability "github.com/go-shiori/go-readability"
)

const (
	workerCount      = 5
	extractorTimeout = 30 * time.Second
)

// ExtractAllContent fetches full text for every article with a worker pool.
// Failures are recorded on the article and never abort the batch.
func ExtractAllContent(articles []*types.Article) {
	var wg sync.WaitGroup
	articleChan := make(chan *types.Article, len(articles))

	for i := 0; i < workerCount; i++ {
		go func(workerID int) {
			for article := range articleChan {
				if err := extractContent(article); err != nil {
					article.ExtractionError = err.Error()
					log.Printf("[rss] worker %d failed on %s: %v", workerID, article.URL, err)
				}
				wg.Done()
			}
		}(i)
	}

	for _, article := range articles {
		wg.Add(1)
		articleChan <- article
	}

	wg.Wait()
	close(articleChan)
}

func extractContent(article *types.Article) error {
	if article.URL == "" {
		return fmt.Errorf("article URL is empty")
	}
	extracted, err := readability.FromURL(article.URL, extractorTimeout)
	if err != nil {
		return fmt.Errorf("readability extraction failed: %w", err)
	}
	article.FullContentText = extracted.TextContent
	article.Excerpt = extracted.Excerpt
	return nil
}
