package timetable

import (
	"fmt"

	"github.com/gocolly/colly"
)

// FetchPage downloads the raw source of a timetable page. It exists as a
// convenience for the CLI; the pipeline itself never performs I/O.
func FetchPage(url string) (string, error) {
	c := colly.NewCollector()

	var body []byte
	c.OnResponse(func(r *colly.Response) {
		body = r.Body
	})

	if err := c.Visit(url); err != nil {
		return "", fmt.Errorf("could not fetch %s: %w", url, err)
	}
	if len(body) == 0 {
		return "", fmt.Errorf("empty response from %s", url)
	}
	return string(body), nil
}
