package youtube

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"golang.org/x/net/html"
)

const (
	titleSuffix      = " - YouTube"
	maxWatchPageSize = 4 << 20
)

// scrapeTitle fetches the watch page and reads the og:title meta tag, falling
// back to the document <title> without the site suffix.
func (c *Client) scrapeTitle(ctx context.Context, videoID string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.watchPrefix+videoID, nil)
	if err != nil {
		return "", fmt.Errorf("build watch page request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.8")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("watch page request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("watch page request failed (%s)", resp.Status)
	}

	title, err := extractTitle(io.LimitReader(resp.Body, maxWatchPageSize))
	if err != nil {
		return "", err
	}
	return title, nil
}

func extractTitle(r io.Reader) (string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return "", fmt.Errorf("parse watch page: %w", err)
	}

	if meta := findMeta(doc, "og:title"); meta != "" {
		return meta, nil
	}
	if node := findElement(doc, "title"); node != nil {
		title := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(textContent(node)), titleSuffix))
		if title != "" && title != "YouTube" {
			return title, nil
		}
	}
	return "", errors.New("watch page carried no title")
}

func findMeta(n *html.Node, property string) string {
	if n.Type == html.ElementNode && n.Data == "meta" {
		var prop, content string
		for _, a := range n.Attr {
			switch a.Key {
			case "property", "name":
				if prop == "" {
					prop = a.Val
				}
			case "content":
				content = a.Val
			}
		}
		if prop == property && strings.TrimSpace(content) != "" {
			return strings.TrimSpace(content)
		}
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if found := findMeta(child, property); found != "" {
			return found
		}
	}
	return ""
}

func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if found := findElement(child, tag); found != nil {
			return found
		}
	}
	return nil
}

func textContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		b.WriteString(textContent(child))
	}
	return b.String()
}
