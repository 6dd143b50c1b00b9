package fetcher

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"golang.org/x/net/html"
)

// maxDefinitionSize limits how much of a remote definition is read
const maxDefinitionSize = 1 << 20

// Load returns the text of a phonology definition from a file path or an
// http(s) URL
func Load(ctx context.Context, source string) (string, error) {
	if IsURL(source) {
		return Fetch(ctx, source)
	}
	data, err := os.ReadFile(source)
	if err != nil {
		return "", fmt.Errorf("read definition: %w", err)
	}
	return string(data), nil
}

// Fetch retrieves a definition over HTTP. HTML pages are searched for
// the first <pre> block, which is where definitions are usually shared.
func Fetch(ctx context.Context, rawURL string) (string, error) {
	// Validate URL
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme == "" {
		u, err = url.Parse("https://" + rawURL)
		if err != nil {
			return "", fmt.Errorf("invalid URL: %w", err)
		}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("unsupported scheme: %s", u.Scheme)
	}

	client := &http.Client{Timeout: 30 * time.Second}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "lexifer/1.0")

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDefinitionSize))
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}

	mediaType, _, _ := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if mediaType != "text/html" {
		return string(body), nil
	}

	text, ok := extractPre(string(body))
	if !ok {
		return "", fmt.Errorf("no <pre> block found in %s", u)
	}
	return text, nil
}

// IsURL checks if a string looks like a URL
func IsURL(s string) bool {
	s = strings.TrimSpace(s)
	return strings.HasPrefix(s, "http://") ||
		strings.HasPrefix(s, "https://") ||
		strings.HasPrefix(s, "www.")
}

// extractPre returns the text content of the first <pre> element
func extractPre(htmlContent string) (string, bool) {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return "", false
	}

	var pre *html.Node
	var find func(*html.Node)
	find = func(n *html.Node) {
		if pre != nil {
			return
		}
		if n.Type == html.ElementNode && n.Data == "pre" {
			pre = n
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			find(c)
		}
	}
	find(doc)
	if pre == nil {
		return "", false
	}

	var sb strings.Builder
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		if n.Type == html.ElementNode && n.Data == "br" {
			sb.WriteString("\n")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(pre)
	return sb.String(), true
}
