// Package wiki looks up scalar facts in Wikipedia page infoboxes.
//
// The chain is Search (topic to page title), PageHTML (title to page
// HTML), FirstInfobox and CleanText (HTML to infobox text), and a
// Field's expression (text to value).  LookupField runs the whole
// chain.
package wiki

import (
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/net/html"
)

// DefaultBaseURL is the English Wikipedia's MediaWiki API endpoint.
var DefaultBaseURL = "https://en.wikipedia.org/w/api.php"

// Client fetches and digests Wikipedia pages.
//
// The zero value is not useful; use NewClient.
type Client struct {
	// HTTPClient makes the API requests.
	HTTPClient *http.Client

	// BaseURL is the MediaWiki API endpoint.
	BaseURL string

	// Cache optionally stores fetched page HTML.
	Cache *Cache

	// Logger optionally reports what the client is doing.
	Logger *zap.Logger
}

// NewClient makes a Client against DefaultBaseURL with no cache.
func NewClient() *Client {
	return &Client{
		HTTPClient: http.DefaultClient,
		BaseURL:    DefaultBaseURL,
	}
}

func (c *Client) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}

func (c *Client) get(ctx context.Context, params url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", c.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("wiki: %s from %s", resp.Status, c.BaseURL)
	}
	return ioutil.ReadAll(resp.Body)
}

// Search resolves a topic to the title of its page.
func (c *Client) Search(ctx context.Context, topic string) (string, error) {
	params := url.Values{}
	params.Set("action", "opensearch")
	params.Set("search", topic)
	params.Set("limit", "1")
	params.Set("format", "json")

	bs, err := c.get(ctx, params)
	if err != nil {
		return "", err
	}

	// An opensearch response is a four-element array whose second
	// element is the list of matching titles.
	var result []json.RawMessage
	if err := json.Unmarshal(bs, &result); err != nil {
		return "", err
	}
	if len(result) < 2 {
		return "", fmt.Errorf("wiki: short opensearch response")
	}
	var titles []string
	if err := json.Unmarshal(result[1], &titles); err != nil {
		return "", err
	}
	if len(titles) == 0 {
		return "", &TopicNotFound{Topic: topic}
	}

	c.logger().Debug("wiki search", zap.String("topic", topic), zap.String("title", titles[0]))

	return titles[0], nil
}

// PageHTML gets the rendered HTML of the page with the given title,
// consulting the cache first when there is one.
func (c *Client) PageHTML(ctx context.Context, title string) (string, error) {
	if c.Cache != nil {
		if page, have, err := c.Cache.Get(title); err != nil {
			return "", err
		} else if have {
			c.logger().Debug("wiki cache hit", zap.String("title", title))
			return page, nil
		}
	}

	params := url.Values{}
	params.Set("action", "parse")
	params.Set("page", title)
	params.Set("prop", "text")
	params.Set("format", "json")
	params.Set("formatversion", "2")

	bs, err := c.get(ctx, params)
	if err != nil {
		return "", err
	}

	var result struct {
		Parse struct {
			Text string `json:"text"`
		} `json:"parse"`
		Error *struct {
			Code string `json:"code"`
			Info string `json:"info"`
		} `json:"error"`
	}
	if err := json.Unmarshal(bs, &result); err != nil {
		return "", err
	}
	if result.Error != nil {
		return "", &TopicNotFound{Topic: title}
	}

	c.logger().Debug("wiki page fetched",
		zap.String("title", title),
		zap.Int("bytes", len(result.Parse.Text)))

	if c.Cache != nil {
		if err := c.Cache.Put(title, result.Parse.Text); err != nil {
			return "", err
		}
	}

	return result.Parse.Text, nil
}

// FirstInfobox returns the text of the first element with an
// "infobox" class, which is the page's summary box.
func FirstInfobox(page string) (string, bool) {
	doc, err := html.Parse(strings.NewReader(page))
	if err != nil {
		return "", false
	}
	node := findClass(doc, "infobox")
	if node == nil {
		return "", false
	}
	var b strings.Builder
	collectText(node, &b)
	return b.String(), true
}

func findClass(n *html.Node, class string) *html.Node {
	if n.Type == html.ElementNode {
		for _, attr := range n.Attr {
			if attr.Key != "class" {
				continue
			}
			for _, c := range strings.Fields(attr.Val) {
				if c == class {
					return n
				}
			}
		}
	}
	for kid := n.FirstChild; kid != nil; kid = kid.NextSibling {
		if found := findClass(kid, class); found != nil {
			return found
		}
	}
	return nil
}

func collectText(n *html.Node, b *strings.Builder) {
	if n.Type == html.TextNode {
		b.WriteString(n.Data)
	}
	for kid := n.FirstChild; kid != nil; kid = kid.NextSibling {
		collectText(kid, b)
	}
}

var (
	spaceRuns   = regexp.MustCompile(` +`)
	newlineRuns = regexp.MustCompile(`\n+`)
)

// CleanText replaces non-printable and non-ASCII characters with
// spaces and collapses runs of spaces and newlines, so the field
// expressions see predictable text.
func CleanText(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch {
		case r == '\n' || r == '\t' || r == '\r':
			b.WriteRune(r)
		case 32 <= r && r < 127:
			b.WriteRune(r)
		default:
			b.WriteByte(' ')
		}
	}
	cleaned := spaceRuns.ReplaceAllString(b.String(), " ")
	return newlineRuns.ReplaceAllString(cleaned, "\n")
}

// LookupField resolves the topic and extracts one field from its
// page's infobox.
//
// Failures are either *TopicNotFound or *FieldNotFound.  Neither is
// caught here or in the dispatch layer by design; the session driver
// decides what to tell the user.
func (c *Client) LookupField(ctx context.Context, topic string, field Field) (string, error) {
	title, err := c.Search(ctx, topic)
	if err != nil {
		return "", err
	}
	page, err := c.PageHTML(ctx, title)
	if err != nil {
		return "", err
	}
	box, have := FirstInfobox(page)
	if !have {
		return "", &FieldNotFound{Topic: topic, Field: field.Name}
	}
	value, have := field.Extract(CleanText(box))
	if !have {
		return "", &FieldNotFound{Topic: topic, Field: field.Name}
	}

	c.logger().Debug("wiki lookup",
		zap.String("topic", topic),
		zap.String("field", field.Name),
		zap.String("value", value))

	return value, nil
}
