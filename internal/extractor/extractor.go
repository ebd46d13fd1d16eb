package extractor

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"codeberg.org/talentmatch/server/internal/logger"
	"github.com/PuerkitoBio/goquery"
)

const (
	defaultTimeout   = 10 * time.Second
	userAgent        = "Mozilla/5.0 (compatible; TalentMatch-Recommendation-Bot/1.0)"
	minTextLength    = 10
	maxDocumentBytes = 5 << 20
)

// tags whose text never belongs to the readable page content
const strippedTags = "script, style, noscript, meta, link"

var urlPattern = regexp.MustCompile(`(?i)^https?://`)

// resolves a URL to readable text; "" means extraction failed
type Extractor interface {
	Extract(ctx context.Context, url string) string
}

// reports whether text looks like an http(s) URL
func IsLikelyURL(text string) bool {
	return urlPattern.MatchString(strings.TrimSpace(text))
}

// fetches a page and returns its visible text
type HTTPExtractor struct {
	client  *http.Client
	timeout time.Duration
}

func NewHTTPExtractor(client *http.Client, timeout time.Duration) *HTTPExtractor {
	if client == nil {
		client = &http.Client{}
	}

	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &HTTPExtractor{client: client, timeout: timeout}
}

// never fails: every error is logged and reported as ""
func (e *HTTPExtractor) Extract(ctx context.Context, url string) string {
	url = strings.TrimSpace(url)

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	text, err := e.fetch(ctx, url)
	if err != nil {
		logger.Warn("failed to extract text from url", "url", url, "error", err)
		return ""
	}

	if len(text) < minTextLength {
		logger.Warn("extracted text is too short or empty", "url", url, "chars", len(text))
		return ""
	}

	logger.Info("extracted text from url", "url", url, "chars", len(text))

	return text
}

func (e *HTTPExtractor) fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", userAgent)

	resp, err := e.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch page: %w", err)
	}

	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("page returned status %d", resp.StatusCode)
	}

	return ExtractText(io.LimitReader(resp.Body, maxDocumentBytes))
}

// parses HTML and returns its visible text with whitespace collapsed
func ExtractText(r io.Reader) (string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", fmt.Errorf("failed to parse html: %w", err)
	}

	doc.Find(strippedTags).Remove()

	// keep words of adjacent elements apart once the text is concatenated
	doc.Find("*").AppendHtml(" ")

	return strings.Join(strings.Fields(doc.Text()), " "), nil
}
