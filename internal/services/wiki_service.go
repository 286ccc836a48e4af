package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode"

	"go.uber.org/zap"
	mem "travelplanner/pkg/memcache"
	"travelplanner/pkg/utils"
)

const (
	DefaultWikiBaseURL = "https://en.wikipedia.org/api/rest_v1/page/summary/"
	WikiSentences      = 4
	DefaultWikiTTL     = 6 * time.Hour
)

type WikiServiceInterface interface {
	Summary(ctx context.Context, city string) utils.FetchResult[string]
}

type WikiService struct {
	baseURL string
	http    *http.Client
	cfg     OutboundConfig
	cache   mem.Cache[string]
	ttl     time.Duration
	logger  *zap.Logger
}

func NewWikiService(baseURL string, cache mem.Cache[string], ttl time.Duration, cfg OutboundConfig, logger *zap.Logger) WikiServiceInterface {
	if baseURL == "" {
		baseURL = DefaultWikiBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	if ttl <= 0 {
		ttl = DefaultWikiTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg = cfg.withDefaults("wikipedia", 20*time.Second)
	return &WikiService{
		baseURL: baseURL,
		http:    cfg.httpClient(),
		cfg:     cfg,
		cache:   cache,
		ttl:     ttl,
		logger:  logger,
	}
}

type wikiSummaryResponse struct {
	Type    string `json:"type"`
	Title   string `json:"title"`
	Extract string `json:"extract"`
}

// Summary returns the first sentences of the English Wikipedia summary for
// city. Pages that do not exist or are disambiguation pages report ErrNotFound
// and are cached as such.
func (w *WikiService) Summary(ctx context.Context, city string) utils.FetchResult[string] {
	city = strings.TrimSpace(city)
	key := mem.Key("wiki", city)

	if cached, ok := w.cache.Get(key); ok {
		if cached == "" {
			return utils.Fail[string](fmt.Errorf("wiki %q: %w", city, utils.ErrNotFound))
		}
		return utils.Ok(cached)
	}

	title := url.PathEscape(strings.ReplaceAll(city, " ", "_"))
	status, body, err := getWithRetry(ctx, w.http, w.cfg, w.baseURL+title+"?redirect=true")
	if err != nil {
		return utils.Fail[string](err)
	}

	switch {
	case status == http.StatusNotFound:
		w.cache.Set(key, "", w.ttl)
		return utils.Fail[string](fmt.Errorf("wiki %q: %w", city, utils.ErrNotFound))
	case status/100 != 2:
		return utils.Fail[string](fmt.Errorf("wiki %q: bad status %d: %w", city, status, utils.ErrUpstreamUnavailable))
	}

	var payload wikiSummaryResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return utils.Fail[string](fmt.Errorf("wiki decode: %w", err))
	}

	summary := FirstSentences(payload.Extract, WikiSentences)
	if payload.Type == "disambiguation" || summary == "" {
		w.cache.Set(key, "", w.ttl)
		return utils.Fail[string](fmt.Errorf("wiki %q: %w", city, utils.ErrNotFound))
	}

	w.cache.Set(key, summary, w.ttl)
	w.logger.Debug("wiki summary fetched", zap.String("city", city), zap.String("title", payload.Title))
	return utils.Ok(summary)
}

// FirstSentences returns at most n sentences of text. A sentence ends at '.',
// '!' or '?' followed by whitespace or the end of the text.
func FirstSentences(text string, n int) string {
	text = strings.TrimSpace(text)
	if n <= 0 || text == "" {
		return ""
	}

	runes := []rune(text)
	count := 0
	for i, r := range runes {
		if r != '.' && r != '!' && r != '?' {
			continue
		}
		if i+1 < len(runes) && !unicode.IsSpace(runes[i+1]) {
			continue
		}
		count++
		if count == n {
			return string(runes[:i+1])
		}
	}
	return text
}
