package ner

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ieee0824/codeswitch-go/internal/logging"
)

// TagChunks tags tokens with p in consecutive chunks of chunkSize and returns
// one tag per token. Tokens for which skip returns true are tagged Outside; a
// chunk made only of skipped tokens is never sent. A chunk whose call fails or
// returns a misaligned batch is logged and degrades to Outside. The number of
// failed chunks is returned.
func TagChunks(ctx context.Context, p Provider, tokens []string, chunkSize int, skip func(i int) bool, logger *slog.Logger) ([]string, int) {
	if chunkSize < 1 {
		chunkSize = 1
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	tags := make([]string, len(tokens))
	for i := range tags {
		tags[i] = Outside
	}

	failed := 0
	for start := 0; start < len(tokens); start += chunkSize {
		end := min(start+chunkSize, len(tokens))
		if !needsTagging(start, end, skip) {
			continue
		}
		chunk := tokens[start:end]
		pairs, err := p.Tag(ctx, chunk)
		if err == nil && len(pairs) != len(chunk) {
			err = fmt.Errorf("provider returned %d tags for %d tokens", len(pairs), len(chunk))
		}
		if err != nil {
			failed++
			logger.Warn("ner chunk failed, treating as outside",
				"chunk", start/chunkSize,
				"tokens", len(chunk),
				"error", err,
			)
			continue
		}
		for i, pair := range pairs {
			if skip != nil && skip(start+i) {
				continue
			}
			if pair.Tag != "" {
				tags[start+i] = pair.Tag
			}
		}
	}
	return tags, failed
}

func needsTagging(start, end int, skip func(i int) bool) bool {
	if skip == nil {
		return end > start
	}
	for i := start; i < end; i++ {
		if !skip(i) {
			return true
		}
	}
	return false
}
