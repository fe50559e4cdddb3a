package ytdlp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lrstanley/go-ytdlp"

	"ytdlapi/internal/domain/download"
)

const progressInterval = 500 * time.Millisecond

// Client wraps yt-dlp calls.
type Client struct {
	opts Options
}

// NewClient creates a yt-dlp adapter.
func NewClient(opts Options) *Client {
	return &Client{opts: opts}
}

// Available reports whether the configured yt-dlp executable runs.
func (c *Client) Available(ctx context.Context) bool {
	_, err := ytdlp.New().SetExecutable(c.opts.binary()).Version(ctx)
	return err == nil
}

// Info fetches video metadata and the raw format list.
func (c *Client) Info(ctx context.Context, url string) (download.VideoInfo, error) {
	result, err := c.opts.infoCommand().Run(ctx, c.opts.runArgs(url)...)
	if err != nil {
		if ctx.Err() != nil {
			return download.VideoInfo{}, ctx.Err()
		}
		return download.VideoInfo{}, extractionError(result, err)
	}

	infos, err := result.GetExtractedInfo()
	if err != nil {
		return download.VideoInfo{}, fmt.Errorf("decode yt-dlp metadata: %w", err)
	}
	if len(infos) == 0 {
		return download.VideoInfo{}, errors.New("decode yt-dlp metadata: no video info in output")
	}
	return videoInfo(infos[0]), nil
}

// Download runs yt-dlp for url and reports progress while it runs. It returns
// the title the engine reported alongside its progress updates.
func (c *Client) Download(ctx context.Context, url, format, outputTemplate string, onProgress func(float64)) (string, error) {
	var title string

	cmd := c.opts.downloadCommand(format, outputTemplate)
	cmd.ProgressFunc(progressInterval, func(update ytdlp.ProgressUpdate) {
		if update.Info != nil && update.Info.Title != nil {
			title = *update.Info.Title
		}
		if onProgress == nil {
			return
		}
		if pct, ok := progressPercent(update); ok {
			onProgress(pct)
		}
	})

	result, err := cmd.Run(ctx, c.opts.runArgs(url)...)
	if err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("yt-dlp interrupted: %w", ctx.Err())
		}
		return "", extractionError(result, err)
	}

	if onProgress != nil {
		onProgress(100)
	}
	return title, nil
}

func extractionError(result *ytdlp.Result, runErr error) error {
	var msg string
	if result != nil {
		msg = errorMessage(result.Stderr)
	}
	if msg == "" {
		msg = truncateUTF8(fmt.Sprintf("yt-dlp failed: %v", runErr), maxErrorBytes)
	}
	return download.NewExtractionError(msg)
}
