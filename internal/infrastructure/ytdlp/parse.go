package ytdlp

import (
	"sort"
	"strconv"
	"strings"

	"github.com/lrstanley/go-ytdlp"

	"ytdlapi/internal/domain/download"
)

const maxErrorBytes = 4096

// videoInfo converts extracted metadata into domain metadata. Formats are
// returned in engine order.
func videoInfo(info *ytdlp.ExtractedInfo) download.VideoInfo {
	formats := make([]download.Format, 0, len(info.Formats))
	for _, f := range info.Formats {
		if f == nil {
			continue
		}
		size := intValue(f.FileSize)
		if size <= 0 {
			size = intValue(f.FileSizeApprox)
		}
		height := floatValue(f.Height)
		resolution := stringValue(f.Resolution)
		if resolution == "" {
			if height > 0 {
				resolution = strconv.Itoa(int(height))
			} else {
				resolution = "N/A"
			}
		}
		formats = append(formats, download.Format{
			FormatID:   stringValue(f.FormatID),
			Resolution: resolution,
			Height:     int(height),
			FPS:        floatValue(f.FPS),
			Ext:        stringValue(f.Extension),
			Filesize:   int64(size),
			VCodec:     stringValue(f.VCodec),
			ACodec:     stringValue(f.ACodec),
			Bitrate:    floatValue(f.TBR),
			Quality:    floatValue(f.Quality),
		})
	}

	return download.VideoInfo{
		Title:     stringValue(info.Title),
		Duration:  floatValue(info.Duration),
		Thumbnail: stringValue(info.Thumbnail),
		Uploader:  stringValue(info.Uploader),
		Formats:   formats,
	}
}

// progressPercent maps an engine progress update onto 0..100. Updates without
// a known total and error updates carry no usable percentage.
func progressPercent(update ytdlp.ProgressUpdate) (float64, bool) {
	switch {
	case update.Status == ytdlp.ProgressStatusError:
		return 0, false
	case update.Status.IsCompletedType():
		return 100, true
	case update.TotalBytes <= 0:
		return 0, false
	}
	return update.Percent(), true
}

// errorMessage picks the engine's ERROR lines out of stderr, falling back to
// the whole trimmed output.
func errorMessage(stderr string) string {
	var lines []string
	for _, line := range strings.Split(stderr, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "ERROR:") {
			lines = append(lines, line)
		}
	}
	msg := strings.Join(lines, "\n")
	if msg == "" {
		msg = strings.TrimSpace(stderr)
	}
	return truncateUTF8(msg, maxErrorBytes)
}

// truncateUTF8 cuts s to at most n bytes without splitting a rune.
func truncateUTF8(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return strings.ToValidUTF8(s[:n], "")
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func stringValue(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func floatValue(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

func intValue(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
