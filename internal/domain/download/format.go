package download

import (
	"math"
	"sort"
)

// BestFormat is the selector sentinel for "best available".
const BestFormat = "best"

// Format describes one downloadable stream of a video.
type Format struct {
	FormatID   string  `json:"format_id"`
	Resolution string  `json:"resolution"`
	Height     int     `json:"height"`
	FPS        float64 `json:"fps"`
	Ext        string  `json:"ext"`
	Filesize   int64   `json:"filesize"`
	FilesizeMB float64 `json:"filesize_mb"`
	VCodec     string  `json:"vcodec"`
	ACodec     string  `json:"acodec"`
	Bitrate    float64 `json:"tbr"`
	Quality    float64 `json:"quality"`
}

// HasMedia reports whether the format carries a video or an audio stream.
func (f Format) HasMedia() bool {
	return codecPresent(f.VCodec) || codecPresent(f.ACodec)
}

func codecPresent(codec string) bool {
	return codec != "" && codec != "none"
}

// VideoInfo is the metadata returned when listing formats.
type VideoInfo struct {
	Title     string   `json:"title"`
	Duration  float64  `json:"duration"`
	Thumbnail string   `json:"thumbnail"`
	Uploader  string   `json:"uploader"`
	Formats   []Format `json:"formats"`
}

// NormalizeFormats drops duplicate (format_id, ext) pairs and metadata-only
// entries, then orders by height and bitrate, both descending. Ties keep the
// input order.
func NormalizeFormats(in []Format) []Format {
	type key struct{ id, ext string }

	seen := make(map[key]struct{}, len(in))
	out := make([]Format, 0, len(in))
	for _, f := range in {
		if !f.HasMedia() {
			continue
		}
		k := key{f.FormatID, f.Ext}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		f.FilesizeMB = math.Round(float64(f.Filesize)/1024/1024*10) / 10
		out = append(out, f)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Height != out[j].Height {
			return out[i].Height > out[j].Height
		}
		return out[i].Bitrate > out[j].Bitrate
	})
	return out
}
