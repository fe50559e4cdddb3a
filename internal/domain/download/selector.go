package download

import "strings"

// FormatRequest is the client's stream choice for a new job.
type FormatRequest struct {
	FormatID string
	VideoID  string
	AudioID  string
}

// Selector builds the engine format selector. An explicit format id wins,
// then a video+audio pair, then a lone video id, then BestFormat.
func (r FormatRequest) Selector() string {
	formatID := strings.TrimSpace(r.FormatID)
	videoID := strings.TrimSpace(r.VideoID)
	audioID := strings.TrimSpace(r.AudioID)

	switch {
	case formatID != "":
		return formatID
	case videoID != "" && audioID != "":
		return videoID + "+" + audioID
	case videoID != "":
		return videoID
	default:
		return BestFormat
	}
}
