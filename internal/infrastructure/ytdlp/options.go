package ytdlp

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/lrstanley/go-ytdlp"

	"ytdlapi/internal/domain/download"
)

const (
	DefaultBinary      = "yt-dlp"
	DefaultUserAgent   = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	DefaultMergeFormat = "mp4"
	bestSelector       = "bv*+ba/b"
)

// Options enumerates the engine settings the service understands.
type Options struct {
	Binary        string
	PlayerClients []string
	// SkipProtocols lists manifest protocols the extractor should not offer.
	SkipProtocols []string
	UserAgent     string
	Headers       map[string]string
	Retries       int
	SleepMin      time.Duration
	SleepMax      time.Duration
	CookiesFile   string
	MergeFormat   string
}

// DefaultOptions returns the settings used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Binary:        DefaultBinary,
		PlayerClients: []string{"android", "web"},
		SkipProtocols: []string{"hls", "dash"},
		UserAgent:     DefaultUserAgent,
		Headers: map[string]string{
			"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
			"Accept-Language": "en-us,en;q=0.5",
			"Sec-Fetch-Mode":  "navigate",
		},
		Retries:     3,
		CookiesFile: "cookies.txt",
		MergeFormat: DefaultMergeFormat,
	}
}

func (o Options) binary() string {
	if strings.TrimSpace(o.Binary) == "" {
		return DefaultBinary
	}
	return o.Binary
}

func (o Options) extractorArgs() string {
	var parts []string
	if len(o.PlayerClients) > 0 {
		parts = append(parts, "player_client="+strings.Join(o.PlayerClients, ","))
	}
	if len(o.SkipProtocols) > 0 {
		parts = append(parts, "skip="+strings.Join(o.SkipProtocols, ","))
	}
	if len(parts) == 0 {
		return ""
	}
	return "youtube:" + strings.Join(parts, ";")
}

func (o Options) cookiesPath() string {
	path := strings.TrimSpace(o.CookiesFile)
	if path == "" {
		return ""
	}
	if info, err := os.Stat(path); err != nil || !info.Mode().IsRegular() {
		return ""
	}
	return path
}

// command builds a fresh yt-dlp invocation carrying the settings shared by
// metadata and download runs. The cookie file is only passed when it exists
// on disk.
func (o Options) command() *ytdlp.Command {
	cmd := ytdlp.New().
		SetExecutable(o.binary()).
		NoPlaylist().
		NoColors()

	if args := o.extractorArgs(); args != "" {
		cmd.ExtractorArgs(args)
	}
	if o.UserAgent != "" {
		cmd.UserAgent(o.UserAgent)
	}
	if o.Retries > 0 {
		retries := strconv.Itoa(o.Retries)
		cmd.Retries(retries).FragmentRetries(retries)
	}
	if o.SleepMin > 0 {
		cmd.SleepInterval(o.SleepMin.Seconds())
		if o.SleepMax > o.SleepMin {
			cmd.MaxSleepInterval(o.SleepMax.Seconds())
		}
	}
	if path := o.cookiesPath(); path != "" {
		cmd.Cookies(path)
	}
	return cmd
}

func (o Options) infoCommand() *ytdlp.Command {
	return o.command().DumpJSON().NoWarnings()
}

func (o Options) downloadCommand(format, outputTemplate string) *ytdlp.Command {
	selector := strings.TrimSpace(format)
	if selector == "" || selector == download.BestFormat {
		selector = bestSelector
	}
	merge := o.MergeFormat
	if merge == "" {
		merge = DefaultMergeFormat
	}

	return o.command().
		Format(selector).
		Output(outputTemplate).
		MergeOutputFormat(merge).
		RemuxVideo(merge)
}

// runArgs returns the positional arguments for a run. The builder holds a
// single --add-headers value, so every header travels here ahead of the URL.
func (o Options) runArgs(url string) []string {
	var args []string
	for _, key := range sortedKeys(o.Headers) {
		args = append(args, "--add-headers", key+":"+o.Headers[key])
	}
	return append(args, url)
}
