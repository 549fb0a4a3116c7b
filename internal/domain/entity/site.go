package entity

// PlayerScripts are the literal script bodies that click in-page player
// controls. The selectors are coupled to the site's markup; each script
// throws when its control is missing so the injector sees a failure.
type PlayerScripts struct {
	WatchFullscreen   string
	WatchPlayPause    string
	BangumiFullscreen string
}

// SiteProfile holds the fixed constants of the one supported site.
type SiteProfile struct {
	Name string
	// Domain is the registrable domain; the shell accepts start URLs on it or its subdomains.
	Domain            string
	HomeURL           string
	VideoHost         string
	WatchPathPrefix   string
	BangumiPathPrefix string
	SearchBaseURL     string // scheme, host and path of the search page
	SearchKeyword     string // query parameter carrying the keyword
	// SearchTracking is appended verbatim after the keyword parameter.
	SearchTracking string
	Scripts        PlayerScripts
}

const watchFullscreenScript = `(function () {
  var el = document.querySelector('.bpx-player-ctrl-web');
  if (!el) { throw new Error('control not found: .bpx-player-ctrl-web'); }
  el.click();
  return true;
})()`

const watchPlayPauseScript = `(function () {
  var el = document.querySelector('.bpx-player-ctrl-play');
  if (!el) { throw new Error('control not found: .bpx-player-ctrl-play'); }
  el.click();
  return true;
})()`

// The bangumi player control is sometimes present in the DOM but not
// clickable yet; callers treat this script as best effort.
const bangumiFullscreenScript = `(function () {
  var el = document.querySelector('.bpx-player-ctrl-web, .squirtle-video-pagefullscreen');
  if (!el) { throw new Error('control not found: bangumi web fullscreen'); }
  el.click();
  return true;
})()`

// BilibiliProfile returns the constants for www.bilibili.com.
func BilibiliProfile() SiteProfile {
	return SiteProfile{
		Name:              "bilibili",
		Domain:            "bilibili.com",
		HomeURL:           "https://www.bilibili.com",
		VideoHost:         "www.bilibili.com",
		WatchPathPrefix:   "/video/",
		BangumiPathPrefix: "/bangumi/play/",
		SearchBaseURL:     "https://search.bilibili.com/all",
		SearchKeyword:     "keyword",
		SearchTracking:    "from_source=webtop_search&spm_id_from=333.788&search_source=3",
		Scripts: PlayerScripts{
			WatchFullscreen:   watchFullscreenScript,
			WatchPlayPause:    watchPlayPauseScript,
			BangumiFullscreen: bangumiFullscreenScript,
		},
	}
}
