package rssfeeds

// FeedConfig names a single RSS source.
type FeedConfig struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// FeedPresets maps friendly keys to Korean economic news feeds.
var FeedPresets = map[string]FeedConfig{
	"hankyung": {
		Name: "한국경제",
		URL:  "https://www.hankyung.com/feed/economy",
	},
	"mk": {
		Name: "매일경제",
		URL:  "https://www.mk.co.kr/rss/30100041/",
	},
	"sedaily": {
		Name: "서울경제",
		URL:  "https://www.sedaily.com/RSS/S01.xml",
	},
	"yonhap": {
		Name: "연합뉴스 경제",
		URL:  "https://www.yna.co.kr/rss/economy.xml",
	},
}

// economicKeywords gate which headlines count as economic news.
var economicKeywords = []string{
	"금리", "환율", "주식", "증시", "코스피", "코스닥", "부동산",
	"물가", "인플레이션", "경제", "수출", "무역", "투자", "비트코인",
	"암호화폐", "반도체", "실적", "채권", "연준", "한국은행",
}
