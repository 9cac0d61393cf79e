package convert

import "strings"

// Unknown is reported for any field no rule matched.
const Unknown = "Unknown"

// Rule resolves to Label when the User-Agent contains any of the Any
// substrings. VersionAfter, when set, names the token whose trailing
// "/x.y" carries the version.
type Rule struct {
	Label        string
	Any          []string
	VersionAfter string
}

func (r Rule) match(ua string) (string, bool) {
	for _, s := range r.Any {
		if strings.Contains(ua, s) {
			return s, true
		}
	}
	return "", false
}

// UserAgentRules are the ordered rule lists, one per field. The first
// matching rule in each list wins.
type UserAgentRules struct {
	Browser []Rule
	OS      []Rule
	Device  []Rule
	Engine  []Rule
}

// UserAgent is the structured form of a User-Agent string.
type UserAgent struct {
	Browser        string `json:"browser"`
	BrowserVersion string `json:"browser_version,omitempty"`
	OS             string `json:"os"`
	Device         string `json:"device"`
	Engine         string `json:"engine"`
}

// DefaultUserAgentRules returns the built-in priority lists. Order matters:
// Chromium derivatives must be checked before Chrome, and Chrome before
// Safari, since each embeds the tokens of the next.
func DefaultUserAgentRules() UserAgentRules {
	return UserAgentRules{
		Browser: []Rule{
			{Label: "Edge", Any: []string{"Edg/", "EdgA/", "EdgiOS/", "Edge/"}, VersionAfter: "Edg"},
			{Label: "Opera", Any: []string{"OPR/", "Opera"}, VersionAfter: "OPR"},
			{Label: "Samsung Internet", Any: []string{"SamsungBrowser/"}, VersionAfter: "SamsungBrowser"},
			{Label: "UC Browser", Any: []string{"UCBrowser/"}, VersionAfter: "UCBrowser"},
			{Label: "Yandex", Any: []string{"YaBrowser/"}, VersionAfter: "YaBrowser"},
			{Label: "Vivaldi", Any: []string{"Vivaldi/"}, VersionAfter: "Vivaldi"},
			{Label: "Firefox", Any: []string{"Firefox/", "FxiOS/"}, VersionAfter: "Firefox"},
			{Label: "Chrome", Any: []string{"CriOS/", "Chrome/"}, VersionAfter: "Chrome"},
			{Label: "Safari", Any: []string{"Safari/"}, VersionAfter: "Version"},
			{Label: "Internet Explorer", Any: []string{"MSIE ", "Trident/"}, VersionAfter: "MSIE"},
		},
		OS: []Rule{
			{Label: "Windows Phone", Any: []string{"Windows Phone"}},
			{Label: "Windows", Any: []string{"Windows"}},
			{Label: "iOS", Any: []string{"iPhone", "iPad", "iPod"}},
			{Label: "Android", Any: []string{"Android"}},
			{Label: "Chrome OS", Any: []string{"CrOS"}},
			{Label: "macOS", Any: []string{"Mac OS X", "Macintosh"}},
			{Label: "Linux", Any: []string{"Linux", "X11"}},
		},
		Device: []Rule{
			{Label: "Bot", Any: []string{"bot", "Bot", "crawler", "spider", "Spider"}},
			{Label: "Tablet", Any: []string{"iPad", "Tablet"}},
			{Label: "Mobile", Any: []string{"Mobi", "iPhone", "Android"}},
			{Label: "Desktop", Any: []string{"Windows", "Macintosh", "X11", "CrOS"}},
		},
		Engine: []Rule{
			{Label: "Trident", Any: []string{"Trident/", "MSIE "}},
			{Label: "EdgeHTML", Any: []string{"Edge/"}},
			{Label: "Presto", Any: []string{"Presto/"}},
			{Label: "Blink", Any: []string{"Chrome/", "CriOS/", "Edg/", "OPR/"}},
			{Label: "WebKit", Any: []string{"AppleWebKit"}},
			{Label: "Gecko", Any: []string{"Gecko/"}},
		},
	}
}

// ParseUserAgent resolves each field of ua against rules. Fields with no
// matching rule are Unknown.
func ParseUserAgent(ua string, rules UserAgentRules) UserAgent {
	out := UserAgent{
		Browser: Unknown,
		OS:      firstMatch(ua, rules.OS),
		Device:  firstMatch(ua, rules.Device),
		Engine:  firstMatch(ua, rules.Engine),
	}
	for _, r := range rules.Browser {
		hit, ok := r.match(ua)
		if !ok {
			continue
		}
		out.Browser = r.Label
		out.BrowserVersion = version(ua, r.VersionAfter)
		if out.BrowserVersion == "" {
			out.BrowserVersion = version(ua, strings.TrimRight(hit, "/ "))
		}
		break
	}
	return out
}

func firstMatch(ua string, rules []Rule) string {
	for _, r := range rules {
		if _, ok := r.match(ua); ok {
			return r.Label
		}
	}
	return Unknown
}

// version reads the dotted number following token and a '/' or ' '.
func version(ua, token string) string {
	if token == "" {
		return ""
	}
	i := strings.Index(ua, token+"/")
	if i < 0 {
		i = strings.Index(ua, token+" ")
	}
	if i < 0 {
		return ""
	}
	rest := ua[i+len(token)+1:]
	end := 0
	for end < len(rest) && (rest[end] == '.' || (rest[end] >= '0' && rest[end] <= '9')) {
		end++
	}
	return strings.TrimRight(rest[:end], ".")
}
