package fetch

import "net/url"

// CORS relay services tried, in order, when a site refuses the direct
// request. Both take the target URL as a query parameter and return the
// upstream body unchanged.
var proxyTemplates = []func(string) string{
	func(target string) string {
		return "https://api.allorigins.win/raw?url=" + url.QueryEscape(target)
	},
	func(target string) string {
		return "https://corsproxy.io/?" + url.QueryEscape(target)
	},
}

// ProxyURLs returns the relay URLs to try for a target, in preference order.
func ProxyURLs(target string) []string {
	urls := make([]string, len(proxyTemplates))
	for i, build := range proxyTemplates {
		urls[i] = build(target)
	}
	return urls
}
