package httputil

import "net/http"

// VendorUserAgent is the browser user-agent the LCSC API expects. Requests
// with a non-browser agent are bot-blocked, so it is sent verbatim.
const VendorUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/129.0.0.0 Safari/537.36"

// VendorHeaders returns the fixed header set sent with every LCSC API call.
func VendorHeaders() http.Header {
	h := http.Header{}
	h.Set("Accept-Language", "en-US,en;q=0.9")
	h.Set("Accept", "application/json, text/plain, */*")
	h.Set("User-Agent", VendorUserAgent)
	return h
}

// ApplyHeaders copies h onto req, replacing existing values.
func ApplyHeaders(req *http.Request, h http.Header) {
	for k, v := range h {
		req.Header[k] = v
	}
}
