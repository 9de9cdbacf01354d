package proxy

import (
	"fmt"
	"log"
	"net/http"
	"net/http/httputil"
	"net/url"

	"identity-platform/internal/gateway/obs"
	"identity-platform/shared/response"
)

// HeaderGateway marks requests as having passed the edge.
const HeaderGateway = "X-Gateway"

const gatewayName = "identity-gateway"

// NewServiceProxy reverse-proxies to one downstream service. The name is
// used for metrics and logs only.
func NewServiceProxy(name, rawURL string) (http.Handler, error) {
	target, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parsing %s url %q: %w", name, rawURL, err)
	}

	rp := httputil.NewSingleHostReverseProxy(target)

	director := rp.Director
	rp.Director = func(req *http.Request) {
		director(req)
		req.Header.Set(HeaderGateway, gatewayName)
		obs.ProxiedRequests.WithLabelValues(name).Inc()
	}

	rp.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
		log.Printf("Proxy to %s failed: %v", name, err)
		response.Error(w, http.StatusBadGateway, "Upstream service unavailable")
	}

	return rp, nil
}
