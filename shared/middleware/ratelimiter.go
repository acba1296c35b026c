package middleware

import (
	"fmt"
	"net"
	"net/http"

	internal_errors "github.com/itchan-dev/kvboard/shared/errors"
	"github.com/itchan-dev/kvboard/shared/middleware/ratelimiter"
	"github.com/itchan-dev/kvboard/shared/utils"
)

func RateLimit(rl *ratelimiter.Limiter, getIdentity func(r *http.Request) (string, error)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, err := getIdentity(r)
			if err != nil {
				utils.WriteErrorAndStatusCode(w, err)
				return
			}
			if !rl.Allow(identity) {
				utils.WriteError(w, http.StatusTooManyRequests, "Rate limit exceeded, try again later")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// GetIP extracts the client IP from RemoteAddr.
// X-Real-IP and X-Forwarded-For are ignored since nothing sits in front of the server to vouch for them.
func GetIP(r *http.Request) (string, error) {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		// RemoteAddr without a port
		ip = r.RemoteAddr
	}

	if net.ParseIP(ip) == nil {
		return "", &internal_errors.ErrorWithStatusCode{
			Message:    fmt.Sprintf("invalid client address: %s", ip),
			StatusCode: http.StatusBadRequest,
		}
	}

	return ip, nil
}
