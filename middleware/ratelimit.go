package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"lead-capture-backend/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type Decision int

const (
	Allowed Decision = iota
	Blocked
	Throttled
)

// Policy decides, per call, whether a client IP may proceed.
type Policy interface {
	Evaluate(ip string) Decision
}

type PolicyConfig struct {
	PerMinute int
	Burst     int
	Allowlist []string
	Blocklist []string
}

type ipPolicy struct {
	allow []*net.IPNet
	block []*net.IPNet
	limit rate.Limit
	burst int

	mu       sync.Mutex
	limiters map[string]*visitor
	now      func() time.Time
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

const visitorTTL = 10 * time.Minute

// NewPolicy builds a policy. An empty allowlist admits every address not blocked.
// PerMinute <= 0 disables throttling.
func NewPolicy(cfg PolicyConfig) Policy {
	p := &ipPolicy{
		allow:    parseNets(cfg.Allowlist),
		block:    parseNets(cfg.Blocklist),
		limit:    rate.Inf,
		burst:    cfg.Burst,
		limiters: map[string]*visitor{},
		now:      time.Now,
	}
	if cfg.PerMinute > 0 {
		p.limit = rate.Limit(float64(cfg.PerMinute) / 60)
		if p.burst < 1 {
			p.burst = 1
		}
	}
	return p
}

func parseNets(entries []string) []*net.IPNet {
	var out []*net.IPNet
	for _, e := range entries {
		e = strings.TrimSpace(e)
		if !strings.Contains(e, "/") {
			if ip := net.ParseIP(e); ip != nil && ip.To4() != nil {
				e += "/32"
			} else {
				e += "/128"
			}
		}
		if _, n, err := net.ParseCIDR(e); err == nil {
			out = append(out, n)
		} else {
			utils.LogWarn("Ignoring invalid IP list entry: " + e)
		}
	}
	return out
}

func contains(nets []*net.IPNet, ip net.IP) bool {
	for _, n := range nets {
		if n.Contains(ip) {
			return true
		}
	}
	return false
}

func (p *ipPolicy) Evaluate(ip string) Decision {
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return Blocked
	}
	if contains(p.block, parsed) {
		return Blocked
	}
	if len(p.allow) > 0 && !contains(p.allow, parsed) {
		return Blocked
	}
	if p.limit == rate.Inf {
		return Allowed
	}
	if !p.limiter(ip).Allow() {
		return Throttled
	}
	return Allowed
}

func (p *ipPolicy) limiter(ip string) *rate.Limiter {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.now()
	for key, v := range p.limiters {
		if now.Sub(v.lastSeen) > visitorTTL {
			delete(p.limiters, key)
		}
	}

	v, ok := p.limiters[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(p.limit, p.burst)}
		p.limiters[ip] = v
	}
	v.lastSeen = now
	return v.limiter
}

// RateLimit applies policy to every request of the group.
func RateLimit(policy Policy) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch policy.Evaluate(c.ClientIP()) {
		case Blocked:
			utils.SendError(c, http.StatusForbidden, "Access denied")
			c.Abort()
		case Throttled:
			c.Header("Retry-After", "60")
			utils.SendError(c, http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.")
			c.Abort()
		default:
			c.Next()
		}
	}
}
