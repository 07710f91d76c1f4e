package restserver

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/chrissnell/solarestimate/internal/optimizer"
	"github.com/chrissnell/solarestimate/internal/solarerr"
)

// queryParams reads typed query parameters, remembering the first error
type queryParams struct {
	q   url.Values
	err error
}

func newQueryParams(q url.Values) *queryParams {
	return &queryParams{q: q}
}

func (p *queryParams) fail(name, value, reason string) {
	if p.err == nil {
		p.err = solarerr.Invalid(name, 0, reason+": "+strconv.Quote(value))
	}
}

func (p *queryParams) requiredFloat(name string) float64 {
	raw := p.q.Get(name)
	if raw == "" {
		if p.err == nil {
			p.err = solarerr.Invalid(name, 0, "is required")
		}
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		p.fail(name, raw, "not a number")
	}
	return v
}

func (p *queryParams) float(name string, def float64) float64 {
	if p.q.Get(name) == "" {
		return def
	}
	return p.requiredFloat(name)
}

func (p *queryParams) int(name string, def int) int {
	raw := p.q.Get(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		p.fail(name, raw, "not an integer")
	}
	return v
}

func (p *queryParams) bool(name string) bool {
	raw := p.q.Get(name)
	if raw == "" {
		return false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		p.fail(name, raw, "not a boolean")
	}
	return v
}

func (p *queryParams) string(name, def string) string {
	if v := p.q.Get(name); v != "" {
		return v
	}
	return def
}

func (p *queryParams) list(name string) []string {
	raw := p.q.Get(name)
	if raw == "" {
		return nil
	}
	var out []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// parseMethod maps the API's method names onto optimizer methods. "simple"
// and "detailed" are accepted as aliases.
func parseMethod(s string) (optimizer.Method, error) {
	switch strings.ToLower(s) {
	case "", "simple", "heuristic":
		return optimizer.MethodHeuristic, nil
	case "detailed", "lbfgs":
		return optimizer.MethodLBFGS, nil
	case "global":
		return optimizer.MethodGlobal, nil
	}
	return "", solarerr.Invalid("method", 0, "unknown optimization method "+strconv.Quote(s))
}
