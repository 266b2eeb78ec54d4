package livesearch

import (
	"net/url"

	"github.com/spf13/cast"
)

// Recognized search parameter names.
const (
	ParamMode             = "mode"
	ParamReturnCitations  = "return_citations"
	ParamMaxSearchResults = "max_search_results"
	ParamFromDate         = "from_date"
	ParamToDate           = "to_date"
	ParamSources          = "sources"
)

// AllowedParamKeys is the set of parameters callers may forward upstream.
// Anything else in a caller's input is dropped.
var AllowedParamKeys = []string{
	ParamMode,
	ParamReturnCitations,
	ParamMaxSearchResults,
	ParamFromDate,
	ParamToDate,
	ParamSources,
}

// Params is a filtered search parameter bag.
type Params map[string]any

// Pair is a single key/value entry of an ordered parameter sequence.
type Pair struct {
	Key   string
	Value any
}

// FilterParams copies the allow-listed keys of raw into a new Params. Keys
// that are missing or nil are skipped and "sources" is normalized with
// NormalizeSources. raw may be a map, url.Values or a []Pair; for pair
// sequences the last value of a repeated key wins.
func FilterParams(allow []string, raw any) Params {
	in := materialize(raw)
	out := make(Params, len(allow))
	for _, key := range allow {
		value, ok := in[key]
		if !ok || value == nil {
			continue
		}
		if key == ParamSources {
			normalized, ok := NormalizeSources(value)
			if !ok {
				continue
			}
			value = normalized
		}
		out[key] = value
	}
	return out
}

func materialize(raw any) map[string]any {
	switch v := raw.(type) {
	case nil:
		return map[string]any{}
	case Params:
		return v
	case map[string]any:
		return v
	case map[string]string:
		m := make(map[string]any, len(v))
		for k, s := range v {
			m[k] = s
		}
		return m
	case url.Values:
		m := make(map[string]any, len(v))
		for k, vals := range v {
			if len(vals) > 0 {
				m[k] = vals[len(vals)-1]
			}
		}
		return m
	case []Pair:
		m := make(map[string]any, len(v))
		for _, p := range v {
			m[p.Key] = p.Value
		}
		return m
	default:
		m, err := cast.ToStringMapE(v)
		if err != nil {
			return map[string]any{}
		}
		return m
	}
}
