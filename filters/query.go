package filters

import (
	"net/url"
	"regexp"
	"sort"
)

var listSuffix = regexp.MustCompile(`\[\d*\]$`)

// ParamsFromQuery parses a raw query string into Params.
//
// A key sent once yields a string, a repeated key yields a []string, and a
// key written with a list suffix (brand[]=a or brand[0]=a) always yields a
// []string. Malformed escapes are skipped rather than rejected.
func ParamsFromQuery(rawQuery string) Params {
	values, _ := url.ParseQuery(rawQuery)

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	params := Params{}
	for _, key := range keys {
		vals := values[key]
		name := key
		isList := false
		if loc := listSuffix.FindStringIndex(key); loc != nil && loc[0] > 0 {
			name = key[:loc[0]]
			isList = true
		}

		existing, seen := params[name]
		switch {
		case seen:
			params[name] = append(toList(existing), vals...)
		case isList || len(vals) > 1:
			params[name] = append([]string(nil), vals...)
		default:
			params[name] = vals[0]
		}
	}
	return params
}

func toList(v any) []string {
	switch val := v.(type) {
	case []string:
		return val
	case string:
		return []string{val}
	default:
		return nil
	}
}
