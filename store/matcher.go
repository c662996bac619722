package store

import (
	"reflect"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// matches reports whether doc satisfies every clause of filter.
func matches(doc bson.M, filter bson.M) bool {
	for field, cond := range filter {
		value, present := doc[field]
		if ops, ok := operators(cond); ok {
			for op, arg := range ops {
				if !matchOperator(op, value, present, arg) {
					return false
				}
			}
			continue
		}
		if !matchEquals(value, present, cond) {
			return false
		}
	}
	return true
}

// operators returns cond as an operator document when every key starts with $.
func operators(cond interface{}) (map[string]interface{}, bool) {
	var m map[string]interface{}
	switch c := cond.(type) {
	case bson.M:
		m = c
	case map[string]interface{}:
		m = c
	default:
		return nil, false
	}
	if len(m) == 0 {
		return nil, false
	}
	for k := range m {
		if !strings.HasPrefix(k, "$") {
			return nil, false
		}
	}
	return m, true
}

func matchOperator(op string, value interface{}, present bool, arg interface{}) bool {
	switch op {
	case "$in":
		for _, candidate := range list(arg) {
			if matchEquals(value, present, candidate) {
				return true
			}
		}
		return false
	case "$gte":
		return present && anyElement(value, func(v interface{}) bool { return compare(v, arg, func(a, b float64) bool { return a >= b }) })
	case "$lte":
		return present && anyElement(value, func(v interface{}) bool { return compare(v, arg, func(a, b float64) bool { return a <= b }) })
	case "$gt":
		return present && anyElement(value, func(v interface{}) bool { return compare(v, arg, func(a, b float64) bool { return a > b }) })
	case "$lt":
		return present && anyElement(value, func(v interface{}) bool { return compare(v, arg, func(a, b float64) bool { return a < b }) })
	default:
		return false
	}
}

// matchEquals follows document-store equality: an array field matches when
// the whole array or any one element equals want, and a missing field
// matches only null.
func matchEquals(value interface{}, present bool, want interface{}) bool {
	if !present {
		return want == nil
	}
	if equal(value, want) {
		return true
	}
	if elems, ok := asList(value); ok {
		for _, elem := range elems {
			if equal(elem, want) {
				return true
			}
		}
	}
	return false
}

func anyElement(value interface{}, pred func(interface{}) bool) bool {
	if elems, ok := asList(value); ok {
		for _, elem := range elems {
			if pred(elem) {
				return true
			}
		}
		return false
	}
	return pred(value)
}

func compare(value, arg interface{}, cmp func(a, b float64) bool) bool {
	a, okA := asNumber(value)
	b, okB := asNumber(arg)
	if okA && okB {
		return cmp(a, b)
	}
	sa, okA := value.(string)
	sb, okB := arg.(string)
	if okA && okB {
		return cmp(float64(strings.Compare(sa, sb)), 0)
	}
	return false
}

func equal(a, b interface{}) bool {
	if na, ok := asNumber(a); ok {
		nb, ok := asNumber(b)
		return ok && na == nb
	}
	la, okA := asList(a)
	lb, okB := asList(b)
	if okA || okB {
		if !okA || !okB || len(la) != len(lb) {
			return false
		}
		for i := range la {
			if !equal(la[i], lb[i]) {
				return false
			}
		}
		return true
	}
	return reflect.DeepEqual(a, b)
}

func list(v interface{}) []interface{} {
	elems, _ := asList(v)
	return elems
}

func asList(v interface{}) ([]interface{}, bool) {
	switch l := v.(type) {
	case []interface{}:
		return l, true
	case primitive.A:
		return l, true
	case []string:
		out := make([]interface{}, len(l))
		for i, s := range l {
			out[i] = s
		}
		return out, true
	default:
		return nil, false
	}
}

func asNumber(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
