package extractor

import (
	"encoding/json"
	"strings"

	"github.com/MichalMitros/game-price-puller/internal/money"
)

// amountOf converts JSON value to amount. Strings are parsed as localized
// display prices like "$69.99" or "1.299,90 zł".
func amountOf(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, v > 0
	case json.Number:
		f, err := v.Float64()
		return f, err == nil && f > 0
	case string:
		f, err := money.ParseAmount(v)
		return f, err == nil && f > 0
	default:
		return 0, false
	}
}

// firstAmount returns first positive amount stored under one of keys.
func firstAmount(obj map[string]any, keys ...string) (float64, string, bool) {
	for _, key := range keys {
		if amount, ok := amountOf(obj[key]); ok {
			raw, _ := obj[key].(string)
			return amount, raw, true
		}
	}
	return 0, "", false
}

// firstString returns first non-empty string stored under one of keys.
func firstString(obj map[string]any, keys ...string) string {
	for _, key := range keys {
		if s, ok := obj[key].(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

// dig descends obj along path of object keys.
func dig(obj any, path ...string) (map[string]any, bool) {
	current, ok := obj.(map[string]any)
	for _, key := range path {
		if !ok {
			return nil, false
		}
		current, ok = current[key].(map[string]any)
	}
	return current, ok
}

// objects returns value itself if it is an object, or object items of an array.
func objects(value any) []map[string]any {
	switch v := value.(type) {
	case map[string]any:
		return []map[string]any{v}
	case []any:
		out := make([]map[string]any, 0, len(v))
		for _, item := range v {
			if obj, ok := item.(map[string]any); ok {
				out = append(out, obj)
			}
		}
		return out
	default:
		return nil
	}
}
