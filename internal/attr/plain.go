package attr

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Less orders two values. Numbers compare numerically when both parse as
// floats; every other pairing, including numbers that fail to parse,
// compares by display text.
func Less(a, b Value) bool {
	if a.kind == KindNumber && b.kind == KindNumber {
		an, aerr := strconv.ParseFloat(a.text, 64)
		bn, berr := strconv.ParseFloat(b.text, 64)
		if aerr == nil && berr == nil {
			return an < bn
		}
	}
	return Display(a) < Display(b)
}

// Plain converts v to plain Go values: string, json.Number, bool, []byte,
// [][]byte, []any, map[string]any or nil.
func Plain(v Value) any {
	switch v.kind {
	case KindString:
		return v.text
	case KindNumber:
		return json.Number(v.text)
	case KindBoolean:
		return v.boolean
	case KindBinary:
		b, _ := v.Bytes()
		return b
	case KindBinarySet:
		out := make([][]byte, len(v.binSet))
		copy(out, v.binSet)
		return out
	case KindStringSet:
		out := make([]any, len(v.texts))
		for i, s := range v.texts {
			out[i] = s
		}
		return out
	case KindNumberSet:
		out := make([]any, len(v.texts))
		for i, s := range v.texts {
			out[i] = json.Number(s)
		}
		return out
	case KindList:
		out := make([]any, len(v.list))
		for i, child := range v.list {
			out[i] = Plain(child)
		}
		return out
	case KindMap:
		out := make(map[string]any, len(v.members))
		for k, child := range v.members {
			out[k] = Plain(child)
		}
		return out
	default:
		return nil
	}
}

// PlainItem converts every member of item with Plain.
func PlainItem(item Item) map[string]any {
	out := make(map[string]any, len(item))
	for k, v := range item {
		out[k] = Plain(v)
	}
	return out
}

// UnmarshalItems decodes items into out, which must be a pointer to a slice
// of records. Fields are matched through their json tags.
func UnmarshalItems(items []Item, out any) error {
	plain := make([]map[string]any, len(items))
	for i, item := range items {
		plain[i] = PlainItem(item)
	}
	raw, err := json.Marshal(plain)
	if err != nil {
		return fmt.Errorf("encode items: %w", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode items: %w", err)
	}
	return nil
}
