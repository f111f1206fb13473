package ai

// PruneDeep removes null values recursively from a decoded JSON tree
// (maps, slices and scalars as produced by json.Unmarshal into interface{}).
// The upstream schema is strict about omitted vs null optional fields, so
// every nested object, including answer entries inside arrays, must be
// stripped before sending.
func PruneDeep(value interface{}) interface{} {
	switch v := value.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(v))
		for key, val := range v {
			if val == nil {
				continue
			}
			if pruned := PruneDeep(val); pruned != nil {
				out[key] = pruned
			}
		}
		return out
	case []interface{}:
		out := make([]interface{}, 0, len(v))
		for _, val := range v {
			if val == nil {
				continue
			}
			if pruned := PruneDeep(val); pruned != nil {
				out = append(out, pruned)
			}
		}
		return out
	default:
		return value
	}
}
