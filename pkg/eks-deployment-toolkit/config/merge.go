package config

// DeepCopy returns a structurally independent copy of the document.
// Mutating the copy never affects the original.
func (d Document) DeepCopy() Document {
	return Document(copyMap(d))
}

// DeepMerge merges src into dst recursively and returns the result. Nested
// maps are merged key by key, so merging {"vpc": {"eu-west-1": "vpc-a"}} into
// an account that already has {"vpc": {"us-west-2": "vpc-b"}} keeps both
// entries. Non-map values in src replace the corresponding value in dst.
// Neither argument is mutated.
func DeepMerge(dst, src map[string]any) map[string]any {
	merged := copyMap(dst)
	for key, srcValue := range src {
		srcMap, srcIsMap := srcValue.(map[string]any)
		dstMap, dstIsMap := merged[key].(map[string]any)
		if srcIsMap && dstIsMap {
			merged[key] = DeepMerge(dstMap, srcMap)
			continue
		}
		merged[key] = copyValue(srcValue)
	}
	return merged
}

func copyMap(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for key, value := range in {
		out[key] = copyValue(value)
	}
	return out
}

func copyValue(value any) any {
	switch value := value.(type) {
	case map[string]any:
		return copyMap(value)
	case []any:
		out := make([]any, len(value))
		for i, element := range value {
			out[i] = copyValue(element)
		}
		return out
	default:
		// Scalars coming out of encoding/json (string, float64, bool, nil)
		// are immutable and can be shared.
		return value
	}
}
