package util

import (
	"encoding/json"
)

// CompareMaps compares two maps by key and returns the entries extra in
// `to` and the entries missing from it, with respect to `from`. The value
// types may differ; only keys are compared.
func CompareMaps[K comparable, V, W any](from map[K]V, to map[K]W) (extras map[K]W, missing map[K]V) {
	extras = make(map[K]W)
	missing = make(map[K]V)

	for key, value := range from {
		if _, exists := to[key]; !exists {
			missing[key] = value
		}
	}
	for key, value := range to {
		if _, exists := from[key]; !exists {
			extras[key] = value
		}
	}

	return extras, missing
}

// PrettyPrint returns an indented JSON representation of a struct, for
// human-readable diagnostics output.
func PrettyPrint(i interface{}) string {
	s, _ := json.MarshalIndent(i, "", "\t")
	return string(s)
}
