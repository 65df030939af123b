// Package filter narrows tool results with user supplied expressions.
//
// Expressions use the expr language and are evaluated once per result:
//
//	Color == "red" and icontains(Name, "deploy")
//	Result == "FAILURE" && daysSince(Started) < 7
package filter

// Apply returns the items whose record matches f. Items are kept in order.
func Apply[T any](f CompiledFilter, items []T, toRecord func(T) Record) ([]T, error) {
	var matched []T
	for _, item := range items {
		ok, err := f.Match(toRecord(item))
		if err != nil {
			return nil, err
		}
		if ok {
			matched = append(matched, item)
		}
	}
	return matched, nil
}
