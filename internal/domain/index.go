package domain

// IndexBy groups items under the parent id returned by key, preserving input order
func IndexBy[T any](items []T, key func(T) uint) map[uint][]T {
	index := make(map[uint][]T)
	for _, item := range items {
		k := key(item)
		index[k] = append(index[k], item)
	}
	return index
}

// IDs collects the id of every item
func IDs[T any](items []T, id func(T) uint) []uint {
	ids := make([]uint, 0, len(items))
	for _, item := range items {
		ids = append(ids, id(item))
	}
	return ids
}
