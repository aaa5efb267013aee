// Package paginate slices a ranked result sequence into fixed-size pages.
//
// Grounded on the original search server's Paginator/Page/Paginate: a
// sequence of non-overlapping, order-preserving sub-slices of length
// pageSize, the last possibly shorter.
package paginate

import "fmt"

// Paginate splits items into pages of pageSize, the last page possibly
// shorter. pageSize must be positive. A zero-length items yields zero pages.
func Paginate[T any](items []T, pageSize int) ([][]T, error) {
	if pageSize <= 0 {
		return nil, fmt.Errorf("page size must be positive, got %d", pageSize)
	}
	if len(items) == 0 {
		return nil, nil
	}
	pages := make([][]T, 0, (len(items)+pageSize-1)/pageSize)
	for start := 0; start < len(items); start += pageSize {
		end := start + pageSize
		if end > len(items) {
			end = len(items)
		}
		pages = append(pages, items[start:end])
	}
	return pages, nil
}
