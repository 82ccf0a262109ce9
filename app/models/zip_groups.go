package models

import "sort"

// ZipGroups maps a bucket label like "9..." to ascending postal codes.
// encoding/json and html/template both emit map keys in sorted order, so
// the buckets come out in ascending label order.
type ZipGroups map[string][]string

// BucketLabel returns the bucket label for a postal code.
func BucketLabel(postalCode string) string {
	return postalCode[0:1] + "..."
}

// Labels returns the bucket labels in ascending order.
func (zg ZipGroups) Labels() []string {
	labels := make([]string, 0, len(zg))
	for label := range zg {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

// Len returns the total number of postal codes over all buckets.
func (zg ZipGroups) Len() int {
	n := 0
	for _, codes := range zg {
		n += len(codes)
	}
	return n
}
