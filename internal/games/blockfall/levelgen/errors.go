package levelgen

import "fmt"

// BandError describes an unusable band in a Table.
type BandError struct {
	Index  int
	Reason string
}

func (e *BandError) Error() string {
	return fmt.Sprintf("levelgen: band %d: %s", e.Index, e.Reason)
}

func errRange(field string) error {
	return fmt.Errorf("levelgen: %s out of range", field)
}
