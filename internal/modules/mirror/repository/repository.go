package repository

// Repository defines the interface for the on-disk attachment mirror.
// A stored name's existence is the only "is mirrored" signal; entries
// are immutable once written and never evicted.
type Repository interface {
	Has(name string) bool
	Store(name string, data []byte) error
	BasePath() string
}
