package domain

// UpsertOutcome reports which legs of the dual write succeeded. The crawl
// continues regardless of the outcome; anything other than BothSucceeded
// is reported to the error sink as a data-freshness gap.
type UpsertOutcome int

const (
	// UpsertBothSucceeded: document store and vector index both written
	// (or the vector step was legitimately skipped for a kind with no
	// renderable text).
	UpsertBothSucceeded UpsertOutcome = iota

	// UpsertDocumentStoreOnly: the vector write failed.
	UpsertDocumentStoreOnly

	// UpsertVectorIndexOnly: the document write failed. Rare, unexpected.
	UpsertVectorIndexOnly

	// UpsertBothFailed: neither store accepted the record.
	UpsertBothFailed
)

// String returns a log-friendly outcome label.
func (o UpsertOutcome) String() string {
	switch o {
	case UpsertBothSucceeded:
		return "both succeeded"
	case UpsertDocumentStoreOnly:
		return "document store only"
	case UpsertVectorIndexOnly:
		return "vector index only"
	case UpsertBothFailed:
		return "both failed"
	default:
		return "unknown"
	}
}
