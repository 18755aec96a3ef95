package domain

import "time"

// Origin tags every record with the source system it was mirrored from.
const Origin = "asana"

// Classification is the coarse partition of records by ownership.
type Classification string

const (
	// ClassificationClientScoped marks records belonging to a named client.
	ClassificationClientScoped Classification = "client_spec"

	// ClassificationGeneral marks organisation-level records.
	ClassificationGeneral Classification = "general"
)

// Reference is a minimal pointer to a remote resource. It appears embedded
// anywhere in a fetched record: as a field value, inside a list, or nested
// in a sub-object. Name is populated by list endpoints when available and
// may be empty.
type Reference struct {
	ID   string
	Kind Kind
	Name string
}

// Record is the full attribute set for one resource, keyed by (Kind, ID),
// plus the metadata derived by the annotator. Fields holds the raw
// semi-structured attribute mapping exactly as fetched.
type Record struct {
	// ID is the upstream global identifier.
	ID string

	// Kind is the resource kind.
	Kind Kind

	// Fields is the semi-structured attribute mapping
	// (field name -> scalar | nested object | list).
	Fields map[string]any

	// Origin identifies the source system. Set by the annotator.
	Origin string

	// ScopeLabels denotes which named clients this record belongs to.
	// Fixed at first expansion, never retroactively updated.
	ScopeLabels []string

	// Classification partitions records into client-scoped vs general.
	Classification Classification

	// UpdatedAt is store bookkeeping: the last write timestamp.
	UpdatedAt time.Time
}

// Ref returns the record's identity as a Reference.
func (r *Record) Ref() Reference {
	return Reference{ID: r.ID, Kind: r.Kind, Name: r.Name()}
}

// Name returns the record's display name, or "" when absent.
func (r *Record) Name() string {
	name, _ := r.Fields["name"].(string)
	return name
}

// Clone returns a copy of the record with its own Fields map and
// ScopeLabels slice. Nested field values are shared; callers that mutate
// nested structure must copy deeper themselves.
func (r *Record) Clone() *Record {
	out := *r
	out.Fields = make(map[string]any, len(r.Fields))
	for k, v := range r.Fields {
		out.Fields[k] = v
	}
	out.ScopeLabels = append([]string(nil), r.ScopeLabels...)
	return &out
}

// EmbeddingMetadata is the reduced projection of a record stored alongside
// its vector: only the fields useful for filtering, never the full content.
type EmbeddingMetadata struct {
	Origin         string
	ScopeLabels    []string
	Classification Classification
	Kind           Kind
	ID             string
}

// EmbeddingMetadata returns the vector-index payload for the record.
func (r *Record) EmbeddingMetadata() EmbeddingMetadata {
	return EmbeddingMetadata{
		Origin:         r.Origin,
		ScopeLabels:    append([]string(nil), r.ScopeLabels...),
		Classification: r.Classification,
		Kind:           r.Kind,
		ID:             r.ID,
	}
}

// ReferenceIn extracts a Reference from a raw field value: any nested
// object carrying both a "gid" and a "resource_type" string. Returns
// false for scalars, lists, and objects without an identity.
func ReferenceIn(v any) (Reference, bool) {
	obj, ok := v.(map[string]any)
	if !ok {
		return Reference{}, false
	}
	id, ok := obj["gid"].(string)
	if !ok || id == "" {
		return Reference{}, false
	}
	kind, ok := obj["resource_type"].(string)
	if !ok || kind == "" {
		return Reference{}, false
	}
	name, _ := obj["name"].(string)
	return Reference{ID: id, Kind: Kind(kind), Name: name}, true
}

// Summary maps each kind to the number of records materialised during one
// crawl pass. It is the only result surfaced to the caller of a crawl.
type Summary map[Kind]int

// Add increments the count for a kind.
func (s Summary) Add(k Kind) {
	s[k]++
}

// Merge folds another summary into this one.
func (s Summary) Merge(other Summary) {
	for k, n := range other {
		s[k] += n
	}
}

// Total returns the number of records materialised across all kinds.
func (s Summary) Total() int {
	total := 0
	for _, n := range s {
		total += n
	}
	return total
}
