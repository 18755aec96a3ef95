package services

import (
	"regexp"

	"github.com/custodia-labs/workmirror/internal/core/domain"
)

// clientPrefixRe matches display names that start with exactly three ASCII
// digits, the naming convention that resolves a project to a client code.
var clientPrefixRe = regexp.MustCompile(`^(\d{3})`)

// Annotator derives ownership metadata for fetched records. It is pure:
// no I/O, no mutation of the input.
type Annotator struct{}

// NewAnnotator creates an Annotator.
func NewAnnotator() *Annotator {
	return &Annotator{}
}

// Annotate returns a copy of rec with origin, classification, and scope
// labels set. Projects derive their own labels from the naming convention;
// other client-related kinds inherit the parent's labels unchanged;
// everything else gets no labels.
func (a *Annotator) Annotate(rec *domain.Record, parentScopeLabels []string) *domain.Record {
	out := rec.Clone()
	out.Origin = domain.Origin

	spec := rec.Kind.Spec()
	if spec.ClientRelated {
		out.Classification = domain.ClassificationClientScoped
	} else {
		out.Classification = domain.ClassificationGeneral
	}

	switch {
	case rec.Kind == domain.KindProject && clientPrefixRe.MatchString(out.Name()):
		out.ScopeLabels = ClientCode(out.Name())
	case spec.ClientRelated:
		out.ScopeLabels = append([]string{}, parentScopeLabels...)
	default:
		out.ScopeLabels = []string{}
	}

	return out
}

// ClientCode resolves a display name to its client scope: the leading
// three-digit prefix when present, otherwise no scope.
func ClientCode(name string) []string {
	if m := clientPrefixRe.FindStringSubmatch(name); m != nil {
		return []string{m[1]}
	}
	return []string{}
}
