package domain

import "fmt"

// Kind identifies a remote resource type. The set is closed: every kind
// the crawler can encounter is declared here, and Spec gives its static
// crawl behaviour. Adding a kind means adding a constant and a Spec case,
// which keeps dispatch compiler-checked instead of a runtime table lookup.
type Kind string

const (
	KindWorkspace       Kind = "workspace"
	KindTeam            Kind = "team"
	KindUser            Kind = "user"
	KindTeamMembership  Kind = "team_membership"
	KindProject         Kind = "project"
	KindProjectTemplate Kind = "project_template"
	KindTask            Kind = "task"
	KindSection         Kind = "section"
	KindTag             Kind = "tag"
	KindStatusUpdate    Kind = "status_update"
	KindStory           Kind = "story"
	KindCustomField     Kind = "custom_field"
	KindAttachment      Kind = "attachment"

	// Structural join records. Never fetched or persisted.
	KindCustomFieldSetting Kind = "custom_field_setting"
	KindEnumOption         Kind = "enum_option"
)

// KindSpec describes the static crawl behaviour of one Kind.
type KindSpec struct {
	// Ignored kinds are structural noise: expansion returns immediately.
	Ignored bool

	// ClientRelated kinds inherit scope labels from their parent chain
	// and are classified as client-scoped.
	ClientRelated bool

	// Enrich requests a second fetch with EnrichFields merged over the
	// base record.
	Enrich bool

	// EnrichFields is the extended opt_fields set for the second fetch.
	EnrichFields []string

	// RefFields are attribute names whose value may be a single nested
	// reference worth descending into.
	RefFields []string

	// RefListFields are attribute names whose value may be a list of
	// nested references.
	RefListFields []string

	// ChildKinds lists the kinds reached through a list-children call
	// rather than field nesting, e.g. the tasks of a project.
	ChildKinds []Kind

	// Narrative reports whether the kind carries a story stream fetched
	// through a list-narrative call.
	Narrative bool
}

// Spec returns the crawl behaviour for the kind. Unknown kinds get the
// zero spec: fetched, general classification, no declared reference edges.
func (k Kind) Spec() KindSpec {
	switch k {
	case KindWorkspace:
		return KindSpec{}
	case KindTeam:
		return KindSpec{
			Enrich:       true,
			EnrichFields: []string{"description", "html_description"},
			RefFields:    []string{"organization"},
		}
	case KindUser:
		return KindSpec{
			RefListFields: []string{"workspaces"},
		}
	case KindTeamMembership:
		return KindSpec{
			RefFields: []string{"user", "team"},
		}
	case KindProject:
		return KindSpec{
			ClientRelated: true,
			Enrich:        true,
			EnrichFields:  []string{"created_from_template", "project_brief", "html_notes"},
			RefFields:     []string{"owner", "team", "workspace", "created_from_template"},
			RefListFields: []string{"members", "followers", "custom_fields", "custom_field_settings"},
			ChildKinds:    []Kind{KindTask, KindSection, KindStatusUpdate},
		}
	case KindProjectTemplate:
		return KindSpec{
			RefFields: []string{"owner", "team"},
		}
	case KindTask:
		return KindSpec{
			ClientRelated: true,
			Enrich:        true,
			EnrichFields: []string{
				"created_by", "dependencies", "dependents", "html_notes",
				"is_rendered_as_separator", "num_subtasks", "description",
			},
			RefFields:     []string{"assignee", "parent", "workspace", "created_by"},
			RefListFields: []string{"projects", "followers", "tags", "dependencies", "dependents", "custom_fields"},
			ChildKinds:    []Kind{KindTask},
			Narrative:     true,
		}
	case KindSection:
		return KindSpec{
			ClientRelated: true,
			RefFields:     []string{"project"},
		}
	case KindTag:
		return KindSpec{
			RefFields:     []string{"workspace"},
			RefListFields: []string{"followers"},
		}
	case KindStatusUpdate:
		return KindSpec{
			Enrich:       true,
			EnrichFields: []string{"html_text"},
			RefFields:    []string{"created_by", "parent"},
		}
	case KindStory:
		return KindSpec{
			ClientRelated: true,
			Enrich:        true,
			EnrichFields:  []string{"html_text"},
			RefFields:     []string{"created_by", "target"},
		}
	case KindCustomField:
		return KindSpec{
			Enrich:        true,
			EnrichFields:  []string{"description"},
			RefFields:     []string{"created_by"},
			RefListFields: []string{"enum_options"},
		}
	case KindAttachment:
		// Attachments are recorded but never descended into; their only
		// nested reference points back up to the parent. They inherit the
		// scope of whichever parent surfaced them first.
		return KindSpec{ClientRelated: true}
	case KindCustomFieldSetting, KindEnumOption:
		return KindSpec{Ignored: true}
	default:
		return KindSpec{}
	}
}

// AllKinds returns every materialisable kind, in crawl-report order.
func AllKinds() []Kind {
	return []Kind{
		KindWorkspace, KindTeam, KindUser, KindTeamMembership,
		KindProject, KindProjectTemplate, KindTask, KindSection,
		KindTag, KindStatusUpdate, KindStory, KindCustomField,
		KindAttachment,
	}
}

// ParseKind converts a resource type string into a Kind.
func ParseKind(s string) (Kind, error) {
	for _, k := range AllKinds() {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: unknown kind %q", ErrInvalidInput, s)
}
