package asana

import (
	"fmt"
	"net/url"

	"github.com/custodia-labs/workmirror/internal/core/domain"
)

// resourcePath returns the collection path for a kind, e.g. "/tasks".
func resourcePath(kind domain.Kind) (string, error) {
	switch kind {
	case domain.KindWorkspace:
		return "/workspaces", nil
	case domain.KindTeam:
		return "/teams", nil
	case domain.KindUser:
		return "/users", nil
	case domain.KindTeamMembership:
		return "/team_memberships", nil
	case domain.KindProject:
		return "/projects", nil
	case domain.KindProjectTemplate:
		return "/project_templates", nil
	case domain.KindTask:
		return "/tasks", nil
	case domain.KindSection:
		return "/sections", nil
	case domain.KindTag:
		return "/tags", nil
	case domain.KindStatusUpdate:
		return "/status_updates", nil
	case domain.KindStory:
		return "/stories", nil
	case domain.KindCustomField:
		return "/custom_fields", nil
	case domain.KindAttachment:
		return "/attachments", nil
	default:
		return "", fmt.Errorf("%w: no fetch endpoint for %q", domain.ErrUnsupportedKind, kind)
	}
}

// childPath maps a (parent kind, child kind) pair to its list endpoint.
// Only the pairs the crawl actually walks are supported.
func childPath(parent domain.Reference, child domain.Kind) (string, url.Values, error) {
	q := url.Values{}
	switch {
	case parent.Kind == domain.KindWorkspace && child == domain.KindTeam:
		return "/organizations/" + parent.ID + "/teams", q, nil
	case parent.Kind == domain.KindWorkspace && child == domain.KindUser:
		return "/workspaces/" + parent.ID + "/users", q, nil
	case parent.Kind == domain.KindWorkspace && child == domain.KindProject:
		return "/workspaces/" + parent.ID + "/projects", q, nil
	case parent.Kind == domain.KindTeam && child == domain.KindTeamMembership:
		return "/teams/" + parent.ID + "/team_memberships", q, nil
	case parent.Kind == domain.KindProject && child == domain.KindTask:
		return "/projects/" + parent.ID + "/tasks", q, nil
	case parent.Kind == domain.KindProject && child == domain.KindSection:
		return "/projects/" + parent.ID + "/sections", q, nil
	case parent.Kind == domain.KindProject && child == domain.KindStatusUpdate:
		q.Set("parent", parent.ID)
		return "/status_updates", q, nil
	case parent.Kind == domain.KindTask && child == domain.KindTask:
		return "/tasks/" + parent.ID + "/subtasks", q, nil
	default:
		return "", nil, fmt.Errorf("%w: no list endpoint for %s children of %s",
			domain.ErrUnsupportedKind, child, parent.Kind)
	}
}
