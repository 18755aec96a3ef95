package renderers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/workmirror/internal/core/domain"
)

func render(t *testing.T, kind domain.Kind, fields map[string]any) string {
	t.Helper()
	return New().Render(&domain.Record{ID: "1", Kind: kind, Fields: fields})
}

func TestRegistry_Render(t *testing.T) {
	t.Run("returns empty text for workspace", func(t *testing.T) {
		assert.Empty(t, render(t, domain.KindWorkspace, map[string]any{"name": "Acme"}))
	})

	t.Run("returns empty text for unknown kinds", func(t *testing.T) {
		assert.Empty(t, render(t, domain.Kind("widget"), map[string]any{"name": "x"}))
	})

	t.Run("covers every embeddable kind", func(t *testing.T) {
		for _, kind := range domain.AllKinds() {
			if kind == domain.KindWorkspace {
				continue
			}
			text := render(t, kind, map[string]any{"name": "sample"})
			assert.NotEmpty(t, text, "kind %s should render", kind)
		}
	})
}

func TestRenderProject(t *testing.T) {
	t.Run("describes an active project with owner and dates", func(t *testing.T) {
		text := render(t, domain.KindProject, map[string]any{
			"name":        "051 Website Relaunch",
			"archived":    false,
			"completed":   false,
			"owner":       map[string]any{"name": "Dana"},
			"team":        map[string]any{"name": "Web"},
			"created_at":  "2026-01-05T10:00:00.000Z",
			"modified_at": "2026-02-01T10:00:00.000Z",
			"due_on":      "2026-03-15",
			"members":     []any{map[string]any{"name": "Dana"}, map[string]any{"name": "Lee"}},
			"notes":       "Rebuild the marketing site.",
		})

		assert.Contains(t, text, "Project Name: 051 Website Relaunch.")
		assert.Contains(t, text, "currently active and ongoing")
		assert.Contains(t, text, "owned by Dana")
		assert.Contains(t, text, "belongs to the 'Web' team")
		assert.Contains(t, text, "Created on January 5, 2026")
		assert.Contains(t, text, "It is due on March 15, 2026.")
		assert.Contains(t, text, "Project members include: Dana and Lee.")
		assert.Contains(t, text, "Rebuild the marketing site.")
	})

	t.Run("falls back to cleaned html notes", func(t *testing.T) {
		text := render(t, domain.KindProject, map[string]any{
			"name":       "P",
			"html_notes": "<body>Launch <b>plan</b> v2</body>",
		})

		assert.Contains(t, text, "Project Description/Notes: Launch plan v2")
	})

	t.Run("describes custom field settings", func(t *testing.T) {
		text := render(t, domain.KindProject, map[string]any{
			"name": "P",
			"custom_field_settings": []any{
				map[string]any{"custom_field": map[string]any{
					"name":             "Priority",
					"resource_subtype": "enum",
					"enum_options": []any{
						map[string]any{"name": "High"},
						map[string]any{"name": "Low"},
					},
				}},
			},
		})

		assert.Contains(t, text, "'Priority' (enum) with options: High, Low")
	})
}

func TestRenderTask(t *testing.T) {
	t.Run("describes a completed assigned task", func(t *testing.T) {
		text := render(t, domain.KindTask, map[string]any{
			"name":            "Ship login flow",
			"completed":       true,
			"completed_at":    "2026-02-10T09:00:00.000Z",
			"assignee":        map[string]any{"name": "Lee"},
			"assignee_status": "upcoming",
			"num_subtasks":    float64(2),
			"memberships": []any{
				map[string]any{
					"project": map[string]any{"name": "051 Website Relaunch"},
					"section": map[string]any{"name": "Doing"},
				},
			},
			"custom_fields": []any{
				map[string]any{"name": "Priority", "display_value": "High"},
			},
		})

		assert.Contains(t, text, "Task: 'Ship login flow'.")
		assert.Contains(t, text, "marked as done on February 10, 2026")
		assert.Contains(t, text, "assigned to Lee (status: upcoming)")
		assert.Contains(t, text, "the section 'Doing' of project '051 Website Relaunch'")
		assert.Contains(t, text, "Custom field values: 'Priority': High.")
		assert.Contains(t, text, "It has 2 subtasks.")
	})

	t.Run("renders separators tersely", func(t *testing.T) {
		text := render(t, domain.KindTask, map[string]any{
			"name":                     "--- Q2 ---",
			"is_rendered_as_separator": true,
			"created_at":               "2026-01-01T00:00:00.000Z",
		})

		assert.Contains(t, text, "separator item")
		assert.NotContains(t, text, "unassigned")
	})

	t.Run("reports actual time in hours and minutes", func(t *testing.T) {
		text := render(t, domain.KindTask, map[string]any{
			"name":                "T",
			"actual_time_minutes": float64(95),
		})

		assert.Contains(t, text, "Actual time logged: 1 hour and 35 minutes.")
	})
}

func TestRenderStory(t *testing.T) {
	t.Run("renders a user comment", func(t *testing.T) {
		text := render(t, domain.KindStory, map[string]any{
			"created_by": map[string]any{"name": "Dana"},
			"created_at": "2026-02-01T12:00:00.000Z",
			"target":     map[string]any{"name": "Ship login flow", "resource_type": "task"},
			"type":       "comment",
			"text":       "Looks good to me",
			"source":     "web",
		})

		assert.Contains(t, text, "Dana initiated an event")
		assert.Contains(t, text, `The comment posted was: "Looks good to me".`)
		assert.Contains(t, text, "the web interface")
	})

	t.Run("renders system events without an actor", func(t *testing.T) {
		text := render(t, domain.KindStory, map[string]any{
			"created_at":       "2026-02-01T12:00:00.000Z",
			"target":           map[string]any{"name": "Ship login flow", "resource_type": "task"},
			"type":             "system",
			"resource_subtype": "marked_complete",
		})

		assert.Contains(t, text, "a system event occurred")
		assert.Contains(t, text, "A 'Marked Complete' action was performed.")
	})
}

func TestRenderStatusUpdate(t *testing.T) {
	t.Run("maps status types to friendly labels", func(t *testing.T) {
		text := render(t, domain.KindStatusUpdate, map[string]any{
			"parent":           map[string]any{"name": "051 Website Relaunch", "resource_type": "project"},
			"resource_subtype": "project_status_update",
			"created_by":       map[string]any{"name": "Dana"},
			"status_type":      "at_risk",
			"title":            "Slipping a week",
			"text":             "Design review ran long.",
			"created_at":       "2026-02-01T12:00:00.000Z",
			"modified_at":      "2026-02-02T12:00:00.000Z",
		})

		assert.Contains(t, text, "status update for the project '051 Website Relaunch'")
		assert.Contains(t, text, "The status is 'At Risk'")
		assert.Contains(t, text, "created on February 1, 2026 and last modified on February 2, 2026")
		assert.Contains(t, text, `"Slipping a week"`)
	})

	t.Run("prefers the modified date when created is epoch", func(t *testing.T) {
		text := render(t, domain.KindStatusUpdate, map[string]any{
			"parent":      map[string]any{"name": "P", "resource_type": "project"},
			"status_type": "on_track",
			"created_at":  "1970-01-01T00:00:00.000Z",
			"modified_at": "2026-02-02T12:00:00.000Z",
		})

		assert.Contains(t, text, "last updated on February 2, 2026")
	})
}

func TestRenderTeamMembership(t *testing.T) {
	tests := []struct {
		name   string
		fields map[string]any
		want   string
	}{
		{
			name:   "standard member",
			fields: map[string]any{},
			want:   "standard member with full access",
		},
		{
			name:   "administrator",
			fields: map[string]any{"is_admin": true},
			want:   "They are an administrator.",
		},
		{
			name:   "admin guest with limited access",
			fields: map[string]any{"is_admin": true, "is_guest": true, "is_limited_access": true},
			want:   "They are an administrator and also a guest member and have limited access privileges.",
		},
		{
			name:   "limited access only",
			fields: map[string]any{"is_limited_access": true},
			want:   "They have limited access privileges.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := map[string]any{
				"user": map[string]any{"name": "Lee"},
				"team": map[string]any{"name": "Web"},
			}
			for k, v := range tt.fields {
				fields[k] = v
			}

			text := render(t, domain.KindTeamMembership, fields)

			assert.Contains(t, text, "Lee is associated with the team 'Web'.")
			assert.Contains(t, text, tt.want)
		})
	}
}

func TestRenderCustomField(t *testing.T) {
	t.Run("lists enabled enum options only", func(t *testing.T) {
		text := render(t, domain.KindCustomField, map[string]any{
			"name":             "Priority",
			"resource_subtype": "enum",
			"enum_options": []any{
				map[string]any{"name": "High", "enabled": true},
				map[string]any{"name": "Retired", "enabled": false},
				map[string]any{"name": "Low", "enabled": true},
			},
		})

		assert.Contains(t, text, "Possible values include: 'High' and 'Low'.")
		assert.NotContains(t, text, "Retired")
	})

	t.Run("describes workspace-global number fields", func(t *testing.T) {
		text := render(t, domain.KindCustomField, map[string]any{
			"name":                   "Estimate",
			"resource_subtype":       "number",
			"precision":              float64(2),
			"is_global_to_workspace": true,
		})

		assert.Contains(t, text, "configured with 2 decimal places")
		assert.Contains(t, text, "available across the entire workspace")
	})
}

func TestRenderAttachment(t *testing.T) {
	t.Run("distinguishes native uploads from external hosts", func(t *testing.T) {
		native := render(t, domain.KindAttachment, map[string]any{
			"name": "spec.pdf", "host": "asana", "resource_subtype": "asana",
			"parent": map[string]any{"name": "Ship login flow", "resource_type": "task"},
		})
		external := render(t, domain.KindAttachment, map[string]any{
			"name": "deck.key", "host": "dropbox", "resource_subtype": "dropbox_file",
			"parent": map[string]any{"name": "Ship login flow", "resource_type": "task"},
		})

		assert.Contains(t, native, "uploaded directly to Asana")
		assert.Contains(t, external, "is a dropbox_file file hosted by dropbox")
		assert.Contains(t, external, "to the task titled 'Ship login flow'")
	})
}

func TestHelpers(t *testing.T) {
	t.Run("formatDate handles timestamps, dates, and garbage", func(t *testing.T) {
		assert.Equal(t, "March 15, 2026", formatDate("2026-03-15", "not set"))
		assert.Equal(t, "March 15, 2026", formatDate("2026-03-15T08:30:00.000Z", "not set"))
		assert.Equal(t, "not set", formatDate("", "not set"))
		assert.Equal(t, "not set", formatDate("soon", "not set"))
		assert.Equal(t, "not set", formatDate(nil, "not set"))
	})

	t.Run("cleanHTML strips body wrappers, tags, and entities", func(t *testing.T) {
		assert.Equal(t, "a & b", cleanHTML("<body>a &amp; <i>b</i></body>"))
		assert.Empty(t, cleanHTML(""))
		assert.Equal(t, "plain", cleanHTML("plain"))
	})

	t.Run("joinNames uses natural enumeration", func(t *testing.T) {
		one := []map[string]any{{"name": "A"}}
		two := []map[string]any{{"name": "A"}, {"name": "B"}}
		three := []map[string]any{{"name": "A"}, {"name": "B"}, {"name": "C"}}

		require.Equal(t, "none assigned", joinNames(nil, "none assigned"))
		assert.Equal(t, "A", joinNames(one, ""))
		assert.Equal(t, "A and B", joinNames(two, ""))
		assert.Equal(t, "A, B, and C", joinNames(three, ""))
	})
}
