package renderers

import (
	"fmt"
	"strings"
	"time"
)

func renderSection(fields map[string]any) string {
	var parts []string
	parts = append(parts, fmt.Sprintf("This is a section named '%s'.", strOr(fields, "name", "Unnamed Section")))
	parts = append(parts, fmt.Sprintf("It is part of the project '%s'.",
		objName(fields, "project", "an unspecified project")))
	parts = append(parts, fmt.Sprintf("The section was created on %s.",
		formatDate(fields["created_at"], "an unknown date")))
	return strings.Join(parts, " ")
}

var statusTypeLabels = map[string]string{
	"on_track":  "On Track",
	"at_risk":   "At Risk",
	"off_track": "Off Track",
	"on_hold":   "On Hold",
	"complete":  "Complete",
	"upcoming":  "Upcoming",
	"active":    "Active",
	"achieved":  "Achieved",
	"partial":   "Partially Achieved",
	"missed":    "Missed",
	"dropped":   "Dropped",
}

func renderStatusUpdate(fields map[string]any) string {
	var parts []string

	parent := obj(fields, "parent")
	parentName := strOr(parent, "name", "an unspecified item")
	itemType := strOr(parent, "resource_type", "item")
	switch subtype := str(fields, "resource_subtype"); {
	case strings.Contains(subtype, "project_status_update"):
		itemType = "project"
	case strings.Contains(subtype, "portfolio_status_update"):
		itemType = "portfolio"
	case strings.Contains(subtype, "goal_status_update"):
		itemType = "goal"
	}
	creator := objName(fields, "created_by", "an unknown user")
	parts = append(parts, fmt.Sprintf("This is a status update for the %s '%s', provided by %s.",
		itemType, parentName, creator))

	statusRaw := strOr(fields, "status_type", "unknown")
	statusLabel, ok := statusTypeLabels[strings.ToLower(statusRaw)]
	if !ok {
		statusLabel = titleWords(strings.ReplaceAll(statusRaw, "_", " "))
	}

	created := formatDate(fields["created_at"], "")
	modified := formatDate(fields["modified_at"], "")
	var dateClause string
	switch {
	case createdAtEpoch(str(fields, "created_at")) && modified != "":
		dateClause = "last updated on " + modified
	case created != "" && modified != "" && created != modified:
		dateClause = fmt.Sprintf("created on %s and last modified on %s", created, modified)
	case modified != "":
		dateClause = "as of " + modified
	case created != "":
		dateClause = "created on " + created
	}
	if dateClause != "" {
		parts = append(parts, fmt.Sprintf("The status is '%s', %s.", statusLabel, dateClause))
	} else {
		parts = append(parts, fmt.Sprintf("The status is '%s'.", statusLabel))
	}

	title := strings.TrimSpace(str(fields, "title"))
	if title != "" {
		parts = append(parts, fmt.Sprintf("The title of this update is: \"%s\".", title))
	}

	text := strings.TrimSpace(str(fields, "text"))
	if text == "" {
		text = cleanHTML(str(fields, "html_text"))
	}
	switch {
	case text != "":
		parts = append(parts, fmt.Sprintf("The details provided are: \"%s\".", text))
	case title != "":
		parts = append(parts, "No further textual details were provided beyond the title.")
	default:
		parts = append(parts, "No specific title or textual details were provided with this status change.")
	}

	return strings.Join(parts, " ")
}

func renderStory(fields map[string]any) string {
	var parts []string

	creator := objName(fields, "created_by", "System")
	created := formatDate(fields["created_at"], "an unspecified time")

	target := obj(fields, "target")
	targetName := strOr(target, "name", "an unspecified item")
	targetType := strOr(target, "resource_type", "item")
	if subtype := str(target, "resource_subtype"); subtype != "" {
		if friendly := strings.ReplaceAll(subtype, "_", " "); friendly != targetType {
			targetType = friendly
		}
	}

	if strings.EqualFold(creator, "System") {
		parts = append(parts, fmt.Sprintf("On %s, a system event occurred concerning the %s '%s'.",
			created, targetType, targetName))
	} else {
		parts = append(parts, fmt.Sprintf("On %s, %s initiated an event related to the %s '%s'.",
			created, creator, targetType, targetName))
	}

	text := cleanHTML(str(fields, "html_text"))
	if text == "" {
		text = cleanHTML(str(fields, "text"))
	}
	if text == "" {
		if subtype := str(fields, "resource_subtype"); subtype != "" {
			text = fmt.Sprintf("A '%s' action was performed.", titleWords(strings.ReplaceAll(subtype, "_", " ")))
		} else {
			text = "An unspecified update was recorded."
		}
	}

	if strings.EqualFold(str(fields, "type"), "comment") {
		parts = append(parts, fmt.Sprintf("The comment posted was: \"%s\".", text))
	} else {
		parts = append(parts, fmt.Sprintf("The recorded activity or system event stated: \"%s\".", text))
	}

	source := strOr(fields, "source", "an unknown source")
	if source != "an unknown source" {
		source = "the " + source + " interface"
	}
	parts = append(parts, fmt.Sprintf("This event originated from %s.", source))

	return strings.Join(parts, " ")
}

// createdAtEpoch reports whether the timestamp parses to 1970 or earlier,
// which Asana emits for some synthetic status updates.
func createdAtEpoch(raw string) bool {
	if raw == "" {
		return false
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return false
	}
	return t.Year() <= 1970
}

// titleWords uppercases the first letter of each space-separated word.
func titleWords(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
