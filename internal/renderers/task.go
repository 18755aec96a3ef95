package renderers

import (
	"fmt"
	"strings"
)

func renderTask(fields map[string]any) string {
	name := strOr(fields, "name", "Unnamed Task")

	if boolean(fields, "is_rendered_as_separator") {
		return renderSeparatorTask(fields, name)
	}

	var parts []string
	parts = append(parts, fmt.Sprintf("Task: '%s'.", name))

	if boolean(fields, "completed") {
		parts = append(parts, fmt.Sprintf("It is completed, marked as done on %s.",
			formatDate(fields["completed_at"], "not set")))
	} else {
		parts = append(parts, "It is currently an ongoing task.")
	}

	if assignee := objName(fields, "assignee", ""); assignee != "" {
		status := strings.ReplaceAll(str(fields, "assignee_status"), "_", " ")
		parts = append(parts, fmt.Sprintf("It is assigned to %s (status: %s).", assignee, status))
	} else {
		parts = append(parts, "It is currently unassigned.")
	}

	due := formatDate(fields["due_on"], "not set")
	if due == "not set" {
		due = formatDate(fields["due_at"], "not set")
	}
	if due != "not set" {
		parts = append(parts, fmt.Sprintf("The task is due on %s.", due))
	}

	start := formatDate(fields["start_on"], "not set")
	if start == "not set" {
		start = formatDate(fields["start_at"], "not set")
	}
	if start != "not set" {
		parts = append(parts, fmt.Sprintf("It is scheduled to start on %s.", start))
	}

	created := formatDate(fields["created_at"], "not set")
	modified := formatDate(fields["modified_at"], "not set")
	creator := objName(fields, "created_by", "an unspecified user")
	if created != "not set" {
		if modified != "not set" && modified != created {
			parts = append(parts, fmt.Sprintf("Created by %s on %s, and last modified on %s.", creator, created, modified))
		} else {
			parts = append(parts, fmt.Sprintf("Created by %s on %s.", creator, created))
		}
	}

	if parent := objName(fields, "parent", ""); parent != "" {
		parts = append(parts, fmt.Sprintf("This is a subtask of '%s'.", parent))
	}

	notes := cleanHTML(str(fields, "html_notes"))
	if notes == "" {
		notes = strings.TrimSpace(str(fields, "notes"))
	}
	if notes != "" {
		parts = append(parts, "Description/Notes: "+notes)
	} else {
		parts = append(parts, "No specific notes or description are provided for this task.")
	}

	if locations := membershipLocations(fields); len(locations) > 0 {
		parts = append(parts, fmt.Sprintf("It belongs to %s.", strings.Join(locations, ", ")))
	}

	if followers := joinNames(objs(fields, "followers"), ""); followers != "" {
		parts = append(parts, fmt.Sprintf("Followers include: %s.", followers))
	}

	var tagNames []string
	for _, tag := range objs(fields, "tags") {
		if tagName := str(tag, "name"); tagName != "" {
			tagNames = append(tagNames, tagName)
		}
	}
	if len(tagNames) > 0 {
		parts = append(parts, fmt.Sprintf("Tagged with: %s.", strings.Join(tagNames, ", ")))
	}

	var cfValues []string
	for _, cf := range objs(fields, "custom_fields") {
		cfName := str(cf, "name")
		displayValue, present := cf["display_value"]
		if cfName != "" && present && displayValue != nil {
			cfValues = append(cfValues, fmt.Sprintf("'%s': %v", cfName, displayValue))
		}
	}
	if len(cfValues) > 0 {
		parts = append(parts, fmt.Sprintf("Custom field values: %s.", strings.Join(cfValues, "; ")))
	}

	if n, ok := number(fields, "num_subtasks"); ok && n > 0 {
		count := int(n)
		parts = append(parts, fmt.Sprintf("It has %d subtask%s.", count, plural(count)))
	}

	if minutes, ok := number(fields, "actual_time_minutes"); ok && minutes > 0 {
		parts = append(parts, fmt.Sprintf("Actual time logged: %s.", formatMinutes(int(minutes))))
	}

	if deps := joinNames(objs(fields, "dependencies"), ""); deps != "" {
		parts = append(parts, fmt.Sprintf("This task is blocked by: %s.", deps))
	}
	if deps := joinNames(objs(fields, "dependents"), ""); deps != "" {
		parts = append(parts, fmt.Sprintf("This task is blocking: %s.", deps))
	}

	if ws := objName(fields, "workspace", ""); ws != "" {
		parts = append(parts, fmt.Sprintf("It resides in the '%s' workspace.", ws))
	}
	if permalink := str(fields, "permalink_url"); permalink != "" {
		parts = append(parts, fmt.Sprintf("The direct link to this task is: %s.", permalink))
	}

	return strings.Join(parts, " ")
}

func renderSeparatorTask(fields map[string]any, name string) string {
	var parts []string
	parts = append(parts, fmt.Sprintf("This is a separator item in a project, named '%s'.", name))
	parts = append(parts, fmt.Sprintf("It was created on %s and last modified on %s.",
		formatDate(fields["created_at"], "not set"), formatDate(fields["modified_at"], "not set")))
	if locations := membershipLocations(fields); len(locations) > 0 {
		parts = append(parts, fmt.Sprintf("It is located in %s.", strings.Join(locations, ", ")))
	}
	return strings.Join(parts, " ")
}

// membershipLocations describes which project and section each membership
// places the task in.
func membershipLocations(fields map[string]any) []string {
	var locations []string
	for _, membership := range objs(fields, "memberships") {
		projName := objName(membership, "project", "an unnamed project")
		secName := objName(membership, "section", "")
		if secName != "" && !strings.EqualFold(secName, "untitled section") {
			locations = append(locations, fmt.Sprintf("the section '%s' of project '%s'", secName, projName))
		} else {
			locations = append(locations, fmt.Sprintf("project '%s'", projName))
		}
	}
	return locations
}

func formatMinutes(total int) string {
	hours := total / 60
	minutes := total % 60
	var out string
	if hours > 0 {
		out = fmt.Sprintf("%d hour%s", hours, plural(hours))
	}
	if minutes > 0 {
		if out != "" {
			out += " and "
		}
		out += fmt.Sprintf("%d minute%s", minutes, plural(minutes))
	}
	return out
}
