package renderers

import (
	"fmt"
	"strings"
)

func renderProject(fields map[string]any) string {
	var parts []string

	name := strOr(fields, "name", "Unnamed Project")
	parts = append(parts, fmt.Sprintf("Project Name: %s.", name))

	status := "active"
	if boolean(fields, "archived") {
		status = "archived"
	}
	completion := "ongoing"
	if boolean(fields, "completed") {
		completion = "completed"
	}
	parts = append(parts, fmt.Sprintf("It is currently %s and %s.", status, completion))

	if boolean(fields, "completed") && str(fields, "completed_at") != "" {
		parts = append(parts, fmt.Sprintf("It was completed on %s.", formatDate(fields["completed_at"], "not set")))
	}

	if owner := objName(fields, "owner", ""); owner != "" {
		parts = append(parts, fmt.Sprintf("The project is owned by %s.", owner))
	}
	if team := objName(fields, "team", ""); team != "" {
		parts = append(parts, fmt.Sprintf("It belongs to the '%s' team.", team))
	}
	if ws := objName(fields, "workspace", ""); ws != "" {
		parts = append(parts, fmt.Sprintf("It is part of the '%s' workspace.", ws))
	}

	parts = append(parts, fmt.Sprintf("Created on %s, last modified on %s.",
		formatDate(fields["created_at"], "not set"), formatDate(fields["modified_at"], "not set")))

	due := formatDate(fields["due_date"], "not set")
	if due == "not set" {
		due = formatDate(fields["due_on"], "not set")
	}
	start := formatDate(fields["start_on"], "not set")
	switch {
	case due != "not set" && start != "not set":
		parts = append(parts, fmt.Sprintf("The project is scheduled to run from %s to %s.", start, due))
	case due != "not set":
		parts = append(parts, fmt.Sprintf("It is due on %s.", due))
	case start != "not set":
		parts = append(parts, fmt.Sprintf("It is scheduled to start on %s.", start))
	}

	parts = append(parts, fmt.Sprintf("Project members include: %s.", joinNames(objs(fields, "members"), "none assigned")))
	parts = append(parts, fmt.Sprintf("It is being followed by: %s.", joinNames(objs(fields, "followers"), "none assigned")))

	if settings := objs(fields, "custom_field_settings"); len(settings) > 0 {
		var descs []string
		for _, setting := range settings {
			field := obj(setting, "custom_field")
			fieldName := str(field, "name")
			if fieldName == "" {
				continue
			}
			fieldType := strOr(field, "resource_subtype", str(field, "type"))
			desc := fmt.Sprintf("'%s' (%s)", fieldName, fieldType)
			if fieldType == "enum" {
				var options []string
				for _, opt := range objs(field, "enum_options") {
					if optName := str(opt, "name"); optName != "" {
						options = append(options, optName)
					}
				}
				if len(options) > 0 {
					desc += " with options: " + strings.Join(options, ", ")
				}
			} else if fieldType == "number" {
				if precision, ok := number(field, "precision"); ok {
					desc += fmt.Sprintf(" with precision %d", int(precision))
				}
			}
			descs = append(descs, desc)
		}
		if len(descs) > 0 {
			parts = append(parts, fmt.Sprintf("The project utilizes the following custom fields: %s.", strings.Join(descs, "; ")))
		}
	} else {
		parts = append(parts, "No custom fields are specifically configured for this project.")
	}

	notes := strings.TrimSpace(str(fields, "notes"))
	if notes == "" {
		notes = cleanHTML(str(fields, "html_notes"))
	}
	if notes != "" {
		parts = append(parts, "Project Description/Notes: "+notes)
	} else {
		parts = append(parts, "There are no specific notes or description provided for this project.")
	}

	if color := str(fields, "color"); color != "" && color != "none" {
		parts = append(parts, fmt.Sprintf("The project is visually represented with a '%s' color.", color))
	}
	parts = append(parts, fmt.Sprintf("Its privacy setting is '%s'.", strOr(fields, "privacy_setting", "unknown")))

	if permalink := str(fields, "permalink_url"); permalink != "" {
		parts = append(parts, fmt.Sprintf("More details can be found at its Asana page: %s.", permalink))
	}
	if template := obj(fields, "created_from_template"); template != nil {
		parts = append(parts, fmt.Sprintf("This project was created from %s.",
			strOr(template, "name", "an unspecified template")))
	}

	return strings.Join(parts, " ")
}

func renderProjectTemplate(fields map[string]any) string {
	var parts []string

	parts = append(parts, fmt.Sprintf("This is a project template named '%s'.",
		strOr(fields, "name", "Unnamed Project Template")))

	if owner := objName(fields, "owner", ""); owner != "" {
		parts = append(parts, fmt.Sprintf("It is owned by %s.", owner))
	} else {
		parts = append(parts, "The owner of this template is not specified.")
	}

	if team := objName(fields, "team", ""); team != "" {
		parts = append(parts, fmt.Sprintf("It is associated with the '%s' team.", team))
	} else {
		parts = append(parts, "It is not explicitly associated with any team.")
	}

	desc := strings.TrimSpace(str(fields, "description"))
	if desc == "" {
		desc = cleanHTML(str(fields, "html_description"))
	}
	if desc != "" {
		parts = append(parts, fmt.Sprintf("The template's description is: \"%s\".", desc))
	} else {
		parts = append(parts, "No specific description is provided for this template.")
	}

	visibility := "private"
	if boolean(fields, "public") {
		visibility = "publicly available"
	}
	parts = append(parts, fmt.Sprintf("This template is %s.", visibility))

	if color := str(fields, "color"); color != "" && !strings.EqualFold(color, "none") {
		parts = append(parts, fmt.Sprintf("It is visually marked with a '%s' color.", color))
	} else {
		parts = append(parts, "No specific color is assigned to this template.")
	}

	if dates := objs(fields, "requested_dates"); len(dates) > 0 {
		var summaries []string
		for _, req := range dates {
			reqName := str(req, "name")
			reqDesc := str(req, "description")
			switch {
			case reqName != "" && reqDesc != "":
				summaries = append(summaries, fmt.Sprintf("'%s' (for: %s)", reqName, reqDesc))
			case reqName != "":
				summaries = append(summaries, "'"+reqName+"'")
			}
		}
		if len(summaries) > 0 {
			parts = append(parts, fmt.Sprintf(
				"When creating a project from this template, the following date inputs are prompted: %s.",
				strings.Join(summaries, ", ")))
		}
	} else {
		parts = append(parts, "This template does not prompt for specific dates during project creation.")
	}

	if roles := objs(fields, "requested_roles"); len(roles) > 0 {
		if roleNames := joinNames(roles, ""); roleNames != "" {
			parts = append(parts, fmt.Sprintf("The template can prompt for assignment of roles such as: %s.", roleNames))
		}
	} else {
		parts = append(parts, "This template does not prompt for specific role assignments during project creation.")
	}

	return strings.Join(parts, " ")
}
