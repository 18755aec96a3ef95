package renderers

import (
	"fmt"
	"strings"
)

func renderTag(fields map[string]any) string {
	var parts []string

	parts = append(parts, fmt.Sprintf("This is an Asana tag named '%s'.", strOr(fields, "name", "Unnamed Tag")))

	if color := str(fields, "color"); color != "" && !strings.EqualFold(color, "none") {
		parts = append(parts, fmt.Sprintf("It is visually represented with a '%s' color.", color))
	} else {
		parts = append(parts, "It does not have a specific color assigned.")
	}

	parts = append(parts, fmt.Sprintf("The tag was created on %s.", formatDate(fields["created_at"], "an unknown date")))

	if ws := objName(fields, "workspace", ""); ws != "" {
		parts = append(parts, fmt.Sprintf("It belongs to the '%s' workspace.", ws))
	} else {
		parts = append(parts, "The workspace this tag belongs to is not specified.")
	}

	if notes := strings.TrimSpace(str(fields, "notes")); notes != "" {
		parts = append(parts, fmt.Sprintf("Additional notes for this tag: \"%s\".", notes))
	} else {
		parts = append(parts, "There are no specific notes associated with this tag.")
	}

	if followers := joinNames(objs(fields, "followers"), ""); followers != "" {
		parts = append(parts, fmt.Sprintf("It is being followed by: %s.", followers))
	}

	if permalink := str(fields, "permalink_url"); permalink != "" {
		parts = append(parts, fmt.Sprintf("More details about this tag can be found at its Asana page: %s.", permalink))
	}

	return strings.Join(parts, " ")
}

func renderCustomField(fields map[string]any) string {
	var parts []string

	name := strOr(fields, "name", "Unnamed Custom Field")
	fieldType := strOr(fields, "resource_subtype", strOr(fields, "type", "unknown type"))
	parts = append(parts, fmt.Sprintf("The custom field is named '%s' and is a '%s' type field.", name, fieldType))

	if desc := strings.TrimSpace(str(fields, "description")); desc != "" {
		parts = append(parts, fmt.Sprintf("Its purpose is described as: \"%s\".", desc))
	}

	creator := obj(fields, "created_by")
	switch {
	case str(fields, "asana_created_field") != "":
		parts = append(parts, fmt.Sprintf("This is a standard Asana-managed field, often used for tracking '%s'.",
			str(fields, "asana_created_field")))
	case creator != nil && str(creator, "name") != "":
		parts = append(parts, fmt.Sprintf("It was created by %s.", str(creator, "name")))
	case creator != nil:
		parts = append(parts, "It was created by an unnamed user.")
	default:
		parts = append(parts, "The creator of this field is not specified.")
	}

	switch fieldType {
	case "enum", "multi_enum":
		var options []string
		for _, opt := range objs(fields, "enum_options") {
			if optName := str(opt, "name"); optName != "" && boolean(opt, "enabled") {
				options = append(options, optName)
			}
		}
		switch {
		case len(options) > 0 && fieldType == "multi_enum":
			parts = append(parts, fmt.Sprintf(
				"It allows selection of one or more values from the available options: %s.", quoteJoin(options)))
		case len(options) > 0:
			parts = append(parts, fmt.Sprintf("Possible values include: %s.", quoteJoin(options)))
		default:
			parts = append(parts, "It is an enum/multi-enum field but currently has no enabled options with names defined.")
		}
		if boolean(fields, "has_notifications_enabled") {
			parts = append(parts, "Notifications are enabled for changes to this field.")
		} else {
			parts = append(parts, "Notifications are not enabled for changes to this field.")
		}
	case "number":
		if precision, ok := number(fields, "precision"); ok {
			parts = append(parts, fmt.Sprintf(
				"It stores numbers and is configured with %d decimal places of precision.", int(precision)))
		} else {
			parts = append(parts, "It stores numbers, but its specific precision is not detailed.")
		}
	case "text":
		parts = append(parts, "It is designed to hold textual information.")
	}

	if boolean(fields, "is_formula_field") {
		parts = append(parts, "This field's value is calculated based on a formula.")
	}

	scope := "configured for specific projects or portfolios"
	if boolean(fields, "is_global_to_workspace") {
		scope = "available across the entire workspace"
	}
	privacy := strings.ReplaceAll(strOr(fields, "privacy_setting", "unknown"), "_", " ")
	parts = append(parts, fmt.Sprintf("The field is %s, and its privacy is set to '%s'.", scope, privacy))

	return strings.Join(parts, " ")
}

func renderAttachment(fields map[string]any) string {
	var parts []string

	name := strOr(fields, "name", "Unnamed attachment")
	host := strOr(fields, "host", "an external source")
	attachmentType := strOr(fields, "resource_subtype", "file")

	if strings.EqualFold(host, "asana") && strings.EqualFold(attachmentType, "asana") {
		parts = append(parts, fmt.Sprintf("The file named '%s' was uploaded directly to Asana.", name))
	} else {
		parts = append(parts, fmt.Sprintf("The attachment '%s' is a %s file hosted by %s.", name, attachmentType, host))
	}

	parent := obj(fields, "parent")
	parts = append(parts, fmt.Sprintf("It was added on %s to the %s titled '%s'.",
		formatDate(fields["created_at"], "an unknown date"),
		strOr(parent, "resource_type", "item"),
		strOr(parent, "name", "an unspecified parent item")))

	switch {
	case str(fields, "permanent_url") != "":
		parts = append(parts, "This attachment can be viewed or downloaded via its permanent link in Asana.")
	case str(fields, "view_url") != "" || str(fields, "download_url") != "":
		parts = append(parts, "A link to view or download this attachment is available.")
	default:
		parts = append(parts, "Access details for this attachment are not specified.")
	}

	return strings.Join(parts, " ")
}
