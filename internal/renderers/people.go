package renderers

import (
	"fmt"
	"strings"
)

func renderTeam(fields map[string]any) string {
	var parts []string

	parts = append(parts, fmt.Sprintf("This is an Asana team named '%s'.", strOr(fields, "name", "Unnamed Team")))

	if org := objName(fields, "organization", ""); org != "" {
		parts = append(parts, fmt.Sprintf("It belongs to the '%s' workspace.", org))
	} else {
		parts = append(parts, "The workspace this team belongs to is not specified.")
	}

	desc := strings.TrimSpace(str(fields, "description"))
	if desc == "" {
		desc = cleanHTML(str(fields, "html_description"))
	}
	if desc != "" {
		parts = append(parts, fmt.Sprintf("The team's description is: \"%s\".", desc))
	} else {
		parts = append(parts, "No specific description is provided for this team.")
	}

	if permalink := str(fields, "permalink_url"); permalink != "" {
		parts = append(parts, fmt.Sprintf("More details about this team can be found at its Asana page: %s.", permalink))
	}

	return strings.Join(parts, " ")
}

func renderUser(fields map[string]any) string {
	var parts []string

	parts = append(parts, fmt.Sprintf("This is an Asana user named '%s'.", strOr(fields, "name", "An unnamed user")))

	if email := str(fields, "email"); email != "" {
		parts = append(parts, fmt.Sprintf("Their registered email address is %s.", email))
	} else {
		parts = append(parts, "Their email address is not specified.")
	}

	if obj(fields, "photo") != nil {
		parts = append(parts, "They have a profile picture set up in Asana.")
	} else {
		parts = append(parts, "They do not have a profile picture set up in Asana.")
	}

	var wsNames []string
	for _, ws := range objs(fields, "workspaces") {
		if wsName := str(ws, "name"); wsName != "" {
			wsNames = append(wsNames, wsName)
		}
	}
	switch len(wsNames) {
	case 0:
		parts = append(parts, "They are not explicitly associated with any workspaces in this description.")
	case 1:
		parts = append(parts, fmt.Sprintf("They are a member of the '%s' workspace.", wsNames[0]))
	default:
		parts = append(parts, fmt.Sprintf("They are a member of the following workspaces: %s.", quoteJoin(wsNames)))
	}

	return strings.Join(parts, " ")
}

func renderTeamMembership(fields map[string]any) string {
	var parts []string

	userName := objName(fields, "user", "An unnamed user")
	teamName := objName(fields, "team", "an unnamed team")
	parts = append(parts, fmt.Sprintf("%s is associated with the team '%s'.", userName, teamName))

	isAdmin := boolean(fields, "is_admin")
	isGuest := boolean(fields, "is_guest")
	isLimited := boolean(fields, "is_limited_access")

	var role string
	switch {
	case isAdmin && isGuest:
		role = "they are an administrator and also a guest member"
	case isAdmin:
		role = "they are an administrator"
	case isGuest:
		role = "they are a guest member"
	}
	if isLimited {
		if role != "" {
			role += " and have limited access privileges"
		} else {
			role = "they have limited access privileges"
		}
	}

	if role == "" {
		parts = append(parts, "They are a standard member with full access in this team.")
	} else {
		parts = append(parts, strings.ToUpper(role[:1])+role[1:]+".")
	}

	return strings.Join(parts, " ")
}
