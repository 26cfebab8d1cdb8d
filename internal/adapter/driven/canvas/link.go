package canvas

import "strings"

// nextLink extracts the rel="next" URL from an RFC 5988 Link header, e.g.
//
//	<https://canvas/api/v1/courses?page=2>; rel="next", <...>; rel="last"
//
// Returns "" when the header has no next relation.
func nextLink(header string) string {
	for _, part := range strings.Split(header, ",") {
		sections := strings.Split(part, ";")
		if len(sections) < 2 {
			continue
		}

		url := strings.Trim(strings.TrimSpace(sections[0]), "<>")
		if url == "" {
			continue
		}

		for _, param := range sections[1:] {
			param = strings.TrimSpace(param)
			if param == `rel="next"` || param == "rel=next" {
				return url
			}
		}
	}

	return ""
}
