package analysis

import (
	"net/url"
	"strings"
)

// DirectoryLinks are external doctor-directory searches pre-filled with the
// recommended specialist and the patient's city.
type DirectoryLinks struct {
	Practo string `json:"practo"`
	Apollo string `json:"apollo"`
}

// BuildDirectoryLinks constructs the two search URLs. Pure string work, no
// network access.
func BuildDirectoryLinks(specialist, city string) DirectoryLinks {
	cleanSpec := strings.TrimSpace(specialist)
	cleanCity := strings.ReplaceAll(strings.TrimSpace(strings.ToLower(city)), " ", "-")

	return DirectoryLinks{
		Practo: "https://www.practo.com/search/doctors?results_type=doctor&q=" +
			url.QueryEscape(cleanSpec) + "&city=" + url.QueryEscape(cleanCity),
		Apollo: "https://www.apollo247.com/specialties/" +
			url.PathEscape(strings.ToLower(cleanSpec)),
	}
}
