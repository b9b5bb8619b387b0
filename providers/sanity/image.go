package sanity

import (
	"fmt"
	"strings"
)

const imageCDN = "https://cdn.sanity.io/images"

// ImageURL baut die CDN-URL für eine Asset-Referenz der Form image-<id>-<b>x<h>-<ext>
// und hängt die gewünschte Größe als Crop-Transformation an. Ungültige Referenzen liefern "".
func ImageURL(projectID, dataset, ref string, width, height int) string {
	rest, ok := strings.CutPrefix(ref, "image-")
	if !ok {
		return ""
	}
	i := strings.LastIndex(rest, "-")
	if i <= 0 || i == len(rest)-1 {
		return ""
	}
	base, ext := rest[:i], rest[i+1:]
	if !strings.Contains(base, "x") || !strings.Contains(base, "-") {
		return ""
	}

	u := fmt.Sprintf("%s/%s/%s/%s.%s", imageCDN, projectID, dataset, base, ext)
	var params []string
	if width > 0 {
		params = append(params, fmt.Sprintf("w=%d", width))
	}
	if height > 0 {
		params = append(params, fmt.Sprintf("h=%d", height))
	}
	if width > 0 && height > 0 {
		params = append(params, "fit=crop")
	}
	if len(params) > 0 {
		u += "?" + strings.Join(params, "&")
	}
	return u
}

// ImageURL ist ImageURL mit Projekt und Dataset des Clients.
func (c *Client) ImageURL(ref string, width, height int) string {
	return ImageURL(c.Config.SanityProjectID, c.Config.SanityDataset, ref, width, height)
}
