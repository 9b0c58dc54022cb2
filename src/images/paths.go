package images

import (
	"fmt"
	"strings"
)

var slotDirs = map[string]string{
	"official":           "/pokemon",
	"front":              "/pokemon/sprites",
	"back":               "/pokemon/sprites/back",
	"shiny":              "/pokemon/sprites/shiny",
	"back_shiny":         "/pokemon/sprites/back/shiny",
	"front_female":       "/pokemon/sprites/female",
	"back_female":        "/pokemon/sprites/back/female",
	"front_shiny_female": "/pokemon/sprites/shiny/female",
	"back_shiny_female":  "/pokemon/sprites/back/shiny/female",
}

const (
	officialArtworkSegment      = "/other/official-artwork/"
	shinyOfficialArtworkSegment = "/other/official-artwork/shiny/"
)

// WebPath is the site-relative path a slot's image is served from. It is
// also the path, under the public directory, the file is stored at.
func WebPath(id int, slot string) string {
	dir, ok := slotDirs[slot]
	if !ok {
		dir = "/pokemon/" + slot
	}
	return fmt.Sprintf("%s/%d.png", dir, id)
}

// ShinyWebPath is where the shiny official artwork is stored.
func ShinyWebPath(id int) string {
	return fmt.Sprintf("/pokemon/shiny/%d.png", id)
}

// ShinyUrl derives the shiny official artwork url from the regular one.
func ShinyUrl(officialUrl string) (string, bool) {
	if !strings.Contains(officialUrl, officialArtworkSegment) {
		return "", false
	}
	return strings.Replace(officialUrl, officialArtworkSegment, shinyOfficialArtworkSegment, 1), true
}

func isLocal(url string) bool {
	return strings.HasPrefix(url, "/")
}
