// Scratch tool: print what the scanner resolves for every folder under a
// movie root, to eyeball ID extraction before running a real build.
package main

import (
	"fmt"
	"os"

	"github.com/cineguess/cinedex/internal/library"
)

func main() {
	root := "movie_images"
	if v := os.Getenv("MOVIE_DATA_ROOT"); v != "" {
		root = v
	}
	if len(os.Args) > 1 {
		root = os.Args[1]
	}

	folders, err := library.Scan(root)
	if err != nil {
		fmt.Printf("Error scanning root: %v\n", err)
		os.Exit(1)
	}

	for _, f := range folders {
		id := f.TMDBID
		if id == "" {
			id = "UNRESOLVED"
		}
		meta := f.MetadataFile
		if meta == "" {
			meta = "(none)"
		}
		fmt.Printf("Folder: %s\nID: %s\nMetadata: %s  Poster: %v  Screenshots: %d\n\n",
			f.Name, id, meta, f.HasPoster, f.ScreenshotCount)
	}
}
