package library_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cineguess/cinedex/internal/library"
)

func mkFolder(t *testing.T, root, name string) string {
	t.Helper()
	path := filepath.Join(root, name)
	if err := os.Mkdir(path, 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestScan(t *testing.T) {
	root := t.TempDir()

	complete := mkFolder(t, root, "22")
	writeFile(t, complete, "poster.jpg", "jpeg")
	writeFile(t, complete, "screenshot_1.jpg", "jpeg")
	writeFile(t, complete, "screenshot_2.jpg", "jpeg")

	named := mkFolder(t, root, "The Matrix (1999)")
	writeFile(t, named, "603_metadata.txt", "title: The Matrix\n")

	bare := mkFolder(t, root, "pirates")
	writeFile(t, bare, "pirates_metadata.txt", "id: 22\ntitle: Pirates\n")

	mkFolder(t, root, "unresolved")
	writeFile(t, filepath.Join(root, "unresolved"), "notes_metadata.txt", "just notes\n")

	// Plain files under the root are not movie folders.
	writeFile(t, root, "README.txt", "not a movie")

	folders, err := library.Scan(root)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if len(folders) != 4 {
		t.Fatalf("Scan() returned %d folders; want 4", len(folders))
	}

	want := []library.Folder{
		{Name: "22", TMDBID: "22", HasPoster: true, ScreenshotCount: 2},
		{Name: "The Matrix (1999)", TMDBID: "603", MetadataFile: "603_metadata.txt"},
		{Name: "pirates", TMDBID: "22", MetadataFile: "pirates_metadata.txt"},
		{Name: "unresolved", TMDBID: "", MetadataFile: "notes_metadata.txt"},
	}
	for i, w := range want {
		got := folders[i]
		if got.Name != w.Name {
			t.Errorf("folders[%d].Name = %q; want %q", i, got.Name, w.Name)
			continue
		}
		if got.TMDBID != w.TMDBID {
			t.Errorf("%s: TMDBID = %q; want %q", w.Name, got.TMDBID, w.TMDBID)
		}
		if got.MetadataFile != w.MetadataFile {
			t.Errorf("%s: MetadataFile = %q; want %q", w.Name, got.MetadataFile, w.MetadataFile)
		}
		if got.HasPoster != w.HasPoster {
			t.Errorf("%s: HasPoster = %v; want %v", w.Name, got.HasPoster, w.HasPoster)
		}
		if got.ScreenshotCount != w.ScreenshotCount {
			t.Errorf("%s: ScreenshotCount = %d; want %d", w.Name, got.ScreenshotCount, w.ScreenshotCount)
		}
	}
}

func TestScanMissingRoot(t *testing.T) {
	if _, err := library.Scan(filepath.Join(t.TempDir(), "no-such-root")); err == nil {
		t.Error("Scan() on missing root: error = nil; want non-nil")
	}
}

func TestScanPicksFirstMetadataFile(t *testing.T) {
	root := t.TempDir()
	folder := mkFolder(t, root, "movie")
	writeFile(t, folder, "b_metadata.txt", "id: 2\n")
	writeFile(t, folder, "a_metadata.txt", "id: 1\n")

	folders, err := library.Scan(root)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if folders[0].MetadataFile != "a_metadata.txt" {
		t.Errorf("MetadataFile = %q; want %q", folders[0].MetadataFile, "a_metadata.txt")
	}
	if folders[0].TMDBID != "1" {
		t.Errorf("TMDBID = %q; want %q", folders[0].TMDBID, "1")
	}
}

func TestScanIDResolution(t *testing.T) {
	tests := []struct {
		name     string
		folder   string
		metaName string // empty means no metadata file
		content  string
		want     string
	}{
		{
			name:   "Folder name used verbatim without metadata file",
			folder: "550",
			want:   "550",
		},
		{
			name:   "Non-numeric folder name still used verbatim",
			folder: "fight-club",
			want:   "fight-club",
		},
		{
			name:     "ID line wins over filename digits",
			folder:   "fight-club",
			metaName: "99_metadata.txt",
			content:  "title: Fight Club\nid: 550\n",
			want:     "550",
		},
		{
			name:     "ID key is case-insensitive",
			folder:   "fight-club",
			metaName: "notes_metadata.txt",
			content:  "ID: 550\n",
			want:     "550",
		},
		{
			name:     "ID value is trimmed",
			folder:   "fight-club",
			metaName: "notes_metadata.txt",
			content:  "  id:   550  \n",
			want:     "550",
		},
		{
			name:     "Empty ID value falls back to filename digits",
			folder:   "matrix",
			metaName: "603_metadata.txt",
			content:  "id:\n",
			want:     "603",
		},
		{
			name:     "Longest digit run in the filename wins",
			folder:   "matrix",
			metaName: "disc7_part1999_metadata.txt",
			content:  "no id here\n",
			want:     "1999",
		},
		{
			name:     "Metadata file without any ID leaves folder unresolved",
			folder:   "mystery",
			metaName: "notes_metadata.txt",
			content:  "just notes\n",
			want:     "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			folder := mkFolder(t, root, tt.folder)
			if tt.metaName != "" {
				writeFile(t, folder, tt.metaName, tt.content)
			}

			folders, err := library.Scan(root)
			if err != nil {
				t.Fatalf("Scan() error = %v", err)
			}
			if got := folders[0].TMDBID; got != tt.want {
				t.Errorf("TMDBID = %q; want %q", got, tt.want)
			}
		})
	}
}

func TestScanScreenshotCounting(t *testing.T) {
	root := t.TempDir()
	folder := mkFolder(t, root, "movie")
	writeFile(t, folder, "screenshot_1.jpg", "jpeg")
	writeFile(t, folder, "screenshot_10.jpg", "jpeg")
	writeFile(t, folder, "screenshot_old.jpg", "jpeg")
	writeFile(t, folder, "Screenshot_2.jpg", "jpeg") // wrong case
	writeFile(t, folder, "screenshot_3.png", "png")  // wrong extension
	writeFile(t, folder, "poster.jpg", "jpeg")

	folders, err := library.Scan(root)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if got := folders[0].ScreenshotCount; got != 3 {
		t.Errorf("ScreenshotCount = %d; want 3", got)
	}
	if !folders[0].HasScreenshots() {
		t.Error("HasScreenshots() = false; want true")
	}
}

func TestScreenshotName(t *testing.T) {
	if got := library.ScreenshotName(1); got != "screenshot_1.jpg" {
		t.Errorf("ScreenshotName(1) = %q; want %q", got, "screenshot_1.jpg")
	}
	if got := library.ScreenshotName(12); got != "screenshot_12.jpg" {
		t.Errorf("ScreenshotName(12) = %q; want %q", got, "screenshot_12.jpg")
	}
}

func TestRemoveLegacyMetadata(t *testing.T) {
	root := t.TempDir()
	folder := mkFolder(t, root, "movie")
	writeFile(t, folder, "metadata.txt", "old format")

	removed, err := library.RemoveLegacyMetadata(folder)
	if err != nil {
		t.Fatalf("RemoveLegacyMetadata() error = %v", err)
	}
	if !removed {
		t.Error("RemoveLegacyMetadata() = false; want true")
	}
	if _, err := os.Stat(filepath.Join(folder, "metadata.txt")); !os.IsNotExist(err) {
		t.Error("metadata.txt still exists after removal")
	}

	removed, err = library.RemoveLegacyMetadata(folder)
	if err != nil {
		t.Fatalf("RemoveLegacyMetadata() second call error = %v", err)
	}
	if removed {
		t.Error("RemoveLegacyMetadata() = true on second call; want false")
	}
}

func TestLegacyMetadataNotMatchedAsMetadataFile(t *testing.T) {
	root := t.TempDir()
	folder := mkFolder(t, root, "movie")
	writeFile(t, folder, "metadata.txt", "id: 42\n")

	folders, err := library.Scan(root)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if folders[0].HasMetadata() {
		t.Errorf("MetadataFile = %q; want none for legacy metadata.txt", folders[0].MetadataFile)
	}
	if folders[0].TMDBID != "movie" {
		t.Errorf("TMDBID = %q; want folder name %q", folders[0].TMDBID, "movie")
	}
}
