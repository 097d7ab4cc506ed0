package validate

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// testWorkspace lays out a complete, clean content tree and returns the
// config, data, and lang directories.
func testWorkspace(t *testing.T) (string, string, string) {
	t.Helper()
	root := t.TempDir()
	configDir := filepath.Join(root, "config")
	dataDir := filepath.Join(root, "data")
	langDir := filepath.Join(root, "lang")
	for _, dir := range []string{configDir, dataDir, langDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatal(err)
		}
	}

	writeFile(t, configDir, "media-types.json", `{
		"mediaTypes": [
			{"id": "image", "name": "Image", "icon": "i", "viewer": "lightbox", "acceptedFormats": ["jpg", "png"]},
			{"id": "audio", "name": "Audio", "icon": "a", "viewer": "player", "acceptedFormats": ["mp3"]}
		]
	}`)
	writeFile(t, configDir, "categories.json", `{
		"contentTypes": [
			{
				"id": "painting", "name": "Painting", "icon": "p", "mediaType": "image",
				"dataFile": "data/painting.json",
				"fields": {"required": ["title", "url"], "optional": ["medium"]}
			},
			{
				"id": "music", "name": "Music", "icon": "m", "mediaType": "audio",
				"dataFile": "data/music.json",
				"fields": {"required": ["title", "url"], "optional": ["genre"]}
			}
		]
	}`)
	writeFile(t, configDir, "languages.json", `{
		"supportedLanguages": [
			{"code": "en", "name": "English"},
			{"code": "fr", "name": "French"}
		],
		"defaultLanguage": "en"
	}`)
	writeFile(t, configDir, "app.json", `{
		"name": "Portfolio", "author": "Alex",
		"api": {"port": 5001}, "github": {"username": "alex", "repoName": "portfolio"}
	}`)

	writeFile(t, dataDir, "painting.json", `[{"id": "p1", "title": "Dawn", "url": "https://cdn/p1.jpg"}]`)
	writeFile(t, dataDir, "music.json", `[{"id": "m1", "title": "Song", "url": "https://cdn/m1.mp3"}]`)

	writeFile(t, langDir, "en.json", `{"nav.home": "Home", "nav.about": "About"}`)
	writeFile(t, langDir, "fr.json", `{"nav.home": "Accueil", "nav.about": "A propos"}`)

	return configDir, dataDir, langDir
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func hasFinding(findings []string, substr string) bool {
	for _, f := range findings {
		if strings.Contains(f, substr) {
			return true
		}
	}
	return false
}

func TestRunCleanWorkspace(t *testing.T) {
	configDir, dataDir, langDir := testWorkspace(t)

	report := New(configDir, dataDir, langDir).Run()
	if !report.OK() {
		t.Fatalf("errors: %v", report.Errors)
	}
	if len(report.Warnings) != 0 {
		t.Errorf("warnings: %v", report.Warnings)
	}
	if len(report.Infos) != 0 {
		t.Errorf("infos: %v", report.Infos)
	}
}

func TestMissingConfigFile(t *testing.T) {
	configDir, dataDir, langDir := testWorkspace(t)
	if err := os.Remove(filepath.Join(configDir, "media-types.json")); err != nil {
		t.Fatal(err)
	}

	report := New(configDir, dataDir, langDir).Run()
	if report.OK() {
		t.Fatal("expected errors")
	}
	if !hasFinding(report.Errors, "file not found") {
		t.Errorf("errors: %v", report.Errors)
	}
	// Content types now reference media types that were never loaded.
	if !hasFinding(report.Errors, "unknown media type") {
		t.Errorf("errors: %v", report.Errors)
	}
}

func TestMediaTypeFieldChecks(t *testing.T) {
	configDir, dataDir, langDir := testWorkspace(t)
	writeFile(t, configDir, "media-types.json", `{
		"mediaTypes": [
			{"id": "image", "name": "Image", "icon": "i", "acceptedFormats": "jpg"},
			{"id": "audio", "name": "Audio", "icon": "a", "viewer": "player", "acceptedFormats": ["mp3"]}
		]
	}`)

	report := New(configDir, dataDir, langDir).Run()
	if !hasFinding(report.Errors, "missing required field: viewer") {
		t.Errorf("errors: %v", report.Errors)
	}
	if !hasFinding(report.Errors, "acceptedFormats must be an array") {
		t.Errorf("errors: %v", report.Errors)
	}
}

func TestCategoriesLegacyKey(t *testing.T) {
	configDir, dataDir, langDir := testWorkspace(t)
	writeFile(t, configDir, "categories.json", `{
		"categories": [
			{
				"id": "painting", "name": "Painting", "icon": "p", "mediaType": "image",
				"dataFile": "data/painting.json",
				"fields": {"required": ["title", "url"], "optional": []}
			}
		]
	}`)

	report := New(configDir, dataDir, langDir).Run()
	if !report.OK() {
		t.Fatalf("errors: %v", report.Errors)
	}
}

func TestItemFieldFindings(t *testing.T) {
	configDir, dataDir, langDir := testWorkspace(t)
	writeFile(t, dataDir, "painting.json", `[
		{"id": "p1", "title": "Dawn"},
		{"title": "Dusk", "url": "https://cdn/p2.jpg"}
	]`)

	report := New(configDir, dataDir, langDir).Run()
	if !report.OK() {
		t.Fatalf("errors: %v", report.Errors)
	}
	if !hasFinding(report.Warnings, `item #0: missing required field "url"`) {
		t.Errorf("warnings: %v", report.Warnings)
	}
	if !hasFinding(report.Infos, "item #1: missing 'id' field") {
		t.Errorf("infos: %v", report.Infos)
	}
}

func TestTranslationDrift(t *testing.T) {
	configDir, dataDir, langDir := testWorkspace(t)
	writeFile(t, langDir, "fr.json", `{"nav.home": "Accueil"}`)

	report := New(configDir, dataDir, langDir).Run()
	if !report.OK() {
		t.Fatalf("errors: %v", report.Errors)
	}
	if !hasFinding(report.Warnings, `language "fr" missing 1 translation keys`) {
		t.Errorf("warnings: %v", report.Warnings)
	}
	if !hasFinding(report.Infos, `missing in "fr": nav.about`) {
		t.Errorf("infos: %v", report.Infos)
	}
}

func TestUnknownMediaType(t *testing.T) {
	configDir, dataDir, langDir := testWorkspace(t)
	writeFile(t, configDir, "categories.json", `{
		"contentTypes": [
			{
				"id": "video", "name": "Video", "icon": "v", "mediaType": "video",
				"dataFile": "data/video.json",
				"fields": {"required": ["title", "url"], "optional": []}
			}
		]
	}`)
	writeFile(t, dataDir, "video.json", `[]`)

	report := New(configDir, dataDir, langDir).Run()
	if !hasFinding(report.Errors, `references unknown media type: "video"`) {
		t.Errorf("errors: %v", report.Errors)
	}
}

func TestDataFileFindings(t *testing.T) {
	t.Run("malformed", func(t *testing.T) {
		configDir, dataDir, langDir := testWorkspace(t)
		writeFile(t, dataDir, "painting.json", `[{"id": `)

		report := New(configDir, dataDir, langDir).Run()
		if !hasFinding(report.Errors, "invalid JSON in painting.json") {
			t.Errorf("errors: %v", report.Errors)
		}
	})

	t.Run("wrong shape", func(t *testing.T) {
		configDir, dataDir, langDir := testWorkspace(t)
		writeFile(t, dataDir, "painting.json", `{"count": 1}`)

		report := New(configDir, dataDir, langDir).Run()
		if !hasFinding(report.Errors, "must be an array or an object with 'items'") {
			t.Errorf("errors: %v", report.Errors)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		configDir, dataDir, langDir := testWorkspace(t)
		if err := os.Remove(filepath.Join(dataDir, "music.json")); err != nil {
			t.Fatal(err)
		}

		report := New(configDir, dataDir, langDir).Run()
		if !report.OK() {
			t.Fatalf("errors: %v", report.Errors)
		}
		if !hasFinding(report.Warnings, `data file not found for "music"`) {
			t.Errorf("warnings: %v", report.Warnings)
		}
	})

	t.Run("items wrapper accepted", func(t *testing.T) {
		configDir, dataDir, langDir := testWorkspace(t)
		writeFile(t, dataDir, "painting.json", `{"items": [{"id": "p1", "title": "T", "url": "u"}]}`)

		report := New(configDir, dataDir, langDir).Run()
		if !report.OK() {
			t.Fatalf("errors: %v", report.Errors)
		}
	})
}
