// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Site holds the JSON site configuration loaded from the content workspace:
// app.json, languages.json, and categories.json. (media-types.json is only
// consumed by the validate command, which reads it raw.) The admin API can
// rewrite these files at runtime, so all access goes through a read-write
// mutex and Reload swaps the whole snapshot at once.
type Site struct {
	configDir string
	dataDir   string

	mu   sync.RWMutex
	data siteData
}

// siteData is one immutable snapshot of the parsed configuration files.
type siteData struct {
	app          map[string]any
	github       githubConfig
	s3Categories []string
	languages    []language
	defaultLang  string
	contentTypes []contentType
}

type language struct {
	Code string `json:"code"`
	Name any    `json:"name"`
}

type contentType struct {
	ID        string `json:"id"`
	Name      any    `json:"name"`
	Icon      string `json:"icon"`
	MediaType string `json:"mediaType"`
	DataFile  string `json:"dataFile"`
}

type githubConfig struct {
	Username         string   `json:"username"`
	RepoName         string   `json:"repoName"`
	Repo             string   `json:"repo"` // legacy "owner/name" form
	MediaReleaseTag  string   `json:"mediaReleaseTag"`
	UploadCategories []string `json:"uploadCategories"`
}

// LoadSite reads the site configuration from configDir. Missing files fall
// back to defaults so a fresh workspace still serves; malformed files are
// errors. The workspace directories are created when absent.
func LoadSite(configDir, dataDir, langDir string) (*Site, error) {
	for _, d := range []string{configDir, dataDir, langDir} {
		// Best effort: the workspace may be read-only.
		os.MkdirAll(d, 0o755)
	}

	s := &Site{configDir: configDir, dataDir: dataDir}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload re-reads all configuration files and atomically replaces the
// current snapshot. Called after the admin API saves a config file.
func (s *Site) Reload() error {
	d, err := loadSiteData(s.configDir)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.data = d
	s.mu.Unlock()
	return nil
}

func loadSiteData(configDir string) (siteData, error) {
	var d siteData

	var appFile struct {
		GitHub  githubConfig `json:"github"`
		Storage struct {
			UploadCategories []string `json:"uploadCategories"`
		} `json:"storage"`
	}
	raw, err := readConfigFile(filepath.Join(configDir, "app.json"))
	if err != nil {
		return d, err
	}
	if raw != nil {
		if err := json.Unmarshal(raw, &d.app); err != nil {
			return d, fmt.Errorf("parse app.json: %w", err)
		}
		if err := json.Unmarshal(raw, &appFile); err != nil {
			return d, fmt.Errorf("parse app.json: %w", err)
		}
	}
	d.github = appFile.GitHub
	d.s3Categories = appFile.Storage.UploadCategories

	var langFile struct {
		SupportedLanguages []language `json:"supportedLanguages"`
		DefaultLanguage    string     `json:"defaultLanguage"`
	}
	if err := parseConfigFile(configDir, "languages.json", &langFile); err != nil {
		return d, err
	}
	d.languages = langFile.SupportedLanguages
	d.defaultLang = langFile.DefaultLanguage

	var catFile struct {
		ContentTypes []contentType `json:"contentTypes"`
		Categories   []contentType `json:"categories"` // legacy key
	}
	if err := parseConfigFile(configDir, "categories.json", &catFile); err != nil {
		return d, err
	}
	d.contentTypes = catFile.ContentTypes
	if d.contentTypes == nil {
		d.contentTypes = catFile.Categories
	}

	return d, nil
}

// readConfigFile returns the file contents, or (nil, nil) when the file
// does not exist.
func readConfigFile(path string) ([]byte, error) {
	b, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	return b, nil
}

func parseConfigFile(configDir, name string, target any) error {
	raw, err := readConfigFile(filepath.Join(configDir, name))
	if err != nil || raw == nil {
		return err
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	return nil
}

// LanguageCodes returns the supported language codes, defaulting to ["en"]
// when languages.json is absent or empty.
func (s *Site) LanguageCodes() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.data.languages) == 0 {
		return []string{"en"}
	}
	codes := make([]string, 0, len(s.data.languages))
	for _, l := range s.data.languages {
		codes = append(codes, l.Code)
	}
	return codes
}

// DefaultLanguage returns the configured default language code, or "en".
func (s *Site) DefaultLanguage() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.data.defaultLang == "" {
		return "en"
	}
	return s.data.defaultLang
}

// CategoryIDs returns the ids of all configured content categories.
func (s *Site) CategoryIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.data.contentTypes))
	for _, ct := range s.data.contentTypes {
		ids = append(ids, ct.ID)
	}
	return ids
}

// CategoryDataFile resolves the data file path for a category. The second
// result reports whether the category is configured; the path falls back to
// "<dataDir>/<id>.json" either way, which is how legacy workspaces with
// unlisted categories keep working. A "data/" prefix on the configured
// dataFile is stripped to avoid doubling the directory.
func (s *Site) CategoryDataFile(id string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, ct := range s.data.contentTypes {
		if ct.ID != id {
			continue
		}
		name := id + ".json"
		if ct.DataFile != "" {
			name = strings.TrimPrefix(ct.DataFile, "data/")
		}
		return filepath.Join(s.dataDir, name), true
	}
	return filepath.Join(s.dataDir, id+".json"), false
}

// GitHubRepo returns the configured repository as (owner, name). The
// current config shape is github.username + github.repoName; the legacy
// single "owner/name" github.repo key is honored as a fallback. Both empty
// when releases are not configured.
func (s *Site) GitHubRepo() (owner, name string) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g := s.data.github
	if g.Username != "" && g.RepoName != "" {
		return g.Username, g.RepoName
	}
	if o, n, ok := strings.Cut(g.Repo, "/"); ok && o != "" && n != "" {
		return o, n
	}
	return "", ""
}

// GitHubReleaseTag returns the release tag that hosts media assets,
// defaulting to "media".
func (s *Site) GitHubReleaseTag() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.data.github.MediaReleaseTag == "" {
		return "media"
	}
	return s.data.github.MediaReleaseTag
}

// GitHubUploadCategories returns the categories routed to release assets
// instead of the CDN. Defaults to ["music"], the one category whose files
// the CDN free tier rejects.
func (s *Site) GitHubUploadCategories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.data.github.UploadCategories == nil {
		return []string{"music"}
	}
	return s.data.github.UploadCategories
}

// S3UploadCategories returns the categories routed to the S3-compatible
// bucket, from app.json storage.uploadCategories. Empty when unset.
func (s *Site) S3UploadCategories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.s3Categories
}

// Setting returns an app.json value by dot-notation path ("api.port"),
// or nil when any segment is missing.
func (s *Site) Setting(path string) any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var value any = s.data.app
	for _, part := range strings.Split(path, ".") {
		m, ok := value.(map[string]any)
		if !ok {
			return nil
		}
		value = m[part]
	}
	return value
}
