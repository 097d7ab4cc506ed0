// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package validate checks a portfolio workspace for consistency: the
// config files, the per-category data files, the translation files, and
// raw JSON syntax across the content tree.
package validate

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Report collects findings by severity. Only errors fail validation;
// warnings and infos are advisory.
type Report struct {
	Errors   []string
	Warnings []string
	Infos    []string
}

// OK reports whether validation passed.
func (r *Report) OK() bool { return len(r.Errors) == 0 }

func (r *Report) errorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *Report) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

func (r *Report) infof(format string, args ...any) {
	r.Infos = append(r.Infos, fmt.Sprintf(format, args...))
}

// Validator checks one content workspace. Each check parses what it
// needs and leaves the parsed pieces for the checks that follow, so a
// file that fails to parse surfaces exactly one error.
type Validator struct {
	configDir string
	dataDir   string
	langDir   string

	report Report

	contentTypes []map[string]any
	mediaTypeIDs map[string]bool
	langCodes    []string
}

// New creates a Validator over the workspace directories.
func New(configDir, dataDir, langDir string) *Validator {
	return &Validator{
		configDir:    configDir,
		dataDir:      dataDir,
		langDir:      langDir,
		mediaTypeIDs: make(map[string]bool),
	}
}

// Run executes every check and returns the report.
func (v *Validator) Run() *Report {
	v.checkMediaTypes()
	v.checkCategories()
	v.checkLanguages()
	v.checkAppConfig()
	v.checkDataFiles()
	v.checkTranslations()
	v.checkCrossReferences()
	return &v.report
}

// loadJSON parses one file into dst. A missing or unparseable file is
// recorded as an error and reported as false.
func (v *Validator) loadJSON(path string, dst any) bool {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			v.report.errorf("file not found: %s", path)
		} else {
			v.report.errorf("error reading %s: %v", filepath.Base(path), err)
		}
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		v.report.errorf("invalid JSON in %s: %v", filepath.Base(path), err)
		return false
	}
	return true
}

func (v *Validator) checkMediaTypes() {
	var doc struct {
		MediaTypes []map[string]any `json:"mediaTypes"`
	}
	path := filepath.Join(v.configDir, "media-types.json")
	if !v.loadJSON(path, &doc) {
		return
	}
	if doc.MediaTypes == nil {
		v.report.errorf("media-types.json missing 'mediaTypes' array")
		return
	}

	required := []string{"id", "name", "icon", "viewer", "acceptedFormats"}
	for i, mt := range doc.MediaTypes {
		for _, field := range required {
			if _, ok := mt[field]; !ok {
				v.report.errorf("media type #%d missing required field: %s", i, field)
			}
		}
		if formats, ok := mt["acceptedFormats"]; ok {
			if _, isArray := formats.([]any); !isArray {
				v.report.errorf("media type %q: acceptedFormats must be an array", idOrIndex(mt, i))
			}
		}
		if id, ok := mt["id"].(string); ok {
			v.mediaTypeIDs[id] = true
		}
	}
}

func (v *Validator) checkCategories() {
	var doc struct {
		ContentTypes []map[string]any `json:"contentTypes"`
		Categories   []map[string]any `json:"categories"`
	}
	path := filepath.Join(v.configDir, "categories.json")
	if !v.loadJSON(path, &doc) {
		return
	}

	// The legacy key is still read by older workspaces.
	contentTypes := doc.ContentTypes
	if len(contentTypes) == 0 {
		contentTypes = doc.Categories
	}
	if len(contentTypes) == 0 {
		v.report.errorf("categories.json missing content types array")
		return
	}
	v.contentTypes = contentTypes

	required := []string{"id", "name", "icon", "mediaType", "dataFile"}
	for i, ct := range contentTypes {
		id := idOrIndex(ct, i)
		for _, field := range required {
			if _, ok := ct[field]; !ok {
				v.report.errorf("content type %q missing required field: %s", id, field)
			}
		}
		if fields, ok := ct["fields"].(map[string]any); ok {
			if _, ok := fields["required"]; !ok {
				v.report.warnf("content type %q: missing 'fields.required' array", id)
			}
			if _, ok := fields["optional"]; !ok {
				v.report.warnf("content type %q: missing 'fields.optional' array", id)
			}
		}
	}
}

func (v *Validator) checkLanguages() {
	var doc struct {
		SupportedLanguages []map[string]any `json:"supportedLanguages"`
		DefaultLanguage    *string          `json:"defaultLanguage"`
	}
	path := filepath.Join(v.configDir, "languages.json")
	if !v.loadJSON(path, &doc) {
		return
	}

	if doc.SupportedLanguages == nil {
		v.report.errorf("languages.json missing 'supportedLanguages' array")
		return
	}
	if doc.DefaultLanguage == nil {
		v.report.errorf("languages.json missing 'defaultLanguage' field")
	}

	for _, lang := range doc.SupportedLanguages {
		for _, field := range []string{"code", "name"} {
			if _, ok := lang[field]; !ok {
				v.report.errorf("language entry missing required field: %s", field)
			}
		}
		if code, ok := lang["code"].(string); ok {
			v.langCodes = append(v.langCodes, code)
		}
	}
}

func (v *Validator) checkAppConfig() {
	var doc map[string]any
	path := filepath.Join(v.configDir, "app.json")
	if !v.loadJSON(path, &doc) {
		return
	}

	for _, field := range []string{"name", "author", "api", "github"} {
		if _, ok := doc[field]; !ok {
			v.report.warnf("app.json missing recommended field: %s", field)
		}
	}
}

func (v *Validator) checkDataFiles() {
	for _, ct := range v.contentTypes {
		id, _ := ct["id"].(string)
		if id == "" {
			continue
		}

		path := v.dataFilePath(ct)
		raw, err := os.ReadFile(path)
		if err != nil {
			v.report.warnf("data file not found for %q: %s", id, path)
			continue
		}

		var doc any
		if err := json.Unmarshal(raw, &doc); err != nil {
			v.report.errorf("invalid JSON in %s: %v", filepath.Base(path), err)
			continue
		}
		items, ok := decodeDataItems(raw)
		if !ok {
			v.report.errorf("data file %q must be an array or an object with 'items'", id)
			continue
		}

		required := requiredItemFields(ct)
		for i, item := range items {
			for _, field := range required {
				if _, ok := item[field]; !ok {
					v.report.warnf("%s.json item #%d: missing required field %q", id, i, field)
				}
			}
			if _, ok := item["id"]; !ok {
				v.report.infof("%s.json item #%d: missing 'id' field", id, i)
			}
		}
	}
}

func (v *Validator) checkTranslations() {
	if len(v.langCodes) == 0 {
		v.report.errorf("no language codes found")
		return
	}

	translations := make(map[string]map[string]any)
	for _, code := range v.langCodes {
		var doc map[string]any
		if v.loadJSON(filepath.Join(v.langDir, code+".json"), &doc) {
			translations[code] = doc
		}
	}
	if len(translations) < 2 {
		return
	}

	allKeys := make(map[string]bool)
	for _, keys := range translations {
		for k := range keys {
			allKeys[k] = true
		}
	}

	for _, code := range v.langCodes {
		keys, ok := translations[code]
		if !ok {
			continue
		}
		var missing []string
		for k := range allKeys {
			if _, ok := keys[k]; !ok {
				missing = append(missing, k)
			}
		}
		if len(missing) == 0 {
			continue
		}
		v.report.warnf("language %q missing %d translation keys", code, len(missing))
		if len(missing) <= 5 {
			sort.Strings(missing)
			for _, k := range missing {
				v.report.infof("missing in %q: %s", code, k)
			}
		}
	}
}

func (v *Validator) checkCrossReferences() {
	for i, ct := range v.contentTypes {
		mediaType, _ := ct["mediaType"].(string)
		if !v.mediaTypeIDs[mediaType] {
			v.report.errorf("content type %q references unknown media type: %q", idOrIndex(ct, i), mediaType)
		}
	}
}

// dataFilePath resolves a content type's data file the way the API
// does: the configured name relative to the data dir, falling back to
// <id>.json.
func (v *Validator) dataFilePath(ct map[string]any) string {
	if name, ok := ct["dataFile"].(string); ok && name != "" {
		return filepath.Join(v.dataDir, strings.TrimPrefix(name, "data/"))
	}
	id, _ := ct["id"].(string)
	return filepath.Join(v.dataDir, id+".json")
}

// requiredItemFields returns a content type's required item fields,
// defaulting to title and url.
func requiredItemFields(ct map[string]any) []string {
	fields, ok := ct["fields"].(map[string]any)
	if !ok {
		return []string{"title", "url"}
	}
	listed, ok := fields["required"].([]any)
	if !ok {
		return []string{"title", "url"}
	}
	var required []string
	for _, f := range listed {
		if s, ok := f.(string); ok {
			required = append(required, s)
		}
	}
	return required
}

// decodeDataItems accepts both data file shapes, a bare array and the
// {"items": [...]} wrapper.
func decodeDataItems(raw []byte) ([]map[string]any, bool) {
	var items []map[string]any
	if err := json.Unmarshal(raw, &items); err == nil {
		return items, true
	}
	var wrapped struct {
		Items []map[string]any `json:"items"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil && wrapped.Items != nil {
		return wrapped.Items, true
	}
	return nil, false
}

// idOrIndex names an entry by its id when it has one, or its position.
func idOrIndex(m map[string]any, i int) string {
	if id, ok := m["id"].(string); ok && id != "" {
		return id
	}
	return fmt.Sprintf("#%d", i)
}
