// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package storage

import (
	"context"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path"
	"strings"

	"github.com/google/go-github/v66/github"
)

// Releases stores media as GitHub release assets. It carries the file
// types the CDN tier will not host, audio and large video.
type Releases struct {
	client *github.Client
	owner  string
	repo   string
	tag    string
}

// NewReleases creates the release-asset backend. Returns nil when the
// token or repository is not configured.
func NewReleases(token, owner, repo, tag string) *Releases {
	if token == "" || owner == "" || repo == "" {
		return nil
	}
	return &Releases{
		client: github.NewClient(nil).WithAuthToken(token),
		owner:  owner,
		repo:   repo,
		tag:    tag,
	}
}

// release returns the media release, creating it on first use.
func (r *Releases) release(ctx context.Context) (*github.RepositoryRelease, error) {
	rel, resp, err := r.client.Repositories.GetReleaseByTag(ctx, r.owner, r.repo, r.tag)
	if err == nil {
		return rel, nil
	}
	if resp == nil || resp.StatusCode != http.StatusNotFound {
		return nil, fmt.Errorf("get release %s: %w", r.tag, err)
	}

	rel, _, err = r.client.Repositories.CreateRelease(ctx, r.owner, r.repo, &github.RepositoryRelease{
		TagName: github.String(r.tag),
		Name:    github.String("Media Assets"),
		Body:    github.String("Audio and video files for the portfolio."),
	})
	if err != nil {
		return nil, fmt.Errorf("create release %s: %w", r.tag, err)
	}
	return rel, nil
}

// Upload attaches a local file to the media release and returns its
// download URL. Asset names carry an upload timestamp so re-uploads of
// the same filename never collide.
func (r *Releases) Upload(ctx context.Context, file, name string) (string, error) {
	rel, err := r.release(ctx)
	if err != nil {
		return "", err
	}

	f, err := os.Open(file)
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	asset, _, err := r.client.Repositories.UploadReleaseAsset(ctx, r.owner, r.repo, rel.GetID(), &github.UploadOptions{
		Name:      stampName(name),
		MediaType: AssetContentType(name),
	}, f)
	if err != nil {
		return "", fmt.Errorf("upload asset %s: %w", name, err)
	}
	return asset.GetBrowserDownloadURL(), nil
}

// Owns reports whether a URL points at GitHub-hosted content.
func (r *Releases) Owns(rawURL string) bool {
	return strings.Contains(rawURL, "github.com") || strings.Contains(rawURL, "githubusercontent.com")
}

// Remove deletes the release asset behind a download URL. Assets are
// matched by the filename, the last URL segment.
func (r *Releases) Remove(ctx context.Context, rawURL string) error {
	name := rawURL
	if i := strings.LastIndex(rawURL, "/"); i >= 0 {
		name = rawURL[i+1:]
	}

	rel, _, err := r.client.Repositories.GetReleaseByTag(ctx, r.owner, r.repo, r.tag)
	if err != nil {
		return fmt.Errorf("get release %s: %w", r.tag, err)
	}

	assets, _, err := r.client.Repositories.ListReleaseAssets(ctx, r.owner, r.repo, rel.GetID(), &github.ListOptions{PerPage: 100})
	if err != nil {
		return fmt.Errorf("list assets %s: %w", r.tag, err)
	}

	for _, asset := range assets {
		if asset.GetName() != name {
			continue
		}
		if _, err := r.client.Repositories.DeleteReleaseAsset(ctx, r.owner, r.repo, asset.GetID()); err != nil {
			return fmt.Errorf("delete asset %s: %w", name, err)
		}
		return nil
	}
	return fmt.Errorf("asset %s: not in release %s", name, r.tag)
}

// assetContentTypes maps the media extensions this tier usually carries
// to their MIME types. Extensions outside the map fall back to the
// platform MIME registry, then to octet-stream.
var assetContentTypes = map[string]string{
	".mp3":  "audio/mpeg",
	".wav":  "audio/wav",
	".ogg":  "audio/ogg",
	".flac": "audio/flac",
	".m4a":  "audio/mp4",
	".aac":  "audio/aac",
	".mp4":  "video/mp4",
	".webm": "video/webm",
}

// AssetContentType resolves the MIME type to upload a filename under.
func AssetContentType(name string) string {
	ext := strings.ToLower(path.Ext(name))
	if ct, ok := assetContentTypes[ext]; ok {
		return ct
	}
	if ct := mime.TypeByExtension(ext); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
