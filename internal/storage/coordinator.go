// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package storage implements the remote media backends behind the admin
// API: Cloudinary for CDN-served images, GitHub release assets for audio
// and video, and S3-compatible object storage for archival categories.
// The Coordinator routes uploads to the backend configured for a category
// and fans deletions out to whichever backend recognizes each URL.
package storage

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"time"
)

// RoutingConfig is the slice of site configuration the coordinator needs
// to route a category to a backend.
type RoutingConfig interface {
	GitHubUploadCategories() []string
	S3UploadCategories() []string
}

// Result describes one stored file.
type Result struct {
	URL      string
	Provider string
}

// RemoveReport tallies a batch of remote deletions.
type RemoveReport struct {
	Deleted []string
	Failed  []string
}

// backend is the deletion surface every storage tier shares.
type backend interface {
	Owns(rawURL string) bool
	Remove(ctx context.Context, rawURL string) error
}

// Coordinator routes media between the configured backends. Any backend
// may be nil; category routing falls through to the next choice, with
// Cloudinary as the default tier.
type Coordinator struct {
	site     RoutingConfig
	cdn      *Cloudinary
	releases *Releases
	objects  *S3
}

// NewCoordinator assembles the media coordinator.
func NewCoordinator(site RoutingConfig, cdn *Cloudinary, releases *Releases, objects *S3) *Coordinator {
	return &Coordinator{site: site, cdn: cdn, releases: releases, objects: objects}
}

// Upload stores a local file under the backend configured for the
// category and returns the durable URL. name is the sanitized original
// filename, used for asset naming and content-type detection.
func (c *Coordinator) Upload(ctx context.Context, category, file, name string) (Result, error) {
	switch {
	case c.releases != nil && slices.Contains(c.site.GitHubUploadCategories(), category):
		url, err := c.releases.Upload(ctx, file, name)
		if err != nil {
			return Result{}, err
		}
		return Result{URL: url, Provider: "github"}, nil

	case c.objects != nil && slices.Contains(c.site.S3UploadCategories(), category):
		f, err := os.Open(file)
		if err != nil {
			return Result{}, fmt.Errorf("open upload: %w", err)
		}
		defer f.Close()
		info, err := f.Stat()
		if err != nil {
			return Result{}, fmt.Errorf("stat upload: %w", err)
		}

		key := "media/" + category + "/" + stampName(name)
		url, err := c.objects.Upload(ctx, key, AssetContentType(name), f, info.Size())
		if err != nil {
			return Result{}, err
		}
		return Result{URL: url, Provider: "s3"}, nil
	}

	if c.cdn == nil {
		return Result{}, fmt.Errorf("no storage backend configured for category %q", category)
	}
	url, err := c.cdn.Upload(ctx, file, category)
	if err != nil {
		return Result{}, err
	}
	return Result{URL: url, Provider: "cloudinary"}, nil
}

// Remove deletes one remote file, trying each backend that recognizes the
// URL until one succeeds. Best effort: failures are logged and reported
// as false, never as an error.
func (c *Coordinator) Remove(ctx context.Context, rawURL string) bool {
	recognized := false
	for _, b := range c.backends() {
		if !b.Owns(rawURL) {
			continue
		}
		recognized = true
		if err := b.Remove(ctx, rawURL); err != nil {
			slog.Warn("remote delete failed", "url", rawURL, "error", err)
			continue
		}
		return true
	}
	if !recognized {
		slog.Warn("no storage backend recognizes url", "url", rawURL)
	}
	return false
}

// RemoveBatch deletes each URL best-effort and reports the split.
func (c *Coordinator) RemoveBatch(ctx context.Context, urls []string) RemoveReport {
	var report RemoveReport
	for _, u := range urls {
		if u == "" {
			continue
		}
		if c.Remove(ctx, u) {
			report.Deleted = append(report.Deleted, u)
		} else {
			report.Failed = append(report.Failed, u)
		}
	}
	return report
}

// backends returns the configured tiers in deletion-attempt order.
func (c *Coordinator) backends() []backend {
	var tiers []backend
	if c.cdn != nil {
		tiers = append(tiers, c.cdn)
	}
	if c.releases != nil {
		tiers = append(tiers, c.releases)
	}
	if c.objects != nil {
		tiers = append(tiers, c.objects)
	}
	return tiers
}

// stampName prefixes a filename with the current Unix timestamp, the
// naming scheme shared by the release and object tiers.
func stampName(name string) string {
	return fmt.Sprintf("%d_%s", time.Now().Unix(), name)
}
