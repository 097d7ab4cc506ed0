// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package storage

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// Cloudinary wraps the Cloudinary upload API. It is the default media
// tier: every category without a dedicated backend uploads here.
type Cloudinary struct {
	cld *cloudinary.Cloudinary
}

// NewCloudinary creates the CDN client. Returns (nil, nil) if any
// credential is empty, allowing the app to start without the CDN.
func NewCloudinary(cloudName, apiKey, apiSecret string) (*Cloudinary, error) {
	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return nil, nil
	}

	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("cloudinary init: %w", err)
	}
	return &Cloudinary{cld: cld}, nil
}

// Upload sends a local file to the portfolio folder for a category and
// returns its delivery URL. The video category uploads as the video
// resource type; everything else lets Cloudinary detect the type.
func (c *Cloudinary) Upload(ctx context.Context, file, category string) (string, error) {
	resourceType := "auto"
	if category == "video" {
		resourceType = "video"
	}

	resp, err := c.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:       "portfolio/" + category,
		ResourceType: resourceType,
	})
	if err != nil {
		return "", fmt.Errorf("cloudinary upload %s: %w", filepath.Base(file), err)
	}
	// The SDK reports API-level failures in the body, not the error.
	if resp.Error.Message != "" {
		return "", fmt.Errorf("cloudinary upload %s: %s", filepath.Base(file), resp.Error.Message)
	}
	return resp.SecureURL, nil
}

// Owns reports whether a URL is served by Cloudinary.
func (c *Cloudinary) Owns(rawURL string) bool {
	return strings.Contains(rawURL, "cloudinary.com")
}

// Remove destroys the asset behind a delivery URL. Destroy is scoped by
// resource type, so image is tried first and video second.
func (c *Cloudinary) Remove(ctx context.Context, rawURL string) error {
	publicID, ok := PublicID(rawURL)
	if !ok {
		return fmt.Errorf("cloudinary remove: no public id in %q", rawURL)
	}

	var result string
	for _, resourceType := range []string{"image", "video"} {
		resp, err := c.cld.Upload.Destroy(ctx, uploader.DestroyParams{
			PublicID:     publicID,
			ResourceType: resourceType,
		})
		if err != nil {
			return fmt.Errorf("cloudinary destroy %s: %w", publicID, err)
		}
		result = resp.Result
		if result == "ok" {
			return nil
		}
	}
	return fmt.Errorf("cloudinary destroy %s: %s", publicID, result)
}

var cldVersionPrefix = regexp.MustCompile(`^v\d+/`)

// PublicID derives the Cloudinary public id from a delivery URL: the path
// after /upload/, minus the version prefix and the file extension.
//
//	https://res.cloudinary.com/demo/image/upload/v123/portfolio/painting/x.jpg
//	-> portfolio/painting/x
func PublicID(rawURL string) (string, bool) {
	if !strings.Contains(rawURL, "cloudinary.com") {
		return "", false
	}
	_, rest, found := strings.Cut(rawURL, "/upload/")
	if !found {
		return "", false
	}

	rest = cldVersionPrefix.ReplaceAllString(rest, "")
	if ext := path.Ext(rest); ext != "" {
		rest = strings.TrimSuffix(rest, ext)
	}
	if rest == "" {
		return "", false
	}
	return rest, true
}
