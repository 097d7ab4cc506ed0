package storage

import "testing"

func TestAssetContentType(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"track.mp3", "audio/mpeg"},
		{"take.wav", "audio/wav"},
		{"loop.ogg", "audio/ogg"},
		{"master.flac", "audio/flac"},
		{"demo.m4a", "audio/mp4"},
		{"clip.aac", "audio/aac"},
		{"reel.mp4", "video/mp4"},
		{"short.webm", "video/webm"},
		{"LOUD.MP3", "audio/mpeg"},
		{"cover.jpg", "image/jpeg"},
		{"mystery.zzz", "application/octet-stream"},
		{"noextension", "application/octet-stream"},
	}

	for _, tt := range tests {
		if got := AssetContentType(tt.name); got != tt.want {
			t.Errorf("AssetContentType(%q): got %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestReleasesOwns(t *testing.T) {
	r := &Releases{}
	owned := []string{
		"https://github.com/alex/retro-portfolio/releases/download/media/17_track.mp3",
		"https://objects.githubusercontent.com/github-production-release-asset/abc",
	}
	for _, u := range owned {
		if !r.Owns(u) {
			t.Errorf("Owns(%q) = false", u)
		}
	}
	if r.Owns("https://res.cloudinary.com/demo/image/upload/v1/x.jpg") {
		t.Error("cloudinary url claimed by releases")
	}
}

func TestNewReleasesUnconfigured(t *testing.T) {
	if r := NewReleases("", "alex", "portfolio", "media"); r != nil {
		t.Error("expected nil backend without a token")
	}
	if r := NewReleases("tok", "", "", "media"); r != nil {
		t.Error("expected nil backend without a repository")
	}
}
