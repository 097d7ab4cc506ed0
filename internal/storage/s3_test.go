package storage

import "testing"

func newTestS3(t *testing.T, publicURL string) *S3 {
	t.Helper()
	c, err := NewS3("https://objects.example.net/", "auto", "key", "secret", "portfolio-media", publicURL)
	if err != nil {
		t.Fatalf("NewS3: %v", err)
	}
	if c == nil {
		t.Fatal("NewS3 returned nil with full credentials")
	}
	return c
}

func TestNewS3Unconfigured(t *testing.T) {
	c, err := NewS3("", "auto", "key", "secret", "bucket", "")
	if err != nil {
		t.Fatalf("NewS3: %v", err)
	}
	if c != nil {
		t.Error("expected nil client without an endpoint")
	}
}

func TestS3FileURL(t *testing.T) {
	t.Run("path style", func(t *testing.T) {
		c := newTestS3(t, "")
		got := c.FileURL("media/music/17_track.mp3")
		want := "https://objects.example.net/portfolio-media/media/music/17_track.mp3"
		if got != want {
			t.Errorf("url: got %q, want %q", got, want)
		}
	})

	t.Run("public url", func(t *testing.T) {
		c := newTestS3(t, "https://cdn.example.com/")
		got := c.FileURL("media/music/17_track.mp3")
		want := "https://cdn.example.com/media/music/17_track.mp3"
		if got != want {
			t.Errorf("url: got %q, want %q", got, want)
		}
	})
}

func TestS3ExtractKey(t *testing.T) {
	c := newTestS3(t, "https://cdn.example.com")

	tests := []struct {
		name   string
		url    string
		want   string
		wantOK bool
	}{
		{"cdn url", "https://cdn.example.com/media/a/b.mp3", "media/a/b.mp3", true},
		{"path-style url", "https://objects.example.net/portfolio-media/media/a/b.mp3", "media/a/b.mp3", true},
		{"other bucket", "https://objects.example.net/other-bucket/media/a/b.mp3", "", false},
		{"foreign host", "https://res.cloudinary.com/demo/image/upload/v1/x.jpg", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := c.ExtractKey(tt.url)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("ExtractKey(%q): got (%q, %v), want (%q, %v)", tt.url, got, ok, tt.want, tt.wantOK)
			}
			if owns := c.Owns(tt.url); owns != tt.wantOK {
				t.Errorf("Owns(%q): got %v, want %v", tt.url, owns, tt.wantOK)
			}
		})
	}
}
