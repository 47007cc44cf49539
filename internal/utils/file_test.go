package utils

import (
	"path/filepath"
	"testing"
)

func TestOutputPath(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"photo.jpg", "photo_upscaled.jpg"},
		{"photo.jpeg", "photo_upscaled.jpeg"},
		{"photo.png", "photo_upscaled.png"},
		{"photo.webp", "photo_upscaled.png"},
		{"photo.bmp", "photo_upscaled.png"},
		{"photo.PNG", "photo_upscaled.PNG"},
		{filepath.Join("images", "cat.gif"), filepath.Join("images", "cat_upscaled.png")},
	}

	for _, c := range cases {
		if got := OutputPath(c.in); got != c.want {
			t.Errorf("OutputPath(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestIsImageFile(t *testing.T) {
	for _, name := range []string{"a.jpg", "b.JPEG", "c.png", "d.webp", "e.gif"} {
		if !IsImageFile(name) {
			t.Errorf("expected %q to be an image file", name)
		}
	}
	for _, name := range []string{"a.txt", "b", "c.pdf"} {
		if IsImageFile(name) {
			t.Errorf("expected %q not to be an image file", name)
		}
	}
}

func TestIsUpscaledOutput(t *testing.T) {
	if !IsUpscaledOutput("photo_upscaled.png") {
		t.Error("expected output file to be recognized")
	}
	if IsUpscaledOutput("photo.png") {
		t.Error("expected plain input not to be flagged")
	}
}
