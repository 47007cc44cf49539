package utils

import (
	"os"
	"path/filepath"
	"strings"
)

// OutputSuffix is appended to the stem of every batch output file.
const OutputSuffix = "_upscaled"

// imageExts are the extensions treated as image files during batch matching.
var imageExts = []string{"jpg", "jpeg", "png", "gif", "bmp", "tiff", "webp"}

// keepExts are the output extensions kept as-is; anything else becomes .png.
var keepExts = []string{".png", ".jpg", ".jpeg"}

// GetFileExtension returns the file extension without the dot
func GetFileExtension(filename string) string {
	ext := filepath.Ext(filename)
	if len(ext) > 0 {
		return strings.ToLower(ext[1:])
	}
	return ""
}

// IsImageFile checks if a file has an image extension
func IsImageFile(filename string) bool {
	ext := GetFileExtension(filename)
	for _, imgExt := range imageExts {
		if ext == imgExt {
			return true
		}
	}
	return false
}

// OutputPath derives the batch output filename for an input: the stem gains
// the OutputSuffix and the extension is forced to .png unless the input was
// already png or jpeg.
func OutputPath(inputFile string) string {
	dir := filepath.Dir(inputFile)
	base := filepath.Base(inputFile)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	keep := false
	for _, k := range keepExts {
		if strings.EqualFold(ext, k) {
			keep = true
			break
		}
	}
	if !keep {
		ext = ".png"
	}

	return filepath.Join(dir, stem+OutputSuffix+ext)
}

// IsUpscaledOutput reports whether a path looks like a previous batch output,
// so reruns over the same glob don't re-upscale their own results.
func IsUpscaledOutput(path string) bool {
	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return strings.HasSuffix(stem, OutputSuffix)
}

// FileExists checks if a file exists and is not a directory
func FileExists(filename string) bool {
	info, err := os.Stat(filename)
	if os.IsNotExist(err) {
		return false
	}
	return info != nil && !info.IsDir()
}
