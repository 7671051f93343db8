package emotion

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
)

// FrameSize is the square size frames are scaled to before classification
const FrameSize = 48

// LoadFrame decodes a PNG or JPEG file into a grayscale frame of
// FrameSize x FrameSize
func LoadFrame(path string) (Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return Frame{}, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return Frame{}, fmt.Errorf("decode image %s: %w", path, err)
	}
	if format != "png" && format != "jpeg" {
		return Frame{}, fmt.Errorf("unsupported image format %q", format)
	}

	frame := FrameFromImage(img).Resize(FrameSize, FrameSize)
	if frame.Empty() {
		return Frame{}, fmt.Errorf("image %s is empty", path)
	}
	return frame, nil
}
