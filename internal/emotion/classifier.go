// Package emotion suggests a mood label from a camera frame or a short
// audio clip. The classifier is chosen once at startup: an external plugin
// when one is configured and starts, otherwise a constant neutral answer.
package emotion

import (
	"context"
	"image"
	"image/color"
	"log/slog"

	"github.com/balkashynov/steady/internal/config"
	"github.com/balkashynov/steady/internal/logging"
)

// Classifier maps input to a label. It never fails: any internal problem
// yields LabelNeutral.
type Classifier interface {
	ClassifyFrame(ctx context.Context, frame Frame) Label
	ClassifyAudio(ctx context.Context, samples []float32, sampleRate int) Label
	Close() error
}

// Frame is an 8-bit grayscale image, row-major
type Frame struct {
	Width  int
	Height int
	Pixels []byte
}

// Empty reports whether the frame has no usable pixels
func (f Frame) Empty() bool {
	return f.Width <= 0 || f.Height <= 0 || len(f.Pixels) < f.Width*f.Height
}

// FrameFromImage converts any image to a grayscale frame
func FrameFromImage(img image.Image) Frame {
	bounds := img.Bounds()
	frame := Frame{
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
		Pixels: make([]byte, bounds.Dx()*bounds.Dy()),
	}
	for y := 0; y < frame.Height; y++ {
		for x := 0; x < frame.Width; x++ {
			gray := color.GrayModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.Gray)
			frame.Pixels[y*frame.Width+x] = gray.Y
		}
	}
	return frame
}

// Resize scales the frame with nearest-neighbour sampling
func (f Frame) Resize(width, height int) Frame {
	if f.Empty() || width <= 0 || height <= 0 {
		return Frame{}
	}
	out := Frame{Width: width, Height: height, Pixels: make([]byte, width*height)}
	for y := 0; y < height; y++ {
		srcY := y * f.Height / height
		for x := 0; x < width; x++ {
			srcX := x * f.Width / width
			out.Pixels[y*width+x] = f.Pixels[srcY*f.Width+srcX]
		}
	}
	return out
}

// Neutral is the fallback classifier used when no model is available
type Neutral struct{}

func (Neutral) ClassifyFrame(context.Context, Frame) Label { return LabelNeutral }

func (Neutral) ClassifyAudio(context.Context, []float32, int) Label { return LabelNeutral }

func (Neutral) Close() error { return nil }

// New picks the classifier for cfg. A plugin that fails to start is logged
// and replaced by Neutral.
func New(cfg config.EmotionConfig, log *slog.Logger) Classifier {
	log = logging.OrDiscard(log)
	if cfg.Plugin == "" {
		log.Debug("no emotion plugin configured, using neutral classifier")
		return Neutral{}
	}

	c, err := StartPlugin(cfg.Plugin, cfg.StartTimeout, cfg.CallTimeout, log)
	if err != nil {
		log.Warn("emotion plugin unavailable, using neutral classifier", "plugin", cfg.Plugin, "error", err)
		return Neutral{}
	}
	log.Info("emotion plugin started", "plugin", cfg.Plugin)
	return c
}
