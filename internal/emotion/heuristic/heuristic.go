// Package heuristic is a small rule-based emotion backend served by the
// reference plugin. It looks at global image and signal statistics only;
// it is a stand-in for a trained model, not a replacement for one.
package heuristic

import (
	"context"
	"math"

	"github.com/balkashynov/steady/internal/emotion"
	"github.com/balkashynov/steady/internal/emotion/rpc"
)

// FrameStats are the brightness mean and standard deviation of a frame
type FrameStats struct {
	Mean     float64
	Contrast float64
}

// AudioStats are the RMS energy and zero-crossing rate of a clip
type AudioStats struct {
	RMS          float64
	CrossingRate float64
}

// MeasureFrame computes FrameStats over the pixels
func MeasureFrame(pixels []byte) FrameStats {
	if len(pixels) == 0 {
		return FrameStats{}
	}
	var sum float64
	for _, p := range pixels {
		sum += float64(p)
	}
	mean := sum / float64(len(pixels))

	var variance float64
	for _, p := range pixels {
		d := float64(p) - mean
		variance += d * d
	}
	return FrameStats{Mean: mean, Contrast: math.Sqrt(variance / float64(len(pixels)))}
}

// MeasureAudio computes AudioStats over the samples
func MeasureAudio(samples []float32) AudioStats {
	if len(samples) == 0 {
		return AudioStats{}
	}
	var energy float64
	crossings := 0
	for i, s := range samples {
		energy += float64(s) * float64(s)
		if i > 0 && (samples[i-1] >= 0) != (s >= 0) {
			crossings++
		}
	}
	return AudioStats{
		RMS:          math.Sqrt(energy / float64(len(samples))),
		CrossingRate: float64(crossings) / float64(len(samples)),
	}
}

// ClassifyFrame labels a grayscale frame
func ClassifyFrame(width, height int, pixels []byte) (emotion.Label, float32) {
	if width <= 0 || height <= 0 || len(pixels) < width*height {
		return emotion.LabelNeutral, 0
	}
	stats := MeasureFrame(pixels[:width*height])
	switch {
	case stats.Contrast > 80:
		return emotion.LabelSurprise, 0.4
	case stats.Mean > 170 && stats.Contrast > 40:
		return emotion.LabelHappy, 0.5
	case stats.Mean < 60:
		return emotion.LabelSad, 0.4
	default:
		return emotion.LabelNeutral, 0.6
	}
}

// ClassifyAudio labels a mono clip with samples in [-1, 1]
func ClassifyAudio(samples []float32, sampleRate int) (emotion.Label, float32) {
	if sampleRate <= 0 || len(samples) == 0 {
		return emotion.LabelNeutral, 0
	}
	stats := MeasureAudio(samples)
	switch {
	case stats.RMS < 0.05:
		return emotion.LabelCalm, 0.6
	case stats.RMS > 0.5 && stats.CrossingRate > 0.15:
		return emotion.LabelAngry, 0.5
	case stats.CrossingRate > 0.08:
		return emotion.LabelHappy, 0.4
	default:
		return emotion.LabelSad, 0.4
	}
}

// Server exposes the heuristics over the plugin contract
type Server struct{}

func (Server) ClassifyFrame(_ context.Context, in *rpc.FrameRequest) (*rpc.LabelResponse, error) {
	label, confidence := ClassifyFrame(int(in.Width), int(in.Height), in.Pixels)
	return &rpc.LabelResponse{Label: string(label), Confidence: confidence}, nil
}

func (Server) ClassifyAudio(_ context.Context, in *rpc.AudioRequest) (*rpc.LabelResponse, error) {
	label, confidence := ClassifyAudio(in.Samples, int(in.SampleRate))
	return &rpc.LabelResponse{Label: string(label), Confidence: confidence}, nil
}
