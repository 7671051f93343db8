package emotion

import (
	"context"
	"errors"
	"image"
	"image/color"
	"path/filepath"
	"testing"
	"time"

	"github.com/balkashynov/steady/internal/config"
	"github.com/balkashynov/steady/internal/emotion/rpc"
	"github.com/balkashynov/steady/internal/logging"
)

func TestNeutralAlwaysNeutral(t *testing.T) {
	var c Classifier = Neutral{}
	ctx := context.Background()
	if got := c.ClassifyFrame(ctx, Frame{Width: 1, Height: 1, Pixels: []byte{200}}); got != LabelNeutral {
		t.Fatalf("expected Neutral, got %s", got)
	}
	if got := c.ClassifyAudio(ctx, []float32{0.1, -0.1}, 22050); got != LabelNeutral {
		t.Fatalf("expected Neutral, got %s", got)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
}

func TestNewFallsBackToNeutral(t *testing.T) {
	if _, ok := New(config.EmotionConfig{}, nil).(Neutral); !ok {
		t.Fatalf("expected Neutral without a plugin")
	}

	missing := config.EmotionConfig{
		Plugin:       filepath.Join(t.TempDir(), "does-not-exist"),
		StartTimeout: time.Second,
		CallTimeout:  time.Second,
	}
	if _, ok := New(missing, logging.Discard()).(Neutral); !ok {
		t.Fatalf("expected Neutral when the plugin cannot start")
	}
}

func TestFrameFromImageAndResize(t *testing.T) {
	img := image.NewRGBA(image.Rect(10, 20, 14, 22)) // 4x2 with a non-zero origin
	for x := 10; x < 14; x++ {
		img.Set(x, 20, color.White)
		img.Set(x, 21, color.Black)
	}

	frame := FrameFromImage(img)
	if frame.Width != 4 || frame.Height != 2 || len(frame.Pixels) != 8 {
		t.Fatalf("unexpected frame size %dx%d (%d pixels)", frame.Width, frame.Height, len(frame.Pixels))
	}
	if frame.Pixels[0] != 255 || frame.Pixels[7] != 0 {
		t.Fatalf("unexpected grayscale values %v", frame.Pixels)
	}

	small := frame.Resize(2, 1)
	if small.Width != 2 || small.Height != 1 || len(small.Pixels) != 2 || small.Pixels[0] != 255 {
		t.Fatalf("unexpected resized frame %+v", small)
	}

	if !(Frame{}).Resize(4, 4).Empty() {
		t.Fatalf("resizing an empty frame should stay empty")
	}
}

type fakeEmotionClient struct {
	label string
	err   error
	calls int
}

func (f *fakeEmotionClient) ClassifyFrame(context.Context, *rpc.FrameRequest) (*rpc.LabelResponse, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &rpc.LabelResponse{Label: f.label}, nil
}

func (f *fakeEmotionClient) ClassifyAudio(context.Context, *rpc.AudioRequest) (*rpc.LabelResponse, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &rpc.LabelResponse{Label: f.label}, nil
}

func TestPluginClassifierNormalizesLabels(t *testing.T) {
	ctx := context.Background()
	frame := Frame{Width: 2, Height: 1, Pixels: []byte{1, 2}}
	samples := []float32{0.2, -0.2}

	tests := []struct {
		name      string
		client    *fakeEmotionClient
		wantFrame Label
		wantAudio Label
	}{
		{"shared label", &fakeEmotionClient{label: "Happy"}, LabelHappy, LabelHappy},
		{"frame only label", &fakeEmotionClient{label: "Disgust"}, LabelDisgust, LabelNeutral},
		{"audio only label", &fakeEmotionClient{label: "Calm"}, LabelNeutral, LabelCalm},
		{"neutral accepted everywhere", &fakeEmotionClient{label: "Neutral"}, LabelNeutral, LabelNeutral},
		{"unknown label", &fakeEmotionClient{label: "Bored"}, LabelNeutral, LabelNeutral},
		{"rpc error", &fakeEmotionClient{err: errors.New("boom")}, LabelNeutral, LabelNeutral},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &PluginClassifier{rpc: tt.client, callTimeout: time.Second, log: logging.Discard()}
			if got := c.ClassifyFrame(ctx, frame); got != tt.wantFrame {
				t.Fatalf("frame: expected %s, got %s", tt.wantFrame, got)
			}
			if got := c.ClassifyAudio(ctx, samples, 16000); got != tt.wantAudio {
				t.Fatalf("audio: expected %s, got %s", tt.wantAudio, got)
			}
			if err := c.Close(); err != nil {
				t.Fatalf("Close failed: %v", err)
			}
		})
	}
}

func TestPluginClassifierSkipsEmptyInput(t *testing.T) {
	client := &fakeEmotionClient{label: "Happy"}
	c := &PluginClassifier{rpc: client, callTimeout: time.Second, log: logging.Discard()}

	if got := c.ClassifyFrame(context.Background(), Frame{}); got != LabelNeutral {
		t.Fatalf("expected Neutral for an empty frame, got %s", got)
	}
	if got := c.ClassifyAudio(context.Background(), nil, 16000); got != LabelNeutral {
		t.Fatalf("expected Neutral for no samples, got %s", got)
	}
	if client.calls != 0 {
		t.Fatalf("empty input should not reach the plugin, got %d calls", client.calls)
	}
}
