package emotion

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"time"

	hclog "github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-plugin"

	"github.com/balkashynov/steady/internal/emotion/rpc"
	"github.com/balkashynov/steady/internal/logging"
)

const (
	defaultStartTimeout = 3 * time.Second
	defaultCallTimeout  = 5 * time.Second
)

// PluginClassifier talks to an out-of-process classifier over gRPC. The
// plugin process is started once and kept until Close.
type PluginClassifier struct {
	client      *plugin.Client
	rpc         rpc.EmotionClient
	callTimeout time.Duration
	log         *slog.Logger
}

// StartPlugin launches the plugin binary at path and completes the handshake
func StartPlugin(path string, startTimeout, callTimeout time.Duration, log *slog.Logger) (*PluginClassifier, error) {
	log = logging.OrDiscard(log)
	if startTimeout <= 0 {
		startTimeout = defaultStartTimeout
	}
	if callTimeout <= 0 {
		callTimeout = defaultCallTimeout
	}

	client := plugin.NewClient(&plugin.ClientConfig{
		HandshakeConfig:  rpc.HandshakeConfig,
		AllowedProtocols: []plugin.Protocol{plugin.ProtocolGRPC},
		Plugins:          rpc.PluginMap(nil),
		Cmd:              exec.Command(path),
		Managed:          true,
		StartTimeout:     startTimeout,
		Logger: hclog.New(&hclog.LoggerOptions{
			Name:   "emotion-plugin",
			Output: slog.NewLogLogger(log.Handler(), slog.LevelDebug).Writer(),
			Level:  hclog.Debug,
		}),
	})

	rpcClient, err := client.Client()
	if err != nil {
		client.Kill()
		return nil, fmt.Errorf("start plugin client: %w", err)
	}
	raw, err := rpcClient.Dispense(rpc.PluginMapKey)
	if err != nil {
		client.Kill()
		return nil, fmt.Errorf("dispense plugin: %w", err)
	}
	typed, ok := raw.(rpc.EmotionClient)
	if !ok {
		client.Kill()
		return nil, fmt.Errorf("plugin rpc client type mismatch")
	}

	return &PluginClassifier{
		client:      client,
		rpc:         typed,
		callTimeout: callTimeout,
		log:         log,
	}, nil
}

// ClassifyFrame sends the frame to the plugin
func (c *PluginClassifier) ClassifyFrame(ctx context.Context, frame Frame) Label {
	if frame.Empty() {
		return LabelNeutral
	}

	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	resp, err := c.rpc.ClassifyFrame(callCtx, &rpc.FrameRequest{
		Width:  int32(frame.Width),
		Height: int32(frame.Height),
		Pixels: frame.Pixels,
	})
	if err != nil {
		c.log.Warn("frame classification failed", "error", err)
		return LabelNeutral
	}
	return c.accept(Label(resp.Label), FrameLabels, "frame")
}

// ClassifyAudio sends the clip to the plugin
func (c *PluginClassifier) ClassifyAudio(ctx context.Context, samples []float32, sampleRate int) Label {
	if len(samples) == 0 || sampleRate <= 0 {
		return LabelNeutral
	}

	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	resp, err := c.rpc.ClassifyAudio(callCtx, &rpc.AudioRequest{
		Samples:    samples,
		SampleRate: int32(sampleRate),
	})
	if err != nil {
		c.log.Warn("audio classification failed", "error", err)
		return LabelNeutral
	}
	return c.accept(Label(resp.Label), AudioLabels, "audio")
}

// Close stops the plugin process
func (c *PluginClassifier) Close() error {
	if c.client != nil {
		c.client.Kill()
	}
	return nil
}

func (c *PluginClassifier) accept(label Label, set []Label, kind string) Label {
	normalized, ok := normalizeLabel(label, set)
	if !ok {
		c.log.Warn("plugin returned unknown label", "kind", kind, "label", label)
	}
	return normalized
}

func (c *PluginClassifier) callContext(parent context.Context) (context.Context, context.CancelFunc) {
	if _, ok := parent.Deadline(); ok {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, c.callTimeout)
}
