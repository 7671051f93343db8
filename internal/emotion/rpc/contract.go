// Package rpc is the wire contract between steady and an emotion plugin.
// Messages are plain structs carried over gRPC with a JSON codec, so no
// generated protobuf code is needed on either side.
package rpc

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hashicorp/go-plugin"
	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"
)

const (
	PluginMapKey        = "emotion"
	serviceName         = "steady.emotion.v1.EmotionClassifier"
	jsonCodecName       = "json"
	methodClassifyFrame = "/" + serviceName + "/ClassifyFrame"
	methodClassifyAudio = "/" + serviceName + "/ClassifyAudio"
)

var HandshakeConfig = plugin.HandshakeConfig{
	ProtocolVersion:  1,
	MagicCookieKey:   "STEADY_EMOTION_PLUGIN",
	MagicCookieValue: "steady-emotion",
}

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return jsonCodecName
}

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

type FrameRequest struct {
	Width  int32  `json:"width"`
	Height int32  `json:"height"`
	Pixels []byte `json:"pixels"` // 8-bit grayscale, row-major
}

type AudioRequest struct {
	Samples    []float32 `json:"samples"`
	SampleRate int32     `json:"sample_rate"`
}

type LabelResponse struct {
	Label      string  `json:"label"`
	Confidence float32 `json:"confidence"`
}

type EmotionServer interface {
	ClassifyFrame(ctx context.Context, in *FrameRequest) (*LabelResponse, error)
	ClassifyAudio(ctx context.Context, in *AudioRequest) (*LabelResponse, error)
}

type EmotionClient interface {
	ClassifyFrame(ctx context.Context, in *FrameRequest) (*LabelResponse, error)
	ClassifyAudio(ctx context.Context, in *AudioRequest) (*LabelResponse, error)
}

type emotionClient struct {
	conn grpc.ClientConnInterface
}

func NewEmotionClient(conn grpc.ClientConnInterface) EmotionClient {
	return &emotionClient{conn: conn}
}

func (c *emotionClient) ClassifyFrame(ctx context.Context, in *FrameRequest) (*LabelResponse, error) {
	out := &LabelResponse{}
	if err := c.conn.Invoke(ctx, methodClassifyFrame, in, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *emotionClient) ClassifyAudio(ctx context.Context, in *AudioRequest) (*LabelResponse, error) {
	out := &LabelResponse{}
	if err := c.conn.Invoke(ctx, methodClassifyAudio, in, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func RegisterEmotionServer(server grpc.ServiceRegistrar, impl EmotionServer) {
	server.RegisterService(&grpc.ServiceDesc{
		ServiceName: serviceName,
		HandlerType: (*EmotionServer)(nil),
		Methods: []grpc.MethodDesc{
			{
				MethodName: "ClassifyFrame",
				Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
					in := &FrameRequest{}
					if err := dec(in); err != nil {
						return nil, err
					}
					if interceptor == nil {
						return impl.ClassifyFrame(ctx, in)
					}
					info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodClassifyFrame}
					handler := func(ctx context.Context, req any) (any, error) {
						frame, ok := req.(*FrameRequest)
						if !ok {
							return nil, fmt.Errorf("invalid request type")
						}
						return impl.ClassifyFrame(ctx, frame)
					}
					return interceptor(ctx, in, info, handler)
				},
			},
			{
				MethodName: "ClassifyAudio",
				Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
					in := &AudioRequest{}
					if err := dec(in); err != nil {
						return nil, err
					}
					if interceptor == nil {
						return impl.ClassifyAudio(ctx, in)
					}
					info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodClassifyAudio}
					handler := func(ctx context.Context, req any) (any, error) {
						audio, ok := req.(*AudioRequest)
						if !ok {
							return nil, fmt.Errorf("invalid request type")
						}
						return impl.ClassifyAudio(ctx, audio)
					}
					return interceptor(ctx, in, info, handler)
				},
			},
		},
		Streams:  []grpc.StreamDesc{},
		Metadata: "emotion-rpc-v1",
	}, impl)
}

type GRPCPlugin struct {
	plugin.NetRPCUnsupportedPlugin
	Impl EmotionServer
}

func (p *GRPCPlugin) GRPCServer(_ *plugin.GRPCBroker, server *grpc.Server) error {
	RegisterEmotionServer(server, p.Impl)
	return nil
}

func (p *GRPCPlugin) GRPCClient(_ context.Context, _ *plugin.GRPCBroker, conn *grpc.ClientConn) (any, error) {
	return NewEmotionClient(conn), nil
}

func PluginMap(impl EmotionServer) map[string]plugin.Plugin {
	return map[string]plugin.Plugin{
		PluginMapKey: &GRPCPlugin{Impl: impl},
	}
}
