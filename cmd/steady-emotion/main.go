// Command steady-emotion is the reference emotion plugin. Point
// emotion.plugin in the steady config at the built binary to use it.
package main

import (
	"github.com/hashicorp/go-plugin"

	"github.com/balkashynov/steady/internal/emotion/heuristic"
	"github.com/balkashynov/steady/internal/emotion/rpc"
)

func main() {
	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: rpc.HandshakeConfig,
		Plugins:         rpc.PluginMap(heuristic.Server{}),
		GRPCServer:      plugin.DefaultGRPCServer,
	})
}
