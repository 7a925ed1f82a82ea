package main

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"

	"github.com/hashicorp/go-plugin"

	notifyrpc "studyhub/internal/modules/notify/adapter/out/rpc"
)

type server struct{}

// backend returns the desktop notification command available on this host.
func backend() (string, bool) {
	switch runtime.GOOS {
	case "darwin":
		path, err := exec.LookPath("osascript")
		return path, err == nil
	default:
		path, err := exec.LookPath("notify-send")
		return path, err == nil
	}
}

func (s *server) RequestPermission(_ context.Context, _ *notifyrpc.Empty) (*notifyrpc.PermissionResponse, error) {
	path, ok := backend()
	return &notifyrpc.PermissionResponse{Granted: ok, Backend: path}, nil
}

func (s *server) Notify(ctx context.Context, in *notifyrpc.NotifyRequest) (*notifyrpc.Empty, error) {
	path, ok := backend()
	if !ok {
		return nil, fmt.Errorf("no desktop notification backend")
	}
	var cmd *exec.Cmd
	if runtime.GOOS == "darwin" {
		script := fmt.Sprintf("display notification %q with title %q", in.Body, in.Title)
		cmd = exec.CommandContext(ctx, path, "-e", script)
	} else {
		cmd = exec.CommandContext(ctx, path, "--app-name=studyhub", in.Title, in.Body)
	}
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("%s: %w: %s", path, err, out)
	}
	return &notifyrpc.Empty{}, nil
}

func main() {
	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: notifyrpc.HandshakeConfig,
		Plugins:         notifyrpc.PluginMap(&server{}),
		GRPCServer:      plugin.DefaultGRPCServer,
	})
}
