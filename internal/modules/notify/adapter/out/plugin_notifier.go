package out

import (
	"context"
	"fmt"
	"os/exec"
	"time"

	hclog "github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-plugin"

	notifyrpc "studyhub/internal/modules/notify/adapter/out/rpc"
	"studyhub/internal/modules/notify/domain"
	notifyout "studyhub/internal/modules/notify/port/out"
	"studyhub/internal/platform/logging"
)

const (
	defaultStartTimeout = 3 * time.Second
	defaultCallTimeout  = 5 * time.Second
)

// PluginNotifier delivers notifications through an external go-plugin
// binary. The plugin process lives only for the duration of one call.
type PluginNotifier struct {
	binary string
	logger hclog.Logger
}

func NewPluginNotifier(binary string, logger hclog.Logger) notifyout.Notifier {
	return &PluginNotifier{binary: binary, logger: logging.OrDiscard(logger).Named("notify-plugin")}
}

func (n *PluginNotifier) RequestPermission(ctx context.Context) (bool, error) {
	client, closeFn, err := n.connect()
	if err != nil {
		return false, err
	}
	defer closeFn()

	callCtx, cancel := callContext(ctx, defaultCallTimeout)
	defer cancel()
	response, err := client.RequestPermission(callCtx)
	if err != nil {
		return false, fmt.Errorf("request permission: %w", err)
	}
	n.logger.Debug("plugin permission", "granted", response.Granted, "backend", response.Backend)
	return response.Granted, nil
}

func (n *PluginNotifier) Notify(ctx context.Context, msg domain.Notification) error {
	client, closeFn, err := n.connect()
	if err != nil {
		return err
	}
	defer closeFn()

	callCtx, cancel := callContext(ctx, defaultCallTimeout)
	defer cancel()
	if err := client.Notify(callCtx, &notifyrpc.NotifyRequest{Title: msg.Title, Body: msg.Body}); err != nil {
		return fmt.Errorf("notify: %w", err)
	}
	return nil
}

func (n *PluginNotifier) connect() (notifyrpc.NotifierClient, func(), error) {
	client := plugin.NewClient(&plugin.ClientConfig{
		HandshakeConfig:  notifyrpc.HandshakeConfig,
		AllowedProtocols: []plugin.Protocol{plugin.ProtocolGRPC},
		Plugins:          notifyrpc.PluginMap(nil),
		Cmd:              exec.Command(n.binary),
		Managed:          true,
		StartTimeout:     defaultStartTimeout,
		Logger:           n.logger,
	})
	closeFn := func() { client.Kill() }

	rpcClient, err := client.Client()
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("start notifier plugin: %w", err)
	}
	raw, err := rpcClient.Dispense(notifyrpc.PluginMapKey)
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("dispense notifier plugin: %w", err)
	}
	typed, ok := raw.(notifyrpc.NotifierClient)
	if !ok {
		closeFn()
		return nil, nil, fmt.Errorf("notifier rpc client type mismatch")
	}
	return typed, closeFn, nil
}

func callContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := parent.Deadline(); ok {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, timeout)
}
