// Package notify delivers order events to the external automation webhook.
//
// Deliveries run on a protoactor actor so callers never wait on the network.
// Nothing is retried: a failed post is logged and dropped.
package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/asynkron/protoactor-go/actor"
	"go.uber.org/zap"
)

type poster interface {
	Post(ctx context.Context, payload interface{}) error
}

type deliver struct {
	Payload interface{}
}

type webhookActor struct {
	client  poster
	timeout time.Duration
	logger  *zap.Logger
}

func (a *webhookActor) Receive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *deliver:
		postCtx, cancel := context.WithTimeout(context.Background(), a.timeout)
		defer cancel()

		if err := a.client.Post(postCtx, msg.Payload); err != nil {
			a.logger.Error("Webhook delivery failed",
				zap.String("payload", fmt.Sprintf("%T", msg.Payload)),
				zap.Error(err))
			return
		}
		a.logger.Debug("Webhook delivered", zap.String("payload", fmt.Sprintf("%T", msg.Payload)))

	case *actor.Started:
		a.logger.Info("Webhook actor started")

	case *actor.Stopped:
		a.logger.Info("Webhook actor stopped")
	}
}

// Notifier hands payloads to the webhook actor. A nil *Notifier or one built
// without a client drops everything.
type Notifier struct {
	system *actor.ActorSystem
	pid    *actor.PID
}

func NewNotifier(client poster, timeout time.Duration, logger *zap.Logger) (*Notifier, error) {
	system := actor.NewActorSystem()
	props := actor.PropsFromProducer(func() actor.Actor {
		return &webhookActor{client: client, timeout: timeout, logger: logger.Named("webhook-actor")}
	})
	pid, err := system.Root.SpawnNamed(props, "webhook-actor")
	if err != nil {
		return nil, fmt.Errorf("failed to spawn webhook actor: %w", err)
	}
	return &Notifier{system: system, pid: pid}, nil
}

// Disabled returns a Notifier that drops every payload.
func Disabled() *Notifier {
	return &Notifier{}
}

// Notify queues payload for delivery and returns immediately.
func (n *Notifier) Notify(payload interface{}) {
	if n == nil || n.pid == nil {
		return
	}
	n.system.Root.Send(n.pid, &deliver{Payload: payload})
}

// Stop lets the actor drain its mailbox, then stops it.
func (n *Notifier) Stop() {
	if n == nil || n.pid == nil {
		return
	}
	_ = n.system.Root.PoisonFuture(n.pid).Wait()
	n.system.Shutdown()
}
