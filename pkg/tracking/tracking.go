// Package tracking projects raw order statuses onto the four stages shown
// to buyers and follows live status changes of one order.
package tracking

import (
	"context"
	"strings"
	"time"

	"github.com/example/pizzaria/pkg/models"
)

type Stage string

const (
	StageReceived  Stage = "received"
	StagePreparing Stage = "preparing"
	StageDelivery  Stage = "delivery"
	StageDelivered Stage = "delivered"
)

func (s Stage) Label() string {
	switch s {
	case StagePreparing:
		return "Preparando"
	case StageDelivery:
		return "Saiu para Entrega"
	case StageDelivered:
		return "Entregue"
	default:
		return "Pedido Recebido"
	}
}

// Progress is the completion percentage shown on the tracking bar.
func (s Stage) Progress() int {
	switch s {
	case StagePreparing:
		return 50
	case StageDelivery:
		return 75
	case StageDelivered:
		return 100
	default:
		return 25
	}
}

var stages = map[string]Stage{
	models.StatusPending:    StageReceived,
	"pending":               StageReceived,
	models.StatusPreparing:  StagePreparing,
	models.StatusCooking:    StagePreparing,
	models.StatusReady:      StagePreparing,
	models.StatusOnTheWay:   StageDelivery,
	models.StatusOutForTrip: StageDelivery,
	models.StatusDelivered:  StageDelivered,
}

// Project maps a raw status to its stage. Unknown statuses are received.
func Project(status string) Stage {
	if s, ok := stages[strings.ToLower(strings.TrimSpace(status))]; ok {
		return s
	}
	return StageReceived
}

type Update struct {
	OrderID   string    `json:"order_id"`
	Status    string    `json:"status"`
	Stage     Stage     `json:"stage"`
	Label     string    `json:"label"`
	Progress  int       `json:"progress"`
	Cancelled bool      `json:"cancelled"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewUpdate(orderID, status string, at time.Time) Update {
	stage := Project(status)
	return Update{
		OrderID:   orderID,
		Status:    status,
		Stage:     stage,
		Label:     stage.Label(),
		Progress:  stage.Progress(),
		Cancelled: status == models.StatusCancelled,
		UpdatedAt: at,
	}
}

// Source delivers the status events published for one order. The channel
// closes when ctx ends or the returned cancel func is called.
type Source interface {
	SubscribeStatus(ctx context.Context, orderID string) (<-chan models.StatusEvent, func(), error)
}

type Projector struct {
	source Source
}

func NewProjector(source Source) *Projector {
	return &Projector{source: source}
}

// Baseline reports the status the caller shows before any update.
type Baseline func(ctx context.Context) (string, error)

// Watch subscribes to orderID and only then asks baseline for the current
// status, so a change published while the caller reads the order is still
// delivered. An update is emitted only when the raw status differs from the
// last one seen, so repeated deliveries are absorbed.
func (p *Projector) Watch(ctx context.Context, orderID string, baseline Baseline) (<-chan Update, func(), error) {
	events, cancel, err := p.source.SubscribeStatus(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}

	current, err := baseline(ctx)
	if err != nil {
		cancel()
		return nil, nil, err
	}

	out := make(chan Update)
	go func() {
		defer close(out)
		last := current
		for ev := range events {
			if ev.OrderID != orderID || ev.Status == last {
				continue
			}
			last = ev.Status
			select {
			case out <- NewUpdate(orderID, ev.Status, ev.UpdatedAt):
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, cancel, nil
}
