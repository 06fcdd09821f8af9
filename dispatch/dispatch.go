package dispatch

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/mustafamoossawi/brief-server/models"
	"github.com/mustafamoossawi/brief-server/render"
)

// Channel delivers a rendered brief somewhere. Implementations must be safe
// for concurrent use; the dispatcher runs every channel in parallel.
type Channel interface {
	// Name reports the channel identity used in delivery outcomes,
	// models.ChannelEmail or models.ChannelChat.
	Name() string

	// Deliver sends the document and its source record. A nil return means
	// the channel accepted the submission.
	Deliver(ctx context.Context, doc *render.Document, record *models.BriefRecord) error
}

// Dispatcher fans a rendered brief out to every configured channel.
type Dispatcher struct {
	channels []Channel
}

func NewDispatcher(channels ...Channel) *Dispatcher {
	return &Dispatcher{channels: channels}
}

// Dispatch delivers the document over all channels concurrently and reports
// one outcome per channel. A channel failure never cancels its siblings, so
// the chat copy still goes out when the email bounces and vice versa.
func (d *Dispatcher) Dispatch(ctx context.Context, doc *render.Document, record *models.BriefRecord) []models.DeliveryOutcome {
	outcomes := make([]models.DeliveryOutcome, len(d.channels))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	for i, ch := range d.channels {
		g.Go(func() error {
			err := ch.Deliver(gctx, doc, record)
			outcome := models.DeliveryOutcome{Channel: ch.Name(), OK: err == nil}
			if err != nil {
				outcome.ErrorDetail = err.Error()
				slog.Error("delivery failed", "channel", ch.Name(), "project", record.ProjectName, "error", err)
			} else {
				slog.Info("delivery succeeded", "channel", ch.Name(), "project", record.ProjectName)
			}
			mu.Lock()
			outcomes[i] = outcome
			mu.Unlock()
			return nil
		})
	}
	g.Wait()
	return outcomes
}

// Overall reduces per-channel outcomes to the submission verdict. Email is
// the channel of record, chat delivery is best effort and never fails a
// submission on its own.
func Overall(outcomes []models.DeliveryOutcome) (ok bool, detail string) {
	ok = true
	for _, o := range outcomes {
		if o.Channel == models.ChannelEmail && !o.OK {
			return false, o.ErrorDetail
		}
	}
	return ok, ""
}

// ChatOutcome extracts the chat channel result, nil when no chat channel ran.
func ChatOutcome(outcomes []models.DeliveryOutcome) *models.DeliveryOutcome {
	for i := range outcomes {
		if outcomes[i].Channel == models.ChannelChat {
			return &outcomes[i]
		}
	}
	return nil
}
