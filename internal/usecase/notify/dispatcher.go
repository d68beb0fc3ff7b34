// Package notify renders deadline alerts and the daily digest and delivers
// them to their recipients.
package notify

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ShashankMk031/ZenAI-AI-Backend/internal/domain/entities"
)

const (
	reasonNoRecipient = "no recipient"
	reasonDuplicate   = "already sent today"
)

// Transport sends one rendered message to one recipient
type Transport interface {
	Send(ctx context.Context, recipient, subject, htmlBody, textBody string) error
}

// Deduper claims a key the first time it is seen. Claim returns false when
// the key was already claimed. Release frees a claim so it can be retried.
type Deduper interface {
	Claim(ctx context.Context, key string) (bool, error)
	Release(ctx context.Context, key string) error
}

// UnknownKindError is returned when rendering an unsupported notification kind
type UnknownKindError struct {
	Kind entities.NotificationKind
}

func (e *UnknownKindError) Error() string {
	return fmt.Sprintf("unknown notification kind %q", e.Kind)
}

// MissingTaskError is returned when an alert has no task attached
type MissingTaskError struct {
	Kind entities.NotificationKind
}

func (e *MissingTaskError) Error() string {
	return fmt.Sprintf("%s notification has no task", e.Kind)
}

// Options configure recipient routing
type Options struct {
	DefaultRecipient string
	DigestRecipients []string
	Concurrency      int
}

// Dispatcher resolves recipients and sends notifications
type Dispatcher struct {
	transport Transport
	dedup     Deduper
	renderer  *renderer
	opts      Options
	logger    *zap.Logger
}

// NewDispatcher creates a notification dispatcher. dedup may be nil.
func NewDispatcher(transport Transport, dedup Deduper, opts Options, logger *zap.Logger) *Dispatcher {
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	return &Dispatcher{
		transport: transport,
		dedup:     dedup,
		renderer:  newRenderer(),
		opts:      opts,
		logger:    logger,
	}
}

// Render produces the subject and bodies for n without sending anything
func (d *Dispatcher) Render(n entities.Notification) (entities.Message, error) {
	return d.renderer.render(n)
}

// Dispatch renders n and sends it to each of its recipients
func (d *Dispatcher) Dispatch(ctx context.Context, n entities.Notification) entities.DispatchResult {
	return d.DispatchBatch(ctx, []entities.Notification{n})
}

// job is one notification bound to one recipient
type job struct {
	n         entities.Notification
	msg       entities.Message
	recipient string
}

// DispatchBatch sends every notification. A failure for one recipient never
// stops the others. After ctx is done no new send starts; sends in flight
// finish, and only attempted deliveries are reported.
func (d *Dispatcher) DispatchBatch(ctx context.Context, notifications []entities.Notification) entities.DispatchResult {
	result := entities.DispatchResult{Deliveries: make([]entities.Delivery, 0, len(notifications))}

	var jobs []job
	for _, n := range notifications {
		msg, err := d.renderer.render(n)
		if err != nil {
			if d.logger != nil {
				d.logger.Error("❌ Failed to render notification", zap.String("kind", string(n.Kind)), zap.Error(err))
			}
			result.Add(entities.Delivery{Kind: n.Kind, TaskID: taskID(n), Status: entities.DeliveryFailed, Reason: err.Error()})
			continue
		}

		recipients := d.recipients(n)
		if len(recipients) == 0 {
			if d.logger != nil {
				d.logger.Warn("⚠️ No recipient for notification",
					zap.String("kind", string(n.Kind)),
					zap.String("task_id", taskID(n)),
				)
			}
			result.Add(entities.Delivery{Kind: n.Kind, TaskID: taskID(n), Status: entities.DeliverySkipped, Reason: reasonNoRecipient})
			continue
		}
		for _, r := range recipients {
			jobs = append(jobs, job{n: n, msg: msg, recipient: r})
		}
	}

	slots := make([]*entities.Delivery, len(jobs))
	g := new(errgroup.Group)
	g.SetLimit(d.opts.Concurrency)
	for i := range jobs {
		if ctx.Err() != nil {
			break
		}
		j := jobs[i]
		sendCtx := context.WithoutCancel(ctx)
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			delivery := d.deliver(sendCtx, j)
			slots[i] = &delivery
			return nil
		})
	}
	_ = g.Wait()

	for _, s := range slots {
		if s != nil {
			result.Add(*s)
		}
	}

	if d.logger != nil {
		d.logger.Info("📨 Notifications dispatched",
			zap.Int("sent", result.Sent),
			zap.Int("skipped", result.Skipped),
			zap.Int("failed", result.Failed),
		)
	}
	return result
}

func (d *Dispatcher) deliver(ctx context.Context, j job) entities.Delivery {
	delivery := entities.Delivery{Kind: j.n.Kind, TaskID: taskID(j.n), Recipient: j.recipient}

	key := DedupKey(j.n, j.recipient)
	claimed := false
	if d.dedup != nil {
		ok, err := d.dedup.Claim(ctx, key)
		switch {
		case err != nil:
			// An unavailable dedup store must not block alerts.
			if d.logger != nil {
				d.logger.Warn("⚠️ Dedup check failed, sending anyway", zap.Error(err))
			}
		case !ok:
			delivery.Status = entities.DeliverySkipped
			delivery.Reason = reasonDuplicate
			return delivery
		default:
			claimed = true
		}
	}

	if err := d.transport.Send(ctx, j.recipient, j.msg.Subject, j.msg.HTMLBody, j.msg.TextBody); err != nil {
		delivery.Status = entities.DeliveryFailed
		delivery.Reason = err.Error()
		// A failed send must stay eligible for the next run.
		if claimed {
			if rerr := d.dedup.Release(ctx, key); rerr != nil && d.logger != nil {
				d.logger.Warn("⚠️ Failed to release dedup claim", zap.String("key", key), zap.Error(rerr))
			}
		}
		return delivery
	}
	delivery.Status = entities.DeliverySent
	return delivery
}

// recipients returns the addresses n should go to: the assignee email,
// then the default recipient. The digest goes to the digest list.
func (d *Dispatcher) recipients(n entities.Notification) []string {
	if n.Kind == entities.NotificationDailyDigest {
		out := make([]string, 0, len(d.opts.DigestRecipients))
		for _, r := range d.opts.DigestRecipients {
			if r = strings.TrimSpace(r); r != "" {
				out = append(out, r)
			}
		}
		if len(out) == 0 && d.opts.DefaultRecipient != "" {
			out = append(out, d.opts.DefaultRecipient)
		}
		return out
	}

	if n.Task != nil && n.Task.AssigneeEmail != nil && strings.TrimSpace(*n.Task.AssigneeEmail) != "" {
		return []string{strings.TrimSpace(*n.Task.AssigneeEmail)}
	}
	if d.opts.DefaultRecipient != "" {
		return []string{d.opts.DefaultRecipient}
	}
	return nil
}

// PlanAlerts builds one overdue alert per overdue task and one reminder per
// at-risk task, in report order.
func PlanAlerts(report *entities.MonitorReport) []entities.Notification {
	if report == nil {
		return nil
	}
	out := make([]entities.Notification, 0, len(report.Overdue)+len(report.AtRisk))
	for i := range report.Overdue {
		t := report.Overdue[i]
		out = append(out, entities.Notification{Kind: entities.NotificationOverdueAlert, Date: report.ReferenceDate, Task: &t})
	}
	for i := range report.AtRisk {
		t := report.AtRisk[i]
		out = append(out, entities.Notification{Kind: entities.NotificationAtRiskReminder, Date: report.ReferenceDate, Task: &t})
	}
	return out
}

// DedupKey identifies one notification for one recipient on one day. The
// digest has no task and is keyed on the recipient alone.
func DedupKey(n entities.Notification, recipient string) string {
	if id := taskID(n); id != "" {
		return fmt.Sprintf("%s:%s:%s:%s", n.Kind, id, recipient, n.Date)
	}
	return fmt.Sprintf("%s:%s:%s", n.Kind, recipient, n.Date)
}

func taskID(n entities.Notification) string {
	if n.Task == nil {
		return ""
	}
	return n.Task.ExternalID
}
