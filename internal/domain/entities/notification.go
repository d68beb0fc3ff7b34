package entities

// NotificationKind selects the template a notification is rendered with
type NotificationKind string

const (
	NotificationDailyDigest    NotificationKind = "daily_digest"
	NotificationOverdueAlert   NotificationKind = "overdue_alert"
	NotificationAtRiskReminder NotificationKind = "at_risk_reminder"
)

// Notification is one message to send. Alerts carry the task they are
// about; the digest carries the rendered report markdown. Date is the
// canonical reference date the notification was produced for.
type Notification struct {
	Kind          NotificationKind
	Date          string
	Task          *TaskSnapshot
	DigestSummary *ReportSummary
	DigestBody    string
}

// Message is a rendered notification
type Message struct {
	Subject  string
	HTMLBody string
	TextBody string
}

// DeliveryStatus is the outcome for a single recipient
type DeliveryStatus string

const (
	DeliverySent    DeliveryStatus = "sent"
	DeliverySkipped DeliveryStatus = "skipped"
	DeliveryFailed  DeliveryStatus = "failed"
)

// Delivery reports what happened to one notification for one recipient
type Delivery struct {
	Kind      NotificationKind `json:"kind"`
	TaskID    string           `json:"task_id,omitempty"`
	Recipient string           `json:"recipient,omitempty"`
	Status    DeliveryStatus   `json:"status"`
	Reason    string           `json:"reason,omitempty"`
}

// DispatchResult aggregates deliveries for one dispatch call
type DispatchResult struct {
	Sent       int        `json:"sent"`
	Skipped    int        `json:"skipped"`
	Failed     int        `json:"failed"`
	Deliveries []Delivery `json:"deliveries"`
}

// Add records d and bumps the matching counter
func (r *DispatchResult) Add(d Delivery) {
	switch d.Status {
	case DeliverySent:
		r.Sent++
	case DeliverySkipped:
		r.Skipped++
	case DeliveryFailed:
		r.Failed++
	}
	r.Deliveries = append(r.Deliveries, d)
}
