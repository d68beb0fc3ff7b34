package entities

// TaskStatus is the workflow state of a task in the external store
type TaskStatus string

const (
	TaskStatusToDo       TaskStatus = "To Do"
	TaskStatusInProgress TaskStatus = "In Progress"
	TaskStatusDone       TaskStatus = "Done"
)

// SyncState records what happened when an action item was pushed to the store
type SyncState string

const (
	SyncStateCreated SyncState = "Created"
	SyncStateUpdated SyncState = "Updated"
	SyncStateFailed  SyncState = "Failed"
)

// TaskFields is the store-facing representation of one action item
type TaskFields struct {
	Name        string
	Description string
	Assignee    *string
	Priority    Priority
	Status      TaskStatus
	DueDate     *string
	MeetingDate *string
	Source      string
}

// CreatedTask is what the store returns for a newly created task
type CreatedTask struct {
	ID  string
	URL string
}

// SyncedTask links an action item to its task in the external store.
// Item is a copy; the synced task does not own the action item.
type SyncedTask struct {
	ExternalID string     `json:"external_id,omitempty"`
	Item       ActionItem `json:"action_item"`
	Status     TaskStatus `json:"status"`
	SyncState  SyncState  `json:"sync_state"`
	URL        *string    `json:"url,omitempty"`
	Error      *string    `json:"error,omitempty"`
}

// SyncResult aggregates one synchronization batch.
// Total counts attempted items only; NotAttempted counts items skipped
// because the batch was cancelled before they started.
type SyncResult struct {
	Total        int          `json:"total"`
	Successful   int          `json:"successful"`
	Failed       int          `json:"failed"`
	NotAttempted int          `json:"not_attempted,omitempty"`
	Tasks        []SyncedTask `json:"tasks"`
}

// StoreTask is a row returned by the task store when querying open tasks
type StoreTask struct {
	ID            string
	Title         string
	AssigneeName  string
	AssigneeEmail *string
	DueDate       *string
	Status        TaskStatus
	Priority      string
	URL           string
}

// TaskSnapshot is a read-only view of a store task at a reference date.
// At most one of DaysOverdue and DaysUntilDue is set.
type TaskSnapshot struct {
	ExternalID    string     `json:"external_id"`
	Title         string     `json:"title"`
	AssigneeName  string     `json:"assignee"`
	AssigneeEmail *string    `json:"assignee_email,omitempty"`
	DueDate       *string    `json:"due_date,omitempty"`
	Status        TaskStatus `json:"status"`
	Priority      string     `json:"priority,omitempty"`
	URL           string     `json:"url,omitempty"`
	DaysOverdue   *int       `json:"days_overdue,omitempty"`
	DaysUntilDue  *int       `json:"days_until_due,omitempty"`
}

// MonitorReport is the classification of open tasks at a reference date
type MonitorReport struct {
	ReferenceDate string         `json:"reference_date"`
	Overdue       []TaskSnapshot `json:"overdue"`
	AtRisk        []TaskSnapshot `json:"at_risk"`
	Open          []TaskSnapshot `json:"open"`
}
