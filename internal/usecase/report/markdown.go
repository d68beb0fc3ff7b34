package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ShashankMk031/ZenAI-AI-Backend/internal/domain/entities"
)

// Summarize computes the headline counts and workload of a monitor report
func Summarize(mr *entities.MonitorReport, generatedAt time.Time) entities.ReportSummary {
	s := entities.ReportSummary{
		ReferenceDate: mr.ReferenceDate,
		TotalOpen:     len(mr.Open),
		Overdue:       len(mr.Overdue),
		AtRisk:        len(mr.AtRisk),
		Workload:      make([]entities.WorkloadEntry, 0),
		GeneratedAt:   generatedAt.UTC(),
	}

	counts := make(map[string]int)
	for _, t := range mr.Open {
		switch t.Status {
		case entities.TaskStatusInProgress:
			s.InProgress++
		case entities.TaskStatusToDo:
			s.ToDo++
		}
		name := t.AssigneeName
		if strings.TrimSpace(name) == "" {
			name = "Unassigned"
		}
		counts[name]++
	}
	s.OnTrack = s.TotalOpen - s.Overdue - s.AtRisk

	for name, n := range counts {
		s.Workload = append(s.Workload, entities.WorkloadEntry{Assignee: name, ActiveTasks: n})
	}
	sort.Slice(s.Workload, func(i, j int) bool {
		if s.Workload[i].ActiveTasks != s.Workload[j].ActiveTasks {
			return s.Workload[i].ActiveTasks > s.Workload[j].ActiveTasks
		}
		return s.Workload[i].Assignee < s.Workload[j].Assignee
	})
	return s
}

// RenderMarkdown writes the daily report for mr at ref
func RenderMarkdown(mr *entities.MonitorReport, summary entities.ReportSummary, ref time.Time) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Daily Project Report - %s\n\n", ref.Format("Monday, January 02, 2006"))

	b.WriteString("## Summary\n\n")
	fmt.Fprintf(&b, "- **Open Tasks**: %d\n", summary.TotalOpen)
	fmt.Fprintf(&b, "- **In Progress**: %d\n", summary.InProgress)
	fmt.Fprintf(&b, "- **To Do**: %d\n", summary.ToDo)
	fmt.Fprintf(&b, "- **Overdue**: %d\n", summary.Overdue)
	fmt.Fprintf(&b, "- **At Risk**: %d\n", summary.AtRisk)
	fmt.Fprintf(&b, "- **On Track**: %d\n\n", summary.OnTrack)

	fmt.Fprintf(&b, "## Overdue Tasks (%d)\n\n", len(mr.Overdue))
	if len(mr.Overdue) == 0 {
		b.WriteString("- No overdue tasks!\n")
	}
	for _, t := range mr.Overdue {
		fmt.Fprintf(&b, "- **%s** (%s) - %s overdue\n", t.Title, assignee(t), days(*t.DaysOverdue))
	}

	fmt.Fprintf(&b, "\n## At-Risk Tasks (%d)\n\n", len(mr.AtRisk))
	if len(mr.AtRisk) == 0 {
		b.WriteString("- No at-risk tasks\n")
	}
	for _, t := range mr.AtRisk {
		if *t.DaysUntilDue == 0 {
			fmt.Fprintf(&b, "- **%s** (%s) - due today\n", t.Title, assignee(t))
			continue
		}
		fmt.Fprintf(&b, "- **%s** (%s) - due in %s\n", t.Title, assignee(t), days(*t.DaysUntilDue))
	}

	b.WriteString("\n## Team Workload\n\n")
	if len(summary.Workload) == 0 {
		b.WriteString("- No active tasks\n")
	}
	for _, w := range summary.Workload {
		noun := "active tasks"
		if w.ActiveTasks == 1 {
			noun = "active task"
		}
		fmt.Fprintf(&b, "- **%s**: %d %s\n", w.Assignee, w.ActiveTasks, noun)
	}

	return b.String()
}

func assignee(t entities.TaskSnapshot) string {
	if strings.TrimSpace(t.AssigneeName) == "" {
		return "Unassigned"
	}
	return t.AssigneeName
}

func days(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}
