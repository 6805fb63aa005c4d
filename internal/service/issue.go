package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/propmate/propmate/internal/adapter/fixmate"
	"github.com/propmate/propmate/internal/adapter/otel"
	"github.com/propmate/propmate/internal/adapter/ws"
	"github.com/propmate/propmate/internal/config"
	"github.com/propmate/propmate/internal/domain/issue"
	"github.com/propmate/propmate/internal/port/directory"
)

// Detail is the full issue view: the issue, its conversation, and the agent
// audit log, fetched together.
type Detail struct {
	Issue    *issue.Issue     `json:"issue"`
	Messages []issue.Message  `json:"messages"`
	Activity []issue.Activity `json:"activity"`
}

// IssueService handles single-issue operations: detail fetches, mutations,
// and the per-issue watch loop.
type IssueService struct {
	client      *fixmate.Client
	store       directory.Store
	queue       *QueueService
	hub         *ws.Hub
	log         *slog.Logger
	orgID       string
	settleDelay time.Duration
	interval    time.Duration
}

// NewIssueService creates an IssueService.
func NewIssueService(client *fixmate.Client, store directory.Store, queue *QueueService, hub *ws.Hub, cfg config.Config, log *slog.Logger) *IssueService {
	if log == nil {
		log = slog.Default()
	}
	return &IssueService{
		client:      client,
		store:       store,
		queue:       queue,
		hub:         hub,
		log:         log,
		orgID:       cfg.Upstream.OrgID,
		settleDelay: cfg.Poll.SettleDelay,
		interval:    cfg.Poll.DetailInterval,
	}
}

// Detail fetches the issue, its messages, and its activity concurrently.
// Any one failure fails the whole fetch.
func (s *IssueService) Detail(ctx context.Context, issueID int) (*Detail, error) {
	ctx, span := otel.StartDetailSpan(ctx, issueID)
	defer span.End()

	var d Detail
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		is, err := s.client.GetIssue(gctx, issueID)
		if err != nil {
			return err
		}
		d.Issue = is
		return nil
	})
	g.Go(func() error {
		msgs, err := s.client.Messages(gctx, issueID)
		if err != nil {
			return err
		}
		d.Messages = msgs
		return nil
	})
	g.Go(func() error {
		acts, err := s.client.Activity(gctx, issueID)
		if err != nil {
			return err
		}
		d.Activity = acts
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &d, nil
}

// Create reports an issue on a tenant's behalf. Manager-created issues skip
// automated triage.
func (s *IssueService) Create(ctx context.Context, req fixmate.CreateIssueRequest) (*fixmate.CreateIssueResponse, error) {
	req.SkipAgent = true
	resp, err := s.client.CreateIssue(ctx, req)
	if err != nil {
		return nil, err
	}
	s.afterMutation(ctx, resp.ID, "created")
	return resp, nil
}

// SendMessage posts a conversation turn and, after a short settle delay
// that gives the remote agent a moment to react, returns the refreshed
// conversation.
func (s *IssueService) SendMessage(ctx context.Context, issueID int, content, role string) ([]issue.Message, error) {
	if _, err := s.client.SendMessage(ctx, issueID, content, role); err != nil {
		return nil, err
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(s.settleDelay):
	}

	msgs, err := s.client.Messages(ctx, issueID)
	if err != nil {
		return nil, fmt.Errorf("refetch after send: %w", err)
	}
	return msgs, nil
}

// Assign looks up the contractor in the directory and records their display
// name on the issue upstream.
func (s *IssueService) Assign(ctx context.Context, issueID int, contractorID string) (*fixmate.Ack, error) {
	c, err := s.store.GetContractor(ctx, s.orgID, contractorID)
	if err != nil {
		return nil, fmt.Errorf("assign issue %d: %w", issueID, err)
	}
	ack, err := s.client.Assign(ctx, issueID, c.DisplayName())
	if err != nil {
		return nil, err
	}
	s.afterMutation(ctx, issueID, "assigned_to")
	return ack, nil
}

// AssignName records a free-text assignee, for tradespeople not in the
// directory.
func (s *IssueService) AssignName(ctx context.Context, issueID int, assignedTo string) (*fixmate.Ack, error) {
	ack, err := s.client.Assign(ctx, issueID, assignedTo)
	if err != nil {
		return nil, err
	}
	s.afterMutation(ctx, issueID, "assigned_to")
	return ack, nil
}

// Close closes a resolved issue.
func (s *IssueService) Close(ctx context.Context, issueID int) error {
	if err := s.client.Close(ctx, issueID); err != nil {
		return err
	}
	s.afterMutation(ctx, issueID, "status")
	return nil
}

// UpdateStatus sets the issue's lifecycle status.
func (s *IssueService) UpdateStatus(ctx context.Context, issueID int, status issue.Status) error {
	if err := s.client.UpdateStatus(ctx, issueID, status); err != nil {
		return err
	}
	s.afterMutation(ctx, issueID, "status")
	return nil
}

// UpdatePriority sets the issue's priority.
func (s *IssueService) UpdatePriority(ctx context.Context, issueID int, priority issue.Priority) error {
	if err := s.client.UpdatePriority(ctx, issueID, priority); err != nil {
		return err
	}
	s.afterMutation(ctx, issueID, "priority")
	return nil
}

// UpdateNotes sets the manager's private notes.
func (s *IssueService) UpdateNotes(ctx context.Context, issueID int, notes string) error {
	if err := s.client.UpdateNotes(ctx, issueID, notes); err != nil {
		return err
	}
	s.afterMutation(ctx, issueID, "pm_notes")
	return nil
}

// MuteAgent toggles automated responses on the issue.
func (s *IssueService) MuteAgent(ctx context.Context, issueID int, muted bool) error {
	if err := s.client.MuteAgent(ctx, issueID, muted); err != nil {
		return err
	}
	if s.hub != nil {
		s.hub.BroadcastEvent(ctx, s.orgID, ws.EventAgentStatus, ws.AgentStatusEvent{
			IssueID: issueID,
			Muted:   muted,
		})
	}
	return nil
}

// AgentStatus reads whether automated responses are muted.
func (s *IssueService) AgentStatus(ctx context.Context, issueID int) (bool, error) {
	return s.client.AgentStatus(ctx, issueID)
}

// Watch polls the issue detail on the configured cadence and broadcasts an
// activity event whenever new audit entries appear. It returns a stop
// function; the loop also ends when ctx is canceled.
func (s *IssueService) Watch(ctx context.Context, issueID int) (stop func()) {
	ctx, cancel := context.WithCancel(ctx)

	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		var lastSeen int
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				acts, err := s.client.Activity(ctx, issueID)
				if err != nil {
					s.log.Debug("watch activity poll failed", "issue_id", issueID, "error", err)
					continue
				}
				if len(acts) > lastSeen {
					if s.hub != nil {
						s.hub.BroadcastEvent(ctx, s.orgID, ws.EventActivityLogged, ws.ActivityLoggedEvent{
							IssueID: issueID,
							Count:   len(acts) - lastSeen,
						})
					}
					lastSeen = len(acts)
				}
			}
		}
	}()

	return cancel
}

// afterMutation broadcasts the change and refreshes the queue snapshot so
// tab counts reflect the mutation without waiting for the next poll.
func (s *IssueService) afterMutation(ctx context.Context, issueID int, field string) {
	if s.hub != nil {
		s.hub.BroadcastEvent(ctx, s.orgID, ws.EventIssueUpdated, ws.IssueUpdatedEvent{
			IssueID: issueID,
			Field:   field,
		})
	}
	if s.queue != nil {
		if err := s.queue.Refresh(ctx); err != nil {
			s.log.Warn("refresh after mutation", "issue_id", issueID, "error", err)
		}
	}
}
