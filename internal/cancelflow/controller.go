// Package cancelflow drives the chat protocol that deletes services by
// patient name: search, numbered candidates, selection, deletion.
package cancelflow

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	domain "github.com/BruksfildServices01/pharma-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/pharma-scheduler/internal/httperr"
	"github.com/BruksfildServices01/pharma-scheduler/internal/messages"
	"github.com/BruksfildServices01/pharma-scheduler/internal/models"
	usecase "github.com/BruksfildServices01/pharma-scheduler/internal/usecase/appointment"
)

type Searcher interface {
	SearchByNameAllStatuses(ctx context.Context, name string) ([]models.Appointment, error)
}

type Deleter interface {
	Batch(ctx context.Context, ids []string) usecase.BatchResult
}

// Reply is the outcome of one chat turn. Applicable is false when the text
// is not part of a deletion and should be routed elsewhere.
type Reply struct {
	Applicable bool                 `json:"applicable"`
	State      State                `json:"state"`
	Text       string               `json:"text,omitempty"`
	Candidates []models.Appointment `json:"candidates,omitempty"`
	Deleted    []models.Appointment `json:"deleted,omitempty"`
	Errors     []usecase.ItemError  `json:"errors,omitempty"`
}

type Controller struct {
	search   Searcher
	deleter  Deleter
	sessions SessionStore
	log      zerolog.Logger
}

func NewController(
	search Searcher,
	deleter Deleter,
	sessions SessionStore,
	log zerolog.Logger,
) *Controller {
	return &Controller{
		search:   search,
		deleter:  deleter,
		sessions: sessions,
		log:      log.With().Str("component", "cancelflow").Logger(),
	}
}

// Handle processes one user turn of the session.
func (c *Controller) Handle(ctx context.Context, sessionID, text string) (Reply, error) {
	sess, err := c.sessions.Load(ctx, sessionID)
	if err != nil {
		return Reply{}, err
	}

	if sess != nil && sess.State == StateAwaitingSelection {
		return c.handleSelection(ctx, sessionID, sess, text)
	}
	return c.handleIdle(ctx, sessionID, text)
}

// -----------------------------------------------------
// Idle
// -----------------------------------------------------

func (c *Controller) handleIdle(ctx context.Context, sessionID, text string) (Reply, error) {
	if !IsCancelIntent(text) {
		return Reply{Applicable: false, State: StateIdle}, nil
	}

	name := ExtractPatientName(text)
	if name == "" {
		return Reply{Applicable: true, State: StateIdle, Text: messages.AskForName()}, nil
	}

	return c.startSearch(ctx, sessionID, name)
}

func (c *Controller) startSearch(ctx context.Context, sessionID, name string) (Reply, error) {
	candidates, err := c.search.SearchByNameAllStatuses(ctx, name)
	if err != nil {
		return Reply{}, err
	}

	c.log.Info().Str("session", sessionID).Str("name", name).Int("candidates", len(candidates)).Msg("deletion search")

	if len(candidates) == 0 {
		if err := c.sessions.Clear(ctx, sessionID); err != nil {
			return Reply{}, err
		}
		return Reply{Applicable: true, State: StateIdle, Text: messages.NoCandidates(name)}, nil
	}

	sess := &Session{
		State:       StateAwaitingSelection,
		PatientName: name,
		Candidates:  candidates,
	}
	if err := c.sessions.Save(ctx, sessionID, sess); err != nil {
		return Reply{}, err
	}

	return Reply{
		Applicable: true,
		State:      StateAwaitingSelection,
		Text:       messages.Candidates(name, candidates),
		Candidates: candidates,
	}, nil
}

// -----------------------------------------------------
// Awaiting selection
// -----------------------------------------------------

func (c *Controller) handleSelection(
	ctx context.Context,
	sessionID string,
	sess *Session,
	text string,
) (Reply, error) {

	if len(sess.Candidates) == 0 {
		if err := c.sessions.Clear(ctx, sessionID); err != nil {
			return Reply{}, err
		}
		return Reply{Applicable: true, State: StateIdle, Text: messages.NoActiveList()}, nil
	}

	if IsAbort(text) {
		if err := c.sessions.Clear(ctx, sessionID); err != nil {
			return Reply{}, err
		}
		return Reply{Applicable: true, State: StateIdle, Text: messages.Aborted()}, nil
	}

	selected := ParseSelection(text, len(sess.Candidates))
	if len(selected) == 0 {
		// A fresh request for another patient replaces the pending list.
		if IsCancelIntent(text) && !digits.MatchString(text) {
			if name := ExtractPatientName(text); name != "" {
				return c.startSearch(ctx, sessionID, name)
			}
		}

		// refresh the expiry while the user is still answering
		if err := c.sessions.Save(ctx, sessionID, sess); err != nil {
			return Reply{}, err
		}
		return Reply{
			Applicable: true,
			State:      StateAwaitingSelection,
			Text:       messages.InvalidSelection(),
			Candidates: sess.Candidates,
		}, nil
	}

	// blank ids are kept so the batch reports them per item
	ids := make([]string, 0, len(selected))
	for _, n := range selected {
		ids = append(ids, strings.TrimSpace(sess.Candidates[n-1].ServiceID))
	}

	// The list is consumed before deleting so a failure cannot replay it.
	if err := c.sessions.Clear(ctx, sessionID); err != nil {
		return Reply{}, err
	}

	res := c.deleter.Batch(ctx, ids)

	lines := make([]string, 0, len(res.Errors))
	for _, e := range res.Errors {
		lines = append(lines, errorLine(e))
	}

	c.log.Info().
		Str("session", sessionID).
		Int("requested", res.Requested).
		Int("deleted", len(res.Deleted)).
		Int("errors", len(res.Errors)).
		Msg("deletion by name finished")

	return Reply{
		Applicable: true,
		State:      StateIdle,
		Text:       messages.Deleted(len(res.Deleted), lines),
		Deleted:    res.Deleted,
		Errors:     res.Errors,
	}, nil
}

func errorLine(e usecase.ItemError) string {
	label := e.ServiceID
	if label == "" {
		label = "(sin ID)"
	}

	var ve *httperr.ValidationError
	switch {
	case errors.Is(e.Err, domain.ErrStoreLocked):
		return fmt.Sprintf("%s: %s", label, messages.StoreLocked)
	case errors.Is(e.Err, domain.ErrStoreConflict):
		return fmt.Sprintf("%s: %s", label, messages.Conflict)
	case errors.Is(e.Err, domain.ErrNotFound):
		return fmt.Sprintf("%s: no se encontró el servicio", label)
	case errors.Is(e.Err, domain.ErrStore):
		return fmt.Sprintf("%s: %s", label, messages.StoreFailed)
	case errors.As(e.Err, &ve):
		return fmt.Sprintf("%s: %s", label, ve.Message)
	default:
		return fmt.Sprintf("%s: %s", label, e.Message)
	}
}
