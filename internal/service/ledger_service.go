package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/quicksplit/internal/app"
	"github.com/mmynk/quicksplit/internal/auth"
	"github.com/mmynk/quicksplit/internal/entry"
	"github.com/mmynk/quicksplit/internal/metrics"
	"github.com/mmynk/quicksplit/internal/middleware"
	"github.com/mmynk/quicksplit/internal/storage"
	"github.com/mmynk/quicksplit/pkg/api"
)

// Ensure LedgerService implements api.LedgerServiceHandler
var _ api.LedgerServiceHandler = (*LedgerService)(nil)

// LedgerService implements the Connect LedgerService: one screen per
// session, each call applying one pure update to the session's state.
type LedgerService struct {
	store     storage.Store
	validator *entry.Validator
	formatter app.Formatter
	tokens    *auth.JWTManager
	metrics   *metrics.Metrics
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(
	store storage.Store,
	validator *entry.Validator,
	formatter app.Formatter,
	tokens *auth.JWTManager,
	m *metrics.Metrics,
) *LedgerService {
	return &LedgerService{
		store:     store,
		validator: validator,
		formatter: formatter,
		tokens:    tokens,
		metrics:   m,
	}
}

// StartSession opens a new screen with an empty ledger.
func (s *LedgerService) StartSession(ctx context.Context, req *connect.Request[api.StartSessionRequest]) (*connect.Response[api.StartSessionResponse], error) {
	state := app.New()

	sessionID, err := s.store.Create(ctx, state)
	if err != nil {
		slog.Error("StartSession failed", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	token, err := s.tokens.Generate(sessionID)
	if err != nil {
		slog.Error("StartSession: failed to issue token", "session_id", sessionID, "error", err)
		_ = s.store.Delete(ctx, sessionID)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	s.metrics.SessionsStarted.Inc()
	slog.Info("Session started", "session_id", sessionID)

	return connect.NewResponse(&api.StartSessionResponse{
		Token: token,
		View:  s.render(state),
	}), nil
}

// GetScreen returns the current screen.
func (s *LedgerService) GetScreen(ctx context.Context, req *connect.Request[api.GetScreenRequest]) (*connect.Response[api.ScreenResponse], error) {
	sessionID, err := sessionFrom(ctx)
	if err != nil {
		return nil, err
	}

	state, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, storeError("GetScreen", sessionID, err)
	}
	return s.screen(state), nil
}

// SetFields updates the item name and price fields.
func (s *LedgerService) SetFields(ctx context.Context, req *connect.Request[api.SetFieldsRequest]) (*connect.Response[api.ScreenResponse], error) {
	return s.update(ctx, "SetFields", func(st app.State) app.State {
		return applyFields(st, req.Msg.Name, req.Msg.Price)
	})
}

// SubmitItem turns the input fields into an item. A rejected entry is
// reported through Accepted, never as an error.
func (s *LedgerService) SubmitItem(ctx context.Context, req *connect.Request[api.SubmitItemRequest]) (*connect.Response[api.SubmitItemResponse], error) {
	sessionID, err := sessionFrom(ctx)
	if err != nil {
		return nil, err
	}

	var accepted bool
	state, err := s.store.Update(ctx, sessionID, func(st app.State) app.State {
		st = applyFields(st, req.Msg.Name, req.Msg.Price)
		st, accepted = app.Submit(st, s.validator)
		return st
	})
	if err != nil {
		return nil, storeError("SubmitItem", sessionID, err)
	}

	if accepted {
		s.metrics.ItemsAdded.Inc()
		slog.Debug("Item added",
			"session_id", sessionID,
			"items_count", state.Ledger.Len(),
			"total", state.Ledger.Total().String(),
		)
	} else {
		s.metrics.EntriesRejected.Inc()
	}

	return connect.NewResponse(&api.SubmitItemResponse{
		Accepted: accepted,
		View:     s.render(state),
	}), nil
}

// IncrementPeople adds a person to the split.
func (s *LedgerService) IncrementPeople(ctx context.Context, req *connect.Request[api.IncrementPeopleRequest]) (*connect.Response[api.ScreenResponse], error) {
	return s.update(ctx, "IncrementPeople", app.IncrementPeople)
}

// DecrementPeople removes a person from the split, stopping at one.
func (s *LedgerService) DecrementPeople(ctx context.Context, req *connect.Request[api.DecrementPeopleRequest]) (*connect.Response[api.ScreenResponse], error) {
	return s.update(ctx, "DecrementPeople", app.DecrementPeople)
}

// SetPeople sets the person count directly. Counts below one leave the
// count unchanged.
func (s *LedgerService) SetPeople(ctx context.Context, req *connect.Request[api.SetPeopleRequest]) (*connect.Response[api.ScreenResponse], error) {
	return s.update(ctx, "SetPeople", func(st app.State) app.State {
		return app.SetPeople(st, req.Msg.Count)
	})
}

// EndSession discards the session and its ledger.
func (s *LedgerService) EndSession(ctx context.Context, req *connect.Request[api.EndSessionRequest]) (*connect.Response[api.EndSessionResponse], error) {
	sessionID, err := sessionFrom(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.store.Delete(ctx, sessionID); err != nil {
		return nil, storeError("EndSession", sessionID, err)
	}

	s.metrics.SessionsEnded.Inc()
	slog.Info("Session ended", "session_id", sessionID)

	return connect.NewResponse(&api.EndSessionResponse{}), nil
}

func (s *LedgerService) update(ctx context.Context, op string, fn storage.UpdateFunc) (*connect.Response[api.ScreenResponse], error) {
	sessionID, err := sessionFrom(ctx)
	if err != nil {
		return nil, err
	}

	state, err := s.store.Update(ctx, sessionID, fn)
	if err != nil {
		return nil, storeError(op, sessionID, err)
	}
	return s.screen(state), nil
}

func (s *LedgerService) screen(state app.State) *connect.Response[api.ScreenResponse] {
	return connect.NewResponse(&api.ScreenResponse{
		View: s.render(state),
	})
}

// render maps the screen of a state to its wire form.
func (s *LedgerService) render(state app.State) api.View {
	v := app.Render(state, s.formatter)

	items := make([]api.ItemRow, len(v.Items))
	for i, item := range v.Items {
		items[i] = api.ItemRow{
			ID:    item.ID,
			Name:  item.Name,
			Price: item.Price,
		}
	}

	return api.View{
		Total:       v.Total,
		Items:       items,
		People:      v.People,
		SplitAmount: v.SplitAmount,
		Tiles:       v.Tiles,
		NameField:   v.NameField,
		PriceField:  v.PriceField,
	}
}

func applyFields(st app.State, name, price *string) app.State {
	if name != nil {
		st = app.SetName(st, *name)
	}
	if price != nil {
		st = app.SetPrice(st, *price)
	}
	return st
}

// sessionFrom reads the session ID placed on the context by
// middleware.RequireSession.
func sessionFrom(ctx context.Context) (string, error) {
	sessionID := middleware.GetSessionID(ctx)
	if sessionID == "" {
		return "", connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}
	return sessionID, nil
}

// storeError maps a storage error to a Connect error.
func storeError(op, sessionID string, err error) error {
	switch {
	case errors.Is(err, storage.ErrSessionNotFound):
		slog.Warn(op+": session not found", "session_id", sessionID)
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, context.Canceled):
		return connect.NewError(connect.CodeCanceled, err)
	case errors.Is(err, context.DeadlineExceeded):
		return connect.NewError(connect.CodeDeadlineExceeded, err)
	default:
		slog.Error(op+" failed", "session_id", sessionID, "error", err)
		return connect.NewError(connect.CodeInternal, fmt.Errorf("%s: %w", op, err))
	}
}
