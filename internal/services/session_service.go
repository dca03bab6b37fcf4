package services

import (
	"context"
	"strings"

	"toiletBack/internal/models"
	"toiletBack/internal/repositories"
)

type SessionService struct {
	SessionRepo *repositories.SessionRepository
	ToiletRepo  *repositories.ToiletRepository
}

// StartSession checks the visitor in.
func (s *SessionService) StartSession(ctx context.Context, userID, toiletID int, req models.SessionStartRequest) (models.UsageSession, error) {
	toilet, err := s.ToiletRepo.GetToiletByID(ctx, toiletID, nil)
	if err != nil {
		return models.UsageSession{}, err
	}
	if toilet.Status != models.StatusActive {
		return models.UsageSession{}, models.ErrToiletNotFound
	}

	startMethod := models.DefaultSessionMethod
	if req.StartMethod != nil && strings.TrimSpace(*req.StartMethod) != "" {
		startMethod = strings.TrimSpace(*req.StartMethod)
	}
	return s.SessionRepo.CreateSession(ctx, toiletID, userID, startMethod)
}

// EndSession checks the visitor out. The checks run in a fixed order so
// the error never leaks more than the caller is entitled to know:
// existence first, then ownership, then the already-ended state.
func (s *SessionService) EndSession(ctx context.Context, actor models.Claims, toiletID, sessionID int, req models.SessionEndRequest) (models.UsageSession, error) {
	session, err := s.SessionRepo.GetSessionForToilet(ctx, sessionID, toiletID)
	if err != nil {
		return models.UsageSession{}, err
	}
	if session.UserID != actor.UserID && actor.Role != "admin" {
		return models.UsageSession{}, models.ErrForbidden
	}
	if session.EndedAt != nil {
		return models.UsageSession{}, models.ErrSessionEnded
	}

	if req.ChargeCents != nil && *req.ChargeCents < 0 {
		v := models.NewValidationError()
		v.Add("charge_cents", "must be zero or positive")
		return models.UsageSession{}, v
	}
	endMethod := models.DefaultSessionMethod
	if req.EndMethod != nil && strings.TrimSpace(*req.EndMethod) != "" {
		endMethod = strings.TrimSpace(*req.EndMethod)
	}
	return s.SessionRepo.EndSession(ctx, sessionID, endMethod, req.ChargeCents)
}

// ListMySessions returns the caller's visit history with the listings
// joined in for display.
func (s *SessionService) ListMySessions(ctx context.Context, userID, page, perPage int) ([]models.UsageSession, models.SearchMeta, error) {
	limit, offset := pageWindow(page, perPage, 20)
	sessions, total, err := s.SessionRepo.ListSessionsByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, models.SearchMeta{}, err
	}
	if sessions == nil {
		sessions = []models.UsageSession{}
	}

	if err := s.attachToilets(ctx, sessions); err != nil {
		return nil, models.SearchMeta{}, err
	}

	meta := models.SearchMeta{Page: pageOf(page), PerPage: perPageOf(perPage, 20, 100), Total: total}
	return sessions, meta, nil
}

// attachToilets joins the page's listings in with one batched fetch.
// Sessions pointing at a deleted listing keep a nil Toilet.
func (s *SessionService) attachToilets(ctx context.Context, sessions []models.UsageSession) error {
	ids := sessionToiletIDs(sessions)
	if len(ids) == 0 {
		return nil
	}

	toilets, err := s.ToiletRepo.GetToiletsByIDs(ctx, ids)
	if err != nil {
		return err
	}
	for i := range sessions {
		if toilet, ok := toilets[sessions[i].ToiletID]; ok {
			t := toilet
			sessions[i].Toilet = &t
		}
	}
	return nil
}

func sessionToiletIDs(sessions []models.UsageSession) []int {
	seen := make(map[int]bool, len(sessions))
	var ids []int
	for i := range sessions {
		if id := sessions[i].ToiletID; !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids
}
