package drawing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/vectorlab/vectorlab/backend-go/internal/db/dbgen"
	"github.com/vectorlab/vectorlab/backend-go/internal/document"
	"github.com/vectorlab/vectorlab/backend-go/internal/typeid"
)

var (
	ErrNotFound  = errors.New("drawing not found")
	ErrForbidden = errors.New("forbidden")
	ErrNotMember = errors.New("not a drawing member")
)

type Service struct {
	queries *dbgen.Queries
}

func NewService(queries *dbgen.Queries) *Service {
	return &Service{queries: queries}
}

type Drawing struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	OwnerID   string `json:"ownerId"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

type Member struct {
	UserID      string `json:"userId"`
	Role        string `json:"role"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
}

func (s *Service) Create(ctx context.Context, name, ownerID string) (*Drawing, error) {
	drawingID := typeid.NewDrawingID()

	dbDrawing, err := s.queries.CreateDrawing(ctx, dbgen.CreateDrawingParams{
		ID:      drawingID,
		Name:    name,
		OwnerID: ownerID,
	})
	if err != nil {
		return nil, fmt.Errorf("create drawing: %w", err)
	}

	// Add owner as member
	err = s.queries.AddDrawingMember(ctx, dbgen.AddDrawingMemberParams{
		DrawingID: drawingID,
		UserID:    ownerID,
		Role:      dbgen.DrawingRoleOwner,
	})
	if err != nil {
		return nil, fmt.Errorf("add owner as member: %w", err)
	}

	// Seed empty document snapshot
	emptyDoc := document.NewEmptyDocument(drawingID, name)
	docJSON, err := json.Marshal(emptyDoc)
	if err != nil {
		return nil, fmt.Errorf("marshal empty document: %w", err)
	}

	_, err = s.queries.CreateSnapshot(ctx, dbgen.CreateSnapshotParams{
		ID:        typeid.NewSnapshotID(),
		DrawingID: drawingID,
		Version:   1,
		Document:  docJSON,
	})
	if err != nil {
		return nil, fmt.Errorf("create initial snapshot: %w", err)
	}

	return dbDrawingToDrawing(dbDrawing), nil
}

func (s *Service) Get(ctx context.Context, drawingID, userID string) (*Drawing, error) {
	if err := s.checkMembership(ctx, drawingID, userID); err != nil {
		return nil, err
	}

	dbDrawing, err := s.queries.GetDrawing(ctx, drawingID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get drawing: %w", err)
	}

	return dbDrawingToDrawing(dbDrawing), nil
}

func (s *Service) List(ctx context.Context, userID string) ([]Drawing, error) {
	dbDrawings, err := s.queries.ListDrawingsForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list drawings: %w", err)
	}

	drawings := make([]Drawing, len(dbDrawings))
	for i, d := range dbDrawings {
		drawings[i] = *dbDrawingToDrawing(d)
	}

	return drawings, nil
}

func (s *Service) Delete(ctx context.Context, drawingID, userID string) error {
	dbDrawing, err := s.queries.GetDrawing(ctx, drawingID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("get drawing: %w", err)
	}

	if dbDrawing.OwnerID != userID {
		return ErrForbidden
	}

	return s.queries.DeleteDrawing(ctx, drawingID)
}

func (s *Service) InviteByEmail(ctx context.Context, drawingID, ownerID, inviteeEmail string) error {
	// Verify the requester is the owner
	dbDrawing, err := s.queries.GetDrawing(ctx, drawingID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("get drawing: %w", err)
	}

	if dbDrawing.OwnerID != ownerID {
		return ErrForbidden
	}

	invitee, err := s.queries.GetUserByEmail(ctx, inviteeEmail)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return errors.New("user not found")
		}
		return fmt.Errorf("find user: %w", err)
	}

	return s.queries.AddDrawingMember(ctx, dbgen.AddDrawingMemberParams{
		DrawingID: drawingID,
		UserID:    invitee.ID,
		Role:      dbgen.DrawingRoleEditor,
	})
}

func (s *Service) ListMembers(ctx context.Context, drawingID, userID string) ([]Member, error) {
	if err := s.checkMembership(ctx, drawingID, userID); err != nil {
		return nil, err
	}

	dbMembers, err := s.queries.ListDrawingMembers(ctx, drawingID)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}

	members := make([]Member, len(dbMembers))
	for i, m := range dbMembers {
		members[i] = Member{
			UserID:      m.UserID,
			Role:        string(m.Role),
			DisplayName: m.DisplayName,
			Email:       m.Email,
		}
	}

	return members, nil
}

func (s *Service) RemoveMember(ctx context.Context, drawingID, ownerID, targetUserID string) error {
	dbDrawing, err := s.queries.GetDrawing(ctx, drawingID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("get drawing: %w", err)
	}

	if dbDrawing.OwnerID != ownerID {
		return ErrForbidden
	}

	if targetUserID == ownerID {
		return errors.New("cannot remove drawing owner")
	}

	return s.queries.RemoveDrawingMember(ctx, dbgen.RemoveDrawingMemberParams{
		DrawingID: drawingID,
		UserID:    targetUserID,
	})
}

func (s *Service) GetLatestSnapshot(ctx context.Context, drawingID, userID string) (json.RawMessage, error) {
	if err := s.checkMembership(ctx, drawingID, userID); err != nil {
		return nil, err
	}

	snap, err := s.queries.GetLatestSnapshot(ctx, drawingID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get snapshot: %w", err)
	}

	return snap.Document, nil
}

// GetLatestDocument loads and decodes the latest snapshot, rebuilding
// every shape's derived geometry.
func (s *Service) GetLatestDocument(ctx context.Context, drawingID, userID string) (*document.Document, error) {
	raw, err := s.GetLatestSnapshot(ctx, drawingID, userID)
	if err != nil {
		return nil, err
	}

	var doc document.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}

	return &doc, nil
}

func (s *Service) checkMembership(ctx context.Context, drawingID, userID string) error {
	_, err := s.queries.GetDrawingMember(ctx, dbgen.GetDrawingMemberParams{
		DrawingID: drawingID,
		UserID:    userID,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotMember
		}
		return fmt.Errorf("check membership: %w", err)
	}
	return nil
}

func dbDrawingToDrawing(d dbgen.Drawing) *Drawing {
	return &Drawing{
		ID:        d.ID,
		Name:      d.Name,
		OwnerID:   d.OwnerID,
		Width:     int(d.Width),
		Height:    int(d.Height),
		CreatedAt: d.CreatedAt.Time.Format("2006-01-02T15:04:05Z"),
		UpdatedAt: d.UpdatedAt.Time.Format("2006-01-02T15:04:05Z"),
	}
}
