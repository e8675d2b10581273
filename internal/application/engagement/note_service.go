package engagement

import (
	"context"

	"github.com/google/uuid"
	"github.com/salescrm/backend/internal/domain/engagement"
	"github.com/salescrm/backend/internal/domain/shared"
)

// NoteService manages notes attached to deals, contacts and companies
type NoteService struct {
	notes engagement.NoteRepository
}

// NewNoteService creates a NoteService
func NewNoteService(notes engagement.NoteRepository) *NoteService {
	return &NoteService{notes: notes}
}

// CreateNote creates a note
func (s *NoteService) CreateNote(ctx context.Context, workspaceID uuid.UUID, req CreateNoteRequest) (*NoteResponse, error) {
	n, err := engagement.NewNote(workspaceID, req.Content, req.links(), req.AuthorID)
	if err != nil {
		return nil, err
	}
	if err := s.notes.Save(ctx, n); err != nil {
		return nil, err
	}
	resp := ToNoteResponse(n)
	return &resp, nil
}

// ListNotes lists notes newest first
func (s *NoteService) ListNotes(ctx context.Context, workspaceID uuid.UUID, f NoteListFilter) (shared.Paginated[NoteResponse], error) {
	filter := shared.NewFilter(f.Page, f.PageSize, "", "", "")
	if err := applyIDFilters(filter, map[string]string{
		"deal_id":    f.DealID,
		"contact_id": f.ContactID,
		"company_id": f.CompanyID,
		"author_id":  f.AuthorID,
	}); err != nil {
		return shared.Paginated[NoteResponse]{}, err
	}

	list, err := s.notes.FindAllForWorkspace(ctx, workspaceID, filter)
	if err != nil {
		return shared.Paginated[NoteResponse]{}, err
	}
	total, err := s.notes.CountForWorkspace(ctx, workspaceID, filter)
	if err != nil {
		return shared.Paginated[NoteResponse]{}, err
	}
	items := make([]NoteResponse, len(list))
	for i := range list {
		items[i] = ToNoteResponse(&list[i])
	}
	return shared.NewPaginated(items, total, filter.Page, filter.PageSize), nil
}

// GetNote returns one note
func (s *NoteService) GetNote(ctx context.Context, workspaceID, id uuid.UUID) (*NoteResponse, error) {
	n, err := s.notes.FindByIDForWorkspace(ctx, workspaceID, id)
	if err != nil {
		return nil, err
	}
	resp := ToNoteResponse(n)
	return &resp, nil
}

// UpdateNote replaces the note content
func (s *NoteService) UpdateNote(ctx context.Context, workspaceID, id uuid.UUID, req UpdateNoteRequest) (*NoteResponse, error) {
	n, err := s.notes.FindByIDForWorkspace(ctx, workspaceID, id)
	if err != nil {
		return nil, err
	}
	if err := n.Edit(req.Content); err != nil {
		return nil, err
	}
	if err := s.notes.Save(ctx, n); err != nil {
		return nil, err
	}
	resp := ToNoteResponse(n)
	return &resp, nil
}

// DeleteNote removes a note
func (s *NoteService) DeleteNote(ctx context.Context, workspaceID, id uuid.UUID) error {
	return s.notes.DeleteForWorkspace(ctx, workspaceID, id)
}
