package sales

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/salescrm/backend/internal/domain/sales"
	"github.com/salescrm/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PipelineService manages pipelines, their stages and the board view
type PipelineService struct {
	pipelines      sales.PipelineRepository
	stages         sales.StageRepository
	deals          sales.DealRepository
	txScope        TransactionScope
	eventPublisher shared.EventPublisher
}

// NewPipelineService creates a PipelineService. eventPublisher may be nil.
func NewPipelineService(repos Repositories, txScope TransactionScope, eventPublisher shared.EventPublisher) *PipelineService {
	return &PipelineService{
		pipelines:      repos.Pipelines,
		stages:         repos.Stages,
		deals:          repos.Deals,
		txScope:        txScope,
		eventPublisher: eventPublisher,
	}
}

// CreatePipeline creates a pipeline. Without stages the default stage set is provisioned.
func (s *PipelineService) CreatePipeline(ctx context.Context, workspaceID uuid.UUID, req CreatePipelineRequest) (*PipelineResponse, error) {
	templates := sales.DefaultStageTemplates()
	if len(req.Stages) > 0 {
		templates = make([]sales.StageTemplate, len(req.Stages))
		for i, st := range req.Stages {
			templates[i] = st.template()
		}
	}
	p, err := sales.NewPipelineFromTemplates(workspaceID, req.Name, templates)
	if err != nil {
		return nil, err
	}

	makeDefault := req.IsDefault
	if !makeDefault {
		// The first pipeline of a workspace is always the default
		if _, err := s.pipelines.FindDefault(ctx, workspaceID); err != nil {
			if !errors.Is(err, shared.ErrNotFound) {
				return nil, err
			}
			makeDefault = true
		}
	}
	p.IsDefault = makeDefault

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if makeDefault {
			if err := repos.PipelineRepo().ClearDefault(ctx, workspaceID); err != nil {
				return err
			}
		}
		return repos.PipelineRepo().Save(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	resp := ToPipelineResponse(p)
	return &resp, nil
}

// ListPipelines lists the workspace's pipelines with their stages
func (s *PipelineService) ListPipelines(ctx context.Context, workspaceID uuid.UUID) ([]PipelineResponse, error) {
	pipelines, err := s.pipelines.FindAllForWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	out := make([]PipelineResponse, len(pipelines))
	for i := range pipelines {
		out[i] = ToPipelineResponse(&pipelines[i])
	}
	return out, nil
}

// GetPipeline returns a pipeline with ordered stages
func (s *PipelineService) GetPipeline(ctx context.Context, workspaceID, id uuid.UUID) (*PipelineResponse, error) {
	p, err := s.pipelines.FindByIDForWorkspace(ctx, workspaceID, id)
	if err != nil {
		return nil, err
	}
	resp := ToPipelineResponse(p)
	return &resp, nil
}

// UpdatePipeline renames a pipeline or promotes it to default.
// Demoting the default directly is refused; another pipeline must be promoted instead.
func (s *PipelineService) UpdatePipeline(ctx context.Context, workspaceID, id uuid.UUID, req UpdatePipelineRequest) (*PipelineResponse, error) {
	p, err := s.pipelines.FindByIDForWorkspace(ctx, workspaceID, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		if err := p.Rename(*req.Name); err != nil {
			return nil, err
		}
	}

	promote := false
	if req.IsDefault != nil {
		switch {
		case *req.IsDefault && !p.IsDefault:
			promote = true
			p.IsDefault = true
			p.Touch()
		case !*req.IsDefault && p.IsDefault:
			return nil, shared.NewDomainError("INVALID_STATE", "Make another pipeline the default instead")
		}
	}

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if promote {
			if err := repos.PipelineRepo().ClearDefault(ctx, workspaceID); err != nil {
				return err
			}
		}
		return repos.PipelineRepo().Save(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	s.publishChanged(ctx, workspaceID, p.ID, sales.PipelineActionUpdated, nil)
	resp := ToPipelineResponse(p)
	return &resp, nil
}

// DeletePipeline deletes a pipeline and its stages. The default pipeline and pipelines with deals are kept.
func (s *PipelineService) DeletePipeline(ctx context.Context, workspaceID, id uuid.UUID) error {
	p, err := s.pipelines.FindByIDForWorkspace(ctx, workspaceID, id)
	if err != nil {
		return err
	}
	if p.IsDefault {
		return shared.NewDomainError("INVALID_STATE", "The default pipeline cannot be deleted")
	}
	count, err := s.deals.CountByPipeline(ctx, workspaceID, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return shared.NewDomainError("PIPELINE_IN_USE", "Pipeline still has deals")
	}
	if err := s.pipelines.DeleteForWorkspace(ctx, workspaceID, id); err != nil {
		return err
	}
	s.publishChanged(ctx, workspaceID, id, sales.PipelineActionDeleted, nil)
	return nil
}

// AddStage appends a stage at the end of the pipeline
func (s *PipelineService) AddStage(ctx context.Context, workspaceID, pipelineID uuid.UUID, req StageInput) (*StageResponse, error) {
	p, err := s.pipelines.FindByIDForWorkspace(ctx, workspaceID, pipelineID)
	if err != nil {
		return nil, err
	}
	stage, err := p.AddStage(req.template())
	if err != nil {
		return nil, err
	}
	if err := s.stages.Save(ctx, stage); err != nil {
		return nil, err
	}
	s.publishChanged(ctx, workspaceID, pipelineID, sales.PipelineActionStageAdded, &stage.ID)
	resp := ToStageResponse(stage)
	return &resp, nil
}

// UpdateStage changes a stage's attributes. Omitted fields keep their value.
// The won/lost flags of a stage holding deals cannot change, since those deals' status follows them.
func (s *PipelineService) UpdateStage(ctx context.Context, workspaceID, pipelineID, stageID uuid.UUID, req UpdateStageRequest) (*StageResponse, error) {
	stage, err := s.findStage(ctx, workspaceID, pipelineID, stageID)
	if err != nil {
		return nil, err
	}
	tpl := sales.StageTemplate{
		Name:        stage.Name,
		Color:       stage.Color,
		Probability: stage.Probability,
		IsWon:       stage.IsWon,
		IsLost:      stage.IsLost,
	}
	if req.Name != nil {
		tpl.Name = *req.Name
	}
	if req.Color != nil {
		tpl.Color = *req.Color
	}
	if req.Probability != nil {
		tpl.Probability = *req.Probability
	}
	if req.IsWon != nil {
		tpl.IsWon = *req.IsWon
	}
	if req.IsLost != nil {
		tpl.IsLost = *req.IsLost
	}
	if tpl.IsWon != stage.IsWon || tpl.IsLost != stage.IsLost {
		count, err := s.deals.CountByStage(ctx, workspaceID, stageID)
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, shared.NewDomainError("STAGE_IN_USE", "Move the stage's deals out before changing its won or lost flag")
		}
	}
	if err := stage.Apply(tpl); err != nil {
		return nil, err
	}
	if err := s.stages.Save(ctx, stage); err != nil {
		return nil, err
	}
	s.publishChanged(ctx, workspaceID, pipelineID, sales.PipelineActionStageUpdated, &stage.ID)
	resp := ToStageResponse(stage)
	return &resp, nil
}

// DeleteStage removes a stage that no deal references. A pipeline keeps at least one stage.
func (s *PipelineService) DeleteStage(ctx context.Context, workspaceID, pipelineID, stageID uuid.UUID) error {
	p, err := s.pipelines.FindByIDForWorkspace(ctx, workspaceID, pipelineID)
	if err != nil {
		return err
	}
	if _, err := p.FindStage(stageID); err != nil {
		return err
	}
	if len(p.Stages) <= 1 {
		return shared.NewDomainError("INVALID_STATE", "A pipeline needs at least one stage")
	}
	count, err := s.deals.CountByStage(ctx, workspaceID, stageID)
	if err != nil {
		return err
	}
	if count > 0 {
		return shared.NewDomainError("STAGE_IN_USE", "Stage still has deals")
	}
	if err := s.stages.DeleteForWorkspace(ctx, workspaceID, stageID); err != nil {
		return err
	}
	s.publishChanged(ctx, workspaceID, pipelineID, sales.PipelineActionStageDeleted, &stageID)
	return nil
}

// ReorderStages writes the given positions, one update per stage, in a single transaction.
// Every stage must belong to the pipeline.
func (s *PipelineService) ReorderStages(ctx context.Context, workspaceID, pipelineID uuid.UUID, req ReorderStagesRequest) (*PipelineResponse, error) {
	positions := make([]sales.StagePosition, len(req.Stages))
	for i, st := range req.Stages {
		positions[i] = sales.StagePosition{StageID: st.StageID, Position: st.Position}
	}

	var p *sales.Pipeline
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		p, err = repos.PipelineRepo().FindByIDForWorkspace(ctx, workspaceID, pipelineID)
		if err != nil {
			return err
		}
		if _, err := p.Reorder(positions); err != nil {
			return err
		}
		for _, pos := range positions {
			if err := repos.StageRepo().UpdatePosition(ctx, workspaceID, pos.StageID, pos.Position); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.publishChanged(ctx, workspaceID, pipelineID, sales.PipelineActionStagesReordered, nil)
	resp := ToPipelineResponse(p)
	return &resp, nil
}

// GetBoard lays the pipeline out as stage columns holding their deals by position
func (s *PipelineService) GetBoard(ctx context.Context, workspaceID, pipelineID uuid.UUID) (*BoardResponse, error) {
	p, err := s.pipelines.FindByIDForWorkspace(ctx, workspaceID, pipelineID)
	if err != nil {
		return nil, err
	}
	deals, err := s.deals.FindByPipeline(ctx, workspaceID, pipelineID)
	if err != nil {
		return nil, err
	}

	byStage := make(map[uuid.UUID][]DealResponse)
	for i := range deals {
		byStage[deals[i].StageID] = append(byStage[deals[i].StageID], ToDealResponse(&deals[i]))
	}

	ordered := p.OrderedStages()
	board := &BoardResponse{
		PipelineID: p.ID,
		Name:       p.Name,
		Columns:    make([]BoardColumn, len(ordered)),
	}
	for i := range ordered {
		column := byStage[ordered[i].ID]
		if column == nil {
			column = []DealResponse{}
		}
		total := decimal.Zero
		for _, d := range column {
			total = total.Add(d.Value)
		}
		board.Columns[i] = BoardColumn{
			Stage:      ToStageResponse(&ordered[i]),
			Deals:      column,
			Count:      len(column),
			TotalValue: total,
		}
	}
	return board, nil
}

func (s *PipelineService) findStage(ctx context.Context, workspaceID, pipelineID, stageID uuid.UUID) (*sales.Stage, error) {
	stage, err := s.stages.FindByIDForWorkspace(ctx, workspaceID, stageID)
	if err != nil {
		return nil, err
	}
	if stage.PipelineID != pipelineID {
		return nil, shared.NotFound("Stage")
	}
	return stage, nil
}

func (s *PipelineService) publishChanged(ctx context.Context, workspaceID, pipelineID uuid.UUID, action string, stageID *uuid.UUID) {
	if s.eventPublisher == nil {
		return
	}
	// errors are logged by the event bus
	_ = s.eventPublisher.Publish(ctx, sales.NewPipelineChangedEvent(workspaceID, pipelineID, action, stageID))
}
