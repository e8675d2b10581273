package sales

import (
	"regexp"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/salescrm/backend/internal/domain/shared"
)

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// DefaultStageColor is used when a stage is created without a color
const DefaultStageColor = "#64748b"

// Pipeline is a named, ordered sequence of stages that deals move through
type Pipeline struct {
	shared.WorkspaceAggregateRoot
	Name      string  `gorm:"type:varchar(120);not null"`
	IsDefault bool    `gorm:"not null;default:false"`
	Stages    []Stage `gorm:"foreignKey:PipelineID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (Pipeline) TableName() string {
	return "pipelines"
}

// Stage is a single column of a pipeline. A stage flagged won or lost closes deals moved into it.
type Stage struct {
	shared.WorkspaceEntity
	PipelineID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Name        string    `gorm:"type:varchar(120);not null"`
	Color       string    `gorm:"type:varchar(7);not null;default:'#64748b'"`
	Position    int       `gorm:"not null;default:0"`
	Probability int       `gorm:"not null;default:0"`
	IsWon       bool      `gorm:"not null;default:false"`
	IsLost      bool      `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (Stage) TableName() string {
	return "pipeline_stages"
}

// StageTemplate describes a stage to create
type StageTemplate struct {
	Name        string
	Color       string
	Probability int
	IsWon       bool
	IsLost      bool
}

// DefaultStageTemplates are provisioned for every new workspace
func DefaultStageTemplates() []StageTemplate {
	return []StageTemplate{
		{Name: "Lead", Color: "#94a3b8", Probability: 10},
		{Name: "Qualified", Color: "#60a5fa", Probability: 25},
		{Name: "Proposal", Color: "#a78bfa", Probability: 50},
		{Name: "Negotiation", Color: "#f59e0b", Probability: 75},
		{Name: "Won", Color: "#22c55e", Probability: 100, IsWon: true},
		{Name: "Lost", Color: "#ef4444", Probability: 0, IsLost: true},
	}
}

// StagePosition assigns a position to a stage during a reorder
type StagePosition struct {
	StageID  uuid.UUID
	Position int
}

// NewPipeline creates an empty pipeline
func NewPipeline(workspaceID uuid.UUID, name string) (*Pipeline, error) {
	name = strings.TrimSpace(name)
	if err := validatePipelineName(name); err != nil {
		return nil, err
	}
	return &Pipeline{
		WorkspaceAggregateRoot: shared.NewWorkspaceAggregateRoot(workspaceID),
		Name:                   name,
		Stages:                 make([]Stage, 0),
	}, nil
}

// NewPipelineFromTemplates creates a pipeline with the given stages in order
func NewPipelineFromTemplates(workspaceID uuid.UUID, name string, templates []StageTemplate) (*Pipeline, error) {
	p, err := NewPipeline(workspaceID, name)
	if err != nil {
		return nil, err
	}
	for _, tpl := range templates {
		if _, err := p.AddStage(tpl); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Rename changes the pipeline name
func (p *Pipeline) Rename(name string) error {
	name = strings.TrimSpace(name)
	if err := validatePipelineName(name); err != nil {
		return err
	}
	p.Name = name
	p.Touch()
	return nil
}

// AddStage appends a stage after the current last stage
func (p *Pipeline) AddStage(tpl StageTemplate) (*Stage, error) {
	position := 0
	for _, s := range p.Stages {
		if s.Position >= position {
			position = s.Position + 1
		}
	}
	stage, err := newStage(p.WorkspaceID, p.ID, position, tpl)
	if err != nil {
		return nil, err
	}
	p.Stages = append(p.Stages, *stage)
	p.Touch()
	return stage, nil
}

// OrderedStages returns the stages sorted by position
func (p *Pipeline) OrderedStages() []Stage {
	stages := make([]Stage, len(p.Stages))
	copy(stages, p.Stages)
	sort.SliceStable(stages, func(i, j int) bool {
		return stages[i].Position < stages[j].Position
	})
	return stages
}

// FirstStage returns the stage with the lowest position
func (p *Pipeline) FirstStage() (*Stage, error) {
	ordered := p.OrderedStages()
	if len(ordered) == 0 {
		return nil, shared.NewDomainError("INVALID_STATE", "Pipeline has no stages")
	}
	return &ordered[0], nil
}

// FindStage returns the stage with the given ID
func (p *Pipeline) FindStage(stageID uuid.UUID) (*Stage, error) {
	for i := range p.Stages {
		if p.Stages[i].ID == stageID {
			return &p.Stages[i], nil
		}
	}
	return nil, shared.NotFound("Stage")
}

// Reorder applies new positions. Every stage ID must belong to this pipeline.
// It returns the stages whose position changed.
func (p *Pipeline) Reorder(positions []StagePosition) ([]Stage, error) {
	if len(positions) == 0 {
		return nil, shared.Validation("At least one stage position is required")
	}
	seen := make(map[uuid.UUID]struct{}, len(positions))
	changed := make([]Stage, 0, len(positions))
	for _, pos := range positions {
		if _, dup := seen[pos.StageID]; dup {
			return nil, shared.Validation("Stage listed more than once")
		}
		seen[pos.StageID] = struct{}{}
		if pos.Position < 0 {
			return nil, shared.Validation("Stage position cannot be negative")
		}
		stage, err := p.FindStage(pos.StageID)
		if err != nil {
			return nil, err
		}
		if stage.Position != pos.Position {
			stage.Position = pos.Position
			stage.Touch()
			changed = append(changed, *stage)
		}
	}
	return changed, nil
}

func newStage(workspaceID, pipelineID uuid.UUID, position int, tpl StageTemplate) (*Stage, error) {
	s := &Stage{
		WorkspaceEntity: shared.NewWorkspaceEntity(workspaceID),
		PipelineID:      pipelineID,
		Position:        position,
	}
	if err := s.Apply(tpl); err != nil {
		return nil, err
	}
	return s, nil
}

// Apply overwrites the stage's editable attributes
func (s *Stage) Apply(tpl StageTemplate) error {
	name := strings.TrimSpace(tpl.Name)
	if name == "" {
		return shared.Validation("Stage name is required")
	}
	if len(name) > 120 {
		return shared.Validation("Stage name cannot exceed 120 characters")
	}
	color := tpl.Color
	if color == "" {
		color = DefaultStageColor
	}
	if !hexColor.MatchString(color) {
		return shared.NewDomainError("INVALID_COLOR", "Stage color must be a hex value like #1a2b3c")
	}
	if tpl.Probability < 0 || tpl.Probability > 100 {
		return shared.NewDomainError("INVALID_PROBABILITY", "Stage probability must be between 0 and 100")
	}
	if tpl.IsWon && tpl.IsLost {
		return shared.NewDomainError("INVALID_STAGE_FLAGS", "A stage cannot be both won and lost")
	}
	s.Name = name
	s.Color = strings.ToLower(color)
	s.Probability = tpl.Probability
	s.IsWon = tpl.IsWon
	s.IsLost = tpl.IsLost
	s.Touch()
	return nil
}

// IsClosed reports whether deals in this stage are finished
func (s *Stage) IsClosed() bool {
	return s.IsWon || s.IsLost
}

func validatePipelineName(name string) error {
	if name == "" {
		return shared.Validation("Pipeline name is required")
	}
	if len(name) > 120 {
		return shared.Validation("Pipeline name cannot exceed 120 characters")
	}
	return nil
}
