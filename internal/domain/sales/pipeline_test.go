package sales

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDefaultPipeline(t *testing.T) *Pipeline {
	t.Helper()
	p, err := NewPipelineFromTemplates(uuid.New(), "Sales", DefaultStageTemplates())
	require.NoError(t, err)
	return p
}

func TestNewPipelineFromTemplates(t *testing.T) {
	p := newDefaultPipeline(t)

	require.Len(t, p.Stages, 6)
	for i, s := range p.OrderedStages() {
		assert.Equal(t, i, s.Position)
		assert.Equal(t, p.ID, s.PipelineID)
		assert.Equal(t, p.WorkspaceID, s.WorkspaceID)
	}
	assert.True(t, p.Stages[4].IsWon)
	assert.True(t, p.Stages[5].IsLost)

	first, err := p.FirstStage()
	require.NoError(t, err)
	assert.Equal(t, "Lead", first.Name)
}

func TestPipeline_AddStage(t *testing.T) {
	p, err := NewPipeline(uuid.New(), "Renewals")
	require.NoError(t, err)

	_, err = p.FirstStage()
	assert.Error(t, err)

	s1, err := p.AddStage(StageTemplate{Name: "Due"})
	require.NoError(t, err)
	assert.Equal(t, 0, s1.Position)
	assert.Equal(t, DefaultStageColor, s1.Color)

	s2, err := p.AddStage(StageTemplate{Name: "Renewed", Color: "#22C55E", Probability: 100, IsWon: true})
	require.NoError(t, err)
	assert.Equal(t, 1, s2.Position)
	assert.Equal(t, "#22c55e", s2.Color)

	t.Run("rejects won and lost together", func(t *testing.T) {
		_, err := p.AddStage(StageTemplate{Name: "Both", IsWon: true, IsLost: true})
		assert.Error(t, err)
	})

	t.Run("rejects probability out of range", func(t *testing.T) {
		_, err := p.AddStage(StageTemplate{Name: "Odd", Probability: 120})
		assert.Error(t, err)
	})

	t.Run("rejects bad color", func(t *testing.T) {
		_, err := p.AddStage(StageTemplate{Name: "Odd", Color: "red"})
		assert.Error(t, err)
	})

	assert.Len(t, p.Stages, 2)
}

func TestPipeline_Reorder(t *testing.T) {
	t.Run("applies positions and reports changed stages", func(t *testing.T) {
		p := newDefaultPipeline(t)
		lead, qualified := p.Stages[0].ID, p.Stages[1].ID

		changed, err := p.Reorder([]StagePosition{
			{StageID: lead, Position: 1},
			{StageID: qualified, Position: 0},
			{StageID: p.Stages[2].ID, Position: 2},
		})
		require.NoError(t, err)
		assert.Len(t, changed, 2)

		ordered := p.OrderedStages()
		assert.Equal(t, qualified, ordered[0].ID)
		assert.Equal(t, lead, ordered[1].ID)
	})

	t.Run("rejects unknown stage", func(t *testing.T) {
		p := newDefaultPipeline(t)
		_, err := p.Reorder([]StagePosition{{StageID: uuid.New(), Position: 0}})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})

	t.Run("rejects duplicates", func(t *testing.T) {
		p := newDefaultPipeline(t)
		id := p.Stages[0].ID
		_, err := p.Reorder([]StagePosition{{StageID: id, Position: 1}, {StageID: id, Position: 2}})
		assert.Error(t, err)
	})

	t.Run("rejects empty list", func(t *testing.T) {
		p := newDefaultPipeline(t)
		_, err := p.Reorder(nil)
		assert.Error(t, err)
	})
}
