package engagement

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskLifecycle(t *testing.T) {
	task, err := NewTask(uuid.New(), "Call back", "")
	require.NoError(t, err)
	assert.Equal(t, TaskStatusTodo, task.Status)
	assert.Equal(t, TaskPriorityMedium, task.Priority)

	require.NoError(t, task.Start())
	assert.Equal(t, TaskStatusInProgress, task.Status)

	require.NoError(t, task.Complete())
	assert.Equal(t, TaskStatusDone, task.Status)
	require.NotNil(t, task.CompletedAt)
	require.Len(t, task.GetDomainEvents(), 1)
	assert.Equal(t, EventTypeTaskCompleted, task.GetDomainEvents()[0].EventType())

	assert.Error(t, task.Complete())
	assert.Error(t, task.Start())

	require.NoError(t, task.Reopen())
	assert.Equal(t, TaskStatusTodo, task.Status)
	assert.Nil(t, task.CompletedAt)
	assert.Error(t, task.Reopen())
}

func TestTask_IsOverdue(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	task, err := NewTask(uuid.New(), "Follow up", TaskPriorityHigh)
	require.NoError(t, err)
	assert.False(t, task.IsOverdue(now))

	task.Schedule(&past, nil, nil, nil)
	assert.True(t, task.IsOverdue(now))

	task.Schedule(&future, nil, nil, nil)
	assert.False(t, task.IsOverdue(now))

	task.Schedule(&past, nil, nil, nil)
	require.NoError(t, task.Complete())
	assert.False(t, task.IsOverdue(now))
}

func TestNewTask_InvalidPriority(t *testing.T) {
	_, err := NewTask(uuid.New(), "x", TaskPriority("urgent"))
	assert.Error(t, err)
}

func TestNewNote(t *testing.T) {
	dealID := uuid.New()

	n, err := NewNote(uuid.New(), "Discussed pricing", Links{DealID: &dealID}, nil)
	require.NoError(t, err)
	assert.Equal(t, &dealID, n.DealID)

	_, err = NewNote(uuid.New(), "Orphan", Links{}, nil)
	assert.Error(t, err)

	_, err = NewNote(uuid.New(), "   ", Links{DealID: &dealID}, nil)
	assert.Error(t, err)
}

func TestNewActivity(t *testing.T) {
	a, err := NewActivity(uuid.New(), ActivityCall, "Intro call", time.Time{})
	require.NoError(t, err)
	assert.False(t, a.OccurredAt.IsZero())

	_, err = NewActivity(uuid.New(), ActivityType("fax"), "Old school", time.Time{})
	assert.Error(t, err)

	long, err := NewActivity(uuid.New(), ActivityNote, strings.Repeat("x", 400), time.Time{})
	require.NoError(t, err)
	assert.Len(t, long.Subject, 300)
}

func TestNewActivity_TruncatesOnRuneBoundary(t *testing.T) {
	// odd byte offset so a byte cut would split a two-byte rune
	subject := "Email sent: a" + strings.Repeat("é", 400)

	a, err := NewActivity(uuid.New(), ActivityEmail, subject, time.Time{})
	require.NoError(t, err)
	assert.True(t, utf8.ValidString(a.Subject))
	assert.Equal(t, 300, utf8.RuneCountInString(a.Subject))
	assert.True(t, strings.HasPrefix(a.Subject, "Email sent: a"))

	short := "Réunion é"
	a, err = NewActivity(uuid.New(), ActivityMeeting, short, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, short, a.Subject)
}

func TestNewFile(t *testing.T) {
	ws := uuid.New()

	f, err := NewFile(ws, "../../etc/proposal.pdf", "application/pdf", 1024, Links{}, nil)
	require.NoError(t, err)
	assert.Equal(t, "proposal.pdf", f.Name)
	assert.Equal(t, FileStatusPending, f.Status)
	assert.True(t, strings.HasPrefix(f.StorageKey, ws.String()+"/"))
	assert.True(t, strings.HasSuffix(f.StorageKey, f.ID.String()+"-proposal.pdf"))

	t.Run("defaults content type", func(t *testing.T) {
		f, err := NewFile(ws, "blob", "", 1, Links{}, nil)
		require.NoError(t, err)
		assert.Equal(t, "application/octet-stream", f.ContentType)
	})

	t.Run("rejects oversize", func(t *testing.T) {
		_, err := NewFile(ws, "big.iso", "", MaxFileSize+1, Links{}, nil)
		assert.Error(t, err)
	})

	t.Run("rejects empty size", func(t *testing.T) {
		_, err := NewFile(ws, "empty.txt", "", 0, Links{}, nil)
		assert.Error(t, err)
	})

	require.NoError(t, f.MarkUploaded())
	assert.Error(t, f.MarkUploaded())
}
