package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskapp/internal/client/api"
	"taskapp/internal/client/models"
)

// fakeSession is a minimal AuthService standing in for the session gate.
type fakeSession struct {
	authed bool
	name   string
}

func (f *fakeSession) Register(ctx context.Context, username, email, password string) error {
	return nil
}
func (f *fakeSession) Login(ctx context.Context, username, password string) error {
	f.authed = true
	return nil
}
func (f *fakeSession) IsAuthenticated() bool           { return f.authed }
func (f *fakeSession) Username() string                { return f.name }
func (f *fakeSession) Close(ctx context.Context) error { return nil }

func newTaskService(f *fakeClient, authed bool) TaskService {
	return NewTaskService(f, &fakeSession{authed: authed}, testLogger())
}

func someTasks() []models.Task {
	return []models.Task{
		{ID: 1, Title: "Buy milk", Description: "", Done: false},
		{ID: 2, Title: "Walk dog", Description: "around the block", Done: true},
	}
}

func TestTaskService_AnonymousCallsRejected(t *testing.T) {
	f := &fakeClient{}
	s := newTaskService(f, false)
	ctx := context.Background()

	_, err := s.Refresh(ctx)
	require.ErrorIs(t, err, api.ErrUnauthorized)

	err = s.Create(ctx, "Buy milk", "")
	require.ErrorIs(t, err, api.ErrUnauthorized)

	_, err = s.ToggleDone(ctx, 1)
	require.ErrorIs(t, err, api.ErrUnauthorized)

	_, err = s.Delete(ctx, 1)
	require.ErrorIs(t, err, api.ErrUnauthorized)

	assert.Empty(t, f.calls, "no request may reach the server while anonymous")
}

func TestRefresh_ReplacesCollectionWholesale(t *testing.T) {
	f := &fakeClient{ListTasksRet: someTasks()}
	s := newTaskService(f, true)

	got, err := s.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, someTasks(), got, "server order preserved")
	assert.Equal(t, someTasks(), s.Tasks())

	f.ListTasksRet = []models.Task{{ID: 3, Title: "New", Done: false}}
	_, err = s.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, f.ListTasksRet, s.Tasks(), "old items are not patched, the list is replaced")
}

func TestRefresh_FailureLeavesCollectionUntouched(t *testing.T) {
	f := &fakeClient{ListTasksRet: someTasks()}
	s := newTaskService(f, true)

	_, err := s.Refresh(context.Background())
	require.NoError(t, err)

	f.ListTasksErr = api.ErrUnavailable
	_, err = s.Refresh(context.Background())
	require.ErrorIs(t, err, api.ErrUnavailable)
	assert.Equal(t, someTasks(), s.Tasks(), "stale-but-consistent view survives")
}

func TestTasks_ReturnsCopy(t *testing.T) {
	f := &fakeClient{ListTasksRet: someTasks()}
	s := newTaskService(f, true)
	_, err := s.Refresh(context.Background())
	require.NoError(t, err)

	snapshot := s.Tasks()
	snapshot[0].Title = "mutated"
	assert.Equal(t, "Buy milk", s.Tasks()[0].Title)
}

func TestCreate_EmptyTitleRejectedLocally(t *testing.T) {
	f := &fakeClient{}
	s := newTaskService(f, true)

	err := s.Create(context.Background(), "   ", "desc")
	require.ErrorIs(t, err, api.ErrValidation)
	assert.Empty(t, f.calls)
}

func TestCreate_SuccessTriggersRefresh(t *testing.T) {
	created := []models.Task{{ID: 7, Title: "Buy milk", Description: "", Done: false}}
	f := &fakeClient{ListTasksRet: created}
	s := newTaskService(f, true)

	err := s.Create(context.Background(), "Buy milk", "")
	require.NoError(t, err)

	assert.Equal(t, []string{"create", "list"}, f.calls, "refresh must follow the confirmed mutation")
	assert.Equal(t, "Buy milk", f.LastCreateTitle)
	assert.Equal(t, created, s.Tasks(), "held collection equals what a plain refresh would return")
}

func TestCreate_FailureLeavesCollectionUntouched(t *testing.T) {
	f := &fakeClient{ListTasksRet: someTasks()}
	s := newTaskService(f, true)
	_, err := s.Refresh(context.Background())
	require.NoError(t, err)
	f.calls = nil

	f.CreateErr = api.ErrServer
	err = s.Create(context.Background(), "Doomed", "")
	require.ErrorIs(t, err, api.ErrServer)

	assert.Equal(t, []string{"create"}, f.calls, "no refresh after a failed mutation")
	assert.Equal(t, someTasks(), s.Tasks(), "the attempted task is never inserted locally")
}

func TestToggleDone_SuccessReturnsMessageAndRefreshes(t *testing.T) {
	f := &fakeClient{ToggleMsg: "task marked as done", ListTasksRet: someTasks()}
	s := newTaskService(f, true)

	msg, err := s.ToggleDone(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "task marked as done", msg)
	assert.Equal(t, int64(2), f.LastTaskID)
	assert.Equal(t, []string{"toggle", "list"}, f.calls)
}

func TestToggleDone_NotFoundSurfaced(t *testing.T) {
	f := &fakeClient{ToggleErr: api.ErrNotFound, ListTasksRet: someTasks()}
	s := newTaskService(f, true)
	_, err := s.Refresh(context.Background())
	require.NoError(t, err)
	f.calls = nil

	_, err = s.ToggleDone(context.Background(), 99)
	require.ErrorIs(t, err, api.ErrNotFound)
	assert.Equal(t, []string{"toggle"}, f.calls)
	assert.Equal(t, someTasks(), s.Tasks())
}

func TestDelete_SuccessRefreshes(t *testing.T) {
	remaining := []models.Task{{ID: 2, Title: "Walk dog", Description: "around the block", Done: true}}
	f := &fakeClient{DeleteMsg: "task deleted", ListTasksRet: remaining}
	s := newTaskService(f, true)

	msg, err := s.Delete(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "task deleted", msg)
	assert.Equal(t, []string{"delete", "list"}, f.calls)
	assert.Equal(t, remaining, s.Tasks())
}

func TestDelete_FailureLeavesCollectionUntouched(t *testing.T) {
	f := &fakeClient{ListTasksRet: someTasks()}
	s := newTaskService(f, true)
	_, err := s.Refresh(context.Background())
	require.NoError(t, err)
	f.calls = nil

	f.DeleteErr = api.ErrUnavailable
	_, err = s.Delete(context.Background(), 1)
	require.ErrorIs(t, err, api.ErrUnavailable)
	assert.Equal(t, someTasks(), s.Tasks())
}

// statefulClient keeps a real task list so toggles observe their own effect.
type statefulClient struct {
	fakeClient
	tasks []models.Task
}

func (c *statefulClient) ListTasks(ctx context.Context) ([]models.Task, error) {
	return append([]models.Task(nil), c.tasks...), nil
}

func (c *statefulClient) ToggleTask(ctx context.Context, taskID int64) (string, error) {
	for i := range c.tasks {
		if c.tasks[i].ID == taskID {
			c.tasks[i].Done = !c.tasks[i].Done
			return "ok", nil
		}
	}
	return "", api.ErrNotFound
}

func TestToggleDone_TwiceRestoresOriginalState(t *testing.T) {
	c := &statefulClient{tasks: someTasks()}
	s := NewTaskService(c, &fakeSession{authed: true}, testLogger())
	ctx := context.Background()

	_, err := s.Refresh(ctx)
	require.NoError(t, err)
	original := s.Tasks()

	_, err = s.ToggleDone(ctx, 1)
	require.NoError(t, err)
	assert.True(t, s.Tasks()[0].Done)

	_, err = s.ToggleDone(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, original, s.Tasks(), "double toggle returns the collection to its original state")
}
