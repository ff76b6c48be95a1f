package realtime

import (
	pipelinecache "recruitment-backend/lib/pipeline-cache"
	"recruitment-backend/models"
	candidateapimodels "recruitment-backend/models/api/candidate"
	dbmodels "recruitment-backend/models/db"
	wsmodels "recruitment-backend/models/ws"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeProcessStore struct {
	processes map[string]dbmodels.Process
}

func (f fakeProcessStore) Create(rec dbmodels.Process) (string, error) {
	f.processes[rec.ID] = rec
	return rec.ID, nil
}

func (f fakeProcessStore) Update(id string, updMap map[string]interface{}) error {
	return nil
}

func (f fakeProcessStore) GetByID(id string) (*dbmodels.Process, error) {
	rec, ok := f.processes[id]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (f fakeProcessStore) List(filter dbmodels.ProcessFilter) ([]dbmodels.Process, error) {
	result := []dbmodels.Process{}
	for _, rec := range f.processes {
		result = append(result, rec)
	}
	return result, nil
}

func (f fakeProcessStore) Delete(id string) error {
	delete(f.processes, id)
	return nil
}

type fakeStageStore struct {
	stages map[string]dbmodels.Stage
}

func (f fakeStageStore) Create(rec dbmodels.Stage) (string, error) {
	f.stages[rec.ID] = rec
	return rec.ID, nil
}

func (f fakeStageStore) Update(processID, id string, updMap map[string]interface{}) error {
	return nil
}

func (f fakeStageStore) GetByID(id string) (*dbmodels.Stage, error) {
	rec, ok := f.stages[id]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (f fakeStageStore) List(processID string) ([]dbmodels.Stage, error) {
	return f.ListAll()
}

func (f fakeStageStore) ListAll() ([]dbmodels.Stage, error) {
	result := []dbmodels.Stage{}
	for _, rec := range f.stages {
		result = append(result, rec)
	}
	return result, nil
}

func (f fakeStageStore) Delete(processID, id string) error {
	delete(f.stages, id)
	return nil
}

type fakeCandidateStore struct {
	candidates map[string]dbmodels.Candidate
}

func (f fakeCandidateStore) Create(rec dbmodels.Candidate) (*dbmodels.Candidate, error) {
	f.candidates[rec.ID] = rec
	return &rec, nil
}

func (f fakeCandidateStore) Update(id string, updMap map[string]interface{}) error {
	return nil
}

func (f fakeCandidateStore) GetByID(id string) (*dbmodels.Candidate, error) {
	rec, ok := f.candidates[id]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (f fakeCandidateStore) List(filter dbmodels.CandidateFilter) ([]dbmodels.Candidate, error) {
	return f.ListAll()
}

func (f fakeCandidateStore) ListCount(filter dbmodels.CandidateFilter) (int64, error) {
	return int64(len(f.candidates)), nil
}

func (f fakeCandidateStore) ListAll() ([]dbmodels.Candidate, error) {
	result := []dbmodels.Candidate{}
	for _, rec := range f.candidates {
		result = append(result, rec)
	}
	return result, nil
}

func (f fakeCandidateStore) CountByStage(stageID string) (int64, error) {
	return 0, nil
}

func (f fakeCandidateStore) CountByProcess(processID string) (int64, error) {
	return 0, nil
}

func (f fakeCandidateStore) IncrementComments(id string) error {
	return nil
}

type fakeTimelineStore struct {
	events map[string]dbmodels.TimelineEvent
}

func (f fakeTimelineStore) Create(rec dbmodels.TimelineEvent) (string, error) {
	f.events[rec.ID] = rec
	return rec.ID, nil
}

func (f fakeTimelineStore) GetByID(id string) (*dbmodels.TimelineEvent, error) {
	rec, ok := f.events[id]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (f fakeTimelineStore) List(candidateID string) ([]dbmodels.TimelineEvent, error) {
	return nil, nil
}

type fakeHub struct {
	messages []wsmodels.ServerMessage
}

func (f *fakeHub) SendMessage(msg wsmodels.ServerMessage) {
	f.messages = append(f.messages, msg)
}

func newTestListener() (listener, fakeCandidateStore, *fakeHub) {
	updatedAt := time.Now().Add(-time.Hour)
	candidates := fakeCandidateStore{candidates: map[string]dbmodels.Candidate{
		"7": {
			BaseModel:      dbmodels.BaseModel{ID: "7", UpdatedAt: updatedAt},
			ProcessID:      "p-1",
			CurrentStageID: "s-2",
			Name:           "Ana Perez",
			Status:         models.CandidateStatusActive,
		},
	}}
	hub := &fakeHub{}
	l := listener{
		processes: fakeProcessStore{processes: map[string]dbmodels.Process{
			"p-1": {BaseModel: dbmodels.BaseModel{ID: "p-1"}, Title: "Backend Developer"},
		}},
		stages: fakeStageStore{stages: map[string]dbmodels.Stage{
			"s-1": {BaseModel: dbmodels.BaseModel{ID: "s-1"}, ProcessID: "p-1", Name: "Aplicación", StageOrder: 1},
			"s-2": {BaseModel: dbmodels.BaseModel{ID: "s-2"}, ProcessID: "p-1", Name: "Revisión CV", StageOrder: 2},
		}},
		candidates: candidates,
		timeline: fakeTimelineStore{events: map[string]dbmodels.TimelineEvent{
			"e-1": {BaseModel: dbmodels.BaseModel{ID: "e-1"}, CandidateID: "7", Type: models.TimelineComment},
		}},
		cache: pipelinecache.NewCache(),
		hub:   hub,
	}
	return l, candidates, hub
}

func TestHandleNotification(t *testing.T) {
	t.Run(`загрузка кэша`, func(t *testing.T) {
		l, _, _ := newTestListener()
		require.NoError(t, l.reload())
		require.True(t, l.cache.IsLoaded())
		require.Len(t, l.cache.ProcessStages("p-1"), 2)
		require.Len(t, l.cache.StageCandidates("s-2"), 1)
	})
	t.Run(`обновление кандидата`, func(t *testing.T) {
		l, candidates, hub := newTestListener()
		require.NoError(t, l.reload())
		rec := candidates.candidates["7"]
		rec.CurrentStageID = "s-1"
		rec.UpdatedAt = time.Now()
		candidates.candidates["7"] = rec

		err := l.handleNotification(`{"table":"candidates","type":"UPDATE","id":"7"}`)
		require.NoError(t, err)
		require.Empty(t, l.cache.StageCandidates("s-2"))
		require.Len(t, l.cache.StageCandidates("s-1"), 1)
		require.Len(t, hub.messages, 1)
		require.Equal(t, wsmodels.MessageChange, hub.messages[0].Type)
		require.Equal(t, models.ChangeUpdate, hub.messages[0].Change)
		require.Equal(t, "candidates", hub.messages[0].Table)
		view, ok := hub.messages[0].Data.(candidateapimodels.CandidateView)
		require.True(t, ok)
		require.Equal(t, "Ana Perez", view.Name)
	})
	t.Run(`устаревшее изменение не перетирает кэш`, func(t *testing.T) {
		l, candidates, _ := newTestListener()
		require.NoError(t, l.reload())
		fresh := candidates.candidates["7"]
		fresh.CurrentStageID = "s-1"
		fresh.UpdatedAt = time.Now()
		l.cache.Candidates().Upsert(fresh)

		err := l.handleNotification(`{"table":"candidates","type":"UPDATE","id":"7"}`)
		require.NoError(t, err)
		cached, ok := l.cache.Candidates().Get("7")
		require.True(t, ok)
		require.Equal(t, "s-1", cached.CurrentStageID)
	})
	t.Run(`новый кандидат добавляется один раз`, func(t *testing.T) {
		l, candidates, _ := newTestListener()
		require.NoError(t, l.reload())
		candidates.candidates["8"] = dbmodels.Candidate{
			BaseModel:      dbmodels.BaseModel{ID: "8", UpdatedAt: time.Now()},
			ProcessID:      "p-1",
			CurrentStageID: "s-1",
			Status:         models.CandidateStatusActive,
		}
		require.NoError(t, l.handleNotification(`{"table":"candidates","type":"INSERT","id":"8"}`))
		require.NoError(t, l.handleNotification(`{"table":"candidates","type":"INSERT","id":"8"}`))
		require.Equal(t, 2, l.cache.Candidates().Len())
	})
	t.Run(`удаление этапа`, func(t *testing.T) {
		l, _, hub := newTestListener()
		require.NoError(t, l.reload())
		require.NoError(t, l.handleNotification(`{"table":"stages","type":"DELETE","id":"s-2"}`))
		require.Len(t, l.cache.ProcessStages("p-1"), 1)
		require.Equal(t, map[string]string{"id": "s-2"}, hub.messages[0].Data)
	})
	t.Run(`событие истории только рассылается`, func(t *testing.T) {
		l, _, hub := newTestListener()
		require.NoError(t, l.handleNotification(`{"table":"timeline","type":"INSERT","id":"e-1"}`))
		require.Len(t, hub.messages, 1)
		require.Equal(t, "timeline", hub.messages[0].Table)
	})
	t.Run(`некорректные уведомления`, func(t *testing.T) {
		l, _, hub := newTestListener()
		require.Error(t, l.handleNotification(`not json`))
		require.Error(t, l.handleNotification(`{"table":"candidates","type":"UPDATE"}`))
		require.Error(t, l.handleNotification(`{"table":"users","type":"UPDATE","id":"1"}`))
		require.Empty(t, hub.messages)
	})
}
