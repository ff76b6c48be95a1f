package processhandler

import (
	"recruitment-backend/models"
	processapimodels "recruitment-backend/models/api/process"
	dbmodels "recruitment-backend/models/db"
	"strconv"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func stages(ids ...string) []dbmodels.Stage {
	result := make([]dbmodels.Stage, 0, len(ids))
	for k, id := range ids {
		result = append(result, dbmodels.Stage{
			BaseModel:  dbmodels.BaseModel{ID: id},
			ProcessID:  "p-1",
			Name:       id,
			StageOrder: k + 1,
		})
	}
	return result
}

func ids(list []dbmodels.Stage) []string {
	result := make([]string, 0, len(list))
	for k, rec := range list {
		if rec.StageOrder != k+1 {
			return nil
		}
		result = append(result, rec.ID)
	}
	return result
}

func TestReorderStages(t *testing.T) {
	t.Run(`перенос вперед`, func(t *testing.T) {
		result, changed := reorderStages(stages("a", "b", "c", "d"), "d", 2)
		require.True(t, changed)
		require.Equal(t, []string{"a", "d", "b", "c"}, ids(result))
	})
	t.Run(`перенос назад`, func(t *testing.T) {
		result, changed := reorderStages(stages("a", "b", "c", "d"), "b", 4)
		require.True(t, changed)
		require.Equal(t, []string{"a", "c", "d", "b"}, ids(result))
	})
	t.Run(`номер больше количества этапов`, func(t *testing.T) {
		result, changed := reorderStages(stages("a", "b", "c"), "b", 10)
		require.True(t, changed)
		require.Equal(t, []string{"a", "c", "b"}, ids(result))
	})
	t.Run(`тот же номер`, func(t *testing.T) {
		result, changed := reorderStages(stages("a", "b", "c"), "c", 3)
		require.False(t, changed)
		require.Equal(t, []string{"a", "b", "c"}, ids(result))
	})
	t.Run(`первый этап не перемещается`, func(t *testing.T) {
		_, changed := reorderStages(stages("a", "b", "c"), "a", 3)
		require.False(t, changed)
		result, _ := reorderStages(stages("a", "b", "c"), "c", 1)
		require.Equal(t, []string{"a", "c", "b"}, ids(result))
	})
	t.Run(`неизвестный этап`, func(t *testing.T) {
		_, changed := reorderStages(stages("a", "b"), "x", 2)
		require.False(t, changed)
	})
}

func TestStageTemplate(t *testing.T) {
	t.Run(`шаблон по умолчанию`, func(t *testing.T) {
		data, err := loadStageTemplate(defaultStagesYml)
		require.NoError(t, err)
		list := buildStages("p-1", data)
		names := []string{}
		for k, rec := range list {
			require.Equal(t, k+1, rec.StageOrder)
			require.Equal(t, "p-1", rec.ProcessID)
			names = append(names, rec.Name)
		}
		require.Equal(t, []string{"Aplicación", "Revisión CV", "Entrevista Técnica", "Entrevista Final"}, names)
		require.Nil(t, list[0].Responsible)
		require.NoError(t, dbmodels.ValidateStageOrders(list))
	})
	t.Run(`пустой шаблон`, func(t *testing.T) {
		_, err := loadStageTemplate([]byte("stages: []"))
		require.Error(t, err)
	})
	t.Run(`первый этап добавляется всегда`, func(t *testing.T) {
		list := buildStages("p-1", []processapimodels.StageData{
			{Name: "Entrevista", Responsible: "Luis"},
			{Name: "aplicación", Responsible: "Pedro"},
		})
		require.Len(t, list, 2)
		require.Equal(t, models.ApplicationStageName, list[0].Name)
		require.Nil(t, list[0].Responsible)
		require.Equal(t, "Luis", list[1].GetResponsible())
	})
}

type orderUpdate struct {
	id    string
	order int
}

type fakeStageStore struct {
	stages  map[string]dbmodels.Stage
	updates []orderUpdate
	seq     int
}

func (f *fakeStageStore) Create(rec dbmodels.Stage) (string, error) {
	f.seq++
	rec.ID = "s-" + strconv.Itoa(f.seq)
	if rec.StageOrder == 0 {
		max := 0
		for _, stage := range f.stages {
			if stage.ProcessID == rec.ProcessID && stage.StageOrder > max {
				max = stage.StageOrder
			}
		}
		rec.StageOrder = max + 1
	}
	for _, stage := range f.stages {
		if stage.ProcessID == rec.ProcessID && stage.StageOrder == rec.StageOrder {
			return "", errors.New("duplicate stage order")
		}
	}
	f.stages[rec.ID] = rec
	return rec.ID, nil
}

// Update проверяет уникальность порядка, как индекс в БД
func (f *fakeStageStore) Update(processID, id string, updMap map[string]interface{}) error {
	rec := f.stages[id]
	if order, ok := updMap["stage_order"]; ok {
		newOrder := order.(int)
		for _, stage := range f.stages {
			if stage.ID != id && stage.ProcessID == processID && stage.StageOrder == newOrder {
				return errors.New("duplicate stage order")
			}
		}
		rec.StageOrder = newOrder
		f.updates = append(f.updates, orderUpdate{id: id, order: newOrder})
	}
	if name, ok := updMap["name"]; ok {
		rec.Name = name.(string)
	}
	if responsible, ok := updMap["responsible"]; ok {
		rec.Responsible = responsible.(*string)
	}
	f.stages[id] = rec
	return nil
}

func (f *fakeStageStore) GetByID(id string) (*dbmodels.Stage, error) {
	rec, ok := f.stages[id]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (f *fakeStageStore) List(processID string) ([]dbmodels.Stage, error) {
	result := []dbmodels.Stage{}
	for _, rec := range f.stages {
		if rec.ProcessID == processID {
			result = append(result, rec)
		}
	}
	dbmodels.SortStages(result)
	return result, nil
}

func (f *fakeStageStore) ListAll() ([]dbmodels.Stage, error) {
	result := []dbmodels.Stage{}
	for _, rec := range f.stages {
		result = append(result, rec)
	}
	return result, nil
}

func (f *fakeStageStore) Delete(processID, id string) error {
	delete(f.stages, id)
	return nil
}

type fakeProcessStore struct {
	processes map[string]dbmodels.Process
	stages    *fakeStageStore
}

func (f *fakeProcessStore) Create(rec dbmodels.Process) (string, error) {
	rec.ID = "p-" + strconv.Itoa(len(f.processes)+1)
	f.processes[rec.ID] = rec
	return rec.ID, nil
}

func (f *fakeProcessStore) Update(id string, updMap map[string]interface{}) error {
	rec, ok := f.processes[id]
	if !ok {
		return errors.New("процесс не найден")
	}
	if status, ok := updMap["status"]; ok {
		rec.Status = status.(models.ProcessStatus)
	}
	if title, ok := updMap["title"]; ok {
		rec.Title = title.(string)
	}
	f.processes[id] = rec
	return nil
}

func (f *fakeProcessStore) GetByID(id string) (*dbmodels.Process, error) {
	rec, ok := f.processes[id]
	if !ok {
		return nil, nil
	}
	rec.Stages, _ = f.stages.List(id)
	return &rec, nil
}

func (f *fakeProcessStore) List(filter dbmodels.ProcessFilter) ([]dbmodels.Process, error) {
	result := []dbmodels.Process{}
	for id := range f.processes {
		rec, _ := f.GetByID(id)
		if filter.Status == "" || rec.Status == filter.Status {
			result = append(result, *rec)
		}
	}
	return result, nil
}

func (f *fakeProcessStore) Delete(id string) error {
	delete(f.processes, id)
	return nil
}

type fakeCandidateCounter struct {
	byProcess map[string]int64
	byStage   map[string]int64
}

func (f fakeCandidateCounter) Create(rec dbmodels.Candidate) (*dbmodels.Candidate, error) {
	return &rec, nil
}

func (f fakeCandidateCounter) Update(id string, updMap map[string]interface{}) error {
	return nil
}

func (f fakeCandidateCounter) GetByID(id string) (*dbmodels.Candidate, error) {
	return nil, nil
}

func (f fakeCandidateCounter) List(filter dbmodels.CandidateFilter) ([]dbmodels.Candidate, error) {
	return nil, nil
}

func (f fakeCandidateCounter) ListCount(filter dbmodels.CandidateFilter) (int64, error) {
	return 0, nil
}

func (f fakeCandidateCounter) ListAll() ([]dbmodels.Candidate, error) {
	return nil, nil
}

func (f fakeCandidateCounter) CountByStage(stageID string) (int64, error) {
	return f.byStage[stageID], nil
}

func (f fakeCandidateCounter) CountByProcess(processID string) (int64, error) {
	return f.byProcess[processID], nil
}

func (f fakeCandidateCounter) IncrementComments(id string) error {
	return nil
}

func newTestHandler() (impl, *fakeProcessStore, *fakeStageStore, fakeCandidateCounter) {
	stageStore := &fakeStageStore{stages: map[string]dbmodels.Stage{}}
	processStore := &fakeProcessStore{processes: map[string]dbmodels.Process{}, stages: stageStore}
	counter := fakeCandidateCounter{byProcess: map[string]int64{}, byStage: map[string]int64{}}
	handler := impl{
		store:          processStore,
		stageStore:     stageStore,
		candidateStore: counter,
		inTx: func(fn func(s txStores) error) error {
			return fn(txStores{processes: processStore, stages: stageStore})
		},
	}
	return handler, processStore, stageStore, counter
}

func TestProcessHandler(t *testing.T) {
	t.Run(`создание процесса с шаблоном этапов`, func(t *testing.T) {
		handler, processStore, _, _ := newTestHandler()
		id, hMsg, err := handler.Create("Maria", processapimodels.ProcessData{Title: "Backend Developer"})
		require.NoError(t, err)
		require.Empty(t, hMsg)
		require.Equal(t, models.ProcessStatusActive, processStore.processes[id].Status)
		require.Equal(t, "Maria", processStore.processes[id].Manager)

		view, hMsg, err := handler.GetByID(id)
		require.NoError(t, err)
		require.Empty(t, hMsg)
		require.Len(t, view.Stages, 4)
		require.Equal(t, "Aplicación", view.Stages[0].Name)
		require.Equal(t, 4, view.Stages[3].StageOrder)
	})
	t.Run(`пустое название`, func(t *testing.T) {
		handler, processStore, _, _ := newTestHandler()
		_, hMsg, err := handler.Create("Maria", processapimodels.ProcessData{Title: " "})
		require.NoError(t, err)
		require.NotEmpty(t, hMsg)
		require.Empty(t, processStore.processes)
	})
	t.Run(`перемещение этапа в два прохода`, func(t *testing.T) {
		handler, _, stageStore, _ := newTestHandler()
		id, _, err := handler.Create("Maria", processapimodels.ProcessData{Title: "Backend Developer"})
		require.NoError(t, err)
		list, _ := stageStore.List(id)
		last := list[3]

		hMsg, err := handler.StageChangeOrder(id, last.ID, 2)
		require.NoError(t, err)
		require.Empty(t, hMsg)
		list, _ = stageStore.List(id)
		require.Equal(t, last.ID, list[1].ID)
		require.NoError(t, dbmodels.ValidateStageOrders(list))
		require.Len(t, stageStore.updates, 6)
		for _, upd := range stageStore.updates[:3] {
			require.Less(t, upd.order, 0)
		}
	})
	t.Run(`первый этап нельзя удалить или переместить`, func(t *testing.T) {
		handler, _, stageStore, _ := newTestHandler()
		id, _, _ := handler.Create("Maria", processapimodels.ProcessData{Title: "Backend Developer"})
		list, _ := stageStore.List(id)
		hMsg, err := handler.StageDelete(id, list[0].ID)
		require.NoError(t, err)
		require.NotEmpty(t, hMsg)
		hMsg, err = handler.StageChangeOrder(id, list[0].ID, 3)
		require.NoError(t, err)
		require.NotEmpty(t, hMsg)
	})
	t.Run(`удаление этапа перенумеровывает остальные`, func(t *testing.T) {
		handler, _, stageStore, _ := newTestHandler()
		id, _, _ := handler.Create("Maria", processapimodels.ProcessData{Title: "Backend Developer"})
		list, _ := stageStore.List(id)
		hMsg, err := handler.StageDelete(id, list[1].ID)
		require.NoError(t, err)
		require.Empty(t, hMsg)
		list, _ = stageStore.List(id)
		require.Len(t, list, 3)
		require.NoError(t, dbmodels.ValidateStageOrders(list))
		require.Equal(t, 3, list[2].StageOrder)
	})
	t.Run(`этап с кандидатами не удаляется`, func(t *testing.T) {
		handler, _, stageStore, counter := newTestHandler()
		id, _, _ := handler.Create("Maria", processapimodels.ProcessData{Title: "Backend Developer"})
		list, _ := stageStore.List(id)
		counter.byStage[list[2].ID] = 1
		hMsg, err := handler.StageDelete(id, list[2].ID)
		require.NoError(t, err)
		require.Equal(t, "нельзя удалить этап, на котором есть кандидаты", hMsg)
	})
	t.Run(`добавление этапа в конец`, func(t *testing.T) {
		handler, _, stageStore, _ := newTestHandler()
		id, _, _ := handler.Create("Maria", processapimodels.ProcessData{Title: "Backend Developer"})
		stageID, hMsg, err := handler.StageCreate(id, processapimodels.StageData{Name: "Oferta", Responsible: "Luis"})
		require.NoError(t, err)
		require.Empty(t, hMsg)
		require.Equal(t, 5, stageStore.stages[stageID].StageOrder)
		require.Equal(t, "Luis", stageStore.stages[stageID].GetResponsible())
	})
	t.Run(`удаление процесса`, func(t *testing.T) {
		handler, processStore, stageStore, counter := newTestHandler()
		id, _, _ := handler.Create("Maria", processapimodels.ProcessData{Title: "Backend Developer"})
		counter.byProcess[id] = 2
		hMsg, err := handler.Delete(id)
		require.NoError(t, err)
		require.NotEmpty(t, hMsg)

		counter.byProcess[id] = 0
		hMsg, err = handler.Delete(id)
		require.NoError(t, err)
		require.Empty(t, hMsg)
		require.Empty(t, processStore.processes)
		require.Empty(t, stageStore.stages)
	})
	t.Run(`смена статуса`, func(t *testing.T) {
		handler, processStore, _, _ := newTestHandler()
		id, _, _ := handler.Create("Maria", processapimodels.ProcessData{Title: "Backend Developer"})
		hMsg, err := handler.ChangeStatus(id, models.ProcessStatusPaused)
		require.NoError(t, err)
		require.Empty(t, hMsg)
		require.Equal(t, models.ProcessStatusPaused, processStore.processes[id].Status)
		hMsg, err = handler.ChangeStatus(id, "Abierto")
		require.NoError(t, err)
		require.NotEmpty(t, hMsg)
	})
}
