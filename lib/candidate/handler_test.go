package candidatehandler

import (
	"bytes"
	"context"
	xlsexport "recruitment-backend/lib/export/xls"
	pipelinecache "recruitment-backend/lib/pipeline-cache"
	"recruitment-backend/models"
	candidateapimodels "recruitment-backend/models/api/candidate"
	dbmodels "recruitment-backend/models/db"
	wsmodels "recruitment-backend/models/ws"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type testEnv struct {
	state   *fakeState
	handler impl
	cache   pipelinecache.Provider
	hub     *fakeHub
	files   fakeFiles
	woken   int
}

func strPtr(value string) *string {
	return &value
}

func init() {
	xlsexport.NewHandler()
}

// newTestEnv процесс из четырех этапов и кандидат "7" на втором этапе
func newTestEnv(t *testing.T) *testEnv {
	state := newFakeState()
	state.processes["p-1"] = dbmodels.Process{
		BaseModel: dbmodels.BaseModel{ID: "p-1"},
		Title:     "Backend Developer",
		Manager:   "Maria",
		Status:    models.ProcessStatusActive,
	}
	state.processes["p-2"] = dbmodels.Process{
		BaseModel: dbmodels.BaseModel{ID: "p-2"},
		Title:     "QA",
		Manager:   "Pedro",
		Status:    models.ProcessStatusActive,
	}
	state.stages["s-1"] = dbmodels.Stage{BaseModel: dbmodels.BaseModel{ID: "s-1"}, ProcessID: "p-1", Name: "Aplicación", StageOrder: 1}
	state.stages["s-2"] = dbmodels.Stage{BaseModel: dbmodels.BaseModel{ID: "s-2"}, ProcessID: "p-1", Name: "Revisión CV", StageOrder: 2, Responsible: strPtr("Luis")}
	state.stages["s-3"] = dbmodels.Stage{BaseModel: dbmodels.BaseModel{ID: "s-3"}, ProcessID: "p-1", Name: "Entrevista Técnica", StageOrder: 3, Responsible: strPtr("Carla")}
	state.stages["s-4"] = dbmodels.Stage{BaseModel: dbmodels.BaseModel{ID: "s-4"}, ProcessID: "p-1", Name: "Entrevista Final", StageOrder: 4, Responsible: strPtr("Maria")}
	state.stages["s-9"] = dbmodels.Stage{BaseModel: dbmodels.BaseModel{ID: "s-9"}, ProcessID: "p-2", Name: "Aplicación", StageOrder: 1}
	past := time.Now().Add(-time.Hour).Truncate(time.Microsecond)
	state.candidates["7"] = dbmodels.Candidate{
		BaseModel:      dbmodels.BaseModel{ID: "7", UpdatedAt: past},
		ProcessID:      "p-1",
		CurrentStageID: "s-2",
		Name:           "Ana Perez",
		Email:          "ana@example.com",
		Status:         models.CandidateStatusActive,
		LastUpdated:    past,
	}

	cache := pipelinecache.NewCache()
	processes, _ := fakeProcessStore{state}.List(dbmodels.ProcessFilter{})
	stages, _ := fakeStageStore{state}.ListAll()
	candidates, _ := fakeCandidateStore{state}.ListAll()
	cache.Load(processes, stages, candidates)

	env := &testEnv{
		state: state,
		cache: cache,
		hub:   &fakeHub{},
		files: fakeFiles{fakeState: state, attached: map[string]string{}},
	}
	env.handler = impl{
		candidateStore: fakeCandidateStore{state},
		stageStore:     fakeStageStore{state},
		processStore:   fakeProcessStore{state},
		timelineStore:  fakeTimelineStore{state},
		files:          env.files,
		xls:            xlsexport.Instance,
		cache:          cache,
		hub:            env.hub,
		inTx:           state.inTx,
		wake:           func() { env.woken++ },
	}
	return env
}

func (e *testEnv) setStatus(t *testing.T, id string, status models.CandidateStatus) {
	rec := e.state.candidates[id]
	rec.Status = status
	e.state.candidates[id] = rec
	require.True(t, e.cache.Candidates().Upsert(rec))
}

func TestMoveToStage(t *testing.T) {
	t.Run(`перевод на следующий этап`, func(t *testing.T) {
		env := newTestEnv(t)
		hMsg, err := env.handler.MoveToStage("7", "s-3", "Maria")
		require.NoError(t, err)
		require.Empty(t, hMsg)

		rec := env.state.candidates["7"]
		require.Equal(t, "s-3", rec.CurrentStageID)
		require.Equal(t, models.CandidateStatusActive, rec.Status)

		events := env.state.eventsOf("7", "")
		require.Len(t, events, 1)
		require.Equal(t, models.TimelineStageChange, events[0].Type)
		require.Equal(t, "Movido a Entrevista Técnica", events[0].Title)
		require.Equal(t, `El candidato fue movido de "Revisión CV" a "Entrevista Técnica"`, events[0].Description)
		require.Equal(t, "Maria", events[0].Author)

		cached, ok := env.cache.Candidates().Get("7")
		require.True(t, ok)
		require.Equal(t, "s-3", cached.CurrentStageID)
	})
	t.Run(`отклоненный кандидат снова активен`, func(t *testing.T) {
		env := newTestEnv(t)
		env.setStatus(t, "7", models.CandidateStatusRejected)
		hMsg, err := env.handler.MoveToStage("7", "s-3", "Maria")
		require.NoError(t, err)
		require.Empty(t, hMsg)

		rec := env.state.candidates["7"]
		require.Equal(t, "s-3", rec.CurrentStageID)
		require.Equal(t, models.CandidateStatusActive, rec.Status)

		events := env.state.eventsOf("7", models.TimelineStageChange)
		require.Len(t, events, 1)
		require.Equal(t, `El candidato fue movido de Rechazado a "Entrevista Técnica"`, events[0].Description)
	})
	t.Run(`отклоненный кандидат на любой этап процесса`, func(t *testing.T) {
		for _, stageID := range []string{"s-1", "s-2", "s-3", "s-4"} {
			env := newTestEnv(t)
			env.setStatus(t, "7", models.CandidateStatusRejected)
			hMsg, err := env.handler.MoveToStage("7", stageID, "Maria")
			require.NoError(t, err)
			require.Empty(t, hMsg)
			require.Equal(t, stageID, env.state.candidates["7"].CurrentStageID)
			require.Equal(t, models.CandidateStatusActive, env.state.candidates["7"].Status)
			require.Len(t, env.state.eventsOf("7", ""), 1)
		}
	})
	t.Run(`уведомление ответственному`, func(t *testing.T) {
		env := newTestEnv(t)
		_, err := env.handler.MoveToStage("7", "s-3", "Maria")
		require.NoError(t, err)
		require.Len(t, env.state.notifications, 1)
		n := env.state.notifications[0]
		require.Equal(t, "Carla", n.RecipientName)
		require.Equal(t, "Ana Perez", n.CandidateName)
		require.Equal(t, "Entrevista Técnica", n.StageName)
		require.Equal(t, "Backend Developer", n.ProcessTitle)
		require.Equal(t, "Maria", n.MovedBy)
		require.Equal(t, models.NotificationUnread, n.Status)
		require.Equal(t, models.DeliveryPending, n.DeliveryStatus)
		require.Equal(t, 1, env.woken)
		require.Len(t, env.hub.messages, 1)
		require.Equal(t, "Carla", env.hub.messages[0].ToUserName)
		require.Equal(t, wsmodels.MessageNotification, env.hub.messages[0].Type)
	})
	t.Run(`этап без ответственного`, func(t *testing.T) {
		env := newTestEnv(t)
		_, err := env.handler.MoveToStage("7", "s-1", "Maria")
		require.NoError(t, err)
		require.Empty(t, env.state.notifications)
		require.Equal(t, 0, env.woken)
	})
	t.Run(`этап другого процесса`, func(t *testing.T) {
		env := newTestEnv(t)
		hMsg, err := env.handler.MoveToStage("7", "s-9", "Maria")
		require.NoError(t, err)
		require.NotEmpty(t, hMsg)
		require.Equal(t, "s-2", env.state.candidates["7"].CurrentStageID)
		require.Empty(t, env.state.timeline)
		require.Empty(t, env.state.notifications)
	})
	t.Run(`этап не найден`, func(t *testing.T) {
		env := newTestEnv(t)
		hMsg, err := env.handler.MoveToStage("7", "s-404", "Maria")
		require.NoError(t, err)
		require.Equal(t, "этап не найден", hMsg)
		require.Empty(t, env.state.timeline)
	})
	t.Run(`текущий этап`, func(t *testing.T) {
		env := newTestEnv(t)
		hMsg, err := env.handler.MoveToStage("7", "s-2", "Maria")
		require.NoError(t, err)
		require.NotEmpty(t, hMsg)
		require.Empty(t, env.state.timeline)
	})
	t.Run(`ошибка сохранения откатывает перевод`, func(t *testing.T) {
		env := newTestEnv(t)
		env.state.failCandidateUpdate = true
		_, err := env.handler.MoveToStage("7", "s-3", "Maria")
		require.Error(t, err)
		require.Equal(t, "s-2", env.state.candidates["7"].CurrentStageID)
		require.Empty(t, env.state.timeline)
		require.Empty(t, env.state.notifications)
		cached, _ := env.cache.Candidates().Get("7")
		require.Equal(t, "s-2", cached.CurrentStageID)
	})
	t.Run(`ошибка истории откатывает перевод`, func(t *testing.T) {
		env := newTestEnv(t)
		env.state.failTimeline = true
		_, err := env.handler.MoveToStage("7", "s-3", "Maria")
		require.Error(t, err)
		require.Equal(t, "s-2", env.state.candidates["7"].CurrentStageID)
		require.Empty(t, env.state.notifications)
	})
	t.Run(`ошибка уведомления откатывает перевод`, func(t *testing.T) {
		env := newTestEnv(t)
		env.state.failNotification = true
		_, err := env.handler.MoveToStage("7", "s-3", "Maria")
		require.Error(t, err)
		require.Equal(t, "s-2", env.state.candidates["7"].CurrentStageID)
		require.Empty(t, env.state.timeline)
	})
}

func TestScenarioStage2To3(t *testing.T) {
	env := newTestEnv(t)
	env.setStatus(t, "7", models.CandidateStatusRejected)
	_, err := env.handler.MoveToStage("7", "s-3", "Maria")
	require.NoError(t, err)
	require.Equal(t, models.CandidateStatusActive, env.state.candidates["7"].Status)
	require.Equal(t, 3, env.state.stages[env.state.candidates["7"].CurrentStageID].StageOrder)
	require.Len(t, env.state.eventsOf("7", models.TimelineStageChange), 1)
}

func TestReject(t *testing.T) {
	t.Run(`отказ кандидату`, func(t *testing.T) {
		env := newTestEnv(t)
		hMsg, err := env.handler.Reject("7", "No cumple requisitos", "Maria")
		require.NoError(t, err)
		require.Empty(t, hMsg)

		rec := env.state.candidates["7"]
		require.Equal(t, models.CandidateStatusRejected, rec.Status)
		require.Equal(t, "s-2", rec.CurrentStageID)

		events := env.state.eventsOf("7", "")
		require.Len(t, events, 1)
		require.Equal(t, models.TimelineMovement, events[0].Type)
		require.Equal(t, "Candidato rechazado", events[0].Title)
		require.Equal(t, "Motivo: No cumple requisitos", events[0].Description)
		require.Empty(t, env.state.notifications)

		cached, _ := env.cache.Candidates().Get("7")
		require.Equal(t, models.CandidateStatusRejected, cached.Status)
		require.Equal(t, "s-2", cached.CurrentStageID)
		require.Empty(t, env.cache.StageCandidates("s-2"))
		require.Len(t, env.cache.RejectedCandidates("p-1"), 1)
	})
	t.Run(`пустая причина`, func(t *testing.T) {
		env := newTestEnv(t)
		hMsg, err := env.handler.Reject("7", "  ", "Maria")
		require.NoError(t, err)
		require.NotEmpty(t, hMsg)
		require.Equal(t, models.CandidateStatusActive, env.state.candidates["7"].Status)
	})
	t.Run(`ошибка сохранения`, func(t *testing.T) {
		env := newTestEnv(t)
		env.state.failCandidateUpdate = true
		_, err := env.handler.Reject("7", "No cumple requisitos", "Maria")
		require.Error(t, err)
		require.Empty(t, env.state.timeline)
		cached, _ := env.cache.Candidates().Get("7")
		require.Equal(t, models.CandidateStatusActive, cached.Status)
	})
	t.Run(`ошибка истории не отменяет отказ`, func(t *testing.T) {
		env := newTestEnv(t)
		env.state.failTimeline = true
		hMsg, err := env.handler.Reject("7", "No cumple requisitos", "Maria")
		require.NoError(t, err)
		require.Empty(t, hMsg)
		require.Equal(t, models.CandidateStatusRejected, env.state.candidates["7"].Status)
	})
	t.Run(`повторный отказ`, func(t *testing.T) {
		env := newTestEnv(t)
		_, err := env.handler.Reject("7", "No cumple requisitos", "Maria")
		require.NoError(t, err)
		hMsg, err := env.handler.Reject("7", "No cumple requisitos", "Maria")
		require.NoError(t, err)
		require.Equal(t, "кандидат уже отклонен", hMsg)
		require.Len(t, env.state.eventsOf("7", ""), 1)
	})
}

func TestReactivate(t *testing.T) {
	t.Run(`возврат на сохраненный этап`, func(t *testing.T) {
		env := newTestEnv(t)
		_, err := env.handler.Reject("7", "No cumple requisitos", "Maria")
		require.NoError(t, err)
		hMsg, err := env.handler.Reactivate("7", "Maria")
		require.NoError(t, err)
		require.Empty(t, hMsg)
		rec := env.state.candidates["7"]
		require.Equal(t, models.CandidateStatusActive, rec.Status)
		require.Equal(t, "s-2", rec.CurrentStageID)
		events := env.state.eventsOf("7", models.TimelineStageChange)
		require.Len(t, events, 1)
		require.Equal(t, `El candidato fue movido de Rechazado a "Revisión CV"`, events[0].Description)
	})
	t.Run(`активного кандидата нельзя вернуть`, func(t *testing.T) {
		env := newTestEnv(t)
		hMsg, err := env.handler.Reactivate("7", "Maria")
		require.NoError(t, err)
		require.Equal(t, "кандидат не отклонен", hMsg)
	})
}

func TestHire(t *testing.T) {
	env := newTestEnv(t)
	hMsg, err := env.handler.Hire("7", "Maria")
	require.NoError(t, err)
	require.Empty(t, hMsg)
	require.Equal(t, models.CandidateStatusHired, env.state.candidates["7"].Status)
	require.Len(t, env.state.eventsOf("7", models.TimelineMovement), 1)

	hMsg, err = env.handler.MoveToStage("7", "s-3", "Maria")
	require.NoError(t, err)
	require.NotEmpty(t, hMsg)
}

func TestCreate(t *testing.T) {
	data := candidateapimodels.CandidateCreate{
		Name:      "Juan Soto",
		Email:     "juan@example.com",
		Phone:     "+56 9 1234 5678",
		ProcessID: "p-1",
		StageID:   "s-1",
	}
	pdf := &dbmodels.UploadFileInfo{FileName: "cv.pdf", ContentType: "application/pdf", Body: []byte("%PDF-1.4")}

	t.Run(`кандидат с документом`, func(t *testing.T) {
		env := newTestEnv(t)
		view, hMsg, err := env.handler.Create(context.Background(), "Maria", data, pdf)
		require.NoError(t, err)
		require.Empty(t, hMsg)
		require.NotEmpty(t, view.ID)
		require.Equal(t, models.CandidateStatusActive, view.Status)
		require.Equal(t, 0, view.Comments)
		require.Equal(t, time.Now().Format("2006-01-02"), view.AppliedDate)
		require.Equal(t, "Aplicación", view.CurrentStageName)
		require.NotEmpty(t, view.DocumentID)
		require.Equal(t, view.ID, env.files.attached[view.DocumentID])

		events := env.state.eventsOf(view.ID, "")
		require.Len(t, events, 1)
		require.Equal(t, models.TimelineApplication, events[0].Type)

		_, ok := env.cache.Candidates().Get(view.ID)
		require.True(t, ok)
	})
	t.Run(`ошибка загрузки документа`, func(t *testing.T) {
		env := newTestEnv(t)
		env.state.failUpload = true
		_, _, err := env.handler.Create(context.Background(), "Maria", data, pdf)
		require.Error(t, err)
		require.Len(t, env.state.candidates, 1)
		require.Empty(t, env.state.timeline)
	})
	t.Run(`документ не pdf`, func(t *testing.T) {
		env := newTestEnv(t)
		doc := &dbmodels.UploadFileInfo{FileName: "cv.docx", ContentType: "application/msword", Body: []byte("doc")}
		_, hMsg, err := env.handler.Create(context.Background(), "Maria", data, doc)
		require.NoError(t, err)
		require.NotEmpty(t, hMsg)
		require.Len(t, env.state.candidates, 1)
		require.Empty(t, env.state.files)
	})
	t.Run(`этап другого процесса`, func(t *testing.T) {
		env := newTestEnv(t)
		wrong := data
		wrong.StageID = "s-9"
		_, hMsg, err := env.handler.Create(context.Background(), "Maria", wrong, nil)
		require.NoError(t, err)
		require.Equal(t, "этап не относится к процессу", hMsg)
		require.Len(t, env.state.candidates, 1)
	})
	t.Run(`неверная почта`, func(t *testing.T) {
		env := newTestEnv(t)
		wrong := data
		wrong.Email = "juan"
		_, hMsg, err := env.handler.Create(context.Background(), "Maria", wrong, nil)
		require.NoError(t, err)
		require.NotEmpty(t, hMsg)
	})
	t.Run(`ошибка создания не оставляет истории`, func(t *testing.T) {
		env := newTestEnv(t)
		env.state.failCandidateCreate = true
		_, _, err := env.handler.Create(context.Background(), "Maria", data, nil)
		require.Error(t, err)
		require.Empty(t, env.state.timeline)
	})
	t.Run(`пустой документ`, func(t *testing.T) {
		env := newTestEnv(t)
		empty := &dbmodels.UploadFileInfo{FileName: "cv.pdf", ContentType: "application/pdf"}
		_, hMsg, err := env.handler.Create(context.Background(), "Maria", data, empty)
		require.NoError(t, err)
		require.Equal(t, "файл пустой", hMsg)
		require.Len(t, env.state.candidates, 1)
		require.Empty(t, env.state.files)
	})
	t.Run(`ошибка создания удаляет загруженный документ`, func(t *testing.T) {
		env := newTestEnv(t)
		env.state.failCandidateCreate = true
		_, _, err := env.handler.Create(context.Background(), "Maria", data, pdf)
		require.Error(t, err)
		require.Len(t, env.state.candidates, 1)
		require.Empty(t, env.state.files)
		require.Empty(t, env.files.attached)
	})
}

func TestBoardReads(t *testing.T) {
	env := newTestEnv(t)
	_, _, err := env.handler.Create(context.Background(), "Maria", candidateapimodels.CandidateCreate{
		Name:      "Juan Soto",
		Email:     "juan@example.com",
		ProcessID: "p-1",
		StageID:   "s-2",
	}, nil)
	require.NoError(t, err)
	_, err = env.handler.Reject("7", "No cumple requisitos", "Maria")
	require.NoError(t, err)

	t.Run(`доска без отклоненных`, func(t *testing.T) {
		board, hMsg, err := env.handler.Board("p-1")
		require.NoError(t, err)
		require.Empty(t, hMsg)
		require.Len(t, board, 4)
		require.Equal(t, "s-1", board[0].Stage.ID)
		require.Len(t, board[1].Candidates, 1)
		require.Equal(t, "Juan Soto", board[1].Candidates[0].Name)
	})
	t.Run(`кандидаты этапа`, func(t *testing.T) {
		list, hMsg, err := env.handler.ListByStage("p-1", "s-2")
		require.NoError(t, err)
		require.Empty(t, hMsg)
		require.Len(t, list, 1)
		_, hMsg, err = env.handler.ListByStage("p-1", "s-9")
		require.NoError(t, err)
		require.Equal(t, "этап не найден", hMsg)
	})
	t.Run(`отклоненные`, func(t *testing.T) {
		list, _, err := env.handler.ListRejected("p-1")
		require.NoError(t, err)
		require.Len(t, list, 1)
		require.Equal(t, "7", list[0].ID)
	})
	t.Run(`следующий этап`, func(t *testing.T) {
		next, hMsg, err := env.handler.NextStage("7")
		require.NoError(t, err)
		require.Empty(t, hMsg)
		require.NotNil(t, next)
		require.Equal(t, "s-3", next.ID)
		require.Equal(t, 3, next.StageOrder)
	})
	t.Run(`после последнего этапа ничего нет`, func(t *testing.T) {
		_, err := env.handler.MoveToStage("7", "s-4", "Maria")
		require.NoError(t, err)
		next, hMsg, err := env.handler.NextStage("7")
		require.NoError(t, err)
		require.Empty(t, hMsg)
		require.Nil(t, next)
	})
	t.Run(`кандидаты рядом`, func(t *testing.T) {
		list, err := env.handler.NearMe("Luis")
		require.NoError(t, err)
		require.Len(t, list, 1)
		require.Equal(t, "Juan Soto", list[0].Name)
		require.Equal(t, candidateapimodels.RelevanceResponsible, list[0].RelevanceReason)

		list, err = env.handler.NearMe("Maria")
		require.NoError(t, err)
		require.Len(t, list, 2)
		for _, item := range list {
			if item.ID == "7" {
				require.Equal(t, candidateapimodels.RelevanceBoth, item.RelevanceReason)
			} else {
				require.Equal(t, candidateapimodels.RelevanceManager, item.RelevanceReason)
			}
		}
	})
}

func TestCV(t *testing.T) {
	env := newTestEnv(t)
	hMsg, err := env.handler.UploadCV(context.Background(), "7", "Maria", dbmodels.UploadFileInfo{
		FileName:    "cv.pdf",
		ContentType: "application/pdf; charset=binary",
		Body:        []byte("%PDF-1.4"),
	})
	require.NoError(t, err)
	require.Empty(t, hMsg)
	require.NotNil(t, env.state.candidates["7"].DocumentID)

	file, hMsg, err := env.handler.GetCV(context.Background(), "7")
	require.NoError(t, err)
	require.Empty(t, hMsg)
	require.Equal(t, "cv.pdf", file.FileName)

	hMsg, err = env.handler.UploadCV(context.Background(), "7", "Maria", dbmodels.UploadFileInfo{
		FileName:    "cv.png",
		ContentType: "image/png",
		Body:        []byte("png"),
	})
	require.NoError(t, err)
	require.NotEmpty(t, hMsg)
}

func TestExport(t *testing.T) {
	t.Run(`выгрузка процесса`, func(t *testing.T) {
		env := newTestEnv(t)
		hMsg, err := env.handler.Reject("7", "No cumple requisitos", "Luis")
		require.NoError(t, err)
		require.Empty(t, hMsg)

		file, fileName, hMsg, err := env.handler.ExportPipeline("p-1")
		require.NoError(t, err)
		require.Empty(t, hMsg)
		require.NotZero(t, file.Len())
		require.Equal(t, "pipeline_Backend_Developer.xlsx", fileName)

		_, _, hMsg, err = env.handler.ExportPipeline("p-404")
		require.NoError(t, err)
		require.Equal(t, "процесс не найден", hMsg)
	})
	t.Run(`карточка кандидата`, func(t *testing.T) {
		env := newTestEnv(t)
		hMsg, err := env.handler.MoveToStage("7", "s-3", "Luis")
		require.NoError(t, err)
		require.Empty(t, hMsg)

		file, fileName, hMsg, err := env.handler.ExportCard("7")
		require.NoError(t, err)
		require.Empty(t, hMsg)
		require.True(t, bytes.HasPrefix(file, []byte("%PDF-")))
		require.Equal(t, "candidato_Ana_Perez.pdf", fileName)

		_, _, hMsg, err = env.handler.ExportCard("8")
		require.NoError(t, err)
		require.Equal(t, "кандидат не найден", hMsg)
	})
}
