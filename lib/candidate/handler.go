package candidatehandler

import (
	"bytes"
	"context"
	"fmt"
	"recruitment-backend/db"
	candidatestore "recruitment-backend/lib/candidate/store"
	xlsexport "recruitment-backend/lib/export/xls"
	filestorage "recruitment-backend/lib/file-storage"
	outboxworker "recruitment-backend/lib/notification/outbox-worker"
	notificationstore "recruitment-backend/lib/notification/store"
	pipelinecache "recruitment-backend/lib/pipeline-cache"
	stagestore "recruitment-backend/lib/process/stage-store"
	processstore "recruitment-backend/lib/process/store"
	timelinestore "recruitment-backend/lib/timeline/store"
	connectionhub "recruitment-backend/lib/ws/hub/connection-hub"
	"recruitment-backend/models"
	candidateapimodels "recruitment-backend/models/api/candidate"
	notificationapimodels "recruitment-backend/models/api/notification"
	processapimodels "recruitment-backend/models/api/process"
	dbmodels "recruitment-backend/models/db"
	wsmodels "recruitment-backend/models/ws"
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Provider interface {
	Create(ctx context.Context, author string, data candidateapimodels.CandidateCreate, doc *dbmodels.UploadFileInfo) (view candidateapimodels.CandidateView, hMsg string, err error)
	GetByID(id string) (view candidateapimodels.CandidateView, hMsg string, err error)
	List(filter candidateapimodels.CandidateFilter) (list []candidateapimodels.CandidateView, rowCount int64, err error)
	Board(processID string) (list []candidateapimodels.BoardColumn, hMsg string, err error)
	ListByStage(processID, stageID string) (list []candidateapimodels.CandidateView, hMsg string, err error)
	ListRejected(processID string) (list []candidateapimodels.CandidateView, hMsg string, err error)
	NextStage(id string) (stage *processapimodels.StageView, hMsg string, err error)
	NearMe(userName string) (list []candidateapimodels.NearMeView, err error)
	MoveToStage(id, stageID, author string) (hMsg string, err error)
	Reject(id, reason, author string) (hMsg string, err error)
	Reactivate(id, author string) (hMsg string, err error)
	Hire(id, author string) (hMsg string, err error)
	UploadCV(ctx context.Context, id, author string, doc dbmodels.UploadFileInfo) (hMsg string, err error)
	GetCV(ctx context.Context, id string) (file *dbmodels.UploadFileInfo, hMsg string, err error)
	ExportPipeline(processID string) (file *bytes.Buffer, fileName string, hMsg string, err error)
	ExportCard(id string) (file []byte, fileName string, hMsg string, err error)
}

var Instance Provider

const pdfContentType = "application/pdf"

// txStores хранилища в рамках одной транзакции
type txStores struct {
	candidates    candidatestore.Provider
	timeline      timelinestore.Provider
	notifications notificationstore.Provider
}

func NewHandler() {
	Instance = impl{
		candidateStore: candidatestore.NewInstance(db.DB),
		stageStore:     stagestore.NewInstance(db.DB),
		processStore:   processstore.NewInstance(db.DB),
		timelineStore:  timelinestore.NewInstance(db.DB),
		files:          filestorage.Instance,
		xls:            xlsexport.Instance,
		cache:          pipelinecache.Instance,
		hub:            connectionhub.Instance,
		inTx: func(fn func(s txStores) error) error {
			return db.DB.Transaction(func(tx *gorm.DB) error {
				return fn(txStores{
					candidates:    candidatestore.NewInstance(tx),
					timeline:      timelinestore.NewInstance(tx),
					notifications: notificationstore.NewInstance(tx),
				})
			})
		},
		wake: func() {
			if outboxworker.Instance != nil {
				outboxworker.Instance.Wake()
			}
		},
	}
}

type impl struct {
	candidateStore candidatestore.Provider
	stageStore     stagestore.Provider
	processStore   processstore.Provider
	timelineStore  timelinestore.Provider
	files          filestorage.Provider
	xls            xlsexport.Provider
	cache          pipelinecache.Provider
	hub            connectionhub.Provider
	inTx           func(fn func(s txStores) error) error
	wake           func()
}

func (i impl) getLogger(candidateID, author string) *log.Entry {
	logger := log.WithField("candidate_id", candidateID)
	if author != "" {
		logger = logger.WithField("author", author)
	}
	return logger
}

// now время записи, с точностью как в БД, чтобы сравнение по updated_at в кэше было корректным
func now() time.Time {
	return time.Now().Truncate(time.Microsecond)
}

func (i impl) Create(ctx context.Context, author string, data candidateapimodels.CandidateCreate, doc *dbmodels.UploadFileInfo) (view candidateapimodels.CandidateView, hMsg string, err error) {
	logger := i.getLogger("", author).
		WithField("process_id", data.ProcessID)
	if err = data.Validate(); err != nil {
		return view, err.Error(), nil
	}
	if doc != nil && !isPDF(*doc) {
		return view, "документ кандидата должен быть в формате PDF", nil
	}
	if doc != nil && len(doc.Body) == 0 {
		return view, "файл пустой", nil
	}
	stage, err := i.stageStore.GetByID(data.StageID)
	if err != nil {
		return view, "", errors.Wrap(err, "ошибка получения этапа")
	}
	if stage == nil {
		return view, "этап не найден", nil
	}
	if stage.ProcessID != data.ProcessID {
		return view, "этап не относится к процессу", nil
	}
	process, err := i.processStore.GetByID(data.ProcessID)
	if err != nil {
		return view, "", errors.Wrap(err, "ошибка получения процесса")
	}
	if process == nil {
		return view, "процесс не найден", nil
	}

	var docID *string
	if doc != nil {
		if i.files == nil {
			return view, "", errors.New("хранилище файлов не настроено")
		}
		id, err := i.files.UploadDocument(ctx, "", *doc)
		if err != nil {
			return view, "", errors.Wrap(err, "ошибка загрузки документа кандидата")
		}
		docID = &id
	}

	ts := now()
	rec := dbmodels.Candidate{
		ProcessID:      data.ProcessID,
		CurrentStageID: stage.ID,
		Name:           strings.TrimSpace(data.Name),
		Email:          strings.TrimSpace(data.Email),
		Phone:          strings.TrimSpace(data.Phone),
		Location:       strings.TrimSpace(data.Location),
		Origin:         strings.TrimSpace(data.Origin),
		DocumentID:     docID,
		Status:         models.CandidateStatusActive,
		Comments:       0,
		AppliedDate:    time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, ts.Location()),
		LastUpdated:    ts,
	}
	var created *dbmodels.Candidate
	err = i.inTx(func(s txStores) error {
		created, err = s.candidates.Create(rec)
		if err != nil {
			return errors.Wrap(err, "ошибка создания кандидата")
		}
		event := dbmodels.TimelineEvent{
			CandidateID: created.ID,
			Type:        models.TimelineApplication,
			Title:       "Nueva aplicación",
			Description: fmt.Sprintf("%s aplicó al proceso \"%s\"", created.Name, process.Title),
			Author:      authorOrSystem(author),
			Date:        ts,
		}
		if _, err = s.timeline.Create(event); err != nil {
			return errors.Wrap(err, "ошибка добавления события в историю кандидата")
		}
		return nil
	})
	if err != nil {
		if docID != nil {
			i.dropDocument(ctx, logger, *docID)
		}
		return view, "", err
	}
	logger = logger.WithField("candidate_id", created.ID)
	if docID != nil {
		if err = i.files.AttachToCandidate(*docID, created.ID); err != nil {
			logger.WithError(err).Error("ошибка привязки документа к кандидату")
		}
	}
	if i.cache != nil {
		i.cache.Candidates().Insert(*created)
	}
	logger.Info("создан кандидат")
	created.CurrentStage = stage
	return candidateapimodels.Convert(*created), "", nil
}

func (i impl) GetByID(id string) (view candidateapimodels.CandidateView, hMsg string, err error) {
	rec, err := i.candidateStore.GetByID(id)
	if err != nil {
		return view, "", errors.Wrap(err, "ошибка получения кандидата")
	}
	if rec == nil {
		return view, "кандидат не найден", nil
	}
	return candidateapimodels.Convert(*rec), "", nil
}

func (i impl) List(filter candidateapimodels.CandidateFilter) (list []candidateapimodels.CandidateView, rowCount int64, err error) {
	dbFilter := filter.ToDB()
	rowCount, err = i.candidateStore.ListCount(dbFilter)
	if err != nil {
		return nil, 0, errors.Wrap(err, "ошибка получения количества кандидатов")
	}
	recs, err := i.candidateStore.List(dbFilter)
	if err != nil {
		return nil, 0, errors.Wrap(err, "ошибка получения списка кандидатов")
	}
	return i.convertList(recs), rowCount, nil
}

func (i impl) Board(processID string) (list []candidateapimodels.BoardColumn, hMsg string, err error) {
	stages, err := i.processStages(processID)
	if err != nil {
		return nil, "", err
	}
	if len(stages) == 0 {
		return nil, "процесс не найден", nil
	}
	list = make([]candidateapimodels.BoardColumn, 0, len(stages))
	for _, stage := range stages {
		candidates, err := i.stageCandidates(processID, stage.ID)
		if err != nil {
			return nil, "", err
		}
		list = append(list, candidateapimodels.BoardColumn{
			Stage:      processapimodels.StageConvert(stage),
			Candidates: i.convertList(candidates),
		})
	}
	return list, "", nil
}

func (i impl) ListByStage(processID, stageID string) (list []candidateapimodels.CandidateView, hMsg string, err error) {
	stages, err := i.processStages(processID)
	if err != nil {
		return nil, "", err
	}
	found := false
	for _, stage := range stages {
		if stage.ID == stageID {
			found = true
			break
		}
	}
	if !found {
		return nil, "этап не найден", nil
	}
	candidates, err := i.stageCandidates(processID, stageID)
	if err != nil {
		return nil, "", err
	}
	return i.convertList(candidates), "", nil
}

func (i impl) ListRejected(processID string) (list []candidateapimodels.CandidateView, hMsg string, err error) {
	var candidates []dbmodels.Candidate
	if i.cacheLoaded() {
		if _, ok := i.cache.Processes().Get(processID); !ok {
			return nil, "процесс не найден", nil
		}
		candidates = i.cache.RejectedCandidates(processID)
	} else {
		candidates, err = i.candidateStore.List(dbmodels.CandidateFilter{
			ProcessID: processID,
			Status:    models.CandidateStatusRejected,
		})
		if err != nil {
			return nil, "", errors.Wrap(err, "ошибка получения списка отклоненных кандидатов")
		}
	}
	return i.convertList(candidates), "", nil
}

func (i impl) NextStage(id string) (stage *processapimodels.StageView, hMsg string, err error) {
	rec, err := i.candidateStore.GetByID(id)
	if err != nil {
		return nil, "", errors.Wrap(err, "ошибка получения кандидата")
	}
	if rec == nil {
		return nil, "кандидат не найден", nil
	}
	stages, err := i.processStages(rec.ProcessID)
	if err != nil {
		return nil, "", err
	}
	for _, current := range stages {
		if current.ID != rec.CurrentStageID {
			continue
		}
		next := dbmodels.NextStage(stages, current)
		if next == nil {
			return nil, "", nil
		}
		view := processapimodels.StageConvert(*next)
		return &view, "", nil
	}
	return nil, "", nil
}

// NearMe активные кандидаты, по которым пользователь менеджер процесса или ответственный текущего этапа
func (i impl) NearMe(userName string) (list []candidateapimodels.NearMeView, err error) {
	list = []candidateapimodels.NearMeView{}
	if userName == "" || !i.cacheLoaded() {
		return list, nil
	}
	candidates := i.cache.Candidates().Filter(func(rec dbmodels.Candidate) bool {
		return rec.Status == models.CandidateStatusActive
	})
	for _, rec := range candidates {
		process, ok := i.cache.Processes().Get(rec.ProcessID)
		if !ok {
			continue
		}
		stage, ok := i.cache.Stages().Get(rec.CurrentStageID)
		if !ok {
			continue
		}
		isManager := process.Manager == userName
		isResponsible := stage.GetResponsible() == userName
		var reason candidateapimodels.RelevanceReason
		switch {
		case isManager && isResponsible:
			reason = candidateapimodels.RelevanceBoth
		case isManager:
			reason = candidateapimodels.RelevanceManager
		case isResponsible:
			reason = candidateapimodels.RelevanceResponsible
		default:
			continue
		}
		rec.CurrentStage = &stage
		list = append(list, candidateapimodels.NearMeView{
			CandidateView:   candidateapimodels.Convert(rec),
			ProcessTitle:    process.Title,
			StageName:       stage.Name,
			RelevanceReason: reason,
		})
	}
	sort.Slice(list, func(a, b int) bool {
		return list[a].LastUpdated.After(list[b].LastUpdated)
	})
	return list, nil
}

// MoveToStage переводит кандидата на этап своего процесса, отклоненный кандидат при этом снова становится активным
func (i impl) MoveToStage(id, stageID, author string) (hMsg string, err error) {
	logger := i.getLogger(id, author).
		WithField("stage_id", stageID)
	rec, err := i.candidateStore.GetByID(id)
	if err != nil {
		return "", errors.Wrap(err, "ошибка получения кандидата")
	}
	if rec == nil {
		return "кандидат не найден", nil
	}
	stage, err := i.stageStore.GetByID(stageID)
	if err != nil {
		return "", errors.Wrap(err, "ошибка получения этапа")
	}
	if stage == nil {
		return "этап не найден", nil
	}
	if err = rec.CheckMoveTo(*stage); err != nil {
		return err.Error(), nil
	}
	process, err := i.candidateProcess(*rec)
	if err != nil {
		return "", err
	}

	wasRejected := rec.IsRejected()
	description := ""
	if wasRejected {
		description = fmt.Sprintf("El candidato fue movido de Rechazado a \"%s\"", stage.Name)
	} else {
		fromName, err := i.currentStageName(*rec)
		if err != nil {
			return "", err
		}
		description = fmt.Sprintf("El candidato fue movido de \"%s\" a \"%s\"", fromName, stage.Name)
	}

	ts := now()
	updMap := map[string]interface{}{
		"current_stage_id": stage.ID,
		"last_updated":     ts,
		"updated_at":       ts,
	}
	if wasRejected {
		updMap["status"] = models.CandidateStatusActive
	}
	author = authorOrSystem(author)
	var notification *dbmodels.Notification
	err = i.inTx(func(s txStores) error {
		if err := s.candidates.Update(rec.ID, updMap); err != nil {
			return errors.Wrap(err, "ошибка перевода кандидата на этап")
		}
		event := dbmodels.TimelineEvent{
			CandidateID: rec.ID,
			Type:        models.TimelineStageChange,
			Title:       fmt.Sprintf("Movido a %s", stage.Name),
			Description: description,
			Author:      author,
			Date:        ts,
		}
		if _, err := s.timeline.Create(event); err != nil {
			return errors.Wrap(err, "ошибка добавления события в историю кандидата")
		}
		responsible := stage.GetResponsible()
		if responsible == "" {
			return nil
		}
		n := dbmodels.Notification{
			RecipientName:  responsible,
			CandidateID:    rec.ID,
			CandidateName:  rec.Name,
			StageID:        stage.ID,
			StageName:      stage.Name,
			ProcessTitle:   process.Title,
			MovedBy:        author,
			Status:         models.NotificationUnread,
			DeliveryStatus: models.DeliveryPending,
		}
		notificationID, err := s.notifications.Create(n)
		if err != nil {
			return errors.Wrap(err, "ошибка создания уведомления ответственному")
		}
		n.ID = notificationID
		n.CreatedAt = ts
		notification = &n
		return nil
	})
	if err != nil {
		return "", err
	}

	rec.CurrentStageID = stage.ID
	rec.LastUpdated = ts
	rec.UpdatedAt = ts
	if wasRejected {
		rec.Status = models.CandidateStatusActive
	}
	if i.cache != nil {
		i.cache.Candidates().Upsert(*rec)
	}
	if notification != nil {
		i.pushNotification(*notification)
		if i.wake != nil {
			i.wake()
		}
	}
	logger.WithField("reactivated", wasRejected).Info("кандидат переведен на этап")
	return "", nil
}

// Reject отклоняет кандидата, текущий этап сохраняется
func (i impl) Reject(id, reason, author string) (hMsg string, err error) {
	logger := i.getLogger(id, author)
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return "не указана причина отказа", nil
	}
	rec, err := i.candidateStore.GetByID(id)
	if err != nil {
		return "", errors.Wrap(err, "ошибка получения кандидата")
	}
	if rec == nil {
		return "кандидат не найден", nil
	}
	switch rec.Status {
	case models.CandidateStatusRejected:
		return "кандидат уже отклонен", nil
	case models.CandidateStatusHired:
		return "кандидат уже принят на работу", nil
	}
	ts := now()
	updMap := map[string]interface{}{
		"status":       models.CandidateStatusRejected,
		"last_updated": ts,
		"updated_at":   ts,
	}
	if err = i.candidateStore.Update(rec.ID, updMap); err != nil {
		return "", errors.Wrap(err, "ошибка отклонения кандидата")
	}
	rec.Status = models.CandidateStatusRejected
	rec.LastUpdated = ts
	rec.UpdatedAt = ts
	if i.cache != nil {
		i.cache.Candidates().Upsert(*rec)
	}
	event := dbmodels.TimelineEvent{
		CandidateID: rec.ID,
		Type:        models.TimelineMovement,
		Title:       "Candidato rechazado",
		Description: fmt.Sprintf("Motivo: %s", reason),
		Author:      authorOrSystem(author),
		Date:        ts,
	}
	if _, err = i.timelineStore.Create(event); err != nil {
		logger.WithError(err).Error("ошибка добавления события об отказе в историю кандидата")
	}
	logger.Info("кандидат отклонен")
	return "", nil
}

// Reactivate возвращает отклоненного кандидата на этап, на котором он был отклонен
func (i impl) Reactivate(id, author string) (hMsg string, err error) {
	rec, err := i.candidateStore.GetByID(id)
	if err != nil {
		return "", errors.Wrap(err, "ошибка получения кандидата")
	}
	if rec == nil {
		return "кандидат не найден", nil
	}
	if !rec.IsRejected() {
		return "кандидат не отклонен", nil
	}
	return i.MoveToStage(id, rec.CurrentStageID, author)
}

func (i impl) Hire(id, author string) (hMsg string, err error) {
	logger := i.getLogger(id, author)
	rec, err := i.candidateStore.GetByID(id)
	if err != nil {
		return "", errors.Wrap(err, "ошибка получения кандидата")
	}
	if rec == nil {
		return "кандидат не найден", nil
	}
	if rec.Status != models.CandidateStatusActive {
		return "принять на работу можно только активного кандидата", nil
	}
	ts := now()
	err = i.inTx(func(s txStores) error {
		updMap := map[string]interface{}{
			"status":       models.CandidateStatusHired,
			"last_updated": ts,
			"updated_at":   ts,
		}
		if err := s.candidates.Update(rec.ID, updMap); err != nil {
			return errors.Wrap(err, "ошибка изменения статуса кандидата")
		}
		event := dbmodels.TimelineEvent{
			CandidateID: rec.ID,
			Type:        models.TimelineMovement,
			Title:       "Candidato contratado",
			Description: "El candidato fue contratado",
			Author:      authorOrSystem(author),
			Date:        ts,
		}
		if _, err := s.timeline.Create(event); err != nil {
			return errors.Wrap(err, "ошибка добавления события в историю кандидата")
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	rec.Status = models.CandidateStatusHired
	rec.LastUpdated = ts
	rec.UpdatedAt = ts
	if i.cache != nil {
		i.cache.Candidates().Upsert(*rec)
	}
	logger.Info("кандидат принят на работу")
	return "", nil
}

func (i impl) UploadCV(ctx context.Context, id, author string, doc dbmodels.UploadFileInfo) (hMsg string, err error) {
	logger := i.getLogger(id, author)
	if !isPDF(doc) {
		return "документ кандидата должен быть в формате PDF", nil
	}
	if len(doc.Body) == 0 {
		return "файл пустой", nil
	}
	rec, err := i.candidateStore.GetByID(id)
	if err != nil {
		return "", errors.Wrap(err, "ошибка получения кандидата")
	}
	if rec == nil {
		return "кандидат не найден", nil
	}
	if i.files == nil {
		return "", errors.New("хранилище файлов не настроено")
	}
	docID, err := i.files.UploadDocument(ctx, rec.ID, doc)
	if err != nil {
		return "", errors.Wrap(err, "ошибка загрузки документа кандидата")
	}
	ts := now()
	updMap := map[string]interface{}{
		"document_id":  docID,
		"last_updated": ts,
		"updated_at":   ts,
	}
	if err = i.candidateStore.Update(rec.ID, updMap); err != nil {
		return "", errors.Wrap(err, "ошибка сохранения документа кандидата")
	}
	rec.DocumentID = &docID
	rec.LastUpdated = ts
	rec.UpdatedAt = ts
	if i.cache != nil {
		i.cache.Candidates().Upsert(*rec)
	}
	logger.WithField("doc_id", docID).Info("обновлено резюме кандидата")
	return "", nil
}

func (i impl) GetCV(ctx context.Context, id string) (file *dbmodels.UploadFileInfo, hMsg string, err error) {
	rec, err := i.candidateStore.GetByID(id)
	if err != nil {
		return nil, "", errors.Wrap(err, "ошибка получения кандидата")
	}
	if rec == nil {
		return nil, "кандидат не найден", nil
	}
	if rec.DocumentID == nil {
		return nil, "у кандидата нет резюме", nil
	}
	if i.files == nil {
		return nil, "", errors.New("хранилище файлов не настроено")
	}
	file, err = i.files.GetDocument(ctx, *rec.DocumentID)
	if err != nil {
		return nil, "", err
	}
	if file == nil {
		return nil, "резюме не найдено", nil
	}
	return file, "", nil
}

func (i impl) cacheLoaded() bool {
	return i.cache != nil && i.cache.IsLoaded()
}

func (i impl) processStages(processID string) ([]dbmodels.Stage, error) {
	if i.cacheLoaded() {
		return i.cache.ProcessStages(processID), nil
	}
	list, err := i.stageStore.List(processID)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения списка этапов")
	}
	return list, nil
}

func (i impl) stageCandidates(processID, stageID string) ([]dbmodels.Candidate, error) {
	if i.cacheLoaded() {
		return i.cache.StageCandidates(stageID), nil
	}
	list, err := i.candidateStore.List(dbmodels.CandidateFilter{
		ProcessID: processID,
		StageID:   stageID,
	})
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения списка кандидатов этапа")
	}
	result := make([]dbmodels.Candidate, 0, len(list))
	for _, rec := range list {
		if !rec.IsRejected() {
			result = append(result, rec)
		}
	}
	return result, nil
}

func (i impl) candidateProcess(rec dbmodels.Candidate) (*dbmodels.Process, error) {
	if rec.Process != nil {
		return rec.Process, nil
	}
	process, err := i.processStore.GetByID(rec.ProcessID)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения процесса")
	}
	if process == nil {
		return nil, errors.New("процесс кандидата не найден")
	}
	return process, nil
}

func (i impl) currentStageName(rec dbmodels.Candidate) (string, error) {
	if rec.CurrentStage != nil {
		return rec.CurrentStage.Name, nil
	}
	stage, err := i.stageStore.GetByID(rec.CurrentStageID)
	if err != nil {
		return "", errors.Wrap(err, "ошибка получения текущего этапа кандидата")
	}
	if stage == nil {
		return "", nil
	}
	return stage.Name, nil
}

func (i impl) convertList(recs []dbmodels.Candidate) []candidateapimodels.CandidateView {
	result := make([]candidateapimodels.CandidateView, 0, len(recs))
	for _, rec := range recs {
		if rec.CurrentStage == nil && i.cacheLoaded() {
			if stage, ok := i.cache.Stages().Get(rec.CurrentStageID); ok {
				rec.CurrentStage = &stage
			}
		}
		result = append(result, candidateapimodels.Convert(rec))
	}
	return result
}

func (i impl) pushNotification(rec dbmodels.Notification) {
	if i.hub == nil {
		return
	}
	view := notificationapimodels.Convert(rec)
	i.hub.SendMessage(wsmodels.ServerMessage{
		ToUserName: rec.RecipientName,
		Time:       rec.CreatedAt.Format(time.RFC3339),
		Type:       wsmodels.MessageNotification,
		Table:      "notifications",
		Change:     models.ChangeInsert,
		Data:       view,
		Msg:        view.Message,
	})
}

// dropDocument удаляет документ, к которому не удалось привязать кандидата
func (i impl) dropDocument(ctx context.Context, logger *log.Entry, docID string) {
	if err := i.files.DeleteDocument(ctx, docID); err != nil {
		logger.WithError(err).WithField("doc_id", docID).Error("документ кандидата остался без владельца")
	}
}

func isPDF(doc dbmodels.UploadFileInfo) bool {
	contentType := strings.ToLower(strings.TrimSpace(doc.ContentType))
	if idx := strings.Index(contentType, ";"); idx >= 0 {
		contentType = strings.TrimSpace(contentType[:idx])
	}
	return contentType == pdfContentType
}

func authorOrSystem(author string) string {
	if strings.TrimSpace(author) == "" {
		return models.SystemAuthor
	}
	return author
}
