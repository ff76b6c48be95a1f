package processhandler

import (
	"recruitment-backend/db"
	candidatestore "recruitment-backend/lib/candidate/store"
	pipelinecache "recruitment-backend/lib/pipeline-cache"
	stagestore "recruitment-backend/lib/process/stage-store"
	processstore "recruitment-backend/lib/process/store"
	"recruitment-backend/models"
	processapimodels "recruitment-backend/models/api/process"
	dbmodels "recruitment-backend/models/db"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Provider interface {
	Create(author string, data processapimodels.ProcessData) (id string, hMsg string, err error)
	Update(id string, data processapimodels.ProcessData) (hMsg string, err error)
	ChangeStatus(id string, status models.ProcessStatus) (hMsg string, err error)
	Delete(id string) (hMsg string, err error)
	GetByID(id string) (view processapimodels.ProcessView, hMsg string, err error)
	List(filter processapimodels.ProcessFilter) (list []processapimodels.ProcessView, err error)
	StageList(processID string) (list []processapimodels.StageView, hMsg string, err error)
	StageCreate(processID string, data processapimodels.StageData) (id string, hMsg string, err error)
	StageUpdate(processID, stageID string, data processapimodels.StageData) (hMsg string, err error)
	StageDelete(processID, stageID string) (hMsg string, err error)
	StageChangeOrder(processID, stageID string, newOrder int) (hMsg string, err error)
}

var Instance Provider

type txStores struct {
	processes processstore.Provider
	stages    stagestore.Provider
}

func NewHandler() {
	Instance = impl{
		store:          processstore.NewInstance(db.DB),
		stageStore:     stagestore.NewInstance(db.DB),
		candidateStore: candidatestore.NewInstance(db.DB),
		cache:          pipelinecache.Instance,
		inTx: func(fn func(s txStores) error) error {
			return db.DB.Transaction(func(tx *gorm.DB) error {
				return fn(txStores{
					processes: processstore.NewInstance(tx),
					stages:    stagestore.NewInstance(tx),
				})
			})
		},
	}
}

type impl struct {
	store          processstore.Provider
	stageStore     stagestore.Provider
	candidateStore candidatestore.Provider
	cache          pipelinecache.Provider
	inTx           func(fn func(s txStores) error) error
}

func (i impl) getLogger(processID string) *log.Entry {
	logger := log.WithField("process_id", processID)
	return logger
}

func (i impl) Create(author string, data processapimodels.ProcessData) (id string, hMsg string, err error) {
	if err = data.Validate(false); err != nil {
		return "", err.Error(), nil
	}
	stagesData := data.Stages
	if len(stagesData) == 0 {
		stagesData, err = loadStageTemplate(defaultStagesYml)
		if err != nil {
			return "", "", err
		}
	}
	status := data.Status
	if status == "" {
		status = models.ProcessStatusActive
	}
	manager := strings.TrimSpace(data.Manager)
	if manager == "" {
		manager = author
	}
	rec := dbmodels.Process{
		Title:       strings.TrimSpace(data.Title),
		Description: data.Description,
		Manager:     manager,
		SalaryRange: data.SalaryRange,
		Status:      status,
	}
	var stages []dbmodels.Stage
	err = i.inTx(func(s txStores) error {
		id, err = s.processes.Create(rec)
		if err != nil {
			return errors.Wrap(err, "ошибка создания процесса")
		}
		stages = buildStages(id, stagesData)
		if err = dbmodels.ValidateStageOrders(stages); err != nil {
			return err
		}
		for k, stage := range stages {
			stageID, err := s.stages.Create(stage)
			if err != nil {
				return errors.Wrap(err, "ошибка создания этапа процесса")
			}
			stages[k].ID = stageID
		}
		return nil
	})
	if err != nil {
		return "", "", err
	}
	i.syncProcess(id)
	i.getLogger(id).WithField("stages", len(stages)).Info("создан процесс подбора")
	return id, "", nil
}

func (i impl) Update(id string, data processapimodels.ProcessData) (hMsg string, err error) {
	if err = data.Validate(true); err != nil {
		return err.Error(), nil
	}
	rec, err := i.store.GetByID(id)
	if err != nil {
		return "", errors.Wrap(err, "ошибка получения процесса")
	}
	if rec == nil {
		return "процесс не найден", nil
	}
	updMap := map[string]interface{}{
		"title":        strings.TrimSpace(data.Title),
		"description":  data.Description,
		"manager":      strings.TrimSpace(data.Manager),
		"salary_range": data.SalaryRange,
	}
	if data.Status != "" {
		updMap["status"] = data.Status
	}
	if err = i.store.Update(id, updMap); err != nil {
		return "", errors.Wrap(err, "ошибка изменения процесса")
	}
	i.syncProcess(id)
	i.getLogger(id).Info("процесс подбора изменен")
	return "", nil
}

func (i impl) ChangeStatus(id string, status models.ProcessStatus) (hMsg string, err error) {
	if !status.IsValid() {
		return "неизвестный статус процесса", nil
	}
	rec, err := i.store.GetByID(id)
	if err != nil {
		return "", errors.Wrap(err, "ошибка получения процесса")
	}
	if rec == nil {
		return "процесс не найден", nil
	}
	if rec.Status == status {
		return "", nil
	}
	if err = i.store.Update(id, map[string]interface{}{"status": status}); err != nil {
		return "", errors.Wrap(err, "ошибка изменения статуса процесса")
	}
	i.syncProcess(id)
	i.getLogger(id).WithField("status", status).Info("изменен статус процесса подбора")
	return "", nil
}

// Delete удаляет процесс вместе с этапами, если в нем нет кандидатов
func (i impl) Delete(id string) (hMsg string, err error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return "", errors.Wrap(err, "ошибка получения процесса")
	}
	if rec == nil {
		return "процесс не найден", nil
	}
	count, err := i.candidateStore.CountByProcess(id)
	if err != nil {
		return "", errors.Wrap(err, "ошибка получения количества кандидатов процесса")
	}
	if count != 0 {
		return "нельзя удалить процесс, в котором есть кандидаты", nil
	}
	err = i.inTx(func(s txStores) error {
		for _, stage := range rec.Stages {
			if err := s.stages.Delete(id, stage.ID); err != nil {
				return errors.Wrap(err, "ошибка удаления этапа процесса")
			}
		}
		if err := s.processes.Delete(id); err != nil {
			return errors.Wrap(err, "ошибка удаления процесса")
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	if i.cache != nil {
		for _, stage := range rec.Stages {
			i.cache.Stages().Delete(stage.ID)
		}
		i.cache.Processes().Delete(id)
	}
	i.getLogger(id).Info("процесс подбора удален")
	return "", nil
}

func (i impl) GetByID(id string) (view processapimodels.ProcessView, hMsg string, err error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return view, "", errors.Wrap(err, "ошибка получения процесса")
	}
	if rec == nil {
		return view, "процесс не найден", nil
	}
	view = processapimodels.Convert(*rec)
	view.CandidatesTotal, err = i.candidatesTotal(id)
	if err != nil {
		return view, "", err
	}
	return view, "", nil
}

func (i impl) List(filter processapimodels.ProcessFilter) (list []processapimodels.ProcessView, err error) {
	recs, err := i.store.List(dbmodels.ProcessFilter{Status: filter.Status})
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения списка процессов")
	}
	list = make([]processapimodels.ProcessView, 0, len(recs))
	for _, rec := range recs {
		view := processapimodels.Convert(rec)
		view.CandidatesTotal, err = i.candidatesTotal(rec.ID)
		if err != nil {
			return nil, err
		}
		list = append(list, view)
	}
	return list, nil
}

func (i impl) StageList(processID string) (list []processapimodels.StageView, hMsg string, err error) {
	rec, err := i.store.GetByID(processID)
	if err != nil {
		return nil, "", errors.Wrap(err, "ошибка получения процесса")
	}
	if rec == nil {
		return nil, "процесс не найден", nil
	}
	stages, err := i.stageStore.List(processID)
	if err != nil {
		return nil, "", errors.Wrap(err, "ошибка получения списка этапов")
	}
	list = make([]processapimodels.StageView, 0, len(stages))
	for _, stage := range stages {
		list = append(list, processapimodels.StageConvert(stage))
	}
	return list, "", nil
}

// StageCreate добавляет этап в конец процесса
func (i impl) StageCreate(processID string, data processapimodels.StageData) (id string, hMsg string, err error) {
	if err = data.Validate(); err != nil {
		return "", err.Error(), nil
	}
	if strings.EqualFold(strings.TrimSpace(data.Name), models.ApplicationStageName) {
		return "", "этап с таким названием уже есть в процессе", nil
	}
	rec, err := i.store.GetByID(processID)
	if err != nil {
		return "", "", errors.Wrap(err, "ошибка получения процесса")
	}
	if rec == nil {
		return "", "процесс не найден", nil
	}
	id, err = i.stageStore.Create(dbmodels.Stage{
		ProcessID:   processID,
		Name:        strings.TrimSpace(data.Name),
		Responsible: nilIfEmpty(data.Responsible),
	})
	if err != nil {
		return "", "", errors.Wrap(err, "ошибка создания этапа")
	}
	i.syncProcess(processID)
	i.getLogger(processID).WithField("stage_id", id).Info("добавлен этап процесса")
	return id, "", nil
}

func (i impl) StageUpdate(processID, stageID string, data processapimodels.StageData) (hMsg string, err error) {
	if err = data.Validate(); err != nil {
		return err.Error(), nil
	}
	stage, hMsg, err := i.getStage(processID, stageID)
	if err != nil || hMsg != "" {
		return hMsg, err
	}
	updMap := map[string]interface{}{}
	if stage.StageOrder == 1 {
		if strings.TrimSpace(data.Name) != stage.Name || strings.TrimSpace(data.Responsible) != "" {
			return "первый этап процесса нельзя изменить", nil
		}
		return "", nil
	}
	updMap["name"] = strings.TrimSpace(data.Name)
	updMap["responsible"] = nilIfEmpty(data.Responsible)
	if err = i.stageStore.Update(processID, stageID, updMap); err != nil {
		return "", errors.Wrap(err, "ошибка изменения этапа")
	}
	i.syncProcess(processID)
	i.getLogger(processID).WithField("stage_id", stageID).Info("этап процесса изменен")
	return "", nil
}

// StageDelete удаляет этап без кандидатов, первый этап удалить нельзя
func (i impl) StageDelete(processID, stageID string) (hMsg string, err error) {
	stage, hMsg, err := i.getStage(processID, stageID)
	if err != nil || hMsg != "" {
		return hMsg, err
	}
	if stage.StageOrder == 1 {
		return "первый этап процесса нельзя удалить", nil
	}
	count, err := i.candidateStore.CountByStage(stageID)
	if err != nil {
		return "", errors.Wrap(err, "ошибка получения количества кандидатов этапа")
	}
	if count != 0 {
		return "нельзя удалить этап, на котором есть кандидаты", nil
	}
	err = i.inTx(func(s txStores) error {
		if err := s.stages.Delete(processID, stageID); err != nil {
			return errors.Wrap(err, "ошибка удаления этапа")
		}
		list, err := s.stages.List(processID)
		if err != nil {
			return errors.Wrap(err, "ошибка получения списка этапов")
		}
		newSet, changed := renumber(list, list)
		if !changed {
			return nil
		}
		return applyOrders(s.stages, processID, list, newSet)
	})
	if err != nil {
		return "", err
	}
	if i.cache != nil {
		i.cache.Stages().Delete(stageID)
	}
	i.syncProcess(processID)
	i.getLogger(processID).WithField("stage_id", stageID).Info("этап процесса удален")
	return "", nil
}

func (i impl) StageChangeOrder(processID, stageID string, newOrder int) (hMsg string, err error) {
	logger := i.getLogger(processID).
		WithField("stage_id", stageID)
	stage, hMsg, err := i.getStage(processID, stageID)
	if err != nil || hMsg != "" {
		return hMsg, err
	}
	if stage.StageOrder == 1 {
		return "первый этап процесса нельзя перемещать", nil
	}
	if newOrder < 2 {
		return "этап нельзя поставить перед первым этапом", nil
	}
	err = i.inTx(func(s txStores) error {
		list, err := s.stages.List(processID)
		if err != nil {
			return errors.Wrap(err, "ошибка получения списка этапов")
		}
		newSet, changed := reorderStages(list, stageID, newOrder)
		if !changed {
			return nil
		}
		return applyOrders(s.stages, processID, list, newSet)
	})
	if err != nil {
		return "", err
	}
	i.syncProcess(processID)
	logger.Info("изменен порядок списка этапов процесса")
	return "", nil
}

// applyOrders сохраняет новый порядок в два прохода, чтобы не нарушить уникальность (process_id, stage_order)
func applyOrders(store stagestore.Provider, processID string, before, after []dbmodels.Stage) error {
	oldOrders := make(map[string]int, len(before))
	for _, rec := range before {
		oldOrders[rec.ID] = rec.StageOrder
	}
	changed := make([]dbmodels.Stage, 0, len(after))
	for _, rec := range after {
		if oldOrders[rec.ID] != rec.StageOrder {
			changed = append(changed, rec)
		}
	}
	for _, rec := range changed {
		if err := store.Update(processID, rec.ID, map[string]interface{}{"stage_order": -rec.StageOrder}); err != nil {
			return errors.Wrap(err, "ошибка изменения порядка этапа")
		}
	}
	for _, rec := range changed {
		if err := store.Update(processID, rec.ID, map[string]interface{}{"stage_order": rec.StageOrder}); err != nil {
			return errors.Wrap(err, "ошибка изменения порядка этапа")
		}
	}
	return nil
}

func (i impl) getStage(processID, stageID string) (*dbmodels.Stage, string, error) {
	stage, err := i.stageStore.GetByID(stageID)
	if err != nil {
		return nil, "", errors.Wrap(err, "ошибка получения этапа")
	}
	if stage == nil || stage.ProcessID != processID {
		return nil, "этап не найден", nil
	}
	return stage, "", nil
}

func (i impl) candidatesTotal(processID string) (int, error) {
	if i.cache != nil && i.cache.IsLoaded() {
		return len(i.cache.ProcessCandidates(processID)), nil
	}
	count, err := i.candidateStore.CountByProcess(processID)
	if err != nil {
		return 0, errors.Wrap(err, "ошибка получения количества кандидатов процесса")
	}
	return int(count), nil
}

// syncProcess перечитывает процесс с этапами и обновляет кэш
func (i impl) syncProcess(processID string) {
	if i.cache == nil {
		return
	}
	rec, err := i.store.GetByID(processID)
	if err != nil || rec == nil {
		i.getLogger(processID).WithError(err).Warn("не удалось обновить процесс в кэше")
		return
	}
	i.cache.Processes().Upsert(*rec)
	for _, stage := range rec.Stages {
		i.cache.Stages().Upsert(stage)
	}
}
