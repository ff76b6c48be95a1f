package realtime

import (
	candidatestore "recruitment-backend/lib/candidate/store"
	pipelinecache "recruitment-backend/lib/pipeline-cache"
	stagestore "recruitment-backend/lib/process/stage-store"
	processstore "recruitment-backend/lib/process/store"
	dbmodels "recruitment-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// LoadCache полностью перечитывает процессы, этапы и кандидатов в кэш
func LoadCache(cache pipelinecache.Provider, processes processstore.Provider, stages stagestore.Provider, candidates candidatestore.Provider) error {
	processList, err := processes.List(dbmodels.ProcessFilter{})
	if err != nil {
		return errors.Wrap(err, "ошибка загрузки процессов в кэш")
	}
	stageList, err := stages.ListAll()
	if err != nil {
		return errors.Wrap(err, "ошибка загрузки этапов в кэш")
	}
	candidateList, err := candidates.ListAll()
	if err != nil {
		return errors.Wrap(err, "ошибка загрузки кандидатов в кэш")
	}
	cache.Load(processList, stageList, candidateList)
	log.
		WithField("processes", len(processList)).
		WithField("stages", len(stageList)).
		WithField("candidates", len(candidateList)).
		Info("кэш пайплайна загружен")
	return nil
}
