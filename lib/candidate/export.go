package candidatehandler

import (
	"bytes"
	"fmt"
	pdfexport "recruitment-backend/lib/export/pdf"
	dbmodels "recruitment-backend/models/db"
	"strings"

	"github.com/pkg/errors"
)

// ExportPipeline выгрузка доски процесса в xlsx, включая отклоненных кандидатов
func (i impl) ExportPipeline(processID string) (file *bytes.Buffer, fileName string, hMsg string, err error) {
	process, err := i.processStore.GetByID(processID)
	if err != nil {
		return nil, "", "", errors.Wrap(err, "ошибка получения процесса")
	}
	if process == nil {
		return nil, "", "процесс не найден", nil
	}
	stages, err := i.processStages(processID)
	if err != nil {
		return nil, "", "", err
	}
	var candidates []dbmodels.Candidate
	if i.cacheLoaded() {
		candidates = i.cache.ProcessCandidates(processID)
	} else {
		candidates, err = i.candidateStore.List(dbmodels.CandidateFilter{ProcessID: processID})
		if err != nil {
			return nil, "", "", errors.Wrap(err, "ошибка получения списка кандидатов процесса")
		}
	}
	file, err = i.xls.ExportPipeline(*process, stages, candidates)
	if err != nil {
		return nil, "", "", errors.Wrap(err, "ошибка выгрузки процесса в xlsx")
	}
	return file, fmt.Sprintf("pipeline_%s.xlsx", fileSafe(process.Title)), "", nil
}

// ExportCard карточка кандидата с историей в pdf
func (i impl) ExportCard(id string) (file []byte, fileName string, hMsg string, err error) {
	rec, err := i.candidateStore.GetByID(id)
	if err != nil {
		return nil, "", "", errors.Wrap(err, "ошибка получения кандидата")
	}
	if rec == nil {
		return nil, "", "кандидат не найден", nil
	}
	process, err := i.candidateProcess(*rec)
	if err != nil {
		return nil, "", "", err
	}
	stageName, err := i.currentStageName(*rec)
	if err != nil {
		return nil, "", "", err
	}
	events, err := i.timelineStore.List(id)
	if err != nil {
		return nil, "", "", errors.Wrap(err, "ошибка получения истории кандидата")
	}
	file, err = pdfexport.GenerateCandidateCard(pdfexport.CandidateCard{
		Candidate:    *rec,
		ProcessTitle: process.Title,
		StageName:    stageName,
		Timeline:     events,
	})
	if err != nil {
		return nil, "", "", errors.Wrap(err, "ошибка формирования карточки кандидата")
	}
	return file, fmt.Sprintf("candidato_%s.pdf", fileSafe(rec.Name)), "", nil
}

func fileSafe(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "export"
	}
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, name)
}
