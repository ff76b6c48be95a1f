package xlsexport

import (
	"bytes"
	dbmodels "recruitment-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

type Provider interface {
	ExportPipeline(process dbmodels.Process, stages []dbmodels.Stage, candidates []dbmodels.Candidate) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

const (
	pipelineSheet = "Pipeline"
	stagesSheet   = "Etapas"
)

var candidateHeaders = []string{"Candidato", "Contactos", "Etapa", "Responsable", "Estado", "Origen", "Ubicación", "Fecha de aplicación", "Última actualización", "Comentarios"}

var stageHeaders = []string{"Orden", "Etapa", "Responsable", "Activos", "Rechazados"}

var (
	candidateWidths = []float64{28, 32, 22, 22, 12, 16, 18, 14, 18, 12}
	stageWidths     = []float64{8, 28, 24, 10, 12}
)

// ExportPipeline выгружает кандидатов процесса по этапам и сводку по этапам
func (i impl) ExportPipeline(process dbmodels.Process, stages []dbmodels.Stage, candidates []dbmodels.Candidate) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("ошибка закрытия файла")
		}
	}()
	sheet := "Sheet1"
	row, err := writeTitle(f, sheet, 0, process.Title)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка формирования названия процесса в xlsx")
	}
	row, err = writeHeader(f, sheet, row, candidateHeaders, candidateWidths)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка формирования заголовка в xlsx")
	}
	sorted := make([]dbmodels.Stage, len(stages))
	copy(sorted, stages)
	dbmodels.SortStages(sorted)
	rows := pipelineRows(sorted, candidates)
	if len(rows) != 0 {
		_, err = writeCandidateData(f, sheet, rows, row)
		if err != nil {
			return nil, errors.Wrap(err, "ошибка формирования таблицы с данными в xlsx")
		}
	}
	if err = f.SetSheetName(sheet, pipelineSheet); err != nil {
		return nil, errors.Wrap(err, "ошибка переименования листа в xlsx")
	}
	if err = writeStageSummary(f, sorted, candidates); err != nil {
		return nil, errors.Wrap(err, "ошибка формирования сводки по этапам в xlsx")
	}
	return f.WriteToBuffer()
}

type pipelineRow struct {
	stage     dbmodels.Stage
	candidate dbmodels.Candidate
}

// pipelineRows кандидаты в порядке этапов, внутри этапа активные раньше отклоненных
func pipelineRows(stages []dbmodels.Stage, candidates []dbmodels.Candidate) []pipelineRow {
	result := make([]pipelineRow, 0, len(candidates))
	for _, stage := range stages {
		var rejected []pipelineRow
		for _, candidate := range candidates {
			if candidate.CurrentStageID != stage.ID {
				continue
			}
			if candidate.IsRejected() {
				rejected = append(rejected, pipelineRow{stage: stage, candidate: candidate})
				continue
			}
			result = append(result, pipelineRow{stage: stage, candidate: candidate})
		}
		result = append(result, rejected...)
	}
	return result
}

func writeCandidateData(f *excelize.File, sheet string, list []pipelineRow, row int) (int, error) {
	if err := styleDataRows(f, sheet, len(candidateHeaders), row+1, row+len(list)); err != nil {
		return row, err
	}
	for _, item := range list {
		row++
		values := []interface{}{
			item.candidate.Name,
			contacts(item.candidate),
			item.stage.Name,
			item.stage.GetResponsible(),
			string(item.candidate.Status),
			item.candidate.Origin,
			item.candidate.Location,
			formatDate(item.candidate.AppliedDate.IsZero(), item.candidate.AppliedDate.Format("02.01.2006")),
			formatDate(item.candidate.LastUpdated.IsZero(), item.candidate.LastUpdated.Format("02.01.2006 15:04")),
			item.candidate.Comments,
		}
		if err := writeRow(f, sheet, row, values); err != nil {
			return row, err
		}
	}
	return row, nil
}

func writeStageSummary(f *excelize.File, stages []dbmodels.Stage, candidates []dbmodels.Candidate) error {
	if _, err := f.NewSheet(stagesSheet); err != nil {
		return err
	}
	row, err := writeHeader(f, stagesSheet, 0, stageHeaders, stageWidths)
	if err != nil {
		return err
	}
	if len(stages) == 0 {
		return nil
	}
	if err = styleDataRows(f, stagesSheet, len(stageHeaders), row+1, row+len(stages)); err != nil {
		return err
	}
	for _, stage := range stages {
		row++
		active, rejected := 0, 0
		for _, candidate := range candidates {
			if candidate.CurrentStageID != stage.ID {
				continue
			}
			if candidate.IsRejected() {
				rejected++
			} else {
				active++
			}
		}
		values := []interface{}{stage.StageOrder, stage.Name, stage.GetResponsible(), active, rejected}
		if err = writeRow(f, stagesSheet, row, values); err != nil {
			return err
		}
	}
	return nil
}

func contacts(candidate dbmodels.Candidate) string {
	if candidate.Phone == "" {
		return candidate.Email
	}
	return candidate.Phone + "\r" + candidate.Email
}

func formatDate(isZero bool, value string) string {
	if isZero {
		return ""
	}
	return value
}
