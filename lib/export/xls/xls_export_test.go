package xlsexport

import (
	"recruitment-backend/models"
	dbmodels "recruitment-backend/models/db"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportPipeline(t *testing.T) {
	luis := "Luis"
	process := dbmodels.Process{BaseModel: dbmodels.BaseModel{ID: "p-1"}, Title: "Backend Developer"}
	stages := []dbmodels.Stage{
		{BaseModel: dbmodels.BaseModel{ID: "s-2"}, ProcessID: "p-1", Name: "Revisión CV", Responsible: &luis, StageOrder: 2},
		{BaseModel: dbmodels.BaseModel{ID: "s-1"}, ProcessID: "p-1", Name: "Aplicación", StageOrder: 1},
	}
	applied := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	candidates := []dbmodels.Candidate{
		{BaseModel: dbmodels.BaseModel{ID: "7"}, ProcessID: "p-1", CurrentStageID: "s-2", Name: "Ana Perez", Email: "ana@mail.com",
			Status: models.CandidateStatusRejected, AppliedDate: applied},
		{BaseModel: dbmodels.BaseModel{ID: "8"}, ProcessID: "p-1", CurrentStageID: "s-2", Name: "Juan Soto", Email: "juan@mail.com",
			Phone: "+56 9 1111", Status: models.CandidateStatusActive, AppliedDate: applied, Comments: 2},
		{BaseModel: dbmodels.BaseModel{ID: "9"}, ProcessID: "p-1", CurrentStageID: "s-1", Name: "Eva Rojas", Email: "eva@mail.com",
			Status: models.CandidateStatusActive},
	}

	t.Run(`выгрузка пайплайна`, func(t *testing.T) {
		buf, err := impl{}.ExportPipeline(process, stages, candidates)
		require.NoError(t, err)
		f, err := excelize.OpenReader(buf)
		require.NoError(t, err)
		defer f.Close()

		title, err := f.GetCellValue(pipelineSheet, "A1")
		require.NoError(t, err)
		require.Equal(t, "Backend Developer", title)
		header, err := f.GetCellValue(pipelineSheet, "A2")
		require.NoError(t, err)
		require.Equal(t, "Candidato", header)

		rows, err := f.GetRows(pipelineSheet)
		require.NoError(t, err)
		require.Len(t, rows, 5)
		require.Equal(t, "Eva Rojas", rows[2][0])
		require.Equal(t, "Aplicación", rows[2][2])
		require.Equal(t, "Juan Soto", rows[3][0])
		require.Equal(t, "Luis", rows[3][3])
		require.Equal(t, "02.03.2026", rows[3][7])
		require.Equal(t, "Ana Perez", rows[4][0])
		require.Equal(t, "Rechazado", rows[4][4])

		summary, err := f.GetRows(stagesSheet)
		require.NoError(t, err)
		require.Len(t, summary, 3)
		require.Equal(t, []string{"2", "Revisión CV", "Luis", "1", "1"}, summary[2])
	})
	t.Run(`процесс без кандидатов`, func(t *testing.T) {
		buf, err := impl{}.ExportPipeline(process, stages, nil)
		require.NoError(t, err)
		f, err := excelize.OpenReader(buf)
		require.NoError(t, err)
		defer f.Close()
		rows, err := f.GetRows(pipelineSheet)
		require.NoError(t, err)
		require.Len(t, rows, 2)
	})
}
