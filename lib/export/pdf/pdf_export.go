package pdfexport

import (
	"bytes"
	"fmt"
	"recruitment-backend/models"
	dbmodels "recruitment-backend/models/db"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"
)

// CandidateCard данные карточки кандидата для выгрузки
type CandidateCard struct {
	Candidate    dbmodels.Candidate
	ProcessTitle string
	StageName    string
	Timeline     []dbmodels.TimelineEvent
}

var eventTitles = map[models.TimelineEventType]string{
	models.TimelineApplication: "Aplicación",
	models.TimelineComment:     "Comentario",
	models.TimelineStageChange: "Cambio de etapa",
	models.TimelineMovement:    "Movimiento",
}

func GenerateCandidateCard(card CandidateCard) (pdfFile []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("GenerateCandidateCard panic recover: %v", r)
		}
	}()
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(card.Candidate.Name, true)
	pdf.AddPage()
	// встроенные шрифты без юникода, испанские символы переводятся в cp1252
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, tr(card.Candidate.Name), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 7, tr(fmt.Sprintf("%s · %s", card.ProcessTitle, card.StageName)), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	fields := [][2]string{
		{"Email", card.Candidate.Email},
		{"Teléfono", card.Candidate.Phone},
		{"Ubicación", card.Candidate.Location},
		{"Origen", card.Candidate.Origin},
		{"Estado", string(card.Candidate.Status)},
		{"Comentarios", fmt.Sprint(card.Candidate.Comments)},
	}
	if !card.Candidate.AppliedDate.IsZero() {
		fields = append(fields, [2]string{"Fecha de aplicación", card.Candidate.AppliedDate.Format("02.01.2006")})
	}
	for _, field := range fields {
		if field[1] == "" {
			continue
		}
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(50, 7, tr(field[0]), "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(0, 7, tr(field[1]), "", 1, "L", false, 0, "")
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 9, tr("Historial"), "B", 1, "L", false, 0, "")
	pdf.Ln(2)
	if len(card.Timeline) == 0 {
		pdf.SetFont("Helvetica", "I", 11)
		pdf.CellFormat(0, 7, tr("Sin eventos"), "", 1, "L", false, 0, "")
	}
	for _, event := range card.Timeline {
		title := event.Title
		if title == "" {
			title = eventTitles[event.Type]
		}
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(0, 6, tr(fmt.Sprintf("%s  %s", event.Date.Format("02.01.2006 15:04"), title)), "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		if event.Description != "" {
			pdf.MultiCell(0, 5, tr(event.Description), "", "L", false)
		}
		if event.Author != "" {
			pdf.SetFont("Helvetica", "I", 9)
			pdf.CellFormat(0, 5, tr(event.Author), "", 1, "L", false, 0, "")
		}
		pdf.Ln(2)
	}
	if pdf.Error() != nil {
		return nil, pdf.Error()
	}

	buf := new(bytes.Buffer)
	err = pdf.Output(buf)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
