package cli

import (
	candidateapimodels "recruitment-backend/models/api/candidate"
	processapimodels "recruitment-backend/models/api/process"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBoardRows(t *testing.T) {
	board := []candidateapimodels.BoardColumn{
		{
			Stage:      processapimodels.StageView{ID: "s1", Name: "Aplicación", StageOrder: 1},
			Candidates: []candidateapimodels.CandidateView{{Name: "Ana Pérez"}, {Name: "Luis Soto"}},
		},
		{
			Stage:      processapimodels.StageView{ID: "s2", Name: "Revisión CV", Responsible: "María López", StageOrder: 2},
			Candidates: []candidateapimodels.CandidateView{},
		},
	}

	t.Run(`строки доски`, func(t *testing.T) {
		rows := boardRows(board)
		require.Len(t, rows, 2)
		require.Equal(t, []string{"1", "Aplicación", "-", "2", "Ana Pérez, Luis Soto"}, rows[0])
		require.Equal(t, []string{"2", "Revisión CV", "María López", "0", ""}, rows[1])
	})

	t.Run(`таблица`, func(t *testing.T) {
		out := renderTable(boardHeaders, boardRows(board), map[int]bool{0: true, 3: true})
		require.True(t, strings.Contains(out, "Revisión CV"))
		require.True(t, strings.Contains(out, "ETAPA") || strings.Contains(out, "Etapa"))
		require.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 6)
	})

	t.Run(`пустые заголовки`, func(t *testing.T) {
		require.Equal(t, "", renderTable(nil, nil, nil))
	})
}
