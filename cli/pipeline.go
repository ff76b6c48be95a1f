package cli

import (
	"fmt"
	"recruitment-backend/initializers"
	candidatehandler "recruitment-backend/lib/candidate"
	processhandler "recruitment-backend/lib/process"
	candidateapimodels "recruitment-backend/models/api/candidate"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var boardHeaders = []string{"#", "Etapa", "Responsable", "Candidatos", "Nombres"}

func newPipelineCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "pipeline <process-id>",
		Short: "Вывод доски процесса подбора",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			initializers.InitBase()
			initializers.InitDBConnection(false)
			processhandler.NewHandler()
			candidatehandler.NewHandler()

			process, hMsg, err := processhandler.Instance.GetByID(args[0])
			if err != nil {
				return err
			}
			if hMsg != "" {
				return errors.New(hMsg)
			}
			board, hMsg, err := candidatehandler.Instance.Board(args[0])
			if err != nil {
				return err
			}
			if hMsg != "" {
				return errors.New(hMsg)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (%s)\n", process.Title, process.Status)
			fmt.Fprintln(out, renderTable(boardHeaders, boardRows(board), map[int]bool{0: true, 3: true}))
			return nil
		},
	}
}

func boardRows(board []candidateapimodels.BoardColumn) [][]string {
	rows := make([][]string, 0, len(board))
	for _, column := range board {
		names := make([]string, 0, len(column.Candidates))
		for _, candidate := range column.Candidates {
			names = append(names, candidate.Name)
		}
		responsible := column.Stage.Responsible
		if responsible == "" {
			responsible = "-"
		}
		rows = append(rows, []string{
			strconv.Itoa(column.Stage.StageOrder),
			column.Stage.Name,
			responsible,
			strconv.Itoa(len(column.Candidates)),
			strings.Join(names, ", "),
		})
	}
	return rows
}
