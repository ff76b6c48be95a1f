package candidatestore

import (
	"recruitment-backend/models"
	dbmodels "recruitment-backend/models/db"
	"testing"

	sq "github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/require"
)

func TestFilterQuery(t *testing.T) {
	i := impl{}

	t.Run(`empty filter check`, func(t *testing.T) {
		sql, args, err := i.filterQuery(sq.Select("c.*").From("candidates c"), dbmodels.CandidateFilter{}).ToSql()
		require.Nil(t, err)
		require.Equal(t, "SELECT c.* FROM candidates c", sql)
		require.Len(t, args, 0)
	})

	t.Run(`full filter check`, func(t *testing.T) {
		filter := dbmodels.CandidateFilter{
			ProcessID: "p-1",
			StageID:   "s-2",
			Status:    models.CandidateStatusRejected,
			Search:    "Ana",
		}
		sql, args, err := i.filterQuery(sq.Select("count(*)").From("candidates c"), filter).ToSql()
		require.Nil(t, err)
		require.Equal(t, "SELECT count(*) FROM candidates c WHERE c.process_id = ? AND c.current_stage_id = ? AND c.status = ? AND (LOWER(c.name) LIKE ? OR LOWER(c.email) LIKE ? OR c.phone LIKE ?)", sql)
		require.Equal(t, []interface{}{"p-1", "s-2", models.CandidateStatusRejected, "%ana%", "%ana%", "%ana%"}, args)
	})
}
