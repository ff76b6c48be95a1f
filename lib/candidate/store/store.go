package candidatestore

import (
	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	dbmodels "recruitment-backend/models/db"
	"strings"
)

type Provider interface {
	Create(rec dbmodels.Candidate) (*dbmodels.Candidate, error)
	Update(id string, updMap map[string]interface{}) error
	GetByID(id string) (*dbmodels.Candidate, error)
	List(filter dbmodels.CandidateFilter) ([]dbmodels.Candidate, error)
	ListCount(filter dbmodels.CandidateFilter) (int64, error)
	ListAll() ([]dbmodels.Candidate, error)
	CountByStage(stageID string) (int64, error)
	CountByProcess(processID string) (int64, error)
	IncrementComments(id string) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Candidate) (*dbmodels.Candidate, error) {
	err := i.db.
		Omit("Process", "CurrentStage").
		Create(&rec).
		Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (i impl) Update(id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	tx := i.db.
		Model(&dbmodels.Candidate{}).
		Where("id = ?", id).
		Updates(updMap)
	if err := tx.Error; err != nil {
		return err
	}
	if tx.RowsAffected == 0 {
		return errors.New("кандидат не найден")
	}
	return nil
}

func (i impl) GetByID(id string) (*dbmodels.Candidate, error) {
	rec := dbmodels.Candidate{}
	err := i.db.
		Model(&dbmodels.Candidate{}).
		Where("id = ?", id).
		Preload("CurrentStage").
		Preload("Process").
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) List(filter dbmodels.CandidateFilter) ([]dbmodels.Candidate, error) {
	query := i.filterQuery(sq.Select("c.*").From("candidates c"), filter).
		OrderBy("c.last_updated desc")
	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit)).Offset(uint64(filter.Offset))
	}
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "ошибка формирования запроса списка кандидатов")
	}
	list := []dbmodels.Candidate{}
	err = i.db.Raw(sql, args...).Scan(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListCount(filter dbmodels.CandidateFilter) (int64, error) {
	sql, args, err := i.filterQuery(sq.Select("count(*)").From("candidates c"), filter).ToSql()
	if err != nil {
		return 0, errors.Wrap(err, "ошибка формирования запроса количества кандидатов")
	}
	var count int64
	err = i.db.Raw(sql, args...).Scan(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (i impl) ListAll() ([]dbmodels.Candidate, error) {
	list := []dbmodels.Candidate{}
	err := i.db.
		Model(&dbmodels.Candidate{}).
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) CountByStage(stageID string) (int64, error) {
	var count int64
	err := i.db.
		Model(&dbmodels.Candidate{}).
		Where("current_stage_id = ?", stageID).
		Count(&count).
		Error
	return count, err
}

func (i impl) CountByProcess(processID string) (int64, error) {
	var count int64
	err := i.db.
		Model(&dbmodels.Candidate{}).
		Where("process_id = ?", processID).
		Count(&count).
		Error
	return count, err
}

func (i impl) IncrementComments(id string) error {
	return i.db.
		Model(&dbmodels.Candidate{}).
		Where("id = ?", id).
		Update("comments", gorm.Expr("comments + 1")).
		Error
}

func (i impl) filterQuery(query sq.SelectBuilder, filter dbmodels.CandidateFilter) sq.SelectBuilder {
	if filter.ProcessID != "" {
		query = query.Where(sq.Eq{"c.process_id": filter.ProcessID})
	}
	if filter.StageID != "" {
		query = query.Where(sq.Eq{"c.current_stage_id": filter.StageID})
	}
	if filter.Status != "" {
		query = query.Where(sq.Eq{"c.status": filter.Status})
	}
	if filter.Search != "" {
		searchValue := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where(sq.Or{
			sq.Like{"LOWER(c.name)": searchValue},
			sq.Like{"LOWER(c.email)": searchValue},
			sq.Like{"c.phone": searchValue},
		})
	}
	return query
}
