package db

import (
	"fmt"

	"github.com/pkg/errors"
)

// ChangeChannel канал LISTEN/NOTIFY по умолчанию
const ChangeChannel = "pipeline_changes"

// ChangeTables таблицы, изменения которых рассылаются подписчикам
var ChangeTables = []string{"processes", "stages", "candidates", "timeline"}

const notifyFunctionTpl = `
CREATE OR REPLACE FUNCTION notify_pipeline_change() RETURNS trigger AS $$
DECLARE
	rec_id text;
BEGIN
	IF TG_OP = 'DELETE' THEN
		rec_id := OLD.id;
	ELSE
		rec_id := NEW.id;
	END IF;
	PERFORM pg_notify('%s', json_build_object('table', TG_TABLE_NAME, 'type', TG_OP, 'id', rec_id)::text);
	RETURN NULL;
END;
$$ LANGUAGE plpgsql;`

// CreateChangeTriggers создает функцию и триггеры, отправляющие NOTIFY при изменении записей
func CreateChangeTriggers(channel string) error {
	if err := DB.Exec(fmt.Sprintf(notifyFunctionTpl, channel)).Error; err != nil {
		return errors.Wrap(err, "ошибка создания функции notify_pipeline_change")
	}
	for _, table := range ChangeTables {
		trigger := fmt.Sprintf("%s_notify_change", table)
		if err := DB.Exec(fmt.Sprintf("DROP TRIGGER IF EXISTS %s ON %s", trigger, table)).Error; err != nil {
			return errors.Wrapf(err, "ошибка удаления триггера %s", trigger)
		}
		sql := fmt.Sprintf("CREATE TRIGGER %s AFTER INSERT OR UPDATE OR DELETE ON %s FOR EACH ROW EXECUTE FUNCTION notify_pipeline_change()", trigger, table)
		if err := DB.Exec(sql).Error; err != nil {
			return errors.Wrapf(err, "ошибка создания триггера %s", trigger)
		}
	}
	return nil
}
