package processhandler

import (
	_ "embed"
	"recruitment-backend/models"
	processapimodels "recruitment-backend/models/api/process"
	dbmodels "recruitment-backend/models/db"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

//go:embed templates/default_stages.yml
var defaultStagesYml []byte

type stageTemplate struct {
	Stages []struct {
		Name        string `yaml:"name"`
		Responsible string `yaml:"responsible"`
	} `yaml:"stages"`
}

func loadStageTemplate(data []byte) ([]processapimodels.StageData, error) {
	tpl := stageTemplate{}
	if err := yaml.Unmarshal(data, &tpl); err != nil {
		return nil, errors.Wrap(err, "ошибка чтения шаблона этапов")
	}
	result := make([]processapimodels.StageData, 0, len(tpl.Stages))
	for _, stage := range tpl.Stages {
		result = append(result, processapimodels.StageData{
			Name:        stage.Name,
			Responsible: stage.Responsible,
		})
	}
	if len(result) == 0 {
		return nil, errors.New("шаблон этапов пустой")
	}
	return result, nil
}

// buildStages этапы нового процесса: первый всегда "Aplicación" без ответственного, порядок с 1
func buildStages(processID string, data []processapimodels.StageData) []dbmodels.Stage {
	result := make([]dbmodels.Stage, 0, len(data)+1)
	result = append(result, dbmodels.Stage{
		ProcessID:  processID,
		Name:       models.ApplicationStageName,
		StageOrder: 1,
	})
	for _, stage := range data {
		name := strings.TrimSpace(stage.Name)
		if name == "" || strings.EqualFold(name, models.ApplicationStageName) {
			continue
		}
		result = append(result, dbmodels.Stage{
			ProcessID:   processID,
			Name:        name,
			Responsible: nilIfEmpty(stage.Responsible),
			StageOrder:  len(result) + 1,
		})
	}
	return result
}

func nilIfEmpty(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}
