package models

// TimelineEventType закрытый список типов событий в истории кандидата
type TimelineEventType string

const (
	TimelineApplication TimelineEventType = "application"  // кандидат добавлен в процесс
	TimelineComment     TimelineEventType = "comment"      // комментарий
	TimelineStageChange TimelineEventType = "stage_change" // перевод на другой этап
	TimelineMovement    TimelineEventType = "movement"     // смена статуса (отказ, найм)
)

var timelineIcons = map[TimelineEventType]string{
	TimelineApplication: "FileText",
	TimelineComment:     "MessageCircle",
	TimelineStageChange: "ArrowRight",
	TimelineMovement:    "X",
}

func (t TimelineEventType) IsValid() bool {
	_, ok := timelineIcons[t]
	return ok
}

// Icon иконка для отображения события на клиенте
func (t TimelineEventType) Icon() string {
	return timelineIcons[t]
}
