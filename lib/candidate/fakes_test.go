package candidatehandler

import (
	"context"
	"recruitment-backend/models"
	dbmodels "recruitment-backend/models/db"
	wsmodels "recruitment-backend/models/ws"
	"sort"
	"strconv"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/pkg/errors"
)

var errStore = errors.New("store error")

type fakeState struct {
	seq           int
	processes     map[string]dbmodels.Process
	stages        map[string]dbmodels.Stage
	candidates    map[string]dbmodels.Candidate
	timeline      []dbmodels.TimelineEvent
	notifications []dbmodels.Notification
	files         map[string]dbmodels.UploadFileInfo

	failCandidateCreate bool
	failCandidateUpdate bool
	failTimeline        bool
	failNotification    bool
	failUpload          bool
}

func newFakeState() *fakeState {
	return &fakeState{
		processes:  map[string]dbmodels.Process{},
		stages:     map[string]dbmodels.Stage{},
		candidates: map[string]dbmodels.Candidate{},
		files:      map[string]dbmodels.UploadFileInfo{},
	}
}

func (f *fakeState) nextID(prefix string) string {
	f.seq++
	return prefix + "-" + strconv.Itoa(f.seq)
}

// inTx откатывает изменения, если функция вернула ошибку
func (f *fakeState) inTx(fn func(s txStores) error) error {
	candidates := make(map[string]dbmodels.Candidate, len(f.candidates))
	for k, v := range f.candidates {
		candidates[k] = v
	}
	timeline := append([]dbmodels.TimelineEvent{}, f.timeline...)
	notifications := append([]dbmodels.Notification{}, f.notifications...)
	err := fn(txStores{
		candidates:    fakeCandidateStore{f},
		timeline:      fakeTimelineStore{f},
		notifications: fakeNotificationStore{f},
	})
	if err != nil {
		f.candidates = candidates
		f.timeline = timeline
		f.notifications = notifications
	}
	return err
}

func (f *fakeState) eventsOf(candidateID string, eventType models.TimelineEventType) []dbmodels.TimelineEvent {
	result := []dbmodels.TimelineEvent{}
	for _, rec := range f.timeline {
		if rec.CandidateID == candidateID && (eventType == "" || rec.Type == eventType) {
			result = append(result, rec)
		}
	}
	return result
}

type fakeCandidateStore struct {
	*fakeState
}

func (f fakeCandidateStore) Create(rec dbmodels.Candidate) (*dbmodels.Candidate, error) {
	if f.failCandidateCreate {
		return nil, errStore
	}
	rec.ID = f.nextID("c")
	rec.CreatedAt = time.Now()
	rec.UpdatedAt = rec.CreatedAt
	f.candidates[rec.ID] = rec
	return &rec, nil
}

func (f fakeCandidateStore) Update(id string, updMap map[string]interface{}) error {
	if f.failCandidateUpdate {
		return errStore
	}
	rec, ok := f.candidates[id]
	if !ok {
		return errors.New("кандидат не найден")
	}
	for key, value := range updMap {
		switch key {
		case "current_stage_id":
			rec.CurrentStageID = value.(string)
		case "status":
			rec.Status = value.(models.CandidateStatus)
		case "last_updated":
			rec.LastUpdated = value.(time.Time)
		case "updated_at":
			rec.UpdatedAt = value.(time.Time)
		case "document_id":
			docID := value.(string)
			rec.DocumentID = &docID
		}
	}
	f.candidates[id] = rec
	return nil
}

func (f fakeCandidateStore) GetByID(id string) (*dbmodels.Candidate, error) {
	rec, ok := f.candidates[id]
	if !ok {
		return nil, nil
	}
	if stage, ok := f.stages[rec.CurrentStageID]; ok {
		rec.CurrentStage = &stage
	}
	if process, ok := f.processes[rec.ProcessID]; ok {
		rec.Process = &process
	}
	return &rec, nil
}

func (f fakeCandidateStore) List(filter dbmodels.CandidateFilter) ([]dbmodels.Candidate, error) {
	result := []dbmodels.Candidate{}
	for _, rec := range f.candidates {
		if filter.ProcessID != "" && rec.ProcessID != filter.ProcessID {
			continue
		}
		if filter.StageID != "" && rec.CurrentStageID != filter.StageID {
			continue
		}
		if filter.Status != "" && rec.Status != filter.Status {
			continue
		}
		result = append(result, rec)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (f fakeCandidateStore) ListCount(filter dbmodels.CandidateFilter) (int64, error) {
	list, _ := f.List(filter)
	return int64(len(list)), nil
}

func (f fakeCandidateStore) ListAll() ([]dbmodels.Candidate, error) {
	return f.List(dbmodels.CandidateFilter{})
}

func (f fakeCandidateStore) CountByStage(stageID string) (int64, error) {
	return f.ListCount(dbmodels.CandidateFilter{StageID: stageID})
}

func (f fakeCandidateStore) CountByProcess(processID string) (int64, error) {
	return f.ListCount(dbmodels.CandidateFilter{ProcessID: processID})
}

func (f fakeCandidateStore) IncrementComments(id string) error {
	rec := f.candidates[id]
	rec.Comments++
	f.candidates[id] = rec
	return nil
}

type fakeStageStore struct {
	*fakeState
}

func (f fakeStageStore) Create(rec dbmodels.Stage) (string, error) {
	rec.ID = f.nextID("s")
	f.stages[rec.ID] = rec
	return rec.ID, nil
}

func (f fakeStageStore) Update(processID, id string, updMap map[string]interface{}) error {
	return nil
}

func (f fakeStageStore) GetByID(id string) (*dbmodels.Stage, error) {
	rec, ok := f.stages[id]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (f fakeStageStore) List(processID string) ([]dbmodels.Stage, error) {
	result := []dbmodels.Stage{}
	for _, rec := range f.stages {
		if rec.ProcessID == processID {
			result = append(result, rec)
		}
	}
	dbmodels.SortStages(result)
	return result, nil
}

func (f fakeStageStore) ListAll() ([]dbmodels.Stage, error) {
	result := []dbmodels.Stage{}
	for _, rec := range f.stages {
		result = append(result, rec)
	}
	return result, nil
}

func (f fakeStageStore) Delete(processID, id string) error {
	delete(f.stages, id)
	return nil
}

type fakeProcessStore struct {
	*fakeState
}

func (f fakeProcessStore) Create(rec dbmodels.Process) (string, error) {
	rec.ID = f.nextID("p")
	f.processes[rec.ID] = rec
	return rec.ID, nil
}

func (f fakeProcessStore) Update(id string, updMap map[string]interface{}) error {
	return nil
}

func (f fakeProcessStore) GetByID(id string) (*dbmodels.Process, error) {
	rec, ok := f.processes[id]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (f fakeProcessStore) List(filter dbmodels.ProcessFilter) ([]dbmodels.Process, error) {
	result := []dbmodels.Process{}
	for _, rec := range f.processes {
		result = append(result, rec)
	}
	return result, nil
}

func (f fakeProcessStore) Delete(id string) error {
	delete(f.processes, id)
	return nil
}

type fakeTimelineStore struct {
	*fakeState
}

func (f fakeTimelineStore) Create(rec dbmodels.TimelineEvent) (string, error) {
	if f.failTimeline {
		return "", errStore
	}
	rec.ID = f.nextID("t")
	f.fakeState.timeline = append(f.fakeState.timeline, rec)
	return rec.ID, nil
}

func (f fakeTimelineStore) GetByID(id string) (*dbmodels.TimelineEvent, error) {
	for _, rec := range f.fakeState.timeline {
		if rec.ID == id {
			return &rec, nil
		}
	}
	return nil, nil
}

func (f fakeTimelineStore) List(candidateID string) ([]dbmodels.TimelineEvent, error) {
	return f.eventsOf(candidateID, ""), nil
}

type fakeNotificationStore struct {
	*fakeState
}

func (f fakeNotificationStore) Create(rec dbmodels.Notification) (string, error) {
	if f.failNotification {
		return "", errStore
	}
	rec.ID = f.nextID("n")
	f.fakeState.notifications = append(f.fakeState.notifications, rec)
	return rec.ID, nil
}

func (f fakeNotificationStore) GetByID(id string) (*dbmodels.Notification, error) {
	return nil, nil
}

func (f fakeNotificationStore) ListByRecipient(recipientName string, limit int) ([]dbmodels.Notification, error) {
	return nil, nil
}

func (f fakeNotificationStore) ListUnread(recipientName string, limit int) ([]dbmodels.Notification, error) {
	return nil, nil
}

func (f fakeNotificationStore) CountUnread(recipientName string) (int64, error) {
	return 0, nil
}

func (f fakeNotificationStore) MarkRead(id, recipientName string) (bool, error) {
	return false, nil
}

func (f fakeNotificationStore) ListForDelivery(maxAttempts, limit int) ([]dbmodels.Notification, error) {
	return nil, nil
}

func (f fakeNotificationStore) ListFailed(maxAttempts, limit int) ([]dbmodels.Notification, error) {
	return nil, nil
}

func (f fakeNotificationStore) MarkSent(id, recipientEmail, emailID string) error {
	return nil
}

func (f fakeNotificationStore) MarkFailed(id, recipientEmail, lastError string) error {
	return nil
}

func (f fakeNotificationStore) Requeue(id string) (bool, error) {
	return false, nil
}

type fakeFiles struct {
	*fakeState
	attached map[string]string
}

func (f fakeFiles) UploadDocument(ctx context.Context, candidateID string, file dbmodels.UploadFileInfo) (string, error) {
	if f.failUpload {
		return "", errors.New("bucket unavailable")
	}
	id := f.nextID("f")
	f.files[id] = file
	f.attached[id] = candidateID
	return id, nil
}

func (f fakeFiles) GetDocument(ctx context.Context, docID string) (*dbmodels.UploadFileInfo, error) {
	file, ok := f.files[docID]
	if !ok {
		return nil, nil
	}
	return &file, nil
}

func (f fakeFiles) DeleteDocument(ctx context.Context, docID string) error {
	delete(f.files, docID)
	delete(f.attached, docID)
	return nil
}

func (f fakeFiles) AttachToCandidate(docID, candidateID string) error {
	f.attached[docID] = candidateID
	return nil
}

type fakeHub struct {
	messages []wsmodels.ServerMessage
}

func (f *fakeHub) AddClient(userID, userName string, conn *websocket.Conn) {}

func (f *fakeHub) DeleteClient(userID string, conn *websocket.Conn) {}

func (f *fakeHub) SendMessage(msg wsmodels.ServerMessage) {
	f.messages = append(f.messages, msg)
}

func (f *fakeHub) SendClose(userID string) {}

func (f *fakeHub) IsConnected(userID string) bool {
	return false
}
