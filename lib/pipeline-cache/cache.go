package pipelinecache

import (
	"recruitment-backend/models"
	dbmodels "recruitment-backend/models/db"
	"sort"
	"sync/atomic"
)

// Provider зеркало процессов, этапов и кандидатов в памяти
type Provider interface {
	Load(processes []dbmodels.Process, stages []dbmodels.Stage, candidates []dbmodels.Candidate)
	IsLoaded() bool
	Processes() *Table[dbmodels.Process]
	Stages() *Table[dbmodels.Stage]
	Candidates() *Table[dbmodels.Candidate]
	ProcessStages(processID string) []dbmodels.Stage
	ProcessCandidates(processID string) []dbmodels.Candidate
	StageCandidates(stageID string) []dbmodels.Candidate
	RejectedCandidates(processID string) []dbmodels.Candidate
}

var Instance Provider

func Init() {
	Instance = NewCache()
}

func NewCache() Provider {
	return &impl{
		processes: NewTable(func(rec dbmodels.Process) dbmodels.Process {
			rec.Stages = nil
			return rec
		}),
		stages:     NewTable[dbmodels.Stage](nil),
		candidates: NewTable(func(rec dbmodels.Candidate) dbmodels.Candidate {
			rec.Process = nil
			rec.CurrentStage = nil
			return rec
		}),
	}
}

type impl struct {
	processes  *Table[dbmodels.Process]
	stages     *Table[dbmodels.Stage]
	candidates *Table[dbmodels.Candidate]
	loaded     atomic.Bool
}

func (i *impl) Load(processes []dbmodels.Process, stages []dbmodels.Stage, candidates []dbmodels.Candidate) {
	i.processes.Reset(processes)
	i.stages.Reset(stages)
	i.candidates.Reset(candidates)
	i.loaded.Store(true)
}

func (i *impl) IsLoaded() bool {
	return i.loaded.Load()
}

func (i *impl) Processes() *Table[dbmodels.Process] {
	return i.processes
}

func (i *impl) Stages() *Table[dbmodels.Stage] {
	return i.stages
}

func (i *impl) Candidates() *Table[dbmodels.Candidate] {
	return i.candidates
}

func (i *impl) ProcessStages(processID string) []dbmodels.Stage {
	list := i.stages.Filter(func(rec dbmodels.Stage) bool {
		return rec.ProcessID == processID
	})
	dbmodels.SortStages(list)
	return list
}

func (i *impl) ProcessCandidates(processID string) []dbmodels.Candidate {
	list := i.candidates.Filter(func(rec dbmodels.Candidate) bool {
		return rec.ProcessID == processID
	})
	sortCandidates(list)
	return list
}

// StageCandidates кандидаты на этапе, отклоненные не попадают в доску
func (i *impl) StageCandidates(stageID string) []dbmodels.Candidate {
	list := i.candidates.Filter(func(rec dbmodels.Candidate) bool {
		return rec.CurrentStageID == stageID && rec.Status != models.CandidateStatusRejected
	})
	sortCandidates(list)
	return list
}

func (i *impl) RejectedCandidates(processID string) []dbmodels.Candidate {
	list := i.candidates.Filter(func(rec dbmodels.Candidate) bool {
		return rec.ProcessID == processID && rec.Status == models.CandidateStatusRejected
	})
	sortCandidates(list)
	return list
}

func sortCandidates(list []dbmodels.Candidate) {
	sort.Slice(list, func(i, j int) bool {
		if list[i].LastUpdated.Equal(list[j].LastUpdated) {
			return list[i].ID < list[j].ID
		}
		return list[i].LastUpdated.After(list[j].LastUpdated)
	})
}
