package models

type ProcessStatus string

const (
	ProcessStatusActive ProcessStatus = "Activo"
	ProcessStatusPaused ProcessStatus = "Pausado"
	ProcessStatusClosed ProcessStatus = "Cerrado"
)

func (s ProcessStatus) IsValid() bool {
	switch s {
	case ProcessStatusActive, ProcessStatusPaused, ProcessStatusClosed:
		return true
	}
	return false
}

type CandidateStatus string

const (
	CandidateStatusActive   CandidateStatus = "Activo"
	CandidateStatusRejected CandidateStatus = "Rechazado"
	CandidateStatusHired    CandidateStatus = "Contratado"
)

func (s CandidateStatus) IsValid() bool {
	switch s {
	case CandidateStatusActive, CandidateStatusRejected, CandidateStatusHired:
		return true
	}
	return false
}

// ApplicationStageName название первого этапа, у него нет ответственного
const ApplicationStageName = "Aplicación"

// SystemAuthor автор событий, созданных без пользователя
const SystemAuthor = "Sistema"
