package notificationapimodels

import "strings"

// EmailRequest запрос на отправку письма ответственному этапа
type EmailRequest struct {
	RecipientEmail string `json:"recipientEmail"`
	RecipientName  string `json:"recipientName"`
	CandidateName  string `json:"candidateName"`
	StageName      string `json:"stageName"`
	ProcessTitle   string `json:"processTitle"`
	MovedBy        string `json:"movedBy"`
}

// MissingFields список незаполненных обязательных полей
func (r EmailRequest) MissingFields() []string {
	missing := []string{}
	if strings.TrimSpace(r.RecipientEmail) == "" {
		missing = append(missing, "recipientEmail")
	}
	if strings.TrimSpace(r.CandidateName) == "" {
		missing = append(missing, "candidateName")
	}
	if strings.TrimSpace(r.StageName) == "" {
		missing = append(missing, "stageName")
	}
	if strings.TrimSpace(r.ProcessTitle) == "" {
		missing = append(missing, "processTitle")
	}
	return missing
}

type EmailSuccessResponse struct {
	Success bool   `json:"success"`
	EmailID string `json:"emailId"`
	Message string `json:"message"`
}

type EmailErrorResponse struct {
	Error       string   `json:"error"`
	Details     string   `json:"details,omitempty"`
	MissingData []string `json:"missingData,omitempty"`
}
