package dbmodels

type FileStorage struct {
	BaseModel
	CandidateID string `gorm:"type:varchar(36);index"`
	Name        string
	ContentType string `gorm:"type:varchar(255)"`
	ObjectKey   string `gorm:"type:varchar(255)"`
	Size        int64
}

type UploadFileInfo struct {
	FileName    string
	ContentType string
	Body        []byte
}
