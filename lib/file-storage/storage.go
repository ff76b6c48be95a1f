package filestorage

import (
	"bytes"
	"context"
	"fmt"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"io"
	"path"
	"recruitment-backend/config"
	"recruitment-backend/db"
	filesdbstorage "recruitment-backend/lib/file-storage/storage"
	dbmodels "recruitment-backend/models/db"
	s3client "recruitment-backend/s3"
	"strings"
)

// Provider хранилище документов кандидатов
type Provider interface {
	// UploadDocument сохраняет файл в бакет и регистрирует его, возвращает id документа
	UploadDocument(ctx context.Context, candidateID string, file dbmodels.UploadFileInfo) (docID string, err error)
	GetDocument(ctx context.Context, docID string) (*dbmodels.UploadFileInfo, error)
	AttachToCandidate(docID, candidateID string) error
	DeleteDocument(ctx context.Context, docID string) error
}

var Instance Provider

func NewHandler() {
	Instance = &impl{
		s3client:   s3client.Client,
		bucketName: config.Conf.S3.BucketName,
		filesStore: filesdbstorage.NewInstance(db.DB),
	}
}

type impl struct {
	s3client   *minio.Client
	bucketName string
	filesStore filesdbstorage.Provider
}

func (i impl) UploadDocument(ctx context.Context, candidateID string, file dbmodels.UploadFileInfo) (docID string, err error) {
	logger := log.WithField("file_name", file.FileName).
		WithField("candidate_id", candidateID)
	if i.s3client == nil {
		return "", errors.New("хранилище файлов не настроено")
	}
	objectKey := documentKey(uuid.New().String(), file.FileName)
	_, err = i.s3client.PutObject(ctx, i.bucketName, objectKey, bytes.NewReader(file.Body), int64(len(file.Body)),
		minio.PutObjectOptions{ContentType: file.ContentType})
	if err != nil {
		return "", errors.Wrap(err, "ошибка загрузки файла в хранилище")
	}
	rec := dbmodels.FileStorage{
		CandidateID: candidateID,
		Name:        file.FileName,
		ContentType: file.ContentType,
		ObjectKey:   objectKey,
		Size:        int64(len(file.Body)),
	}
	docID, err = i.filesStore.SaveFile(rec)
	if err != nil {
		return "", errors.Wrap(err, "ошибка сохранения информации о файле")
	}
	logger.WithField("doc_id", docID).Info("документ загружен")
	return docID, nil
}

func (i impl) GetDocument(ctx context.Context, docID string) (*dbmodels.UploadFileInfo, error) {
	if i.s3client == nil {
		return nil, errors.New("хранилище файлов не настроено")
	}
	rec, err := i.filesStore.GetByID(docID)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения информации о файле")
	}
	if rec == nil {
		return nil, nil
	}
	obj, err := i.s3client.GetObject(ctx, i.bucketName, rec.ObjectKey, minio.GetObjectOptions{})
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения файла из хранилища")
	}
	defer obj.Close()
	body, err := io.ReadAll(obj)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка чтения файла из хранилища")
	}
	return &dbmodels.UploadFileInfo{
		FileName:    rec.Name,
		ContentType: rec.ContentType,
		Body:        body,
	}, nil
}

func (i impl) AttachToCandidate(docID, candidateID string) error {
	return i.filesStore.SetCandidate(docID, candidateID)
}

func (i impl) DeleteDocument(ctx context.Context, docID string) error {
	if i.s3client == nil {
		return errors.New("хранилище файлов не настроено")
	}
	rec, err := i.filesStore.GetByID(docID)
	if err != nil {
		return errors.Wrap(err, "ошибка получения информации о файле")
	}
	if rec == nil {
		return nil
	}
	err = i.s3client.RemoveObject(ctx, i.bucketName, rec.ObjectKey, minio.RemoveObjectOptions{})
	if err != nil {
		return errors.Wrap(err, "ошибка удаления файла из хранилища")
	}
	if err = i.filesStore.Delete(docID); err != nil {
		return errors.Wrap(err, "ошибка удаления информации о файле")
	}
	log.WithField("doc_id", docID).Info("документ удален")
	return nil
}

// documentKey ключ объекта в бакете, из имени файла берется только последний элемент пути
func documentKey(id, fileName string) string {
	name := path.Base(strings.ReplaceAll(fileName, "\\", "/"))
	if name == "." || name == ".." || name == "/" {
		name = "document"
	}
	return fmt.Sprintf("candidates/%s/%s", id, name)
}
