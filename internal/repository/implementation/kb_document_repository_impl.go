package implementation

import (
	"context"
	"errors"

	"helpdesk-ai-be/internal/entity"
	"helpdesk-ai-be/internal/mapper"
	"helpdesk-ai-be/internal/model"
	"helpdesk-ai-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type KBDocumentRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.KBDocumentMapper
}

func NewKBDocumentRepository(db *gorm.DB) contract.KBDocumentRepository {
	return &KBDocumentRepositoryImpl{
		db:     db,
		mapper: mapper.NewKBDocumentMapper(),
	}
}

func (r *KBDocumentRepositoryImpl) Create(ctx context.Context, doc *entity.KBDocument) error {
	m := r.mapper.ToModel(doc)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*doc = *r.mapper.ToEntity(m)
	return nil
}

func (r *KBDocumentRepositoryImpl) FindById(ctx context.Context, id uuid.UUID) (*entity.KBDocument, error) {
	var m model.KBDocument
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *KBDocumentRepositoryImpl) FindAll(ctx context.Context) ([]*entity.KBDocument, error) {
	var models []*model.KBDocument
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&models).Error; err != nil {
		return nil, err
	}

	docs := make([]*entity.KBDocument, len(models))
	for i, m := range models {
		docs[i] = r.mapper.ToEntity(m)
	}
	return docs, nil
}

func (r *KBDocumentRepositoryImpl) DeleteBySource(ctx context.Context, source string) error {
	return r.db.WithContext(ctx).Where("source = ?", source).Delete(&model.KBDocument{}).Error
}

func (r *KBDocumentRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.KBDocument{}).Count(&count).Error
	return count, err
}
