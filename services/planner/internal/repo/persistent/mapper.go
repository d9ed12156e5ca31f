package persistent

import (
	"time"

	"some-planner/services/planner/internal/entity"
	"some-planner/services/planner/internal/model"
)

func ToShopEntity(m *model.ShopModel) *entity.Shop {
	if m == nil {
		return nil
	}

	return &entity.Shop{
		ID:           m.ID,
		Name:         m.Name,
		ContactName:  m.ContactName,
		ContactEmail: m.ContactEmail,
		ContactPhone: m.ContactPhone,
		Active:       m.Active,
		CreatedAt:    m.CreatedAt,
	}
}

func ToShopModel(e *entity.Shop) *model.ShopModel {
	if e == nil {
		return nil
	}

	return &model.ShopModel{
		ID:           e.ID,
		Name:         e.Name,
		ContactName:  e.ContactName,
		ContactEmail: e.ContactEmail,
		ContactPhone: e.ContactPhone,
		Active:       e.Active,
		CreatedAt:    e.CreatedAt,
	}
}

func ToTemplateEntity(m *model.TemplateModel) *entity.Template {
	if m == nil {
		return nil
	}

	return &entity.Template{
		ID:              m.ID,
		Name:            m.Name,
		CaptionTemplate: m.CaptionTemplate,
		MediaGuide:      m.MediaGuide,
		Active:          m.Active,
		CreatedAt:       m.CreatedAt,
	}
}

func ToTemplateModel(e *entity.Template) *model.TemplateModel {
	if e == nil {
		return nil
	}

	return &model.TemplateModel{
		ID:              e.ID,
		Name:            e.Name,
		CaptionTemplate: e.CaptionTemplate,
		MediaGuide:      e.MediaGuide,
		Active:          e.Active,
		CreatedAt:       e.CreatedAt,
	}
}

func ToPostEntity(m *model.PostModel) *entity.Post {
	if m == nil {
		return nil
	}

	return &entity.Post{
		ID:        m.ID,
		Date:      m.Date.Format(entity.DateLayout),
		Type:      entity.PostType(m.Type),
		Format:    m.Format,
		ShopID:    m.ShopID,
		Status:    entity.PostStatus(m.Status),
		Caption:   m.Caption,
		Notes:     m.Notes,
		CreatedAt: m.CreatedAt,
	}
}

// ToPostModel expects e.Date to be a valid DateLayout date.
func ToPostModel(e *entity.Post) (*model.PostModel, error) {
	if e == nil {
		return nil, nil
	}

	date, err := ParseDate(e.Date)
	if err != nil {
		return nil, err
	}

	return &model.PostModel{
		ID:        e.ID,
		Date:      date,
		Type:      string(e.Type),
		Format:    e.Format,
		ShopID:    e.ShopID,
		Status:    string(e.Status),
		Caption:   e.Caption,
		Notes:     e.Notes,
		CreatedAt: e.CreatedAt,
	}, nil
}

func ToPostSummaryEntity(r *model.PostRow) *entity.PostSummary {
	return &entity.PostSummary{
		Post:       *ToPostEntity(&r.PostModel),
		ShopName:   r.ShopName,
		MediaCount: r.MediaCount,
	}
}

func ToMediaEntity(m *model.MediaModel) entity.Media {
	if m == nil {
		return entity.Media{}
	}

	return entity.Media{
		ID:        m.ID,
		PostID:    m.PostID,
		FilePath:  m.FilePath,
		FileName:  m.FileName,
		MediaType: entity.MediaType(m.MediaType),
		FileSize:  m.FileSize,
		MimeType:  m.MimeType,
		SortOrder: m.SortOrder,
		CreatedAt: m.CreatedAt,
	}
}

func ToMediaModel(e *entity.Media) *model.MediaModel {
	if e == nil {
		return nil
	}

	return &model.MediaModel{
		ID:        e.ID,
		PostID:    e.PostID,
		FilePath:  e.FilePath,
		FileName:  e.FileName,
		MediaType: string(e.MediaType),
		FileSize:  e.FileSize,
		MimeType:  e.MimeType,
		SortOrder: e.SortOrder,
		CreatedAt: e.CreatedAt,
	}
}

// ParseDate reads a calendar date as midnight UTC.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(entity.DateLayout, s, time.UTC)
}
