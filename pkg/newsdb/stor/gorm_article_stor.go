package stor

import (
	"strings"

	"github.com/hashicorp/go-uuid"
	"github.com/news-assignment/newsapi/pkg/gnews"
	"github.com/news-assignment/newsapi/pkg/newsdb/newsmodel"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormArticleStor struct {
	db *gorm.DB
}

func NewGormArticleStor(db *gorm.DB) *GormArticleStor {
	return &GormArticleStor{db: db}
}

// refreshedColumns are overwritten when an already archived URL comes back.
// uuid and created_at keep their original values.
var refreshedColumns = []string{
	"slug", "title", "description", "content", "image", "published_at",
	"source_name", "source_url", "fetched_via", "updated_at",
}

func (s *GormArticleStor) SaveArticles(articles []gnews.Article, fetchedVia string) (int, error) {
	seen := make(map[string]bool, len(articles))
	var rows []newsmodel.ArchivedArticle

	for _, a := range articles {
		if a.URL == "" || seen[a.URL] {
			continue
		}
		seen[a.URL] = true

		row := newsmodel.FromGNewsArticle(a, fetchedVia)
		var err error
		if row.UUID, err = uuid.GenerateUUID(); err != nil {
			return 0, err
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return 0, nil
	}

	err := WithTxRetry(s.db, func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "url"}},
			DoUpdates: clause.AssignmentColumns(refreshedColumns),
		}).Create(&rows).Error
	})

	if err != nil {
		return 0, err
	}

	return len(rows), nil
}

func (s *GormArticleStor) ListRecent(count int, source string) ([]newsmodel.ArchivedArticle, error) {
	var articles []newsmodel.ArchivedArticle

	q := s.db.Order("published_at desc").Order("id desc").Limit(count)
	if source != "" {
		q = q.Where("LOWER(source_name) LIKE ?", "%"+strings.ToLower(source)+"%")
	}

	if err := q.Find(&articles).Error; err != nil {
		return nil, err
	}

	return articles, nil
}
