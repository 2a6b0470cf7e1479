package technical

import (
	"github.com/crackit360/crackit360-api/internal/config"
	"gorm.io/gorm"
)

type TechnicalContainer struct {
	Repo    Repository
	Handler *Handler
}

func NewTechnicalContainer(db *gorm.DB, judge config.JudgeSettings) *TechnicalContainer {
	repo := NewRepository(db)
	return &TechnicalContainer{
		Repo:    repo,
		Handler: NewHandler(NewService(repo, NewJudge(judge))),
	}
}
