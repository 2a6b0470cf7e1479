package quiz

import "gorm.io/gorm"

type QuizContainer struct {
	Repo    QuizRepository
	Handler *Handler
}

func NewQuizContainer(db *gorm.DB) *QuizContainer {
	repo := NewRepository(db)
	service := NewService(repo)
	handler := NewHandler(service)

	return &QuizContainer{
		Repo:    repo,
		Handler: handler,
	}
}
