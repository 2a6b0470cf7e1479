package discussion

import "gorm.io/gorm"

type DiscussionContainer struct {
	Repo    Repository
	Service Service
	Handler *Handler
}

func NewDiscussionContainer(db *gorm.DB, users UserDirectory) *DiscussionContainer {
	repo := NewRepository(db)
	service := NewService(repo)
	handler := NewHandler(service, users)

	return &DiscussionContainer{
		Repo:    repo,
		Service: service,
		Handler: handler,
	}
}
