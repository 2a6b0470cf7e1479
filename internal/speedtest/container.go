package speedtest

import "gorm.io/gorm"

type SpeedTestContainer struct {
	Repo    Repository
	Handler *Handler
}

func NewSpeedTestContainer(db *gorm.DB) *SpeedTestContainer {
	repo := NewRepository(db)
	return &SpeedTestContainer{
		Repo:    repo,
		Handler: NewHandler(NewService(repo)),
	}
}
