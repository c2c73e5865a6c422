package service

import (
	"context"

	"DrishtiGPT-Learning-Backend/internal/model"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

// ChatClient is the remote conversational API.
type ChatClient interface {
	Request(ctx context.Context, videoID string, requestType model.RequestType, query string) (string, error)
}

type VideoCatalog interface {
	List() []model.Video
	Find(id string) (model.Video, error)
}
