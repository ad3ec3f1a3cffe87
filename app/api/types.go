package api

import (
	"github.com/feedsift/feedsift/app/storage"
	"github.com/feedsift/feedsift/app/tasks"
)

type Handler struct {
	runRepo     storage.RunRepository
	itemRepo    storage.ItemRepository
	digestStore *storage.DigestStore
	pipeline    *tasks.Pipeline
	scheduler   tasks.TaskSchedulerInterface
	version     string
}
