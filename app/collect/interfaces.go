package collect

import (
	"context"

	"github.com/feedsift/feedsift/app/content"
)

// Collector fetches raw items from one upstream source. Collectors run
// concurrently; their results are concatenated before cleaning.
type Collector interface {
	Name() string
	Collect(ctx context.Context) ([]content.Item, error)
}
