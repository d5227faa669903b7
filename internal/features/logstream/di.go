package logstream

import (
	"sync"

	"receipthub/internal/cache"
	users_repositories "receipthub/internal/features/users/repositories"
	cache_utils "receipthub/internal/util/cache"
	"receipthub/internal/util/logger"
)

// Wiring is lazy: sources and the resolver cache need a live Valkey client,
// which should connect when the first session opens, not at import time.
var (
	initOnce            sync.Once
	logStreamService    *LogStreamService
	logStreamController *LogStreamController
)

func setup() {
	pubSub := cache_utils.NewPubSubService()

	resolver := NewUserProfileResolver(
		&users_repositories.UserRepository{},
		cache_utils.NewCacheUtil[Profile](cache.GetCache(), "rh_profile:"),
		logger.GetLogger(),
	)

	sourceFactory := func(kind RecordKind) LogSource {
		return NewValkeyLogSource(kind, pubSub, logger.GetLogger())
	}

	logStreamService = NewLogStreamService(sourceFactory, resolver, logger.GetLogger())
	logStreamController = &LogStreamController{logStreamService: logStreamService}
}

func GetLogStreamService() *LogStreamService {
	initOnce.Do(setup)
	return logStreamService
}

func GetLogStreamController() *LogStreamController {
	initOnce.Do(setup)
	return logStreamController
}
