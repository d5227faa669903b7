package logstream

import (
	"fmt"
	"log/slog"

	users_repositories "receipthub/internal/features/users/repositories"
	cache_utils "receipthub/internal/util/cache"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// ProfileResolver maps user ids to human-readable identities. Ids with no
// match are simply absent from the result, not an error.
type ProfileResolver interface {
	ResolveMany(userIDs []uuid.UUID) (map[uuid.UUID]Profile, error)
}

const resolverChunkSize = 200

// UserProfileResolver resolves against the users table with a Valkey cache
// in front. Uncached ids are looked up in chunks, chunks in parallel.
type UserProfileResolver struct {
	userRepository *users_repositories.UserRepository
	cacheUtil      *cache_utils.CacheUtil[Profile]
	logger         *slog.Logger
}

func NewUserProfileResolver(
	userRepository *users_repositories.UserRepository,
	cacheUtil *cache_utils.CacheUtil[Profile],
	logger *slog.Logger,
) *UserProfileResolver {
	return &UserProfileResolver{
		userRepository: userRepository,
		cacheUtil:      cacheUtil,
		logger:         logger,
	}
}

func (r *UserProfileResolver) ResolveMany(userIDs []uuid.UUID) (map[uuid.UUID]Profile, error) {
	resolved := make(map[uuid.UUID]Profile, len(userIDs))

	uncached := make([]uuid.UUID, 0, len(userIDs))
	for _, userID := range userIDs {
		if profile := r.cacheUtil.Get(userID.String()); profile != nil {
			resolved[userID] = *profile
		} else {
			uncached = append(uncached, userID)
		}
	}

	if len(uncached) == 0 {
		return resolved, nil
	}

	chunkResults := make([]map[uuid.UUID]Profile, 0, (len(uncached)+resolverChunkSize-1)/resolverChunkSize)
	group := errgroup.Group{}

	for start := 0; start < len(uncached); start += resolverChunkSize {
		chunk := uncached[start:min(start+resolverChunkSize, len(uncached))]

		chunkResult := make(map[uuid.UUID]Profile, len(chunk))
		chunkResults = append(chunkResults, chunkResult)

		group.Go(func() error {
			users, err := r.userRepository.GetUsersByIDs(chunk)
			if err != nil {
				return fmt.Errorf("failed to resolve profiles: %w", err)
			}

			for _, user := range users {
				chunkResult[user.ID] = Profile{
					DisplayName: user.DisplayName,
					Email:       user.Email,
				}
			}

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	for _, chunkResult := range chunkResults {
		for userID, profile := range chunkResult {
			resolved[userID] = profile
			r.cacheUtil.Set(userID.String(), &profile)
		}
	}

	return resolved, nil
}
