package sqlite

import (
	"testing"

	"labrecord/internal/repository"
	"labrecord/internal/repository/repotest"
)

func TestConformance(t *testing.T) {
	repotest.Run(t, func(t *testing.T) repository.Repository {
		return newTestRepo(t)
	})
}
