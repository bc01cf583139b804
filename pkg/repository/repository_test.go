package repository_test

import (
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/pipehq/workboard/pkg/domain/interfaces"
	"github.com/pipehq/workboard/pkg/repository/firestore"
	"github.com/pipehq/workboard/pkg/repository/memory"
)

func newMemoryRepo(t *testing.T) interfaces.Repository {
	t.Helper()
	return memory.New()
}

func newFirestoreRepo(t *testing.T) interfaces.Repository {
	t.Helper()

	projectID := os.Getenv("TEST_FIRESTORE_PROJECT_ID")
	if projectID == "" {
		t.Skip("TEST_FIRESTORE_PROJECT_ID not set")
	}
	databaseID := os.Getenv("TEST_FIRESTORE_DATABASE_ID")

	prefix := fmt.Sprintf("test_%d", time.Now().UnixNano())
	repo, err := firestore.New(t.Context(), projectID, databaseID,
		firestore.WithCollectionPrefix(prefix))
	if err != nil {
		t.Fatalf("failed to create firestore repository: %v", err)
	}
	t.Cleanup(func() {
		if err := repo.Close(); err != nil {
			t.Logf("failed to close firestore repository: %v", err)
		}
	})

	return repo
}

func TestWorkboardRepository(t *testing.T) {
	t.Run("memory", func(t *testing.T) {
		runWorkboardRepositoryTest(t, newMemoryRepo)
	})
	t.Run("firestore", func(t *testing.T) {
		runWorkboardRepositoryTest(t, newFirestoreRepo)
	})
}

func TestEntityStore(t *testing.T) {
	t.Run("memory", func(t *testing.T) {
		runEntityStoreTest(t, newMemoryRepo)
	})
	t.Run("firestore", func(t *testing.T) {
		runEntityStoreTest(t, newFirestoreRepo)
	})
}
