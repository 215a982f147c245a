package repository

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"tasklist-be/internal/database"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, _, err := database.Open(filepath.Join(t.TempDir(), "repo.sqlite"))
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func createUser(t *testing.T, repo UserRepository, email string) int64 {
	t.Helper()
	user, err := repo.Create(context.Background(), email, "hash-"+email)
	if err != nil {
		t.Fatalf("create user %s: %v", email, err)
	}
	return user.ID
}

func TestUserRepositoryCreateAndFind(t *testing.T) {
	db := openTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, "a@x.com", "digest")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.ID == 0 || created.CreatedAt.IsZero() {
		t.Fatalf("expected server-assigned fields, got %#v", created)
	}

	found, err := repo.FindByEmail(ctx, "a@x.com")
	if err != nil {
		t.Fatalf("FindByEmail returned error: %v", err)
	}
	if found.ID != created.ID || found.PasswordHash != "digest" {
		t.Fatalf("unexpected user: %#v", found)
	}
	if !found.CreatedAt.Equal(created.CreatedAt) {
		t.Fatalf("created_at = %v, want %v", found.CreatedAt, created.CreatedAt)
	}
}

func TestUserRepositoryEmailIsCaseSensitive(t *testing.T) {
	db := openTestDB(t)
	repo := NewUserRepository(db)

	createUser(t, repo, "a@x.com")
	if _, err := repo.FindByEmail(context.Background(), "A@X.COM"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUserRepositoryDuplicateEmail(t *testing.T) {
	db := openTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	createUser(t, repo, "a@x.com")
	if _, err := repo.Create(ctx, "a@x.com", "other"); !errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM users WHERE email = $1`, "a@x.com").Scan(&count); err != nil {
		t.Fatalf("count users: %v", err)
	}
	if count != 1 {
		t.Fatalf("users with email = %d, want 1", count)
	}
}

func TestUserRepositoryFindMissing(t *testing.T) {
	db := openTestDB(t)
	if _, err := NewUserRepository(db).FindByEmail(context.Background(), "nobody@x.com"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTaskRepositoryCreateAndList(t *testing.T) {
	db := openTestDB(t)
	userID := createUser(t, NewUserRepository(db), "a@x.com")
	tasks := NewTaskRepository(db).ForOwner(userID)
	ctx := context.Background()

	created, err := tasks.Create(ctx, "buy milk")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.ID == 0 || created.UserID != userID || created.Completed || created.Title != "buy milk" {
		t.Fatalf("unexpected task: %#v", created)
	}

	list, err := tasks.List(ctx)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(list) != 1 || list[0].ID != created.ID {
		t.Fatalf("unexpected list: %#v", list)
	}
}

func TestTaskRepositoryListNewestFirstWithIDTieBreak(t *testing.T) {
	db := openTestDB(t)
	userID := createUser(t, NewUserRepository(db), "a@x.com")

	repo := NewTaskRepository(db).(*taskRepository)
	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	stamps := []time.Time{base, base.Add(time.Second), base.Add(time.Second), base.Add(1500 * time.Millisecond)}
	next := 0
	repo.now = func() time.Time {
		ts := stamps[next]
		next++
		return ts
	}
	tasks := repo.ForOwner(userID)
	ctx := context.Background()

	var ids []int64
	for _, title := range []string{"first", "second", "third", "fourth"} {
		task, err := tasks.Create(ctx, title)
		if err != nil {
			t.Fatalf("create %s: %v", title, err)
		}
		ids = append(ids, task.ID)
	}

	want := []int64{ids[3], ids[2], ids[1], ids[0]}
	for attempt := 0; attempt < 2; attempt++ {
		list, err := tasks.List(ctx)
		if err != nil {
			t.Fatalf("List returned error: %v", err)
		}
		if len(list) != len(want) {
			t.Fatalf("len(list) = %d, want %d", len(list), len(want))
		}
		for i, task := range list {
			if task.ID != want[i] {
				t.Fatalf("attempt %d: list[%d].ID = %d, want %d", attempt, i, task.ID, want[i])
			}
		}
	}
}

func TestTaskRepositoryIsolatesOwners(t *testing.T) {
	db := openTestDB(t)
	users := NewUserRepository(db)
	alice := createUser(t, users, "a@x.com")
	bob := createUser(t, users, "b@x.com")
	repo := NewTaskRepository(db)
	ctx := context.Background()

	bobTask, err := repo.ForOwner(bob).Create(ctx, "bob's task")
	if err != nil {
		t.Fatalf("create bob task: %v", err)
	}

	aliceTasks := repo.ForOwner(alice)
	list, err := aliceTasks.List(ctx)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("alice sees %d tasks, want 0", len(list))
	}

	if _, err := aliceTasks.SetCompleted(ctx, bobTask.ID, true); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound updating foreign task, got %v", err)
	}
	if err := aliceTasks.Delete(ctx, bobTask.ID); err != nil {
		t.Fatalf("Delete of foreign task returned error: %v", err)
	}

	bobList, err := repo.ForOwner(bob).List(ctx)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(bobList) != 1 || bobList[0].Completed {
		t.Fatalf("bob's task was touched: %#v", bobList)
	}
}

func TestTaskRepositorySetCompleted(t *testing.T) {
	db := openTestDB(t)
	userID := createUser(t, NewUserRepository(db), "a@x.com")
	tasks := NewTaskRepository(db).ForOwner(userID)
	ctx := context.Background()

	created, err := tasks.Create(ctx, "write tests")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := tasks.SetCompleted(ctx, created.ID, true)
	if err != nil {
		t.Fatalf("SetCompleted returned error: %v", err)
	}
	if !updated.Completed || updated.ID != created.ID || updated.Title != "write tests" {
		t.Fatalf("unexpected task: %#v", updated)
	}

	// Setting the same value again still matches the row.
	if _, err := tasks.SetCompleted(ctx, created.ID, true); err != nil {
		t.Fatalf("repeat SetCompleted returned error: %v", err)
	}

	if _, err := tasks.SetCompleted(ctx, created.ID+100, true); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing id, got %v", err)
	}
}

func TestTaskRepositoryDeleteIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	userID := createUser(t, NewUserRepository(db), "a@x.com")
	tasks := NewTaskRepository(db).ForOwner(userID)
	ctx := context.Background()

	created, err := tasks.Create(ctx, "temp")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	for i := 0; i < 2; i++ {
		if err := tasks.Delete(ctx, created.ID); err != nil {
			t.Fatalf("delete #%d returned error: %v", i+1, err)
		}
	}

	list, err := tasks.List(ctx)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expected empty list, got %#v", list)
	}
}

func TestTaskRepositoryRequiresExistingOwner(t *testing.T) {
	db := openTestDB(t)
	if _, err := NewTaskRepository(db).ForOwner(999).Create(context.Background(), "orphan"); err == nil {
		t.Fatal("expected foreign key failure for unknown owner")
	}
}
