package mysql_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"Aura_Community/internal/model"
	"Aura_Community/internal/repository/mysql"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	// 单连接串行化，内存库在并发用例下也稳定
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(
		&model.User{},
		&model.Session{},
		&model.SessionAttendee{},
		&model.Artwork{},
		&model.ArtworkLike{},
		&model.Comment{},
		&model.Post{},
		&model.EngagementOutbox{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, name string) *model.User {
	t.Helper()
	u := &model.User{
		Username: name,
		Password: "x",
		Email:    fmt.Sprintf("%s@test.local", name),
	}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("seed user %s: %v", name, err)
	}
	return u
}

func seedSession(t *testing.T, db *gorm.DB, creatorID uint64, max int) *model.Session {
	t.Helper()
	repo := &mysql.SessionRepository{DB: db}
	s := &model.Session{
		Title:        "Breathwork",
		Date:         "2025-01-10",
		Time:         "18:00",
		MaxAttendees: max,
		CreatorID:    creatorID,
	}
	if err := repo.CreateWithCreator(context.Background(), s); err != nil {
		t.Fatalf("create session: %v", err)
	}
	return s
}

func TestCreateWithCreatorEnrollsCreator(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	creator := seedUser(t, db, "alice")
	s := seedSession(t, db, creator.ID, 3)

	attendees := &mysql.SessionAttendeeRepository{DB: db}
	ok, err := attendees.IsMember(ctx, s.ID, creator.ID)
	if err != nil {
		t.Fatalf("IsMember: %v", err)
	}
	if !ok {
		t.Fatal("creator should be enrolled at creation time")
	}
	n, err := attendees.CountBySession(ctx, s.ID)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Fatalf("attendee count = %d, want 1", n)
	}
	if s.AttendeeCount != 1 {
		t.Fatalf("attendee_count column = %d, want 1", s.AttendeeCount)
	}
}

func TestJoinMissingSession(t *testing.T) {
	db := newTestDB(t)
	u := seedUser(t, db, "bob")

	attendees := &mysql.SessionAttendeeRepository{DB: db}
	err := attendees.Join(context.Background(), 9999, u.ID)
	if !errors.Is(err, mysql.ErrSessionNotFound) {
		t.Fatalf("err = %v, want ErrSessionNotFound", err)
	}
}

func TestJoinDuplicate(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	creator := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	s := seedSession(t, db, creator.ID, 5)

	attendees := &mysql.SessionAttendeeRepository{DB: db}
	if err := attendees.Join(ctx, s.ID, bob.ID); err != nil {
		t.Fatalf("first join: %v", err)
	}
	if err := attendees.Join(ctx, s.ID, bob.ID); !errors.Is(err, mysql.ErrAlreadyJoined) {
		t.Fatalf("second join err = %v, want ErrAlreadyJoined", err)
	}
	n, _ := attendees.CountBySession(ctx, s.ID)
	if n != 2 {
		t.Fatalf("attendee count = %d, want 2 (no duplicate row)", n)
	}
}

func TestJoinCapacity(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	creator := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	carol := seedUser(t, db, "carol")
	s := seedSession(t, db, creator.ID, 2) // 创建者占一个名额

	attendees := &mysql.SessionAttendeeRepository{DB: db}
	if err := attendees.Join(ctx, s.ID, bob.ID); err != nil {
		t.Fatalf("bob join: %v", err)
	}
	if err := attendees.Join(ctx, s.ID, carol.ID); !errors.Is(err, mysql.ErrSessionFull) {
		t.Fatalf("carol join err = %v, want ErrSessionFull", err)
	}
	n, _ := attendees.CountBySession(ctx, s.ID)
	if n != 2 {
		t.Fatalf("attendee count = %d, want 2", n)
	}
}

func TestConcurrentJoinsNeverExceedCapacity(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	creator := seedUser(t, db, "alice")
	s := seedSession(t, db, creator.ID, 2) // 只剩一个名额

	users := make([]*model.User, 8)
	for i := range users {
		users[i] = seedUser(t, db, fmt.Sprintf("joiner%d", i))
	}

	attendees := &mysql.SessionAttendeeRepository{DB: db}
	var wg sync.WaitGroup
	errs := make([]error, len(users))
	for i, u := range users {
		wg.Add(1)
		go func(i int, uid uint64) {
			defer wg.Done()
			errs[i] = attendees.Join(ctx, s.ID, uid)
		}(i, u.ID)
	}
	wg.Wait()

	var succeeded, full int
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, mysql.ErrSessionFull):
			full++
		default:
			t.Fatalf("unexpected join error: %v", err)
		}
	}
	if succeeded != 1 {
		t.Fatalf("successful joins = %d, want exactly 1", succeeded)
	}
	if full != len(users)-1 {
		t.Fatalf("full rejections = %d, want %d", full, len(users)-1)
	}

	n, _ := attendees.CountBySession(ctx, s.ID)
	if n != 2 {
		t.Fatalf("final attendee count = %d, want 2", n)
	}
	var reloaded model.Session
	if err := db.First(&reloaded, s.ID).Error; err != nil {
		t.Fatalf("reload session: %v", err)
	}
	if reloaded.AttendeeCount != 2 {
		t.Fatalf("attendee_count column = %d, want 2", reloaded.AttendeeCount)
	}
}

func TestLeaveIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	creator := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	s := seedSession(t, db, creator.ID, 3)

	attendees := &mysql.SessionAttendeeRepository{DB: db}

	left, err := attendees.Leave(ctx, s.ID, bob.ID)
	if err != nil {
		t.Fatalf("leave as non-member: %v", err)
	}
	if left {
		t.Fatal("leave as non-member should be a no-op")
	}

	if err := attendees.Join(ctx, s.ID, bob.ID); err != nil {
		t.Fatalf("join: %v", err)
	}
	left, err = attendees.Leave(ctx, s.ID, bob.ID)
	if err != nil {
		t.Fatalf("leave: %v", err)
	}
	if !left {
		t.Fatal("leave as member should remove the row")
	}
	n, _ := attendees.CountBySession(ctx, s.ID)
	if n != 1 {
		t.Fatalf("attendee count = %d, want 1", n)
	}
	var reloaded model.Session
	_ = db.First(&reloaded, s.ID).Error
	if reloaded.AttendeeCount != 1 {
		t.Fatalf("attendee_count column = %d, want 1", reloaded.AttendeeCount)
	}
}

func TestDeleteCascadeRemovesAttendees(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	creator := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	s := seedSession(t, db, creator.ID, 3)

	attendees := &mysql.SessionAttendeeRepository{DB: db}
	if err := attendees.Join(ctx, s.ID, bob.ID); err != nil {
		t.Fatalf("join: %v", err)
	}

	repo := &mysql.SessionRepository{DB: db}
	if err := repo.DeleteCascade(ctx, s.ID); err != nil {
		t.Fatalf("delete cascade: %v", err)
	}

	if _, err := repo.FindByID(ctx, s.ID); !errors.Is(err, mysql.ErrSessionNotFound) {
		t.Fatalf("find after delete err = %v, want ErrSessionNotFound", err)
	}
	var orphans int64
	if err := db.Model(&model.SessionAttendee{}).Where("session_id = ?", s.ID).Count(&orphans).Error; err != nil {
		t.Fatalf("count orphans: %v", err)
	}
	if orphans != 0 {
		t.Fatalf("orphan attendee rows = %d, want 0", orphans)
	}
}

func TestJoinWritesOutboxEvent(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	creator := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	s := seedSession(t, db, creator.ID, 3)

	attendees := &mysql.SessionAttendeeRepository{DB: db}
	if err := attendees.Join(ctx, s.ID, bob.ID); err != nil {
		t.Fatalf("join: %v", err)
	}

	outbox := &mysql.OutboxRepository{DB: db}
	rows, err := outbox.List(ctx, 10)
	if err != nil {
		t.Fatalf("outbox list: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("outbox rows = %d, want 1", len(rows))
	}
	if rows[0].EventType != "session.join" || rows[0].ActorID != bob.ID || rows[0].TargetID != s.ID {
		t.Fatalf("unexpected outbox row: %+v", rows[0])
	}
}
