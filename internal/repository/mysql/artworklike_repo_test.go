package mysql_test

import (
	"context"
	"errors"
	"testing"

	"Aura_Community/internal/model"
	"Aura_Community/internal/repository/mysql"

	"gorm.io/gorm"
)

func seedArtwork(t *testing.T, db *gorm.DB, authorID uint64) *model.Artwork {
	t.Helper()
	a := &model.Artwork{AuthorID: authorID, Title: "morning light", ImageURL: "https://cdn.test/1.jpg"}
	if err := db.Create(a).Error; err != nil {
		t.Fatalf("seed artwork: %v", err)
	}
	return a
}

func TestToggleFlipsRelation(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	u := seedUser(t, db, "alice")
	a := seedArtwork(t, db, u.ID)

	repo := &mysql.ArtworkLikeRepository{DB: db}

	liked, err := repo.Toggle(ctx, u.ID, a.ID)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !liked {
		t.Fatal("first toggle should like")
	}
	if b, _ := repo.IsLiked(ctx, u.ID, a.ID); !b {
		t.Fatal("relation should exist after first toggle")
	}
	if cnt, _ := repo.GetLikeCount(ctx, a.ID); cnt != 1 {
		t.Fatalf("like_count = %d, want 1", cnt)
	}

	liked, err = repo.Toggle(ctx, u.ID, a.ID)
	if err != nil {
		t.Fatalf("toggle back: %v", err)
	}
	if liked {
		t.Fatal("second toggle should unlike")
	}
	if b, _ := repo.IsLiked(ctx, u.ID, a.ID); b {
		t.Fatal("relation should be gone after second toggle")
	}
	if cnt, _ := repo.GetLikeCount(ctx, a.ID); cnt != 0 {
		t.Fatalf("like_count = %d, want 0", cnt)
	}

	// 两次为一个周期，回到初始状态后还能再点
	if liked, err = repo.Toggle(ctx, u.ID, a.ID); err != nil || !liked {
		t.Fatalf("third toggle liked=%v err=%v, want liked=true", liked, err)
	}
}

func TestToggleNeverDuplicatesRelation(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	u := seedUser(t, db, "alice")
	a := seedArtwork(t, db, u.ID)

	repo := &mysql.ArtworkLikeRepository{DB: db}
	if _, err := repo.Toggle(ctx, u.ID, a.ID); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	// 直接撞唯一索引，确认约束在库层存在
	err := db.Create(&model.ArtworkLike{UserID: u.ID, ArtworkID: a.ID}).Error
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("duplicate insert err = %v, want ErrDuplicatedKey", err)
	}
	var n int64
	_ = db.Model(&model.ArtworkLike{}).Where("user_id = ? AND artwork_id = ?", u.ID, a.ID).Count(&n).Error
	if n != 1 {
		t.Fatalf("relation rows = %d, want 1", n)
	}
}

func TestToggleMissingArtwork(t *testing.T) {
	db := newTestDB(t)
	u := seedUser(t, db, "alice")

	repo := &mysql.ArtworkLikeRepository{DB: db}
	if _, err := repo.Toggle(context.Background(), u.ID, 4242); !errors.Is(err, mysql.ErrArtworkNotFound) {
		t.Fatalf("err = %v, want ErrArtworkNotFound", err)
	}
}
