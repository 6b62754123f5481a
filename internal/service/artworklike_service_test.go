package service_test

import (
	"context"
	"errors"
	"testing"

	"Aura_Community/internal/model"
	"Aura_Community/internal/repository/mysql"
	"Aura_Community/internal/service"

	"gorm.io/gorm"
)

func seedArtwork(t *testing.T, db *gorm.DB, authorID uint64) *model.Artwork {
	t.Helper()
	a := &model.Artwork{AuthorID: authorID, Title: "dusk", ImageURL: "https://cdn.test/dusk.jpg"}
	if err := db.Create(a).Error; err != nil {
		t.Fatalf("seed artwork: %v", err)
	}
	return a
}

func TestToggleTwiceRestoresState(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	u := seedUser(t, db, "alice")
	a := seedArtwork(t, db, u.ID)

	svc := service.NewArtworkLikeService(db)

	liked, err := svc.Toggle(ctx, u.ID, a.ID)
	if err != nil || !liked {
		t.Fatalf("first toggle liked=%v err=%v, want liked=true", liked, err)
	}
	liked, err = svc.Toggle(ctx, u.ID, a.ID)
	if err != nil || liked {
		t.Fatalf("second toggle liked=%v err=%v, want liked=false", liked, err)
	}

	b, err := svc.IsLiked(ctx, u.ID, a.ID)
	if err != nil {
		t.Fatalf("IsLiked: %v", err)
	}
	if b {
		t.Fatal("toggle(u,a); toggle(u,a) must leave the relation absent again")
	}
	cnt, err := svc.GetCount(ctx, u.ID, a.ID)
	if err != nil {
		t.Fatalf("GetCount: %v", err)
	}
	if cnt != 0 {
		t.Fatalf("like count = %d, want 0", cnt)
	}
}

func TestToggleMissingArtwork(t *testing.T) {
	db := newTestDB(t)
	u := seedUser(t, db, "alice")

	svc := service.NewArtworkLikeService(db)
	if _, err := svc.Toggle(context.Background(), u.ID, 777); !errors.Is(err, mysql.ErrArtworkNotFound) {
		t.Fatalf("err = %v, want ErrArtworkNotFound", err)
	}
}

func TestToggleValidation(t *testing.T) {
	db := newTestDB(t)
	svc := service.NewArtworkLikeService(db)
	if _, err := svc.Toggle(context.Background(), 0, 1); !errors.Is(err, service.ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
}

func TestTwoUsersLikeIndependently(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	a := seedArtwork(t, db, alice.ID)

	svc := service.NewArtworkLikeService(db)
	if _, err := svc.Toggle(ctx, alice.ID, a.ID); err != nil {
		t.Fatalf("alice toggle: %v", err)
	}
	if _, err := svc.Toggle(ctx, bob.ID, a.ID); err != nil {
		t.Fatalf("bob toggle: %v", err)
	}

	cnt, _ := svc.GetCount(ctx, alice.ID, a.ID)
	if cnt != 2 {
		t.Fatalf("like count = %d, want 2", cnt)
	}

	// alice取消不影响bob
	if _, err := svc.Toggle(ctx, alice.ID, a.ID); err != nil {
		t.Fatalf("alice untoggle: %v", err)
	}
	if b, _ := svc.IsLiked(ctx, bob.ID, a.ID); !b {
		t.Fatal("bob's like must survive alice's unlike")
	}
}
