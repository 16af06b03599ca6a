package dao_test

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/SuperiorKe/sms-africas-talking/app/config"
	"github.com/SuperiorKe/sms-africas-talking/app/sources/psql"
	"github.com/SuperiorKe/sms-africas-talking/app/sources/psql/dao"
	"github.com/SuperiorKe/sms-africas-talking/app/sources/psql/models"
)

func testDB(t *testing.T) *psql.Database {
	t.Helper()
	db, err := psql.NewDatabase(context.Background(), config.Config{
		SQLitePath: filepath.Join(t.TempDir(), "test.db"),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(db.Close)
	return db
}

func TestFindOrCreateByPhone(t *testing.T) {
	db := testDB(t)
	users := dao.NewUserDAO(db.DB)
	ctx := context.Background()

	first, err := users.FindOrCreateByPhone(ctx, "+254700000001")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	second, err := users.FindOrCreateByPhone(ctx, "+254700000001")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if first.ID != second.ID {
		t.Errorf("same phone produced two users: %d and %d", first.ID, second.ID)
	}

	var count int64
	db.DB.Model(&models.User{}).Count(&count)
	if count != 1 {
		t.Errorf("user count = %d, want 1", count)
	}
}

func TestTouchLastActive(t *testing.T) {
	db := testDB(t)
	users := dao.NewUserDAO(db.DB)
	ctx := context.Background()

	user, _ := users.FindOrCreateByPhone(ctx, "+254700000001")
	before := user.LastActive

	if err := users.TouchLastActive(ctx, user.ID); err != nil {
		t.Fatalf("touch: %v", err)
	}
	refreshed, _ := users.GetByID(ctx, user.ID)
	if refreshed.LastActive.Before(before) {
		t.Error("last_active went backwards")
	}
}

func TestRecentByUserOrderAndLimit(t *testing.T) {
	db := testDB(t)
	users := dao.NewUserDAO(db.DB)
	messages := dao.NewMessageDAO(db.DB)
	ctx := context.Background()

	user, _ := users.FindOrCreateByPhone(ctx, "+254700000001")
	for i := 0; i < 8; i++ {
		sender := models.SenderUser
		if i%2 == 1 {
			sender = models.SenderAI
		}
		if _, err := messages.SaveMessage(ctx, &user.ID, sender, fmt.Sprintf("msg %d", i), "", models.StatusSent); err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}

	got, err := messages.RecentByUser(ctx, user.ID, 6)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 6 {
		t.Fatalf("len = %d, want 6", len(got))
	}
	if got[0].Text != "msg 2" || got[5].Text != "msg 7" {
		t.Errorf("unexpected window: first=%q last=%q", got[0].Text, got[5].Text)
	}
	for i := 1; i < len(got); i++ {
		if got[i].ID < got[i-1].ID {
			t.Errorf("messages out of order at index %d", i)
		}
	}
}

func TestRecentByLinkIDScoping(t *testing.T) {
	db := testDB(t)
	messages := dao.NewMessageDAO(db.DB)
	ctx := context.Background()

	messages.SaveMessage(ctx, nil, models.SenderUser, "session a question", "sess-a", models.StatusReceived)
	messages.SaveMessage(ctx, nil, models.SenderAI, "session a answer", "sess-a", models.StatusSent)
	messages.SaveMessage(ctx, nil, models.SenderUser, "session b question", "sess-b", models.StatusReceived)

	a, err := messages.RecentByLinkID(ctx, "sess-a", 50)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(a) != 2 {
		t.Fatalf("session a has %d messages, want 2", len(a))
	}
	for _, m := range a {
		if m.LinkID != "sess-a" {
			t.Errorf("foreign message leaked into session a: %q", m.Text)
		}
		if m.UserID != nil {
			t.Errorf("web message should have no owner, got user %d", *m.UserID)
		}
	}
}

func TestUpdateStatus(t *testing.T) {
	db := testDB(t)
	messages := dao.NewMessageDAO(db.DB)
	ctx := context.Background()

	msg, err := messages.SaveMessage(ctx, nil, models.SenderAI, "reply", "", models.StatusSent)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := messages.UpdateStatus(ctx, msg.ID, models.StatusFailed); err != nil {
		t.Fatalf("update: %v", err)
	}

	var stored models.Message
	db.DB.First(&stored, msg.ID)
	if stored.Status != models.StatusFailed {
		t.Errorf("status = %q, want %q", stored.Status, models.StatusFailed)
	}
	if stored.Text != "reply" {
		t.Errorf("body changed on status update: %q", stored.Text)
	}
}
