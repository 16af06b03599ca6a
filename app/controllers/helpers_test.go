package controllers_test

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/SuperiorKe/sms-africas-talking/app/config"
	"github.com/SuperiorKe/sms-africas-talking/app/controllers"
	"github.com/SuperiorKe/sms-africas-talking/app/routes"
	"github.com/SuperiorKe/sms-africas-talking/app/sessions"
	"github.com/SuperiorKe/sms-africas-talking/app/sources/psql"
	"github.com/SuperiorKe/sms-africas-talking/app/sources/psql/dao"

	"github.com/go-chi/chi/v5"
)

type stubLLM struct {
	mu          sync.Mutex
	reply       string
	messages    []string
	transcripts []string
}

func (s *stubLLM) Reply(ctx context.Context, message, transcript string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, message)
	s.transcripts = append(s.transcripts, transcript)
	return s.reply
}

func (s *stubLLM) Ready() bool { return true }

type sentSMS struct {
	phone string
	text  string
}

type stubNotifier struct {
	mu   sync.Mutex
	ok   bool
	sent []sentSMS
}

func (s *stubNotifier) Send(ctx context.Context, phone, text string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, sentSMS{phone: phone, text: text})
	return s.ok
}

func (s *stubNotifier) Ready() bool { return true }

type testEnv struct {
	db       *psql.Database
	users    *dao.UserDAO
	messages *dao.MessageDAO
	store    *sessions.Store
	llm      *stubLLM
	notifier *stubNotifier
	router   chi.Router
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := psql.NewDatabase(context.Background(), config.Config{
		SQLitePath: filepath.Join(t.TempDir(), "test.db"),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(db.Close)

	env := &testEnv{
		db:       db,
		users:    dao.NewUserDAO(db.DB),
		messages: dao.NewMessageDAO(db.DB),
		store:    sessions.NewStore(time.Hour, 10),
		llm:      &stubLLM{reply: "Here is some advice."},
		notifier: &stubNotifier{ok: true},
	}

	cfg := config.Config{}
	r := chi.NewRouter()
	routes.RegisterSMS(r, controllers.NewSMSController(env.users, env.messages, env.llm, env.notifier), cfg)
	routes.RegisterWeb(r, controllers.NewWebController(env.store, env.messages, env.llm), cfg)
	routes.RegisterHealth(r, controllers.NewHealthController(db, env.llm, env.notifier))
	env.router = r
	return env
}
