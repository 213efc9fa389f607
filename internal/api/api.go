// Package api serves the approval links embedded in the birthday report
// mail. The endpoints answer with small HTML pages because they are opened
// from a mail client, not called by other programs.
package api

import (
	"context"
	"fmt"
	"time"

	"github.com/fasthttp/router"
	"github.com/rs/zerolog/log"
	"github.com/valyala/fasthttp"

	"hr-ops/internal/approval"
)

// Committer archives an approved report. It must work from fresh roster
// data, not from the preview snapshot: eligibility may have changed while
// the mail sat in an inbox.
type Committer interface {
	Commit(ctx context.Context, payload []byte) error
}

// CommitterFunc adapts a function to the Committer interface.
type CommitterFunc func(ctx context.Context, payload []byte) error

func (f CommitterFunc) Commit(ctx context.Context, payload []byte) error { return f(ctx, payload) }

// Previewer starts a review round: builds the candidate list from the
// current roster and mails it out with approve/reject links. It returns how
// many employees made the list.
type Previewer interface {
	RunPreview(ctx context.Context) (int, error)
}

type PreviewerFunc func(ctx context.Context) (int, error)

func (f PreviewerFunc) RunPreview(ctx context.Context) (int, error) { return f(ctx) }

type ServiceDeps struct {
	Port    int
	Tokens  *approval.Machine
	Commit  Committer
	Preview Previewer
}

type Service struct {
	r       *router.Router
	port    int
	tokens  *approval.Machine
	commit  Committer
	preview Previewer
}

func NewService(d ServiceDeps) *Service {
	s := &Service{
		r:       router.New(),
		port:    d.Port,
		tokens:  d.Tokens,
		commit:  d.Commit,
		preview: d.Preview,
	}
	s.mountRoutes()
	return s
}

func (s *Service) mountRoutes() {
	s.r.GET("/approval", s.handleApproval)
	s.r.POST("/runs/birthday", s.handleBirthdayRun)
	s.r.GET("/health", s.healthHandler)
}

func (s *Service) Start(ctx context.Context) error {
	server := fasthttp.Server{
		Handler:      RecoveryMiddleware(LoggingMiddleware(s.r.Handler)),
		Name:         "hr-ops-approval",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	log.Info().Int("port", s.port).Msg("starting approval server")

	emergencyShutdown := make(chan error)
	go func() {
		emergencyShutdown <- server.ListenAndServe(fmt.Sprintf(":%d", s.port))
	}()

	select {
	case <-ctx.Done():
		return server.Shutdown()
	case e := <-emergencyShutdown:
		return e
	}
}

func (s *Service) healthHandler(ctx *fasthttp.RequestCtx) {
	ctx.SetContentType("text/plain; charset=utf-8")
	ctx.SetStatusCode(fasthttp.StatusOK)
	ctx.SetBodyString("ok")
}

func (s *Service) handleBirthdayRun(ctx *fasthttp.RequestCtx) {
	if s.preview == nil {
		ctx.Error("preview runner not configured", fasthttp.StatusServiceUnavailable)
		return
	}
	n, err := s.preview.RunPreview(ctx)
	if err != nil {
		log.Error().Err(err).Msg("birthday preview run failed")
		ctx.Error(err.Error(), fasthttp.StatusInternalServerError)
		return
	}
	log.Info().Int("eligible", n).Msg("birthday preview mailed for review")
	ctx.SetContentType("text/plain; charset=utf-8")
	ctx.SetStatusCode(fasthttp.StatusAccepted)
	fmt.Fprintf(ctx, "ok: %d 位壽星待審核\n", n)
}

func (s *Service) handleApproval(ctx *fasthttp.RequestCtx) {
	action := string(ctx.QueryArgs().Peek("action"))
	token := string(ctx.QueryArgs().Peek("token"))

	switch action {
	case "approve":
		payload, err := s.tokens.Approve(token)
		if err != nil {
			log.Warn().Str("action", action).Msg("approval with invalid token")
			writePage(ctx, fasthttp.StatusGone, msgTokenInvalid)
			return
		}
		if err := s.commit.Commit(ctx, payload); err != nil {
			log.Error().Err(err).Msg("commit after approval failed")
			writePage(ctx, fasthttp.StatusInternalServerError, msgCommitFailed)
			return
		}
		log.Info().Msg("birthday report approved and archived")
		writePage(ctx, fasthttp.StatusOK, msgApproved)
	case "reject":
		if err := s.tokens.Reject(token); err != nil {
			log.Warn().Str("action", action).Msg("rejection with invalid token")
			writePage(ctx, fasthttp.StatusGone, msgTokenInvalid)
			return
		}
		log.Info().Msg("birthday report rejected")
		writePage(ctx, fasthttp.StatusOK, msgRejected)
	default:
		writePage(ctx, fasthttp.StatusBadRequest, msgBadAction)
	}
}

const (
	msgApproved     = "操作成功！壽星名單已確認並歸檔至指定資料夾。"
	msgRejected     = "已取消本次壽星名單，如需重新產生請再次執行報表作業。"
	msgTokenInvalid = "此連結已失效或已被使用，請重新產生名單。"
	msgBadAction    = "無效的操作。"
	msgCommitFailed = "歸檔失敗，請聯絡系統管理員。"
)

func writePage(ctx *fasthttp.RequestCtx, status int, msg string) {
	ctx.SetContentType("text/html; charset=utf-8")
	ctx.SetStatusCode(status)
	fmt.Fprintf(ctx, `<html><body style="font-family: 'Microsoft JhengHei', sans-serif; padding: 2em;"><p>%s</p></body></html>`, msg)
}
