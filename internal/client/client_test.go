package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"freetrack/internal/pipeline"
)

type recordedCall struct {
	method string
	path   string
	auth   string
}

func newTestServer(t *testing.T, status int, body string) (*Client, *[]recordedCall) {
	t.Helper()
	var calls []recordedCall
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, recordedCall{method: r.Method, path: r.URL.Path, auth: r.Header.Get("Authorization")})
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return New(srv.URL, "token-123"), &calls
}

func TestFetchBoard(t *testing.T) {
	snap := `{"cards":[{"project_id":5,"stage":"Technical Test","status":"planned","total_steps":7}],"order":["Initial Contact"]}`
	c, calls := newTestServer(t, http.StatusOK, snap)

	got, err := c.FetchBoard(context.Background(), 1)
	if err != nil {
		t.Fatalf("FetchBoard: %v", err)
	}
	if len(*calls) != 1 || (*calls)[0].path != "/board" || (*calls)[0].method != http.MethodGet {
		t.Fatalf("calls: %+v", *calls)
	}
	if (*calls)[0].auth != "Bearer token-123" {
		t.Errorf("auth header: %q", (*calls)[0].auth)
	}
	if len(got.Cards) != 1 || got.Cards[0].ProjectID != 5 || got.Cards[0].Stage != pipeline.StageTechnicalTest {
		t.Errorf("snapshot: %+v", got.Cards)
	}
}

func TestStatusActionEndpoints(t *testing.T) {
	cases := []struct {
		action pipeline.StatusAction
		path   string
	}{
		{pipeline.MarkWaitingFeedback{ID: 4}, "/steps/4/waiting-feedback"},
		{pipeline.MarkValidated{ID: 4}, "/steps/4/validate"},
		{pipeline.MarkFailed{ID: 4}, "/steps/4/fail"},
		{pipeline.MarkCanceled{ID: 4}, "/steps/4/cancel"},
	}
	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			c, calls := newTestServer(t, http.StatusOK, `{}`)
			if err := c.SetStepStatus(context.Background(), tc.action); err != nil {
				t.Fatalf("SetStepStatus: %v", err)
			}
			if (*calls)[0].path != tc.path || (*calls)[0].method != http.MethodPost {
				t.Errorf("hit %s %s, want POST %s", (*calls)[0].method, (*calls)[0].path, tc.path)
			}
		})
	}
}

func TestRequestTransitionBody(t *testing.T) {
	var gotBody map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "")
	err := c.RequestTransition(context.Background(), pipeline.TransitionRequest{
		ProjectID: 9,
		FromStage: pipeline.StageTechnicalTest,
		ToStage:   pipeline.StageTechnicalInterview,
	})
	if err != nil {
		t.Fatalf("RequestTransition: %v", err)
	}
	if gotBody["from_stage"] != string(pipeline.StageTechnicalTest) || gotBody["to_stage"] != string(pipeline.StageTechnicalInterview) {
		t.Errorf("body: %v", gotBody)
	}
}

func TestServerErrorSurfacesMessage(t *testing.T) {
	c, _ := newTestServer(t, http.StatusConflict, `{"error":"project is no longer in the requested stage"}`)
	err := c.RequestTransition(context.Background(), pipeline.TransitionRequest{ProjectID: 1, FromStage: pipeline.StagePositioning, ToStage: pipeline.StageValidation})
	if err == nil {
		t.Fatal("expected error")
	}
	if want := "project is no longer in the requested stage"; !strings.Contains(err.Error(), want) {
		t.Errorf("error %q does not carry server message", err)
	}
}

func TestScheduleStep(t *testing.T) {
	c, calls := newTestServer(t, http.StatusOK, `{}`)
	at := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	if err := c.ScheduleStep(context.Background(), 8, at); err != nil {
		t.Fatalf("ScheduleStep: %v", err)
	}
	if (*calls)[0].path != "/steps/8/schedule" {
		t.Errorf("path: %s", (*calls)[0].path)
	}
}
