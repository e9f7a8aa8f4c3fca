package api_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/okian/starkverb/internal/adapters/http/api"
	"github.com/okian/starkverb/internal/domain/model"
	"github.com/okian/starkverb/internal/domain/sampling"
	"github.com/okian/starkverb/internal/domain/session"
	. "github.com/smartystreets/goconvey/convey"
)

// mockService implements the handler dependency interfaces with canned data.
type mockService struct {
	corpusSize int
	corpusErr  error
	startErr   error
	submitErr  error
	report     model.SessionReport

	lastCount   int
	lastAnswers []model.Answer
}

func (m *mockService) StartSession(_ context.Context, count int) (model.QuizSelection, error) {
	m.lastCount = count
	if m.startErr != nil {
		return model.QuizSelection{}, m.startErr
	}
	selection := model.QuizSelection{
		SessionID: "11111111-2222-3333-4444-555555555555",
		Verbs:     make([]model.OfferedVerb, count),
	}
	for i := range selection.Verbs {
		selection.Verbs[i] = model.OfferedVerb{
			Infinitive:   fmt.Sprintf("verb-%02d", i),
			Index:        i,
			Translations: []string{"перевод"},
			Example:      "Beispielsatz.",
		}
	}
	return selection, nil
}

func (m *mockService) SubmitAnswers(_ context.Context, answers []model.Answer) (model.SessionReport, error) {
	m.lastAnswers = answers
	if m.submitErr != nil {
		return model.SessionReport{}, m.submitErr
	}
	return m.report, nil
}

func (m *mockService) CorpusSize(_ context.Context) (int, error) {
	if m.corpusErr != nil {
		return 0, m.corpusErr
	}
	return m.corpusSize, nil
}

func (m *mockService) GetStats() map[string]interface{} {
	return map[string]interface{}{"started": true, "verbsLoaded": m.corpusSize}
}

func newTestServer(m *mockService) *httptest.Server {
	mux := http.NewServeMux()
	srv := api.NewServer(m, m, api.CountLimits{Default: 10, Max: 20})
	srv.Register(context.Background(), mux)
	return httptest.NewServer(mux)
}

func TestHealthEndpoint(t *testing.T) {
	Convey("Given a healthy service", t, func() {
		mock := &mockService{corpusSize: 24}
		ts := newTestServer(mock)
		defer ts.Close()

		Convey("When GET /api/health", func() {
			resp, err := http.Get(ts.URL + "/api/health")
			So(err, ShouldBeNil)
			defer func() { _ = resp.Body.Close() }()

			Convey("Then it reports healthy with the corpus size", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				var body struct {
					Status      string `json:"status"`
					VerbsLoaded int    `json:"verbs_loaded"`
				}
				So(json.NewDecoder(resp.Body).Decode(&body), ShouldBeNil)
				So(body.Status, ShouldEqual, "healthy")
				So(body.VerbsLoaded, ShouldEqual, 24)
			})
		})
	})

	Convey("Given a service whose corpus cannot load", t, func() {
		mock := &mockService{corpusErr: fmt.Errorf("corpus load failed: no such file")}
		ts := newTestServer(mock)
		defer ts.Close()

		Convey("When GET /api/health", func() {
			resp, err := http.Get(ts.URL + "/api/health")
			So(err, ShouldBeNil)
			defer func() { _ = resp.Body.Close() }()

			Convey("Then it reports unavailability", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusInternalServerError)
			})
		})
	})
}

func TestStartSessionEndpoint(t *testing.T) {
	Convey("Given a quiz API", t, func() {
		mock := &mockService{corpusSize: 24}
		ts := newTestServer(mock)
		defer ts.Close()

		Convey("When starting a session without a count", func() {
			resp, err := http.Get(ts.URL + "/api/session/start")
			So(err, ShouldBeNil)
			defer func() { _ = resp.Body.Close() }()

			Convey("Then the configured default applies", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				So(mock.lastCount, ShouldEqual, 10)

				var body struct {
					SessionID string `json:"session_id"`
					Verbs     []struct {
						Infinitive   string   `json:"infinitive"`
						Index        int      `json:"index"`
						Translations []string `json:"translations"`
						Example      string   `json:"example"`
					} `json:"verbs"`
					TotalVerbs int `json:"total_verbs"`
				}
				So(json.NewDecoder(resp.Body).Decode(&body), ShouldBeNil)
				So(body.SessionID, ShouldNotBeEmpty)
				So(body.TotalVerbs, ShouldEqual, 10)
				So(body.Verbs, ShouldHaveLength, 10)
				So(body.Verbs[0].Index, ShouldEqual, 0)
				So(body.Verbs[0].Translations, ShouldNotBeEmpty)
				So(body.Verbs[0].Example, ShouldNotBeEmpty)
			})
		})

		Convey("When starting a session with an explicit count", func() {
			resp, err := http.Get(ts.URL + "/api/session/start?count=5")
			So(err, ShouldBeNil)
			defer func() { _ = resp.Body.Close() }()

			So(resp.StatusCode, ShouldEqual, http.StatusOK)
			So(mock.lastCount, ShouldEqual, 5)
		})

		Convey("When the count is out of range", func() {
			for _, count := range []string{"0", "-3", "21"} {
				resp, err := http.Get(ts.URL + "/api/session/start?count=" + count)
				So(err, ShouldBeNil)
				So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
				_ = resp.Body.Close()
			}
		})

		Convey("When the count is not an integer", func() {
			resp, err := http.Get(ts.URL + "/api/session/start?count=viele")
			So(err, ShouldBeNil)
			defer func() { _ = resp.Body.Close() }()

			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
			var body struct {
				Code string `json:"code"`
			}
			So(json.NewDecoder(resp.Body).Decode(&body), ShouldBeNil)
			So(body.Code, ShouldEqual, "bad_request")
		})

		Convey("When the corpus is smaller than the request", func() {
			mock.startErr = fmt.Errorf("draw: %w", sampling.ErrNotEnoughVerbs)
			resp, err := http.Get(ts.URL + "/api/session/start?count=15")
			So(err, ShouldBeNil)
			defer func() { _ = resp.Body.Close() }()

			Convey("Then the rejection surfaces as a 400", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
				var body struct {
					Code string `json:"code"`
				}
				So(json.NewDecoder(resp.Body).Decode(&body), ShouldBeNil)
				So(body.Code, ShouldEqual, "not_enough_verbs")
			})
		})

		Convey("When using the wrong method", func() {
			resp, err := http.Post(ts.URL+"/api/session/start", "application/json", nil)
			So(err, ShouldBeNil)
			defer func() { _ = resp.Body.Close() }()
			So(resp.StatusCode, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestSubmitSessionEndpoint(t *testing.T) {
	Convey("Given a quiz API", t, func() {
		mock := &mockService{
			corpusSize: 24,
			report: model.SessionReport{
				TotalVerbs:      1,
				TotalForms:      3,
				CorrectCount:    2,
				ScorePercentage: 67,
				Results: []model.VerbResult{{
					Infinitive: "gehen",
					Results: [3]model.FormResult{
						{Form: model.FormPraesens, IsCorrect: true, UserAnswer: "geht", CorrectAnswer: "geht"},
						{Form: model.FormPraeteritum, IsCorrect: true, UserAnswer: "ging", CorrectAnswer: "ging"},
						{Form: model.FormPerfekt, IsCorrect: false, UserAnswer: "gegangen", CorrectAnswer: "ist gegangen"},
					},
				}},
			},
		}
		ts := newTestServer(mock)
		defer ts.Close()

		submit := func(payload string) *http.Response {
			resp, err := http.Post(ts.URL+"/api/session/submit", "application/json", strings.NewReader(payload))
			So(err, ShouldBeNil)
			return resp
		}

		Convey("When submitting a graded session", func() {
			resp := submit(`{
				"session_id": "abc-123",
				"answers": [{"infinitive": "gehen", "praesens": "geht", "praeteritum": "ging", "perfekt": "gegangen"}]
			}`)
			defer func() { _ = resp.Body.Close() }()

			Convey("Then the report round-trips with the per-verb breakdown", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)

				var body struct {
					SessionID       string `json:"session_id"`
					TotalForms      int    `json:"total_forms"`
					CorrectCount    int    `json:"correct_count"`
					ScorePercentage int    `json:"score_percentage"`
					Results         []struct {
						Infinitive     string            `json:"infinitive"`
						Correct        map[string]bool   `json:"correct"`
						UserAnswers    map[string]string `json:"user_answers"`
						CorrectAnswers map[string]string `json:"correct_answers"`
						AllCorrect     bool              `json:"all_correct"`
					} `json:"results"`
				}
				So(json.NewDecoder(resp.Body).Decode(&body), ShouldBeNil)
				So(body.SessionID, ShouldEqual, "abc-123")
				So(body.TotalForms, ShouldEqual, 3)
				So(body.CorrectCount, ShouldEqual, 2)
				So(body.ScorePercentage, ShouldEqual, 67)
				So(body.Results, ShouldHaveLength, 1)
				So(body.Results[0].Correct["praesens"], ShouldBeTrue)
				So(body.Results[0].Correct["perfekt"], ShouldBeFalse)
				So(body.Results[0].CorrectAnswers["perfekt"], ShouldEqual, "ist gegangen")
				So(body.Results[0].AllCorrect, ShouldBeFalse)
			})

			Convey("And the answers were passed through unmodified", func() {
				So(mock.lastAnswers, ShouldHaveLength, 1)
				So(mock.lastAnswers[0].Perfekt, ShouldEqual, "gegangen")
			})
		})

		Convey("When submitting an empty answer list", func() {
			resp := submit(`{"session_id": "abc-123", "answers": []}`)
			defer func() { _ = resp.Body.Close() }()
			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When omitting the session id", func() {
			resp := submit(`{"answers": [{"infinitive": "gehen"}]}`)
			defer func() { _ = resp.Body.Close() }()
			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When an answer omits its infinitive", func() {
			resp := submit(`{"session_id": "abc-123", "answers": [{"praesens": "geht"}]}`)
			defer func() { _ = resp.Body.Close() }()
			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When the body is not JSON", func() {
			resp := submit(`nicht json`)
			defer func() { _ = resp.Body.Close() }()
			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When a submission names an unknown verb", func() {
			mock.submitErr = fmt.Errorf("grade: %w", session.ErrUnknownVerbInSubmission)
			resp := submit(`{"session_id": "abc-123", "answers": [{"infinitive": "fliegen"}]}`)
			defer func() { _ = resp.Body.Close() }()

			Convey("Then the whole submission is rejected", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
				var body struct {
					Code string `json:"code"`
				}
				So(json.NewDecoder(resp.Body).Decode(&body), ShouldBeNil)
				So(body.Code, ShouldEqual, "unknown_verb")
			})
		})

		Convey("When using the wrong method", func() {
			resp, err := http.Get(ts.URL + "/api/session/submit")
			So(err, ShouldBeNil)
			defer func() { _ = resp.Body.Close() }()
			So(resp.StatusCode, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestStatsEndpoint(t *testing.T) {
	Convey("Given a quiz API", t, func() {
		ts := newTestServer(&mockService{corpusSize: 24})
		defer ts.Close()

		Convey("When GET /stats", func() {
			resp, err := http.Get(ts.URL + "/stats")
			So(err, ShouldBeNil)
			defer func() { _ = resp.Body.Close() }()

			Convey("Then service statistics come back as JSON", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				var stats map[string]interface{}
				So(json.NewDecoder(resp.Body).Decode(&stats), ShouldBeNil)
				So(stats["started"], ShouldEqual, true)
			})
		})
	})
}

func TestMetricsEndpoint(t *testing.T) {
	Convey("Given a quiz API", t, func() {
		ts := newTestServer(&mockService{corpusSize: 24})
		defer ts.Close()

		Convey("When GET /metrics", func() {
			resp, err := http.Get(ts.URL + "/metrics")
			So(err, ShouldBeNil)
			defer func() { _ = resp.Body.Close() }()

			Convey("Then the Prometheus registry is served", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
			})
		})
	})
}
