package service_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	service "github.com/okian/starkverb/internal/app"
	"github.com/okian/starkverb/internal/domain/model"
	"github.com/okian/starkverb/internal/domain/sampling"
	"github.com/okian/starkverb/internal/domain/session"
	"github.com/okian/starkverb/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

const testVerbs = `{
	"gehen":  {"Präsens": "geht",  "Präteritum": "ging",   "Perfekt": "ist gegangen"},
	"machen": {"Präsens": "macht", "Präteritum": "machte", "Perfekt": "hat gemacht"},
	"sein":   {"Präsens": "ist",   "Präteritum": "war",    "Perfekt": "ist gewesen"},
	"haben":  {"Präsens": "hat",   "Präteritum": "hatte",  "Perfekt": "hat gehabt"},
	"werden": {"Präsens": "wird",  "Präteritum": "wurde",  "Perfekt": "ist geworden"}
}`

func newTestService(t *testing.T) *service.Service {
	t.Helper()
	dir := t.TempDir()
	verbs := filepath.Join(dir, "verbs.json")
	if err := os.WriteFile(verbs, []byte(testVerbs), 0o600); err != nil {
		t.Fatalf("write corpus: %v", err)
	}
	examples := filepath.Join(dir, "examples.json")
	if err := os.WriteFile(examples, []byte(`{"gehen": ["Er geht zur Schule.", "Sie geht nach Hause."]}`), 0o600); err != nil {
		t.Fatalf("write examples: %v", err)
	}
	translations := filepath.Join(dir, "translations.json")
	if err := os.WriteFile(translations, []byte(`{"gehen": ["идти"]}`), 0o600); err != nil {
		t.Fatalf("write translations: %v", err)
	}

	return service.New(
		service.WithVerbsPath(verbs),
		service.WithTranslationsPath(translations),
		service.WithExamplesPath(examples),
		service.WithDefaultCount(3),
		service.WithMaxCount(5),
		service.WithWatchCorpus(false),
		service.WithSeed(42),
	)
}

func TestServiceLifecycle(t *testing.T) {
	Convey("Given a service over a five-verb corpus", t, func() {
		So(logger.Init(), ShouldBeNil)
		ctx := context.Background()
		svc := newTestService(t)

		Convey("When starting it", func() {
			err := svc.Start(ctx)
			defer svc.Stop()

			Convey("Then the corpus is loaded before traffic", func() {
				So(err, ShouldBeNil)
				size, err := svc.CorpusSize(ctx)
				So(err, ShouldBeNil)
				So(size, ShouldEqual, 5)
			})

			Convey("And starting twice is harmless", func() {
				So(err, ShouldBeNil)
				So(svc.Start(ctx), ShouldBeNil)
			})

			Convey("And stats describe the running service", func() {
				So(err, ShouldBeNil)
				stats := svc.GetStats()
				So(stats["started"], ShouldEqual, true)
				So(stats["verbsLoaded"], ShouldEqual, 5)
				So(stats["maxCount"], ShouldEqual, 5)
			})
		})

		Convey("When the corpus file is missing", func() {
			broken := service.New(
				service.WithVerbsPath(filepath.Join(t.TempDir(), "missing.json")),
				service.WithWatchCorpus(false),
			)

			Convey("Then startup fails instead of serving", func() {
				So(broken.Start(ctx), ShouldNotBeNil)
			})
		})
	})
}

func TestServiceSessions(t *testing.T) {
	Convey("Given a started service", t, func() {
		So(logger.Init(), ShouldBeNil)
		ctx := context.Background()
		svc := newTestService(t)
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		Convey("When starting a session", func() {
			selection, err := svc.StartSession(ctx, 3)

			Convey("Then it offers distinct verbs with hints but no answers", func() {
				So(err, ShouldBeNil)
				So(selection.SessionID, ShouldNotBeEmpty)
				So(selection.Verbs, ShouldHaveLength, 3)

				seen := map[string]bool{}
				for i, v := range selection.Verbs {
					So(v.Index, ShouldEqual, i)
					So(seen[v.Infinitive], ShouldBeFalse)
					seen[v.Infinitive] = true
				}
			})

			Convey("And session ids are unique per request", func() {
				So(err, ShouldBeNil)
				other, err := svc.StartSession(ctx, 3)
				So(err, ShouldBeNil)
				So(other.SessionID, ShouldNotEqual, selection.SessionID)
			})
		})

		Convey("When the session includes a verb with hints", func() {
			selection, err := svc.StartSession(ctx, 5)
			So(err, ShouldBeNil)

			var gehen *model.OfferedVerb
			for i := range selection.Verbs {
				if selection.Verbs[i].Infinitive == "gehen" {
					gehen = &selection.Verbs[i]
				}
			}

			Convey("Then translations and one example come along", func() {
				So(gehen, ShouldNotBeNil)
				So(gehen.Translations, ShouldResemble, []string{"идти"})
				So(gehen.Example, ShouldBeIn, "Er geht zur Schule.", "Sie geht nach Hause.")
			})
		})

		Convey("When requesting more verbs than the corpus holds", func() {
			_, err := svc.StartSession(ctx, 6)
			So(errors.Is(err, sampling.ErrNotEnoughVerbs), ShouldBeTrue)
		})

		Convey("When submitting a fully correct session", func() {
			report, err := svc.SubmitAnswers(ctx, []model.Answer{{
				Infinitive:  "gehen",
				Praesens:    "geht",
				Praeteritum: "ging",
				Perfekt:     "ist gegangen",
			}})

			Convey("Then the score is 100", func() {
				So(err, ShouldBeNil)
				So(report.ScorePercentage, ShouldEqual, 100)
				So(report.CorrectCount, ShouldEqual, 3)
			})
		})

		Convey("When submitting an unknown verb", func() {
			_, err := svc.SubmitAnswers(ctx, []model.Answer{{Infinitive: "fliegen"}})
			So(errors.Is(err, session.ErrUnknownVerbInSubmission), ShouldBeTrue)
		})

		Convey("When reloading the corpus explicitly", func() {
			So(svc.Reload(ctx), ShouldBeNil)
			size, err := svc.CorpusSize(ctx)
			So(err, ShouldBeNil)
			So(size, ShouldEqual, 5)
		})
	})
}
