package grading_test

import (
	"errors"
	"testing"

	"github.com/okian/starkverb/internal/domain/grading"
	"github.com/okian/starkverb/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func gehen() model.VerbEntry {
	return model.VerbEntry{
		Infinitive: "gehen",
		Forms: model.FormSet{
			Praesens:    "geht",
			Praeteritum: "ging",
			Perfekt:     "ist gegangen",
		},
	}
}

func TestGrade(t *testing.T) {
	Convey("Given the corpus entry for gehen", t, func() {
		entry := gehen()

		Convey("When grading an exact match", func() {
			fr, err := grading.Grade(entry, model.FormPraeteritum, "ging")

			Convey("Then it is correct and carries both answers", func() {
				So(err, ShouldBeNil)
				So(fr.IsCorrect, ShouldBeTrue)
				So(fr.UserAnswer, ShouldEqual, "ging")
				So(fr.CorrectAnswer, ShouldEqual, "ging")
				So(fr.Form, ShouldEqual, model.FormPraeteritum)
			})
		})

		Convey("When grading with surrounding whitespace", func() {
			fr, err := grading.Grade(entry, model.FormPraeteritum, "  ging ")

			Convey("Then trimming makes it correct", func() {
				So(err, ShouldBeNil)
				So(fr.IsCorrect, ShouldBeTrue)
				So(fr.UserAnswer, ShouldEqual, "  ging ")
			})
		})

		Convey("When grading a case variant", func() {
			fr, err := grading.Grade(entry, model.FormPraeteritum, "Ging")

			Convey("Then it is incorrect", func() {
				So(err, ShouldBeNil)
				So(fr.IsCorrect, ShouldBeFalse)
			})
		})

		Convey("When grading with altered internal whitespace", func() {
			fr, err := grading.Grade(entry, model.FormPerfekt, "ist  gegangen")

			Convey("Then it is incorrect", func() {
				So(err, ShouldBeNil)
				So(fr.IsCorrect, ShouldBeFalse)
			})
		})

		Convey("When grading a perfect form missing its auxiliary", func() {
			fr, err := grading.Grade(entry, model.FormPerfekt, "gegangen")

			Convey("Then it is incorrect", func() {
				So(err, ShouldBeNil)
				So(fr.IsCorrect, ShouldBeFalse)
				So(fr.CorrectAnswer, ShouldEqual, "ist gegangen")
			})
		})

		Convey("When grading an empty submission", func() {
			fr, err := grading.Grade(entry, model.FormPraesens, "")

			Convey("Then it is incorrect, not an error", func() {
				So(err, ShouldBeNil)
				So(fr.IsCorrect, ShouldBeFalse)
				So(fr.UserAnswer, ShouldEqual, "")
			})
		})

		Convey("When grading a form outside the closed set", func() {
			_, err := grading.Grade(entry, model.Form("futur"), "wird gehen")

			Convey("Then it fails with ErrUnknownForm", func() {
				So(err, ShouldNotBeNil)
				So(errors.Is(err, grading.ErrUnknownForm), ShouldBeTrue)
			})
		})

		Convey("When grading the same inputs twice", func() {
			first, err1 := grading.Grade(entry, model.FormPraesens, "geht")
			second, err2 := grading.Grade(entry, model.FormPraesens, "geht")

			Convey("Then grading is idempotent", func() {
				So(err1, ShouldBeNil)
				So(err2, ShouldBeNil)
				So(first, ShouldResemble, second)
			})
		})
	})
}

func TestGradeVerb(t *testing.T) {
	Convey("Given the corpus entry for gehen", t, func() {
		entry := gehen()

		Convey("When grading an all-correct answer", func() {
			vr, err := grading.GradeVerb(entry, model.Answer{
				Infinitive:  "gehen",
				Praesens:    "geht",
				Praeteritum: "ging",
				Perfekt:     "ist gegangen",
			})

			Convey("Then all three forms are correct", func() {
				So(err, ShouldBeNil)
				So(vr.Infinitive, ShouldEqual, "gehen")
				So(vr.CorrectCount(), ShouldEqual, 3)
				So(vr.AllCorrect(), ShouldBeTrue)
			})
		})

		Convey("When grading an answer with a wrong perfect form", func() {
			vr, err := grading.GradeVerb(entry, model.Answer{
				Infinitive:  "gehen",
				Praesens:    "geht",
				Praeteritum: "ging",
				Perfekt:     "gegangen",
			})

			Convey("Then two of three forms are correct", func() {
				So(err, ShouldBeNil)
				So(vr.CorrectCount(), ShouldEqual, 2)
				So(vr.AllCorrect(), ShouldBeFalse)
				So(vr.Results[2].IsCorrect, ShouldBeFalse)
			})
		})

		Convey("When grading an answer with missing fields", func() {
			vr, err := grading.GradeVerb(entry, model.Answer{Infinitive: "gehen"})

			Convey("Then absent submissions grade as incorrect", func() {
				So(err, ShouldBeNil)
				So(vr.CorrectCount(), ShouldEqual, 0)
			})
		})
	})
}
