package schema

import (
	"encoding/json"
	"testing"

	"github.com/globalsolutions/website/backend/internal/validation"
	"github.com/stretchr/testify/require"
)

type card struct {
	Title string   `json:"title" validate:"required"`
	Tags  []string `json:"tags" validate:"min=1"`
	Score int      `json:"score" validate:"gte=0"`
}

func TestDefinePrepareKeepsCallerDocument(t *testing.T) {
	s := Define("card", "home", card{Title: "Card", Tags: []string{"a"}}, nil)

	out, err := s.Prepare(json.RawMessage(`{"title":"  Hello  ","tags":[" x "],"extra":{"note":" n "},"ratio":1.50}`))
	require.NoError(t, err)
	// undeclared fields survive, the omitted score is not filled in
	require.JSONEq(t, `{"title":"Hello","tags":["x"],"extra":{"note":"n"},"ratio":1.50}`, string(out))
	require.Contains(t, string(out), `"ratio":1.50`)
}

func TestDefinePrepareRejectsTrailingData(t *testing.T) {
	s := Define("card", "home", card{}, nil)
	for _, body := range []string{`{"title":"a","tags":["x"]}garbage`, `{"title":"a","tags":["x"]} {}`} {
		_, err := s.Prepare(json.RawMessage(body))
		var verr *validation.Error
		require.ErrorAs(t, err, &verr, body)
	}
	_, err := s.Prepare(json.RawMessage("{\"title\":\"a\",\"tags\":[\"x\"]}\n  "))
	require.NoError(t, err)
}

func TestDefinePrepareCollectsMessages(t *testing.T) {
	s := Define("card", "home", card{}, validation.Messages{
		"title.required": "Title is required",
	})

	_, err := s.Prepare(json.RawMessage(`{"title":"   ","tags":[],"score":-1}`))
	var verr *validation.Error
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "card", verr.Subject)
	require.Equal(t, []string{
		"Title is required",
		"tags must contain at least 1 item(s)",
		"score must be 0 or more",
	}, verr.Details)
}

func TestDefinePrepareRejectsMalformedJSON(t *testing.T) {
	s := Define("card", "home", card{}, nil)
	for _, body := range []string{`{"title":`, `"just a string"`, `[1,2]`} {
		_, err := s.Prepare(json.RawMessage(body))
		var verr *validation.Error
		require.ErrorAs(t, err, &verr, body)
	}
}

func TestDefault(t *testing.T) {
	s := Define("card", "home", card{Title: "Card", Tags: []string{"a"}}, nil)
	require.True(t, s.HasDefault())
	def, err := s.Default()
	require.NoError(t, err)
	require.JSONEq(t, `{"title":"Card","tags":["a"],"score":0}`, string(def))

	nd := DefineNoDefault[card]("card2", "home", nil)
	require.False(t, nd.HasDefault())
	_, err = nd.Default()
	require.Error(t, err)
}

func TestRawSection(t *testing.T) {
	s := Raw("announcement", "layout")
	require.False(t, s.HasDefault())

	out, err := s.Prepare(json.RawMessage(" {\n \"text\": \" keep spaces \" } "))
	require.NoError(t, err)
	require.Equal(t, `{"text":" keep spaces "}`, string(out))

	for _, body := range []string{``, `{`, `42`, `"x"`} {
		_, err := s.Prepare(json.RawMessage(body))
		var verr *validation.Error
		require.ErrorAs(t, err, &verr, body)
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(Raw("hero", "home")))
	require.NoError(t, r.Register(Raw("footer", "layout")))
	require.Error(t, r.Register(Raw("hero", "pages")))
	require.Error(t, r.Register(Raw("Bad Key", "home")))
	require.Error(t, r.Register(Raw("ok", "")))

	s, ok := r.Lookup("footer")
	require.True(t, ok)
	require.Equal(t, "layout", s.Area())
	_, ok = r.Lookup("missing")
	require.False(t, ok)

	all := r.All()
	require.Len(t, all, 2)
	require.Equal(t, "hero", all[0].Key())
	require.Equal(t, "footer", all[1].Key())

	require.Panics(t, func() { r.MustRegister(Raw("footer", "layout")) })
}
