package configure

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapblocks/internal/ui/features"
	"github.com/leapstack-labs/leapblocks/pkg/core"
)

func request(fx *features.TestFixture, method, id, body string) *http.Request {
	req := httptest.NewRequest(method, "/api/blocks/"+id+"/config", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return features.RequestWithPathParam(fx.Request(req), "id", id)
}

func TestOpenForm(t *testing.T) {
	fx := features.SetupTestFixture(t)
	fx.Drop(t, core.KindVariable, 145, 120)
	h := NewHandlers()

	rec := httptest.NewRecorder()
	h.OpenForm(rec, request(fx, http.MethodGet, "block-0", ""))

	require.Equal(t, http.StatusOK, rec.Code)
	doc := features.ParseHTML(t, features.SSEElements(rec.Body.String()))
	modal := features.FindByID(doc, "config-modal")
	require.NotNil(t, modal)
	assert.Contains(t, features.Text(modal), "Configure VARIABLE")

	name := features.FindByID(doc, "cfg-name")
	require.NotNil(t, name)
	value, _ := features.Attr(name, "value")
	assert.Equal(t, "myVar", value, "empty value shows the default")
	bind, _ := features.Attr(name, "data-bind")
	assert.Equal(t, "config.name", bind)

	typ := features.FindByID(doc, "cfg-type")
	require.NotNil(t, typ)
	assert.Equal(t, "select", typ.Data)

	view, err := fx.Session.View()
	require.NoError(t, err)
	require.NotNil(t, view.Form)
	assert.Equal(t, core.BlockID(0), view.Form.Block)
}

func TestOpenForm_Errors(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		wantStatus int
	}{
		{name: "unconfigurable kind", id: "block-0", wantStatus: http.StatusUnprocessableEntity},
		{name: "missing block", id: "block-9", wantStatus: http.StatusNotFound},
		{name: "invalid id", id: "first", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := features.SetupTestFixture(t)
			fx.Drop(t, core.KindStart, 145, 120)

			rec := httptest.NewRecorder()
			NewHandlers().OpenForm(rec, request(fx, http.MethodGet, tt.id, ""))

			assert.Equal(t, tt.wantStatus, rec.Code)
			view, err := fx.Session.View()
			require.NoError(t, err)
			assert.Nil(t, view.Form)
		})
	}
}

func TestSaveForm(t *testing.T) {
	fx := features.SetupTestFixture(t)
	fx.Drop(t, core.KindVariable, 145, 120)
	h := NewHandlers()

	h.OpenForm(httptest.NewRecorder(), request(fx, http.MethodGet, "block-0", ""))

	rec := httptest.NewRecorder()
	h.SaveForm(rec, request(fx, http.MethodPost, "block-0",
		`{"config":{"name":"count","value":5,"type":"number","stray":"x"},"dialect":"js"}`))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	view, err := fx.Session.View()
	require.NoError(t, err)
	assert.Nil(t, view.Form, "form closes on save")
	require.Len(t, view.Blocks, 1)
	assert.Equal(t, core.Values{"name": "count", "value": "5", "type": "number"}, view.Blocks[0].Config)
	assert.Equal(t, "let count = 5;\n", view.Code)
	assert.Contains(t, rec.Body.String(), "let count = 5;")
}

func TestSaveForm_KeepsMissingFields(t *testing.T) {
	fx := features.SetupTestFixture(t)
	fx.Drop(t, core.KindInput, 145, 120)
	h := NewHandlers()

	rec := httptest.NewRecorder()
	h.SaveForm(rec, request(fx, http.MethodPost, "block-0", `{"config":{"variable":"age"}}`))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	view, err := fx.Session.View()
	require.NoError(t, err)
	assert.Equal(t, core.Values{"prompt": "Enter value:", "variable": "age"}, view.Blocks[0].Config)
}

func TestSaveForm_Errors(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		body       string
		wantStatus int
	}{
		{name: "malformed body", id: "block-1", body: `{"config":`, wantStatus: http.StatusBadRequest},
		{name: "unconfigurable kind", id: "block-0", body: `{"config":{}}`, wantStatus: http.StatusUnprocessableEntity},
		{name: "missing block", id: "block-7", body: `{"config":{}}`, wantStatus: http.StatusNotFound},
		{name: "nested value", id: "block-1", body: `{"config":{"operation":{"a":1}}}`, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := features.SetupTestFixture(t)
			fx.Drop(t, core.KindEnd, 145, 120)
			fx.Drop(t, core.KindProcess, 145, 220)

			rec := httptest.NewRecorder()
			NewHandlers().SaveForm(rec, request(fx, http.MethodPost, tt.id, tt.body))

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestCancelForm(t *testing.T) {
	fx := features.SetupTestFixture(t)
	fx.Drop(t, core.KindOutput, 145, 120)
	h := NewHandlers()

	h.OpenForm(httptest.NewRecorder(), request(fx, http.MethodGet, "block-0", ""))

	rec := httptest.NewRecorder()
	h.CancelForm(rec, request(fx, http.MethodDelete, "block-0", ""))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "config-modal")

	view, err := fx.Session.View()
	require.NoError(t, err)
	assert.Nil(t, view.Form)
	assert.Equal(t, core.Values{"message": "result"}, view.Blocks[0].Config, "nothing saved")
}
