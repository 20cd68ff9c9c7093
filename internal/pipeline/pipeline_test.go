package pipeline_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phenrril/bfguitars/internal/pipeline"
)

func TestRun_StopsAtFirstFailure(t *testing.T) {
	var calls []string
	step := func(name string, res pipeline.Result) pipeline.Step {
		return func(ctx context.Context, ex *pipeline.Exchange) pipeline.Result {
			calls = append(calls, name)
			return res
		}
	}

	f := pipeline.Run(context.Background(), &pipeline.Exchange{},
		step("validate", pipeline.Next()),
		step("execute", pipeline.Fail(http.StatusBadRequest, "nope")),
		step("respond", pipeline.Next()),
	)

	require.NotNil(t, f)
	assert.Equal(t, http.StatusBadRequest, f.Status)
	assert.Equal(t, "nope", f.Message)
	assert.Equal(t, []string{"validate", "execute"}, calls)
}

func TestRun_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	called := false
	f := pipeline.Run(ctx, &pipeline.Exchange{}, func(context.Context, *pipeline.Exchange) pipeline.Result {
		called = true
		return pipeline.Next()
	})
	require.NotNil(t, f)
	assert.Equal(t, http.StatusInternalServerError, f.Status)
	assert.False(t, called)
}

func TestPipeline_ServeHTTP(t *testing.T) {
	p := pipeline.Pipeline{
		Name:   "echo",
		Params: []string{"id"},
		Steps: []pipeline.Step{
			func(_ context.Context, ex *pipeline.Exchange) pipeline.Result {
				if ex.Param("id") == "bad" {
					return pipeline.Fail(http.StatusBadRequest, "bad id")
				}
				return pipeline.Next()
			},
		},
		Respond: func(w http.ResponseWriter, ex *pipeline.Exchange) {
			_, _ = w.Write([]byte("ok " + ex.Param("id") + " " + ex.Form.Get("name")))
		},
	}
	mux := http.NewServeMux()
	mux.Handle("POST /echo/{id}", p)
	srv := httptest.NewServer(mux)
	defer srv.Close()

	resp, err := http.PostForm(srv.URL+"/echo/7", url.Values{"name": {"Kai"}})
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/echo/bad", strings.NewReader(""))
	require.NoError(t, err)
	resp2, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp2.StatusCode)
	assert.Equal(t, "text/plain; charset=utf-8", resp2.Header.Get("Content-Type"))
}

func TestWriteFailure(t *testing.T) {
	rec := httptest.NewRecorder()
	pipeline.WriteFailure(rec, &pipeline.Failure{Status: 500, Message: pipeline.ServerError})
	assert.Equal(t, 500, rec.Code)
	assert.Equal(t, pipeline.ServerError, rec.Body.String())
}
