package dashboard

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const scenarioJSON = `[
	{"id":1,"sku":"A1","product_name":"Hammer","category":"Tools","stock":0,"price":9.99,"last_updated":"2024-01-01"},
	{"id":2,"sku":"B2","product_name":"Wrench","category":"Tools","stock":5,"price":3.5,"last_updated":"2024-01-02"},
	{"id":3,"sku":"C3","product_name":"Bolt","category":"Parts","stock":2,"price":1.0,"last_updated":"2024-01-03"}
]`

func serve(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/inventory", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestClientFetch(t *testing.T) {
	srv := serve(t, http.StatusOK, scenarioJSON)
	c := NewClient(srv.URL+"/api/inventory", 0)

	items, err := c.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, scenarioItems(), items)
}

func TestClientFetchEmptyAndNull(t *testing.T) {
	for _, body := range []string{"[]", "null"} {
		t.Run(body, func(t *testing.T) {
			srv := serve(t, http.StatusOK, body)
			items, err := NewClient(srv.URL+"/api/inventory", 0).Fetch(context.Background())
			require.NoError(t, err)
			assert.NotNil(t, items)
			assert.Empty(t, items)
		})
	}
}

func TestClientFetchNon2xx(t *testing.T) {
	srv := serve(t, http.StatusInternalServerError, "boom")

	_, err := NewClient(srv.URL+"/api/inventory", 0).Fetch(context.Background())

	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusInternalServerError, se.Code)
	assert.Contains(t, err.Error(), "500")
}

func TestClientFetchMalformed(t *testing.T) {
	for name, body := range map[string]string{
		"not json":    "<html>oops</html>",
		"object":      `{"items":[]}`,
		"wrong types": `[{"id":"one"}]`,
	} {
		t.Run(name, func(t *testing.T) {
			srv := serve(t, http.StatusOK, body)
			_, err := NewClient(srv.URL+"/api/inventory", 0).Fetch(context.Background())
			require.Error(t, err)
			assert.Contains(t, err.Error(), "decode inventory")
		})
	}
}

func TestClientFetchUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL + "/api/inventory"
	srv.Close()

	_, err := NewClient(url, time.Second).Fetch(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetch inventory")
}

func TestClientFetchBadURL(t *testing.T) {
	_, err := NewClient("://nope", 0).Fetch(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "build inventory request")
}

func TestViewAgainstRejectingBackend(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL + "/api/inventory"
	srv.Close()

	v := NewView(nopLogger())
	v.Load(context.Background(), NewClient(url, time.Second))

	_, ok := v.State().(Ready)
	require.True(t, ok)
	assert.Error(t, v.Err())
	assert.Empty(t, v.Items())
	assert.True(t, v.Table().Empty())
}
