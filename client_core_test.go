package storefront

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reservat/storefront-go/internal/types"
	"github.com/reservat/storefront-go/storage"
)

func TestNewPanicsOnEmptyBaseURL(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on empty baseURL")
		}
	}()
	_ = New("")
}

func TestNewPanicsOnBadOption(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on invalid option")
		}
	}()
	_ = New("http://example.test", WithHTTPTimeout(-time.Second))
}

func TestCloseIsIdempotent(t *testing.T) {
	c := New("http://example.test")
	assert.NoError(t, c.Close())
	assert.NoError(t, c.Close())
}

func TestRestoreSessionWithoutTokenIsNoop(t *testing.T) {
	c := New("http://example.test", WithStorage(storage.NewMemory()))
	defer func() { _ = c.Close() }()

	user, err := c.RestoreSession(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, user)
	assert.False(t, c.State().Loading)
}

func TestFetchServicesPopulatesState(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"servicios":[
			{"id_servicio":"s1","nombre":"Hotel Playa","tipo_servicio":"alojamiento","ciudad":"Cartagena","precio":100},
			{"id_servicio":"s2","nombre":"Bus","tipo_servicio":"transporte","ciudad":"Bogotá","precio":15}
		]}`))
	}))
	defer srv.Close()

	c := New(srv.URL, WithStorage(storage.NewMemory()))
	defer func() { _ = c.Close() }()

	services, err := c.FetchServices(context.Background())
	require.NoError(t, err)
	assert.Len(t, services, 2)

	st := c.State()
	assert.Len(t, st.Services, 2)
	assert.False(t, st.Loading)
}

func TestFetchServicesFailureSetsErrorState(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.URL, WithStorage(storage.NewMemory()))
	defer func() { _ = c.Close() }()

	_, err := c.FetchServices(context.Background())
	require.Error(t, err)
	assert.Equal(t, "Error al cargar servicios", c.State().Err)
}

func TestFilteredServicesUsesCurrentCategoryAndFilters(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"servicios":[
			{"id_servicio":"s1","nombre":"Hotel Playa","tipo_servicio":"alojamiento","ciudad":"Cartagena","precio":100},
			{"id_servicio":"s2","nombre":"Hostal Centro","tipo_servicio":"alojamiento","ciudad":"Bogotá","precio":30},
			{"id_servicio":"s3","nombre":"Bus","tipo_servicio":"transporte","ciudad":"Bogotá","precio":15}
		]}`))
	}))
	defer srv.Close()

	c := New(srv.URL, WithStorage(storage.NewMemory()))
	defer func() { _ = c.Close() }()
	_, err := c.FetchServices(context.Background())
	require.NoError(t, err)

	c.SetCategory("hoteles")
	got := c.FilteredServices()
	assert.Len(t, got, 2)

	c.SetSearchFilters(types.SearchFilters{Query: "playa"})
	got = c.FilteredServices()
	require.Len(t, got, 1)
	assert.Equal(t, "s1", got[0].ID)
}

func TestServicePhotosPublishesIntoState(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		_, _ = w.Write([]byte(`{"fotos":[{"url":"a.jpg"},{"url":"b.jpg"}]}`))
	}))
	defer srv.Close()

	c := New(srv.URL, WithStorage(storage.NewMemory()))
	defer func() { _ = c.Close() }()

	got := c.ServicePhotos(context.Background(), "s1")
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, got)
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, c.State().ServicePhotos["s1"])

	// Second lookup is served from the session cache.
	_ = c.ServicePhotos(context.Background(), "s1")
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestServicePhotosFailureYieldsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := New(srv.URL, WithStorage(storage.NewMemory()))
	defer func() { _ = c.Close() }()

	assert.Empty(t, c.ServicePhotos(context.Background(), "missing"))
}

func TestCartSurvivesClientRestart(t *testing.T) {
	port := storage.NewMemory()

	c := New("http://example.test", WithStorage(port))
	c.AddToCart(types.Service{ID: "s1", Name: "Hotel", Price: 100}, types.AddOptions{Quantity: 2})
	require.NoError(t, c.Close())

	c2 := New("http://example.test", WithStorage(port))
	defer func() { _ = c2.Close() }()

	st := c2.State()
	require.Len(t, st.Cart, 1)
	assert.Equal(t, 2, st.Cart[0].Quantity)
	assert.InDelta(t, 200, c2.CartTotal(), 1e-9)
	assert.Equal(t, 2, c2.CartItemCount())
}

func TestCartTotalsThroughClient(t *testing.T) {
	c := New("http://example.test", WithStorage(storage.NewMemory()))
	defer func() { _ = c.Close() }()

	assert.Zero(t, c.CartTotal())
	assert.Zero(t, c.CartItemCount())

	c.AddToCart(types.Service{ID: "s1", Price: 100}, types.AddOptions{Quantity: 2})
	c.AddToCart(types.Service{ID: "s2", Price: 40.5}, types.AddOptions{})

	assert.InDelta(t, 240.5, c.CartTotal(), 1e-9)
	assert.Equal(t, 3, c.CartItemCount())
}

func TestBearerTransportAttachesTokenWhenPresent(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"servicios":[]}`))
	}))
	defer srv.Close()

	port := storage.NewMemory()
	c := New(srv.URL, WithStorage(port))
	defer func() { _ = c.Close() }()

	// No token: request goes out bare.
	_, err := c.FetchServices(context.Background())
	require.NoError(t, err)
	assert.Empty(t, gotAuth)

	require.NoError(t, c.tokens.Save(context.Background(), "tok-1", time.Now().Add(time.Hour)))
	_, err = c.FetchServices(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-1", gotAuth)
}
