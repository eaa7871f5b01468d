package versions

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odoo-devkit/odev/pkg/errors"
)

func TestParseMajor(t *testing.T) {
	tests := []struct {
		branch  string
		want    int
		wantErr bool
	}{
		{"18.0", 18, false},
		{"17.0", 17, false},
		{"18", 18, false},
		{"9.0", 9, false},
		{"master", 0, true},
		{"saas-18.1", 0, true},
		{"", 0, true},
		{"v18.0", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.branch, func(t *testing.T) {
			got, err := ParseMajor(tt.branch)
			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, errors.IsCode(err, errors.ErrVersionParse))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFromBranch(t *testing.T) {
	tests := []struct {
		branch  string
		want    Triple
		wantErr bool
	}{
		{"18.0", Triple{16, 17, 18}, false},
		{"19.0", Triple{17, 18, 19}, false},
		{"2.0", Triple{0, 1, 2}, false},
		{"1.0", Triple{}, true}, // no room for two prior majors
		{"master", Triple{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.branch, func(t *testing.T) {
			got, err := FromBranch(tt.branch)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, got.Valid())
		})
	}
}

func TestTripleValid(t *testing.T) {
	assert.True(t, Triple{16, 17, 18}.Valid())
	assert.False(t, Triple{16, 17, 19}.Valid())
	assert.False(t, Triple{-1, 0, 1}.Valid())
}

func TestFetchDefaultBranch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"default_branch": "18.0", "name": "odoo"}`))
	}))
	defer srv.Close()

	branch, err := FetchDefaultBranch(context.Background(), srv.URL, 5*time.Second)
	require.NoError(t, err)
	assert.Equal(t, "18.0", branch)
}

func TestFetchDefaultBranchServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := FetchDefaultBranch(context.Background(), srv.URL, 5*time.Second)
	assert.True(t, errors.IsCode(err, errors.ErrMetadataFetch))
}

func TestFetchDefaultBranchUnreachable(t *testing.T) {
	// Reserved TEST-NET-1 address, nothing listens there
	_, err := FetchDefaultBranch(context.Background(), "http://192.0.2.1:1/repo", 200*time.Millisecond)
	assert.True(t, errors.IsCode(err, errors.ErrMetadataFetch))
}

func TestFetchDefaultBranchEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"name": "odoo"}`))
	}))
	defer srv.Close()

	_, err := FetchDefaultBranch(context.Background(), srv.URL, 5*time.Second)
	assert.True(t, errors.IsCode(err, errors.ErrMetadataFetch))
}

func TestDerive(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"default_branch": "18.0"}`))
	}))
	defer srv.Close()

	triple, err := Derive(context.Background(), srv.URL, 5*time.Second)
	require.NoError(t, err)
	assert.Equal(t, Triple{Oldest: 16, Middle: 17, Latest: 18}, triple)
}
