package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hervital/hervital/internal/services"
)

func TestWriteErrStatusMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{services.NewInvalidError("bad"), http.StatusBadRequest},
		{services.NewUnauthorizedError("who"), http.StatusUnauthorized},
		{services.NewForbiddenError("no"), http.StatusForbidden},
		{services.NewNotFoundError("gone"), http.StatusNotFound},
		{services.NewConflictError("dup"), http.StatusConflict},
		{services.NewReferentialError("missing user"), http.StatusUnprocessableEntity},
		{services.NewBadGatewayError("upstream"), http.StatusBadGateway},
		{errors.New("disk exploded"), http.StatusInternalServerError},
	}
	for _, c := range cases {
		rec := httptest.NewRecorder()
		writeErr(rec, c.err)
		if rec.Code != c.want {
			t.Fatalf("writeErr(%v) status=%d, want %d", c.err, rec.Code, c.want)
		}
		if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
			t.Fatalf("content type=%q", ct)
		}
	}
}

func TestWriteErrHidesInternalDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	writeErr(rec, errors.New("dsn=postgres://admin:hunter2@db"))
	if body := rec.Body.String(); body != "{\"message\":\"internal error\"}\n" {
		t.Fatalf("internal error leaked detail: %s", body)
	}
}
