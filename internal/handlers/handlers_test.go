package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
	"github.com/gin-gonic/gin"

	"bistro_back_end/internal/handlers"
	"bistro_back_end/internal/services"
	"bistro_back_end/internal/store"
	"bistro_back_end/internal/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newHandler() (*handlers.Handler, store.Collections) {
	colls := store.NewMemoryCollections()
	return handlers.New(colls, utils.NewTokenService("handler-secret"), time.Second), colls
}

func serve(route string, fn gin.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	r := gin.New()
	r.Handle(req.Method, route, fn)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestIssueToken(t *testing.T) {
	c := qt.New(t)
	h, _ := newHandler()

	c.Run("signs the body", func(c *qt.C) {
		req := httptest.NewRequest(http.MethodPost, "/jwt", strings.NewReader(`{"email":"x@y.com","photo":"a.png"}`))
		w := serve("/jwt", h.IssueToken, req)
		c.Assert(w.Code, qt.Equals, http.StatusOK)

		var body map[string]string
		c.Assert(json.Unmarshal(w.Body.Bytes(), &body), qt.IsNil)
		claims, err := h.Tokens.Verify(body["token"])
		c.Assert(err, qt.IsNil)
		c.Assert(map[string]any(claims), qt.DeepEquals, map[string]any{"email": "x@y.com", "photo": "a.png"})
	})

	c.Run("empty body signs an empty payload", func(c *qt.C) {
		req := httptest.NewRequest(http.MethodPost, "/jwt", nil)
		w := serve("/jwt", h.IssueToken, req)
		c.Assert(w.Code, qt.Equals, http.StatusOK)
	})

	c.Run("invalid JSON", func(c *qt.C) {
		req := httptest.NewRequest(http.MethodPost, "/jwt", strings.NewReader(`{"email":`))
		w := serve("/jwt", h.IssueToken, req)
		c.Assert(w.Code, qt.Equals, http.StatusBadRequest)
		c.Assert(w.Body.String(), qt.JSONEquals, map[string]any{"error": true, "message": "invalid JSON body"})
	})

	c.Run("array body", func(c *qt.C) {
		req := httptest.NewRequest(http.MethodPost, "/jwt", strings.NewReader(`[1,2]`))
		w := serve("/jwt", h.IssueToken, req)
		c.Assert(w.Code, qt.Equals, http.StatusBadRequest)
	})

	c.Run("reserved claim is a server fault", func(c *qt.C) {
		req := httptest.NewRequest(http.MethodPost, "/jwt", strings.NewReader(`{"email":"x@y.com","exp":1}`))
		w := serve("/jwt", h.IssueToken, req)
		c.Assert(w.Code, qt.Equals, http.StatusInternalServerError)
		c.Assert(w.Body.Len(), qt.Equals, 0)
	})

	c.Run("caller iat and nbf are kept", func(c *qt.C) {
		now := time.Now().Unix()
		body := fmt.Sprintf(`{"email":"x@y.com","iat":%d,"nbf":%d}`, now, now-60)
		req := httptest.NewRequest(http.MethodPost, "/jwt", strings.NewReader(body))
		w := serve("/jwt", h.IssueToken, req)
		c.Assert(w.Code, qt.Equals, http.StatusOK)

		var out map[string]string
		c.Assert(json.Unmarshal(w.Body.Bytes(), &out), qt.IsNil)
		claims, err := h.Tokens.Verify(out["token"])
		c.Assert(err, qt.IsNil)
		c.Assert(claims["iat"], qt.Equals, float64(now))
		c.Assert(claims["nbf"], qt.Equals, float64(now-60))
	})
}

func TestAddToCart_StoresBodyVerbatim(t *testing.T) {
	c := qt.New(t)
	h, colls := newHandler()

	body := `{"email":"x@y.com","menuItemId":"642c155b2c4774f05c36eeaa","name":"Burger","price":9.9,"extras":{"cheese":true}}`
	req := httptest.NewRequest(http.MethodPost, "/carts", strings.NewReader(body))
	w := serve("/carts", h.AddToCart, req)
	c.Assert(w.Code, qt.Equals, http.StatusOK)

	items, err := store.FindAll(context.Background(), colls.Carts)
	c.Assert(err, qt.IsNil)
	c.Assert(items, qt.HasLen, 1)
	c.Assert(items[0]["menuItemId"], qt.Equals, "642c155b2c4774f05c36eeaa")
	c.Assert(items[0]["extras"], qt.DeepEquals, map[string]any{"cheese": true})
}

func TestCreateUser_MissingEmailMatchesMissingEmail(t *testing.T) {
	c := qt.New(t)
	h, colls := newHandler()

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(`{"name":"anon"}`))
		w := serve("/users", h.CreateUser, req)
		c.Assert(w.Code, qt.Equals, http.StatusOK)
	}
	c.Assert(colls.Users.(*store.MemoryCollection).Len(), qt.Equals, 1)
}

func TestDeleteMenuItem_UnknownID(t *testing.T) {
	c := qt.New(t)
	h, _ := newHandler()

	req := httptest.NewRequest(http.MethodDelete, "/menu/642c155b2c4774f05c36eeaa", nil)
	w := serve("/menu/:id", h.DeleteMenuItem, req)
	c.Assert(w.Code, qt.Equals, http.StatusOK)
	c.Assert(w.Body.String(), qt.JSONEquals, map[string]any{"acknowledged": true, "deletedCount": 0})
}

func TestGetCart_WithoutTokenContextIsForbidden(t *testing.T) {
	c := qt.New(t)
	h, _ := newHandler()

	req := httptest.NewRequest(http.MethodGet, "/carts?email=x@y.com", nil)
	w := serve("/carts", h.GetCart, req)
	c.Assert(w.Code, qt.Equals, http.StatusForbidden)
}

type fakeUploader struct {
	got string
	err error
}

func (f *fakeUploader) Upload(_ context.Context, file *multipart.FileHeader) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.got = file.Filename
	return "http://cdn.local/bistro-menu/menu/" + file.Filename, nil
}

func multipartRequest(c *qt.C, field, filename, contentType string) *http.Request {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, filename))
	header.Set("Content-Type", contentType)
	part, err := mw.CreatePart(header)
	c.Assert(err, qt.IsNil)
	_, err = part.Write([]byte("fake image bytes"))
	c.Assert(err, qt.IsNil)
	c.Assert(mw.Close(), qt.IsNil)

	req := httptest.NewRequest(http.MethodPost, "/menu/image", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestUploadMenuImage(t *testing.T) {
	c := qt.New(t)

	c.Run("not configured", func(c *qt.C) {
		h, _ := newHandler()
		w := serve("/menu/image", h.UploadMenuImage, multipartRequest(c, "image", "soup.png", "image/png"))
		c.Assert(w.Code, qt.Equals, http.StatusServiceUnavailable)
	})

	c.Run("uploads", func(c *qt.C) {
		h, _ := newHandler()
		up := &fakeUploader{}
		h.Images = up
		w := serve("/menu/image", h.UploadMenuImage, multipartRequest(c, "image", "soup.png", "image/png"))
		c.Assert(w.Code, qt.Equals, http.StatusOK)
		c.Assert(w.Body.String(), qt.JSONEquals, map[string]any{"url": "http://cdn.local/bistro-menu/menu/soup.png"})
		c.Assert(up.got, qt.Equals, "soup.png")
	})

	c.Run("missing field", func(c *qt.C) {
		h, _ := newHandler()
		h.Images = &fakeUploader{}
		w := serve("/menu/image", h.UploadMenuImage, multipartRequest(c, "photo", "soup.png", "image/png"))
		c.Assert(w.Code, qt.Equals, http.StatusBadRequest)
	})

	c.Run("not an image", func(c *qt.C) {
		h, _ := newHandler()
		h.Images = &fakeUploader{err: fmt.Errorf("%w: %q", services.ErrNotImage, "text/plain")}
		w := serve("/menu/image", h.UploadMenuImage, multipartRequest(c, "image", "notes.txt", "text/plain"))
		c.Assert(w.Code, qt.Equals, http.StatusBadRequest)
	})

	c.Run("storage failure", func(c *qt.C) {
		h, _ := newHandler()
		h.Images = &fakeUploader{err: errors.New("bucket gone")}
		w := serve("/menu/image", h.UploadMenuImage, multipartRequest(c, "image", "soup.png", "image/png"))
		c.Assert(w.Code, qt.Equals, http.StatusInternalServerError)
	})
}
