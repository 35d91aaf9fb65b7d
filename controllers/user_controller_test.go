package controllers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dchahine/chatline_backend/models"
	"github.com/dchahine/chatline_backend/repositories"
)

func profileRequest(t *testing.T, e *echo.Echo, handler echo.HandlerFunc, method, body, phoneParam string) (*httptest.ResponseRecorder, models.Response) {
	t.Helper()

	req := httptest.NewRequest(method, "/api/profile", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if phoneParam != "" {
		c.SetParamNames("phoneNumber")
		c.SetParamValues(phoneParam)
	}
	require.NoError(t, handler(c))

	var resp models.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec, resp
}

func TestCreateAndGetProfile(t *testing.T) {
	e := newTestEcho()
	uc := NewUserController(repositories.NewMemoryUserRepository())

	rec, resp := profileRequest(t, e, uc.CreateProfile, http.MethodPost,
		`{"name": "A", "phoneNumber": "+1"}`, "")
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, resp.Success)
	require.NotNil(t, resp.User)
	assert.Equal(t, "A", resp.User.Name)

	rec, resp = profileRequest(t, e, uc.GetProfile, http.MethodGet, "", "+1")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, resp.Success)
	require.NotNil(t, resp.User)
	assert.Equal(t, "A", resp.User.Name)
	assert.Empty(t, resp.User.About)
	assert.Empty(t, resp.User.PicturePath)
}

func TestCreateProfileMissingName(t *testing.T) {
	e := newTestEcho()
	uc := NewUserController(repositories.NewMemoryUserRepository())

	rec, resp := profileRequest(t, e, uc.CreateProfile, http.MethodPost,
		`{"phoneNumber": "+1"}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, resp.Success)
}

func TestUpdateProfilePartial(t *testing.T) {
	e := newTestEcho()
	uc := NewUserController(repositories.NewMemoryUserRepository())

	_, _ = profileRequest(t, e, uc.CreateProfile, http.MethodPost,
		`{"name": "A", "phoneNumber": "+1"}`, "")

	// Only the about text is provided; the name keeps its value
	rec, resp := profileRequest(t, e, uc.UpdateProfile, http.MethodPut,
		`{"about": "hi"}`, "+1")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, resp.Success)
	require.NotNil(t, resp.User)
	assert.Equal(t, "A", resp.User.Name)
	assert.Equal(t, "hi", resp.User.About)

	rec, resp = profileRequest(t, e, uc.GetProfile, http.MethodGet, "", "+1")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "A", resp.User.Name)
	assert.Equal(t, "hi", resp.User.About)
}

func TestUpdateProfileUnknownPhone(t *testing.T) {
	e := newTestEcho()
	uc := NewUserController(repositories.NewMemoryUserRepository())

	rec, resp := profileRequest(t, e, uc.UpdateProfile, http.MethodPut,
		`{"about": "hi"}`, "+404")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, resp.Success)
}

func TestGetProfileUnknownPhone(t *testing.T) {
	e := newTestEcho()
	uc := NewUserController(repositories.NewMemoryUserRepository())

	rec, resp := profileRequest(t, e, uc.GetProfile, http.MethodGet, "", "+404")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, resp.Success)
}

func TestCreateProfileWithPicture(t *testing.T) {
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { os.Chdir(old) })

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	require.NoError(t, writer.WriteField("name", "A"))
	require.NoError(t, writer.WriteField("phoneNumber", "+1"))
	part, err := writer.CreateFormFile("file", "avatar.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("fake image bytes"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	e := newTestEcho()
	uc := NewUserController(repositories.NewMemoryUserRepository())

	req := httptest.NewRequest(http.MethodPost, "/api/profile", &buf)
	req.Header.Set(echo.HeaderContentType, writer.FormDataContentType())
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	require.NoError(t, uc.CreateProfile(c))

	var resp models.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, resp.Success)
	require.NotNil(t, resp.User)
	assert.True(t, strings.HasPrefix(resp.User.PicturePath, "/uploads/profiles/"))

	// The upload collaborator owns the file; the record only holds the path
	_, err = os.Stat("." + resp.User.PicturePath)
	assert.NoError(t, err)
}

func TestUpdateProfileReplacesPicture(t *testing.T) {
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { os.Chdir(old) })

	e := newTestEcho()
	uc := NewUserController(repositories.NewMemoryUserRepository())

	_, _ = profileRequest(t, e, uc.CreateProfile, http.MethodPost,
		`{"name": "A", "phoneNumber": "+1"}`, "")

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", "new.jpg")
	require.NoError(t, err)
	_, err = part.Write([]byte("newer image"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPut, "/api/profile", &buf)
	req.Header.Set(echo.HeaderContentType, writer.FormDataContentType())
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("phoneNumber")
	c.SetParamValues("+1")
	require.NoError(t, uc.UpdateProfile(c))

	var resp models.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, resp.User)
	assert.Equal(t, "A", resp.User.Name)
	assert.True(t, strings.HasSuffix(resp.User.PicturePath, ".jpg"))
}
