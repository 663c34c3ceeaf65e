package uploadimage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	service "linkea/internal/core/services/upload_image"

	"github.com/stretchr/testify/require"
)

var PNG = append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 1024)...)

type stubService struct {
	err         error
	contentType string
	content     []byte
}

func (s *stubService) Run(ctx context.Context, input service.Input) (result service.Result, err error) {
	s.contentType = input.ContentType
	s.content, err = io.ReadAll(input.Body)
	if err != nil {
		return result, err
	}
	if s.err != nil {
		return result, s.err
	}
	return service.Result{Image: "https://images.test/profiles/1"}, nil
}

func multipartRequest(t *testing.T, field string, content []byte) *http.Request {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(field, "avatar.png")
	require.Nil(t, err)
	_, err = part.Write(content)
	require.Nil(t, err)
	require.Nil(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/user/image", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestUploadImageHandler(t *testing.T) {
	assert := require.New(t)
	stub := &stubService{}

	rw := httptest.NewRecorder()
	New(stub).ServeHTTP(rw, multipartRequest(t, FORM_FIELD, PNG))

	assert.Equal(http.StatusOK, rw.Code)
	assert.JSONEq(`{"image": "https://images.test/profiles/1"}`, rw.Body.String())
	assert.Equal("image/png", stub.contentType)
	assert.Equal(PNG, stub.content)
}

func TestUploadImageHandlerRejectsInput(t *testing.T) {
	cases := []struct {
		name    string
		request func(t *testing.T) *http.Request
	}{
		{
			name:    "wrong field",
			request: func(t *testing.T) *http.Request { return multipartRequest(t, "avatar", PNG) },
		},
		{
			name: "not an image",
			request: func(t *testing.T) *http.Request {
				return multipartRequest(t, FORM_FIELD, []byte("just some text"))
			},
		},
		{
			name: "not multipart",
			request: func(t *testing.T) *http.Request {
				return httptest.NewRequest(http.MethodPost, "/user/image", bytes.NewReader(PNG))
			},
		},
	}

	for _, testcase := range cases {
		t.Run(testcase.name, func(t *testing.T) {
			stub := &stubService{}
			rw := httptest.NewRecorder()
			New(stub).ServeHTTP(rw, testcase.request(t))

			require.Equal(t, http.StatusBadRequest, rw.Code)
			require.Nil(t, stub.content)
		})
	}
}

func TestUploadImageHandlerServiceFailure(t *testing.T) {
	stub := &stubService{err: fmt.Errorf("could not upload image")}

	rw := httptest.NewRecorder()
	New(stub).ServeHTTP(rw, multipartRequest(t, FORM_FIELD, PNG))

	require.Equal(t, http.StatusInternalServerError, rw.Code)
}

func TestUploadImageHandlerTooLarge(t *testing.T) {
	stub := &stubService{}
	content := append(append([]byte{}, PNG...), bytes.Repeat([]byte{1}, MAX_IMAGE_SIZE)...)

	rw := httptest.NewRecorder()
	New(stub).ServeHTTP(rw, multipartRequest(t, FORM_FIELD, content))

	require.Equal(t, http.StatusRequestEntityTooLarge, rw.Code)
	require.Nil(t, stub.content)
}
