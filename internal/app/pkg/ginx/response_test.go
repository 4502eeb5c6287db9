package ginx

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/web3labscientis/trustlab/internal/app/pkg/errorx"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func render(fn func(c *gin.Context)) (*httptest.ResponseRecorder, Response) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	fn(c)

	var resp Response
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return w, resp
}

func TestFromErrorStatusMapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{errorx.ErrEmptyInput, http.StatusBadRequest},
		{errorx.ErrInvalidQRFormat, http.StatusUnprocessableEntity},
		{errorx.ErrVerificationPending, http.StatusConflict},
		{errorx.ErrSessionNotFound, http.StatusNotFound},
		{errorx.ErrCameraUnavailable, http.StatusServiceUnavailable},
		{errorx.External("Failed to generate QR code", errors.New("boom")), http.StatusBadGateway},
		{errorx.ErrWalletNotConnected, http.StatusPreconditionFailed},
		{&errorx.BusinessError{Kind: errorx.KindConflict, Message: "no code"}, http.StatusConflict},
		{errors.New("db down"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		w, resp := render(func(c *gin.Context) { FromError(c, tc.err) })
		if w.Code != tc.code || resp.Meta.Code != tc.code {
			t.Errorf("FromError(%v) status = %d, want %d", tc.err, w.Code, tc.code)
		}
	}
}

func TestFromErrorDetails(t *testing.T) {
	err := errorx.ErrMissingFields.WithDetails([]errorx.ErrorDetail{{Path: "patient_id", Info: "patient_id is required"}})

	_, resp := render(func(c *gin.Context) { FromError(c, err) })
	if resp.Meta.Message != errorx.ErrMissingFields.Message || len(resp.Meta.Details) != 1 || resp.Meta.Details[0].Path != "patient_id" {
		t.Fatalf("unexpected meta %+v", resp.Meta)
	}
}

func TestBadRequestWithValidation(t *testing.T) {
	type payload struct {
		Payload string `validate:"required"`
	}
	verr := validator.New().Struct(payload{})

	w, resp := render(func(c *gin.Context) { BadRequestWithValidation(c, verr) })
	if w.Code != http.StatusBadRequest || len(resp.Meta.Details) != 1 || resp.Meta.Details[0].Info != "Payload is required" {
		t.Fatalf("unexpected response %d %+v", w.Code, resp.Meta)
	}

	_, resp = render(func(c *gin.Context) { BadRequestWithValidation(c, errors.New("EOF")) })
	if resp.Meta.Message != "Invalid request body" {
		t.Fatalf("unexpected message %q", resp.Meta.Message)
	}
}
