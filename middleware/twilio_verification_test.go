package middleware

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

func newVerifiedRouter(authToken string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/webhook/whatsapp", VerifyTwilioSignature(authToken, zerolog.Nop()), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return router
}

func signedRequest(t *testing.T, authToken string, form url.Values) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "http://example.com/webhook/whatsapp", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("X-Twilio-Signature", computeTwilioSignature(authToken, "http://example.com/webhook/whatsapp", form))
	return req
}

func TestVerifyTwilioSignatureAccepts(t *testing.T) {
	router := newVerifiedRouter("secret-token")

	form := url.Values{}
	form.Set("Body", "I have a fever")
	form.Set("From", "whatsapp:+911234567890")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, signedRequest(t, "secret-token", form))

	if w.Code != http.StatusOK {
		t.Errorf("expected 200 for valid signature, got %d", w.Code)
	}
}

func TestVerifyTwilioSignatureRejectsTampering(t *testing.T) {
	router := newVerifiedRouter("secret-token")

	form := url.Values{}
	form.Set("Body", "I have a fever")
	req := signedRequest(t, "secret-token", form)

	// Tamper with the payload after signing.
	tampered := url.Values{}
	tampered.Set("Body", "something else")
	req.Body = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tampered.Encode())).Body

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403 for tampered payload, got %d", w.Code)
	}
}

func TestVerifyTwilioSignatureRejectsMissingHeader(t *testing.T) {
	router := newVerifiedRouter("secret-token")

	req := httptest.NewRequest(http.MethodPost, "http://example.com/webhook/whatsapp", strings.NewReader("Body=hi"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403 for missing signature, got %d", w.Code)
	}
}

func TestVerifyTwilioSignatureSkippedWithoutToken(t *testing.T) {
	router := newVerifiedRouter("")

	req := httptest.NewRequest(http.MethodPost, "http://example.com/webhook/whatsapp", strings.NewReader("Body=hi"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected verification skipped without token, got %d", w.Code)
	}
}
