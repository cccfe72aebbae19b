package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func bindCreateEmotion(t *testing.T, body string) (createEmotionRequest, error) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	req, err := http.NewRequest(http.MethodPost, "/api/v1/emotions", bytes.NewBufferString(body))
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	var out createEmotionRequest
	return out, c.ShouldBindJSON(&out)
}

func TestCreateEmotionBindingAllowsZeroConfidence(t *testing.T) {
	req, err := bindCreateEmotion(t, `{"type":"NEUTRAL","confidence":0}`)
	if err != nil {
		t.Fatalf("bind: %v", err)
	}
	if req.Confidence != 0 {
		t.Fatalf("confidence = %v, want 0", req.Confidence)
	}
}

func TestCreateEmotionBindingRejectsOutOfRange(t *testing.T) {
	for _, body := range []string{
		`{"type":"SAD","confidence":-0.1}`,
		`{"type":"SAD","confidence":1.5}`,
	} {
		if _, err := bindCreateEmotion(t, body); err == nil {
			t.Fatalf("body %s: expected binding error", body)
		}
	}
}
