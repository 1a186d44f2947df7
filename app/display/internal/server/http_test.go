package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"mime/multipart"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/plant_radar/app/display/internal/conf"
	"github.com/iWorld-y/plant_radar/app/display/internal/domain"
	"github.com/iWorld-y/plant_radar/app/display/internal/service"
	"github.com/iWorld-y/plant_radar/app/display/internal/usecase"
	"github.com/iWorld-y/plant_radar/app/plant_radar/pkg/config"
	"github.com/iWorld-y/plant_radar/app/plant_radar/pkg/engine"
	"github.com/iWorld-y/plant_radar/app/plant_radar/pkg/model"
	"github.com/iWorld-y/plant_radar/app/plant_radar/pkg/report"
)

const analysis = `**PLANT IDENTIFICATION:**
- Cucumber
**DISEASE/ISSUE DETECTED:**
- Downy mildew, severe
**TREATMENT RECOMMENDATIONS:**
- Copper fungicide`

// mockEngine 模拟诊断引擎，记录收到的图片
type mockEngine struct {
	got []byte
}

func (m *mockEngine) Diagnose(ctx context.Context, img []byte) (*model.Diagnosis, error) {
	m.got = img
	if len(img) == 0 {
		return nil, engine.ErrEmptyImage
	}
	return &model.Diagnosis{ID: "d1", Provider: "gemini", Report: report.Interpret(analysis)}, nil
}

func (m *mockEngine) Interpret(raw string) *report.Interpretation {
	return report.Interpret(raw)
}

func newTestServer(t *testing.T) (nethttp.Handler, *mockEngine) {
	t.Helper()
	return newLimitedServer(t, nil)
}

func newLimitedServer(t *testing.T, radar *conf.Radar) (nethttp.Handler, *mockEngine) {
	t.Helper()
	eng := &mockEngine{}
	uc := usecase.NewDiagnosisUseCase(eng, log.DefaultLogger)
	svc := service.NewDisplayService(uc, log.DefaultLogger)
	return NewHTTPServer(&conf.Server{Http: &conf.HTTP{Addr: "127.0.0.1:0"}}, radar, svc, log.DefaultLogger), eng
}

func do(t *testing.T, h nethttp.Handler, req *nethttp.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestInterpretRoute(t *testing.T) {
	h, _ := newTestServer(t)
	body, _ := json.Marshal(map[string]string{"text": analysis})
	req := httptest.NewRequest(nethttp.MethodPost, "/v1/interpret", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rec := do(t, h, req)
	if rec.Code != nethttp.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	var reply domain.InterpretReply
	if err := json.Unmarshal(rec.Body.Bytes(), &reply); err != nil {
		t.Fatalf("decode: %v", err)
	}
	r := reply.Report
	if !r.Structured || r.Severity != report.SeveritySevere || r.UrgencyLabel != "Urgent Action Required" {
		t.Errorf("report = %+v", r)
	}
	if len(r.Groups) != 3 || r.Groups[2].Title != "Treatment Recommendations" || !r.Groups[2].Cards[0].Actionable {
		t.Errorf("groups = %+v", r.Groups)
	}
}

func TestDiagnoseMultipart(t *testing.T) {
	h, eng := newTestServer(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("image", "leaf.png")
	if err != nil {
		t.Fatal(err)
	}
	_, _ = fw.Write([]byte("fake-png"))
	_ = mw.Close()

	req := httptest.NewRequest(nethttp.MethodPost, "/v1/diagnose", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := do(t, h, req)
	if rec.Code != nethttp.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	if string(eng.got) != "fake-png" {
		t.Errorf("engine got %q", eng.got)
	}
	var reply domain.DiagnosisReply
	if err := json.Unmarshal(rec.Body.Bytes(), &reply); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if reply.ID != "d1" || reply.Report == nil || len(reply.Report.Sections) != 3 {
		t.Errorf("reply = %+v", reply)
	}
}

func TestDiagnoseJSON(t *testing.T) {
	h, eng := newTestServer(t)
	b64 := "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("leaf"))
	body, _ := json.Marshal(map[string]string{"image_b64": b64})
	req := httptest.NewRequest(nethttp.MethodPost, "/v1/diagnose", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rec := do(t, h, req)
	if rec.Code != nethttp.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	if string(eng.got) != "leaf" {
		t.Errorf("engine got %q", eng.got)
	}
}

func TestDiagnoseErrors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"missing image", `{}`, nethttp.StatusBadRequest},
		{"bad base64", `{"image_b64":"***"}`, nethttp.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := newTestServer(t)
			req := httptest.NewRequest(nethttp.MethodPost, "/v1/diagnose", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			if rec := do(t, h, req); rec.Code != tt.status {
				t.Errorf("status = %d, want %d, body = %s", rec.Code, tt.status, rec.Body)
			}
		})
	}
}

func multipartImage(t *testing.T, size int) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("image", "big.png")
	if err != nil {
		t.Fatal(err)
	}
	_, _ = fw.Write(bytes.Repeat([]byte{'x'}, size))
	_ = mw.Close()
	return &buf, mw.FormDataContentType()
}

func TestDiagnoseBodyLimit(t *testing.T) {
	radar := &conf.Radar{Vision: &conf.Vision{MaxImageBytes: 1024}}
	limit := uploadLimit(radar)

	tests := []struct {
		name    string
		chunked bool
	}{
		{"content length", false},
		{"chunked", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, eng := newLimitedServer(t, radar)
			body, ct := multipartImage(t, int(limit)+1024)
			req := httptest.NewRequest(nethttp.MethodPost, "/v1/diagnose", body)
			req.Header.Set("Content-Type", ct)
			if tt.chunked {
				req.ContentLength = -1
			}

			rec := do(t, h, req)
			if rec.Code != nethttp.StatusRequestEntityTooLarge {
				t.Fatalf("status = %d, want 413, body = %s", rec.Code, rec.Body)
			}
			if eng.got != nil {
				t.Errorf("engine received %d bytes", len(eng.got))
			}
		})
	}
}

func TestUploadLimit(t *testing.T) {
	if got, want := uploadLimit(nil), int64(config.DefaultMaxImageBytes)*4/3+64<<10; got != want {
		t.Errorf("uploadLimit(nil) = %d, want %d", got, want)
	}
	r := &conf.Radar{Vision: &conf.Vision{MaxImageBytes: 3000}}
	if got := uploadLimit(r); got != 4000+64<<10 {
		t.Errorf("uploadLimit() = %d", got)
	}
}

func TestStaticRoutes(t *testing.T) {
	h, _ := newTestServer(t)

	rec := do(t, h, httptest.NewRequest(nethttp.MethodGet, "/healthz", nil))
	if rec.Code != nethttp.StatusOK || rec.Body.String() != "ok" {
		t.Errorf("healthz = %d %q", rec.Code, rec.Body)
	}

	rec = do(t, h, httptest.NewRequest(nethttp.MethodGet, "/", nil))
	if rec.Code != nethttp.StatusOK || !strings.Contains(rec.Body.String(), "Plant Radar") {
		t.Errorf("index = %d", rec.Code)
	}
}

func TestNewRadarConfig(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")

	cfg := NewRadarConfig(&conf.Radar{
		Vision: &conf.Vision{
			Openai:  &conf.OpenAI{ApiKey: "sk", BaseUrl: "http://llm"},
			Timeout: 30,
		},
		Concurrency: &conf.Concurrency{Qps: 2, Rpm: 120},
	})
	if cfg.Vision.Provider != "openai" || cfg.Vision.OpenAI.Model != "gpt-4o-mini" {
		t.Errorf("vision = %+v", cfg.Vision)
	}
	if cfg.Vision.Timeout != 30 || cfg.Concurrency.RPM != 120 || cfg.Concurrency.QPS != 2 {
		t.Errorf("cfg = %+v", cfg)
	}

	if got := NewRadarConfig(nil); got.Vision.Provider != "gemini" || got.Log.Level != "info" {
		t.Errorf("defaults = %+v", got)
	}
}
